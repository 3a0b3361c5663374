package handler

import "time"

func testTime() time.Time { return time.Now().UTC().Truncate(time.Second) }
