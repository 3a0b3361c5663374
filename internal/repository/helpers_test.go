package repository

import "time"

func now() time.Time { return time.Now().UTC().Truncate(time.Second) }
