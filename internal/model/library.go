package model

// Library list names.  Each maps to its own membership table
// with a unique (user_id, film_id) pair.  Membership rows are
// only ever inserted, deleted or joined against films; they are
// never materialized as structs.
const (
	ListFavorites  = "favorites"
	ListWatchLater = "watch_later"
)
