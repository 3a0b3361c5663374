package model

import "time"

// Comment is a viewer comment on a film, stored in the
// `comments` table.  Comments are never edited after creation
// and are listed newest-first.
//
// Fields:
//  ID        – primary key identifier.
//  FilmID    – film being commented on.
//  UserID    – author profile ID.
//  Content   – comment text.
//  CreatedAt – creation timestamp.
type Comment struct {
	ID        uint64    // comments.id
	FilmID    uint64    // comments.film_id
	UserID    uint64    // comments.user_id
	Content   string    // comments.content
	CreatedAt time.Time // comments.created_at
}
