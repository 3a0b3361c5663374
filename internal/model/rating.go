package model

import "time"

// Rating is a single 1-5 score a user gave a film.  The
// `ratings` table carries a unique constraint over
// (film_id, user_id) so a user holds at most one rating per
// film; submitting again overwrites the score.
//
// Fields:
//  FilmID    – film being rated.
//  UserID    – rater profile ID.
//  Score     – integer score between 1 and 5.
//  CreatedAt – when the rating was first submitted.
//  UpdatedAt – when the score was last changed.
type Rating struct {
	FilmID    uint64    // ratings.film_id
	UserID    uint64    // ratings.user_id
	Score     uint8     // ratings.score
	CreatedAt time.Time // ratings.created_at
	UpdatedAt time.Time // ratings.updated_at
}
