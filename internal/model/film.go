package model

import "time"

// Film represents an uploaded student film as stored in the
// `films` table.  A film always belongs to the profile that
// uploaded it (the director).  New uploads start in the
// "pending" status and only become publicly visible once an
// administrator approves them.  The rating aggregate columns are
// maintained transactionally by the rating repository so read
// paths never re-scan the ratings table.
//
// Fields:
//  ID              – primary key identifier.
//  Title           – film title.
//  Synopsis        – short description of the film.
//  CategoryID      – reference to the categories table.
//  Language        – spoken language of the film.
//  DurationSeconds – running time in seconds.
//  ReleaseDate     – date the film was finished (YYYY-MM-DD).
//  Tags            – comma-joined free-form tags.
//  ThumbnailURL    – public URL of the stored thumbnail.
//  VideoURL        – public URL of the stored video.
//  Status          – "pending", "approved" or "rejected".
//  DirectorID      – profile ID of the uploader.
//  RatingSum       – sum of all submitted scores.
//  RatingCount     – number of submitted ratings.
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type Film struct {
	ID              uint64    // films.id
	Title           string    // films.title
	Synopsis        string    // films.synopsis
	CategoryID      uint64    // films.category_id
	Language        string    // films.language
	DurationSeconds uint32    // films.duration_seconds
	ReleaseDate     string    // films.release_date
	Tags            string    // films.tags
	ThumbnailURL    string    // films.thumbnail_url
	VideoURL        string    // films.video_url
	Status          string    // films.status
	DirectorID      uint64    // films.director_id
	RatingSum       uint64    // films.rating_sum
	RatingCount     uint64    // films.rating_count
	CreatedAt       time.Time // films.created_at
	UpdatedAt       time.Time // films.updated_at
}

// Film status values stored in films.status.
const (
	FilmPending  = "pending"
	FilmApproved = "approved"
	FilmRejected = "rejected"
)

// Average returns the mean score, or 0 when the film has no ratings.
func (f Film) Average() float64 {
	if f.RatingCount == 0 {
		return 0
	}
	return float64(f.RatingSum) / float64(f.RatingCount)
}
