// Package queue defines message payloads exchanged over the message broker.
package queue

// Queue names used on the broker.
const (
	FilmSubmittedQueue = "film.submitted"
	FilmModeratedQueue = "film.moderated"
)

// FilmSubmittedEvent is published after an upload stores both media files
// and inserts the film row. Downstream consumers can notify reviewers or
// feed analytics without querying the primary database.
type FilmSubmittedEvent struct {
	FilmID       uint64 `json:"film_id"`
	Title        string `json:"title"`
	DirectorID   uint64 `json:"director_id"`
	DirectorName string `json:"director_name"`
	Category     string `json:"category"`
	Language     string `json:"language"`
	SubmittedAt  string `json:"submitted_at"`
}

// FilmModeratedEvent is published when an administrator approves or
// rejects a film.
type FilmModeratedEvent struct {
	FilmID      uint64 `json:"film_id"`
	Title       string `json:"title"`
	DirectorID  uint64 `json:"director_id"`
	Status      string `json:"status"` // approved | rejected
	ModeratorID uint64 `json:"moderator_id"`
	ModeratedAt string `json:"moderated_at"`
}
