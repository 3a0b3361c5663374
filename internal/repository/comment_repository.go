package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/reelcampus/student-film-platform/internal/model"
)

// CommentRepo provides access to the 'comments' table.
type CommentRepo struct{ db *sql.DB }

func NewCommentRepo(db *sql.DB) *CommentRepo { return &CommentRepo{db: db} }

// CommentRow is a comment joined with its author's public fields.
type CommentRow struct {
	ID              uint64    `json:"id"`
	FilmID          uint64    `json:"film_id"`
	UserID          uint64    `json:"user_id"`
	Content         string    `json:"content"`
	CreatedAt       time.Time `json:"created_at"`
	AuthorFirstName string    `json:"author_first_name"`
	AuthorLastName  string    `json:"author_last_name"`
	AuthorAvatarURL string    `json:"author_avatar_url"`
}

// Create inserts a comment and fills in its ID.
func (r *CommentRepo) Create(ctx context.Context, cm *model.Comment) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO comments (film_id, user_id, content) VALUES (?,?,?)",
		cm.FilmID, cm.UserID, cm.Content)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	cm.ID = uint64(id)
	return nil
}

// ListByFilm returns a film's comments newest-first with author names.
func (r *CommentRepo) ListByFilm(ctx context.Context, filmID uint64) ([]CommentRow, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT cm.id, cm.film_id, cm.user_id, cm.content, cm.created_at,
			p.first_name, p.last_name, p.avatar_url
		FROM comments cm
		JOIN profiles p ON p.id = cm.user_id
		WHERE cm.film_id=?
		ORDER BY cm.created_at DESC`, filmID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []CommentRow{}
	for rows.Next() {
		var c CommentRow
		if err := rows.Scan(&c.ID, &c.FilmID, &c.UserID, &c.Content, &c.CreatedAt,
			&c.AuthorFirstName, &c.AuthorLastName, &c.AuthorAvatarURL); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
