package repository

import (
	"context"
	"database/sql"

	"github.com/reelcampus/student-film-platform/internal/model"
)

// MessageRepo stores contact and report-a-problem submissions.
type MessageRepo struct{ db *sql.DB }

func NewMessageRepo(db *sql.DB) *MessageRepo { return &MessageRepo{db: db} }

// Create inserts a submission and fills in its ID.
func (r *MessageRepo) Create(ctx context.Context, m *model.ContactMessage) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO contact_messages (kind, name, email, subject, body) VALUES (?,?,?,?,?)",
		m.Kind, m.Name, m.Email, m.Subject, m.Body)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return nil
}
