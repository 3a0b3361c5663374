package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/reelcampus/student-film-platform/internal/model"
)

// LibraryRepo manages one personal film list (favorites or watch-later).
// Both lists share the same (user_id, film_id) membership shape, so the
// repo is instantiated once per table with the table name fixed at
// construction; the name is validated against the known lists so it can
// safely be spliced into SQL.
type LibraryRepo struct {
	db    *sql.DB
	table string
}

// NewLibraryRepo builds a repo bound to one of the list tables.  Unknown
// table names panic at wiring time rather than at query time.
func NewLibraryRepo(db *sql.DB, table string) *LibraryRepo {
	if table != model.ListFavorites && table != model.ListWatchLater {
		panic(fmt.Sprintf("unknown list table: %s", table))
	}
	return &LibraryRepo{db: db, table: table}
}

// Add inserts a membership row.  Adding an existing member is a no-op so
// the toggle is idempotent in both directions.
func (r *LibraryRepo) Add(ctx context.Context, userID, filmID uint64) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO "+r.table+" (user_id, film_id) VALUES (?,?)", userID, filmID)
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "1062") {
		return nil // already a member
	}
	return err
}

// Remove deletes a membership row.  Removing a non-member is a no-op.
func (r *LibraryRepo) Remove(ctx context.Context, userID, filmID uint64) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM "+r.table+" WHERE user_id=? AND film_id=?", userID, filmID)
	return err
}

// Contains reports list membership.
func (r *LibraryRepo) Contains(ctx context.Context, userID, filmID uint64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM "+r.table+" WHERE user_id=? AND film_id=? LIMIT 1",
		userID, filmID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListFilms returns the member's listed films that are still approved,
// most recently added first.
func (r *LibraryRepo) ListFilms(ctx context.Context, userID uint64) ([]model.Film, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT f.id, f.title, f.synopsis, f.category_id, f.language, f.duration_seconds,
			f.release_date, f.tags, f.thumbnail_url, f.video_url, f.status, f.director_id,
			f.rating_sum, f.rating_count, f.created_at, f.updated_at
		FROM `+r.table+` l
		JOIN films f ON f.id = l.film_id
		WHERE l.user_id=? AND f.status=?
		ORDER BY l.created_at DESC`, userID, model.FilmApproved)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Film{}
	for rows.Next() {
		f, err := scanFilm(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
