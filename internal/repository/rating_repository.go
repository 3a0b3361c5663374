package repository

import (
	"context"
	"database/sql"

	"github.com/reelcampus/student-film-platform/internal/model"
)

// RatingRepo provides access to the 'ratings' table and maintains the
// per-film aggregate columns on 'films'.
type RatingRepo struct{ db *sql.DB }

func NewRatingRepo(db *sql.DB) *RatingRepo { return &RatingRepo{db: db} }

// Upsert stores one score per (film,user), overwriting any previous score,
// and refreshes the film's rating_sum/rating_count in the same transaction.
// The unique (film_id,user_id) key makes the insert-or-update atomic; the
// aggregate refresh keeps read paths from ever re-scanning this table.
func (r *RatingRepo) Upsert(ctx context.Context, rt model.Rating) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO ratings (film_id, user_id, score) VALUES (?,?,?) ON DUPLICATE KEY UPDATE score=VALUES(score)",
		rt.FilmID, rt.UserID, rt.Score); err != nil {
		return err
	}
	// Re-submitting an identical score leaves the aggregate unchanged, so
	// rows-affected is not a useful existence signal here. Callers check the
	// film before rating it.
	if err := refreshFilmAggregate(ctx, tx, rt.FilmID); err != nil {
		return err
	}
	return tx.Commit()
}

// refreshFilmAggregate recomputes one film's rating_sum/rating_count from
// the ratings table inside the caller's transaction.  Shared with the
// account-deletion cascade, which drops rating rows out from under films
// that stay behind.
func refreshFilmAggregate(ctx context.Context, tx *sql.Tx, filmID uint64) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE films f SET
			f.rating_sum   = (SELECT COALESCE(SUM(score),0) FROM ratings WHERE film_id=?),
			f.rating_count = (SELECT COUNT(*) FROM ratings WHERE film_id=?)
		WHERE f.id=?`, filmID, filmID, filmID)
	return err
}

// ratedFilmIDs lists the distinct films a user has rated, inside the
// caller's transaction.
func ratedFilmIDs(ctx context.Context, tx *sql.Tx, userID uint64) ([]uint64, error) {
	rows, err := tx.QueryContext(ctx,
		"SELECT DISTINCT film_id FROM ratings WHERE user_id=?", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []uint64{}
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// UserScore returns the caller's own score for a film, 0 when unrated.
func (r *RatingRepo) UserScore(ctx context.Context, filmID, userID uint64) (uint8, error) {
	var score uint8
	err := r.db.QueryRowContext(ctx,
		"SELECT score FROM ratings WHERE film_id=? AND user_id=? LIMIT 1",
		filmID, userID).Scan(&score)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return score, err
}

// Aggregate reads the maintained per-film aggregate off the films row.
func (r *RatingRepo) Aggregate(ctx context.Context, filmID uint64) (sum, count uint64, err error) {
	err = r.db.QueryRowContext(ctx,
		"SELECT rating_sum, rating_count FROM films WHERE id=? LIMIT 1",
		filmID).Scan(&sum, &count)
	if err == sql.ErrNoRows {
		err = ErrNotFound
	}
	return sum, count, err
}
