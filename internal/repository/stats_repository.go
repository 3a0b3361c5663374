package repository

import (
	"context"
	"database/sql"

	"github.com/reelcampus/student-film-platform/internal/model"
)

// StatsRepo backs the admin dashboard and analytics views with count and
// grouping queries. It owns no table of its own.
type StatsRepo struct{ db *sql.DB }

func NewStatsRepo(db *sql.DB) *StatsRepo { return &StatsRepo{db: db} }

// DashboardCounts is the headline card row of the admin dashboard.
type DashboardCounts struct {
	Users        int64 `json:"users"`
	Films        int64 `json:"films"`
	Comments     int64 `json:"comments"`
	PendingFilms int64 `json:"pending_films"`
}

// Dashboard returns the four headline counts.
func (r *StatsRepo) Dashboard(ctx context.Context) (DashboardCounts, error) {
	var d DashboardCounts
	steps := []struct {
		query string
		args  []any
		dest  *int64
	}{
		{"SELECT COUNT(*) FROM profiles", nil, &d.Users},
		{"SELECT COUNT(*) FROM films", nil, &d.Films},
		{"SELECT COUNT(*) FROM comments", nil, &d.Comments},
		{"SELECT COUNT(*) FROM films WHERE status=?", []any{model.FilmPending}, &d.PendingFilms},
	}
	for _, s := range steps {
		if err := r.db.QueryRowContext(ctx, s.query, s.args...).Scan(s.dest); err != nil {
			return d, err
		}
	}
	return d, nil
}

// WeeklySignups is one week's worth of new accounts.
type WeeklySignups struct {
	Week    string `json:"week"` // ISO year-week, e.g. "2026-35"
	Signups int64  `json:"signups"`
}

// Signups groups account creations by ISO week over the last `weeks` weeks.
func (r *StatsRepo) Signups(ctx context.Context, weeks int) ([]WeeklySignups, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DATE_FORMAT(created_at, '%x-%v') AS wk, COUNT(*)
		FROM profiles
		WHERE created_at >= DATE_SUB(NOW(), INTERVAL ? WEEK)
		GROUP BY wk ORDER BY wk ASC`, weeks)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []WeeklySignups{}
	for rows.Next() {
		var w WeeklySignups
		if err := rows.Scan(&w.Week, &w.Signups); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// CategoryCount is the films-per-category analytics row.
type CategoryCount struct {
	Category string `json:"category"`
	Films    int64  `json:"films"`
}

// FilmsPerCategory counts approved films grouped by category name.
func (r *StatsRepo) FilmsPerCategory(ctx context.Context) ([]CategoryCount, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT c.name, COUNT(f.id)
		FROM categories c
		LEFT JOIN films f ON f.category_id = c.id AND f.status = ?
		GROUP BY c.id, c.name ORDER BY c.name ASC`, model.FilmApproved)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []CategoryCount{}
	for rows.Next() {
		var c CategoryCount
		if err := rows.Scan(&c.Category, &c.Films); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// TopRatedFilm is one row of the top-rated analytics table.
type TopRatedFilm struct {
	ID      uint64  `json:"id"`
	Title   string  `json:"title"`
	Average float64 `json:"average"`
	Ratings uint64  `json:"ratings"`
}

// TopRated lists the highest-rated approved films, ties broken by rating
// volume. Films without ratings are excluded.
func (r *StatsRepo) TopRated(ctx context.Context, limit int) ([]TopRatedFilm, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, rating_sum/rating_count AS avg_score, rating_count
		FROM films
		WHERE status = ? AND rating_count > 0
		ORDER BY avg_score DESC, rating_count DESC
		LIMIT ?`, model.FilmApproved, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []TopRatedFilm{}
	for rows.Next() {
		var t TopRatedFilm
		if err := rows.Scan(&t.ID, &t.Title, &t.Average, &t.Ratings); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
