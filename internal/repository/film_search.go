package repository

import (
	"context"
	"strings"

	"github.com/reelcampus/student-film-platform/internal/model"
)

// SearchQuery defines the free-text search over approved films.
type SearchQuery struct {
	Q        string
	Page     int
	PageSize int
}

// Search matches approved films whose title, synopsis or director name
// contains the query, newest first, with a total count for pagination.
func (r *FilmRepo) Search(ctx context.Context, q SearchQuery) ([]FilmDetail, int64, error) {
	needle := "%" + strings.ToLower(strings.TrimSpace(q.Q)) + "%"

	cond := `f.status = ? AND (
			LOWER(f.title) LIKE ? OR
			LOWER(f.synopsis) LIKE ? OR
			LOWER(CONCAT(p.first_name, ' ', p.last_name)) LIKE ?)`
	args := []any{model.FilmApproved, needle, needle, needle}

	var total int64
	countSQL := `SELECT COUNT(*)
		FROM films f
		JOIN profiles p ON p.id = f.director_id
		WHERE ` + cond
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := q.PageSize
	offset := (q.Page - 1) * q.PageSize
	argsData := append(append([]any{}, args...), limit, offset)

	rows, err := r.db.QueryContext(ctx,
		`SELECT f.id, f.title, f.synopsis, f.category_id, f.language, f.duration_seconds,
			f.release_date, f.tags, f.thumbnail_url, f.video_url, f.status, f.director_id,
			f.rating_sum, f.rating_count, f.created_at, f.updated_at,
			p.first_name, p.last_name, p.avatar_url, c.name
		FROM films f
		JOIN profiles p   ON p.id = f.director_id
		JOIN categories c ON c.id = f.category_id
		WHERE `+cond+`
		ORDER BY f.created_at DESC
		LIMIT ? OFFSET ?`, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]FilmDetail, 0, limit)
	for rows.Next() {
		var d FilmDetail
		if err := rows.Scan(
			&d.ID, &d.Title, &d.Synopsis, &d.CategoryID, &d.Language, &d.DurationSeconds,
			&d.ReleaseDate, &d.Tags, &d.ThumbnailURL, &d.VideoURL, &d.Status, &d.DirectorID,
			&d.RatingSum, &d.RatingCount, &d.CreatedAt, &d.UpdatedAt,
			&d.DirectorFirstName, &d.DirectorLastName, &d.DirectorAvatarURL, &d.CategoryName); err != nil {
			return nil, 0, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
