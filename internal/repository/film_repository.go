package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/reelcampus/student-film-platform/internal/model"
)

// FilmRepo provides access to the 'films' table.
type FilmRepo struct{ db *sql.DB }

func NewFilmRepo(db *sql.DB) *FilmRepo { return &FilmRepo{db: db} }

const filmCols = "id,title,synopsis,category_id,language,duration_seconds,release_date,tags," +
	"thumbnail_url,video_url,status,director_id,rating_sum,rating_count,created_at,updated_at"

func scanFilm(row interface{ Scan(...any) error }) (model.Film, error) {
	var f model.Film
	err := row.Scan(&f.ID, &f.Title, &f.Synopsis, &f.CategoryID, &f.Language,
		&f.DurationSeconds, &f.ReleaseDate, &f.Tags, &f.ThumbnailURL, &f.VideoURL,
		&f.Status, &f.DirectorID, &f.RatingSum, &f.RatingCount, &f.CreatedAt, &f.UpdatedAt)
	return f, err
}

// Create inserts a film row with status=pending and returns its ID.  Both
// media URLs must already point at stored objects; the upload handler
// performs the object writes first and compensates when this insert fails.
func (r *FilmRepo) Create(ctx context.Context, f *model.Film) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO films (title, synopsis, category_id, language, duration_seconds, release_date, tags, thumbnail_url, video_url, status, director_id) VALUES (?,?,?,?,?,?,?,?,?,?,?)",
		f.Title, f.Synopsis, f.CategoryID, f.Language, f.DurationSeconds, f.ReleaseDate,
		f.Tags, f.ThumbnailURL, f.VideoURL, model.FilmPending, f.DirectorID)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	f.ID = uint64(id)
	f.Status = model.FilmPending
	return f.ID, nil
}

// GetByID fetches a film row regardless of status.
func (r *FilmRepo) GetByID(ctx context.Context, id uint64) (model.Film, error) {
	f, err := scanFilm(r.db.QueryRowContext(ctx,
		"SELECT "+filmCols+" FROM films WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return f, ErrNotFound
	}
	return f, err
}

// FilmDetail is the public film page shape: the film joined with its
// director's public credit fields and the category name.
type FilmDetail struct {
	model.Film
	DirectorFirstName string `json:"director_first_name"`
	DirectorLastName  string `json:"director_last_name"`
	DirectorAvatarURL string `json:"director_avatar_url"`
	CategoryName      string `json:"category_name"`
}

// GetDetail fetches a film with director and category joined in.
func (r *FilmRepo) GetDetail(ctx context.Context, id uint64) (FilmDetail, error) {
	var d FilmDetail
	err := r.db.QueryRowContext(ctx,
		`SELECT f.id, f.title, f.synopsis, f.category_id, f.language, f.duration_seconds,
			f.release_date, f.tags, f.thumbnail_url, f.video_url, f.status, f.director_id,
			f.rating_sum, f.rating_count, f.created_at, f.updated_at,
			p.first_name, p.last_name, p.avatar_url, c.name
		FROM films f
		JOIN profiles p   ON p.id = f.director_id
		JOIN categories c ON c.id = f.category_id
		WHERE f.id=? LIMIT 1`, id).Scan(
		&d.ID, &d.Title, &d.Synopsis, &d.CategoryID, &d.Language, &d.DurationSeconds,
		&d.ReleaseDate, &d.Tags, &d.ThumbnailURL, &d.VideoURL, &d.Status, &d.DirectorID,
		&d.RatingSum, &d.RatingCount, &d.CreatedAt, &d.UpdatedAt,
		&d.DirectorFirstName, &d.DirectorLastName, &d.DirectorAvatarURL, &d.CategoryName)
	if err == sql.ErrNoRows {
		return d, ErrNotFound
	}
	return d, err
}

// BrowseQuery defines filters & pagination for the public film listing.
// Only approved films are ever returned by ListApproved.
type BrowseQuery struct {
	CategoryID uint64
	Language   string
	Tag        string
	Sort       string // "newest" (default) | "top"
	Page       int
	PageSize   int
}

// ListApproved returns approved films matching the filters plus the total
// count for pagination.
func (r *FilmRepo) ListApproved(ctx context.Context, q BrowseQuery) ([]FilmDetail, int64, error) {
	where := []string{"f.status = ?"}
	args := []any{model.FilmApproved}

	if q.CategoryID != 0 {
		where = append(where, "f.category_id = ?")
		args = append(args, q.CategoryID)
	}
	if q.Language != "" {
		where = append(where, "LOWER(f.language) = ?")
		args = append(args, strings.ToLower(q.Language))
	}
	if q.Tag != "" {
		where = append(where, "LOWER(f.tags) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Tag)+"%")
	}
	cond := strings.Join(where, " AND ")

	var total int64
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM films f WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	order := "f.created_at DESC"
	if q.Sort == "top" {
		// Average without a division-by-zero: unrated films sink to the bottom.
		order = "CASE WHEN f.rating_count=0 THEN 0 ELSE f.rating_sum/f.rating_count END DESC, f.rating_count DESC"
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
		ORDER BY `+order+`
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
	return out, total, rows.Err()
}

// ListByDirector returns all films of one director, any status, newest first.
func (r *FilmRepo) ListByDirector(ctx context.Context, directorID uint64) ([]model.Film, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+filmCols+" FROM films WHERE director_id=? ORDER BY created_at DESC", directorID)
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

// ListAdmin returns films of every status for the admin table, optionally
// filtered to one status.
func (r *FilmRepo) ListAdmin(ctx context.Context, status string) ([]FilmDetail, error) {
	cond := "1=1"
	args := []any{}
	if status != "" {
		cond = "f.status = ?"
		args = append(args, status)
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT f.id, f.title, f.synopsis, f.category_id, f.language, f.duration_seconds,
			f.release_date, f.tags, f.thumbnail_url, f.video_url, f.status, f.director_id,
			f.rating_sum, f.rating_count, f.created_at, f.updated_at,
			p.first_name, p.last_name, p.avatar_url, c.name
		FROM films f
		JOIN profiles p   ON p.id = f.director_id
		JOIN categories c ON c.id = f.category_id
		WHERE `+cond+` ORDER BY f.created_at DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []FilmDetail{}
	for rows.Next() {
		var d FilmDetail
		if err := rows.Scan(
			&d.ID, &d.Title, &d.Synopsis, &d.CategoryID, &d.Language, &d.DurationSeconds,
			&d.ReleaseDate, &d.Tags, &d.ThumbnailURL, &d.VideoURL, &d.Status, &d.DirectorID,
			&d.RatingSum, &d.RatingCount, &d.CreatedAt, &d.UpdatedAt,
			&d.DirectorFirstName, &d.DirectorLastName, &d.DirectorAvatarURL, &d.CategoryName); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// UpdateStatus sets the moderation status of a film.  Re-applying the
// current status is a no-op, not an error; rows-affected cannot tell the
// two apart so existence is checked explicitly.
func (r *FilmRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	res, err := r.db.ExecContext(ctx, "UPDATE films SET status=? WHERE id=?", status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return r.exists(ctx, id)
	}
	return nil
}

func (r *FilmRepo) exists(ctx context.Context, id uint64) error {
	var one int
	err := r.db.QueryRowContext(ctx, "SELECT 1 FROM films WHERE id=? LIMIT 1", id).Scan(&one)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	return err
}

// Delete removes a film and its dependent rows in one transaction.  The
// caller removes the stored media objects afterwards.
func (r *FilmRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, q := range []string{
		"DELETE FROM ratings WHERE film_id=?",
		"DELETE FROM favorites WHERE film_id=?",
		"DELETE FROM watch_later WHERE film_id=?",
		"DELETE FROM comments WHERE film_id=?",
	} {
		if _, err := tx.ExecContext(ctx, q, id); err != nil {
			return err
		}
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM films WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}
