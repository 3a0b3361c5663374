package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/reelcampus/student-film-platform/internal/model"
)

// CategoryRepo provides access to the 'categories' table.
type CategoryRepo struct{ db *sql.DB }

func NewCategoryRepo(db *sql.DB) *CategoryRepo { return &CategoryRepo{db: db} }

// ListVisible returns the categories shown on public surfaces.
func (r *CategoryRepo) ListVisible(ctx context.Context) ([]model.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id,name,description,is_visible,created_at,updated_at FROM categories WHERE is_visible=1 ORDER BY name ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Category{}
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.IsVisible, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CategoryWithCount is the admin listing shape: a category plus how many
// films reference it.
type CategoryWithCount struct {
	model.Category
	FilmCount int64 `json:"film_count"`
}

// ListWithCounts returns every category with its film count for the admin table.
func (r *CategoryRepo) ListWithCounts(ctx context.Context) ([]CategoryWithCount, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT c.id, c.name, c.description, c.is_visible, c.created_at, c.updated_at,
			(SELECT COUNT(*) FROM films f WHERE f.category_id = c.id) AS film_count
		FROM categories c ORDER BY c.name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []CategoryWithCount{}
	for rows.Next() {
		var c CategoryWithCount
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.IsVisible, &c.CreatedAt, &c.UpdatedAt, &c.FilmCount); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Create inserts a category and returns its ID.
func (r *CategoryRepo) Create(ctx context.Context, c *model.Category) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO categories (name, description, is_visible) VALUES (?,?,?)",
		c.Name, c.Description, c.IsVisible)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrConflict
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	c.ID = uint64(id)
	return c.ID, nil
}

// Update rewrites a category's fields.
func (r *CategoryRepo) Update(ctx context.Context, c model.Category) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE categories SET name=?, description=?, is_visible=? WHERE id=?",
		c.Name, c.Description, c.IsVisible, c.ID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrConflict
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// MySQL reports zero rows for a no-change update too.
		ok, err := r.Exists(ctx, c.ID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotFound
		}
	}
	return nil
}

// Delete removes an empty category.  A category that still has films
// returns ErrConflict rather than cascading.
func (r *CategoryRepo) Delete(ctx context.Context, id uint64) error {
	var films int64
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM films WHERE category_id=?", id).Scan(&films); err != nil {
		return err
	}
	if films > 0 {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx, "DELETE FROM categories WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Exists reports whether a category id is present.
func (r *CategoryRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, "SELECT 1 FROM categories WHERE id=? LIMIT 1", id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
