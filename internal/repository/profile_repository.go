package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/reelcampus/student-film-platform/internal/model"
	"github.com/reelcampus/student-film-platform/internal/utils"
)

// ProfileRepo provides access to the 'profiles' table.
type ProfileRepo struct{ DB *sql.DB }

func NewProfileRepo(db *sql.DB) *ProfileRepo { return &ProfileRepo{DB: db} }

const profileCols = "id,email,password_hash,first_name,last_name,bio,field_of_study,avatar_url," +
	"role,status,language,notifications_new_film,notifications_comment_replies," +
	"notifications_platform_announcements,is_public,created_at,updated_at"

func scanProfile(row interface{ Scan(...any) error }) (model.Profile, error) {
	var p model.Profile
	err := row.Scan(&p.ID, &p.Email, &p.PasswordHash, &p.FirstName, &p.LastName, &p.Bio,
		&p.FieldOfStudy, &p.AvatarURL, &p.Role, &p.Status, &p.Language,
		&p.NotifyNewFilm, &p.NotifyCommentReplies, &p.NotifyAnnouncements,
		&p.IsPublic, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// NewProfile carries the fields collected by the signup form.
type NewProfile struct {
	Email        string
	Password     string
	FirstName    string
	LastName     string
	Bio          string
	FieldOfStudy string
}

// Create inserts a profile with role=user and status=pending and returns its ID.
func (r *ProfileRepo) Create(ctx context.Context, np NewProfile, cost int) (uint64, error) {
	email := strings.ToLower(strings.TrimSpace(np.Email))
	hash, err := utils.HashPassword(np.Password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO profiles (email, password_hash, first_name, last_name, bio, field_of_study, role, status) VALUES (?,?,?,?,?,?,?,?)",
		email, hash, np.FirstName, np.LastName, np.Bio, np.FieldOfStudy, model.RoleUser, model.StatusPending)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a profile by normalized email.
func (r *ProfileRepo) GetByEmail(ctx context.Context, email string) (model.Profile, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return scanProfile(r.DB.QueryRowContext(ctx,
		"SELECT "+profileCols+" FROM profiles WHERE email=? LIMIT 1", email))
}

// GetByID fetches a profile by id.
func (r *ProfileRepo) GetByID(ctx context.Context, id uint64) (model.Profile, error) {
	return scanProfile(r.DB.QueryRowContext(ctx,
		"SELECT "+profileCols+" FROM profiles WHERE id=? LIMIT 1", id))
}

// GetRole returns only the stored role for a profile. Admin endpoints
// re-check this on every call so a demoted admin cannot ride out a
// still-valid token.
func (r *ProfileRepo) GetRole(ctx context.Context, id uint64) (string, error) {
	var role string
	err := r.DB.QueryRowContext(ctx,
		"SELECT role FROM profiles WHERE id=? LIMIT 1", id).Scan(&role)
	return role, err
}

// ProfileUpdate carries the editable identity fields.  AvatarURL is only
// written when non-nil so the edit form and the avatar upload can share
// this method.
type ProfileUpdate struct {
	FirstName    string
	LastName     string
	Bio          string
	FieldOfStudy string
	AvatarURL    *string
}

// UpdateProfile writes the identity fields of a profile.
func (r *ProfileRepo) UpdateProfile(ctx context.Context, id uint64, u ProfileUpdate) error {
	if u.AvatarURL != nil {
		_, err := r.DB.ExecContext(ctx,
			"UPDATE profiles SET first_name=?, last_name=?, bio=?, field_of_study=?, avatar_url=? WHERE id=?",
			u.FirstName, u.LastName, u.Bio, u.FieldOfStudy, *u.AvatarURL, id)
		return err
	}
	_, err := r.DB.ExecContext(ctx,
		"UPDATE profiles SET first_name=?, last_name=?, bio=?, field_of_study=? WHERE id=?",
		u.FirstName, u.LastName, u.Bio, u.FieldOfStudy, id)
	return err
}

// UpdateAvatar writes only the avatar URL.
func (r *ProfileRepo) UpdateAvatar(ctx context.Context, id uint64, url string) error {
	_, err := r.DB.ExecContext(ctx, "UPDATE profiles SET avatar_url=? WHERE id=?", url, id)
	return err
}

// Settings carries the preference fields of the settings page.
type Settings struct {
	Language             string `json:"language"`
	NotifyNewFilm        bool   `json:"notifications_new_film"`
	NotifyCommentReplies bool   `json:"notifications_comment_replies"`
	NotifyAnnouncements  bool   `json:"notifications_platform_announcements"`
	IsPublic             bool   `json:"is_public"`
}

// GetSettings reads the preference fields of a profile.
func (r *ProfileRepo) GetSettings(ctx context.Context, id uint64) (Settings, error) {
	var s Settings
	err := r.DB.QueryRowContext(ctx,
		"SELECT language, notifications_new_film, notifications_comment_replies, notifications_platform_announcements, is_public FROM profiles WHERE id=? LIMIT 1",
		id).Scan(&s.Language, &s.NotifyNewFilm, &s.NotifyCommentReplies, &s.NotifyAnnouncements, &s.IsPublic)
	return s, err
}

// SaveSettings writes the preference fields of a profile.
func (r *ProfileRepo) SaveSettings(ctx context.Context, id uint64, s Settings) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE profiles SET language=?, notifications_new_film=?, notifications_comment_replies=?, notifications_platform_announcements=?, is_public=? WHERE id=?",
		s.Language, s.NotifyNewFilm, s.NotifyCommentReplies, s.NotifyAnnouncements, s.IsPublic, id)
	return err
}

// UpdateStatus sets the moderation status of an account.  Re-applying the
// current status is a no-op, not an error; rows-affected cannot tell the
// two apart so existence is checked explicitly.
func (r *ProfileRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	res, err := r.DB.ExecContext(ctx, "UPDATE profiles SET status=? WHERE id=?", status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return r.exists(ctx, id)
	}
	return nil
}

// UpdateRole sets the role of an account.
func (r *ProfileRepo) UpdateRole(ctx context.Context, id uint64, role string) error {
	res, err := r.DB.ExecContext(ctx, "UPDATE profiles SET role=? WHERE id=?", role, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return r.exists(ctx, id)
	}
	return nil
}

func (r *ProfileRepo) exists(ctx context.Context, id uint64) error {
	var one int
	err := r.DB.QueryRowContext(ctx, "SELECT 1 FROM profiles WHERE id=? LIMIT 1", id).Scan(&one)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	return err
}

// AccountRow is the admin user-listing shape.
type AccountRow struct {
	ID        uint64    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
}

// ListAccounts returns every account for the admin users table, newest first.
func (r *ProfileRepo) ListAccounts(ctx context.Context) ([]AccountRow, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,email,created_at,first_name,last_name,role,status FROM profiles ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []AccountRow{}
	for rows.Next() {
		var a AccountRow
		if err := rows.Scan(&a.ID, &a.Email, &a.CreatedAt, &a.FirstName, &a.LastName, &a.Role, &a.Status); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Delete removes an account and every dependent row in one transaction.
// Film rows go too; the handler is responsible for removing the stored
// media objects it collected beforehand.
func (r *ProfileRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	// Films the user rated must have their aggregate recomputed once the
	// rating rows are gone; collect them before anything is deleted.  The
	// user's own films are in here too, but they are deleted below and the
	// refresh simply matches no row.
	rated, err := ratedFilmIDs(ctx, tx, id)
	if err != nil {
		return err
	}

	stmts := []string{
		"DELETE FROM ratings WHERE user_id=?",
		"DELETE FROM favorites WHERE user_id=?",
		"DELETE FROM watch_later WHERE user_id=?",
		"DELETE FROM comments WHERE user_id=?",
		"DELETE FROM refresh_tokens WHERE user_id=?",
		"DELETE FROM ratings WHERE film_id IN (SELECT id FROM films WHERE director_id=?)",
		"DELETE FROM favorites WHERE film_id IN (SELECT id FROM films WHERE director_id=?)",
		"DELETE FROM watch_later WHERE film_id IN (SELECT id FROM films WHERE director_id=?)",
		"DELETE FROM comments WHERE film_id IN (SELECT id FROM films WHERE director_id=?)",
		"DELETE FROM films WHERE director_id=?",
	}
	for _, q := range stmts {
		if _, err := tx.ExecContext(ctx, q, id); err != nil {
			return err
		}
	}
	for _, filmID := range rated {
		if err := refreshFilmAggregate(ctx, tx, filmID); err != nil {
			return err
		}
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM profiles WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}
