package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelcampus/student-film-platform/internal/model"
)

func newProfileMock(t *testing.T) (*ProfileRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewProfileRepo(db), mock
}

func TestProfileCreateNormalizesEmail(t *testing.T) {
	repo, mock := newProfileMock(t)

	mock.ExpectExec("INSERT INTO profiles").
		WithArgs("jane@stanford.edu", sqlmock.AnyArg(), "Jane", "Doe", "", "Film Studies",
			model.RoleUser, model.StatusPending).
		WillReturnResult(sqlmock.NewResult(12, 1))

	id, err := repo.Create(context.Background(), NewProfile{
		Email:        "  Jane@Stanford.EDU ",
		Password:     "s3cret!",
		FirstName:    "Jane",
		LastName:     "Doe",
		FieldOfStudy: "Film Studies",
	}, 4)
	require.NoError(t, err)
	assert.EqualValues(t, 12, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileCreateDuplicateEmail(t *testing.T) {
	repo, mock := newProfileMock(t)

	mock.ExpectExec("INSERT INTO profiles").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'jane@stanford.edu' for key 'profiles.email'"))

	_, err := repo.Create(context.Background(), NewProfile{
		Email:    "jane@stanford.edu",
		Password: "s3cret!",
	}, 4)
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestProfileUpdateStatusNotFound(t *testing.T) {
	repo, mock := newProfileMock(t)

	mock.ExpectExec("UPDATE profiles SET status").
		WithArgs(model.StatusBanned, uint64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT 1 FROM profiles WHERE id=? LIMIT 1")).
		WithArgs(uint64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}))

	err := repo.UpdateStatus(context.Background(), 99, model.StatusBanned)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProfileUpdateStatusSameValueIsNoop(t *testing.T) {
	repo, mock := newProfileMock(t)

	mock.ExpectExec("UPDATE profiles SET status").
		WithArgs(model.StatusActive, uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT 1 FROM profiles WHERE id=? LIMIT 1")).
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	assert.NoError(t, repo.UpdateStatus(context.Background(), 5, model.StatusActive))
}

func TestProfileGetRole(t *testing.T) {
	repo, mock := newProfileMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT role FROM profiles WHERE id=? LIMIT 1")).
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"role"}).AddRow(model.RoleAdmin))

	role, err := repo.GetRole(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, role)
}

func TestProfileDeleteCascades(t *testing.T) {
	repo, mock := newProfileMock(t)

	mock.ExpectBegin()
	// Films the user rated are snapshotted first so their aggregates can be
	// refreshed once the rating rows are gone; none here.
	mock.ExpectQuery("SELECT DISTINCT film_id FROM ratings WHERE user_id").WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"film_id"}))
	// Rows keyed by the user, then rows keyed by the user's films, then the
	// films themselves, then the profile.
	mock.ExpectExec("DELETE FROM ratings WHERE user_id").WithArgs(uint64(5)).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM favorites WHERE user_id").WithArgs(uint64(5)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM watch_later WHERE user_id").WithArgs(uint64(5)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM comments WHERE user_id").WithArgs(uint64(5)).WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM refresh_tokens WHERE user_id").WithArgs(uint64(5)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM ratings WHERE film_id IN").WithArgs(uint64(5)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM favorites WHERE film_id IN").WithArgs(uint64(5)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM watch_later WHERE film_id IN").WithArgs(uint64(5)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM comments WHERE film_id IN").WithArgs(uint64(5)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM films WHERE director_id").WithArgs(uint64(5)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM profiles WHERE id").WithArgs(uint64(5)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), 5)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileDeleteRefreshesRatedFilmAggregates(t *testing.T) {
	repo, mock := newProfileMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT DISTINCT film_id FROM ratings WHERE user_id").WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"film_id"}).AddRow(3).AddRow(8))
	for range [10]struct{}{} {
		mock.ExpectExec("DELETE FROM").WithArgs(uint64(5)).WillReturnResult(sqlmock.NewResult(0, 1))
	}
	// One aggregate refresh per rated film, after the rating rows are gone.
	// A rated film the user also directed was deleted above and matches
	// nothing, which is fine.
	mock.ExpectExec("UPDATE films f SET").WithArgs(uint64(3), uint64(3), uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE films f SET").WithArgs(uint64(8), uint64(8), uint64(8)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM profiles WHERE id").WithArgs(uint64(5)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), 5)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileDeleteMissing(t *testing.T) {
	repo, mock := newProfileMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT DISTINCT film_id FROM ratings WHERE user_id").WithArgs(uint64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"film_id"}))
	for range [10]struct{}{} {
		mock.ExpectExec("DELETE FROM").WithArgs(uint64(99)).WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectExec("DELETE FROM profiles WHERE id").WithArgs(uint64(99)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}
