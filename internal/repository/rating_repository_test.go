package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelcampus/student-film-platform/internal/model"
)

func newRatingMock(t *testing.T) (*RatingRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRatingRepo(db), mock
}

func TestRatingUpsertRefreshesAggregate(t *testing.T) {
	repo, mock := newRatingMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO ratings (film_id, user_id, score) VALUES (?,?,?) ON DUPLICATE KEY UPDATE score=VALUES(score)")).
		WithArgs(uint64(7), uint64(3), uint8(5)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE films f SET").
		WithArgs(uint64(7), uint64(7), uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Upsert(context.Background(), model.Rating{FilmID: 7, UserID: 3, Score: 5})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRatingUpsertSameScoreSucceeds(t *testing.T) {
	repo, mock := newRatingMock(t)

	// Re-submitting an identical score touches the row (2 on duplicate) and
	// leaves the aggregate unchanged (0 rows affected). Both are fine.
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO ratings (film_id, user_id, score) VALUES (?,?,?) ON DUPLICATE KEY UPDATE score=VALUES(score)")).
		WithArgs(uint64(7), uint64(3), uint8(4)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("UPDATE films f SET").
		WithArgs(uint64(7), uint64(7), uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.Upsert(context.Background(), model.Rating{FilmID: 7, UserID: 3, Score: 4})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRatingUpsertRollsBackOnAggregateError(t *testing.T) {
	repo, mock := newRatingMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO ratings (film_id, user_id, score) VALUES (?,?,?) ON DUPLICATE KEY UPDATE score=VALUES(score)")).
		WithArgs(uint64(7), uint64(3), uint8(2)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE films f SET").
		WithArgs(uint64(7), uint64(7), uint64(7)).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.Upsert(context.Background(), model.Rating{FilmID: 7, UserID: 3, Score: 2})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRatingUserScoreUnrated(t *testing.T) {
	repo, mock := newRatingMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT score FROM ratings WHERE film_id=? AND user_id=? LIMIT 1")).
		WithArgs(uint64(7), uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"score"}))

	score, err := repo.UserScore(context.Background(), 7, 3)
	assert.NoError(t, err)
	assert.EqualValues(t, 0, score)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRatingAggregate(t *testing.T) {
	repo, mock := newRatingMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT rating_sum, rating_count FROM films WHERE id=? LIMIT 1")).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"rating_sum", "rating_count"}).AddRow(17, 4))

	sum, count, err := repo.Aggregate(context.Background(), 7)
	require.NoError(t, err)
	assert.EqualValues(t, 17, sum)
	assert.EqualValues(t, 4, count)
}

func TestRatingAggregateMissingFilm(t *testing.T) {
	repo, mock := newRatingMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT rating_sum, rating_count FROM films WHERE id=? LIMIT 1")).
		WithArgs(uint64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"rating_sum", "rating_count"}))

	_, _, err := repo.Aggregate(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}
