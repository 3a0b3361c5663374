package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelcampus/student-film-platform/internal/model"
	"github.com/reelcampus/student-film-platform/internal/repository"
)

func newRatingTest(t *testing.T) (*RatingHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRatingHandler(repository.NewRatingRepo(db), repository.NewFilmRepo(db)), mock
}

func ratingRequest(uid uint64, filmID, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/v1/films/"+filmID+"/rating", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(filmID)
	c.Set("user_id", uid)
	return c, rec
}

func filmRows(status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "title", "synopsis", "category_id", "language",
		"duration_seconds", "release_date", "tags", "thumbnail_url", "video_url", "status",
		"director_id", "rating_sum", "rating_count", "created_at", "updated_at"}).
		AddRow(7, "Night Bus", "a ride home", 2, "en", 720, "2026-02-01", "",
			"", "", status, 9, 8, 2, testTime(), testTime())
}

func TestRateScoreOutOfRange(t *testing.T) {
	h, mock := newRatingTest(t)

	for _, body := range []string{`{"score":0}`, `{"score":6}`} {
		c, rec := ratingRequest(3, "7", body)
		require.NoError(t, h.Rate(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRatePendingFilmHidden(t *testing.T) {
	h, mock := newRatingTest(t)

	mock.ExpectQuery("SELECT .+ FROM films WHERE id=").
		WithArgs(uint64(7)).
		WillReturnRows(filmRows(model.FilmPending))

	c, rec := ratingRequest(3, "7", `{"score":4}`)
	require.NoError(t, h.Rate(c))
	// Unapproved films read as missing to everyone but their director.
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRateApprovedFilm(t *testing.T) {
	h, mock := newRatingTest(t)

	mock.ExpectQuery("SELECT .+ FROM films WHERE id=").
		WithArgs(uint64(7)).
		WillReturnRows(filmRows(model.FilmApproved))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO ratings").
		WithArgs(uint64(7), uint64(3), uint8(4)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE films f SET").
		WithArgs(uint64(7), uint64(7), uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT rating_sum, rating_count FROM films").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"rating_sum", "rating_count"}).AddRow(12, 3))

	c, rec := ratingRequest(3, "7", `{"score":4}`)
	require.NoError(t, h.Rate(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"average":4`)
	assert.Contains(t, rec.Body.String(), `"count":3`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAverage(t *testing.T) {
	assert.Equal(t, 0.0, average(0, 0))
	assert.Equal(t, 4.0, average(12, 3))
	assert.InDelta(t, 4.33, average(13, 3), 0.01)
}
