package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelcampus/student-film-platform/internal/model"
	"github.com/reelcampus/student-film-platform/internal/repository"
)

func newPublicTest(t *testing.T) (*PublicHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &PublicHandler{
		Films:      repository.NewFilmRepo(db),
		Categories: repository.NewCategoryRepo(db),
	}, mock
}

func detailRows(status string, directorID uint64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "title", "synopsis", "category_id", "language",
		"duration_seconds", "release_date", "tags", "thumbnail_url", "video_url", "status",
		"director_id", "rating_sum", "rating_count", "created_at", "updated_at",
		"first_name", "last_name", "avatar_url", "name"}).
		AddRow(7, "Night Bus", "a ride home", 2, "en", 720, "2026-02-01", "drama,night",
			"/v1/media/film-thumbnails/a", "/v1/media/film-videos/b", status,
			directorID, 8, 2, testTime(), testTime(), "Jane", "Doe", "", "Drama")
}

func detailRequest(filmID string, setup func(c echo.Context)) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/films/"+filmID, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(filmID)
	if setup != nil {
		setup(c)
	}
	return c, rec
}

func TestGetFilmApprovedIsPublic(t *testing.T) {
	h, mock := newPublicTest(t)

	mock.ExpectQuery("FROM films f").
		WithArgs(uint64(7)).
		WillReturnRows(detailRows(model.FilmApproved, 9))

	c, rec := detailRequest("7", nil)
	require.NoError(t, h.GetFilm(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"director":"Jane Doe"`)
	assert.Contains(t, rec.Body.String(), `"rating_average":4`)
	// Approved films carry no status field in public responses.
	assert.NotContains(t, rec.Body.String(), `"status"`)
}

func TestGetFilmPendingHiddenFromPublic(t *testing.T) {
	h, mock := newPublicTest(t)

	mock.ExpectQuery("FROM films f").
		WithArgs(uint64(7)).
		WillReturnRows(detailRows(model.FilmPending, 9))

	c, rec := detailRequest("7", nil)
	require.NoError(t, h.GetFilm(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetFilmPendingVisibleToDirector(t *testing.T) {
	h, mock := newPublicTest(t)

	mock.ExpectQuery("FROM films f").
		WithArgs(uint64(7)).
		WillReturnRows(detailRows(model.FilmPending, 9))

	c, rec := detailRequest("7", func(c echo.Context) {
		c.Set("user_id", uint64(9))
		c.Set("role", model.RoleUser)
	})
	require.NoError(t, h.GetFilm(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"pending"`)
}

func TestGetFilmPendingHiddenFromOtherMember(t *testing.T) {
	h, mock := newPublicTest(t)

	mock.ExpectQuery("FROM films f").
		WithArgs(uint64(7)).
		WillReturnRows(detailRows(model.FilmPending, 9))

	c, rec := detailRequest("7", func(c echo.Context) {
		c.Set("user_id", uint64(3))
		c.Set("role", model.RoleUser)
	})
	require.NoError(t, h.GetFilm(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetFilmRejectedVisibleToAdmin(t *testing.T) {
	h, mock := newPublicTest(t)

	mock.ExpectQuery("FROM films f").
		WithArgs(uint64(7)).
		WillReturnRows(detailRows(model.FilmRejected, 9))

	c, rec := detailRequest("7", func(c echo.Context) {
		c.Set("user_id", uint64(1))
		c.Set("role", model.RoleAdmin)
	})
	require.NoError(t, h.GetFilm(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"rejected"`)
}

func TestSearchFilmsRequiresQuery(t *testing.T) {
	h, _ := newPublicTest(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/search/films", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, h.SearchFilms(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
