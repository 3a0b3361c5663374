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

func newPagesTest(t *testing.T) (*PagesHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPagesHandler(repository.NewMessageRepo(db)), mock
}

func TestGetPage(t *testing.T) {
	h, _ := newPagesTest(t)
	e := echo.New()

	for _, slug := range []string{"about", "terms", "privacy", "faq", "donation"} {
		req := httptest.NewRequest(http.MethodGet, "/v1/pages/"+slug, nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("slug")
		c.SetParamValues(slug)

		require.NoError(t, h.GetPage(c))
		assert.Equal(t, http.StatusOK, rec.Code, slug)
		assert.Contains(t, rec.Body.String(), `"slug":"`+slug+`"`)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/pages/pricing", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("slug")
	c.SetParamValues("pricing")
	require.NoError(t, h.GetPage(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestContactStoresMessage(t *testing.T) {
	h, mock := newPagesTest(t)

	mock.ExpectExec("INSERT INTO contact_messages").
		WithArgs(model.MessageContact, "Jane", "jane@stanford.edu", "hello", "love the platform").
		WillReturnResult(sqlmock.NewResult(4, 1))

	c, rec := postJSON("/v1/contact", `{
		"name":"Jane","email":"jane@stanford.edu",
		"subject":"hello","body":"love the platform"}`)

	require.NoError(t, h.Contact(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":4`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportProblemRequiresBody(t *testing.T) {
	h, mock := newPagesTest(t)

	c, rec := postJSON("/v1/report-problem", `{"email":"jane@stanford.edu"}`)

	require.NoError(t, h.ReportProblem(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
