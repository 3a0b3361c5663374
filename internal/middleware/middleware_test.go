package middleware

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelcampus/student-film-platform/internal/model"
	"github.com/reelcampus/student-film-platform/internal/repository"
	"github.com/reelcampus/student-film-platform/internal/utils"
)

func okHandler(c echo.Context) error { return c.String(http.StatusOK, "ok") }

func runMiddleware(t *testing.T, mw echo.MiddlewareFunc, setup func(c echo.Context)) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if setup != nil {
		setup(c)
	}
	require.NoError(t, mw(okHandler)(c))
	return rec
}

func TestRequireRole(t *testing.T) {
	mw := RequireRole("admin")

	rec := runMiddleware(t, mw, func(c echo.Context) { c.Set("role", "admin") })
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = runMiddleware(t, mw, func(c echo.Context) { c.Set("role", "user") })
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = runMiddleware(t, mw, nil) // no role in context
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestJWTAuthValidToken(t *testing.T) {
	at, err := utils.NewAccessToken("secret", 42, "user", 5)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+at.Token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var gotID uint64
	var gotRole string
	next := func(c echo.Context) error {
		gotID, _ = userIDFrom(c)
		gotRole, _ = c.Get("role").(string)
		return c.NoContent(http.StatusOK)
	}
	require.NoError(t, JWTAuth("secret")(next)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 42, gotID)
	assert.Equal(t, "user", gotRole)
}

func TestJWTAuthRejectsBadToken(t *testing.T) {
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, JWTAuth("secret")(okHandler)(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	at, err := utils.NewAccessToken("other-secret", 42, "user", 5)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+at.Token)
	rec = httptest.NewRecorder()
	require.NoError(t, JWTAuth("secret")(okHandler)(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTOptionalWithoutToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, JWTOptional("secret")(okHandler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, c.Get("user_id"))
}

func TestJWTOptionalWithToken(t *testing.T) {
	at, err := utils.NewAccessToken("secret", 7, "admin", 5)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+at.Token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, JWTOptional("secret")(okHandler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	id, err := userIDFrom(c)
	require.NoError(t, err)
	assert.EqualValues(t, 7, id)
}

func TestRequireStoredAdmin(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mw := RequireStoredAdmin(repository.NewProfileRepo(db))

	// Token says admin but the stored row says user: demoted mid-session.
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT role FROM profiles WHERE id=? LIMIT 1")).
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"role"}).AddRow(model.RoleUser))
	rec := runMiddleware(t, mw, func(c echo.Context) { c.Set("user_id", uint64(5)) })
	assert.Equal(t, http.StatusForbidden, rec.Code)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT role FROM profiles WHERE id=? LIMIT 1")).
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"role"}).AddRow(model.RoleAdmin))
	rec = runMiddleware(t, mw, func(c echo.Context) { c.Set("user_id", uint64(5)) })
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = runMiddleware(t, mw, nil) // no identity at all
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCaptureWriterOverflowIsNotCacheable(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 8}
	_, _ = cw.Write([]byte("12345"))
	_, _ = cw.Write([]byte("6789"))

	// The client still receives the whole body; the capture holds only a
	// prefix and must report overflow so it is never stored.
	assert.Equal(t, "123456789", rec.Body.String())
	assert.Equal(t, "12345678", cw.buf.String())
	assert.True(t, cw.overflowed())
}

func TestCaptureWriterWithinLimit(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 32}
	_, _ = cw.Write([]byte("under the cap"))

	assert.Equal(t, "under the cap", cw.buf.String())
	assert.False(t, cw.overflowed())
}
