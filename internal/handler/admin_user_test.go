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

func newAdminUserTest(t *testing.T) (*AdminUserHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewAdminUserHandler(repository.NewProfileRepo(db), repository.NewFilmRepo(db), nil), mock
}

func adminUserRequest(method string, adminID uint64, targetID, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, "/v1/admin/users/"+targetID, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(targetID)
	c.Set("user_id", adminID)
	return c, rec
}

func TestAdminCannotBanSelf(t *testing.T) {
	h, mock := newAdminUserTest(t)

	c, rec := adminUserRequest(http.MethodPatch, 1, "1", `{"status":"banned"}`)
	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminCannotDemoteSelf(t *testing.T) {
	h, mock := newAdminUserTest(t)

	c, rec := adminUserRequest(http.MethodPatch, 1, "1", `{"role":"user"}`)
	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminCannotDeleteSelf(t *testing.T) {
	h, mock := newAdminUserTest(t)

	c, rec := adminUserRequest(http.MethodDelete, 1, "1", "")
	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminUpdateRejectsUnknownStatus(t *testing.T) {
	h, mock := newAdminUserTest(t)

	c, rec := adminUserRequest(http.MethodPatch, 1, "5", `{"status":"disabled"}`)
	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminUpdateEmptyBody(t *testing.T) {
	h, mock := newAdminUserTest(t)

	c, rec := adminUserRequest(http.MethodPatch, 1, "5", `{}`)
	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminBanOtherUser(t *testing.T) {
	h, mock := newAdminUserTest(t)

	mock.ExpectExec("UPDATE profiles SET status").
		WithArgs(model.StatusBanned, uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	c, rec := adminUserRequest(http.MethodPatch, 1, "5", `{"status":"banned"}`)
	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
