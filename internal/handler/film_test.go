package handler

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelcampus/student-film-platform/internal/repository"
	"github.com/reelcampus/student-film-platform/internal/storage"
)

// fakeMedia is an in-memory MediaStore that records uploads and deletes
// and can be told to fail a given bucket.
type fakeMedia struct {
	failBucket string
	uploaded   []*storage.StoredFile
	deleted    []string // "bucket/id"
}

func (m *fakeMedia) Upload(_ context.Context, bucket, filename, mimeType string, uploaderID uint64, content io.Reader) (*storage.StoredFile, error) {
	if bucket == m.failBucket {
		return nil, errors.New("bucket unavailable")
	}
	_, _ = io.Copy(io.Discard, content)
	f := &storage.StoredFile{
		ID:         fmt.Sprintf("obj-%d", len(m.uploaded)+1),
		Bucket:     bucket,
		Filename:   filename,
		MimeType:   mimeType,
		UploadedBy: uploaderID,
	}
	m.uploaded = append(m.uploaded, f)
	return f, nil
}

func (m *fakeMedia) Open(context.Context, string, string) (io.ReadCloser, *storage.StoredFile, error) {
	return nil, nil, errors.New("not stored")
}

func (m *fakeMedia) Delete(_ context.Context, bucket, fileID string) error {
	m.deleted = append(m.deleted, bucket+"/"+fileID)
	return nil
}

func newFilmTest(t *testing.T) (*FilmHandler, sqlmock.Sqlmock, *fakeMedia) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	media := &fakeMedia{}
	cfg := testConfig()
	cfg.MaxImageBytes = 1 << 20
	cfg.MaxVideoBytes = 1 << 20
	h := NewFilmHandler(cfg, repository.NewFilmRepo(db), repository.NewCategoryRepo(db),
		repository.NewProfileRepo(db), media)
	return h, mock, media
}

// uploadRequest builds a multipart POST /v1/films with the standard form
// fields plus thumbnail and video files.
func uploadRequest(t *testing.T, uid uint64) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	fields := map[string]string{
		"title":            "First Light",
		"synopsis":         "A dawn shot on campus.",
		"category_id":      "2",
		"language":         "en",
		"duration_minutes": "12",
	}
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for field, name := range map[string]string{"thumbnail": "poster.jpg", "video": "cut.mp4"} {
		fw, err := w.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = fw.Write([]byte("payload"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/films", &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", uid)
	return c, rec
}

func expectCategoryExists(mock sqlmock.Sqlmock, id uint64) {
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM categories WHERE id=? LIMIT 1")).
		WithArgs(id).WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
}

func TestUploadCreatesPendingFilm(t *testing.T) {
	h, mock, media := newFilmTest(t)
	c, rec := uploadRequest(t, 4)

	expectCategoryExists(mock, 2)
	mock.ExpectExec("INSERT INTO films").
		WithArgs("First Light", "A dawn shot on campus.", uint64(2), "en", uint32(720), "",
			"", sqlmock.AnyArg(), sqlmock.AnyArg(), "pending", uint64(4)).
		WillReturnResult(sqlmock.NewResult(31, 1))
	// The submitted event enriches with the director's name; returning no
	// row skips the publish without failing the upload.
	mock.ExpectQuery("SELECT .* FROM profiles WHERE id").WithArgs(uint64(4)).
		WillReturnError(sql.ErrNoRows)

	require.NoError(t, h.Upload(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"pending"`)
	assert.Len(t, media.uploaded, 2)
	assert.Empty(t, media.deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUploadVideoFailureRemovesThumbnail(t *testing.T) {
	h, mock, media := newFilmTest(t)
	c, rec := uploadRequest(t, 4)

	expectCategoryExists(mock, 2)
	media.failBucket = storage.BucketVideos

	require.NoError(t, h.Upload(c))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	// The thumbnail stored in step 1 must not be left behind.
	require.Len(t, media.uploaded, 1)
	assert.Equal(t, []string{storage.BucketThumbnails + "/" + media.uploaded[0].ID}, media.deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUploadInsertFailureRemovesStoredObjects(t *testing.T) {
	h, mock, media := newFilmTest(t)
	c, rec := uploadRequest(t, 4)

	expectCategoryExists(mock, 2)
	mock.ExpectExec("INSERT INTO films").WillReturnError(errors.New("disk full"))

	require.NoError(t, h.Upload(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Len(t, media.uploaded, 2)
	assert.ElementsMatch(t, []string{
		storage.BucketThumbnails + "/" + media.uploaded[0].ID,
		storage.BucketVideos + "/" + media.uploaded[1].ID,
	}, media.deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
