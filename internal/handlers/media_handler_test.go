package handlers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cypheredvortex/mern-social-media-sub000/internal/middleware"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/models"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/repositories/repotest"
	"github.com/cypheredvortex/mern-social-media-sub000/pkg/storage"
	"github.com/cypheredvortex/mern-social-media-sub000/validators"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) Upload(ctx context.Context, folder, fileName string, file io.Reader, size int64) (*storage.Object, error) {
	// drain so the handler sees a complete read
	_, _ = io.Copy(io.Discard, file)
	args := m.Called(ctx, folder, fileName, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.Object), args.Error(1)
}

func (m *MockObjectStore) Remove(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func uploadRequest(t *testing.T, fields map[string]string, fileName string, content []byte) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileName != "" {
		part, err := w.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/media/upload", body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

func newMediaServer(media *repotest.Store[models.Media], objects storage.ObjectStore, maxSize int64) *echo.Echo {
	e := echo.New()
	e.Validator = validators.NewValidator()
	e.HTTPErrorHandler = middleware.ErrorHandler
	NewMediaHandler(media, objects, maxSize).RegisterMediaRoutes(e.Group("/api"))
	return e
}

func TestUploadMedia(t *testing.T) {
	media := repotest.NewStore[models.Media]()
	objects := new(MockObjectStore)
	e := newMediaServer(media, objects, 1<<20)

	uploader := primitive.NewObjectID()
	post := primitive.NewObjectID()
	objects.On("Upload", mock.Anything, "media", "cat.png", int64(len(pngHeader))).Return(&storage.Object{
		Key:         "media/2024/01/abc.png",
		URL:         "http://minio:9000/media/media/2024/01/abc.png",
		ContentType: "image/png",
		Kind:        models.MediaImage,
		Size:        int64(len(pngHeader)),
	}, nil)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, uploadRequest(t, map[string]string{
		"uploader_id": uploader.Hex(),
		"post_id":     post.Hex(),
	}, "cat.png", pngHeader))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	stored := media.All()
	require.Len(t, stored, 1)
	assert.Equal(t, uploader, stored[0].UploaderID)
	require.NotNil(t, stored[0].PostID)
	assert.Equal(t, post, *stored[0].PostID)
	assert.Equal(t, models.MediaImage, stored[0].Type)
	assert.Equal(t, "http://minio:9000/media/media/2024/01/abc.png", stored[0].URL)
	objects.AssertExpectations(t)
}

func TestUploadMediaRejectsBadInput(t *testing.T) {
	media := repotest.NewStore[models.Media]()
	objects := new(MockObjectStore)
	e := newMediaServer(media, objects, 8)
	uploader := primitive.NewObjectID().Hex()

	tests := []struct {
		name    string
		fields  map[string]string
		file    string
		message string
	}{
		{"missing uploader", map[string]string{}, "a.png", "Invalid uploader_id"},
		{"bad post id", map[string]string{"uploader_id": uploader, "post_id": "x"}, "a.png", "Invalid post_id"},
		{"no file", map[string]string{"uploader_id": uploader}, "", "File is required"},
		{"too large", map[string]string{"uploader_id": uploader}, "a.png", "File exceeds the 8 byte upload limit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, uploadRequest(t, tt.fields, tt.file, pngHeader))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.message)
		})
	}
	assert.Empty(t, media.All())
	objects.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadMediaRemovesObjectWhenRecordFails(t *testing.T) {
	media := repotest.NewStore[models.Media]()
	media.FailOn("Create", errors.New("mongo down"))
	objects := new(MockObjectStore)
	e := newMediaServer(media, objects, 1<<20)

	objects.On("Upload", mock.Anything, "media", "cat.png", mock.Anything).Return(&storage.Object{Key: "media/k.png", Kind: models.MediaImage}, nil)
	objects.On("Remove", mock.Anything, "media/k.png").Return(nil)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, uploadRequest(t, map[string]string{"uploader_id": primitive.NewObjectID().Hex()}, "cat.png", pngHeader))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Internal server error")
	objects.AssertExpectations(t)
}

func TestUploadRouteOnlyWithObjectStore(t *testing.T) {
	e := newMediaServer(repotest.NewStore[models.Media](), nil, 1<<20)
	for _, r := range e.Routes() {
		assert.NotEqual(t, "/api/media/upload", r.Path)
	}
}
