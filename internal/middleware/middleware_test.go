package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cypheredvortex/mern-social-media-sub000/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "viewer-secret"

func signed(t *testing.T, key string, expires time.Time) string {
	t.Helper()
	claims := &models.JwtCustomClaims{
		UserID: "65a000000000000000000001",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return token
}

func serveViewer(header string) (*httptest.ResponseRecorder, *models.JwtCustomClaims) {
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler

	var seen *models.JwtCustomClaims
	e.GET("/", func(c echo.Context) error {
		seen, _ = ViewerClaims(c)
		return c.NoContent(http.StatusNoContent)
	}, Viewer(secret))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec, seen
}

func TestViewer(t *testing.T) {
	t.Run("anonymous", func(t *testing.T) {
		rec, claims := serveViewer("")
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Nil(t, claims)
	})

	t.Run("valid token", func(t *testing.T) {
		rec, claims := serveViewer("Bearer " + signed(t, secret, time.Now().Add(time.Hour)))
		assert.Equal(t, http.StatusNoContent, rec.Code)
		require.NotNil(t, claims)
		assert.Equal(t, "65a000000000000000000001", claims.UserID)
	})

	for name, header := range map[string]string{
		"malformed header": "Token abc",
		"wrong key":        "Bearer " + signed(t, "other", time.Now().Add(time.Hour)),
		"expired":          "Bearer " + signed(t, secret, time.Now().Add(-time.Hour)),
	} {
		t.Run(name, func(t *testing.T) {
			rec, claims := serveViewer(header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Nil(t, claims)
		})
	}
}

func TestErrorHandler(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler
	e.GET("/bad", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid limit")
	})
	e.GET("/boom", func(c echo.Context) error {
		return errors.New("connection reset by peer")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bad", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Invalid limit"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Internal server error"}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "connection reset")

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetricsKeepsStatus(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler
	e.Use(Metrics())
	e.GET("/posts/:id", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/posts/1", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Post not found"}`, rec.Body.String())
}
