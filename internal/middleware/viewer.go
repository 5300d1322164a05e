package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/cypheredvortex/mern-social-media-sub000/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

const viewerKey = "viewer"

// Viewer parses an optional "Bearer <token>" header. Requests without the header pass
// through anonymously; a present but invalid token is rejected with 401.
func Viewer(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" || secret == "" {
				return next(c)
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
			}

			claims, err := ParseToken(secret, parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			c.Set(viewerKey, claims)
			return next(c)
		}
	}
}

// ParseToken verifies an HS256 token and returns its claims
func ParseToken(secret, tokenString string) (*models.JwtCustomClaims, error) {
	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// ViewerClaims returns the claims stored by Viewer, if any
func ViewerClaims(c echo.Context) (*models.JwtCustomClaims, bool) {
	claims, ok := c.Get(viewerKey).(*models.JwtCustomClaims)
	return claims, ok
}
