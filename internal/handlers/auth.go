package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/cypheredvortex/mern-social-media-sub000/internal/activity"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/models"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/repositories"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	users     repositories.Store[models.User]
	recorder  *activity.Recorder
	jwtSecret string
	tokenTTL  time.Duration
}

// NewAuthHandler creates a new AuthHandler. Tokens are issued only when jwtSecret is set.
func NewAuthHandler(users repositories.Store[models.User], recorder *activity.Recorder, jwtSecret string, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		users:     users,
		recorder:  recorder,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/users/login", h.Login)
}

type loginResponse struct {
	*models.User
	Token string `json:"token,omitempty"`
}

// Login checks an email and password and returns the user
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	user, err := h.users.FindOne(ctx, repositories.Filter{"email": req.Email})
	if errors.Is(err, repositories.ErrNotFound) {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	}
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	}

	resp := loginResponse{User: user}
	if h.jwtSecret != "" {
		token, err := h.generateJWT(user)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
		}
		resp.Token = token
	}

	h.recorder.Log(ctx, user.ID, models.ActionLogin, &user.ID)
	return c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) generateJWT(user *models.User) (string, error) {
	claims := &models.JwtCustomClaims{
		UserID: user.ID.Hex(),
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(h.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}
