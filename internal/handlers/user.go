package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/cypheredvortex/mern-social-media-sub000/internal/cache"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/cascade"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/models"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/repositories"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

// UserHandler handles HTTP requests related to users
type UserHandler struct {
	users     repositories.SearchStore[models.User]
	directory *cache.Directory
	cascade   *cascade.Service
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users repositories.SearchStore[models.User], directory *cache.Directory, accounts *cascade.Service) *UserHandler {
	return &UserHandler{users: users, directory: directory, cascade: accounts}
}

// RegisterUserRoutes registers user-related routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/users", h.GetUsers)
	g.GET("/users/search", h.SearchUsers)
	g.GET("/users/:id", h.GetUser)
	g.POST("/users", h.CreateUser)
	g.PUT("/users/:id", h.UpdateUser)
	g.DELETE("/users/:id", h.DeleteUser)
	g.DELETE("/users/:id/account", h.DeleteAccount)
}

func (h *UserHandler) GetUsers(c echo.Context) error {
	return listRecords[models.User](c, h.users, text("role"), text("status"))
}

func (h *UserHandler) GetUser(c echo.Context) error {
	return getRecord[models.User](c, h.users, "User")
}

// SearchUsers matches q case-insensitively against username, email and role
func (h *UserHandler) SearchUsers(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Search query is required")
	}

	users, err := h.users.Search(c.Request().Context(), q, "username", "email", "role")
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// CreateUser registers a user. The password is stored as a bcrypt hash.
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req models.CreateUserRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	taken, err := exists[models.User](c, h.users, repositories.Filter{"email": req.Email})
	if err != nil {
		return err
	}
	if taken {
		return conflict("User with this email already registered")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
		Role:     req.Role,
		Status:   req.Status,
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	if user.Status == "" {
		user.Status = models.StatusActive
	}

	if err := h.users.Create(c.Request().Context(), user); err != nil {
		return storeError(err, "User")
	}
	return c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) UpdateUser(c echo.Context) error {
	var req models.UpdateUserRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if req.Password != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
		}
		hashed := string(hashedPassword)
		req.Password = &hashed
	}

	user, err := updateRecord[models.User](c, h.users, "User", &req)
	if err != nil {
		return err
	}
	h.directory.Invalidate(c.Request().Context(), user.ID)
	return c.JSON(http.StatusOK, user)
}

// DeleteUser removes only the user record. Use DeleteAccount to remove what the user owns.
func (h *UserHandler) DeleteUser(c echo.Context) error {
	user, err := deleteRecord[models.User](c, h.users, "User")
	if err != nil {
		return err
	}
	h.directory.Invalidate(c.Request().Context(), user.ID)
	return deleted(c, "User")
}

// DeleteAccount removes the user with their posts, interactions, profile and settings.
// Either everything is removed or nothing is.
func (h *UserHandler) DeleteAccount(c echo.Context) error {
	user, err := h.cascade.DeleteAccount(c.Request().Context(), c.Param("id"))
	if errors.Is(err, repositories.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}
	if err != nil {
		return err
	}
	h.directory.Invalidate(c.Request().Context(), user.ID)
	return c.JSON(http.StatusOK, echo.Map{"message": "Account deleted successfully"})
}
