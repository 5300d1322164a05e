package handlers

import (
	"errors"
	"net/http"

	"github.com/cypheredvortex/mern-social-media-sub000/internal/models"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/repositories"
	"github.com/labstack/echo/v4"
)

// UserSettingsHandler handles HTTP requests related to user settings
type UserSettingsHandler struct {
	settings repositories.Store[models.UserSettings]
}

// NewUserSettingsHandler creates a new UserSettingsHandler
func NewUserSettingsHandler(settings repositories.Store[models.UserSettings]) *UserSettingsHandler {
	return &UserSettingsHandler{settings: settings}
}

// RegisterUserSettingsRoutes registers user-settings routes
func (h *UserSettingsHandler) RegisterUserSettingsRoutes(g *echo.Group) {
	g.GET("/user-settings", h.GetAllSettings)
	g.GET("/user-settings/user/:userId", h.GetSettingsByUser)
	g.GET("/user-settings/:id", h.GetSettings)
	g.POST("/user-settings", h.CreateSettings)
	g.PUT("/user-settings/:id", h.UpdateSettings)
	g.DELETE("/user-settings/:id", h.DeleteSettings)
}

func (h *UserSettingsHandler) GetAllSettings(c echo.Context) error {
	return listRecords(c, h.settings, ref("user_id"))
}

func (h *UserSettingsHandler) GetSettings(c echo.Context) error {
	return getRecord(c, h.settings, "Settings")
}

func (h *UserSettingsHandler) GetSettingsByUser(c echo.Context) error {
	userID, err := pathID(c, "userId", "Settings")
	if err != nil {
		return err
	}
	settings, err := h.settings.FindOne(c.Request().Context(), repositories.Filter{"user_id": userID})
	if err != nil {
		return storeError(err, "Settings")
	}
	return c.JSON(http.StatusOK, settings)
}

func (h *UserSettingsHandler) CreateSettings(c echo.Context) error {
	var req models.CreateUserSettingsRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	taken, err := exists(c, h.settings, repositories.Filter{"user_id": req.UserID})
	if err != nil {
		return err
	}
	if taken {
		return conflict("Settings already exist for this user")
	}

	settings := &models.UserSettings{
		UserID:               req.UserID,
		DarkMode:             req.DarkMode,
		Language:             req.Language,
		NotificationsEnabled: true,
		PrivacyVisibility:    req.PrivacyVisibility,
	}
	if req.NotificationsEnabled != nil {
		settings.NotificationsEnabled = *req.NotificationsEnabled
	}
	if settings.Language == "" {
		settings.Language = "en"
	}
	if settings.PrivacyVisibility == "" {
		settings.PrivacyVisibility = models.VisibilityPublic
	}

	if err := h.settings.Create(c.Request().Context(), settings); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return conflict("Settings already exist for this user")
		}
		return err
	}
	return c.JSON(http.StatusCreated, settings)
}

func (h *UserSettingsHandler) UpdateSettings(c echo.Context) error {
	var req models.UpdateUserSettingsRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	settings, err := updateRecord(c, h.settings, "Settings", &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, settings)
}

func (h *UserSettingsHandler) DeleteSettings(c echo.Context) error {
	if _, err := deleteRecord(c, h.settings, "Settings"); err != nil {
		return err
	}
	return deleted(c, "Settings")
}
