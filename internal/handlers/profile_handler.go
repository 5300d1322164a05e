package handlers

import (
	"errors"
	"net/http"

	"github.com/cypheredvortex/mern-social-media-sub000/internal/activity"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/models"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/repositories"
	"github.com/labstack/echo/v4"
)

// ProfileHandler handles HTTP requests related to profiles
type ProfileHandler struct {
	profiles repositories.Store[models.Profile]
	recorder *activity.Recorder
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profiles repositories.Store[models.Profile], recorder *activity.Recorder) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, recorder: recorder}
}

// RegisterProfileRoutes registers profile-related routes
func (h *ProfileHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/profiles", h.GetProfiles)
	g.GET("/profiles/user/:userId", h.GetProfileByUser)
	g.GET("/profiles/:id", h.GetProfile)
	g.POST("/profiles", h.CreateProfile)
	g.PUT("/profiles/:id", h.UpdateProfile)
	g.DELETE("/profiles/:id", h.DeleteProfile)
}

func (h *ProfileHandler) GetProfiles(c echo.Context) error {
	return listRecords(c, h.profiles, ref("user_id"))
}

func (h *ProfileHandler) GetProfile(c echo.Context) error {
	return getRecord(c, h.profiles, "Profile")
}

// GetProfileByUser returns the profile owned by a user
func (h *ProfileHandler) GetProfileByUser(c echo.Context) error {
	userID, err := pathID(c, "userId", "Profile")
	if err != nil {
		return err
	}
	profile, err := h.profiles.FindOne(c.Request().Context(), repositories.Filter{"user_id": userID})
	if err != nil {
		return storeError(err, "Profile")
	}
	return c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) CreateProfile(c echo.Context) error {
	var req models.CreateProfileRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	taken, err := exists(c, h.profiles, repositories.Filter{"user_id": req.UserID})
	if err != nil {
		return err
	}
	if taken {
		return conflict("Profile already exists for this user")
	}

	profile := &models.Profile{
		UserID:         req.UserID,
		Bio:            req.Bio,
		ProfilePicture: req.ProfilePicture,
		CoverPhoto:     req.CoverPhoto,
		Location:       req.Location,
		Website:        req.Website,
		Birthdate:      req.Birthdate,
		Gender:         req.Gender,
		Interests:      req.Interests,
	}
	if err := h.profiles.Create(c.Request().Context(), profile); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return conflict("Profile already exists for this user")
		}
		return err
	}
	return c.JSON(http.StatusCreated, profile)
}

func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	var req models.UpdateProfileRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	profile, err := updateRecord(c, h.profiles, "Profile", &req)
	if err != nil {
		return err
	}

	h.recorder.Log(c.Request().Context(), profile.UserID, models.ActionUpdatedProfile, &profile.UserID)
	return c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) DeleteProfile(c echo.Context) error {
	if _, err := deleteRecord(c, h.profiles, "Profile"); err != nil {
		return err
	}
	return deleted(c, "Profile")
}
