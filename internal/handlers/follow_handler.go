package handlers

import (
	"errors"
	"net/http"

	"github.com/cypheredvortex/mern-social-media-sub000/internal/activity"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/models"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/repositories"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	follows  repositories.Store[models.Follow]
	recorder *activity.Recorder
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(follows repositories.Store[models.Follow], recorder *activity.Recorder) *FollowHandler {
	return &FollowHandler{
		follows:  follows,
		recorder: recorder,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.GET("/follows", h.GetFollows)
	g.GET("/follows/:id", h.GetFollow)
	g.POST("/follows", h.FollowUser)
	g.PUT("/follows/:id", h.UpdateFollow)
	g.DELETE("/follows/:id", h.UnfollowUser)
}

func (h *FollowHandler) GetFollows(c echo.Context) error {
	return listRecords(c, h.follows, ref("follower_id"), ref("followed_id"), text("status"))
}

func (h *FollowHandler) GetFollow(c echo.Context) error {
	return getRecord(c, h.follows, "Follow")
}

// FollowUser creates a follow request. New follows start as pending unless a status is given.
func (h *FollowHandler) FollowUser(c echo.Context) error {
	var req models.CreateFollowRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	if req.FollowerID == req.FollowedID {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot follow yourself")
	}

	// Check if already following
	following, err := exists(c, h.follows, repositories.Filter{
		"follower_id": req.FollowerID,
		"followed_id": req.FollowedID,
	})
	if err != nil {
		return err
	}
	if following {
		return conflict("Already following this user")
	}

	follow := &models.Follow{
		FollowerID: req.FollowerID,
		FollowedID: req.FollowedID,
		Status:     req.Status,
	}
	if follow.Status == "" {
		follow.Status = models.FollowPending
	}

	ctx := c.Request().Context()
	if err := h.follows.Create(ctx, follow); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return conflict("Already following this user")
		}
		return err
	}

	h.recorder.Log(ctx, follow.FollowerID, models.ActionFollowedUser, &follow.ID)
	h.recorder.Notify(ctx, follow.FollowedID, follow.FollowerID, models.NotificationFollow, &follow.ID, "started following you")
	return c.JSON(http.StatusCreated, follow)
}

// UpdateFollow changes the status of a follow, e.g. pending to accepted
func (h *FollowHandler) UpdateFollow(c echo.Context) error {
	var req models.UpdateFollowRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	follow, err := updateRecord(c, h.follows, "Follow", &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, follow)
}

// UnfollowUser removes a follow. The activity log points at the unfollowed user since the
// follow itself is gone.
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	follow, err := deleteRecord(c, h.follows, "Follow")
	if err != nil {
		return err
	}
	h.recorder.Log(c.Request().Context(), follow.FollowerID, models.ActionUnfollowedUser, &follow.FollowedID)
	return deleted(c, "Follow")
}
