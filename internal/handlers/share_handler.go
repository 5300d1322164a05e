package handlers

import (
	"net/http"

	"github.com/cypheredvortex/mern-social-media-sub000/internal/activity"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/models"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/repositories"
	"github.com/labstack/echo/v4"
)

// ShareHandler handles HTTP requests related to shares
type ShareHandler struct {
	shares   repositories.Store[models.Share]
	posts    repositories.CounterStore[models.Post]
	recorder *activity.Recorder
}

// NewShareHandler creates a new ShareHandler
func NewShareHandler(shares repositories.Store[models.Share], posts repositories.CounterStore[models.Post], recorder *activity.Recorder) *ShareHandler {
	return &ShareHandler{shares: shares, posts: posts, recorder: recorder}
}

// RegisterShareRoutes registers share-related routes
func (h *ShareHandler) RegisterShareRoutes(g *echo.Group) {
	g.GET("/shares", h.GetShares)
	g.GET("/shares/:id", h.GetShare)
	g.POST("/shares", h.CreateShare)
	g.PUT("/shares/:id", h.UpdateShare)
	g.DELETE("/shares/:id", h.DeleteShare)
}

func (h *ShareHandler) GetShares(c echo.Context) error {
	return listRecords(c, h.shares, ref("user_id"), ref("post_id"))
}

func (h *ShareHandler) GetShare(c echo.Context) error {
	return getRecord(c, h.shares, "Share")
}

func (h *ShareHandler) CreateShare(c echo.Context) error {
	var req models.CreateShareRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	shared, err := exists(c, h.shares, repositories.Filter{"user_id": req.UserID, "post_id": req.PostID})
	if err != nil {
		return err
	}
	if shared {
		return conflict("Post already shared by this user")
	}

	share := &models.Share{UserID: req.UserID, PostID: req.PostID}
	ctx := c.Request().Context()
	if err := h.shares.Create(ctx, share); err != nil {
		return err
	}

	activity.Bump[models.Post](ctx, h.posts, share.PostID, "share_count", 1)
	h.recorder.Log(ctx, share.UserID, models.ActionSharedPost, &share.PostID)
	return c.JSON(http.StatusCreated, share)
}

func (h *ShareHandler) UpdateShare(c echo.Context) error {
	var req models.UpdateShareRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	share, err := updateRecord(c, h.shares, "Share", &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, share)
}

func (h *ShareHandler) DeleteShare(c echo.Context) error {
	share, err := deleteRecord(c, h.shares, "Share")
	if err != nil {
		return err
	}
	activity.Bump[models.Post](c.Request().Context(), h.posts, share.PostID, "share_count", -1)
	return deleted(c, "Share")
}
