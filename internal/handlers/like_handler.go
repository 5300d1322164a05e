package handlers

import (
	"context"
	"net/http"

	"github.com/cypheredvortex/mern-social-media-sub000/internal/activity"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/models"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/repositories"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	likes    repositories.Store[models.Like]
	posts    repositories.CounterStore[models.Post]
	comments repositories.CounterStore[models.Comment]
	recorder *activity.Recorder
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(
	likes repositories.Store[models.Like],
	posts repositories.CounterStore[models.Post],
	comments repositories.CounterStore[models.Comment],
	recorder *activity.Recorder,
) *LikeHandler {
	return &LikeHandler{
		likes:    likes,
		posts:    posts,
		comments: comments,
		recorder: recorder,
	}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.GET("/likes", h.GetLikes)
	g.GET("/likes/:id", h.GetLike)
	g.POST("/likes", h.CreateLike)
	g.PUT("/likes/:id", h.UpdateLike)
	g.DELETE("/likes/:id", h.DeleteLike)
}

func (h *LikeHandler) GetLikes(c echo.Context) error {
	return listRecords(c, h.likes, ref("user_id"), ref("target_id"), text("target_type"))
}

func (h *LikeHandler) GetLike(c echo.Context) error {
	return getRecord(c, h.likes, "Like")
}

// CreateLike likes a post, comment or reply. The duplicate check is not atomic with the
// insert, so two concurrent requests can both succeed.
func (h *LikeHandler) CreateLike(c echo.Context) error {
	var req models.CreateLikeRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	liked, err := exists(c, h.likes, repositories.Filter{
		"user_id":     req.UserID,
		"target_id":   req.TargetID,
		"target_type": req.TargetType,
	})
	if err != nil {
		return err
	}
	if liked {
		return conflict("Already liked")
	}

	like := &models.Like{
		UserID:     req.UserID,
		TargetID:   req.TargetID,
		TargetType: req.TargetType,
	}
	ctx := c.Request().Context()
	if err := h.likes.Create(ctx, like); err != nil {
		return err
	}

	h.adjust(ctx, like, 1)
	if like.OnComment() {
		if comment, err := h.comments.GetByID(ctx, like.TargetID.Hex()); err == nil {
			h.recorder.Notify(ctx, comment.AuthorID, like.UserID, models.NotificationLike, &comment.ID, "liked your comment")
		}
	} else {
		h.recorder.Log(ctx, like.UserID, models.ActionLikedPost, &like.TargetID)
		if post, err := h.posts.GetByID(ctx, like.TargetID.Hex()); err == nil {
			h.recorder.Notify(ctx, post.AuthorID, like.UserID, models.NotificationLike, &post.ID, "liked your post")
		}
	}
	return c.JSON(http.StatusCreated, like)
}

// UpdateLike changes a like's target type. When the like moves between a post and a
// comment, the like_count moves with it.
func (h *LikeHandler) UpdateLike(c echo.Context) error {
	var req models.UpdateLikeRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()
	before, err := h.likes.GetByID(ctx, c.Param("id"))
	if err != nil {
		return storeError(err, "Like")
	}
	like, err := updateRecord(c, h.likes, "Like", &req)
	if err != nil {
		return err
	}
	if before.OnComment() != like.OnComment() {
		h.adjust(ctx, before, -1)
		h.adjust(ctx, like, 1)
	}
	return c.JSON(http.StatusOK, like)
}

// DeleteLike removes the like and decrements the liked record's counter
func (h *LikeHandler) DeleteLike(c echo.Context) error {
	like, err := deleteRecord(c, h.likes, "Like")
	if err != nil {
		return err
	}
	h.adjust(c.Request().Context(), like, -1)
	return deleted(c, "Like")
}

func (h *LikeHandler) adjust(ctx context.Context, like *models.Like, delta int) {
	if like.OnComment() {
		activity.Bump[models.Comment](ctx, h.comments, like.TargetID, "like_count", delta)
		return
	}
	activity.Bump[models.Post](ctx, h.posts, like.TargetID, "like_count", delta)
}
