package handlers

import (
	"net/http"

	"github.com/cypheredvortex/mern-social-media-sub000/internal/activity"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/models"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/repositories"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	comments repositories.CounterStore[models.Comment]
	posts    repositories.CounterStore[models.Post]
	recorder *activity.Recorder
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(comments repositories.CounterStore[models.Comment], posts repositories.CounterStore[models.Post], recorder *activity.Recorder) *CommentHandler {
	return &CommentHandler{
		comments: comments,
		posts:    posts,
		recorder: recorder,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.GET("/comments", h.GetComments)
	g.GET("/comments/:id", h.GetComment)
	g.POST("/comments", h.CreateComment)
	g.PUT("/comments/:id", h.UpdateComment)
	g.DELETE("/comments/:id", h.DeleteComment)
}

// GetComments lists comments. parent_comment_id=null selects top-level comments.
func (h *CommentHandler) GetComments(c echo.Context) error {
	return listRecords[models.Comment](c, h.comments, ref("post_id"), ref("author_id"), nullable("parent_comment_id"))
}

func (h *CommentHandler) GetComment(c echo.Context) error {
	return getRecord[models.Comment](c, h.comments, "Comment")
}

// CreateComment adds a comment, bumps the post's comment count and notifies the post author
func (h *CommentHandler) CreateComment(c echo.Context) error {
	var req models.CreateCommentRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	comment := &models.Comment{
		PostID:          req.PostID,
		AuthorID:        req.AuthorID,
		Content:         req.Content,
		ParentCommentID: req.ParentCommentID,
	}

	ctx := c.Request().Context()
	if err := h.comments.Create(ctx, comment); err != nil {
		return err
	}

	activity.Bump[models.Post](ctx, h.posts, comment.PostID, "comment_count", 1)
	h.recorder.Log(ctx, comment.AuthorID, models.ActionCommented, &comment.ID)
	if post, err := h.posts.GetByID(ctx, comment.PostID.Hex()); err == nil {
		h.recorder.Notify(ctx, post.AuthorID, comment.AuthorID, models.NotificationComment, &post.ID, "commented on your post")
	}
	return c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandler) UpdateComment(c echo.Context) error {
	var req models.UpdateCommentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	comment, err := updateRecord[models.Comment](c, h.comments, "Comment", &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comment)
}

// DeleteComment removes the comment and takes it off the post's comment count. Replies
// are left in place.
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	comment, err := deleteRecord[models.Comment](c, h.comments, "Comment")
	if err != nil {
		return err
	}

	activity.Bump[models.Post](c.Request().Context(), h.posts, comment.PostID, "comment_count", -1)
	return deleted(c, "Comment")
}
