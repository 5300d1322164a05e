package handlers

import (
	"errors"
	"net/http"

	"github.com/cypheredvortex/mern-social-media-sub000/internal/activity"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/cascade"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/models"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/repositories"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	posts    repositories.CounterStore[models.Post]
	recorder *activity.Recorder
	cascade  *cascade.Service
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(posts repositories.CounterStore[models.Post], recorder *activity.Recorder, cascades *cascade.Service) *PostHandler {
	return &PostHandler{
		posts:    posts,
		recorder: recorder,
		cascade:  cascades,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts/:id", h.GetPost)
	g.GET("/posts", h.GetPosts) // filter by author_id or visibility
	g.PUT("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
	g.DELETE("/posts/:id/cascade", h.DeletePostCascade)
}

// CreatePost creates a new post
func (h *PostHandler) CreatePost(c echo.Context) error {
	var req models.CreatePostRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	post := &models.Post{
		AuthorID:   req.AuthorID,
		Content:    req.Content,
		MediaURL:   req.MediaURL,
		Visibility: req.Visibility,
	}
	if post.Visibility == "" {
		post.Visibility = models.VisibilityPublic
	}

	ctx := c.Request().Context()
	if err := h.posts.Create(ctx, post); err != nil {
		return err
	}

	h.recorder.Log(ctx, post.AuthorID, models.ActionCreatedPost, &post.ID)
	return c.JSON(http.StatusCreated, post)
}

// GetPost retrieves a post by ID
func (h *PostHandler) GetPost(c echo.Context) error {
	return getRecord[models.Post](c, h.posts, "Post")
}

// GetPosts retrieves posts, newest first
func (h *PostHandler) GetPosts(c echo.Context) error {
	return listRecords[models.Post](c, h.posts, ref("author_id"), text("visibility"))
}

// UpdatePost replaces the given fields. Counters may be set directly.
func (h *PostHandler) UpdatePost(c echo.Context) error {
	var req models.UpdatePostRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	post, err := updateRecord[models.Post](c, h.posts, "Post", &req)
	if err != nil {
		return err
	}

	h.recorder.Log(c.Request().Context(), post.AuthorID, models.ActionUpdatedPost, &post.ID)
	return c.JSON(http.StatusOK, post)
}

// DeletePost deletes only the post. Its comments, likes and shares are left in place.
func (h *PostHandler) DeletePost(c echo.Context) error {
	post, err := deleteRecord[models.Post](c, h.posts, "Post")
	if err != nil {
		return err
	}

	h.recorder.Log(c.Request().Context(), post.AuthorID, models.ActionDeletedPost, &post.ID)
	return deleted(c, "Post")
}

// DeletePostCascade deletes the post together with its comments, likes, shares and media
func (h *PostHandler) DeletePostCascade(c echo.Context) error {
	post, err := h.cascade.DeletePost(c.Request().Context(), c.Param("id"))
	if errors.Is(err, repositories.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}
	if err != nil {
		return err
	}

	h.recorder.Log(c.Request().Context(), post.AuthorID, models.ActionDeletedPost, &post.ID)
	return deleted(c, "Post")
}
