package handlers

import (
	"net/http"
	"strconv"

	"github.com/cypheredvortex/mern-social-media-sub000/internal/feed"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FeedHandler handles feed-related HTTP requests
type FeedHandler struct {
	feed *feed.Service
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(service *feed.Service) *FeedHandler {
	return &FeedHandler{feed: service}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
	g.GET("/feed/posts/:id/comments", h.GetComments)
}

// GetFeed returns enriched feed posts for the current viewer
func (h *FeedHandler) GetFeed(c echo.Context) error {
	viewer, err := viewerID(c)
	if err != nil {
		return err
	}

	order, ok := feed.ParseOrder(c.QueryParam("sort"))
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid sort, expected latest or trending")
	}

	var authorID primitive.ObjectID
	if raw := c.QueryParam("author_id"); raw != "" {
		if authorID, err = primitive.ObjectIDFromHex(raw); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid author_id")
		}
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.feed.Feed(c.Request().Context(), feed.Query{
		ViewerID: viewer,
		AuthorID: authorID,
		Order:    order,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"posts": result.Posts,
		},
		"meta": result.Meta,
	})
}

// GetComments returns the post's comments grouped into threads
func (h *FeedHandler) GetComments(c echo.Context) error {
	viewer, err := viewerID(c)
	if err != nil {
		return err
	}

	threads, err := h.feed.Comments(c.Request().Context(), c.Param("id"), viewer)
	if err != nil {
		return storeError(err, "Post")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"comments": threads,
		},
	})
}
