package handlers

import (
	"fmt"
	"net/http"

	"github.com/cypheredvortex/mern-social-media-sub000/internal/models"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/repositories"
	"github.com/cypheredvortex/mern-social-media-sub000/pkg/logger"
	"github.com/cypheredvortex/mern-social-media-sub000/pkg/storage"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const mediaFolder = "media"

// MediaHandler handles HTTP requests related to media records and uploads
type MediaHandler struct {
	media         repositories.Store[models.Media]
	objects       storage.ObjectStore
	maxUploadSize int64
}

// NewMediaHandler creates a new MediaHandler. objects may be nil, in which case the
// upload route is not registered.
func NewMediaHandler(media repositories.Store[models.Media], objects storage.ObjectStore, maxUploadSize int64) *MediaHandler {
	return &MediaHandler{
		media:         media,
		objects:       objects,
		maxUploadSize: maxUploadSize,
	}
}

// RegisterMediaRoutes registers media-related routes
func (h *MediaHandler) RegisterMediaRoutes(g *echo.Group) {
	g.GET("/media", h.GetMediaList)
	g.GET("/media/:id", h.GetMedia)
	g.POST("/media", h.CreateMedia)
	g.PUT("/media/:id", h.UpdateMedia)
	g.DELETE("/media/:id", h.DeleteMedia)
	if h.objects != nil {
		g.POST("/media/upload", h.UploadMedia)
	}
}

func (h *MediaHandler) GetMediaList(c echo.Context) error {
	return listRecords(c, h.media, ref("uploader_id"), nullable("post_id"), text("type"))
}

func (h *MediaHandler) GetMedia(c echo.Context) error {
	return getRecord(c, h.media, "Media")
}

// CreateMedia records a file that is already hosted elsewhere
func (h *MediaHandler) CreateMedia(c echo.Context) error {
	var req models.CreateMediaRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	media := &models.Media{
		UploaderID: req.UploaderID,
		PostID:     req.PostID,
		URL:        req.URL,
		Type:       req.Type,
		Size:       req.Size,
	}
	if err := h.media.Create(c.Request().Context(), media); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, media)
}

// UploadMedia stores a multipart file in the object store and records it. The media type
// comes from the file content.
func (h *MediaHandler) UploadMedia(c echo.Context) error {
	uploaderID, err := primitive.ObjectIDFromHex(c.FormValue("uploader_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid uploader_id")
	}

	var postID *primitive.ObjectID
	if raw := c.FormValue("post_id"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid post_id")
		}
		postID = &id
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "File is required")
	}
	if fileHeader.Size > h.maxUploadSize {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("File exceeds the %d byte upload limit", h.maxUploadSize))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	ctx := c.Request().Context()
	object, err := h.objects.Upload(ctx, mediaFolder, fileHeader.Filename, file, fileHeader.Size)
	if err != nil {
		return err
	}

	media := &models.Media{
		UploaderID: uploaderID,
		PostID:     postID,
		URL:        object.URL,
		Type:       object.Kind,
		Size:       object.Size,
	}
	if err := h.media.Create(ctx, media); err != nil {
		if rmErr := h.objects.Remove(ctx, object.Key); rmErr != nil {
			logger.Log.Warn("failed to remove orphaned upload", zap.String("key", object.Key), zap.Error(rmErr))
		}
		return err
	}
	return c.JSON(http.StatusCreated, media)
}

func (h *MediaHandler) UpdateMedia(c echo.Context) error {
	var req models.UpdateMediaRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	media, err := updateRecord(c, h.media, "Media", &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, media)
}

func (h *MediaHandler) DeleteMedia(c echo.Context) error {
	if _, err := deleteRecord(c, h.media, "Media"); err != nil {
		return err
	}
	return deleted(c, "Media")
}
