package handlers

import (
	"net/http"

	"github.com/cypheredvortex/mern-social-media-sub000/internal/models"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/repositories"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/resolver"
	"github.com/labstack/echo/v4"
)

// ActivityLogHandler serves the append-only activity log. Entries cannot be updated.
type ActivityLogHandler struct {
	logs    repositories.Store[models.ActivityLog]
	targets *resolver.Resolver
}

// NewActivityLogHandler creates a new ActivityLogHandler
func NewActivityLogHandler(logs repositories.Store[models.ActivityLog], targets *resolver.Resolver) *ActivityLogHandler {
	return &ActivityLogHandler{logs: logs, targets: targets}
}

// RegisterActivityLogRoutes registers activity log routes
func (h *ActivityLogHandler) RegisterActivityLogRoutes(g *echo.Group) {
	g.GET("/activity-logs", h.GetActivityLogs)
	g.GET("/activity-logs/:id", h.GetActivityLog)
	g.POST("/activity-logs", h.CreateActivityLog)
	g.DELETE("/activity-logs/:id", h.DeleteActivityLog)
}

func (h *ActivityLogHandler) GetActivityLogs(c echo.Context) error {
	return listRecords(c, h.logs, hex("user_id"), text("action"))
}

// GetActivityLog returns the entry with the record its action refers to
func (h *ActivityLogHandler) GetActivityLog(c echo.Context) error {
	ctx := c.Request().Context()
	entry, err := h.logs.GetByID(ctx, c.Param("id"))
	if err != nil {
		return storeError(err, "Activity log")
	}

	var targetID string
	if entry.TargetID != nil {
		targetID = *entry.TargetID
	}
	res, err := h.targets.Resolve(ctx, resolver.ActivityTargets, entry.Action, targetID)
	if err != nil {
		return err
	}
	body, err := withTarget(entry, res)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, body)
}

func (h *ActivityLogHandler) CreateActivityLog(c echo.Context) error {
	var req models.CreateActivityLogRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	entry := &models.ActivityLog{
		UserID:   req.UserID,
		Action:   req.Action,
		TargetID: req.TargetID,
	}
	if err := h.logs.Create(c.Request().Context(), entry); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, entry)
}

func (h *ActivityLogHandler) DeleteActivityLog(c echo.Context) error {
	if _, err := deleteRecord(c, h.logs, "Activity log"); err != nil {
		return err
	}
	return deleted(c, "Activity log")
}
