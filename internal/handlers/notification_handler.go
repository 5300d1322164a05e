package handlers

import (
	"net/http"

	"github.com/cypheredvortex/mern-social-media-sub000/internal/activity"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/models"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/repositories"
	"github.com/labstack/echo/v4"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notifications repositories.Store[models.Notification]
	recorder      *activity.Recorder
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifications repositories.Store[models.Notification], recorder *activity.Recorder) *NotificationHandler {
	return &NotificationHandler{
		notifications: notifications,
		recorder:      recorder,
	}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.GET("/notifications/:id", h.GetNotification)
	g.POST("/notifications", h.CreateNotification)
	g.PUT("/notifications/:id", h.UpdateNotification)
	g.DELETE("/notifications/:id", h.DeleteNotification)
	g.GET("/notifications/user/:userId/unread-count", h.GetUnreadCount)
	g.PUT("/notifications/user/:userId/read-all", h.MarkAllAsRead)
}

func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	return listRecords(c, h.notifications, ref("user_id"), flag("read"), text("type"))
}

func (h *NotificationHandler) GetNotification(c echo.Context) error {
	return getRecord(c, h.notifications, "Notification")
}

func (h *NotificationHandler) CreateNotification(c echo.Context) error {
	var req models.CreateNotificationRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	notification := &models.Notification{
		UserID:   req.UserID,
		SenderID: req.SenderID,
		Type:     req.Type,
		TargetID: req.TargetID,
		Content:  req.Content,
		Read:     req.Read,
	}
	if err := h.notifications.Create(c.Request().Context(), notification); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, notification)
}

// UpdateNotification applies the changes. Marking a notification read is logged for its
// recipient.
func (h *NotificationHandler) UpdateNotification(c echo.Context) error {
	var req models.UpdateNotificationRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	notification, err := updateRecord(c, h.notifications, "Notification", &req)
	if err != nil {
		return err
	}
	if req.Read != nil && *req.Read {
		h.recorder.Log(c.Request().Context(), notification.UserID, models.ActionReadNotification, &notification.ID)
	}
	return c.JSON(http.StatusOK, notification)
}

func (h *NotificationHandler) DeleteNotification(c echo.Context) error {
	if _, err := deleteRecord(c, h.notifications, "Notification"); err != nil {
		return err
	}
	return deleted(c, "Notification")
}

// GetUnreadCount returns the number of unread notifications for a user
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	userID, err := pathID(c, "userId", "User")
	if err != nil {
		return err
	}

	count, err := h.notifications.Count(c.Request().Context(), repositories.Filter{"user_id": userID, "read": false})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"count": count})
}

// MarkAllAsRead marks every unread notification of a user as read
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	userID, err := pathID(c, "userId", "User")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	modified, err := h.notifications.UpdateWhere(ctx, repositories.Filter{"user_id": userID, "read": false}, repositories.Fields{"read": true})
	if err != nil {
		return err
	}
	if modified > 0 {
		h.recorder.Log(ctx, userID, models.ActionReadNotification, nil)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":  "All notifications marked as read",
		"modified": modified,
	})
}
