package handlers

import (
	"net/http"
	"strings"

	"github.com/cypheredvortex/mern-social-media-sub000/internal/activity"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/models"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/repositories"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MessageHandler handles HTTP requests related to direct messages
type MessageHandler struct {
	messages repositories.Store[models.Message]
	recorder *activity.Recorder
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(messages repositories.Store[models.Message], recorder *activity.Recorder) *MessageHandler {
	return &MessageHandler{messages: messages, recorder: recorder}
}

// RegisterMessageRoutes registers message-related routes
func (h *MessageHandler) RegisterMessageRoutes(g *echo.Group) {
	g.GET("/messages", h.GetMessages)
	g.GET("/messages/:id", h.GetMessage)
	g.POST("/messages", h.SendMessage)
	g.PUT("/messages/:id", h.UpdateMessage)
	g.DELETE("/messages/:id", h.DeleteMessage)
}

// GetMessages lists messages oldest first. participants=<a>,<b> selects the conversation
// between two users in both directions.
func (h *MessageHandler) GetMessages(c echo.Context) error {
	opts, err := listOptions(c, ref("sender_id"), ref("receiver_id"), text("status"))
	if err != nil {
		return err
	}
	opts.OldestFirst = true

	if raw := c.QueryParam("participants"); raw != "" {
		a, b, err := participants(raw)
		if err != nil {
			return err
		}
		opts.Filter["$or"] = []repositories.Filter{
			{"sender_id": a, "receiver_id": b},
			{"sender_id": b, "receiver_id": a},
		}
	}

	messages, err := h.messages.List(c.Request().Context(), opts)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messages)
}

func participants(raw string) (primitive.ObjectID, primitive.ObjectID, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return primitive.NilObjectID, primitive.NilObjectID, echo.NewHTTPError(http.StatusBadRequest, "Invalid participants")
	}
	a, errA := primitive.ObjectIDFromHex(strings.TrimSpace(parts[0]))
	b, errB := primitive.ObjectIDFromHex(strings.TrimSpace(parts[1]))
	if errA != nil || errB != nil {
		return primitive.NilObjectID, primitive.NilObjectID, echo.NewHTTPError(http.StatusBadRequest, "Invalid participants")
	}
	return a, b, nil
}

func (h *MessageHandler) GetMessage(c echo.Context) error {
	return getRecord(c, h.messages, "Message")
}

// SendMessage stores a message and notifies the receiver
func (h *MessageHandler) SendMessage(c echo.Context) error {
	var req models.CreateMessageRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	message := &models.Message{
		SenderID:   req.SenderID,
		ReceiverID: req.ReceiverID,
		Content:    req.Content,
		MediaURL:   req.MediaURL,
		Status:     req.Status,
	}
	if message.Status == "" {
		message.Status = models.MessageSent
	}

	ctx := c.Request().Context()
	if err := h.messages.Create(ctx, message); err != nil {
		return err
	}

	h.recorder.Log(ctx, message.SenderID, models.ActionSentMessage, &message.ID)
	h.recorder.Notify(ctx, message.ReceiverID, message.SenderID, models.NotificationMessage, &message.ID, "sent you a message")
	return c.JSON(http.StatusCreated, message)
}

func (h *MessageHandler) UpdateMessage(c echo.Context) error {
	var req models.UpdateMessageRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	message, err := updateRecord(c, h.messages, "Message", &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, message)
}

func (h *MessageHandler) DeleteMessage(c echo.Context) error {
	if _, err := deleteRecord(c, h.messages, "Message"); err != nil {
		return err
	}
	return deleted(c, "Message")
}
