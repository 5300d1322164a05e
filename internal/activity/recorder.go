// Package activity performs the best-effort writes that follow a user action: activity
// log entries, notifications and counter adjustments. None of them fail the request and
// none of them are rolled back.
package activity

import (
	"context"
	"errors"

	"github.com/cypheredvortex/mern-social-media-sub000/internal/metrics"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/models"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/repositories"
	"github.com/cypheredvortex/mern-social-media-sub000/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type Recorder struct {
	logs          repositories.Store[models.ActivityLog]
	notifications repositories.Store[models.Notification]
	settings      repositories.Store[models.UserSettings]
}

func NewRecorder(
	logs repositories.Store[models.ActivityLog],
	notifications repositories.Store[models.Notification],
	settings repositories.Store[models.UserSettings],
) *Recorder {
	return &Recorder{logs: logs, notifications: notifications, settings: settings}
}

// Log appends an activity entry for userID
func (r *Recorder) Log(ctx context.Context, userID primitive.ObjectID, action string, target *primitive.ObjectID) {
	entry := &models.ActivityLog{UserID: userID.Hex(), Action: action}
	if target != nil {
		hex := target.Hex()
		entry.TargetID = &hex
	}
	if err := r.logs.Create(ctx, entry); err != nil {
		failed("activity_log", err, logger.WithUserID(userID.Hex()), zap.String("action", action))
	}
}

// Notify sends one notification to recipient. Self-notifications and recipients who
// turned notifications off are skipped.
func (r *Recorder) Notify(ctx context.Context, recipient, sender primitive.ObjectID, kind string, target *primitive.ObjectID, content string) {
	if recipient.IsZero() || recipient == sender {
		return
	}

	settings, err := r.settings.FindOne(ctx, repositories.Filter{"user_id": recipient})
	switch {
	case err == nil && !settings.NotificationsEnabled:
		return
	case err != nil && !errors.Is(err, repositories.ErrNotFound):
		failed("notification", err, logger.WithUserID(recipient.Hex()))
		return
	}

	n := &models.Notification{
		UserID:   recipient,
		SenderID: &sender,
		Type:     kind,
		TargetID: target,
		Content:  content,
	}
	if err := r.notifications.Create(ctx, n); err != nil {
		failed("notification", err, logger.WithUserID(recipient.Hex()), zap.String("type", kind))
	}
}

// Bump adjusts a counter on a post or comment
func Bump[T any](ctx context.Context, store repositories.CounterStore[T], id primitive.ObjectID, field string, delta int) {
	if _, err := store.Increment(ctx, id.Hex(), field, delta); err != nil {
		failed("counter", err, zap.String("id", id.Hex()), zap.String("field", field), zap.Int("delta", delta))
	}
}

func failed(effect string, err error, fields ...zap.Field) {
	metrics.Get().SideEffectFailures.WithLabelValues(effect).Inc()
	logger.Log.Warn("side effect failed", append(fields, zap.String("effect", effect), zap.Error(err))...)
}
