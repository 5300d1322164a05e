package activity

import (
	"context"
	"errors"
	"testing"

	"github.com/cypheredvortex/mern-social-media-sub000/internal/models"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/repositories"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/repositories/repotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fixture struct {
	logs          *repositories.GormStore[models.ActivityLog]
	notifications *repotest.Store[models.Notification]
	settings      *repotest.Store[models.UserSettings]
	recorder      *Recorder
}

func newFixture(t *testing.T) fixture {
	db := repotest.OpenSQLite(t)
	f := fixture{
		logs:          repositories.NewGormStore[models.ActivityLog](db),
		notifications: repotest.NewStore[models.Notification](),
		settings:      repotest.NewStore[models.UserSettings](),
	}
	f.recorder = NewRecorder(f.logs, f.notifications, f.settings)
	return f
}

func TestLogWritesEntry(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	user, post := primitive.NewObjectID(), primitive.NewObjectID()

	f.recorder.Log(ctx, user, models.ActionCreatedPost, &post)
	f.recorder.Log(ctx, user, models.ActionLogin, nil)

	logs, err := f.logs.List(ctx, repositories.ListOptions{Filter: repositories.Filter{"user_id": user.Hex()}})
	require.NoError(t, err)
	require.Len(t, logs, 2)

	byAction := map[string]models.ActivityLog{}
	for _, l := range logs {
		byAction[l.Action] = l
	}
	require.NotNil(t, byAction[models.ActionCreatedPost].TargetID)
	assert.Equal(t, post.Hex(), *byAction[models.ActionCreatedPost].TargetID)
	assert.Nil(t, byAction[models.ActionLogin].TargetID)
	assert.Len(t, byAction[models.ActionLogin].ID, 36)
}

func TestNotifySkipsSelfAndDisabledRecipients(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice, bob, carol := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()
	require.NoError(t, f.settings.Create(ctx, &models.UserSettings{UserID: carol, NotificationsEnabled: false}))

	f.recorder.Notify(ctx, alice, alice, models.NotificationLike, nil, "liked your post")
	f.recorder.Notify(ctx, carol, alice, models.NotificationLike, nil, "liked your post")
	f.recorder.Notify(ctx, bob, alice, models.NotificationFollow, nil, "started following you")

	all := f.notifications.All()
	require.Len(t, all, 1)
	assert.Equal(t, bob, all[0].UserID)
	require.NotNil(t, all[0].SenderID)
	assert.Equal(t, alice, *all[0].SenderID)
	assert.False(t, all[0].Read)
}

func TestFailuresAreSwallowed(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.notifications.FailOn("Create", errors.New("write failed"))

	assert.NotPanics(t, func() {
		f.recorder.Notify(ctx, primitive.NewObjectID(), primitive.NewObjectID(), models.NotificationMessage, nil, "sent you a message")
	})
}

func TestBumpNeverGoesNegative(t *testing.T) {
	ctx := context.Background()
	posts := repotest.NewStore(models.Post{Content: "hi"})
	id := posts.All()[0].ID

	Bump[models.Post](ctx, posts, id, "like_count", 1)
	Bump[models.Post](ctx, posts, id, "like_count", -1)
	Bump[models.Post](ctx, posts, id, "like_count", -1)

	assert.Equal(t, 0, posts.All()[0].LikeCount)
	Bump[models.Post](ctx, posts, primitive.NewObjectID(), "like_count", 1)
}
