package resolver

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cypheredvortex/mern-social-media-sub000/internal/cache"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/models"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/repositories"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/repositories/repotest"
	"github.com/cypheredvortex/mern-social-media-sub000/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type world struct {
	users         *repotest.Store[models.User]
	posts         *repotest.Store[models.Post]
	comments      *repotest.Store[models.Comment]
	follows       *repotest.Store[models.Follow]
	notifications *repotest.Store[models.Notification]
	stores        *repositories.Stores
}

func newWorld() world {
	w := world{
		users:         repotest.NewStore[models.User](),
		posts:         repotest.NewStore[models.Post](),
		comments:      repotest.NewStore[models.Comment](),
		follows:       repotest.NewStore[models.Follow](),
		notifications: repotest.NewStore[models.Notification](),
	}
	w.stores = &repositories.Stores{
		Users:         w.users,
		Posts:         w.posts,
		Comments:      w.comments,
		Follows:       w.follows,
		Notifications: w.notifications,
	}
	return w
}

func (w world) user(t *testing.T, name string) models.User {
	t.Helper()
	u := models.User{Username: name, Email: name + "@example.com", Password: "hash", Role: models.RoleUser}
	require.NoError(t, w.users.Create(context.Background(), &u))
	return u
}

func (w world) resolver() *Resolver {
	return New(w.stores, cache.NewDirectory(w.users, cache.Noop{}, time.Minute))
}

func TestActivityCreatedPostResolvesEnrichedPost(t *testing.T) {
	ctx := context.Background()
	w := newWorld()
	ada := w.user(t, "ada")
	post := models.Post{AuthorID: ada.ID, Content: "hello"}
	require.NoError(t, w.posts.Create(ctx, &post))

	res, err := w.resolver().Resolve(ctx, ActivityTargets, models.ActionCreatedPost, post.ID.Hex())
	require.NoError(t, err)

	assert.Equal(t, KindPost, res.Kind)
	target, ok := res.Target.(*PostTarget)
	require.True(t, ok)
	assert.Equal(t, "hello", target.Content)
	assert.Equal(t, "ada", target.AuthorName)
}

func TestMissingTargetResolvesToNil(t *testing.T) {
	w := newWorld()

	for _, id := range []string{primitive.NewObjectID().Hex(), "not-an-id"} {
		res, err := w.resolver().Resolve(context.Background(), ActivityTargets, models.ActionCreatedPost, id)
		require.NoError(t, err)
		assert.Equal(t, KindPost, res.Kind)
		assert.Nil(t, res.Target)
		assert.False(t, res.Omitted())
	}
}

func TestReportCommentResolvesWithAuthor(t *testing.T) {
	ctx := context.Background()
	w := newWorld()
	bob := w.user(t, "bob")
	comment := models.Comment{PostID: primitive.NewObjectID(), AuthorID: bob.ID, Content: "rude"}
	require.NoError(t, w.comments.Create(ctx, &comment))

	res, err := w.resolver().Resolve(ctx, ReportTargets, models.ReportTargetComment, comment.ID.Hex())
	require.NoError(t, err)

	target, ok := res.Target.(*CommentTarget)
	require.True(t, ok)
	assert.Equal(t, "bob", target.AuthorName)
	assert.Equal(t, "rude", target.Content)
}

func TestReportMediaIsOmitted(t *testing.T) {
	res, err := newWorld().resolver().Resolve(context.Background(), ReportTargets, models.ReportTargetMedia, primitive.NewObjectID().Hex())
	require.NoError(t, err)

	assert.Equal(t, KindNone, res.Kind)
	assert.True(t, res.Omitted())
	assert.Nil(t, res.Target)
}

func TestFollowGetsBothNames(t *testing.T) {
	ctx := context.Background()
	w := newWorld()
	ada, bob := w.user(t, "ada"), w.user(t, "bob")
	follow := models.Follow{FollowerID: ada.ID, FollowedID: bob.ID, Status: models.FollowAccepted}
	require.NoError(t, w.follows.Create(ctx, &follow))

	res, err := w.resolver().Resolve(ctx, ActivityTargets, models.ActionFollowedUser, follow.ID.Hex())
	require.NoError(t, err)

	target := res.Target.(*FollowTarget)
	assert.Equal(t, "ada", target.FollowerName)
	assert.Equal(t, "bob", target.FollowedName)
}

func TestUserAndNotificationKinds(t *testing.T) {
	ctx := context.Background()
	w := newWorld()
	ada, bob := w.user(t, "ada"), w.user(t, "bob")
	n := models.Notification{UserID: bob.ID, SenderID: &ada.ID, Type: models.NotificationFollow}
	require.NoError(t, w.notifications.Create(ctx, &n))
	r := w.resolver()

	res, err := r.Resolve(ctx, ActivityTargets, models.ActionLogin, ada.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "ada", res.Target.(*models.User).Username)

	res, err = r.Resolve(ctx, ActivityTargets, models.ActionReadNotification, n.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "ada", res.Target.(*NotificationTarget).SenderName)
}

func TestUnmappedActionTakesDefaultArm(t *testing.T) {
	id := primitive.NewObjectID().Hex()

	res, err := newWorld().resolver().Resolve(context.Background(), ActivityTargets, models.ActionSentMessage, id)
	require.NoError(t, err)

	assert.Equal(t, KindRaw, res.Kind)
	assert.Equal(t, RawTarget{ID: id}, res.Target)
}

func TestEmptyTargetID(t *testing.T) {
	res, err := newWorld().resolver().Resolve(context.Background(), ActivityTargets, models.ActionLogin, "")
	require.NoError(t, err)
	assert.Nil(t, res.Target)
}

type mockNames struct {
	mock.Mock
}

func (m *mockNames) Lookup(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.UserCompact, error) {
	args := m.Called(ctx, ids)
	users, _ := args.Get(0).(map[primitive.ObjectID]models.UserCompact)
	return users, args.Error(1)
}

func TestStoreFailuresSurface(t *testing.T) {
	ctx := context.Background()
	w := newWorld()
	post := models.Post{AuthorID: primitive.NewObjectID()}
	require.NoError(t, w.posts.Create(ctx, &post))

	names := new(mockNames)
	names.On("Lookup", mock.Anything, []primitive.ObjectID{post.AuthorID}).Return(nil, errors.New("cache and store down"))

	_, err := New(w.stores, names).Resolve(ctx, ActivityTargets, models.ActionLikedPost, post.ID.Hex())
	assert.EqualError(t, err, "cache and store down")
	names.AssertExpectations(t)

	w.posts.FailOn("GetByID", errors.New("timeout"))
	_, err = w.resolver().Resolve(ctx, ActivityTargets, models.ActionLikedPost, post.ID.Hex())
	assert.EqualError(t, err, "timeout")
}

func TestTablesCoverEveryAction(t *testing.T) {
	unresolved := map[string]bool{models.ActionSentMessage: true, models.ActionReportedContent: true}
	actions := []string{
		models.ActionLogin, models.ActionLogout, models.ActionUpdatedProfile, models.ActionCreatedPost,
		models.ActionUpdatedPost, models.ActionDeletedPost, models.ActionLikedPost, models.ActionCommented,
		models.ActionSharedPost, models.ActionFollowedUser, models.ActionUnfollowedUser,
		models.ActionSentMessage, models.ActionReportedContent, models.ActionReadNotification,
	}
	for _, a := range actions {
		if unresolved[a] {
			assert.Equal(t, KindRaw, ActivityTargets.KindOf(a), a)
		} else {
			assert.NotEqual(t, KindRaw, ActivityTargets.KindOf(a), a)
		}
	}
	assert.Equal(t, KindFollow, ActivityTargets.KindOf(models.ActionFollowedUser))
	assert.Equal(t, KindUser, ActivityTargets.KindOf(models.ActionUnfollowedUser))
}

func TestStoreFailureIsLoggedWithTarget(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	previous := logger.Log
	logger.Log = zap.New(core)
	t.Cleanup(func() { logger.Log = previous })

	w := newWorld()
	w.users.FailOn("GetByID", errors.New("timeout"))
	id := primitive.NewObjectID().Hex()

	_, err := w.resolver().Resolve(context.Background(), ReportTargets, models.ReportTargetUser, id)
	require.EqualError(t, err, "timeout")

	entries := logs.FilterMessage("target resolution failed").All()
	require.Len(t, entries, 1)
	target, ok := entries[0].ContextMap()["target"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "user", target["kind"])
	assert.Equal(t, id, target["id"])
}
