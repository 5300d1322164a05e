//go:build integration

package repositories_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/cypheredvortex/mern-social-media-sub000/internal/models"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// startMongo runs a throwaway MongoDB and returns a database with indexes in place
func startMongo(t *testing.T) *mongo.Database {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Failed to terminate MongoDB: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "27017/tcp")
	require.NoError(t, err)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(fmt.Sprintf("mongodb://%s:%s", host, port.Port())))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	db := client.Database("social_test")
	require.NoError(t, repositories.EnsureIndexes(ctx, db))
	return db
}

func TestMongoStore(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	db := startMongo(t)
	ctx := context.Background()

	t.Run("unique email", func(t *testing.T) {
		users := repositories.NewMongoStore[models.User](db, repositories.CollectionUsers)
		require.NoError(t, users.Create(ctx, &models.User{Username: "alice", Email: "alice@example.com"}))
		err := users.Create(ctx, &models.User{Username: "alice2", Email: "alice@example.com"})
		assert.ErrorIs(t, err, repositories.ErrDuplicate)
	})

	t.Run("search escapes the query", func(t *testing.T) {
		users := repositories.NewMongoStore[models.User](db, repositories.CollectionUsers)
		require.NoError(t, users.Create(ctx, &models.User{Username: "b.o.b", Email: "bob@example.com", Role: models.RoleModerator}))

		found, err := users.Search(ctx, "B.O", "username", "email", "role")
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "b.o.b", found[0].Username)

		found, err = users.Search(ctx, "a.i", "username", "email", "role")
		require.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("counters stop at zero", func(t *testing.T) {
		posts := repositories.NewMongoStore[models.Post](db, repositories.CollectionPosts)
		post := &models.Post{Content: "counted"}
		require.NoError(t, posts.Create(ctx, post))

		for _, step := range []struct {
			delta   int
			changed bool
		}{{1, true}, {-1, true}, {-1, false}} {
			changed, err := posts.Increment(ctx, post.ID.Hex(), "like_count", step.delta)
			require.NoError(t, err)
			assert.Equal(t, step.changed, changed)
		}

		stored, err := posts.GetByID(ctx, post.ID.Hex())
		require.NoError(t, err)
		assert.Equal(t, 0, stored.LikeCount)

		_, err = posts.Increment(ctx, "65a000000000000000000001", "like_count", 1)
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})

	t.Run("delete keys and restore", func(t *testing.T) {
		comments := repositories.NewMongoStore[models.Comment](db, repositories.CollectionComments)
		first := &models.Comment{Content: "one"}
		second := &models.Comment{Content: "two"}
		require.NoError(t, comments.Create(ctx, first))
		require.NoError(t, comments.Create(ctx, second))

		n, err := comments.DeleteKeys(ctx, []string{first.ID.Hex(), second.ID.Hex()})
		require.NoError(t, err)
		assert.EqualValues(t, 2, n)

		// restoring twice must not fail on the ids already back in place
		require.NoError(t, comments.Restore(ctx, []models.Comment{*first}))
		require.NoError(t, comments.Restore(ctx, []models.Comment{*first, *second}))

		count, err := comments.Count(ctx, repositories.Filter{"_id": repositories.In{first.ID, second.ID}})
		require.NoError(t, err)
		assert.EqualValues(t, 2, count)
	})

	t.Run("update where", func(t *testing.T) {
		notifications := repositories.NewMongoStore[models.Notification](db, repositories.CollectionNotifications)
		user := models.User{}
		user.Stamp(time.Now())
		for i := 0; i < 3; i++ {
			require.NoError(t, notifications.Create(ctx, &models.Notification{UserID: user.ID, Type: models.NotificationSystem}))
		}

		modified, err := notifications.UpdateWhere(ctx, repositories.Filter{"user_id": user.ID, "read": false}, repositories.Fields{"read": true})
		require.NoError(t, err)
		assert.EqualValues(t, 3, modified)
	})
}
