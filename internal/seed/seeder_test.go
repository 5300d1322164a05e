package seed

import (
	"context"
	"testing"

	"github.com/cypheredvortex/mern-social-media-sub000/internal/counters"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/repositories/repotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSeederCreatesConsistentData(t *testing.T) {
	stores := repotest.NewStores(t)
	ctx := context.Background()

	res, err := NewSeeder(stores.Bundle()).Run(ctx, Options{Users: 4, Posts: 6, Seed: 7})
	require.NoError(t, err)

	assert.Equal(t, 4, res.Users)
	assert.Equal(t, 6, res.Posts)
	assert.Len(t, stores.Users.All(), 4)
	assert.Len(t, stores.Profiles.All(), 4)
	assert.Len(t, stores.UserSettings.All(), 4)
	assert.Len(t, stores.Posts.All(), 6)
	assert.Len(t, stores.Likes.All(), res.Likes)
	assert.Len(t, stores.Comments.All(), res.Comments)
	assert.Len(t, stores.Follows.All(), res.Follows)

	for _, f := range stores.Follows.All() {
		assert.NotEqual(t, f.FollowerID, f.FollowedID)
	}

	user := stores.Users.All()[0]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(DefaultPassword)))

	drifts, err := counters.NewReconciler(stores.Bundle()).Reconcile(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, drifts)
}

func TestSeederNeedsUsers(t *testing.T) {
	_, err := NewSeeder(repotest.NewStores(t).Bundle()).Run(context.Background(), Options{Posts: 1})
	assert.Error(t, err)
}
