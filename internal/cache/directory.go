package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cypheredvortex/mern-social-media-sub000/internal/metrics"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/models"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/repositories"
	"github.com/cypheredvortex/mern-social-media-sub000/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const directoryCacheName = "user_directory"

// Directory resolves user ids to compact users through a read-through cache.
// Cache failures degrade to store reads and are never returned to the caller.
type Directory struct {
	users repositories.Store[models.User]
	cache Cache
	ttl   time.Duration
}

// NewDirectory creates a Directory. A nil cache disables caching.
func NewDirectory(users repositories.Store[models.User], c Cache, ttl time.Duration) *Directory {
	if c == nil {
		c = Noop{}
	}
	return &Directory{users: users, cache: c, ttl: ttl}
}

func userKey(id primitive.ObjectID) string {
	return "user:compact:" + id.Hex()
}

// Lookup returns the compact users for ids. Unknown ids are absent from the result.
func (d *Directory) Lookup(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.UserCompact, error) {
	out := make(map[primitive.ObjectID]models.UserCompact, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	unique := make([]primitive.ObjectID, 0, len(ids))
	seen := make(map[primitive.ObjectID]bool, len(ids))
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		if id.IsZero() || seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
		keys = append(keys, userKey(id))
	}

	m := metrics.Get()
	hits, err := d.cache.GetMany(ctx, keys)
	if err != nil {
		logger.Log.Warn("user directory cache read failed", zap.Error(err))
		hits = nil
	}

	missing := make(repositories.In, 0)
	for _, id := range unique {
		raw, ok := hits[userKey(id)]
		if !ok {
			missing = append(missing, id)
			continue
		}
		var u models.UserCompact
		if err := json.Unmarshal(raw, &u); err != nil {
			missing = append(missing, id)
			continue
		}
		out[id] = u
	}
	m.CacheHitsTotal.WithLabelValues(directoryCacheName).Add(float64(len(unique) - len(missing)))
	m.CacheMissesTotal.WithLabelValues(directoryCacheName).Add(float64(len(missing)))
	if len(missing) == 0 {
		return out, nil
	}

	users, err := d.users.List(ctx, repositories.ListOptions{Filter: repositories.Filter{"_id": missing}})
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		compact := u.ToCompact()
		out[u.ID] = compact
		if raw, err := json.Marshal(compact); err == nil {
			if err := d.cache.Set(ctx, userKey(u.ID), raw, d.ttl); err != nil {
				logger.Log.Warn("user directory cache write failed", zap.Error(err))
			}
		}
	}
	return out, nil
}

// Invalidate drops cached entries after a user changes or is deleted
func (d *Directory) Invalidate(ctx context.Context, ids ...primitive.ObjectID) {
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, userKey(id))
	}
	if err := d.cache.Delete(ctx, keys...); err != nil {
		logger.Log.Warn("user directory cache invalidation failed", zap.Error(err))
	}
}
