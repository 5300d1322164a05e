package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("PORT", "")
	t.Setenv("CACHE_TTL", "")
	t.Setenv("FEED_CANDIDATE_LIMIT", "")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "socialmedia", cfg.MongoDatabase)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 500, cfg.FeedCandidateLimit)
	assert.Equal(t, int64(50<<20), cfg.MaxUploadSize)
	assert.NoError(t, cfg.Validate())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("PORT", "3000")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("FEED_CANDIDATE_LIMIT", "50")
	t.Setenv("TOKEN_TTL", "not-a-duration")

	cfg := Load()

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.True(t, cfg.MinioUseSSL)
	assert.Equal(t, 50, cfg.FeedCandidateLimit)
	assert.Equal(t, 72*time.Hour, cfg.TokenTTL)
}

func TestValidate(t *testing.T) {
	assert.EqualError(t, (&Config{FeedCandidateLimit: 1}).Validate(), "MONGO_URI environment variable not set")
	assert.Error(t, (&Config{MongoURI: "mongodb://x", FeedCandidateLimit: 0}).Validate())
}

func TestMinioEnabled(t *testing.T) {
	assert.False(t, (&Config{MinioEndpoint: "localhost:9000"}).MinioEnabled())
	assert.True(t, (&Config{MinioEndpoint: "localhost:9000", MinioAccessKey: "a", MinioSecretKey: "b"}).MinioEnabled())
}
