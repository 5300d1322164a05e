package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string
	Env  string

	// EnvFileLoaded reports whether a .env file was found and applied.
	EnvFileLoaded bool

	MongoURI      string
	MongoDatabase string
	PostgresUrl   string
	SQLitePath    string

	RedisAddr     string
	RedisPassword string
	CacheTTL      time.Duration

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
	MaxUploadSize  int64

	JWTSecret string
	TokenTTL  time.Duration

	LogLevel    string
	LogFile     string
	MetricsPort string

	FeedCandidateLimit int
}

// Load reads configuration from the environment, applying a .env file first when present
func Load() *Config {
	loaded := godotenv.Load() == nil

	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		EnvFileLoaded: loaded,

		MongoURI:      getEnv("MONGO_URI", ""),
		MongoDatabase: getEnv("MONGO_DATABASE", "socialmedia"),
		PostgresUrl:   getEnv("POSTGRES_URL", ""),
		SQLitePath:    getEnv("SQLITE_PATH", "social.db"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		CacheTTL:      getEnvDuration("CACHE_TTL", 10*time.Minute),

		MinioEndpoint:  getEnv("MINIO_ENDPOINT", ""),
		MinioAccessKey: getEnv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: getEnv("MINIO_SECRET_KEY", ""),
		MinioBucket:    getEnv("MINIO_BUCKET", "media"),
		MinioUseSSL:    getEnvBool("MINIO_USE_SSL", false),
		MaxUploadSize:  int64(getEnvInt("MAX_UPLOAD_SIZE_MB", 50)) << 20,

		JWTSecret: getEnv("JWT_SECRET", ""),
		TokenTTL:  getEnvDuration("TOKEN_TTL", 72*time.Hour),

		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFile:     getEnv("LOG_FILE", "server.log"),
		MetricsPort: getEnv("METRICS_PORT", "9090"),

		FeedCandidateLimit: getEnvInt("FEED_CANDIDATE_LIMIT", 500),
	}
}

// Validate reports settings the server cannot start without
func (c *Config) Validate() error {
	if c.MongoURI == "" {
		return errors.New("MONGO_URI environment variable not set")
	}
	if c.FeedCandidateLimit <= 0 {
		return errors.New("FEED_CANDIDATE_LIMIT must be positive")
	}
	return nil
}

// MinioEnabled reports whether media uploads can be stored
func (c *Config) MinioEnabled() bool {
	return c.MinioEndpoint != "" && c.MinioAccessKey != "" && c.MinioSecretKey != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}
