package router

import (
	"net/http"
	"time"

	"github.com/cypheredvortex/mern-social-media-sub000/internal/activity"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/cache"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/cascade"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/feed"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/handlers"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/middleware"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/repositories"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/resolver"
	"github.com/cypheredvortex/mern-social-media-sub000/pkg/logger"
	"github.com/cypheredvortex/mern-social-media-sub000/pkg/storage"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// Dependencies are the backing services the routes are built on
type Dependencies struct {
	Stores *repositories.Stores
	// Cache backs the user directory. Nil disables caching.
	Cache cache.Cache
	// Objects stores media uploads. Nil leaves the upload route unregistered.
	Objects storage.ObjectStore

	JWTSecret          string
	TokenTTL           time.Duration
	CacheTTL           time.Duration
	MaxUploadSize      int64
	FeedCandidateLimit int
}

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo, jwtSecret string) {
	e.HTTPErrorHandler = middleware.ErrorHandler

	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.RequestIDWithConfig(eMiddleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(eMiddleware.RequestLoggerWithConfig(eMiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v eMiddleware.RequestLoggerValues) error {
			fields := []zap.Field{
				logger.WithRequestID(v.RequestID),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("ip", v.RemoteIP),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			logger.Log.Info("request", fields...)
			return nil
		},
	}))
	e.Use(eMiddleware.CORS())
	e.Use(eMiddleware.Gzip())
	e.Use(middleware.Metrics())
	e.Use(middleware.Viewer(jwtSecret))
	logger.Log.Info("Global middleware configured")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, deps Dependencies) {
	stores := deps.Stores

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "Social media API"})
	})

	// --- Shared services ---
	directory := cache.NewDirectory(stores.Users, deps.Cache, deps.CacheTTL)
	recorder := activity.NewRecorder(stores.ActivityLogs, stores.Notifications, stores.UserSettings)
	targets := resolver.New(stores, directory)
	feeds := feed.NewService(stores, directory, deps.FeedCandidateLimit)
	cascades := cascade.NewService(stores)

	api := e.Group("/api")

	authHandler := handlers.NewAuthHandler(stores.Users, recorder, deps.JWTSecret, deps.TokenTTL)
	authHandler.RegisterAuthRoutes(api)

	handlers.NewUserHandler(stores.Users, directory, cascades).RegisterUserRoutes(api)
	handlers.NewProfileHandler(stores.Profiles, recorder).RegisterProfileRoutes(api)
	handlers.NewUserSettingsHandler(stores.UserSettings).RegisterUserSettingsRoutes(api)
	logger.Log.Info("User routes configured")

	handlers.NewPostHandler(stores.Posts, recorder, cascades).RegisterPostRoutes(api)
	handlers.NewCommentHandler(stores.Comments, stores.Posts, recorder).RegisterCommentRoutes(api)
	handlers.NewLikeHandler(stores.Likes, stores.Posts, stores.Comments, recorder).RegisterLikeRoutes(api)
	handlers.NewShareHandler(stores.Shares, stores.Posts, recorder).RegisterShareRoutes(api)
	logger.Log.Info("Post routes configured")

	handlers.NewFollowHandler(stores.Follows, recorder).RegisterFollowRoutes(api)
	handlers.NewMessageHandler(stores.Messages, recorder).RegisterMessageRoutes(api)
	handlers.NewNotificationHandler(stores.Notifications, recorder).RegisterNotificationRoutes(api)
	logger.Log.Info("Social routes configured")

	handlers.NewMediaHandler(stores.Media, deps.Objects, deps.MaxUploadSize).RegisterMediaRoutes(api)
	handlers.NewReportHandler(stores.Reports, targets, recorder).RegisterReportRoutes(api)
	handlers.NewSearchHistoryHandler(stores.SearchHistory).RegisterSearchHistoryRoutes(api)
	handlers.NewActivityLogHandler(stores.ActivityLogs, targets).RegisterActivityLogRoutes(api)

	handlers.NewFeedHandler(feeds).RegisterFeedRoutes(api)
	logger.Log.Info("All routes configured", zap.Bool("media_upload", deps.Objects != nil))
}
