package config

import (
	"context"
	"fmt"
	"time"

	"github.com/cypheredvortex/mern-social-media-sub000/internal/repositories"
	"github.com/cypheredvortex/mern-social-media-sub000/pkg/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB holds the database connections
type DB struct {
	SQL      *gorm.DB
	Mongo    *mongo.Client
	Database *mongo.Database
}

// InitDB connects to MongoDB and the SQL store, migrates the SQL tables and ensures indexes
func InitDB(cfg *Config) (*DB, error) {
	mongoClient, err := initMongo(cfg.MongoURI)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	database := mongoClient.Database(cfg.MongoDatabase)

	sqlDB, err := initSQL(cfg)
	if err != nil {
		_ = mongoClient.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to open SQL store: %w", err)
	}

	db := &DB{SQL: sqlDB, Mongo: mongoClient, Database: database}
	if err := repositories.Migrate(sqlDB); err != nil {
		db.CloseDB()
		return nil, fmt.Errorf("failed to migrate SQL tables: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := repositories.EnsureIndexes(ctx, database); err != nil {
		db.CloseDB()
		return nil, err
	}
	return db, nil
}

// initSQL opens PostgreSQL when a URL is configured and falls back to a SQLite file
func initSQL(cfg *Config) (*gorm.DB, error) {
	dialector := sqlite.Open(cfg.SQLitePath)
	driver := "sqlite"
	if cfg.PostgresUrl != "" {
		dialector = postgres.Open(cfg.PostgresUrl)
		driver = "postgres"
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err = sqlDB.Ping(); err != nil {
		return nil, err
	}

	logger.Log.Info("Connected to SQL store", zap.String("driver", driver))
	return db, nil
}

// initMongo initializes the MongoDB connection
func initMongo(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	// Ping the primary to verify connection
	if err = client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	logger.Log.Info("Connected to MongoDB")
	return client, nil
}

// CloseDB closes the database connections
func (db *DB) CloseDB() {
	if db.SQL != nil {
		if sqlDB, err := db.SQL.DB(); err != nil {
			logger.Log.Warn("Error getting SQL DB from GORM", zap.Error(err))
		} else if err := sqlDB.Close(); err != nil {
			logger.Log.Warn("Error closing SQL connection", zap.Error(err))
		} else {
			logger.Log.Info("SQL connection closed")
		}
	}

	if db.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Mongo.Disconnect(ctx); err != nil {
			logger.Log.Warn("Error closing MongoDB connection", zap.Error(err))
		} else {
			logger.Log.Info("MongoDB connection closed")
		}
	}
}
