package repositories

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// collectionIndexes lists the indexes each collection needs. Unique indexes back the
// application-level duplicate checks for users, profiles, settings and follows. Likes and
// shares are deliberately left without a unique index.
var collectionIndexes = map[string][]mongo.IndexModel{
	CollectionUsers: {
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	},
	CollectionProfiles: {
		{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
	},
	CollectionUserSettings: {
		{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
	},
	CollectionFollows: {
		{Keys: bson.D{{Key: "follower_id", Value: 1}, {Key: "followed_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "followed_id", Value: 1}}},
	},
	CollectionPosts: {
		{Keys: bson.D{{Key: "author_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	},
	CollectionComments: {
		{Keys: bson.D{{Key: "post_id", Value: 1}, {Key: "created_at", Value: 1}}},
		{Keys: bson.D{{Key: "author_id", Value: 1}}},
	},
	CollectionLikes: {
		{Keys: bson.D{{Key: "target_id", Value: 1}, {Key: "user_id", Value: 1}}},
	},
	CollectionShares: {
		{Keys: bson.D{{Key: "post_id", Value: 1}, {Key: "user_id", Value: 1}}},
	},
	CollectionMessages: {
		{Keys: bson.D{{Key: "sender_id", Value: 1}, {Key: "receiver_id", Value: 1}, {Key: "created_at", Value: 1}}},
	},
	CollectionNotifications: {
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "read", Value: 1}}},
	},
	CollectionMedia: {
		{Keys: bson.D{{Key: "uploader_id", Value: 1}}},
	},
	CollectionReports: {
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
	},
}

// EnsureIndexes creates the indexes every collection needs. It is safe to run repeatedly.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for name, indexes := range collectionIndexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return nil
}
