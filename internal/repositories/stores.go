package repositories

import (
	"github.com/cypheredvortex/mern-social-media-sub000/internal/models"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

const (
	CollectionUsers         = "users"
	CollectionProfiles      = "profiles"
	CollectionUserSettings  = "user_settings"
	CollectionPosts         = "posts"
	CollectionComments      = "comments"
	CollectionLikes         = "likes"
	CollectionShares        = "shares"
	CollectionFollows       = "follows"
	CollectionMessages      = "messages"
	CollectionNotifications = "notifications"
	CollectionMedia         = "media"
	CollectionReports       = "reports"
)

// Stores groups one store per entity
type Stores struct {
	Users         SearchStore[models.User]
	Profiles      Store[models.Profile]
	UserSettings  Store[models.UserSettings]
	Posts         CounterStore[models.Post]
	Comments      CounterStore[models.Comment]
	Likes         Store[models.Like]
	Shares        Store[models.Share]
	Follows       Store[models.Follow]
	Messages      Store[models.Message]
	Notifications Store[models.Notification]
	Media         Store[models.Media]
	Reports       Store[models.Report]
	SearchHistory Store[models.SearchHistory]
	ActivityLogs  Store[models.ActivityLog]
}

// NewStores builds the document stores on MongoDB and the log tables on the SQL database
func NewStores(mdb *mongo.Database, sqlDB *gorm.DB) *Stores {
	return &Stores{
		Users:         NewMongoStore[models.User](mdb, CollectionUsers),
		Profiles:      NewMongoStore[models.Profile](mdb, CollectionProfiles),
		UserSettings:  NewMongoStore[models.UserSettings](mdb, CollectionUserSettings),
		Posts:         NewMongoStore[models.Post](mdb, CollectionPosts),
		Comments:      NewMongoStore[models.Comment](mdb, CollectionComments),
		Likes:         NewMongoStore[models.Like](mdb, CollectionLikes),
		Shares:        NewMongoStore[models.Share](mdb, CollectionShares),
		Follows:       NewMongoStore[models.Follow](mdb, CollectionFollows),
		Messages:      NewMongoStore[models.Message](mdb, CollectionMessages),
		Notifications: NewMongoStore[models.Notification](mdb, CollectionNotifications),
		Media:         NewMongoStore[models.Media](mdb, CollectionMedia),
		Reports:       NewMongoStore[models.Report](mdb, CollectionReports),
		SearchHistory: NewGormStore[models.SearchHistory](sqlDB),
		ActivityLogs:  NewGormStore[models.ActivityLog](sqlDB),
	}
}

// Migrate creates the SQL tables
func Migrate(sqlDB *gorm.DB) error {
	return sqlDB.AutoMigrate(&models.ActivityLog{}, &models.SearchHistory{})
}
