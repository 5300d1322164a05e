package repotest

import (
	"testing"

	"github.com/cypheredvortex/mern-social-media-sub000/internal/models"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/repositories"
)

// Stores holds an in-memory store for every document collection, with the unique
// indexes EnsureIndexes creates, and SQLite-backed stores for the SQL tables.
type Stores struct {
	Users         *Store[models.User]
	Profiles      *Store[models.Profile]
	UserSettings  *Store[models.UserSettings]
	Posts         *Store[models.Post]
	Comments      *Store[models.Comment]
	Likes         *Store[models.Like]
	Shares        *Store[models.Share]
	Follows       *Store[models.Follow]
	Messages      *Store[models.Message]
	Notifications *Store[models.Notification]
	Media         *Store[models.Media]
	Reports       *Store[models.Report]
	SearchHistory *repositories.GormStore[models.SearchHistory]
	ActivityLogs  *repositories.GormStore[models.ActivityLog]
}

func NewStores(t testing.TB) *Stores {
	db := OpenSQLite(t)
	return &Stores{
		Users:         NewStore[models.User]().Unique("email"),
		Profiles:      NewStore[models.Profile]().Unique("user_id"),
		UserSettings:  NewStore[models.UserSettings]().Unique("user_id"),
		Posts:         NewStore[models.Post](),
		Comments:      NewStore[models.Comment](),
		Likes:         NewStore[models.Like](),
		Shares:        NewStore[models.Share](),
		Follows:       NewStore[models.Follow]().Unique("follower_id", "followed_id"),
		Messages:      NewStore[models.Message](),
		Notifications: NewStore[models.Notification](),
		Media:         NewStore[models.Media](),
		Reports:       NewStore[models.Report](),
		SearchHistory: repositories.NewGormStore[models.SearchHistory](db),
		ActivityLogs:  repositories.NewGormStore[models.ActivityLog](db),
	}
}

// Bundle exposes the stores through the interfaces the application depends on.
func (s *Stores) Bundle() *repositories.Stores {
	return &repositories.Stores{
		Users:         s.Users,
		Profiles:      s.Profiles,
		UserSettings:  s.UserSettings,
		Posts:         s.Posts,
		Comments:      s.Comments,
		Likes:         s.Likes,
		Shares:        s.Shares,
		Follows:       s.Follows,
		Messages:      s.Messages,
		Notifications: s.Notifications,
		Media:         s.Media,
		Reports:       s.Reports,
		SearchHistory: s.SearchHistory,
		ActivityLogs:  s.ActivityLogs,
	}
}
