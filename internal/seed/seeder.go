// Package seed fills the stores with fake users, profiles, posts and interactions for
// local development.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/models"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/repositories"
	"github.com/cypheredvortex/mern-social-media-sub000/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// DefaultPassword is the password of every seeded user
const DefaultPassword = "password123"

type Options struct {
	Users int
	Posts int
	// Seed makes runs reproducible. Zero picks a random seed.
	Seed uint64
}

type Result struct {
	Users    int `json:"users"`
	Posts    int `json:"posts"`
	Comments int `json:"comments"`
	Likes    int `json:"likes"`
	Follows  int `json:"follows"`
}

// Seeder handles database seeding operations
type Seeder struct {
	stores *repositories.Stores
}

func NewSeeder(stores *repositories.Stores) *Seeder {
	return &Seeder{stores: stores}
}

// Run creates opts.Users users with profiles and settings, opts.Posts posts spread over
// them, and a few follows, comments and likes with matching counters.
func (s *Seeder) Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Users < 1 {
		return nil, errors.New("at least one user is required")
	}
	faker := gofakeit.New(opts.Seed)
	res := &Result{}

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	logger.Log.Info("Creating users...", zap.Int("count", opts.Users))
	users := make([]models.User, 0, opts.Users)
	for len(users) < opts.Users {
		user, err := s.seedUser(ctx, faker, string(hash))
		if errors.Is(err, repositories.ErrDuplicate) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to seed users: %w", err)
		}
		users = append(users, *user)
	}
	res.Users = len(users)

	logger.Log.Info("Creating follows...")
	for i, follower := range users {
		if len(users) < 2 {
			break
		}
		followed := users[(i+1+faker.Number(0, len(users)-2))%len(users)]
		if followed.ID == follower.ID {
			continue
		}
		f := &models.Follow{
			FollowerID: follower.ID,
			FollowedID: followed.ID,
			Status:     faker.RandomString([]string{models.FollowAccepted, models.FollowAccepted, models.FollowPending}),
		}
		switch err := s.stores.Follows.Create(ctx, f); {
		case err == nil:
			res.Follows++
		case !errors.Is(err, repositories.ErrDuplicate):
			return nil, fmt.Errorf("failed to seed follows: %w", err)
		}
	}

	logger.Log.Info("Creating posts...", zap.Int("count", opts.Posts))
	for i := 0; i < opts.Posts; i++ {
		author := users[faker.Number(0, len(users)-1)]
		post := &models.Post{
			AuthorID:   author.ID,
			Content:    faker.HipsterSentence(),
			Visibility: faker.RandomString([]string{models.VisibilityPublic, models.VisibilityPublic, models.VisibilityFriends, models.VisibilityPrivate}),
		}
		if err := s.stores.Posts.Create(ctx, post); err != nil {
			return nil, fmt.Errorf("failed to seed posts: %w", err)
		}
		res.Posts++

		for _, reader := range users {
			if reader.ID == author.ID {
				continue
			}
			switch faker.Number(0, 9) {
			case 0, 1:
				if err := s.like(ctx, reader, post); err != nil {
					return nil, err
				}
				res.Likes++
			case 2:
				if err := s.comment(ctx, faker, reader, post); err != nil {
					return nil, err
				}
				res.Comments++
			}
		}
	}

	logger.Log.Info("Seeding complete",
		zap.Int("users", res.Users),
		zap.Int("posts", res.Posts),
		zap.Int("comments", res.Comments),
		zap.Int("likes", res.Likes),
	)
	return res, nil
}

func (s *Seeder) seedUser(ctx context.Context, faker *gofakeit.Faker, hash string) (*models.User, error) {
	user := &models.User{
		Username: faker.Username(),
		Email:    faker.Email(),
		Password: hash,
		Role:     models.RoleUser,
		Status:   models.StatusActive,
	}
	if err := s.stores.Users.Create(ctx, user); err != nil {
		return nil, err
	}

	profile := &models.Profile{
		UserID:         user.ID,
		Bio:            faker.HipsterSentence(),
		ProfilePicture: fmt.Sprintf("https://api.dicebear.com/7.x/avataaars/png?seed=%s", user.Username),
		Location:       faker.City(),
		Interests:      []string{faker.Word(), faker.Word()},
	}
	if err := s.stores.Profiles.Create(ctx, profile); err != nil {
		return nil, err
	}
	settings := &models.UserSettings{
		UserID:               user.ID,
		Language:             "en",
		NotificationsEnabled: true,
		PrivacyVisibility:    models.VisibilityPublic,
	}
	if err := s.stores.UserSettings.Create(ctx, settings); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Seeder) like(ctx context.Context, user models.User, post *models.Post) error {
	like := &models.Like{UserID: user.ID, TargetID: post.ID, TargetType: models.LikeTargetPost}
	if err := s.stores.Likes.Create(ctx, like); err != nil {
		return fmt.Errorf("failed to seed likes: %w", err)
	}
	_, err := s.stores.Posts.Increment(ctx, post.Key(), "like_count", 1)
	return err
}

func (s *Seeder) comment(ctx context.Context, faker *gofakeit.Faker, user models.User, post *models.Post) error {
	comment := &models.Comment{PostID: post.ID, AuthorID: user.ID, Content: faker.HipsterSentence()}
	if err := s.stores.Comments.Create(ctx, comment); err != nil {
		return fmt.Errorf("failed to seed comments: %w", err)
	}
	_, err := s.stores.Posts.Increment(ctx, post.Key(), "comment_count", 1)
	return err
}
