package cascade

import (
	"context"

	"github.com/cypheredvortex/mern-social-media-sub000/internal/models"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/repositories"
	"github.com/cypheredvortex/mern-social-media-sub000/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Service removes posts and accounts together with their dependent records
type Service struct {
	stores *repositories.Stores
}

func NewService(stores *repositories.Stores) *Service {
	return &Service{stores: stores}
}

// DeletePost removes a post, its comments, the likes on the post and on those comments,
// its shares and its media. Returns repositories.ErrNotFound for an unknown post.
func (s *Service) DeletePost(ctx context.Context, id string) (*models.Post, error) {
	post, err := s.stores.Posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := NewSaga("delete_post", s.postSteps(*post)...).Run(ctx); err != nil {
		return nil, err
	}
	logger.Log.Info("post deleted with dependents", zap.String("post_id", post.ID.Hex()))
	return post, nil
}

// DeleteAccount removes a user and everything the user owns. Activity logs and messages
// are kept. Counters on other users' posts and comments are decremented for the user's
// likes, comments and shares.
func (s *Service) DeleteAccount(ctx context.Context, id string) (*models.User, error) {
	user, err := s.stores.Users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	posts, err := s.stores.Posts.List(ctx, repositories.ListOptions{Filter: repositories.Filter{"author_id": user.ID}})
	if err != nil {
		return nil, err
	}

	saga := NewSaga("delete_account")
	for _, p := range posts {
		saga.Add(s.postSteps(p)...)
	}
	// Everything below runs after the user's own posts are gone, so the remaining
	// comments, likes and shares all point at other users' content.
	saga.Add(s.ownedContentSteps(user.ID)...)

	follows := purgeWhere[models.Follow](s.stores.Follows, repositories.Filter{"$or": []repositories.Filter{
		{"follower_id": user.ID},
		{"followed_id": user.ID},
	}})
	notifications := purgeWhere[models.Notification](s.stores.Notifications, repositories.Filter{"user_id": user.ID})
	media := purgeWhere[models.Media](s.stores.Media, repositories.Filter{"uploader_id": user.ID})
	searches := purgeWhere[models.SearchHistory](s.stores.SearchHistory, repositories.Filter{"user_id": user.ID.Hex()})
	profile := purgeWhere[models.Profile](s.stores.Profiles, repositories.Filter{"user_id": user.ID})
	settings := purgeWhere[models.UserSettings](s.stores.UserSettings, repositories.Filter{"user_id": user.ID})
	saga.Add(
		follows.step("follows"),
		notifications.step("notifications"),
		media.step("media"),
		searches.step("search_history"),
		profile.step("profile"),
		settings.step("settings"),
		Step{
			Name: "user",
			Do: func(ctx context.Context) error {
				_, err := s.stores.Users.Delete(ctx, user.Key())
				return err
			},
			Undo: func(ctx context.Context) error {
				return s.stores.Users.Restore(ctx, []models.User{*user})
			},
		},
	)

	if err := saga.Run(ctx); err != nil {
		return nil, err
	}
	logger.Log.Info("account deleted", logger.WithUserID(user.ID.Hex()), zap.Int("posts", len(posts)))
	return user, nil
}

func (s *Service) postSteps(post models.Post) []Step {
	prefix := "post " + post.ID.Hex() + ": "

	comments := purgeWhere[models.Comment](s.stores.Comments, repositories.Filter{"post_id": post.ID})
	likes := &purge[models.Like]{
		store: s.stores.Likes,
		filter: func() (repositories.Filter, bool) {
			targets := append(repositories.In{post.ID}, ids(comments.deleted, commentID)...)
			return repositories.Filter{"target_id": targets}, true
		},
	}
	shares := purgeWhere[models.Share](s.stores.Shares, repositories.Filter{"post_id": post.ID})
	media := purgeWhere[models.Media](s.stores.Media, repositories.Filter{"post_id": post.ID})

	return []Step{
		comments.step(prefix + "comments"),
		likes.step(prefix + "likes"),
		shares.step(prefix + "shares"),
		media.step(prefix + "media"),
		{
			Name: prefix + "post",
			Do: func(ctx context.Context) error {
				_, err := s.stores.Posts.Delete(ctx, post.Key())
				return err
			},
			Undo: func(ctx context.Context) error {
				return s.stores.Posts.Restore(ctx, []models.Post{post})
			},
		},
	}
}

// ownedContentSteps removes the comments, likes and shares a user left on other users'
// content and takes them off the counters they contributed to.
func (s *Service) ownedContentSteps(userID primitive.ObjectID) []Step {
	comments := purgeWhere[models.Comment](s.stores.Comments, repositories.Filter{"author_id": userID})
	likesOnComments := &purge[models.Like]{
		store: s.stores.Likes,
		filter: func() (repositories.Filter, bool) {
			if len(comments.deleted) == 0 {
				return nil, false
			}
			return repositories.Filter{"target_id": ids(comments.deleted, commentID)}, true
		},
	}
	likes := purgeWhere[models.Like](s.stores.Likes, repositories.Filter{"user_id": userID})
	shares := purgeWhere[models.Share](s.stores.Shares, repositories.Filter{"user_id": userID})

	return []Step{
		comments.step("comments"),
		counterStep("comment counters", s.stores.Posts, "comment_count", func() []primitive.ObjectID {
			out := make([]primitive.ObjectID, 0, len(comments.deleted))
			for _, c := range comments.deleted {
				out = append(out, c.PostID)
			}
			return out
		}),
		likesOnComments.step("likes on comments"),
		likes.step("likes"),
		counterStep("post like counters", s.stores.Posts, "like_count", func() []primitive.ObjectID {
			return likeTargets(likes.deleted, false)
		}),
		counterStep("comment like counters", s.stores.Comments, "like_count", func() []primitive.ObjectID {
			return likeTargets(likes.deleted, true)
		}),
		shares.step("shares"),
		counterStep("share counters", s.stores.Posts, "share_count", func() []primitive.ObjectID {
			out := make([]primitive.ObjectID, 0, len(shares.deleted))
			for _, sh := range shares.deleted {
				out = append(out, sh.PostID)
			}
			return out
		}),
	}
}

func commentID(c models.Comment) primitive.ObjectID { return c.ID }

func likeTargets(likes []models.Like, onComment bool) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(likes))
	for _, l := range likes {
		if l.OnComment() == onComment {
			out = append(out, l.TargetID)
		}
	}
	return out
}
