package feed

import (
	"context"
	"math"
	"time"

	"github.com/cypheredvortex/mern-social-media-sub000/internal/metrics"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/models"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Users resolves author ids to compact users
type Users interface {
	Lookup(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.UserCompact, error)
}

type Service struct {
	posts    repositories.Store[models.Post]
	comments repositories.Store[models.Comment]
	profiles repositories.Store[models.Profile]
	likes    repositories.Store[models.Like]
	shares   repositories.Store[models.Share]
	follows  repositories.Store[models.Follow]
	users    Users

	candidateLimit int64
}

// NewService creates a feed service. candidateLimit caps how many recent posts are
// considered before visibility filtering and ranking.
func NewService(stores *repositories.Stores, users Users, candidateLimit int) *Service {
	return &Service{
		posts:          stores.Posts,
		comments:       stores.Comments,
		profiles:       stores.Profiles,
		likes:          stores.Likes,
		shares:         stores.Shares,
		follows:        stores.Follows,
		users:          users,
		candidateLimit: int64(candidateLimit),
	}
}

type Query struct {
	ViewerID primitive.ObjectID
	AuthorID primitive.ObjectID
	Order    Order
	Page     int
	Limit    int
}

type Meta struct {
	CurrentPage     int  `json:"currentPage"`
	TotalPages      int  `json:"totalPages"`
	TotalItems      int  `json:"totalItems"`
	ItemsPerPage    int  `json:"itemsPerPage"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

type Page struct {
	Posts []PostView `json:"posts"`
	Meta  Meta       `json:"meta"`
}

// Feed returns one page of posts visible to the viewer, ranked by q.Order
func (s *Service) Feed(ctx context.Context, q Query) (*Page, error) {
	defer observe("feed", time.Now())

	filter := repositories.Filter{}
	if !q.AuthorID.IsZero() {
		filter["author_id"] = q.AuthorID
	}
	candidates, err := s.posts.List(ctx, repositories.ListOptions{Filter: filter, Limit: s.candidateLimit})
	if err != nil {
		return nil, err
	}
	following, err := s.following(ctx, q.ViewerID)
	if err != nil {
		return nil, err
	}

	visible := make([]models.Post, 0, len(candidates))
	for _, p := range candidates {
		if Visible(p, q.ViewerID, following) {
			visible = append(visible, p)
		}
	}
	ranked := Rank(visible, q.Order)

	page, limit := normalizePage(q.Page, q.Limit)
	start := min((page-1)*limit, len(ranked))
	end := min(start+limit, len(ranked))

	views, err := s.assemble(ctx, ranked[start:end], q.ViewerID)
	if err != nil {
		return nil, err
	}

	totalPages := int(math.Ceil(float64(len(ranked)) / float64(limit)))
	return &Page{
		Posts: views,
		Meta: Meta{
			CurrentPage:     page,
			TotalPages:      totalPages,
			TotalItems:      len(ranked),
			ItemsPerPage:    limit,
			HasNextPage:     page < totalPages,
			HasPreviousPage: page > 1,
		},
	}, nil
}

// Comments returns the thread view of a post's comments. A post the viewer may not see
// is reported as repositories.ErrNotFound.
func (s *Service) Comments(ctx context.Context, postID string, viewer primitive.ObjectID) ([]Thread, error) {
	defer observe("comments", time.Now())

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.Visibility == models.VisibilityFriends || post.Visibility == models.VisibilityPrivate {
		following, err := s.following(ctx, viewer)
		if err != nil {
			return nil, err
		}
		if !Visible(*post, viewer, following) {
			return nil, repositories.ErrNotFound
		}
	}

	comments, err := s.comments.List(ctx, repositories.ListOptions{
		Filter:      repositories.Filter{"post_id": post.ID},
		OldestFirst: true,
	})
	if err != nil {
		return nil, err
	}
	if len(comments) == 0 {
		return []Thread{}, nil
	}

	commentIDs := make(repositories.In, 0, len(comments))
	authorIDs := make([]primitive.ObjectID, 0, len(comments))
	for _, c := range comments {
		commentIDs = append(commentIDs, c.ID)
		authorIDs = append(authorIDs, c.AuthorID)
	}

	var (
		authors map[primitive.ObjectID]models.UserCompact
		likes   []models.Like
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		authors, err = s.users.Lookup(gctx, dedupe(authorIDs))
		return err
	})
	if !viewer.IsZero() {
		g.Go(func() error {
			var err error
			likes, err = s.likes.List(gctx, repositories.ListOptions{Filter: repositories.Filter{
				"user_id":     viewer,
				"target_id":   commentIDs,
				"target_type": repositories.In{models.LikeTargetComment, models.LikeTargetReply},
			}})
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return AssembleThreads(comments, authors, likes, viewer), nil
}

// assemble fetches only the records that belong to the given posts
func (s *Service) assemble(ctx context.Context, posts []models.Post, viewer primitive.ObjectID) ([]PostView, error) {
	if len(posts) == 0 {
		return []PostView{}, nil
	}

	postIDs := make(repositories.In, 0, len(posts))
	authorIDs := make([]primitive.ObjectID, 0, len(posts))
	for _, p := range posts {
		postIDs = append(postIDs, p.ID)
		authorIDs = append(authorIDs, p.AuthorID)
	}
	authorIDs = dedupe(authorIDs)
	authorIn := make(repositories.In, 0, len(authorIDs))
	for _, id := range authorIDs {
		authorIn = append(authorIn, id)
	}

	var (
		authors  map[primitive.ObjectID]models.UserCompact
		profiles []models.Profile
		likes    []models.Like
		shares   []models.Share
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		authors, err = s.users.Lookup(gctx, authorIDs)
		return err
	})
	g.Go(func() error {
		var err error
		profiles, err = s.profiles.List(gctx, repositories.ListOptions{Filter: repositories.Filter{"user_id": authorIn}})
		return err
	})
	g.Go(func() error {
		var err error
		shares, err = s.shares.List(gctx, repositories.ListOptions{Filter: repositories.Filter{"post_id": postIDs}})
		return err
	})
	if !viewer.IsZero() {
		g.Go(func() error {
			var err error
			likes, err = s.likes.List(gctx, repositories.ListOptions{Filter: repositories.Filter{
				"user_id":     viewer,
				"target_type": models.LikeTargetPost,
				"target_id":   postIDs,
			}})
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return AssemblePosts(posts, authors, profiles, likes, shares, viewer), nil
}

func (s *Service) following(ctx context.Context, viewer primitive.ObjectID) (map[primitive.ObjectID]bool, error) {
	set := map[primitive.ObjectID]bool{}
	if viewer.IsZero() {
		return set, nil
	}
	follows, err := s.follows.List(ctx, repositories.ListOptions{Filter: repositories.Filter{
		"follower_id": viewer,
		"status":      models.FollowAccepted,
	}})
	if err != nil {
		return nil, err
	}
	for _, f := range follows {
		set[f.FollowedID] = true
	}
	return set, nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

func dedupe(ids []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]bool, len(ids))
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func observe(view string, start time.Time) {
	metrics.Get().FeedAssemblyDuration.WithLabelValues(view).Observe(time.Since(start).Seconds())
}
