// Package counters recomputes the denormalized like, comment and share counters from
// the child collections they summarize.
package counters

import (
	"context"

	"github.com/cypheredvortex/mern-social-media-sub000/internal/models"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/repositories"
	"github.com/cypheredvortex/mern-social-media-sub000/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Drift is one counter whose stored value differs from the recomputed one
type Drift struct {
	Collection string             `json:"collection"`
	ID         primitive.ObjectID `json:"id"`
	Field      string             `json:"field"`
	Stored     int                `json:"stored"`
	Actual     int                `json:"actual"`
}

type Reconciler struct {
	posts    repositories.CounterStore[models.Post]
	comments repositories.CounterStore[models.Comment]
	likes    repositories.Store[models.Like]
	shares   repositories.Store[models.Share]
}

func NewReconciler(stores *repositories.Stores) *Reconciler {
	return &Reconciler{
		posts:    stores.Posts,
		comments: stores.Comments,
		likes:    stores.Likes,
		shares:   stores.Shares,
	}
}

// Reconcile finds every drifted counter and, unless dryRun is set, overwrites it with
// the recomputed value.
func (r *Reconciler) Reconcile(ctx context.Context, dryRun bool) ([]Drift, error) {
	likes, err := r.likes.List(ctx, repositories.ListOptions{})
	if err != nil {
		return nil, err
	}
	shares, err := r.shares.List(ctx, repositories.ListOptions{})
	if err != nil {
		return nil, err
	}
	comments, err := r.comments.List(ctx, repositories.ListOptions{})
	if err != nil {
		return nil, err
	}
	posts, err := r.posts.List(ctx, repositories.ListOptions{})
	if err != nil {
		return nil, err
	}

	likeCount := make(map[primitive.ObjectID]int)
	for _, l := range likes {
		likeCount[l.TargetID]++
	}
	shareCount := make(map[primitive.ObjectID]int)
	for _, s := range shares {
		shareCount[s.PostID]++
	}
	commentCount := make(map[primitive.ObjectID]int)
	for _, c := range comments {
		commentCount[c.PostID]++
	}

	drifts := make([]Drift, 0)
	for _, p := range posts {
		fields := repositories.Fields{}
		check := func(field string, stored, actual int) {
			if stored != actual {
				drifts = append(drifts, Drift{Collection: repositories.CollectionPosts, ID: p.ID, Field: field, Stored: stored, Actual: actual})
				fields[field] = actual
			}
		}
		check("like_count", p.LikeCount, likeCount[p.ID])
		check("comment_count", p.CommentCount, commentCount[p.ID])
		check("share_count", p.ShareCount, shareCount[p.ID])
		if err := apply[models.Post](ctx, r.posts, p.Key(), fields, dryRun); err != nil {
			return nil, err
		}
	}
	for _, c := range comments {
		if c.LikeCount == likeCount[c.ID] {
			continue
		}
		drifts = append(drifts, Drift{Collection: repositories.CollectionComments, ID: c.ID, Field: "like_count", Stored: c.LikeCount, Actual: likeCount[c.ID]})
		if err := apply[models.Comment](ctx, r.comments, c.Key(), repositories.Fields{"like_count": likeCount[c.ID]}, dryRun); err != nil {
			return nil, err
		}
	}

	logger.Log.Info("counters reconciled", zap.Int("drifted", len(drifts)), zap.Bool("dry_run", dryRun))
	return drifts, nil
}

func apply[T any](ctx context.Context, store repositories.Store[T], id string, fields repositories.Fields, dryRun bool) error {
	if dryRun || len(fields) == 0 {
		return nil
	}
	_, err := store.Update(ctx, id, fields)
	return err
}
