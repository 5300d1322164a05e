// Package resolver turns a (discriminator, target id) pair into the referenced record,
// enriched with display names. Activity logs and reports both use it, each with its own
// mapping table.
package resolver

import (
	"context"
	"errors"

	"github.com/cypheredvortex/mern-social-media-sub000/internal/metrics"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/models"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/repositories"
	"github.com/cypheredvortex/mern-social-media-sub000/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Kind names the collection a target lives in
type Kind string

const (
	KindPost         Kind = "post"
	KindComment      Kind = "comment"
	KindUser         Kind = "user"
	KindFollow       Kind = "follow"
	KindNotification Kind = "notification"
	// KindNone is accepted but never resolved; the target is left out of the response.
	KindNone Kind = "none"
	// KindRaw is the fallback for unmapped discriminators: the target is echoed as {id}.
	KindRaw Kind = "raw"
)

// Table maps a discriminator value to the kind of its target
type Table map[string]Kind

// KindOf returns the mapped kind, or KindRaw for unknown discriminators
func (t Table) KindOf(discriminator string) Kind {
	if kind, ok := t[discriminator]; ok {
		return kind
	}
	return KindRaw
}

// ActivityTargets maps activity log actions to target kinds
var ActivityTargets = Table{
	models.ActionCreatedPost:      KindPost,
	models.ActionUpdatedPost:      KindPost,
	models.ActionDeletedPost:      KindPost,
	models.ActionLikedPost:        KindPost,
	models.ActionSharedPost:       KindPost,
	models.ActionCommented:        KindComment,
	models.ActionFollowedUser:     KindFollow,
	models.ActionUnfollowedUser:   KindUser,
	models.ActionLogin:            KindUser,
	models.ActionLogout:           KindUser,
	models.ActionUpdatedProfile:   KindUser,
	models.ActionReadNotification: KindNotification,
}

// ReportTargets maps report target types to target kinds
var ReportTargets = Table{
	models.ReportTargetUser:    KindUser,
	models.ReportTargetPost:    KindPost,
	models.ReportTargetComment: KindComment,
	models.ReportTargetMedia:   KindNone,
}

// Resolution is the outcome of resolving one target. Target is nil when the record is
// missing, the id is empty or the kind is KindNone.
type Resolution struct {
	Kind   Kind
	ID     string
	Target any
}

// Omitted reports whether the target field should be left out of the response
func (r Resolution) Omitted() bool {
	return r.Kind == KindNone
}

type PostTarget struct {
	models.Post
	AuthorName string `json:"author_name"`
}

type CommentTarget struct {
	models.Comment
	AuthorName string `json:"author_name"`
}

type FollowTarget struct {
	models.Follow
	FollowerName string `json:"follower_name"`
	FollowedName string `json:"followed_name"`
}

type NotificationTarget struct {
	models.Notification
	SenderName string `json:"sender_name,omitempty"`
}

type RawTarget struct {
	ID string `json:"id"`
}

// Names looks up display names for user ids
type Names interface {
	Lookup(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.UserCompact, error)
}

type Resolver struct {
	posts         repositories.Store[models.Post]
	comments      repositories.Store[models.Comment]
	users         repositories.Store[models.User]
	follows       repositories.Store[models.Follow]
	notifications repositories.Store[models.Notification]
	names         Names
}

func New(stores *repositories.Stores, names Names) *Resolver {
	return &Resolver{
		posts:         stores.Posts,
		comments:      stores.Comments,
		users:         stores.Users,
		follows:       stores.Follows,
		notifications: stores.Notifications,
		names:         names,
	}
}

// Resolve fetches and enriches the target named by discriminator and targetID. A missing
// target is not an error. Store failures are.
func (r *Resolver) Resolve(ctx context.Context, table Table, discriminator, targetID string) (Resolution, error) {
	kind := table.KindOf(discriminator)
	res := Resolution{Kind: kind, ID: targetID}
	if targetID == "" || kind == KindNone {
		record(kind, "skipped")
		return res, nil
	}

	var (
		target any
		err    error
	)
	switch kind {
	case KindPost:
		target, err = r.post(ctx, targetID)
	case KindComment:
		target, err = r.comment(ctx, targetID)
	case KindUser:
		target, err = r.users.GetByID(ctx, targetID)
	case KindFollow:
		target, err = r.follow(ctx, targetID)
	case KindNotification:
		target, err = r.notification(ctx, targetID)
	default:
		target = RawTarget{ID: targetID}
	}

	if errors.Is(err, repositories.ErrNotFound) {
		record(kind, "missing")
		return res, nil
	}
	if err != nil {
		record(kind, "error")
		logger.Log.Error("target resolution failed", logger.WithTarget(string(kind), targetID), zap.Error(err))
		return Resolution{}, err
	}
	record(kind, "found")
	res.Target = target
	return res, nil
}

func (r *Resolver) post(ctx context.Context, id string) (*PostTarget, error) {
	p, err := r.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	names, err := r.names.Lookup(ctx, []primitive.ObjectID{p.AuthorID})
	if err != nil {
		return nil, err
	}
	return &PostTarget{Post: *p, AuthorName: names[p.AuthorID].Username}, nil
}

func (r *Resolver) comment(ctx context.Context, id string) (*CommentTarget, error) {
	c, err := r.comments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	names, err := r.names.Lookup(ctx, []primitive.ObjectID{c.AuthorID})
	if err != nil {
		return nil, err
	}
	return &CommentTarget{Comment: *c, AuthorName: names[c.AuthorID].Username}, nil
}

func (r *Resolver) follow(ctx context.Context, id string) (*FollowTarget, error) {
	f, err := r.follows.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	names, err := r.names.Lookup(ctx, []primitive.ObjectID{f.FollowerID, f.FollowedID})
	if err != nil {
		return nil, err
	}
	return &FollowTarget{
		Follow:       *f,
		FollowerName: names[f.FollowerID].Username,
		FollowedName: names[f.FollowedID].Username,
	}, nil
}

func (r *Resolver) notification(ctx context.Context, id string) (*NotificationTarget, error) {
	n, err := r.notifications.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := &NotificationTarget{Notification: *n}
	if n.SenderID != nil {
		names, err := r.names.Lookup(ctx, []primitive.ObjectID{*n.SenderID})
		if err != nil {
			return nil, err
		}
		out.SenderName = names[*n.SenderID].Username
	}
	return out, nil
}

func record(kind Kind, outcome string) {
	metrics.Get().TargetResolutions.WithLabelValues(string(kind), outcome).Inc()
}
