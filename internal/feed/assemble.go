// Package feed joins posts and comments with the records a reader needs to display them:
// authors, author profiles, the viewer's like state and shares.
package feed

import (
	"slices"
	"sort"

	"github.com/cypheredvortex/mern-social-media-sub000/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order selects how feed posts are ranked
type Order string

const (
	OrderLatest   Order = "latest"
	OrderTrending Order = "trending"
)

// ParseOrder accepts "", "latest" and "trending"
func ParseOrder(s string) (Order, bool) {
	switch Order(s) {
	case "", OrderLatest:
		return OrderLatest, true
	case OrderTrending:
		return OrderTrending, true
	}
	return "", false
}

type PostView struct {
	models.Post
	Author        *models.UserCompact `json:"author"`
	AuthorProfile *models.Profile     `json:"author_profile"`
	IsLiked       bool                `json:"is_liked"`
	LikeID        *primitive.ObjectID `json:"like_id,omitempty"`
	Shares        []models.Share      `json:"shares"`
	ShareTotal    int                 `json:"share_total"`
}

type CommentView struct {
	models.Comment
	Author  *models.UserCompact `json:"author"`
	IsLiked bool                `json:"is_liked"`
	LikeID  *primitive.ObjectID `json:"like_id,omitempty"`
}

// Thread is a top-level comment with its direct replies
type Thread struct {
	CommentView
	Replies []CommentView `json:"replies"`
}

// TrendingScore weighs shares above comments above likes
func TrendingScore(p models.Post) int {
	return p.LikeCount + 2*p.CommentCount + 3*p.ShareCount
}

// Rank orders posts for display. Trending is a stable sort by score, so ties keep the
// order the posts were given in.
func Rank(posts []models.Post, order Order) []models.Post {
	out := slices.Clone(posts)
	if order == OrderTrending {
		sort.SliceStable(out, func(i, j int) bool {
			return TrendingScore(out[i]) > TrendingScore(out[j])
		})
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Visible reports whether viewer may see p. following holds the ids the viewer follows
// with an accepted follow. A zero viewer is anonymous.
func Visible(p models.Post, viewer primitive.ObjectID, following map[primitive.ObjectID]bool) bool {
	if !viewer.IsZero() && p.AuthorID == viewer {
		return true
	}
	switch p.Visibility {
	case models.VisibilityPrivate:
		return false
	case models.VisibilityFriends:
		return following[p.AuthorID]
	}
	return true
}

// AssemblePosts attaches author, author profile, the viewer's like and the share list to
// each post. The input order is kept.
func AssemblePosts(
	posts []models.Post,
	authors map[primitive.ObjectID]models.UserCompact,
	profiles []models.Profile,
	likes []models.Like,
	shares []models.Share,
	viewer primitive.ObjectID,
) []PostView {
	profileByUser := make(map[primitive.ObjectID]models.Profile, len(profiles))
	for _, p := range profiles {
		profileByUser[p.UserID] = p
	}
	likeByPost := make(map[primitive.ObjectID]primitive.ObjectID)
	if !viewer.IsZero() {
		for _, l := range likes {
			if l.UserID == viewer && l.TargetType == models.LikeTargetPost {
				likeByPost[l.TargetID] = l.ID
			}
		}
	}
	sharesByPost := make(map[primitive.ObjectID][]models.Share)
	for _, s := range shares {
		sharesByPost[s.PostID] = append(sharesByPost[s.PostID], s)
	}

	views := make([]PostView, 0, len(posts))
	for _, p := range posts {
		v := PostView{Post: p, Shares: sharesByPost[p.ID]}
		if v.Shares == nil {
			v.Shares = []models.Share{}
		}
		v.ShareTotal = len(v.Shares)
		if a, ok := authors[p.AuthorID]; ok {
			v.Author = &a
		}
		if prof, ok := profileByUser[p.AuthorID]; ok {
			v.AuthorProfile = &prof
		}
		if likeID, ok := likeByPost[p.ID]; ok {
			v.IsLiked = true
			v.LikeID = &likeID
		}
		views = append(views, v)
	}
	return views
}

// AssembleThreads partitions comments into top-level threads with one level of replies.
// A reply whose parent is not a top-level comment of the same set is surfaced as its own
// thread so it is never dropped. Threads keep the order of their head comment.
func AssembleThreads(
	comments []models.Comment,
	authors map[primitive.ObjectID]models.UserCompact,
	likes []models.Like,
	viewer primitive.ObjectID,
) []Thread {
	topLevel := make(map[primitive.ObjectID]bool, len(comments))
	for _, c := range comments {
		if c.ParentCommentID == nil {
			topLevel[c.ID] = true
		}
	}
	likeByComment := make(map[primitive.ObjectID]primitive.ObjectID)
	if !viewer.IsZero() {
		for _, l := range likes {
			if l.UserID == viewer && l.OnComment() {
				likeByComment[l.TargetID] = l.ID
			}
		}
	}
	view := func(c models.Comment) CommentView {
		v := CommentView{Comment: c}
		if a, ok := authors[c.AuthorID]; ok {
			v.Author = &a
		}
		if likeID, ok := likeByComment[c.ID]; ok {
			v.IsLiked = true
			v.LikeID = &likeID
		}
		return v
	}
	isHead := func(c models.Comment) bool {
		return c.ParentCommentID == nil || !topLevel[*c.ParentCommentID]
	}

	threads := make([]Thread, 0)
	index := make(map[primitive.ObjectID]int)
	for _, c := range comments {
		if isHead(c) {
			index[c.ID] = len(threads)
			threads = append(threads, Thread{CommentView: view(c), Replies: []CommentView{}})
		}
	}
	for _, c := range comments {
		if isHead(c) {
			continue
		}
		i := index[*c.ParentCommentID]
		threads[i].Replies = append(threads[i].Replies, view(c))
	}
	return threads
}
