package feed

import (
	"testing"
	"time"

	"github.com/cypheredvortex/mern-social-media-sub000/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func post(author primitive.ObjectID, minute int, likes, comments, shares int) models.Post {
	p := models.Post{AuthorID: author, Visibility: models.VisibilityPublic, LikeCount: likes, CommentCount: comments, ShareCount: shares}
	p.ID = primitive.NewObjectID()
	p.CreatedAt = epoch.Add(time.Duration(minute) * time.Minute)
	return p
}

func ids(posts []models.Post) []primitive.ObjectID {
	out := make([]primitive.ObjectID, len(posts))
	for i, p := range posts {
		out[i] = p.ID
	}
	return out
}

func TestParseOrder(t *testing.T) {
	for in, want := range map[string]Order{"": OrderLatest, "latest": OrderLatest, "trending": OrderTrending} {
		got, ok := ParseOrder(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got)
	}
	_, ok := ParseOrder("popular")
	assert.False(t, ok)
}

func TestRankLatestIsNewestFirst(t *testing.T) {
	author := primitive.NewObjectID()
	a, b, c := post(author, 1, 0, 0, 0), post(author, 3, 0, 0, 0), post(author, 2, 0, 0, 0)

	ranked := Rank([]models.Post{a, b, c}, OrderLatest)

	assert.Equal(t, []primitive.ObjectID{b.ID, c.ID, a.ID}, ids(ranked))
}

func TestRankTrendingWeighsSharesAndKeepsTies(t *testing.T) {
	author := primitive.NewObjectID()
	liked := post(author, 4, 5, 0, 0)
	shared := post(author, 3, 0, 0, 2)
	commented := post(author, 2, 1, 2, 0)
	quiet := post(author, 1, 0, 0, 0)

	in := []models.Post{liked, shared, commented, quiet}
	ranked := Rank(in, OrderTrending)

	assert.Equal(t, []primitive.ObjectID{shared.ID, liked.ID, commented.ID, quiet.ID}, ids(ranked))
	assert.Equal(t, liked.ID, in[0].ID, "input must not be reordered")
}

func TestVisible(t *testing.T) {
	viewer, friend, stranger := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()
	following := map[primitive.ObjectID]bool{friend: true}

	withVisibility := func(author primitive.ObjectID, v string) models.Post {
		p := post(author, 0, 0, 0, 0)
		p.Visibility = v
		return p
	}

	assert.True(t, Visible(withVisibility(stranger, models.VisibilityPublic), viewer, following))
	assert.True(t, Visible(withVisibility(friend, models.VisibilityFriends), viewer, following))
	assert.False(t, Visible(withVisibility(stranger, models.VisibilityFriends), viewer, following))
	assert.False(t, Visible(withVisibility(friend, models.VisibilityPrivate), viewer, following))
	assert.True(t, Visible(withVisibility(viewer, models.VisibilityPrivate), viewer, following))
	assert.False(t, Visible(withVisibility(friend, models.VisibilityFriends), primitive.NilObjectID, nil))
}

func TestAssemblePostsAttachesRelatedRecords(t *testing.T) {
	viewer, ada, bob := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()
	p1, p2 := post(ada, 2, 1, 0, 1), post(bob, 1, 0, 0, 0)

	authors := map[primitive.ObjectID]models.UserCompact{ada: {ID: ada, Username: "ada"}}
	profiles := []models.Profile{{UserID: ada, Bio: "math"}}
	like := models.Like{UserID: viewer, TargetID: p1.ID, TargetType: models.LikeTargetPost}
	like.ID = primitive.NewObjectID()
	otherLike := models.Like{UserID: bob, TargetID: p2.ID, TargetType: models.LikeTargetPost}
	commentLike := models.Like{UserID: viewer, TargetID: p2.ID, TargetType: models.LikeTargetComment}
	shares := []models.Share{{UserID: bob, PostID: p1.ID}}

	views := AssemblePosts([]models.Post{p1, p2}, authors, profiles, []models.Like{like, otherLike, commentLike}, shares, viewer)
	require.Len(t, views, 2)

	assert.Equal(t, p1.ID, views[0].ID)
	require.NotNil(t, views[0].Author)
	assert.Equal(t, "ada", views[0].Author.Username)
	require.NotNil(t, views[0].AuthorProfile)
	assert.Equal(t, "math", views[0].AuthorProfile.Bio)
	assert.True(t, views[0].IsLiked)
	assert.Equal(t, like.ID, *views[0].LikeID)
	assert.Equal(t, 1, views[0].ShareTotal)

	assert.Nil(t, views[1].Author)
	assert.Nil(t, views[1].AuthorProfile)
	assert.False(t, views[1].IsLiked)
	assert.Nil(t, views[1].LikeID)
	assert.NotNil(t, views[1].Shares)
	assert.Zero(t, views[1].ShareTotal)
}

func TestAssemblePostsAnonymousViewerLikesNothing(t *testing.T) {
	ada := primitive.NewObjectID()
	p := post(ada, 0, 0, 0, 0)
	likes := []models.Like{{UserID: primitive.NilObjectID, TargetID: p.ID, TargetType: models.LikeTargetPost}}

	views := AssemblePosts([]models.Post{p}, nil, nil, likes, nil, primitive.NilObjectID)

	assert.False(t, views[0].IsLiked)
}

func comment(author primitive.ObjectID, parent *primitive.ObjectID) models.Comment {
	c := models.Comment{AuthorID: author, ParentCommentID: parent, Content: "c"}
	c.ID = primitive.NewObjectID()
	return c
}

func TestAssembleThreads(t *testing.T) {
	viewer, ada := primitive.NewObjectID(), primitive.NewObjectID()
	first := comment(ada, nil)
	second := comment(ada, nil)
	reply := comment(viewer, &first.ID)
	nested := comment(ada, &reply.ID)
	missingParent := primitive.NewObjectID()
	orphan := comment(ada, &missingParent)
	lateReply := comment(ada, &second.ID)

	like := models.Like{UserID: viewer, TargetID: reply.ID, TargetType: models.LikeTargetReply}
	like.ID = primitive.NewObjectID()
	authors := map[primitive.ObjectID]models.UserCompact{ada: {ID: ada, Username: "ada"}}

	threads := AssembleThreads(
		[]models.Comment{first, second, reply, nested, orphan, lateReply},
		authors, []models.Like{like}, viewer,
	)

	require.Len(t, threads, 4)
	assert.Equal(t, first.ID, threads[0].ID)
	assert.Equal(t, second.ID, threads[1].ID)
	assert.Equal(t, nested.ID, threads[2].ID)
	assert.Equal(t, orphan.ID, threads[3].ID)

	require.Len(t, threads[0].Replies, 1)
	assert.Equal(t, reply.ID, threads[0].Replies[0].ID)
	assert.True(t, threads[0].Replies[0].IsLiked)
	assert.Equal(t, like.ID, *threads[0].Replies[0].LikeID)
	assert.Nil(t, threads[0].Replies[0].Author)

	require.Len(t, threads[1].Replies, 1)
	assert.Equal(t, lateReply.ID, threads[1].Replies[0].ID)
	assert.Equal(t, "ada", threads[1].Author.Username)
	assert.Empty(t, threads[3].Replies)
	assert.NotNil(t, threads[3].Replies)
}
