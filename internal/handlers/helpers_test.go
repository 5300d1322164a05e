package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cypheredvortex/mern-social-media-sub000/internal/models"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/repositories"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/resolver"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func queryContext(query string) echo.Context {
	req := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	require.True(t, errors.As(err, &he), "expected *echo.HTTPError, got %v", err)
	return he.Code
}

func TestListOptions(t *testing.T) {
	id := primitive.NewObjectID()

	opts, err := listOptions(queryContext("post_id="+id.Hex()+"&parent_comment_id=null&read=true&type=like"),
		ref("post_id"), nullable("parent_comment_id"), flag("read"), text("type"))
	require.NoError(t, err)
	assert.Equal(t, repositories.Filter{
		"post_id":           id,
		"parent_comment_id": nil,
		"read":              true,
		"type":              "like",
	}, opts.Filter)
	assert.Zero(t, opts.Limit, "no pagination without page or limit")

	opts, err = listOptions(queryContext("page=3&limit=500"))
	require.NoError(t, err)
	assert.EqualValues(t, maxPageSize, opts.Limit)
	assert.EqualValues(t, 2*maxPageSize, opts.Skip)

	opts, err = listOptions(queryContext("page=2"))
	require.NoError(t, err)
	assert.EqualValues(t, defaultPageSize, opts.Limit)
	assert.EqualValues(t, defaultPageSize, opts.Skip)

	opts, err = listOptions(queryContext("user_id="+id.Hex()), hex("user_id"))
	require.NoError(t, err)
	assert.Equal(t, id.Hex(), opts.Filter["user_id"])
}

func TestListOptionsRejectsMalformedFilters(t *testing.T) {
	for _, tt := range []struct {
		query  string
		filter queryFilter
	}{
		{"author_id=abc", ref("author_id")},
		{"parent_comment_id=abc", nullable("parent_comment_id")},
		{"read=yes-please", flag("read")},
		{"user_id=abc", hex("user_id")},
	} {
		_, err := listOptions(queryContext(tt.query), tt.filter)
		assert.Equal(t, http.StatusBadRequest, httpCode(t, err), tt.query)
	}
}

func TestStoreError(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, httpCode(t, storeError(repositories.ErrNotFound, "Post")))
	assert.Equal(t, http.StatusBadRequest, httpCode(t, storeError(repositories.ErrDuplicate, "Profile")))

	other := errors.New("socket closed")
	assert.Same(t, other, storeError(other, "Post"))
}

func TestChangesKeepsOnlySetFields(t *testing.T) {
	content := "edited"
	zero := 0
	fields, err := changes(&models.UpdatePostRequest{Content: &content, LikeCount: &zero})
	require.NoError(t, err)
	assert.Len(t, fields, 2)
	assert.Equal(t, "edited", fields["content"])
	assert.Contains(t, fields, "like_count")

	fields, err = changes(&models.UpdatePostRequest{})
	require.NoError(t, err)
	assert.Empty(t, fields)
}

func TestWithTarget(t *testing.T) {
	report := models.Report{ReporterID: primitive.NewObjectID(), TargetType: models.ReportTargetMedia, Reason: "spam"}

	body, err := withTarget(report, resolver.Resolution{Kind: resolver.KindNone})
	require.NoError(t, err)
	assert.Equal(t, "spam", body["reason"])
	assert.Equal(t, resolver.KindNone, body["target_kind"])
	assert.NotContains(t, body, "target")

	body, err = withTarget(report, resolver.Resolution{Kind: resolver.KindPost})
	require.NoError(t, err)
	assert.Contains(t, body, "target")
	assert.Nil(t, body["target"])

	raw := resolver.RawTarget{ID: "abc"}
	body, err = withTarget(report, resolver.Resolution{Kind: resolver.KindRaw, ID: "abc", Target: raw})
	require.NoError(t, err)
	assert.Equal(t, raw, body["target"])
}

func TestViewerIDFromQuery(t *testing.T) {
	id := primitive.NewObjectID()

	viewer, err := viewerID(queryContext("viewer_id=" + id.Hex()))
	require.NoError(t, err)
	assert.Equal(t, id, viewer)

	viewer, err = viewerID(queryContext(""))
	require.NoError(t, err)
	assert.True(t, viewer.IsZero())

	_, err = viewerID(queryContext("viewer_id=bad"))
	assert.Equal(t, http.StatusBadRequest, httpCode(t, err))
}
