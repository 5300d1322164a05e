package validators

import (
	"net/http"
	"testing"

	"github.com/cypheredvortex/mern-social-media-sub000/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestValidateUsesJSONFieldNames(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&models.CreateUserRequest{Username: "al", Email: "not-an-email", Password: "secret1"})
	require.Error(t, err)

	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	assert.Equal(t, "email must be a valid email address", httpErr.Message)
}

func TestValidateEnums(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&models.CreateLikeRequest{
		UserID:     primitive.NewObjectID(),
		TargetID:   primitive.NewObjectID(),
		TargetType: "story",
	})
	require.Error(t, err)
	assert.Contains(t, err.(*echo.HTTPError).Message, "target_type must be one of [post comment reply]")
}

func TestValidateRequiredObjectID(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&models.CreateFollowRequest{FollowedID: primitive.NewObjectID()})
	require.Error(t, err)
	assert.Contains(t, err.(*echo.HTTPError).Message, "follower_id is required")
}

func TestValidatePointerUpdates(t *testing.T) {
	v := NewValidator()

	bad := "everyone"
	assert.Error(t, v.Validate(&models.UpdatePostRequest{Visibility: &bad}))

	good := "friends"
	assert.NoError(t, v.Validate(&models.UpdatePostRequest{Visibility: &good}))
	assert.NoError(t, v.Validate(&models.UpdatePostRequest{}))
}

func TestValidatePostNeedsContentOrMedia(t *testing.T) {
	v := NewValidator()

	assert.Error(t, v.Validate(&models.CreatePostRequest{AuthorID: primitive.NewObjectID()}))
	assert.NoError(t, v.Validate(&models.CreatePostRequest{AuthorID: primitive.NewObjectID(), MediaURL: "http://x/y.png"}))
}
