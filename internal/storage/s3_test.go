package storage

import (
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osint-hub/backend/pkg/common"
)

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "entities/e1/documents/abc.pdf", ObjectKey(DocumentPrefix("e1"), "Report.PDF", "abc"))
	assert.Equal(t, "entities/e1/avatar/abc.png", ObjectKey(AvatarPrefix("e1"), "avatar.png", "abc"))
	assert.Equal(t, "entities/e1/images/abc", ObjectKey(ImagePrefix("e1"), "noext", "abc"))
}

func TestPublicURL(t *testing.T) {
	assert.Equal(t, "https://cdn.example.com/osint/entities/e1/avatar/a.png",
		PublicURL("https://cdn.example.com/", "osint", "/entities/e1/avatar/a.png"))
}

func TestBreakerWrapsRemoteError(t *testing.T) {
	s := &S3Storage{breaker: NewBreaker("test")}
	boom := errors.New("no route to host")

	for range 5 {
		_, err := s.execute("get object", func() (any, error) { return nil, boom })
		require.Error(t, err)
		assert.True(t, common.IsRemote(err))
		assert.ErrorIs(t, err, boom)
	}

	_, err := s.execute("get object", func() (any, error) { return "never called", nil })
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.True(t, common.IsRemote(err))
}

func TestBreakerIgnoresMissingObjects(t *testing.T) {
	s := &S3Storage{breaker: NewBreaker("test")}
	missing := missingObject("entities/e1/documents/gone.pdf", &types.NoSuchKey{})

	for range 10 {
		_, err := s.execute("get object", func() (any, error) { return nil, missing })
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrNotFound)
		assert.False(t, common.IsRemote(err))
	}

	assert.Equal(t, gobreaker.StateClosed, s.breaker.State())
	res, err := s.execute("get object", func() (any, error) { return []byte("ok"), nil })
	require.NoError(t, err)
	assert.Equal(t, []byte("ok"), res)
}

func TestMissingObject(t *testing.T) {
	assert.ErrorIs(t, missingObject("k", &types.NoSuchKey{}), common.ErrNotFound)
	assert.ErrorIs(t, missingObject("k", &types.NotFound{}), common.ErrNotFound)

	other := errors.New("access denied")
	assert.Equal(t, other, missingObject("k", other))
}
