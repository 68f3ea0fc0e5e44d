package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplicationErrorMessage(t *testing.T) {
	plain := NewClientError("request failed", RequestFailed, nil)
	assert.Equal(t, "request failed", plain.Error())

	wrapped := NewClientError("request failed", RequestFailed, fmt.Errorf("dial tcp: refused"))
	assert.Equal(t, "request failed: dial tcp: refused", wrapped.Error())
	assert.Equal(t, RequestFailed, wrapped.Kind())
}

func TestUnwrapChain(t *testing.T) {
	inner := fmt.Errorf("boom")
	err := NewMediaError("load failed", "p1", MediaLoadFailed, inner)

	assert.True(t, Is(err, inner))
	assert.Equal(t, "p1", err.PostID())

	var me *MediaError
	require.True(t, As(Wrap(err, "while mounting"), &me))
	assert.Equal(t, MediaLoadFailed, me.Kind())
}

func TestSentinels(t *testing.T) {
	assert.True(t, Is(ErrPostNotFound, ErrPostNotFound))
	assert.False(t, Is(ErrPostNotFound, ErrEmptyFeed))

	var ce *CapabilityError
	require.True(t, As(ErrNoClipboard, &ce))
	assert.Equal(t, "clipboard", ce.Capability())
}

func TestWrapHelpers(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
	assert.Nil(t, Wrapf(nil, "context %d", 1))

	err := Wrapf(fmt.Errorf("boom"), "loading post %s", "p1")
	assert.Equal(t, "loading post p1: boom", err.Error())
}
