package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorMessage(t *testing.T) {
	err := NewInvalidArgument("limit must not be negative")
	assert.Equal(t, "limit must not be negative", err.Error())
	assert.Equal(t, ErrCodeInvalidArgument, err.Code)
	assert.Equal(t, http.StatusBadRequest, err.HTTPCode)

	cause := errors.New("dial tcp: connection refused")
	withCause := NewSourceUnavailable("product", cause)
	assert.Contains(t, withCause.Error(), "connection refused")
	assert.Equal(t, "product", withCause.Source)
	assert.Equal(t, http.StatusServiceUnavailable, withCause.HTTPCode)
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := NewInternalError("wrapped", cause)

	assert.True(t, errors.Is(err, cause))
}

func TestPredicates(t *testing.T) {
	assert.True(t, IsInvalidArgument(NewInvalidArgument("bad")))
	assert.True(t, IsSourceUnavailable(NewSourceUnavailable("page", nil)))
	assert.True(t, IsItemMappingError(NewItemMappingError("product", "no name")))

	assert.False(t, IsInvalidArgument(NewSourceUnavailable("page", nil)))
	assert.False(t, IsSourceUnavailable(errors.New("plain")))
	assert.False(t, IsItemMappingError(nil))
}

func TestPredicatesThroughWrapping(t *testing.T) {
	inner := NewSourceUnavailable("taxonomy_term", errors.New("table missing"))
	wrapped := fmt.Errorf("scan failed: %w", inner)

	assert.True(t, IsSourceUnavailable(wrapped))
}

func TestGetAppError(t *testing.T) {
	inner := NewInvalidArgument("bad input")
	got := GetAppError(fmt.Errorf("handler: %w", inner))
	require.NotNil(t, got)
	assert.Equal(t, ErrCodeInvalidArgument, got.Code)

	// 非AppError包装为内部错误
	plain := errors.New("boom")
	got = GetAppError(plain)
	assert.Equal(t, ErrCodeInternal, got.Code)
	assert.True(t, errors.Is(got, plain))
}

func TestWithCause(t *testing.T) {
	cause := errors.New("bad json")
	err := NewCacheError("decode failed", nil).WithCause(cause)
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, ErrCodeCache, err.Code)
}
