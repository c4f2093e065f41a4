package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBackendError(t *testing.T) {
	cause := stderrors.New("connection reset by peer")

	err := NewBackendError("failed to upsert ticket", cause)

	assert.Equal(t, ErrorTypeBackend, err.Type)
	assert.Equal(t, http.StatusBadGateway, err.Code)
	assert.Equal(t, "failed to upsert ticket", err.Message)
	assert.Equal(t, "connection reset by peer", err.Details)
	assert.True(t, stderrors.Is(err, cause))
	assert.True(t, IsBackendError(fmt.Errorf("wrapped: %w", err)))
}

func TestNewBackendError_KeepsAppErrorClassification(t *testing.T) {
	notFound := NewNotFoundError("user not found")

	err := NewBackendError("failed to load ticket details", notFound)

	assert.Same(t, notFound, err)
	assert.True(t, IsNotFoundError(err))
}

func TestNewBackendError_NilCause(t *testing.T) {
	err := NewBackendError("failed to sign out", nil)
	require.NotNil(t, err)
	assert.Empty(t, err.Details)
	assert.Nil(t, err.Unwrap())
}

func TestAppError_Error(t *testing.T) {
	assert.Equal(t, "validation_error: bad input", NewValidationError("bad input").Error())
	assert.Equal(t, "not_found: missing (ticket 3)", NewNotFoundError("missing", "ticket 3").Error())
}

func TestIsDuplicateError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{stderrors.New(`ERROR: duplicate key value violates unique constraint "tags_tag_key"`), true},
		{stderrors.New("UNIQUE constraint failed: tags.tag"), true},
		{stderrors.New("Error 1062: Duplicate entry 'x' for key 'tag'"), true},
		{stderrors.New("timeout"), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsDuplicateError(tt.err))
	}
}
