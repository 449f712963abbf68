package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMatchesWrappedAppError(t *testing.T) {
	err := fmt.Errorf("loading post: %w", NotFound("Post", nil))

	assert.True(t, IsNotFound(err))
	assert.False(t, Is(err, "CONFLICT"))
	assert.False(t, Is(stderrors.New("plain"), "NOT_FOUND"))
}

func TestAppErrorUnwrapAndMessage(t *testing.T) {
	cause := stderrors.New("deadline exceeded")
	err := Internal("Failed to update post", cause)

	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "INTERNAL_ERROR: Failed to update post: deadline exceeded", err.Error())
	assert.Equal(t, "CONFLICT: Category already exists", Conflict("Category already exists").Error())
}
