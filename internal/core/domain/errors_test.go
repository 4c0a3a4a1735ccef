package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesKindAndCode(t *testing.T) {
	err := fmt.Errorf("create: %w", NewValidationError(ReasonSlotOverlap, "taken"))

	assert.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, err, NewValidationError(ReasonSlotOverlap, ""))
	assert.NotErrorIs(t, err, NewValidationError(ReasonInvalidInterval, ""))
	assert.NotErrorIs(t, err, ErrConflict)
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Equal(t, ReasonSlotOverlap, CodeOf(err))
}

func TestError_UnwrapsCause(t *testing.T) {
	cause := errors.New("pq: conflicting key value violates exclusion constraint")
	err := NewConflictError("slot taken", cause)

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "slot taken")
	assert.Equal(t, ErrorKind(""), KindOf(cause))
}
