package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestHasCode(t *testing.T) {
	exclusion := &pq.Error{Code: exclusionViolation, Constraint: "exc_reservation_no_overlap"}

	assert.True(t, hasCode(exclusion, exclusionViolation))
	assert.True(t, hasCode(fmt.Errorf("insert: %w", exclusion), exclusionViolation))
	assert.False(t, hasCode(exclusion, uniqueViolation))
	assert.False(t, hasCode(errors.New("23P01"), exclusionViolation))
	assert.False(t, hasCode(nil, exclusionViolation))
}
