package postgres

import (
	"errors"

	"github.com/lib/pq"
)

const (
	uniqueViolation    pq.ErrorCode = "23505"
	checkViolation     pq.ErrorCode = "23514"
	exclusionViolation pq.ErrorCode = "23P01"
)

func hasCode(err error, code pq.ErrorCode) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == code
}
