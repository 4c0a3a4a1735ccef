// Package sqlite is the reservation store for deployments without
// PostgreSQL. SQLite has no exclusion constraints, so overlap prevention is a
// check-then-insert inside a transaction that holds the database write lock.
package sqlite

import (
	"fmt"
	"strings"
	"time"
)

// Fixed width keeps lexicographic order equal to chronological order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid stored timestamp %q: %w", s, err)
	}
	return t, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
