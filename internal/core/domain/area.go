package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type AreaState string

const (
	AreaActive   AreaState = "active"
	AreaInactive AreaState = "inactive"
)

func (s AreaState) Valid() bool {
	return s == AreaActive || s == AreaInactive
}

const (
	DefaultBlockMinutes = 60
	DefaultMinLeadHours = 24
	DefaultMaxDaysAhead = 30
)

// DefaultWeekdays is Monday through Saturday.
var DefaultWeekdays = Weekdays{0, 1, 2, 3, 4, 5}

type Area struct {
	ID              uuid.UUID
	Name            string
	Capacity        int
	RequiresPayment bool
	PricePerBlock   float64
	OpensAt         ClockTime
	ClosesAt        ClockTime
	BlockMinutes    int
	MinLeadHours    int
	MaxDaysAhead    int
	Weekdays        Weekdays
	State           AreaState
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (a *Area) IsActive() bool {
	return a.State == AreaActive
}

// OpenOn reports whether the area takes bookings on the given calendar date.
func (a *Area) OpenOn(date time.Time) bool {
	return a.Weekdays.Contains(WeekdayIndex(date))
}

// Weekdays is a set of day indexes where 0 is Monday and 6 is Sunday.
type Weekdays []int

// WeekdayIndex converts Go's Sunday-first weekday to the Monday-first index.
func WeekdayIndex(date time.Time) int {
	return (int(date.Weekday()) + 6) % 7
}

func (w Weekdays) Contains(day int) bool {
	for _, d := range w {
		if d == day {
			return true
		}
	}
	return false
}

// Normalize returns a sorted copy without duplicates.
func (w Weekdays) Normalize() Weekdays {
	seen := make(map[int]bool, len(w))
	out := make(Weekdays, 0, len(w))
	for _, d := range w {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	sort.Ints(out)
	return out
}

// String renders the set as CSV, e.g. "0,1,2,3,4,5".
func (w Weekdays) String() string {
	parts := make([]string, 0, len(w))
	for _, d := range w.Normalize() {
		parts = append(parts, strconv.Itoa(d))
	}
	return strings.Join(parts, ",")
}

func ParseWeekdays(csv string) (Weekdays, error) {
	var out Weekdays
	for _, part := range strings.Split(csv, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := strconv.Atoi(part)
		if err != nil || d < 0 || d > 6 {
			return nil, fmt.Errorf("invalid weekday %q", part)
		}
		out = append(out, d)
	}
	return out.Normalize(), nil
}
