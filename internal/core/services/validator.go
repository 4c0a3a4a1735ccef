package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/condo_reservations/internal/core/domain"
)

// ReservationCandidate is a booking request before any policy check.
type ReservationCandidate struct {
	Area            *domain.Area
	ResidentID      uuid.UUID
	Date            string
	StartTime       string
	EndTime         string
	PaymentProofURL string
	Note            string
}

// ValidateReservation checks a candidate against the area policy and the
// existing reservations of that area. Checks run in a fixed order and the
// first failure is returned as a validation error carrying its reason code.
// existing is a snapshot; the store still has the final word on overlaps.
func ValidateReservation(c ReservationCandidate, existing []domain.Reservation, now time.Time, loc *time.Location) (*domain.Reservation, error) {
	if loc == nil {
		loc = time.Local
	}
	area := c.Area

	if area == nil || strings.TrimSpace(c.Date) == "" || strings.TrimSpace(c.StartTime) == "" || strings.TrimSpace(c.EndTime) == "" {
		return nil, domain.NewValidationError(domain.ReasonMissingFields, "area, date, start time and end time are required")
	}

	date, err := domain.ParseDate(c.Date, loc)
	if err != nil {
		return nil, domain.NewValidationError(domain.ReasonMalformedInput, "invalid date format, use YYYY-MM-DD")
	}
	start, err := domain.ParseClockTime(c.StartTime)
	if err != nil {
		return nil, domain.NewValidationError(domain.ReasonMalformedInput, "invalid start time, use HH:MM")
	}
	end, err := domain.ParseClockTime(c.EndTime)
	if err != nil {
		return nil, domain.NewValidationError(domain.ReasonMalformedInput, "invalid end time, use HH:MM")
	}

	if end <= start {
		return nil, domain.NewValidationError(domain.ReasonInvalidInterval, "end time must be after start time")
	}

	startsAt := start.On(date, loc)
	endsAt := end.On(date, loc)

	lead := time.Duration(area.MinLeadHours) * time.Hour
	if startsAt.Before(now.Add(lead)) {
		return nil, domain.NewValidationError(domain.ReasonInsufficientLeadTime,
			fmt.Sprintf("reservations must be made at least %d hours in advance", area.MinLeadHours))
	}

	if area.MaxDaysAhead > 0 {
		local := now.In(loc)
		limit := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, area.MaxDaysAhead)
		if date.After(limit) {
			return nil, domain.NewValidationError(domain.ReasonBeyondBookingWindow,
				fmt.Sprintf("reservations can be made at most %d days ahead", area.MaxDaysAhead))
		}
	}

	if start < area.OpensAt || end > area.ClosesAt {
		return nil, domain.NewValidationError(domain.ReasonOutsideHours,
			fmt.Sprintf("reservation must fall within the area hours %s-%s", area.OpensAt, area.ClosesAt))
	}

	if !area.OpenOn(date) {
		return nil, domain.NewValidationError(domain.ReasonDayNotEnabled, "the area does not take reservations on that day")
	}

	day := date.Format(domain.DateLayout)
	for i := range existing {
		r := &existing[i]
		if r.AreaID != area.ID || !r.Status.Holds() || r.Date.Format(domain.DateLayout) != day {
			continue
		}
		if r.Overlaps(start, end) {
			return nil, domain.NewValidationError(domain.ReasonSlotOverlap, "there is already a reservation for this area in that time range")
		}
	}

	proof := strings.TrimSpace(c.PaymentProofURL)
	if area.RequiresPayment && proof == "" {
		return nil, domain.NewValidationError(domain.ReasonPaymentProofRequired, "a payment proof is required for this area")
	}

	return &domain.Reservation{
		AreaID:          area.ID,
		ResidentID:      c.ResidentID,
		Date:            date,
		StartTime:       start,
		EndTime:         end,
		StartsAt:        startsAt,
		EndsAt:          endsAt,
		Status:          domain.ReservationPending,
		PaymentProofURL: proof,
		Note:            strings.TrimSpace(c.Note),
		CreatedAt:       now,
	}, nil
}
