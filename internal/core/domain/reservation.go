package domain

import (
	"time"

	"github.com/google/uuid"
)

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
)

func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationPending, ReservationConfirmed, ReservationCancelled:
		return true
	}
	return false
}

// Holds reports whether a reservation in this status blocks its interval.
func (s ReservationStatus) Holds() bool {
	return s == ReservationPending || s == ReservationConfirmed
}

type Reservation struct {
	ID                 uuid.UUID
	AreaID             uuid.UUID
	ResidentID         uuid.UUID
	Date               time.Time
	StartTime          ClockTime
	EndTime            ClockTime
	StartsAt           time.Time
	EndsAt             time.Time
	Status             ReservationStatus
	PaymentProofURL    string
	Note               string
	CreatedAt          time.Time
	CancelledAt        *time.Time
	CancellationReason string
}

// Overlaps uses half-open intervals, so back-to-back bookings do not overlap.
func (r *Reservation) Overlaps(start, end ClockTime) bool {
	return r.StartTime < end && r.EndTime > start
}

func (r *Reservation) OwnedBy(residentID uuid.UUID) bool {
	return r.ResidentID == residentID
}
