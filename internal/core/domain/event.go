package domain

import (
	"time"

	"github.com/google/uuid"
)

type ReservationEventType string

const (
	ReservationCreatedEvent   ReservationEventType = "reservation.created"
	ReservationCancelledEvent ReservationEventType = "reservation.cancelled"
)

// ReservationEvent carries enough data for the communications side to notify
// residents without reading the reservation tables.
type ReservationEvent struct {
	Type          ReservationEventType `json:"type"`
	ReservationID uuid.UUID            `json:"reservation_id"`
	AreaID        uuid.UUID            `json:"area_id"`
	AreaName      string               `json:"area_name"`
	ResidentID    uuid.UUID            `json:"resident_id"`
	ActorID       uuid.UUID            `json:"actor_id"`
	Date          string               `json:"date"`
	Start         ClockTime            `json:"start"`
	End           ClockTime            `json:"end"`
	Status        ReservationStatus    `json:"status"`
	Reason        string               `json:"reason,omitempty"`
	OccurredAt    time.Time            `json:"occurred_at"`
}
