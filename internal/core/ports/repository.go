package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/condo_reservations/internal/core/domain"
)

type AreaFilter struct {
	IncludeInactive bool
	Search          string
}

type ReservationFilter struct {
	ResidentID *uuid.UUID
	AreaID     *uuid.UUID
	Date       *time.Time
	Status     domain.ReservationStatus
}

type AreaRepository interface {
	CreateArea(ctx context.Context, area *domain.Area) error
	UpdateArea(ctx context.Context, area *domain.Area) error
	GetAreaByID(ctx context.Context, areaID uuid.UUID) (*domain.Area, error)
	ListAreas(ctx context.Context, filter AreaFilter) ([]domain.Area, error)
	SetAreaState(ctx context.Context, areaID uuid.UUID, state domain.AreaState, at time.Time) error
}

// ReservationRepository is the reservation store. CreateReservation must
// refuse overlapping pending/confirmed intervals for one area at the storage
// level and report it as a conflict error.
type ReservationRepository interface {
	CreateReservation(ctx context.Context, reservation *domain.Reservation) error
	GetReservationByID(ctx context.Context, reservationID uuid.UUID) (*domain.Reservation, error)
	ListActiveByAreaAndDate(ctx context.Context, areaID uuid.UUID, date time.Time) ([]domain.Reservation, error)
	ListReservations(ctx context.Context, filter ReservationFilter) ([]domain.Reservation, error)
	CancelReservation(ctx context.Context, reservationID uuid.UUID, cancelledAt time.Time, reason string) error
}
