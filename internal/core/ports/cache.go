package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/srgjo27/condo_reservations/internal/core/domain"
)

// AvailabilityCache stores computed availability per area and date. Entries
// are addressed by the generation read before the store snapshot; any
// invalidation moves the generation so late writes land on a dead key.
// A miss is reported as (nil, nil).
type AvailabilityCache interface {
	Generation(ctx context.Context, areaID uuid.UUID, date string) (string, error)
	Get(ctx context.Context, areaID uuid.UUID, date, generation string) (*domain.Availability, error)
	Set(ctx context.Context, areaID uuid.UUID, date, generation string, availability *domain.Availability) error
	InvalidateDay(ctx context.Context, areaID uuid.UUID, date string) error
	InvalidateArea(ctx context.Context, areaID uuid.UUID) error
}
