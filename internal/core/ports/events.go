package ports

import (
	"context"

	"github.com/srgjo27/condo_reservations/internal/core/domain"
)

type EventPublisher interface {
	PublishReservationEvent(ctx context.Context, event domain.ReservationEvent) error
}
