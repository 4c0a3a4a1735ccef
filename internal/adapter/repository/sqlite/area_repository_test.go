package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/condo_reservations/internal/core/domain"
	"github.com/srgjo27/condo_reservations/internal/core/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAreaRepository_RoundTrip(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	area := seedArea(t, s, "Quincho")

	got, err := s.areas.GetAreaByID(ctx, area.ID)
	require.NoError(t, err)
	assert.Equal(t, area.Name, got.Name)
	assert.Equal(t, area.OpensAt, got.OpensAt)
	assert.Equal(t, area.ClosesAt, got.ClosesAt)
	assert.Equal(t, area.Weekdays, got.Weekdays)
	assert.Equal(t, domain.AreaActive, got.State)
	assert.True(t, area.CreatedAt.Equal(got.CreatedAt))
}

func TestAreaRepository_DuplicateName(t *testing.T) {
	s := setupStore(t)
	seedArea(t, s, "Quincho")

	dup := &domain.Area{
		ID:       uuid.New(),
		Name:     "Quincho",
		Capacity: 5,
		OpensAt:  domain.NewClockTime(9, 0),
		ClosesAt: domain.NewClockTime(10, 0),
		Weekdays: domain.DefaultWeekdays,
		State:    domain.AreaActive,
	}
	err := s.areas.CreateArea(context.Background(), dup)

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestAreaRepository_UpdateAndDeactivate(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	area := seedArea(t, s, "Quincho")

	area.ClosesAt = domain.NewClockTime(20, 0)
	area.RequiresPayment = true
	area.PricePerBlock = 50
	area.Weekdays = domain.Weekdays{5, 6}
	require.NoError(t, s.areas.UpdateArea(ctx, area))

	got, err := s.areas.GetAreaByID(ctx, area.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.NewClockTime(20, 0), got.ClosesAt)
	assert.True(t, got.RequiresPayment)
	assert.Equal(t, 50.0, got.PricePerBlock)
	assert.Equal(t, domain.Weekdays{5, 6}, got.Weekdays)

	require.NoError(t, s.areas.SetAreaState(ctx, area.ID, domain.AreaInactive, time.Now()))
	got, err = s.areas.GetAreaByID(ctx, area.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive())

	err = s.areas.SetAreaState(ctx, uuid.New(), domain.AreaInactive, time.Now())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAreaRepository_List(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	seedArea(t, s, "Quincho")
	pool := seedArea(t, s, "Piscina")
	seedArea(t, s, "Sala de juegos")
	require.NoError(t, s.areas.SetAreaState(ctx, pool.ID, domain.AreaInactive, time.Now()))

	active, err := s.areas.ListAreas(ctx, ports.AreaFilter{})
	require.NoError(t, err)
	assert.Len(t, active, 2)

	all, err := s.areas.ListAreas(ctx, ports.AreaFilter{IncludeInactive: true})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	found, err := s.areas.ListAreas(ctx, ports.AreaFilter{IncludeInactive: true, Search: "pisc"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, pool.ID, found[0].ID)
}

func TestAreaRepository_GetNotFound(t *testing.T) {
	s := setupStore(t)

	_, err := s.areas.GetAreaByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
