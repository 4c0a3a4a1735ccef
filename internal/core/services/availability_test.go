package services_test

import (
	"math/rand"
	"testing"

	"github.com/srgjo27/condo_reservations/internal/core/domain"
	"github.com/srgjo27/condo_reservations/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func block(sh, sm, eh, em int) domain.Block {
	return domain.Block{Start: domain.NewClockTime(sh, sm), End: domain.NewClockTime(eh, em)}
}

func TestComputeAvailability_NoReservations(t *testing.T) {
	area := newArea()

	a, err := services.ComputeAvailability(area, mustDate("2025-03-12"), nil)

	require.NoError(t, err)
	assert.True(t, a.DayEnabled)
	assert.Equal(t, "2025-03-12", a.Date)
	assert.Equal(t, area.Name, a.AreaName)
	assert.Equal(t, []domain.Block{block(8, 0, 22, 0)}, a.Free)
	assert.Empty(t, a.Occupied)
	assert.NotNil(t, a.Occupied)
}

func TestComputeAvailability_SplitsAroundReservations(t *testing.T) {
	area := newArea()
	reservations := []domain.Reservation{
		existingReservation(area, "2025-03-12", domain.NewClockTime(14, 0), domain.NewClockTime(16, 0), domain.ReservationConfirmed),
		existingReservation(area, "2025-03-12", domain.NewClockTime(10, 0), domain.NewClockTime(12, 0), domain.ReservationPending),
		existingReservation(area, "2025-03-12", domain.NewClockTime(12, 0), domain.NewClockTime(13, 0), domain.ReservationCancelled),
	}

	a, err := services.ComputeAvailability(area, mustDate("2025-03-12"), reservations)

	require.NoError(t, err)
	assert.Equal(t, []domain.Block{block(8, 0, 10, 0), block(12, 0, 14, 0), block(16, 0, 22, 0)}, a.Free)
	assert.Equal(t, []domain.Block{block(10, 0, 12, 0), block(14, 0, 16, 0)}, a.Occupied)
}

func TestComputeAvailability_FullyBookedEdges(t *testing.T) {
	area := newArea()
	reservations := []domain.Reservation{
		existingReservation(area, "2025-03-12", domain.NewClockTime(8, 0), domain.NewClockTime(15, 0), domain.ReservationConfirmed),
		existingReservation(area, "2025-03-12", domain.NewClockTime(15, 0), domain.NewClockTime(22, 0), domain.ReservationConfirmed),
	}

	a, err := services.ComputeAvailability(area, mustDate("2025-03-12"), reservations)

	require.NoError(t, err)
	assert.Empty(t, a.Free)
	assert.Equal(t, []domain.Block{block(8, 0, 15, 0), block(15, 0, 22, 0)}, a.Occupied)
}

func TestComputeAvailability_ClipsRowsOutsideCurrentHours(t *testing.T) {
	area := newArea()
	area.OpensAt = domain.NewClockTime(9, 0)
	area.ClosesAt = domain.NewClockTime(20, 0)
	reservations := []domain.Reservation{
		existingReservation(area, "2025-03-12", domain.NewClockTime(8, 0), domain.NewClockTime(10, 0), domain.ReservationConfirmed),
		existingReservation(area, "2025-03-12", domain.NewClockTime(19, 0), domain.NewClockTime(21, 0), domain.ReservationConfirmed),
		existingReservation(area, "2025-03-12", domain.NewClockTime(20, 0), domain.NewClockTime(22, 0), domain.ReservationConfirmed),
	}

	a, err := services.ComputeAvailability(area, mustDate("2025-03-12"), reservations)

	require.NoError(t, err)
	assert.Equal(t, []domain.Block{block(10, 0, 19, 0)}, a.Free)
	assert.Equal(t, []domain.Block{block(9, 0, 10, 0), block(19, 0, 20, 0)}, a.Occupied)
}

func TestComputeAvailability_DayNotEnabled(t *testing.T) {
	area := newArea()

	a, err := services.ComputeAvailability(area, mustDate("2025-03-16"), nil)

	require.NoError(t, err)
	assert.False(t, a.DayEnabled)
	assert.NotEmpty(t, a.Message)
	assert.Empty(t, a.Free)
	assert.Empty(t, a.Occupied)
}

func TestComputeAvailability_InactiveArea(t *testing.T) {
	area := newArea()
	area.State = domain.AreaInactive

	a, err := services.ComputeAvailability(area, mustDate("2025-03-12"), nil)

	assert.Nil(t, a)
	assert.ErrorIs(t, err, domain.ErrInactiveArea)
}

func TestComputeAvailability_Idempotent(t *testing.T) {
	area := newArea()
	reservations := []domain.Reservation{
		existingReservation(area, "2025-03-12", domain.NewClockTime(10, 0), domain.NewClockTime(11, 30), domain.ReservationConfirmed),
	}

	first, err := services.ComputeAvailability(area, mustDate("2025-03-12"), reservations)
	require.NoError(t, err)
	second, err := services.ComputeAvailability(area, mustDate("2025-03-12"), reservations)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// Free and occupied blocks together tile the operating window with no gaps or
// overlaps, whatever non-overlapping reservations exist.
func TestComputeAvailability_CoversOperatingWindow(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		area := newArea()

		var reservations []domain.Reservation
		cursor := int(area.OpensAt)
		for cursor < int(area.ClosesAt) {
			cursor += rng.Intn(4) * 30
			length := (rng.Intn(4) + 1) * 30
			if cursor+length > int(area.ClosesAt) {
				break
			}
			status := domain.ReservationConfirmed
			if rng.Intn(4) == 0 {
				status = domain.ReservationCancelled
			}
			reservations = append(reservations, existingReservation(area, "2025-03-12",
				domain.ClockTime(cursor), domain.ClockTime(cursor+length), status))
			cursor += length
		}
		rng.Shuffle(len(reservations), func(a, b int) { reservations[a], reservations[b] = reservations[b], reservations[a] })

		a, err := services.ComputeAvailability(area, mustDate("2025-03-12"), reservations)
		require.NoError(t, err)

		all := append(append([]domain.Block{}, a.Free...), a.Occupied...)
		covered := make(map[domain.ClockTime]int)
		for _, b := range all {
			require.Less(t, b.Start, b.End)
			for m := b.Start; m < b.End; m++ {
				covered[m]++
			}
		}
		for m := area.OpensAt; m < area.ClosesAt; m++ {
			require.Equal(t, 1, covered[m], "minute %s covered %d times", m, covered[m])
		}
		assert.Len(t, covered, int(area.ClosesAt-area.OpensAt))
	}
}
