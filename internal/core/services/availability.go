package services

import (
	"sort"
	"time"

	"github.com/srgjo27/condo_reservations/internal/core/domain"
)

const dayNotEnabledMessage = "day not enabled for this area"

// ComputeAvailability splits the area's operating window on date into free
// and occupied blocks. The blocks never overlap and together cover
// [OpensAt, ClosesAt) exactly.
func ComputeAvailability(area *domain.Area, date time.Time, reservations []domain.Reservation) (*domain.Availability, error) {
	if !area.IsActive() {
		return nil, domain.NewInactiveAreaError(area.Name)
	}

	availability := &domain.Availability{
		AreaID:     area.ID.String(),
		AreaName:   area.Name,
		Date:       date.Format(domain.DateLayout),
		DayEnabled: true,
		Free:       []domain.Block{},
		Occupied:   []domain.Block{},
	}

	if !area.OpenOn(date) {
		availability.DayEnabled = false
		availability.Message = dayNotEnabledMessage
		return availability, nil
	}

	active := make([]domain.Reservation, 0, len(reservations))
	for _, r := range reservations {
		if r.Status.Holds() {
			active = append(active, r)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].StartTime < active[j].StartTime
	})

	cursor := area.OpensAt
	for _, r := range active {
		// Clip to what is still uncovered so rows outside the current hours
		// cannot break the partition.
		start := max(r.StartTime, cursor)
		end := min(r.EndTime, area.ClosesAt)
		if end <= start {
			continue
		}
		if start > cursor {
			availability.Free = append(availability.Free, domain.Block{Start: cursor, End: start})
		}
		availability.Occupied = append(availability.Occupied, domain.Block{Start: start, End: end})
		cursor = end
	}

	if cursor < area.ClosesAt {
		availability.Free = append(availability.Free, domain.Block{Start: cursor, End: area.ClosesAt})
	}

	return availability, nil
}
