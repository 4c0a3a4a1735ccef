package services_test

import (
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/condo_reservations/internal/core/domain"
	"github.com/srgjo27/condo_reservations/internal/core/services"
)

// laPaz has no DST, so a fixed zone keeps the tests independent of tzdata.
var laPaz = time.FixedZone("BOT", -4*60*60)

// Monday 2025-03-10 10:00 local.
var fixedNow = time.Date(2025, time.March, 10, 10, 0, 0, 0, laPaz)

func testOptions() []services.Option {
	return []services.Option{
		services.WithLocation(laPaz),
		services.WithClock(func() time.Time { return fixedNow }),
		services.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
}

func newArea() *domain.Area {
	return &domain.Area{
		ID:           uuid.New(),
		Name:         "Salon de eventos",
		Capacity:     50,
		OpensAt:      domain.NewClockTime(8, 0),
		ClosesAt:     domain.NewClockTime(22, 0),
		BlockMinutes: domain.DefaultBlockMinutes,
		MinLeadHours: domain.DefaultMinLeadHours,
		MaxDaysAhead: domain.DefaultMaxDaysAhead,
		Weekdays:     append(domain.Weekdays(nil), domain.DefaultWeekdays...),
		State:        domain.AreaActive,
	}
}

func mustDate(s string) time.Time {
	d, err := domain.ParseDate(s, laPaz)
	if err != nil {
		panic(err)
	}
	return d
}

func existingReservation(area *domain.Area, date string, start, end domain.ClockTime, status domain.ReservationStatus) domain.Reservation {
	day := mustDate(date)
	return domain.Reservation{
		ID:         uuid.New(),
		AreaID:     area.ID,
		ResidentID: uuid.New(),
		Date:       day,
		StartTime:  start,
		EndTime:    end,
		StartsAt:   start.On(day, laPaz),
		EndsAt:     end.On(day, laPaz),
		Status:     status,
	}
}
