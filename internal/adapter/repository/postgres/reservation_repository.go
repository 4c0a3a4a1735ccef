package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/condo_reservations/internal/core/domain"
	"github.com/srgjo27/condo_reservations/internal/core/ports"
)

// ReservationRepository relies on the exc_reservation_no_overlap exclusion
// constraint: two pending/confirmed rows of one area can never hold
// intersecting periods, whatever the interleaving of concurrent inserts.
type ReservationRepository struct {
	db *sql.DB
}

func NewReservationRepository(db *sql.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

const reservationSelect = `
	SELECT id, area_id, resident_id, reservation_date, start_time::text, end_time::text,
		starts_at, ends_at, status, COALESCE(payment_proof_url, ''), note, created_at,
		cancelled_at, COALESCE(cancellation_reason, '')
	FROM reservations
`

func (r *ReservationRepository) CreateReservation(ctx context.Context, reservation *domain.Reservation) error {
	query := `
	INSERT INTO reservations (
		id, area_id, resident_id, reservation_date, start_time, end_time,
		starts_at, ends_at, period, status, payment_proof_url, note, created_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, tstzrange($7, $8, '[)'), $9, NULLIF($10, ''), $11, $12)
	`

	_, err := r.db.ExecContext(ctx, query,
		reservation.ID,
		reservation.AreaID,
		reservation.ResidentID,
		reservation.Date.Format(domain.DateLayout),
		reservation.StartTime.String(),
		reservation.EndTime.String(),
		reservation.StartsAt,
		reservation.EndsAt,
		reservation.Status,
		reservation.PaymentProofURL,
		reservation.Note,
		reservation.CreatedAt,
	)
	if err != nil {
		switch {
		case hasCode(err, exclusionViolation):
			return domain.NewConflictError("the time slot was just taken, check availability and try another range", err)
		case hasCode(err, checkViolation):
			return domain.NewValidationError(domain.ReasonInvalidInterval, "end time must be after start time")
		}
		return fmt.Errorf("failed to insert reservation: %w", err)
	}

	return nil
}

func (r *ReservationRepository) GetReservationByID(ctx context.Context, reservationID uuid.UUID) (*domain.Reservation, error) {
	reservation, err := scanReservation(r.db.QueryRowContext(ctx, reservationSelect+` WHERE id = $1`, reservationID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("reservation not found")
		}
		return nil, err
	}

	return reservation, nil
}

func (r *ReservationRepository) ListActiveByAreaAndDate(ctx context.Context, areaID uuid.UUID, date time.Time) ([]domain.Reservation, error) {
	query := reservationSelect + `
	WHERE area_id = $1
	  AND reservation_date = $2
	  AND status IN ('pending', 'confirmed')
	ORDER BY start_time
	`

	return r.query(ctx, query, areaID, date.Format(domain.DateLayout))
}

func (r *ReservationRepository) ListReservations(ctx context.Context, filter ports.ReservationFilter) ([]domain.Reservation, error) {
	var conds []string
	var args []any

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.ResidentID != nil {
		add("resident_id = $%d", *filter.ResidentID)
	}
	if filter.AreaID != nil {
		add("area_id = $%d", *filter.AreaID)
	}
	if filter.Date != nil {
		add("reservation_date = $%d", filter.Date.Format(domain.DateLayout))
	}
	if filter.Status != "" {
		add("status = $%d", filter.Status)
	}

	query := reservationSelect
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"

	return r.query(ctx, query, args...)
}

// CancelReservation only touches rows that are not cancelled yet, so two
// concurrent cancels cannot both succeed.
func (r *ReservationRepository) CancelReservation(ctx context.Context, reservationID uuid.UUID, cancelledAt time.Time, reason string) error {
	query := `
	UPDATE reservations
	SET status = 'cancelled',
		cancelled_at = $2,
		cancellation_reason = NULLIF($3, '')
	WHERE id = $1 AND status <> 'cancelled'
	`

	result, err := r.db.ExecContext(ctx, query, reservationID, cancelledAt, reason)
	if err != nil {
		return fmt.Errorf("failed to cancel reservation: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		var exists bool
		if err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM reservations WHERE id = $1)`, reservationID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return domain.NewNotFoundError("reservation not found")
		}
		return domain.NewAlreadyCancelledError()
	}

	return nil
}

func (r *ReservationRepository) query(ctx context.Context, query string, args ...any) ([]domain.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var reservations []domain.Reservation
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}

		reservations = append(reservations, *reservation)
	}

	return reservations, rows.Err()
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var reservation domain.Reservation
	var startTime, endTime string
	var cancelledAt sql.NullTime

	err := row.Scan(
		&reservation.ID,
		&reservation.AreaID,
		&reservation.ResidentID,
		&reservation.Date,
		&startTime,
		&endTime,
		&reservation.StartsAt,
		&reservation.EndsAt,
		&reservation.Status,
		&reservation.PaymentProofURL,
		&reservation.Note,
		&reservation.CreatedAt,
		&cancelledAt,
		&reservation.CancellationReason,
	)
	if err != nil {
		return nil, err
	}

	if reservation.StartTime, err = domain.ParseClockTime(startTime); err != nil {
		return nil, fmt.Errorf("reservation %s: %w", reservation.ID, err)
	}
	if reservation.EndTime, err = domain.ParseClockTime(endTime); err != nil {
		return nil, fmt.Errorf("reservation %s: %w", reservation.ID, err)
	}

	if cancelledAt.Valid {
		reservation.CancelledAt = &cancelledAt.Time
	}

	return &reservation, nil
}
