package sqlite

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

// ReservationRepository expects a *sql.DB whose transactions begin with
// BEGIN IMMEDIATE (see database.NewSQLiteDB), which makes the overlap check
// and the insert a single serialized step.
type ReservationRepository struct {
	db *sql.DB
}

func NewReservationRepository(db *sql.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

const reservationSelect = `
	SELECT id, area_id, resident_id, reservation_date, start_time, end_time, starts_at, ends_at,
		status, COALESCE(payment_proof_url, ''), note, created_at, cancelled_at, COALESCE(cancellation_reason, '')
	FROM reservations
`

func (r *ReservationRepository) CreateReservation(ctx context.Context, reservation *domain.Reservation) error {
	if !reservation.EndsAt.After(reservation.StartsAt) {
		return domain.NewValidationError(domain.ReasonInvalidInterval, "end time must be after start time")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer tx.Rollback()

	var overlapping int
	err = tx.QueryRowContext(ctx, `
	SELECT COUNT(1) FROM reservations
	WHERE area_id = ?
	  AND status IN ('pending', 'confirmed')
	  AND starts_at < ?
	  AND ends_at > ?
	`, reservation.AreaID, formatTime(reservation.EndsAt), formatTime(reservation.StartsAt)).Scan(&overlapping)
	if err != nil {
		return fmt.Errorf("failed to check overlapping reservations: %w", err)
	}

	if overlapping > 0 {
		return domain.NewConflictError("the time slot was just taken, check availability and try another range", nil)
	}

	_, err = tx.ExecContext(ctx, `
	INSERT INTO reservations (
		id, area_id, resident_id, reservation_date, start_time, end_time,
		starts_at, ends_at, status, payment_proof_url, note, created_at
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, NULLIF(?, ''), ?, ?)
	`,
		reservation.ID,
		reservation.AreaID,
		reservation.ResidentID,
		reservation.Date.Format(domain.DateLayout),
		reservation.StartTime.String(),
		reservation.EndTime.String(),
		formatTime(reservation.StartsAt),
		formatTime(reservation.EndsAt),
		string(reservation.Status),
		reservation.PaymentProofURL,
		reservation.Note,
		formatTime(reservation.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert reservation: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *ReservationRepository) GetReservationByID(ctx context.Context, reservationID uuid.UUID) (*domain.Reservation, error) {
	reservation, err := scanReservation(r.db.QueryRowContext(ctx, reservationSelect+` WHERE id = ?`, reservationID))
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
	WHERE area_id = ? AND reservation_date = ? AND status IN ('pending', 'confirmed')
	ORDER BY start_time
	`
	return r.query(ctx, query, areaID, date.Format(domain.DateLayout))
}

func (r *ReservationRepository) ListReservations(ctx context.Context, filter ports.ReservationFilter) ([]domain.Reservation, error) {
	var conds []string
	var args []any

	if filter.ResidentID != nil {
		conds = append(conds, "resident_id = ?")
		args = append(args, *filter.ResidentID)
	}
	if filter.AreaID != nil {
		conds = append(conds, "area_id = ?")
		args = append(args, *filter.AreaID)
	}
	if filter.Date != nil {
		conds = append(conds, "reservation_date = ?")
		args = append(args, filter.Date.Format(domain.DateLayout))
	}
	if filter.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, string(filter.Status))
	}

	query := reservationSelect
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"

	return r.query(ctx, query, args...)
}

func (r *ReservationRepository) CancelReservation(ctx context.Context, reservationID uuid.UUID, cancelledAt time.Time, reason string) error {
	result, err := r.db.ExecContext(ctx, `
	UPDATE reservations
	SET status = 'cancelled', cancelled_at = ?, cancellation_reason = NULLIF(?, '')
	WHERE id = ? AND status <> 'cancelled'
	`, formatTime(cancelledAt), reason, reservationID)
	if err != nil {
		return fmt.Errorf("failed to cancel reservation: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	var exists int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM reservations WHERE id = ?`, reservationID).Scan(&exists); err != nil {
		return err
	}
	if exists == 0 {
		return domain.NewNotFoundError("reservation not found")
	}
	return domain.NewAlreadyCancelledError()
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
	var date, startTime, endTime, startsAt, endsAt, status, createdAt string
	var cancelledAt sql.NullString

	err := row.Scan(
		&reservation.ID,
		&reservation.AreaID,
		&reservation.ResidentID,
		&date,
		&startTime,
		&endTime,
		&startsAt,
		&endsAt,
		&status,
		&reservation.PaymentProofURL,
		&reservation.Note,
		&createdAt,
		&cancelledAt,
		&reservation.CancellationReason,
	)
	if err != nil {
		return nil, err
	}

	reservation.Status = domain.ReservationStatus(status)
	if reservation.Date, err = time.Parse(domain.DateLayout, date); err != nil {
		return nil, err
	}
	if reservation.StartTime, err = domain.ParseClockTime(startTime); err != nil {
		return nil, err
	}
	if reservation.EndTime, err = domain.ParseClockTime(endTime); err != nil {
		return nil, err
	}
	if reservation.StartsAt, err = parseTime(startsAt); err != nil {
		return nil, err
	}
	if reservation.EndsAt, err = parseTime(endsAt); err != nil {
		return nil, err
	}
	if reservation.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if cancelledAt.Valid {
		t, err := parseTime(cancelledAt.String)
		if err != nil {
			return nil, err
		}
		reservation.CancelledAt = &t
	}
	return &reservation, nil
}
