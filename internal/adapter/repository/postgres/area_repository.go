package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/condo_reservations/internal/core/domain"
	"github.com/srgjo27/condo_reservations/internal/core/ports"
)

type AreaRepository struct {
	db *sql.DB
}

func NewAreaRepository(db *sql.DB) *AreaRepository {
	return &AreaRepository{db: db}
}

const areaColumns = `
	id, name, capacity, requires_payment, price_per_block, opens_at, closes_at,
	block_minutes, min_lead_hours, max_days_ahead, weekdays, state, created_at, updated_at
`

// TIME columns are read as text; lib/pq would otherwise decode them into a
// time.Time on year zero.
const areaSelectColumns = `
	id, name, capacity, requires_payment, price_per_block, opens_at::text, closes_at::text,
	block_minutes, min_lead_hours, max_days_ahead, weekdays, state, created_at, updated_at
`

func (r *AreaRepository) CreateArea(ctx context.Context, area *domain.Area) error {
	query := `
	INSERT INTO common_areas (` + areaColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.ExecContext(ctx, query,
		area.ID,
		area.Name,
		area.Capacity,
		area.RequiresPayment,
		area.PricePerBlock,
		area.OpensAt.String(),
		area.ClosesAt.String(),
		area.BlockMinutes,
		area.MinLeadHours,
		area.MaxDaysAhead,
		area.Weekdays.String(),
		area.State,
		area.CreatedAt,
		area.UpdatedAt,
	)
	if err != nil {
		if hasCode(err, uniqueViolation) {
			return domain.NewConflictError(fmt.Sprintf("an area named %q already exists", area.Name), err)
		}
		return fmt.Errorf("failed to insert area: %w", err)
	}

	return nil
}

func (r *AreaRepository) UpdateArea(ctx context.Context, area *domain.Area) error {
	query := `
	UPDATE common_areas
	SET name = $2,
		capacity = $3,
		requires_payment = $4,
		price_per_block = $5,
		opens_at = $6,
		closes_at = $7,
		block_minutes = $8,
		min_lead_hours = $9,
		max_days_ahead = $10,
		weekdays = $11,
		state = $12,
		updated_at = $13
	WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		area.ID,
		area.Name,
		area.Capacity,
		area.RequiresPayment,
		area.PricePerBlock,
		area.OpensAt.String(),
		area.ClosesAt.String(),
		area.BlockMinutes,
		area.MinLeadHours,
		area.MaxDaysAhead,
		area.Weekdays.String(),
		area.State,
		area.UpdatedAt,
	)
	if err != nil {
		if hasCode(err, uniqueViolation) {
			return domain.NewConflictError(fmt.Sprintf("an area named %q already exists", area.Name), err)
		}
		return fmt.Errorf("failed to update area: %w", err)
	}

	return expectOneRow(result, "area not found")
}

func (r *AreaRepository) GetAreaByID(ctx context.Context, areaID uuid.UUID) (*domain.Area, error) {
	query := `SELECT ` + areaSelectColumns + ` FROM common_areas WHERE id = $1`

	area, err := scanArea(r.db.QueryRowContext(ctx, query, areaID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("area not found")
		}
		return nil, err
	}

	return area, nil
}

func (r *AreaRepository) ListAreas(ctx context.Context, filter ports.AreaFilter) ([]domain.Area, error) {
	query := `
	SELECT ` + areaSelectColumns + `
	FROM common_areas
	WHERE ($1 OR state = 'active')
	  AND ($2 = '' OR name ILIKE '%' || $2 || '%')
	ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query, filter.IncludeInactive, filter.Search)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var areas []domain.Area
	for rows.Next() {
		area, err := scanArea(rows)
		if err != nil {
			return nil, err
		}

		areas = append(areas, *area)
	}

	return areas, rows.Err()
}

func (r *AreaRepository) SetAreaState(ctx context.Context, areaID uuid.UUID, state domain.AreaState, at time.Time) error {
	result, err := r.db.ExecContext(ctx, `UPDATE common_areas SET state = $2, updated_at = $3 WHERE id = $1`, areaID, state, at)
	if err != nil {
		return fmt.Errorf("failed to update area state: %w", err)
	}

	return expectOneRow(result, "area not found")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArea(row rowScanner) (*domain.Area, error) {
	var area domain.Area
	var opensAt, closesAt, weekdays string

	err := row.Scan(
		&area.ID,
		&area.Name,
		&area.Capacity,
		&area.RequiresPayment,
		&area.PricePerBlock,
		&opensAt,
		&closesAt,
		&area.BlockMinutes,
		&area.MinLeadHours,
		&area.MaxDaysAhead,
		&weekdays,
		&area.State,
		&area.CreatedAt,
		&area.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if area.OpensAt, err = domain.ParseClockTime(opensAt); err != nil {
		return nil, fmt.Errorf("area %s: %w", area.ID, err)
	}
	if area.ClosesAt, err = domain.ParseClockTime(closesAt); err != nil {
		return nil, fmt.Errorf("area %s: %w", area.ID, err)
	}
	if area.Weekdays, err = domain.ParseWeekdays(weekdays); err != nil {
		// An unreadable set falls back to the default week.
		area.Weekdays = append(domain.Weekdays(nil), domain.DefaultWeekdays...)
	}

	return &area, nil
}

func expectOneRow(result sql.Result, notFound string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return domain.NewNotFoundError(notFound)
	}

	return nil
}
