package sqlite

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

func (r *AreaRepository) CreateArea(ctx context.Context, area *domain.Area) error {
	query := `INSERT INTO common_areas (` + areaColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

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
		string(area.State),
		formatTime(area.CreatedAt),
		formatTime(area.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewConflictError(fmt.Sprintf("an area named %q already exists", area.Name), err)
		}
		return fmt.Errorf("failed to insert area: %w", err)
	}
	return nil
}

func (r *AreaRepository) UpdateArea(ctx context.Context, area *domain.Area) error {
	query := `
	UPDATE common_areas
	SET name = ?, capacity = ?, requires_payment = ?, price_per_block = ?, opens_at = ?, closes_at = ?,
		block_minutes = ?, min_lead_hours = ?, max_days_ahead = ?, weekdays = ?, state = ?, updated_at = ?
	WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
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
		string(area.State),
		formatTime(area.UpdatedAt),
		area.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewConflictError(fmt.Sprintf("an area named %q already exists", area.Name), err)
		}
		return fmt.Errorf("failed to update area: %w", err)
	}
	return expectOneRow(result, "area not found")
}

func (r *AreaRepository) GetAreaByID(ctx context.Context, areaID uuid.UUID) (*domain.Area, error) {
	area, err := scanArea(r.db.QueryRowContext(ctx, `SELECT `+areaColumns+` FROM common_areas WHERE id = ?`, areaID))
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
	SELECT ` + areaColumns + `
	FROM common_areas
	WHERE (? OR state = 'active')
	  AND (? = '' OR name LIKE '%' || ? || '%')
	ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query, filter.IncludeInactive, filter.Search, filter.Search)
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
	result, err := r.db.ExecContext(ctx, `UPDATE common_areas SET state = ?, updated_at = ? WHERE id = ?`,
		string(state), formatTime(at), areaID)
	if err != nil {
		return fmt.Errorf("failed to update area state: %w", err)
	}
	return expectOneRow(result, "area not found")
}

func scanArea(row rowScanner) (*domain.Area, error) {
	var area domain.Area
	var opensAt, closesAt, weekdays, state, createdAt, updatedAt string

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
		&state,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	area.State = domain.AreaState(state)
	if area.OpensAt, err = domain.ParseClockTime(opensAt); err != nil {
		return nil, err
	}
	if area.ClosesAt, err = domain.ParseClockTime(closesAt); err != nil {
		return nil, err
	}
	if area.Weekdays, err = domain.ParseWeekdays(weekdays); err != nil {
		area.Weekdays = append(domain.Weekdays(nil), domain.DefaultWeekdays...)
	}
	if area.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if area.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &area, nil
}

func expectOneRow(result sql.Result, notFound string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NewNotFoundError(notFound)
	}
	return nil
}
