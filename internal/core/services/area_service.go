package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/srgjo27/condo_reservations/internal/core/domain"
	"github.com/srgjo27/condo_reservations/internal/core/ports"
)

const codeInvalidArea = "invalid_area"

// AreaInput is the administrator-supplied configuration of a common area.
// Nil fields keep the area's current value, which for a new area is the
// default policy.
type AreaInput struct {
	Name            *string  `json:"name"`
	Capacity        *int     `json:"capacity"`
	RequiresPayment *bool    `json:"requires_payment"`
	PricePerBlock   *float64 `json:"price_per_block"`
	OpensAt         *string  `json:"opens_at"`
	ClosesAt        *string  `json:"closes_at"`
	BlockMinutes    *int     `json:"block_minutes,omitempty"`
	MinLeadHours    *int     `json:"min_lead_hours,omitempty"`
	MaxDaysAhead    *int     `json:"max_days_ahead,omitempty"`
	Weekdays        []int    `json:"weekdays,omitempty"`
	State           string   `json:"state,omitempty"`
}

type AreaService struct {
	areaRepo ports.AreaRepository
	cache    ports.AvailabilityCache
	opts     options
}

func NewAreaService(areaRepo ports.AreaRepository, cache ports.AvailabilityCache, opts ...Option) *AreaService {
	return &AreaService{
		areaRepo: areaRepo,
		cache:    cache,
		opts:     buildOptions(opts),
	}
}

func (s *AreaService) CreateArea(ctx context.Context, input AreaInput) (*domain.Area, error) {
	area := &domain.Area{
		State:        domain.AreaActive,
		BlockMinutes: domain.DefaultBlockMinutes,
		MinLeadHours: domain.DefaultMinLeadHours,
		MaxDaysAhead: domain.DefaultMaxDaysAhead,
		Weekdays:     append(domain.Weekdays(nil), domain.DefaultWeekdays...),
	}
	if err := applyAreaInput(area, input, false); err != nil {
		return nil, err
	}

	now := s.opts.now()
	area.ID = uuid.New()
	area.CreatedAt = now
	area.UpdatedAt = now

	if err := s.areaRepo.CreateArea(ctx, area); err != nil {
		return nil, err
	}

	s.opts.opLogger("area", "create").InfoContext(ctx, "area created", "area_id", area.ID, "name", area.Name)
	return area, nil
}

// UpdateArea replaces the area configuration. Name, capacity and hours are
// required; omitted policy fields keep their stored values. Existing
// reservations are kept even if they no longer fit the new hours.
func (s *AreaService) UpdateArea(ctx context.Context, areaID uuid.UUID, input AreaInput) (*domain.Area, error) {
	return s.update(ctx, areaID, input, false)
}

// PatchArea changes only the fields present in input.
func (s *AreaService) PatchArea(ctx context.Context, areaID uuid.UUID, input AreaInput) (*domain.Area, error) {
	return s.update(ctx, areaID, input, true)
}

func (s *AreaService) update(ctx context.Context, areaID uuid.UUID, input AreaInput, partial bool) (*domain.Area, error) {
	existing, err := s.areaRepo.GetAreaByID(ctx, areaID)
	if err != nil {
		return nil, err
	}

	updated := *existing
	updated.Weekdays = append(domain.Weekdays(nil), existing.Weekdays...)
	if err := applyAreaInput(&updated, input, partial); err != nil {
		return nil, err
	}
	updated.UpdatedAt = s.opts.now()

	if err := s.areaRepo.UpdateArea(ctx, &updated); err != nil {
		return nil, err
	}

	s.invalidate(ctx, areaID)
	s.opts.opLogger("area", "update").InfoContext(ctx, "area updated", "area_id", areaID, "partial", partial)
	return &updated, nil
}

// DeactivateArea is the only form of deletion for areas.
func (s *AreaService) DeactivateArea(ctx context.Context, areaID uuid.UUID) (*domain.Area, error) {
	area, err := s.areaRepo.GetAreaByID(ctx, areaID)
	if err != nil {
		return nil, err
	}

	now := s.opts.now()
	if err := s.areaRepo.SetAreaState(ctx, areaID, domain.AreaInactive, now); err != nil {
		return nil, err
	}
	area.State = domain.AreaInactive
	area.UpdatedAt = now

	s.invalidate(ctx, areaID)
	s.opts.opLogger("area", "deactivate").InfoContext(ctx, "area deactivated", "area_id", areaID)
	return area, nil
}

func (s *AreaService) GetArea(ctx context.Context, areaID uuid.UUID) (*domain.Area, error) {
	return s.areaRepo.GetAreaByID(ctx, areaID)
}

func (s *AreaService) ListAreas(ctx context.Context, filter ports.AreaFilter) ([]domain.Area, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	return s.areaRepo.ListAreas(ctx, filter)
}

func (s *AreaService) invalidate(ctx context.Context, areaID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateArea(ctx, areaID); err != nil {
		s.opts.opLogger("area", "invalidate").WarnContext(ctx, "availability cache invalidation failed",
			"area_id", areaID, "error", err)
	}
}

// applyAreaInput merges input over area and validates the result. Unless
// partial, name, capacity and both hours must be present.
func applyAreaInput(area *domain.Area, input AreaInput, partial bool) error {
	if !partial && (input.Name == nil || input.Capacity == nil || input.OpensAt == nil || input.ClosesAt == nil) {
		return domain.NewValidationError(codeInvalidArea, "name, capacity, opens_at and closes_at are required")
	}

	name := area.Name
	if input.Name != nil {
		name = strings.TrimSpace(*input.Name)
	}
	if name == "" {
		return domain.NewValidationError(codeInvalidArea, "name is required")
	}
	if len(name) > 100 {
		return domain.NewValidationError(codeInvalidArea, "name must be at most 100 characters")
	}

	capacity := intOr(input.Capacity, area.Capacity)
	if capacity <= 0 {
		return domain.NewValidationError(codeInvalidArea, "capacity must be positive")
	}

	requiresPayment := area.RequiresPayment
	if input.RequiresPayment != nil {
		requiresPayment = *input.RequiresPayment
	}
	price := area.PricePerBlock
	if input.PricePerBlock != nil {
		price = *input.PricePerBlock
	}
	if price < 0 {
		return domain.NewValidationError(codeInvalidArea, "price per block cannot be negative")
	}

	opens := area.OpensAt
	if input.OpensAt != nil {
		t, err := domain.ParseClockTime(*input.OpensAt)
		if err != nil {
			return domain.NewValidationError(codeInvalidArea, "invalid opening time, use HH:MM")
		}
		opens = t
	}
	closes := area.ClosesAt
	if input.ClosesAt != nil {
		t, err := domain.ParseClockTime(*input.ClosesAt)
		if err != nil {
			return domain.NewValidationError(codeInvalidArea, "invalid closing time, use HH:MM")
		}
		closes = t
	}
	if closes <= opens {
		return domain.NewValidationError(codeInvalidArea, "closing time must be after opening time")
	}

	blockMinutes := intOr(input.BlockMinutes, area.BlockMinutes)
	if blockMinutes <= 0 {
		return domain.NewValidationError(codeInvalidArea, "block minutes must be positive")
	}
	minLead := intOr(input.MinLeadHours, area.MinLeadHours)
	if minLead < 0 {
		return domain.NewValidationError(codeInvalidArea, "minimum lead hours cannot be negative")
	}
	maxDays := intOr(input.MaxDaysAhead, area.MaxDaysAhead)
	if maxDays < 0 {
		return domain.NewValidationError(codeInvalidArea, "maximum days ahead cannot be negative")
	}

	weekdays := area.Weekdays
	if input.Weekdays != nil {
		for _, d := range input.Weekdays {
			if d < 0 || d > 6 {
				return domain.NewValidationError(codeInvalidArea, "weekdays must be between 0 (Monday) and 6 (Sunday)")
			}
		}
		weekdays = domain.Weekdays(input.Weekdays).Normalize()
	}

	state := area.State
	if v := strings.TrimSpace(input.State); v != "" {
		state = domain.AreaState(strings.ToLower(v))
		if !state.Valid() {
			return domain.NewValidationError(codeInvalidArea, "state must be active or inactive")
		}
	}

	area.Name = name
	area.Capacity = capacity
	area.RequiresPayment = requiresPayment
	area.PricePerBlock = price
	area.OpensAt = opens
	area.ClosesAt = closes
	area.BlockMinutes = blockMinutes
	area.MinLeadHours = minLead
	area.MaxDaysAhead = maxDays
	area.Weekdays = weekdays
	area.State = state
	return nil
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
