package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/srgjo27/condo_reservations/internal/core/domain"
	"github.com/srgjo27/condo_reservations/internal/core/ports"
)

type CreateReservationRequest struct {
	AreaID          string `json:"area_id"`
	Date            string `json:"date"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	PaymentProofURL string `json:"payment_proof_url,omitempty"`
	Note            string `json:"note,omitempty"`
}

type ListReservationsRequest struct {
	AreaID string
	Date   string
	Status string
}

type ReservationService struct {
	areaRepo        ports.AreaRepository
	reservationRepo ports.ReservationRepository
	cache           ports.AvailabilityCache
	events          ports.EventPublisher
	opts            options
}

// NewReservationService wires the reservation core. cache and events may be
// nil, in which case availability is always computed and no events are sent.
func NewReservationService(areaRepo ports.AreaRepository, reservationRepo ports.ReservationRepository, cache ports.AvailabilityCache, events ports.EventPublisher, opts ...Option) *ReservationService {
	return &ReservationService{
		areaRepo:        areaRepo,
		reservationRepo: reservationRepo,
		cache:           cache,
		events:          events,
		opts:            buildOptions(opts),
	}
}

// ValidateAndCreate runs the validator against the current snapshot and then
// persists. A conflict from the store means another request took the slot
// between validation and insert.
func (s *ReservationService) ValidateAndCreate(ctx context.Context, req CreateReservationRequest, actor domain.Actor) (*domain.Reservation, error) {
	if actor.ID == uuid.Nil {
		return nil, domain.NewForbiddenError("caller identity is required")
	}

	if strings.TrimSpace(req.AreaID) == "" || strings.TrimSpace(req.Date) == "" ||
		strings.TrimSpace(req.StartTime) == "" || strings.TrimSpace(req.EndTime) == "" {
		return nil, domain.NewValidationError(domain.ReasonMissingFields, "area, date, start time and end time are required")
	}

	areaID, err := uuid.Parse(strings.TrimSpace(req.AreaID))
	if err != nil {
		return nil, domain.NewValidationError(domain.ReasonMalformedInput, "invalid area id")
	}

	date, err := domain.ParseDate(req.Date, s.opts.loc)
	if err != nil {
		return nil, domain.NewValidationError(domain.ReasonMalformedInput, "invalid date format, use YYYY-MM-DD")
	}

	area, err := s.areaRepo.GetAreaByID(ctx, areaID)
	if err != nil {
		return nil, err
	}

	if !area.IsActive() {
		return nil, domain.NewInactiveAreaError(area.Name)
	}

	existing, err := s.reservationRepo.ListActiveByAreaAndDate(ctx, areaID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load reservations: %w", err)
	}

	now := s.opts.now()
	reservation, err := ValidateReservation(ReservationCandidate{
		Area:            area,
		ResidentID:      actor.ID,
		Date:            req.Date,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		PaymentProofURL: req.PaymentProofURL,
		Note:            req.Note,
	}, existing, now, s.opts.loc)
	if err != nil {
		return nil, err
	}

	reservation.ID = uuid.New()

	logger := s.opts.opLogger("reservation", "create",
		"area_id", areaID, "date", req.Date, "resident_id", actor.ID)

	if err := s.reservationRepo.CreateReservation(ctx, reservation); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			logger.InfoContext(ctx, "slot taken by a concurrent reservation")
		}
		return nil, err
	}

	logger.InfoContext(ctx, "reservation created", "reservation_id", reservation.ID)

	s.invalidateDay(ctx, reservation)
	s.publish(ctx, domain.ReservationCreatedEvent, area, reservation, actor)

	return reservation, nil
}

// Cancel frees the reservation's interval. Only the owning resident or an
// administrator may cancel.
func (s *ReservationService) Cancel(ctx context.Context, reservationID uuid.UUID, actor domain.Actor, reason string) (*domain.Reservation, error) {
	reservation, err := s.reservationRepo.GetReservationByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin() && !reservation.OwnedBy(actor.ID) {
		return nil, domain.NewForbiddenError("you cannot cancel another resident's reservation")
	}

	if reservation.Status == domain.ReservationCancelled {
		return nil, domain.NewAlreadyCancelledError()
	}

	now := s.opts.now()
	reason = strings.TrimSpace(reason)
	if err := s.reservationRepo.CancelReservation(ctx, reservationID, now, reason); err != nil {
		return nil, err
	}

	reservation.Status = domain.ReservationCancelled
	reservation.CancelledAt = &now
	reservation.CancellationReason = reason

	s.opts.opLogger("reservation", "cancel").InfoContext(ctx, "reservation cancelled",
		"reservation_id", reservationID, "actor_id", actor.ID, "actor_role", actor.Role)

	s.invalidateDay(ctx, reservation)

	if s.events != nil {
		area, err := s.areaRepo.GetAreaByID(ctx, reservation.AreaID)
		if err != nil {
			area = &domain.Area{ID: reservation.AreaID}
		}
		s.publish(ctx, domain.ReservationCancelledEvent, area, reservation, actor)
	}

	return reservation, nil
}

// Availability returns the free and occupied blocks of an area on date.
func (s *ReservationService) Availability(ctx context.Context, areaID uuid.UUID, date string) (*domain.Availability, error) {
	if strings.TrimSpace(date) == "" {
		return nil, domain.NewValidationError(domain.ReasonMissingFields, "date is required, use YYYY-MM-DD")
	}
	day, err := domain.ParseDate(date, s.opts.loc)
	if err != nil {
		return nil, domain.NewValidationError(domain.ReasonMalformedInput, "invalid date format, use YYYY-MM-DD")
	}
	key := day.Format(domain.DateLayout)

	logger := s.opts.opLogger("reservation", "availability", "area_id", areaID, "date", key)

	// The generation is read before the area and reservations are loaded. An
	// invalidation in between moves it, so the Set below lands on a key no
	// later reader uses.
	var generation string
	useCache := s.cache != nil
	if useCache {
		generation, err = s.cache.Generation(ctx, areaID, key)
		if err != nil {
			logger.WarnContext(ctx, "availability cache generation read failed", "error", err)
			useCache = false
		}
	}

	area, err := s.areaRepo.GetAreaByID(ctx, areaID)
	if err != nil {
		return nil, err
	}
	if !area.IsActive() {
		return nil, domain.NewInactiveAreaError(area.Name)
	}

	if useCache {
		cached, err := s.cache.Get(ctx, areaID, key, generation)
		if err != nil {
			logger.WarnContext(ctx, "availability cache read failed", "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	var reservations []domain.Reservation
	if area.OpenOn(day) {
		reservations, err = s.reservationRepo.ListActiveByAreaAndDate(ctx, areaID, day)
		if err != nil {
			return nil, fmt.Errorf("failed to load reservations: %w", err)
		}
	}

	availability, err := ComputeAvailability(area, day, reservations)
	if err != nil {
		return nil, err
	}

	if useCache {
		if err := s.cache.Set(ctx, areaID, key, generation, availability); err != nil {
			logger.WarnContext(ctx, "availability cache write failed", "error", err)
		}
	}

	return availability, nil
}

// GetReservation returns one reservation. Owners may only read their own.
func (s *ReservationService) GetReservation(ctx context.Context, reservationID uuid.UUID, actor domain.Actor) (*domain.Reservation, error) {
	reservation, err := s.reservationRepo.GetReservationByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if actor.Role == domain.RoleOwner && !reservation.OwnedBy(actor.ID) {
		return nil, domain.NewForbiddenError("you cannot view another resident's reservation")
	}
	return reservation, nil
}

// ListReservations lists reservations newest first. Owners only see their own.
func (s *ReservationService) ListReservations(ctx context.Context, actor domain.Actor, req ListReservationsRequest) ([]domain.Reservation, error) {
	var filter ports.ReservationFilter

	if actor.Role == domain.RoleOwner {
		id := actor.ID
		filter.ResidentID = &id
	}

	if v := strings.TrimSpace(req.AreaID); v != "" {
		areaID, err := uuid.Parse(v)
		if err != nil {
			return nil, domain.NewValidationError(domain.ReasonMalformedInput, "invalid area id")
		}
		filter.AreaID = &areaID
	}

	if v := strings.TrimSpace(req.Date); v != "" {
		date, err := domain.ParseDate(v, s.opts.loc)
		if err != nil {
			return nil, domain.NewValidationError(domain.ReasonMalformedInput, "invalid date format, use YYYY-MM-DD")
		}
		filter.Date = &date
	}

	if v := strings.TrimSpace(req.Status); v != "" {
		status := domain.ReservationStatus(strings.ToLower(v))
		if !status.Valid() {
			return nil, domain.NewValidationError(domain.ReasonMalformedInput, "invalid reservation status")
		}
		filter.Status = status
	}

	return s.reservationRepo.ListReservations(ctx, filter)
}

func (s *ReservationService) invalidateDay(ctx context.Context, reservation *domain.Reservation) {
	if s.cache == nil {
		return
	}
	date := reservation.Date.Format(domain.DateLayout)
	if err := s.cache.InvalidateDay(ctx, reservation.AreaID, date); err != nil {
		s.opts.opLogger("reservation", "invalidate").WarnContext(ctx, "availability cache invalidation failed",
			"area_id", reservation.AreaID, "date", date, "error", err)
	}
}

// publish never fails the request; the reservation is already committed.
func (s *ReservationService) publish(ctx context.Context, eventType domain.ReservationEventType, area *domain.Area, reservation *domain.Reservation, actor domain.Actor) {
	if s.events == nil {
		return
	}
	event := domain.ReservationEvent{
		Type:          eventType,
		ReservationID: reservation.ID,
		AreaID:        reservation.AreaID,
		AreaName:      area.Name,
		ResidentID:    reservation.ResidentID,
		ActorID:       actor.ID,
		Date:          reservation.Date.Format(domain.DateLayout),
		Start:         reservation.StartTime,
		End:           reservation.EndTime,
		Status:        reservation.Status,
		Reason:        reservation.CancellationReason,
		OccurredAt:    s.opts.now().UTC(),
	}
	if err := s.events.PublishReservationEvent(ctx, event); err != nil {
		s.opts.opLogger("reservation", "publish").WarnContext(ctx, "failed to publish reservation event",
			"type", eventType, "reservation_id", reservation.ID, "error", err)
	}
}
