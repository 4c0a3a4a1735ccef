package handler

import (
	"log/slog"
	"net/http"

	"github.com/srgjo27/condo_reservations/internal/core/services"
)

type ReservationHandler struct {
	svc    *services.ReservationService
	logger *slog.Logger
}

func NewReservationHandler(svc *services.ReservationService, logger *slog.Logger) *ReservationHandler {
	return &ReservationHandler{svc: svc, logger: logger}
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

func (h *ReservationHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())

	var req services.CreateReservationRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	reservation, err := h.svc.ValidateAndCreate(r.Context(), req, actor)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, toReservationResponse(reservation))
}

func (h *ReservationHandler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req cancelRequest
	if !decodeJSON(w, r, &req, true) {
		return
	}

	reservation, err := h.svc.Cancel(r.Context(), id, actor, req.Reason)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toReservationResponse(reservation))
}

func (h *ReservationHandler) GetReservation(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	reservation, err := h.svc.GetReservation(r.Context(), id, actor)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toReservationResponse(reservation))
}

func (h *ReservationHandler) ListReservations(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())
	q := r.URL.Query()

	reservations, err := h.svc.ListReservations(r.Context(), actor, services.ListReservationsRequest{
		AreaID: q.Get("area_id"),
		Date:   q.Get("date"),
		Status: q.Get("status"),
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	resp := make([]reservationResponse, 0, len(reservations))
	for i := range reservations {
		resp = append(resp, toReservationResponse(&reservations[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}
