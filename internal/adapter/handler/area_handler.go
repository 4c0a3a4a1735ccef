package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/srgjo27/condo_reservations/internal/core/domain"
	"github.com/srgjo27/condo_reservations/internal/core/ports"
	"github.com/srgjo27/condo_reservations/internal/core/services"
)

type AreaHandler struct {
	areas        *services.AreaService
	reservations *services.ReservationService
	logger       *slog.Logger
}

func NewAreaHandler(areas *services.AreaService, reservations *services.ReservationService, logger *slog.Logger) *AreaHandler {
	return &AreaHandler{areas: areas, reservations: reservations, logger: logger}
}

func (h *AreaHandler) ListAreas(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := ports.AreaFilter{Search: q.Get("search")}
	if v := q.Get("include_inactive"); v != "" {
		include, err := strconv.ParseBool(v)
		if err != nil {
			badRequest(w, "include_inactive must be true or false")
			return
		}
		filter.IncludeInactive = include
	}

	areas, err := h.areas.ListAreas(r.Context(), filter)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	resp := make([]areaResponse, 0, len(areas))
	for i := range areas {
		resp = append(resp, toAreaResponse(&areas[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AreaHandler) GetArea(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	area, err := h.areas.GetArea(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toAreaResponse(area))
}

func (h *AreaHandler) CreateArea(w http.ResponseWriter, r *http.Request) {
	var input services.AreaInput
	if !decodeJSON(w, r, &input, false) {
		return
	}

	area, err := h.areas.CreateArea(r.Context(), input)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAreaResponse(area))
}

// UpdateArea backs PUT. Omitted policy fields keep their stored values.
func (h *AreaHandler) UpdateArea(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, h.areas.UpdateArea)
}

// PatchArea backs PATCH and changes only the fields sent.
func (h *AreaHandler) PatchArea(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, h.areas.PatchArea)
}

func (h *AreaHandler) update(w http.ResponseWriter, r *http.Request, apply func(context.Context, uuid.UUID, services.AreaInput) (*domain.Area, error)) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var input services.AreaInput
	if !decodeJSON(w, r, &input, false) {
		return
	}

	area, err := apply(r.Context(), id, input)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toAreaResponse(area))
}

// DeactivateArea backs DELETE; areas are never removed.
func (h *AreaHandler) DeactivateArea(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	area, err := h.areas.DeactivateArea(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toAreaResponse(area))
}

func (h *AreaHandler) Availability(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	availability, err := h.reservations.Availability(r.Context(), id, r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, availability)
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		badRequest(w, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}
