package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/srgjo27/condo_reservations/internal/core/domain"
)

// NewRouter mounts the public health check and the authenticated /api/v1 tree.
func NewRouter(auth *Authenticator, areas *AreaHandler, reservations *ReservationHandler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", Health).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(auth.Middleware)

	api.HandleFunc("/areas", areas.ListAreas).Methods(http.MethodGet)
	api.HandleFunc("/areas/{id}", areas.GetArea).Methods(http.MethodGet)
	api.HandleFunc("/areas/{id}/availability", areas.Availability).Methods(http.MethodGet)

	admin := RequireRole(domain.RoleAdmin)
	api.Handle("/areas", admin(http.HandlerFunc(areas.CreateArea))).Methods(http.MethodPost)
	api.Handle("/areas/{id}", admin(http.HandlerFunc(areas.UpdateArea))).Methods(http.MethodPut)
	api.Handle("/areas/{id}", admin(http.HandlerFunc(areas.PatchArea))).Methods(http.MethodPatch)
	api.Handle("/areas/{id}", admin(http.HandlerFunc(areas.DeactivateArea))).Methods(http.MethodDelete)

	booker := RequireRole(domain.RoleOwner, domain.RoleAdmin)
	api.HandleFunc("/reservations", reservations.ListReservations).Methods(http.MethodGet)
	api.HandleFunc("/reservations/{id}", reservations.GetReservation).Methods(http.MethodGet)
	api.Handle("/reservations", booker(http.HandlerFunc(reservations.CreateReservation))).Methods(http.MethodPost)
	api.Handle("/reservations/{id}/cancel", booker(http.HandlerFunc(reservations.CancelReservation))).Methods(http.MethodPost)

	return r
}
