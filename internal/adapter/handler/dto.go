package handler

import (
	"time"

	"github.com/srgjo27/condo_reservations/internal/core/domain"
)

type areaResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Capacity        int     `json:"capacity"`
	RequiresPayment bool    `json:"requires_payment"`
	PricePerBlock   float64 `json:"price_per_block"`
	OpensAt         string  `json:"opens_at"`
	ClosesAt        string  `json:"closes_at"`
	BlockMinutes    int     `json:"block_minutes"`
	MinLeadHours    int     `json:"min_lead_hours"`
	MaxDaysAhead    int     `json:"max_days_ahead"`
	Weekdays        []int   `json:"weekdays"`
	State           string  `json:"state"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

func toAreaResponse(a *domain.Area) areaResponse {
	weekdays := []int(a.Weekdays)
	if weekdays == nil {
		weekdays = []int{}
	}
	return areaResponse{
		ID:              a.ID.String(),
		Name:            a.Name,
		Capacity:        a.Capacity,
		RequiresPayment: a.RequiresPayment,
		PricePerBlock:   a.PricePerBlock,
		OpensAt:         a.OpensAt.String(),
		ClosesAt:        a.ClosesAt.String(),
		BlockMinutes:    a.BlockMinutes,
		MinLeadHours:    a.MinLeadHours,
		MaxDaysAhead:    a.MaxDaysAhead,
		Weekdays:        weekdays,
		State:           string(a.State),
		CreatedAt:       a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       a.UpdatedAt.Format(time.RFC3339),
	}
}

type reservationResponse struct {
	ID                 string  `json:"id"`
	AreaID             string  `json:"area_id"`
	ResidentID         string  `json:"resident_id"`
	Date               string  `json:"date"`
	StartTime          string  `json:"start_time"`
	EndTime            string  `json:"end_time"`
	StartsAt           string  `json:"starts_at"`
	EndsAt             string  `json:"ends_at"`
	Status             string  `json:"status"`
	PaymentProofURL    string  `json:"payment_proof_url,omitempty"`
	Note               string  `json:"note,omitempty"`
	CreatedAt          string  `json:"created_at"`
	CancelledAt        *string `json:"cancelled_at,omitempty"`
	CancellationReason string  `json:"cancellation_reason,omitempty"`
}

func toReservationResponse(r *domain.Reservation) reservationResponse {
	resp := reservationResponse{
		ID:                 r.ID.String(),
		AreaID:             r.AreaID.String(),
		ResidentID:         r.ResidentID.String(),
		Date:               r.Date.Format(domain.DateLayout),
		StartTime:          r.StartTime.String(),
		EndTime:            r.EndTime.String(),
		StartsAt:           r.StartsAt.Format(time.RFC3339),
		EndsAt:             r.EndsAt.Format(time.RFC3339),
		Status:             string(r.Status),
		PaymentProofURL:    r.PaymentProofURL,
		Note:               r.Note,
		CreatedAt:          r.CreatedAt.Format(time.RFC3339),
		CancellationReason: r.CancellationReason,
	}
	if r.CancelledAt != nil {
		at := r.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &at
	}
	return resp
}
