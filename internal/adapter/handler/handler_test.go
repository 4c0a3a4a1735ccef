package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/srgjo27/condo_reservations/internal/adapter/handler"
	"github.com/srgjo27/condo_reservations/internal/core/domain"
	"github.com/srgjo27/condo_reservations/internal/core/ports/mocks"
	"github.com/srgjo27/condo_reservations/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

var (
	laPaz    = time.FixedZone("BOT", -4*60*60)
	fixedNow = time.Date(2025, time.March, 10, 10, 0, 0, 0, laPaz)
)

type testServer struct {
	router          http.Handler
	areaRepo        *mocks.AreaRepository
	reservationRepo *mocks.ReservationRepository
}

func newTestServer(t *testing.T) testServer {
	areaRepo := mocks.NewAreaRepository(t)
	reservationRepo := mocks.NewReservationRepository(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	opts := []services.Option{
		services.WithLocation(laPaz),
		services.WithClock(func() time.Time { return fixedNow }),
		services.WithLogger(logger),
	}
	areaService := services.NewAreaService(areaRepo, nil, opts...)
	reservationService := services.NewReservationService(areaRepo, reservationRepo, nil, nil, opts...)

	router := handler.NewRouter(
		handler.NewAuthenticator(secret),
		handler.NewAreaHandler(areaService, reservationService, logger),
		handler.NewReservationHandler(reservationService, logger),
	)
	return testServer{router: router, areaRepo: areaRepo, reservationRepo: reservationRepo}
}

func token(t *testing.T, actor domain.Actor) string {
	t.Helper()
	claims := handler.Claims{
		Role: string(actor.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func (s testServer) do(t *testing.T, actor *domain.Actor, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if actor != nil {
		req.Header.Set("Authorization", "Bearer "+token(t, *actor))
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func testArea() *domain.Area {
	return &domain.Area{
		ID:           uuid.New(),
		Name:         "Quincho",
		Capacity:     30,
		OpensAt:      domain.NewClockTime(8, 0),
		ClosesAt:     domain.NewClockTime(22, 0),
		BlockMinutes: 60,
		MinLeadHours: 24,
		MaxDaysAhead: 30,
		Weekdays:     domain.Weekdays{0, 1, 2, 3, 4, 5},
		State:        domain.AreaActive,
	}
}

func actor(role domain.Role) *domain.Actor {
	return &domain.Actor{ID: uuid.New(), Role: role}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, nil, http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestAuth_RejectsMissingAndInvalidTokens(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, nil, http.MethodGet, "/api/v1/areas", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/areas", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec = httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	bad := handler.Claims{Role: "Superuser", RegisteredClaims: jwt.RegisteredClaims{
		Subject:   uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, bad).SignedString([]byte(secret))
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/api/v1/areas", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec = httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_RejectsTokenWithoutExpiry(t *testing.T) {
	s := newTestServer(t)

	claims := handler.Claims{
		Role:             string(domain.RoleAdmin),
		RegisteredClaims: jwt.RegisteredClaims{Subject: uuid.NewString()},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/areas", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAreas_AdminOnlyWrites(t *testing.T) {
	s := newTestServer(t)
	body := `{"name":"Piscina","capacity":20,"opens_at":"09:00","closes_at":"18:00"}`

	for _, role := range []domain.Role{domain.RoleOwner, domain.RoleGuard, domain.RoleStaff} {
		rec := s.do(t, actor(role), http.MethodPost, "/api/v1/areas", body)
		assert.Equal(t, http.StatusForbidden, rec.Code, role)
	}

	s.areaRepo.On("CreateArea", mock.Anything, mock.AnythingOfType("*domain.Area")).Return(nil)
	rec := s.do(t, actor(domain.RoleAdmin), http.MethodPost, "/api/v1/areas", body)

	require.Equal(t, http.StatusCreated, rec.Code)
	var created map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Piscina", created["name"])
	assert.Equal(t, "09:00", created["opens_at"])
	assert.Equal(t, "active", created["state"])
}

func TestAreas_CreateValidationError(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, actor(domain.RoleAdmin), http.MethodPost, "/api/v1/areas", `{"name":"","capacity":1,"opens_at":"09:00","closes_at":"18:00"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation", decodeError(t, rec)["error"])

	rec = s.do(t, actor(domain.RoleAdmin), http.MethodPost, "/api/v1/areas", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAreas_PutKeepsOmittedPolicy(t *testing.T) {
	s := newTestServer(t)
	area := testArea()
	area.RequiresPayment = true
	area.PricePerBlock = 50
	area.MinLeadHours = 72
	area.Weekdays = domain.Weekdays{5, 6}

	s.areaRepo.On("GetAreaByID", mock.Anything, area.ID).Return(area, nil)
	s.areaRepo.On("UpdateArea", mock.Anything, mock.AnythingOfType("*domain.Area")).Return(nil)

	rec := s.do(t, actor(domain.RoleAdmin), http.MethodPut, "/api/v1/areas/"+area.ID.String(),
		`{"name":"Quincho grande","capacity":40,"opens_at":"09:00","closes_at":"21:00"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Quincho grande", got["name"])
	assert.Equal(t, true, got["requires_payment"])
	assert.Equal(t, float64(50), got["price_per_block"])
	assert.Equal(t, float64(72), got["min_lead_hours"])
	assert.Equal(t, []any{float64(5), float64(6)}, got["weekdays"])
}

func TestAreas_PutRequiresCoreFields(t *testing.T) {
	s := newTestServer(t)
	area := testArea()

	s.areaRepo.On("GetAreaByID", mock.Anything, area.ID).Return(area, nil)

	rec := s.do(t, actor(domain.RoleAdmin), http.MethodPut, "/api/v1/areas/"+area.ID.String(), `{"name":"Quincho"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation", decodeError(t, rec)["error"])
}

func TestAreas_PatchChangesOnlySentFields(t *testing.T) {
	s := newTestServer(t)
	area := testArea()

	s.areaRepo.On("GetAreaByID", mock.Anything, area.ID).Return(area, nil)
	s.areaRepo.On("UpdateArea", mock.Anything, mock.MatchedBy(func(a *domain.Area) bool {
		return a.Name == "Quincho" && a.Capacity == 30 && a.RequiresPayment && a.PricePerBlock == 25
	})).Return(nil)

	rec := s.do(t, actor(domain.RoleAdmin), http.MethodPatch, "/api/v1/areas/"+area.ID.String(),
		`{"requires_payment":true,"price_per_block":25}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, actor(domain.RoleOwner), http.MethodPatch, "/api/v1/areas/"+area.ID.String(), `{"capacity":1}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAreas_Deactivate(t *testing.T) {
	s := newTestServer(t)
	area := testArea()

	s.areaRepo.On("GetAreaByID", mock.Anything, area.ID).Return(area, nil)
	s.areaRepo.On("SetAreaState", mock.Anything, area.ID, domain.AreaInactive, fixedNow).Return(nil)

	rec := s.do(t, actor(domain.RoleAdmin), http.MethodDelete, "/api/v1/areas/"+area.ID.String(), "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"state":"inactive"`)
}

func TestAreas_GetNotFound(t *testing.T) {
	s := newTestServer(t)
	id := uuid.New()

	s.areaRepo.On("GetAreaByID", mock.Anything, id).Return(nil, domain.NewNotFoundError("area not found"))

	rec := s.do(t, actor(domain.RoleGuard), http.MethodGet, "/api/v1/areas/"+id.String(), "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decodeError(t, rec)["error"])

	rec = s.do(t, actor(domain.RoleGuard), http.MethodGet, "/api/v1/areas/nope", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAvailability(t *testing.T) {
	s := newTestServer(t)
	area := testArea()
	day := time.Date(2025, time.March, 12, 0, 0, 0, 0, laPaz)
	taken := domain.Reservation{
		ID:        uuid.New(),
		AreaID:    area.ID,
		Date:      day,
		StartTime: domain.NewClockTime(10, 0),
		EndTime:   domain.NewClockTime(12, 0),
		Status:    domain.ReservationConfirmed,
	}

	s.areaRepo.On("GetAreaByID", mock.Anything, area.ID).Return(area, nil)
	s.reservationRepo.On("ListActiveByAreaAndDate", mock.Anything, area.ID, day).Return([]domain.Reservation{taken}, nil)

	rec := s.do(t, actor(domain.RoleStaff), http.MethodGet, "/api/v1/areas/"+area.ID.String()+"/availability?date=2025-03-12", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"area_id": "`+area.ID.String()+`",
		"area": "Quincho",
		"date": "2025-03-12",
		"day_enabled": true,
		"free": [{"start":"08:00","end":"10:00"},{"start":"12:00","end":"22:00"}],
		"occupied": [{"start":"10:00","end":"12:00"}]
	}`, rec.Body.String())
}

func TestAvailability_InactiveArea(t *testing.T) {
	s := newTestServer(t)
	area := testArea()
	area.State = domain.AreaInactive

	s.areaRepo.On("GetAreaByID", mock.Anything, area.ID).Return(area, nil)

	rec := s.do(t, actor(domain.RoleOwner), http.MethodGet, "/api/v1/areas/"+area.ID.String()+"/availability?date=2025-03-12", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "inactive_area", decodeError(t, rec)["error"])
}

func TestCreateReservation(t *testing.T) {
	s := newTestServer(t)
	area := testArea()
	owner := actor(domain.RoleOwner)

	s.areaRepo.On("GetAreaByID", mock.Anything, area.ID).Return(area, nil)
	s.reservationRepo.On("ListActiveByAreaAndDate", mock.Anything, area.ID, mock.Anything).Return(nil, nil)
	s.reservationRepo.On("CreateReservation", mock.Anything, mock.AnythingOfType("*domain.Reservation")).Return(nil)

	body := `{"area_id":"` + area.ID.String() + `","date":"2025-03-12","start_time":"10:00","end_time":"12:00"}`
	rec := s.do(t, owner, http.MethodPost, "/api/v1/reservations", body)

	require.Equal(t, http.StatusCreated, rec.Code)
	var created map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, owner.ID.String(), created["resident_id"])
	assert.Equal(t, "pending", created["status"])
	assert.Equal(t, "10:00", created["start_time"])
	assert.Equal(t, "2025-03-12T10:00:00-04:00", created["starts_at"])
}

func TestCreateReservation_Conflict(t *testing.T) {
	s := newTestServer(t)
	area := testArea()

	s.areaRepo.On("GetAreaByID", mock.Anything, area.ID).Return(area, nil)
	s.reservationRepo.On("ListActiveByAreaAndDate", mock.Anything, area.ID, mock.Anything).Return(nil, nil)
	s.reservationRepo.On("CreateReservation", mock.Anything, mock.Anything).
		Return(domain.NewConflictError("the time slot was just taken, check availability and try another range", nil))

	body := `{"area_id":"` + area.ID.String() + `","date":"2025-03-12","start_time":"10:00","end_time":"12:00"}`
	rec := s.do(t, actor(domain.RoleAdmin), http.MethodPost, "/api/v1/reservations", body)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "conflict", decodeError(t, rec)["error"])
}

func TestCreateReservation_ValidationReason(t *testing.T) {
	s := newTestServer(t)
	area := testArea()

	s.areaRepo.On("GetAreaByID", mock.Anything, area.ID).Return(area, nil)
	s.reservationRepo.On("ListActiveByAreaAndDate", mock.Anything, area.ID, mock.Anything).Return(nil, nil)

	body := `{"area_id":"` + area.ID.String() + `","date":"2025-03-11","start_time":"09:00","end_time":"10:00"}`
	rec := s.do(t, actor(domain.RoleOwner), http.MethodPost, "/api/v1/reservations", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "validation", resp["error"])
	assert.Equal(t, domain.ReasonInsufficientLeadTime, resp["reason"])
}

func TestCreateReservation_RoleGate(t *testing.T) {
	s := newTestServer(t)

	for _, role := range []domain.Role{domain.RoleGuard, domain.RoleStaff} {
		rec := s.do(t, actor(role), http.MethodPost, "/api/v1/reservations", `{}`)
		assert.Equal(t, http.StatusForbidden, rec.Code, role)
	}
}

func TestCancelReservation(t *testing.T) {
	s := newTestServer(t)
	area := testArea()
	owner := actor(domain.RoleOwner)
	r := &domain.Reservation{
		ID:         uuid.New(),
		AreaID:     area.ID,
		ResidentID: owner.ID,
		Date:       time.Date(2025, time.March, 12, 0, 0, 0, 0, laPaz),
		StartTime:  domain.NewClockTime(10, 0),
		EndTime:    domain.NewClockTime(12, 0),
		Status:     domain.ReservationConfirmed,
	}

	s.reservationRepo.On("GetReservationByID", mock.Anything, r.ID).Return(r, nil)
	s.reservationRepo.On("CancelReservation", mock.Anything, r.ID, fixedNow, "no podemos").Return(nil)

	rec := s.do(t, owner, http.MethodPost, "/api/v1/reservations/"+r.ID.String()+"/cancel", `{"reason":"no podemos"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "cancelled", body["status"])
	assert.Equal(t, "no podemos", body["cancellation_reason"])
	assert.NotEmpty(t, body["cancelled_at"])
}

func TestCancelReservation_Errors(t *testing.T) {
	s := newTestServer(t)
	cancelled := &domain.Reservation{ID: uuid.New(), ResidentID: uuid.New(), Status: domain.ReservationCancelled}
	foreign := &domain.Reservation{ID: uuid.New(), ResidentID: uuid.New(), Status: domain.ReservationPending}

	s.reservationRepo.On("GetReservationByID", mock.Anything, cancelled.ID).Return(cancelled, nil)
	s.reservationRepo.On("GetReservationByID", mock.Anything, foreign.ID).Return(foreign, nil)

	rec := s.do(t, actor(domain.RoleAdmin), http.MethodPost, "/api/v1/reservations/"+cancelled.ID.String()+"/cancel", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "already_cancelled", decodeError(t, rec)["error"])

	rec = s.do(t, actor(domain.RoleOwner), http.MethodPost, "/api/v1/reservations/"+foreign.ID.String()+"/cancel", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "forbidden", decodeError(t, rec)["error"])
}

func TestListReservations_InternalErrorIsHidden(t *testing.T) {
	s := newTestServer(t)

	s.reservationRepo.On("ListReservations", mock.Anything, mock.Anything).Return(nil, errors.New("pq: connection reset"))

	rec := s.do(t, actor(domain.RoleGuard), http.MethodGet, "/api/v1/reservations", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "pq:")
}

func TestListReservations_Empty(t *testing.T) {
	s := newTestServer(t)

	s.reservationRepo.On("ListReservations", mock.Anything, mock.Anything).Return(nil, nil)

	rec := s.do(t, actor(domain.RoleOwner), http.MethodGet, "/api/v1/reservations?status=pending", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestActorFromContext(t *testing.T) {
	a := domain.Actor{ID: uuid.New(), Role: domain.RoleStaff}

	got, ok := handler.ActorFromContext(handler.WithActor(context.Background(), a))
	assert.True(t, ok)
	assert.Equal(t, a, got)

	_, ok = handler.ActorFromContext(context.Background())
	assert.False(t, ok)
}
