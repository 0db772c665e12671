package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	bookingserrors "piqueunique/internal/bookings/errors"
	"piqueunique/internal/bookings/service"
	"piqueunique/internal/bookings/validator"
	"piqueunique/pkg/config"
	mongotx "piqueunique/pkg/db/mongo"
	"piqueunique/pkg/logger"
	"piqueunique/pkg/model"
)

// stub repositories; each test overrides the functions it cares about.

type stubBookingRepo struct {
	findByIDFn    func(ctx context.Context, id string) (*model.Booking, error)
	bookedTimesFn func(ctx context.Context, location string, dayStart, dayEnd time.Time) ([]string, error)
	bookedDatesFn func(ctx context.Context, location string, from, to time.Time) ([]time.Time, error)
}

func (s *stubBookingRepo) Create(ctx context.Context, booking *model.Booking) error { return nil }

func (s *stubBookingRepo) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	if s.findByIDFn != nil {
		return s.findByIDFn(ctx, id)
	}
	return nil, bookingserrors.ErrNotFound
}

func (s *stubBookingRepo) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, error) {
	return nil, nil
}

func (s *stubBookingRepo) Count(ctx context.Context) (int64, error) { return 0, nil }

func (s *stubBookingRepo) UpdateFields(ctx context.Context, id string, fields bson.M) error {
	return nil
}

func (s *stubBookingRepo) Delete(ctx context.Context, id string) error { return nil }

func (s *stubBookingRepo) BookedTimes(ctx context.Context, location string, dayStart, dayEnd time.Time) ([]string, error) {
	if s.bookedTimesFn != nil {
		return s.bookedTimesFn(ctx, location, dayStart, dayEnd)
	}
	return nil, nil
}

func (s *stubBookingRepo) BookedDates(ctx context.Context, location string, from, to time.Time) ([]time.Time, error) {
	if s.bookedDatesFn != nil {
		return s.bookedDatesFn(ctx, location, from, to)
	}
	return nil, nil
}

func (s *stubBookingRepo) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

type stubDraftRepo struct{}

func (s *stubDraftRepo) Upsert(ctx context.Context, draft *model.Draft) (string, error) {
	return "draft-1", nil
}

func (s *stubDraftRepo) FindByUserID(ctx context.Context, userID string) (*model.Draft, error) {
	return nil, bookingserrors.ErrDraftNotFound
}

func (s *stubDraftRepo) SetPrice(ctx context.Context, userID string, basePrice, additionalPrice, totalPrice int) error {
	return nil
}

func (s *stubDraftRepo) DeleteByUserID(ctx context.Context, userID string) error { return nil }

type stubSlotLockRepo struct{}

func (s *stubSlotLockRepo) Create(ctx context.Context, lock *model.SlotLock) (*model.SlotLock, error) {
	return lock, nil
}

func (s *stubSlotLockRepo) Delete(ctx context.Context, lockID string) error { return nil }

type stubAuditRepo struct{}

func (s *stubAuditRepo) Append(ctx context.Context, entry *model.AuditLogEntry) error { return nil }

func (s *stubAuditRepo) Find(ctx context.Context, bookingID string, limit int) ([]*model.AuditLogEntry, error) {
	return nil, nil
}

func newTestHandler(bookings *stubBookingRepo) *BookingHandler {
	log := logger.New(logger.Config{Level: "error", Format: logger.JSON, Service: "test"})
	cfg := &config.Config{
		SlotLockTTL:   5 * time.Second,
		NotifyTimeout: time.Second,
		Log:           log,
	}

	auditService := service.NewAuditService(&stubAuditRepo{}, log)
	bookingService := service.NewBookingService(
		cfg,
		bookings,
		&stubDraftRepo{},
		&stubSlotLockRepo{},
		validator.NewBookingValidator(log),
		auditService,
		nil,
		log,
	)
	availabilityService := service.NewAvailabilityService(bookings, log)

	return NewBookingHandler(bookingService, availabilityService, auditService, log)
}

func newTestRouter(h *BookingHandler) *httprouter.Router {
	router := httprouter.New()
	h.RegisterRoutes(router)
	return router
}

func TestAvailability_DayQuery(t *testing.T) {
	repo := &stubBookingRepo{
		bookedTimesFn: func(ctx context.Context, location string, dayStart, dayEnd time.Time) ([]string, error) {
			return []string{"14:00"}, nil
		},
	}
	router := newTestRouter(newTestHandler(repo))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/availability?location=nida&date=2026-07-14", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data availabilityResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"14:00"}, resp.Data.BookedTimes)
	assert.Equal(t, "nida", resp.Data.Location)
}

func TestAvailability_RangeQuery(t *testing.T) {
	repo := &stubBookingRepo{
		bookedDatesFn: func(ctx context.Context, location string, from, to time.Time) ([]time.Time, error) {
			return []time.Time{time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC)}, nil
		},
	}
	router := newTestRouter(newTestHandler(repo))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/availability?location=nida&from=2026-07-01&to=2026-07-31", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data availabilityResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"2026-07-14"}, resp.Data.BookedDates)
}

func TestAvailability_MissingParameters(t *testing.T) {
	router := newTestRouter(newTestHandler(&stubBookingRepo{}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/availability?location=nida", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAvailability_UnknownLocation(t *testing.T) {
	router := newTestRouter(newTestHandler(&stubBookingRepo{}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/availability?location=vilnius&date=2026-07-14", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestFinalize_AnonymousRejected(t *testing.T) {
	router := newTestRouter(newTestHandler(&stubBookingRepo{}))

	body := `{"location":"nida","time":"14:00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestFinalize_MalformedBody(t *testing.T) {
	router := newTestRouter(newTestHandler(&stubBookingRepo{}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestErrorBody_IsLithuanianWithCode(t *testing.T) {
	router := newTestRouter(newTestHandler(&stubBookingRepo{}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/availability?location=nida&date=bad", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Code  string `json:"code"`
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_INPUT", resp.Code)
	assert.NotEmpty(t, resp.Error)
	assert.NotContains(t, resp.Error, "date must be formatted", "internal message must not leak")
}
