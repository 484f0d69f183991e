package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/restobook/restaurant-backend/config"
	"github.com/restobook/restaurant-backend/internal/entity"
	"github.com/restobook/restaurant-backend/internal/service"
	"github.com/restobook/restaurant-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBookingService позволяет управлять ответами сервиса из теста
type fakeBookingService struct {
	lastFilter *entity.BookingFilter

	createFn func(req *service.CreateBookingRequest) (*entity.Booking, error)
	updateFn func(id int64, status string) (*entity.Booking, error)
	deleteFn func(id int64) error
	listFn   func(filter *entity.BookingFilter) ([]*entity.Booking, error)
}

func (f *fakeBookingService) CreateBooking(_ context.Context, req *service.CreateBookingRequest) (*entity.Booking, error) {
	return f.createFn(req)
}

func (f *fakeBookingService) GetBookings(_ context.Context, filter *entity.BookingFilter) ([]*entity.Booking, error) {
	f.lastFilter = filter
	if f.listFn != nil {
		return f.listFn(filter)
	}
	return []*entity.Booking{}, nil
}

func (f *fakeBookingService) UpdateBookingStatus(_ context.Context, id int64, status string) (*entity.Booking, error) {
	return f.updateFn(id, status)
}

func (f *fakeBookingService) DeleteBooking(_ context.Context, id int64) error {
	return f.deleteFn(id)
}

func setupBookingRouter(t *testing.T, svc service.BookingService) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Server.Timeout = 30 * time.Second
	cfg.CORS.AllowedOrigins = []string{"http://localhost:3000"}

	tm := auth.NewTokenManager("test-secret", time.Hour)
	token, err := tm.CreateAccessToken("1", "staff@example.com", "staff")
	require.NoError(t, err)

	h := NewBookingHandler(svc)
	r := InitRoutes(cfg, h, NewProductHandler(nil), NewAuthHandler(nil), tm, nil)
	return r, token
}

func TestGetBookings_RequiresAuth(t *testing.T) {
	svc := &fakeBookingService{}
	r, _ := setupBookingRouter(t, svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Nil(t, svc.lastFilter)
}

func TestGetBookings_ParsesFilter(t *testing.T) {
	svc := &fakeBookingService{}
	r, token := setupBookingRouter(t, svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/bookings?status=approved&from=2024-01-01&to=2024-12-31", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.lastFilter)
	assert.Equal(t, "approved", svc.lastFilter.Status)
	require.NotNil(t, svc.lastFilter.From)
	require.NotNil(t, svc.lastFilter.To)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *svc.lastFilter.From)
	assert.Equal(t, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), *svc.lastFilter.To)
}

func TestGetBookings_MalformedDateRejected(t *testing.T) {
	svc := &fakeBookingService{}
	r, token := setupBookingRouter(t, svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/bookings?from=yesterday", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	// Сервис не должен вызываться при нечитаемой дате
	assert.Nil(t, svc.lastFilter)
}

func TestCreateBooking_PublicEndpoint(t *testing.T) {
	svc := &fakeBookingService{
		createFn: func(req *service.CreateBookingRequest) (*entity.Booking, error) {
			return &entity.Booking{
				ID:             1,
				CustomerName:   req.CustomerName,
				NumberOfPeople: req.NumberOfPeople,
				Phone:          req.Phone,
				Status:         entity.BookingStatusPending,
			}, nil
		},
	}
	r, _ := setupBookingRouter(t, svc)

	body, _ := json.Marshal(service.CreateBookingRequest{
		CustomerName:   "Ali",
		Date:           "2024-05-01",
		NumberOfPeople: 4,
		Phone:          "0123456789",
	})

	// Без токена: создание намеренно публичное
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp entity.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, entity.BookingStatusPending, resp.Status)
}

func TestCreateBooking_ValidationErrorsSurfaced(t *testing.T) {
	svc := &fakeBookingService{
		createFn: func(req *service.CreateBookingRequest) (*entity.Booking, error) {
			return nil, entity.NewValidationError(map[string]string{
				"phone": "Invalid phone number format",
			})
		},
	}
	r, _ := setupBookingRouter(t, svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewReader([]byte(`{"customerName":"Ali"}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Message string            `json:"message"`
		Errors  map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Validation error", resp.Message)
	assert.Equal(t, "Invalid phone number format", resp.Errors["phone"])
}

func TestUpdateStatus_InvalidStatusListsAllowedValues(t *testing.T) {
	svc := &fakeBookingService{
		updateFn: func(id int64, status string) (*entity.Booking, error) {
			return nil, entity.ErrInvalidBookingStatus
		},
	}
	r, token := setupBookingRouter(t, svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/bookings/1/status", bytes.NewReader([]byte(`{"status":"archived"}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "pending, approved, rejected")
	assert.Contains(t, w.Body.String(), "archived")
}

func TestUpdateStatus_NotFound(t *testing.T) {
	svc := &fakeBookingService{
		updateFn: func(id int64, status string) (*entity.Booking, error) {
			return nil, entity.ErrBookingNotFound
		},
	}
	r, token := setupBookingRouter(t, svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/bookings/404/status", bytes.NewReader([]byte(`{"status":"approved"}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateStatus_Success(t *testing.T) {
	svc := &fakeBookingService{
		updateFn: func(id int64, status string) (*entity.Booking, error) {
			return &entity.Booking{ID: id, Status: entity.BookingStatus(status)}, nil
		},
	}
	r, token := setupBookingRouter(t, svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/bookings/7/status", bytes.NewReader([]byte(`{"status":"approved"}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp entity.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, entity.BookingStatusApproved, resp.Status)
}

func TestDeleteBooking_Flow(t *testing.T) {
	deleted := false
	svc := &fakeBookingService{
		deleteFn: func(id int64) error {
			if deleted {
				return entity.ErrBookingNotFound
			}
			deleted = true
			return nil
		},
	}
	r, token := setupBookingRouter(t, svc)

	do := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/bookings/1", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		return w
	}

	first := do()
	require.Equal(t, http.StatusOK, first.Code)
	assert.Contains(t, first.Body.String(), "Booking deleted successfully")

	second := do()
	assert.Equal(t, http.StatusNotFound, second.Code)
}
