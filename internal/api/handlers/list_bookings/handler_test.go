package list_bookings

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-TableBookingService/internal/service/bookings/models"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type mockService struct {
	listFunc func(ctx context.Context) (*models.BookingListResponse, error)
}

func (m *mockService) List(ctx context.Context) (*models.BookingListResponse, error) {
	return m.listFunc(ctx)
}

func TestHandle_ReturnsArray(t *testing.T) {
	svc := &mockService{
		listFunc: func(ctx context.Context) (*models.BookingListResponse, error) {
			return &models.BookingListResponse{Bookings: []*models.BookingResponse{
				{ID: "1", Date: "2024-01-01", Time: "10:00", Guests: 2, Name: "A", Contact: "x"},
			}}, nil
		},
	}

	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/bookings", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`[{"id":"1","date":"2024-01-01","time":"10:00","guests":2,"name":"A","contact":"x"}]`,
		rec.Body.String(),
	)
}

func TestHandle_EmptyStoreIsEmptyArray(t *testing.T) {
	svc := &mockService{
		listFunc: func(ctx context.Context) (*models.BookingListResponse, error) {
			return &models.BookingListResponse{Bookings: []*models.BookingResponse{}}, nil
		},
	}

	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/bookings", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHandle_ServiceError(t *testing.T) {
	svc := &mockService{
		listFunc: func(ctx context.Context) (*models.BookingListResponse, error) {
			return nil, errors.New("boom")
		},
	}

	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/bookings", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
