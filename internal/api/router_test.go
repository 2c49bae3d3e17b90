package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	createBookingHandler "github.com/m04kA/SMC-TableBookingService/internal/api/handlers/create_booking"
	deleteBookingHandler "github.com/m04kA/SMC-TableBookingService/internal/api/handlers/delete_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-TableBookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-TableBookingService/internal/api/handlers/get_booking"
	getSlotScheduleHandler "github.com/m04kA/SMC-TableBookingService/internal/api/handlers/get_slot_schedule"
	"github.com/m04kA/SMC-TableBookingService/internal/api/handlers/health"
	listBookingsHandler "github.com/m04kA/SMC-TableBookingService/internal/api/handlers/list_bookings"
	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TableBookingService/internal/infra/storage/booking"
	bookingsService "github.com/m04kA/SMC-TableBookingService/internal/service/bookings"
	createBookingUC "github.com/m04kA/SMC-TableBookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-TableBookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-TableBookingService/pkg/locktxmanager"
	"github.com/m04kA/SMC-TableBookingService/pkg/metrics"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newTestServer(t *testing.T, m *metrics.Metrics) *httptest.Server {
	t.Helper()

	log := nopLogger{}
	repo := bookingRepo.NewMemoryRepository()
	catalog := domain.DefaultSlotCatalog()
	txMgr := locktxmanager.NewTransactionManager()

	var (
		createMetrics  createBookingUC.BookingMetrics
		serviceMetrics bookingsService.BookingMetrics
	)
	if m != nil {
		createMetrics = m
		serviceMetrics = m
	}

	createUC := createBookingUC.NewUseCase(repo, catalog, txMgr, createMetrics, log)
	slotsUC := getAvailableSlotsUC.NewUseCase(repo, catalog, log)
	svc := bookingsService.NewService(repo, serviceMetrics, log)

	router := NewRouter(Handlers{
		Health:            health.NewHandler(),
		CreateBooking:     createBookingHandler.NewHandler(createUC, log),
		ListBookings:      listBookingsHandler.NewHandler(svc, log),
		GetBooking:        getBookingHandler.NewHandler(svc, log),
		DeleteBooking:     deleteBookingHandler.NewHandler(svc, log),
		GetAvailableSlots: getAvailableSlotsHandler.NewHandler(slotsUC, log),
		GetSlotSchedule:   getSlotScheduleHandler.NewHandler(catalog, log),
	}, Options{Metrics: m, MetricsPath: "/metrics", Logger: log})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, body string) (*http.Response, []byte) {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestRouter_Liveness(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, body := do(t, http.MethodGet, srv.URL+"/", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "App is running", string(body))
}

func TestRouter_BookingScenario(t *testing.T) {
	srv := newTestServer(t, nil)
	payload := `{"date":"2024-01-01","time":"10:00","guests":2,"name":"A","contact":"x"}`

	// Первое бронирование проходит и получает идентификатор
	resp, body := do(t, http.MethodPost, srv.URL+"/api/bookings", payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &created))
	assert.NotEmpty(t, created["id"])
	assert.Equal(t, "10:00", created["time"])

	// 10:00 исчез из свободных, остальные семь на месте
	resp, body = do(t, http.MethodGet, srv.URL+"/api/available-slots?date=2024-01-01", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var slots []string
	require.NoError(t, json.Unmarshal(body, &slots))
	assert.Equal(t, []string{"11:00", "12:00", "13:00", "14:00", "15:00", "16:00", "17:00"}, slots)

	// Повторная попытка на тот же слот - конфликт
	resp, body = do(t, http.MethodPost, srv.URL+"/api/bookings", payload)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `{"message":"This slot is already booked."}`, string(body))

	// В хранилище ровно одна запись
	resp, body = do(t, http.MethodGet, srv.URL+"/api/bookings", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list, 1)
	assert.Equal(t, created["id"], list[0]["id"])
}

func TestRouter_DeleteFlow(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, body := do(t, http.MethodPost, srv.URL+"/api/bookings",
		`{"date":"2024-01-01","time":"12:00","guests":"3","name":"B","contact":"y"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &created))
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)

	resp, body = do(t, http.MethodGet, srv.URL+"/api/bookings/"+id, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"guests":3`)

	resp, body = do(t, http.MethodDelete, srv.URL+"/api/bookings/"+id, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Booking deleted successfully."}`, string(body))

	resp, body = do(t, http.MethodDelete, srv.URL+"/api/bookings/"+id, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Booking not found."}`, string(body))

	resp, body = do(t, http.MethodGet, srv.URL+"/api/bookings", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(body))

	// Освободившийся слот снова доступен
	resp, body = do(t, http.MethodGet, srv.URL+"/api/available-slots?date=2024-01-01", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"12:00"`)
}

func TestRouter_ValidationErrors(t *testing.T) {
	srv := newTestServer(t, nil)

	tests := []struct {
		name    string
		payload string
		message string
	}{
		{"missing field", `{"date":"2024-01-01","time":"10:00","guests":2,"name":"A"}`, "All fields are required."},
		{"zero guests", `{"date":"2024-01-01","time":"10:00","guests":0,"name":"A","contact":"x"}`, "Guests must be a positive number."},
		{"negative guests", `{"date":"2024-01-01","time":"10:00","guests":-1,"name":"A","contact":"x"}`, "Guests must be a positive number."},
		{"non-numeric guests", `{"date":"2024-01-01","time":"10:00","guests":"many","name":"A","contact":"x"}`, "Guests must be a positive number."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := do(t, http.MethodPost, srv.URL+"/api/bookings", tt.payload)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.JSONEq(t, `{"message":"`+tt.message+`"}`, string(body))
		})
	}

	resp, body := do(t, http.MethodGet, srv.URL+"/api/available-slots", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Date is required."}`, string(body))
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, metrics.New("test"))

	do(t, http.MethodGet, srv.URL+"/", "")
	resp, body := do(t, http.MethodGet, srv.URL+"/metrics", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "http_requests_total")
}

func TestRouter_MetricsCountUnmatchedRequests(t *testing.T) {
	srv := newTestServer(t, metrics.New("test"))

	resp, _ := do(t, http.MethodGet, srv.URL+"/api/unknown", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, http.MethodPut, srv.URL+"/api/bookings", "")
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	_, body := do(t, http.MethodGet, srv.URL+"/metrics", "")
	assert.Contains(t, string(body), `http_requests_total{method="GET",path="unmatched",service="test",status="404"} 1`)
	assert.Contains(t, string(body), `http_requests_total{method="PUT",path="unmatched",service="test",status="405"} 1`)
}
