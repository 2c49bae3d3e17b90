package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_HandlerExposesBusinessCounters(t *testing.T) {
	m := New("table-booking-test")

	m.IncBookingsCreated()
	m.IncBookingsCreated()
	m.IncSlotConflicts()
	m.IncBookingsDeleted()
	m.ObserveDBQuery("select", time.Now(), errors.New("boom"))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `bookings_created_total{service="table-booking-test"} 2`)
	assert.Contains(t, body, `booking_slot_conflicts_total{service="table-booking-test"} 1`)
	assert.Contains(t, body, `bookings_deleted_total{service="table-booking-test"} 1`)
	assert.Contains(t, body, `db_query_errors_total{operation="select",service="table-booking-test"} 1`)
	assert.Contains(t, body, "go_goroutines")
}

func TestMetrics_SeparateRegistries(t *testing.T) {
	// Повторное создание не должно паниковать на duplicate registration
	assert.NotPanics(t, func() {
		New("a")
		New("a")
	})
}
