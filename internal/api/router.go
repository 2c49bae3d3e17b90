package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TableBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-TableBookingService/pkg/metrics"
)

// Handler общий вид http-хендлеров сервиса
type Handler interface {
	Handle(w http.ResponseWriter, r *http.Request)
}

// Handlers набор хендлеров, которые монтирует роутер
type Handlers struct {
	Health            Handler
	CreateBooking     Handler
	ListBookings      Handler
	GetBooking        Handler
	DeleteBooking     Handler
	GetAvailableSlots Handler
	GetSlotSchedule   Handler
}

// Options настройки роутера. Metrics может быть nil, тогда метрики не собираются.
type Options struct {
	Metrics     *metrics.Metrics
	MetricsPath string
	CORSOrigins []string
	Logger      middleware.Logger
}

// NewRouter собирает маршруты API и оборачивает их в middleware
func NewRouter(h Handlers, opts Options) http.Handler {
	r := mux.NewRouter()

	var mws []mux.MiddlewareFunc
	if opts.Metrics != nil {
		mws = append(mws, middleware.MetricsMiddleware(opts.Metrics))
		r.Handle(opts.MetricsPath, opts.Metrics.Handler()).Methods(http.MethodGet)
	}
	if opts.Logger != nil {
		mws = append(mws, middleware.Logging(opts.Logger))
	}
	r.Use(mws...)

	// mux не вызывает Use-middleware для 404/405, поэтому оборачиваем их явно
	r.NotFoundHandler = chain(http.NotFoundHandler(), mws)
	r.MethodNotAllowedHandler = chain(http.HandlerFunc(methodNotAllowed), mws)

	// Liveness
	r.HandleFunc("/", h.Health.Handle).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	// --- Бронирования ---
	api.HandleFunc("/bookings", h.CreateBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings", h.ListBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}", h.GetBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}", h.DeleteBooking.Handle).Methods(http.MethodDelete)

	// --- Слоты ---
	api.HandleFunc("/available-slots", h.GetAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/slots", h.GetSlotSchedule.Handle).Methods(http.MethodGet)

	return middleware.CORS(opts.CORSOrigins, r)
}

func chain(h http.Handler, mws []mux.MiddlewareFunc) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusMethodNotAllowed)
}
