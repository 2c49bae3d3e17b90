package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-TableBookingService/internal/api"
	createBookingHandler "github.com/m04kA/SMC-TableBookingService/internal/api/handlers/create_booking"
	deleteBookingHandler "github.com/m04kA/SMC-TableBookingService/internal/api/handlers/delete_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-TableBookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-TableBookingService/internal/api/handlers/get_booking"
	getSlotScheduleHandler "github.com/m04kA/SMC-TableBookingService/internal/api/handlers/get_slot_schedule"
	"github.com/m04kA/SMC-TableBookingService/internal/api/handlers/health"
	listBookingsHandler "github.com/m04kA/SMC-TableBookingService/internal/api/handlers/list_bookings"
	"github.com/m04kA/SMC-TableBookingService/internal/config"
	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TableBookingService/internal/infra/storage/booking"
	bookingsService "github.com/m04kA/SMC-TableBookingService/internal/service/bookings"
	createBookingUC "github.com/m04kA/SMC-TableBookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-TableBookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-TableBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TableBookingService/pkg/locktxmanager"
	"github.com/m04kA/SMC-TableBookingService/pkg/logger"
	"github.com/m04kA/SMC-TableBookingService/pkg/metrics"
	"github.com/m04kA/SMC-TableBookingService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-TableBookingService/pkg/txmanager"
)

// bookingStore общий контракт memory и postgres хранилищ
type bookingStore interface {
	createBookingUC.BookingRepository
	bookingsService.BookingRepository
}

type txManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

func main() {
	// Загружаем конфигурацию
	configPath, err := config.Path()
	if err != nil {
		fmt.Printf("Failed to resolve config path: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-TableBookingService...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Каталог слотов фиксируется на всё время жизни процесса
	schedule, err := cfg.Slots.Schedule()
	if err != nil {
		log.Fatal("Invalid slot schedule: %v", err)
	}
	catalog, err := domain.NewSlotCatalog(schedule)
	if err != nil {
		log.Fatal("Failed to build slot catalog: %v", err)
	}
	log.Info("Slot catalog: %v", catalog.Slots())

	// Инициализируем хранилище
	var (
		store bookingStore
		txMgr txManager
	)

	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		db, err := openDatabase(cfg.Database)
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		if cfg.Metrics.Enabled {
			wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
			log.Info("Database metrics collection started")

			store = bookingRepo.NewRepository(wrappedDB)
			txMgr = txmanager.NewTransactionManager(wrappedDB)
		} else {
			store = bookingRepo.NewRepository(db)
			txMgr = simpletxmanager.NewTransactionManager(db)
		}

	default:
		store = bookingRepo.NewMemoryRepository()
		txMgr = locktxmanager.NewTransactionManager()
		log.Info("Using in-memory booking storage, bookings are lost on restart")
	}

	// Бизнес-метрики передаются только если включены: nil интерфейс заменяется на noop
	var (
		createMetrics  createBookingUC.BookingMetrics
		serviceMetrics bookingsService.BookingMetrics
	)
	if metricsCollector != nil {
		createMetrics = metricsCollector
		serviceMetrics = metricsCollector
	}

	// Инициализируем use cases и сервисы
	createBookingUseCase := createBookingUC.NewUseCase(store, catalog, txMgr, createMetrics, log)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(store, catalog, log)
	bookingSvc := bookingsService.NewService(store, serviceMetrics, log)

	// Настраиваем роутер
	router := api.NewRouter(api.Handlers{
		Health:            health.NewHandler(),
		CreateBooking:     createBookingHandler.NewHandler(createBookingUseCase, log),
		ListBookings:      listBookingsHandler.NewHandler(bookingSvc, log),
		GetBooking:        getBookingHandler.NewHandler(bookingSvc, log),
		DeleteBooking:     deleteBookingHandler.NewHandler(bookingSvc, log),
		GetAvailableSlots: getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log),
		GetSlotSchedule:   getSlotScheduleHandler.NewHandler(catalog, log),
	}, api.Options{
		Metrics:     metricsCollector,
		MetricsPath: cfg.Metrics.Path,
		CORSOrigins: cfg.CORS.AllowedOrigins,
		Logger:      log,
	})

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}

func openDatabase(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, err
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
