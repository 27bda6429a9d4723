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

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/kmlvnk/ST-BookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/kmlvnk/ST-BookingService/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/kmlvnk/ST-BookingService/internal/api/handlers/get_available_slots"
	getBookedSlotsHandler "github.com/kmlvnk/ST-BookingService/internal/api/handlers/get_booked_slots"
	getBookingHandler "github.com/kmlvnk/ST-BookingService/internal/api/handlers/get_booking"
	getBusinessSettingsHandler "github.com/kmlvnk/ST-BookingService/internal/api/handlers/get_business_settings"
	"github.com/kmlvnk/ST-BookingService/internal/api/middleware"
	"github.com/kmlvnk/ST-BookingService/internal/catalog"
	"github.com/kmlvnk/ST-BookingService/internal/config"
	"github.com/kmlvnk/ST-BookingService/internal/infra/notify"
	bookingRepo "github.com/kmlvnk/ST-BookingService/internal/infra/storage/booking"
	reservationRepo "github.com/kmlvnk/ST-BookingService/internal/infra/storage/reservation"
	bookingsService "github.com/kmlvnk/ST-BookingService/internal/service/bookings"
	createBookingUC "github.com/kmlvnk/ST-BookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/kmlvnk/ST-BookingService/internal/usecase/get_available_slots"
	"github.com/kmlvnk/ST-BookingService/pkg/dbmetrics"
	"github.com/kmlvnk/ST-BookingService/pkg/logger"
	"github.com/kmlvnk/ST-BookingService/pkg/metrics"
	"github.com/kmlvnk/ST-BookingService/pkg/simpletxmanager"
	"github.com/kmlvnk/ST-BookingService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting ST-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Собираем каталог слотов и услуг
	slotCatalog, err := catalog.New(cfg.Business)
	if err != nil {
		log.Fatal("Failed to build catalog: %v", err)
	}
	log.Info("Catalog loaded: %d slot labels, %d services, timezone=%s",
		len(slotCatalog.SlotLabels()), len(slotCatalog.Services()), slotCatalog.Location())

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Публикация событий бронирования (если включена)
	var publisher interface {
		Publish(ctx context.Context, event notify.Event) error
	}
	if cfg.Notifications.Enabled {
		amqpPublisher, err := notify.NewPublisher(
			cfg.Notifications.URL,
			cfg.Notifications.Exchange,
			cfg.Notifications.Queue,
		)
		if err != nil {
			log.Fatal("Failed to connect to message broker: %v", err)
		}
		defer amqpPublisher.Close()
		publisher = amqpPublisher
		log.Info("Notification publisher connected (queue=%s)", cfg.Notifications.Queue)
	} else {
		publisher = notify.NoopPublisher{}
		log.Info("Notifications disabled")
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository     *bookingRepo.Repository
		reservationRepository *reservationRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		reservationRepository = reservationRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		reservationRepository,
		publisher,
		txMgr,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		reservationRepository,
		slotCatalog,
		publisher,
		txMgr,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		reservationRepository,
		slotCatalog,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBookedSlots := getBookedSlotsHandler.NewHandler(reservationRepository, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getBusinessSettings := getBusinessSettingsHandler.NewHandler(slotCatalog, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Слоты ---
	// Свободные слоты на дату
	api.HandleFunc("/slots/available", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Все занятые слоты
	api.HandleFunc("/slots/booked", getBookedSlots.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	// Создание бронирования
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPut)

	// --- Настройки бизнеса ---
	api.HandleFunc("/settings/business", getBusinessSettings.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
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
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
