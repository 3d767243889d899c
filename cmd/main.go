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

	cancelReservationHandler "github.com/quickcourt/QC-BookingService/internal/api/handlers/cancel_reservation"
	createCourtHandler "github.com/quickcourt/QC-BookingService/internal/api/handlers/create_court"
	createReservationHandler "github.com/quickcourt/QC-BookingService/internal/api/handlers/create_reservation"
	getAvailableSlotsHandler "github.com/quickcourt/QC-BookingService/internal/api/handlers/get_available_slots"
	getFacilityReservationsHandler "github.com/quickcourt/QC-BookingService/internal/api/handlers/get_facility_reservations"
	getReservationHandler "github.com/quickcourt/QC-BookingService/internal/api/handlers/get_reservation"
	getUserReservationsHandler "github.com/quickcourt/QC-BookingService/internal/api/handlers/get_user_reservations"
	listCourtsHandler "github.com/quickcourt/QC-BookingService/internal/api/handlers/list_courts"
	updateCourtHandler "github.com/quickcourt/QC-BookingService/internal/api/handlers/update_court"
	updateReservationStatusHandler "github.com/quickcourt/QC-BookingService/internal/api/handlers/update_reservation_status"
	"github.com/quickcourt/QC-BookingService/internal/api/middleware"
	"github.com/quickcourt/QC-BookingService/internal/config"
	"github.com/quickcourt/QC-BookingService/internal/infra/events"
	courtRepo "github.com/quickcourt/QC-BookingService/internal/infra/storage/court"
	facilityRepo "github.com/quickcourt/QC-BookingService/internal/infra/storage/facility"
	reservationRepo "github.com/quickcourt/QC-BookingService/internal/infra/storage/reservation"
	"github.com/quickcourt/QC-BookingService/internal/jobs/completion"
	courtsService "github.com/quickcourt/QC-BookingService/internal/service/courts"
	reservationsService "github.com/quickcourt/QC-BookingService/internal/service/reservations"
	createReservationUC "github.com/quickcourt/QC-BookingService/internal/usecase/create_reservation"
	getAvailableSlotsUC "github.com/quickcourt/QC-BookingService/internal/usecase/get_available_slots"
	"github.com/quickcourt/QC-BookingService/pkg/dbmetrics"
	"github.com/quickcourt/QC-BookingService/pkg/logger"
	"github.com/quickcourt/QC-BookingService/pkg/metrics"
	"github.com/quickcourt/QC-BookingService/pkg/simpletxmanager"
	"github.com/quickcourt/QC-BookingService/pkg/txmanager"
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

	log.Info("Starting QC-BookingService...")
	log.Info("Configuration loaded from config.toml")

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

	// Инициализируем publisher событий (если включен)
	var publisher reservationsService.EventPublisher
	if cfg.Events.Enabled {
		p, err := events.NewPublisher(cfg.Events.URL, cfg.Events.Exchange, log)
		if err != nil {
			log.Fatal("Failed to connect to event broker: %v", err)
		}
		defer p.Close()
		publisher = p
		log.Info("Event publisher connected (exchange=%s)", cfg.Events.Exchange)
	} else {
		publisher = events.NoopPublisher{}
		log.Info("Event publishing disabled")
	}

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		courtRepository       *courtRepo.Repository
		facilityRepository    *facilityRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		courtRepository = courtRepo.NewRepository(wrappedDB)
		facilityRepository = facilityRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		courtRepository = courtRepo.NewRepository(db)
		facilityRepository = facilityRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		facilityRepository,
		publisher,
		log,
	)
	courtSvc := courtsService.NewService(
		courtRepository,
		facilityRepository,
		log,
	)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		courtRepository,
		facilityRepository,
		txMgr,
		publisher,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		reservationRepository,
		courtRepository,
		log,
	)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	updateReservationStatus := updateReservationStatusHandler.NewHandler(reservationSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationSvc, log)
	getFacilityReservations := getFacilityReservationsHandler.NewHandler(reservationSvc, log)
	createCourt := createCourtHandler.NewHandler(courtSvc, log)
	updateCourt := updateCourtHandler.NewHandler(courtSvc, log)
	listCourts := listCourtsHandler.NewHandler(courtSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Список кортов площадки
	api.HandleFunc("/facilities/{facilityId}/courts", listCourts.Handle).Methods(http.MethodGet)

	// Свободные слоты корта на дату
	api.HandleFunc("/courts/{courtId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Брони ---
	// Создание брони
	protected.HandleFunc("/bookings", createReservation.Handle).Methods(http.MethodPost)

	// Получение брони по UID
	protected.HandleFunc("/bookings/{reservationUid}", getReservation.Handle).Methods(http.MethodGet)

	// Отмена брони
	protected.HandleFunc("/bookings/{reservationUid}/cancel", cancelReservation.Handle).Methods(http.MethodPut)

	// Смена статуса брони (владелец площадки)
	protected.HandleFunc("/bookings/{reservationUid}/status", updateReservationStatus.Handle).Methods(http.MethodPut)

	// История броней пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserReservations.Handle).Methods(http.MethodGet)

	// --- Управление площадкой (для владельцев) ---
	// Брони площадки
	protected.HandleFunc("/facilities/{facilityId}/bookings", getFacilityReservations.Handle).Methods(http.MethodGet)

	// Создание корта
	protected.HandleFunc("/facilities/{facilityId}/courts", createCourt.Handle).Methods(http.MethodPost)

	// Обновление корта
	protected.HandleFunc("/courts/{courtId}", updateCourt.Handle).Methods(http.MethodPut)

	// Запускаем фоновый джоб завершения броней
	jobCtx, cancelJob := context.WithCancel(context.Background())
	completionJob := completion.NewJob(
		reservationRepository,
		time.Duration(cfg.Completion.Interval)*time.Second,
		log,
	)
	go completionJob.Run(jobCtx)

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

	// Останавливаем фоновый джоб
	cancelJob()

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
