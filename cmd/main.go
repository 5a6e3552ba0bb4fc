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

	cancelByTokenHandler "github.com/avlasov/ABP-BookingPlatform/internal/api/handlers/cancel_by_token"
	createBookingHandler "github.com/avlasov/ABP-BookingPlatform/internal/api/handlers/create_booking"
	createClosureHandler "github.com/avlasov/ABP-BookingPlatform/internal/api/handlers/create_closure"
	createManualBookingHandler "github.com/avlasov/ABP-BookingPlatform/internal/api/handlers/create_manual_booking"
	deleteClosureHandler "github.com/avlasov/ABP-BookingPlatform/internal/api/handlers/delete_closure"
	getAvailableSlotsHandler "github.com/avlasov/ABP-BookingPlatform/internal/api/handlers/get_available_slots"
	getBookingByTokenHandler "github.com/avlasov/ABP-BookingPlatform/internal/api/handlers/get_booking_by_token"
	getBusinessBookingsHandler "github.com/avlasov/ABP-BookingPlatform/internal/api/handlers/get_business_bookings"
	getWorkingHoursHandler "github.com/avlasov/ABP-BookingPlatform/internal/api/handlers/get_working_hours"
	listClosuresHandler "github.com/avlasov/ABP-BookingPlatform/internal/api/handlers/list_closures"
	replaceWorkingHoursHandler "github.com/avlasov/ABP-BookingPlatform/internal/api/handlers/replace_working_hours"
	runRemindersHandler "github.com/avlasov/ABP-BookingPlatform/internal/api/handlers/run_reminders"
	updateBookingStatusHandler "github.com/avlasov/ABP-BookingPlatform/internal/api/handlers/update_booking_status"
	"github.com/avlasov/ABP-BookingPlatform/internal/api/middleware"
	"github.com/avlasov/ABP-BookingPlatform/internal/config"
	bookingRepo "github.com/avlasov/ABP-BookingPlatform/internal/infra/storage/booking"
	businessRepo "github.com/avlasov/ABP-BookingPlatform/internal/infra/storage/business"
	closureRepo "github.com/avlasov/ABP-BookingPlatform/internal/infra/storage/closure"
	serviceRepo "github.com/avlasov/ABP-BookingPlatform/internal/infra/storage/service"
	workingHoursRepo "github.com/avlasov/ABP-BookingPlatform/internal/infra/storage/workinghours"
	"github.com/avlasov/ABP-BookingPlatform/internal/integrations/mailer"
	bookingsService "github.com/avlasov/ABP-BookingPlatform/internal/service/bookings"
	scheduleService "github.com/avlasov/ABP-BookingPlatform/internal/service/schedule"
	createBookingUC "github.com/avlasov/ABP-BookingPlatform/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/avlasov/ABP-BookingPlatform/internal/usecase/get_available_slots"
	"github.com/avlasov/ABP-BookingPlatform/pkg/dbmetrics"
	"github.com/avlasov/ABP-BookingPlatform/pkg/logger"
	"github.com/avlasov/ABP-BookingPlatform/pkg/metrics"
	"github.com/avlasov/ABP-BookingPlatform/pkg/simpletxmanager"
	"github.com/avlasov/ABP-BookingPlatform/pkg/txmanager"
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

	log.Info("Starting ABP-BookingPlatform...")
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

	// Почтовый клиент для уведомлений клиентам
	mailClient := mailer.NewClient(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.From, log)
	log.Info("Mailer initialized (host=%s, port=%s, from=%s)", cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.From)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository      *bookingRepo.Repository
		businessRepository     *businessRepo.Repository
		serviceRepository      *serviceRepo.Repository
		workingHoursRepository *workingHoursRepo.Repository
		closureRepository      *closureRepo.Repository
	)

	// Интерфейс transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		businessRepository = businessRepo.NewRepository(wrappedDB)
		serviceRepository = serviceRepo.NewRepository(wrappedDB)
		workingHoursRepository = workingHoursRepo.NewRepository(wrappedDB)
		closureRepository = closureRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		businessRepository = businessRepo.NewRepository(db)
		serviceRepository = serviceRepo.NewRepository(db)
		workingHoursRepository = workingHoursRepo.NewRepository(db)
		closureRepository = closureRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		businessRepository,
		serviceRepository,
		workingHoursRepository,
		closureRepository,
		bookingRepository,
		cfg.Booking.DefaultTimezone,
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		businessRepository,
		serviceRepository,
		bookingRepository,
		getAvailableSlotsUseCase,
		txMgr,
		mailClient,
		cfg.Booking.DefaultTimezone,
		cfg.Booking.ManageBaseURL,
		log,
	)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		businessRepository,
		serviceRepository,
		mailClient,
		cfg.Booking.DefaultTimezone,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		workingHoursRepository,
		closureRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	createManualBooking := createManualBookingHandler.NewHandler(createBookingUseCase, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getBookingByToken := getBookingByTokenHandler.NewHandler(bookingSvc, log)
	cancelByToken := cancelByTokenHandler.NewHandler(bookingSvc, log)
	getBusinessBookings := getBusinessBookingsHandler.NewHandler(bookingSvc, log)
	getWorkingHours := getWorkingHoursHandler.NewHandler(scheduleSvc, log)
	replaceWorkingHours := replaceWorkingHoursHandler.NewHandler(scheduleSvc, log)
	createClosure := createClosureHandler.NewHandler(scheduleSvc, log)
	listClosures := listClosuresHandler.NewHandler(scheduleSvc, log)
	deleteClosure := deleteClosureHandler.NewHandler(scheduleSvc, log)
	runReminders := runRemindersHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
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
	// PUBLIC ROUTES (клиентский сценарий, без аутентификации)
	// ============================================================

	// Доступные слоты на дату
	api.HandleFunc("/businesses/{businessId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Создание бронирования клиентом
	api.HandleFunc("/businesses/{businessId}/bookings",
		createBooking.Handle).Methods(http.MethodPost)

	// Самообслуживание по manage-токену
	api.HandleFunc("/manage/{token}", getBookingByToken.Handle).Methods(http.MethodGet)
	api.HandleFunc("/manage/{token}/cancel", cancelByToken.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Business-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Ручное бронирование владельцем (walk-in, телефонный звонок)
	protected.HandleFunc("/bookings/manual", createManualBooking.Handle).Methods(http.MethodPost)

	// Смена статуса бронирования
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// Список бронирований бизнеса
	protected.HandleFunc("/bookings", getBusinessBookings.Handle).Methods(http.MethodGet)

	// --- Расписание ---
	protected.HandleFunc("/working-hours", getWorkingHours.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/working-hours", replaceWorkingHours.Handle).Methods(http.MethodPut)

	// --- Закрытия (праздники и перерывы) ---
	protected.HandleFunc("/closures", createClosure.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/closures", listClosures.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/closures/{closureId}", deleteClosure.Handle).Methods(http.MethodDelete)

	// ============================================================
	// INTERNAL ROUTES (вызываются планировщиком, вне /api/v1)
	// ============================================================

	internal := r.PathPrefix("/internal").Subrouter()
	internal.HandleFunc("/reminders/run", runReminders.Handle).Methods(http.MethodPost)

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
