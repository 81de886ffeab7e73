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

	cancelBookingHandler "github.com/ign-garage/booking-service/internal/api/handlers/cancel_booking"
	closedDaysHandler "github.com/ign-garage/booking-service/internal/api/handlers/closed_days"
	createBookingHandler "github.com/ign-garage/booking-service/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/ign-garage/booking-service/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/ign-garage/booking-service/internal/api/handlers/get_booking"
	getCustomerHistoryHandler "github.com/ign-garage/booking-service/internal/api/handlers/get_customer_history"
	getPricingHandler "github.com/ign-garage/booking-service/internal/api/handlers/get_pricing"
	getRateConfigHandler "github.com/ign-garage/booking-service/internal/api/handlers/get_rate_config"
	slotConfigHandler "github.com/ign-garage/booking-service/internal/api/handlers/slot_config"
	unavailableSlotsHandler "github.com/ign-garage/booking-service/internal/api/handlers/unavailable_slots"
	updateBookingStatusHandler "github.com/ign-garage/booking-service/internal/api/handlers/update_booking_status"
	updateRateConfigHandler "github.com/ign-garage/booking-service/internal/api/handlers/update_rate_config"
	vehicleLookupHandler "github.com/ign-garage/booking-service/internal/api/handlers/vehicle_lookup"
	"github.com/ign-garage/booking-service/internal/api/middleware"
	"github.com/ign-garage/booking-service/internal/config"
	"github.com/ign-garage/booking-service/internal/infra/cache"
	bookingRepo "github.com/ign-garage/booking-service/internal/infra/storage/booking"
	customerRepo "github.com/ign-garage/booking-service/internal/infra/storage/customer"
	rateConfigRepo "github.com/ign-garage/booking-service/internal/infra/storage/rateconfig"
	scheduleRepo "github.com/ign-garage/booking-service/internal/infra/storage/schedule"
	gcalendarClient "github.com/ign-garage/booking-service/internal/integrations/gcalendar"
	mailerClient "github.com/ign-garage/booking-service/internal/integrations/mailer"
	vehicleDataClient "github.com/ign-garage/booking-service/internal/integrations/vehicledata"
	bookingsService "github.com/ign-garage/booking-service/internal/service/bookings"
	notificationsService "github.com/ign-garage/booking-service/internal/service/notifications"
	pricingService "github.com/ign-garage/booking-service/internal/service/pricing"
	rateConfigService "github.com/ign-garage/booking-service/internal/service/rateconfig"
	scheduleService "github.com/ign-garage/booking-service/internal/service/schedule"
	createBookingUC "github.com/ign-garage/booking-service/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/ign-garage/booking-service/internal/usecase/get_available_slots"
	"github.com/ign-garage/booking-service/pkg/dbmetrics"
	"github.com/ign-garage/booking-service/pkg/logger"
	"github.com/ign-garage/booking-service/pkg/metrics"
	"github.com/ign-garage/booking-service/pkg/simpletxmanager"
	"github.com/ign-garage/booking-service/pkg/txmanager"
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

	log.Info("Starting booking-service...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	// Подключаемся к Redis (если включен). Сервис полностью работоспособен
	// без кэша: промахи просто идут в базу.
	var redisCache *cache.Cache
	if cfg.Redis.Enabled {
		redisClient, err := cache.Connect(context.Background(), cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()

		redisCache = cache.New(redisClient, time.Duration(cfg.Redis.TTLSeconds)*time.Second, log, metricsCollector)
		log.Info("Redis cache enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTLSeconds)
	}

	// Инициализируем интеграционных клиентов. Календарь и почта опциональны,
	// провайдер данных о транспортных средствах нужен всегда.
	vehicleClient := vehicleDataClient.NewClient(
		cfg.VehicleData.URL,
		cfg.VehicleData.APIKey,
		time.Duration(cfg.VehicleData.Timeout)*time.Second,
		log,
	)

	var calendarClient *gcalendarClient.Client
	if cfg.Calendar.Enabled {
		calendarClient = gcalendarClient.NewClient(
			cfg.Calendar.URL,
			cfg.Calendar.CalendarID,
			cfg.Calendar.APIKey,
			time.Duration(cfg.Calendar.Timeout)*time.Second,
			log,
		)
		log.Info("Calendar integration enabled (calendar=%s)", cfg.Calendar.CalendarID)
	}

	var mailClient *mailerClient.Client
	if cfg.Mailer.Enabled {
		mailClient = mailerClient.NewClient(
			cfg.Mailer.URL,
			cfg.Mailer.APIKey,
			cfg.Mailer.FromAddress,
			time.Duration(cfg.Mailer.Timeout)*time.Second,
			log,
		)
		log.Info("Mailer integration enabled (from=%s)", cfg.Mailer.FromAddress)
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository    *bookingRepo.Repository
		customerRepository   *customerRepo.Repository
		scheduleRepository   *scheduleRepo.Repository
		rateConfigRepository *rateConfigRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		customerRepository = customerRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		rateConfigRepository = rateConfigRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		customerRepository = customerRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		rateConfigRepository = rateConfigRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы. Опциональные зависимости передаются через
	// локальные интерфейсные переменные: типизированный nil-указатель в
	// интерфейсе не был бы nil-интерфейсом.
	pricingSvc := pricingService.NewService()

	var rateConfigCache rateConfigService.Cache
	if redisCache != nil {
		rateConfigCache = redisCache
	}
	rateConfigSvc := rateConfigService.NewService(rateConfigRepository, rateConfigCache, log)

	var scheduleCache scheduleService.AvailabilityCache
	if redisCache != nil {
		scheduleCache = redisCache
	}
	scheduleSvc := scheduleService.NewService(scheduleRepository, scheduleCache, log)

	var bookingsCalendar bookingsService.CalendarClient
	if calendarClient != nil {
		bookingsCalendar = calendarClient
	}
	var bookingsCache bookingsService.AvailabilityCache
	if redisCache != nil {
		bookingsCache = redisCache
	}
	bookingSvc := bookingsService.NewService(bookingRepository, bookingsCalendar, bookingsCache, log)

	var dispatcherCalendar notificationsService.CalendarClient
	if calendarClient != nil {
		dispatcherCalendar = calendarClient
	}
	var dispatcherMail notificationsService.MailClient
	if mailClient != nil {
		dispatcherMail = mailClient
	}
	var dispatcherMetrics notificationsService.Metrics
	if metricsCollector != nil {
		dispatcherMetrics = metricsCollector
	}
	dispatcher := notificationsService.NewDispatcher(
		dispatcherCalendar,
		dispatcherMail,
		bookingRepository,
		dispatcherMetrics,
		log,
		cfg.Mailer.FromAddress,
		cfg.Mailer.GarageCopy,
		cfg.Booking.NotificationRetries,
		cfg.Booking.QueueSize,
	)
	dispatcher.Start(cfg.Booking.NotificationWorkers)
	log.Info("Notification dispatcher started (workers=%d, retries=%d)",
		cfg.Booking.NotificationWorkers, cfg.Booking.NotificationRetries)

	// Инициализируем use cases
	var createBookingCache createBookingUC.AvailabilityCache
	if redisCache != nil {
		createBookingCache = redisCache
	}
	var createBookingMetrics createBookingUC.Metrics
	if metricsCollector != nil {
		createBookingMetrics = metricsCollector
	}
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		customerRepository,
		scheduleRepository,
		rateConfigSvc,
		pricingSvc,
		dispatcher,
		createBookingCache,
		txMgr,
		createBookingMetrics,
		log,
	)

	var availableSlotsCache getAvailableSlotsUC.AvailabilityCache
	if redisCache != nil {
		availableSlotsCache = redisCache
	}
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		availableSlotsCache,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getPricing := getPricingHandler.NewHandler(rateConfigSvc, pricingSvc, log)
	vehicleLookup := vehicleLookupHandler.NewHandler(vehicleClient, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getCustomerHistory := getCustomerHistoryHandler.NewHandler(bookingSvc, log)
	getRateConfig := getRateConfigHandler.NewHandler(rateConfigSvc, log)
	updateRateConfig := updateRateConfigHandler.NewHandler(rateConfigSvc, log)
	closedDays := closedDaysHandler.NewHandler(scheduleSvc, log)
	unavailableSlots := unavailableSlotsHandler.NewHandler(scheduleSvc, log)
	slotConfig := slotConfigHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты для записи
	api.HandleFunc("/availability", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Каталог услуг с ценами по объёму двигателя
	api.HandleFunc("/pricing", getPricing.Handle).Methods(http.MethodGet)

	// Данные о транспортном средстве по регистрационному номеру
	api.HandleFunc("/vehicles/{registration}", vehicleLookup.Handle).Methods(http.MethodGet)

	// Создание бронирования
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по референсу
	api.HandleFunc("/bookings/{reference}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	api.HandleFunc("/bookings/{reference}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-Token header)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.Admin.APIToken, log))

	// --- Тарифы ---
	admin.HandleFunc("/rate-configuration", getRateConfig.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/rate-configuration", updateRateConfig.Handle).Methods(http.MethodPut)

	// --- Бронирования ---
	admin.HandleFunc("/bookings/{reference}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/customers/{customerId}/bookings", getCustomerHistory.Handle).Methods(http.MethodGet)

	// --- Расписание ---
	admin.HandleFunc("/slot-configuration", slotConfig.HandleGet).Methods(http.MethodGet)
	admin.HandleFunc("/slot-configuration", slotConfig.HandleUpdate).Methods(http.MethodPut)

	admin.HandleFunc("/closed-days", closedDays.HandleList).Methods(http.MethodGet)
	admin.HandleFunc("/closed-days", closedDays.HandleCreate).Methods(http.MethodPost)
	admin.HandleFunc("/closed-days/{id}", closedDays.HandleDelete).Methods(http.MethodDelete)

	admin.HandleFunc("/unavailable-slots", unavailableSlots.HandleList).Methods(http.MethodGet)
	admin.HandleFunc("/unavailable-slots", unavailableSlots.HandleCreate).Methods(http.MethodPost)
	admin.HandleFunc("/unavailable-slots/{id}", unavailableSlots.HandleDelete).Methods(http.MethodDelete)

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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Сначала перестаём принимать запросы, потом дожидаемся доставки
	// уже поставленных в очередь уведомлений
	dispatcher.Stop()
	log.Info("Notification dispatcher stopped")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	log.Info("Server stopped gracefully")
}
