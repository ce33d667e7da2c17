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
	"github.com/robfig/cron/v3"

	addShiftItemsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/add_shift_items"
	cancelBookingHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/cancel_booking"
	closeShiftHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/close_shift"
	confirmBookingHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/confirm_booking"
	evaluatePromotionHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/evaluate_promotion"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_booking"
	markAttendanceHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/mark_attendance"
	openShiftHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/open_shift"
	recalculateRatingsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/recalculate_ratings"
	reserveSlotHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/reserve_slot"
	saveRatingConfigHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/save_rating_config"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/config"
	bookingRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/booking"
	promotionRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/promotion"
	ratingRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/rating"
	shiftRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/shift"
	catalogServiceClient "github.com/m04kA/SMC-SalonService/internal/integrations/catalogservice"
	clientServiceClient "github.com/m04kA/SMC-SalonService/internal/integrations/clientservice"
	notifyServiceClient "github.com/m04kA/SMC-SalonService/internal/integrations/notifyservice"
	scheduleServiceClient "github.com/m04kA/SMC-SalonService/internal/integrations/scheduleservice"
	bookingsService "github.com/m04kA/SMC-SalonService/internal/service/bookings"
	promotionsService "github.com/m04kA/SMC-SalonService/internal/service/promotions"
	ratingsService "github.com/m04kA/SMC-SalonService/internal/service/ratings"
	shiftsService "github.com/m04kA/SMC-SalonService/internal/service/shifts"
	getAvailableSlotsUC "github.com/m04kA/SMC-SalonService/internal/usecase/get_available_slots"
	markAttendanceUC "github.com/m04kA/SMC-SalonService/internal/usecase/mark_attendance"
	reserveSlotUC "github.com/m04kA/SMC-SalonService/internal/usecase/reserve_slot"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/metrics"
	"github.com/m04kA/SMC-SalonService/pkg/ratelimit"
	"github.com/m04kA/SMC-SalonService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-SalonService/pkg/txmanager"
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

	log.Info("Starting SMC-SalonService...")
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

	// Инициализируем интеграционных клиентов
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	scheduleClient := scheduleServiceClient.NewClient(
		cfg.ScheduleService.URL,
		time.Duration(cfg.ScheduleService.Timeout)*time.Second,
		log,
	)
	clientClient := clientServiceClient.NewClient(
		cfg.ClientService.URL,
		time.Duration(cfg.ClientService.Timeout)*time.Second,
		log,
	)
	notifyClient := notifyServiceClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (CatalogService=%s, ScheduleService=%s, ClientService=%s, NotifyService=%s)",
		cfg.CatalogService.URL, cfg.ScheduleService.URL, cfg.ClientService.URL, cfg.NotifyService.URL)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository   *bookingRepo.Repository
		promotionRepository *promotionRepo.Repository
		shiftRepository     *shiftRepo.Repository
		ratingRepository    *ratingRepo.Repository
	)

	// Интерфейс transaction manager, общий для обоих путей инициализации
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		promotionRepository = promotionRepo.NewRepository(wrappedDB)
		shiftRepository = shiftRepo.NewRepository(wrappedDB)
		ratingRepository = ratingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		promotionRepository = promotionRepo.NewRepository(db)
		shiftRepository = shiftRepo.NewRepository(db)
		ratingRepository = ratingRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	promotionSvc := promotionsService.NewService(
		promotionRepository,
		bookingRepository,
		clientClient,
		log,
	)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		notifyClient,
		txMgr,
		log,
	)
	shiftSvc := shiftsService.NewService(
		shiftRepository,
		txMgr,
		log,
	)
	ratingSvc := ratingsService.NewService(
		ratingRepository,
		txMgr,
		log,
	)

	// Инициализируем use cases
	holdTTL := time.Duration(cfg.Booking.HoldTTLMinutes) * time.Minute
	reserveSlotUseCase := reserveSlotUC.NewUseCase(
		bookingRepository,
		catalogClient,
		scheduleClient,
		holdTTL,
		log,
	)
	markAttendanceUseCase := markAttendanceUC.NewUseCase(
		bookingRepository,
		promotionSvc,
		txMgr,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		catalogClient,
		scheduleClient,
		log,
	)

	// Инициализируем handlers
	reserveSlot := reserveSlotHandler.NewHandler(reserveSlotUseCase, log)
	confirmBooking := confirmBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	markAttendance := markAttendanceHandler.NewHandler(markAttendanceUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	evaluatePromotion := evaluatePromotionHandler.NewHandler(promotionSvc, log)
	openShift := openShiftHandler.NewHandler(shiftSvc, log)
	addShiftItems := addShiftItemsHandler.NewHandler(shiftSvc, log)
	closeShift := closeShiftHandler.NewHandler(shiftSvc, log)
	saveRatingConfig := saveRatingConfigHandler.NewHandler(ratingSvc, log)
	recalculateRatings := recalculateRatingsHandler.NewHandler(ratingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Rate limit на весь API (если включен)
	if cfg.Server.RateLimitPerMinute > 0 {
		store := ratelimit.NewLocalStore(cfg.Server.RateLimitPerMinute)
		r.Use(middleware.RateLimit(store))
		log.Info("Rate limit enabled: %d requests per minute", cfg.Server.RateLimitPerMinute)
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

	// Доступные слоты мастера на дату
	api.HandleFunc("/branches/{branchId}/staff/{staffId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", reserveSlot.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/confirm", confirmBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/attendance", markAttendance.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/promotion", evaluatePromotion.Handle).Methods(http.MethodGet)

	// --- Смены ---
	protected.HandleFunc("/shifts", openShift.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/shifts/{shiftId}/items", addShiftItems.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/shifts/{shiftId}/close", closeShift.Handle).Methods(http.MethodPost)

	// --- Рейтинги ---
	protected.HandleFunc("/ratings/config", saveRatingConfig.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/ratings/recalculate", recalculateRatings.Handle).Methods(http.MethodPost)

	// Фоновые задачи: зачистка истекших удержаний и ночной пересчет рейтингов
	scheduler := cron.New()

	if _, err := scheduler.AddFunc(cfg.Booking.HoldSweepSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		cutoff := time.Now().Add(-holdTTL)
		released, err := bookingRepository.CancelExpiredHolds(ctx, cutoff)
		if err != nil {
			log.Error("Hold sweep failed: %v", err)
			return
		}
		if released > 0 {
			log.Info("Hold sweep: released %d expired holds", released)
		}
	}); err != nil {
		log.Fatal("Failed to schedule hold sweep: %v", err)
	}

	if _, err := scheduler.AddFunc(cfg.Ratings.RecalcSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()

		result, err := ratingSvc.RecalculateAll(ctx, cfg.Ratings.RecalcDaysBack)
		if err != nil {
			log.Error("Nightly rating recalculation failed: %v", err)
			return
		}
		log.Info("Nightly rating recalculation finished: processed=%d, failed=%d",
			result.EntitiesProcessed, len(result.Errors))
	}); err != nil {
		log.Fatal("Failed to schedule rating recalculation: %v", err)
	}

	scheduler.Start()
	log.Info("Background jobs scheduled (hold sweep=%q, rating recalc=%q)",
		cfg.Booking.HoldSweepSpec, cfg.Ratings.RecalcSpec)

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

	// Останавливаем фоновые задачи
	cronCtx := scheduler.Stop()
	<-cronCtx.Done()
	log.Info("Background jobs stopped")

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
		log.Error("Server shutdown failed: %v", err)
	}

	log.Info("Server stopped")
}
