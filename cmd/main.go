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

	assignPlanHandler "github.com/agarucorp/chrono-flow-prime-sub001/internal/api/handlers/assign_plan"
	cancelOccurrenceHandler "github.com/agarucorp/chrono-flow-prime-sub001/internal/api/handlers/cancel_occurrence"
	createBookingHandler "github.com/agarucorp/chrono-flow-prime-sub001/internal/api/handlers/create_booking"
	generateInvoiceHandler "github.com/agarucorp/chrono-flow-prime-sub001/internal/api/handlers/generate_invoice"
	getDayScheduleHandler "github.com/agarucorp/chrono-flow-prime-sub001/internal/api/handlers/get_day_schedule"
	getMemberBookingsHandler "github.com/agarucorp/chrono-flow-prime-sub001/internal/api/handlers/get_member_bookings"
	getMonthScheduleHandler "github.com/agarucorp/chrono-flow-prime-sub001/internal/api/handlers/get_month_schedule"
	manageAbsencesHandler "github.com/agarucorp/chrono-flow-prime-sub001/internal/api/handlers/manage_absences"
	manageExceptionsHandler "github.com/agarucorp/chrono-flow-prime-sub001/internal/api/handlers/manage_exceptions"
	manageSlotsHandler "github.com/agarucorp/chrono-flow-prime-sub001/internal/api/handlers/manage_slots"
	"github.com/agarucorp/chrono-flow-prime-sub001/internal/api/middleware"
	"github.com/agarucorp/chrono-flow-prime-sub001/internal/config"
	"github.com/agarucorp/chrono-flow-prime-sub001/internal/domain"
	bookingRepo "github.com/agarucorp/chrono-flow-prime-sub001/internal/infra/storage/booking"
	cancellationRepo "github.com/agarucorp/chrono-flow-prime-sub001/internal/infra/storage/cancellation"
	invoiceRepo "github.com/agarucorp/chrono-flow-prime-sub001/internal/infra/storage/invoice"
	scheduleRepo "github.com/agarucorp/chrono-flow-prime-sub001/internal/infra/storage/schedule"
	memberServiceClient "github.com/agarucorp/chrono-flow-prime-sub001/internal/integrations/memberservice"
	notifierClient "github.com/agarucorp/chrono-flow-prime-sub001/internal/integrations/notifier"
	planServiceClient "github.com/agarucorp/chrono-flow-prime-sub001/internal/integrations/planservice"
	plansService "github.com/agarucorp/chrono-flow-prime-sub001/internal/service/plans"
	scheduleService "github.com/agarucorp/chrono-flow-prime-sub001/internal/service/schedule"
	cancelOccurrenceUC "github.com/agarucorp/chrono-flow-prime-sub001/internal/usecase/cancel_occurrence"
	createBookingUC "github.com/agarucorp/chrono-flow-prime-sub001/internal/usecase/create_booking"
	generateInvoiceUC "github.com/agarucorp/chrono-flow-prime-sub001/internal/usecase/generate_invoice"
	resolveDayUC "github.com/agarucorp/chrono-flow-prime-sub001/internal/usecase/resolve_day"
	resolveMonthUC "github.com/agarucorp/chrono-flow-prime-sub001/internal/usecase/resolve_month"
	"github.com/agarucorp/chrono-flow-prime-sub001/pkg/dbmetrics"
	"github.com/agarucorp/chrono-flow-prime-sub001/pkg/logger"
	"github.com/agarucorp/chrono-flow-prime-sub001/pkg/metrics"
	"github.com/agarucorp/chrono-flow-prime-sub001/pkg/simpletxmanager"
	"github.com/agarucorp/chrono-flow-prime-sub001/pkg/txmanager"
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

	log.Info("Starting ChronoFlow schedule & billing service...")
	log.Info("Configuration loaded from config.toml")

	// Таймзона клуба: все даты расписания локальны для нее
	location, err := time.LoadLocation(cfg.Booking.Timezone)
	if err != nil {
		log.Fatal("Failed to load timezone %q: %v", cfg.Booking.Timezone, err)
	}
	engineConfig := domain.EngineConfig{
		DefaultCapacity:  cfg.Booking.DefaultCapacity,
		LateCancelCutoff: time.Duration(cfg.Booking.LateCancelCutoffHours) * time.Hour,
		Location:         location,
	}

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
	memberClient := memberServiceClient.NewClient(
		cfg.MemberService.URL,
		time.Duration(cfg.MemberService.Timeout)*time.Second,
		log,
	)
	planClient := planServiceClient.NewClient(
		cfg.PlanService.URL,
		time.Duration(cfg.PlanService.Timeout)*time.Second,
		log,
	)
	notifier := notifierClient.NewClient(
		cfg.Notifier.URL,
		time.Duration(cfg.Notifier.Timeout)*time.Second,
		cfg.Notifier.Enabled,
		log,
	)
	log.Info("Integration clients initialized (MemberService=%s, PlanService=%s, Notifier=%s enabled=%t)",
		cfg.MemberService.URL, cfg.PlanService.URL, cfg.Notifier.URL, cfg.Notifier.Enabled)

	// Глобальная вместимость слота живет в PlanService; недоступность
	// коллаборатора на старте деградирует к значению из config.toml
	startupCtx, cancelStartup := context.WithTimeout(context.Background(),
		time.Duration(cfg.PlanService.Timeout)*time.Second)
	engineConfig.DefaultCapacity = planClient.GetGlobalCapacityWithGracefulDegradation(
		startupCtx, cfg.Booking.DefaultCapacity)
	cancelStartup()
	log.Info("Engine config: capacity=%d, late_cutoff=%dh, timezone=%s",
		engineConfig.DefaultCapacity, cfg.Booking.LateCancelCutoffHours, cfg.Booking.Timezone)

	// Инициализируем репозитории (с метриками или без)
	var (
		scheduleRepository     *scheduleRepo.Repository
		bookingRepository      *bookingRepo.Repository
		cancellationRepository *cancellationRepo.Repository
		invoiceRepository      *invoiceRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")

		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		cancellationRepository = cancellationRepo.NewRepository(wrappedDB)
		invoiceRepository = invoiceRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		scheduleRepository = scheduleRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		cancellationRepository = cancellationRepo.NewRepository(db)
		invoiceRepository = invoiceRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	scheduleSvc := scheduleService.NewService(scheduleRepository, log)
	plansSvc := plansService.NewService(
		bookingRepository,
		scheduleRepository,
		memberClient,
		planClient,
		txMgr,
		log,
	)

	// Инициализируем use cases
	resolveDayUseCase := resolveDayUC.NewUseCase(
		scheduleRepository,
		bookingRepository,
		cancellationRepository,
		engineConfig,
		log,
	)
	resolveMonthUseCase := resolveMonthUC.NewUseCase(
		scheduleRepository,
		bookingRepository,
		cancellationRepository,
		engineConfig,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		scheduleRepository,
		bookingRepository,
		cancellationRepository,
		memberClient,
		txMgr,
		engineConfig,
		log,
	)
	cancelOccurrenceUseCase := cancelOccurrenceUC.NewUseCase(
		scheduleRepository,
		bookingRepository,
		cancellationRepository,
		txMgr,
		engineConfig,
		log,
	)
	generateInvoiceUseCase := generateInvoiceUC.NewUseCase(
		scheduleRepository,
		bookingRepository,
		cancellationRepository,
		invoiceRepository,
		memberClient,
		planClient,
		txMgr,
		engineConfig,
		log,
	)

	// Инициализируем handlers
	getDaySchedule := getDayScheduleHandler.NewHandler(resolveDayUseCase, log)
	getMonthSchedule := getMonthScheduleHandler.NewHandler(resolveMonthUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, notifier, log)
	cancelOccurrence := cancelOccurrenceHandler.NewHandler(cancelOccurrenceUseCase, notifier, log)
	generateInvoice := generateInvoiceHandler.NewHandler(generateInvoiceUseCase, notifier, log)
	getMemberBookings := getMemberBookingsHandler.NewHandler(plansSvc, log)
	assignPlan := assignPlanHandler.NewHandler(plansSvc, log)
	manageSlots := manageSlotsHandler.NewHandler(scheduleSvc, log)
	manageExceptions := manageExceptionsHandler.NewHandler(scheduleSvc, log)
	manageAbsences := manageAbsencesHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

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
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Разрешенное расписание дня
	api.HandleFunc("/schedule/days/{date}", getDaySchedule.Handle).Methods(http.MethodGet)

	// Разрешенное расписание месяца
	api.HandleFunc("/schedule/months/{year}/{month}", getMonthSchedule.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Member-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Разовое бронирование
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Отмена одного занятия
	protected.HandleFunc("/cancellations", cancelOccurrence.Handle).Methods(http.MethodPost)

	// Активные бронирования члена клуба
	protected.HandleFunc("/members/{memberId}/bookings", getMemberBookings.Handle).Methods(http.MethodGet)

	// --- Планы и счета ---
	// Назначение недельного плана
	protected.HandleFunc("/members/{memberId}/plan", assignPlan.Handle).Methods(http.MethodPut)

	// Генерация месячного счета
	protected.HandleFunc("/members/{memberId}/invoices/{year}/{month}",
		generateInvoice.Handle).Methods(http.MethodPost)

	// --- Администрирование расписания ---
	// Недельный шаблон слотов
	protected.HandleFunc("/admin/slots", manageSlots.HandleUpsert).Methods(http.MethodPut)
	protected.HandleFunc("/admin/slots", manageSlots.HandleList).Methods(http.MethodGet)

	// Календарь исключений
	protected.HandleFunc("/admin/exception-days", manageExceptions.HandleCreate).Methods(http.MethodPost)
	protected.HandleFunc("/admin/exception-days/{id}", manageExceptions.HandleDeactivate).Methods(http.MethodDelete)

	// Реестр отсутствий
	protected.HandleFunc("/admin/absences", manageAbsences.HandleCreate).Methods(http.MethodPost)
	protected.HandleFunc("/admin/absences", manageAbsences.HandleList).Methods(http.MethodGet)
	protected.HandleFunc("/admin/absences/{id}", manageAbsences.HandleDeactivate).Methods(http.MethodDelete)

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
