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

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/m04kA/KH-BookingService/internal/api/handlers/cancel_booking"
	confirmPaymentHandler "github.com/m04kA/KH-BookingService/internal/api/handlers/confirm_payment"
	createBookingHandler "github.com/m04kA/KH-BookingService/internal/api/handlers/create_booking"
	getBookingHandler "github.com/m04kA/KH-BookingService/internal/api/handlers/get_booking"
	getBookingsHandler "github.com/m04kA/KH-BookingService/internal/api/handlers/get_bookings"
	getCalendarHandler "github.com/m04kA/KH-BookingService/internal/api/handlers/get_calendar"
	getRulesHandler "github.com/m04kA/KH-BookingService/internal/api/handlers/get_rules"
	updateRulesHandler "github.com/m04kA/KH-BookingService/internal/api/handlers/update_rules"
	"github.com/m04kA/KH-BookingService/internal/api/middleware"
	"github.com/m04kA/KH-BookingService/internal/config"
	bookingRepo "github.com/m04kA/KH-BookingService/internal/infra/storage/booking"
	ruleRepo "github.com/m04kA/KH-BookingService/internal/infra/storage/rule"
	calendarSyncClient "github.com/m04kA/KH-BookingService/internal/integrations/calendarsync"
	mailerClient "github.com/m04kA/KH-BookingService/internal/integrations/mailer"
	paymentsClient "github.com/m04kA/KH-BookingService/internal/integrations/payments"
	bookingsService "github.com/m04kA/KH-BookingService/internal/service/bookings"
	rulesService "github.com/m04kA/KH-BookingService/internal/service/rules"
	confirmPaymentUC "github.com/m04kA/KH-BookingService/internal/usecase/confirm_payment"
	createBookingUC "github.com/m04kA/KH-BookingService/internal/usecase/create_booking"
	getCalendarUC "github.com/m04kA/KH-BookingService/internal/usecase/get_calendar"
	"github.com/m04kA/KH-BookingService/internal/worker"
	"github.com/m04kA/KH-BookingService/pkg/dbmetrics"
	"github.com/m04kA/KH-BookingService/pkg/jobqueue"
	"github.com/m04kA/KH-BookingService/pkg/logger"
	"github.com/m04kA/KH-BookingService/pkg/metrics"
	"github.com/m04kA/KH-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/KH-BookingService/pkg/txmanager"
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

	log.Info("Starting KH-BookingService...")
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

	// Подключаемся к Redis (если включен)
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		defer redisClient.Close()
		log.Info("Successfully connected to redis (addr=%s)", cfg.Redis.Addr())
	}

	// Инициализируем интеграционных клиентов
	gateway := paymentsClient.NewClient(
		cfg.Payments.URL,
		cfg.Payments.KeyID,
		cfg.Payments.KeySecret,
		time.Duration(cfg.Payments.Timeout)*time.Second,
		log,
	)
	mailer := mailerClient.NewClient(
		cfg.Mailer.URL,
		cfg.Mailer.From,
		time.Duration(cfg.Mailer.Timeout)*time.Second,
		log,
	)
	calendar := calendarSyncClient.NewClient(
		cfg.CalendarSync.URL,
		cfg.CalendarSync.CalendarID,
		time.Duration(cfg.CalendarSync.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (Payments=%s, Mailer=%s, CalendarSync=%s)",
		cfg.Payments.URL, cfg.Mailer.URL, cfg.CalendarSync.URL)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		ruleRepository    *ruleRepo.Repository
	)

	// Интерфейс transaction manager, общий для сервисов и usecases
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		ruleRepository = ruleRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		ruleRepository = ruleRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем notifier: через очередь в Redis или синхронно
	var notifier confirmPaymentUC.Notifier
	var queue *jobqueue.Queue
	if cfg.Redis.Enabled {
		queue = jobqueue.NewQueue(redisClient, cfg.Redis.QueueKey, log)
		notifier = worker.NewNotificationProducer(queue)
		log.Info("Notifications will be delivered via redis queue key=%s", cfg.Redis.QueueKey)
	} else {
		notifier = worker.NewDirectNotifier(mailer, calendar, log)
		log.Info("Redis disabled, notifications will be delivered synchronously")
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, txMgr, log)
	ruleSvc := rulesService.NewService(ruleRepository, txMgr, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		ruleRepository,
		gateway,
		txMgr,
		cfg.Booking.DefaultNightlyRate,
		cfg.Booking.MonthlyBookingCap,
		log,
	)
	confirmPaymentUseCase := confirmPaymentUC.NewUseCase(
		bookingRepository,
		gateway,
		notifier,
		txMgr,
		cfg.Booking.MonthlyBookingCap,
		log,
	)
	getCalendarUseCase := getCalendarUC.NewUseCase(
		bookingRepository,
		ruleRepository,
		cfg.Booking.DefaultNightlyRate,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	confirmPayment := confirmPaymentHandler.NewHandler(confirmPaymentUseCase, log)
	getCalendar := getCalendarHandler.NewHandler(getCalendarUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getBookings := getBookingsHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateRules := updateRulesHandler.NewHandler(ruleSvc, log)
	getRules := getRulesHandler.NewHandler(ruleSvc, log)

	// Запускаем фоновые воркеры
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	expiryWorker := worker.NewExpiryWorker(
		bookingRepository,
		time.Duration(cfg.Booking.ExpiryIntervalSeconds)*time.Second,
		time.Duration(cfg.Booking.PendingTTLMinutes)*time.Minute,
		log,
	)
	go expiryWorker.Run(workerCtx)

	if cfg.Redis.Enabled {
		notifierWorker := worker.NewNotifierWorker(queue, mailer, calendar, log)
		go notifierWorker.Run(workerCtx)
	}

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Снимок календаря: занятые диапазоны и правила цен
	api.HandleFunc("/calendar-data", getCalendar.Handle).Methods(http.MethodGet)

	// Создание бронирования
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Подтверждение оплаты бронирования
	api.HandleFunc("/bookings/{reference}/confirm-payment", confirmPayment.Handle).Methods(http.MethodPost)

	// Получение бронирования по reference
	api.HandleFunc("/bookings/{reference}", getBooking.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-Token header)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.Admin.Token))

	// Список всех бронирований
	admin.HandleFunc("/bookings", getBookings.Handle).Methods(http.MethodGet)

	// Отмена подтвержденного бронирования
	admin.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Управление календарными правилами
	admin.HandleFunc("/rules", updateRules.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/rules", getRules.Handle).Methods(http.MethodGet)

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

	// Останавливаем фоновые воркеры
	stopWorkers()

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
