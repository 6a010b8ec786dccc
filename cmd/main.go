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
	"github.com/redis/go-redis/v9"

	cancelClassHandler "github.com/m04kA/SMC-StudioBookingService/internal/api/handlers/cancel_class"
	cancelReservationHandler "github.com/m04kA/SMC-StudioBookingService/internal/api/handlers/cancel_reservation"
	getClientReservationsHandler "github.com/m04kA/SMC-StudioBookingService/internal/api/handlers/get_client_reservations"
	getPolicyHandler "github.com/m04kA/SMC-StudioBookingService/internal/api/handlers/get_policy"
	getReservationHandler "github.com/m04kA/SMC-StudioBookingService/internal/api/handlers/get_reservation"
	getSessionRosterHandler "github.com/m04kA/SMC-StudioBookingService/internal/api/handlers/get_session_roster"
	leaveWaitlistHandler "github.com/m04kA/SMC-StudioBookingService/internal/api/handlers/leave_waitlist"
	reserveClassHandler "github.com/m04kA/SMC-StudioBookingService/internal/api/handlers/reserve_class"
	updatePolicyHandler "github.com/m04kA/SMC-StudioBookingService/internal/api/handlers/update_policy"
	"github.com/m04kA/SMC-StudioBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-StudioBookingService/internal/config"
	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/internal/infra/lock/redislock"
	policyRepo "github.com/m04kA/SMC-StudioBookingService/internal/infra/storage/policy"
	reservationRepo "github.com/m04kA/SMC-StudioBookingService/internal/infra/storage/reservation"
	sessionRepo "github.com/m04kA/SMC-StudioBookingService/internal/infra/storage/session"
	waitlistRepo "github.com/m04kA/SMC-StudioBookingService/internal/infra/storage/waitlist"
	"github.com/m04kA/SMC-StudioBookingService/internal/integrations/clientservice"
	"github.com/m04kA/SMC-StudioBookingService/internal/integrations/events"
	policyService "github.com/m04kA/SMC-StudioBookingService/internal/service/policy"
	sessionsService "github.com/m04kA/SMC-StudioBookingService/internal/service/sessions"
	cancelClassUC "github.com/m04kA/SMC-StudioBookingService/internal/usecase/cancel_class"
	cancelReservationUC "github.com/m04kA/SMC-StudioBookingService/internal/usecase/cancel_reservation"
	leaveWaitlistUC "github.com/m04kA/SMC-StudioBookingService/internal/usecase/leave_waitlist"
	reserveClassUC "github.com/m04kA/SMC-StudioBookingService/internal/usecase/reserve_class"
	"github.com/m04kA/SMC-StudioBookingService/internal/usecase/sessionflow"
	"github.com/m04kA/SMC-StudioBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioBookingService/pkg/keylock"
	"github.com/m04kA/SMC-StudioBookingService/pkg/logger"
	"github.com/m04kA/SMC-StudioBookingService/pkg/metrics"
	"github.com/m04kA/SMC-StudioBookingService/pkg/txmanager"
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

	log.Info("Starting SMC-StudioBookingService...")
	log.Info("Configuration loaded from config.toml")

	// Счётчики исходов нужны движку всегда, наружу отдаём только при включённых метриках
	metricsCollector := metrics.New(cfg.Metrics.ServiceName)
	stopMetricsCh := make(chan struct{})
	if cfg.Metrics.Enabled {
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

	// Обёртка БД: с метриками или без коллектора
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil, cfg.Metrics.ServiceName)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	loc := cfg.StudioLocation()
	sessionRepository := sessionRepo.NewRepository(wrappedDB, loc)
	reservationRepository := reservationRepo.NewRepository(wrappedDB, loc)
	waitlistRepository := waitlistRepo.NewRepository(wrappedDB)
	policyRepository := policyRepo.NewRepository(wrappedDB)

	// Блокировка занятий
	var locker sessionflow.Locker
	switch cfg.Lock.Driver {
	case config.LockDriverRedis:
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Lock.RedisAddr,
			Password: cfg.Lock.RedisPass,
			DB:       cfg.Lock.RedisDB,
		})
		defer redisClient.Close()

		pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			pingCancel()
			log.Fatal("Failed to ping redis at %s: %v", cfg.Lock.RedisAddr, err)
		}
		pingCancel()

		locker = redislock.New(redisClient, redislock.Options{
			TTL:          time.Duration(cfg.Lock.TTL) * time.Millisecond,
			RetryDelay:   time.Duration(cfg.Lock.RetryDelay) * time.Millisecond,
			WaitDeadline: time.Duration(cfg.Lock.WaitDeadline) * time.Millisecond,
		}, log)
		log.Info("Session lock: redis (%s)", cfg.Lock.RedisAddr)
	default:
		locker = keylock.New()
		log.Info("Session lock: in-process")
	}

	// Сигналы возврата кредитов и продвижений
	var publisher sessionflow.SignalPublisher
	if cfg.Broker.Enabled {
		brokerPublisher := events.NewPublisher(
			cfg.Broker.URL,
			cfg.Broker.RefundQueue,
			cfg.Broker.PromotionQueue,
			time.Duration(cfg.Broker.PublishTimeout)*time.Second,
			log,
		)
		defer func() {
			if err := brokerPublisher.Close(); err != nil {
				log.Error("Failed to close broker publisher: %v", err)
			}
		}()
		publisher = brokerPublisher
		log.Info("Signals published to RabbitMQ (refund=%s, promotion=%s)",
			cfg.Broker.RefundQueue, cfg.Broker.PromotionQueue)
	} else {
		publisher = events.NewLogPublisher(log)
		log.Info("Broker disabled, signals are only logged")
	}

	// Сервис клиентов студии (опционально)
	var clients reserveClassUC.ClientServiceClient
	if cfg.ClientService.Enabled {
		clients = clientservice.NewClient(
			cfg.ClientService.URL,
			time.Duration(cfg.ClientService.Timeout)*time.Second,
			log,
		)
		log.Info("Client service integration enabled (url=%s timeout=%ds)",
			cfg.ClientService.URL, cfg.ClientService.Timeout)
	}

	// Инициализируем сервисы
	policySvc := policyService.NewService(
		policyRepository,
		domain.Policy{
			ReservationLeadMinutes:  cfg.Policy.ReservationLeadMinutes,
			CancellationLeadMinutes: cfg.Policy.CancellationLeadMinutes,
		},
		log,
	)
	sessionsSvc := sessionsService.NewService(
		txMgr,
		sessionRepository,
		reservationRepository,
		waitlistRepository,
		log,
	)

	// Все изменения занятий идут через один runner
	runner := sessionflow.NewRunner(
		locker,
		txMgr,
		sessionRepository,
		reservationRepository,
		waitlistRepository,
		policySvc,
		publisher,
		metricsCollector,
		log,
	)

	// Инициализируем use cases
	reserveClassUseCase := reserveClassUC.NewUseCase(runner, clients, metricsCollector, log)
	cancelReservationUseCase := cancelReservationUC.NewUseCase(runner, reservationRepository, metricsCollector, log)
	cancelClassUseCase := cancelClassUC.NewUseCase(runner, metricsCollector, log)
	leaveWaitlistUseCase := leaveWaitlistUC.NewUseCase(runner, log)

	// Инициализируем handlers
	reserveClass := reserveClassHandler.NewHandler(reserveClassUseCase, log)
	cancelReservation := cancelReservationHandler.NewHandler(cancelReservationUseCase, log)
	cancelClass := cancelClassHandler.NewHandler(cancelClassUseCase, log)
	leaveWaitlist := leaveWaitlistHandler.NewHandler(leaveWaitlistUseCase, log)
	getSessionRoster := getSessionRosterHandler.NewHandler(sessionsSvc, log)
	getClientReservations := getClientReservationsHandler.NewHandler(sessionsSvc, loc, log)
	getReservation := getReservationHandler.NewHandler(sessionsSvc, log)
	getPolicy := getPolicyHandler.NewHandler(policySvc, log)
	updatePolicy := updatePolicyHandler.NewHandler(policySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Recovery(log))

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Занятия ---
	// Запись на занятие (место или очередь)
	api.HandleFunc("/sessions/{sessionId}/reservations", reserveClass.Handle).Methods(http.MethodPost)

	// Отмена занятия студией
	api.HandleFunc("/sessions/{sessionId}/cancel", cancelClass.Handle).Methods(http.MethodPost)

	// Выход из очереди ожидания
	api.HandleFunc("/sessions/{sessionId}/waitlist/{clientId}", leaveWaitlist.Handle).Methods(http.MethodDelete)

	// Состав занятия
	api.HandleFunc("/sessions/{sessionId}/roster", getSessionRoster.Handle).Methods(http.MethodGet)

	// --- Брони ---
	// Получение брони по ID
	api.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Отмена брони клиентом
	api.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// История клиента
	api.HandleFunc("/clients/{clientId}/reservations", getClientReservations.Handle).Methods(http.MethodGet)

	// --- Политика студии ---
	api.HandleFunc("/policy", getPolicy.Handle).Methods(http.MethodGet)
	api.HandleFunc("/policy", updatePolicy.Handle).Methods(http.MethodPut)

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
