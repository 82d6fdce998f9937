package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"

	"gw-eternal-pay/internal/api/handlers"
	"gw-eternal-pay/internal/api/middlew"
	"gw-eternal-pay/internal/config"
	"gw-eternal-pay/internal/db"
	"gw-eternal-pay/internal/kafka"
	"gw-eternal-pay/internal/metrics"
	"gw-eternal-pay/internal/pix_client"
	"gw-eternal-pay/internal/price_client"
	"gw-eternal-pay/internal/server"
	"gw-eternal-pay/internal/service"
	"gw-eternal-pay/internal/storage/postgres"
	"gw-eternal-pay/pkg/logger"
)

const shutdownTimeout = 30 * time.Second

// worker фоновый компонент со своим жизненным циклом.
type worker interface {
	Start()
	Shutdown(ctx context.Context) error
}

type App struct {
	log           *slog.Logger
	logFile       *os.File
	cfg           *config.Config
	pool          *pgxpool.Pool
	server        *server.Server
	kafkaProducer kafka.Producer
	workers       []worker
}

// NewApp поднимает общую инфраструктуру: логгер, миграции, пул соединений и kafka producer.
// HTTP-сервер и фоновые циклы добавляются Build-методами в зависимости от режима запуска.
func NewApp(cfg *config.Config) (*App, error) {
	loggerWithFile, err := logger.NewLoggerWithFile(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	log := loggerWithFile.Logger
	slog.SetDefault(log)
	log.Info("инициализация приложения")

	metrics.Init()

	if cfg.DB.MigrateOnStart {
		log.Info("выполнение миграций базы данных", slog.String("path", cfg.DB.MigrationsPath))
		status, err := db.RunMigrations(cfg.DB.MigrationURL(), cfg.DB.MigrationsPath)
		if err != nil {
			return nil, fmt.Errorf("ошибка выполнения миграций: %w", err)
		}
		log.Info("миграции успешно применены", slog.Uint64("version", uint64(status.Version)))
	}

	pool, err := db.NewPool(context.Background(), cfg.DB.DSN(), db.DefaultPoolConfig("gw-eternal-pay"), log)
	if err != nil {
		return nil, fmt.Errorf("не удалось подключиться к базе данных: %w", err)
	}
	log.Info("подключение к базе данных установлено")

	var kafkaProducer kafka.Producer
	if cfg.Kafka.Enabled {
		log.Info("инициализация kafka producer", slog.Any("brokers", cfg.Kafka.Brokers))
		kafkaProducer, err = kafka.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("ошибка инициализации kafka: %w", err)
		}
	} else {
		log.Info("kafka отключен в конфигурации")
		kafkaProducer = kafka.NewNoOpProducer(log)
	}

	return &App{
		log:           log,
		logFile:       loggerWithFile.LogFile,
		cfg:           cfg,
		pool:          pool,
		kafkaProducer: kafkaProducer,
	}, nil
}

// BuildHTTP создаёт сервер с общей цепочкой middleware и служебными маршрутами.
func (a *App) BuildHTTP() error {
	ipLimiter, err := middlew.NewIPLimiter(a.cfg.RateLimit)
	if err != nil {
		return err
	}

	srv := server.NewServer(a.cfg.HTTPPort)
	srv.Router.Use(middleware.RequestID)
	srv.Router.Use(middlew.WithLogger(a.log))
	srv.Router.Use(middleware.RealIP)
	srv.Router.Use(middleware.Recoverer)
	srv.Router.Use(middlew.HTTPMetrics)
	srv.Router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{a.cfg.CORSOrigin},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           3600,
	}))
	srv.Router.Use(middlew.RateLimit(ipLimiter))

	srv.RegisterSwagger(a.cfg.SwaggerHost)
	srv.RegisterMetrics()
	srv.Router.Get("/health", handlers.NewHealthHandler(a.pool).Health)

	a.server = srv
	a.log.Info("сервер инициализирован",
		slog.String("port", a.cfg.HTTPPort),
		slog.String("cors_origin", a.cfg.CORSOrigin))
	return nil
}

func (a *App) BuildTransactionLayer() error {
	if a.server == nil {
		return errors.New("server not initialized, call BuildHTTP first")
	}

	txManager := service.NewPgxTxManager(a.pool)
	repo := postgres.NewTransactionRepository(a.pool)
	transactionService := service.NewTransactionService(repo, txManager, a.log)
	h := handlers.NewTransactionHandler(transactionService)

	a.server.Router.Post("/transacoes/", h.Create)
	a.server.Router.Get("/transacoes/", h.List)
	a.server.Router.Get("/transacoes/{code}", h.Get)
	a.server.Router.Put("/transacoes/{code}/status", h.UpdateStatus)

	a.log.Info("слой 'transacoes' собран и маршруты зарегистрированы")
	return nil
}

func (a *App) BuildQuoteLayer() error {
	if a.server == nil {
		return errors.New("server not initialized, call BuildHTTP first")
	}

	repo := postgres.NewQuoteRepository(a.pool)
	quoteService := service.NewQuoteService(repo, a.log)
	h := handlers.NewQuoteHandler(quoteService)

	a.server.Router.Get("/cotacoes/", h.List)
	a.server.Router.Get("/cotacoes/converter/{amount}/{source}/{dest}", h.Convert)
	a.server.Router.Get("/cotacoes/{pair}", h.Get)

	a.log.Info("слой 'cotacoes' собран и маршруты зарегистрированы")
	return nil
}

func (a *App) BuildPixLayer() error {
	if a.server == nil {
		return errors.New("server not initialized, call BuildHTTP first")
	}

	client := pix_client.NewPixClient(a.cfg.Pix.BaseURL, a.cfg.Pix.Timeout, a.log)
	pixService := service.NewPixService(client, a.log)
	h := handlers.NewPixHandler(pixService)

	a.server.Router.Get("/pix/brcode", h.BRCode)

	a.log.Info("слой 'pix' собран и маршруты зарегистрированы")
	return nil
}

func (a *App) BuildRefresher() {
	fetcher := price_client.NewPriceClient(a.cfg.Price.BaseURL, a.cfg.Price.Exchange, a.cfg.Price.Timeout, a.log)
	repo := postgres.NewQuoteRepository(a.pool)

	refresher := service.NewQuoteRefresher(repo, fetcher, service.RefresherConfig{
		Interval:       a.cfg.Workers.QuoteRefreshInterval,
		USDBRLInterval: a.cfg.Workers.USDBRLRefreshInterval,
		TickTimeout:    3 * a.cfg.Price.Timeout,
	}, a.log)

	a.workers = append(a.workers, refresher)
	a.log.Info("обновление котировок настроено",
		slog.Duration("interval", a.cfg.Workers.QuoteRefreshInterval),
		slog.Duration("usd_brl_interval", a.cfg.Workers.USDBRLRefreshInterval))
}

func (a *App) BuildSweeper() {
	repo := postgres.NewTransactionRepository(a.pool)

	sweeper := service.NewExpirySweeper(repo, a.kafkaProducer, service.SweeperConfig{
		Interval:   a.cfg.Workers.SweepInterval,
		PendingTTL: a.cfg.Workers.PendingTTL,
	}, a.log)

	a.workers = append(a.workers, sweeper)
	a.log.Info("отмена просроченных транзакций настроена",
		slog.Duration("interval", a.cfg.Workers.SweepInterval),
		slog.Duration("pending_ttl", a.cfg.Workers.PendingTTL))
}

// BuildNotifier подписывается на события об отмене и ведёт их журнал в expiry_notifications.
func (a *App) BuildNotifier() error {
	if !a.cfg.Kafka.Enabled {
		return errors.New("notifier requires KAFKA_ENABLED=true")
	}

	repo := postgres.NewNotificationRepository(a.pool)
	consumer, err := kafka.NewConsumer(a.cfg.Kafka.Brokers, a.cfg.Kafka.GroupID, a.cfg.Kafka.Topic, a.cfg.Kafka.Workers, repo, a.log)
	if err != nil {
		return fmt.Errorf("ошибка инициализации kafka consumer: %w", err)
	}

	a.workers = append(a.workers, consumer)
	return nil
}

// Run запускает фоновые циклы и сервер (если собран) и блокируется до SIGINT/SIGTERM.
func (a *App) Run() error {
	for _, w := range a.workers {
		w.Start()
	}

	serverErr := make(chan error, 1)
	if a.server != nil {
		a.log.Info("сервер запускается", slog.String("port", a.cfg.HTTPPort))
		go func() {
			if err := a.server.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serverErr <- fmt.Errorf("ошибка запуска сервера: %w", err)
			}
		}()
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case runErr = <-serverErr:
	case sig := <-shutdownChan:
		a.log.Info("получен сигнал завершения", slog.String("signal", sig.String()))
	}

	a.shutdown()
	return runErr
}

func (a *App) shutdown() {
	a.log.Info("приложение останавливается")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	for _, w := range a.workers {
		if err := w.Shutdown(ctx); err != nil {
			a.log.Error("ошибка при остановке фонового цикла", slog.String("error", err.Error()))
		}
	}

	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			a.log.Error("ошибка при остановке http сервера", slog.String("error", err.Error()))
		}
	}

	if a.kafkaProducer != nil {
		if err := a.kafkaProducer.Close(); err != nil {
			a.log.Error("ошибка при закрытии kafka producer", slog.String("error", err.Error()))
		}
	}

	a.log.Info("закрытие соединения с базой данных")
	a.pool.Close()

	a.log.Info("приложение остановлено")
	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "ошибка при закрытии файла логов: %v\n", err)
		}
	}
}
