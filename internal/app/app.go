// Package app wires configuration, storage, the engine services, the
// notification pipeline and the HTTP server into one process.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/event-ticketing/internal/clock"
	"github.com/iliyamo/event-ticketing/internal/config"
	"github.com/iliyamo/event-ticketing/internal/database"
	"github.com/iliyamo/event-ticketing/internal/handler"
	"github.com/iliyamo/event-ticketing/internal/middleware"
	"github.com/iliyamo/event-ticketing/internal/notify"
	"github.com/iliyamo/event-ticketing/internal/queue"
	"github.com/iliyamo/event-ticketing/internal/render"
	"github.com/iliyamo/event-ticketing/internal/repository"
	"github.com/iliyamo/event-ticketing/internal/router"
	"github.com/iliyamo/event-ticketing/internal/scheduler"
	"github.com/iliyamo/event-ticketing/internal/service"
)

const shutdownTimeout = 15 * time.Second

type App struct {
	cfg       config.Config
	log       *slog.Logger
	db        *sql.DB
	rdb       *redis.Client
	publisher *queue.Publisher
	consumer  *queue.Consumer
	scheduler *scheduler.Scheduler
	echo      *echo.Echo
}

// New opens the database, applies migrations and builds every component.
// Nothing is started until Run.
func New(cfg config.Config, log *slog.Logger) (*App, error) {
	a := &App{cfg: cfg, log: log}

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	a.db = db
	log.Info("database connected", "host", cfg.DBHost, "port", cfg.DBPort, "database", cfg.DBName)

	if err := database.Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	a.initEngine()
	return a, nil
}

// Migrate opens the database, applies pending migrations and closes it.
func Migrate(cfg config.Config, log *slog.Logger) error {
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()
	if err := database.Migrate(db); err != nil {
		return err
	}
	v, err := database.Version(db)
	if err != nil {
		return err
	}
	log.Info("migrations applied", "version", v)
	return nil
}

func (a *App) initEngine() {
	cfg := a.cfg
	store := repository.NewStore(a.db)
	clk := clock.Real()

	a.publisher = queue.NewPublisher(cfg.Broker.URL, cfg.Broker.Queue, a.log.With("component", "publisher"))
	if cfg.Broker.Consume {
		a.consumer = queue.NewConsumer(
			cfg.Broker.URL,
			cfg.Broker.Queue,
			cfg.Broker.MaxAttempts,
			cfg.Broker.RetryDelay,
			render.NewTicketRenderer(),
			notify.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Pass, cfg.SMTP.From, a.log.With("component", "mailer")),
			a.publisher,
			a.log.With("component", "consumer"),
		)
	}

	events := service.NewEventService(store, a.publisher, clk, a.log, service.Options{
		ReservationTTL:         cfg.Engine.ReservationTTL,
		MaxTicketsPerOrganizer: cfg.Engine.MaxTicketsPerOrganizer,
		CodeAttempts:           cfg.Engine.CodeAttempts,
	})
	checkout := service.NewCheckoutService(store, a.publisher, clk, a.log, cfg.Engine.ReservationTTL)
	gateway := service.NewRedemptionGateway(store, a.publisher, clk, a.log, cfg.Engine.ReservationTTL)

	a.scheduler = scheduler.New(events.Reaper(), cfg.Engine.ReaperInterval, a.log.With("component", "reaper"))

	a.rdb = config.NewRedisClient(cfg.Redis)
	if a.rdb == nil {
		a.log.Warn("redis unavailable, rate limiting and caching disabled", "addr", cfg.Redis.Addr)
	}

	users := repository.NewUserRepo(a.db)
	tokens := repository.NewTokenRepo(a.db)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				a.log.Error("request", append(attrs, "err", v.Error)...)
				return nil
			}
			a.log.Info("request", attrs...)
			return nil
		},
	}))

	evh := handler.NewEventHandler(events, a.log)
	codes := handler.NewCodeHandler(gateway, a.log)
	limit := middleware.NewTokenBucket(cfg.RateLimit, a.rdb, a.log)
	cache := middleware.NewRedisCache(cfg.Cache, a.rdb, a.log)

	router.RegisterRoutes(e, a.db)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens, a.log), cfg.JWTSecret)
	router.RegisterPublic(e, evh, codes, limit, cache)
	router.RegisterManager(e, evh, handler.NewUserHandler(users, cfg.BcryptCost, a.log), cfg.JWTSecret)
	router.RegisterStaff(e, codes, handler.NewCheckoutHandler(checkout, a.log), cfg.JWTSecret)
	a.echo = e
}

// Run serves HTTP and runs the reaper and the notification consumer until
// SIGINT or SIGTERM, then shuts everything down.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		a.scheduler.Start(ctx)
	}()
	if a.consumer != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.consumer.Run(ctx)
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + a.cfg.Port
		a.log.Info("HTTP server starting", "addr", addr, "env", a.cfg.Env)
		if err := a.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.log.Info("shutdown signal received")
	case runErr = <-errCh:
		stop()
	}

	shutdownErr := a.shutdown(&wg)
	a.log.Info("app stopped")
	return errors.Join(runErr, shutdownErr)
}

// shutdown drains HTTP first, then waits for the workers so a consumer
// requeue never hits a closed publisher.
func (a *App) shutdown(workers *sync.WaitGroup) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	if err := a.echo.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http server shutdown: %w", err))
	}
	a.log.Info("HTTP server stopped")
	workers.Wait()

	a.publisher.Close()
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	if err := a.db.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close db: %w", err))
	}
	a.log.Info("database connection closed")
	return errors.Join(errs...)
}
