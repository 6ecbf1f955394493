package app

import (
	"context"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/travelswift/booking-system/config"
	"github.com/travelswift/booking-system/internal/adapter/camera"
	httpserver "github.com/travelswift/booking-system/internal/adapter/http/server"
	wshandler "github.com/travelswift/booking-system/internal/adapter/http/ws"
	"github.com/travelswift/booking-system/internal/adapter/postgres"
	rabbitadapter "github.com/travelswift/booking-system/internal/adapter/rabbit"
	redisadapter "github.com/travelswift/booking-system/internal/adapter/redis"
	"github.com/travelswift/booking-system/internal/service/identity"
	"github.com/travelswift/booking-system/internal/service/ledger"
	"github.com/travelswift/booking-system/internal/service/orchestrator"
	"github.com/travelswift/booking-system/internal/service/payment"
	"github.com/travelswift/booking-system/internal/service/search"
	"github.com/travelswift/booking-system/internal/service/ticket"
	"github.com/travelswift/booking-system/pkg/logger"
	postgresclient "github.com/travelswift/booking-system/pkg/postgres"
	rabbitclient "github.com/travelswift/booking-system/pkg/rabbit"
	redisclient "github.com/travelswift/booking-system/pkg/redis"
	"github.com/travelswift/booking-system/pkg/trm"
	ws "github.com/travelswift/booking-system/pkg/wsHub"
)

// App assembles the booking service: the session orchestrator, its
// simulated upstreams and whatever external infrastructure the config
// enables. Postgres, redis and rabbitmq are all optional; the service
// falls back to in-memory equivalents when they are disabled.
type App struct {
	postgresDB  *postgresclient.PostgreDB
	redisClient *redisclient.Client
	rabbitMQ    *rabbitclient.RabbitMQ
	httpServer  *httpserver.API

	cfg config.Config
	log logger.Logger
}

func NewApplication(ctx context.Context, cfg config.Config, log logger.Logger) (*App, error) {
	app := &App{
		cfg: cfg,
		log: log,
	}

	// Persistence. The ledger and the refresh token store share the
	// postgres pool when it is enabled.
	var (
		bookingStore ledger.Store = ledger.NewMemoryStore()
		refreshRepo  identity.RefreshTokenRepo
		txManager    trm.TxManager
	)
	if cfg.Database.Enabled {
		db, err := postgresclient.New(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		app.postgresDB = db
		bookingStore = postgres.NewBookingRepo(db.Pool)
		refreshRepo = postgres.NewRefreshTokenRepo(db.Pool)
		txManager = trm.New(db.Pool)
	}

	var sessionStore orchestrator.SessionStore = orchestrator.NewMemorySessionStore()
	if cfg.Redis.Enabled {
		client, err := redisclient.New(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		app.redisClient = client
		sessionStore = redisadapter.NewSessionStore(client)
	}

	var events orchestrator.EventPublisher
	if cfg.RabbitMQ.Enabled {
		client, err := rabbitclient.New(ctx, cfg.RabbitMQ.GetDSN(), log)
		if err != nil {
			return nil, err
		}
		app.rabbitMQ = client

		broker, err := rabbitadapter.NewBookingBroker(ctx, client, log)
		if err != nil {
			return nil, err
		}
		events = broker
	}

	// WebSocket feed for async search and payment outcomes.
	hub := ws.NewConnHub(log)
	wsHandler := wshandler.NewSessionWsHandler(hub, log)

	device := camera.NewMockDevice(true)

	// Services
	verifier := identity.NewVerifier(identity.NewMemoryCodeStore(), log)
	tokenSvc := identity.NewTokenService(
		cfg.Auth.JWTSecret,
		refreshRepo,
		txManager,
		cfg.Auth.RefreshTokenTTL,
		cfg.Auth.AccessTokenTTL,
		log,
	)

	engine := search.NewEngine(search.RealSleeper{}, cfg.Simulation.SearchLatency, log)
	processor := payment.NewProcessor(
		search.RealSleeper{},
		rand.New(rand.NewSource(time.Now().UnixNano())),
		device,
		cfg.Simulation.UPILatency,
		cfg.Simulation.UPIDeclineRate,
		time.Now,
		log,
	)

	orch := orchestrator.New(orchestrator.Deps{
		Identity: verifier,
		Searcher: engine,
		Payer:    processor,
		History:  ledger.New(bookingStore, log),
		Tickets:  ticket.NewRenderer(log),
		Store:    sessionStore,
		Notifier: wsHandler,
		Events:   events,
		Device:   device,
		Log:      log,
	})

	server, err := httpserver.New(cfg, orch, tokenSvc, orch, tokenSvc, wsHandler, log)
	if err != nil {
		return nil, err
	}
	app.httpServer = server

	return app, nil
}

func (a *App) Run(ctx context.Context) error {
	defer func() {
		a.close(ctx)
		a.log.Info(ctx, "booking service closed")
	}()

	errCh := make(chan error, 1)
	a.httpServer.Run(ctx, errCh)

	// Waiting signal
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	a.log.Info(ctx, "booking service started")
	select {
	case errRun := <-errCh:
		return errRun
	case sig := <-shutdownCh:
		a.log.Info(ctx, "shutting down application", "signal", sig.String())
		return nil
	}
}

func (a *App) close(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	if err := a.httpServer.Stop(ctx); err != nil {
		a.log.Error(ctx, "failed to shutdown HTTP server", err)
	}

	if a.rabbitMQ != nil {
		if err := a.rabbitMQ.Close(ctx); err != nil {
			a.log.Error(ctx, "failed to close rabbitmq connection", err)
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error(ctx, "failed to close redis client", err)
		}
	}

	if a.postgresDB != nil {
		a.postgresDB.Pool.Close()
	}
}
