package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/travelswift/booking-system/config"
	"github.com/travelswift/booking-system/internal/adapter/http/handler"
	"github.com/travelswift/booking-system/internal/adapter/http/middleware"
	wshandler "github.com/travelswift/booking-system/internal/adapter/http/ws"
	"github.com/travelswift/booking-system/pkg/logger"
	wrap "github.com/travelswift/booking-system/pkg/logger/wrapper"
)

const serverIPAddress = "%s:%s"

// serviceName labels metrics and the health endpoint.
const serviceName = "booking"

type API struct {
	mux    *http.ServeMux
	server *http.Server
	routes *handlers
	m      *middleware.Middleware

	addr string
	cfg  config.Config
	log  logger.Logger
}

type handlers struct {
	auth    *handler.Auth
	session *handler.Session
	health  *handler.Health
	ws      *wshandler.SessionWsHandler
}

func New(
	cfg config.Config,
	flow handler.IdentityFlow,
	tokens handler.TokenProvider,
	sessions handler.SessionService,
	checker middleware.TokenChecker,
	wsHandler *wshandler.SessionWsHandler,
	log logger.Logger,
) (*API, error) {
	if flow == nil || sessions == nil {
		return nil, errors.New("session orchestrator is required")
	}
	if tokens == nil {
		return nil, errors.New("token service is required")
	}

	routes := &handlers{
		auth:    handler.NewAuth(flow, tokens, log),
		session: handler.NewSession(sessions, log),
		health:  handler.NewHealth(serviceName, log),
		ws:      wsHandler,
	}

	api := &API{
		mux:    http.NewServeMux(),
		routes: routes,
		m:      middleware.NewMiddleware(checker, log),
		addr:   fmt.Sprintf(serverIPAddress, "0.0.0.0", cfg.Server.Port),
		cfg:    cfg,
		log:    log,
	}

	setupRoutes(api.mux, api.routes, api.m)

	api.server = &http.Server{
		Addr:    api.addr,
		Handler: api.withMiddleware(),
	}

	return api, nil
}

func (a *API) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	ctx = wrap.WithAction(ctx, "http_server_stop")

	a.log.Debug(ctx, "shutting down HTTP server...", "address", a.addr)
	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}
	a.log.Debug(ctx, "shutting down HTTP server completed")

	return nil
}

func (a *API) Run(ctx context.Context, errCh chan<- error) {
	go func() {
		ctx = wrap.WithAction(ctx, "http_server_start")
		a.log.Info(ctx, "started http server", "address", a.addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("failed to start HTTP server: %w", err)
			return
		}
	}()
}

// withMiddleware applies the shared middleware chain to the mux. Auth
// only attaches the user; per-route guards decide what requires it.
func (a *API) withMiddleware() http.Handler {
	chain := a.m.Auth(a.mux)
	chain = a.m.Logging(chain)
	chain = a.m.Metrics(serviceName)(chain)
	chain = a.m.RequestID(chain)
	return a.m.Recover(chain)
}
