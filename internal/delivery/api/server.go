package api

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"academy/config"
	"academy/internal/delivery"
	apimiddleware "academy/internal/delivery/api/middleware"
	"academy/internal/delivery/api/router"
	"academy/internal/delivery/api/validator"
	"academy/internal/delivery/middleware"
	"academy/internal/domain/lifecycle"
	"academy/internal/domain/service"
	"academy/internal/errors"
	"academy/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"
	"golang.org/x/net/http2"
)

const healthPath = "/healthz"

type apiServer struct {
	cfg    *config.Config
	logger *slog.Logger
	server *echo.Echo
}

// ServerParams holds dependencies for HTTP server, injected by Fx.
type ServerParams struct {
	fx.In

	Lc           fx.Lifecycle
	Cfg          *config.Config
	Logger       *slog.Logger
	Metrics      *metrics.Metrics
	Availability service.StoreAvailability
	RouterParams router.RouterParams
}

func NewServer(params ServerParams) (delivery.Delivery, error) {
	echoServer := NewEcho(params.Cfg, params.Logger, params.Metrics, params.Availability, params.RouterParams)

	srv := &apiServer{
		cfg:    params.Cfg,
		logger: params.Logger,
		server: echoServer,
	}

	params.Lc.Append(fx.Hook{
		OnStop: srv.stop,
	})

	return srv, nil
}

// NewEcho assembles the middleware chain and the routes without binding a listener.
func NewEcho(
	cfg *config.Config,
	logger *slog.Logger,
	m *metrics.Metrics,
	availability service.StoreAvailability,
	routerParams router.RouterParams,
) *echo.Echo {
	echoServer := echo.New()
	echoServer.HideBanner = true
	echoServer.HidePort = true
	echoServer.Server.ReadTimeout = cfg.HTTP.Timeouts.ReadTimeout
	echoServer.Server.ReadHeaderTimeout = cfg.HTTP.Timeouts.ReadHeaderTimeout
	echoServer.Server.WriteTimeout = cfg.HTTP.Timeouts.WriteTimeout
	echoServer.Server.IdleTimeout = cfg.HTTP.Timeouts.IdleTimeout

	metricsPath := ""
	if cfg.Metrics != nil && cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}

	// Set up middleware in correct order
	// 1. Recover middleware first (to catch panics early)
	echoServer.Use(echomiddleware.Recover())

	// 2. Request ID middleware (must be before logger to include in logs)
	requestIDMiddleware := middleware.NewRequestIDMiddleware(logger)
	echoServer.Use(requestIDMiddleware.Process)

	// 3. Metrics wrap the logger, which renders errors, so they see the final status
	metricsMiddleware := apimiddleware.NewMetricsMiddleware(m)
	echoServer.Use(metricsMiddleware.Observe)

	// 4. Logger middleware
	loggerMiddleware := middleware.NewLoggerMiddleware(logger, cfg, healthPath, metricsPath)
	echoServer.Use(loggerMiddleware.Handle)

	// 5. CORS only for the configured origins; without any, cross-origin calls are left to the browser to block
	if len(cfg.HTTP.CORS.AllowOrigins) > 0 {
		echoServer.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
			AllowOrigins: cfg.HTTP.CORS.AllowOrigins,
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		}))
	}

	// 6. Request body size limit
	echoServer.Use(echomiddleware.BodyLimit(cfg.HTTP.MaxRequestBodySize))

	// 7. Reject API calls while the store is unreachable
	availabilityMiddleware := apimiddleware.NewAvailabilityMiddleware(availability, router.APIPrefix+"/")
	echoServer.Use(availabilityMiddleware.Gate)

	// Set up centralized error handler
	errorMiddleware := apimiddleware.NewErrorMiddleware(logger)
	echoServer.HTTPErrorHandler = errorMiddleware.HandleHTTPError

	// Set up validator
	echoServer.Validator = validator.New()

	if metricsPath != "" {
		echoServer.GET(metricsPath, echo.WrapHandler(m.Handler()))
	}

	r := router.NewRouter(routerParams)
	r.RegisterRoutes(echoServer)

	return echoServer
}

func (s *apiServer) Serve(ctx context.Context) error {
	hostPort := net.JoinHostPort("0.0.0.0", strconv.Itoa(s.cfg.HTTP.Port))
	s.logger.Info("Starting API HTTP server", slog.String("host_port", hostPort))
	h2Server := &http2.Server{
		IdleTimeout: s.cfg.HTTP.Timeouts.IdleTimeout,
	}
	if err := s.server.StartH2CServer(hostPort, h2Server); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.WithStack(err)
	}

	return nil
}

func (s *apiServer) stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	s.logger.Info("Shutting down API HTTP server")

	return errors.WithStack(s.server.Shutdown(shutdownCtx))
}
