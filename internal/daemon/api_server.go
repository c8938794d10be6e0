package daemon

import (
	"context"
	stdErrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/hashicorp/go-hclog"

	"github.com/cloudnook/mcpgw/internal/api"
	"github.com/cloudnook/mcpgw/internal/cmd"
	"github.com/cloudnook/mcpgw/internal/errors"
)

// APIServer serves the console API over HTTP.
// NewAPIServer should be used to create instances of APIServer.
type APIServer struct {
	// Logger for API server operations.
	logger hclog.Logger

	// Services the routes read from.
	services api.Services

	// Addr specifies the network address to bind.
	addr string

	// CORS configuration for cross-origin requests.
	cors CORSConfig

	// ShutdownTimeout specifies how long to wait for graceful shutdown.
	shutdownTimeout time.Duration

	// RequestTimeout bounds a single request.
	requestTimeout time.Duration
}

// NewAPIServer creates a new API server with the provided dependencies and options.
// Applies default options first, then user-provided options to ensure all fields have valid values.
func NewAPIServer(deps APIDependencies, opt ...APIOption) (*APIServer, error) {
	if err := deps.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dependencies for API server: %w", err)
	}

	apiOpts, err := NewAPIOptions(opt...)
	if err != nil {
		return nil, fmt.Errorf("invalid API options: %w", err)
	}

	return &APIServer{
		logger:          deps.Logger.Named("api"),
		services:        deps.Services,
		addr:            deps.Addr,
		cors:            apiOpts.CORS,
		shutdownTimeout: apiOpts.ShutdownTimeout,
		requestTimeout:  apiOpts.RequestTimeout,
	}, nil
}

// Handler builds the HTTP handler serving every API route.
func (a *APIServer) Handler() (http.Handler, string, error) {
	mux := chi.NewMux()
	mux.Use(middleware.StripSlashes)
	mux.Use(middleware.Timeout(a.requestTimeout))

	if a.cors.Enabled {
		a.applyCORS(mux)
	}

	config := huma.DefaultConfig("mcpgw console API", cmd.Version())
	config.Transformers = append(config.Transformers, api.Transformers()...)
	router := humachi.New(mux, config)

	// Configure the error handling wrapping.
	huma.NewErrorWithContext = errorHandler(a.logger)

	prefix, err := api.RegisterRoutes(router, a.services)
	if err != nil {
		return nil, "", err
	}

	return mux, prefix, nil
}

// Start starts the API server and blocks until the context is canceled or an error occurs.
func (a *APIServer) Start(ctx context.Context) error {
	handler, prefix, err := a.Handler()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              a.addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("Starting API server", "address", a.addr, "prefix", prefix)
		if err := srv.ListenAndServe(); err != nil && !stdErrors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()
		a.logger.Info("Shutting down API server...")
		_ = srv.Shutdown(shutdownCtx)
		a.logger.Info("Shutdown complete")
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// applyCORS applies CORS middleware to the router based on the configured options.
func (a *APIServer) applyCORS(mux *chi.Mux) {
	a.logger.Info("Enabling CORS", "origins", a.cors.AllowOrigins)

	corsOptions := cors.Options{
		AllowedOrigins:   a.cors.AllowOrigins,
		AllowedMethods:   a.cors.AllowMethods,
		AllowedHeaders:   a.cors.AllowHeaders,
		ExposedHeaders:   a.cors.ExposeHeaders,
		AllowCredentials: a.cors.AllowCredentials,
		MaxAge:           int(a.cors.MaxAge.Seconds()),
	}

	// Wildcard origins cannot be combined with credentials.
	for i, origin := range corsOptions.AllowedOrigins {
		if origin == "*" {
			corsOptions.AllowedOrigins = []string{"*"}
			corsOptions.AllowCredentials = false
			break
		}
		corsOptions.AllowedOrigins[i] = strings.TrimSpace(origin)
	}

	mux.Use(cors.Handler(corsOptions))
}

// mapError maps application domain errors to appropriate HTTP status codes.
//
// This function is the central place where domain errors from internal/errors are converted to HTTP responses.
// Every error defined in internal/errors/errors.go should have an explicit case here,
// otherwise it falls through to the default case which returns HTTP 500.
//
// Mapping guidelines:
//   - 400: Client errors (bad input, invalid requests)
//   - 404: Resource not found errors
//   - 501: Operations the gateway backend cannot perform
//   - 502: Gateway backend failures
//   - 504: Gateway backend timeouts
//   - 500: Unexpected internal errors (default case)
func mapError(logger hclog.Logger, err error) huma.StatusError {
	switch {
	case stdErrors.Is(err, errors.ErrBadRequest):
		return huma.Error400BadRequest(err.Error())
	case stdErrors.Is(err, errors.ErrMissingParameter):
		return huma.Error400BadRequest(err.Error())
	case stdErrors.Is(err, errors.ErrInvalidArguments):
		return huma.Error400BadRequest(err.Error())
	case stdErrors.Is(err, errors.ErrInvalidRequest):
		return huma.Error400BadRequest(err.Error())
	case stdErrors.Is(err, errors.ErrServerNotFound):
		return huma.Error404NotFound(err.Error())
	case stdErrors.Is(err, errors.ErrToolNotFound):
		return huma.Error404NotFound(err.Error())
	case stdErrors.Is(err, errors.ErrMethodNotSupported):
		return huma.Error501NotImplemented(err.Error())
	case stdErrors.Is(err, context.DeadlineExceeded):
		// Timeouts are transport failures too, so this case must come first.
		logger.Warn("Gateway backend timed out", "error", err)
		return huma.Error504GatewayTimeout("Gateway backend timed out", err)
	case stdErrors.Is(err, errors.ErrBusiness):
		logger.Error("Gateway backend rejected request", "error", err)
		return huma.Error502BadGateway(err.Error(), err)
	case stdErrors.Is(err, errors.ErrTransport):
		logger.Error("Gateway backend unreachable", "error", err)
		return huma.Error502BadGateway("Gateway backend unreachable", err)
	default:
		logger.Error("Unexpected error serving console API", "error", err)
		return huma.Error500InternalServerError("Internal server error", err)
	}
}

// errorHandler wraps error handling for the application when converting to API friendly errors.
// It allows the logger to be supplied to functions that resolve huma.StatusError,
// and it supports different behaviors based on the variadic errors parameter.
func errorHandler(logger hclog.Logger) func(_ huma.Context, status int, msg string, errs ...error) huma.StatusError {
	return func(_ huma.Context, status int, msg string, errs ...error) huma.StatusError {
		switch len(errs) {
		case 0:
			return huma.NewError(status, msg)
		case 1:
			// Validation errors carry huma detail and keep huma's status.
			if status == http.StatusUnprocessableEntity || isDetail(errs[0]) {
				return huma.NewError(status, msg, errs...)
			}
			return mapError(logger, errs[0])
		default:
			if status == http.StatusUnprocessableEntity || isDetail(errs[0]) {
				return huma.NewError(status, msg, errs...)
			}
			return mapError(logger, stdErrors.Join(errs...))
		}
	}
}

func isDetail(err error) bool {
	_, ok := err.(huma.ErrorDetailer)
	return ok
}
