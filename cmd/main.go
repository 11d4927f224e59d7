package main

//
//  @title           technical API
//  @version         1.0
//  @description     Per-ticker technical data served from flat files.
//  @termsOfService  https://github.com/guttosm/technical
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/technical
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8000
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        technical
//  @tag.description Latest and daily technical data per ticker
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/guttosm/technical/docs" // swagger docs
	"github.com/guttosm/technical/internal/logger"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//   - writeTimeout (time.Duration): Upper bound for writing a response; kept above the request timeout.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string, writeTimeout time.Duration) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown blocks until SIGINT/SIGTERM, then shuts the server down
// and runs cleanup.
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)
	<-quit

	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Error().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// main is the entry point of the technical service.
//
// Commands:
//   - serve:           starts the REST API.
//   - summary:         prints the /technical body to stdout.
//   - daily <ticker>:  prints the /technical/daily/<ticker> body to stdout.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
