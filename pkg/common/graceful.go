package common

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
)

// ShutdownHook runs after a termination signal but before the HTTP server
// begins draining. A failing hook is logged, shutdown continues regardless.
type ShutdownHook func(ctx context.Context) error

// RunServerWithShutdown starts the server and blocks until SIGINT or SIGTERM,
// then runs the hooks in order and drains the server within the shutdown
// timeout.
func RunServerWithShutdown(server *http.Server, logger zerolog.Logger, shutdownTimeout time.Duration, hooks ...ShutdownHook) {
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("listen failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Info().Msg("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	for i, hook := range hooks {
		if hook == nil {
			continue
		}
		if err := hook(ctx); err != nil {
			logger.Warn().Err(err).Int("hook", i).Msg("shutdown hook failed")
		}
	}

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
		return
	}
	logger.Info().Msg("shutdown complete")
}
