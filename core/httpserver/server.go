// Package httpserver runs the inbound HTTP server with graceful shutdown.
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/m3rciful/flagbot/core/logger"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// Options controls the behaviour of Run.
type Options struct {
	Listen  string
	Port    int
	Handler http.Handler

	OnStart func(ctx context.Context) error
	OnStop  func(ctx context.Context) error
}

// Run serves HTTP until the provided context is done, then shuts down
// gracefully, draining in-flight requests.
func Run(ctx context.Context, opts Options) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Handler == nil {
		return fmt.Errorf("httpserver: nil handler provided")
	}

	addr := net.JoinHostPort(opts.Listen, strconv.Itoa(opts.Port))
	srv := &http.Server{
		Addr:              addr,
		Handler:           opts.Handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	logger.Info(ctx, "http", "listen",
		slog.String("host", opts.Listen),
		slog.Int("port", opts.Port),
	)

	if opts.OnStart != nil {
		if err := opts.OnStart(ctx); err != nil {
			return err
		}
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	var runErr error
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			runErr = fmt.Errorf("httpserver: shutdown: %w", err)
		}
		<-errCh
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			runErr = fmt.Errorf("httpserver: serve: %w", err)
		}
	}

	var stopErr error
	if opts.OnStop != nil {
		stopErr = opts.OnStop(context.Background())
	}

	if runErr != nil {
		return runErr
	}
	return stopErr
}
