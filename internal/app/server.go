package app

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
)

// Start serves HTTP on the configured address. The returned channel closes
// once a termination signal arrives, the server fails, or Stop is called.
func (a *App) Start() <-chan struct{} {
	done := make(chan struct{})

	go func() {
		slog.Info("http server listening", "address", a.httpServer.Addr)
		if err := a.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server stopped unexpectedly", "error", err)
			a.cancel()
		}
	}()

	go func() {
		ctx, stop := signal.NotifyContext(a.ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
		defer stop()

		<-ctx.Done()
		close(done)
		slog.Info("shutdown requested")
	}()

	return done
}

// Serve runs the HTTP server on l. The error channel yields the result of
// http.Server.Serve, which is http.ErrServerClosed after Stop.
func (a *App) Serve(l net.Listener) <-chan error {
	errs := make(chan error, 1)
	go func() {
		defer close(errs)
		errs <- a.httpServer.Serve(l)
	}()
	return errs
}

// Stop shuts the HTTP server down, then runs the closers in order. Failures
// are logged and do not stop the remaining closers.
func (a *App) Stop(ctx context.Context) {
	a.cancel()

	if a.httpServer != nil {
		if err := a.httpServer.Shutdown(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to close resource", "name", "http server", "error", err)
		}
	}

	for _, c := range a.closers {
		if err := c.fn(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to close resource", "name", c.name, "error", err)
		}
	}

	slog.InfoContext(ctx, "application stopped")
}
