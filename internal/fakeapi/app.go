package fakeapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/dmitrijs2005/userdesk/internal/logging"
)

type App struct {
	config *Config
	logger logging.Logger
	server *Server
}

func NewApp(c *Config) (*App, error) {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := logging.NewTextLogger(os.Stdout, level)
	opts := append(c.Options(), WithLogger(logger))
	return &App{config: c, logger: logger, server: New(nil, opts...)}, nil
}

// Run serves until ctx is done, then shuts down gracefully.
func (app *App) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", app.config.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", app.config.Addr, err)
	}
	return app.Serve(ctx, ln)
}

func (app *App) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{Handler: app.server.Handler(), ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		app.logger.Info(ctx, "Stopping fake API...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	app.logger.Info(ctx, "Starting fake API", "address", ln.Addr().String(), "users", app.server.Store().Len())
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
