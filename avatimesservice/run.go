// Package avatimesservice boots the HTTP service: configuration, storage,
// router and graceful shutdown.
package avatimesservice

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/avatimes/avatimes/internal/api"
	"github.com/avatimes/avatimes/internal/auth"
	"github.com/avatimes/avatimes/internal/blob"
	"github.com/avatimes/avatimes/internal/config"
	"github.com/avatimes/avatimes/internal/health"
	"github.com/avatimes/avatimes/internal/logger"
	"github.com/avatimes/avatimes/internal/services"
	"github.com/avatimes/avatimes/internal/sim"
	"github.com/avatimes/avatimes/internal/store"
)

// Run starts the AvaTimes HTTP server and blocks until shutdown or error.
func Run() error {
	log := logger.New("avatimes-service")

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}

	log.Info().
		Str("db_driver", cfg.DBDriver).
		Int("http_port", cfg.HTTPPort).
		Msg("AvaTimes service starting")

	ctx, stop := newServerContext()
	defer stop()

	kv, err := openBlobStore(cfg, log)
	if err != nil {
		log.Error().Stack().Err(err).Msg("Storage backend unavailable")
		return err
	}
	defer func() { _ = kv.Close() }()

	var opts []store.Option
	if !cfg.SeedDemoData {
		opts = append(opts, store.WithoutSeedData())
	}
	st := store.New(kv, log, opts...)
	authSvc := auth.NewService(st, log)

	var replies *sim.Replies
	if cfg.ReplyDelayMS > 0 {
		replies = sim.NewReplies(services.NewChatService(st), time.Duration(cfg.ReplyDelayMS)*time.Millisecond, log)
		defer replies.Stop()
	}

	var healthy func() bool
	if p, ok := kv.(health.Pinger); ok {
		monitor := health.NewMonitor("store", p, 2*time.Second, log)
		go monitor.Start(ctx, 30*time.Second)
		healthy = monitor.IsHealthy
	}

	router := api.NewRouter(api.Deps{
		KV:      kv,
		Store:   st,
		Auth:    authSvc,
		Replies: replies,
		Healthy: healthy,
	})

	server := newHTTPServer(ctx, cfg, router)
	errCh := serveHTTP(server, log, cfg)

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Stack().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Stack().Err(err).Msg("HTTP server failed")
		return err
	}
}

// openBlobStore selects the persistence backend from configuration.
func openBlobStore(cfg *config.Config, log zerolog.Logger) (blob.KV, error) {
	switch cfg.DBDriver {
	case "sqlite":
		log.Info().Str("path", cfg.SqlitePath).Msg("Opening sqlite store")
		return blob.OpenSqlite(cfg.SqlitePath)
	case "postgres":
		log.Info().Msg("Opening postgres store")
		return blob.OpenPostgres(cfg.PostgresDSN)
	case "memory":
		log.Warn().Msg("Using in-memory store; data will not survive restarts")
		return blob.NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER: %s", cfg.DBDriver)
	}
}

// newServerContext returns a context cancelled on SIGINT or SIGTERM.
func newServerContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func newHTTPServer(ctx context.Context, cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
}

func serveHTTP(server *http.Server, log zerolog.Logger, cfg *config.Config) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	return errCh
}
