package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/target/text2ture/config"
	httpx "github.com/target/text2ture/internal/http"
)

const httpShutdownTimeout = 10 * time.Second

// ErrDrainTimeout is returned when queued jobs do not finish within the executor shutdown timeout.
var ErrDrainTimeout = errors.New("executor drain timed out")

// runner is a long-lived background component stopped by cancelling ctx.
type runner interface {
	Run(ctx context.Context) error
}

// runtimeConfig groups what serve needs; Listener is optional and mainly for tests.
type runtimeConfig struct {
	Server          *http.Server
	Listener        net.Listener
	Executor        runner
	ShutdownTimeout time.Duration
	Logger          *slog.Logger
}

// NewHTTPServer builds the API server for services.
func NewHTTPServer(cfg *config.AppConfig, services *ServiceContainer, logger *slog.Logger) *http.Server {
	rs := httpx.RouterServices{
		Submitter:             services.Submitter,
		Status:                services.Status,
		Executor:              services.Executor,
		ObjectsRoot:           services.Store.Root(),
		ObjectsURLPrefix:      cfg.Storage.ObjectsURLPrefix,
		TranscriberConfigured: cfg.Transcriber.IsConfigured(),
		CORSAllowedOrigins:    cfg.HTTP.CORSAllowedOrigins,
		MaxBodyBytes:          cfg.HTTP.MaxBodyBytes,
		Logger:                logger,
	}
	if services.Journal != nil {
		rs.Journal = services.Journal
	}

	return &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           httpx.NewRouter(rs),
		ReadHeaderTimeout: cfg.HTTP.ReadTimeout,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
	}
}

// Run serves HTTP and executes jobs until ctx is cancelled. On shutdown the
// server stops accepting requests first, then the executor drains its queue
// for at most cfg.Executor.ShutdownTimeout.
func Run(ctx context.Context, cfg *config.AppConfig, services *ServiceContainer, logger *slog.Logger) error {
	if cfg == nil || services == nil {
		return errors.New("config and services are required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return serve(ctx, runtimeConfig{
		Server:          NewHTTPServer(cfg, services, logger),
		Executor:        services.Executor,
		ShutdownTimeout: cfg.Executor.ShutdownTimeout,
		Logger:          logger,
	})
}

func serve(ctx context.Context, rc runtimeConfig) error {
	logger := rc.Logger
	if logger == nil {
		logger = slog.Default()
	}

	// The executor outlives the request context so it can drain after HTTP stops.
	execCtx, stopExec := context.WithCancel(context.WithoutCancel(ctx))
	defer stopExec()
	execDone := make(chan error, 1)
	go func() { execDone <- rc.Executor.Run(execCtx) }()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.InfoContext(ctx, "starting HTTP server", "addr", rc.Server.Addr)
		var err error
		if rc.Listener != nil {
			err = rc.Server.Serve(rc.Listener)
		} else {
			err = rc.Server.ListenAndServe()
		}
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), httpShutdownTimeout)
		defer cancel()
		if err := rc.Server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	})
	httpErr := g.Wait()

	logger.Info("draining executor", "timeout", rc.ShutdownTimeout)
	stopExec()
	timer := time.NewTimer(rc.ShutdownTimeout)
	defer timer.Stop()

	select {
	case err := <-execDone:
		if err != nil {
			return errors.Join(httpErr, fmt.Errorf("executor: %w", err))
		}
		logger.Info("executor stopped")
		return httpErr
	case <-timer.C:
		logger.Error("executor did not drain before timeout", "timeout", rc.ShutdownTimeout)
		return errors.Join(httpErr, ErrDrainTimeout)
	}
}
