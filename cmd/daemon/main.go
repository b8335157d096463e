package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/nostrvine/playback/internal/backend"
	"github.com/nostrvine/playback/internal/config"
	"github.com/nostrvine/playback/internal/domain"
	"github.com/nostrvine/playback/internal/fetcher"
	"github.com/nostrvine/playback/internal/manager"
	"github.com/nostrvine/playback/internal/metrics"
	"github.com/nostrvine/playback/internal/placeholder"
	"github.com/nostrvine/playback/internal/pool"
	"github.com/nostrvine/playback/internal/processor"
	"github.com/nostrvine/playback/internal/scheduler"
)

// AppOptions assembles the dependency graph. Kept as a variable so tests
// can validate the graph and boot the whole app.
var AppOptions = fx.Options(
	// Logger configuration
	fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
		return &fxevent.ZapLogger{Logger: log}
	}),

	// Provide dependencies
	fx.Provide(
		newLogger,
		config.NewAppConfig,
		func(c *config.AppConfig) domain.Config { return c },
		metrics.New,
		func(logger *zap.Logger) domain.PosterFetcher { return fetcher.NewHTTPPosterFetcher(logger) },
		func(logger *zap.Logger) domain.ImageProcessor { return processor.NewBlurPlaceholder(logger) },
		placeholder.NewService,
		func(s *placeholder.Service) manager.PlaceholderWarmer { return s },
		func(logger *zap.Logger) domain.DecoderBackend { return backend.NewStubBackend(logger) },
		func(logger *zap.Logger) domain.FeedSource { return backend.NewStubFeed(logger) },
		newScheduler,
		newSlotPool,
		manager.New,
	),

	// Lifecycle hooks
	fx.Invoke(registerHooks),
)

func main() {
	app := fx.New(AppOptions)

	// Handle graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		panic(err)
	}

	<-ctx.Done()

	if err := app.Stop(context.Background()); err != nil {
		panic(err)
	}
}

// newLogger creates a new zap logger instance
func newLogger() (*zap.Logger, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return logger, nil
}

func newScheduler(cfg domain.Config) *scheduler.Scheduler {
	return scheduler.New(scheduler.Config{
		Near: cfg.WindowNear(),
		Far:  cfg.WindowFar(),
	})
}

func newSlotPool(logger *zap.Logger, cfg domain.Config, met *metrics.Metrics) *pool.SlotPool {
	return pool.New(logger, cfg.PoolCapacity(), met)
}

// registerHooks wires the manager and the metrics endpoint into the fx
// lifecycle.
func registerHooks(
	lc fx.Lifecycle,
	logger *zap.Logger,
	appCfg *config.AppConfig,
	m *manager.Manager,
	met *metrics.Metrics,
	slotPool *pool.SlotPool,
	placeholders *placeholder.Service,
	feed domain.FeedSource,
) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", met.Handler(func() {
		met.SetSlotsInUse(slotPool.InUse())
	}))
	server := &http.Server{Handler: mux}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := m.Start(ctx); err != nil {
				return err
			}
			// Seed the manager with the first feed page so the window
			// has something to schedule.
			if m.CanLoadMore() {
				descs, err := feed.LoadMore(ctx)
				if err != nil {
					return err
				}
				for _, d := range descs {
					m.Register(d)
				}
				m.SetViewportIndex(0)
				logger.Info("Seeded initial feed page",
					zap.Int("videos", len(descs)))
			}
			ln, err := net.Listen("tcp", appCfg.MetricsAddr())
			if err != nil {
				return err
			}
			logger.Info("Metrics endpoint listening",
				zap.String("addr", ln.Addr().String()))
			go func() {
				if err := server.Serve(ln); err != nil && err != http.ErrServerClosed {
					logger.Error("Metrics server failed", zap.Error(err))
				}
			}()
			logger.Info("Playback daemon started")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := server.Shutdown(ctx); err != nil {
				logger.Warn("Metrics server shutdown", zap.Error(err))
			}
			placeholders.Close()
			err := m.Stop(ctx)
			logger.Info("Shutting down")
			return err
		},
	})
}
