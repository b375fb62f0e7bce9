package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/codetesla51/attemptguard/config"
	"github.com/codetesla51/attemptguard/guard"
	"github.com/codetesla51/attemptguard/limiter"
	"github.com/codetesla51/attemptguard/observability"
	"github.com/codetesla51/attemptguard/store"
)

// app is everything a command needs, built from the loaded config.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	store    store.Store
	registry *prometheus.Registry
	limiter  *limiter.Limiter
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(config.New(cfgFile))
	if err != nil {
		return nil, err
	}

	logger, err := observability.NewLogger(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return nil, err
	}

	s, err := openStore(ctx, cfg.Store)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	l := limiter.New(cfg.LimiterSettings(), s,
		limiter.WithLogger(logger),
		limiter.WithMetrics(observability.NewMetrics(reg,
			guard.ActionLogin, guard.ActionSignup, guard.ActionPasswordReset)))

	logger.Debug("attemptguard initialised",
		zap.String("backend", cfg.Store.Backend),
		zap.Int("max_attempts", cfg.Limiter.MaxAttempts),
		zap.Duration("window", cfg.Limiter.Window),
		zap.Duration("lockout", cfg.Limiter.Lockout))

	return &app{cfg: cfg, logger: logger, store: s, registry: reg, limiter: l}, nil
}

func openStore(ctx context.Context, sc config.StoreConfig) (store.Store, error) {
	switch sc.Backend {
	case config.BackendRedis:
		rs, err := store.NewRedisStore(ctx, sc.RedisAddr)
		if err != nil {
			return nil, err
		}
		return rs, nil
	case config.BackendPostgres:
		ds, err := store.NewDatabaseStore(sc.PostgresDSN)
		if err != nil {
			return nil, err
		}
		return ds, nil
	case config.BackendMemory, "":
		return store.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", sc.Backend)
	}
}

// warnEphemeral flags one-shot commands run against the in-process ledger,
// which is gone when the command exits.
func (a *app) warnEphemeral(command string) {
	if a.cfg.Store.Backend != config.BackendMemory {
		return
	}
	a.logger.Warn("memory backend does not persist between runs, use redis or postgres",
		zap.String("command", command))
}

func (a *app) Close() {
	if c, ok := a.store.(io.Closer); ok {
		if err := c.Close(); err != nil {
			a.logger.Warn("failed to close store", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}
