// Package limiter throttles repeated attempts of a sensitive action, such as
// signing in, per action key.
//
// Attempts accumulate in a window. The attempt that reaches MaxAttempts
// locks the key out for Lockout, during which Check reports it as limited.
// Expiry of windows and lockouts is detected lazily on access; nothing runs
// in the background.
//
// Callers check before acting, record every real attempt, and clear the key
// only after a successful outcome. See package guard for a wrapper that
// enforces this.
package limiter

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/codetesla51/attemptguard/observability"
	"github.com/codetesla51/attemptguard/store"
)

// ErrEmptyKey is returned when an operation is called without an action key.
var ErrEmptyKey = errors.New("action key must not be empty")

// ttlGrace keeps backend entries slightly past their logical expiry so a
// store never evicts an entry the policy still considers live.
const ttlGrace = time.Second

type Limiter struct {
	cfg     Config
	store   store.Store
	now     func() time.Time
	logger  *zap.Logger
	metrics *observability.Metrics
	mu      sync.Mutex
}

type Option func(*Limiter)

// WithClock replaces time.Now as the limiter's time source.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) { l.now = now }
}

func WithLogger(logger *zap.Logger) Option {
	return func(l *Limiter) { l.logger = logger }
}

func WithMetrics(m *observability.Metrics) Option {
	return func(l *Limiter) { l.metrics = m }
}

// New creates a limiter over s. It panics if cfg is invalid.
func New(cfg Config, s store.Store, opts ...Option) *Limiter {
	if err := cfg.Validate(); err != nil {
		panic(err.Error())
	}
	l := &Limiter{
		cfg:    cfg,
		store:  s,
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Limiter) Config() Config {
	return l.cfg
}

// Check reports whether key may attempt its action now. It never records an
// attempt and never writes to the store: expired windows and lockouts are
// reported as fresh and left for the store TTL or the next Record to clean up.
func (l *Limiter) Check(ctx context.Context, key string) (Result, error) {
	if key == "" {
		return Result{}, ErrEmptyKey
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	s, found, err := l.load(ctx, key)
	if err != nil {
		return Result{}, err
	}

	res := l.evaluate(s, found, now)
	l.metrics.Check(res.Limited)
	if res.Limited {
		l.logger.Debug("attempt blocked by lockout",
			zap.String("key", key),
			zap.Int("wait_seconds", res.WaitSeconds))
	}
	return res, nil
}

// Record counts one attempt for key. The attempt that reaches MaxAttempts
// starts a lockout and is reported as limited.
func (l *Limiter) Record(ctx context.Context, key string) (Result, error) {
	if key == "" {
		return Result{}, ErrEmptyKey
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	s, found, err := l.load(ctx, key)
	if err != nil {
		return Result{}, err
	}

	if !found || l.expired(s, now) {
		s = store.State{Attempts: 1, FirstAttempt: now}
	} else {
		s.Attempts++
	}

	var res Result
	if s.Attempts >= l.cfg.MaxAttempts {
		s.LockedUntil = now.Add(l.cfg.Lockout)
		res = Result{Limited: true, WaitSeconds: ceilSeconds(l.cfg.Lockout)}
	} else {
		res = Result{Remaining: l.cfg.MaxAttempts - s.Attempts}
	}

	if err := l.store.Set(ctx, key, s, l.ttl(s, now)); err != nil {
		return Result{}, fmt.Errorf("record attempt for %s: %w", key, err)
	}

	l.metrics.Attempt(key)
	if res.Limited {
		l.metrics.Lockout(key)
		l.logger.Warn("attempt limit reached, key locked out",
			zap.String("key", key),
			zap.Int("attempts", s.Attempts),
			zap.Duration("lockout", l.cfg.Lockout))
	}
	return res, nil
}

// Clear forgets all attempts for key. Clearing an unknown key is a no-op.
func (l *Limiter) Clear(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("clear %s: %w", key, err)
	}
	l.metrics.Clear(key)
	return nil
}

func (l *Limiter) load(ctx context.Context, key string) (store.State, bool, error) {
	s, err := l.store.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return store.State{}, false, nil
	}
	if err != nil {
		return store.State{}, false, fmt.Errorf("load attempts for %s: %w", key, err)
	}
	return s, true, nil
}

func (l *Limiter) evaluate(s store.State, found bool, now time.Time) Result {
	if !found || l.expired(s, now) {
		return Result{Remaining: l.cfg.MaxAttempts}
	}
	if s.Locked(now) {
		return Result{Limited: true, WaitSeconds: ceilSeconds(s.LockedUntil.Sub(now))}
	}
	return Result{Remaining: max(l.cfg.MaxAttempts-s.Attempts, 0)}
}

// expired reports whether s no longer constrains the key: either its lockout
// has ended, or it was never locked and its window has passed.
func (l *Limiter) expired(s store.State, now time.Time) bool {
	if !s.LockedUntil.IsZero() {
		return !now.Before(s.LockedUntil)
	}
	return now.Sub(s.FirstAttempt) > l.cfg.Window
}

func (l *Limiter) ttl(s store.State, now time.Time) time.Duration {
	end := s.FirstAttempt.Add(l.cfg.Window)
	if !s.LockedUntil.IsZero() {
		end = s.LockedUntil
	}
	return end.Sub(now) + ttlGrace
}
