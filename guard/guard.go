// Package guard runs sensitive actions under an attempt limiter: check
// before acting, record every real attempt, clear only on success.
package guard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/codetesla51/attemptguard/limiter"
)

// Action keys for the guarded flows. A key names the logical operation,
// never a single invocation, so retries aggregate.
const (
	ActionLogin         = "login"
	ActionSignup        = "signup"
	ActionPasswordReset = "password-reset"
)

// LimitedError is returned when an action is refused because its key is
// locked out.
type LimitedError struct {
	Key  string
	Wait time.Duration
}

func (e *LimitedError) Error() string {
	seconds := int((e.Wait + time.Second - 1) / time.Second)
	return fmt.Sprintf("too many %s attempts, try again in %s", e.Key, limiter.FormatWaitTime(seconds))
}

// IsLimited reports whether err is, or wraps, a *LimitedError.
func IsLimited(err error) bool {
	var le *LimitedError
	return errors.As(err, &le)
}

type Guard struct {
	limiter *limiter.Limiter
	logger  *zap.Logger
}

func New(l *limiter.Limiter, logger *zap.Logger) *Guard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Guard{limiter: l, logger: logger}
}

// Do runs action under key. It returns a *LimitedError without running the
// action while key is locked out, and otherwise returns the action's error.
//
// Limiter backend failures fail open: the action still runs. The throttle is
// a mitigation, not an access control.
func (g *Guard) Do(ctx context.Context, key string, action func(context.Context) error) error {
	res, err := g.limiter.Check(ctx, key)
	if err != nil {
		g.logger.Error("attempt check failed, allowing action",
			zap.String("key", key),
			zap.Error(err))
	} else if res.Limited {
		g.logger.Warn("action refused during lockout",
			zap.String("key", key),
			zap.Int("wait_seconds", res.WaitSeconds))
		return &LimitedError{Key: key, Wait: res.RetryAfter()}
	}

	if _, err := g.limiter.Record(ctx, key); err != nil {
		g.logger.Error("failed to record attempt",
			zap.String("key", key),
			zap.Error(err))
	}

	if err := action(ctx); err != nil {
		return err
	}

	if err := g.limiter.Clear(ctx, key); err != nil {
		g.logger.Error("failed to clear attempts after success",
			zap.String("key", key),
			zap.Error(err))
	}
	return nil
}
