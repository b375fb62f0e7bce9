package limiter

import (
	"fmt"
	"time"
)

const (
	DefaultMaxAttempts = 5
	DefaultWindow      = 60 * time.Second
	DefaultLockout     = 5 * time.Minute
)

// Config sets the thresholds of the attempt throttle.
type Config struct {
	// MaxAttempts is how many attempts a key may record inside one window.
	// The attempt that reaches it starts the lockout.
	MaxAttempts int

	// Window is how long attempts accumulate before the count starts over.
	Window time.Duration

	// Lockout is how long a key is rejected once MaxAttempts is reached.
	Lockout time.Duration
}

func DefaultConfig() Config {
	return Config{
		MaxAttempts: DefaultMaxAttempts,
		Window:      DefaultWindow,
		Lockout:     DefaultLockout,
	}
}

func (c Config) Validate() error {
	if c.MaxAttempts < 1 {
		return fmt.Errorf("max attempts must be at least 1, got %d", c.MaxAttempts)
	}
	if c.Window <= 0 {
		return fmt.Errorf("window must be greater than 0, got %s", c.Window)
	}
	if c.Lockout <= 0 {
		return fmt.Errorf("lockout must be greater than 0, got %s", c.Lockout)
	}
	return nil
}
