package limiter

import "time"

// Result is the outcome of Check or Record for one action key.
type Result struct {
	// Limited is true while the key is locked out.
	Limited bool

	// WaitSeconds is how long until the lockout ends, rounded up.
	// Only meaningful when Limited is true.
	WaitSeconds int

	// Remaining is how many attempts are left in the current window.
	// Only meaningful when Limited is false.
	Remaining int
}

// RetryAfter returns WaitSeconds as a duration.
func (r Result) RetryAfter() time.Duration {
	return time.Duration(r.WaitSeconds) * time.Second
}

// ceilSeconds rounds d up to whole seconds.
func ceilSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}
