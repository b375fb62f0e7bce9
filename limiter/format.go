package limiter

import "fmt"

// FormatWaitTime renders a wait for display: seconds below a minute,
// otherwise minutes rounded up.
func FormatWaitTime(seconds int) string {
	if seconds < 60 {
		return plural(seconds, "second")
	}
	minutes := (seconds + 59) / 60
	return plural(minutes, "minute")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
