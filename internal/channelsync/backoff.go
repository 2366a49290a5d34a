// internal/channelsync/backoff.go
package channelsync

import "time"

// MaxAttempts is the bound after which a failing sync job goes terminal.
const MaxAttempts = 5

// RetryDelay returns how long a job waits before its next run, keyed by
// the attempt counter AFTER the failed attempt was counted.
func RetryDelay(attempts int) time.Duration {
	switch {
	case attempts <= 1:
		return 1 * time.Minute
	case attempts == 2:
		return 5 * time.Minute
	case attempts == 3:
		return 15 * time.Minute
	case attempts == 4:
		return 30 * time.Minute
	default:
		return 60 * time.Minute
	}
}
