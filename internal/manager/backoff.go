package manager

import "time"

// backoffPolicy gates re-attempts of Failed identifiers so a permanently
// broken source URI is not hot-looped.
type backoffPolicy struct {
	base        time.Duration
	factor      float64
	maxAttempts int
}

// delay returns the wait after the given consecutive failure count
// (1-based): base, base*factor, base*factor^2, ...
func (b backoffPolicy) delay(failures int) time.Duration {
	if failures < 1 {
		failures = 1
	}
	d := float64(b.base)
	for i := 1; i < failures; i++ {
		d *= b.factor
	}
	return time.Duration(d)
}

// retryState tracks the consecutive warm-up failures of one identifier.
type retryState struct {
	failures    int
	nextAttempt time.Time
	lastErr     error
}

// exhausted reports whether automatic retries are spent; past the cap the
// identifier stays Failed until an explicit Retry.
func (r *retryState) exhausted(maxAttempts int) bool {
	return r.failures >= maxAttempts
}
