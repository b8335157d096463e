// Package scheduler computes which feed positions deserve a decoder slot,
// in priority order, from the current viewport index. It is pure and
// synchronous: O(window size) per call, independent of feed length.
package scheduler

// Config holds the window radii around the viewport index.
type Config struct {
	// Near is the eager band radius: positions within it also get their
	// placeholder warmed.
	Near int
	// Far is the priority window radius: positions beyond it are not worth
	// holding a resource for.
	Far int
}

// Scheduler produces priority-ordered candidate lists.
type Scheduler struct {
	cfg Config
}

// New creates a scheduler with the given window radii. Non-positive radii
// fall back to the defaults (near=1, far=2).
func New(cfg Config) *Scheduler {
	if cfg.Near <= 0 {
		cfg.Near = 1
	}
	if cfg.Far < cfg.Near {
		cfg.Far = cfg.Near + 1
	}
	return &Scheduler{cfg: cfg}
}

// Far returns the priority window radius.
func (s *Scheduler) Far() int { return s.cfg.Far }

// Near returns the eager band radius.
func (s *Scheduler) Near() int { return s.cfg.Near }

// Order returns the feed positions that should hold a slot, highest
// priority first: current, then alternating forward/backward by increasing
// distance with forward preferred (feeds scroll forward more often),
// clipped to [0, feedLen).
//
// With near=1, far=2 at index i: [i, i+1, i-1, i+2, i-2].
func (s *Scheduler) Order(current, feedLen int) []int {
	return s.OrderBiased(current, feedLen, false)
}

// OrderBiased is Order with an optional backward bias: when the user is
// scrolling up, equal-distance candidates behind the viewport come first.
// Distance ordering is unchanged either way.
func (s *Scheduler) OrderBiased(current, feedLen int, backward bool) []int {
	if feedLen <= 0 {
		return nil
	}
	out := make([]int, 0, 2*s.cfg.Far+1)
	push := func(idx int) {
		if idx >= 0 && idx < feedLen {
			out = append(out, idx)
		}
	}
	push(current)
	for d := 1; d <= s.cfg.Far; d++ {
		if backward {
			push(current - d)
			push(current + d)
		} else {
			push(current + d)
			push(current - d)
		}
	}
	return out
}

// NearBand returns the positions within the eager band, same ordering rules
// as Order. Used for placeholder warming.
func (s *Scheduler) NearBand(current, feedLen int, backward bool) []int {
	if feedLen <= 0 {
		return nil
	}
	out := make([]int, 0, 2*s.cfg.Near+1)
	push := func(idx int) {
		if idx >= 0 && idx < feedLen {
			out = append(out, idx)
		}
	}
	push(current)
	for d := 1; d <= s.cfg.Near; d++ {
		if backward {
			push(current - d)
			push(current + d)
		} else {
			push(current + d)
			push(current - d)
		}
	}
	return out
}
