// Package pool owns the fixed set of decoder slots. It is the sole mutator
// of slot-to-identifier bindings: the manager asks it to acquire, complete
// and release bindings but never touches a slot directly.
package pool

import (
	"context"
	"math"
	"sync"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/nostrvine/playback/internal/domain"
	"github.com/nostrvine/playback/internal/metrics"
)

// slot is one unit of bounded decoder capacity. A slot either is empty or
// is bound to exactly one identifier; a bound slot carries the generation
// assigned at acquisition time so late warm-up completions can be detected.
type slot struct {
	id          domain.VideoID
	gen         uint64
	controller  domain.PlaybackController
	cancel      context.CancelFunc
	lastTouched time.Time
	bound       bool
}

// release frees the slot's resources on every exit path: it cancels the
// in-flight warm-up (cooperative) and releases the controller handle if one
// was attached. Returns the controller release error, if any.
func (s *slot) release(logger *zap.Logger) error {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	var err error
	if s.controller != nil {
		if err = s.controller.Release(); err != nil {
			logger.Warn("Controller release failed",
				zap.String("video", string(s.id)),
				zap.Error(err))
		}
		s.controller = nil
	}
	s.id = ""
	s.gen = 0
	s.bound = false
	return err
}

// Eviction reports the binding that was reclaimed to satisfy an Acquire.
type Eviction struct {
	ID domain.VideoID
}

// Acquisition is the result of binding an identifier to a slot.
type Acquisition struct {
	ID domain.VideoID
	// Gen is the generation token the warm-up task must present when it
	// completes; a mismatch means the binding was evicted in the interim.
	Gen uint64
	// Ctx is cancelled when the binding is released. Warm-up tasks derive
	// their own deadline from it.
	Ctx context.Context
	// Evicted is non-nil when a lower-priority binding was reclaimed to
	// make room.
	Evicted *Eviction
}

// SlotPool is the fixed-capacity collection of slots. All methods are safe
// for concurrent use; the pool size never exceeds the configured capacity.
type SlotPool struct {
	logger   *zap.Logger
	met      *metrics.Metrics
	capacity int

	mu     sync.Mutex
	slots  []*slot
	byID   map[domain.VideoID]*slot
	genSeq uint64
	now    func() time.Time
}

// New creates a pool with the given capacity. Capacity below 1 is clamped
// to 1: a feed player always needs at least the current clip.
func New(logger *zap.Logger, capacity int, met *metrics.Metrics) *SlotPool {
	if capacity < 1 {
		capacity = 1
	}
	slots := make([]*slot, capacity)
	for i := range slots {
		slots[i] = &slot{}
	}
	return &SlotPool{
		logger:   logger,
		met:      met,
		capacity: capacity,
		slots:    slots,
		byID:     make(map[domain.VideoID]*slot, capacity),
		now:      time.Now,
	}
}

// Capacity returns the hard ceiling on concurrently bound slots.
func (p *SlotPool) Capacity() int { return p.capacity }

// InUse returns the number of currently bound slots.
func (p *SlotPool) InUse() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.byID)
}

// Bound reports whether the identifier currently holds a slot.
func (p *SlotPool) Bound(id domain.VideoID) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.byID[id]
	return ok
}

// Acquire binds id to a slot. If the pool is full it applies the eviction
// policy: reclaim the bound slot with the lowest current priority per rank
// (higher rank value = lower priority; identifiers absent from rank are out
// of the window entirely), never the protected identifier, LRU among equal
// ranks. The victim must rank strictly below the requester; otherwise the
// request is deferred and Acquire returns nil, false.
//
// parent is the manager's run context: the acquisition context is derived
// from it so shutdown cancels all in-flight warm-ups.
func (p *SlotPool) Acquire(parent context.Context, id domain.VideoID, rank map[domain.VideoID]int, protected domain.VideoID) (*Acquisition, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.byID[id]; ok {
		// Already bound; nothing to do.
		return nil, false
	}

	target := p.freeSlotLocked()
	var evicted *Eviction
	if target == nil {
		reqRank, ok := rank[id]
		if !ok {
			reqRank = math.MaxInt
		}
		victim := p.victimLocked(rank, protected, reqRank)
		if victim == nil {
			p.logger.Debug("Preload deferred, no evictable slot",
				zap.String("video", string(id)))
			if p.met != nil {
				p.met.IncPreloadsDeferred()
			}
			return nil, false
		}
		p.logger.Debug("Evicting slot",
			zap.String("victim", string(victim.id)),
			zap.String("for", string(id)))
		evicted = &Eviction{ID: victim.id}
		delete(p.byID, victim.id)
		_ = victim.release(p.logger)
		if p.met != nil {
			p.met.IncEvictions()
		}
		target = victim
	}

	p.genSeq++
	ctx, cancel := context.WithCancel(parent)
	target.id = id
	target.gen = p.genSeq
	target.controller = nil
	target.cancel = cancel
	target.lastTouched = p.now()
	target.bound = true
	p.byID[id] = target
	if p.met != nil {
		p.met.SetSlotsInUse(len(p.byID))
	}

	return &Acquisition{ID: id, Gen: target.gen, Ctx: ctx, Evicted: evicted}, true
}

// freeSlotLocked returns an unbound slot or nil.
func (p *SlotPool) freeSlotLocked() *slot {
	for _, s := range p.slots {
		if !s.bound {
			return s
		}
	}
	return nil
}

// victimLocked picks the eviction candidate: worst rank first, then least
// recently touched. Returns nil when no bound slot ranks strictly below
// reqRank or all candidates are protected.
func (p *SlotPool) victimLocked(rank map[domain.VideoID]int, protected domain.VideoID, reqRank int) *slot {
	var victim *slot
	victimRank := -1
	for _, s := range p.slots {
		if !s.bound || s.id == protected {
			continue
		}
		r, ok := rank[s.id]
		if !ok {
			r = math.MaxInt
		}
		switch {
		case r > victimRank:
			victim, victimRank = s, r
		case r == victimRank && s.lastTouched.Before(victim.lastTouched):
			// Equal priority falls back to LRU so a just-warmed slot is
			// not thrashed.
			victim = s
		}
	}
	if victim == nil || victimRank <= reqRank {
		return nil
	}
	return victim
}

// IsCurrent reports whether gen is the live generation for id. Warm-up
// completions presenting a stale generation must be discarded.
func (p *SlotPool) IsCurrent(id domain.VideoID, gen uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.byID[id]
	return ok && s.gen == gen
}

// Complete attaches the warm controller to the binding. Returns false when
// the binding was evicted in the interim; the caller must release the
// controller itself in that case.
func (p *SlotPool) Complete(id domain.VideoID, gen uint64, controller domain.PlaybackController) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.byID[id]
	if !ok || s.gen != gen {
		return false
	}
	s.controller = controller
	s.lastTouched = p.now()
	return true
}

// Release frees the identifier's binding, whatever its generation.
// Returns false when the identifier holds no slot.
func (p *SlotPool) Release(id domain.VideoID) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.byID[id]
	if !ok {
		return false
	}
	delete(p.byID, id)
	_ = s.release(p.logger)
	if p.met != nil {
		p.met.SetSlotsInUse(len(p.byID))
	}
	return true
}

// Controller returns the borrowed playback handle for id, if the binding
// is live and warm.
func (p *SlotPool) Controller(id domain.VideoID) (domain.PlaybackController, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.byID[id]
	if !ok || s.controller == nil {
		return nil, false
	}
	return s.controller, true
}

// Touch refreshes the LRU timestamp for id (playback commands count as use).
func (p *SlotPool) Touch(id domain.VideoID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if s, ok := p.byID[id]; ok {
		s.lastTouched = p.now()
	}
}

// Close releases every binding and aggregates controller release errors.
func (p *SlotPool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	var err error
	for _, s := range p.slots {
		if !s.bound {
			continue
		}
		delete(p.byID, s.id)
		err = multierr.Append(err, s.release(p.logger))
	}
	if p.met != nil {
		p.met.SetSlotsInUse(0)
	}
	return err
}
