// Package manager implements the video resource manager: the public-facing
// orchestrator that decides which clips hold a decoder slot, drives warm-ups
// through the slot pool, keeps per-identifier playback state consistent
// while the user scrolls, and notifies observers of every transition.
package manager

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/nostrvine/playback/internal/domain"
	"github.com/nostrvine/playback/internal/metrics"
	"github.com/nostrvine/playback/internal/pool"
	"github.com/nostrvine/playback/internal/scheduler"
)

// PlaceholderWarmer is the optional poster-placeholder pipeline. The
// manager warms placeholders for clips entering the near band; nil disables
// the feature.
type PlaceholderWarmer interface {
	Warm(desc domain.VideoDescriptor)
}

// warmupResult travels from a warm-up goroutine back to the owner loop.
type warmupResult struct {
	id         domain.VideoID
	gen        uint64
	controller domain.PlaybackController
	err        error
}

// Manager is the single owner of all per-identifier state. Commands may be
// called from any goroutine and never block on I/O; warm-ups run as
// separate tasks bounded by pool capacity and report back on a completion
// channel consumed by the run loop.
type Manager struct {
	logger       *zap.Logger
	cfg          domain.Config
	backend      domain.DecoderBackend
	feed         domain.FeedSource
	sched        *scheduler.Scheduler
	pool         *pool.SlotPool
	met          *metrics.Metrics
	placeholders PlaceholderWarmer
	notifier     *notifier
	backoff      backoffPolicy

	mu           sync.Mutex
	descs        map[domain.VideoID]domain.VideoDescriptor
	order        []domain.VideoID // feed position -> id
	states       map[domain.VideoID]domain.ResourceState
	failErr      map[domain.VideoID]error
	retries      map[domain.VideoID]*retryState
	// pendingPlay is the single "play when ready" intent. Because at most
	// one identifier can play, the newest intent wins globally: a Play on a
	// different cold identifier supersedes the old one.
	pendingPlay domain.VideoID
	playing      domain.VideoID // single active player, "" when none
	viewport     int
	lastBackward bool
	started      bool

	now         func() time.Time
	runCtx      context.Context
	runCancel   context.CancelFunc
	completions chan warmupResult
	wg          sync.WaitGroup
}

// New creates a resource manager. placeholders may be nil.
func New(
	logger *zap.Logger,
	cfg domain.Config,
	backend domain.DecoderBackend,
	feed domain.FeedSource,
	sched *scheduler.Scheduler,
	slotPool *pool.SlotPool,
	met *metrics.Metrics,
	placeholders PlaceholderWarmer,
) *Manager {
	runCtx, runCancel := context.WithCancel(context.Background())
	return &Manager{
		logger:       logger,
		cfg:          cfg,
		backend:      backend,
		feed:         feed,
		sched:        sched,
		pool:         slotPool,
		met:          met,
		placeholders: placeholders,
		notifier:     newNotifier(logger, met),
		backoff: backoffPolicy{
			base:        cfg.RetryBase(),
			factor:      cfg.RetryFactor(),
			maxAttempts: cfg.RetryMaxAttempts(),
		},
		descs:       make(map[domain.VideoID]domain.VideoDescriptor),
		states:      make(map[domain.VideoID]domain.ResourceState),
		failErr:     make(map[domain.VideoID]error),
		retries:     make(map[domain.VideoID]*retryState),
		now:         time.Now,
		runCtx:      runCtx,
		runCancel:   runCancel,
		completions: make(chan warmupResult, 4*slotPool.Capacity()),
	}
}

// Start launches the owner loop. It returns immediately (non-blocking).
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return nil
	}
	m.started = true
	m.mu.Unlock()

	m.logger.Info("Resource manager started",
		zap.Int("capacity", m.pool.Capacity()),
		zap.Int("windowNear", m.sched.Near()),
		zap.Int("windowFar", m.sched.Far()))

	m.wg.Add(1)
	go m.runLoop()
	return nil
}

// Stop cancels in-flight warm-ups, waits for tasks to drain, closes
// subscriber channels and releases every slot.
func (m *Manager) Stop(ctx context.Context) error {
	m.mu.Lock()
	if !m.started {
		m.mu.Unlock()
		return nil
	}
	m.started = false
	m.mu.Unlock()

	m.runCancel()
	m.wg.Wait()
	m.notifier.close()

	err := m.pool.Close()
	m.logger.Info("Resource manager stopped")
	return err
}

// runLoop applies warm-up completions in arrival order. It is the only
// consumer of the completion channel.
func (m *Manager) runLoop() {
	defer m.wg.Done()
	for {
		select {
		case <-m.runCtx.Done():
			return
		case res := <-m.completions:
			m.handleCompletion(res)
		}
	}
}

// Register makes a descriptor known. Idempotent, never blocks, never
// allocates a resource. An evicted identifier whose descriptor was retained
// returns to Registered here.
func (m *Manager) Register(desc domain.VideoDescriptor) {
	m.mu.Lock()
	var changes []domain.StateChange
	if state, known := m.states[desc.ID]; known && state != domain.StateUnregistered {
		m.mu.Unlock()
		return
	}
	if _, known := m.descs[desc.ID]; !known {
		if desc.Position < 0 {
			m.mu.Unlock()
			m.logger.Warn("Register rejected, negative feed position",
				zap.String("video", string(desc.ID)))
			return
		}
		for len(m.order) <= desc.Position {
			m.order = append(m.order, "")
		}
		if other := m.order[desc.Position]; other != "" && other != desc.ID {
			m.mu.Unlock()
			m.logger.Warn("Register rejected, feed position already taken",
				zap.String("video", string(desc.ID)),
				zap.Int("position", desc.Position),
				zap.String("holder", string(other)))
			return
		}
		m.order[desc.Position] = desc.ID
		m.descs[desc.ID] = desc
	}
	changes = append(changes, m.transitionLocked(desc.ID, domain.StateRegistered, nil))
	m.notifier.publish(changes)
	m.mu.Unlock()
}

// RequestPreload asks the core to move id toward Ready. Fire-and-forget:
// acquisition happens now, warm-up asynchronously; failures surface only
// through state-change notifications.
func (m *Manager) RequestPreload(id domain.VideoID) {
	m.mu.Lock()
	rank := m.rankLocked()
	changes := m.preloadLocked(id, rank)
	m.notifier.publish(changes)
	m.mu.Unlock()
}

// SetViewportIndex updates the current feed position and runs a scheduling
// pass: preload the new priority window, evict out-of-window slots that are
// not Playing. All resulting transitions are coalesced into one batch.
func (m *Manager) SetViewportIndex(index int) {
	m.mu.Lock()
	m.lastBackward = index < m.viewport
	m.viewport = index
	changes := m.schedulePassLocked()
	m.notifier.publish(changes)
	m.mu.Unlock()
}

// Play starts id if it is Ready or Paused. On a non-Ready identifier the
// intent is recorded as a depth-1 "play when ready", superseded by any
// newer play or pause command, and a preload is issued.
func (m *Manager) Play(id domain.VideoID) {
	m.mu.Lock()
	var changes []domain.StateChange
	switch m.states[id] {
	case domain.StatePlaying:
		// Already the active player.
	case domain.StateReady, domain.StatePaused:
		changes = m.playLocked(id)
	default:
		m.pendingPlay = id
		rank := m.rankLocked()
		changes = m.preloadLocked(id, rank)
	}
	m.notifier.publish(changes)
	m.mu.Unlock()
}

// Pause halts id if it is the active player; a pending "play when ready"
// for id is superseded.
func (m *Manager) Pause(id domain.VideoID) {
	m.mu.Lock()
	var changes []domain.StateChange
	if m.pendingPlay == id {
		m.pendingPlay = ""
	}
	if m.states[id] == domain.StatePlaying {
		changes = m.pauseActiveLocked()
	}
	m.notifier.publish(changes)
	m.mu.Unlock()
}

// PauseAll pauses the active player and clears any pending play intent.
// It has no preload or eviction side effects.
func (m *Manager) PauseAll() {
	m.mu.Lock()
	m.pendingPlay = ""
	changes := m.pauseActiveLocked()
	m.notifier.publish(changes)
	m.mu.Unlock()
}

// Retry clears a Failed identifier's backoff state and re-requests it.
// This is the explicit retry path past the automatic attempt cap.
func (m *Manager) Retry(id domain.VideoID) {
	m.mu.Lock()
	var changes []domain.StateChange
	if m.states[id] == domain.StateFailed {
		delete(m.retries, id)
		changes = append(changes, m.transitionLocked(id, domain.StateRegistered, nil))
		rank := m.rankLocked()
		changes = append(changes, m.preloadLocked(id, rank)...)
	}
	m.notifier.publish(changes)
	m.mu.Unlock()
}

// State returns a point-in-time snapshot for id.
func (m *Manager) State(id domain.VideoID) domain.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := domain.Snapshot{ID: id, State: m.states[id]}
	if snap.State == domain.StateFailed {
		snap.Err = m.failErr[id]
	}
	return snap
}

// Controller returns the borrowed playback handle for id. Callers must
// re-fetch after any viewport change: eviction invalidates handles.
func (m *Manager) Controller(id domain.VideoID) (domain.PlaybackController, bool) {
	return m.pool.Controller(id)
}

// CanLoadMore delegates to the feed's pagination contract.
func (m *Manager) CanLoadMore() bool {
	return m.feed.CanLoadMore()
}

// Subscribe registers a state-change observer.
func (m *Manager) Subscribe() (string, <-chan []domain.StateChange) {
	return m.notifier.subscribe()
}

// Unsubscribe removes an observer and closes its channel.
func (m *Manager) Unsubscribe(token string) {
	m.notifier.unsubscribe(token)
}

// rankLocked maps every identifier in the current priority window to its
// rank (0 = highest priority).
func (m *Manager) rankLocked() map[domain.VideoID]int {
	window := m.sched.OrderBiased(m.viewport, len(m.order), m.lastBackward)
	rank := make(map[domain.VideoID]int, len(window))
	for i, pos := range window {
		if id := m.order[pos]; id != "" {
			rank[id] = i
		}
	}
	return rank
}

// schedulePassLocked is the full pass run on viewport changes and freed
// slots: evict leavers, preload entrants in priority order, warm
// placeholders for the near band.
func (m *Manager) schedulePassLocked() []domain.StateChange {
	rank := m.rankLocked()
	var changes []domain.StateChange

	// Evict out-of-window slots that are not Playing.
	for id, state := range m.states {
		if !state.HoldsSlot() || id == m.playing {
			continue
		}
		if _, inWindow := rank[id]; inWindow {
			continue
		}
		if m.pool.Release(id) {
			changes = append(changes, m.transitionLocked(id, domain.StateUnregistered, nil))
		}
	}

	// Preload the window, highest priority first.
	for _, pos := range m.sched.OrderBiased(m.viewport, len(m.order), m.lastBackward) {
		if id := m.order[pos]; id != "" {
			changes = append(changes, m.preloadLocked(id, rank)...)
		}
	}

	// Placeholders for the eager band.
	if m.placeholders != nil {
		for _, pos := range m.sched.NearBand(m.viewport, len(m.order), m.lastBackward) {
			if id := m.order[pos]; id != "" {
				if desc, ok := m.descs[id]; ok && desc.PosterURI != "" {
					m.placeholders.Warm(desc)
				}
			}
		}
	}
	return changes
}

// preloadLocked moves one identifier toward Ready if it is eligible:
// unknown ids are ignored, ids already holding a slot are no-ops, Failed
// ids are gated by the backoff policy.
func (m *Manager) preloadLocked(id domain.VideoID, rank map[domain.VideoID]int) []domain.StateChange {
	desc, ok := m.descs[id]
	if !ok {
		m.logger.Warn("Preload for unregistered video ignored",
			zap.String("video", string(id)),
			zap.Error(domain.ErrUnknownVideo))
		return nil
	}
	state := m.states[id]
	if state.HoldsSlot() {
		return nil
	}
	if state == domain.StateFailed {
		rs := m.retries[id]
		if rs != nil {
			if rs.exhausted(m.backoff.maxAttempts) {
				return nil
			}
			if m.now().Before(rs.nextAttempt) {
				return nil
			}
		}
	}

	acq, ok := m.pool.Acquire(m.runCtx, id, rank, m.playing)
	if !ok {
		// Deferred: the pool had no evictable slot. Not an error; the next
		// pass after a slot frees will retry.
		return nil
	}

	var changes []domain.StateChange
	if acq.Evicted != nil {
		changes = append(changes, m.transitionLocked(acq.Evicted.ID, domain.StateUnregistered, nil))
	}
	changes = append(changes, m.transitionLocked(id, domain.StatePreparing, nil))

	if m.met != nil {
		m.met.IncWarmups()
	}
	m.wg.Add(1)
	go m.warmup(acq.Ctx, desc, acq.Gen)
	return changes
}

// warmup runs outside the lock: it is the only suspension point in the
// core. The acquisition context is cancelled on eviction (cooperative) and
// the configured timeout is the hard stop.
func (m *Manager) warmup(ctx context.Context, desc domain.VideoDescriptor, gen uint64) {
	defer m.wg.Done()
	wctx, cancel := context.WithTimeout(ctx, m.cfg.WarmupTimeout())
	defer cancel()

	controller, err := m.backend.Open(wctx, desc.SourceURI)
	select {
	case m.completions <- warmupResult{id: desc.ID, gen: gen, controller: controller, err: err}:
	case <-m.runCtx.Done():
		// Shutting down; nobody will consume the result.
		if controller != nil {
			_ = controller.Release()
		}
	}
}

// handleCompletion applies one warm-up result. A completion whose
// generation no longer matches the live binding is discarded: its handle is
// released and never reused.
func (m *Manager) handleCompletion(res warmupResult) {
	m.mu.Lock()
	if !m.pool.IsCurrent(res.id, res.gen) {
		m.mu.Unlock()
		m.discardStale(res)
		return
	}

	var changes []domain.StateChange
	if res.err != nil {
		m.pool.Release(res.id)
		reason, classified := classifyFailure(res.err)
		if m.met != nil {
			m.met.IncWarmupFailures(reason)
		}
		rs := m.retries[res.id]
		if rs == nil {
			rs = &retryState{}
			m.retries[res.id] = rs
		}
		rs.failures++
		rs.nextAttempt = m.now().Add(m.backoff.delay(rs.failures))
		rs.lastErr = classified
		if m.pendingPlay == res.id {
			m.pendingPlay = ""
		}
		m.logger.Warn("Warm-up failed",
			zap.String("video", string(res.id)),
			zap.Int("failures", rs.failures),
			zap.Time("nextAttempt", rs.nextAttempt),
			zap.Error(res.err))
		changes = append(changes, m.transitionLocked(res.id, domain.StateFailed, classified))
		// A slot just freed: deferred preloads may now proceed.
		changes = append(changes, m.schedulePassLocked()...)
	} else {
		if !m.pool.Complete(res.id, res.gen, res.controller) {
			// The binding moved on between the generation check and the
			// attach; treat it like any other stale completion.
			m.mu.Unlock()
			m.discardStale(res)
			return
		}
		delete(m.retries, res.id)
		changes = append(changes, m.transitionLocked(res.id, domain.StateReady, nil))
		if m.pendingPlay == res.id {
			m.pendingPlay = ""
			changes = append(changes, m.playLocked(res.id)...)
		}
	}
	m.notifier.publish(changes)
	m.mu.Unlock()
}

// discardStale drops a completion whose binding is gone: its handle is
// released and never reused.
func (m *Manager) discardStale(res warmupResult) {
	if res.controller != nil {
		_ = res.controller.Release()
	}
	if m.met != nil {
		m.met.IncStaleCompletions()
	}
	m.logger.Debug("Discarded stale warm-up completion",
		zap.String("video", string(res.id)))
}

// playLocked makes id the single active player, pausing the previous one.
// The caller must have verified a warm controller exists.
func (m *Manager) playLocked(id domain.VideoID) []domain.StateChange {
	controller, ok := m.pool.Controller(id)
	if !ok {
		return nil
	}
	var changes []domain.StateChange
	if m.playing != "" && m.playing != id {
		changes = append(changes, m.pauseActiveLocked()...)
	}
	if err := controller.Play(m.runCtx); err != nil {
		m.logger.Error("Play command failed",
			zap.String("video", string(id)),
			zap.Error(err))
		return changes
	}
	m.playing = id
	m.pool.Touch(id)
	if m.met != nil {
		m.met.SetPlaying(true)
	}
	changes = append(changes, m.transitionLocked(id, domain.StatePlaying, nil))
	return changes
}

// pauseActiveLocked pauses the current player, if any.
func (m *Manager) pauseActiveLocked() []domain.StateChange {
	if m.playing == "" {
		return nil
	}
	id := m.playing
	if controller, ok := m.pool.Controller(id); ok {
		if err := controller.Pause(m.runCtx); err != nil {
			m.logger.Error("Pause command failed",
				zap.String("video", string(id)),
				zap.Error(err))
		}
	}
	m.playing = ""
	m.pool.Touch(id)
	if m.met != nil {
		m.met.SetPlaying(false)
	}
	return []domain.StateChange{m.transitionLocked(id, domain.StatePaused, nil)}
}

// transitionLocked records a state change and returns it for the batch.
func (m *Manager) transitionLocked(id domain.VideoID, to domain.ResourceState, failure error) domain.StateChange {
	from := m.states[id]
	m.states[id] = to
	if to == domain.StateFailed {
		m.failErr[id] = failure
	} else {
		delete(m.failErr, id)
	}
	if from == domain.StatePlaying && to != domain.StatePlaying && m.playing == id {
		m.playing = ""
		if m.met != nil {
			m.met.SetPlaying(false)
		}
	}
	return domain.StateChange{ID: id, From: from, To: to, Err: failure}
}

// classifyFailure maps a warm-up error to a metrics label and a wrapped
// taxonomy error for the snapshot.
func classifyFailure(err error) (string, error) {
	switch {
	case errors.Is(err, domain.ErrSourceUnavailable):
		return "source_unavailable", err
	case errors.Is(err, domain.ErrDecodeFailure):
		return "decode_failure", err
	case errors.Is(err, domain.ErrCancelled), errors.Is(err, context.Canceled):
		return "cancelled", err
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout", fmt.Errorf("%w: %w", domain.ErrSourceUnavailable, err)
	default:
		return "decode_failure", fmt.Errorf("%w: %w", domain.ErrDecodeFailure, err)
	}
}
