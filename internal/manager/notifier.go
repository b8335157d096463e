package manager

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nostrvine/playback/internal/domain"
	"github.com/nostrvine/playback/internal/metrics"
)

const subscriberBuffer = 16

// notifier fans state-change batches out to subscribers. Sends never block:
// a subscriber that cannot keep up loses batches and can resynchronize via
// State(), which is why snapshots exist.
type notifier struct {
	logger *zap.Logger
	met    *metrics.Metrics

	mu              sync.Mutex
	subs            map[string]chan []domain.StateChange
	closed          bool
	lastDropWarning time.Time
}

func newNotifier(logger *zap.Logger, met *metrics.Metrics) *notifier {
	return &notifier{
		logger: logger,
		met:    met,
		subs:   make(map[string]chan []domain.StateChange),
	}
}

func (n *notifier) subscribe() (string, <-chan []domain.StateChange) {
	n.mu.Lock()
	defer n.mu.Unlock()
	token := uuid.NewString()
	ch := make(chan []domain.StateChange, subscriberBuffer)
	if n.closed {
		close(ch)
		return token, ch
	}
	n.subs[token] = ch
	return token, ch
}

func (n *notifier) unsubscribe(token string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if ch, ok := n.subs[token]; ok {
		delete(n.subs, token)
		close(ch)
	}
}

// publish delivers one coalesced batch to every subscriber, preserving
// transition order within the batch. Callers invoke it while still holding
// the manager lock so batches reach subscribers in commit order; that is
// safe because sends never block.
func (n *notifier) publish(batch []domain.StateChange) {
	if len(batch) == 0 {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, ch := range n.subs {
		select {
		case ch <- batch:
		default:
			if n.met != nil {
				n.met.IncNotifyDrops()
			}
			n.logDropWarningLocked()
		}
	}
}

func (n *notifier) close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = true
	for token, ch := range n.subs {
		delete(n.subs, token)
		close(ch)
	}
}

// logDropWarningLocked warns about a slow subscriber at most once per
// interval to avoid log spam during fast scrolling.
func (n *notifier) logDropWarningLocked() {
	const warningInterval = 5 * time.Second
	now := time.Now()
	if now.Sub(n.lastDropWarning) >= warningInterval {
		n.logger.Warn("Subscriber channel full, dropping state-change batch",
			zap.String("note", "subscriber should drain faster or poll State()"))
		n.lastDropWarning = now
	}
}
