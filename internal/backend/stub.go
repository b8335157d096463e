// Package backend provides decoder and feed implementations. The stub
// variants here simulate decoder warm-up and an endless feed so the
// daemon can run end to end without a real media pipeline attached.
package backend

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nostrvine/playback/internal/domain"
)

const defaultWarmupLatency = 150 * time.Millisecond

// StubBackend pretends to open decoder sessions. Each Open blocks for a
// configurable latency to mimic container probing and codec setup.
type StubBackend struct {
	logger  *zap.Logger
	latency time.Duration
}

// NewStubBackend creates a stub decoder backend.
func NewStubBackend(logger *zap.Logger) *StubBackend {
	return &StubBackend{logger: logger, latency: defaultWarmupLatency}
}

// Open simulates decoder warm-up, honouring cancellation.
func (b *StubBackend) Open(ctx context.Context, sourceURI string) (domain.PlaybackController, error) {
	select {
	case <-time.After(b.latency):
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", domain.ErrCancelled, ctx.Err())
	}

	handle := uuid.NewString()
	b.logger.Debug("Opened stub decoder session",
		zap.String("handle", handle),
		zap.String("source", sourceURI))

	return &stubController{
		logger: b.logger,
		handle: handle,
		source: sourceURI,
	}, nil
}

// stubController is a no-op playback controller that just tracks state.
type stubController struct {
	logger *zap.Logger
	handle string
	source string

	mu       sync.Mutex
	playing  bool
	released bool
}

func (c *stubController) Play(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.released {
		return fmt.Errorf("controller %s already released", c.handle)
	}
	c.playing = true
	c.logger.Debug("Stub playback started", zap.String("handle", c.handle))
	return nil
}

func (c *stubController) Pause(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.released {
		return fmt.Errorf("controller %s already released", c.handle)
	}
	c.playing = false
	c.logger.Debug("Stub playback paused", zap.String("handle", c.handle))
	return nil
}

func (c *stubController) Release() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.released {
		return nil
	}
	c.released = true
	c.playing = false
	c.logger.Debug("Stub decoder session released", zap.String("handle", c.handle))
	return nil
}
