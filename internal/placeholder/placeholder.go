// Package placeholder warms and caches blurred poster placeholders for
// videos near the viewport, so the UI has something to paint while the
// decoder is still opening the real stream.
package placeholder

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/nostrvine/playback/internal/domain"
)

const (
	// Cache stays small: placeholders only matter for the near band
	// around the viewport, anything older is cheap to regenerate.
	defaultCacheSize = 16
	maxConcurrent    = 2
	warmTimeout      = 10 * time.Second
)

type entry struct {
	data    []byte
	addedAt time.Time
}

// Service fetches poster frames, runs them through the image processor
// and keeps the results in a bounded in-memory cache.
type Service struct {
	logger    *zap.Logger
	fetcher   domain.PosterFetcher
	processor domain.ImageProcessor

	mu       sync.Mutex
	cache    map[domain.VideoID]entry
	inflight map[domain.VideoID]struct{}
	maxSize  int

	sem    chan struct{}
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewService creates a placeholder service backed by the given fetcher
// and processor.
func NewService(logger *zap.Logger, fetcher domain.PosterFetcher, processor domain.ImageProcessor) *Service {
	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		logger:    logger,
		fetcher:   fetcher,
		processor: processor,
		cache:     make(map[domain.VideoID]entry),
		inflight:  make(map[domain.VideoID]struct{}),
		maxSize:   defaultCacheSize,
		sem:       make(chan struct{}, maxConcurrent),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Warm asynchronously generates a placeholder for the descriptor. Calls
// for videos that are already cached or in flight are no-ops, so the
// manager can invoke it on every scheduling pass.
func (s *Service) Warm(desc domain.VideoDescriptor) {
	if desc.PosterURI == "" {
		return
	}

	s.mu.Lock()
	if _, ok := s.cache[desc.ID]; ok {
		s.mu.Unlock()
		return
	}
	if _, ok := s.inflight[desc.ID]; ok {
		s.mu.Unlock()
		return
	}
	s.inflight[desc.ID] = struct{}{}
	s.mu.Unlock()

	s.wg.Add(1)
	go s.warm(desc)
}

func (s *Service) warm(desc domain.VideoDescriptor) {
	defer s.wg.Done()
	defer func() {
		s.mu.Lock()
		delete(s.inflight, desc.ID)
		s.mu.Unlock()
	}()

	select {
	case s.sem <- struct{}{}:
		defer func() { <-s.sem }()
	case <-s.ctx.Done():
		return
	}

	ctx, cancel := context.WithTimeout(s.ctx, warmTimeout)
	defer cancel()

	raw, err := s.fetcher.Fetch(ctx, desc.PosterURI)
	if err != nil {
		s.logger.Warn("Poster fetch failed",
			zap.String("video_id", string(desc.ID)),
			zap.Error(err))
		return
	}

	data, err := s.processor.Process(ctx, raw)
	if err != nil {
		s.logger.Warn("Placeholder processing failed",
			zap.String("video_id", string(desc.ID)),
			zap.Error(err))
		return
	}

	s.mu.Lock()
	s.evictIfFullLocked()
	s.cache[desc.ID] = entry{data: data, addedAt: time.Now()}
	s.mu.Unlock()

	s.logger.Debug("Placeholder cached",
		zap.String("video_id", string(desc.ID)),
		zap.Int("bytes", len(data)))
}

// evictIfFullLocked drops the oldest entry when the cache is at capacity.
func (s *Service) evictIfFullLocked() {
	if len(s.cache) < s.maxSize {
		return
	}
	var oldest domain.VideoID
	var oldestAt time.Time
	first := true
	for id, e := range s.cache {
		if first || e.addedAt.Before(oldestAt) {
			oldest = id
			oldestAt = e.addedAt
			first = false
		}
	}
	delete(s.cache, oldest)
}

// Placeholder returns the cached placeholder bytes for a video, if any.
func (s *Service) Placeholder(id domain.VideoID) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.cache[id]
	if !ok {
		return nil, false
	}
	out := make([]byte, len(e.data))
	copy(out, e.data)
	return out, true
}

// Close cancels any in-flight warm-ups and waits for them to finish.
func (s *Service) Close() {
	s.cancel()
	s.wg.Wait()
}
