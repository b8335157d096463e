package backend

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/nostrvine/playback/internal/domain"
)

const (
	feedPageSize = 10
	// The stub feed runs dry after a few pages so CanLoadMore has
	// something meaningful to report.
	feedMaxPages = 20
)

// StubFeed serves synthetic video descriptors in fixed-size pages.
type StubFeed struct {
	logger *zap.Logger

	mu   sync.Mutex
	page int
}

// NewStubFeed creates a stub feed source.
func NewStubFeed(logger *zap.Logger) *StubFeed {
	return &StubFeed{logger: logger}
}

// CanLoadMore reports whether another page is available.
func (f *StubFeed) CanLoadMore() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.page < feedMaxPages
}

// LoadMore returns the next page of synthetic descriptors.
func (f *StubFeed) LoadMore(ctx context.Context) ([]domain.VideoDescriptor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.page >= feedMaxPages {
		return nil, fmt.Errorf("feed exhausted after %d pages", feedMaxPages)
	}

	start := f.page * feedPageSize
	descs := make([]domain.VideoDescriptor, 0, feedPageSize)
	for i := 0; i < feedPageSize; i++ {
		n := start + i
		descs = append(descs, domain.VideoDescriptor{
			ID:        domain.VideoID(fmt.Sprintf("clip-%04d", n)),
			SourceURI: fmt.Sprintf("https://cdn.example.com/clips/%04d.mp4", n),
			PosterURI: fmt.Sprintf("https://cdn.example.com/posters/%04d.jpg", n),
			Duration:  6 * time.Second,
			Position:  n,
		})
	}
	f.page++

	f.logger.Debug("Served feed page",
		zap.Int("page", f.page),
		zap.Int("count", len(descs)))
	return descs, nil
}
