package backend

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestStubBackendOpenAndControl(t *testing.T) {
	b := NewStubBackend(zap.NewNop())
	b.latency = time.Millisecond

	ctrl, err := b.Open(context.Background(), "https://cdn.example.com/clips/0001.mp4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ctrl.Play(context.Background()); err != nil {
		t.Errorf("play failed: %v", err)
	}
	if err := ctrl.Pause(context.Background()); err != nil {
		t.Errorf("pause failed: %v", err)
	}
	ctrl.Release()
	if err := ctrl.Play(context.Background()); err == nil {
		t.Error("expected play after release to fail")
	}
}

func TestStubBackendOpenHonoursCancellation(t *testing.T) {
	b := NewStubBackend(zap.NewNop())
	b.latency = time.Second

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := b.Open(ctx, "https://cdn.example.com/clips/0001.mp4"); err == nil {
		t.Error("expected error when context is cancelled")
	}
}

func TestStubFeedPaging(t *testing.T) {
	f := NewStubFeed(zap.NewNop())

	if !f.CanLoadMore() {
		t.Fatal("fresh feed should have pages available")
	}
	page, err := f.LoadMore(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page) != feedPageSize {
		t.Errorf("expected %d descriptors, got %d", feedPageSize, len(page))
	}
	if page[0].Position != 0 {
		t.Errorf("expected first page to start at position 0, got %d", page[0].Position)
	}

	second, err := f.LoadMore(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second[0].Position != feedPageSize {
		t.Errorf("expected second page to start at %d, got %d", feedPageSize, second[0].Position)
	}
}

func TestStubFeedExhaustion(t *testing.T) {
	f := NewStubFeed(zap.NewNop())
	f.page = feedMaxPages

	if f.CanLoadMore() {
		t.Error("exhausted feed should report no more pages")
	}
	if _, err := f.LoadMore(context.Background()); err == nil {
		t.Error("expected error from exhausted feed")
	}
}
