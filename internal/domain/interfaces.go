package domain

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mocks/mocks.go -package=mocks github.com/nostrvine/playback/internal/domain PlaybackController,DecoderBackend,FeedSource,PosterFetcher,ImageProcessor

// PlaybackController is the playable handle produced by a successful
// warm-up. Callers never own the controller: it is borrowed from the slot
// pool and may be invalidated by eviction at any time, so it must be
// re-fetched after every viewport change.
type PlaybackController interface {
	// Play starts or resumes playback.
	Play(ctx context.Context) error

	// Pause halts playback keeping the decoder warm.
	Pause(ctx context.Context) error

	// Release frees the decoder resource. Idempotent; called exactly once
	// per binding by the slot pool, never by consumers.
	Release() error
}

// DecoderBackend turns a source URI into a warm playable handle.
// Implementations perform the network fetch and decoder initialization;
// Open must honor ctx cancellation (eviction cancels in-flight warm-ups).
type DecoderBackend interface {
	// Open warms up the given source and returns a ready controller.
	// Failures should wrap ErrSourceUnavailable or ErrDecodeFailure.
	Open(ctx context.Context, sourceURI string) (PlaybackController, error)
}

// FeedSource supplies ordered descriptors. Pagination is owned by the feed,
// not by the resource core.
type FeedSource interface {
	// CanLoadMore reports whether the descriptor set can still grow.
	CanLoadMore() bool

	// LoadMore fetches the next page of descriptors in feed order.
	LoadMore(ctx context.Context) ([]VideoDescriptor, error)
}

// PosterFetcher retrieves poster image bytes for the placeholder pipeline.
type PosterFetcher interface {
	// Fetch downloads image data from a URL.
	// Returns the raw image bytes or an error.
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// ImageProcessor transforms poster bytes into placeholder bytes.
// This is OS-agnostic and works purely with byte streams.
type ImageProcessor interface {
	// Process transforms image data (decode, resize, blur, re-encode).
	Process(ctx context.Context, imageData []byte) ([]byte, error)
}

// ResourceManager is the public contract of the playback resource core.
// Commands may be issued from any goroutine; they never block on I/O.
type ResourceManager interface {
	// Register makes a descriptor known. Idempotent: re-registering a known
	// identifier is a no-op. Never allocates a decoder resource.
	Register(desc VideoDescriptor)

	// RequestPreload asks the core to move the identifier toward Ready.
	// Fire-and-forget; acquisition and warm-up happen asynchronously.
	RequestPreload(id VideoID)

	// SetViewportIndex updates the current feed position, recomputes the
	// priority window, preloads entrants and evicts non-Playing leavers.
	SetViewportIndex(index int)

	// Play starts the identifier if Ready/Paused, or records a depth-1
	// "play when ready" intent superseded by any newer play/pause command.
	Play(id VideoID)

	// Pause halts the identifier if it is the active player.
	Pause(id VideoID)

	// PauseAll pauses the active player with no scheduling side effects.
	PauseAll()

	// Retry clears a Failed identifier's backoff state and re-requests it.
	Retry(id VideoID)

	// State returns a point-in-time snapshot for the identifier.
	State(id VideoID) Snapshot

	// Controller returns the borrowed playback handle, if a live slot
	// currently backs the identifier.
	Controller(id VideoID) (PlaybackController, bool)

	// CanLoadMore delegates to the feed's pagination contract.
	CanLoadMore() bool

	// Subscribe registers a state-change observer. Each batch holds the
	// coalesced transitions of one scheduling pass. Slow subscribers lose
	// batches rather than blocking the core.
	Subscribe() (token string, ch <-chan []StateChange)

	// Unsubscribe removes an observer and closes its channel.
	Unsubscribe(token string)
}

// Config exposes the tunables of the playback core.
type Config interface {
	// PoolCapacity is the hard ceiling on concurrently live decoders.
	PoolCapacity() int

	// WindowNear is the radius of the eager band around the viewport
	// (placeholders are warmed for it).
	WindowNear() int

	// WindowFar is the radius of the priority window; slots outside it are
	// eviction candidates.
	WindowFar() int

	// RetryBase is the initial delay before a Failed identifier may be
	// re-attempted.
	RetryBase() time.Duration

	// RetryFactor multiplies the delay after each consecutive failure.
	RetryFactor() float64

	// RetryMaxAttempts caps automatic retries; past it the identifier
	// stays Failed until an explicit Retry.
	RetryMaxAttempts() int

	// WarmupTimeout is the hard deadline for a single warm-up task.
	WarmupTimeout() time.Duration
}
