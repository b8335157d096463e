package domain

import "time"

// VideoID is the opaque content-addressed identifier of a clip
// (typically the hex event id of the post that carried it). Immutable.
type VideoID string

// VideoDescriptor describes a clip the feed has registered. Created once
// when the feed hands the clip to the resource manager; never mutated.
// Many descriptors exist with no backing decoder resource.
type VideoDescriptor struct {
	// ID uniquely identifies the clip.
	ID VideoID
	// SourceURI is the playable media location handed to the decoder backend.
	SourceURI string
	// PosterURI optionally points at a still used for the blurred
	// placeholder shown while the decoder warms up. May be empty.
	PosterURI string
	// Duration is the declared clip length (most clips are ~6s).
	Duration time.Duration
	// Position is the clip's arrival order in the feed. The scheduler
	// addresses clips by this index.
	Position int
}

// ResourceState is the lifecycle state of one identifier. Exactly one state
// exists per identifier and it is owned exclusively by the resource manager.
type ResourceState int

const (
	// StateUnregistered means no descriptor, or an evicted identifier whose
	// descriptor was retained for cheap re-request.
	StateUnregistered ResourceState = iota
	// StateRegistered means the descriptor is known but no slot is held.
	StateRegistered
	// StatePreparing means a slot is bound and warm-up is in flight.
	StatePreparing
	// StateReady means the decoder is warm and playback can start instantly.
	StateReady
	// StatePlaying means the clip is the single active player.
	StatePlaying
	// StatePaused means playback was started and explicitly paused.
	StatePaused
	// StateFailed means warm-up failed; the failure reason is captured on
	// the snapshot and retries are gated by the backoff policy.
	StateFailed
)

// String returns a human-readable state name for logs.
func (s ResourceState) String() string {
	switch s {
	case StateUnregistered:
		return "Unregistered"
	case StateRegistered:
		return "Registered"
	case StatePreparing:
		return "Preparing"
	case StateReady:
		return "Ready"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// HoldsSlot reports whether the state implies a live slot binding.
// Preparing/Ready/Playing/Paused hold a slot, all others do not.
func (s ResourceState) HoldsSlot() bool {
	switch s {
	case StatePreparing, StateReady, StatePlaying, StatePaused:
		return true
	default:
		return false
	}
}

// Snapshot is a point-in-time read of one identifier's state. Err is set
// only when State is StateFailed.
type Snapshot struct {
	ID    VideoID
	State ResourceState
	Err   error
}

// StateChange describes a single observed transition. Subscribers receive
// them batched, one batch per scheduling pass, in transition order.
type StateChange struct {
	ID   VideoID
	From ResourceState
	To   ResourceState
	// Err carries the warm-up failure when To is StateFailed.
	Err error
}
