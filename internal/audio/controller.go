package audio

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// MediaLoadError is a failed audio load or decode. Non-fatal: the
// controller guarantees no handle is left behind when it is returned.
type MediaLoadError struct {
	Ref string
	Err error
}

func (e *MediaLoadError) Error() string {
	return fmt.Sprintf("media load failed for %s: %v", e.Ref, e.Err)
}

func (e *MediaLoadError) Unwrap() error { return e.Err }

// Clip is one playing audio resource. Stop is idempotent and must not
// block on playback draining.
type Clip interface {
	Stop()
}

// Backend opens a streamable URL and starts playback. done is invoked
// exactly once when playback ends naturally or dies with an error; it
// is never invoked for a clip that was stopped through Clip.Stop.
// It may be invoked after Stop anyway — the controller discards those.
type Backend interface {
	Open(url string, done func(error)) (Clip, error)
}

// Controller owns the application's single audio handle. Every load is
// preceded by a stop-and-release of whatever was playing; natural
// completion and playback errors release the handle without caller
// intervention, so at most one Clip exists at any observation point.
type Controller struct {
	backend Backend
	log     zerolog.Logger

	mu      sync.Mutex
	current Clip
	ref     string
	// gen increments on every lifecycle transition. Completion callbacks
	// and in-flight loads carry the generation they belong to; a mismatch
	// means the session has moved on and the event is discarded.
	gen uint64
}

// NewController creates a controller around the given playback backend.
func NewController(backend Backend, log zerolog.Logger) *Controller {
	return &Controller{
		backend: backend,
		log:     log.With().Str("component", "audio").Logger(),
	}
}

// Play stops and releases the current clip, then loads and plays ref.
// A load failure surfaces as *MediaLoadError with no dangling handle.
func (c *Controller) Play(ref string) error {
	c.mu.Lock()
	c.releaseLocked()
	c.gen++
	gen := c.gen
	c.mu.Unlock()

	// The load itself happens outside the lock: it may hit the network.
	clip, err := c.backend.Open(ref, func(playErr error) {
		c.completed(gen, ref, playErr)
	})
	if err != nil {
		c.log.Warn().Err(err).Str("ref", ref).Msg("Audio load failed")
		return &MediaLoadError{Ref: ref, Err: err}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		// Something else (stop, another play) won the race while this
		// clip was loading. It must not become the current handle.
		clip.Stop()
		return nil
	}
	c.current = clip
	c.ref = ref
	c.log.Debug().Str("ref", ref).Msg("Playing")
	return nil
}

// Toggle stops ref if it is the clip currently playing (pause semantics
// are full stop-and-release, not resume), otherwise behaves as Play.
func (c *Controller) Toggle(ref string) error {
	c.mu.Lock()
	playing := c.current != nil && c.ref == ref
	c.mu.Unlock()

	if playing {
		c.StopAndRelease()
		return nil
	}
	return c.Play(ref)
}

// StopAndRelease drops the current handle, if any. Idempotent; also
// invalidates any load still in flight.
func (c *Controller) StopAndRelease() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.releaseLocked()
	c.gen++
}

// Playing reports whether ref is the currently playing clip.
func (c *Controller) Playing(ref string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current != nil && c.ref == ref
}

func (c *Controller) releaseLocked() {
	if c.current == nil {
		return
	}
	c.current.Stop()
	c.current = nil
	c.ref = ""
}

// completed handles a backend completion callback. Stale generations —
// clips already stopped or superseded — are dropped silently.
func (c *Controller) completed(gen uint64, ref string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return
	}
	c.current = nil
	c.ref = ""
	c.gen++
	if err != nil {
		c.log.Warn().Err(err).Str("ref", ref).Msg("Playback ended with error")
		return
	}
	c.log.Debug().Str("ref", ref).Msg("Playback finished")
}
