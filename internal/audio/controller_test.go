package audio

import (
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

// fakeBackend tracks every clip it ever opened so tests can count how
// many are live at once.
type fakeBackend struct {
	mu      sync.Mutex
	clips   []*fakeClip
	openErr error
	// onOpen, when set, runs inside Open before the clip is returned.
	// Used to race a stop against an in-flight load.
	onOpen func()
}

type fakeClip struct {
	mu      sync.Mutex
	ref     string
	stopped bool
	done    func(error)
}

func (c *fakeClip) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopped = true
}

func (c *fakeClip) isStopped() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopped
}

// finish simulates natural end-of-playback.
func (c *fakeClip) finish(err error) { c.done(err) }

func (b *fakeBackend) Open(url string, done func(error)) (Clip, error) {
	if b.onOpen != nil {
		b.onOpen()
	}
	if b.openErr != nil {
		return nil, b.openErr
	}
	clip := &fakeClip{ref: url, done: done}
	b.mu.Lock()
	b.clips = append(b.clips, clip)
	b.mu.Unlock()
	return clip, nil
}

func (b *fakeBackend) live() []*fakeClip {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []*fakeClip
	for _, c := range b.clips {
		if !c.isStopped() {
			out = append(out, c)
		}
	}
	return out
}

func newTestController(b *fakeBackend) *Controller {
	return NewController(b, zerolog.Nop())
}

func TestPlayReleasesPreviousClip(t *testing.T) {
	backend := &fakeBackend{}
	ctl := newTestController(backend)

	if err := ctl.Play("q1.mp3"); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if err := ctl.Play("q2.mp3"); err != nil {
		t.Fatalf("Play: %v", err)
	}

	live := backend.live()
	if len(live) != 1 {
		t.Fatalf("%d live clips, want 1", len(live))
	}
	if live[0].ref != "q2.mp3" {
		t.Errorf("live clip is %s, want q2.mp3", live[0].ref)
	}
	if !ctl.Playing("q2.mp3") || ctl.Playing("q1.mp3") {
		t.Error("Playing does not track the current ref")
	}
}

func TestStopAndReleaseIsIdempotent(t *testing.T) {
	backend := &fakeBackend{}
	ctl := newTestController(backend)

	if err := ctl.Play("q1.mp3"); err != nil {
		t.Fatalf("Play: %v", err)
	}
	ctl.StopAndRelease()
	ctl.StopAndRelease()
	ctl.StopAndRelease()

	if len(backend.live()) != 0 {
		t.Error("clip still live after stop")
	}
	if ctl.Playing("q1.mp3") {
		t.Error("Playing reports true after stop")
	}
}

func TestToggleStopsCurrentAndStartsOther(t *testing.T) {
	backend := &fakeBackend{}
	ctl := newTestController(backend)

	if err := ctl.Toggle("q1.mp3"); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if !ctl.Playing("q1.mp3") {
		t.Fatal("first toggle should start playback")
	}

	// Same ref: stop-and-release, not resume.
	if err := ctl.Toggle("q1.mp3"); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if ctl.Playing("q1.mp3") {
		t.Fatal("second toggle of the same ref should stop it")
	}

	// Different ref while nothing plays: plain play.
	if err := ctl.Toggle("q2.mp3"); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if live := backend.live(); len(live) != 1 || live[0].ref != "q2.mp3" {
		t.Fatalf("unexpected live set: %v", live)
	}
}

func TestNaturalCompletionReleasesHandle(t *testing.T) {
	backend := &fakeBackend{}
	ctl := newTestController(backend)

	if err := ctl.Play("q1.mp3"); err != nil {
		t.Fatalf("Play: %v", err)
	}
	backend.clips[0].finish(nil)

	if ctl.Playing("q1.mp3") {
		t.Error("handle not released on natural completion")
	}
	// A later stop must not double-release anything.
	ctl.StopAndRelease()
}

func TestPlaybackErrorReleasesHandle(t *testing.T) {
	backend := &fakeBackend{}
	ctl := newTestController(backend)

	if err := ctl.Play("q1.mp3"); err != nil {
		t.Fatalf("Play: %v", err)
	}
	backend.clips[0].finish(errors.New("decoder died"))

	if ctl.Playing("q1.mp3") {
		t.Error("handle not released on playback error")
	}
}

func TestStaleCompletionIgnored(t *testing.T) {
	backend := &fakeBackend{}
	ctl := newTestController(backend)

	if err := ctl.Play("q1.mp3"); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if err := ctl.Play("q2.mp3"); err != nil {
		t.Fatalf("Play: %v", err)
	}

	// Completion from the superseded clip arrives late.
	backend.clips[0].finish(nil)

	if !ctl.Playing("q2.mp3") {
		t.Error("stale completion released the current clip")
	}
}

func TestLoadFailureLeavesNoHandle(t *testing.T) {
	backend := &fakeBackend{openErr: errors.New("404")}
	ctl := newTestController(backend)

	err := ctl.Play("missing.mp3")
	var mle *MediaLoadError
	if !errors.As(err, &mle) {
		t.Fatalf("err = %v, want *MediaLoadError", err)
	}
	if mle.Ref != "missing.mp3" {
		t.Errorf("Ref = %s", mle.Ref)
	}
	if ctl.Playing("missing.mp3") {
		t.Error("failed load left a handle behind")
	}
	// The controller must still be usable.
	backend.openErr = nil
	if err := ctl.Play("next.mp3"); err != nil {
		t.Fatalf("Play after failure: %v", err)
	}
}

func TestStopDuringLoadSupersedesClip(t *testing.T) {
	backend := &fakeBackend{}
	ctl := newTestController(backend)

	// Stop fires while Open is still running, invalidating the load's
	// generation: the arriving clip must be stopped, not installed.
	backend.onOpen = func() { ctl.StopAndRelease() }
	if err := ctl.Play("q1.mp3"); err != nil {
		t.Fatalf("Play: %v", err)
	}
	backend.onOpen = nil

	if len(backend.live()) != 0 {
		t.Error("superseded in-flight clip became live")
	}
	if ctl.Playing("q1.mp3") {
		t.Error("controller claims to be playing a superseded clip")
	}
}
