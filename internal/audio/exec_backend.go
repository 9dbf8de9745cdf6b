package audio

import (
	"errors"
	"os/exec"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// ExecBackend streams clips through an external player command
// ("mpv --no-video --really-quiet" by default). The URL is appended as
// the final argument; the player is trusted to handle buffering and
// decoding of whatever format the backend serves.
type ExecBackend struct {
	command []string
	log     zerolog.Logger
}

// NewExecBackend parses the configured player command line.
func NewExecBackend(command string, log zerolog.Logger) (*ExecBackend, error) {
	parts := strings.Fields(command)
	if len(parts) == 0 {
		return nil, errors.New("empty audio player command")
	}
	return &ExecBackend{
		command: parts,
		log:     log.With().Str("component", "audio_exec").Logger(),
	}, nil
}

// Open starts the player process for url. done fires when the process
// exits on its own; a stopped clip reports nothing.
func (b *ExecBackend) Open(url string, done func(error)) (Clip, error) {
	args := append(append([]string(nil), b.command[1:]...), url)
	cmd := exec.Command(b.command[0], args...)
	if err := cmd.Start(); err != nil {
		return nil, err
	}

	clip := &execClip{cmd: cmd}
	go func() {
		err := cmd.Wait()
		clip.mu.Lock()
		stopped := clip.stopped
		clip.mu.Unlock()
		if stopped {
			return
		}
		done(err)
	}()
	return clip, nil
}

type execClip struct {
	cmd *exec.Cmd

	mu      sync.Mutex
	stopped bool
}

func (c *execClip) Stop() {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	c.stopped = true
	c.mu.Unlock()

	if c.cmd.Process != nil {
		_ = c.cmd.Process.Kill()
	}
}
