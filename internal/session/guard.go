package session

import "github.com/rs/zerolog"

// LeaveDecision is what a navigation request gets back from the guard.
// When Blocked, the presentation layer shows a confirmation prompt and
// invokes exactly one of Confirm or Cancel; Confirm stops audio and
// then runs the navigation the user originally asked for.
type LeaveDecision struct {
	Blocked bool
	Confirm func()
	Cancel  func()
}

// ExitGuard intercepts navigation away from an unsubmitted session.
// Once the session reaches SUBMITTED the guard disarms permanently for
// this session instance — later leave requests pass straight through,
// so a legitimate post-submission navigation is never double-prompted.
type ExitGuard struct {
	session  *Session
	audio    AudioStopper
	log      zerolog.Logger
	disarmed bool
}

// NewExitGuard creates a guard observing the given session.
func NewExitGuard(s *Session, audio AudioStopper, log zerolog.Logger) *ExitGuard {
	return &ExitGuard{
		session: s,
		audio:   audio,
		log:     log.With().Str("component", "exit_guard").Logger(),
	}
}

// RequestLeave converts a navigation request into a decision. proceed
// is the deferred navigation; it runs immediately when unblocked, or
// inside Confirm after the user agrees to abandon the session.
// Audio is stopped on every path that actually leaves the screen —
// that is a resource-safety action, independent of the confirmation.
func (g *ExitGuard) RequestLeave(proceed func()) LeaveDecision {
	if g.disarmed || g.session.State() == StateSubmitted {
		g.disarmed = true
		g.audio.StopAndRelease()
		proceed()
		return LeaveDecision{Blocked: false}
	}

	g.log.Debug().Str("state", string(g.session.State())).Msg("Leave intercepted")
	return LeaveDecision{
		Blocked: true,
		Confirm: func() {
			g.audio.StopAndRelease()
			proceed()
		},
		Cancel: func() {},
	}
}

// Disarmed reports whether the guard has permanently stood down.
func (g *ExitGuard) Disarmed() bool { return g.disarmed }
