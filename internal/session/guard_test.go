package session

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestGuardBlocksWhileInProgress(t *testing.T) {
	s, stopper := newTestSession(t, fourQuestions())
	guard := NewExitGuard(s, stopper, zerolog.Nop())

	left := false
	decision := guard.RequestLeave(func() { left = true })
	if !decision.Blocked {
		t.Fatal("leave must be intercepted while in progress")
	}
	if left {
		t.Fatal("navigation ran before confirmation")
	}

	decision.Cancel()
	if left {
		t.Error("cancel must not navigate")
	}

	decision = guard.RequestLeave(func() { left = true })
	decision.Confirm()
	if !left {
		t.Error("confirm must run the deferred navigation")
	}
	if stopper.calls == 0 {
		t.Error("confirm must stop audio before navigating")
	}
}

func TestGuardBlocksWhileSubmitting(t *testing.T) {
	s, stopper := newTestSession(t, fourQuestions())
	for _, resp := range []Response{
		{SelectedOptionID: "a"}, {SelectedOptionID: "b"}, {Text: "tiga"}, {Text: "empat"},
	} {
		s.Answer(resp)
		s.Advance()
	}
	if s.State() != StateSubmitting {
		t.Fatalf("setup: state = %s", s.State())
	}

	guard := NewExitGuard(s, stopper, zerolog.Nop())
	if decision := guard.RequestLeave(func() {}); !decision.Blocked {
		t.Error("leave must be intercepted while submitting")
	}
}

func TestGuardDisarmsPermanentlyAfterSubmission(t *testing.T) {
	s, stopper := newTestSession(t, fourQuestions())
	guard := NewExitGuard(s, stopper, zerolog.Nop())

	s.markSubmitted()

	left := 0
	if decision := guard.RequestLeave(func() { left++ }); decision.Blocked {
		t.Fatal("guard must not intercept after submission")
	}
	if left != 1 {
		t.Fatal("unblocked leave must navigate immediately")
	}
	if !guard.Disarmed() {
		t.Error("guard should report disarmed")
	}

	// Still disarmed on later requests, no double prompting.
	if decision := guard.RequestLeave(func() { left++ }); decision.Blocked {
		t.Error("disarmed guard intercepted a second leave")
	}
	if left != 2 {
		t.Error("second leave did not navigate")
	}
}
