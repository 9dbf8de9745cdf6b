package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stemsi/quizgo/internal/feedback"
	"github.com/stemsi/quizgo/internal/model"
	"github.com/stemsi/quizgo/internal/session"
)

func (a *App) handleSubmitDone(msg submitDoneMsg) (tea.Model, tea.Cmd) {
	if a.sess == nil || msg.sessionID != a.sess.ID() {
		// Stale completion for an abandoned session.
		return a, nil
	}

	if msg.err != nil {
		code := feedback.FromError(msg.err)
		if code == feedback.CodeIdentityRequired {
			// The ledger stays in memory; after re-login the user lands
			// on the retry screen, not back at question one.
			a.log.Warn().Err(msg.err).Msg("Submission blocked by identity failure")
			a.screen = screenLogin
			a.notice = feedback.Message(code)
			a.loginFocus = 0
			a.emailInput.Focus()
			a.passwordInput.Blur()
			return a, nil
		}
		a.log.Warn().Err(msg.err).Msg("Submission failed")
		a.screen = screenResult
		a.notice = feedback.Message(feedback.CodeSubmissionFailed)
		return a, nil
	}

	a.result = msg.result
	a.notice = ""
	a.screen = screenResult

	if a.histStore != nil && msg.result.Record != nil {
		rec := *msg.result.Record
		if rec.TestName == "" && a.selectedTest != nil {
			rec.TestName = a.selectedTest.Name
		}
		go func() {
			if err := a.histStore.SaveAttempt(context.Background(), rec); err != nil {
				a.log.Warn().Err(err).Msg("History cache write failed")
			}
		}()
	}

	return a, a.loadRankings(a.sess.TestID())
}

func (a *App) updateResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}

	if a.screen == screenSubmitting {
		// One submission in flight; keystrokes (including a double-tap
		// on the submit key) are ignored until it resolves.
		return a, nil
	}

	if a.leave != nil {
		switch keyMsg.String() {
		case "y", "Y":
			a.leave.Confirm()
		case "n", "N", "esc":
			a.leave.Cancel()
			a.leave = nil
		}
		return a, nil
	}

	switch keyMsg.String() {
	case "r":
		if a.result == nil && a.sess != nil && a.sess.State() == session.StateError {
			a.screen = screenSubmitting
			a.notice = ""
			return a, a.submitSession()
		}
	case "H":
		if a.result != nil {
			a.screen = screenHistory
			a.records = nil
			return a, a.loadHistory()
		}
	case "esc", "b":
		decision := a.guard.RequestLeave(a.navBackToTests)
		if decision.Blocked {
			a.leave = &decision
			a.notice = feedback.Message(feedback.CodeConfirmLeave)
		}
		return a, nil
	}
	return a, nil
}

func (a *App) viewResult() string {
	var b strings.Builder

	if a.screen == screenSubmitting {
		b.WriteString(styleTitle.Render("Mengirim hasil...") + "\n")
		return b.String()
	}

	if a.result == nil {
		// Submission failed; the completed ledger is intact.
		b.WriteString(styleTitle.Render("Pengiriman Gagal") + "\n\n")
		b.WriteString(styleError.Render("  " + a.notice) + "\n")
		if a.leave != nil {
			b.WriteString(stylePrompt.Render("  y: keluar • n: tetap di sini") + "\n")
			return b.String()
		}
		b.WriteString(styleHelp.Render("r: kirim ulang • esc: keluar"))
		return b.String()
	}

	res := a.result
	b.WriteString(styleTitle.Render("Hasil") + "\n")
	b.WriteString(styleScore.Render(fmt.Sprintf("Skor: %d", res.Score)) + "\n")
	b.WriteString(fmt.Sprintf("  Benar %d dari %d soal\n\n", res.CorrectCount, res.TotalQuestions))

	b.WriteString(styleTitle.Render("Ulasan") + "\n")
	answerByID := make(map[string]model.UserAnswer, len(res.Answers))
	for _, ua := range res.Answers {
		answerByID[ua.QuestionID] = ua
	}
	for i, q := range res.Questions {
		ua, ok := answerByID[q.ID]
		if !ok {
			continue
		}
		mark := styleIncorrect.Render("✗")
		if ua.IsCorrect {
			mark = styleCorrect.Render("✓")
		}
		given := ""
		switch {
		case ua.SelectedAnswerID != nil:
			if opt := q.OptionByID(*ua.SelectedAnswerID); opt != nil {
				given = opt.Text
			}
		case ua.AnswerText != nil:
			given = *ua.AnswerText
		}
		b.WriteString(fmt.Sprintf("  %s %d. %s — %s\n", mark, i+1, q.Content, given))
	}

	if len(a.rankings) > 0 {
		b.WriteString("\n" + styleTitle.Render("Peringkat") + "\n")
		for _, entry := range a.rankings {
			b.WriteString(fmt.Sprintf("  %2d. %-20s %d\n", entry.Rank, entry.UserName, entry.Score))
		}
	}

	b.WriteString("\n")
	if a.leave != nil {
		b.WriteString(stylePrompt.Render("  y: keluar • n: tetap di sini") + "\n")
		return b.String()
	}
	b.WriteString(styleHelp.Render("esc: kembali ke daftar tes • H: riwayat"))
	return b.String()
}
