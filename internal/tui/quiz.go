package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stemsi/quizgo/internal/feedback"
	"github.com/stemsi/quizgo/internal/model"
	"github.com/stemsi/quizgo/internal/session"
)

func (a *App) handleQuestionsLoaded(msg questionsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.gen != a.gen {
		// The user already left this loading screen; a defunct session
		// must not be constructed from a stale response.
		return a, nil
	}
	if msg.err != nil {
		a.log.Warn().Err(msg.err).Msg("Question set load failed")
		a.screen = screenTests
		a.notice = feedback.Message(feedback.FromError(msg.err))
		return a, nil
	}

	sess, err := session.New(a.selectedTest.ID, msg.questions, a.audio, a.log)
	if err != nil {
		a.screen = screenTests
		a.notice = feedback.Message(feedback.CodeNoQuestions)
		return a, nil
	}
	a.sess = sess
	a.guard = session.NewExitGuard(sess, a.audio, a.log)
	a.submitter = session.NewSubmitter(a.api, a.authStore, a.log)
	a.result = nil
	a.rankings = nil
	a.notice = ""
	a.screen = screenQuiz
	a.api.NotifyTestStart(a.selectedTest.ID)
	a.syncQuizWidgets()
	return a, nil
}

// syncQuizWidgets repopulates the answer widgets from the ledger after
// every pointer move, so a revisited question shows its recorded answer.
func (a *App) syncQuizWidgets() {
	q := a.sess.Current()
	entry, answered := a.sess.EntryFor(q.ID)

	switch q.QuestionType {
	case model.QuestionTypeChoice:
		a.answerInput.Blur()
		a.optionCursor = 0
		if answered {
			for i := range q.Options {
				if q.Options[i].ID == entry.SelectedOptionID {
					a.optionCursor = i
					break
				}
			}
		}
	case model.QuestionTypeTextEntry:
		a.answerInput.SetValue("")
		if answered {
			a.answerInput.SetValue(entry.AnswerText)
		}
		a.answerInput.CursorEnd()
		a.answerInput.Focus()
	}
}

// navBackToTests tears the active session down and returns to the test
// list. Only ever invoked through the exit guard.
func (a *App) navBackToTests() {
	a.sess = nil
	a.guard = nil
	a.submitter = nil
	a.result = nil
	a.rankings = nil
	a.leave = nil
	a.notice = ""
	a.screen = screenTests
}

func (a *App) updateQuiz(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return a.updateAnswerInput(msg)
	}

	// Pending leave confirmation swallows every key until resolved.
	if a.leave != nil {
		switch keyMsg.String() {
		case "y", "Y":
			a.leave.Confirm()
		case "n", "N", "esc":
			a.leave.Cancel()
			a.leave = nil
			a.notice = ""
		}
		return a, nil
	}

	q := a.sess.Current()

	switch keyMsg.String() {
	case "esc":
		decision := a.guard.RequestLeave(a.navBackToTests)
		if decision.Blocked {
			a.leave = &decision
			a.notice = feedback.Message(feedback.CodeConfirmLeave)
		}
		return a, nil

	case "ctrl+o":
		if q.AudioPath == "" {
			return a, nil
		}
		if err := a.audio.Toggle(a.api.MediaURL(q.AudioPath)); err != nil {
			a.notice = feedback.Message(feedback.FromError(err))
		}
		return a, nil

	case "right", "pgdown":
		return a.advanceQuiz()

	case "left", "pgup":
		if err := a.sess.Retreat(); err == nil {
			a.notice = ""
			a.syncQuizWidgets()
		}
		return a, nil
	}

	switch q.QuestionType {
	case model.QuestionTypeChoice:
		switch keyMsg.String() {
		case "up", "k":
			if a.optionCursor > 0 {
				a.optionCursor--
			}
		case "down", "j":
			if a.optionCursor < len(q.Options)-1 {
				a.optionCursor++
			}
		case "enter", " ":
			resp := session.Response{SelectedOptionID: q.Options[a.optionCursor].ID}
			if _, err := a.sess.Answer(resp); err != nil {
				a.notice = feedback.Message(feedback.FromError(err))
			} else {
				a.notice = ""
			}
		}
		return a, nil

	case model.QuestionTypeTextEntry:
		if keyMsg.Type == tea.KeyEnter {
			text := strings.TrimSpace(a.answerInput.Value())
			if text == "" {
				a.notice = feedback.Message(feedback.CodeIncompleteAnswer)
				return a, nil
			}
			if _, err := a.sess.Answer(session.Response{Text: text}); err != nil {
				a.notice = feedback.Message(feedback.FromError(err))
			} else {
				a.notice = ""
			}
			return a, nil
		}
		return a.updateAnswerInput(msg)
	}

	return a, nil
}

func (a *App) updateAnswerInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	a.answerInput, cmd = a.answerInput.Update(msg)
	return a, cmd
}

func (a *App) advanceQuiz() (tea.Model, tea.Cmd) {
	// For TEXT_ENTRY, typing without pressing enter still counts: record
	// the pending input before the completeness check.
	q := a.sess.Current()
	if q.QuestionType == model.QuestionTypeTextEntry {
		if text := strings.TrimSpace(a.answerInput.Value()); text != "" {
			if _, err := a.sess.Answer(session.Response{Text: text}); err != nil {
				a.notice = feedback.Message(feedback.FromError(err))
				return a, nil
			}
		}
	}

	submitTriggered, err := a.sess.Advance()
	if err != nil {
		a.notice = feedback.Message(feedback.FromError(err))
		return a, nil
	}
	a.notice = ""
	if submitTriggered {
		a.screen = screenSubmitting
		return a, a.submitSession()
	}
	a.syncQuizWidgets()
	return a, nil
}

func (a *App) viewQuiz() string {
	q := a.sess.Current()
	var b strings.Builder

	header := fmt.Sprintf("Soal %d/%d", a.sess.Index()+1, a.sess.Len())
	b.WriteString(styleTitle.Render(header) + "\n\n")
	b.WriteString("  " + q.Content + "\n")

	if q.ImagePath != "" {
		b.WriteString(styleSubtle.Render("  [gambar: "+a.api.MediaURL(q.ImagePath)+"]") + "\n")
	}
	if q.AudioPath != "" {
		tag := "  [audio — ctrl+o untuk putar]"
		if a.audio.Playing(a.api.MediaURL(q.AudioPath)) {
			tag = "  [audio ▶ diputar — ctrl+o untuk berhenti]"
		}
		b.WriteString(styleAudioTag.Render(tag) + "\n")
	}
	b.WriteString("\n")

	entry, answered := a.sess.EntryFor(q.ID)

	switch q.QuestionType {
	case model.QuestionTypeChoice:
		for i, opt := range q.Options {
			marker := "  "
			if answered && entry.SelectedOptionID == opt.ID {
				marker = styleSelected.Render("● ")
			}
			line := marker + opt.Text
			if i == a.optionCursor {
				line = styleCursor.Render("> ") + line
			} else {
				line = "  " + line
			}
			b.WriteString("  " + line + "\n")
		}
	case model.QuestionTypeTextEntry:
		b.WriteString("  " + a.answerInput.View() + "\n")
		if answered {
			b.WriteString(styleSubtle.Render("  jawaban tersimpan: "+entry.AnswerText) + "\n")
		}
	}

	b.WriteString("\n" + a.noticeLine())

	if a.leave != nil {
		b.WriteString(stylePrompt.Render("  y: keluar • n: lanjut mengerjakan") + "\n")
		return b.String()
	}

	help := "enter: jawab • →: lanjut • ←: kembali • esc: keluar"
	if a.sess.Index() == a.sess.Len()-1 {
		help = "enter: jawab • →: kumpulkan • ←: kembali • esc: keluar"
	}
	b.WriteString(styleHelp.Render(help))
	return b.String()
}
