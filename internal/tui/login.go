package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stemsi/quizgo/internal/feedback"
	"github.com/stemsi/quizgo/internal/model"
	"github.com/stemsi/quizgo/internal/session"
	"github.com/stemsi/quizgo/internal/validator"
)

func (a *App) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return a.updateLoginInputs(msg)
	}

	switch keyMsg.Type {
	case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
		a.loginFocus = (a.loginFocus + 1) % 2
		if a.loginFocus == 0 {
			a.emailInput.Focus()
			a.passwordInput.Blur()
		} else {
			a.emailInput.Blur()
			a.passwordInput.Focus()
		}
		return a, textinput.Blink

	case tea.KeyEnter:
		if a.loggingIn {
			return a, nil
		}
		req := model.LoginRequest{
			Email:    strings.TrimSpace(a.emailInput.Value()),
			Password: a.passwordInput.Value(),
		}
		if fields := validator.Struct(req); fields != nil {
			a.notice = feedback.Message(feedback.CodeLoginFailed)
			return a, nil
		}
		a.loggingIn = true
		a.notice = ""
		return a, func() tea.Msg {
			resp, err := a.api.Login(context.Background(), req)
			return loginDoneMsg{resp: resp, err: err}
		}
	}

	return a.updateLoginInputs(msg)
}

func (a *App) updateLoginInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	a.emailInput, cmd = a.emailInput.Update(msg)
	cmds = append(cmds, cmd)
	a.passwordInput, cmd = a.passwordInput.Update(msg)
	cmds = append(cmds, cmd)
	return a, tea.Batch(cmds...)
}

func (a *App) handleLoginDone(msg loginDoneMsg) (tea.Model, tea.Cmd) {
	a.loggingIn = false
	if msg.err != nil {
		a.log.Warn().Err(msg.err).Msg("Login failed")
		a.notice = feedback.Message(feedback.CodeLoginFailed)
		return a, nil
	}

	if err := a.authStore.Save(msg.resp.Token); err != nil {
		a.log.Error().Err(err).Msg("Token persist failed")
	}
	claims, err := a.authStore.Identity()
	if err != nil {
		a.notice = feedback.Message(feedback.CodeIdentityRequired)
		return a, nil
	}
	a.user = claims
	a.notice = ""
	a.passwordInput.SetValue("")

	// A session stranded on an identity failure keeps its ledger; the
	// user resumes at the retry screen instead of redoing the quiz.
	if a.sess != nil && a.sess.State() == session.StateError {
		a.screen = screenResult
		return a, nil
	}

	a.screen = screenLevels
	return a, a.loadLevels()
}

func (a *App) viewLogin() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("QuizGo — Masuk") + "\n\n")
	b.WriteString("  " + a.emailInput.View() + "\n")
	b.WriteString("  " + a.passwordInput.View() + "\n\n")
	if a.loggingIn {
		b.WriteString(styleSubtle.Render("  masuk...") + "\n")
	}
	b.WriteString(a.noticeLine())
	b.WriteString(styleHelp.Render("tab: pindah kolom • enter: masuk • ctrl+c: keluar"))
	return b.String()
}
