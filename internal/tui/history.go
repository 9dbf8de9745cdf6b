package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (a *App) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}

	switch keyMsg.String() {
	case "esc", "b":
		a.screen = screenLevels
		return a, a.loadLevels()
	case "r":
		return a, a.loadHistory()
	}
	return a, nil
}

func (a *App) viewHistory() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("Riwayat") + "\n\n")

	if len(a.records) == 0 {
		b.WriteString(styleSubtle.Render("  belum ada riwayat") + "\n")
	}
	for _, rec := range a.records {
		name := rec.TestName
		if name == "" {
			name = rec.TestID
		}
		b.WriteString(fmt.Sprintf("  %s  %-24s  skor %3d  (%d/%d)\n",
			rec.SubmittedAt.Format("2006-01-02 15:04"),
			name, rec.Score, rec.CorrectAnswers, rec.TotalQuestions))
	}

	b.WriteString("\n" + a.noticeLine())
	b.WriteString(styleHelp.Render("esc: kembali • r: muat ulang"))
	return b.String()
}
