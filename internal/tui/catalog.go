package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// updateCatalog drives the levels → units → tests drill-down.
func (a *App) updateCatalog(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		a.moveCatalogCursor(-1)
	case "down", "j":
		a.moveCatalogCursor(1)
	case "enter", "right", "l":
		return a.enterCatalogItem()
	case "esc", "left", "h":
		return a.backCatalog()
	case "r":
		return a, a.reloadCatalog()
	case "H":
		a.screen = screenHistory
		a.records = nil
		return a, a.loadHistory()
	case "q":
		a.audio.StopAndRelease()
		return a, tea.Quit
	}
	return a, nil
}

func (a *App) moveCatalogCursor(delta int) {
	move := func(cursor, length int) int {
		if length == 0 {
			return 0
		}
		cursor += delta
		if cursor < 0 {
			cursor = 0
		}
		if cursor > length-1 {
			cursor = length - 1
		}
		return cursor
	}
	switch a.screen {
	case screenLevels:
		a.levelCursor = move(a.levelCursor, len(a.levels))
	case screenUnits:
		a.unitCursor = move(a.unitCursor, len(a.units))
	case screenTests:
		a.testCursor = move(a.testCursor, len(a.tests))
	}
}

func (a *App) enterCatalogItem() (tea.Model, tea.Cmd) {
	switch a.screen {
	case screenLevels:
		if len(a.levels) == 0 {
			return a, nil
		}
		a.selectedLevel = &a.levels[a.levelCursor]
		a.screen = screenUnits
		a.units = nil
		a.unitCursor = 0
		return a, a.loadUnits(a.selectedLevel.ID)

	case screenUnits:
		if len(a.units) == 0 {
			return a, nil
		}
		a.selectedUnit = &a.units[a.unitCursor]
		a.screen = screenTests
		a.tests = nil
		a.testCursor = 0
		return a, a.loadTests(a.selectedUnit.ID)

	case screenTests:
		if len(a.tests) == 0 {
			return a, nil
		}
		a.selectedTest = &a.tests[a.testCursor]
		a.screen = screenLoading
		a.notice = ""
		return a, a.loadQuestions(a.selectedTest.ID)
	}
	return a, nil
}

func (a *App) backCatalog() (tea.Model, tea.Cmd) {
	switch a.screen {
	case screenUnits:
		a.screen = screenLevels
		return a, a.loadLevels()
	case screenTests:
		a.screen = screenUnits
		if a.selectedLevel != nil {
			return a, a.loadUnits(a.selectedLevel.ID)
		}
	}
	return a, nil
}

func (a *App) reloadCatalog() tea.Cmd {
	switch a.screen {
	case screenLevels:
		return a.loadLevels()
	case screenUnits:
		if a.selectedLevel != nil {
			return a.loadUnits(a.selectedLevel.ID)
		}
	case screenTests:
		if a.selectedUnit != nil {
			return a.loadTests(a.selectedUnit.ID)
		}
	}
	return nil
}

func (a *App) viewCatalog() string {
	var b strings.Builder

	switch a.screen {
	case screenLevels:
		b.WriteString(styleTitle.Render("Pilih Level") + "\n\n")
		for i, level := range a.levels {
			b.WriteString(a.cursorLine(i == a.levelCursor, level.Name) + "\n")
		}
		if len(a.levels) == 0 {
			b.WriteString(styleSubtle.Render("  (kosong)") + "\n")
		}

	case screenUnits:
		b.WriteString(styleTitle.Render("Level: "+a.selectedLevel.Name) + "\n\n")
		for i, unit := range a.units {
			b.WriteString(a.cursorLine(i == a.unitCursor, unit.Name) + "\n")
		}
		if len(a.units) == 0 {
			b.WriteString(styleSubtle.Render("  (kosong)") + "\n")
		}

	case screenTests:
		b.WriteString(styleTitle.Render("Unit: "+a.selectedUnit.Name) + "\n\n")
		for i, test := range a.tests {
			label := fmt.Sprintf("%s  %s", test.Name,
				styleSubtle.Render(fmt.Sprintf("(%d soal, dimainkan %d kali)", test.QuestionCount, test.PlayCount)))
			b.WriteString(a.cursorLine(i == a.testCursor, label) + "\n")
		}
		if len(a.tests) == 0 {
			b.WriteString(styleSubtle.Render("  (kosong)") + "\n")
		}
	}

	b.WriteString("\n" + a.noticeLine())
	b.WriteString(styleHelp.Render("↑/↓: pilih • enter: buka • esc: kembali • r: muat ulang • H: riwayat • q: keluar"))
	return b.String()
}

func (a *App) cursorLine(selected bool, label string) string {
	if selected {
		return styleCursor.Render("> ") + styleSelected.Render(label)
	}
	return "  " + label
}
