package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/stemsi/quizgo/internal/api"
	"github.com/stemsi/quizgo/internal/audio"
	"github.com/stemsi/quizgo/internal/auth"
	"github.com/stemsi/quizgo/internal/config"
	"github.com/stemsi/quizgo/internal/feedback"
	"github.com/stemsi/quizgo/internal/history"
	"github.com/stemsi/quizgo/internal/loader"
	"github.com/stemsi/quizgo/internal/model"
	"github.com/stemsi/quizgo/internal/session"
)

type screen int

const (
	screenLogin screen = iota
	screenLevels
	screenUnits
	screenTests
	screenLoading
	screenQuiz
	screenSubmitting
	screenResult
	screenHistory
)

// App is the bubbletea model driving the whole client. All state
// mutations happen on the program's single update goroutine; async I/O
// re-enters as messages carrying generation tokens.
type App struct {
	cfg       *config.Config
	log       zerolog.Logger
	api       *api.Client
	authStore *auth.Store
	loader    *loader.Loader
	audio     *audio.Controller
	histStore *history.Store // may be nil when the cache could not open

	screen screen
	notice string
	// gen identifies the in-flight load owned by the visible screen.
	gen uuid.UUID

	user *auth.Claims

	// login
	emailInput    textinput.Model
	passwordInput textinput.Model
	loginFocus    int
	loggingIn     bool

	// catalog
	levels        []model.Level
	units         []model.Unit
	tests         []model.Test
	levelCursor   int
	unitCursor    int
	testCursor    int
	selectedLevel *model.Level
	selectedUnit  *model.Unit
	selectedTest  *model.Test

	// quiz
	sess         *session.Session
	guard        *session.ExitGuard
	submitter    *session.Submitter
	optionCursor int
	answerInput  textinput.Model
	leave        *session.LeaveDecision

	// result
	result   *session.Result
	rankings []model.RankingEntry

	// history
	records []model.HistoryRecord

	width  int
	height int
}

// NewApp wires the client core into the presentation model.
func NewApp(
	cfg *config.Config,
	apiClient *api.Client,
	authStore *auth.Store,
	ldr *loader.Loader,
	audioCtl *audio.Controller,
	histStore *history.Store,
	log zerolog.Logger,
) *App {
	email := textinput.New()
	email.Placeholder = "email"
	email.Focus()
	email.CharLimit = 100

	password := textinput.New()
	password.Placeholder = "kata sandi"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 100

	answer := textinput.New()
	answer.Placeholder = "ketik jawaban..."
	answer.CharLimit = 200

	return &App{
		cfg:           cfg,
		log:           log.With().Str("component", "tui").Logger(),
		api:           apiClient,
		authStore:     authStore,
		loader:        ldr,
		audio:         audioCtl,
		histStore:     histStore,
		emailInput:    email,
		passwordInput: password,
		answerInput:   answer,
	}
}

func (a *App) Init() tea.Cmd {
	if claims, err := a.authStore.Identity(); err == nil {
		a.user = claims
		a.screen = screenLevels
		return a.loadLevels()
	}
	a.screen = screenLogin
	return textinput.Blink
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a, nil

	case tea.KeyMsg:
		// Quitting tears the terminal down: stop audio unconditionally
		// first. A resource-safety action, not subject to the guard.
		if msg.Type == tea.KeyCtrlC {
			a.audio.StopAndRelease()
			return a, tea.Quit
		}

	case loginDoneMsg:
		return a.handleLoginDone(msg)

	case levelsLoadedMsg:
		if msg.gen != a.gen {
			return a, nil
		}
		if msg.err != nil {
			a.notice = feedback.Message(feedback.FromError(msg.err))
			return a, nil
		}
		a.levels = msg.levels
		a.notice = ""
		return a, nil

	case unitsLoadedMsg:
		if msg.gen != a.gen {
			return a, nil
		}
		if msg.err != nil {
			a.notice = feedback.Message(feedback.FromError(msg.err))
			return a, nil
		}
		a.units = msg.units
		a.notice = ""
		return a, nil

	case testsLoadedMsg:
		if msg.gen != a.gen {
			return a, nil
		}
		if msg.err != nil {
			a.notice = feedback.Message(feedback.FromError(msg.err))
			return a, nil
		}
		a.tests = msg.tests
		a.notice = ""
		return a, nil

	case questionsLoadedMsg:
		return a.handleQuestionsLoaded(msg)

	case submitDoneMsg:
		return a.handleSubmitDone(msg)

	case rankingsLoadedMsg:
		if msg.gen != a.gen {
			return a, nil
		}
		if msg.err == nil {
			a.rankings = msg.entries
		}
		return a, nil

	case historyLoadedMsg:
		if msg.gen != a.gen {
			return a, nil
		}
		if msg.err != nil {
			a.notice = feedback.Message(feedback.FromError(msg.err))
			return a, nil
		}
		a.records = msg.records
		a.notice = ""
		return a, nil
	}

	switch a.screen {
	case screenLogin:
		return a.updateLogin(msg)
	case screenLevels, screenUnits, screenTests:
		return a.updateCatalog(msg)
	case screenQuiz:
		return a.updateQuiz(msg)
	case screenResult, screenSubmitting:
		return a.updateResult(msg)
	case screenHistory:
		return a.updateHistory(msg)
	}
	return a, nil
}

func (a *App) View() string {
	switch a.screen {
	case screenLogin:
		return a.viewLogin()
	case screenLevels, screenUnits, screenTests:
		return a.viewCatalog()
	case screenLoading:
		return styleTitle.Render("Memuat soal...") + "\n" + a.noticeLine()
	case screenQuiz:
		return a.viewQuiz()
	case screenSubmitting, screenResult:
		return a.viewResult()
	case screenHistory:
		return a.viewHistory()
	}
	return ""
}

func (a *App) noticeLine() string {
	if a.notice == "" {
		return ""
	}
	return styleNotice.Render(a.notice) + "\n"
}

// ─── Async commands ─────────────────────────────────────────────────────────

func (a *App) loadLevels() tea.Cmd {
	gen := uuid.New()
	a.gen = gen
	return func() tea.Msg {
		levels, err := a.api.FetchLevels(context.Background())
		return levelsLoadedMsg{gen: gen, levels: levels, err: err}
	}
}

func (a *App) loadUnits(levelID string) tea.Cmd {
	gen := uuid.New()
	a.gen = gen
	return func() tea.Msg {
		units, err := a.api.FetchUnits(context.Background(), levelID)
		return unitsLoadedMsg{gen: gen, units: units, err: err}
	}
}

func (a *App) loadTests(unitID string) tea.Cmd {
	gen := uuid.New()
	a.gen = gen
	return func() tea.Msg {
		tests, err := a.api.FetchTests(context.Background(), unitID)
		return testsLoadedMsg{gen: gen, tests: tests, err: err}
	}
}

func (a *App) loadQuestions(testID string) tea.Cmd {
	gen := uuid.New()
	a.gen = gen
	return func() tea.Msg {
		questions, err := a.loader.Load(context.Background(), testID)
		return questionsLoadedMsg{gen: gen, questions: questions, err: err}
	}
}

func (a *App) submitSession() tea.Cmd {
	sess, sub := a.sess, a.submitter
	return func() tea.Msg {
		result, err := sub.Submit(context.Background(), sess)
		return submitDoneMsg{sessionID: sess.ID(), result: result, err: err}
	}
}

func (a *App) loadRankings(testID string) tea.Cmd {
	gen := uuid.New()
	a.gen = gen
	return func() tea.Msg {
		entries, err := a.api.FetchRankings(context.Background(), testID)
		return rankingsLoadedMsg{gen: gen, entries: entries, err: err}
	}
}

func (a *App) loadHistory() tea.Cmd {
	gen := uuid.New()
	a.gen = gen
	userID := ""
	if a.user != nil {
		userID = a.user.UserID
	}
	return func() tea.Msg {
		records, err := a.api.FetchHistory(context.Background(), userID)
		if err != nil && a.histStore != nil {
			// Offline fallback: serve the local cache.
			if cached, cacheErr := a.histStore.ListByUser(context.Background(), userID); cacheErr == nil {
				return historyLoadedMsg{gen: gen, records: cached}
			}
		}
		return historyLoadedMsg{gen: gen, records: records, err: err}
	}
}
