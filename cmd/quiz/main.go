package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/stemsi/quizgo/internal/api"
	"github.com/stemsi/quizgo/internal/audio"
	"github.com/stemsi/quizgo/internal/auth"
	"github.com/stemsi/quizgo/internal/config"
	"github.com/stemsi/quizgo/internal/history"
	"github.com/stemsi/quizgo/internal/loader"
	"github.com/stemsi/quizgo/internal/logger"
	"github.com/stemsi/quizgo/internal/tui"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat, cfg.LogFile)
	log.Info().
		Str("api", cfg.APIBaseURL).
		Str("log_level", cfg.LogLevel).
		Msg("Starting QuizGo")

	// ─── Auth + API Client ─────────────────────────────────────────────
	authStore := auth.NewStore(cfg.TokenFile, log)
	httpClient := &http.Client{Timeout: cfg.RequestTimeout}
	apiClient := api.New(cfg.APIBaseURL, httpClient, authStore.Token, log)

	// ─── Audio Controller ──────────────────────────────────────────────
	backend, err := audio.NewExecBackend(cfg.AudioPlayerCmd, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid audio player command")
	}
	audioCtl := audio.NewController(backend, log)

	// ─── Local History Cache ───────────────────────────────────────────
	histStore, err := history.Open(cfg.HistoryDBPath, log)
	if err != nil {
		// The cache is an optimization; the app runs without it.
		log.Warn().Err(err).Msg("History cache unavailable")
		histStore = nil
	} else {
		defer histStore.Close()
	}

	// ─── Question Loader ───────────────────────────────────────────────
	ldr := loader.New(apiClient, nil, log)

	// ─── Run UI ────────────────────────────────────────────────────────
	app := tui.NewApp(cfg, apiClient, authStore, ldr, audioCtl, histStore, log)
	program := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := program.Run(); err != nil {
		log.Error().Err(err).Msg("UI error")
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// The terminal is gone; make sure no player process outlives it.
	audioCtl.StopAndRelease()
	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
