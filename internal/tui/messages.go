package tui

import (
	"github.com/google/uuid"

	"github.com/stemsi/quizgo/internal/model"
	"github.com/stemsi/quizgo/internal/session"
)

// Async completions re-enter the single update loop as messages. Load
// and submit results carry the generation (uuid) of the request that
// started them; a mismatch with the app's current generation means the
// user has already navigated away and the message is discarded.

type loginDoneMsg struct {
	resp *model.LoginResponse
	err  error
}

type levelsLoadedMsg struct {
	gen    uuid.UUID
	levels []model.Level
	err    error
}

type unitsLoadedMsg struct {
	gen   uuid.UUID
	units []model.Unit
	err   error
}

type testsLoadedMsg struct {
	gen   uuid.UUID
	tests []model.Test
	err   error
}

type questionsLoadedMsg struct {
	gen       uuid.UUID
	questions []model.Question
	err       error
}

type submitDoneMsg struct {
	sessionID uuid.UUID
	result    *session.Result
	err       error
}

type historyLoadedMsg struct {
	gen     uuid.UUID
	records []model.HistoryRecord
	err     error
}

type rankingsLoadedMsg struct {
	gen     uuid.UUID
	entries []model.RankingEntry
	err     error
}
