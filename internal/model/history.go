package model

import "time"

// UserAnswer is one serialized ledger row inside a history submission.
// Exactly one of SelectedAnswerID / AnswerText is set, depending on
// QuestionType.
type UserAnswer struct {
	QuestionID       string       `json:"questionId"`
	SelectedAnswerID *string      `json:"selectedAnswerId"`
	AnswerText       *string      `json:"answerText"`
	IsCorrect        bool         `json:"isCorrect"`
	QuestionType     QuestionType `json:"questionType"`
}

// HistorySubmission is the POST /history request body.
type HistorySubmission struct {
	UserID         string       `json:"userId"`
	TestID         string       `json:"testId"`
	Score          int          `json:"score"`
	TotalQuestions int          `json:"totalQuestions"`
	CorrectAnswers int          `json:"correctAnswers"`
	UserAnswers    []UserAnswer `json:"userAnswers"`
}

// HistoryRecord is a completed attempt as acknowledged by the backend
// and cached locally for the history screen.
type HistoryRecord struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	TestID         string    `json:"testId"`
	TestName       string    `json:"testName,omitempty"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	CorrectAnswers int       `json:"correctAnswers"`
	SubmittedAt    time.Time `json:"submittedAt"`
}

// RankingEntry is one row of a test's leaderboard.
type RankingEntry struct {
	Rank     int    `json:"rank"`
	UserName string `json:"userName"`
	Score    int    `json:"score"`
}
