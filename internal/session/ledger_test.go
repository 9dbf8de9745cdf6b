package session

import (
	"errors"
	"testing"

	"github.com/stemsi/quizgo/internal/model"
)

func choiceQuestion(id, correctOptID string) model.Question {
	return model.Question{
		ID:           id,
		Content:      "pilih jawaban",
		QuestionType: model.QuestionTypeChoice,
		Options: []model.AnswerOption{
			{ID: "a", Text: "Apel", IsCorrect: correctOptID == "a"},
			{ID: "b", Text: "Bola", IsCorrect: correctOptID == "b"},
			{ID: "c", Text: "Cabe", IsCorrect: correctOptID == "c"},
		},
	}
}

func textQuestion(id, answer string) model.Question {
	return model.Question{
		ID:            id,
		Content:       "isi jawaban",
		QuestionType:  model.QuestionTypeTextEntry,
		CorrectAnswer: answer,
	}
}

func TestLedgerRecordGradesChoice(t *testing.T) {
	l := newLedger([]model.Question{choiceQuestion("q1", "b")})

	entry, err := l.Record("q1", Response{SelectedOptionID: "b"})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if !entry.IsCorrect {
		t.Error("expected correct entry for matching option id")
	}

	entry, err = l.Record("q1", Response{SelectedOptionID: "a"})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if entry.IsCorrect {
		t.Error("expected incorrect entry for non-matching option id")
	}
}

func TestLedgerRecordGradesTextEntryCaseInsensitive(t *testing.T) {
	l := newLedger([]model.Question{textQuestion("q1", "Jakarta")})

	cases := []struct {
		in      string
		correct bool
	}{
		{"Jakarta", true},
		{"jakarta", true},
		{"  JAKARTA  ", true},
		{"Bandung", false},
	}
	for _, tc := range cases {
		entry, err := l.Record("q1", Response{Text: tc.in})
		if err != nil {
			t.Fatalf("Record(%q): %v", tc.in, err)
		}
		if entry.IsCorrect != tc.correct {
			t.Errorf("Record(%q): IsCorrect = %v, want %v", tc.in, entry.IsCorrect, tc.correct)
		}
	}
}

func TestLedgerOverwritesNeverDuplicates(t *testing.T) {
	l := newLedger([]model.Question{choiceQuestion("q1", "a")})

	for _, opt := range []string{"a", "b", "c", "a", "b"} {
		if _, err := l.Record("q1", Response{SelectedOptionID: opt}); err != nil {
			t.Fatalf("Record(%s): %v", opt, err)
		}
	}

	if l.Len() != 1 {
		t.Fatalf("ledger has %d entries after repeated writes, want 1", l.Len())
	}
	entry, _ := l.EntryFor("q1")
	if entry.SelectedOptionID != "b" {
		t.Errorf("latest write should win, got option %q", entry.SelectedOptionID)
	}
}

func TestLedgerRejectsUnknownQuestion(t *testing.T) {
	l := newLedger([]model.Question{choiceQuestion("q1", "a")})

	_, err := l.Record("ghost", Response{SelectedOptionID: "a"})
	if !errors.Is(err, ErrUnknownQuestion) {
		t.Fatalf("err = %v, want ErrUnknownQuestion", err)
	}
	if l.Len() != 0 {
		t.Error("rejected write must not touch the ledger")
	}
}

func TestLedgerRejectsWrongShape(t *testing.T) {
	l := newLedger([]model.Question{
		choiceQuestion("q1", "a"),
		textQuestion("q2", "ya"),
	})

	cases := []struct {
		name string
		qID  string
		resp Response
	}{
		{"text for choice", "q1", Response{Text: "Apel"}},
		{"unknown option id", "q1", Response{SelectedOptionID: "z"}},
		{"empty response", "q1", Response{}},
		{"option for text entry", "q2", Response{SelectedOptionID: "a"}},
		{"whitespace only text", "q2", Response{Text: "   "}},
		{"both fields set", "q2", Response{SelectedOptionID: "a", Text: "ya"}},
	}
	for _, tc := range cases {
		if _, err := l.Record(tc.qID, tc.resp); !errors.Is(err, ErrResponseShape) {
			t.Errorf("%s: err = %v, want ErrResponseShape", tc.name, err)
		}
	}
	if l.Len() != 0 {
		t.Error("rejected writes must not touch the ledger")
	}
}

func TestLedgerCorrectCount(t *testing.T) {
	l := newLedger([]model.Question{
		choiceQuestion("q1", "a"),
		choiceQuestion("q2", "b"),
		textQuestion("q3", "tiga"),
	})

	l.Record("q1", Response{SelectedOptionID: "a"}) // correct
	l.Record("q2", Response{SelectedOptionID: "a"}) // wrong
	l.Record("q3", Response{Text: "tiga"})          // correct

	if got := l.CorrectCount(); got != 2 {
		t.Errorf("CorrectCount = %d, want 2", got)
	}
}
