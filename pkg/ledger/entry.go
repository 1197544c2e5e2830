// pkg/ledger/entry.go
package ledger

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/smith3v/tg-vocab-coach/pkg/content"
	"github.com/smith3v/tg-vocab-coach/pkg/db"
	"gorm.io/datatypes"
)

// Status is the recorded state of one exercise for one word.
type Status string

const (
	StatusUntested  Status = "untested"
	StatusCorrect   Status = "correct"
	StatusIncorrect Status = "incorrect"
)

// Source records where a word entered the ledger. A word present in both
// the flashcard deck and the generated exercises is attributed to the
// flashcard deck.
type Source string

const (
	SourceFlashcard Source = "ANKI"
	SourceGenerated Source = "GPT"
)

// Entry is the tracked state of one word.
type Entry struct {
	Word             string
	Active           bool
	Source           Source
	DateAdded        time.Time
	WritingCompleted bool
	Progress         map[string]Status
	MasteryCount     int
}

// Result is one graded answer fed back from a quiz.
type Result struct {
	Word       string
	Outcome    Status // StatusCorrect or StatusIncorrect
	Identifier string
	Kind       content.ExerciseKind
}

func allCorrect(progress map[string]Status) bool {
	for _, status := range progress {
		if status != StatusCorrect {
			return false
		}
	}
	return true
}

func cloneEntry(e Entry) Entry {
	progress := make(map[string]Status, len(e.Progress))
	for id, status := range e.Progress {
		progress[id] = status
	}
	e.Progress = progress
	return e
}

func cloneEntries(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[i] = cloneEntry(e)
	}
	return out
}

func toModel(e Entry, language string) (db.VocabularyEntry, error) {
	progress := e.Progress
	if progress == nil {
		progress = map[string]Status{}
	}
	raw, err := json.Marshal(progress)
	if err != nil {
		return db.VocabularyEntry{}, err
	}
	return db.VocabularyEntry{
		Language:         language,
		Word:             e.Word,
		Active:           e.Active,
		Source:           string(e.Source),
		DateAdded:        e.DateAdded,
		WritingCompleted: e.WritingCompleted,
		Progress:         datatypes.JSON(raw),
		MasteryCount:     e.MasteryCount,
	}, nil
}

func fromModel(row db.VocabularyEntry) (Entry, bool) {
	// Corrupted rows with comma-joined words came from early bulk imports
	// and are dropped on load.
	if strings.Contains(row.Word, ",") {
		return Entry{}, false
	}
	progress := map[string]Status{}
	if len(row.Progress) > 0 {
		if err := json.Unmarshal(row.Progress, &progress); err != nil {
			progress = map[string]Status{}
		}
	}
	return Entry{
		Word:             row.Word,
		Active:           row.Active,
		Source:           Source(row.Source),
		DateAdded:        row.DateAdded,
		WritingCompleted: row.WritingCompleted,
		Progress:         progress,
		MasteryCount:     row.MasteryCount,
	}, true
}
