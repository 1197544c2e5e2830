package ledger

import (
	"testing"
	"time"

	"github.com/smith3v/tg-vocab-coach/pkg/content"
	"github.com/smith3v/tg-vocab-coach/pkg/db"
	"github.com/smith3v/tg-vocab-coach/pkg/internal/testutil"
	"github.com/smith3v/tg-vocab-coach/pkg/logger"
	"gorm.io/datatypes"
)

func fixedNow() time.Time {
	return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	testutil.SetupTestDB(t)
	logger.SetLogLevel(logger.ERROR)
	return NewStore("en", fixedNow)
}

func fullLibrary() *content.Library {
	cards := []content.Flashcard{
		{Front: "alpha", Back: "beta", Example: "An alpha sentence."},
	}
	exercises := []content.GeneratedExercise{
		{
			Kind:         "1-Synonym-Match",
			Prompt:       "Pick the synonym of solo",
			Options:      []string{"alone", "group", "loud", "slow"},
			Correct:      []string{"alone"},
			PrimaryWords: []string{"solo"},
			Level:        "B1",
		},
	}
	return content.NewLibrary("en", cards, exercises)
}

func trimmedLibrary() *content.Library {
	cards := []content.Flashcard{
		{Front: "alpha", Back: "beta"},
	}
	return content.NewLibrary("en", cards, nil)
}

func TestSyncCreatesEntries(t *testing.T) {
	store := newTestStore(t)

	entries := store.Sync(fullLibrary())
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	byWord := make(map[string]Entry, len(entries))
	for _, entry := range entries {
		byWord[entry.Word] = entry
	}

	alpha, ok := byWord["alpha"]
	if !ok {
		t.Fatalf("expected an entry for alpha")
	}
	if !alpha.Active || alpha.Source != SourceFlashcard {
		t.Fatalf("unexpected alpha entry: %+v", alpha)
	}
	if !alpha.DateAdded.Equal(fixedNow()) {
		t.Fatalf("expected injected clock for DateAdded, got %v", alpha.DateAdded)
	}
	if len(alpha.Progress) != 4 {
		t.Fatalf("expected 4 exercises for alpha, got %v", alpha.Progress)
	}
	for id, status := range alpha.Progress {
		if status != StatusUntested {
			t.Fatalf("expected untested status for %q, got %q", id, status)
		}
	}

	solo, ok := byWord["solo"]
	if !ok {
		t.Fatalf("expected an entry for solo")
	}
	if solo.Source != SourceGenerated {
		t.Fatalf("expected generated source for solo, got %q", solo.Source)
	}
	if len(solo.Progress) != 1 {
		t.Fatalf("expected 1 exercise for solo, got %v", solo.Progress)
	}
}

func TestSyncIsIdempotent(t *testing.T) {
	store := newTestStore(t)

	store.Sync(fullLibrary())
	first := store.Entries()
	second := store.Sync(fullLibrary())

	if len(first) != len(second) {
		t.Fatalf("repeated sync changed entry count: %d vs %d", len(first), len(second))
	}
}

func TestSyncRebuildsProgress(t *testing.T) {
	store := newTestStore(t)
	store.Sync(fullLibrary())

	store.RecordResults([]Result{
		{Word: "alpha", Outcome: StatusCorrect, Identifier: "significado::beta"},
	})

	entries := store.Sync(trimmedLibrary())

	var alpha Entry
	found := false
	for _, entry := range entries {
		if entry.Word == "alpha" {
			alpha = entry
			found = true
		}
	}
	if !found {
		t.Fatalf("expected alpha to survive the sync")
	}
	if len(alpha.Progress) != 2 {
		t.Fatalf("expected example-based exercises to be dropped, got %v", alpha.Progress)
	}
	if alpha.Progress["significado::beta"] != StatusCorrect {
		t.Fatalf("expected recorded status to survive, got %v", alpha.Progress)
	}
	if alpha.Progress["traducao::beta"] != StatusUntested {
		t.Fatalf("expected untouched exercise to stay untested, got %v", alpha.Progress)
	}

	// solo is gone from the content, so its entry keeps an empty catalog.
	for _, entry := range entries {
		if entry.Word == "solo" && len(entry.Progress) != 0 {
			t.Fatalf("expected empty progress for removed word, got %v", entry.Progress)
		}
	}
}

func TestSyncDropsCommaJoinedWords(t *testing.T) {
	store := newTestStore(t)

	if err := db.DB.Create(&db.VocabularyEntry{
		Language:  "en",
		Word:      "alpha,solo",
		Active:    true,
		Source:    string(SourceFlashcard),
		DateAdded: fixedNow(),
		Progress:  datatypes.JSON([]byte(`{}`)),
	}).Error; err != nil {
		t.Fatalf("failed to seed corrupted row: %v", err)
	}

	entries := store.Sync(fullLibrary())
	for _, entry := range entries {
		if entry.Word == "alpha,solo" {
			t.Fatalf("expected comma-joined word to be dropped")
		}
	}

	var count int64
	if err := db.DB.Model(&db.VocabularyEntry{}).Where("word = ?", "alpha,solo").Count(&count).Error; err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected corrupted row to be purged from the backend")
	}
}

func TestRecordResultsMasteryTransition(t *testing.T) {
	store := newTestStore(t)
	store.Sync(trimmedLibrary())

	entries, mastered := store.RecordResults([]Result{
		{Word: "alpha", Outcome: StatusCorrect, Identifier: "significado::beta"},
		{Word: "alpha", Outcome: StatusCorrect, Identifier: "traducao::beta"},
	})

	if len(mastered) != 1 || mastered[0] != "alpha" {
		t.Fatalf("expected alpha to be mastered, got %v", mastered)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	alpha := entries[0]
	if alpha.Active {
		t.Fatalf("expected mastered word to be deactivated")
	}
	if alpha.MasteryCount != 1 {
		t.Fatalf("expected mastery count 1, got %d", alpha.MasteryCount)
	}

	// The transition must survive a cache flush.
	store.InvalidateCache()
	inactive := store.InactiveEntries()
	if len(inactive) != 1 || inactive[0].Word != "alpha" {
		t.Fatalf("expected alpha in the inactive set, got %v", inactive)
	}
}

func TestRecordResultsIncorrectKeepsActive(t *testing.T) {
	store := newTestStore(t)
	store.Sync(trimmedLibrary())

	_, mastered := store.RecordResults([]Result{
		{Word: "alpha", Outcome: StatusCorrect, Identifier: "significado::beta"},
		{Word: "alpha", Outcome: StatusIncorrect, Identifier: "traducao::beta"},
	})

	if len(mastered) != 0 {
		t.Fatalf("expected no mastered words, got %v", mastered)
	}
	active := store.ActiveEntries()
	if len(active) != 1 || active[0].Word != "alpha" {
		t.Fatalf("expected alpha to stay active, got %v", active)
	}
	if active[0].Progress["traducao::beta"] != StatusIncorrect {
		t.Fatalf("expected incorrect status to be recorded, got %v", active[0].Progress)
	}
}

func TestRecordResultsInsertsUnknownIdentifier(t *testing.T) {
	store := newTestStore(t)
	store.Sync(trimmedLibrary())

	entries, _ := store.RecordResults([]Result{
		{Word: "alpha", Outcome: StatusIncorrect, Identifier: "fill::A brand new sentence."},
	})

	if entries[0].Progress["fill::A brand new sentence."] != StatusIncorrect {
		t.Fatalf("expected unknown identifier to be inserted, got %v", entries[0].Progress)
	}
}

func TestRecordResultsIgnoresUnknownWord(t *testing.T) {
	store := newTestStore(t)
	store.Sync(trimmedLibrary())

	entries, mastered := store.RecordResults([]Result{
		{Word: "ghost", Outcome: StatusCorrect, Identifier: "significado::x"},
	})

	if len(mastered) != 0 {
		t.Fatalf("expected no mastered words, got %v", mastered)
	}
	if len(entries) != 1 || entries[0].Word != "alpha" {
		t.Fatalf("expected the ledger to be unchanged, got %v", entries)
	}
}

func TestReactivateResetsProgressKeepsMastery(t *testing.T) {
	store := newTestStore(t)
	store.Sync(trimmedLibrary())
	store.RecordResults([]Result{
		{Word: "alpha", Outcome: StatusCorrect, Identifier: "significado::beta"},
		{Word: "alpha", Outcome: StatusCorrect, Identifier: "traducao::beta"},
	})

	entries := store.Reactivate([]string{"alpha", "ghost"})

	var alpha Entry
	for _, entry := range entries {
		if entry.Word == "alpha" {
			alpha = entry
		}
	}
	if !alpha.Active {
		t.Fatalf("expected alpha to be active again")
	}
	if alpha.MasteryCount != 1 {
		t.Fatalf("expected mastery count to be kept, got %d", alpha.MasteryCount)
	}
	for id, status := range alpha.Progress {
		if status != StatusUntested {
			t.Fatalf("expected %q to be reset to untested, got %q", id, status)
		}
	}
}

func TestMarkWritingCompleted(t *testing.T) {
	store := newTestStore(t)
	store.Sync(trimmedLibrary())

	store.MarkWritingCompleted("alpha")

	store.InvalidateCache()
	entries := store.Entries()
	if len(entries) != 1 || !entries[0].WritingCompleted {
		t.Fatalf("expected writing flag to be set, got %+v", entries)
	}
}

func TestEntriesWithoutBackend(t *testing.T) {
	logger.SetLogLevel(logger.ERROR)
	store := NewStore("en", fixedNow)

	if entries := store.Entries(); len(entries) != 0 {
		t.Fatalf("expected empty ledger without a backend, got %v", entries)
	}
	if entries := store.Sync(fullLibrary()); len(entries) != 0 {
		t.Fatalf("expected sync to degrade to empty, got %v", entries)
	}
}

func TestBadProgressPayloadDegradesToEmpty(t *testing.T) {
	store := newTestStore(t)

	if err := db.DB.Create(&db.VocabularyEntry{
		Language:  "en",
		Word:      "alpha",
		Active:    true,
		Source:    string(SourceFlashcard),
		DateAdded: fixedNow(),
		Progress:  datatypes.JSON([]byte(`not json`)),
	}).Error; err != nil {
		t.Fatalf("failed to seed row: %v", err)
	}

	entries := store.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if len(entries[0].Progress) != 0 {
		t.Fatalf("expected empty progress for bad payload, got %v", entries[0].Progress)
	}
}
