package ledger

import (
	"testing"

	"github.com/smith3v/tg-vocab-coach/pkg/db"
	"github.com/smith3v/tg-vocab-coach/pkg/logger"
)

func TestRecordSessionAndSessions(t *testing.T) {
	store := newTestStore(t)

	store.RecordSession("quiz", []string{"alpha", "solo"}, []string{"gamma"})
	store.RecordSession("pool_quiz", nil, nil)

	sessions := store.Sessions()
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}

	first := sessions[0]
	if first.Mode != "quiz" || first.Total != 3 || first.Score != 66 {
		t.Fatalf("unexpected first session: %+v", first)
	}
	if len(first.Correct) != 2 || first.Correct[0] != "alpha" {
		t.Fatalf("unexpected correct words: %v", first.Correct)
	}
	if len(first.Wrong) != 1 || first.Wrong[0] != "gamma" {
		t.Fatalf("unexpected wrong words: %v", first.Wrong)
	}
	if !first.RecordedAt.Equal(fixedNow()) {
		t.Fatalf("expected injected clock for RecordedAt, got %v", first.RecordedAt)
	}

	empty := sessions[1]
	if empty.Mode != "pool_quiz" || empty.Total != 0 || empty.Score != 0 {
		t.Fatalf("unexpected empty session: %+v", empty)
	}
	if empty.Correct == nil || empty.Wrong == nil {
		t.Fatalf("expected empty slices, not nil: %+v", empty)
	}
}

func TestSessionsWithoutBackend(t *testing.T) {
	logger.SetLogLevel(logger.ERROR)
	store := NewStore("en", fixedNow)
	if sessions := store.Sessions(); len(sessions) != 0 {
		t.Fatalf("expected no sessions without a backend, got %v", sessions)
	}
}

func TestRecordWriting(t *testing.T) {
	store := newTestStore(t)
	store.Sync(trimmedLibrary())

	store.RecordWriting("alpha", "An alpha sentence I wrote.")

	var rows []db.WritingEntry
	if err := db.DB.Where("language = ?", "en").Find(&rows).Error; err != nil {
		t.Fatalf("failed to load writing entries: %v", err)
	}
	if len(rows) != 1 || rows[0].Word != "alpha" || rows[0].Sentence != "An alpha sentence I wrote." {
		t.Fatalf("unexpected writing rows: %+v", rows)
	}

	store.InvalidateCache()
	entries := store.Entries()
	if len(entries) != 1 || !entries[0].WritingCompleted {
		t.Fatalf("expected writing flag to be set, got %+v", entries)
	}
}
