// pkg/ledger/store.go
package ledger

import (
	"sort"
	"sync"
	"time"

	"github.com/smith3v/tg-vocab-coach/pkg/content"
	"github.com/smith3v/tg-vocab-coach/pkg/db"
	"github.com/smith3v/tg-vocab-coach/pkg/logger"
	"gorm.io/gorm"
)

// Store owns the vocabulary ledger for one language. All mutation goes
// through Sync, RecordResults, Reactivate and MarkWritingCompleted; readers
// get snapshot copies. The in-memory cache avoids re-reading the table on
// every selection and is refreshed on every successful write.
type Store struct {
	language string
	now      func() time.Time

	mu         sync.Mutex
	cache      []Entry
	cacheValid bool
}

func NewStore(language string, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{language: language, now: now}
}

// Entries returns a snapshot of the ledger. When the backend is
// unreachable the snapshot is empty, never an error: callers treat that as
// "no data available".
func (s *Store) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, err := s.entriesLocked()
	if err != nil {
		logger.Error("ledger unavailable, serving empty snapshot", "language", s.language, "error", err)
		return nil
	}
	return cloneEntries(entries)
}

// ActiveEntries returns the snapshot filtered to words in rotation.
func (s *Store) ActiveEntries() []Entry {
	return filterEntries(s.Entries(), func(e Entry) bool { return e.Active })
}

// InactiveEntries returns the snapshot of mastered (deactivated) words.
func (s *Store) InactiveEntries() []Entry {
	return filterEntries(s.Entries(), func(e Entry) bool { return !e.Active })
}

func filterEntries(entries []Entry, keep func(Entry) bool) []Entry {
	var out []Entry
	for _, e := range entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// Sync reconciles the ledger against the content library: progress maps of
// existing entries are rebuilt to the current catalog (statuses of
// surviving identifiers kept, stale ones dropped, new ones untested) and
// entries are created for words new to the content. The full ledger is
// persisted. If the backend cannot be read the result is an empty ledger
// and a logged warning, not a failure.
func (s *Store) Sync(lib *content.Library) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.loadLocked()
	if err != nil {
		logger.Error("ledger sync skipped, backend unreachable", "language", s.language, "error", err)
		return nil
	}

	known := make(map[string]struct{}, len(entries))
	for i := range entries {
		known[entries[i].Word] = struct{}{}
		catalog := lib.Catalog(entries[i].Word)
		next := make(map[string]Status, len(catalog))
		for id := range catalog {
			if status, ok := entries[i].Progress[id]; ok {
				next[id] = status
			} else {
				next[id] = StatusUntested
			}
		}
		entries[i].Progress = next
	}

	now := s.now()
	for _, word := range lib.Words() {
		if _, ok := known[word]; ok {
			continue
		}
		source := SourceGenerated
		if _, ok := lib.Cards[word]; ok {
			source = SourceFlashcard
		}
		catalog := lib.Catalog(word)
		progress := make(map[string]Status, len(catalog))
		for id := range catalog {
			progress[id] = StatusUntested
		}
		entries = append(entries, Entry{
			Word:      word,
			Active:    true,
			Source:    source,
			DateAdded: now,
			Progress:  progress,
		})
	}

	if err := s.replaceAllLocked(entries); err != nil {
		logger.Error("failed to persist synced ledger", "language", s.language, "error", err)
	}
	s.setCacheLocked(entries)
	return cloneEntries(entries)
}

// RecordResults applies a batch of graded answers. Identifiers missing
// from a word's progress map are inserted rather than dropped; content and
// catalog can drift within a session. After the batch, every touched word
// whose progress is all-correct is deactivated and its mastery count
// incremented. Returns the updated snapshot and the mastered words.
func (s *Store) RecordResults(results []Result) ([]Entry, []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.entriesLocked()
	if err != nil {
		logger.Error("ledger unavailable, results not recorded", "language", s.language, "error", err)
		return nil, nil
	}

	index := make(map[string]*Entry, len(entries))
	for i := range entries {
		index[entries[i].Word] = &entries[i]
	}

	touched := make(map[string]struct{})
	for _, result := range results {
		entry, ok := index[result.Word]
		if !ok {
			logger.Debug("result for unknown word ignored", "word", result.Word)
			continue
		}
		if result.Outcome != StatusCorrect && result.Outcome != StatusIncorrect {
			continue
		}
		if entry.Progress == nil {
			entry.Progress = map[string]Status{}
		}
		entry.Progress[result.Identifier] = result.Outcome
		touched[result.Word] = struct{}{}
	}

	var mastered []string
	for word := range touched {
		entry := index[word]
		if entry.Active && allCorrect(entry.Progress) {
			entry.Active = false
			entry.MasteryCount++
			mastered = append(mastered, word)
		}
	}
	sort.Strings(mastered)

	for word := range touched {
		if err := s.upsertLocked(*index[word]); err != nil {
			logger.Error("failed to persist quiz results", "word", word, "error", err)
		}
	}
	s.setCacheLocked(entries)
	return cloneEntries(entries), mastered
}

// Reactivate puts mastered words back into rotation: progress statuses
// reset to untested, mastery counts untouched. Unknown words are ignored.
func (s *Store) Reactivate(words []string) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.entriesLocked()
	if err != nil {
		logger.Error("ledger unavailable, reactivation skipped", "language", s.language, "error", err)
		return nil
	}

	requested := make(map[string]struct{}, len(words))
	for _, word := range words {
		requested[word] = struct{}{}
	}

	for i := range entries {
		if _, ok := requested[entries[i].Word]; !ok {
			continue
		}
		entries[i].Active = true
		for id := range entries[i].Progress {
			entries[i].Progress[id] = StatusUntested
		}
		if err := s.upsertLocked(entries[i]); err != nil {
			logger.Error("failed to persist reactivation", "word", entries[i].Word, "error", err)
		}
	}

	s.setCacheLocked(entries)
	return cloneEntries(entries)
}

// MarkWritingCompleted records that a free-writing exercise was logged for
// the word.
func (s *Store) MarkWritingCompleted(word string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.entriesLocked()
	if err != nil {
		logger.Error("ledger unavailable, writing flag not recorded", "word", word, "error", err)
		return
	}
	for i := range entries {
		if entries[i].Word != word {
			continue
		}
		entries[i].WritingCompleted = true
		if err := s.upsertLocked(entries[i]); err != nil {
			logger.Error("failed to persist writing flag", "word", word, "error", err)
		}
		break
	}
	s.setCacheLocked(entries)
}

func (s *Store) entriesLocked() ([]Entry, error) {
	if s.cacheValid {
		return s.cache, nil
	}
	entries, err := s.loadLocked()
	if err != nil {
		return nil, err
	}
	s.setCacheLocked(entries)
	return entries, nil
}

func (s *Store) setCacheLocked(entries []Entry) {
	s.cache = entries
	s.cacheValid = true
}

// InvalidateCache forces the next read to hit the backend.
func (s *Store) InvalidateCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = nil
	s.cacheValid = false
}

func (s *Store) loadLocked() ([]Entry, error) {
	if db.DB == nil {
		return nil, gorm.ErrInvalidDB
	}
	var rows []db.VocabularyEntry
	if err := db.DB.Where("language = ?", s.language).Order("word ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		if entry, ok := fromModel(row); ok {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

func (s *Store) replaceAllLocked(entries []Entry) error {
	if db.DB == nil {
		return gorm.ErrInvalidDB
	}
	rows := make([]db.VocabularyEntry, 0, len(entries))
	for _, entry := range entries {
		row, err := toModel(entry, s.language)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}
	return db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("language = ?", s.language).Delete(&db.VocabularyEntry{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}

func (s *Store) upsertLocked(entry Entry) error {
	if db.DB == nil {
		return gorm.ErrInvalidDB
	}
	row, err := toModel(entry, s.language)
	if err != nil {
		return err
	}
	return db.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&db.VocabularyEntry{}).
			Where("language = ? AND word = ?", s.language, entry.Word).
			Updates(map[string]interface{}{
				"active":            row.Active,
				"source":            row.Source,
				"writing_completed": row.WritingCompleted,
				"progress":          row.Progress,
				"mastery_count":     row.MasteryCount,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			return nil
		}
		return tx.Create(&row).Error
	})
}
