// pkg/ledger/history.go
package ledger

import (
	"encoding/json"
	"time"

	"github.com/smith3v/tg-vocab-coach/pkg/db"
	"github.com/smith3v/tg-vocab-coach/pkg/logger"
	"gorm.io/datatypes"
)

// Session is one completed quiz as recorded for reporting. History is
// append-only and informational: selection never reads it.
type Session struct {
	RecordedAt time.Time
	Mode       string
	Correct    []string
	Wrong      []string
	Score      int // percent
	Total      int
}

// RecordSession appends a quiz outcome to the history log. Failures are
// logged and swallowed; history is best-effort.
func (s *Store) RecordSession(mode string, correct, wrong []string) {
	total := len(correct) + len(wrong)
	score := 0
	if total > 0 {
		score = len(correct) * 100 / total
	}

	correctJSON, err := json.Marshal(emptyIfNil(correct))
	if err != nil {
		logger.Error("failed to encode history words", "error", err)
		return
	}
	wrongJSON, err := json.Marshal(emptyIfNil(wrong))
	if err != nil {
		logger.Error("failed to encode history words", "error", err)
		return
	}

	if db.DB == nil {
		logger.Error("history not recorded, backend unreachable", "mode", mode)
		return
	}
	row := db.QuizHistory{
		Language:     s.language,
		Mode:         mode,
		RecordedAt:   s.now(),
		CorrectWords: datatypes.JSON(correctJSON),
		WrongWords:   datatypes.JSON(wrongJSON),
		Score:        score,
		Total:        total,
	}
	if err := db.DB.Create(&row).Error; err != nil {
		logger.Error("failed to record quiz history", "mode", mode, "error", err)
	}
}

// Sessions returns the recorded history, oldest first. Unreachable backend
// degrades to an empty list.
func (s *Store) Sessions() []Session {
	if db.DB == nil {
		logger.Error("history unavailable, backend unreachable", "language", s.language)
		return nil
	}
	var rows []db.QuizHistory
	if err := db.DB.Where("language = ?", s.language).Order("recorded_at ASC").Find(&rows).Error; err != nil {
		logger.Error("failed to load quiz history", "language", s.language, "error", err)
		return nil
	}

	sessions := make([]Session, 0, len(rows))
	for _, row := range rows {
		session := Session{
			RecordedAt: row.RecordedAt,
			Mode:       row.Mode,
			Score:      row.Score,
			Total:      row.Total,
		}
		if err := json.Unmarshal(row.CorrectWords, &session.Correct); err != nil {
			logger.Debug("skipping history row with bad correct words", "id", row.ID, "error", err)
			continue
		}
		if err := json.Unmarshal(row.WrongWords, &session.Wrong); err != nil {
			logger.Debug("skipping history row with bad wrong words", "id", row.ID, "error", err)
			continue
		}
		sessions = append(sessions, session)
	}
	return sessions
}

// RecordWriting stores a free-writing submission and flips the word's
// writing flag.
func (s *Store) RecordWriting(word, sentence string) {
	if db.DB == nil {
		logger.Error("writing entry not recorded, backend unreachable", "word", word)
		return
	}
	row := db.WritingEntry{
		Language: s.language,
		Word:     word,
		Sentence: sentence,
	}
	if err := db.DB.Create(&row).Error; err != nil {
		logger.Error("failed to record writing entry", "word", word, "error", err)
		return
	}
	s.MarkWritingCompleted(word)
}

func emptyIfNil(words []string) []string {
	if words == nil {
		return []string{}
	}
	return words
}
