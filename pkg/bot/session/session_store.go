// pkg/bot/session/session_store.go
package session

import (
	"encoding/json"
	"errors"

	"github.com/smith3v/tg-vocab-coach/pkg/db"
	"github.com/smith3v/tg-vocab-coach/pkg/ledger"
	"github.com/smith3v/tg-vocab-coach/pkg/quiz"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func buildQuizSession(s *Session) (*db.QuizSession, error) {
	if s == nil {
		return nil, errors.New("nil session")
	}
	playlist, err := json.Marshal(s.playlist)
	if err != nil {
		return nil, err
	}
	results := s.results
	if results == nil {
		results = []ledger.Result{}
	}
	resultsRaw, err := json.Marshal(results)
	if err != nil {
		return nil, err
	}

	row := &db.QuizSession{
		ChatID:         s.chatID,
		UserID:         s.userID,
		Mode:           s.mode,
		Playlist:       datatypes.JSON(playlist),
		Results:        datatypes.JSON(resultsRaw),
		CurrentIndex:   s.currentIndex,
		CurrentToken:   s.currentToken,
		CurrentCorrect: -1,
		LastActivityAt: s.lastActivityAt,
	}
	row.CurrentMessageID = s.currentMessageID
	if s.currentQuestion != nil {
		options, err := json.Marshal(s.currentQuestion.Options)
		if err != nil {
			return nil, err
		}
		row.CurrentPrompt = s.currentQuestion.Prompt
		row.CurrentOptions = datatypes.JSON(options)
		row.CurrentCorrect = s.currentQuestion.CorrectIndex
	}
	return row, nil
}

func UpsertQuizSession(row *db.QuizSession) error {
	if row == nil {
		return errors.New("nil quiz session row")
	}
	if db.DB == nil {
		return gorm.ErrInvalidDB
	}
	return db.DB.Transaction(func(tx *gorm.DB) error {
		var existing db.QuizSession
		err := tx.Where("chat_id = ? AND user_id = ?", row.ChatID, row.UserID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(row).Error
		}
		if err != nil {
			return err
		}
		row.ID = existing.ID
		return tx.Save(row).Error
	})
}

func LoadQuizSession(chatID, userID int64) (*db.QuizSession, error) {
	if db.DB == nil {
		return nil, gorm.ErrInvalidDB
	}
	var row db.QuizSession
	err := db.DB.Where("chat_id = ? AND user_id = ?", chatID, userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func DeleteQuizSession(chatID, userID int64) error {
	if db.DB == nil {
		return gorm.ErrInvalidDB
	}
	return db.DB.Where("chat_id = ? AND user_id = ?", chatID, userID).Delete(&db.QuizSession{}).Error
}

// StartFromPersisted rebuilds an in-memory session from its stored row so
// an answer arriving after a restart can still be graded.
func (m *Manager) StartFromPersisted(row *db.QuizSession) (*Session, error) {
	if row == nil {
		return nil, errors.New("nil quiz session row")
	}
	var playlist []quiz.PlaylistItem
	if err := json.Unmarshal(row.Playlist, &playlist); err != nil {
		return nil, err
	}
	var results []ledger.Result
	if len(row.Results) > 0 {
		if err := json.Unmarshal(row.Results, &results); err != nil {
			return nil, err
		}
	}
	if row.CurrentIndex < 0 || row.CurrentIndex > len(playlist) {
		return nil, errors.New("current index out of range")
	}

	session := &Session{
		chatID:           row.ChatID,
		userID:           row.UserID,
		mode:             row.Mode,
		playlist:         playlist,
		results:          results,
		currentIndex:     row.CurrentIndex,
		currentToken:     row.CurrentToken,
		currentMessageID: row.CurrentMessageID,
		lastActivityAt:   row.LastActivityAt,
	}
	if row.CurrentCorrect >= 0 && row.CurrentIndex < len(playlist) {
		var options []string
		if err := json.Unmarshal(row.CurrentOptions, &options); err != nil {
			return nil, err
		}
		item := playlist[row.CurrentIndex]
		session.currentQuestion = &quiz.Question{
			Kind:         item.Kind,
			Prompt:       row.CurrentPrompt,
			Options:      options,
			CorrectIndex: row.CurrentCorrect,
			Identifier:   item.Identifier,
			Word:         item.Word,
		}
	}

	key := getSessionKey(row.ChatID, row.UserID)
	m.mu.Lock()
	m.sessions[key] = session
	m.mu.Unlock()
	return session, nil
}
