// pkg/db/models.go
package db

import (
	"time"

	"gorm.io/datatypes"
)

// VocabularyEntry is one tracked word in the study ledger. Progress maps
// exercise identifiers to their status ("untested", "correct", "incorrect")
// and is rebuilt against the content files on every sync.
type VocabularyEntry struct {
	ID               uint           `gorm:"primaryKey"`
	Language         string         `gorm:"not null;index;uniqueIndex:idx_lang_word"`
	Word             string         `gorm:"not null;uniqueIndex:idx_lang_word"`
	Active           bool           `gorm:"not null;default:true"`
	Source           string         `gorm:"not null"` // "ANKI" or "GPT"
	DateAdded        time.Time      `gorm:"not null"`
	WritingCompleted bool           `gorm:"not null;default:false"`
	Progress         datatypes.JSON `gorm:"not null"`
	MasteryCount     int            `gorm:"not null;default:0"`
}

// QuizHistory is one completed quiz session. Append-only; consumed by the
// stats package, never by selection.
type QuizHistory struct {
	ID           uint           `gorm:"primaryKey"`
	Language     string         `gorm:"not null;index"`
	Mode         string         `gorm:"not null"` // "quiz", "pool_quiz", "review_quiz", "cloze_quiz"
	RecordedAt   time.Time      `gorm:"not null"`
	CorrectWords datatypes.JSON `gorm:"not null"`
	WrongWords   datatypes.JSON `gorm:"not null"`
	Score        int            `gorm:"not null;default:0"` // percent
	Total        int            `gorm:"not null;default:0"`
}

// WritingEntry is one free-writing submission for a word.
type WritingEntry struct {
	ID        uint      `gorm:"primaryKey"`
	Language  string    `gorm:"not null;index"`
	Word      string    `gorm:"not null"`
	Sentence  string    `gorm:"not null"`
	CreatedAt time.Time
}

// QuizSession persists an in-flight quiz so an answer arriving after a
// restart can still be graded.
type QuizSession struct {
	ID               uint           `gorm:"primaryKey"`
	ChatID           int64          `gorm:"index;uniqueIndex:idx_quiz_session_user_chat"`
	UserID           int64          `gorm:"index;uniqueIndex:idx_quiz_session_user_chat"`
	Mode             string         `gorm:"not null"`
	Playlist         datatypes.JSON `gorm:"not null"`
	Results          datatypes.JSON `gorm:"not null"`
	CurrentIndex     int            `gorm:"not null;default:0"`
	CurrentToken     string         `gorm:"not null;default:''"`
	CurrentMessageID int            `gorm:"not null;default:0"`
	CurrentPrompt    string         `gorm:"not null;default:''"`
	CurrentOptions   datatypes.JSON
	CurrentCorrect   int `gorm:"not null;default:-1"`
	LastActivityAt   time.Time      `gorm:"not null"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// UserSettings holds per-user quiz preferences.
type UserSettings struct {
	ID               uint  `gorm:"primaryKey"`
	UserID           int64 `gorm:"index"`
	QuestionsPerQuiz int   `gorm:"not null;default:5"`
	PoolQuizSize     int   `gorm:"not null;default:10"`
	AllowRepeats     bool  `gorm:"not null;default:false"`
}
