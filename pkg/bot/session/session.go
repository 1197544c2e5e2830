// pkg/bot/session/session.go
package session

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/smith3v/tg-vocab-coach/pkg/db"
	"github.com/smith3v/tg-vocab-coach/pkg/ledger"
	"github.com/smith3v/tg-vocab-coach/pkg/logger"
	"github.com/smith3v/tg-vocab-coach/pkg/quiz"
)

const (
	ModeQuiz   = "quiz"
	ModePool   = "pool_quiz"
	ModeReview = "review_quiz"
)

const (
	InactivityTimeout = 24 * time.Hour
	SweeperInterval   = 10 * time.Minute
)

// Session is one user's in-flight quiz: the playlist, the cursor, the
// currently presented question and the answers collected so far. Results
// are written to the ledger only when the session finishes.
type Session struct {
	chatID int64
	userID int64
	mode   string

	playlist []quiz.PlaylistItem
	results  []ledger.Result

	currentIndex     int
	currentQuestion  *quiz.Question
	currentToken     string
	currentMessageID int
	lastActivityAt   time.Time
}

func (s *Session) Mode() string {
	if s == nil {
		return ""
	}
	return s.mode
}

// Graded is the outcome of one answered question, for feedback rendering.
type Graded struct {
	Question      quiz.Question
	Correct       bool
	CorrectAnswer string
	Position      int // 1-based position in the playlist
	Total         int
}

// Finished summarizes a completed session for write-back.
type Finished struct {
	Mode    string
	Results []ledger.Result
	Correct []string
	Wrong   []string
	Total   int
}

// Manager manages active quiz sessions with thread-safe access.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	now      func() time.Time
}

func NewManager(now func() time.Time) *Manager {
	if now == nil {
		now = time.Now
	}
	return &Manager{
		sessions: make(map[string]*Session),
		now:      now,
	}
}

var DefaultManager = NewManager(nil)

func ResetDefaultManager(now func() time.Time) {
	DefaultManager = NewManager(now)
}

func StartSessionSweeper(ctx context.Context) {
	DefaultManager.StartSweeper(ctx)
}

func getSessionKey(chatID, userID int64) string {
	return fmt.Sprintf("%d:%d", chatID, userID)
}

// StartOrRestart replaces any active session for the user with a fresh one.
func (m *Manager) StartOrRestart(chatID, userID int64, mode string, playlist []quiz.PlaylistItem) *Session {
	session := &Session{
		chatID:         chatID,
		userID:         userID,
		mode:           mode,
		playlist:       append([]quiz.PlaylistItem(nil), playlist...),
		lastActivityAt: m.now(),
	}
	key := getSessionKey(chatID, userID)
	m.mu.Lock()
	m.sessions[key] = session
	row := m.snapshotLocked(session)
	m.mu.Unlock()
	persistRow(row)
	return session
}

// CurrentItem returns the playlist entry the cursor points at.
func (m *Manager) CurrentItem(chatID, userID int64) (quiz.PlaylistItem, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session := m.sessions[getSessionKey(chatID, userID)]
	if session == nil || session.currentIndex >= len(session.playlist) {
		return quiz.PlaylistItem{}, false
	}
	return session.playlist[session.currentIndex], true
}

// Progress reports the cursor position and playlist length.
func (m *Manager) Progress(chatID, userID int64) (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session := m.sessions[getSessionKey(chatID, userID)]
	if session == nil {
		return 0, 0
	}
	return session.currentIndex, len(session.playlist)
}

// Present attaches a materialized question to the current playlist entry
// and issues the answer token embedded in the option callbacks.
func (m *Manager) Present(chatID, userID int64, question quiz.Question) (string, bool) {
	m.mu.Lock()
	session := m.sessions[getSessionKey(chatID, userID)]
	if session == nil || session.currentIndex >= len(session.playlist) {
		m.mu.Unlock()
		return "", false
	}
	q := question
	session.currentQuestion = &q
	session.currentToken = nextToken()
	session.currentMessageID = 0
	session.lastActivityAt = m.now()
	token := session.currentToken
	row := m.snapshotLocked(session)
	m.mu.Unlock()
	persistRow(row)
	return token, true
}

// SetCurrentMessageID remembers the Telegram message carrying the current
// question so stale keyboards can be cleaned up.
func (m *Manager) SetCurrentMessageID(chatID, userID int64, messageID int) {
	m.mu.Lock()
	session := m.sessions[getSessionKey(chatID, userID)]
	if session == nil {
		m.mu.Unlock()
		return
	}
	session.currentMessageID = messageID
	row := m.snapshotLocked(session)
	m.mu.Unlock()
	persistRow(row)
}

func (m *Manager) CurrentMessageID(chatID, userID int64) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	session := m.sessions[getSessionKey(chatID, userID)]
	if session == nil {
		return 0
	}
	return session.currentMessageID
}

// Skip drops the current playlist entry without recording a result. Used
// when materialization fails because content drifted since selection.
func (m *Manager) Skip(chatID, userID int64) {
	m.mu.Lock()
	session := m.sessions[getSessionKey(chatID, userID)]
	if session == nil {
		m.mu.Unlock()
		return
	}
	session.currentIndex++
	session.currentQuestion = nil
	session.currentToken = ""
	session.lastActivityAt = m.now()
	row := m.snapshotLocked(session)
	m.mu.Unlock()
	persistRow(row)
}

// Grade scores an option tap against the current question. A stale or
// unknown token returns false; the answer is recorded and the cursor
// advanced on success.
func (m *Manager) Grade(chatID, userID int64, token string, option int) (Graded, bool) {
	m.mu.Lock()
	session := m.sessions[getSessionKey(chatID, userID)]
	if session == nil || session.currentQuestion == nil || session.currentToken == "" || session.currentToken != token {
		m.mu.Unlock()
		return Graded{}, false
	}
	question := *session.currentQuestion
	if option < 0 || option >= len(question.Options) {
		m.mu.Unlock()
		return Graded{}, false
	}

	correct := option == question.CorrectIndex
	outcome := ledger.StatusIncorrect
	if correct {
		outcome = ledger.StatusCorrect
	}
	session.results = append(session.results, ledger.Result{
		Word:       question.Word,
		Outcome:    outcome,
		Identifier: question.Identifier,
		Kind:       question.Kind,
	})
	session.currentIndex++
	session.currentQuestion = nil
	session.currentToken = ""
	session.lastActivityAt = m.now()

	graded := Graded{
		Question:      question,
		Correct:       correct,
		CorrectAnswer: question.Options[question.CorrectIndex],
		Position:      session.currentIndex,
		Total:         len(session.playlist),
	}
	row := m.snapshotLocked(session)
	m.mu.Unlock()
	persistRow(row)
	return graded, true
}

// Done reports whether the playlist is exhausted.
func (m *Manager) Done(chatID, userID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	session := m.sessions[getSessionKey(chatID, userID)]
	return session != nil && session.currentIndex >= len(session.playlist)
}

// Finish ends the session and returns its collected results.
func (m *Manager) Finish(chatID, userID int64) (Finished, bool) {
	key := getSessionKey(chatID, userID)
	m.mu.Lock()
	session := m.sessions[key]
	if session == nil {
		m.mu.Unlock()
		return Finished{}, false
	}
	delete(m.sessions, key)
	finished := Finished{
		Mode:    session.mode,
		Results: append([]ledger.Result(nil), session.results...),
		Total:   len(session.results),
	}
	for _, result := range session.results {
		if result.Outcome == ledger.StatusCorrect {
			finished.Correct = append(finished.Correct, result.Word)
		} else {
			finished.Wrong = append(finished.Wrong, result.Word)
		}
	}
	m.mu.Unlock()
	if err := DeleteQuizSession(chatID, userID); err != nil {
		logger.Error("failed to delete quiz session", "user_id", userID, "error", err)
	}
	return finished, true
}

// End discards the session without write-back.
func (m *Manager) End(chatID, userID int64) {
	key := getSessionKey(chatID, userID)
	m.mu.Lock()
	delete(m.sessions, key)
	m.mu.Unlock()
	if err := DeleteQuizSession(chatID, userID); err != nil {
		logger.Error("failed to delete quiz session", "user_id", userID, "error", err)
	}
}

func (m *Manager) StartSweeper(ctx context.Context) {
	ticker := time.NewTicker(SweeperInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.SweepInactive(m.now())
		}
	}
}

func (m *Manager) SweepInactive(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, session := range m.sessions {
		if session == nil || now.Sub(session.lastActivityAt) > InactivityTimeout {
			delete(m.sessions, key)
		}
	}
}

// snapshotLocked serializes the session into its storage row. The caller
// must hold m.mu; the returned row is detached and safe to write without it.
func (m *Manager) snapshotLocked(session *Session) *db.QuizSession {
	row, err := buildQuizSession(session)
	if err != nil {
		logger.Error("failed to build quiz session", "user_id", session.userID, "error", err)
		return nil
	}
	return row
}

func persistRow(row *db.QuizSession) {
	if row == nil {
		return
	}
	if err := UpsertQuizSession(row); err != nil {
		logger.Error("failed to persist quiz session", "user_id", row.UserID, "error", err)
	}
}

func nextToken() string {
	return fmt.Sprintf("%x", rand.Int63())
}
