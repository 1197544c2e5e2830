package handlers

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/smith3v/tg-vocab-coach/pkg/db"
	"github.com/smith3v/tg-vocab-coach/pkg/internal/testutil"
	"github.com/smith3v/tg-vocab-coach/pkg/logger"
	"github.com/smith3v/tg-vocab-coach/pkg/ui"
)

func TestApplyActionNavigation(t *testing.T) {
	settings := db.UserSettings{UserID: 1, QuestionsPerQuiz: 5, PoolQuizSize: 10}

	next, changed, err := ApplyAction(settings, ui.Action{Screen: ui.ScreenHome, Op: ui.OpNone})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if changed {
		t.Fatalf("expected no change")
	}
	if next != settings {
		t.Fatalf("settings should be unchanged")
	}
}

func TestApplyActionQuizSizeIncrement(t *testing.T) {
	settings := db.UserSettings{UserID: 1, QuestionsPerQuiz: 5, PoolQuizSize: 10}

	next, changed, err := ApplyAction(settings, ui.Action{Screen: ui.ScreenQuizSize, Op: ui.OpInc})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !changed {
		t.Fatalf("expected settings to change")
	}
	if next.QuestionsPerQuiz != 6 {
		t.Fatalf("expected quiz size 6, got %d", next.QuestionsPerQuiz)
	}
}

func TestApplyActionQuizSizeBounds(t *testing.T) {
	atMin := db.UserSettings{UserID: 1, QuestionsPerQuiz: MinQuestionsPerQuiz, PoolQuizSize: 10}
	if _, _, err := ApplyAction(atMin, ui.Action{Screen: ui.ScreenQuizSize, Op: ui.OpDec}); !errors.Is(err, ErrBelowMin) {
		t.Fatalf("expected ErrBelowMin, got %v", err)
	}

	atMax := db.UserSettings{UserID: 1, QuestionsPerQuiz: MaxQuestionsPerQuiz, PoolQuizSize: 10}
	if _, _, err := ApplyAction(atMax, ui.Action{Screen: ui.ScreenQuizSize, Op: ui.OpInc}); !errors.Is(err, ErrAboveMax) {
		t.Fatalf("expected ErrAboveMax, got %v", err)
	}
}

func TestApplyActionPoolSizeDecrement(t *testing.T) {
	settings := db.UserSettings{UserID: 1, QuestionsPerQuiz: 5, PoolQuizSize: 10}

	next, changed, err := ApplyAction(settings, ui.Action{Screen: ui.ScreenPoolSize, Op: ui.OpDec})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !changed {
		t.Fatalf("expected settings to change")
	}
	if next.PoolQuizSize != 9 {
		t.Fatalf("expected pool size 9, got %d", next.PoolQuizSize)
	}
}

func TestApplyActionRepeatsToggle(t *testing.T) {
	settings := db.UserSettings{UserID: 1, QuestionsPerQuiz: 5, PoolQuizSize: 10, AllowRepeats: false}

	next, changed, err := ApplyAction(settings, ui.Action{Screen: ui.ScreenRepeats, Op: ui.OpToggle})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !changed {
		t.Fatalf("expected settings to change")
	}
	if !next.AllowRepeats {
		t.Fatalf("expected repeats to toggle on, got %+v", next)
	}
}

func TestApplyActionInvalid(t *testing.T) {
	settings := db.UserSettings{UserID: 1, QuestionsPerQuiz: 5, PoolQuizSize: 10}

	if _, _, err := ApplyAction(settings, ui.Action{Screen: ui.ScreenHome, Op: ui.OpInc}); !errors.Is(err, ErrInvalidAction) {
		t.Fatalf("expected ErrInvalidAction, got %v", err)
	}
	if _, _, err := ApplyAction(settings, ui.Action{Screen: ui.ScreenQuizSize, Op: ui.OpToggle}); !errors.Is(err, ErrInvalidAction) {
		t.Fatalf("expected ErrInvalidAction, got %v", err)
	}
}

func TestHandleSettingsCreatesDefaultsAndSendsHome(t *testing.T) {
	testutil.SetupTestDB(t)
	logger.SetLogLevel(logger.ERROR)

	client := newMockClient()
	b := newTestTelegramBot(t, client)
	update := newTestUpdate("/settings", 300)

	HandleSettings(context.Background(), b, update)

	got := client.lastMessageText(t)
	if !strings.Contains(got, "Settings") {
		t.Fatalf("expected settings text, got %q", got)
	}
	if !strings.Contains(got, "Questions per quiz: 5") {
		t.Fatalf("expected default quiz size in text, got %q", got)
	}

	var settings db.UserSettings
	if err := db.DB.Where("user_id = ?", 300).First(&settings).Error; err != nil {
		t.Fatalf("expected defaults to be persisted: %v", err)
	}
	if settings.PoolQuizSize != 10 {
		t.Fatalf("expected default pool size 10, got %d", settings.PoolQuizSize)
	}
}

func TestHandleSettingsCallbackUpdatesQuizSize(t *testing.T) {
	testutil.SetupTestDB(t)
	logger.SetLogLevel(logger.ERROR)

	seed := db.UserSettings{UserID: 302, QuestionsPerQuiz: 5, PoolQuizSize: 10}
	if err := db.DB.Create(&seed).Error; err != nil {
		t.Fatalf("failed to seed settings: %v", err)
	}

	data, err := ui.BuildQuizSizeIncCallback()
	if err != nil {
		t.Fatalf("failed to build callback: %v", err)
	}

	client := newMockClient()
	b := newTestTelegramBot(t, client)
	update := newTestCallbackUpdate(data, 302, 302, 50)

	HandleSettingsCallback(context.Background(), b, update)

	var settings db.UserSettings
	if err := db.DB.Where("user_id = ?", 302).First(&settings).Error; err != nil {
		t.Fatalf("failed to load settings: %v", err)
	}
	if settings.QuestionsPerQuiz != 6 {
		t.Fatalf("expected quiz size to increment, got %d", settings.QuestionsPerQuiz)
	}
}

func TestHandleSettingsCallbackMinimumNotice(t *testing.T) {
	testutil.SetupTestDB(t)
	logger.SetLogLevel(logger.ERROR)

	seed := db.UserSettings{UserID: 303, QuestionsPerQuiz: MinQuestionsPerQuiz, PoolQuizSize: 10}
	if err := db.DB.Create(&seed).Error; err != nil {
		t.Fatalf("failed to seed settings: %v", err)
	}

	data, err := ui.BuildQuizSizeDecCallback()
	if err != nil {
		t.Fatalf("failed to build callback: %v", err)
	}

	client := newMockClient()
	b := newTestTelegramBot(t, client)
	update := newTestCallbackUpdate(data, 303, 303, 51)

	HandleSettingsCallback(context.Background(), b, update)

	var settings db.UserSettings
	if err := db.DB.Where("user_id = ?", 303).First(&settings).Error; err != nil {
		t.Fatalf("failed to load settings: %v", err)
	}
	if settings.QuestionsPerQuiz != MinQuestionsPerQuiz {
		t.Fatalf("expected quiz size unchanged, got %d", settings.QuestionsPerQuiz)
	}
}
