package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/smith3v/tg-vocab-coach/pkg/db"
	"github.com/smith3v/tg-vocab-coach/pkg/logger"
	"github.com/smith3v/tg-vocab-coach/pkg/ui"
	"gorm.io/gorm"
)

const (
	MinQuestionsPerQuiz = 1
	MaxQuestionsPerQuiz = 25

	MinPoolQuizSize = 1
	MaxPoolQuizSize = 50
)

var (
	ErrBelowMin      = errors.New("value below minimum")
	ErrAboveMax      = errors.New("value above maximum")
	ErrInvalidAction = errors.New("invalid settings action")
)

// loadOrCreateSettings returns the user's settings row, creating the
// defaults on first use. DB failures fall back to the defaults without
// persisting them.
func loadOrCreateSettings(userID int64) db.UserSettings {
	defaults := db.UserSettings{
		UserID:           userID,
		QuestionsPerQuiz: 5,
		PoolQuizSize:     10,
		AllowRepeats:     false,
	}

	var settings db.UserSettings
	err := db.DB.Where("user_id = ?", userID).First(&settings).Error
	if err == nil {
		return settings
	}
	if err != gorm.ErrRecordNotFound {
		logger.Error("failed to load user settings", "user_id", userID, "error", err)
		return defaults
	}
	if err := db.DB.Create(&defaults).Error; err != nil {
		logger.Error("failed to create default user settings", "user_id", userID, "error", err)
	}
	return defaults
}

func HandleSettings(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update == nil || update.Message == nil || update.Message.From == nil || update.Message.Chat.ID == 0 {
		logger.Error("invalid update in HandleSettings")
		return
	}

	settings := loadOrCreateSettings(update.Message.From.ID)
	text, keyboard, err := ui.RenderHome(settings.QuestionsPerQuiz, settings.PoolQuizSize, settings.AllowRepeats)
	if err != nil {
		logger.Error("failed to render settings home", "user_id", update.Message.From.ID, "error", err)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "Failed to render settings. Please try again later.",
		})
		return
	}

	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      update.Message.Chat.ID,
		Text:        text,
		ReplyMarkup: keyboard,
	}); err != nil {
		logger.Error("failed to send settings message", "user_id", update.Message.From.ID, "error", err)
	}
}

func HandleSettingsCallback(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update == nil || update.CallbackQuery == nil {
		logger.Error("invalid update in HandleSettingsCallback")
		return
	}

	callbackID := update.CallbackQuery.ID
	answered := false
	answerCallback := func(text string) {
		if answered || callbackID == "" {
			return
		}
		if _, err := b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: callbackID,
			Text:            text,
		}); err != nil {
			logger.Error("failed to answer settings callback query", "error", err)
		}
		answered = true
	}

	action, err := ui.ParseSettingsCallback(update.CallbackQuery.Data)
	if err != nil {
		logger.Error("failed to parse settings callback", "data", update.CallbackQuery.Data, "error", err)
		answerCallback("Unknown command")
		return
	}

	message := update.CallbackQuery.Message
	if message.Type != models.MaybeInaccessibleMessageTypeMessage || message.Message == nil {
		answerCallback("Message is not available")
		return
	}
	msg := message.Message
	if msg.Chat.ID == 0 {
		answerCallback("Message is not available")
		return
	}

	settings := loadOrCreateSettings(update.CallbackQuery.From.ID)
	newSettings, changed, err := ApplyAction(settings, action)
	if err != nil {
		if errors.Is(err, ErrBelowMin) || errors.Is(err, ErrAboveMax) {
			min, max, ok := boundsForScreen(action.Screen)
			if ok {
				if errors.Is(err, ErrBelowMin) {
					answerCallback(fmt.Sprintf("Minimum is %d", min))
				} else {
					answerCallback(fmt.Sprintf("Maximum is %d", max))
				}
			} else {
				answerCallback("Unknown command")
			}
			return
		}
		logger.Error("failed to apply settings action", "user_id", update.CallbackQuery.From.ID, "error", err)
		answerCallback("Unknown command")
		return
	}

	if changed {
		if err := db.DB.Save(&newSettings).Error; err != nil {
			logger.Error("failed to save user settings", "user_id", update.CallbackQuery.From.ID, "error", err)
			answerCallback("Failed to save settings")
			return
		}
	}

	answerCallback("")

	var text string
	var keyboard *models.InlineKeyboardMarkup
	switch action.Screen {
	case ui.ScreenHome:
		text, keyboard, err = ui.RenderHome(newSettings.QuestionsPerQuiz, newSettings.PoolQuizSize, newSettings.AllowRepeats)
	case ui.ScreenQuizSize:
		text, keyboard, err = ui.RenderQuizSize(newSettings.QuestionsPerQuiz)
	case ui.ScreenPoolSize:
		text, keyboard, err = ui.RenderPoolSize(newSettings.PoolQuizSize)
	case ui.ScreenRepeats:
		text, keyboard, err = ui.RenderRepeats(newSettings.AllowRepeats)
	case ui.ScreenClose:
		text = "Settings saved ✅"
		keyboard = &models.InlineKeyboardMarkup{
			InlineKeyboard: [][]models.InlineKeyboardButton{},
		}
	default:
		logger.Error("unknown settings screen", "screen", action.Screen)
		return
	}
	if err != nil {
		logger.Error("failed to render settings screen", "user_id", update.CallbackQuery.From.ID, "error", err)
		return
	}

	if _, err := b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		Text:        text,
		ReplyMarkup: keyboard,
	}); err != nil {
		logger.Error("failed to edit settings message", "user_id", update.CallbackQuery.From.ID, "error", err)
	}
}

// ApplyAction computes the settings change for one callback action. It
// returns the updated row and whether anything actually changed.
func ApplyAction(settings db.UserSettings, action ui.Action) (db.UserSettings, bool, error) {
	switch action.Op {
	case ui.OpNone:
		return settings, false, nil
	case ui.OpInc, ui.OpDec:
		delta := 1
		if action.Op == ui.OpDec {
			delta = -1
		}
		switch action.Screen {
		case ui.ScreenQuizSize:
			next := settings.QuestionsPerQuiz + delta
			if next < MinQuestionsPerQuiz {
				return settings, false, ErrBelowMin
			}
			if next > MaxQuestionsPerQuiz {
				return settings, false, ErrAboveMax
			}
			settings.QuestionsPerQuiz = next
			return settings, true, nil
		case ui.ScreenPoolSize:
			next := settings.PoolQuizSize + delta
			if next < MinPoolQuizSize {
				return settings, false, ErrBelowMin
			}
			if next > MaxPoolQuizSize {
				return settings, false, ErrAboveMax
			}
			settings.PoolQuizSize = next
			return settings, true, nil
		}
		return settings, false, ErrInvalidAction
	case ui.OpToggle:
		if action.Screen != ui.ScreenRepeats {
			return settings, false, ErrInvalidAction
		}
		settings.AllowRepeats = !settings.AllowRepeats
		return settings, true, nil
	}
	return settings, false, ErrInvalidAction
}

func boundsForScreen(screen ui.Screen) (int, int, bool) {
	switch screen {
	case ui.ScreenQuizSize:
		return MinQuestionsPerQuiz, MaxQuestionsPerQuiz, true
	case ui.ScreenPoolSize:
		return MinPoolQuizSize, MaxPoolQuizSize, true
	}
	return 0, 0, false
}
