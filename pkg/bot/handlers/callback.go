package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/smith3v/tg-vocab-coach/pkg/bot/session"
	"github.com/smith3v/tg-vocab-coach/pkg/logger"
	"github.com/smith3v/tg-vocab-coach/pkg/ui"
)

func HandleAnswerCallback(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update == nil || update.CallbackQuery == nil {
		logger.Error("invalid update in HandleAnswerCallback")
		return
	}

	callbackID := update.CallbackQuery.ID
	answerCallback := func(text string) {
		if callbackID == "" {
			return
		}
		if _, err := b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: callbackID,
			Text:            text,
		}); err != nil {
			logger.Error("failed to answer quiz callback query", "error", err)
		}
	}

	answer, err := ui.ParseAnswerCallback(update.CallbackQuery.Data)
	if err != nil {
		logger.Error("failed to parse quiz callback", "data", update.CallbackQuery.Data, "error", err)
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

	chatID := msg.Chat.ID
	userID := update.CallbackQuery.From.ID

	graded, ok := session.DefaultManager.Grade(chatID, userID, answer.Token, answer.Option)
	if !ok {
		// The process may have restarted since the question was sent.
		if restoreSession(chatID, userID) {
			graded, ok = session.DefaultManager.Grade(chatID, userID, answer.Token, answer.Option)
		}
		if !ok {
			answerCallback("This question is no longer active")
			return
		}
	}

	if graded.Correct {
		answerCallback("Correct ✅")
	} else {
		answerCallback("Wrong ❌")
	}

	feedback := fmt.Sprintf("%s\n\nYour answer: %s", graded.Question.Prompt, graded.Question.Options[answer.Option])
	if graded.Correct {
		feedback += " ✅"
	} else {
		feedback += fmt.Sprintf(" ❌\nCorrect answer: %s", graded.CorrectAnswer)
	}
	if _, err := b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:    chatID,
		MessageID: msg.ID,
		Text:      feedback,
	}); err != nil {
		logger.Error("failed to edit answered question", "user_id", userID, "error", err)
	}

	presentNext(ctx, b, chatID, userID)
}

// restoreSession rebuilds an in-memory session from its persisted row. It
// returns false when no row exists or the row cannot be decoded.
func restoreSession(chatID, userID int64) bool {
	row, err := session.LoadQuizSession(chatID, userID)
	if err != nil {
		logger.Error("failed to load persisted quiz session", "user_id", userID, "error", err)
		return false
	}
	if row == nil {
		return false
	}
	if _, err := session.DefaultManager.StartFromPersisted(row); err != nil {
		logger.Error("failed to restore quiz session", "user_id", userID, "error", err)
		return false
	}
	return true
}
