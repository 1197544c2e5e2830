package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/smith3v/tg-vocab-coach/pkg/bot/session"
	"github.com/smith3v/tg-vocab-coach/pkg/content"
	"github.com/smith3v/tg-vocab-coach/pkg/logger"
	"github.com/smith3v/tg-vocab-coach/pkg/ui"
)

func HandleQuiz(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update == nil || update.Message == nil || update.Message.From == nil || update.Message.Chat.ID == 0 {
		logger.Error("invalid update in HandleQuiz")
		return
	}

	chatID := update.Message.Chat.ID
	userID := update.Message.From.ID

	Store.Sync(Lib)
	active := Store.ActiveEntries()
	if len(active) == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "No active words to practice. Check /errors if your content files failed to load.",
		})
		return
	}

	settings := loadOrCreateSettings(userID)
	playlist := Engine.SelectPrioritized(active, Lib, settings.QuestionsPerQuiz, content.KindAny)
	if len(playlist) == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "No exercises are available for your active words.",
		})
		return
	}

	session.DefaultManager.StartOrRestart(chatID, userID, session.ModeQuiz, playlist)
	presentNext(ctx, b, chatID, userID)
}

func HandlePoolQuiz(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update == nil || update.Message == nil || update.Message.From == nil || update.Message.Chat.ID == 0 {
		logger.Error("invalid update in HandlePoolQuiz")
		return
	}

	chatID := update.Message.Chat.ID
	userID := update.Message.From.ID

	Store.Sync(Lib)
	active := Store.ActiveEntries()
	if len(active) == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "No active words to practice. Check /errors if your content files failed to load.",
		})
		return
	}

	settings := loadOrCreateSettings(userID)
	playlist := Engine.SelectFromPool(active, Lib, content.KindAny, settings.PoolQuizSize, settings.AllowRepeats)
	if len(playlist) == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "No exercises are available for your active words.",
		})
		return
	}

	session.DefaultManager.StartOrRestart(chatID, userID, session.ModePool, playlist)
	presentNext(ctx, b, chatID, userID)
}

func HandleReview(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update == nil || update.Message == nil || update.Message.From == nil || update.Message.Chat.ID == 0 {
		logger.Error("invalid update in HandleReview")
		return
	}

	chatID := update.Message.Chat.ID
	userID := update.Message.From.ID

	Store.Sync(Lib)
	inactive := Store.InactiveEntries()
	if len(inactive) == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "Nothing to review yet. Words land here after you master them in /quiz.",
		})
		return
	}

	settings := loadOrCreateSettings(userID)
	playlist := Engine.SelectPrioritized(inactive, Lib, settings.QuestionsPerQuiz, content.KindAny)
	if len(playlist) == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "No exercises are available for your mastered words.",
		})
		return
	}

	session.DefaultManager.StartOrRestart(chatID, userID, session.ModeReview, playlist)
	presentNext(ctx, b, chatID, userID)
}

// presentNext materializes the playlist entry under the cursor and sends it.
// Entries that can no longer be built (content drift since selection) are
// skipped; an exhausted playlist finishes the session.
func presentNext(ctx context.Context, b *bot.Bot, chatID, userID int64) {
	words := ledgerWords()
	for {
		item, ok := session.DefaultManager.CurrentItem(chatID, userID)
		if !ok {
			finishSession(ctx, b, chatID, userID)
			return
		}

		question, ok := Engine.Materialize(item, Lib, words)
		if !ok {
			logger.Info("skipping exercise that can no longer be built", "word", item.Word, "identifier", item.Identifier)
			session.DefaultManager.Skip(chatID, userID)
			continue
		}

		token, ok := session.DefaultManager.Present(chatID, userID, question)
		if !ok {
			return
		}

		keyboard, err := answerKeyboard(token, question.Options)
		if err != nil {
			logger.Error("failed to build answer keyboard", "user_id", userID, "error", err)
			session.DefaultManager.End(chatID, userID)
			return
		}

		position, total := session.DefaultManager.Progress(chatID, userID)
		msg, err := b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      chatID,
			Text:        fmt.Sprintf("Question %d of %d\n\n%s", position+1, total, question.Prompt),
			ReplyMarkup: keyboard,
		})
		if err != nil {
			logger.Error("failed to send quiz question", "user_id", userID, "error", err)
			return
		}
		session.DefaultManager.SetCurrentMessageID(chatID, userID, msg.ID)
		return
	}
}

func answerKeyboard(token string, options []string) (*models.InlineKeyboardMarkup, error) {
	rows := make([][]models.InlineKeyboardButton, 0, len(options))
	for i, option := range options {
		data, err := ui.BuildAnswerCallback(token, i)
		if err != nil {
			return nil, err
		}
		rows = append(rows, []models.InlineKeyboardButton{
			{Text: option, CallbackData: data},
		})
	}
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}, nil
}

// finishSession writes the collected answers back and reports the score.
func finishSession(ctx context.Context, b *bot.Bot, chatID, userID int64) {
	finished, ok := session.DefaultManager.Finish(chatID, userID)
	if !ok {
		return
	}
	if len(finished.Results) == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "Session ended with no answered questions.",
		})
		return
	}

	_, mastered := Store.RecordResults(finished.Results)
	Store.RecordSession(finished.Mode, finished.Correct, finished.Wrong)

	var reactivated []string
	if finished.Mode == session.ModeReview && len(finished.Wrong) > 0 {
		Store.Reactivate(finished.Wrong)
		reactivated = uniqueWords(finished.Wrong)
	}

	total := len(finished.Correct) + len(finished.Wrong)
	score := len(finished.Correct) * 100 / total
	var sb strings.Builder
	fmt.Fprintf(&sb, "Done! You got %d of %d right (%d%%).", len(finished.Correct), total, score)
	if len(mastered) > 0 {
		fmt.Fprintf(&sb, "\n\nMastered: %s 🎉", strings.Join(mastered, ", "))
	}
	if len(reactivated) > 0 {
		fmt.Fprintf(&sb, "\n\nBack in rotation: %s", strings.Join(reactivated, ", "))
	}
	if len(finished.Wrong) > 0 && finished.Mode != session.ModeReview {
		fmt.Fprintf(&sb, "\n\nWorth another look: %s", strings.Join(uniqueWords(finished.Wrong), ", "))
	}

	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   sb.String(),
	}); err != nil {
		logger.Error("failed to send quiz summary", "user_id", userID, "error", err)
	}
}

func uniqueWords(words []string) []string {
	seen := make(map[string]bool, len(words))
	out := make([]string, 0, len(words))
	for _, word := range words {
		if seen[word] {
			continue
		}
		seen[word] = true
		out = append(out, word)
	}
	return out
}
