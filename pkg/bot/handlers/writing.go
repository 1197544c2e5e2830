package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/smith3v/tg-vocab-coach/pkg/logger"
)

// HandleWrite logs a self-written sentence for a tracked word, e.g.
// "/write ubiquitous Smartphones are ubiquitous these days."
func HandleWrite(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update == nil || update.Message == nil || update.Message.From == nil || update.Message.Chat.ID == 0 {
		logger.Error("invalid update in HandleWrite")
		return
	}

	chatID := update.Message.Chat.ID
	userID := update.Message.From.ID

	parts := strings.SplitN(strings.TrimSpace(update.Message.Text), " ", 3)
	if len(parts) < 3 || strings.TrimSpace(parts[2]) == "" {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "Usage: /write <word> <your sentence using the word>",
		})
		return
	}
	word := parts[1]
	sentence := strings.TrimSpace(parts[2])

	tracked := false
	for _, entry := range Store.Entries() {
		if strings.EqualFold(entry.Word, word) {
			word = entry.Word
			tracked = true
			break
		}
	}
	if !tracked {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   fmt.Sprintf("%q is not in your vocabulary. Run /quiz to sync your word list first.", word),
		})
		return
	}

	if !strings.Contains(strings.ToLower(sentence), strings.ToLower(word)) {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   fmt.Sprintf("Your sentence has to use the word %q.", word),
		})
		return
	}

	Store.RecordWriting(word, sentence)
	logger.Info("writing entry recorded", "user_id", userID, "word", word)

	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   fmt.Sprintf("Saved! Writing practice for %q is marked as done.", word),
	}); err != nil {
		logger.Error("failed to send writing confirmation", "user_id", userID, "error", err)
	}
}
