package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/smith3v/tg-vocab-coach/pkg/logger"
)

func DefaultHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update == nil || update.Message == nil {
		logger.Error("received invalid update in defaultHandler")
		return
	}
	if update.Message.Chat.ID == 0 {
		logger.Error("chat ID is zero in defaultHandler")
		return
	}

	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text: "Commands:\n" +
			"* /quiz: adaptive quiz over your active words.\n" +
			"* /poolquiz: quiz over the hardest words.\n" +
			"* /review: revisit mastered words.\n" +
			"* /cloze: fill the gaps in a text.\n" +
			"* /write <word> <sentence>: log a sentence you wrote.\n" +
			"* /stats: your progress report.\n" +
			"* /settings: quiz sizes and repeats.\n" +
			"* /errors: content files that failed to parse.",
	})
	if err != nil {
		logger.Error("failed to send message in defaultHandler", "error", err)
	}
}
