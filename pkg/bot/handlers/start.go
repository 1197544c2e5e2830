package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/smith3v/tg-vocab-coach/pkg/logger"
)

func HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update == nil || update.Message == nil || update.Message.From == nil || update.Message.Chat.ID == 0 {
		logger.Error("invalid update in HandleStart")
		return
	}

	entries := Store.Sync(Lib)
	active := 0
	for _, entry := range entries {
		if entry.Active {
			active++
		}
	}

	text := fmt.Sprintf(
		"Welcome! I track your vocabulary and quiz you on the words that need work.\n\n"+
			"Tracked words: %d (%d active)\n\n"+
			"Commands:\n"+
			"/quiz - adaptive quiz over your active words\n"+
			"/poolquiz - quiz over the hardest words\n"+
			"/review - revisit mastered words\n"+
			"/cloze - fill the gaps in a text\n"+
			"/write - log a sentence you wrote with a word\n"+
			"/stats - your progress report\n"+
			"/settings - quiz sizes and repeats\n"+
			"/errors - content files that failed to parse",
		len(entries), active,
	)

	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   text,
	}); err != nil {
		logger.Error("failed to send start message", "user_id", update.Message.From.ID, "error", err)
	}
}
