package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/smith3v/tg-vocab-coach/pkg/logger"
)

const maxReportedErrors = 20

// HandleErrors lists content that failed to parse during the last load.
// Bad blocks are skipped at load time, not fixed up, so the author needs a
// way to see what was dropped.
func HandleErrors(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update == nil || update.Message == nil || update.Message.From == nil || update.Message.Chat.ID == 0 {
		logger.Error("invalid update in HandleErrors")
		return
	}

	if len(Lib.Errors) == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "All content files parsed cleanly ✅",
		})
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d content problems found:\n", len(Lib.Errors))
	for i, problem := range Lib.Errors {
		if i >= maxReportedErrors {
			fmt.Fprintf(&sb, "\n...and %d more", len(Lib.Errors)-maxReportedErrors)
			break
		}
		fmt.Fprintf(&sb, "\n- %s", problem)
	}

	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   sb.String(),
	}); err != nil {
		logger.Error("failed to send errors message", "user_id", update.Message.From.ID, "error", err)
	}
}
