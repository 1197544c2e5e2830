package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/smith3v/tg-vocab-coach/pkg/logger"
	"github.com/smith3v/tg-vocab-coach/pkg/stats"
)

const rankingLimit = 5

func HandleStats(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update == nil || update.Message == nil || update.Message.From == nil || update.Message.Chat.ID == 0 {
		logger.Error("invalid update in HandleStats")
		return
	}

	entries := Store.Sync(Lib)
	summary := stats.BuildSummary(entries, Store.Sessions(), time.Now())

	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   formatSummary(summary),
	}); err != nil {
		logger.Error("failed to send stats message", "user_id", update.Message.From.ID, "error", err)
	}
}

func formatSummary(summary stats.Summary) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Your vocabulary\n")
	fmt.Fprintf(&sb, "Words: %d (%d active, %d mastered)\n", summary.TotalWords, summary.ActiveWords, summary.InactiveWords)
	fmt.Fprintf(&sb, "Sources: %d flashcards, %d generated\n", summary.FlashcardWords, summary.GeneratedWords)

	fmt.Fprintf(&sb, "\nSessions: %d\n", summary.Sessions)
	if summary.HasAccuracy {
		fmt.Fprintf(&sb, "Accuracy: %.0f%%\n", summary.Accuracy)
	}
	if summary.StudyDebt > 0 {
		fmt.Fprintf(&sb, "Study debt: %d correct answers to go (%.0f%% paid off)\n", summary.StudyDebt, summary.DebtProgress*100)
	} else if summary.Sessions > 0 {
		fmt.Fprintf(&sb, "Study debt: paid off ✅\n")
	}

	fmt.Fprintf(&sb, "\nProgress on active words (%d in progress):\n", summary.InProgress)
	for _, bucket := range summary.Distribution {
		fmt.Fprintf(&sb, "  %s: %d\n", bucket.Label, bucket.Count)
	}

	if len(summary.ErrorRanking) > 0 {
		fmt.Fprintf(&sb, "\nMost missed:\n")
		for i, rank := range summary.ErrorRanking {
			if i >= rankingLimit {
				break
			}
			fmt.Fprintf(&sb, "  %s: %d errors\n", rank.Word, rank.Errors)
		}
	}

	if len(summary.AgeRanking) > 0 {
		fmt.Fprintf(&sb, "\nLongest in rotation:\n")
		for i, rank := range summary.AgeRanking {
			if i >= rankingLimit {
				break
			}
			fmt.Fprintf(&sb, "  %s: %d days\n", rank.Word, rank.AgeDays)
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}
