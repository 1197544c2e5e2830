package handlers

import (
	"context"
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/smith3v/tg-vocab-coach/pkg/bot/session"
	"github.com/smith3v/tg-vocab-coach/pkg/logger"
	"github.com/smith3v/tg-vocab-coach/pkg/quiz"
	"github.com/smith3v/tg-vocab-coach/pkg/ui"
)

// clozeState is one user's in-flight cloze text: all gaps share the option
// pool, answered one gap at a time. Cloze results go to history only.
type clozeState struct {
	question       quiz.ClozeQuestion
	token          string
	answers        []string
	lastActivityAt time.Time
}

var (
	clozeMu       sync.Mutex
	clozeSessions = make(map[string]*clozeState)
)

var gapMarker = regexp.MustCompile(`\[GAP(\d+)\]`)

func HandleCloze(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update == nil || update.Message == nil || update.Message.From == nil || update.Message.Chat.ID == 0 {
		logger.Error("invalid update in HandleCloze")
		return
	}

	chatID := update.Message.Chat.ID
	userID := update.Message.From.ID

	texts := Lib.ClozeTexts()
	if len(texts) == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "No cloze texts are available. Check /errors if your content files failed to load.",
		})
		return
	}

	question, ok := Engine.MaterializeCloze(texts[rand.Intn(len(texts))])
	if !ok {
		logger.Error("failed to materialize cloze text", "user_id", userID)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "Failed to prepare a cloze text. Please try again later.",
		})
		return
	}

	state := &clozeState{
		question:       question,
		token:          fmt.Sprintf("%x", rand.Int63()),
		lastActivityAt: time.Now(),
	}
	clozeMu.Lock()
	clozeSessions[clozeKey(chatID, userID)] = state
	clozeMu.Unlock()

	sendClozeGap(ctx, b, chatID, userID, state.question, state.token, 0)
}

func HandleClozeCallback(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update == nil || update.CallbackQuery == nil {
		logger.Error("invalid update in HandleClozeCallback")
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
			logger.Error("failed to answer cloze callback query", "error", err)
		}
	}

	answer, err := ui.ParseClozeCallback(update.CallbackQuery.Data)
	if err != nil {
		logger.Error("failed to parse cloze callback", "data", update.CallbackQuery.Data, "error", err)
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

	clozeMu.Lock()
	state := clozeSessions[clozeKey(chatID, userID)]
	if state == nil || state.token != answer.Token || answer.Option < 0 || answer.Option >= len(state.question.Options) {
		clozeMu.Unlock()
		answerCallback("This text is no longer active")
		return
	}
	state.answers = append(state.answers, state.question.Options[answer.Option])
	state.lastActivityAt = time.Now()
	question := state.question
	token := state.token
	answers := append([]string(nil), state.answers...)
	answered := len(answers)
	done := answered >= len(question.Answers)
	if done {
		delete(clozeSessions, clozeKey(chatID, userID))
	}
	clozeMu.Unlock()

	answerCallback("")

	if !done {
		sendClozeGap(ctx, b, chatID, userID, question, token, answered)
		return
	}

	correct := quiz.GradeCloze(question, answers)
	var correctWords, wrongWords []string
	var sb strings.Builder
	fmt.Fprintf(&sb, "Done! You filled %d of %d gaps correctly.\n", correct, len(question.Answers))
	for i, expected := range question.Answers {
		got := answers[i]
		if got == expected {
			correctWords = append(correctWords, expected)
			fmt.Fprintf(&sb, "\nGap %d: %s ✅", i+1, got)
		} else {
			wrongWords = append(wrongWords, expected)
			fmt.Fprintf(&sb, "\nGap %d: %s ❌ (expected %s)", i+1, got, expected)
		}
	}
	Store.RecordSession("cloze_quiz", correctWords, wrongWords)

	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   sb.String(),
	}); err != nil {
		logger.Error("failed to send cloze summary", "user_id", userID, "error", err)
	}
}

func sendClozeGap(ctx context.Context, b *bot.Bot, chatID, userID int64, question quiz.ClozeQuestion, token string, answered int) {
	gap := answered + 1
	keyboard, err := clozeKeyboard(token, question.Options)
	if err != nil {
		logger.Error("failed to build cloze keyboard", "user_id", userID, "error", err)
		return
	}

	var sb strings.Builder
	if gap == 1 {
		fmt.Fprintf(&sb, "%s", question.Title)
		if question.Level != "" {
			fmt.Fprintf(&sb, " (%s)", question.Level)
		}
		fmt.Fprintf(&sb, "\n\n%s\n\n", displayClozePrompt(question.Prompt))
	}
	fmt.Fprintf(&sb, "Pick the word for gap %d of %d:", gap, len(question.Answers))

	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        sb.String(),
		ReplyMarkup: keyboard,
	}); err != nil {
		logger.Error("failed to send cloze gap", "user_id", userID, "error", err)
	}
}

func clozeKeyboard(token string, options []string) (*models.InlineKeyboardMarkup, error) {
	rows := make([][]models.InlineKeyboardButton, 0, len(options))
	for i, option := range options {
		data, err := ui.BuildClozeCallback(token, i)
		if err != nil {
			return nil, err
		}
		rows = append(rows, []models.InlineKeyboardButton{
			{Text: option, CallbackData: data},
		})
	}
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}, nil
}

// displayClozePrompt rewrites [GAPn] markers into numbered blanks.
func displayClozePrompt(prompt string) string {
	return gapMarker.ReplaceAllString(prompt, "_____($1)")
}

func clozeKey(chatID, userID int64) string {
	return fmt.Sprintf("%d:%d", chatID, userID)
}

// StartClozeSweeper drops abandoned cloze texts, mirroring the quiz session
// sweeper and its timeouts.
func StartClozeSweeper(ctx context.Context) {
	ticker := time.NewTicker(session.SweeperInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sweepClozeSessions(time.Now())
		}
	}
}

func sweepClozeSessions(now time.Time) {
	clozeMu.Lock()
	defer clozeMu.Unlock()
	for key, state := range clozeSessions {
		if state == nil || now.Sub(state.lastActivityAt) > session.InactivityTimeout {
			delete(clozeSessions, key)
		}
	}
}
