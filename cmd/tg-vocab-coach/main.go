package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/go-telegram/bot"
	"github.com/joho/godotenv"
	"github.com/smith3v/tg-vocab-coach/pkg/bot/handlers"
	"github.com/smith3v/tg-vocab-coach/pkg/bot/session"
	"github.com/smith3v/tg-vocab-coach/pkg/config"
	"github.com/smith3v/tg-vocab-coach/pkg/content"
	"github.com/smith3v/tg-vocab-coach/pkg/db"
	"github.com/smith3v/tg-vocab-coach/pkg/ledger"
	"github.com/smith3v/tg-vocab-coach/pkg/logger"
)

func main() {
	// Optional .env next to the binary; real env vars win.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Info("failed to load .env file", "error", err)
	}

	if err := config.LoadConfig("config.json"); err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := logger.Configure(logger.Options{
		Level: config.AppConfig.Logging.Level,
		File:  config.AppConfig.Logging.File,
	}); err != nil {
		logger.Error("failed to configure logger", "error", err)
	}

	if err := db.InitDB(config.AppConfig.Database); err != nil {
		logger.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}

	lib := content.Load(content.FileSource{
		FlashcardsPath: config.AppConfig.Content.FlashcardsFile,
		GeneratedPath:  config.AppConfig.Content.GeneratedFile,
		ClozePath:      config.AppConfig.Content.ClozeFile,
	}, config.AppConfig.Content.Language)
	if len(lib.Errors) > 0 {
		logger.Error("content loaded with problems", "count", len(lib.Errors))
	}
	logger.Info("content loaded",
		"flashcards", len(lib.Flashcards),
		"generated", len(lib.Exercises),
		"cloze", len(lib.ClozeTexts()))

	store := ledger.NewStore(config.AppConfig.Content.Language, nil)
	handlers.Setup(lib, store)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	opts := []bot.Option{
		bot.WithDefaultHandler(handlers.DefaultHandler),
	}
	b, err := bot.New(config.AppConfig.Telegram.Token, opts...)
	if err != nil {
		logger.Error("failed to create bot", "error", err)
		os.Exit(1)
	}

	b.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, handlers.HandleStart)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/quiz", bot.MatchTypeExact, handlers.HandleQuiz)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/poolquiz", bot.MatchTypeExact, handlers.HandlePoolQuiz)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/review", bot.MatchTypeExact, handlers.HandleReview)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/cloze", bot.MatchTypeExact, handlers.HandleCloze)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/write", bot.MatchTypePrefix, handlers.HandleWrite)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/stats", bot.MatchTypeExact, handlers.HandleStats)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/settings", bot.MatchTypeExact, handlers.HandleSettings)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/errors", bot.MatchTypeExact, handlers.HandleErrors)
	b.RegisterHandler(bot.HandlerTypeCallbackQueryData, "q:", bot.MatchTypePrefix, handlers.HandleAnswerCallback)
	b.RegisterHandler(bot.HandlerTypeCallbackQueryData, "c:", bot.MatchTypePrefix, handlers.HandleClozeCallback)
	b.RegisterHandler(bot.HandlerTypeCallbackQueryData, "s:", bot.MatchTypePrefix, handlers.HandleSettingsCallback)

	go session.StartSessionSweeper(ctx)
	go handlers.StartClozeSweeper(ctx)

	logger.Info("Starting bot...")
	b.Start(ctx)
}
