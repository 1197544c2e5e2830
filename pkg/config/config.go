package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/smith3v/tg-vocab-coach/pkg/logger"
)

type Config struct {
	Database DatabaseConfig `json:"database"`
	Telegram TelegramConfig `json:"telegram"`
	Logging  LoggingConfig  `json:"logging"`
	Content  ContentConfig  `json:"content"`
}

type DatabaseConfig struct {
	Driver   string `json:"driver"` // "sqlite" or "postgres"
	Path     string `json:"path"`   // sqlite file path
	Host     string `json:"host"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"dbname"`
	Port     int    `json:"port"`
	SSLMode  string `json:"sslmode"`
}

type TelegramConfig struct {
	Token string `json:"token"`
}

type LoggingConfig struct {
	Level     string `json:"level"`
	File      string `json:"file"`
	GormLevel string `json:"gorm_level"`
}

// ContentConfig points at the study material files and selects the
// active language ("en" or "fr"). The files are shared with the
// authoring workflow, so their formats are fixed.
type ContentConfig struct {
	FlashcardsFile string `json:"flashcards_file"`
	GeneratedFile  string `json:"generated_file"`
	ClozeFile      string `json:"cloze_file"`
	Language       string `json:"language"`
}

var AppConfig Config

func LoadConfig(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		logger.Error("failed to open config file", "error", err)
		return err
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&AppConfig); err != nil {
		logger.Error("failed to decode config file", "error", err)
		return err
	}

	if token := os.Getenv("VOCAB_COACH_TOKEN"); token != "" {
		AppConfig.Telegram.Token = token
	}
	if AppConfig.Content.Language == "" {
		AppConfig.Content.Language = "en"
	}

	return validate(&AppConfig)
}

func validate(cfg *Config) error {
	switch strings.ToLower(strings.TrimSpace(cfg.Database.Driver)) {
	case "", "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
	switch cfg.Content.Language {
	case "en", "fr":
	default:
		return fmt.Errorf("unsupported language %q", cfg.Content.Language)
	}
	return nil
}
