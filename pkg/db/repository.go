// pkg/db/repository.go
package db

import (
	"strconv"
	"strings"

	"github.com/smith3v/tg-vocab-coach/pkg/config"
	"github.com/smith3v/tg-vocab-coach/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Export DB variable
var DB *gorm.DB

func InitDB(cfg config.DatabaseConfig) error {
	gormLogger, gormErr := newGormLogger(config.AppConfig.Logging.GormLevel)
	if gormErr != nil {
		logger.Error("invalid gorm log level", "value", config.AppConfig.Logging.GormLevel, "error", gormErr)
	}

	var err error
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "postgres":
		dsn := "host=" + cfg.Host +
			" user=" + cfg.User +
			" password=" + cfg.Password +
			" dbname=" + cfg.DBName +
			" port=" + strconv.Itoa(cfg.Port) +
			" sslmode=" + cfg.SSLMode
		DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormLogger})
	default:
		path := cfg.Path
		if path == "" {
			path = "vocab-coach.db"
		}
		DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{Logger: gormLogger})
	}
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		return err
	}

	if err := DB.AutoMigrate(
		&VocabularyEntry{},
		&QuizHistory{},
		&WritingEntry{},
		&QuizSession{},
		&UserSettings{},
	); err != nil {
		logger.Error("failed to auto-migrate database", "error", err)
		return err
	}
	return nil
}
