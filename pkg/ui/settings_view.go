package ui

import (
	"fmt"

	"github.com/go-telegram/bot/models"
)

func RenderHome(questionsPerQuiz, poolQuizSize int, allowRepeats bool) (string, *models.InlineKeyboardMarkup, error) {
	quizData, err := buildSimpleCallback(ScreenQuizSize)
	if err != nil {
		return "", nil, err
	}
	poolData, err := buildSimpleCallback(ScreenPoolSize)
	if err != nil {
		return "", nil, err
	}
	repData, err := buildSimpleCallback(ScreenRepeats)
	if err != nil {
		return "", nil, err
	}
	closeData, err := BuildCloseCallback()
	if err != nil {
		return "", nil, err
	}

	text := fmt.Sprintf(
		"Settings\n- Questions per quiz: %d\n- Pool quiz size: %d\n- Repeats in pool quiz: %s",
		questionsPerQuiz,
		poolQuizSize,
		formatToggle(allowRepeats),
	)

	keyboard := &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{
				{Text: "Questions", CallbackData: quizData},
				{Text: "Pool size", CallbackData: poolData},
			},
			{
				{Text: "Repeats", CallbackData: repData},
				{Text: "Close", CallbackData: closeData},
			},
		},
	}

	return text, keyboard, nil
}

func RenderQuizSize(current int) (string, *models.InlineKeyboardMarkup, error) {
	text := fmt.Sprintf("Questions per quiz\nCurrent value: %d", current)
	keyboard, err := buildAdjustKeyboard(ScreenQuizSize)
	if err != nil {
		return "", nil, err
	}
	return text, keyboard, nil
}

func RenderPoolSize(current int) (string, *models.InlineKeyboardMarkup, error) {
	text := fmt.Sprintf("Pool quiz size\nCurrent value: %d", current)
	keyboard, err := buildAdjustKeyboard(ScreenPoolSize)
	if err != nil {
		return "", nil, err
	}
	return text, keyboard, nil
}

func RenderRepeats(allowRepeats bool) (string, *models.InlineKeyboardMarkup, error) {
	toggleData, err := BuildRepeatsToggleCallback()
	if err != nil {
		return "", nil, err
	}
	backData, err := BuildHomeCallback()
	if err != nil {
		return "", nil, err
	}

	text := fmt.Sprintf("Repeats in pool quiz\nCurrent value: %s", formatToggle(allowRepeats))
	keyboard := &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{
				{Text: toggleLabel(allowRepeats), CallbackData: toggleData},
			},
			{
				{Text: "Back", CallbackData: backData},
			},
		},
	}

	return text, keyboard, nil
}

func buildAdjustKeyboard(screen Screen) (*models.InlineKeyboardMarkup, error) {
	decData, err := buildAdjustCallback(screen, OpDec)
	if err != nil {
		return nil, err
	}
	incData, err := buildAdjustCallback(screen, OpInc)
	if err != nil {
		return nil, err
	}
	backData, err := BuildHomeCallback()
	if err != nil {
		return nil, err
	}

	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{
				{Text: "-1", CallbackData: decData},
				{Text: "+1", CallbackData: incData},
			},
			{
				{Text: "Back", CallbackData: backData},
			},
		},
	}, nil
}

func formatToggle(enabled bool) string {
	if enabled {
		return "on"
	}
	return "off"
}

func toggleLabel(enabled bool) string {
	if enabled {
		return "Turn off"
	}
	return "Turn on"
}
