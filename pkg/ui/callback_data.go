package ui

import (
	"errors"
	"strconv"
	"strings"
)

const (
	AnswerPrefix       = "q:"
	ClozePrefix        = "c:"
	SettingsPrefix     = "s:"
	MaxCallbackDataLen = 64
)

// Answer is a decoded option tap for the current quiz question. The token
// ties the tap to the question it was issued for; stale taps are rejected
// by the session manager, not here.
type Answer struct {
	Token  string
	Option int
}

type Screen string

const (
	ScreenHome     Screen = "home"
	ScreenQuizSize Screen = "quiz"
	ScreenPoolSize Screen = "pool"
	ScreenRepeats  Screen = "rep"
	ScreenClose    Screen = "close"
)

type Operation string

const (
	OpNone   Operation = ""
	OpInc    Operation = "+1"
	OpDec    Operation = "-1"
	OpToggle Operation = "toggle"
)

type Action struct {
	Screen Screen
	Op     Operation
}

var (
	errInvalidPrefix       = errors.New("invalid callback prefix")
	errInvalidAction       = errors.New("invalid callback action")
	errInvalidOperation    = errors.New("invalid callback operation")
	errInvalidValue        = errors.New("invalid callback value")
	errCallbackDataTooLong = errors.New("callback data too long")
)

func BuildAnswerCallback(token string, option int) (string, error) {
	return buildOptionCallback(AnswerPrefix, token, option)
}

func ParseAnswerCallback(data string) (Answer, error) {
	return parseOptionCallback(AnswerPrefix, data)
}

func BuildClozeCallback(token string, option int) (string, error) {
	return buildOptionCallback(ClozePrefix, token, option)
}

func ParseClozeCallback(data string) (Answer, error) {
	return parseOptionCallback(ClozePrefix, data)
}

func buildOptionCallback(prefix, token string, option int) (string, error) {
	if token == "" || strings.Contains(token, ":") {
		return "", errInvalidValue
	}
	if option < 0 {
		return "", errInvalidValue
	}
	data := prefix + token + ":" + strconv.Itoa(option)
	return validateCallbackData(data)
}

func parseOptionCallback(prefix, data string) (Answer, error) {
	if data == "" {
		return Answer{}, errInvalidAction
	}
	if len(data) > MaxCallbackDataLen {
		return Answer{}, errCallbackDataTooLong
	}
	if !strings.HasPrefix(data, prefix) {
		return Answer{}, errInvalidPrefix
	}

	parts := strings.Split(data[len(prefix):], ":")
	if len(parts) != 2 || parts[0] == "" {
		return Answer{}, errInvalidAction
	}
	if !isASCIIUnsignedInt(parts[1]) {
		return Answer{}, errInvalidValue
	}
	option, err := strconv.Atoi(parts[1])
	if err != nil {
		return Answer{}, errInvalidValue
	}
	return Answer{Token: parts[0], Option: option}, nil
}

func BuildHomeCallback() (string, error) {
	return buildSimpleCallback(ScreenHome)
}

func BuildCloseCallback() (string, error) {
	return buildSimpleCallback(ScreenClose)
}

func BuildQuizSizeIncCallback() (string, error) {
	return buildAdjustCallback(ScreenQuizSize, OpInc)
}

func BuildQuizSizeDecCallback() (string, error) {
	return buildAdjustCallback(ScreenQuizSize, OpDec)
}

func BuildPoolSizeIncCallback() (string, error) {
	return buildAdjustCallback(ScreenPoolSize, OpInc)
}

func BuildPoolSizeDecCallback() (string, error) {
	return buildAdjustCallback(ScreenPoolSize, OpDec)
}

func BuildRepeatsToggleCallback() (string, error) {
	data := SettingsPrefix + string(ScreenRepeats) + ":" + string(OpToggle)
	return validateCallbackData(data)
}

func ParseSettingsCallback(data string) (Action, error) {
	if data == "" {
		return Action{}, errInvalidAction
	}
	if len(data) > MaxCallbackDataLen {
		return Action{}, errCallbackDataTooLong
	}
	if !strings.HasPrefix(data, SettingsPrefix) {
		return Action{}, errInvalidPrefix
	}

	parts := strings.Split(data[len(SettingsPrefix):], ":")
	switch len(parts) {
	case 1:
		screen, err := parseScreen(parts[0])
		if err != nil {
			return Action{}, err
		}
		return Action{Screen: screen, Op: OpNone}, nil
	case 2:
		screen, err := parseScreen(parts[0])
		if err != nil {
			return Action{}, err
		}
		switch Operation(parts[1]) {
		case OpInc, OpDec:
			if screen != ScreenQuizSize && screen != ScreenPoolSize {
				return Action{}, errInvalidAction
			}
			return Action{Screen: screen, Op: Operation(parts[1])}, nil
		case OpToggle:
			if screen != ScreenRepeats {
				return Action{}, errInvalidAction
			}
			return Action{Screen: screen, Op: OpToggle}, nil
		default:
			return Action{}, errInvalidOperation
		}
	default:
		return Action{}, errInvalidAction
	}
}

func buildSimpleCallback(screen Screen) (string, error) {
	data := SettingsPrefix + string(screen)
	return validateCallbackData(data)
}

func buildAdjustCallback(screen Screen, op Operation) (string, error) {
	if screen != ScreenQuizSize && screen != ScreenPoolSize {
		return "", errInvalidAction
	}
	if op != OpInc && op != OpDec {
		return "", errInvalidOperation
	}
	data := SettingsPrefix + string(screen) + ":" + string(op)
	return validateCallbackData(data)
}

func validateCallbackData(data string) (string, error) {
	if data == "" {
		return "", errInvalidAction
	}
	if len(data) > MaxCallbackDataLen {
		return "", errCallbackDataTooLong
	}
	return data, nil
}

func parseScreen(screenPart string) (Screen, error) {
	switch Screen(screenPart) {
	case ScreenHome:
		return ScreenHome, nil
	case ScreenQuizSize:
		return ScreenQuizSize, nil
	case ScreenPoolSize:
		return ScreenPoolSize, nil
	case ScreenRepeats:
		return ScreenRepeats, nil
	case ScreenClose:
		return ScreenClose, nil
	default:
		return "", errInvalidAction
	}
}

func isASCIIUnsignedInt(value string) bool {
	if value == "" {
		return false
	}
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return false
		}
	}
	return true
}
