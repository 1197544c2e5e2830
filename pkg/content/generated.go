// pkg/content/generated.go
package content

import (
	"fmt"
	"regexp"
	"strings"
)

const generatedFieldCount = 7

var gapPattern = regexp.MustCompile(`\[GAP\d+\]`)

// ParseGenerated parses the semicolon-delimited exercise file. Rows for
// another language or with an unrecognized kind code are skipped silently;
// structural problems (wrong column count, empty required field, bad
// options) are collected as error messages and the row is dropped.
func ParseGenerated(raw string, language string) ([]GeneratedExercise, []string) {
	var exercises []GeneratedExercise
	var errs []string

	for i, line := range splitRows(raw) {
		if !strings.Contains(line, ";") {
			continue
		}
		fields := splitFields(line)
		if len(fields) != generatedFieldCount {
			errs = append(errs, fmt.Sprintf("exercise line #%d (%q): expected %d columns, got %d", i+1, truncate(line), generatedFieldCount, len(fields)))
			continue
		}

		lang, kind, prompt, optionsStr, correct, primary, level := fields[0], fields[1], fields[2], fields[3], fields[4], fields[5], fields[6]
		if lang != language {
			continue
		}
		if !recognizedGeneratedKind(kind) {
			continue
		}
		if kind == "" || prompt == "" || optionsStr == "" || correct == "" || primary == "" || level == "" {
			errs = append(errs, fmt.Sprintf("exercise line #%d (%q): required column is empty", i+1, truncate(line)))
			continue
		}

		options, ok := splitOptions(optionsStr)
		if !ok {
			errs = append(errs, fmt.Sprintf("exercise line #%d (%q): invalid options", i+1, truncate(line)))
			continue
		}

		exercises = append(exercises, GeneratedExercise{
			Kind:         ExerciseKind(kind),
			Prompt:       prompt,
			Options:      options,
			Correct:      []string{correct},
			PrimaryWords: []string{primary},
			Level:        level,
		})
	}

	return exercises, errs
}

// ParseCloze parses the cloze-text file. Columns differ from the standard
// exercise file: the sixth is the level and the seventh a display title.
// The number of correct answers must match the number of [GAPn] markers in
// the prompt.
func ParseCloze(raw string, language string) ([]GeneratedExercise, []string) {
	var exercises []GeneratedExercise
	var errs []string

	for i, line := range splitRows(raw) {
		if !strings.Contains(line, ";") {
			continue
		}
		fields := splitFields(line)
		if len(fields) != generatedFieldCount {
			errs = append(errs, fmt.Sprintf("cloze line #%d (%q): expected %d columns, got %d", i+1, truncate(line), generatedFieldCount, len(fields)))
			continue
		}

		lang, kind, prompt, optionsStr, correctsStr, level, title := fields[0], fields[1], fields[2], fields[3], fields[4], fields[5], fields[6]
		if lang != language || ExerciseKind(kind) != KindClozeText {
			continue
		}

		options, ok := splitOptions(optionsStr)
		if !ok {
			errs = append(errs, fmt.Sprintf("cloze line #%d (%q): invalid options", i+1, truncate(line)))
			continue
		}
		corrects, ok := splitOptions(correctsStr)
		if !ok {
			errs = append(errs, fmt.Sprintf("cloze line #%d (%q): invalid correct answers", i+1, truncate(line)))
			continue
		}
		if gaps := len(gapPattern.FindAllString(prompt, -1)); gaps != len(corrects) {
			errs = append(errs, fmt.Sprintf("cloze line #%d (%q): %d gaps but %d correct answers", i+1, truncate(line), gaps, len(corrects)))
			continue
		}

		exercises = append(exercises, GeneratedExercise{
			Kind:         KindClozeText,
			Prompt:       prompt,
			Options:      options,
			Correct:      corrects,
			PrimaryWords: corrects,
			Level:        level,
			Title:        title,
		})
	}

	return exercises, errs
}

func splitRows(raw string) []string {
	var rows []string
	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			rows = append(rows, line)
		}
	}
	return rows
}

func splitFields(line string) []string {
	fields := strings.Split(line, ";")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}

func splitOptions(value string) ([]string, bool) {
	parts := strings.Split(value, "|")
	options := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, false
		}
		options = append(options, part)
	}
	if len(options) == 0 {
		return nil, false
	}
	return options, true
}

func truncate(line string) string {
	const max = 40
	runes := []rune(line)
	if len(runes) <= max {
		return line
	}
	return string(runes[:max]) + "..."
}
