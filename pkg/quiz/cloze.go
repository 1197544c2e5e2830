// pkg/quiz/cloze.go
package quiz

import (
	"github.com/smith3v/tg-vocab-coach/pkg/content"
)

// ClozeQuestion is the multi-gap variant: every gap draws from the shared
// option pool and has its own correct answer. Cloze results are recorded in
// history only, never in the per-word ledger.
type ClozeQuestion struct {
	Title      string
	Prompt     string
	Options    []string
	Answers    []string // correct answer per gap, in gap order
	Level      string
	Identifier string
}

// MaterializeCloze prepares a cloze text for rendering: options deduped and
// shuffled, answers kept in gap order.
func (e *Engine) MaterializeCloze(exercise content.GeneratedExercise) (ClozeQuestion, bool) {
	if !exercise.IsCloze() || len(exercise.Correct) == 0 {
		return ClozeQuestion{}, false
	}

	options := dedupe(append([]string(nil), exercise.Options...))
	e.rnd.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	title := exercise.Title
	if title == "" {
		title = "Cloze text"
	}

	return ClozeQuestion{
		Title:      title,
		Prompt:     exercise.Prompt,
		Options:    options,
		Answers:    append([]string(nil), exercise.Correct...),
		Level:      exercise.Level,
		Identifier: exercise.Prompt,
	}, true
}

// GradeCloze counts how many gaps were filled correctly.
func GradeCloze(question ClozeQuestion, answers []string) int {
	correct := 0
	for i, answer := range answers {
		if i < len(question.Answers) && answer == question.Answers[i] {
			correct++
		}
	}
	return correct
}
