// pkg/quiz/materialize.go
package quiz

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/smith3v/tg-vocab-coach/pkg/content"
)

const gapPlaceholder = "_____"

// Question is one renderable single-answer exercise.
type Question struct {
	Kind         content.ExerciseKind
	Prompt       string
	Options      []string
	CorrectIndex int
	Level        string
	Identifier   string
	Word         string
}

type cardGenerator func(e *Engine, card content.Flashcard, deck []content.Flashcard) (Question, bool)

// cardGenerators is the closed dispatch table for flashcard-derived
// exercise kinds.
var cardGenerators = map[content.ExerciseKind]cardGenerator{
	content.KindMeaningMCQ:     (*Engine).meaningQuestion,
	content.KindTranslationMCQ: (*Engine).translationQuestion,
	content.KindSynonymMCQ:     (*Engine).synonymQuestion,
	content.KindFillGap:        (*Engine).fillGapQuestion,
	content.KindReading:        (*Engine).readingQuestion,
}

// Materialize turns a playlist entry into a renderable question. Distractor
// choice is randomized; everything else is determined by the content. The
// second return value is false when the exercise cannot be built (missing
// source field, content drift since selection).
func (e *Engine) Materialize(item PlaylistItem, lib *content.Library, fullWordList []string) (Question, bool) {
	if generate, ok := cardGenerators[item.Kind]; ok {
		card, found := lib.Cards[item.Word]
		if !found {
			return Question{}, false
		}
		question, ok := generate(e, card, lib.Flashcards)
		if ok {
			question.Word = item.Word
		}
		return question, ok
	}
	return e.renderGenerated(item, lib, fullWordList)
}

// Distractor dedup runs on the merged option set, so overlapping card
// fields can legitimately leave fewer than four options.
func (e *Engine) meaningQuestion(card content.Flashcard, deck []content.Flashcard) (Question, bool) {
	if card.Back == "" {
		return Question{}, false
	}
	var others []string
	for _, c := range deck {
		if c.Front != card.Front && c.Back != "" {
			others = append(others, c.Back)
		}
	}
	options, correctIndex := e.assembleOptions(card.Back, others)
	return Question{
		Kind:         content.KindMeaningMCQ,
		Prompt:       fmt.Sprintf("What does %q mean?", card.Front),
		Options:      options,
		CorrectIndex: correctIndex,
		Level:        card.Level,
		Identifier:   content.MeaningID(card),
	}, true
}

func (e *Engine) translationQuestion(card content.Flashcard, deck []content.Flashcard) (Question, bool) {
	var others []string
	for _, c := range deck {
		if c.Front != card.Front {
			others = append(others, c.Front)
		}
	}
	options, correctIndex := e.assembleOptions(card.Front, others)
	return Question{
		Kind:         content.KindTranslationMCQ,
		Prompt:       fmt.Sprintf("Which word matches the translation %q?", card.Back),
		Options:      options,
		CorrectIndex: correctIndex,
		Level:        card.Level,
		Identifier:   content.TranslationID(card),
	}, true
}

func (e *Engine) synonymQuestion(card content.Flashcard, deck []content.Flashcard) (Question, bool) {
	if card.ClozeAnswer == "" {
		return Question{}, false
	}
	var others []string
	for _, c := range deck {
		if c.Front != card.Front && c.ClozeAnswer != "" {
			others = append(others, c.ClozeAnswer)
		}
	}
	options, correctIndex := e.assembleOptions(card.ClozeAnswer, others)
	return Question{
		Kind:         content.KindSynonymMCQ,
		Prompt:       fmt.Sprintf("Pick the synonym of %q:", card.Front),
		Options:      options,
		CorrectIndex: correctIndex,
		Level:        card.Level,
		Identifier:   content.SynonymID(card),
	}, true
}

func (e *Engine) fillGapQuestion(card content.Flashcard, deck []content.Flashcard) (Question, bool) {
	if card.Example == "" {
		return Question{}, false
	}
	gapped, ok := blankFirstOccurrence(card.Example, card.Front)
	if !ok {
		return Question{}, false
	}
	var others []string
	for _, c := range deck {
		if !strings.EqualFold(c.Front, card.Front) {
			others = append(others, c.Front)
		}
	}
	options, correctIndex := e.assembleOptions(card.Front, others)
	return Question{
		Kind:         content.KindFillGap,
		Prompt:       gapped,
		Options:      options,
		CorrectIndex: correctIndex,
		Level:        card.Level,
		Identifier:   content.FillGapID(card),
	}, true
}

func (e *Engine) readingQuestion(card content.Flashcard, deck []content.Flashcard) (Question, bool) {
	if card.Example == "" {
		return Question{}, false
	}
	var others []string
	for _, c := range deck {
		if c.Front != card.Front && c.Back != "" {
			others = append(others, c.Back)
		}
	}
	options, correctIndex := e.assembleOptions(card.Back, others)
	prompt := fmt.Sprintf("In the sentence: %q\n\nWhat does %q most likely mean in this context?", card.Example, card.Front)
	return Question{
		Kind:         content.KindReading,
		Prompt:       prompt,
		Options:      options,
		CorrectIndex: correctIndex,
		Level:        card.Level,
		Identifier:   content.ReadingID(card),
	}, true
}

// renderGenerated builds the question for a generated-exercise playlist
// entry. Some kinds forbid the primary keyword among the options; after
// filtering and dedup the set is topped up to four from the full word list
// when enough unused words exist. Fails closed if the correct answer did
// not survive.
func (e *Engine) renderGenerated(item PlaylistItem, lib *content.Library, fullWordList []string) (Question, bool) {
	var exercise *content.GeneratedExercise
	for i, ex := range lib.ByWord[item.Word] {
		if ex.Kind == item.Kind && ex.Prompt == item.Identifier {
			exercise = &lib.ByWord[item.Word][i]
			break
		}
	}
	if exercise == nil {
		return Question{}, false
	}

	keyword := exercise.PrimaryWord()
	correct := exercise.CorrectAnswer()

	options := make([]string, 0, len(exercise.Options))
	for _, option := range exercise.Options {
		if content.KeywordExcludedFromOptions(item.Kind) && strings.EqualFold(option, keyword) {
			continue
		}
		options = append(options, option)
	}
	options = dedupe(options)

	if missing := 4 - len(options); missing > 0 {
		used := make(map[string]struct{}, len(options)+2)
		for _, option := range options {
			used[strings.ToLower(option)] = struct{}{}
		}
		used[strings.ToLower(keyword)] = struct{}{}
		used[strings.ToLower(correct)] = struct{}{}

		var pool []string
		for _, word := range fullWordList {
			if _, ok := used[strings.ToLower(word)]; !ok {
				pool = append(pool, word)
			}
		}
		if len(pool) >= missing {
			options = append(options, e.sample(pool, missing)...)
		}
	}

	e.rnd.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	correctIndex := indexOf(options, correct)
	if correctIndex < 0 {
		return Question{}, false
	}

	return Question{
		Kind:         item.Kind,
		Prompt:       exercise.Prompt,
		Options:      options,
		CorrectIndex: correctIndex,
		Level:        exercise.Level,
		Identifier:   item.Identifier,
		Word:         item.Word,
	}, true
}

// assembleOptions merges the correct answer with up to three sampled
// distractors, dedupes and shuffles.
func (e *Engine) assembleOptions(correct string, distractorPool []string) ([]string, int) {
	k := 3
	if len(distractorPool) < k {
		k = len(distractorPool)
	}
	options := append([]string{correct}, e.sample(distractorPool, k)...)
	options = dedupe(options)
	e.rnd.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options, indexOf(options, correct)
}

// sample picks k elements without replacement.
func (e *Engine) sample(pool []string, k int) []string {
	if k > len(pool) {
		k = len(pool)
	}
	shuffled := append([]string(nil), pool...)
	e.rnd.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:k]
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := values[:0]
	for _, value := range values {
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}

func indexOf(values []string, target string) int {
	for i, value := range values {
		if value == target {
			return i
		}
	}
	return -1
}

// blankFirstOccurrence replaces the first case-insensitive occurrence of
// word in sentence with the gap placeholder.
func blankFirstOccurrence(sentence, word string) (string, bool) {
	pattern, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(word))
	if err != nil {
		return sentence, false
	}
	loc := pattern.FindStringIndex(sentence)
	if loc == nil {
		return sentence, false
	}
	return sentence[:loc[0]] + gapPlaceholder + sentence[loc[1]:], true
}
