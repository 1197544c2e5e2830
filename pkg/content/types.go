// pkg/content/types.go
package content

import "strings"

// ExerciseKind tags one exercise family. Flashcard-derived kinds carry the
// labels used by the shared study-material corpus; generated kinds are the
// codes found in the second column of the exercise files ("1-..." through
// "6-...", plus "7-Cloze-Text" for text-level cloze).
type ExerciseKind string

const (
	KindMeaningMCQ     ExerciseKind = "MCQ Significado"
	KindTranslationMCQ ExerciseKind = "MCQ Tradução Inglês"
	KindSynonymMCQ     ExerciseKind = "MCQ Sinônimo"
	KindFillGap        ExerciseKind = "Fill"
	KindReading        ExerciseKind = "Reading"
	KindClozeText      ExerciseKind = "7-Cloze-Text"

	// KindAny disables kind filtering in the selection engine.
	KindAny ExerciseKind = "Random"
)

// Flashcard is one curated card for a (word, language) pair. Front and Back
// are always set; the optional fields gate which exercises the card yields.
type Flashcard struct {
	Front               string
	Back                string
	Type                string
	Level               string
	Example             string
	ClozeAnswer         string
	TranslationSentence string
	OtherExample        string
	Meaning             string
	Tags                []string
}

// GeneratedExercise is one row of the generated-exercise or cloze file.
// Correct and PrimaryWords hold a single element except for cloze rows,
// which carry one correct answer per gap.
type GeneratedExercise struct {
	Kind         ExerciseKind
	Prompt       string
	Options      []string
	Correct      []string
	PrimaryWords []string
	Level        string
	Title        string // cloze only
}

func (e GeneratedExercise) IsCloze() bool {
	return e.Kind == KindClozeText
}

// CorrectAnswer returns the single correct option of a non-cloze exercise.
func (e GeneratedExercise) CorrectAnswer() string {
	if len(e.Correct) == 0 {
		return ""
	}
	return e.Correct[0]
}

// PrimaryWord returns the word a non-cloze exercise is indexed under.
func (e GeneratedExercise) PrimaryWord() string {
	if len(e.PrimaryWords) == 0 {
		return ""
	}
	return e.PrimaryWords[0]
}

var generatedKindPrefixes = []string{"1-", "2-", "3-", "4-", "5-", "6-"}

// recognizedGeneratedKind reports whether a kind code belongs to the known
// single-answer generated families. Unknown codes are treated as
// not-yet-supported extensions and skipped without an error.
func recognizedGeneratedKind(kind string) bool {
	for _, prefix := range generatedKindPrefixes {
		if strings.HasPrefix(kind, prefix) {
			return true
		}
	}
	return false
}

// KeywordExcludedFromOptions reports whether the exercise kind forbids the
// primary keyword from appearing among the answer options.
func KeywordExcludedFromOptions(kind ExerciseKind) bool {
	switch kind {
	case "2-Word-Meaning", "3-Paraphrase", "4-Minimal-Pair":
		return true
	}
	return false
}

// languageTag maps the configured language code to the tag used in
// flashcard headers.
func languageTag(language string) string {
	if language == "fr" {
		return "Francais"
	}
	return "English"
}
