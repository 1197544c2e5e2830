// pkg/content/library.go
package content

import (
	"fmt"
	"os"
	"sort"
)

// Source provides the raw text of each content file. Reading may fail
// (missing file, unreadable volume); parsing is the library's job.
type Source interface {
	Flashcards() (string, error)
	Generated() (string, error)
	Cloze() (string, error)
}

// FileSource reads content from local files.
type FileSource struct {
	FlashcardsPath string
	GeneratedPath  string
	ClozePath      string
}

func (s FileSource) Flashcards() (string, error) { return readFile(s.FlashcardsPath) }
func (s FileSource) Generated() (string, error)  { return readFile(s.GeneratedPath) }
func (s FileSource) Cloze() (string, error)      { return readFile(s.ClozePath) }

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Library holds the normalized content for one language, indexed for the
// catalog and the quiz engine.
type Library struct {
	Language   string
	Flashcards []Flashcard
	Exercises  []GeneratedExercise // generated rows plus cloze rows

	Cards  map[string]Flashcard           // front -> card
	ByWord map[string][]GeneratedExercise // primary word -> non-cloze exercises

	// Errors collects every parse problem encountered while loading.
	// Content with errors still loads; the bad records are skipped.
	Errors []string
}

// Load reads and normalizes all three content files. Unreadable files are
// reported in the error list, not returned as a failure: the library
// degrades to whatever could be read.
func Load(src Source, language string) *Library {
	lib := &Library{Language: language}

	if raw, err := src.Flashcards(); err != nil {
		lib.Errors = append(lib.Errors, fmt.Sprintf("flashcards file: %v", err))
	} else {
		cards, errs := ParseFlashcards(raw, language)
		lib.Flashcards = cards
		lib.Errors = append(lib.Errors, errs...)
	}

	if raw, err := src.Generated(); err != nil {
		lib.Errors = append(lib.Errors, fmt.Sprintf("generated exercises file: %v", err))
	} else {
		exercises, errs := ParseGenerated(raw, language)
		lib.Exercises = append(lib.Exercises, exercises...)
		lib.Errors = append(lib.Errors, errs...)
	}

	if raw, err := src.Cloze(); err != nil {
		lib.Errors = append(lib.Errors, fmt.Sprintf("cloze file: %v", err))
	} else {
		cloze, errs := ParseCloze(raw, language)
		lib.Exercises = append(lib.Exercises, cloze...)
		lib.Errors = append(lib.Errors, errs...)
	}

	lib.reindex()
	return lib
}

// NewLibrary builds a library from already-parsed records. Used by tests
// and by callers that normalize content themselves.
func NewLibrary(language string, cards []Flashcard, exercises []GeneratedExercise) *Library {
	lib := &Library{
		Language:   language,
		Flashcards: cards,
		Exercises:  exercises,
	}
	lib.reindex()
	return lib
}

func (l *Library) reindex() {
	l.Cards = make(map[string]Flashcard, len(l.Flashcards))
	for _, card := range l.Flashcards {
		l.Cards[card.Front] = card
	}
	l.ByWord = make(map[string][]GeneratedExercise)
	for _, ex := range l.Exercises {
		if ex.IsCloze() {
			continue
		}
		for _, word := range ex.PrimaryWords {
			if word != "" {
				l.ByWord[word] = append(l.ByWord[word], ex)
			}
		}
	}
}

// ClozeTexts returns the cloze rows in file order.
func (l *Library) ClozeTexts() []GeneratedExercise {
	var cloze []GeneratedExercise
	for _, ex := range l.Exercises {
		if ex.IsCloze() {
			cloze = append(cloze, ex)
		}
	}
	return cloze
}

// Words returns the sorted union of flashcard fronts and generated-exercise
// primary words.
func (l *Library) Words() []string {
	seen := make(map[string]struct{}, len(l.Cards)+len(l.ByWord))
	for word := range l.Cards {
		seen[word] = struct{}{}
	}
	for word := range l.ByWord {
		seen[word] = struct{}{}
	}
	words := make([]string, 0, len(seen))
	for word := range seen {
		words = append(words, word)
	}
	sort.Strings(words)
	return words
}

// Catalog enumerates the trackable exercises for a word using this
// library's indexes.
func (l *Library) Catalog(word string) map[string]ExerciseKind {
	return CatalogFor(word, l.Cards, l.ByWord)
}
