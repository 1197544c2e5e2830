package content

import (
	"reflect"
	"testing"
)

func testLibrary() *Library {
	cards := []Flashcard{
		{
			Front:       "ubiquitous",
			Back:        "onipresente",
			Example:     "Smartphones are ubiquitous these days.",
			ClozeAnswer: "omnipresent",
		},
		{
			Front: "minimal",
			Back:  "mínimo",
		},
	}
	exercises := []GeneratedExercise{
		{
			Kind:         "1-Synonym-Match",
			Prompt:       "Pick the synonym of ubiquitous",
			Options:      []string{"everywhere", "rare", "hidden", "tiny"},
			Correct:      []string{"everywhere"},
			PrimaryWords: []string{"ubiquitous"},
			Level:        "C1",
		},
		{
			Kind:         KindClozeText,
			Prompt:       "The [GAP1] sat.",
			Options:      []string{"cat", "dog"},
			Correct:      []string{"cat"},
			PrimaryWords: []string{"cat"},
			Level:        "B1",
			Title:        "Pets",
		},
	}
	return NewLibrary("en", cards, exercises)
}

func TestCatalogForFullCard(t *testing.T) {
	lib := testLibrary()

	got := lib.Catalog("ubiquitous")
	want := map[string]ExerciseKind{
		"significado::onipresente":                      KindMeaningMCQ,
		"traducao::onipresente":                         KindTranslationMCQ,
		"sinonimo::omnipresent":                         KindSynonymMCQ,
		"fill::Smartphones are ubiquitous these days.":  KindFillGap,
		"reading::Smartphones are ubiquitous these days.": KindReading,
		"Pick the synonym of ubiquitous":                "1-Synonym-Match",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("catalog mismatch:\ngot  %v\nwant %v", got, want)
	}
}

func TestCatalogForGatesOnMissingFields(t *testing.T) {
	lib := testLibrary()

	got := lib.Catalog("minimal")
	if len(got) != 2 {
		t.Fatalf("expected only meaning and translation exercises, got %v", got)
	}
	for id, kind := range got {
		if kind != KindMeaningMCQ && kind != KindTranslationMCQ {
			t.Fatalf("unexpected kind %q for %q", kind, id)
		}
	}
}

func TestCatalogForUnknownWord(t *testing.T) {
	lib := testLibrary()
	if got := lib.Catalog("missing"); len(got) != 0 {
		t.Fatalf("expected empty catalog, got %v", got)
	}
}

func TestCatalogExcludesClozeTexts(t *testing.T) {
	lib := testLibrary()
	if got := lib.Catalog("cat"); len(got) != 0 {
		t.Fatalf("cloze rows must not appear in per-word catalogs, got %v", got)
	}
}

func TestLibraryWords(t *testing.T) {
	lib := testLibrary()
	want := []string{"minimal", "ubiquitous"}
	if got := lib.Words(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestLibraryClozeTexts(t *testing.T) {
	lib := testLibrary()
	cloze := lib.ClozeTexts()
	if len(cloze) != 1 || cloze[0].Title != "Pets" {
		t.Fatalf("unexpected cloze texts: %+v", cloze)
	}
}
