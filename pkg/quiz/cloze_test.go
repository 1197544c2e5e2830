package quiz

import (
	"math/rand"
	"testing"

	"github.com/smith3v/tg-vocab-coach/pkg/content"
)

func clozeExercise() content.GeneratedExercise {
	return content.GeneratedExercise{
		Kind:         content.KindClozeText,
		Prompt:       "The [GAP1] sat on the [GAP2].",
		Options:      []string{"cat", "mat", "dog", "cat"},
		Correct:      []string{"cat", "mat"},
		PrimaryWords: []string{"cat", "mat"},
		Level:        "B1",
		Title:        "Pets at home",
	}
}

func TestMaterializeCloze(t *testing.T) {
	engine := NewEngineWithSource(rand.NewSource(3))

	question, ok := engine.MaterializeCloze(clozeExercise())
	if !ok {
		t.Fatalf("expected a cloze question")
	}
	if question.Title != "Pets at home" || question.Level != "B1" {
		t.Fatalf("unexpected title/level: %+v", question)
	}
	if len(question.Options) != 3 {
		t.Fatalf("expected deduped options, got %v", question.Options)
	}
	if len(question.Answers) != 2 || question.Answers[0] != "cat" || question.Answers[1] != "mat" {
		t.Fatalf("expected answers in gap order, got %v", question.Answers)
	}
}

func TestMaterializeClozeDefaultTitle(t *testing.T) {
	engine := NewEngineWithSource(rand.NewSource(3))
	exercise := clozeExercise()
	exercise.Title = ""

	question, ok := engine.MaterializeCloze(exercise)
	if !ok || question.Title != "Cloze text" {
		t.Fatalf("expected default title, got %+v", question)
	}
}

func TestMaterializeClozeRejectsNonCloze(t *testing.T) {
	engine := NewEngineWithSource(rand.NewSource(3))
	exercise := clozeExercise()
	exercise.Kind = "1-Synonym-Match"

	if _, ok := engine.MaterializeCloze(exercise); ok {
		t.Fatalf("expected non-cloze rows to be rejected")
	}
}

func TestGradeCloze(t *testing.T) {
	engine := NewEngineWithSource(rand.NewSource(3))
	question, _ := engine.MaterializeCloze(clozeExercise())

	tests := []struct {
		name    string
		answers []string
		want    int
	}{
		{"all correct", []string{"cat", "mat"}, 2},
		{"one wrong", []string{"cat", "dog"}, 1},
		{"all wrong", []string{"dog", "cat"}, 0},
		{"short answer list", []string{"cat"}, 1},
		{"empty", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GradeCloze(question, tt.answers); got != tt.want {
				t.Fatalf("GradeCloze(%v) = %d, want %d", tt.answers, got, tt.want)
			}
		})
	}
}
