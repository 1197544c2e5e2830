package content

import (
	"strings"
	"testing"
)

const sampleCards = `ubiquitous (adjective | C1 | English):
- Frase EN: Smartphones are ubiquitous these days.
- Tradução: onipresente
- Tradução frase: Smartphones estão onipresentes hoje em dia.
- Outra frase EN: Coffee shops are ubiquitous in this city.
- Significado: present or found everywhere
- Sinônimo: omnipresent
- Tags: adjectives, c1

partout (adverbe | B1 | Francais):
- Tradução: em todo lugar

broken header without parentheses
- Tradução: quebrado

minimal (noun | A2 | English):
- Tradução: mínimo
`

func TestParseFlashcards(t *testing.T) {
	cards, errs := ParseFlashcards(sampleCards, "en")

	if len(errs) != 1 {
		t.Fatalf("expected 1 parse error, got %d: %v", len(errs), errs)
	}
	if !strings.Contains(errs[0], "malformed header") {
		t.Fatalf("unexpected error message: %q", errs[0])
	}
	if len(cards) != 2 {
		t.Fatalf("expected 2 English cards, got %d", len(cards))
	}

	card := cards[0]
	if card.Front != "ubiquitous" || card.Back != "onipresente" {
		t.Fatalf("unexpected front/back: %q / %q", card.Front, card.Back)
	}
	if card.Type != "adjective" || card.Level != "C1" {
		t.Fatalf("unexpected type/level: %q / %q", card.Type, card.Level)
	}
	if card.Example != "Smartphones are ubiquitous these days." {
		t.Fatalf("unexpected example: %q", card.Example)
	}
	if card.Meaning != "present or found everywhere" {
		t.Fatalf("unexpected meaning: %q", card.Meaning)
	}
	if card.ClozeAnswer != "omnipresent" {
		t.Fatalf("unexpected synonym: %q", card.ClozeAnswer)
	}
	if card.TranslationSentence == "" || card.OtherExample == "" {
		t.Fatalf("expected optional sentence fields to be set")
	}
	if len(card.Tags) != 2 || card.Tags[0] != "adjectives" {
		t.Fatalf("unexpected tags: %v", card.Tags)
	}

	if cards[1].Front != "minimal" || cards[1].Example != "" {
		t.Fatalf("unexpected minimal card: %+v", cards[1])
	}
}

func TestParseFlashcardsFrench(t *testing.T) {
	cards, _ := ParseFlashcards(sampleCards, "fr")
	if len(cards) != 1 || cards[0].Front != "partout" {
		t.Fatalf("expected only the French card, got %+v", cards)
	}
}

func TestParseFlashcardsMissingBack(t *testing.T) {
	raw := "orphan (noun | B2 | English):\n- Frase EN: An orphan sentence."
	cards, errs := ParseFlashcards(raw, "en")
	if len(cards) != 0 {
		t.Fatalf("expected card without back to be dropped, got %+v", cards)
	}
	if len(errs) != 1 || !strings.Contains(errs[0], "no front or back") {
		t.Fatalf("expected missing-back error, got %v", errs)
	}
}

func TestParseFlashcardsEmptyInput(t *testing.T) {
	cards, errs := ParseFlashcards("", "en")
	if len(cards) != 0 || len(errs) != 0 {
		t.Fatalf("expected empty result, got %d cards and %d errors", len(cards), len(errs))
	}
}
