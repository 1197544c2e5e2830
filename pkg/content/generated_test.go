package content

import (
	"strings"
	"testing"
)

func TestParseGenerated(t *testing.T) {
	raw := strings.Join([]string{
		"en;1-Synonym-Match;Pick the synonym of ubiquitous;everywhere|rare|hidden|tiny;everywhere;ubiquitous;C1",
		"fr;1-Synonym-Match;Choisissez le synonyme;partout|jamais;partout;partout;B1",
		"en;9-Unknown-Kind;Some future exercise;a|b;a;word;A1",
		"en;2-Word-Meaning;What fits the meaning?;alpha|beta;alpha;gamma;B2",
		"not a data line",
		"en;1-Synonym-Match;too;few;columns",
		"en;1-Synonym-Match;Missing correct;a|b;;word;A1",
		"en;1-Synonym-Match;Bad options;a||b;a;word;A1",
	}, "\n")

	exercises, errs := ParseGenerated(raw, "en")

	if len(exercises) != 2 {
		t.Fatalf("expected 2 exercises, got %d: %+v", len(exercises), exercises)
	}
	first := exercises[0]
	if first.Kind != "1-Synonym-Match" || first.PrimaryWord() != "ubiquitous" {
		t.Fatalf("unexpected first exercise: %+v", first)
	}
	if len(first.Options) != 4 || first.CorrectAnswer() != "everywhere" {
		t.Fatalf("unexpected options/correct: %v / %q", first.Options, first.CorrectAnswer())
	}
	if exercises[1].Kind != "2-Word-Meaning" {
		t.Fatalf("unexpected second exercise: %+v", exercises[1])
	}

	if len(errs) != 3 {
		t.Fatalf("expected 3 errors, got %d: %v", len(errs), errs)
	}
	for _, want := range []string{"columns", "required column is empty", "invalid options"} {
		found := false
		for _, err := range errs {
			if strings.Contains(err, want) {
				found = true
			}
		}
		if !found {
			t.Fatalf("expected an error containing %q, got %v", want, errs)
		}
	}
}

func TestParseCloze(t *testing.T) {
	raw := strings.Join([]string{
		"en;7-Cloze-Text;The [GAP1] sat on the [GAP2].;cat|mat|dog|log;cat|mat;B1;Pets at home",
		"en;7-Cloze-Text;One [GAP1] here.;a|b;a|b;A2;Gap mismatch",
		"en;1-Synonym-Match;not a cloze row;a|b;a;word;A1",
		"fr;7-Cloze-Text;Le [GAP1] dort.;chat|chien;chat;A1;Chez moi",
	}, "\n")

	exercises, errs := ParseCloze(raw, "en")

	if len(exercises) != 1 {
		t.Fatalf("expected 1 cloze text, got %d: %+v", len(exercises), exercises)
	}
	cloze := exercises[0]
	if !cloze.IsCloze() || cloze.Title != "Pets at home" || cloze.Level != "B1" {
		t.Fatalf("unexpected cloze row: %+v", cloze)
	}
	if len(cloze.Correct) != 2 || cloze.Correct[0] != "cat" || cloze.Correct[1] != "mat" {
		t.Fatalf("unexpected correct answers: %v", cloze.Correct)
	}
	if len(cloze.PrimaryWords) != 2 {
		t.Fatalf("expected one primary word per gap, got %v", cloze.PrimaryWords)
	}

	if len(errs) != 1 || !strings.Contains(errs[0], "1 gaps but 2 correct answers") {
		t.Fatalf("expected gap-count error, got %v", errs)
	}
}

func TestRecognizedGeneratedKind(t *testing.T) {
	for kind, want := range map[string]bool{
		"1-Synonym-Match": true,
		"6-Collocation":   true,
		"7-Cloze-Text":    false,
		"Fill":            false,
		"":                false,
	} {
		if got := recognizedGeneratedKind(kind); got != want {
			t.Fatalf("recognizedGeneratedKind(%q) = %v, want %v", kind, got, want)
		}
	}
}

func TestKeywordExcludedFromOptions(t *testing.T) {
	if !KeywordExcludedFromOptions("2-Word-Meaning") {
		t.Fatalf("expected 2-Word-Meaning to exclude its keyword")
	}
	if KeywordExcludedFromOptions("1-Synonym-Match") {
		t.Fatalf("did not expect 1-Synonym-Match to exclude its keyword")
	}
}
