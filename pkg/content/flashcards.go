// pkg/content/flashcards.go
package content

import (
	"fmt"
	"regexp"
	"strings"
)

// headerPattern matches the block header line: `word (type | level | language):`
var headerPattern = regexp.MustCompile(`(.+?)\s+\((.+?)\s*\|\s*(.+?)\s*\|\s*(.+?)\):`)

// fieldKeys maps the body-line labels of the card format to struct fields.
// The labels are fixed by the authoring corpus and not localized here.
var fieldKeys = map[string]func(*Flashcard, string){
	"frase en":       func(c *Flashcard, v string) { c.Example = v },
	"tradução":       func(c *Flashcard, v string) { c.Back = v },
	"tradução frase": func(c *Flashcard, v string) { c.TranslationSentence = v },
	"outra frase en": func(c *Flashcard, v string) { c.OtherExample = v },
	"significado":    func(c *Flashcard, v string) { c.Meaning = v },
	"sinônimo":       func(c *Flashcard, v string) { c.ClozeAnswer = v },
	"tags": func(c *Flashcard, v string) {
		for _, tag := range strings.Split(v, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				c.Tags = append(c.Tags, tag)
			}
		}
	},
}

// ParseFlashcards splits raw text into blank-line-delimited blocks and
// parses each into a Flashcard. Blocks for other languages are dropped
// silently; malformed blocks become messages in the returned error list.
// Parsing never fails as a whole.
func ParseFlashcards(raw string, language string) ([]Flashcard, []string) {
	targetLang := languageTag(language)

	var cards []Flashcard
	var errs []string

	blocks := strings.Split(strings.TrimSpace(raw), "\n\n")
	for i, block := range blocks {
		var lines []string
		for _, line := range strings.Split(block, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				lines = append(lines, line)
			}
		}
		if len(lines) == 0 {
			continue
		}

		header := headerPattern.FindStringSubmatch(lines[0])
		if header == nil {
			errs = append(errs, fmt.Sprintf("malformed header in card block #%d: %s", i+1, lines[0]))
			continue
		}
		if !strings.EqualFold(strings.TrimSpace(header[4]), targetLang) {
			continue
		}

		card := Flashcard{
			Front: strings.TrimSpace(header[1]),
			Type:  strings.TrimSpace(header[2]),
			Level: strings.TrimSpace(header[3]),
		}
		for _, line := range lines[1:] {
			if !strings.Contains(line, ": ") {
				continue
			}
			key, value, _ := strings.Cut(line, ":")
			key = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(key), "-"))
			if set, ok := fieldKeys[strings.ToLower(key)]; ok {
				set(&card, strings.TrimSpace(value))
			}
		}

		if card.Front == "" || card.Back == "" {
			errs = append(errs, fmt.Sprintf("card %q has no front or back", card.Front))
			continue
		}
		cards = append(cards, card)
	}

	return cards, errs
}
