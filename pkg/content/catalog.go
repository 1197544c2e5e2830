// pkg/content/catalog.go
package content

// Exercise identifiers must stay stable across reloads of the same content:
// they are the keys of the per-word progress map in the ledger. Flashcard
// identifiers combine a kind prefix with the card field the exercise is
// built from; generated exercises use their prompt text, which is unique
// per row in practice. Editing the underlying field orphans the old
// identifier and its recorded status.
const (
	idPrefixMeaning     = "significado::"
	idPrefixTranslation = "traducao::"
	idPrefixSynonym     = "sinonimo::"
	idPrefixFillGap     = "fill::"
	idPrefixReading     = "reading::"
)

func MeaningID(card Flashcard) string     { return idPrefixMeaning + card.Back }
func TranslationID(card Flashcard) string { return idPrefixTranslation + card.Back }
func SynonymID(card Flashcard) string     { return idPrefixSynonym + card.ClozeAnswer }
func FillGapID(card Flashcard) string     { return idPrefixFillGap + card.Example }
func ReadingID(card Flashcard) string     { return idPrefixReading + card.Example }

// CatalogFor enumerates every trackable exercise available for a word,
// keyed by identifier. Deterministic for fixed inputs. Cloze exercises are
// text-level and never appear in a per-word catalog.
func CatalogFor(word string, cards map[string]Flashcard, byWord map[string][]GeneratedExercise) map[string]ExerciseKind {
	catalog := make(map[string]ExerciseKind)

	if card, ok := cards[word]; ok {
		if card.Back != "" {
			catalog[MeaningID(card)] = KindMeaningMCQ
			catalog[TranslationID(card)] = KindTranslationMCQ
		}
		if card.Example != "" {
			catalog[FillGapID(card)] = KindFillGap
			catalog[ReadingID(card)] = KindReading
		}
		if card.ClozeAnswer != "" {
			catalog[SynonymID(card)] = KindSynonymMCQ
		}
	}

	for _, ex := range byWord[word] {
		if ex.IsCloze() {
			continue
		}
		if ex.Prompt != "" && ex.Kind != "" {
			catalog[ex.Prompt] = ex.Kind
		}
	}

	return catalog
}
