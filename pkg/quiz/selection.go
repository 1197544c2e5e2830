// pkg/quiz/selection.go
package quiz

import (
	"math/rand"
	"sort"
	"time"

	"github.com/smith3v/tg-vocab-coach/pkg/content"
	"github.com/smith3v/tg-vocab-coach/pkg/ledger"
)

// PlaylistItem references one exercise to present: the word it trains, the
// exercise kind and the identifier used to write the outcome back into the
// ledger.
type PlaylistItem struct {
	Word       string               `json:"word"`
	Kind       content.ExerciseKind `json:"kind"`
	Identifier string               `json:"identifier"`
}

// Engine runs selection and question materialization. The random source is
// injectable so tests can pin a seed.
type Engine struct {
	rnd *rand.Rand
}

func NewEngine() *Engine {
	return NewEngineWithSource(rand.NewSource(time.Now().UnixNano()))
}

func NewEngineWithSource(src rand.Source) *Engine {
	return &Engine{rnd: rand.New(src)}
}

// SelectPrioritized builds a playlist of at most n entries with maximal
// word diversity: n words are drawn at random, each contributes exactly one
// exercise, preferring exercises not yet answered correctly. Words with no
// matching exercise contribute nothing. The playlist order is shuffled.
func (e *Engine) SelectPrioritized(active []ledger.Entry, lib *content.Library, n int, filter content.ExerciseKind) []PlaylistItem {
	if len(active) == 0 || n <= 0 {
		return nil
	}

	words := append([]ledger.Entry(nil), active...)
	e.rnd.Shuffle(len(words), func(i, j int) {
		words[i], words[j] = words[j], words[i]
	})
	if len(words) > n {
		words = words[:n]
	}

	var playlist []PlaylistItem
	for _, entry := range words {
		var highPriority, lowPriority []PlaylistItem
		for id, kind := range lib.Catalog(entry.Word) {
			if filter != content.KindAny && kind != filter {
				continue
			}
			item := PlaylistItem{Word: entry.Word, Kind: kind, Identifier: id}
			if entry.Progress[id] != ledger.StatusCorrect {
				highPriority = append(highPriority, item)
			} else {
				lowPriority = append(lowPriority, item)
			}
		}

		pool := highPriority
		if len(pool) == 0 {
			pool = lowPriority
		}
		if len(pool) == 0 {
			continue
		}
		sortByIdentifier(pool)
		playlist = append(playlist, pool[e.rnd.Intn(len(pool))])
	}

	e.rnd.Shuffle(len(playlist), func(i, j int) {
		playlist[i], playlist[j] = playlist[j], playlist[i]
	})
	return playlist
}

type pooledCandidate struct {
	priority int
	tiebreak float64
	item     PlaylistItem
}

// SelectFromPool ranks every generated exercise of the given words by
// outstanding-ness (not-yet-correct first, random within a tier) and
// samples a playlist. With allowRepeats the top of the ranking is taken
// directly, so one word may appear with several of its exercises;
// otherwise each selected word contributes one exercise.
func (e *Engine) SelectFromPool(entries []ledger.Entry, lib *content.Library, filter content.ExerciseKind, wordCount int, allowRepeats bool) []PlaylistItem {
	if len(entries) == 0 || wordCount <= 0 {
		return nil
	}

	sorted := append([]ledger.Entry(nil), entries...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Word < sorted[j].Word })

	var candidates []pooledCandidate
	for _, entry := range sorted {
		for _, ex := range lib.ByWord[entry.Word] {
			if filter != content.KindAny && ex.Kind != filter {
				continue
			}
			priority := 0
			if entry.Progress[ex.Prompt] == ledger.StatusCorrect {
				priority = 1
			}
			candidates = append(candidates, pooledCandidate{
				priority: priority,
				tiebreak: e.rnd.Float64(),
				item:     PlaylistItem{Word: entry.Word, Kind: ex.Kind, Identifier: ex.Prompt},
			})
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].priority != candidates[j].priority {
			return candidates[i].priority < candidates[j].priority
		}
		return candidates[i].tiebreak < candidates[j].tiebreak
	})

	var playlist []PlaylistItem
	if allowRepeats {
		limit := wordCount
		if limit > len(candidates) {
			limit = len(candidates)
		}
		for _, candidate := range candidates[:limit] {
			playlist = append(playlist, candidate.item)
		}
	} else {
		byWord := make(map[string][]PlaylistItem)
		var words []string
		for _, candidate := range candidates {
			if _, ok := byWord[candidate.item.Word]; !ok {
				words = append(words, candidate.item.Word)
			}
			byWord[candidate.item.Word] = append(byWord[candidate.item.Word], candidate.item)
		}
		e.rnd.Shuffle(len(words), func(i, j int) {
			words[i], words[j] = words[j], words[i]
		})
		if len(words) > wordCount {
			words = words[:wordCount]
		}
		for _, word := range words {
			items := byWord[word]
			playlist = append(playlist, items[e.rnd.Intn(len(items))])
		}
	}

	e.rnd.Shuffle(len(playlist), func(i, j int) {
		playlist[i], playlist[j] = playlist[j], playlist[i]
	})
	return playlist
}

func sortByIdentifier(items []PlaylistItem) {
	sort.Slice(items, func(i, j int) bool { return items[i].Identifier < items[j].Identifier })
}
