// pkg/bot/handlers/app.go
package handlers

import (
	"github.com/smith3v/tg-vocab-coach/pkg/content"
	"github.com/smith3v/tg-vocab-coach/pkg/ledger"
	"github.com/smith3v/tg-vocab-coach/pkg/quiz"
)

// Package-level collaborators, wired once at startup.
var (
	Lib    *content.Library
	Store  *ledger.Store
	Engine = quiz.NewEngine()
)

func Setup(lib *content.Library, store *ledger.Store) {
	Lib = lib
	Store = store
}

// ledgerWords returns every tracked word, used to top up distractor sets.
func ledgerWords() []string {
	entries := Store.Entries()
	words := make([]string, 0, len(entries))
	for _, entry := range entries {
		words = append(words, entry.Word)
	}
	return words
}
