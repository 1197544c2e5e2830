// pkg/stats/summary.go
package stats

import (
	"sort"
	"time"

	"github.com/smith3v/tg-vocab-coach/pkg/ledger"
)

// Summary aggregates ledger and history data for reporting. Pure read-side:
// it never writes back.
type Summary struct {
	TotalWords     int
	ActiveWords    int
	InactiveWords  int
	FlashcardWords int
	GeneratedWords int

	Sessions    int
	HasAccuracy bool
	Accuracy    float64 // percent, valid when HasAccuracy

	// StudyDebt balances three correct answers against every error. Zero
	// means the debt is paid off; DebtProgress is the paid-off fraction.
	StudyDebt    int
	DebtProgress float64

	Mastered     int
	InProgress   int
	Distribution []Bucket

	ErrorRanking []ErrorRank
	AgeRanking   []AgeRank
}

type Bucket struct {
	Label string
	Count int
}

// ErrorRank is one active word ordered by how often it was answered wrong.
type ErrorRank struct {
	Word    string
	Errors  int
	AgeDays int
}

type AgeRank struct {
	Word    string
	AgeDays int
}

var bucketLabels = []string{"untouched", "1-25%", "26-50%", "51-75%", "76-100%"}

// BuildSummary computes the full report from a ledger snapshot and the
// session history.
func BuildSummary(entries []ledger.Entry, sessions []ledger.Session, now time.Time) Summary {
	var summary Summary
	summary.Distribution = make([]Bucket, len(bucketLabels))
	for i, label := range bucketLabels {
		summary.Distribution[i] = Bucket{Label: label}
	}

	summary.TotalWords = len(entries)
	for _, entry := range entries {
		if entry.Active {
			summary.ActiveWords++
		} else {
			summary.InactiveWords++
		}
		switch entry.Source {
		case ledger.SourceFlashcard:
			summary.FlashcardWords++
		case ledger.SourceGenerated:
			summary.GeneratedWords++
		}

		percent := progressPercent(entry)
		if percent >= 100 {
			summary.Mastered++
		} else {
			summary.InProgress++
		}
		summary.Distribution[bucketIndex(percent)].Count++
	}

	summary.Sessions = len(sessions)
	hits, errors := 0, 0
	errorCounts := make(map[string]int)
	for _, session := range sessions {
		hits += len(session.Correct)
		errors += len(session.Wrong)
		for _, word := range session.Wrong {
			errorCounts[word]++
		}
	}
	if total := hits + errors; total > 0 {
		summary.HasAccuracy = true
		summary.Accuracy = float64(hits) / float64(total) * 100
	}

	debt := errors*3 - hits
	if debt <= 0 {
		summary.StudyDebt = 0
		summary.DebtProgress = 1.0
	} else {
		summary.StudyDebt = debt
		if errors > 0 {
			summary.DebtProgress = float64(hits) / float64(errors*3)
		} else {
			summary.DebtProgress = 1.0
		}
	}

	for _, entry := range entries {
		if !entry.Active {
			continue
		}
		ageDays := int(now.Sub(entry.DateAdded).Hours() / 24)
		summary.AgeRanking = append(summary.AgeRanking, AgeRank{Word: entry.Word, AgeDays: ageDays})
		if count, ok := errorCounts[entry.Word]; ok {
			summary.ErrorRanking = append(summary.ErrorRanking, ErrorRank{Word: entry.Word, Errors: count, AgeDays: ageDays})
		}
	}
	sort.Slice(summary.ErrorRanking, func(i, j int) bool {
		if summary.ErrorRanking[i].Errors != summary.ErrorRanking[j].Errors {
			return summary.ErrorRanking[i].Errors > summary.ErrorRanking[j].Errors
		}
		return summary.ErrorRanking[i].Word < summary.ErrorRanking[j].Word
	})
	sort.Slice(summary.AgeRanking, func(i, j int) bool {
		if summary.AgeRanking[i].AgeDays != summary.AgeRanking[j].AgeDays {
			return summary.AgeRanking[i].AgeDays > summary.AgeRanking[j].AgeDays
		}
		return summary.AgeRanking[i].Word < summary.AgeRanking[j].Word
	})

	return summary
}

func progressPercent(entry ledger.Entry) float64 {
	if len(entry.Progress) == 0 {
		return 0
	}
	correct := 0
	for _, status := range entry.Progress {
		if status == ledger.StatusCorrect {
			correct++
		}
	}
	return float64(correct) / float64(len(entry.Progress)) * 100
}

func bucketIndex(percent float64) int {
	switch {
	case percent <= 0:
		return 0
	case percent <= 25:
		return 1
	case percent <= 50:
		return 2
	case percent <= 75:
		return 3
	default:
		return 4
	}
}
