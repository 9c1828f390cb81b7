package domain

import (
	"math"
	"strings"
)

// RecordKey is the storage key of the syllabus collection.
const RecordKey = "study_pro_syllabus"

type Item struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// NormalizeText trims text and reports whether anything is left.
func NormalizeText(text string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	return trimmed, trimmed != ""
}

// Progress is the rounded share of done items, 0 for an empty list.
func Progress(items []Item) int {
	if len(items) == 0 {
		return 0
	}
	done := 0
	for _, item := range items {
		if item.Done {
			done++
		}
	}
	return int(math.Floor(float64(done)/float64(len(items))*100 + 0.5))
}

func Completed(items []Item) int {
	done := 0
	for _, item := range items {
		if item.Done {
			done++
		}
	}
	return done
}
