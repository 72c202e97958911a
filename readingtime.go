package wemark

import (
	"strings"
	"unicode/utf8"
)

// wordsPerMinute is the reading speed assumed for the minutes estimate.
const wordsPerMinute = 200

// ReadingTime is a deterministic estimate derived from the input
// Markdown: rune count, whitespace-delimited word count, and
// minutes = ceil(words / 200).
type ReadingTime struct {
	Chars   int `json:"chars"`
	Words   int `json:"words"`
	Minutes int `json:"minutes"`
}

// NewReadingTime computes the reading time for the given Markdown source.
// Characters are counted as runes so multibyte prose counts per character.
func NewReadingTime(markdown string) ReadingTime {
	words := len(strings.Fields(markdown))
	return ReadingTime{
		Chars:   utf8.RuneCountInString(markdown),
		Words:   words,
		Minutes: (words + wordsPerMinute - 1) / wordsPerMinute,
	}
}
