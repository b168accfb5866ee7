// Package sentiment scores journal text with a small mood lexicon. It is
// deliberately simple: count positive and negative mood words and normalize.
package sentiment

import (
	"regexp"
	"strings"
)

var moodKeywords = map[string][]string{
	"positive": {"happy", "joy", "excited", "grateful", "peaceful", "content", "proud", "calm", "hopeful"},
	"negative": {"sad", "angry", "anxious", "stressed", "lonely", "tired", "overwhelmed", "worried", "hopeless"},
	"neutral":  {"okay", "fine", "normal", "average", "usual", "routine"},
}

var wordPattern = regexp.MustCompile(`[a-z']+`)

// keywordPatterns are compiled once; Keywords runs per journal write.
var keywordPatterns = func() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp)
	for _, words := range moodKeywords {
		for _, kw := range words {
			patterns[kw] = regexp.MustCompile(`\b` + kw + `\b`)
		}
	}
	return patterns
}()

// Polarity returns a score in [-1, 1]: -1 entirely negative mood words,
// +1 entirely positive, 0 when the text carries neither.
func Polarity(text string) float64 {
	words := wordPattern.FindAllString(strings.ToLower(text), -1)

	var pos, neg int
	for _, w := range words {
		switch classify(w) {
		case "positive":
			pos++
		case "negative":
			neg++
		}
	}

	total := pos + neg
	if total == 0 {
		return 0
	}
	return float64(pos-neg) / float64(total)
}

// MoodScore maps polarity onto the 1-10 mood scale used by the journal.
func MoodScore(text string) float64 {
	// [-1, 1] -> [1, 10]
	return 5.5 + Polarity(text)*4.5
}

// Keywords returns the mood words found in the text, in lexicon order,
// without duplicates.
func Keywords(text string) []string {
	lower := strings.ToLower(text)
	seen := make(map[string]bool)
	var found []string

	for _, group := range []string{"positive", "negative", "neutral"} {
		for _, kw := range moodKeywords[group] {
			if seen[kw] {
				continue
			}
			if keywordPatterns[kw].MatchString(lower) {
				seen[kw] = true
				found = append(found, kw)
			}
		}
	}
	return found
}

func classify(word string) string {
	for group, words := range moodKeywords {
		for _, w := range words {
			if w == word {
				return group
			}
		}
	}
	return ""
}
