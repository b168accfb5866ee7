package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolarity(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"all positive", "I felt happy and grateful today", 1},
		{"all negative", "so anxious and stressed and tired", -1},
		{"mixed", "happy but also sad", 0},
		{"no mood words", "wrote some code, drank coffee", 0},
		{"empty", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Polarity(tt.text), 0.001)
		})
	}
}

func TestMoodScoreRange(t *testing.T) {
	assert.InDelta(t, 10.0, MoodScore("happy grateful peaceful"), 0.001)
	assert.InDelta(t, 1.0, MoodScore("sad lonely hopeless"), 0.001)
	assert.InDelta(t, 5.5, MoodScore("nothing in particular"), 0.001)
}

func TestKeywords(t *testing.T) {
	got := Keywords("Feeling happy, a bit tired, but overall okay. Really happy.")
	assert.Equal(t, []string{"happy", "tired", "okay"}, got)

	assert.Empty(t, Keywords("unhappiest is not a lexicon word"))
}

func TestKeywordPatternsCoverLexicon(t *testing.T) {
	for _, words := range moodKeywords {
		for _, kw := range words {
			assert.NotNil(t, keywordPatterns[kw], kw)
		}
	}
}
