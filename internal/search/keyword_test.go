package search

import (
	"math"
	"testing"
)

func TestKeywordScore(t *testing.T) {
	tests := []struct {
		name  string
		query string
		text  string
		want  float64
	}{
		{
			name:  "exact phrase match",
			query: "beach sunset",
			text:  "the beach sunset was stunning",
			want:  1.0,
		},
		{
			name:  "all words whole-word matched",
			query: "beach sunset",
			text:  "A beautiful sunset over the beach today",
			want:  allWholeWordScore,
		},
		{
			name:  "all matched, mixed whole and substring",
			query: "beach sun",
			text:  "sunshine at the beach",
			want:  allMixedScore,
		},
		{
			name:  "partial match",
			query: "beach sunset mountains",
			text:  "sunset over the beach",
			want:  2.0 / 3.0 * partialScale,
		},
		{
			name:  "no match",
			query: "glacier",
			text:  "a sunny beach",
			want:  0,
		},
		{
			name:  "case-insensitive",
			query: "BEACH",
			text:  "photos from the beach",
			want:  1.0,
		},
		{
			name:  "empty text",
			query: "beach",
			text:  "",
			want:  0,
		},
		{
			name:  "empty query",
			query: "  ",
			text:  "beach",
			want:  0,
		},
		{
			name:  "short words dropped from tokenization",
			query: "a b sunset",
			text:  "a lovely sunset",
			want:  allWholeWordScore,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := keywordScore(tt.query, tt.text)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("keywordScore(%q, %q) = %v, want %v", tt.query, tt.text, got, tt.want)
			}
		})
	}
}

func TestKeywordScore_SpecExample(t *testing.T) {
	// "beach sunset" against text containing both words whole-word
	got := keywordScore("beach sunset", "A beautiful beach sunset photo")
	if got != 1.0 {
		// full phrase appears as substring, so the phrase tier wins
		t.Errorf("keywordScore() = %v, want 1.0 (phrase hit)", got)
	}

	got = keywordScore("sunset beach", "A beautiful beach sunset photo")
	if got != allWholeWordScore {
		t.Errorf("keywordScore() = %v, want %v (all whole words)", got, allWholeWordScore)
	}
}

func TestWholeWordMatch(t *testing.T) {
	tests := []struct {
		text string
		word string
		want bool
	}{
		{"the beach is warm", "beach", true},
		{"beaches are warm", "beach", false},
		{"sun-kissed beach", "sun", true},
		{"sunshine", "sun", false},
	}

	for _, tt := range tests {
		if got := wholeWordMatch(tt.text, tt.word); got != tt.want {
			t.Errorf("wholeWordMatch(%q, %q) = %v, want %v", tt.text, tt.word, got, tt.want)
		}
	}
}
