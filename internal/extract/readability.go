// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"strings"
	"unicode"
)

// minScorableLength is the shortest text worth scoring. Anything under it
// gets a zero score rather than a noisy estimate.
const minScorableLength = 100

// Score computes a Flesch reading-ease estimate rescaled to [0, 1].
// Short fragments and texts without recognizable sentences score zero.
func Score(text string) float64 {
	if len(text) < minScorableLength {
		return 0
	}

	sentences := countSentences(text)
	words := strings.Fields(text)
	if sentences == 0 || len(words) == 0 {
		return 0
	}

	var syllables int
	for _, w := range words {
		syllables += countSyllables(w)
	}

	wordsPerSentence := float64(len(words)) / float64(sentences)
	syllablesPerWord := float64(syllables) / float64(len(words))
	flesch := 206.835 - 1.015*wordsPerSentence - 84.6*syllablesPerWord

	score := flesch / 100
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// countSentences counts runs of terminal punctuation, so "Wait..." is a
// single sentence boundary rather than three.
func countSentences(text string) int {
	count := 0
	inRun := false
	for _, r := range text {
		if r == '.' || r == '!' || r == '?' {
			if !inRun {
				count++
				inRun = true
			}
		} else {
			inRun = false
		}
	}
	return count
}

// countSyllables estimates syllables by counting vowel groups, with the
// usual discount for a trailing silent "e".
func countSyllables(word string) int {
	var b strings.Builder
	for _, r := range word {
		if unicode.IsLetter(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	w := b.String()
	if w == "" {
		return 0
	}
	if len(w) <= 3 {
		return 1
	}
	if strings.HasSuffix(w, "e") && !strings.HasSuffix(w, "le") {
		w = w[:len(w)-1]
	}

	count := 0
	prevVowel := false
	for _, r := range w {
		v := isVowel(r)
		if v && !prevVowel {
			count++
		}
		prevVowel = v
	}
	if count == 0 {
		count = 1
	}
	return count
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}
