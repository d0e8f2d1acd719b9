// Package chunker splits long articles into pieces small enough for one
// engine call, preferring to cut at paragraph and sentence boundaries so no
// sentence is translated in two halves. It also extracts a trailing context
// snippet used to keep terminology consistent across pieces.
package chunker

import (
	"strings"
	"unicode"
)

// DefaultContextWords is the default size of the sliding context window
// passed along with later chunks.
const DefaultContextWords = 25

// Chunk splits text into pieces of at most maxChars runes each. Cut points
// are chosen in order of preference: blank line, sentence end (. ! ? or the
// Bangla danda ।), whitespace, hard cut. maxChars ≤ 0 disables splitting.
func Chunk(text string, maxChars int) []string {
	runes := []rune(text)
	if maxChars <= 0 || len(runes) <= maxChars {
		return []string{text}
	}

	var chunks []string
	for len(runes) > maxChars {
		cut := cutPoint(runes, maxChars)
		if piece := strings.TrimSpace(string(runes[:cut])); piece != "" {
			chunks = append(chunks, piece)
		}
		runes = []rune(strings.TrimSpace(string(runes[cut:])))
	}
	if rest := strings.TrimSpace(string(runes)); rest != "" {
		chunks = append(chunks, rest)
	}
	return chunks
}

// sentenceEnd reports whether r ends a sentence. The danda (।) is the
// Bangla full stop.
func sentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?' || r == '।'
}

// cutPoint returns the rune index at which to cut, at most maxChars.
func cutPoint(runes []rune, maxChars int) int {
	window := runes[:maxChars]

	// Blank line: cut just after the last one inside the window.
	if i := lastBlankLine(window); i > 0 {
		return i
	}

	// Sentence end followed by whitespace.
	for i := maxChars - 2; i > 0; i-- {
		if sentenceEnd(window[i]) && unicode.IsSpace(window[i+1]) {
			return i + 1
		}
	}

	// Any whitespace.
	for i := maxChars - 1; i > 0; i-- {
		if unicode.IsSpace(window[i]) {
			return i
		}
	}

	return maxChars
}

// lastBlankLine returns the rune index just past the last blank line in
// window, or -1 when there is none.
func lastBlankLine(window []rune) int {
	end := -1
	for i := 0; i+1 < len(window); i++ {
		if window[i] != '\n' {
			continue
		}
		j := i + 1
		if window[j] == '\r' && j+1 < len(window) {
			j++
		}
		if j < len(window) && window[j] == '\n' {
			end = j + 1
		}
	}
	return end
}

// ExtractContext returns the last wordCount words of text joined by single
// spaces, for use as a continuity hint with the next chunk. Shorter texts
// are returned whole; wordCount ≤ 0 selects DefaultContextWords.
func ExtractContext(text string, wordCount int) string {
	if wordCount <= 0 {
		wordCount = DefaultContextWords
	}
	words := strings.Fields(text)
	if len(words) <= wordCount {
		return strings.TrimSpace(text)
	}
	return strings.Join(words[len(words)-wordCount:], " ")
}
