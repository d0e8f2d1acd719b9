// Package detector classifies text as Bangla or English using stopword
// frequency, per-word script dominance, and a whole-text character-count
// fallback. It is a pure heuristic with no external models, built for the
// two-language editorial workflow: the result picks the translation
// direction, and Unknown blocks translation entirely.
package detector

import (
	"strings"
	"unicode/utf8"
)

// Language is the detection outcome.
type Language string

const (
	Bangla  Language = "BANGLA"
	English Language = "ENGLISH"
	Unknown Language = "UNKNOWN"
)

// Per-token score weights. Stopwords are a much stronger signal than script
// membership: function words almost never appear transliterated.
const (
	stopwordBonus      = 10
	scriptBonus        = 2
	mixedScriptBonus   = 1
	minRunes           = 2
	dominanceThreshold = 1.2
	shortTokenLimit    = 5
)

// banglaStopwords and englishStopwords are fixed high-frequency function
// words. Membership is tested against lowercased tokens. The two sets are
// disjoint by construction, but Detect checks them independently.
var banglaStopwords = map[string]struct{}{
	"এবং": {}, "ও": {}, "কিন্তু": {}, "আমি": {}, "তুমি": {},
	"সে": {}, "আমরা": {}, "তারা": {}, "এই": {}, "যে": {},
	"না": {}, "হয়": {}, "করে": {}, "থেকে": {}, "জন্য": {},
	"সাথে": {}, "আছে": {}, "ছিল": {}, "হবে": {}, "একটি": {},
	"এর": {}, "তার": {}, "কি": {}, "বা": {}, "যা": {},
}

var englishStopwords = map[string]struct{}{
	"the": {}, "and": {}, "is": {}, "of": {}, "in": {},
	"to": {}, "a": {}, "for": {}, "on": {}, "with": {},
	"was": {}, "are": {}, "it": {}, "that": {}, "this": {},
	"as": {}, "at": {}, "by": {}, "be": {}, "or": {},
	"an": {}, "but": {}, "not": {}, "from": {}, "have": {},
}

func isBanglaRune(r rune) bool {
	return r >= 0x0980 && r <= 0x09FF
}

func isLatinLower(r rune) bool {
	return r >= 'a' && r <= 'z'
}

func isLatinLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// charCounts counts Bangla-block runes and ASCII letters over the entire
// original text. Used by both decision fallbacks.
func charCounts(text string) (bangla, latin int) {
	for _, r := range text {
		switch {
		case isBanglaRune(r):
			bangla++
		case isLatinLetter(r):
			latin++
		}
	}
	return bangla, latin
}

// Detect classifies text as Bangla, English, or Unknown. It is deterministic,
// total over all inputs, and never returns an error.
func Detect(text string) Language {
	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) < minRunes {
		return Unknown
	}

	tokens := strings.Fields(strings.ToLower(trimmed))
	if len(tokens) == 0 {
		return Unknown
	}

	banglaScore, englishScore := 0, 0
	for _, tok := range tokens {
		// Independent lookups: a token may in principle hit both sets.
		if _, ok := banglaStopwords[tok]; ok {
			banglaScore += stopwordBonus
		}
		if _, ok := englishStopwords[tok]; ok {
			englishScore += stopwordBonus
		}

		bCount, eCount := 0, 0
		for _, r := range tok {
			switch {
			case isBanglaRune(r):
				bCount++
			case isLatinLower(r):
				eCount++
			}
		}
		switch {
		case bCount > 0 && eCount == 0:
			banglaScore += scriptBonus
		case eCount > 0 && bCount == 0:
			englishScore += scriptBonus
		case bCount > 0 && eCount > 0:
			// Mixed-script token: strict majority of characters wins,
			// an even split contributes nothing.
			if bCount > eCount {
				banglaScore += mixedScriptBonus
			} else if eCount > bCount {
				englishScore += mixedScriptBonus
			}
		}
	}

	if banglaScore == englishScore {
		// Tied scores (including 0/0): raw character counts over the whole
		// original text decide. This path may return Unknown.
		bChars, eChars := charCounts(text)
		switch {
		case bChars > eChars:
			return Bangla
		case eChars > bChars:
			return English
		default:
			return Unknown
		}
	}

	hi, lo := banglaScore, englishScore
	if englishScore > banglaScore {
		hi, lo = englishScore, banglaScore
	}
	if lo < 1 {
		lo = 1
	}
	ratio := float64(hi) / float64(lo)

	if ratio < dominanceThreshold && len(tokens) > shortTokenLimit {
		// The margin is too narrow to trust on a long text. Unlike the
		// tied-score path this fallback never returns Unknown.
		bChars, eChars := charCounts(text)
		if bChars > eChars {
			return Bangla
		}
		return English
	}

	if banglaScore > englishScore {
		return Bangla
	}
	return English
}

// Direction maps a detection result to a translation direction. The second
// return is false for Unknown, in which case callers must not translate.
func Direction(lang Language) (source, target string, ok bool) {
	switch lang {
	case Bangla:
		return "bn", "en", true
	case English:
		return "en", "bn", true
	default:
		return "", "", false
	}
}
