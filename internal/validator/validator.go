// Package validator checks that an engine's output is actually in the
// requested target language before it is shown, cached, or saved.
package validator

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/imam0096361/translation/internal/detector"
)

// minValidationRunes is the minimum rune count required to attempt language
// detection. Shorter texts produce unreliable results and pass unchecked.
const minValidationRunes = 20

// IsValid reports whether translatedText appears to be written in targetLang
// ("bn" or "en"). Short texts and texts the detector cannot classify pass
// unchecked. A language mismatch returns false with a nil error so callers
// can warn and proceed; only an empty translation returns an error.
func IsValid(translatedText, targetLang string) (bool, error) {
	if targetLang == "" {
		return true, nil
	}

	text := strings.TrimSpace(translatedText)
	if text == "" {
		return false, fmt.Errorf("translation is empty")
	}

	if utf8.RuneCountInString(text) < minValidationRunes {
		return true, nil
	}

	detected := detector.Detect(text)
	if detected == detector.Unknown {
		// Ambiguous output cannot be validated; pass through.
		return true, nil
	}

	src, _, _ := detector.Direction(detected)
	if !strings.EqualFold(src, targetLang) {
		return false, nil
	}

	return true, nil
}
