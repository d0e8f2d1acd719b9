// Package refiner runs an optional second editorial pass over a draft
// translation, polishing register and flow without changing meaning.
package refiner

import "context"

// Refiner reviews and improves a draft translation.
type Refiner interface {
	Refine(ctx context.Context, sourceLang, targetLang, sourceText, draftText string) (string, error)
}
