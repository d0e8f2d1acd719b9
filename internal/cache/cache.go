// Package cache provides a lookaside cache for finished translations, keyed
// by direction and source-text digest. It sits in front of the SQLite
// translation memory so repeated requests skip both the engine call and the
// database; the Redis backend lets a whole news desk share one cache.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Cache stores finished translations by key.
type Cache interface {
	// Get retrieves a cached translation. Returns "" and false on a miss
	// or expired entry.
	Get(ctx context.Context, key string) (string, bool)

	// Set stores a translation.
	Set(ctx context.Context, key, value string) error
}

// Key derives a stable cache key from the direction and the NFC-normalized,
// trimmed source text.
func Key(sourceLang, targetLang, text string) string {
	normalized := norm.NFC.String(strings.TrimSpace(text))
	sum := sha256.Sum256([]byte(normalized))
	return fmt.Sprintf("%s:%s:%s", sourceLang, targetLang, hex.EncodeToString(sum[:16]))
}
