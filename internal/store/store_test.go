package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/imam0096361/translation/internal"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_New_InvalidPath(t *testing.T) {
	_, err := New("/nonexistent/path/test.db")
	if err == nil {
		t.Error("expected error for invalid path")
	}
}

func TestStore_History(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	entry := HistoryEntry{
		ID:             "h1",
		SourceText:     "ঢাকায় আজ বৃষ্টি হচ্ছে।",
		TranslatedText: "It is raining in Dhaka today.",
		SourceLang:     "bn",
		TargetLang:     "en",
		Service:        "gemini",
		Tone:           "neutral",
		Citations: []internal.Citation{
			{URI: "https://example.com/weather", Title: "Dhaka weather"},
		},
		CreatedAt: time.Now(),
	}

	if err := s.SaveHistory(ctx, entry); err != nil {
		t.Fatalf("SaveHistory failed: %v", err)
	}

	entries, err := s.ListHistory(ctx, 0)
	if err != nil {
		t.Fatalf("ListHistory failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	got := entries[0]
	if got.TranslatedText != entry.TranslatedText {
		t.Errorf("translated text = %q, want %q", got.TranslatedText, entry.TranslatedText)
	}
	if len(got.Citations) != 1 || got.Citations[0].URI != "https://example.com/weather" {
		t.Errorf("citations not round-tripped: %+v", got.Citations)
	}

	stats, err := s.HistoryStats(ctx)
	if err != nil {
		t.Fatalf("HistoryStats failed: %v", err)
	}
	if stats.Total != 1 || stats.BanglaToEnglish != 1 || stats.EnglishToBangla != 0 {
		t.Errorf("unexpected stats: %+v", stats)
	}

	if err := s.DeleteHistory(ctx, "h1"); err != nil {
		t.Fatalf("DeleteHistory failed: %v", err)
	}
	entries, _ = s.ListHistory(ctx, 0)
	if len(entries) != 0 {
		t.Errorf("expected empty history after delete, got %d entries", len(entries))
	}
}

func TestStore_HistoryLimitAndClear(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i, id := range []string{"a", "b", "c"} {
		err := s.SaveHistory(ctx, HistoryEntry{
			ID: id, SourceText: "x", TranslatedText: "y",
			SourceLang: "en", TargetLang: "bn",
			CreatedAt: time.Now().Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("SaveHistory failed: %v", err)
		}
	}

	entries, err := s.ListHistory(ctx, 2)
	if err != nil {
		t.Fatalf("ListHistory failed: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 entries with limit, got %d", len(entries))
	}
	if entries[0].ID != "c" {
		t.Errorf("expected newest first, got %q", entries[0].ID)
	}

	n, err := s.ClearHistory(ctx)
	if err != nil {
		t.Fatalf("ClearHistory failed: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 cleared, got %d", n)
	}
}

func TestStore_Drafts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SaveDraft(ctx, "budget-story", "প্রাথমিক খসড়া"); err != nil {
		t.Fatalf("SaveDraft failed: %v", err)
	}

	content, found, err := s.GetDraft(ctx, "budget-story")
	if err != nil {
		t.Fatalf("GetDraft failed: %v", err)
	}
	if !found || content != "প্রাথমিক খসড়া" {
		t.Errorf("GetDraft = (%q, %v)", content, found)
	}

	// Saving again overwrites.
	if err := s.SaveDraft(ctx, "budget-story", "সংশোধিত খসড়া"); err != nil {
		t.Fatalf("SaveDraft (update) failed: %v", err)
	}
	content, _, _ = s.GetDraft(ctx, "budget-story")
	if content != "সংশোধিত খসড়া" {
		t.Errorf("draft not overwritten, got %q", content)
	}

	drafts, err := s.ListDrafts(ctx)
	if err != nil {
		t.Fatalf("ListDrafts failed: %v", err)
	}
	if len(drafts) != 1 {
		t.Errorf("expected 1 draft, got %d", len(drafts))
	}

	if err := s.DeleteDraft(ctx, "budget-story"); err != nil {
		t.Fatalf("DeleteDraft failed: %v", err)
	}
	_, found, _ = s.GetDraft(ctx, "budget-story")
	if found {
		t.Error("draft still present after delete")
	}
}

func TestStore_GetDraft_Missing(t *testing.T) {
	s := newTestStore(t)

	_, found, err := s.GetDraft(context.Background(), "nope")
	if err != nil {
		t.Fatalf("GetDraft failed: %v", err)
	}
	if found {
		t.Error("expected not found")
	}
}

func TestStore_Glossary(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.AddGlossaryTerm(ctx, "en", "bn", "Parliament", "সংসদ"); err != nil {
		t.Fatalf("AddGlossaryTerm failed: %v", err)
	}
	if err := s.AddGlossaryTerm(ctx, "en", "bn", "Budget", "বাজেট"); err != nil {
		t.Fatalf("AddGlossaryTerm failed: %v", err)
	}

	terms, err := s.GetGlossaryTerms(ctx, "en", "bn")
	if err != nil {
		t.Fatalf("GetGlossaryTerms failed: %v", err)
	}
	if terms["Parliament"] != "সংসদ" || terms["Budget"] != "বাজেট" {
		t.Errorf("unexpected terms: %v", terms)
	}

	// Wrong direction returns nothing.
	terms, _ = s.GetGlossaryTerms(ctx, "bn", "en")
	if len(terms) != 0 {
		t.Errorf("expected no terms for bn→en, got %v", terms)
	}

	entries, err := s.ListGlossaryTerms(ctx, "", "")
	if err != nil {
		t.Fatalf("ListGlossaryTerms failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	if err := s.DeleteGlossaryTerm(ctx, entries[0].ID); err != nil {
		t.Fatalf("DeleteGlossaryTerm failed: %v", err)
	}
	entries, _ = s.ListGlossaryTerms(ctx, "", "")
	if len(entries) != 1 {
		t.Errorf("expected 1 entry after delete, got %d", len(entries))
	}
}

func TestStore_TranslationMemory(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, found, err := s.GetCachedTranslation(ctx, "hello", "en", "bn")
	if err != nil {
		t.Fatalf("GetCachedTranslation failed: %v", err)
	}
	if found {
		t.Error("expected cache miss on empty store")
	}

	if err := s.SaveToMemory(ctx, "hello", "en", "bn", "হ্যালো", "gemini"); err != nil {
		t.Fatalf("SaveToMemory failed: %v", err)
	}

	text, found, err := s.GetCachedTranslation(ctx, "hello", "en", "bn")
	if err != nil {
		t.Fatalf("GetCachedTranslation failed: %v", err)
	}
	if !found || text != "হ্যালো" {
		t.Errorf("GetCachedTranslation = (%q, %v)", text, found)
	}

	// Whitespace is normalized away in the key.
	_, found, _ = s.GetCachedTranslation(ctx, "  hello  ", "en", "bn")
	if !found {
		t.Error("expected hit for whitespace-padded key")
	}

	stats, err := s.MemoryStatsSummary(ctx)
	if err != nil {
		t.Fatalf("MemoryStatsSummary failed: %v", err)
	}
	if stats.TotalEntries != 1 || stats.ActiveEntries != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.TotalUsage < 3 {
		t.Errorf("expected usage count ≥ 3, got %d", stats.TotalUsage)
	}
}

func TestStore_MemoryInvalidation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SaveToMemory(ctx, "stale", "en", "bn", "পুরনো", "gemini"); err != nil {
		t.Fatalf("SaveToMemory failed: %v", err)
	}

	entries, err := s.ListMemory(ctx)
	if err != nil || len(entries) != 1 {
		t.Fatalf("ListMemory = (%v, %v)", entries, err)
	}

	if err := s.InvalidateMemory(ctx, entries[0].ID); err != nil {
		t.Fatalf("InvalidateMemory failed: %v", err)
	}

	_, found, _ := s.GetCachedTranslation(ctx, "stale", "en", "bn")
	if found {
		t.Error("invalidated entry must not be served")
	}

	n, err := s.ClearMemory(ctx)
	if err != nil || n != 1 {
		t.Errorf("ClearMemory = (%d, %v)", n, err)
	}
}

func TestStore_FuzzyLookup(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SaveToMemory(ctx, "The minister arrived in Dhaka on Monday.", "en", "bn", "মন্ত্রী সোমবার ঢাকায় পৌঁছান।", "gemini"); err != nil {
		t.Fatalf("SaveToMemory failed: %v", err)
	}

	// One-word difference, well above 0.8 similarity.
	text, found, err := s.FuzzyGetCachedTranslation(ctx, "The minister arrived in Dhaka on Tuesday.", "en", "bn", 0.8)
	if err != nil {
		t.Fatalf("FuzzyGetCachedTranslation failed: %v", err)
	}
	if !found || text != "মন্ত্রী সোমবার ঢাকায় পৌঁছান।" {
		t.Errorf("fuzzy lookup = (%q, %v)", text, found)
	}

	// Disabled when threshold ≤ 0.
	_, found, _ = s.FuzzyGetCachedTranslation(ctx, "The minister arrived in Dhaka on Tuesday.", "en", "bn", 0)
	if found {
		t.Error("expected miss with threshold 0")
	}

	// Unrelated text misses.
	_, found, _ = s.FuzzyGetCachedTranslation(ctx, "Completely different sentence about cricket.", "en", "bn", 0.8)
	if found {
		t.Error("expected miss for unrelated text")
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"ঢাকা", "ঢাকা", 0},
		{"ঢাকা", "ঢাকায়", 2},
	}
	for _, tt := range tests {
		if got := levenshtein(tt.a, tt.b); got != tt.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
