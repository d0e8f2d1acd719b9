package detector

import (
	"testing"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Language
	}{
		{
			name: "empty text",
			text: "",
			want: Unknown,
		},
		{
			name: "single character",
			text: "a",
			want: Unknown,
		},
		{
			name: "whitespace only",
			text: "  ",
			want: Unknown,
		},
		{
			name: "bangla stopwords",
			text: "এবং ও কিন্তু",
			want: Bangla,
		},
		{
			name: "english stopwords",
			text: "the and is of in",
			want: English,
		},
		{
			name: "bangla content word no stopwords",
			text: "বাংলাদেশ",
			want: Bangla,
		},
		{
			name: "english content word no stopwords",
			text: "journalism",
			want: English,
		},
		{
			name: "mixed script token majority bangla",
			text: "এবংa",
			want: Bangla,
		},
		{
			name: "no letters at all",
			text: "12345 !!!",
			want: Unknown,
		},
		{
			name: "mixed token with even character split",
			text: "aব",
			want: Unknown,
		},
		{
			name: "bangla sentence",
			text: "আমরা আজ সকালে ঢাকায় পৌঁছেছি এবং সবাই ভালো আছে",
			want: Bangla,
		},
		{
			name: "english sentence",
			text: "The committee published its annual report on Tuesday",
			want: English,
		},
		{
			name: "digits beside bangla text",
			text: "২০২৪ সালে বাংলাদেশ",
			want: Bangla,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.text); got != tt.want {
				t.Errorf("Detect(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestDetect_Deterministic(t *testing.T) {
	inputs := []string{
		"",
		"the and is of in",
		"এবং ও কিন্তু",
		"বাংলা and english মিশ্রিত text",
		"12345 !!!",
	}

	for _, in := range inputs {
		first := Detect(in)
		for i := 0; i < 10; i++ {
			if got := Detect(in); got != first {
				t.Fatalf("Detect(%q) not deterministic: got %v then %v", in, first, got)
			}
		}
	}
}

// A narrow score margin on a long text must defer to raw character counts,
// and that path never returns Unknown.
func TestDetect_CloseScoreLongTextFallback(t *testing.T) {
	// Scores: bangla 10+2+1 = 13 (stopword এবং with script bonus, mixed
	// token বাংলাz), english 6x2 = 12 (six Latin-only tokens). Eight
	// tokens total, ratio 13/12 ~ 1.08 < 1.2, so whole-text character
	// counts decide: 8 Bangla characters vs 23 Latin characters.
	text := "এবং বাংলাz one two three four five six"

	got := Detect(text)
	if got == Unknown {
		t.Fatalf("Detect(%q) = Unknown, close-score fallback must pick a language", text)
	}
	if got != English {
		t.Errorf("Detect(%q) = %v, want %v (more Latin characters overall)", text, got, English)
	}
}

func TestDetect_WhitespaceIdempotence(t *testing.T) {
	padded := Detect(" the and ")
	bare := Detect("the and")
	if padded != bare {
		t.Errorf("Detect(%q) = %v, Detect(%q) = %v; surrounding whitespace must not change the result",
			" the and ", padded, "the and", bare)
	}
}

func TestDetect_TiedScoresCharacterFallback(t *testing.T) {
	// One Bangla-only token and one Latin-only token tie at 2/2; the
	// longer word wins on raw character count.
	if got := Detect("বাংলাদেশ go"); got != Bangla {
		t.Errorf("Detect tied scores = %v, want %v", got, Bangla)
	}
	if got := Detect("ঢাকা newspaper"); got != English {
		t.Errorf("Detect tied scores = %v, want %v", got, English)
	}
}

func TestDirection(t *testing.T) {
	tests := []struct {
		lang       Language
		wantSource string
		wantTarget string
		wantOK     bool
	}{
		{Bangla, "bn", "en", true},
		{English, "en", "bn", true},
		{Unknown, "", "", false},
	}

	for _, tt := range tests {
		src, tgt, ok := Direction(tt.lang)
		if src != tt.wantSource || tgt != tt.wantTarget || ok != tt.wantOK {
			t.Errorf("Direction(%v) = (%q, %q, %v), want (%q, %q, %v)",
				tt.lang, src, tgt, ok, tt.wantSource, tt.wantTarget, tt.wantOK)
		}
	}
}
