package validator

import (
	"testing"
)

func TestIsValid(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		targetLang string
		want       bool
		wantErr    bool
	}{
		{
			name:       "no target language always passes",
			text:       "anything",
			targetLang: "",
			want:       true,
		},
		{
			name:       "empty translation fails",
			text:       "   ",
			targetLang: "en",
			want:       false,
			wantErr:    true,
		},
		{
			name:       "short text passes unchecked",
			text:       "ঠিক আছে",
			targetLang: "en",
			want:       true,
		},
		{
			name:       "english output for english target",
			text:       "The national budget session opened in parliament on Monday morning.",
			targetLang: "en",
			want:       true,
		},
		{
			name:       "bangla output for bangla target",
			text:       "জাতীয় সংসদে সোমবার সকালে বাজেট অধিবেশন শুরু হয়েছে এবং বিরোধী দল walkout করেছে।",
			targetLang: "bn",
			want:       true,
		},
		{
			name:       "bangla output for english target mismatches without error",
			text:       "জাতীয় সংসদে সোমবার সকালে বাজেট অধিবেশন শুরু হয়েছে এবং সবাই উপস্থিত ছিলেন।",
			targetLang: "en",
			want:       false,
		},
		{
			name:       "english output for bangla target mismatches without error",
			text:       "The national budget session opened in parliament on Monday morning.",
			targetLang: "bn",
			want:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IsValid(tt.text, tt.targetLang)
			if got != tt.want {
				t.Errorf("IsValid(%q, %q) = %v, want %v", tt.text, tt.targetLang, got, tt.want)
			}
			if (err != nil) != tt.wantErr {
				t.Errorf("IsValid(%q, %q) err = %v, wantErr %v", tt.text, tt.targetLang, err, tt.wantErr)
			}
		})
	}
}
