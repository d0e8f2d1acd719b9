package postprocess

import "testing"

func TestStripThinking(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string", "", ""},
		{"no blocks", "A normal translation.", "A normal translation."},
		{
			"closed thinking block",
			"<thinking>bn to en, keep names</thinking>I live in Dhaka.",
			"I live in Dhaka.",
		},
		{
			"reasoning block mid-text",
			"Start<reasoning>checking grammar</reasoning>End",
			"StartEnd",
		},
		{
			"multiple blocks",
			"<think>first</think>আমি ঢাকায় থাকি।<think>second</think>",
			"আমি ঢাকায় থাকি।",
		},
		{
			"unclosed block drops the tail",
			"The minister said<thinking>wait, should this be",
			"The minister said",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripThinking(tt.input); got != tt.expected {
				t.Errorf("stripThinking(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestStripLeadIn(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"no lead-in", "The prime minister spoke on Sunday.", "The prime minister spoke on Sunday."},
		{"here is the translation", "Here is the translation: The market fell.", "The market fell."},
		{"translation label", "Translation: The market fell.", "The market fell."},
		{"polite preamble", "Sure, here's the translation: The market fell.", "The market fell."},
		{"in english label", "In English: The market fell.", "The market fell."},
		{"bangla label with colon", "অনুবাদ: বাজার পড়ে গেছে।", "বাজার পড়ে গেছে।"},
		{"bangla label with visarga", "বাংলা অনুবাদঃ বাজার পড়ে গেছে।", "বাজার পড়ে গেছে।"},
		{"banglay label", "বাংলায়: বাজার পড়ে গেছে।", "বাজার পড়ে গেছে।"},
		{
			"label mid-text untouched",
			"He titled it Translation: a memoir.",
			"He titled it Translation: a memoir.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripLeadIn(tt.input); got != tt.expected {
				t.Errorf("stripLeadIn(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestUnwrapFence(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"no fence", "Plain text.", "Plain text."},
		{"bare fence", "```\nThe market fell.\n```", "The market fell."},
		{"fence with language tag", "```text\nThe market fell.\n```", "The market fell."},
		{
			"fence mid-text kept",
			"Run this:\n```sh\nls\n```\nthen stop.",
			"Run this:\n```sh\nls\n```\nthen stop.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := unwrapFence(tt.input); got != tt.expected {
				t.Errorf("unwrapFence(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestUnwrapQuotes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"no quotes", "The market fell.", "The market fell."},
		{"double quotes", `"The market fell."`, "The market fell."},
		{"curly quotes", "“The market fell.”", "The market fell."},
		{"guillemets", "«বাজার পড়ে গেছে।»", "বাজার পড়ে গেছে।"},
		{"mismatched pair kept", `"The market fell.'`, `"The market fell.'`},
		{
			"internal quotes kept",
			`He said "no" twice.`,
			`He said "no" twice.`,
		},
		{"single rune", `"`, `"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := unwrapQuotes(tt.input); got != tt.expected {
				t.Errorf("unwrapQuotes(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestClean(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			"stacked artifacts",
			"<thinking>direction bn→en</thinking>Translation: \"The market fell.\"",
			"The market fell.",
		},
		{
			"clean bangla passes through",
			"আমি ঢাকায় থাকি। তুমি কোথায় থাকো?",
			"আমি ঢাকায় থাকি। তুমি কোথায় থাকো?",
		},
		{
			"fenced and labelled",
			"```\nঅনুবাদ: বাজার পড়ে গেছে।\n```",
			"বাজার পড়ে গেছে।",
		},
		{"whitespace trimmed", "  The market fell.  \n", "The market fell."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.input); got != tt.expected {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
