// Package prompt assembles the system instruction sent to LLM translation
// engines: translation direction, editorial tone, formatting rules, and
// pinned glossary terminology.
package prompt

import (
	"fmt"
	"sort"
	"strings"
)

// Tones accepted by Build. Unknown tones fall back to ToneNeutral.
const (
	ToneFormal     = "formal"
	ToneNeutral    = "neutral"
	ToneColloquial = "colloquial"
)

var toneDescriptions = map[string]string{
	ToneFormal:     "Use formal, standard written register appropriate for a newspaper front page.",
	ToneNeutral:    "Use a clear, neutral register appropriate for general news reporting.",
	ToneColloquial: "Use a conversational register appropriate for features and opinion columns.",
}

// Options configures the system instruction.
type Options struct {
	SourceLang string // "bn" or "en"
	TargetLang string // "bn" or "en"
	Tone       string
	// PreserveFormat instructs the model to keep paragraph breaks and any
	// inline markup placeholders untouched.
	PreserveFormat bool
	// Glossary maps source terms to their mandated target renderings.
	Glossary map[string]string
}

// Build renders the system instruction. The output is deterministic for a
// given Options value (glossary terms are emitted in sorted order).
func Build(opts Options) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are a professional %s-to-%s translator for a news desk.\n",
		langName(opts.SourceLang), langName(opts.TargetLang))
	fmt.Fprintf(&b, "Translate faithfully and idiomatically into %s. Preserve names, figures, dates, and quoted speech exactly.\n",
		langName(opts.TargetLang))

	tone := opts.Tone
	if _, ok := toneDescriptions[tone]; !ok {
		tone = ToneNeutral
	}
	b.WriteString(toneDescriptions[tone])
	b.WriteString("\n")

	if opts.PreserveFormat {
		b.WriteString("Preserve the paragraph structure of the original. Leave any [PHn] markers exactly where they appear; do not translate, move, or remove them.\n")
	}

	if len(opts.Glossary) > 0 {
		b.WriteString("Always translate the following terms exactly as given:\n")
		terms := make([]string, 0, len(opts.Glossary))
		for src := range opts.Glossary {
			terms = append(terms, src)
		}
		sort.Strings(terms)
		for _, src := range terms {
			fmt.Fprintf(&b, "- %q must be rendered as %q\n", src, opts.Glossary[src])
		}
	}

	b.WriteString("Respond with the translation only, no commentary.")
	return b.String()
}

func langName(code string) string {
	switch code {
	case "bn":
		return "Bangla"
	case "en":
		return "English"
	default:
		return code
	}
}
