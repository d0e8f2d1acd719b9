// Package postprocess removes common LLM artifacts from translation output.
//
// It is applied to the raw text returned by any LLM-backed engine (Gemini,
// OpenAI, Ollama, the refiner) before the result is rendered, cached, or
// saved to history.
package postprocess

import (
	"regexp"
	"strings"
)

// Clean strips LLM artifacts and returns the trimmed result. Phases run in
// order: reasoning blocks, code-fence wrapping, lead-in labels, quote
// wrapping.
func Clean(text string) string {
	text = stripThinking(text)
	text = unwrapFence(text)
	text = stripLeadIn(text)
	text = unwrapQuotes(text)
	return strings.TrimSpace(text)
}

// reasoningRe matches complete <thinking>…</thinking> style blocks. Each tag
// variant is listed explicitly because RE2 has no backreferences.
var reasoningRe = regexp.MustCompile(
	`(?is)<thinking>.*?</thinking>|<think>.*?</think>|<reasoning>.*?</reasoning>|<reflection>.*?</reflection>`,
)

// openReasoningRe matches a reasoning tag the model never closed (cut off
// mid-thought); everything from the tag onward is dropped.
var openReasoningRe = regexp.MustCompile(
	`(?is)(?:<thinking>|<think>|<reasoning>|<reflection>).*$`,
)

func stripThinking(text string) string {
	text = reasoningRe.ReplaceAllString(text, "")
	text = openReasoningRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// fenceRe matches output wrapped entirely in a single fenced code block,
// with an optional language tag on the opening fence.
var fenceRe = regexp.MustCompile("(?s)^```[a-zA-Z]*\n(.*?)\n?```$")

// unwrapFence unwraps output the model wrapped in a Markdown code fence.
// A fence appearing mid-text is legitimate content and is left alone.
func unwrapFence(text string) string {
	text = strings.TrimSpace(text)
	if m := fenceRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return text
}

// leadInPatterns match labels the model prepends even when told not to.
// Anchored to the start and requiring a colon (or Bangla visarga) to avoid
// eating legitimate copy.
var leadInPatterns = []*regexp.Regexp{
	// "Here is / Here's [the] [refined|polished|translated] translation:"
	regexp.MustCompile(`(?i)^here(?:'s| is)(?: the)? (?:refined |polished |translated )?(?:translation|text)\s*:`),
	// "[The] [refined|polished] [translation|translated text]:"
	regexp.MustCompile(`(?i)^(?:the )?(?:refined |polished )?(?:translation|translated text)\s*:`),
	// "Certainly / Sure / Of course[,] here is [the] translation:"
	regexp.MustCompile(`(?i)^(?:certainly|sure|of course)[,.]? here(?:'s| is)(?: the)? (?:refined |polished |translated )?(?:translation|text)\s*:`),
	// "In English:" / "In Bangla:"
	regexp.MustCompile(`(?i)^in (?:english|bangla|bengali)\s*:`),
	// Bangla lead-ins: "অনুবাদ:" / "অনুবাদঃ" / "বাংলা অনুবাদ:" / "ইংরেজি অনুবাদ:"
	regexp.MustCompile(`^(?:বাংলা |ইংরেজি )?অনুবাদ\s*[:ঃ]`),
	// "ইংরেজিতে:" / "বাংলায়:"
	regexp.MustCompile(`^(?:ইংরেজিতে|বাংলায়)\s*[:ঃ]`),
}

func stripLeadIn(text string) string {
	for _, re := range leadInPatterns {
		if loc := re.FindStringIndex(text); loc != nil && loc[0] == 0 {
			text = strings.TrimSpace(text[loc[1]:])
		}
	}
	return text
}

// quotePairs are the opener/closer pairs stripped when they wrap the entire
// output. Includes the curly quotes Gemini favours.
var quotePairs = map[rune]rune{
	'"':  '"',
	'\'': '\'',
	'«':  '»',
	'“':  '”', // " "
	'‘':  '’', // ' '
}

// unwrapQuotes strips one matching pair of outer quotes when the whole text
// is wrapped in them.
func unwrapQuotes(text string) string {
	runes := []rune(text)
	n := len(runes)
	if n < 2 {
		return text
	}
	if closer, ok := quotePairs[runes[0]]; ok && runes[n-1] == closer {
		return strings.TrimSpace(string(runes[1 : n-1]))
	}
	return text
}
