// Package markdown renders draft and translation text written in Markdown
// to HTML for the preview endpoint, and strips markup when a plain-text
// rendition is needed (word counts, language detection on formatted input).
package markdown

import (
	"bytes"
	"fmt"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// ToHTML renders Markdown source to an HTML fragment. External links open
// in a new tab so an editor previewing a draft keeps their place.
func ToHTML(md []byte) string {
	opts := html.RendererOptions{
		Flags: html.CommonFlags | html.HrefTargetBlank,
	}
	renderer := html.NewRenderer(opts)
	ext := parser.CommonExtensions | parser.Attributes
	p := parser.NewWithExtensions(ext)
	doc := p.Parse(md)
	return string(markdown.Render(doc, renderer))
}

// ToPlainText renders Markdown and strips the resulting tags, leaving only
// the visible text.
func ToPlainText(md []byte) string {
	return StripHTMLTags(ToHTML(md))
}

// Preview wraps an HTML fragment in a minimal standalone page. The lang
// attribute should be a BCP 47 tag ("bn" or "en").
func Preview(title, lang, fragment string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang=%q>
<head><meta charset="utf-8"><title>%s</title></head>
<body>
%s
</body>
</html>
`, lang, title, fragment)
}

// StripHTMLTags removes HTML tags from htmlContent, keeping text content.
func StripHTMLTags(htmlContent string) string {
	var result bytes.Buffer
	inTag := false

	for _, ch := range htmlContent {
		switch ch {
		case '<':
			inTag = true
		case '>':
			inTag = false
		default:
			if !inTag {
				result.WriteRune(ch)
			}
		}
	}

	return result.String()
}
