package markdown_test

import (
	"strings"
	"testing"

	"github.com/imam0096361/translation/internal/markdown"
)

func TestToHTML_Basic(t *testing.T) {
	got := markdown.ToHTML([]byte("# শিরোনাম\n\nSome **bold** text."))
	if !strings.Contains(got, "<h1") || !strings.Contains(got, "শিরোনাম") {
		t.Errorf("heading not rendered: %q", got)
	}
	if !strings.Contains(got, "<strong>bold</strong>") {
		t.Errorf("bold not rendered: %q", got)
	}
}

func TestToHTML_LinksOpenInNewTab(t *testing.T) {
	got := markdown.ToHTML([]byte("[source](https://example.com)"))
	if !strings.Contains(got, `target="_blank"`) {
		t.Errorf("expected target=_blank on links: %q", got)
	}
}

func TestToPlainText(t *testing.T) {
	got := markdown.ToPlainText([]byte("# Title\n\nA *styled* paragraph."))
	if strings.Contains(got, "<") || strings.Contains(got, ">") {
		t.Errorf("tags leaked into plain text: %q", got)
	}
	if !strings.Contains(got, "Title") || !strings.Contains(got, "styled") {
		t.Errorf("text content lost: %q", got)
	}
}

func TestPreview(t *testing.T) {
	got := markdown.Preview("Draft", "bn", "<p>আমি</p>")
	if !strings.Contains(got, `lang="bn"`) {
		t.Errorf("lang attribute missing: %q", got)
	}
	if !strings.Contains(got, "<title>Draft</title>") {
		t.Errorf("title missing: %q", got)
	}
	if !strings.Contains(got, "<p>আমি</p>") {
		t.Errorf("fragment missing: %q", got)
	}
}

func TestStripHTMLTags(t *testing.T) {
	got := markdown.StripHTMLTags("<p>Hello <b>world</b></p>")
	if got != "Hello world" {
		t.Errorf("expected %q, got %q", "Hello world", got)
	}
}
