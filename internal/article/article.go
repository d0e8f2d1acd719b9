// Package article fetches a web page and extracts its readable text so
// editors can translate a URL instead of pasting copy by hand.
package article

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Article is the extracted readable content of a page.
type Article struct {
	Title string
	Text  string
}

const maxBodyBytes = 4 << 20 // pages larger than 4 MiB are cut off

var defaultClient = &http.Client{Timeout: 30 * time.Second}

// Fetch downloads url and extracts its article content. A nil client uses a
// default with a 30 s timeout.
func Fetch(ctx context.Context, client *http.Client, url string) (*Article, error) {
	if client == nil {
		client = defaultClient
	}

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "anubad/1.0 (article extraction)")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("page returned status %d", resp.StatusCode)
	}

	return Extract(io.LimitReader(resp.Body, maxBodyBytes))
}

// Extract parses HTML and returns the page title and body text. Boilerplate
// containers (scripts, navigation, sidebars) are removed; the text is the
// paragraphs of the first <article> element when present, all paragraphs
// otherwise, joined by blank lines.
func Extract(r io.Reader) (*Article, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, noscript, nav, header, footer, aside, form").Remove()

	title := strings.TrimSpace(doc.Find("meta[property='og:title']").AttrOr("content", ""))
	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	if title == "" {
		title = strings.TrimSpace(doc.Find("h1").First().Text())
	}

	scope := doc.Selection
	if article := doc.Find("article").First(); article.Length() > 0 {
		scope = article
	}

	var paragraphs []string
	scope.Find("p").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if text != "" {
			paragraphs = append(paragraphs, text)
		}
	})

	text := strings.Join(paragraphs, "\n\n")
	if text == "" {
		// Pages without <p> markup: fall back to the body text.
		text = strings.TrimSpace(doc.Find("body").Text())
	}
	if text == "" {
		return nil, fmt.Errorf("no readable text found")
	}

	return &Article{Title: title, Text: text}, nil
}
