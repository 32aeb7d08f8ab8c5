// Package selector picks the most relevant article for a target date from a
// list of search results.
package selector

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/hindsight-hq/past-news/internal/domain"
)

// maxExcerptParagraphs bounds how much of the winning body is returned.
const maxExcerptParagraphs = 3

// Select returns the best candidate for the target date, or a quiet day when
// nothing qualifies. A headline mentioning the keyword is a hard gate; body
// mentions only rank the survivors. Ties keep the earliest candidate, so the
// outcome is deterministic for a fixed input order. The winner's body is
// replaced by its excerpt.
func Select(candidates []domain.Article, keyword string, target time.Time) domain.Result {
	best, bestCount := -1, -1
	for i, a := range candidates {
		if !containsFold(a.Headline, keyword) {
			continue
		}
		if n := countFold(a.Body, keyword); n > bestCount {
			best, bestCount = i, n
		}
	}
	if best < 0 {
		return domain.Result{
			TargetDate: target,
			Message:    fmt.Sprintf("No %s coverage found on this day", keyword),
		}
	}

	winner := candidates[best]
	if excerpt := Excerpt(winner.Body, maxExcerptParagraphs); excerpt != "" {
		winner.Body = excerpt
	} else {
		winner.Body = winner.Headline
	}
	return domain.Result{TargetDate: target, Article: &winner}
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func countFold(s, sub string) int {
	if sub == "" {
		return 0
	}
	return strings.Count(strings.ToLower(s), strings.ToLower(sub))
}

// Excerpt extracts the first max paragraphs of body as plain text, joined by
// blank lines. Search backends return HTML bodies, where paragraphs are <p>
// elements; plain-text bodies fall back to blank-line splitting. Fewer than
// max paragraphs are returned unchanged.
func Excerpt(body string, max int) string {
	body = strings.TrimSpace(body)
	if body == "" {
		return ""
	}

	paragraphs := htmlParagraphs(body)
	if len(paragraphs) == 0 {
		paragraphs = textParagraphs(body)
	}
	if len(paragraphs) > max {
		paragraphs = paragraphs[:max]
	}
	return strings.Join(paragraphs, "\n\n")
}

// htmlParagraphs returns the non-empty <p> texts of an HTML body, or nil if
// the body does not look like markup.
func htmlParagraphs(body string) []string {
	if !strings.Contains(body, "<") {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil
	}

	var paragraphs []string
	doc.Find("p").Each(func(_ int, sel *goquery.Selection) {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})
	if len(paragraphs) == 0 {
		// Markup without <p> tags; fall back to the flattened text.
		return textParagraphs(doc.Text())
	}
	return paragraphs
}

func textParagraphs(body string) []string {
	var paragraphs []string
	for _, block := range strings.Split(body, "\n\n") {
		if p := strings.TrimSpace(block); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}
