// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract turns raw HTML into structured article data with a
// readability score. Extraction is a pure function of the HTML and URL; it
// performs no network access.
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/answer-engine/pkg/types"
)

// boilerplateSelector matches the elements removed before any reading:
// chrome, ads, comments, and scripts contribute no article text.
const boilerplateSelector = "script, style, nav, header, footer, aside, iframe, noscript, form, " +
	".ad, .ads, .advertisement, .advert, .sponsored, .promo, " +
	".comments, #comments, .comment-section, .sidebar, .social, .share, .related"

// titleClassSelector is the last resort in the title preference chain.
const titleClassSelector = ".title, .post-title, .entry-title, .article-title, .headline"

// contentSelectors is the ordered list of content containers tried for the
// body. The first whose text exceeds minContentLength wins.
var contentSelectors = []string{
	"article",
	"main",
	`[role="main"]`,
	"#content",
	".content",
	".post-content",
	".entry-content",
	".article-content",
	".article-body",
	".story-body",
}

// minContentLength is the character threshold a content container must
// exceed before its text is accepted as the body.
const minContentLength = 200

// FromHTML parses the page and extracts title, body text, metadata, and a
// readability score. The URL is carried for error context only; no request
// is made.
func FromHTML(htmlSrc, pageURL string) (*types.ExtractedArticle, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlSrc))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML from %s: %w", pageURL, err)
	}

	doc.Find(boilerplateSelector).Remove()

	title := extractTitle(doc)
	body := extractBody(doc)

	return &types.ExtractedArticle{
		Title:            title,
		Text:             body,
		Metadata:         collectMetadata(doc, body),
		ReadabilityScore: Score(body),
	}, nil
}

// extractTitle walks the preference chain: social meta tags, first heading,
// the <title> tag, then common title classes. The first non-empty value
// wins; with nothing usable the title is "Untitled".
func extractTitle(doc *goquery.Document) string {
	for _, sel := range []string{`meta[property="og:title"]`, `meta[name="twitter:title"]`} {
		if v, ok := doc.Find(sel).First().Attr("content"); ok {
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		}
	}
	if t := collapseSpaces(doc.Find("h1").First().Text()); t != "" {
		return t
	}
	if t := collapseSpaces(doc.Find("title").First().Text()); t != "" {
		return t
	}
	if t := collapseSpaces(doc.Find(titleClassSelector).First().Text()); t != "" {
		return t
	}
	return "Untitled"
}

// extractBody tries the content-container selectors in order and accepts
// the first candidate whose text exceeds the minimum length. When none
// qualifies it falls back to concatenating all paragraph text.
func extractBody(doc *goquery.Document) string {
	for _, sel := range contentSelectors {
		node := doc.Find(sel).First()
		if node.Length() == 0 {
			continue
		}
		text := normalizeWhitespace(node.Text())
		if len(text) > minContentLength {
			return text
		}
	}

	var paragraphs []string
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		if t := collapseSpaces(s.Text()); t != "" {
			paragraphs = append(paragraphs, t)
		}
	})
	return strings.Join(paragraphs, "\n")
}

// normalizeWhitespace collapses intra-line whitespace runs and drops blank
// lines, preserving line boundaries between the survivors.
func normalizeWhitespace(s string) string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = collapseSpaces(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// collapseSpaces trims a string and folds internal whitespace runs into
// single spaces.
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
