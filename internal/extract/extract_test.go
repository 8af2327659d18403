// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"strings"
	"testing"
	"time"
)

func TestFromHTMLTitlePreference(t *testing.T) {
	html := `<html><head>
		<title>Foo</title>
		<meta property="og:title" content="Bar">
	</head><body><h1>Baz</h1></body></html>`

	article, err := FromHTML(html, "https://example.com/a")
	if err != nil {
		t.Fatalf("FromHTML: %v", err)
	}
	if article.Title != "Bar" {
		t.Errorf("title = %q, want %q", article.Title, "Bar")
	}
}

func TestFromHTMLTitleFallbacks(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"h1", `<html><head><title>Page</title></head><body><h1> Heading </h1></body></html>`, "Heading"},
		{"title tag", `<html><head><title>Page</title></head><body><p>x</p></body></html>`, "Page"},
		{"title class", `<html><body><div class="post-title">Classy</div></body></html>`, "Classy"},
		{"nothing", `<html><body><p>x</p></body></html>`, "Untitled"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			article, err := FromHTML(tt.html, "https://example.com")
			if err != nil {
				t.Fatalf("FromHTML: %v", err)
			}
			if article.Title != tt.want {
				t.Errorf("title = %q, want %q", article.Title, tt.want)
			}
		})
	}
}

func TestFromHTMLRemovesBoilerplate(t *testing.T) {
	body := strings.Repeat("Plain readable sentence here. ", 10)
	html := `<html><body>
		<nav>Site navigation links</nav>
		<script>var x = 1;</script>
		<div class="sidebar">Trending now</div>
		<article>` + body + `</article>
		<footer>Copyright footer</footer>
	</body></html>`

	article, err := FromHTML(html, "https://example.com")
	if err != nil {
		t.Fatalf("FromHTML: %v", err)
	}
	for _, junk := range []string{"navigation", "var x", "Trending", "footer"} {
		if strings.Contains(article.Text, junk) {
			t.Errorf("body contains boilerplate %q", junk)
		}
	}
	if !strings.Contains(article.Text, "Plain readable sentence") {
		t.Errorf("body lost article text: %q", article.Text)
	}
}

func TestFromHTMLParagraphFallback(t *testing.T) {
	// No container exceeds the length threshold, so the body comes from
	// joining paragraph text.
	var ps []string
	for i := 0; i < 10; i++ {
		ps = append(ps, "<p>This paragraph carries sixty characters of readable text.</p>")
	}
	html := `<html><body><div>` + strings.Join(ps, "") + `</div></body></html>`

	article, err := FromHTML(html, "https://example.com")
	if err != nil {
		t.Fatalf("FromHTML: %v", err)
	}
	lines := strings.Split(article.Text, "\n")
	if len(lines) != 10 {
		t.Errorf("got %d paragraph lines, want 10", len(lines))
	}
	if len(article.Text) < 500 {
		t.Errorf("fallback body too short: %d chars", len(article.Text))
	}
}

func TestFromHTMLContentSelectorOrder(t *testing.T) {
	long := strings.Repeat("Article body text goes on and on. ", 10)
	html := `<html><body>
		<article>` + long + `</article>
		<main>` + strings.Repeat("Main text that should lose. ", 10) + `</main>
	</body></html>`

	article, err := FromHTML(html, "https://example.com")
	if err != nil {
		t.Fatalf("FromHTML: %v", err)
	}
	if !strings.Contains(article.Text, "Article body") {
		t.Errorf("body did not come from <article>: %q", article.Text[:60])
	}
	if strings.Contains(article.Text, "should lose") {
		t.Errorf("body includes lower-priority container text")
	}
}

func TestCollectMetadataChains(t *testing.T) {
	html := `<html lang="en-US"><head>
		<meta name="author" content="Jane Writer">
		<meta property="article:published_time" content="2026-03-15T10:30:00Z">
		<meta property="og:description" content="A page about things.">
		<meta name="keywords" content="go, http, parsing ">
	</head><body><article>` + strings.Repeat("Words in the body. ", 20) + `</article></body></html>`

	article, err := FromHTML(html, "https://example.com")
	if err != nil {
		t.Fatalf("FromHTML: %v", err)
	}
	m := article.Metadata
	if m.Author != "Jane Writer" {
		t.Errorf("author = %q", m.Author)
	}
	want := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)
	if !m.PublishedAt.Equal(want) {
		t.Errorf("publishedAt = %v, want %v", m.PublishedAt, want)
	}
	if m.Description != "A page about things." {
		t.Errorf("description = %q", m.Description)
	}
	if len(m.Keywords) != 3 || m.Keywords[2] != "parsing" {
		t.Errorf("keywords = %v", m.Keywords)
	}
	if m.Language != "en" {
		t.Errorf("language = %q, want en", m.Language)
	}
}

func TestCollectMetadataFallbacks(t *testing.T) {
	html := `<html><head>
		<meta name="description" content="Secondary description.">
	</head><body>
		<span class="byline">By John Doe</span>
		<time datetime="2025-12-01">Dec 1</time>
		<p>Short.</p>
	</body></html>`

	article, err := FromHTML(html, "https://example.com")
	if err != nil {
		t.Fatalf("FromHTML: %v", err)
	}
	m := article.Metadata
	if m.Author != "By John Doe" {
		t.Errorf("author = %q", m.Author)
	}
	if m.PublishedAt.Year() != 2025 || m.PublishedAt.Month() != time.December {
		t.Errorf("publishedAt = %v", m.PublishedAt)
	}
	if m.Description != "Secondary description." {
		t.Errorf("description = %q", m.Description)
	}
	// Body too short for detection and no declared language.
	if m.Language != "" {
		t.Errorf("language = %q, want empty", m.Language)
	}
}

func TestScoreBounds(t *testing.T) {
	simple := strings.Repeat("The cat sat on the mat. ", 10)
	got := Score(simple)
	if got <= 0 || got > 1 {
		t.Errorf("simple text score = %v, want in (0, 1]", got)
	}

	dense := strings.Repeat("Interdisciplinary epistemological considerations necessitate comprehensive reevaluation of methodological paradigms ", 3)
	if s := Score(dense + "."); s > got {
		t.Errorf("dense academic text scored %v, above simple text %v", s, got)
	}
}

func TestScoreShortText(t *testing.T) {
	if s := Score("Too short to score."); s != 0 {
		t.Errorf("short text score = %v, want 0", s)
	}
	if s := Score(""); s != 0 {
		t.Errorf("empty text score = %v, want 0", s)
	}
}

func TestScoreNoSentences(t *testing.T) {
	text := strings.Repeat("words without any terminal punctuation at all ", 5)
	if s := Score(text); s != 0 {
		t.Errorf("unpunctuated text score = %v, want 0", s)
	}
}

func TestCountSyllables(t *testing.T) {
	tests := []struct {
		word string
		want int
	}{
		{"cat", 1},
		{"the", 1},
		{"table", 2},
		{"make", 1},
		{"reading", 2},
		{"beautiful", 3},
		{"rhythm", 1},
	}
	for _, tt := range tests {
		if got := countSyllables(tt.word); got != tt.want {
			t.Errorf("countSyllables(%q) = %d, want %d", tt.word, got, tt.want)
		}
	}
}

func TestNormalizeWhitespace(t *testing.T) {
	in := "  first   line \n\n  \n second\tline  \n"
	want := "first line\nsecond line"
	if got := normalizeWhitespace(in); got != want {
		t.Errorf("normalizeWhitespace = %q, want %q", got, want)
	}
}
