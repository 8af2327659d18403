// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pemistahl/lingua-go"

	"github.com/pdiddy/answer-engine/pkg/types"
)

// detectorLanguages bounds the language detector to the languages the
// retrieval sources realistically serve. A smaller set keeps the lingua
// model load cheap.
var detectorLanguages = []lingua.Language{
	lingua.English,
	lingua.Spanish,
	lingua.French,
	lingua.German,
	lingua.Portuguese,
	lingua.Italian,
	lingua.Dutch,
	lingua.Russian,
	lingua.Japanese,
	lingua.Chinese,
}

var (
	detectorOnce sync.Once
	detector     lingua.LanguageDetector
)

// languageDetector lazily builds the shared lingua detector. Model loading
// is expensive, so it happens at most once per process.
func languageDetector() lingua.LanguageDetector {
	detectorOnce.Do(func() {
		detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(detectorLanguages...).
			Build()
	})
	return detector
}

// dateFormats are tried in order when parsing declared publication dates.
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
}

// collectMetadata reads author, publication date, description, keywords,
// and language from meta tags, applying the fallback chain for each field.
// bodyText feeds the final language fallback: statistical detection on the
// extracted prose.
func collectMetadata(doc *goquery.Document, bodyText string) types.ArticleMetadata {
	m := types.ArticleMetadata{
		Author:      metaContent(doc, `meta[name="author"]`, `meta[property="article:author"]`),
		Description: metaContent(doc, `meta[property="og:description"]`, `meta[name="description"]`, `meta[name="twitter:description"]`),
	}

	if m.Author == "" {
		m.Author = collapseSpaces(doc.Find(`[rel="author"], .author, .byline`).First().Text())
	}

	if raw := publishedRaw(doc); raw != "" {
		for _, layout := range dateFormats {
			if t, err := time.Parse(layout, raw); err == nil {
				m.PublishedAt = t
				break
			}
		}
	}

	if kw := metaContent(doc, `meta[name="keywords"]`); kw != "" {
		for _, k := range strings.Split(kw, ",") {
			if k = strings.TrimSpace(k); k != "" {
				m.Keywords = append(m.Keywords, k)
			}
		}
	}

	m.Language = pageLanguage(doc, bodyText)
	return m
}

// publishedRaw walks the publication-date chain: article meta, generic date
// metas, then a <time datetime> attribute.
func publishedRaw(doc *goquery.Document) string {
	if v := metaContent(doc, `meta[property="article:published_time"]`, `meta[name="date"]`, `meta[name="pubdate"]`); v != "" {
		return v
	}
	if v, ok := doc.Find("time[datetime]").First().Attr("datetime"); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// pageLanguage resolves the language chain: the html lang attribute, the
// og:locale meta, then statistical detection on the body text.
func pageLanguage(doc *goquery.Document, bodyText string) string {
	if v, ok := doc.Find("html").First().Attr("lang"); ok {
		if code := isoPrefix(v); code != "" {
			return code
		}
	}
	if v := metaContent(doc, `meta[property="og:locale"]`); v != "" {
		if code := isoPrefix(v); code != "" {
			return code
		}
	}
	// Detection needs enough prose to be meaningful.
	if len(bodyText) >= minContentLength {
		if lang, ok := languageDetector().DetectLanguageOf(bodyText); ok {
			return strings.ToLower(lang.IsoCode639_1().String())
		}
	}
	return ""
}

// isoPrefix reduces values like "en-US" or "en_GB" to the two-letter code.
func isoPrefix(v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	for _, sep := range []string{"-", "_"} {
		if i := strings.Index(v, sep); i > 0 {
			v = v[:i]
		}
	}
	if len(v) != 2 {
		return ""
	}
	return v
}

// metaContent returns the first non-empty content attribute among the
// given selectors.
func metaContent(doc *goquery.Document, selectors ...string) string {
	for _, sel := range selectors {
		if v, ok := doc.Find(sel).First().Attr("content"); ok {
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		}
	}
	return ""
}
