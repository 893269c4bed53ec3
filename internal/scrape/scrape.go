// Package scrape extracts link-preview metadata (title, image, description)
// from recipe pages, preferring Open-Graph tags over raw HTML structure.
package scrape

import (
	"context"
	"log"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mkoda/recipe-collector/internal/fetch"
	"github.com/mkoda/recipe-collector/internal/types"
)

// acceptHeader mirrors what a browser sends for a page navigation.
const acceptHeader = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"

// acceptLanguage hints the preferred page language for multilingual sites.
const acceptLanguage = "en-US,en;q=0.9"

// Scraper fetches a URL and extracts its page metadata.
type Scraper struct {
	opts *fetch.Options
}

// New returns a Scraper with browser-like request headers.
func New() *Scraper {
	opts := fetch.DefaultOptions()
	opts.Headers = map[string]string{
		"Accept":          acceptHeader,
		"Accept-Language": acceptLanguage,
	}
	return &Scraper{opts: opts}
}

// Scrape fetches url and returns its metadata, or nil when the page cannot
// be scraped. A missing title means the scrape failed; image and description
// are optional. Scrape never returns an error: every failure is logged and
// reported as nil.
func (s *Scraper) Scrape(ctx context.Context, urlStr string) *types.ScrapedMetadata {
	result, err := fetch.URL(ctx, urlStr, s.opts)
	if err != nil {
		log.Printf("Scrape failed for %s: %v", urlStr, err)
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(result.HTML))
	if err != nil {
		log.Printf("Failed to parse HTML for %s: %v", urlStr, err)
		return nil
	}

	title := extractTitle(doc)
	if title == "" {
		log.Printf("Title not found: %s", urlStr)
		return nil
	}

	meta := &types.ScrapedMetadata{Title: title}
	if image := extractImageURL(doc, urlStr); image != "" {
		meta.ImageURL = &image
	}
	if description := extractDescription(doc); description != "" {
		meta.Description = &description
	}
	return meta
}

// extractTitle resolves the page title: og:title, then twitter:title, then
// the <title> element.
func extractTitle(doc *goquery.Document) string {
	if v := metaContent(doc, `meta[property="og:title"]`); v != "" {
		return v
	}
	if v := metaContent(doc, `meta[name="twitter:title"]`); v != "" {
		return v
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// extractImageURL resolves the preview image: og:image, then twitter:image.
// Relative references are resolved against the page URL; references that
// cannot be resolved are passed through unchanged.
func extractImageURL(doc *goquery.Document, baseURL string) string {
	if v := metaContent(doc, `meta[property="og:image"]`); v != "" {
		return resolveURL(v, baseURL)
	}
	if v := metaContent(doc, `meta[name="twitter:image"]`); v != "" {
		return resolveURL(v, baseURL)
	}
	return ""
}

// extractDescription resolves the description: og:description, then the
// generic description meta tag.
func extractDescription(doc *goquery.Document) string {
	if v := metaContent(doc, `meta[property="og:description"]`); v != "" {
		return v
	}
	return metaContent(doc, `meta[name="description"]`)
}

// metaContent returns the trimmed content attribute of the first matching
// meta tag. The HTML parser handles attribute ordering and entity decoding.
func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(content)
}

// resolveURL converts a possibly relative reference to an absolute URL.
func resolveURL(ref, baseURL string) string {
	base, err := url.Parse(baseURL)
	if err != nil {
		return ref
	}
	resolved, err := base.Parse(ref)
	if err != nil {
		return ref
	}
	return resolved.String()
}
