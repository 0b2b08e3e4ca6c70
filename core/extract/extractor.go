// Package extract implements the Extractor interface for Telegraph pages.
// It locates the article header and content blocks and turns them into a
// core.Article:
//  1. Header: title (<h1>), author (<a>), publish time (<time>)
//  2. Content: image sources in document order, the origin link paragraph
package extract

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/aimerneige/telegraph2pdf/core"
)

const (
	headerSelector  = "header.tl_article_header"
	contentSelector = "article.tl_article_content#_tl_editor"

	// OriginMarker starts the paragraph that links back to the original post.
	OriginMarker = "Original link:"
)

// TelegraphExtractor parses Telegraph article markup.
type TelegraphExtractor struct {
	baseURL string
}

// New creates a TelegraphExtractor that resolves image sources against baseURL.
func New(baseURL string) *TelegraphExtractor {
	return &TelegraphExtractor{baseURL: strings.TrimSuffix(baseURL, "/")}
}

// Extract parses html into an Article. Missing header, title, timestamp or
// content block yields an error wrapping core.ErrParse.
func (e *TelegraphExtractor) Extract(html string, slug string) (*core.Article, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML for %s: %w", slug, err)
	}

	header := doc.Find(headerSelector).First()
	if header.Length() == 0 {
		return nil, parseErr(slug, headerSelector)
	}

	h1 := header.Find("h1").First()
	if h1.Length() == 0 {
		return nil, parseErr(slug, headerSelector+" h1")
	}

	article := &core.Article{
		Title: strings.TrimSpace(h1.Text()),
	}

	// Anonymous articles have no author anchor.
	if author := header.Find("a").First(); author.Length() > 0 {
		article.Author = strings.TrimSpace(author.Text())
		article.AuthorHref, _ = author.Attr("href")
	}

	published := header.Find("time").First()
	datetime, ok := published.Attr("datetime")
	if !ok {
		return nil, parseErr(slug, headerSelector+" time[datetime]")
	}
	article.DatetimeStr = datetime
	article.DateStr = strings.TrimSpace(published.Text())

	content := doc.Find(contentSelector).First()
	if content.Length() == 0 {
		return nil, parseErr(slug, contentSelector)
	}

	article.ImageURLs = e.imageURLs(content)
	article.OriginLink = originLink(content)

	if inner, err := content.Html(); err == nil {
		article.ContentHTML = inner
	}

	return article, nil
}

// imageURLs collects every <img> source in document order.
func (e *TelegraphExtractor) imageURLs(content *goquery.Selection) []string {
	urls := make([]string, 0)
	content.Find("img").Each(func(_ int, s *goquery.Selection) {
		src, exists := s.Attr("src")
		if !exists {
			return
		}
		urls = append(urls, e.resolve(strings.TrimSpace(src)))
	})
	return urls
}

// resolve prefixes a site-relative source with the base URL.
// Absolute sources are returned unchanged.
func (e *TelegraphExtractor) resolve(src string) string {
	if u, err := url.Parse(src); err == nil && u.IsAbs() {
		return src
	}
	if strings.HasPrefix(src, "//") {
		return "https:" + src
	}
	if !strings.HasPrefix(src, "/") {
		src = "/" + src
	}
	return e.baseURL + src
}

// originLink returns the href of the first anchor in the first paragraph
// starting with OriginMarker, or nil when there is none.
func originLink(content *goquery.Selection) *string {
	var link *string
	content.Find("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		if !strings.HasPrefix(strings.TrimSpace(p.Text()), OriginMarker) {
			return true
		}
		href, ok := p.Find("a[href]").First().Attr("href")
		if !ok {
			return true
		}
		link = &href
		return false
	})
	return link
}

func parseErr(slug, selector string) error {
	return fmt.Errorf("%w: %s: missing %s", core.ErrParse, slug, selector)
}
