// Package core defines the pipeline types and interfaces for telegraph2pdf.
// Each stage of the pipeline is a clean, testable interface.
package core

import (
	"context"
	"io"
)

// FetchResult holds the decoded HTML and response metadata from a fetch.
type FetchResult struct {
	URL        string
	StatusCode int
	HTML       string
}

// Article is the structured record extracted from one article page.
// It is never mutated after extraction and is persisted verbatim as the
// JSON sidecar.
type Article struct {
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	AuthorHref  string   `json:"author_href"`
	DatetimeStr string   `json:"datetime_str"` // ISO8601
	DateStr     string   `json:"date_str"`
	ImageURLs   []string `json:"img_url_list"`
	OriginLink  *string  `json:"origin_link"`

	// ContentHTML is the content block markup. Only set on a fresh
	// extraction; it is not part of the sidecar.
	ContentHTML string `json:"-"`
}

// HasOriginLink reports whether an origin link was found.
func (a *Article) HasOriginLink() bool {
	return a.OriginLink != nil && *a.OriginLink != ""
}

// Fetcher retrieves pages and binary payloads over HTTP.
type Fetcher interface {
	// Fetch returns the body of url decoded to UTF-8.
	Fetch(ctx context.Context, url string) (*FetchResult, error)
	// Open returns the raw body of url. The caller closes it.
	Open(ctx context.Context, url string) (io.ReadCloser, error)
}

// Extractor parses an article page into an Article.
type Extractor interface {
	Extract(html string, slug string) (*Article, error)
}

// Normalizer converts cleaned HTML into Markdown.
type Normalizer interface {
	Normalize(html string) (string, error)
}

// Assembler merges the cached images of an article into one document.
type Assembler interface {
	Assemble(imageURLs []string, article *Article) ([]byte, error)
	// Extension returns the file extension for this assembler (e.g. ".pdf").
	Extension() string
}
