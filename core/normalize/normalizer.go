// Package normalize implements the Normalizer interface.
// It converts the article content block into Markdown for the optional
// Markdown export written next to the sidecar.
package normalize

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
)

// MarkdownNormalizer converts HTML to Markdown using html-to-markdown.
type MarkdownNormalizer struct {
	baseURL string
}

// New creates a MarkdownNormalizer. Relative links and image sources are
// resolved against baseURL.
func New(baseURL string) *MarkdownNormalizer {
	return &MarkdownNormalizer{baseURL: strings.TrimSuffix(baseURL, "/")}
}

// Normalize converts a content HTML fragment into Markdown.
func (n *MarkdownNormalizer) Normalize(html string) (string, error) {
	markdown, err := htmltomarkdown.ConvertString(html, converter.WithDomain(n.baseURL))
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return markdown, nil
}
