package render

import (
	"fmt"
	"strings"

	"github.com/aimerneige/telegraph2pdf/core"
)

// MarkdownRenderer builds the Markdown export of an article: a short header
// from the record followed by the normalized content.
type MarkdownRenderer struct {
	normalizer core.Normalizer
}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer(normalizer core.Normalizer) *MarkdownRenderer {
	return &MarkdownRenderer{normalizer: normalizer}
}

// Render returns the Markdown document for article. The article must come
// from a fresh extraction, since the sidecar does not keep the content block.
func (r *MarkdownRenderer) Render(article *core.Article) ([]byte, error) {
	if article.ContentHTML == "" {
		return nil, fmt.Errorf("no content to render for %q", article.Title)
	}
	body, err := r.normalizer.Normalize(article.ContentHTML)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", article.Title)
	switch {
	case article.Author != "" && article.AuthorHref != "":
		fmt.Fprintf(&b, "[%s](%s)", article.Author, article.AuthorHref)
	case article.Author != "":
		b.WriteString(article.Author)
	}
	if article.DateStr != "" {
		if article.Author != "" {
			b.WriteString(" · ")
		}
		b.WriteString(article.DateStr)
	}
	b.WriteString("\n\n")
	if article.HasOriginLink() {
		fmt.Fprintf(&b, "Source: <%s>\n\n", *article.OriginLink)
	}
	b.WriteString(strings.TrimSpace(body))
	b.WriteString("\n")

	return []byte(b.String()), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}
