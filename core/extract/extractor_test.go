package extract

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aimerneige/telegraph2pdf/core"
)

const base = "https://telegra.ph"

func page(header, content string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html><head><title>x</title></head><body>
<div class="tl_page">
%s
<article class="tl_article_content" id="_tl_editor">%s</article>
</div></body></html>`, header, content)
}

const header = `<header class="tl_article_header" dir="auto">
  <h1> Nukunuku Mini Holes </h1>
  <address><a rel="author" href="https://t.me/someone"> 某作者 </a><time datetime="2023-08-18T10:11:12+0000"> August 18, 2023 </time></address>
</header>`

func TestExtract_Header(t *testing.T) {
	a, err := New(base).Extract(page(header, `<p>hi</p>`), "Nukunuku-Mini-Holes-08-18")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if a.Title != "Nukunuku Mini Holes" {
		t.Errorf("Title = %q", a.Title)
	}
	if a.Author != "某作者" {
		t.Errorf("Author = %q", a.Author)
	}
	if a.AuthorHref != "https://t.me/someone" {
		t.Errorf("AuthorHref = %q", a.AuthorHref)
	}
	if a.DatetimeStr != "2023-08-18T10:11:12+0000" {
		t.Errorf("DatetimeStr = %q", a.DatetimeStr)
	}
	if a.DateStr != "August 18, 2023" {
		t.Errorf("DateStr = %q", a.DateStr)
	}
	if len(a.ImageURLs) != 0 {
		t.Errorf("ImageURLs = %v, want empty", a.ImageURLs)
	}
	if a.ImageURLs == nil {
		t.Error("ImageURLs should be an empty list, not nil")
	}
}

func TestExtract_ImagesInDocumentOrder(t *testing.T) {
	content := `
<figure><img src="/file/a.jpg"><figcaption></figcaption></figure>
<p>text</p>
<figure><img src=" /file/b.jpg "></figure>
<figure><div><img src="/file/c.jpg"></div></figure>`

	a, err := New(base+"/").Extract(page(header, content), "slug")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	want := []string{base + "/file/a.jpg", base + "/file/b.jpg", base + "/file/c.jpg"}
	if len(a.ImageURLs) != len(want) {
		t.Fatalf("got %d images, want %d: %v", len(a.ImageURLs), len(want), a.ImageURLs)
	}
	for i := range want {
		if a.ImageURLs[i] != want[i] {
			t.Errorf("ImageURLs[%d] = %q, want %q", i, a.ImageURLs[i], want[i])
		}
	}
}

func TestExtract_ImagesKeepDuplicatesAndAbsolute(t *testing.T) {
	content := `<img src="/file/a.jpg"><img src="https://cdn.example.com/x.png"><img src="/file/a.jpg"><img alt="no source">`

	a, err := New(base).Extract(page(header, content), "slug")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	want := []string{base + "/file/a.jpg", "https://cdn.example.com/x.png", base + "/file/a.jpg"}
	if len(a.ImageURLs) != len(want) {
		t.Fatalf("ImageURLs = %v, want %v", a.ImageURLs, want)
	}
	for i := range want {
		if a.ImageURLs[i] != want[i] {
			t.Errorf("ImageURLs[%d] = %q, want %q", i, a.ImageURLs[i], want[i])
		}
	}
}

func TestExtract_OriginLink(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string // empty means absent
	}{
		{
			name:    "single match",
			content: `<p>Original link: <a href="https://example.com/post">here</a></p>`,
			want:    "https://example.com/post",
		},
		{
			name: "first match wins",
			content: `<p>  Original link: <a href="https://first.example">1</a></p>
<p>Original link: <a href="https://second.example">2</a></p>`,
			want: "https://first.example",
		},
		{
			name: "match without anchor is skipped",
			content: `<p>Original link: lost</p>
<p>Original link: <a href="https://found.example">ok</a></p>`,
			want: "https://found.example",
		},
		{
			name:    "marker not at start",
			content: `<p>See the Original link: <a href="https://nope.example">x</a></p>`,
		},
		{
			name:    "no paragraphs",
			content: `<img src="/file/a.jpg">`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := New(base).Extract(page(header, tt.content), "slug")
			if err != nil {
				t.Fatalf("Extract: %v", err)
			}
			if tt.want == "" {
				if a.OriginLink != nil {
					t.Errorf("OriginLink = %q, want absent", *a.OriginLink)
				}
				if a.HasOriginLink() {
					t.Error("HasOriginLink() = true, want false")
				}
				return
			}
			if a.OriginLink == nil {
				t.Fatalf("OriginLink absent, want %q", tt.want)
			}
			if *a.OriginLink != tt.want {
				t.Errorf("OriginLink = %q, want %q", *a.OriginLink, tt.want)
			}
		})
	}
}

func TestExtract_AnonymousAuthor(t *testing.T) {
	anon := `<header class="tl_article_header"><h1>T</h1><address><time datetime="2024-01-01T00:00:00+0000">January 1, 2024</time></address></header>`

	a, err := New(base).Extract(page(anon, ""), "slug")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if a.Author != "" || a.AuthorHref != "" {
		t.Errorf("author = %q %q, want empty", a.Author, a.AuthorHref)
	}
}

func TestExtract_ParseFailures(t *testing.T) {
	tests := []struct {
		name string
		html string
	}{
		{"no header", page("", "<p>x</p>")},
		{"no title", page(`<header class="tl_article_header"><time datetime="d">d</time></header>`, "")},
		{"no time", page(`<header class="tl_article_header"><h1>T</h1></header>`, "")},
		{"no datetime attribute", page(`<header class="tl_article_header"><h1>T</h1><time>d</time></header>`, "")},
		{"no content", `<html><body>` + header + `<article class="other"></article></body></html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(base).Extract(tt.html, "slug")
			if !errors.Is(err, core.ErrParse) {
				t.Errorf("expected ErrParse, got %v", err)
			}
		})
	}
}
