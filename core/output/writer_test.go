package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aimerneige/telegraph2pdf/core"
)

func TestFileName(t *testing.T) {
	tests := []struct {
		slug string
		want string
	}{
		{"Nukunuku-Mini-Holes-08-18", "Nukunuku-Mini-Holes-08-18"},
		{"/Some/Nested/", "Some_Nested"},
		{"Привет-мир-01-02", "Привет-мир-01-02"},
		{"a b?c", "a_b_c"},
		{"..", "_"},
		{"", "_"},
	}
	for _, tt := range tests {
		if got := FileName(tt.slug); got != tt.want {
			t.Errorf("FileName(%q) = %q, want %q", tt.slug, got, tt.want)
		}
	}
}

func TestSidecar_RoundTrip(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "out"), "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	origin := "https://example.com/a?x=1&y=2"
	article := &core.Article{
		Title:       "ぬくぬく <mini>",
		Author:      "作者",
		AuthorHref:  "https://t.me/author",
		DatetimeStr: "2023-08-18T10:11:12+0000",
		DateStr:     "August 18, 2023",
		ImageURLs:   []string{"https://telegra.ph/file/a.jpg", "https://telegra.ph/file/b.jpg"},
		OriginLink:  &origin,
		ContentHTML: "<p>not persisted</p>",
	}

	ok, err := w.HasSidecar("slug")
	if err != nil || ok {
		t.Fatalf("HasSidecar before write = %v, %v", ok, err)
	}

	path, err := w.WriteSidecar("slug", article)
	if err != nil {
		t.Fatalf("WriteSidecar: %v", err)
	}
	if path != filepath.Join(w.SidecarDir, "slug.json") {
		t.Errorf("path = %q", path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(raw)
	for _, want := range []string{
		`"title": "ぬくぬく <mini>"`,
		`"origin_link": "https://example.com/a?x=1&y=2"`,
		"\n    \"author\": \"作者\"",
		`"img_url_list": [`,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("sidecar missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "not persisted") {
		t.Error("content HTML leaked into the sidecar")
	}

	ok, err = w.HasSidecar("slug")
	if err != nil || !ok {
		t.Fatalf("HasSidecar after write = %v, %v", ok, err)
	}

	got, err := w.ReadSidecar("slug")
	if err != nil {
		t.Fatalf("ReadSidecar: %v", err)
	}
	if got.Title != article.Title || got.Author != article.Author || got.DateStr != article.DateStr {
		t.Errorf("header fields differ: %+v", got)
	}
	if len(got.ImageURLs) != 2 || got.ImageURLs[1] != "https://telegra.ph/file/b.jpg" {
		t.Errorf("ImageURLs = %v", got.ImageURLs)
	}
	if got.OriginLink == nil || *got.OriginLink != origin {
		t.Errorf("OriginLink = %v", got.OriginLink)
	}
}

func TestSidecar_AbsentOriginIsNull(t *testing.T) {
	data, err := EncodeSidecar(&core.Article{Title: "t"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"origin_link": null`) {
		t.Errorf("expected null origin_link:\n%s", data)
	}
	if !strings.Contains(string(data), `"img_url_list": []`) {
		t.Errorf("expected empty image list:\n%s", data)
	}

	got, err := DecodeSidecar(data)
	if err != nil {
		t.Fatal(err)
	}
	if got.OriginLink != nil {
		t.Errorf("OriginLink = %q, want nil", *got.OriginLink)
	}
}

func TestSidecar_LegacyURLListKey(t *testing.T) {
	legacy := `{
    "title": "old",
    "author": "a",
    "author_href": "h",
    "datetime_str": "2023-08-18T10:11:12+0000",
    "date_str": "August 18, 2023",
    "url_list": ["https://telegra.ph/file/x.jpg"],
    "origin_link": "https://example.com"
}`
	got, err := DecodeSidecar([]byte(legacy))
	if err != nil {
		t.Fatalf("DecodeSidecar: %v", err)
	}
	if len(got.ImageURLs) != 1 || got.ImageURLs[0] != "https://telegra.ph/file/x.jpg" {
		t.Errorf("ImageURLs = %v", got.ImageURLs)
	}
}

func TestWriteDocumentAndMarkdown(t *testing.T) {
	out := t.TempDir()
	side := filepath.Join(t.TempDir(), "meta")
	w, err := New(out, side)
	if err != nil {
		t.Fatal(err)
	}

	pdfPath, err := w.WriteDocument("slug", []byte("%PDF-1.3"), ".pdf")
	if err != nil {
		t.Fatal(err)
	}
	if pdfPath != filepath.Join(out, "slug.pdf") {
		t.Errorf("pdf path = %q", pdfPath)
	}

	mdPath, err := w.WriteMarkdown("slug", []byte("# x"))
	if err != nil {
		t.Fatal(err)
	}
	if mdPath != filepath.Join(side, "slug.md") {
		t.Errorf("markdown path = %q", mdPath)
	}
}
