package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aimerneige/telegraph2pdf/core"
)

// sidecarIndent matches the layout of sidecars written by earlier versions.
const sidecarIndent = "    "

// sidecarFile is the on-disk shape of a sidecar. Older files name the image
// list "url_list"; both keys are read, only "img_url_list" is written.
type sidecarFile struct {
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	AuthorHref  string   `json:"author_href"`
	DatetimeStr string   `json:"datetime_str"`
	DateStr     string   `json:"date_str"`
	ImageURLs   []string `json:"img_url_list,omitempty"`
	URLList     []string `json:"url_list,omitempty"`
	OriginLink  *string  `json:"origin_link"`
}

// EncodeSidecar renders article as pretty-printed JSON. Non-ASCII and HTML
// characters are written literally.
func EncodeSidecar(article *core.Article) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", sidecarIndent)

	rec := *article
	if rec.ImageURLs == nil {
		rec.ImageURLs = []string{}
	}
	if err := enc.Encode(&rec); err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeSidecar parses a sidecar written by EncodeSidecar or by an older
// version using the "url_list" key.
func DecodeSidecar(data []byte) (*core.Article, error) {
	var f sidecarFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("unmarshaling JSON: %w", err)
	}

	urls := f.ImageURLs
	if urls == nil {
		urls = f.URLList
	}
	if urls == nil {
		urls = []string{}
	}

	return &core.Article{
		Title:       f.Title,
		Author:      f.Author,
		AuthorHref:  f.AuthorHref,
		DatetimeStr: f.DatetimeStr,
		DateStr:     f.DateStr,
		ImageURLs:   urls,
		OriginLink:  f.OriginLink,
	}, nil
}

// WriteSidecar persists the record of slug and returns its path.
func (w *Writer) WriteSidecar(slug string, article *core.Article) (string, error) {
	data, err := EncodeSidecar(article)
	if err != nil {
		return "", err
	}
	return writeFile(w.SidecarPath(slug), data)
}

// ReadSidecar loads the record of slug.
func (w *Writer) ReadSidecar(slug string) (*core.Article, error) {
	path := w.SidecarPath(slug)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sidecar: %w", err)
	}
	article, err := DecodeSidecar(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return article, nil
}
