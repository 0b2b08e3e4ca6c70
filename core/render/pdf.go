// Package render — PDF assembler.
// Merges the cached images of an article into one PDF using gofpdf.
// Every image becomes its own page, sized to the image at a fixed DPI.
// Images are flattened onto white and re-encoded as RGB JPEG first, so the
// document has a single color mode regardless of the source formats.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"os"
	"time"

	"github.com/aimerneige/telegraph2pdf/core"
	"github.com/aimerneige/telegraph2pdf/core/cache"
	"github.com/jung-kurt/gofpdf"
	_ "golang.org/x/image/webp"
)

const (
	DefaultDPI  = 100.0
	jpegQuality = 95
	creator     = "telegraph2pdf"
)

// telegraphTimeLayouts are the datetime attribute formats seen on Telegraph.
var telegraphTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
}

// PDFAssembler renders cached images as a multi-page PDF.
type PDFAssembler struct {
	store *cache.Store
	dpi   float64
}

// NewPDFAssembler creates a PDFAssembler reading images from store.
// A non-positive dpi falls back to DefaultDPI.
func NewPDFAssembler(store *cache.Store, dpi float64) *PDFAssembler {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return &PDFAssembler{store: store, dpi: dpi}
}

// Assemble opens the cached file of every URL in order and writes one page
// per image. The first image starts the document and the rest follow.
func (r *PDFAssembler) Assemble(imageURLs []string, article *core.Article) ([]byte, error) {
	if len(imageURLs) == 0 {
		return nil, core.ErrNoImages
	}

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	r.setInfo(pdf, article)

	for i, imageURL := range imageURLs {
		img, err := r.load(imageURL)
		if err != nil {
			return nil, err
		}

		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return nil, fmt.Errorf("encoding page %d: %w", i+1, err)
		}

		bounds := img.Bounds()
		w := r.points(bounds.Dx())
		h := r.points(bounds.Dy())

		name := fmt.Sprintf("page-%d", i+1)
		opts := gofpdf.ImageOptions{ImageType: "JPG"}
		pdf.RegisterImageOptionsReader(name, opts, &buf)
		pdf.AddPageFormat("P", gofpdf.SizeType{Wd: w, Ht: h})
		pdf.ImageOptions(name, 0, 0, w, h, false, opts, 0, "")

		if err := pdf.Error(); err != nil {
			return nil, fmt.Errorf("adding page %d: %w", i+1, err)
		}
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return out.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFAssembler) Extension() string {
	return ".pdf"
}

// load reads the cache entry for imageURL and normalizes it to opaque RGB.
func (r *PDFAssembler) load(imageURL string) (image.Image, error) {
	name, err := r.store.Name(imageURL)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(r.store.Path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &core.CacheMissError{URL: imageURL, Name: name}
		}
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return toRGB(src), nil
}

// points converts a pixel length to PDF points at the assembler's DPI.
func (r *PDFAssembler) points(px int) float64 {
	return float64(px) * 72 / r.dpi
}

func (r *PDFAssembler) setInfo(pdf *gofpdf.Fpdf, article *core.Article) {
	pdf.SetCreator(creator, true)
	if article == nil {
		return
	}
	pdf.SetTitle(article.Title, true)
	pdf.SetAuthor(article.Author, true)
	if article.HasOriginLink() {
		pdf.SetSubject(*article.OriginLink, true)
	}
	if t, ok := ParseTimestamp(article.DatetimeStr); ok {
		pdf.SetCreationDate(t)
	}
}

// toRGB draws src over a white background, dropping any alpha channel.
func toRGB(src image.Image) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Over)
	return dst
}

// ParseTimestamp parses a Telegraph datetime attribute.
func ParseTimestamp(s string) (time.Time, bool) {
	for _, layout := range telegraphTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
