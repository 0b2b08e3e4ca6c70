// Package output handles file naming and writing for telegraph2pdf.
// Every artifact of an article is named after its slug:
// {sidecar_dir}/{slug}.json, {sidecar_dir}/{slug}.md and {output_dir}/{slug}.pdf.
package output

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// Writer writes article artifacts to disk.
type Writer struct {
	OutputDir  string
	SidecarDir string
}

// New creates a Writer targeting the given directories.
// If outputDir is empty, it defaults to the current working directory.
// If sidecarDir is empty, sidecars live next to the output documents.
func New(outputDir, sidecarDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}
	if sidecarDir == "" {
		sidecarDir = outputDir
	}

	for _, dir := range []string{outputDir, sidecarDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	return &Writer{OutputDir: outputDir, SidecarDir: sidecarDir}, nil
}

// SidecarPath returns where the JSON record of slug is stored.
func (w *Writer) SidecarPath(slug string) string {
	return filepath.Join(w.SidecarDir, FileName(slug)+".json")
}

// DocumentPath returns where the output document of slug is stored.
func (w *Writer) DocumentPath(slug, ext string) string {
	return filepath.Join(w.OutputDir, FileName(slug)+ext)
}

// HasSidecar reports whether slug was already extracted.
func (w *Writer) HasSidecar(slug string) (bool, error) {
	_, err := os.Stat(w.SidecarPath(slug))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("checking sidecar for %s: %w", slug, err)
}

// WriteDocument writes the assembled document of slug.
func (w *Writer) WriteDocument(slug string, data []byte, ext string) (string, error) {
	return writeFile(w.DocumentPath(slug, ext), data)
}

// WriteMarkdown writes the Markdown export of slug next to its sidecar.
func (w *Writer) WriteMarkdown(slug string, data []byte) (string, error) {
	return writeFile(filepath.Join(w.SidecarDir, FileName(slug)+".md"), data)
}

func writeFile(path string, data []byte) (string, error) {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// FileName turns a slug into a flat file name. Letters of any script,
// digits, '-', '_' and '.' are kept; everything else becomes '_'.
func FileName(slug string) string {
	slug = strings.Trim(slug, "/")
	var b strings.Builder
	for _, ch := range slug {
		if unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '-' || ch == '_' || ch == '.' {
			b.WriteRune(ch)
		} else {
			b.WriteRune('_')
		}
	}
	name := b.String()
	if name == "" || strings.Trim(name, ".") == "" {
		return "_"
	}
	return name
}
