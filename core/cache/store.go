// Package cache is the filename-keyed image cache.
// An entry is a plain file in the cache directory; its presence is the only
// state and means "already downloaded". Contents are never re-verified.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Store holds downloaded images under Dir.
type Store struct {
	Dir string

	// HashNames prefixes each name with a hash of the full URL so that
	// different URLs sharing a basename do not collide.
	HashNames bool
}

// New creates a Store rooted at dir, creating the directory if needed.
func New(dir string, hashNames bool) (*Store, error) {
	if dir == "" {
		return nil, errors.New("cache directory is required")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	return &Store{Dir: dir, HashNames: hashNames}, nil
}

// Name returns the cache key for an image URL: the final path segment,
// optionally hash-qualified.
func (s *Store) Name(rawURL string) (string, error) {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		p = u.Path
	}
	base := path.Base(p)
	if base == "." || base == "/" || base == "" {
		return "", fmt.Errorf("no file name in image URL %q", rawURL)
	}
	base = sanitize(base)

	if !s.HashNames {
		return base, nil
	}
	sum := sha256.Sum256([]byte(rawURL))
	return hex.EncodeToString(sum[:])[:12] + "-" + base, nil
}

// Path returns the on-disk location of the entry called name.
func (s *Store) Path(name string) string {
	return filepath.Join(s.Dir, name)
}

// Has reports whether the entry exists.
func (s *Store) Has(name string) (bool, error) {
	_, err := os.Stat(s.Path(name))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("checking cache entry %s: %w", name, err)
}

// Put streams r into the entry called name and returns the bytes written.
// Data lands in a temp file first, so a failed download never leaves an
// entry behind.
func (s *Store) Put(name string, r io.Reader) (int64, error) {
	tmp, err := os.CreateTemp(s.Dir, "."+name+".*.part")
	if err != nil {
		return 0, fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	n, err := io.Copy(tmp, r)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmpName)
		return n, fmt.Errorf("writing cache entry %s: %w", name, err)
	}

	if err := os.Rename(tmpName, s.Path(name)); err != nil {
		os.Remove(tmpName)
		return n, fmt.Errorf("committing cache entry %s: %w", name, err)
	}
	return n, nil
}

// Remove deletes the named entries. Entries that are already gone are skipped.
func (s *Store) Remove(names ...string) error {
	var errs []error
	for _, name := range names {
		err := os.Remove(s.Path(name))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, fmt.Errorf("removing cache entry %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// sanitize keeps a name inside the cache directory.
func sanitize(name string) string {
	name = strings.ReplaceAll(name, string(filepath.Separator), "_")
	if name == ".." {
		return "_"
	}
	return name
}
