// Package download makes sure every image of an article is in the cache.
package download

import (
	"context"
	"fmt"

	"github.com/aimerneige/telegraph2pdf/core"
	"github.com/aimerneige/telegraph2pdf/core/cache"
	"github.com/aimerneige/telegraph2pdf/logger"
	"github.com/dustin/go-humanize"
)

// Result describes one Ensure call.
type Result struct {
	URL        string
	Name       string
	Path       string
	Downloaded bool // false when the entry was already cached
	Bytes      int64
}

// Downloader fetches images into a cache.Store.
type Downloader struct {
	fetcher core.Fetcher
	store   *cache.Store
	log     *logger.Logger
}

// New creates a Downloader.
func New(fetcher core.Fetcher, store *cache.Store, log *logger.Logger) *Downloader {
	return &Downloader{fetcher: fetcher, store: store, log: log}
}

// Ensure makes the image at url present in the cache, fetching it only when
// no entry with its name exists yet. An existing entry is left untouched.
func (d *Downloader) Ensure(ctx context.Context, url string) (*Result, error) {
	name, err := d.store.Name(url)
	if err != nil {
		return nil, err
	}
	res := &Result{URL: url, Name: name, Path: d.store.Path(name)}

	cached, err := d.store.Has(name)
	if err != nil {
		return nil, err
	}
	if cached {
		d.log.Debug("image already cached", "name", name)
		return res, nil
	}

	body, err := d.fetcher.Open(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("downloading %s: %w", url, err)
	}
	defer body.Close()

	n, err := d.store.Put(name, body)
	if err != nil {
		return nil, err
	}
	res.Downloaded = true
	res.Bytes = n
	return res, nil
}

// EnsureAll runs Ensure for each url in order and logs progress. It stops at
// the first failure.
func (d *Downloader) EnsureAll(ctx context.Context, urls []string) ([]*Result, error) {
	results := make([]*Result, 0, len(urls))
	for i, url := range urls {
		res, err := d.Ensure(ctx, url)
		if err != nil {
			return results, err
		}
		if res.Downloaded {
			d.log.Info(fmt.Sprintf("[%d/%d] downloaded", i+1, len(urls)),
				"name", res.Name, "size", humanize.Bytes(uint64(res.Bytes)))
		} else {
			d.log.Info(fmt.Sprintf("[%d/%d] cached", i+1, len(urls)), "name", res.Name)
		}
		results = append(results, res)
	}
	return results, nil
}
