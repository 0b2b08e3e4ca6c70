// Package pipeline sequences the stages for each article:
// extract (or load the sidecar) → download images → assemble → write.
//
// Everything runs sequentially. The first error aborts the run; cache
// entries downloaded before the failure are kept.
package pipeline

import (
	"context"
	"fmt"

	"github.com/aimerneige/telegraph2pdf/config"
	"github.com/aimerneige/telegraph2pdf/core"
	"github.com/aimerneige/telegraph2pdf/core/cache"
	"github.com/aimerneige/telegraph2pdf/core/download"
	"github.com/aimerneige/telegraph2pdf/core/extract"
	"github.com/aimerneige/telegraph2pdf/core/fetch"
	"github.com/aimerneige/telegraph2pdf/core/normalize"
	"github.com/aimerneige/telegraph2pdf/core/output"
	"github.com/aimerneige/telegraph2pdf/core/render"
	"github.com/aimerneige/telegraph2pdf/logger"
	"github.com/aimerneige/telegraph2pdf/slugs"
)

// Result reports what Process did for one article.
type Result struct {
	Slug         string
	Skipped      bool // sidecar already existed, page not fetched
	SidecarPath  string
	MarkdownPath string
	DocumentPath string
	Pages        int
	Downloaded   int
	CacheCleared bool
}

// Pipeline holds the configured stages.
type Pipeline struct {
	cfg        *config.Config
	fetcher    core.Fetcher
	extractor  core.Extractor
	store      *cache.Store
	downloader *download.Downloader
	assembler  core.Assembler
	markdown   *render.MarkdownRenderer
	writer     *output.Writer
	log        *logger.Logger
}

// New wires the default stages from cfg.
func New(cfg *config.Config, log *logger.Logger) (*Pipeline, error) {
	fetcher := fetch.New(
		fetch.WithTimeout(cfg.Timeout),
		fetch.WithUserAgent(cfg.UserAgent),
	)
	return NewWithFetcher(cfg, fetcher, log)
}

// NewWithFetcher is New with an injected Fetcher.
func NewWithFetcher(cfg *config.Config, fetcher core.Fetcher, log *logger.Logger) (*Pipeline, error) {
	store, err := cache.New(cfg.CacheDir, cfg.HashNames)
	if err != nil {
		return nil, err
	}
	writer, err := output.New(cfg.OutputDir, cfg.SidecarDir)
	if err != nil {
		return nil, fmt.Errorf("initializing output writer: %w", err)
	}

	p := &Pipeline{
		cfg:        cfg,
		fetcher:    fetcher,
		extractor:  extract.New(cfg.BaseURL),
		store:      store,
		downloader: download.New(fetcher, store, log),
		assembler:  render.NewPDFAssembler(store, cfg.DPI),
		writer:     writer,
		log:        log,
	}
	if cfg.Markdown {
		p.markdown = render.NewMarkdownRenderer(normalize.New(cfg.BaseURL))
	}
	return p, nil
}

// Run processes every configured slug in order and stops at the first error.
func (p *Pipeline) Run(ctx context.Context) ([]*Result, error) {
	queue, err := slugs.Collect(p.cfg.Slugs, p.cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	results := make([]*Result, 0, len(queue))
	for i, slug := range queue {
		p.log.Info(fmt.Sprintf("[%d/%d] processing", i+1, len(queue)), "slug", slug)
		res, err := p.Process(ctx, slug)
		if err != nil {
			return results, fmt.Errorf("%s: %w", slug, err)
		}
		results = append(results, res)
	}
	return results, nil
}

// Process runs one article through the pipeline.
func (p *Pipeline) Process(ctx context.Context, slug string) (*Result, error) {
	log := p.log.With("slug", slug)
	res := &Result{Slug: slug, SidecarPath: p.writer.SidecarPath(slug)}

	article, err := p.article(ctx, slug, res, log)
	if err != nil {
		return nil, err
	}

	downloads, err := p.downloader.EnsureAll(ctx, article.ImageURLs)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	for _, d := range downloads {
		if d.Downloaded {
			res.Downloaded++
		}
	}

	data, err := p.assembler.Assemble(article.ImageURLs, article)
	if err != nil {
		return nil, fmt.Errorf("assemble: %w", err)
	}
	res.Pages = len(article.ImageURLs)

	res.DocumentPath, err = p.writer.WriteDocument(slug, data, p.assembler.Extension())
	if err != nil {
		return nil, err
	}
	log.Info("document written", "path", res.DocumentPath, "pages", res.Pages)

	if p.cfg.ClearCache {
		if err := p.clearCache(downloads); err != nil {
			return nil, err
		}
		res.CacheCleared = true
		log.Debug("cache cleared", "entries", len(downloads))
	}
	return res, nil
}

// article loads the sidecar when present; otherwise it fetches and extracts
// the page and persists the record.
func (p *Pipeline) article(ctx context.Context, slug string, res *Result, log *logger.Logger) (*core.Article, error) {
	extracted, err := p.writer.HasSidecar(slug)
	if err != nil {
		return nil, err
	}
	if extracted {
		log.Info("sidecar found, skipping extraction", "path", res.SidecarPath)
		res.Skipped = true
		return p.writer.ReadSidecar(slug)
	}

	page, err := p.fetcher.Fetch(ctx, p.cfg.ArticleURL(slug))
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	article, err := p.extractor.Extract(page.HTML, slug)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	if !article.HasOriginLink() {
		log.Warn("no origin link found")
	}
	log.Info("extracted", "title", article.Title, "images", len(article.ImageURLs))

	if _, err := p.writer.WriteSidecar(slug, article); err != nil {
		return nil, err
	}

	if p.markdown != nil {
		md, err := p.markdown.Render(article)
		if err != nil {
			return nil, fmt.Errorf("markdown: %w", err)
		}
		if res.MarkdownPath, err = p.writer.WriteMarkdown(slug, md); err != nil {
			return nil, err
		}
	}
	return article, nil
}

func (p *Pipeline) clearCache(downloads []*download.Result) error {
	names := make([]string, 0, len(downloads))
	for _, d := range downloads {
		names = append(names, d.Name)
	}
	if err := p.store.Remove(names...); err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}
	return nil
}
