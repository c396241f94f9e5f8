package pipeline

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/jappaper/pkg/cache"
	"github.com/matzehuels/jappaper/pkg/layout"
	"github.com/matzehuels/jappaper/pkg/observability"
	"github.com/matzehuels/jappaper/pkg/template"
	"github.com/matzehuels/jappaper/pkg/trace"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different documents.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs layout → render for doc. doc is not modified.
func (r *Runner) Execute(ctx context.Context, doc *template.Document, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	layoutStart := time.Now()
	p, err := Layout(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	hash, err := GeometryHash(doc)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Page = p
	result.PageHash = hash
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Cells = len(p.VisibleEntries())

	r.Logger.Debug("computed layout",
		"page", p.Size,
		"cells", result.Stats.Cells,
		"duration", result.Stats.LayoutTime)

	renderStart := time.Now()
	artifacts, hits, err := r.RenderWithCacheInfo(ctx, p, hash, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.Hits = hits
	result.CacheInfo.RenderHit = len(hits) == len(artifacts)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", len(hits),
		"duration", result.Stats.RenderTime)

	return result, nil
}

// RenderWithCacheInfo renders every requested format of p concurrently. Each
// format is looked up in the cache under pageHash first. It returns the
// artifacts and the formats that were cache hits.
//
// Cache failures are logged and treated as misses. A render failure cancels
// the remaining formats and is returned.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, p layout.Page, pageHash string, opts Options) (map[string][]byte, []string, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, nil, err
	}

	formats := slices.Compact(slices.Sorted(slices.Values(opts.Formats)))
	observability.Pipeline().OnRenderStart(ctx, formats)
	start := time.Now()

	var (
		mu        sync.Mutex
		artifacts = make(map[string][]byte, len(formats))
		hits      []string
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, format := range formats {
		g.Go(func() error {
			key := r.Keyer.ArtifactKey(pageHash, opts.ArtifactKeyOpts(format))

			data, hit := r.lookup(gctx, key)
			if !hit {
				var err error
				data, err = Render(gctx, p, format, opts)
				if err != nil {
					return err
				}
				r.store(gctx, key, data)
			}

			mu.Lock()
			defer mu.Unlock()
			artifacts[format] = data
			if hit {
				hits = append(hits, format)
			}
			return nil
		})
	}
	err := g.Wait()
	observability.Pipeline().OnRenderComplete(ctx, formats, time.Since(start), err)
	if err != nil {
		return nil, nil, err
	}

	slices.Sort(hits)
	return artifacts, hits, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Render(ctx context.Context, p layout.Page, pageHash string, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, p, pageHash, opts)
	return artifacts, err
}

func (r *Runner) lookup(ctx context.Context, key string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "error", err)
		return nil, false
	}
	if hit {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return data, true
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")
	return nil, false
}

func (r *Runner) store(ctx context.Context, key string, data []byte) {
	if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
		r.Logger.Warn("cache write failed", "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "artifact", len(data))
}

// Import applies a bulk character import to doc in place. On error doc is
// unchanged.
func (r *Runner) Import(ctx context.Context, doc *template.Document, data []byte) (trace.Result, error) {
	observability.Pipeline().OnImportStart(ctx, len(data))
	start := time.Now()

	res, err := trace.Import(doc.CellMap(), doc.GridSize(), data)
	observability.Pipeline().OnImportComplete(ctx, res.Applied, res.Skipped, time.Since(start), err)
	if err != nil {
		return trace.Result{}, err
	}
	doc.ApplyImport(res)

	r.Logger.Info("imported characters",
		"applied", res.Applied,
		"skipped", res.Skipped,
		"rows", res.Grid.Rows,
		"cols", res.Grid.Cols)
	return res, nil
}

// Generate fills doc's page with a generated grid in place.
func (r *Runner) Generate(doc *template.Document, cfg trace.GeneratorConfig) trace.Generated {
	gen := trace.Generate(doc.Dimensions(), cfg)
	doc.ApplyGenerated(gen)
	r.Logger.Info("generated grid",
		"rows", gen.Grid.Rows,
		"cols", gen.Grid.Cols,
		"cells", len(gen.Cells))
	return gen
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
