package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sketchnote/pkg/cache"
	"github.com/matzehuels/sketchnote/pkg/observability"
	"github.com/matzehuels/sketchnote/pkg/sheet"
)

// Runner encapsulates export execution with caching.
// Both the CLI and the HTTP server use it.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can use the same Runner as long as each exports its own sheet.
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

// Export renders s in every requested format, serving unchanged artifacts
// from the cache.
func (r *Runner) Export(ctx context.Context, s *sheet.Sheet, opts Options) (result *Result, err error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	start := time.Now()
	observability.Export().OnExportStart(ctx, opts.Formats, s.Len())
	defer func() {
		observability.Export().OnExportComplete(ctx, opts.Formats, time.Since(start), err)
	}()

	doc, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("serialize sheet for cache key: %w", err)
	}
	result = &Result{
		SheetHash: cache.Hash(doc),
		Artifacts: make(map[string][]byte, len(opts.Formats)),
		Stats:     Stats{Strokes: s.Len()},
	}

	var missing []string
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !opts.Refresh {
			key := r.Keyer.ArtifactKey(result.SheetHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil {
				r.Logger.Warn("cache read failed", "format", format, "err", err)
			}
			if err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				result.Artifacts[format] = data
				result.CacheInfo.Hits = append(result.CacheInfo.Hits, format)
				continue
			}
			observability.Cache().OnCacheMiss(ctx, "artifact")
		}
		missing = append(missing, format)
	}
	result.CacheInfo.RenderHit = len(missing) == 0

	if len(missing) > 0 {
		renderStart := time.Now()
		rendered, err := Render(s, missing, opts.Scale)
		if err != nil {
			return nil, err
		}
		result.Stats.RenderTime = time.Since(renderStart)

		for format, data := range rendered {
			result.Artifacts[format] = data
			key := r.Keyer.ArtifactKey(result.SheetHash, opts.ArtifactKeyOpts(format))
			err := cache.RetryWithBackoff(ctx, func() error {
				return r.Cache.Set(ctx, key, data, cache.ArtifactTTL)
			})
			if err != nil {
				r.Logger.Warn("cache write failed", "format", format, "err", err)
				continue
			}
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	opts.Logger.Info("exported sheet",
		"formats", opts.Formats,
		"strokes", result.Stats.Strokes,
		"cached", len(result.CacheInfo.Hits),
		"duration", time.Since(start))
	return result, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
