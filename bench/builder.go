package bench

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/syssam/modbench/graph"
)

// IndexFile is the name of the page linking all benchmarks.
const IndexFile = "index.html"

// Builder writes the benchmark pages and the index for an exported tree.
type Builder struct {
	target     string
	renderer   *Renderer
	strategies []Strategy
	preload    int
	workers    int
	logger     *slog.Logger
}

// NewBuilder creates a builder writing pages into target. By default every
// module is preloaded and pages are written one at a time.
func NewBuilder(target string) *Builder {
	return &Builder{
		target:     target,
		strategies: Strategies,
		preload:    -1,
		workers:    1,
		logger:     slog.Default(),
	}
}

// WithPreloadCount limits preload hints to the first n sorted modules.
// A negative n preloads every module.
func (b *Builder) WithPreloadCount(n int) *Builder {
	b.preload = n
	return b
}

// WithWorkers sets the number of pages written concurrently.
func (b *Builder) WithWorkers(n int) *Builder {
	if n > 0 {
		b.workers = n
	}
	return b
}

// WithLogger sets the logger.
func (b *Builder) WithLogger(l *slog.Logger) *Builder {
	if l != nil {
		b.logger = l
	}
	return b
}

// WithRenderer replaces the built-in templates.
func (b *Builder) WithRenderer(r *Renderer) *Builder {
	if r != nil {
		b.renderer = r
	}
	return b
}

// WithStrategies replaces the strategy list.
func (b *Builder) WithStrategies(s ...Strategy) *Builder {
	b.strategies = s
	return b
}

// page is a single page to render.
type page struct {
	file     string
	template string
	vars     map[string]any
}

// Build writes one page per selected strategy and the index page linking
// them. nodes must be the sorted non-root modules. It returns the benchmark
// page file names in index order.
func (b *Builder) Build(ctx context.Context, nodes []*graph.Node, stats *Stats, bundled bool) ([]string, error) {
	if b.renderer == nil {
		r, err := NewRenderer()
		if err != nil {
			return nil, err
		}
		b.renderer = r
	}
	if err := os.MkdirAll(b.target, 0o755); err != nil {
		return nil, fmt.Errorf("bench: create output directory: %w", err)
	}

	preload := nodes
	if b.preload >= 0 && b.preload < len(nodes) {
		preload = nodes[:b.preload]
	}
	info := stats.Info()
	selected := Select(b.strategies, bundled)

	var (
		files = make([]string, 0, len(selected))
		pages = make([]page, 0, len(selected)+1)
	)
	for _, s := range selected {
		files = append(files, s.File())
		pages = append(pages, page{
			file:     s.File(),
			template: BenchmarkTemplate,
			vars: map[string]any{
				"strategy":    s.Name,
				"description": s.Description,
				"headers":     s.Headers(preload),
				"scripts":     s.Scripts(preload),
				"module":      s.Module,
				"entry":       graph.EntryPrefix + string(graph.Axiom),
				"expected":    stats.Expected,
				"info":        info,
			},
		})
	}
	pages = append(pages, page{
		file:     IndexFile,
		template: IndexTemplate,
		vars: map[string]any{
			"title":      "Module loading benchmarks",
			"summary":    stats.Summary(),
			"info":       info,
			"benchmarks": files,
		},
	})

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(b.workers)
	for _, p := range pages {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return b.write(p)
			}
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}

func (b *Builder) write(p page) error {
	out, err := b.renderer.Render(p.template, p.vars)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(b.target, p.file), []byte(out), 0o644); err != nil {
		return fmt.Errorf("bench: write %s: %w", p.file, err)
	}
	b.logger.Info("page written", "file", p.file, "bytes", len(out))
	return nil
}
