// Package compiler runs the generation pipeline: expand the grammar into a
// module tree, export the tree as ES modules, build the bundled variants and
// write the benchmark pages.
package compiler

import (
	"context"
	"log/slog"
	"time"

	"github.com/syssam/modbench/bench"
	"github.com/syssam/modbench/bundle"
	"github.com/syssam/modbench/compiler/gen"
	"github.com/syssam/modbench/graph"
)

// Result describes a finished generation run.
type Result struct {
	// Tree is the expanded module tree.
	Tree *graph.Tree
	// Modules holds the non-root modules in export order.
	Modules []*graph.Node
	// Stats is the statistics block shown on every page.
	Stats *bench.Stats
	// Export holds the file metrics of the export step.
	Export gen.ExportMetrics
	// Bundle is nil when no bundle was built.
	Bundle *bundle.Output
	// Pages lists the benchmark pages linked from the index.
	Pages []string
}

// Generate runs the whole pipeline for cfg. The configuration must have been
// created by gen.NewConfig (or validated with Config.Validate). Steps run in
// order and the first error aborts the run; partial output is left in place.
func Generate(ctx context.Context, cfg *gen.Config) (*Result, error) {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	log.Info("configuration", "rules", cfg.Rules.String(), "sizes", cfg.Sizes.String(),
		"depth", cfg.Depth, "mode", cfg.Mode(), "target", cfg.Target)

	res := &Result{}
	err := step(log, "creating module tree", func() error {
		res.Tree = cfg.Expander().Expand()
		res.Stats = bench.NewStats(res.Tree, cfg.Rules, cfg.Sizes, cfg.Depth)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = step(log, "exporting modules", func() error {
		e := gen.NewExporter(cfg.Target, gen.NewModuleWriter(cfg.NewFiller())).WithLogger(log)
		modules, err := e.Export(ctx, res.Tree)
		if err != nil {
			return err
		}
		res.Modules = modules
		res.Export = e.Metrics()
		log.Info("created modules", "count", len(modules), "summary", res.Stats.Summary())
		return nil
	})
	if err != nil {
		return nil, err
	}

	if cfg.Bundles() {
		err = step(log, "building bundles", func() error {
			b := cfg.Bundler
			if b == nil {
				b = bundle.NewExternal()
			}
			out, err := b.Bundle(ctx, cfg.Target, graph.RootFile)
			res.Bundle = out
			return err
		})
		if err != nil {
			return nil, err
		}
	}

	err = step(log, "exporting html", func() error {
		pages, err := bench.NewBuilder(cfg.Target).
			WithPreloadCount(cfg.PreloadCount).
			WithWorkers(cfg.Workers).
			WithLogger(log).
			Build(ctx, res.Modules, res.Stats, cfg.Bundles())
		if err != nil {
			return gen.NewGenerationError("pages", cfg.Target, "write benchmark pages", err)
		}
		res.Pages = pages
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Plan expands the tree for cfg without writing anything and returns its
// statistics.
func Plan(cfg *gen.Config) *bench.Stats {
	tree := cfg.Expander().Expand()
	return bench.NewStats(tree, cfg.Rules, cfg.Sizes, cfg.Depth)
}

// step runs fn between start and finish log records.
func step(log *slog.Logger, name string, fn func() error) error {
	log.Info(name)
	start := time.Now()
	if err := fn(); err != nil {
		log.Error(name+" failed", "duration", time.Since(start), "error", err)
		return err
	}
	log.Info(name+" done", "duration", time.Since(start))
	return nil
}
