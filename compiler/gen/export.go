package gen

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/syssam/modbench/graph"
)

// ExportMetrics tracks export output.
type ExportMetrics struct {
	FilesGenerated int
	DirsCreated    int
	TotalBytes     int64
}

// Exporter materializes a module tree on disk.
type Exporter struct {
	target  string
	writer  *ModuleWriter
	logger  *slog.Logger
	metrics ExportMetrics
}

// NewExporter creates an exporter writing below target.
func NewExporter(target string, w *ModuleWriter) *Exporter {
	return &Exporter{
		target: target,
		writer: w,
		logger: slog.Default(),
	}
}

// WithLogger sets the logger used for per-file debug output.
func (e *Exporter) WithLogger(l *slog.Logger) *Exporter {
	if l != nil {
		e.logger = l
	}
	return e
}

// Metrics returns the export metrics.
func (e *Exporter) Metrics() ExportMetrics {
	return e.metrics
}

// Export writes every artifact of t and returns the non-root nodes in
// topological order. A child directory that already exists aborts the export;
// files written up to that point are left in place.
func (e *Exporter) Export(ctx context.Context, t *graph.Tree) ([]*graph.Node, error) {
	if err := os.MkdirAll(e.target, 0o755); err != nil {
		return nil, NewGenerationError("export", e.target, "create output directory", err)
	}
	if err := e.export(ctx, t.Root); err != nil {
		return nil, err
	}
	return graph.Sorted(t.Nodes), nil
}

func (e *Exporter) export(ctx context.Context, n *graph.Node) error {
	if err := ctx.Err(); err != nil {
		return NewGenerationError("export", n.Path(), "canceled", err)
	}
	data := e.writer.Module(n)
	if err := os.WriteFile(e.path(n.Path()), data, 0o644); err != nil {
		return NewGenerationError("export", n.Path(), "write artifact", err)
	}
	e.metrics.FilesGenerated++
	e.metrics.TotalBytes += int64(len(data))
	e.logger.Debug("artifact written", "path", n.Path(), "bytes", len(data))

	if !n.HasChildren() {
		return nil
	}
	if err := os.Mkdir(e.path(n.Dir()), 0o755); err != nil {
		return NewGenerationError("export", n.Dir(), "create module directory", err)
	}
	e.metrics.DirsCreated++
	for _, c := range n.Children {
		if err := e.export(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

// path converts a slash-separated artifact path to a target path.
func (e *Exporter) path(rel string) string {
	return filepath.Join(e.target, filepath.FromSlash(rel))
}
