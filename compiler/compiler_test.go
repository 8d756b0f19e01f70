package compiler

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/modbench/bench"
	"github.com/syssam/modbench/bundle"
	"github.com/syssam/modbench/compiler/gen"
)

// fakeBundler records its calls and writes placeholder artifacts.
type fakeBundler struct {
	calls [][2]string
	err   error
}

func (f *fakeBundler) Bundle(_ context.Context, dir, entry string) (*bundle.Output, error) {
	f.calls = append(f.calls, [2]string{dir, entry})
	if f.err != nil {
		return nil, f.err
	}
	for _, name := range []string{bundle.BundleFile, bundle.ArchiveFile} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("bundle"), 0o644); err != nil {
			return nil, err
		}
	}
	return &bundle.Output{Bundle: bundle.BundleFile, Archive: bundle.ArchiveFile}, nil
}

func config(t *testing.T, b bundle.Bundler, opts ...gen.Option) *gen.Config {
	t.Helper()
	opts = append([]gen.Option{
		gen.WithTarget(filepath.Join(t.TempDir(), "out")),
		gen.WithRuleString("A:AB,B:BBB"),
		gen.WithDepth(2),
		gen.WithSeed(1),
		gen.WithBundler(b),
		gen.WithLogger(slog.New(slog.DiscardHandler)),
	}, opts...)
	cfg, err := gen.NewConfig(opts...)
	require.NoError(t, err)
	return cfg
}

func TestGenerateStatic(t *testing.T) {
	b := &fakeBundler{}
	cfg := config(t, b, gen.WithSizeString("A:2K,B:1K"))

	res, err := Generate(context.Background(), cfg)
	require.NoError(t, err)

	assert.Len(t, res.Modules, 7)
	assert.Equal(t, 8, res.Export.FilesGenerated)
	assert.Equal(t, [][2]string{{cfg.Target, "A.mjs"}}, b.calls)
	assert.Equal(t, &bundle.Output{Bundle: "bundled.mjs", Archive: "bundled.wbn"}, res.Bundle)
	assert.Equal(t, []string{"unbundled.html", "modulepreload.html", "script-preload.html", "rollup.html", "webbundle.html"}, res.Pages)
	assert.Equal(t, int64(8), res.Stats.Expected)

	for _, n := range res.Modules {
		assert.FileExists(t, filepath.Join(cfg.Target, filepath.FromSlash(n.Path())))
	}
	for _, p := range append(res.Pages, bench.IndexFile, "A.mjs") {
		assert.FileExists(t, filepath.Join(cfg.Target, p))
	}
}

func TestGenerateDynamic(t *testing.T) {
	b := &fakeBundler{}
	cfg := config(t, b, gen.WithDynamicImports(true))

	res, err := Generate(context.Background(), cfg)
	require.NoError(t, err)

	assert.Empty(t, b.calls)
	assert.Nil(t, res.Bundle)
	assert.Equal(t, []string{"unbundled.html", "modulepreload.html", "script-preload.html"}, res.Pages)

	index, err := os.ReadFile(filepath.Join(cfg.Target, bench.IndexFile))
	require.NoError(t, err)
	assert.NotContains(t, string(index), "rollup.html")
	assert.NotContains(t, string(index), "webbundle.html")

	root, err := os.ReadFile(filepath.Join(cfg.Target, "A.mjs"))
	require.NoError(t, err)
	assert.Contains(t, string(root), "export async function f_A()")
}

func TestGenerateSkipBundles(t *testing.T) {
	b := &fakeBundler{}
	res, err := Generate(context.Background(), config(t, b, gen.WithSkipBundles(true)))
	require.NoError(t, err)
	assert.Empty(t, b.calls)
	assert.Len(t, res.Pages, 3)
}

func TestGenerateDeterministic(t *testing.T) {
	a := config(t, &fakeBundler{}, gen.WithSizeString("A:4K,B:1K"))
	b := config(t, &fakeBundler{}, gen.WithSizeString("A:4K,B:1K"))

	ra, err := Generate(context.Background(), a)
	require.NoError(t, err)
	_, err = Generate(context.Background(), b)
	require.NoError(t, err)

	for _, n := range ra.Modules {
		da, err := os.ReadFile(filepath.Join(a.Target, filepath.FromSlash(n.Path())))
		require.NoError(t, err)
		db, err := os.ReadFile(filepath.Join(b.Target, filepath.FromSlash(n.Path())))
		require.NoError(t, err)
		assert.Equal(t, da, db, n.Path())
	}
}

func TestGenerateErrors(t *testing.T) {
	t.Run("bundler failure is propagated", func(t *testing.T) {
		toolErr := &bundle.ToolError{Tool: "gen-bundle", Cause: errors.New("exit status 1")}
		cfg := config(t, &fakeBundler{err: toolErr})

		_, err := Generate(context.Background(), cfg)
		assert.ErrorIs(t, err, bundle.ErrToolFailed)
		assert.NoFileExists(t, filepath.Join(cfg.Target, bench.IndexFile))
		assert.FileExists(t, filepath.Join(cfg.Target, "A.mjs"))
	})

	t.Run("existing output is fatal", func(t *testing.T) {
		cfg := config(t, &fakeBundler{})
		require.NoError(t, os.MkdirAll(filepath.Join(cfg.Target, "A"), 0o755))

		_, err := Generate(context.Background(), cfg)
		assert.True(t, gen.IsGenerationError(err))
	})
}

func TestPlan(t *testing.T) {
	cfg := config(t, &fakeBundler{}, gen.WithSizeString("A:2K,B:1K"))
	stats := Plan(cfg)

	assert.Equal(t, 7, stats.Modules)
	assert.Equal(t, int64(11264), stats.TotalSize)
	assert.NoDirExists(t, cfg.Target)

	def := Plan(gen.MustNewConfig(gen.WithDepth(3), gen.WithBranches(10)))
	assert.Equal(t, 1110, def.Modules)
}
