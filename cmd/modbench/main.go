// Command modbench generates a synthetic ES module tree and the benchmark
// pages comparing module loading strategies.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/syssam/modbench/bench"
	"github.com/syssam/modbench/compiler"
	"github.com/syssam/modbench/compiler/gen"
	"github.com/syssam/modbench/compiler/load"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the CLI with args and returns the exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return exitCode(err)
	}
	return ExitSuccess
}

// flags holds the raw command line values.
type flags struct {
	out          string
	depth        int
	branches     int
	rules        string
	sizes        string
	dynamic      bool
	seed         uint64
	fillerDigits int
	preloadCount int
	skipBundle   bool
	workers      int
	configFile   string
	logLevel     string
	logFormat    string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:   "modbench",
		Short: "Generate ES module loading benchmarks",
		Long: `modbench expands an L-system grammar into a tree of ES modules, writes
them as .mjs files and builds benchmark pages that load the tree unbundled,
with modulepreload hints, with eager module scripts, as a rollup bundle and
from a web bundle.

The start axiom is always 'A'. Without --rules a balanced tree with
--branches children per module is generated.`,
		Example: `  modbench -d 3 -b 5
  modbench --rules 'A:AB,B:BBB' --sizes 'A:10K,B:1.4M' -o out
  modbench plan --config bench.yaml`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			// Tool overrides may live in .env.
			_ = godotenv.Load()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := f.config(cmd, stderr)
			if err != nil {
				return err
			}
			res, err := compiler.Generate(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "Created %s in %s\n", bench.Plural(len(res.Modules), "module"), cfg.Target)
			fmt.Fprintf(stdout, "Open %s\n", bench.IndexFile)
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&f.out, "out", "o", gen.DefaultTarget, "output directory")
	pf.IntVarP(&f.depth, "depth", "d", gen.DefaultDepth, "module tree depth")
	pf.IntVarP(&f.branches, "branches", "b", gen.DefaultBranches, "module tree width of the default rules")
	pf.StringVar(&f.rules, "rules", "", "L-system rules, for instance 'A:AB,B:BBB'")
	pf.StringVar(&f.sizes, "sizes", "", "payload size per symbol, for instance 'A:10K,B:1.4M'")
	pf.BoolVar(&f.dynamic, "dynamic-imports", false, "use dynamic imports everywhere")
	pf.Uint64Var(&f.seed, "seed", 0, "seed for the filler payload (random when unset)")
	pf.IntVar(&f.fillerDigits, "filler-digits", gen.DefaultFillerDigits, "digits per filler literal")
	pf.IntVar(&f.preloadCount, "preload-count", -1, "number of modules to preload (negative preloads all)")
	pf.BoolVar(&f.skipBundle, "skip-bundle", false, "do not build the rollup and web bundle variants")
	pf.IntVar(&f.workers, "workers", 1, "number of pages written concurrently")
	pf.StringVar(&f.configFile, "config", "", "configuration file (.yaml, .yml, .hcl or .json)")
	pf.StringVar(&f.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&f.logFormat, "log-format", "text", "log format (text, json)")

	root.AddCommand(newPlanCmd(f, stdout, stderr))
	return root
}

func newPlanCmd(f *flags, stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Show the module tree statistics without writing anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := f.config(cmd, stderr)
			if err != nil {
				return err
			}
			stats := compiler.Plan(cfg)
			for _, item := range stats.Info() {
				fmt.Fprintf(stdout, "%-18s %s\n", item.Term+":", item.Value)
			}
			pages := bench.Select(bench.Strategies, cfg.Bundles())
			fmt.Fprintf(stdout, "%-18s %s\n", "Pages:", bench.Plural(len(pages), "page"))
			for _, s := range pages {
				fmt.Fprintf(stdout, "  %s\n", s.File())
			}
			return nil
		},
	}
}

// config builds the generator configuration: file settings first, then the
// flags given on the command line.
func (f *flags) config(cmd *cobra.Command, stderr io.Writer) (*gen.Config, error) {
	var opts []gen.Option
	if f.configFile != "" {
		file, err := load.LoadFile(f.configFile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, file.Options()...)
	}

	changed := cmd.Flags().Changed
	if changed("out") {
		opts = append(opts, gen.WithTarget(f.out))
	}
	if changed("depth") {
		opts = append(opts, gen.WithDepth(f.depth))
	}
	if changed("branches") {
		opts = append(opts, gen.WithBranches(f.branches))
	}
	if changed("rules") {
		opts = append(opts, gen.WithRuleString(f.rules))
	}
	if changed("sizes") {
		opts = append(opts, gen.WithSizeString(f.sizes))
	}
	if changed("dynamic-imports") {
		opts = append(opts, gen.WithDynamicImports(f.dynamic))
	}
	if changed("seed") {
		opts = append(opts, gen.WithSeed(f.seed))
	}
	if changed("filler-digits") {
		opts = append(opts, gen.WithFillerDigits(f.fillerDigits))
	}
	if changed("preload-count") {
		opts = append(opts, gen.WithPreloadCount(f.preloadCount))
	}
	if changed("skip-bundle") {
		opts = append(opts, gen.WithSkipBundles(f.skipBundle))
	}
	if changed("workers") {
		opts = append(opts, gen.WithWorkers(f.workers))
	}
	logger, err := newLogger(f.logLevel, f.logFormat, stderr)
	if err != nil {
		return nil, err
	}
	opts = append(opts, gen.WithLogger(logger))
	return gen.NewConfig(opts...)
}
