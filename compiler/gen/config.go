package gen

import (
	"log/slog"
	"math/rand/v2"

	"github.com/syssam/modbench/bundle"
	"github.com/syssam/modbench/graph"
)

// Defaults applied by NewConfig before any option.
const (
	DefaultTarget       = "out"
	DefaultDepth        = 4
	DefaultBranches     = 10
	DefaultFillerDigits = 10
	// MaxFillerDigits keeps 1+N below 2^53 so the JavaScript helper cancels
	// exactly in double precision.
	MaxFillerDigits = 15
)

// Config holds the global configuration for a generation run.
type Config struct {
	// Target is the output directory.
	Target string
	// Depth is the maximum expansion depth.
	Depth int
	// Branches is used to synthesize the default rule set when Rules is nil.
	Branches int
	// Rules holds the rewriting rules. Nil means DefaultRules(Branches).
	Rules graph.Rules
	// Sizes holds the payload size per symbol.
	Sizes graph.Sizes
	// Dynamic switches every module to dynamic imports.
	Dynamic bool
	// Seed fixes the filler literal stream when Seeded is set.
	Seed   uint64
	Seeded bool
	// FillerDigits is the digit width of filler literals.
	FillerDigits int
	// PreloadCount limits preload hints to a prefix of the sorted modules.
	// A negative value preloads every module.
	PreloadCount int
	// SkipBundles omits the bundled variants even in static mode.
	SkipBundles bool
	// Workers bounds concurrent page writes.
	Workers int
	// Logger receives progress output. Defaults to slog.Default().
	Logger *slog.Logger
	// Bundler folds the exported modules into the bundled artifacts.
	Bundler bundle.Bundler
}

// defaultConfig returns the configuration used when no option is given.
func defaultConfig() *Config {
	return &Config{
		Target:       DefaultTarget,
		Depth:        DefaultDepth,
		Branches:     DefaultBranches,
		Sizes:        graph.Sizes{},
		FillerDigits: DefaultFillerDigits,
		PreloadCount: -1,
		Workers:      1,
	}
}

// Validate checks the configuration and fills in derived defaults.
// It is called by NewConfig and must succeed before generation starts.
func (c *Config) Validate() error {
	if c.Target == "" {
		return NewConfigError("Target", nil, "target directory cannot be empty")
	}
	if c.Depth < 0 {
		return NewConfigError("Depth", c.Depth, "depth has to be >= 0")
	}
	if c.Branches <= 0 {
		return NewConfigError("Branches", c.Branches, "branches has to be >= 1")
	}
	if c.FillerDigits < 1 || c.FillerDigits > MaxFillerDigits {
		return NewConfigError("FillerDigits", c.FillerDigits, "filler digits must be between 1 and 15")
	}
	if c.Workers < 1 {
		return NewConfigError("Workers", c.Workers, "workers has to be >= 1")
	}
	if c.Rules == nil {
		c.Rules = graph.DefaultRules(c.Branches)
	}
	if err := c.Rules.Validate(); err != nil {
		return WrapConfigError("Rules", c.Rules.String(), err)
	}
	if c.Sizes == nil {
		c.Sizes = graph.Sizes{}
	}
	for sym, n := range c.Sizes {
		if n < 0 {
			return NewConfigError("Sizes", string(sym), "size cannot be negative")
		}
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return nil
}

// Expander returns the grammar expander for this configuration.
func (c *Config) Expander() *graph.Expander {
	return &graph.Expander{
		Rules:    c.Rules,
		Sizes:    c.Sizes,
		MaxDepth: c.Depth,
		Dynamic:  c.Dynamic,
	}
}

// NewFiller returns a filler generator. Seeded configurations always
// produce the same literal stream.
func (c *Config) NewFiller() *Filler {
	seed := c.Seed
	if !c.Seeded {
		seed = rand.Uint64()
	}
	return NewFiller(c.FillerDigits, rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Mode returns "dynamic" or "static".
func (c *Config) Mode() string {
	if c.Dynamic {
		return "dynamic"
	}
	return "static"
}

// Bundles reports whether the bundled variants are produced.
func (c *Config) Bundles() bool {
	return !c.Dynamic && !c.SkipBundles
}
