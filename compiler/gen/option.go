package gen

import (
	"errors"
	"log/slog"
	"maps"

	"github.com/syssam/modbench/bundle"
	"github.com/syssam/modbench/graph"
)

// Option configures code generation.
type Option func(*Config) error

// WithTarget sets the output directory.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target directory cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithDepth sets the maximum expansion depth.
func WithDepth(depth int) Option {
	return func(c *Config) error {
		if depth < 0 {
			return NewConfigError("Depth", depth, "depth has to be >= 0")
		}
		c.Depth = depth
		return nil
	}
}

// WithBranches sets the width of the default balanced rule set.
// It has no effect when explicit rules are configured.
func WithBranches(n int) Option {
	return func(c *Config) error {
		if n <= 0 {
			return NewConfigError("Branches", n, "branches has to be >= 1")
		}
		c.Branches = n
		return nil
	}
}

// WithRules sets the rewriting rules from a string keyed map.
func WithRules(rules map[string]string) Option {
	return func(c *Config) error {
		r, err := graph.RulesFromMap(rules)
		if err != nil {
			return WrapConfigError("Rules", nil, err)
		}
		c.Rules = r
		return nil
	}
}

// WithRuleString sets the rewriting rules from their textual form,
// for instance "A:AB,B:BBB".
func WithRuleString(s string) Option {
	return func(c *Config) error {
		r, err := graph.ParseRules(s)
		if err != nil {
			return WrapConfigError("Rules", s, err)
		}
		c.Rules = r
		return nil
	}
}

// WithSizes merges payload sizes from a string keyed map of size strings.
func WithSizes(sizes map[string]string) Option {
	return func(c *Config) error {
		s, err := graph.SizesFromMap(sizes)
		if err != nil {
			return WrapConfigError("Sizes", nil, err)
		}
		if c.Sizes == nil {
			c.Sizes = make(graph.Sizes)
		}
		maps.Copy(c.Sizes, s)
		return nil
	}
}

// WithSizeString sets the payload sizes from their textual form,
// for instance "A:10K,B:1.4M".
func WithSizeString(s string) Option {
	return func(c *Config) error {
		sizes, err := graph.ParseSizes(s)
		if err != nil {
			return WrapConfigError("Sizes", s, err)
		}
		c.Sizes = sizes
		return nil
	}
}

// WithDynamicImports switches every module to dynamic imports.
func WithDynamicImports(enabled bool) Option {
	return func(c *Config) error {
		c.Dynamic = enabled
		return nil
	}
}

// WithSeed fixes the filler literal stream for reproducible output.
func WithSeed(seed uint64) Option {
	return func(c *Config) error {
		c.Seed = seed
		c.Seeded = true
		return nil
	}
}

// WithFillerDigits sets the digit width of filler literals. Wider literals
// compress worse and produce fewer instructions per byte.
func WithFillerDigits(n int) Option {
	return func(c *Config) error {
		if n < 1 || n > MaxFillerDigits {
			return NewConfigError("FillerDigits", n, "filler digits must be between 1 and 15")
		}
		c.FillerDigits = n
		return nil
	}
}

// WithPreloadCount limits preload hints to the first n sorted modules.
// A negative value preloads every module.
func WithPreloadCount(n int) Option {
	return func(c *Config) error {
		c.PreloadCount = n
		return nil
	}
}

// WithSkipBundles omits the bundled variants.
func WithSkipBundles(skip bool) Option {
	return func(c *Config) error {
		c.SkipBundles = skip
		return nil
	}
}

// WithWorkers sets the number of concurrent page writers.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n < 1 {
			return NewConfigError("Workers", n, "workers has to be >= 1")
		}
		c.Workers = n
		return nil
	}
}

// WithLogger sets the progress logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) error {
		if l == nil {
			return NewConfigError("Logger", nil, "logger cannot be nil")
		}
		c.Logger = l
		return nil
	}
}

// WithBundler sets the bundling collaborator.
func WithBundler(b bundle.Bundler) Option {
	return func(c *Config) error {
		if b == nil {
			return NewConfigError("Bundler", nil, "bundler cannot be nil")
		}
		c.Bundler = b
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a validated Config from the defaults and the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := defaultConfig()
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
