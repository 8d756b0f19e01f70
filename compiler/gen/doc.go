// Package gen serializes an expanded module tree into ES module files.
//
// # Architecture
//
// The generation pipeline follows this flow:
//
//	Rules + Sizes (Config)
//	        ↓
//	   graph.Expander
//	        ↓
//	   graph.Tree (internal representation)
//	        ↓
//	   ModuleWriter (one .mjs source per node)
//	        ↓
//	   Exporter (files and directories below Config.Target)
//
// # Key Types
//
//   - Config: Global configuration for a generation run
//   - ModuleWriter: Renders the source of a single module
//   - Filler: Produces the payload helper from a seedable random source
//   - Exporter: Writes the tree to disk and returns the export order
//
// # Module Layout
//
// Every node becomes one artifact. The root is written to A.mjs and its
// children live in the directory A/. A child's file name is its qualified
// name, which keeps names unique across the tree:
//
//	A.mjs
//	A/A_A0.mjs
//	A/A_B1.mjs
//	A/B1/A_B1_B0.mjs
//
// With static imports a module imports the entry function of every child and
// returns the sum of their results plus one. With dynamic imports the
// children are loaded with import() and awaited together.
//
// # Error Handling
//
// The package uses structured error types:
//
//   - ConfigError: Configuration errors, detected before anything is written
//   - GenerationError: I/O errors while writing artifacts
//
// Example error handling:
//
//	cfg, err := gen.NewConfig(gen.WithRuleString("A:AB,B:BBB"))
//	if err != nil {
//	    if gen.IsConfigError(err) {
//	        // Report the invalid option
//	    }
//	    return err
//	}
//
// # Configuration
//
// Configuration is done via the functional options pattern:
//
//	cfg, err := gen.NewConfig(
//	    gen.WithTarget("out"),
//	    gen.WithDepth(3),
//	    gen.WithSizeString("A:10K,B:1.4M"),
//	    gen.WithSeed(1),
//	)
//
// Seeded configurations produce byte-identical artifacts on every run.
package gen
