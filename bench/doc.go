// Package bench builds the HTML harness pages that load a generated module
// tree under the different loading strategies.
//
// Every page shares a statistics block describing the tree (rules, sizes,
// depth, module count, payload size) and a small runner that imports the
// entry module, times it and checks the returned value against the expected
// result. The index page links every produced benchmark.
//
//	pages, err := bench.NewBuilder("out").
//		WithPreloadCount(100).
//		WithLogger(logger).
//		Build(ctx, nodes, stats, bundled)
package bench
