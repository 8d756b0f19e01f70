package bench

import (
	"fmt"

	"github.com/syssam/modbench/bundle"
	"github.com/syssam/modbench/graph"
)

var (
	// StrategyUnbundled loads the root module and lets the browser walk the
	// import graph.
	StrategyUnbundled = Strategy{
		Name:        "unbundled",
		Description: "Plain module graph, discovered import by import",
		Module:      "./" + graph.RootFile,
	}

	// StrategyModulePreload announces the modules up front with
	// <link rel="modulepreload"> hints.
	StrategyModulePreload = Strategy{
		Name:        "modulepreload",
		Description: "Module graph with modulepreload link hints",
		Module:      "./" + graph.RootFile,
		headers: func(nodes []*graph.Node) []string {
			return lines(nodes, `  <link rel="modulepreload" href="%s">`)
		},
	}

	// StrategyScriptPreload eagerly starts every module with its own
	// module script tag.
	StrategyScriptPreload = Strategy{
		Name:        "script-preload",
		Description: "Module graph with eager module script tags",
		Module:      "./" + graph.RootFile,
		scripts: func(nodes []*graph.Node) []string {
			return lines(nodes, `  <script type="module" src="%s"></script>`)
		},
	}

	// StrategyRollup loads the single rollup bundle.
	StrategyRollup = Strategy{
		Name:        "rollup",
		Description: "Single ES module bundle built by rollup",
		Module:      "./" + bundle.BundleFile,
		NeedsBundle: true,
	}

	// StrategyWebBundle serves the module graph out of the packaged web bundle.
	StrategyWebBundle = Strategy{
		Name:        "webbundle",
		Description: "Module graph served from a web bundle",
		Module:      "./" + graph.RootFile,
		NeedsBundle: true,
		headers: func([]*graph.Node) []string {
			return []string{fmt.Sprintf(`  <script type="webbundle"> { "source": %q, "scopes": ["./"] } </script>`, bundle.ArchiveFile)}
		},
	}

	// Strategies lists all loading strategies in index order.
	Strategies = []Strategy{
		StrategyUnbundled,
		StrategyModulePreload,
		StrategyScriptPreload,
		StrategyRollup,
		StrategyWebBundle,
	}
)

// Strategy describes how a benchmark page loads the module tree.
type Strategy struct {
	// Name of the strategy. Also the base name of the page.
	Name string
	// Description is shown on the page.
	Description string
	// Module is the specifier the runner imports.
	Module string
	// NeedsBundle marks strategies that depend on the bundled artifacts.
	NeedsBundle bool

	// headers and scripts render the preload markup for the given prefix of
	// the sorted module list.
	headers func([]*graph.Node) []string
	scripts func([]*graph.Node) []string
}

// File returns the page file name.
func (s Strategy) File() string {
	return s.Name + ".html"
}

// Headers returns the markup placed in the page head.
func (s Strategy) Headers(nodes []*graph.Node) []string {
	if s.headers == nil {
		return nil
	}
	return s.headers(nodes)
}

// Scripts returns the markup placed before the runner script.
func (s Strategy) Scripts(nodes []*graph.Node) []string {
	if s.scripts == nil {
		return nil
	}
	return s.scripts(nodes)
}

// Select returns the strategies that can be served. Bundle strategies are
// dropped when no bundle was built.
func Select(strategies []Strategy, bundled bool) []Strategy {
	selected := make([]Strategy, 0, len(strategies))
	for _, s := range strategies {
		if s.NeedsBundle && !bundled {
			continue
		}
		selected = append(selected, s)
	}
	return selected
}

// StrategyByName looks up a registered strategy.
func StrategyByName(name string) (Strategy, error) {
	for _, s := range Strategies {
		if s.Name == name {
			return s, nil
		}
	}
	return Strategy{}, fmt.Errorf("bench: unknown strategy %q", name)
}

func lines(nodes []*graph.Node, format string) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = fmt.Sprintf(format, n.Path())
	}
	return out
}
