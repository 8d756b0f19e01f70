package graph

import (
	"slices"
	"strings"
)

// Expander grows a module tree from a grammar.
type Expander struct {
	// Rules holds the rewriting rules. Symbols without a rule are leaves.
	Rules Rules
	// Sizes holds the payload size per symbol.
	Sizes Sizes
	// MaxDepth bounds the expansion. Zero yields a root-only tree.
	MaxDepth int
	// Dynamic marks every node as loading its children with dynamic imports.
	Dynamic bool
}

// Expand builds the tree rooted at the axiom. Nodes are created depth-first,
// each child being appended before its own subtree is expanded.
func (e *Expander) Expand() *Tree {
	root := &Node{
		Symbol:  Axiom,
		Size:    e.Sizes.Get(Axiom),
		Dynamic: e.Dynamic,
	}
	t := &Tree{Root: root}
	e.expand(root, &t.Nodes)
	return t
}

func (e *Expander) expand(n *Node, acc *[]*Node) {
	if n.Depth == e.MaxDepth {
		return
	}
	succ, ok := e.Rules[n.Symbol]
	if !ok {
		return
	}
	for i, sym := range []rune(succ) {
		c := &Node{
			Symbol:  sym,
			Index:   i,
			Depth:   n.Depth + 1,
			Size:    e.Sizes.Get(sym),
			Dynamic: e.Dynamic,
			parent:  n,
		}
		n.Children = append(n.Children, c)
		*acc = append(*acc, c)
		e.expand(c, acc)
	}
}

// Sorted returns a copy of nodes in topological export order. Nodes with
// fewer path segments come first; ties compare segment by segment.
func Sorted(nodes []*Node) []*Node {
	type keyed struct {
		n     *Node
		parts []string
	}
	ks := make([]keyed, len(nodes))
	for i, n := range nodes {
		ks[i] = keyed{n: n, parts: strings.Split(n.Path(), "/")}
	}
	slices.SortStableFunc(ks, func(a, b keyed) int {
		if d := len(a.parts) - len(b.parts); d != 0 {
			return d
		}
		return slices.Compare(a.parts, b.parts)
	})
	sorted := make([]*Node, len(ks))
	for i, k := range ks {
		sorted[i] = k.n
	}
	return sorted
}
