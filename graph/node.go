package graph

import (
	"path"
	"strconv"
	"strings"
)

const (
	// Axiom is the symbol of the root node.
	Axiom = 'A'
	// Ext is the file extension of generated artifacts.
	Ext = ".mjs"
	// EntryPrefix prefixes the exported entry function of every artifact.
	EntryPrefix = "f_"
	// RootFile is the artifact path of the root node.
	RootFile = string(Axiom) + Ext
)

// The following types and their exported methods are used by the writers
// to generate the assets.
type (
	// Node represents one generated module in the tree.
	Node struct {
		// Symbol is the grammar symbol this node instantiates.
		Symbol rune
		// Index is the position among the siblings produced by the same rule.
		Index int
		// Depth is the distance from the root. The root has depth 0.
		Depth int
		// Size is the payload target in bytes. Zero means no filler.
		Size int64
		// Dynamic reports whether children are loaded with dynamic imports.
		Dynamic bool
		// Children holds the child modules in expansion order.
		Children []*Node
		// parent is used for name derivation only.
		parent *Node
	}

	// Tree holds an expanded module tree.
	Tree struct {
		// Root is the axiom node.
		Root *Node
		// Nodes holds every non-root node in creation order.
		Nodes []*Node
	}
)

// IsRoot reports whether n is the root of its tree.
func (n *Node) IsRoot() bool { return n.parent == nil }

// Parent returns the parent node, or nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// HasChildren reports whether the node imports other modules.
func (n *Node) HasChildren() bool { return len(n.Children) > 0 }

// LocalName returns the symbol followed by the sibling index, e.g. "B1".
// The root is named after its symbol only.
func (n *Node) LocalName() string {
	if n.IsRoot() {
		return string(n.Symbol)
	}
	return string(n.Symbol) + strconv.Itoa(n.Index)
}

// QualifiedName returns the globally unique name of the node. It joins the
// directory of the parent with the local name and flattens the separators.
func (n *Node) QualifiedName() string {
	if n.IsRoot() {
		return n.LocalName()
	}
	return strings.ReplaceAll(n.parent.Dir()+"/"+n.LocalName(), "/", "_")
}

// Path returns the slash-separated artifact path relative to the output root.
func (n *Node) Path() string {
	if n.IsRoot() {
		return n.QualifiedName() + Ext
	}
	return n.parent.Dir() + "/" + n.QualifiedName() + Ext
}

// Dir returns the slash-separated directory holding the node's children.
func (n *Node) Dir() string {
	if n.IsRoot() {
		return n.LocalName()
	}
	return path.Join(path.Dir(n.Path()), n.LocalName())
}

// EntryName returns the name of the exported entry function.
func (n *Node) EntryName() string {
	return EntryPrefix + n.QualifiedName()
}

// Specifier returns the module specifier the parent uses to import n.
func (n *Node) Specifier() string {
	if n.IsRoot() {
		return "./" + n.Path()
	}
	return "./" + n.parent.LocalName() + "/" + n.QualifiedName() + Ext
}

// Total returns the value the entry function evaluates to when the payload
// helper is not triggered: 1 plus the totals of all children.
func (n *Node) Total() int64 {
	total := int64(1)
	for _, c := range n.Children {
		total += c.Total()
	}
	return total
}

// Walk calls fn for n and all its descendants in depth-first order.
// Walking stops at the first error.
func (n *Node) Walk(fn func(*Node) error) error {
	if err := fn(n); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := c.Walk(fn); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of non-root nodes.
func (t *Tree) Len() int { return len(t.Nodes) }

// TotalSize returns the sum of the payload sizes of all nodes, root included.
func (t *Tree) TotalSize() int64 {
	total := t.Root.Size
	for _, n := range t.Nodes {
		total += n.Size
	}
	return total
}

// Walk visits every node of the tree, root first.
func (t *Tree) Walk(fn func(*Node) error) error {
	return t.Root.Walk(fn)
}
