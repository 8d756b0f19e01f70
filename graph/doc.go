// Package graph provides the module tree representation for modbench code generation.
//
// This package is responsible for expanding an L-system grammar into a tree of
// module nodes and for deriving every name and path a generated artifact needs.
// It serves as the intermediate representation between the configuration and
// the artifact writers.
//
// # Grammar
//
// A grammar is a set of rules mapping one symbol to a string of successor
// symbols. Expansion always starts from the axiom "A":
//
//	rules, err := graph.ParseRules("A:AB,B:BBB")
//	sizes, err := graph.ParseSizes("A:10K,B:1.4M")
//
// Symbols without a rule are leaves. Sizes are payload targets in bytes;
// a bare number is read as KiB.
//
// # Expansion
//
// The Expander grows the tree to a bounded depth:
//
//	tree := (&graph.Expander{
//	    Rules:    rules,
//	    Sizes:    sizes,
//	    MaxDepth: 2,
//	}).Expand()
//
// The resulting Tree holds the root and every non-root node in creation
// order. Count computes the same node count in closed form without building
// the tree.
//
// # Naming
//
// Names and paths are derived from the ancestor chain on every call:
//
//	A                 A.mjs          (root, directory "A")
//	A_A0              A/A_A0.mjs     (directory "A/A0")
//	A_A0_B1           A/A0/A_A0_B1.mjs
//
// # Ordering
//
// Sorted returns nodes in topological export order: shallower paths first,
// ties broken by comparing path segments.
package graph
