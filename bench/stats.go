package bench

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/go-openapi/inflect"
	"github.com/google/uuid"

	"github.com/syssam/modbench/graph"
)

// runNamespace scopes run identifiers derived from tree parameters.
var runNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/syssam/modbench"))

// Stats describes a generated module tree. It is shared by every page.
type Stats struct {
	Rules     graph.Rules
	Sizes     graph.Sizes
	Depth     int
	Dynamic   bool
	Modules   int
	TotalSize int64
	// Expected is the value the root entry function returns when the
	// payload helpers are not evaluated.
	Expected int64
}

// InfoItem is one term of the statistics block.
type InfoItem struct {
	Term  string
	Value string
}

// NewStats collects the statistics of t.
func NewStats(t *graph.Tree, rules graph.Rules, sizes graph.Sizes, depth int) *Stats {
	return &Stats{
		Rules:     rules,
		Sizes:     sizes,
		Depth:     depth,
		Dynamic:   t.Root.Dynamic,
		Modules:   t.Len(),
		TotalSize: t.TotalSize(),
		Expected:  t.Root.Total(),
	}
}

// Mode returns the loading mode of the tree.
func (s *Stats) Mode() string {
	if s.Dynamic {
		return "dynamic"
	}
	return "static"
}

// RunID returns an identifier derived from the tree parameters. Runs with the
// same parameters share the identifier.
func (s *Stats) RunID() uuid.UUID {
	key := fmt.Sprintf("rules=%s;sizes=%s;depth=%d;mode=%s", s.Rules, s.Sizes, s.Depth, s.Mode())
	return uuid.NewSHA1(runNamespace, []byte(key))
}

// Info returns the statistics block shown on every page.
func (s *Stats) Info() []InfoItem {
	sizes := s.Sizes.String()
	if sizes == "" {
		sizes = "none"
	}
	return []InfoItem{
		{Term: "Expansion Rules", Value: s.Rules.String()},
		{Term: "Module Sizes", Value: sizes},
		{Term: "Depth", Value: strconv.Itoa(s.Depth)},
		{Term: "Loading Mode", Value: s.Mode()},
		{Term: "Module Count", Value: strconv.Itoa(s.Modules)},
		{Term: "Total Source Size", Value: humanize.IBytes(uint64(s.TotalSize))},
		{Term: "Expected Result", Value: strconv.FormatInt(s.Expected, 10)},
		{Term: "Run ID", Value: s.RunID().String()},
	}
}

// Summary returns a one-line description, e.g. "7 modules, depth 2, 3.0 KiB".
func (s *Stats) Summary() string {
	return fmt.Sprintf("%s, depth %d, %s", Plural(s.Modules, "module"), s.Depth, humanize.IBytes(uint64(s.TotalSize)))
}

// Plural formats n followed by word, pluralized unless n is 1.
func Plural(n int, word string) string {
	if n != 1 {
		word = inflect.Pluralize(word)
	}
	return strconv.Itoa(n) + " " + word
}
