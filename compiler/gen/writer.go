package gen

import (
	"bytes"
	"strings"

	"github.com/syssam/modbench/graph"
)

// ModuleWriter serializes one node into the text of its ES module.
type ModuleWriter struct {
	filler *Filler
}

// NewModuleWriter creates a writer that pads payload helpers with f.
func NewModuleWriter(f *Filler) *ModuleWriter {
	return &ModuleWriter{filler: f}
}

// Module returns the artifact text of n.
//
// Static modules import every child and sum their entry functions directly.
// Dynamic modules import every child with an independent import() and sum
// the results once Promise.all settles. Both return 1 plus the children.
func (w *ModuleWriter) Module(n *graph.Node) []byte {
	var b bytes.Buffer
	calls := w.calls(n)

	var expr string
	if n.Dynamic {
		expr = strings.Join(calls, ",\n    ")
		b.WriteString("export async function " + n.EntryName() + "() {\n")
	} else {
		for _, c := range n.Children {
			b.WriteString("import {" + c.EntryName() + "} from '" + c.Specifier() + "'\n")
		}
		expr = strings.Join(append(calls, "a"), "+")
		b.WriteString("export function " + n.EntryName() + "() {\n")
	}
	b.WriteString("  let a=1;\n")
	if n.Size > 0 {
		b.WriteString("  if (document.evaluate_all) {\n")
		b.WriteString("    a=helper()\n")
		b.WriteString("  }\n")
	}
	if n.Dynamic {
		b.WriteString("  const results = await Promise.all([\n")
		if expr != "" {
			b.WriteString("    " + expr + "\n")
		}
		b.WriteString("  ]);\n")
		b.WriteString("  for (let result of results) a += result;\n")
		b.WriteString("  return a;\n")
	} else {
		b.WriteString("  return " + expr + ";\n")
	}
	b.WriteString("}\n")
	if n.Size > 0 {
		w.filler.WriteHelper(&b, n.Size, len(expr))
	}
	return b.Bytes()
}

// calls returns the child invocation expressions in children order.
func (w *ModuleWriter) calls(n *graph.Node) []string {
	calls := make([]string, 0, len(n.Children))
	for _, c := range n.Children {
		if n.Dynamic {
			calls = append(calls, "import('"+c.Specifier()+"').then(m => m."+c.EntryName()+"())")
		} else {
			calls = append(calls, c.EntryName()+"()")
		}
	}
	return calls
}
