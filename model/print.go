package model

import (
	"fmt"
	"strings"
)

// Dump renders a depth-indented, one-entity-per-line rendering of the
// namespace tree, used by Builder's pre_validation_print debug option
// and by tests asserting merge shape without depending
// on a generator.
func (n *Namespace) Dump() string {
	var b strings.Builder
	n.dump(&b, 0)
	return b.String()
}

func (n *Namespace) dump(b *strings.Builder, depth int) {
	indent := strings.Repeat("  ", depth)
	name := n.NsName
	if name == "" {
		name = "<root>"
	}
	fmt.Fprintf(b, "%snamespace %s\n", indent, name)
	for _, c := range n.children {
		switch v := c.(type) {
		case *Namespace:
			v.dump(b, depth+1)
		case *Dto:
			fmt.Fprintf(b, "%s  dto %s (%d fields)\n", indent, v.Name(), len(v.Fields))
		case *Rpc:
			fmt.Fprintf(b, "%s  rpc %s (%d params)\n", indent, v.Name(), len(v.Params))
		case *Enum:
			fmt.Fprintf(b, "%s  enum %s (%d variants)\n", indent, v.Name(), len(v.Variants))
		case *TypeAlias:
			fmt.Fprintf(b, "%s  alias %s = %s\n", indent, v.Name(), v.Target.String())
		}
	}
}
