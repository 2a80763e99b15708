// Package gendebug is a reference generator.Generator that renders a
// View as an indented, human-readable declaration listing — the
// generator-side counterpart of (*model.Namespace).Dump, but reading
// through transforms rather than the raw model so it also exercises
// the view layer in tests.
package gendebug

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nswarm/apyxl/generator"
	"github.com/nswarm/apyxl/model"
	"github.com/nswarm/apyxl/view"
)

// Generator writes one chunk, named by OutputName (default
// "declarations.txt" if empty), containing the whole view rooted at
// v.Root().
type Generator struct {
	// OutputName is the chunk path passed to the sink. Defaults to
	// "declarations.txt".
	OutputName string
}

func (g Generator) outputName() string {
	if g.OutputName != "" {
		return g.OutputName
	}
	return "declarations.txt"
}

// Generate implements generator.Generator.
func (g Generator) Generate(v view.View, sink generator.Sink) error {
	w, err := sink.WriteChunk(g.outputName())
	if err != nil {
		return err
	}
	defer w.Close()

	var b strings.Builder
	renderNamespace(&b, v.Root(), 0)
	_, err = w.Write([]byte(b.String()))
	return err
}

func renderNamespace(b *strings.Builder, n view.NamespaceView, depth int) {
	indent := strings.Repeat("  ", depth)
	name := n.Name()
	if name == "" {
		name = "<root>"
	}
	renderAttributes(b, indent, n.Attributes())
	fmt.Fprintf(b, "%snamespace %s {\n", indent, name)
	for _, child := range n.Namespaces() {
		renderNamespace(b, child, depth+1)
	}
	for _, d := range n.Dtos() {
		renderDto(b, d, depth+1)
	}
	for _, r := range n.Rpcs() {
		renderRpc(b, r, depth+1)
	}
	for _, e := range n.Enums() {
		renderEnum(b, e, depth+1)
	}
	for _, a := range n.Aliases() {
		renderAlias(b, a, depth+1)
	}
	fmt.Fprintf(b, "%s}\n", indent)
}

func renderDto(b *strings.Builder, d view.DtoView, depth int) {
	indent := strings.Repeat("  ", depth)
	renderAttributes(b, indent, d.Attributes())
	fmt.Fprintf(b, "%sdto %s {\n", indent, d.Name())
	for _, f := range d.Fields() {
		fmt.Fprintf(b, "%s  %s: %s\n", indent, f.Name(), f.Type().String())
	}
	fmt.Fprintf(b, "%s}\n", indent)
}

func renderRpc(b *strings.Builder, r view.RpcView, depth int) {
	indent := strings.Repeat("  ", depth)
	renderAttributes(b, indent, r.Attributes())
	params := r.Params()
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = fmt.Sprintf("%s: %s", p.Name(), p.Type().String())
	}
	ret := ""
	if rt, ok := r.Return(); ok {
		ret = " -> " + rt.String()
	}
	fmt.Fprintf(b, "%srpc %s(%s)%s\n", indent, r.Name(), strings.Join(parts, ", "), ret)
}

func renderEnum(b *strings.Builder, e view.EnumView, depth int) {
	indent := strings.Repeat("  ", depth)
	renderAttributes(b, indent, e.Attributes())
	fmt.Fprintf(b, "%senum %s {\n", indent, e.Name())
	for _, variant := range e.Variants() {
		fmt.Fprintf(b, "%s  %s = %d\n", indent, variant.VariantName, variant.Value)
	}
	fmt.Fprintf(b, "%s}\n", indent)
}

func renderAlias(b *strings.Builder, a view.TypeAliasView, depth int) {
	indent := strings.Repeat("  ", depth)
	renderAttributes(b, indent, a.Attributes())
	fmt.Fprintf(b, "%salias %s = %s\n", indent, a.Name(), a.Target().String())
}

func renderAttributes(b *strings.Builder, indent string, attrs model.Attributes) {
	for _, c := range attrs.Comments {
		fmt.Fprintf(b, "%s// %s\n", indent, c)
	}
	for _, ua := range attrs.UserAttributes {
		fmt.Fprintf(b, "%s@%s\n", indent, renderUserAttribute(ua))
	}
}

func renderUserAttribute(ua model.UserAttribute) string {
	switch ua.Kind {
	case model.AttrFlag:
		return ua.Name
	case model.AttrPositional:
		return fmt.Sprintf("%s(%s)", ua.Name, strings.Join(ua.Tokens, ", "))
	case model.AttrKeyValue:
		keys := make([]string, 0, len(ua.KeyValue))
		for k := range ua.KeyValue {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("%s=%s", k, ua.KeyValue[k])
		}
		return fmt.Sprintf("%s(%s)", ua.Name, strings.Join(parts, ", "))
	default:
		return ua.Name
	}
}
