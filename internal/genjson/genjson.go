// Package genjson is a reference generator.Generator that writes a
// structural JSON document of a View. It exists for golden-file and
// determinism tests (Testable Properties 8–9): struct field
// order, not map iteration, drives JSON key order, and every slice is
// built by walking the View's own already-deterministic iteration
// order, so two runs over the same model produce byte-identical
// output.
package genjson

import (
	"encoding/json"

	"github.com/nswarm/apyxl/generator"
	"github.com/nswarm/apyxl/model"
	"github.com/nswarm/apyxl/view"
)

// Generator writes one chunk, named by OutputName (default
// "model.json" if empty), containing the whole view rooted at
// v.Root() as indented JSON.
type Generator struct {
	OutputName string
}

func (g Generator) outputName() string {
	if g.OutputName != "" {
		return g.OutputName
	}
	return "model.json"
}

// Generate implements generator.Generator.
func (g Generator) Generate(v view.View, sink generator.Sink) error {
	w, err := sink.WriteChunk(g.outputName())
	if err != nil {
		return err
	}
	defer w.Close()

	doc := namespaceDoc(v.Root())
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

type jsonAttributes struct {
	Comments []string            `json:"comments,omitempty"`
	Attrs    []jsonUserAttribute `json:"attributes,omitempty"`
	Chunk    string              `json:"chunk,omitempty"`
}

type jsonUserAttribute struct {
	Name     string            `json:"name"`
	Kind     string            `json:"kind"`
	Tokens   []string          `json:"tokens,omitempty"`
	KeyValue map[string]string `json:"key_value,omitempty"`
}

type jsonField struct {
	Name  string         `json:"name"`
	Type  string         `json:"type"`
	Attrs jsonAttributes `json:"attrs"`
}

type jsonParam struct {
	Name  string         `json:"name"`
	Type  string         `json:"type"`
	Attrs jsonAttributes `json:"attrs"`
}

type jsonDto struct {
	Name   string         `json:"name"`
	Attrs  jsonAttributes `json:"attrs"`
	Fields []jsonField    `json:"fields"`
}

type jsonRpc struct {
	Name   string         `json:"name"`
	Attrs  jsonAttributes `json:"attrs"`
	Params []jsonParam    `json:"params"`
	Return string         `json:"return,omitempty"`
}

type jsonVariant struct {
	Name  string         `json:"name"`
	Value int64          `json:"value"`
	Attrs jsonAttributes `json:"attrs"`
}

type jsonEnum struct {
	Name     string         `json:"name"`
	Attrs    jsonAttributes `json:"attrs"`
	Variants []jsonVariant  `json:"variants"`
}

type jsonAlias struct {
	Name   string         `json:"name"`
	Attrs  jsonAttributes `json:"attrs"`
	Target string         `json:"target"`
}

type jsonNamespace struct {
	Name       string          `json:"name"`
	Attrs      jsonAttributes  `json:"attrs"`
	Namespaces []jsonNamespace `json:"namespaces,omitempty"`
	Dtos       []jsonDto       `json:"dtos,omitempty"`
	Rpcs       []jsonRpc       `json:"rpcs,omitempty"`
	Enums      []jsonEnum      `json:"enums,omitempty"`
	Aliases    []jsonAlias     `json:"aliases,omitempty"`
}

func namespaceDoc(n view.NamespaceView) jsonNamespace {
	doc := jsonNamespace{Name: n.Name(), Attrs: attrsDoc(n.Attributes())}
	for _, child := range n.Namespaces() {
		doc.Namespaces = append(doc.Namespaces, namespaceDoc(child))
	}
	for _, d := range n.Dtos() {
		doc.Dtos = append(doc.Dtos, dtoDoc(d))
	}
	for _, r := range n.Rpcs() {
		doc.Rpcs = append(doc.Rpcs, rpcDoc(r))
	}
	for _, e := range n.Enums() {
		doc.Enums = append(doc.Enums, enumDoc(e))
	}
	for _, a := range n.Aliases() {
		doc.Aliases = append(doc.Aliases, aliasDoc(a))
	}
	return doc
}

func dtoDoc(d view.DtoView) jsonDto {
	out := jsonDto{Name: d.Name(), Attrs: attrsDoc(d.Attributes())}
	for _, f := range d.Fields() {
		out.Fields = append(out.Fields, jsonField{Name: f.Name(), Type: f.Type().String(), Attrs: attrsDoc(f.Attributes())})
	}
	return out
}

func rpcDoc(r view.RpcView) jsonRpc {
	out := jsonRpc{Name: r.Name(), Attrs: attrsDoc(r.Attributes())}
	for _, p := range r.Params() {
		out.Params = append(out.Params, jsonParam{Name: p.Name(), Type: p.Type().String(), Attrs: attrsDoc(p.Attributes())})
	}
	if ret, ok := r.Return(); ok {
		out.Return = ret.String()
	}
	return out
}

func enumDoc(e view.EnumView) jsonEnum {
	out := jsonEnum{Name: e.Name(), Attrs: attrsDoc(e.Attributes())}
	for _, variant := range e.Variants() {
		out.Variants = append(out.Variants, jsonVariant{
			Name: variant.VariantName, Value: variant.Value,
			Attrs: attrsDoc(variant.Attributes),
		})
	}
	return out
}

func aliasDoc(a view.TypeAliasView) jsonAlias {
	return jsonAlias{Name: a.Name(), Attrs: attrsDoc(a.Attributes()), Target: a.Target().String()}
}

func attrsDoc(a model.Attributes) jsonAttributes {
	out := jsonAttributes{Comments: a.Comments}
	if tag, ok := a.ChunkTag(); ok {
		out.Chunk = tag
	}
	for _, ua := range a.UserAttributes {
		out.Attrs = append(out.Attrs, jsonUserAttribute{
			Name: ua.Name, Kind: kindName(ua.Kind), Tokens: ua.Tokens, KeyValue: ua.KeyValue,
		})
	}
	return out
}

func kindName(k model.UserAttributeKind) string {
	switch k {
	case model.AttrFlag:
		return "flag"
	case model.AttrPositional:
		return "positional"
	case model.AttrKeyValue:
		return "key_value"
	default:
		return "unknown"
	}
}
