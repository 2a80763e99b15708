package view

import "github.com/nswarm/apyxl/model"

// NamespaceView is the immutable projection of a model.Namespace.
type NamespaceView struct {
	v  View
	ns *model.Namespace
}

// Valid reports whether this view actually addresses a namespace.
func (n NamespaceView) Valid() bool { return n.ns != nil }

// Name returns the namespace's name after every NamespaceTransform's
// RenameNamespace has applied, in chain order.
func (n NamespaceView) Name() string {
	name := n.ns.Name()
	for _, t := range n.v.transforms.Namespace {
		name = t.RenameNamespace(name)
	}
	return name
}

// EntityId returns the namespace's absolute identifier, if the model
// has been through Builder.Build (and so through the Stamping pass).
func (n NamespaceView) EntityId() (model.EntityId, bool) {
	return n.ns.Attributes().EntityId()
}

// Attributes returns the namespace's attributes after every
// AttributesTransform has applied, in chain order.
func (n NamespaceView) Attributes() model.Attributes {
	return n.v.transforms.rewriteAttributes(*n.ns.Attributes())
}

func (n NamespaceView) keepNamespace(child *model.Namespace) bool {
	for _, t := range n.v.transforms.Namespace {
		if !t.FilterNamespace(child) {
			return false
		}
	}
	return true
}

// Namespaces returns the direct child namespaces that survive every
// NamespaceTransform's filter, in order.
func (n NamespaceView) Namespaces() []NamespaceView {
	var out []NamespaceView
	for _, c := range n.ns.ChildrenOfKind(model.KindNamespace) {
		ns := c.(*model.Namespace)
		if !n.keepNamespace(ns) {
			continue
		}
		out = append(out, NamespaceView{v: n.v, ns: ns})
	}
	return out
}

// Dtos returns the direct child Dtos that survive every DtoTransform's
// filter, in order.
func (n NamespaceView) Dtos() []DtoView {
	var out []DtoView
	for _, c := range n.ns.ChildrenOfKind(model.KindDto) {
		d := c.(*model.Dto)
		keep := true
		for _, t := range n.v.transforms.Dto {
			if !t.FilterDto(d) {
				keep = false
				break
			}
		}
		if !keep {
			continue
		}
		out = append(out, DtoView{v: n.v, dto: d})
	}
	return out
}

// Rpcs returns the direct child Rpcs that survive every RpcTransform's
// filter, in order.
func (n NamespaceView) Rpcs() []RpcView {
	var out []RpcView
	for _, c := range n.ns.ChildrenOfKind(model.KindRpc) {
		r := c.(*model.Rpc)
		keep := true
		for _, t := range n.v.transforms.Rpc {
			if !t.FilterRpc(r) {
				keep = false
				break
			}
		}
		if !keep {
			continue
		}
		out = append(out, RpcView{v: n.v, rpc: r})
	}
	return out
}

// Enums returns the direct child Enums that survive every
// EnumTransform's filter, in order.
func (n NamespaceView) Enums() []EnumView {
	var out []EnumView
	for _, c := range n.ns.ChildrenOfKind(model.KindEnum) {
		e := c.(*model.Enum)
		keep := true
		for _, t := range n.v.transforms.Enum {
			if !t.FilterEnum(e) {
				keep = false
				break
			}
		}
		if !keep {
			continue
		}
		out = append(out, EnumView{v: n.v, enum: e})
	}
	return out
}

// Aliases returns the direct child TypeAliases that survive every
// TypeAliasTransform's filter, in order.
func (n NamespaceView) Aliases() []TypeAliasView {
	var out []TypeAliasView
	for _, c := range n.ns.ChildrenOfKind(model.KindTypeAlias) {
		a := c.(*model.TypeAlias)
		keep := true
		for _, t := range n.v.transforms.Alias {
			if !t.FilterAlias(a) {
				keep = false
				break
			}
		}
		if !keep {
			continue
		}
		out = append(out, TypeAliasView{v: n.v, alias: a})
	}
	return out
}
