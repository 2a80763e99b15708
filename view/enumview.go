package view

import "github.com/nswarm/apyxl/model"

// EnumView is the immutable projection of a model.Enum.
type EnumView struct {
	v    View
	enum *model.Enum
}

func (e EnumView) Name() string {
	name := e.enum.Name()
	for _, t := range e.v.transforms.Enum {
		name = t.RenameEnum(name)
	}
	return name
}

func (e EnumView) EntityId() (model.EntityId, bool) { return e.enum.Attributes().EntityId() }

func (e EnumView) Attributes() model.Attributes {
	return e.v.transforms.rewriteAttributes(*e.enum.Attributes())
}

// Variants returns the enum's variants after every EnumTransform's
// ReorderVariants has applied, in chain order.
func (e EnumView) Variants() []model.EnumVariant {
	variants := append([]model.EnumVariant(nil), e.enum.Variants...)
	for _, t := range e.v.transforms.Enum {
		variants = t.ReorderVariants(variants)
	}
	return variants
}

// TypeAliasView is the immutable projection of a model.TypeAlias.
type TypeAliasView struct {
	v     View
	alias *model.TypeAlias
}

func (a TypeAliasView) Name() string {
	name := a.alias.Name()
	for _, t := range a.v.transforms.Alias {
		name = t.RenameAlias(name)
	}
	return name
}

func (a TypeAliasView) EntityId() (model.EntityId, bool) { return a.alias.Attributes().EntityId() }

func (a TypeAliasView) Attributes() model.Attributes {
	return a.v.transforms.rewriteAttributes(*a.alias.Attributes())
}

func (a TypeAliasView) Target() model.TypeRef {
	target := a.alias.Target
	for _, t := range a.v.transforms.Alias {
		target = t.RewriteAliasTarget(target)
	}
	return target
}
