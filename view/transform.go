package view

import "github.com/nswarm/apyxl/model"

// NamespaceTransform hooks a view's traversal of namespaces.
type NamespaceTransform interface {
	// FilterNamespace returns false to drop ns (and everything under
	// it) from iteration entirely.
	FilterNamespace(ns *model.Namespace) bool
	// RenameNamespace returns the name a view should report for ns.
	RenameNamespace(name string) string
}

// DtoTransform hooks a view's traversal of Dtos.
type DtoTransform interface {
	FilterDto(d *model.Dto) bool
	RenameDto(name string) string
	// ReorderFields may reorder, drop, or duplicate a Dto's field
	// list before per-field transforms run. Implementations that
	// don't care about order should return fields unchanged.
	ReorderFields(fields []model.Field) []model.Field
}

// RpcTransform hooks a view's traversal of Rpcs.
type RpcTransform interface {
	FilterRpc(r *model.Rpc) bool
	RenameRpc(name string) string
	ReorderParams(params []model.Param) []model.Param
	// RewriteReturn rewrites an Rpc's return type. t is nil when the
	// Rpc has no return type; implementations may introduce or remove
	// a return type by returning non-nil/nil respectively.
	RewriteReturn(t *model.TypeRef) *model.TypeRef
	// RewriteParamType rewrites one parameter's type in place.
	RewriteParamType(t model.TypeRef) model.TypeRef
}

// EnumTransform hooks a view's traversal of Enums.
type EnumTransform interface {
	FilterEnum(e *model.Enum) bool
	RenameEnum(name string) string
	ReorderVariants(variants []model.EnumVariant) []model.EnumVariant
}

// FieldTransform hooks a view's traversal of a Dto's fields.
type FieldTransform interface {
	FilterField(f *model.Field) bool
	RenameField(name string) string
	RewriteFieldType(t model.TypeRef) model.TypeRef
}

// TypeAliasTransform hooks a view's traversal of TypeAliases.
type TypeAliasTransform interface {
	FilterAlias(a *model.TypeAlias) bool
	RenameAlias(name string) string
	RewriteAliasTarget(t model.TypeRef) model.TypeRef
}

// AttributesTransform rewrites the Attributes a view reports for any
// entity. It is cross-cutting: every per-kind view consults the same
// chain.
type AttributesTransform interface {
	RewriteAttributes(a model.Attributes) model.Attributes
}

// Transforms is the ordered chain of per-kind transforms a View
// applies. Transforms apply in chain insertion order; later transforms
// observe earlier transforms' output. The zero value is a usable, empty chain.
type Transforms struct {
	Namespace  []NamespaceTransform
	Dto        []DtoTransform
	Rpc        []RpcTransform
	Enum       []EnumTransform
	Field      []FieldTransform
	Alias      []TypeAliasTransform
	Attributes []AttributesTransform
}

// NewTransforms returns an empty transform chain.
func NewTransforms() *Transforms { return &Transforms{} }

// Clone copies each of the chain's slices into a fresh slice so
// appending to the clone never affects the original.
func (t *Transforms) Clone() *Transforms {
	if t == nil {
		return NewTransforms()
	}
	return &Transforms{
		Namespace:  append([]NamespaceTransform(nil), t.Namespace...),
		Dto:        append([]DtoTransform(nil), t.Dto...),
		Rpc:        append([]RpcTransform(nil), t.Rpc...),
		Enum:       append([]EnumTransform(nil), t.Enum...),
		Field:      append([]FieldTransform(nil), t.Field...),
		Alias:      append([]TypeAliasTransform(nil), t.Alias...),
		Attributes: append([]AttributesTransform(nil), t.Attributes...),
	}
}

// WithNamespace returns a clone of t with tr appended to the Namespace
// chain. Used to build up a per-consumer chain without mutating a
// shared base chain other consumers also hold.
func (t *Transforms) WithNamespace(tr NamespaceTransform) *Transforms {
	c := t.Clone()
	c.Namespace = append(c.Namespace, tr)
	return c
}

func (t *Transforms) WithDto(tr DtoTransform) *Transforms {
	c := t.Clone()
	c.Dto = append(c.Dto, tr)
	return c
}

func (t *Transforms) WithRpc(tr RpcTransform) *Transforms {
	c := t.Clone()
	c.Rpc = append(c.Rpc, tr)
	return c
}

func (t *Transforms) WithEnum(tr EnumTransform) *Transforms {
	c := t.Clone()
	c.Enum = append(c.Enum, tr)
	return c
}

func (t *Transforms) WithField(tr FieldTransform) *Transforms {
	c := t.Clone()
	c.Field = append(c.Field, tr)
	return c
}

func (t *Transforms) WithAlias(tr TypeAliasTransform) *Transforms {
	c := t.Clone()
	c.Alias = append(c.Alias, tr)
	return c
}

func (t *Transforms) WithAttributes(tr AttributesTransform) *Transforms {
	c := t.Clone()
	c.Attributes = append(c.Attributes, tr)
	return c
}

func (t *Transforms) rewriteAttributes(a model.Attributes) model.Attributes {
	for _, tr := range t.Attributes {
		a = tr.RewriteAttributes(a)
	}
	return a
}

// --- No-op base implementations, embeddable by transforms that only
// care about one hook, favoring minimal-override composition over one
// monolithic interface every caller must fully implement.

type BaseNamespaceTransform struct{}

func (BaseNamespaceTransform) FilterNamespace(*model.Namespace) bool    { return true }
func (BaseNamespaceTransform) RenameNamespace(name string) string      { return name }

type BaseDtoTransform struct{}

func (BaseDtoTransform) FilterDto(*model.Dto) bool                  { return true }
func (BaseDtoTransform) RenameDto(name string) string               { return name }
func (BaseDtoTransform) ReorderFields(f []model.Field) []model.Field { return f }

type BaseRpcTransform struct{}

func (BaseRpcTransform) FilterRpc(*model.Rpc) bool                    { return true }
func (BaseRpcTransform) RenameRpc(name string) string                 { return name }
func (BaseRpcTransform) ReorderParams(p []model.Param) []model.Param  { return p }
func (BaseRpcTransform) RewriteReturn(t *model.TypeRef) *model.TypeRef { return t }
func (BaseRpcTransform) RewriteParamType(t model.TypeRef) model.TypeRef { return t }

type BaseEnumTransform struct{}

func (BaseEnumTransform) FilterEnum(*model.Enum) bool { return true }
func (BaseEnumTransform) RenameEnum(name string) string { return name }
func (BaseEnumTransform) ReorderVariants(v []model.EnumVariant) []model.EnumVariant { return v }

type BaseFieldTransform struct{}

func (BaseFieldTransform) FilterField(*model.Field) bool { return true }
func (BaseFieldTransform) RenameField(name string) string { return name }
func (BaseFieldTransform) RewriteFieldType(t model.TypeRef) model.TypeRef { return t }

type BaseTypeAliasTransform struct{}

func (BaseTypeAliasTransform) FilterAlias(*model.TypeAlias) bool { return true }
func (BaseTypeAliasTransform) RenameAlias(name string) string    { return name }
func (BaseTypeAliasTransform) RewriteAliasTarget(t model.TypeRef) model.TypeRef { return t }

type BaseAttributesTransform struct{}

func (BaseAttributesTransform) RewriteAttributes(a model.Attributes) model.Attributes { return a }
