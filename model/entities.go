package model

// NamespaceChild is the tagged-variant interface implemented by every
// value a Namespace can directly own: a nested *Namespace, *Dto, *Rpc,
// *Enum, or *TypeAlias. This is a tagged sum, not a subtype hierarchy,
// expressed as a Go interface plus a Kind tag. Call sites that need the
// concrete shape either type-switch on this interface or, for an entity
// addressed by EntityId, use Model.Resolve to get a fully-cased
// EntityRef.
type NamespaceChild interface {
	Name() string
	Kind() Kind
	Attributes() *Attributes
}

// Field is a single member of a Dto: {name, type reference, attributes}.
type Field struct {
	FieldName  string
	Type       TypeRef
	Attributes Attributes
}

// Param is a single parameter of an Rpc: {name, type, attributes}.
// Parsers that attach a synthetic self-like receiver do so as an
// ordinary User-typed Param; the core treats it as pass-through data,
//.
type Param struct {
	ParamName  string
	Type       TypeRef
	Attributes Attributes
}

// EnumVariant is one {name, value, attributes} entry of an Enum.
// HasExplicitValue distinguishes a parsed "= 0" from an omitted value
// that the validator's Shape pass fills in as next-sequential
//.
type EnumVariant struct {
	VariantName      string
	Value            int64
	HasExplicitValue bool
	Attributes       Attributes
}

// Dto is a structured record type.
type Dto struct {
	DtoName    string
	Fields     []Field
	attributes Attributes
}

func NewDto(name string) *Dto { return &Dto{DtoName: name} }

func (d *Dto) Name() string            { return d.DtoName }
func (d *Dto) Kind() Kind              { return KindDto }
func (d *Dto) Attributes() *Attributes { return &d.attributes }

// Rpc is a declared remote procedure.
type Rpc struct {
	RpcName    string
	Params     []Param
	Return     *TypeRef // optional
	attributes Attributes
}

func NewRpc(name string) *Rpc { return &Rpc{RpcName: name} }

func (r *Rpc) Name() string            { return r.RpcName }
func (r *Rpc) Kind() Kind              { return KindRpc }
func (r *Rpc) Attributes() *Attributes { return &r.attributes }

// Enum is a named set of integer-valued variants.
type Enum struct {
	EnumName   string
	Variants   []EnumVariant
	attributes Attributes
}

func NewEnum(name string) *Enum { return &Enum{EnumName: name} }

func (e *Enum) Name() string            { return e.EnumName }
func (e *Enum) Kind() Kind              { return KindEnum }
func (e *Enum) Attributes() *Attributes { return &e.attributes }

// TypeAlias is a name bound to a target type reference.
type TypeAlias struct {
	AliasName  string
	Target     TypeRef
	attributes Attributes
}

func NewTypeAlias(name string, target TypeRef) *TypeAlias {
	return &TypeAlias{AliasName: name, Target: target}
}

func (a *TypeAlias) Name() string            { return a.AliasName }
func (a *TypeAlias) Kind() Kind              { return KindTypeAlias }
func (a *TypeAlias) Attributes() *Attributes { return &a.attributes }

// Namespace owns an ordered sequence of NamespaceChild values. Storage
// is a plain slice, never a map, so that iteration order exactly
// mirrors merge order; a side index keyed by name accelerates the by-name finders
// without affecting iteration.
type Namespace struct {
	NsName     string
	children   []NamespaceChild
	byName     map[string][]int
	attributes Attributes
}

func NewNamespace(name string) *Namespace {
	return &Namespace{NsName: name, byName: map[string][]int{}}
}

func (n *Namespace) Name() string            { return n.NsName }
func (n *Namespace) Kind() Kind              { return KindNamespace }
func (n *Namespace) Attributes() *Attributes { return &n.attributes }

// Children returns the namespace's direct children in insertion order.
// The returned slice must not be mutated.
func (n *Namespace) Children() []NamespaceChild { return n.children }

// AddChild appends a child, preserving order. It does not check for or
// reject duplicate names — requires duplicates to survive
// merge and be surfaced as validation errors, not silently dropped or
// overwritten.
func (n *Namespace) AddChild(c NamespaceChild) {
	if n.byName == nil {
		n.byName = map[string][]int{}
	}
	idx := len(n.children)
	n.children = append(n.children, c)
	n.byName[c.Name()] = append(n.byName[c.Name()], idx)
}

// ChildrenNamed returns every direct child with the given name,
// regardless of kind, in insertion order. More than one result means a
// duplicate-definition the validator should (or did) flag.
func (n *Namespace) ChildrenNamed(name string) []NamespaceChild {
	idxs := n.byName[name]
	if len(idxs) == 0 {
		return nil
	}
	out := make([]NamespaceChild, len(idxs))
	for i, idx := range idxs {
		out[i] = n.children[idx]
	}
	return out
}

// ChildrenOfKind returns every direct child of the given kind, in
// insertion order.
func (n *Namespace) ChildrenOfKind(k Kind) []NamespaceChild {
	var out []NamespaceChild
	for _, c := range n.children {
		if c.Kind() == k {
			out = append(out, c)
		}
	}
	return out
}

// FindNamespace locates a direct child namespace by name.
func (n *Namespace) FindNamespace(name string) (*Namespace, bool) {
	for _, c := range n.ChildrenNamed(name) {
		if ns, ok := c.(*Namespace); ok {
			return ns, true
		}
	}
	return nil, false
}

// FindDto locates a direct child Dto by name.
func (n *Namespace) FindDto(name string) (*Dto, bool) {
	for _, c := range n.ChildrenNamed(name) {
		if d, ok := c.(*Dto); ok {
			return d, true
		}
	}
	return nil, false
}

// FindRpc locates a direct child Rpc by name.
func (n *Namespace) FindRpc(name string) (*Rpc, bool) {
	for _, c := range n.ChildrenNamed(name) {
		if r, ok := c.(*Rpc); ok {
			return r, true
		}
	}
	return nil, false
}

// FindEnum locates a direct child Enum by name.
func (n *Namespace) FindEnum(name string) (*Enum, bool) {
	for _, c := range n.ChildrenNamed(name) {
		if e, ok := c.(*Enum); ok {
			return e, true
		}
	}
	return nil, false
}

// FindTypeAlias locates a direct child TypeAlias by name.
func (n *Namespace) FindTypeAlias(name string) (*TypeAlias, bool) {
	for _, c := range n.ChildrenNamed(name) {
		if a, ok := c.(*TypeAlias); ok {
			return a, true
		}
	}
	return nil, false
}
