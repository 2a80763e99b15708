package model

// Model is the completed, immutable-after-build API surface returned
// by Builder.build. It is read-only shared
// state: multiple View consumers may read it concurrently.
type Model struct {
	Root *Namespace
}

// NewModel wraps a root namespace as a Model. Used by Builder.build
// once validation has succeeded, and by tests that hand-construct a
// model without going through a Builder.
func NewModel(root *Namespace) *Model { return &Model{Root: root} }

// EntityRef is the polymorphic, by-kind view of one entity addressed
// by an EntityId. Exactly one of the pointer fields
// is non-nil, selected by Kind. Go has no const-reference distinction,
// so EntityRef and MutEntityRef carry identical pointer types; the two
// names exist to document intent at call sites — EntityRef for
// read-only traversal (views, generators), MutEntityRef for the
// builder/validator's in-place stamping and qualification.
type EntityRef struct {
	Kind      Kind
	Namespace *Namespace
	Dto       *Dto
	Rpc       *Rpc
	Enum      *Enum
	Alias     *TypeAlias
}

// MutEntityRef is EntityRef under the "this call site intends to
// mutate" convention. See EntityRef's doc comment.
type MutEntityRef = EntityRef

func refOf(c NamespaceChild) EntityRef {
	switch v := c.(type) {
	case *Namespace:
		return EntityRef{Kind: KindNamespace, Namespace: v}
	case *Dto:
		return EntityRef{Kind: KindDto, Dto: v}
	case *Rpc:
		return EntityRef{Kind: KindRpc, Rpc: v}
	case *Enum:
		return EntityRef{Kind: KindEnum, Enum: v}
	case *TypeAlias:
		return EntityRef{Kind: KindTypeAlias, Alias: v}
	default:
		return EntityRef{}
	}
}

// Attributes returns the attributes of whichever entity the ref holds,
// or nil if the ref is zero-valued.
func (r EntityRef) Attributes() *Attributes {
	switch r.Kind {
	case KindNamespace:
		if r.Namespace != nil {
			return r.Namespace.Attributes()
		}
	case KindDto:
		if r.Dto != nil {
			return r.Dto.Attributes()
		}
	case KindRpc:
		if r.Rpc != nil {
			return r.Rpc.Attributes()
		}
	case KindEnum:
		if r.Enum != nil {
			return r.Enum.Attributes()
		}
	case KindTypeAlias:
		if r.Alias != nil {
			return r.Alias.Attributes()
		}
	}
	return nil
}

// Valid reports whether the ref actually addresses an entity.
func (r EntityRef) Valid() bool {
	return r.Namespace != nil || r.Dto != nil || r.Rpc != nil || r.Enum != nil || r.Alias != nil
}

// Resolve walks id from the model root and returns the addressed
// entity, branching on kind. Intermediate segments must all be
// namespaces (only namespaces nest other entities); the id's own Kind
// (from its last segment) determines which by-kind finder resolves
// the final hop.
func (m *Model) Resolve(id EntityId) (EntityRef, bool) {
	return resolveFrom(m.Root, id)
}

func resolveFrom(root *Namespace, id EntityId) (EntityRef, bool) {
	segs := id.Segments()
	cur := root
	for i, seg := range segs {
		last := i == len(segs)-1
		if !last || seg.Kind == KindNamespace {
			next, ok := cur.FindNamespace(seg.Name)
			if !ok {
				return EntityRef{}, false
			}
			cur = next
			continue
		}
		switch seg.Kind {
		case KindDto:
			if d, ok := cur.FindDto(seg.Name); ok {
				return EntityRef{Kind: KindDto, Dto: d}, true
			}
		case KindRpc:
			if r, ok := cur.FindRpc(seg.Name); ok {
				return EntityRef{Kind: KindRpc, Rpc: r}, true
			}
		case KindEnum:
			if e, ok := cur.FindEnum(seg.Name); ok {
				return EntityRef{Kind: KindEnum, Enum: e}, true
			}
		case KindTypeAlias:
			if a, ok := cur.FindTypeAlias(seg.Name); ok {
				return EntityRef{Kind: KindTypeAlias, Alias: a}, true
			}
		}
		return EntityRef{}, false
	}
	return EntityRef{Kind: KindNamespace, Namespace: cur}, true
}

// qualifiableKinds is the set of kinds an ApiType can name, in probe
// order. A parser rarely knows in advance whether a relative type name
// will turn out to be a Dto, Enum, or TypeAlias, so every candidate
// tail kind is tried at each scope level before moving outward.
var qualifiableKinds = []Kind{KindDto, KindEnum, KindTypeAlias}

// FindQualifiedTypeRelative is the workhorse of qualification: given
// the identifier `from` of the entity that
// contains a type reference, and a (possibly relative) identifier
// `ty`, it probes in inner-to-outer scoping order —
// from+ty, from.Parent()+ty, ..., root+ty — and returns the first hit.
// ty's own tail-segment Kind is used as a hint and tried first, but
// every Dto/Enum/TypeAlias kind is tried at each scope level before
// moving outward, since a parser rarely knows in advance which kind an
// unqualified type name will resolve to.
func (m *Model) FindQualifiedTypeRelative(from EntityId, ty EntityId) (EntityId, bool) {
	kinds := orderedKinds(ty.Kind())
	scope := from
	for {
		for _, k := range kinds {
			candidate := concatIdsWithTailKind(scope, ty, k)
			if ref, ok := m.Resolve(candidate); ok && isTypeEntity(ref.Kind) {
				return candidate, true
			}
		}
		if scope.IsRoot() {
			return EntityId{}, false
		}
		scope = scope.Parent()
	}
}

func orderedKinds(hint Kind) []Kind {
	out := make([]Kind, 0, len(qualifiableKinds))
	seen := map[Kind]bool{}
	if isTypeEntity(hint) {
		out = append(out, hint)
		seen[hint] = true
	}
	for _, k := range qualifiableKinds {
		if !seen[k] {
			out = append(out, k)
		}
	}
	return out
}

func isTypeEntity(k Kind) bool {
	return k == KindDto || k == KindEnum || k == KindTypeAlias
}

// concatIdsWithTailKind is concatIds but with ty's final segment's
// Kind overridden to tailKind, so callers can probe multiple candidate
// kinds for the same textual reference.
func concatIdsWithTailKind(scope EntityId, ty EntityId, tailKind Kind) EntityId {
	segs := append([]IdSegment(nil), ty.Segments()...)
	if n := len(segs); n > 0 {
		segs[n-1].Kind = tailKind
	}
	return concatIds(scope, NewEntityId(segs...))
}

// concatIds appends ty's segments after scope's, e.g. for property 7
// ("P.Q.R.T, P.Q.T, P.T, T") this builds each successive candidate as
// scope (P.Q.R, then P.Q, then P, then the root) concatenated with ty
// (T). Intermediate non-namespace segments of scope make the
// candidate unresolvable, which Resolve reports as a miss rather than
// a panic — exactly the "probe and fall through" behavior the
// property requires.
func concatIds(scope EntityId, ty EntityId) EntityId {
	out := make([]IdSegment, 0, scope.Len()+ty.Len())
	out = append(out, scope.Segments()...)
	out = append(out, ty.Segments()...)
	return NewEntityId(out...)
}
