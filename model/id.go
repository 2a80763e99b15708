package model

import (
	"strings"
	"unicode"
)

// Kind tags the variety of entity an EntityId segment addresses.
type Kind int

const (
	// KindNamespace addresses a Namespace.
	KindNamespace Kind = iota
	// KindDto addresses a Dto.
	KindDto
	// KindRpc addresses an Rpc.
	KindRpc
	// KindEnum addresses an Enum.
	KindEnum
	// KindTypeAlias addresses a TypeAlias.
	KindTypeAlias
)

func (k Kind) String() string {
	switch k {
	case KindNamespace:
		return "namespace"
	case KindDto:
		return "dto"
	case KindRpc:
		return "rpc"
	case KindEnum:
		return "enum"
	case KindTypeAlias:
		return "alias"
	default:
		return "unknown"
	}
}

// IdSegment is one (name, kind) hop of an EntityId.
type IdSegment struct {
	Name string
	Kind Kind
}

// EntityId is an ordered, typed path rooted at the anonymous root
// namespace. The empty EntityId denotes the root namespace itself.
type EntityId struct {
	segments []IdSegment
}

// RootId returns the identifier of the anonymous root namespace.
func RootId() EntityId { return EntityId{} }

// NewEntityId builds an identifier from explicit segments.
func NewEntityId(segments ...IdSegment) EntityId {
	cp := make([]IdSegment, len(segments))
	copy(cp, segments)
	return EntityId{segments: cp}
}

// Append returns a new identifier with one more segment appended. The
// receiver is left unmodified.
func (id EntityId) Append(name string, kind Kind) EntityId {
	cp := make([]IdSegment, len(id.segments)+1)
	copy(cp, id.segments)
	cp[len(id.segments)] = IdSegment{Name: name, Kind: kind}
	return EntityId{segments: cp}
}

// Parent drops the last segment. Parent of the root is the root.
func (id EntityId) Parent() EntityId {
	if len(id.segments) == 0 {
		return id
	}
	return EntityId{segments: id.segments[:len(id.segments)-1]}
}

// IsRoot reports whether this identifier addresses the root namespace.
func (id EntityId) IsRoot() bool { return len(id.segments) == 0 }

// Segments returns the identifier's segments. The returned slice must
// not be mutated by the caller.
func (id EntityId) Segments() []IdSegment { return id.segments }

// Len returns the number of segments.
func (id EntityId) Len() int { return len(id.segments) }

// Last returns the final segment and true, or the zero segment and
// false if this is the root identifier.
func (id EntityId) Last() (IdSegment, bool) {
	if len(id.segments) == 0 {
		return IdSegment{}, false
	}
	return id.segments[len(id.segments)-1], true
}

// Kind returns the kind of the addressed entity, or KindNamespace for
// the root.
func (id EntityId) Kind() Kind {
	if seg, ok := id.Last(); ok {
		return seg.Kind
	}
	return KindNamespace
}

// IsAncestorOf reports whether id is a strict prefix of other.
func (id EntityId) IsAncestorOf(other EntityId) bool {
	if len(id.segments) >= len(other.segments) {
		return false
	}
	for i, s := range id.segments {
		if other.segments[i] != s {
			return false
		}
	}
	return true
}

// IsDescendantOf reports whether other is a strict prefix of id.
func (id EntityId) IsDescendantOf(other EntityId) bool { return other.IsAncestorOf(id) }

// Equal reports segment-wise equality, including kind.
func (id EntityId) Equal(other EntityId) bool {
	if len(id.segments) != len(other.segments) {
		return false
	}
	for i, s := range id.segments {
		if other.segments[i] != s {
			return false
		}
	}
	return true
}

// String renders the identifier as dotted names, e.g. "A.B.User.Id".
// The root renders as the empty string.
func (id EntityId) String() string {
	names := make([]string, len(id.segments))
	for i, s := range id.segments {
		names[i] = s.Name
	}
	return strings.Join(names, ".")
}

// ParseEntityId parses a dotted-name identifier previously produced by
// String, given the kind of every non-namespace tail segment. Because
// the textual form alone does not carry kind information for
// intermediate segments (namespaces don't encode a kind marker),
// callers that need a faithful round-trip must supply the kind of the
// final segment; every segment before it is assumed to be a
// Namespace, which holds for every identifier actually produced by
// this package (only the tail segment of an EntityId names a
// non-namespace entity — see model.Namespace, which only nests
// Namespace children under other Namespace children).
func ParseEntityId(text string, tailKind Kind) (EntityId, error) {
	if text == "" {
		return RootId(), nil
	}
	parts := strings.Split(text, ".")
	segs := make([]IdSegment, len(parts))
	for i, p := range parts {
		if p == "" {
			return EntityId{}, &InvalidNameError{Name: text}
		}
		kind := KindNamespace
		if i == len(parts)-1 {
			kind = tailKind
		}
		segs[i] = IdSegment{Name: p, Kind: kind}
	}
	return EntityId{segments: segs}, nil
}

// IsValidIdentifier reports whether name satisfies the minimum
// identifier grammar required of every entity, field, and parameter
// name: non-empty, and free of '.' and whitespace.
// Concrete parsers (e.g. internal/textidl) may enforce a stricter
// source-level grammar; the core model only enforces this minimum so
// it doesn't over-constrain parsers for other source languages.
func IsValidIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if r == '.' || unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// InvalidNameError reports an identifier segment that failed the
// identifier grammar (empty, or containing '.' or whitespace).
type InvalidNameError struct {
	Name string
}

func (e *InvalidNameError) Error() string {
	return "invalid entity name: " + e.Name
}
