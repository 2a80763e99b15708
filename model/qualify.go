package model

import "fmt"

// InvalidTypeError reports a type reference that could not be
// qualified: an ApiType whose relative lookup found nothing, or a
// User reference whose name is not declared in user_types and does not
// resolve to any API entity either.
type InvalidTypeError struct {
	EntityId EntityId
	Type     TypeRef
	Reason   string
}

func (e *InvalidTypeError) Error() string {
	return fmt.Sprintf("%s: cannot qualify type %s: %s", e.EntityId, e.Type.String(), e.Reason)
}

// Qualify replaces every ApiType contained in t with its absolute
// form, resolved relative to `from` via within.FindQualifiedTypeRelative.
// User references whose name is declared in userTypes are left
// untouched. A User reference whose name is *not* declared is given
// one more chance: if it resolves to an API entity in scope it is
// rewritten in place as that ApiType (exact name clashes between a
// user-type name and an API entity name are resolved in favor of the
// API entity); otherwise qualification fails. Composite shapes (Array,
// Map, Optional, Function) recurse.
func (t TypeRef) Qualify(within *Model, from EntityId, userTypes map[string]bool) (TypeRef, error) {
	switch t.Kind {
	case TypePrimitive:
		return t, nil

	case TypeArray, TypeOptional:
		elem, err := t.Elem.Qualify(within, from, userTypes)
		if err != nil {
			return TypeRef{}, err
		}
		out := t
		out.Elem = &elem
		return out, nil

	case TypeMap:
		key, err := t.Key.Qualify(within, from, userTypes)
		if err != nil {
			return TypeRef{}, err
		}
		val, err := t.Value.Qualify(within, from, userTypes)
		if err != nil {
			return TypeRef{}, err
		}
		out := t
		out.Key, out.Value = &key, &val
		return out, nil

	case TypeFunction:
		out := t
		out.Params = make([]TypeRef, len(t.Params))
		for i, p := range t.Params {
			q, err := p.Qualify(within, from, userTypes)
			if err != nil {
				return TypeRef{}, err
			}
			out.Params[i] = q
		}
		if t.Return != nil {
			ret, err := t.Return.Qualify(within, from, userTypes)
			if err != nil {
				return TypeRef{}, err
			}
			out.Return = &ret
		}
		return out, nil

	case TypeApi:
		abs, ok := within.FindQualifiedTypeRelative(from, t.Api)
		if !ok {
			return TypeRef{}, &InvalidTypeError{EntityId: from, Type: t, Reason: "no matching Dto/Enum/TypeAlias in scope"}
		}
		return NewApiType(abs), nil

	case TypeUser:
		if userTypes[t.UserName] {
			return t, nil
		}
		// Kind on this lookup id is a placeholder: FindQualifiedTypeRelative
		// tries every Dto/Enum/TypeAlias kind at each scope level regardless
		// of what's set here.
		if abs, ok := within.FindQualifiedTypeRelative(from, NewEntityId(IdSegment{Name: t.UserName, Kind: KindDto})); ok {
			return NewApiType(abs), nil
		}
		return TypeRef{}, &InvalidTypeError{EntityId: from, Type: t, Reason: "not declared in user_types and no matching API entity"}

	default:
		return TypeRef{}, &InvalidTypeError{EntityId: from, Type: t, Reason: "unknown type kind"}
	}
}
