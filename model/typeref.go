package model

import (
	"fmt"
	"strings"
)

// Primitive enumerates the built-in scalar types: signed/unsigned
// integers of {8,16,32,64,128,machine}, two float widths, bool,
// string, and bytes.
type Primitive int

const (
	Bool Primitive = iota
	I8
	I16
	I32
	I64
	I128
	Int // machine-width signed
	U8
	U16
	U32
	U64
	U128
	Uint // machine-width unsigned
	F32
	F64
	String
	Bytes
)

var primitiveNames = map[Primitive]string{
	Bool: "bool", I8: "i8", I16: "i16", I32: "i32", I64: "i64", I128: "i128", Int: "int",
	U8: "u8", U16: "u16", U32: "u32", U64: "u64", U128: "u128", Uint: "uint",
	F32: "f32", F64: "f64", String: "string", Bytes: "bytes",
}

func (p Primitive) String() string {
	if n, ok := primitiveNames[p]; ok {
		return n
	}
	return "invalid-primitive"
}

// TypeKind tags which shape a TypeRef currently holds.
type TypeKind int

const (
	TypePrimitive TypeKind = iota
	TypeArray
	TypeMap
	TypeOptional
	TypeApi
	TypeUser
	TypeFunction
)

// TypeRef is the tagged-variant type reference described in .
// Only the fields relevant to Kind are populated; it is a value type
// so it can be copied freely (e.g. by View projections).
type TypeRef struct {
	Kind TypeKind

	Primitive Primitive // TypePrimitive

	Elem *TypeRef // TypeArray, TypeOptional: element type

	Key   *TypeRef // TypeMap
	Value *TypeRef // TypeMap

	Api EntityId // TypeApi: resolved (or, pre-qualification, relative) entity id

	UserName    string            // TypeUser
	UserPayload map[string]string // TypeUser: opaque parser-defined payload

	Params []TypeRef // TypeFunction
	Return *TypeRef  // TypeFunction, optional
}

// NewPrimitive constructs a primitive type reference.
func NewPrimitive(p Primitive) TypeRef { return TypeRef{Kind: TypePrimitive, Primitive: p} }

// NewArray constructs an Array(elem) type reference.
func NewArray(elem TypeRef) TypeRef { return TypeRef{Kind: TypeArray, Elem: &elem} }

// NewMap constructs a Map(key, value) type reference.
func NewMap(key, value TypeRef) TypeRef { return TypeRef{Kind: TypeMap, Key: &key, Value: &value} }

// NewOptional constructs an Optional(elem) type reference.
func NewOptional(elem TypeRef) TypeRef { return TypeRef{Kind: TypeOptional, Elem: &elem} }

// NewApiType constructs an ApiType reference. Before qualification id
// is whatever relative identifier the parser produced (commonly a
// single-segment name); after qualification it is absolute.
func NewApiType(id EntityId) TypeRef { return TypeRef{Kind: TypeApi, Api: id} }

// NewUserType constructs a User(name, payload) escape-hatch reference.
func NewUserType(name string, payload map[string]string) TypeRef {
	return TypeRef{Kind: TypeUser, UserName: name, UserPayload: payload}
}

// NewFunction constructs a Function(params, ret) reference.
func NewFunction(params []TypeRef, ret *TypeRef) TypeRef {
	return TypeRef{Kind: TypeFunction, Params: params, Return: ret}
}

// Equal reports structural equality between two type references.
func (t TypeRef) Equal(o TypeRef) bool {
	if t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case TypePrimitive:
		return t.Primitive == o.Primitive
	case TypeArray, TypeOptional:
		return elemEqual(t.Elem, o.Elem)
	case TypeMap:
		return elemEqual(t.Key, o.Key) && elemEqual(t.Value, o.Value)
	case TypeApi:
		return t.Api.Equal(o.Api)
	case TypeUser:
		if t.UserName != o.UserName || len(t.UserPayload) != len(o.UserPayload) {
			return false
		}
		for k, v := range t.UserPayload {
			if o.UserPayload[k] != v {
				return false
			}
		}
		return true
	case TypeFunction:
		if len(t.Params) != len(o.Params) {
			return false
		}
		for i := range t.Params {
			if !t.Params[i].Equal(o.Params[i]) {
				return false
			}
		}
		return elemEqual(t.Return, o.Return)
	}
	return false
}

func elemEqual(a, b *TypeRef) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// String renders a printable form of the type reference, e.g.
// "array<optional<A.B.User>>".
func (t TypeRef) String() string {
	switch t.Kind {
	case TypePrimitive:
		return t.Primitive.String()
	case TypeArray:
		return fmt.Sprintf("array<%s>", t.Elem.String())
	case TypeMap:
		return fmt.Sprintf("map<%s, %s>", t.Key.String(), t.Value.String())
	case TypeOptional:
		return fmt.Sprintf("optional<%s>", t.Elem.String())
	case TypeApi:
		return t.Api.String()
	case TypeUser:
		return fmt.Sprintf("user<%s>", t.UserName)
	case TypeFunction:
		parts := make([]string, len(t.Params))
		for i, p := range t.Params {
			parts[i] = p.String()
		}
		ret := "void"
		if t.Return != nil {
			ret = t.Return.String()
		}
		return fmt.Sprintf("fn(%s) -> %s", strings.Join(parts, ", "), ret)
	}
	return "invalid-type"
}
