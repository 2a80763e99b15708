// Package apyxlerr holds the core error-kind taxonomy: a handful of
// named concrete types implementing error rather than one generic
// error carrying a string tag, so callers can type-switch (or, for a
// single error, errors.As) their way to the specific kind when they
// need to.
package apyxlerr

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nswarm/apyxl/model"
)

// ParseError reports that a source chunk did not yield a valid
// sub-tree. The affected chunk contributes nothing to the builder.
type ParseError struct {
	Chunk   string
	Line    int
	Column  int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: parse error: %s", e.Chunk, e.Line, e.Column, e.Message)
}

// DuplicateDefinition reports that two non-namespace children share a
// name within one namespace.
type DuplicateDefinition struct {
	EntityId model.EntityId
}

func (e *DuplicateDefinition) Error() string {
	return fmt.Sprintf("%s: duplicate definition", e.EntityId)
}

// InvalidName reports a name that violates the identifier grammar.
type InvalidName struct {
	EntityId      model.EntityId
	OffendingName string
}

func (e *InvalidName) Error() string {
	return fmt.Sprintf("%s: invalid name %q", e.EntityId, e.OffendingName)
}

// InvalidType reports a type reference that could not be qualified.
type InvalidType struct {
	EntityId model.EntityId
	Type     model.TypeRef
	Reason   string
}

func (e *InvalidType) Error() string {
	return fmt.Sprintf("%s: invalid type %s: %s", e.EntityId, e.Type.String(), e.Reason)
}

// AliasCycle reports a cycle among TypeAlias targets.
type AliasCycle struct {
	Ids []model.EntityId
}

func (e *AliasCycle) Error() string {
	parts := make([]string, len(e.Ids))
	for i, id := range e.Ids {
		parts[i] = id.String()
	}
	return fmt.Sprintf("alias cycle: %s", strings.Join(parts, " -> "))
}

// EnumValueConflict reports a repeated explicit enum variant value.
type EnumValueConflict struct {
	EntityId model.EntityId
	Value    int64
}

func (e *EnumValueConflict) Error() string {
	return fmt.Sprintf("%s: enum value %d used more than once", e.EntityId, e.Value)
}

// GeneratorError wraps an opaque error raised by a generator.
type GeneratorError struct {
	Generator string
	Cause     error
}

func (e *GeneratorError) Error() string {
	return fmt.Sprintf("generator %q: %v", e.Generator, e.Cause)
}

func (e *GeneratorError) Unwrap() error { return e.Cause }

// List accumulates errors across validation passes under an "all
// passes run even when earlier passes fail" policy. It is not
// itself an error until non-empty; callers test len(list) == 0 or call
// AsError. List has no Unwrap method, so errors.As does not look inside
// it: callers range over its elements and type-switch on each.
type List []error

// Add appends a non-nil error.
func (l *List) Add(err error) {
	if err != nil {
		*l = append(*l, err)
	}
}

// AsError returns nil if the list is empty, or the list itself
// (implementing error) otherwise.
func (l List) AsError() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

func (l List) Error() string {
	parts := make([]string, len(l))
	for i, e := range l {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "\n")
}

// SortDeterministic orders the list for stable, reproducible output:
// first by a coarse pass-order rank (so e.g. all InvalidName errors
// sort before InvalidType errors, mirroring the fixed validation pass
// sequence), then by entity id string, then by message.
func (l List) SortDeterministic() {
	sort.SliceStable(l, func(i, j int) bool {
		ri, rj := passRank(l[i]), passRank(l[j])
		if ri != rj {
			return ri < rj
		}
		ei, ej := entityIdOf(l[i]), entityIdOf(l[j])
		if ei != ej {
			return ei < ej
		}
		return l[i].Error() < l[j].Error()
	})
}

func passRank(err error) int {
	switch err.(type) {
	case *InvalidName:
		return 0
	case *EnumValueConflict:
		return 0
	case *DuplicateDefinition:
		return 1
	case *InvalidType:
		return 3
	case *AliasCycle:
		return 4
	default:
		return 5
	}
}

func entityIdOf(err error) string {
	switch e := err.(type) {
	case *DuplicateDefinition:
		return e.EntityId.String()
	case *InvalidName:
		return e.EntityId.String()
	case *InvalidType:
		return e.EntityId.String()
	case *EnumValueConflict:
		return e.EntityId.String()
	default:
		return ""
	}
}
