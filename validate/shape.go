package validate

import (
	"github.com/nswarm/apyxl/apyxlerr"
	"github.com/nswarm/apyxl/model"
)

// shape is the first validation pass: identifier-grammar validity on
// every name, non-empty names, enum-value uniqueness within each
// enum, and field/param name uniqueness within each Dto/Rpc. It also
// assigns implicit next-sequential values to enum variants that
// weren't given an explicit one.
func shape(ns *model.Namespace, id model.EntityId, errs *apyxlerr.List) {
	for _, child := range ns.Children() {
		childId := id.Append(child.Name(), child.Kind())
		if !model.IsValidIdentifier(child.Name()) {
			errs.Add(&apyxlerr.InvalidName{EntityId: childId, OffendingName: child.Name()})
		}
		switch c := child.(type) {
		case *model.Namespace:
			shape(c, childId, errs)
		case *model.Dto:
			shapeFields(c, childId, errs)
		case *model.Rpc:
			shapeParams(c, childId, errs)
		case *model.Enum:
			shapeEnum(c, childId, errs)
		case *model.TypeAlias:
			// No further shape to check beyond the name itself.
		}
	}
}

func shapeFields(d *model.Dto, id model.EntityId, errs *apyxlerr.List) {
	seen := map[string]bool{}
	for _, f := range d.Fields {
		if !model.IsValidIdentifier(f.FieldName) {
			errs.Add(&apyxlerr.InvalidName{EntityId: id, OffendingName: f.FieldName})
			continue
		}
		if seen[f.FieldName] {
			errs.Add(&apyxlerr.DuplicateDefinition{EntityId: id.Append(f.FieldName, model.KindDto)})
			continue
		}
		seen[f.FieldName] = true
	}
}

func shapeParams(r *model.Rpc, id model.EntityId, errs *apyxlerr.List) {
	seen := map[string]bool{}
	for _, p := range r.Params {
		if !model.IsValidIdentifier(p.ParamName) {
			errs.Add(&apyxlerr.InvalidName{EntityId: id, OffendingName: p.ParamName})
			continue
		}
		if seen[p.ParamName] {
			errs.Add(&apyxlerr.DuplicateDefinition{EntityId: id.Append(p.ParamName, model.KindRpc)})
			continue
		}
		seen[p.ParamName] = true
	}
}

func shapeEnum(e *model.Enum, id model.EntityId, errs *apyxlerr.List) {
	used := map[int64]bool{}
	next := int64(0)
	for i := range e.Variants {
		v := &e.Variants[i]
		if !model.IsValidIdentifier(v.VariantName) {
			errs.Add(&apyxlerr.InvalidName{EntityId: id, OffendingName: v.VariantName})
		}
		if !v.HasExplicitValue {
			v.Value = next
		}
		if used[v.Value] {
			errs.Add(&apyxlerr.EnumValueConflict{EntityId: id, Value: v.Value})
		}
		used[v.Value] = true
		next = v.Value + 1
	}
}
