package validate

import (
	"github.com/nswarm/apyxl/apyxlerr"
	"github.com/nswarm/apyxl/model"
)

// qualifyTypes is the fourth validation pass: for every type reference at
// a field/param/return/alias-target site, qualify it relative to the
// id of its enclosing entity, replacing it in place. Unresolved
// references are reported but do not stop the walk — every bad
// reference in the model is surfaced in one pass.
func qualifyTypes(m *model.Model, ns *model.Namespace, errs *apyxlerr.List, userTypes map[string]bool) {
	for _, child := range ns.Children() {
		switch c := child.(type) {
		case *model.Namespace:
			qualifyTypes(m, c, errs, userTypes)
		case *model.Dto:
			id, _ := c.Attributes().EntityId()
			for i := range c.Fields {
				qualified, err := c.Fields[i].Type.Qualify(m, id, userTypes)
				if err != nil {
					errs.Add(toInvalidType(id, c.Fields[i].Type, err))
					continue
				}
				c.Fields[i].Type = qualified
			}
		case *model.Rpc:
			id, _ := c.Attributes().EntityId()
			for i := range c.Params {
				qualified, err := c.Params[i].Type.Qualify(m, id, userTypes)
				if err != nil {
					errs.Add(toInvalidType(id, c.Params[i].Type, err))
					continue
				}
				c.Params[i].Type = qualified
			}
			if c.Return != nil {
				qualified, err := c.Return.Qualify(m, id, userTypes)
				if err != nil {
					errs.Add(toInvalidType(id, *c.Return, err))
					continue
				}
				c.Return = &qualified
			}
		case *model.TypeAlias:
			id, _ := c.Attributes().EntityId()
			qualified, err := c.Target.Qualify(m, id, userTypes)
			if err != nil {
				errs.Add(toInvalidType(id, c.Target, err))
				continue
			}
			c.Target = qualified
		}
	}
}

func toInvalidType(id model.EntityId, t model.TypeRef, err error) error {
	if it, ok := err.(*model.InvalidTypeError); ok {
		return &apyxlerr.InvalidType{EntityId: id, Type: t, Reason: it.Reason}
	}
	return &apyxlerr.InvalidType{EntityId: id, Type: t, Reason: err.Error()}
}
