package validate

import "github.com/nswarm/apyxl/model"

// stamp is the third validation pass: assign every entity's
// attributes.entity_id to its absolute identifier. Runs before type
// qualification so qualification errors can reference entities by
// fully-qualified name.
func stamp(ns *model.Namespace, id model.EntityId) {
	ns.Attributes().SetEntityId(id)
	for _, child := range ns.Children() {
		childId := id.Append(child.Name(), child.Kind())
		if nested, ok := child.(*model.Namespace); ok {
			stamp(nested, childId)
			continue
		}
		child.Attributes().SetEntityId(childId)
	}
}
