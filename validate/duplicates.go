package validate

import (
	"github.com/nswarm/apyxl/apyxlerr"
	"github.com/nswarm/apyxl/model"
)

// duplicates is the second validation pass: within each namespace, no two
// non-namespace children may share a name — a Dto and an Enum of the
// same name is as much a conflict as two Dtos. Namespaces with the
// same name at the same path are never conflicts; they were already
// unioned together by the builder.
func duplicates(ns *model.Namespace, errs *apyxlerr.List) {
	walkDuplicates(ns, model.RootId(), errs)
}

func walkDuplicates(ns *model.Namespace, id model.EntityId, errs *apyxlerr.List) {
	reported := map[string]bool{}
	for _, child := range ns.Children() {
		if child.Kind() == model.KindNamespace {
			continue
		}
		if reported[child.Name()] {
			continue
		}
		siblings := nonNamespaceSiblings(ns, child.Name())
		if len(siblings) > 1 {
			errs.Add(&apyxlerr.DuplicateDefinition{EntityId: id.Append(child.Name(), child.Kind())})
			reported[child.Name()] = true
		}
	}
	for _, child := range ns.ChildrenOfKind(model.KindNamespace) {
		walkDuplicates(child.(*model.Namespace), id.Append(child.Name(), model.KindNamespace), errs)
	}
}

func nonNamespaceSiblings(ns *model.Namespace, name string) []model.NamespaceChild {
	var out []model.NamespaceChild
	for _, c := range ns.ChildrenNamed(name) {
		if c.Kind() != model.KindNamespace {
			out = append(out, c)
		}
	}
	return out
}
