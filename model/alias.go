package model

// FindTypeAliasTarget resolves id to the type it ultimately aliases,
// recursing through chains of aliases (alias -> alias -> concrete
// type). This is the manual substitution helper generators without
// native alias support can call instead of handling TypeAlias
// themselves. Resolution is bounded by the number of entities in the
// model so a hand-built Model that bypasses Builder.build (whose
// validator already rejects alias cycles) cannot loop forever.
func (m *Model) FindTypeAliasTarget(id EntityId) (TypeRef, bool) {
	bound := m.entityCount() + 1
	cur := id
	for i := 0; i < bound; i++ {
		ref, ok := m.Resolve(cur)
		if !ok || ref.Kind != KindTypeAlias {
			return TypeRef{}, false
		}
		target := ref.Alias.Target
		if target.Kind != TypeApi {
			return target, true
		}
		next, isAlias := m.Resolve(target.Api)
		if !isAlias || next.Kind != KindTypeAlias {
			return target, true
		}
		cur = target.Api
	}
	return TypeRef{}, false
}

func (m *Model) entityCount() int {
	n := 0
	var walk func(ns *Namespace)
	walk = func(ns *Namespace) {
		for _, c := range ns.Children() {
			n++
			if child, ok := c.(*Namespace); ok {
				walk(child)
			}
		}
	}
	walk(m.Root)
	return n
}
