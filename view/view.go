// Package view implements the immutable, cloneable projection layer sitting
// between the validated model and the generators. A View borrows a
// *model.Model plus an ordered Transforms chain and never mutates the
// model; every generator-facing adjustment (filtering, renaming,
// reordering, type rewriting) is a transform composed at call time rather
// than baked into the model itself, following the small-value-type,
// composition-over-configuration idiom used throughout this module.
package view

import "github.com/nswarm/apyxl/model"

// View is a read-only projection over a *model.Model, restricted to
// the sub-tree rooted at Root and reshaped by Transforms. Two views
// sharing a model may apply independent transform chains and be read
// concurrently.
type View struct {
	m          *model.Model
	root       model.EntityId
	transforms *Transforms
}

// New returns a View over the whole model with an empty transform
// chain.
func New(m *model.Model) View {
	return View{m: m, root: model.RootId(), transforms: NewTransforms()}
}

// WithTransforms returns a copy of v using t as its transform chain.
func (v View) WithTransforms(t *Transforms) View {
	v.transforms = t
	return v
}

// Transforms returns the chain this view currently applies.
func (v View) Transforms() *Transforms { return v.transforms }

// Clone duplicates v: a fresh copy of the transform chain (so
// appending further transforms to the clone never affects v) over the
// same model borrow. The model itself is never copied.
func (v View) Clone() View {
	return View{m: v.m, root: v.root, transforms: v.transforms.Clone()}
}

// Root returns the NamespaceView for the view's root entity. If the
// root identifier does not address a namespace — which can only happen
// if a View was constructed against a non-namespace id by hand,
// bypassing SubView's own check — the returned NamespaceView's Valid
// reports false.
func (v View) Root() NamespaceView {
	ref, ok := v.m.Resolve(v.root)
	if !ok || ref.Kind != model.KindNamespace {
		return NamespaceView{v: v, ns: nil}
	}
	return NamespaceView{v: v, ns: ref.Namespace}
}

// SubView restricts v to the sub-tree rooted at id, keeping the same
// transform chain. id must address a Namespace; ok is false otherwise.
func (v View) SubView(id model.EntityId) (View, bool) {
	ref, ok := v.m.Resolve(id)
	if !ok || ref.Kind != model.KindNamespace {
		return View{}, false
	}
	return View{m: v.m, root: id, transforms: v.transforms}, true
}

// ChunkView is one chunk's slice of a View, produced by ApiChunkedIter.
type ChunkView struct {
	// ChunkTag is the chunk this view was restricted to.
	ChunkTag string
	// View exposes exactly the entities originating from ChunkTag plus
	// the namespace skeleton required to address them.
	View View
}

// ApiChunkedIter partitions v into one sub-view per chunk tag stamped
// by the builder. Each returned view shares v's
// transform chain; its model is a synthetic namespace tree of its own
// (ancestor namespaces only, no sibling entities from other chunks)
// whose leaf entities are the original model's entities themselves,
// not copies.
func (v View) ApiChunkedIter() []ChunkView {
	root, ok := v.m.Resolve(v.root)
	if !ok || root.Kind != model.KindNamespace {
		return nil
	}
	byChunk := map[string]*model.Namespace{}
	var order []string
	var walk func(src *model.Namespace, path []model.IdSegment)
	walk = func(src *model.Namespace, path []model.IdSegment) {
		for _, child := range src.Children() {
			childPath := append(append([]model.IdSegment{}, path...), model.IdSegment{Name: child.Name(), Kind: child.Kind()})
			if ns, isNs := child.(*model.Namespace); isNs {
				walk(ns, childPath)
				continue
			}
			tag, _ := child.Attributes().ChunkTag()
			dstRoot, seen := byChunk[tag]
			if !seen {
				dstRoot = model.NewNamespace("")
				byChunk[tag] = dstRoot
				order = append(order, tag)
			}
			graftPath(dstRoot, path, child)
		}
	}
	walk(root.Namespace, nil)

	out := make([]ChunkView, 0, len(order))
	for _, tag := range order {
		m := model.NewModel(byChunk[tag])
		cv := View{m: m, root: model.RootId(), transforms: v.transforms}
		out = append(out, ChunkView{ChunkTag: tag, View: cv})
	}
	return out
}

// graftPath ensures the chain of namespaces named by path exists under
// dst, creating them as needed, then appends leaf as a child of the
// final namespace.
func graftPath(dst *model.Namespace, path []model.IdSegment, leaf model.NamespaceChild) {
	cur := dst
	for _, seg := range path {
		next, ok := cur.FindNamespace(seg.Name)
		if !ok {
			next = model.NewNamespace(seg.Name)
			cur.AddChild(next)
		}
		cur = next
	}
	cur.AddChild(leaf)
}
