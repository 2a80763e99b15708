package view

import "github.com/nswarm/apyxl/model"

// DtoView is the immutable projection of a model.Dto.
type DtoView struct {
	v   View
	dto *model.Dto
}

func (d DtoView) Name() string {
	name := d.dto.Name()
	for _, t := range d.v.transforms.Dto {
		name = t.RenameDto(name)
	}
	return name
}

func (d DtoView) EntityId() (model.EntityId, bool) { return d.dto.Attributes().EntityId() }

func (d DtoView) Attributes() model.Attributes {
	return d.v.transforms.rewriteAttributes(*d.dto.Attributes())
}

// Fields returns the Dto's fields after every DtoTransform's
// ReorderFields has applied (in chain order) and every surviving field
// is filtered through the FieldTransform chain.
func (d DtoView) Fields() []FieldView {
	fields := append([]model.Field(nil), d.dto.Fields...)
	for _, t := range d.v.transforms.Dto {
		fields = t.ReorderFields(fields)
	}
	out := make([]FieldView, 0, len(fields))
	for _, f := range fields {
		f := f
		keep := true
		for _, t := range d.v.transforms.Field {
			if !t.FilterField(&f) {
				keep = false
				break
			}
		}
		if !keep {
			continue
		}
		out = append(out, FieldView{v: d.v, field: f})
	}
	return out
}
