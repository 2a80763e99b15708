package view

import "github.com/nswarm/apyxl/model"

// FieldView is the immutable projection of a model.Field.
type FieldView struct {
	v     View
	field model.Field
}

func (f FieldView) Name() string {
	name := f.field.FieldName
	for _, t := range f.v.transforms.Field {
		name = t.RenameField(name)
	}
	return name
}

func (f FieldView) Type() model.TypeRef {
	ty := f.field.Type
	for _, t := range f.v.transforms.Field {
		ty = t.RewriteFieldType(ty)
	}
	return ty
}

func (f FieldView) Attributes() model.Attributes {
	return f.v.transforms.rewriteAttributes(f.field.Attributes)
}
