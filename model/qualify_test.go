package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nswarm/apyxl/model"
)

// buildNestedModel constructs: namespace A { dto Inner{} dto Outer { f: Inner } }
// matching the S4 worked example: a reference to Inner from within
// Outer's field resolves to A.Inner via inner-to-outer scope probing.
func buildNestedModel(t *testing.T) (*model.Model, model.EntityId) {
	t.Helper()
	inner := model.NewDto("Inner")
	outer := model.NewDto("Outer")
	outer.Fields = []model.Field{
		{FieldName: "f", Type: model.NewApiType(model.NewEntityId(model.IdSegment{Name: "Inner", Kind: model.KindDto}))},
	}
	a := model.NewNamespace("A")
	a.AddChild(inner)
	a.AddChild(outer)
	root := model.NewNamespace("")
	root.AddChild(a)

	// Stamp entity ids the way the validator's Stamping pass would.
	aId := model.RootId().Append("A", model.KindNamespace)
	inner.Attributes().SetEntityId(aId.Append("Inner", model.KindDto))
	outer.Attributes().SetEntityId(aId.Append("Outer", model.KindDto))

	m := model.NewModel(root)
	return m, aId.Append("Outer", model.KindDto)
}

func TestFindQualifiedTypeRelativeProbesInnerToOuter(t *testing.T) {
	m, outerId := buildNestedModel(t)

	got, ok := m.FindQualifiedTypeRelative(outerId, model.NewEntityId(model.IdSegment{Name: "Inner", Kind: model.KindDto}))
	require.True(t, ok)
	assert.Equal(t, "A.Inner", got.String())
}

func TestFindQualifiedTypeRelativeTriesEveryTypeEntityKind(t *testing.T) {
	// A reference to an Enum must resolve even though the caller (a
	// parser that hasn't qualified types yet) tags the lookup id's tail
	// segment with a placeholder Dto kind.
	color := model.NewEnum("Color")
	ns := model.NewNamespace("pkg")
	ns.AddChild(color)
	root := model.NewNamespace("")
	root.AddChild(ns)
	color.Attributes().SetEntityId(model.RootId().Append("pkg", model.KindNamespace).Append("Color", model.KindEnum))

	m := model.NewModel(root)
	from := model.RootId().Append("pkg", model.KindNamespace)

	got, ok := m.FindQualifiedTypeRelative(from, model.NewEntityId(model.IdSegment{Name: "Color", Kind: model.KindDto}))
	require.True(t, ok)
	assert.Equal(t, model.KindEnum, got.Kind())
	assert.Equal(t, "pkg.Color", got.String())
}

func TestQualifyRewritesApiTypeToAbsolute(t *testing.T) {
	m, outerId := buildNestedModel(t)
	ref := model.NewApiType(model.NewEntityId(model.IdSegment{Name: "Inner", Kind: model.KindDto}))

	qualified, err := ref.Qualify(m, outerId, nil)
	require.NoError(t, err)
	assert.Equal(t, model.TypeApi, qualified.Kind)
	assert.Equal(t, "A.Inner", qualified.Api.String())
}

func TestQualifyUserTypeEscapeHatch(t *testing.T) {
	m, outerId := buildNestedModel(t)
	ref := model.NewUserType("special", nil)

	qualified, err := ref.Qualify(m, outerId, map[string]bool{"special": true})
	require.NoError(t, err)
	assert.Equal(t, model.TypeUser, qualified.Kind)
	assert.Equal(t, "special", qualified.UserName)
}

func TestQualifyUserNameClashFavorsApiEntity(t *testing.T) {
	// S5's tie-break: a name that is NOT declared in user_types but DOES
	// match an API entity resolves to that entity instead of failing.
	m, outerId := buildNestedModel(t)
	ref := model.NewUserType("Inner", nil)

	qualified, err := ref.Qualify(m, outerId, map[string]bool{})
	require.NoError(t, err)
	assert.Equal(t, model.TypeApi, qualified.Kind)
	assert.Equal(t, "A.Inner", qualified.Api.String())
}

func TestQualifyUnresolvedTypeIsAnError(t *testing.T) {
	m, outerId := buildNestedModel(t)
	ref := model.NewApiType(model.NewEntityId(model.IdSegment{Name: "DoesNotExist", Kind: model.KindDto}))

	_, err := ref.Qualify(m, outerId, nil)
	require.Error(t, err)
	var invalid *model.InvalidTypeError
	require.ErrorAs(t, err, &invalid)
}

func TestQualifyRecursesThroughCompositeShapes(t *testing.T) {
	m, outerId := buildNestedModel(t)
	ref := model.NewArray(model.NewOptional(model.NewApiType(
		model.NewEntityId(model.IdSegment{Name: "Inner", Kind: model.KindDto}),
	)))

	qualified, err := ref.Qualify(m, outerId, nil)
	require.NoError(t, err)
	require.Equal(t, model.TypeArray, qualified.Kind)
	require.Equal(t, model.TypeOptional, qualified.Elem.Kind)
	assert.Equal(t, "A.Inner", qualified.Elem.Elem.Api.String())
}
