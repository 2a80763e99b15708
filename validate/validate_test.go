package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nswarm/apyxl/apyxlerr"
	"github.com/nswarm/apyxl/model"
	"github.com/nswarm/apyxl/validate"
)

func errsOf(t *testing.T, err error) apyxlerr.List {
	t.Helper()
	if err == nil {
		return nil
	}
	list, ok := err.(apyxlerr.List)
	require.True(t, ok, "expected apyxlerr.List, got %T", err)
	return list
}

func hasKind[T error](t *testing.T, list apyxlerr.List) bool {
	t.Helper()
	for _, e := range list {
		if _, ok := e.(T); ok {
			return true
		}
	}
	return false
}

func TestValidateStampsEveryEntity(t *testing.T) {
	dto := model.NewDto("User")
	dto.Fields = []model.Field{{FieldName: "id", Type: model.NewPrimitive(model.I32)}}
	pkg := model.NewNamespace("pkg")
	pkg.AddChild(dto)
	root := model.NewNamespace("")
	root.AddChild(pkg)
	m := model.NewModel(root)

	err := validate.Validate(m, validate.Config{})
	require.NoError(t, err)

	id, ok := dto.Attributes().EntityId()
	require.True(t, ok)
	assert.Equal(t, "pkg.User", id.String())

	rootId, ok := root.Attributes().EntityId()
	require.True(t, ok)
	assert.True(t, rootId.IsRoot())
}

func TestValidateRejectsInvalidNames(t *testing.T) {
	pkg := model.NewNamespace("bad name")
	root := model.NewNamespace("")
	root.AddChild(pkg)
	m := model.NewModel(root)

	err := validate.Validate(m, validate.Config{})
	require.Error(t, err)
	assert.True(t, hasKind[*apyxlerr.InvalidName](t, errsOf(t, err)))
}

func TestValidateDetectsDuplicateDefinitions(t *testing.T) {
	pkg := model.NewNamespace("pkg")
	pkg.AddChild(model.NewDto("A"))
	pkg.AddChild(model.NewRpc("A"))
	root := model.NewNamespace("")
	root.AddChild(pkg)
	m := model.NewModel(root)

	err := validate.Validate(m, validate.Config{})
	require.Error(t, err)
	assert.True(t, hasKind[*apyxlerr.DuplicateDefinition](t, errsOf(t, err)))
}

func TestValidateAssignsImplicitSequentialEnumValues(t *testing.T) {
	enum := model.NewEnum("Color")
	enum.Variants = []model.EnumVariant{
		{VariantName: "Red"},
		{VariantName: "Green", Value: 5, HasExplicitValue: true},
		{VariantName: "Blue"},
	}
	root := model.NewNamespace("")
	root.AddChild(enum)
	m := model.NewModel(root)

	require.NoError(t, validate.Validate(m, validate.Config{}))
	assert.Equal(t, int64(0), enum.Variants[0].Value)
	assert.Equal(t, int64(5), enum.Variants[1].Value)
	assert.Equal(t, int64(6), enum.Variants[2].Value)
}

func TestValidateDetectsExplicitEnumValueConflicts(t *testing.T) {
	enum := model.NewEnum("Color")
	enum.Variants = []model.EnumVariant{
		{VariantName: "Red", Value: 1, HasExplicitValue: true},
		{VariantName: "Green", Value: 1, HasExplicitValue: true},
	}
	root := model.NewNamespace("")
	root.AddChild(enum)
	m := model.NewModel(root)

	err := validate.Validate(m, validate.Config{})
	require.Error(t, err)
	assert.True(t, hasKind[*apyxlerr.EnumValueConflict](t, errsOf(t, err)))
}

func TestValidateDetectsImplicitValueCollidingWithExplicitValue(t *testing.T) {
	enum := model.NewEnum("Color")
	enum.Variants = []model.EnumVariant{
		{VariantName: "Red"},
		{VariantName: "Green", Value: 0, HasExplicitValue: true},
	}
	root := model.NewNamespace("")
	root.AddChild(enum)
	m := model.NewModel(root)

	err := validate.Validate(m, validate.Config{})
	require.Error(t, err)
	assert.True(t, hasKind[*apyxlerr.EnumValueConflict](t, errsOf(t, err)))
}

func TestValidateQualifiesFieldTypesInPlace(t *testing.T) {
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
	m := model.NewModel(root)

	require.NoError(t, validate.Validate(m, validate.Config{}))
	assert.Equal(t, "A.Inner", outer.Fields[0].Type.Api.String())
}

func TestValidateReportsUnresolvedTypes(t *testing.T) {
	outer := model.NewDto("Outer")
	outer.Fields = []model.Field{
		{FieldName: "f", Type: model.NewApiType(model.NewEntityId(model.IdSegment{Name: "Missing", Kind: model.KindDto}))},
	}
	root := model.NewNamespace("")
	root.AddChild(outer)
	m := model.NewModel(root)

	err := validate.Validate(m, validate.Config{})
	require.Error(t, err)
	assert.True(t, hasKind[*apyxlerr.InvalidType](t, errsOf(t, err)))
}

func TestValidateDetectsAliasSelfCycle(t *testing.T) {
	aliasId := model.NewEntityId(model.IdSegment{Name: "A", Kind: model.KindTypeAlias})
	alias := model.NewTypeAlias("A", model.NewApiType(aliasId))
	root := model.NewNamespace("")
	root.AddChild(alias)
	m := model.NewModel(root)

	err := validate.Validate(m, validate.Config{})
	require.Error(t, err)
	assert.True(t, hasKind[*apyxlerr.AliasCycle](t, errsOf(t, err)))
}

func TestValidateDetectsAliasMutualCycle(t *testing.T) {
	a := model.NewTypeAlias("A", model.NewApiType(model.NewEntityId(model.IdSegment{Name: "B", Kind: model.KindTypeAlias})))
	b := model.NewTypeAlias("B", model.NewApiType(model.NewEntityId(model.IdSegment{Name: "A", Kind: model.KindTypeAlias})))
	root := model.NewNamespace("")
	root.AddChild(a)
	root.AddChild(b)
	m := model.NewModel(root)

	err := validate.Validate(m, validate.Config{})
	require.Error(t, err)
	assert.True(t, hasKind[*apyxlerr.AliasCycle](t, errsOf(t, err)))
}

func TestValidateAliasCycleIdsStartAtCanonicalRotation(t *testing.T) {
	// Declared in reverse alphabetical order so a naive "start wherever
	// the DFS entered" report would list Z before A.
	z := model.NewTypeAlias("Z", model.NewApiType(model.NewEntityId(model.IdSegment{Name: "A", Kind: model.KindTypeAlias})))
	a := model.NewTypeAlias("A", model.NewApiType(model.NewEntityId(model.IdSegment{Name: "Z", Kind: model.KindTypeAlias})))
	root := model.NewNamespace("")
	root.AddChild(z)
	root.AddChild(a)
	m := model.NewModel(root)

	err := validate.Validate(m, validate.Config{})
	require.Error(t, err)

	var cycle *apyxlerr.AliasCycle
	for _, e := range errsOf(t, err) {
		if c, ok := e.(*apyxlerr.AliasCycle); ok {
			cycle = c
		}
	}
	require.NotNil(t, cycle)
	require.Len(t, cycle.Ids, 2)
	assert.Equal(t, "A", cycle.Ids[0].String())
}

func TestValidateAcceptsUserTypes(t *testing.T) {
	outer := model.NewDto("Outer")
	outer.Fields = []model.Field{
		{FieldName: "f", Type: model.NewUserType("special", nil)},
	}
	root := model.NewNamespace("")
	root.AddChild(outer)
	m := model.NewModel(root)

	err := validate.Validate(m, validate.Config{UserTypes: []model.UserType{{Parse: "MySpecialType", Name: "special"}}})
	require.NoError(t, err)
	assert.Equal(t, model.TypeUser, outer.Fields[0].Type.Kind)
}
