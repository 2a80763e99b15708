package view_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nswarm/apyxl/builder"
	"github.com/nswarm/apyxl/model"
	"github.com/nswarm/apyxl/view"
)

func buildTestModel(t *testing.T) *model.Model {
	t.Helper()
	b := builder.New()

	pkg := model.NewNamespace("pkg")
	user := model.NewDto("User")
	user.Fields = []model.Field{
		{FieldName: "id", Type: model.NewPrimitive(model.I32)},
		{FieldName: "name", Type: model.NewPrimitive(model.String)},
	}
	pkg.AddChild(user)
	pkg.AddChild(model.NewDto("Internal"))
	root := model.NewNamespace("")
	root.AddChild(pkg)
	b.Merge(root, "chunk1")

	m, err := builder.Build(context.Background(), b, builder.Config{})
	require.NoError(t, err)
	return m
}

func TestViewRootExposesChildren(t *testing.T) {
	m := buildTestModel(t)
	v := view.New(m)

	pkgs := v.Root().Namespaces()
	require.Len(t, pkgs, 1)
	assert.Equal(t, "pkg", pkgs[0].Name())
	assert.Len(t, pkgs[0].Dtos(), 2)
}

type dtoFilter struct {
	view.BaseDtoTransform
	name string
}

func (f dtoFilter) FilterDto(d *model.Dto) bool { return d.Name() != f.name }

func TestTransformFiltersDtoWithoutMutatingModel(t *testing.T) {
	m := buildTestModel(t)
	v := view.New(m)
	filtered := v.WithTransforms(v.Transforms().WithDto(dtoFilter{name: "Internal"}))

	pkg := filtered.Root().Namespaces()[0]
	dtos := pkg.Dtos()
	require.Len(t, dtos, 1)
	assert.Equal(t, "User", dtos[0].Name())

	// The original view (and model) are unaffected.
	orig := v.Root().Namespaces()[0]
	assert.Len(t, orig.Dtos(), 2)
}

type renameFieldTransform struct {
	view.BaseFieldTransform
}

func (renameFieldTransform) RenameField(name string) string { return "renamed_" + name }

func TestTransformRenamesFields(t *testing.T) {
	m := buildTestModel(t)
	v := view.New(m)
	v = v.WithTransforms(v.Transforms().WithField(renameFieldTransform{}))

	pkg := v.Root().Namespaces()[0]
	var user view.DtoView
	for _, d := range pkg.Dtos() {
		if d.Name() == "User" {
			user = d
		}
	}
	require.NotZero(t, user)
	names := make([]string, 0)
	for _, f := range user.Fields() {
		names = append(names, f.Name())
	}
	assert.Equal(t, []string{"renamed_id", "renamed_name"}, names)
}

func TestCloneTransformsAreIndependent(t *testing.T) {
	m := buildTestModel(t)
	v := view.New(m)
	clone := v.Clone()
	clone = clone.WithTransforms(clone.Transforms().WithField(renameFieldTransform{}))

	pkg := v.Root().Namespaces()[0]
	var user view.DtoView
	for _, d := range pkg.Dtos() {
		if d.Name() == "User" {
			user = d
		}
	}
	assert.Equal(t, "id", user.Fields()[0].Name())
}

func TestApiChunkedIterPartitionsByChunk(t *testing.T) {
	b := builder.New()
	ns1 := model.NewNamespace("")
	pkg1 := model.NewNamespace("pkg")
	pkg1.AddChild(model.NewDto("A"))
	ns1.AddChild(pkg1)
	b.Merge(ns1, "chunk1")

	ns2 := model.NewNamespace("")
	pkg2 := model.NewNamespace("pkg")
	pkg2.AddChild(model.NewDto("B"))
	ns2.AddChild(pkg2)
	b.Merge(ns2, "chunk2")

	m, err := builder.Build(context.Background(), b, builder.Config{})
	require.NoError(t, err)

	v := view.New(m)
	chunks := v.ApiChunkedIter()
	require.Len(t, chunks, 2)

	byTag := map[string]view.ChunkView{}
	for _, c := range chunks {
		byTag[c.ChunkTag] = c
	}
	pkg1View := byTag["chunk1"].View.Root().Namespaces()[0]
	require.Len(t, pkg1View.Dtos(), 1)
	assert.Equal(t, "A", pkg1View.Dtos()[0].Name())

	pkg2View := byTag["chunk2"].View.Root().Namespaces()[0]
	require.Len(t, pkg2View.Dtos(), 1)
	assert.Equal(t, "B", pkg2View.Dtos()[0].Name())
}

func TestSubViewRestrictsToNamespace(t *testing.T) {
	m := buildTestModel(t)
	v := view.New(m)
	pkgId, ok := v.Root().Namespaces()[0].EntityId()
	require.True(t, ok)

	sub, ok := v.SubView(pkgId)
	require.True(t, ok)
	assert.Len(t, sub.Root().Dtos(), 2)
}
