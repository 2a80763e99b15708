package builder_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nswarm/apyxl/apyxlerr"
	"github.com/nswarm/apyxl/builder"
	"github.com/nswarm/apyxl/model"
)

func chunkNamespace(t *testing.T, nsName string, children ...model.NamespaceChild) *model.Namespace {
	t.Helper()
	ns := model.NewNamespace(nsName)
	for _, c := range children {
		ns.AddChild(c)
	}
	root := model.NewNamespace("")
	root.AddChild(ns)
	return root
}

func TestMergeAcrossChunksConcatenatesSameNamespace(t *testing.T) {
	b := builder.New()
	b.Merge(chunkNamespace(t, "pkg", model.NewDto("A")), "chunk1")
	b.Merge(chunkNamespace(t, "pkg", model.NewDto("B")), "chunk2")

	m, err := builder.Build(context.Background(), b, builder.Config{})
	require.NoError(t, err)

	pkg, ok := m.Root.FindNamespace("pkg")
	require.True(t, ok)
	assert.Len(t, pkg.Children(), 2)

	a, ok := pkg.FindDto("A")
	require.True(t, ok)
	tag, ok := a.Attributes().ChunkTag()
	require.True(t, ok)
	assert.Equal(t, "chunk1", tag)

	bDto, ok := pkg.FindDto("B")
	require.True(t, ok)
	tag, ok = bDto.Attributes().ChunkTag()
	require.True(t, ok)
	assert.Equal(t, "chunk2", tag)
}

func TestMergeSurfacesDuplicateDefinitionsAtBuild(t *testing.T) {
	b := builder.New()
	b.Merge(chunkNamespace(t, "pkg", model.NewDto("A")), "chunk1")
	b.Merge(chunkNamespace(t, "pkg", model.NewDto("A")), "chunk2")

	_, err := builder.Build(context.Background(), b, builder.Config{})
	require.Error(t, err)

	list, ok := err.(apyxlerr.List)
	require.True(t, ok)
	var found bool
	for _, e := range list {
		if _, ok := e.(*apyxlerr.DuplicateDefinition); ok {
			found = true
		}
	}
	assert.True(t, found, "expected a DuplicateDefinition error, got %v", list)
}

func TestNamespacesHaveNoChunkTag(t *testing.T) {
	b := builder.New()
	b.Merge(chunkNamespace(t, "pkg", model.NewDto("A")), "chunk1")
	m, err := builder.Build(context.Background(), b, builder.Config{})
	require.NoError(t, err)

	pkg, ok := m.Root.FindNamespace("pkg")
	require.True(t, ok)
	_, hasTag := pkg.Attributes().ChunkTag()
	assert.False(t, hasTag)
}
