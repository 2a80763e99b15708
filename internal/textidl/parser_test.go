package textidl_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nswarm/apyxl/apyxlerr"
	"github.com/nswarm/apyxl/builder"
	"github.com/nswarm/apyxl/internal/textidl"
	"github.com/nswarm/apyxl/model"
	"github.com/nswarm/apyxl/parser"
)

func buildSource(t *testing.T, src string, cfg parser.Config) *model.Model {
	t.Helper()
	b := builder.New()
	p := textidl.New()
	err := p.Parse([]byte(src), "chunk1", cfg, b)
	require.NoError(t, err)
	m, err := builder.Build(context.Background(), b, builder.Config{UserTypes: cfg.UserTypes})
	require.NoError(t, err)
	return m
}

func TestParseNamespaceAndDto(t *testing.T) {
	m := buildSource(t, `
		namespace pkg {
		  // a user
		  dto User {
		    id: i32
		    name: string
		  }
		}
	`, parser.Config{})

	pkg, ok := m.Root.FindNamespace("pkg")
	require.True(t, ok)
	user, ok := pkg.FindDto("User")
	require.True(t, ok)
	require.Len(t, user.Fields, 2)
	assert.Equal(t, "id", user.Fields[0].FieldName)
	assert.Equal(t, model.TypePrimitive, user.Fields[0].Type.Kind)
	assert.Equal(t, model.I32, user.Fields[0].Type.Primitive)
	assert.Contains(t, user.Attributes().Comments, "a user")
}

func TestParseRpcWithParamsAndReturn(t *testing.T) {
	m := buildSource(t, `
		namespace pkg {
		  dto User { id: i32 }
		  @deprecated
		  rpc GetUser(id: i32) -> User
		}
	`, parser.Config{})

	pkg, ok := m.Root.FindNamespace("pkg")
	require.True(t, ok)
	rpc, ok := pkg.FindRpc("GetUser")
	require.True(t, ok)
	require.Len(t, rpc.Params, 1)
	assert.Equal(t, "id", rpc.Params[0].ParamName)
	require.NotNil(t, rpc.Return)
	assert.Equal(t, model.TypeApi, rpc.Return.Kind)

	require.Len(t, rpc.Attributes().UserAttributes, 1)
	assert.Equal(t, "deprecated", rpc.Attributes().UserAttributes[0].Name)
	assert.Equal(t, model.AttrFlag, rpc.Attributes().UserAttributes[0].Kind)
}

func TestParseEnumImplicitAndExplicitValues(t *testing.T) {
	m := buildSource(t, `
		enum Color {
		  Red,
		  Green = 5,
		  Blue
		}
	`, parser.Config{})

	enum, ok := m.Root.FindEnum("Color")
	require.True(t, ok)
	require.Len(t, enum.Variants, 3)
	assert.Equal(t, "Red", enum.Variants[0].VariantName)
	assert.False(t, enum.Variants[0].HasExplicitValue)
	assert.Equal(t, "Green", enum.Variants[1].VariantName)
	assert.True(t, enum.Variants[1].HasExplicitValue)
	assert.Equal(t, int64(5), enum.Variants[1].Value)
	assert.Equal(t, "Blue", enum.Variants[2].VariantName)
	assert.False(t, enum.Variants[2].HasExplicitValue)
}

func TestParseEnumNegativeExplicitValue(t *testing.T) {
	m := buildSource(t, `
		enum Status {
		  Unknown = -1,
		  Ok = 0
		}
	`, parser.Config{})

	enum, ok := m.Root.FindEnum("Status")
	require.True(t, ok)
	require.Len(t, enum.Variants, 2)
	assert.Equal(t, int64(-1), enum.Variants[0].Value)
	assert.Equal(t, int64(0), enum.Variants[1].Value)
}

func TestParseAlias(t *testing.T) {
	m := buildSource(t, `alias UserId = i32`, parser.Config{})
	alias, ok := m.Root.FindTypeAlias("UserId")
	require.True(t, ok)
	assert.Equal(t, model.TypePrimitive, alias.Target.Kind)
	assert.Equal(t, model.I32, alias.Target.Primitive)
}

func TestParseAttributeShapes(t *testing.T) {
	m := buildSource(t, `
		@flagonly
		@positional(1, 2, three)
		@keyed(a=1, b=two)
		dto Thing {}
	`, parser.Config{})

	thing, ok := m.Root.FindDto("Thing")
	require.True(t, ok)
	attrs := thing.Attributes().UserAttributes
	require.Len(t, attrs, 3)

	assert.Equal(t, "flagonly", attrs[0].Name)
	assert.Equal(t, model.AttrFlag, attrs[0].Kind)

	assert.Equal(t, "positional", attrs[1].Name)
	assert.Equal(t, model.AttrPositional, attrs[1].Kind)
	assert.Equal(t, []string{"1", "2", "three"}, attrs[1].Tokens)

	assert.Equal(t, "keyed", attrs[2].Name)
	assert.Equal(t, model.AttrKeyValue, attrs[2].Kind)
	assert.Equal(t, map[string]string{"a": "1", "b": "two"}, attrs[2].KeyValue)
}

func TestParseCompositeTypes(t *testing.T) {
	m := buildSource(t, `
		dto Thing {
		  tags: array<string>
		  maybe: optional<i32>
		  lookup: map<string, i32>
		  cb: fn(i32) -> bool
		}
	`, parser.Config{})

	thing, ok := m.Root.FindDto("Thing")
	require.True(t, ok)
	require.Len(t, thing.Fields, 4)

	tags := thing.Fields[0].Type
	require.Equal(t, model.TypeArray, tags.Kind)
	assert.Equal(t, model.String, tags.Elem.Primitive)

	maybe := thing.Fields[1].Type
	require.Equal(t, model.TypeOptional, maybe.Kind)
	assert.Equal(t, model.I32, maybe.Elem.Primitive)

	lookup := thing.Fields[2].Type
	require.Equal(t, model.TypeMap, lookup.Kind)
	assert.Equal(t, model.String, lookup.Key.Primitive)
	assert.Equal(t, model.I32, lookup.Value.Primitive)

	cb := thing.Fields[3].Type
	require.Equal(t, model.TypeFunction, cb.Kind)
	require.Len(t, cb.Params, 1)
	require.NotNil(t, cb.Return)
	assert.Equal(t, model.Bool, cb.Return.Primitive)
}

func TestParseUserTypeEscapeHatch(t *testing.T) {
	cfg := parser.Config{UserTypes: []model.UserType{{Parse: "MySpecialType", Name: "special"}}}
	m := buildSource(t, `
		dto Thing {
		  special_field: MySpecialType
		}
	`, cfg)

	thing, ok := m.Root.FindDto("Thing")
	require.True(t, ok)
	require.Len(t, thing.Fields, 1)
	assert.Equal(t, model.TypeUser, thing.Fields[0].Type.Kind)
	assert.Equal(t, "special", thing.Fields[0].Type.UserName)
}

func TestParseRelativeQualificationAcrossNamespaces(t *testing.T) {
	m := buildSource(t, `
		namespace A {
		  dto Inner {}
		  dto Outer {
		    f: Inner
		  }
		}
	`, parser.Config{})

	a, ok := m.Root.FindNamespace("A")
	require.True(t, ok)
	outer, ok := a.FindDto("Outer")
	require.True(t, ok)
	require.Len(t, outer.Fields, 1)
	assert.Equal(t, model.TypeApi, outer.Fields[0].Type.Kind)
	assert.Equal(t, "A.Inner", outer.Fields[0].Type.Api.String())
}

func TestParseErrorReportsLineAndColumn(t *testing.T) {
	b := builder.New()
	p := textidl.New()
	err := p.Parse([]byte("dto Broken {\n  id i32\n}"), "chunk1", parser.Config{}, b)
	require.Error(t, err)
	var parseErr *apyxlerr.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "chunk1", parseErr.Chunk)
	assert.Equal(t, 2, parseErr.Line)
	assert.Equal(t, 6, parseErr.Column)
}

func TestParseErrorDoesNotMergePartialChunk(t *testing.T) {
	b := builder.New()
	p := textidl.New()
	err := p.Parse([]byte(`
		dto Good {}
		dto Broken {
		  id i32
		}
	`), "chunk1", parser.Config{}, b)
	require.Error(t, err)

	m, buildErr := builder.Build(context.Background(), b, builder.Config{})
	require.NoError(t, buildErr)
	_, ok := m.Root.FindDto("Good")
	assert.False(t, ok, "a failed chunk must not merge any part of its partial tree")
}

func TestParseCommentsAttachToImmediatelyFollowingDeclaration(t *testing.T) {
	m := buildSource(t, `
		// first
		// second
		dto Thing {}
	`, parser.Config{})
	thing, ok := m.Root.FindDto("Thing")
	require.True(t, ok)
	assert.Equal(t, []string{"first", "second"}, thing.Attributes().Comments)
}
