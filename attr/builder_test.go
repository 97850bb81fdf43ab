package attr

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type binding struct {
	level     Level
	path      string
	attribute string
}

// recordingRegistry 按调用顺序记录所有绑定
type recordingRegistry struct {
	bindings []binding
}

func (r *recordingRegistry) Register(level Level, path, attribute string) {
	r.bindings = append(r.bindings, binding{level: level, path: path, attribute: attribute})
}

func (r *recordingRegistry) attributes(path string) []string {
	var result []string
	for _, b := range r.bindings {
		if b.path == path {
			result = append(result, b.attribute)
		}
	}
	return result
}

func TestWithSerde_BothDisabled(t *testing.T) {
	reg := &recordingRegistry{}
	New(reg).
		WithSerde([]string{"todo.Todo", "todo.TodoStatus"}, false, false).
		WithSerde([]string{"todo.Todo"}, false, false, "// @Json(camel=true)")

	assert.Empty(t, reg.bindings)
}

func TestWithSerde_Flags(t *testing.T) {
	tests := []struct {
		name      string
		marshal   bool
		unmarshal bool
		want      string
	}{
		{"both", true, true, SerdeTemplate},
		{"marshal only", true, false, SerdeMarshalTemplate},
		{"unmarshal only", false, true, SerdeUnmarshalTemplate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := &recordingRegistry{}
			New(reg).WithSerde([]string{"todo.Todo"}, tt.marshal, tt.unmarshal)

			require.Len(t, reg.bindings, 1)
			assert.Equal(t, binding{LevelType, "todo.Todo", tt.want}, reg.bindings[0])
		})
	}
}

func TestWithSerde_ExtraFollowsTemplatePerPath(t *testing.T) {
	reg := &recordingRegistry{}
	New(reg).WithSerde([]string{"todo.Todo", "todo.TodoStatus"}, true, true, "// X", "// Y")

	assert.Equal(t, []binding{
		{LevelType, "todo.Todo", SerdeTemplate},
		{LevelType, "todo.Todo", "// X"},
		{LevelType, "todo.Todo", "// Y"},
		{LevelType, "todo.TodoStatus", SerdeTemplate},
		{LevelType, "todo.TodoStatus", "// X"},
		{LevelType, "todo.TodoStatus", "// Y"},
	}, reg.bindings)
}

func TestCapabilityCalledTwice(t *testing.T) {
	reg := &recordingRegistry{}
	paths := []string{"todo.A", "todo.B"}
	New(reg).
		WithSQLType(paths, "// first").
		WithSQLType(paths, "// second")

	for _, p := range paths {
		assert.Equal(t, []string{SQLTypeTemplate, "// first", SQLTypeTemplate, "// second"}, reg.attributes(p), p)
	}
}

func TestWithDeriveBuilder_ThenFieldOverrides(t *testing.T) {
	reg := &recordingRegistry{}
	New(reg).
		WithDeriveBuilder([]string{"Todo"}).
		WithDeriveBuilderInto("Todo", "id").
		WithDeriveBuilderOption("Todo", "created_at", "updated_at")

	assert.Equal(t, []binding{
		{LevelMessage, "Todo", BuilderTemplate},
		{LevelField, "Todo.id", BuilderIntoTemplate},
		{LevelField, "Todo.created_at", BuilderOptionTemplate},
		{LevelField, "Todo.updated_at", BuilderOptionTemplate},
	}, reg.bindings)
}

func TestWithDeriveBuilder_Extra(t *testing.T) {
	reg := &recordingRegistry{}
	New(reg).WithDeriveBuilder([]string{"todo.Todo"}, `// @BuilderBuildFn(name="privateBuild")`)

	assert.Equal(t, []string{BuilderTemplate, `// @BuilderBuildFn(name="privateBuild")`}, reg.attributes("todo.Todo"))
	assert.Equal(t, LevelMessage, reg.bindings[1].level)
}

func TestWithEnumString_IndependentBindings(t *testing.T) {
	reg := &recordingRegistry{}
	New(reg).WithEnumString([]string{"A", "B"})

	assert.Equal(t, []binding{
		{LevelEnum, "A", EnumStringTemplate},
		{LevelEnum, "B", EnumStringTemplate},
	}, reg.bindings)
}

func TestWithFieldAttributes_Verbatim(t *testing.T) {
	reg := &recordingRegistry{}
	raw := "#[derive(Copy)] \t not even Go"
	New(reg).WithFieldAttributes([]string{"todo.Todo.created_at", "todo.Todo.updated_at"}, raw)

	require.Len(t, reg.bindings, 2)
	for _, b := range reg.bindings {
		assert.Equal(t, LevelField, b.level)
		assert.Equal(t, raw, b.attribute)
	}
	assert.Equal(t, []string{raw}, reg.attributes("todo.Todo.created_at"))
	assert.Equal(t, []string{raw}, reg.attributes("todo.Todo.updated_at"))
}

func TestDuplicatePathsAreNotMerged(t *testing.T) {
	reg := &recordingRegistry{}
	New(reg).
		WithSQLType([]string{"todo.S", "todo.S"}).
		WithTypeAttributes([]string{"todo.S"}, "// same", "// same")

	assert.Equal(t, []string{SQLTypeTemplate, SQLTypeTemplate, "// same", "// same"}, reg.attributes("todo.S"))
}

func TestWithSQLFromRow(t *testing.T) {
	reg := &recordingRegistry{}
	New(reg).WithSQLFromRow([]string{"todo.Todo"}, "// @Table(name=todos)")

	assert.Equal(t, []binding{
		{LevelMessage, "todo.Todo", SQLFromRowTemplate},
		{LevelMessage, "todo.Todo", "// @Table(name=todos)"},
	}, reg.bindings)
}

func TestWithSerdeAs(t *testing.T) {
	reg := &recordingRegistry{}
	New(reg).WithSerdeAs("todo.Todo", FieldAttr{
		Fields:    []string{"status", "created_at"},
		Attribute: "// @SerdeAs(as=string)",
	})

	assert.Equal(t, []binding{
		{LevelMessage, "todo.Todo", SerdeAsTemplate},
		{LevelField, "todo.Todo.status", "// @SerdeAs(as=string)"},
		{LevelField, "todo.Todo.created_at", "// @SerdeAs(as=string)"},
	}, reg.bindings)
}

func TestOptionalAttributes(t *testing.T) {
	reg := &recordingRegistry{}
	New(reg).
		WithOptionalTypeAttributes([]string{"todo.Todo"}, nil).
		WithOptionalFieldAttributes([]string{"todo.Todo.id"}, nil)
	assert.Empty(t, reg.bindings)

	New(reg).
		WithOptionalTypeAttributes([]string{"todo.Todo"}, []string{"// t"}).
		WithOptionalFieldAttributes([]string{"todo.Todo.id"}, []string{"// f"})
	assert.Equal(t, []binding{
		{LevelType, "todo.Todo", "// t"},
		{LevelField, "todo.Todo.id", "// f"},
	}, reg.bindings)
}

// TestRegistrationOrder 通过 gomock 校验调用顺序与调用链一致
func TestRegistrationOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	reg := NewMockRegistry(ctrl)

	gomock.InOrder(
		reg.EXPECT().Register(LevelType, "todo.Todo", SerdeTemplate),
		reg.EXPECT().Register(LevelType, "todo.Todo", "// X"),
		reg.EXPECT().Register(LevelType, "todo.TodoStatus", SerdeTemplate),
		reg.EXPECT().Register(LevelType, "todo.TodoStatus", "// X"),
		reg.EXPECT().Register(LevelType, "todo.TodoStatus", SQLTypeTemplate),
		reg.EXPECT().Register(LevelEnum, "todo.TodoStatus", EnumStringTemplate),
		reg.EXPECT().Register(LevelField, "todo.Todo.created_at", "// @Copy"),
	)

	b := New(reg).
		WithSerde([]string{"todo.Todo", "todo.TodoStatus"}, true, true, "// X").
		WithSQLType([]string{"todo.TodoStatus"}).
		WithEnumString([]string{"todo.TodoStatus"}).
		WithFieldAttributes([]string{"todo.Todo.created_at"}, "// @Copy")

	assert.Same(t, reg, b.Registry())
}

type compilingRegistry struct {
	*MockRegistry
	*MockCompiler
}

func TestCompile_Delegates(t *testing.T) {
	ctrl := gomock.NewController(t)
	reg := compilingRegistry{MockRegistry: NewMockRegistry(ctrl), MockCompiler: NewMockCompiler(ctrl)}

	ctx := context.Background()
	protos := []string{"todo.proto"}
	includes := []string{"protos"}
	boom := errors.New("boom")

	reg.MockRegistry.EXPECT().Register(LevelEnum, "todo.TodoStatus", EnumStringTemplate)
	reg.MockCompiler.EXPECT().Compile(ctx, protos, includes).Return(boom)

	err := New(reg).WithEnumString([]string{"todo.TodoStatus"}).Compile(ctx, protos, includes)
	assert.ErrorIs(t, err, boom)
}

func TestCompile_NoCompiler(t *testing.T) {
	err := New(&recordingRegistry{}).Compile(context.Background(), nil, nil)
	assert.ErrorIs(t, err, ErrNoCompiler)
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "type", LevelType.String())
	assert.Equal(t, "message", LevelMessage.String())
	assert.Equal(t, "enum", LevelEnum.String())
	assert.Equal(t, "field", LevelField.String())
	assert.Equal(t, "unknown", Level(0).String())
}
