package protogen

import (
	"strings"
	"testing"

	"github.com/donutnomad/protoattr/attr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_BindingsKeepOrder(t *testing.T) {
	cfg := NewConfig()
	cfg.TypeAttribute("todo.Todo", "// a").
		FieldAttribute("todo.Todo.id", "// b").
		EnumAttribute("todo.TodoStatus", "// c").
		MessageAttribute("todo.Todo", "// d").
		TypeAttribute("todo.Todo", "// a")

	assert.Equal(t, []Binding{
		{attr.LevelType, "todo.Todo", "// a"},
		{attr.LevelField, "todo.Todo.id", "// b"},
		{attr.LevelEnum, "todo.TodoStatus", "// c"},
		{attr.LevelMessage, "todo.Todo", "// d"},
		{attr.LevelType, "todo.Todo", "// a"},
	}, cfg.Bindings())
}

func TestConfig_BindingsIsCopy(t *testing.T) {
	cfg := NewConfig()
	cfg.TypeAttribute("todo.Todo", "// a")

	got := cfg.Bindings()
	got[0].Attribute = "changed"

	assert.Equal(t, "// a", cfg.Bindings()[0].Attribute)
}

func TestConfig_Options(t *testing.T) {
	cfg := NewConfig()
	assert.Equal(t, ".", cfg.OutDir())
	assert.Equal(t, DefaultFileName, cfg.fileName)
	assert.False(t, cfg.strict)

	cfg = NewConfig(WithOutDir("gen"), WithFileName(""), WithStrict(true), WithGoPackage("model"))
	assert.Equal(t, "gen", cfg.OutDir())
	assert.Equal(t, DefaultFileName, cfg.fileName)
	assert.True(t, cfg.strict)
	assert.Equal(t, "model", cfg.goPackage)
}

func TestAccepts(t *testing.T) {
	assert.True(t, accepts(attr.LevelType, kindMessage))
	assert.True(t, accepts(attr.LevelType, kindEnum))
	assert.False(t, accepts(attr.LevelType, kindField))
	assert.True(t, accepts(attr.LevelMessage, kindMessage))
	assert.False(t, accepts(attr.LevelMessage, kindEnum))
	assert.True(t, accepts(attr.LevelEnum, kindEnum))
	assert.False(t, accepts(attr.LevelEnum, kindMessage))
	assert.True(t, accepts(attr.LevelField, kindField))
	assert.False(t, accepts(attr.LevelField, kindMessage))
}

func TestParseAttribute(t *testing.T) {
	assert.NoError(t, parseAttribute(kindMessage, "// @Builder\n// @BuilderSetter(into=true)"))
	assert.NoError(t, parseAttribute(kindField, "// @Copy"))
	assert.NoError(t, parseAttribute(kindEnum, "/* block */"))
	assert.Error(t, parseAttribute(kindMessage, "#[derive(Copy)]"))
	assert.Error(t, parseAttribute(kindField, "@Copy"))
}

func TestOffendingAttribute(t *testing.T) {
	attributes := []string{"// a", "/*\nb\n*/", "#c", "// d"}
	err := parseAttribute(kindMessage, strings.Join(attributes, "\n"))
	require.Error(t, err)
	assert.Equal(t, "#c", offendingAttribute(kindMessage, attributes, err))

	fieldAttributes := []string{"// a", "@b"}
	err = parseAttribute(kindField, strings.Join(fieldAttributes, "\n"))
	require.Error(t, err)
	assert.Equal(t, "@b", offendingAttribute(kindField, fieldAttributes, err))

	assert.NoError(t, parseAttribute(kindMessage, strings.Join([]string{"/*", "block", "*/"}, "\n")))
}
