package attr

import "context"

// Builder 链式入口，包装调用方持有的 Registry
// 每个方法都只追加绑定并返回自身，最后调用 Compile 交给生成器输出代码
//
// 示例:
//
//	err := attr.New(protogen.NewConfig(protogen.WithOutDir("gen"))).
//	    WithSerde([]string{"todo.Todo", "todo.TodoStatus"}, true, true).
//	    WithDeriveBuilder([]string{"todo.Todo"}).
//	    WithDeriveBuilderInto("todo.Todo", "id", "title").
//	    WithSQLType([]string{"todo.TodoStatus"}).
//	    Compile(ctx, []string{"todo.proto"}, []string{"protos"})
type Builder struct {
	reg Registry
}

// New 创建 Builder
func New(reg Registry) *Builder {
	return &Builder{reg: reg}
}

// Registry 返回底层注册表
func (b *Builder) Registry() Registry {
	return b.reg
}

// Compile 调用注册表的 Compile，注册表不支持时返回 ErrNoCompiler
func (b *Builder) Compile(ctx context.Context, protos, includes []string) error {
	c, ok := b.reg.(Compiler)
	if !ok {
		return ErrNoCompiler
	}
	return c.Compile(ctx, protos, includes)
}

// WithTypeAttributes 为消息或枚举原样追加属性，每行一个绑定
func (b *Builder) WithTypeAttributes(paths []string, attributes ...string) *Builder {
	for _, attribute := range attributes {
		resolve(b.reg, LevelType, paths, attribute)
	}
	return b
}

// WithFieldAttributes 为字段原样追加属性，不经过任何模板
// paths 为完整字段路径，例如 todo.Todo.created_at
func (b *Builder) WithFieldAttributes(paths []string, attributes ...string) *Builder {
	for _, attribute := range attributes {
		resolve(b.reg, LevelField, paths, attribute)
	}
	return b
}

// WithOptionalTypeAttributes attributes 为 nil 时不做任何事
func (b *Builder) WithOptionalTypeAttributes(paths []string, attributes []string) *Builder {
	if attributes == nil {
		return b
	}
	return b.WithTypeAttributes(paths, attributes...)
}

// WithOptionalFieldAttributes attributes 为 nil 时不做任何事
func (b *Builder) WithOptionalFieldAttributes(paths []string, attributes []string) *Builder {
	if attributes == nil {
		return b
	}
	return b.WithFieldAttributes(paths, attributes...)
}
