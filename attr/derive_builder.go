package attr

import "github.com/samber/lo"

// WithDeriveBuilder 为消息添加 builder 注解
// 默认 setter 策略: into + strip_option + default，之后追加 extra
func (b *Builder) WithDeriveBuilder(paths []string, extra ...string) *Builder {
	resolveEach(b.reg, LevelMessage, paths, BuilderTemplate, extra)
	return b
}

// WithDeriveBuilderInto 为消息的指定字段添加字段级覆盖: 只做 into 转换
// 覆盖绑定注册在消息级绑定之后，生成时排在字段上
func (b *Builder) WithDeriveBuilderInto(message string, fields ...string) *Builder {
	resolve(b.reg, LevelField, fieldPaths(message, fields), BuilderIntoTemplate)
	return b
}

// WithDeriveBuilderOption 为本身就是可选值的字段添加覆盖: into + strip_option
func (b *Builder) WithDeriveBuilderOption(message string, fields ...string) *Builder {
	resolve(b.reg, LevelField, fieldPaths(message, fields), BuilderOptionTemplate)
	return b
}

// fieldPaths 拼接完整字段路径 message.field
func fieldPaths(message string, fields []string) []string {
	return lo.Map(fields, func(field string, _ int) string {
		return message + "." + field
	})
}
