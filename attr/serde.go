package attr

// WithSerde 为消息或枚举添加序列化注解
// marshal 和 unmarshal 都为 false 时不注册任何绑定（extra 也会被忽略）
func (b *Builder) WithSerde(paths []string, marshal, unmarshal bool, extra ...string) *Builder {
	attribute := SerdeAttribute(marshal, unmarshal)
	if attribute == "" {
		return b
	}
	resolveEach(b.reg, LevelType, paths, attribute, extra)
	return b
}

// FieldAttr 一组字段共用的一条字段属性
type FieldAttr struct {
	Fields    []string // 字段名，不含消息前缀
	Attribute string   // 属性文本
}

// WithSerdeAs 为消息添加 SerdeAs 注解，并为指定字段追加自定义序列化属性
func (b *Builder) WithSerdeAs(message string, fields ...FieldAttr) *Builder {
	resolve(b.reg, LevelMessage, []string{message}, SerdeAsTemplate)
	for _, f := range fields {
		resolve(b.reg, LevelField, fieldPaths(message, f.Fields), f.Attribute)
	}
	return b
}
