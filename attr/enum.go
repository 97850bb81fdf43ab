package attr

// WithEnumString 为枚举添加字符串互转注解（大小写不敏感解析 + String 输出 + 取值遍历）
func (b *Builder) WithEnumString(paths []string, extra ...string) *Builder {
	resolveEach(b.reg, LevelEnum, paths, EnumStringTemplate, extra)
	return b
}
