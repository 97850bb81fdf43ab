package attr

// WithSQLType 添加数据库类型映射注解
func (b *Builder) WithSQLType(paths []string, extra ...string) *Builder {
	resolveEach(b.reg, LevelType, paths, SQLTypeTemplate, extra)
	return b
}

// WithSQLFromRow 为消息添加按行扫描注解
func (b *Builder) WithSQLFromRow(paths []string, extra ...string) *Builder {
	resolveEach(b.reg, LevelMessage, paths, SQLFromRowTemplate, extra)
	return b
}
