package attr

// resolve 将 paths 展开为逐个的 Register 调用
// 保持输入顺序，重复的 path 会产生重复的绑定
func resolve(reg Registry, level Level, paths []string, attribute string) {
	for _, path := range paths {
		reg.Register(level, path, attribute)
	}
}

// resolveEach 对每个 path 先注册 attribute，再依次注册 extra 中的每一行
func resolveEach(reg Registry, level Level, paths []string, attribute string, extra []string) {
	for _, path := range paths {
		one := []string{path}
		resolve(reg, level, one, attribute)
		for _, line := range extra {
			resolve(reg, level, one, line)
		}
	}
}
