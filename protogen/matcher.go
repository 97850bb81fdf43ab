package protogen

import "strings"

// matchPath 判断选择器是否命中实体全名（不带前导点，如 todo.Todo.id）
// 规则:
//   - "." 匹配所有实体
//   - 以 "." 开头的选择器从根开始按名称段做前缀匹配: .todo 匹配 todo.Todo 与 todo.Todo.id
//   - 其他选择器按名称段做后缀匹配: Todo、todo.Todo 都匹配 todo.Todo
func matchPath(selector, fullName string) bool {
	if selector == "." {
		return true
	}
	if rooted, ok := strings.CutPrefix(selector, "."); ok {
		return fullName == rooted || strings.HasPrefix(fullName, rooted+".")
	}
	return fullName == selector || strings.HasSuffix(fullName, "."+selector)
}
