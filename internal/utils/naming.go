package utils

import (
	"strings"
	"unicode"
)

// commonInitialisms 常见首字母缩略词列表，生成 Go 标识符时整体大写
var commonInitialisms = []string{
	"API", "ASCII", "CPU", "CSS", "DNS", "EOF", "GUID", "HTML", "HTTP", "HTTPS",
	"ID", "IP", "JSON", "LHS", "QPS", "RAM", "RHS", "RPC", "SLA", "SMTP",
	"SQL", "SSH", "TLS", "TTL", "UID", "UI", "UUID", "URI", "URL", "UTF8", "VM",
	"XML", "XSRF", "XSS",
}

// initialismSet 小写缩略词 -> 大写形式
var initialismSet = make(map[string]string, len(commonInitialisms))

func init() {
	for _, initialism := range commonInitialisms {
		initialismSet[strings.ToLower(initialism)] = initialism
	}
}

// GoCamelCase 将 proto 标识符（蛇形或驼峰）转换为导出的 Go 标识符
// created_at -> CreatedAt, user_id -> UserID, TodoStatus -> TodoStatus
func GoCamelCase(name string) string {
	var buf strings.Builder
	for _, part := range strings.FieldsFunc(name, func(r rune) bool { return r == '_' || r == '.' }) {
		if upper, ok := initialismSet[strings.ToLower(part)]; ok {
			buf.WriteString(upper)
			continue
		}
		r := []rune(part)
		r[0] = unicode.ToUpper(r[0])
		buf.WriteString(string(r))
	}

	result := buf.String()
	if result == "" || unicode.IsDigit([]rune(result)[0]) {
		// 保证是合法标识符
		result = "X" + result
	}
	return result
}

// GoPackageName 将 proto 包名转换为 Go 包名
// todo.v1 -> todov1, my-api -> my_api
func GoPackageName(name string) string {
	var buf strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r == '.':
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			buf.WriteRune(r)
		default:
			buf.WriteByte('_')
		}
	}

	result := buf.String()
	if result == "" || unicode.IsDigit([]rune(result)[0]) {
		result = "_" + result
	}
	return result
}
