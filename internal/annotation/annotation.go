package annotation

import (
	"regexp"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cast"
)

// Annotation 表示属性文本中解析出的一个注解
type Annotation struct {
	Name   string            // 注解名称，如 "Serde", "BuilderSetter"
	Params map[string]string // 注解参数，key 统一小写
	Raw    string            // 原始注解文本
}

// annotationRegex 匹配注解 @Name 或 @Name(params)
var annotationRegex = regexp.MustCompile(`@(\w+)(?:\(([^)]*)\))?`)

// paramRegex 匹配参数:
// - key=`value` (反引号格式)
// - key="value" (双引号格式)
// - key=value (普通格式)
var paramRegex = regexp.MustCompile("(\\w+)\\s*=\\s*`([^`]*)`|(\\w+)\\s*=\\s*\"([^\"]*)\"|(\\w+)\\s*=\\s*([^,\\s]+)")

// Parse 解析属性文本（可以是多行）中的所有注解
// 只识别注释行，其余内容原样忽略
func Parse(text string) []*Annotation {
	var annotations []*Annotation

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "//") && !strings.HasPrefix(line, "/*") {
			continue
		}
		line = strings.TrimPrefix(line, "//")
		line = strings.TrimPrefix(line, "/*")
		line = strings.TrimSuffix(line, "*/")

		for _, match := range annotationRegex.FindAllStringSubmatch(line, -1) {
			ann := &Annotation{
				Name:   match[1],
				Params: make(map[string]string),
				Raw:    match[0],
			}
			if len(match) > 2 && match[2] != "" {
				ann.Params = parseParams(match[2])
			}
			annotations = append(annotations, ann)
		}
	}

	return annotations
}

// parseParams 解析注解参数
func parseParams(content string) map[string]string {
	params := make(map[string]string)

	for _, match := range paramRegex.FindAllStringSubmatch(content, -1) {
		var key, value string
		switch {
		case match[1] != "":
			key, value = match[1], match[2]
		case match[3] != "":
			key, value = match[3], match[4]
		case match[5] != "":
			key, value = match[5], match[6]
		}
		if key != "" {
			params[strings.ToLower(key)] = value
		}
	}

	return params
}

// Names 返回注解名称列表（保持顺序）
func Names(annotations []*Annotation) []string {
	return lo.Map(annotations, func(a *Annotation, _ int) string {
		return a.Name
	})
}

// Get 获取第一个指定名称的注解
func Get(annotations []*Annotation, name string) *Annotation {
	a, _ := lo.Find(annotations, func(a *Annotation) bool {
		return a.Name == name
	})
	return a
}

// GetParam 获取注解参数
func (a *Annotation) GetParam(key string) string {
	return a.Params[strings.ToLower(key)]
}

// HasParam 检查是否有指定参数
func (a *Annotation) HasParam(key string) bool {
	_, ok := a.Params[strings.ToLower(key)]
	return ok
}

// BoolParam 按布尔值读取参数，无法识别时返回 false
func (a *Annotation) BoolParam(key string) bool {
	return cast.ToBool(a.GetParam(key))
}
