package protogen

import (
	"errors"
	"fmt"
)

var (
	// ErrUnmatched 严格模式下选择器没有命中任何实体
	ErrUnmatched = errors.New("选择器没有匹配任何实体")
	// ErrInvalidAttribute 属性文本放到声明上方后不是合法的 Go 代码
	ErrInvalidAttribute = errors.New("属性不是合法的 Go 代码")
)

// CompileError 编译阶段定位到具体实体的错误
type CompileError struct {
	Entity    string // 出错的实体全名或选择器
	Attribute string // 相关的属性文本（可能为空）
	Err       error
}

func (e *CompileError) Error() string {
	if e.Attribute == "" {
		return fmt.Sprintf("%s: %v", e.Entity, e.Err)
	}
	return fmt.Sprintf("%s: %v: %q", e.Entity, e.Err, e.Attribute)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}
