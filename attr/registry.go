package attr

import (
	"context"
	"errors"
)

// Level 表示属性绑定的目标层级
type Level int

const (
	LevelType    Level = iota + 1 // 消息或枚举
	LevelMessage                  // 仅消息
	LevelEnum                     // 仅枚举
	LevelField                    // 字段
)

func (l Level) String() string {
	switch l {
	case LevelType:
		return "type"
	case LevelMessage:
		return "message"
	case LevelEnum:
		return "enum"
	case LevelField:
		return "field"
	default:
		return "unknown"
	}
}

//go:generate go run go.uber.org/mock/mockgen -source=registry.go -destination=mock_registry_test.go -package=attr

// Registry 属性注册表，由外部代码生成器实现
// 同一个 path 上的多次注册会按顺序累积，不会互相覆盖
type Registry interface {
	// Register 在指定层级为 path 追加一条属性文本
	Register(level Level, path, attribute string)
}

// Compiler 可选接口，注册表实现后即可通过 Builder.Compile 触发最终生成
type Compiler interface {
	Compile(ctx context.Context, protos, includes []string) error
}

// ErrNoCompiler 注册表没有实现 Compiler
var ErrNoCompiler = errors.New("注册表不支持 Compile")
