package protogen

import (
	"io"
	"os"
	"slices"

	"github.com/donutnomad/protoattr/attr"
)

// DefaultFileName 默认输出文件名模板
const DefaultFileName = `{{ .Proto | base | trimSuffix ".proto" }}.pb.go`

// Binding 一条属性绑定
type Binding struct {
	Level     attr.Level
	Path      string
	Attribute string
}

// Config 属性注册表 + proto 到 Go 的参考生成器
// 配置阶段只追加绑定；Compile 时统一匹配并输出
type Config struct {
	bindings []Binding

	outDir    string
	fileName  string
	goPackage string
	strict    bool
	verbose   bool
	logOutput io.Writer
}

// Option 配置选项
type Option func(*Config)

// WithOutDir 设置输出目录
func WithOutDir(dir string) Option {
	return func(c *Config) {
		c.outDir = dir
	}
}

// WithFileName 设置输出文件名模板（text/template + sprig）
// 可用变量: .Proto .Package .GoPackage
func WithFileName(tmpl string) Option {
	return func(c *Config) {
		if tmpl != "" {
			c.fileName = tmpl
		}
	}
}

// WithGoPackage 强制指定生成代码的包名
func WithGoPackage(name string) Option {
	return func(c *Config) {
		c.goPackage = name
	}
}

// WithStrict 开启后，没有命中任何实体的绑定会导致编译失败
func WithStrict(strict bool) Option {
	return func(c *Config) {
		c.strict = strict
	}
}

// WithVerbose 设置详细输出
func WithVerbose(v bool) Option {
	return func(c *Config) {
		c.verbose = v
	}
}

// WithLogOutput 设置详细输出的目标，默认 stdout
func WithLogOutput(w io.Writer) Option {
	return func(c *Config) {
		c.logOutput = w
	}
}

// NewConfig 创建配置
func NewConfig(opts ...Option) *Config {
	c := &Config{
		outDir:    ".",
		fileName:  DefaultFileName,
		logOutput: os.Stdout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register 实现 attr.Registry
func (c *Config) Register(level attr.Level, path, attribute string) {
	c.bindings = append(c.bindings, Binding{Level: level, Path: path, Attribute: attribute})
}

// TypeAttribute 为消息或枚举追加属性
func (c *Config) TypeAttribute(path, attribute string) *Config {
	c.Register(attr.LevelType, path, attribute)
	return c
}

// MessageAttribute 为消息追加属性
func (c *Config) MessageAttribute(path, attribute string) *Config {
	c.Register(attr.LevelMessage, path, attribute)
	return c
}

// EnumAttribute 为枚举追加属性
func (c *Config) EnumAttribute(path, attribute string) *Config {
	c.Register(attr.LevelEnum, path, attribute)
	return c
}

// FieldAttribute 为字段追加属性
func (c *Config) FieldAttribute(path, attribute string) *Config {
	c.Register(attr.LevelField, path, attribute)
	return c
}

// Bindings 返回所有绑定的副本（按注册顺序）
func (c *Config) Bindings() []Binding {
	return slices.Clone(c.bindings)
}

// OutDir 返回输出目录
func (c *Config) OutDir() string {
	return c.outDir
}

// entityKind 生成代码中的实体类型
type entityKind int

const (
	kindMessage entityKind = iota + 1
	kindEnum
	kindField
)

// accepts 判断该层级的绑定能否作用于实体
func accepts(level attr.Level, kind entityKind) bool {
	switch kind {
	case kindMessage:
		return level == attr.LevelType || level == attr.LevelMessage
	case kindEnum:
		return level == attr.LevelType || level == attr.LevelEnum
	case kindField:
		return level == attr.LevelField
	default:
		return false
	}
}

// attributesFor 按注册顺序收集命中实体的属性，并记录命中的绑定下标
func (c *Config) attributesFor(kind entityKind, fullName string, hits []bool) []string {
	var result []string
	for i, b := range c.bindings {
		if !accepts(b.Level, kind) || !matchPath(b.Path, fullName) {
			continue
		}
		hits[i] = true
		result = append(result, b.Attribute)
	}
	return result
}

var (
	_ attr.Registry = (*Config)(nil)
	_ attr.Compiler = (*Config)(nil)
)
