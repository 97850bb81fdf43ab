package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/donutnomad/protoattr/protogen"
	"gopkg.in/yaml.v3"
)

// Manifest 描述一次生成：proto 输入、输出位置以及按顺序执行的能力步骤
type Manifest struct {
	Protos    []string         `yaml:"protos" json:"protos"`
	Includes  []string         `yaml:"includes" json:"includes"`
	OutDir    string           `yaml:"out_dir" json:"out_dir"`
	FileName  string           `yaml:"file_name" json:"file_name"`
	GoPackage string           `yaml:"go_package" json:"go_package"`
	Strict    bool             `yaml:"strict" json:"strict"`
	Steps     []map[string]any `yaml:"steps" json:"steps"`

	// Dir 清单所在目录，相对路径都基于它解析
	Dir string `yaml:"-" json:"-"`
}

// Load 读取清单文件，按扩展名选择 YAML 或 JSON
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取清单失败: %w", err)
	}

	m, err := Parse(filepath.Ext(path), data)
	if err != nil {
		return nil, fmt.Errorf("解析清单 %s 失败: %w", path, err)
	}
	m.Dir = filepath.Dir(path)
	return m, nil
}

// Parse 按扩展名解析清单内容并检查每个步骤
func Parse(ext string, data []byte) (*Manifest, error) {
	m := &Manifest{}
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, m); err != nil {
			return nil, err
		}
	case ".json":
		if err := sonic.Unmarshal(data, m); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("不支持的清单格式: %q", ext)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate 检查必填项，并确认每个步骤都能解析
func (m *Manifest) Validate() error {
	if len(m.Protos) == 0 {
		return errors.New("protos 不能为空")
	}
	_, err := m.compile()
	return err
}

// ProtoIncludes 返回基于清单目录解析后的 include 目录
// 没有配置时使用清单目录本身
func (m *Manifest) ProtoIncludes() []string {
	if len(m.Includes) == 0 {
		return []string{m.resolve(".")}
	}
	dirs := make([]string, 0, len(m.Includes))
	for _, dir := range m.Includes {
		dirs = append(dirs, m.resolve(dir))
	}
	return dirs
}

// Options 转换为生成器选项
func (m *Manifest) Options() []protogen.Option {
	outDir := m.OutDir
	if outDir == "" {
		outDir = "."
	}
	return []protogen.Option{
		protogen.WithOutDir(m.resolve(outDir)),
		protogen.WithFileName(m.FileName),
		protogen.WithGoPackage(m.GoPackage),
		protogen.WithStrict(m.Strict),
	}
}

func (m *Manifest) resolve(path string) string {
	if filepath.IsAbs(path) || m.Dir == "" {
		return path
	}
	return filepath.Join(m.Dir, path)
}
