package protogen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/bufbuild/protocompile"
	"github.com/donutnomad/protoattr/internal/utils"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// fileNameData 输出文件名模板可用的变量
type fileNameData struct {
	Proto     string // proto 文件路径，如 todo.proto
	Package   string // proto 包名
	GoPackage string // Go 包名
}

// Compile 实现 attr.Compiler：编译 proto、合并属性并写出 Go 文件
func (c *Config) Compile(ctx context.Context, protos, includes []string) error {
	outputs, err := c.Generate(ctx, protos, includes)
	if err != nil {
		return err
	}

	paths := lo.Keys(outputs)
	slices.Sort(paths)
	for _, path := range paths {
		if err := utils.WriteFormat(path, outputs[path]); err != nil {
			return fmt.Errorf("写入文件 %s 失败: %w", path, err)
		}
		c.logf("生成文件: %s\n", path)
	}
	return nil
}

// Generate 编译 proto 并渲染 Go 源码，返回 输出路径 -> 文件内容，不写磁盘
func (c *Config) Generate(ctx context.Context, protos, includes []string) (map[string][]byte, error) {
	if len(protos) == 0 {
		return nil, errors.New("没有指定 proto 文件")
	}

	nameTmpl, err := template.New("file_name").Funcs(sprig.TxtFuncMap()).Parse(c.fileName)
	if err != nil {
		return nil, fmt.Errorf("解析文件名模板失败: %w", err)
	}

	compiler := protocompile.Compiler{
		Resolver: protocompile.WithStandardImports(&protocompile.SourceResolver{
			ImportPaths: includes,
		}),
	}
	files, err := compiler.Compile(ctx, protos...)
	if err != nil {
		return nil, fmt.Errorf("编译 proto 失败: %w", err)
	}

	// 串行匹配绑定，渲染阶段只读
	hits := make([]bool, len(c.bindings))
	models := make([]*fileModel, 0, len(files))
	for _, fd := range files {
		models = append(models, c.buildFile(fd, hits))
	}
	if err := c.checkUnmatched(hits); err != nil {
		return nil, err
	}

	names := make([]string, len(models))
	for i, m := range models {
		if err := m.validate(); err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		err := nameTmpl.Execute(&buf, fileNameData{
			Proto:     m.proto,
			Package:   m.pkg,
			GoPackage: m.goPackage,
		})
		if err != nil {
			return nil, fmt.Errorf("计算 %s 的输出路径失败: %w", m.proto, err)
		}
		names[i] = filepath.Join(c.outDir, buf.String())
	}

	rendered := make([][]byte, len(models))
	g, _ := errgroup.WithContext(ctx)
	for i, m := range models {
		i, m := i, m
		g.Go(func() error {
			src, err := m.render()
			if err != nil {
				return fmt.Errorf("渲染 %s 失败: %w", m.proto, err)
			}
			rendered[i] = src
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	outputs := make(map[string][]byte, len(models))
	for i, name := range names {
		if _, dup := outputs[name]; dup {
			return nil, fmt.Errorf("多个 proto 输出到同一文件: %s", name)
		}
		outputs[name] = rendered[i]
	}
	return outputs, nil
}

// checkUnmatched 处理没有命中任何实体的绑定
// 严格模式返回错误，否则只在详细输出中提示
func (c *Config) checkUnmatched(hits []bool) error {
	var errs []error
	for i, hit := range hits {
		if hit {
			continue
		}
		b := c.bindings[i]
		if c.strict {
			errs = append(errs, &CompileError{Entity: b.Path, Attribute: b.Attribute, Err: ErrUnmatched})
			continue
		}
		c.logf("警告: %s 级绑定 %s 没有匹配任何实体\n", b.Level, b.Path)
	}
	return errors.Join(errs...)
}

func (c *Config) logf(format string, args ...any) {
	if c.verbose && c.logOutput != nil {
		fmt.Fprintf(c.logOutput, format, args...)
	}
}
