package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"

	"github.com/donutnomad/protoattr/internal/utils"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/samber/lo"
)

// runCheck 在内存中生成并与磁盘上的文件比较，返回是否一致
func runCheck(ctx context.Context, w io.Writer) (bool, error) {
	m, cfg, err := loadConfig()
	if err != nil {
		return false, err
	}

	outputs, err := cfg.Generate(ctx, m.Protos, m.ProtoIncludes())
	if err != nil {
		return false, err
	}

	same, err := diffOutputs(w, outputs)
	if err != nil {
		return false, err
	}
	if same {
		fmt.Fprintf(w, "生成文件已是最新 (%d 个文件)\n", len(outputs))
	}
	return same, nil
}

// diffOutputs 输出每个过期文件的 unified diff，返回是否全部一致
func diffOutputs(w io.Writer, outputs map[string][]byte) (bool, error) {
	paths := lo.Keys(outputs)
	slices.Sort(paths)

	same := true
	for _, path := range paths {
		want, err := utils.Format(path, outputs[path])
		if err != nil {
			return false, fmt.Errorf("格式化 %s 失败: %w", path, err)
		}

		got, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return false, err
		}
		if string(got) == string(want) {
			continue
		}

		same = false
		if got != nil {
			if err := utils.CheckSyntax(path); err != nil {
				fmt.Fprintf(w, "语法错误 %s: %v\n", path, err)
			}
		}
		diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(string(got)),
			B:        difflib.SplitLines(string(want)),
			FromFile: path + " (磁盘)",
			ToFile:   path + " (生成)",
			Context:  3,
		})
		if err != nil {
			return false, err
		}
		fmt.Fprint(w, diff)
	}
	return same, nil
}
