package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/tools/imports"
)

// Format 格式化 Go 源码（只格式化，不调整 import）
func Format(filename string, src []byte) ([]byte, error) {
	return imports.Process(filename, src, &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
}

// WriteFormat 格式化后写入文件，目录不存在时自动创建
func WriteFormat(path string, src []byte) error {
	formatted, err := Format(path, src)
	if err != nil {
		return fmt.Errorf("格式化 %s 失败: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("创建目录失败: %w", err)
	}
	return os.WriteFile(path, formatted, 0644)
}

// CheckSyntax 检查文件语法
func CheckSyntax(filePath string) error {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	_, err = imports.Process(filePath, content, &imports.Options{
		Fragment:   true,
		AllErrors:  true,
		Comments:   true,
		FormatOnly: true,
	})
	return err
}
