package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/donutnomad/protoattr/internal/annotation"
	"github.com/donutnomad/protoattr/protogen"
	"github.com/mattn/go-runewidth"
	"github.com/samber/lo"
)

// bindingItem list 命令的一行
type bindingItem struct {
	Level       string   `json:"level"`
	Path        string   `json:"path"`
	Attribute   string   `json:"attribute"`
	Annotations []string `json:"annotations,omitempty"`
}

func runList(w io.Writer) error {
	_, cfg, err := loadConfig()
	if err != nil {
		return err
	}

	items := toBindingItems(cfg.Bindings())
	if *jsonOutput {
		return writeBindingsJSON(w, items)
	}
	writeBindingsTable(w, items)
	return nil
}

func toBindingItems(bindings []protogen.Binding) []bindingItem {
	return lo.Map(bindings, func(b protogen.Binding, _ int) bindingItem {
		return bindingItem{
			Level:       b.Level.String(),
			Path:        b.Path,
			Attribute:   b.Attribute,
			Annotations: annotation.Names(annotation.Parse(b.Attribute)),
		}
	})
}

func writeBindingsJSON(w io.Writer, items []bindingItem) error {
	data, err := sonic.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化绑定失败: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// writeBindingsTable 按显示宽度对齐输出，多行属性只显示注解名或第一行
func writeBindingsTable(w io.Writer, items []bindingItem) {
	header := []string{"层级", "路径", "属性"}
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{item.Level, item.Path, summarize(item)})
	}

	widths := make([]int, len(header))
	for _, row := range append([][]string{header}, rows...) {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	writeRow := func(row []string) {
		var sb strings.Builder
		for i, cell := range row {
			if i == len(row)-1 {
				sb.WriteString(cell)
				break
			}
			sb.WriteString(runewidth.FillRight(cell, widths[i]))
			sb.WriteString("  ")
		}
		fmt.Fprintln(w, strings.TrimRight(sb.String(), " "))
	}

	writeRow(header)
	for _, row := range rows {
		writeRow(row)
	}
	fmt.Fprintf(w, "\n共 %d 条绑定\n", len(items))
}

func summarize(item bindingItem) string {
	if len(item.Annotations) > 0 {
		return strings.Join(lo.Map(item.Annotations, func(name string, _ int) string {
			return "@" + name
		}), " ")
	}
	first, _, _ := strings.Cut(item.Attribute, "\n")
	return first
}
