package protogen

import (
	"bytes"
	"errors"
	"fmt"
	"go/parser"
	"go/scanner"
	"go/token"
	"strings"

	"github.com/dave/jennifer/jen"
)

const generatedHeader = "Code generated by protoattr. DO NOT EDIT."

// render 把文件模型渲染为格式化后的 Go 源码
// 属性按注册顺序放在声明正上方，原样输出
func (m *fileModel) render() ([]byte, error) {
	var f *jen.File
	if m.importPath != "" {
		f = jen.NewFilePathName(m.importPath, m.goPackage)
	} else {
		f = jen.NewFile(m.goPackage)
	}
	f.HeaderComment(generatedHeader)
	f.HeaderComment("source: " + m.proto)

	for _, e := range m.enums {
		renderEnum(f, e)
	}
	for _, msg := range m.messages {
		renderMessage(f, msg)
	}

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderMessage(f *jen.File, msg *messageModel) {
	f.Line()
	f.Add(withAttributes(msg.attributes,
		jen.Type().Id(msg.goName).StructFunc(func(g *jen.Group) {
			for _, field := range msg.fields {
				g.Add(withAttributes(field.attributes,
					jen.Id(field.goName).Add(field.typ).Tag(map[string]string{
						"json": field.jsonName + ",omitempty",
					}),
				))
			}
		}),
	))
}

func renderEnum(f *jen.File, e *enumModel) {
	f.Line()
	f.Add(withAttributes(e.attributes, jen.Type().Id(e.goName).Int32()))

	if len(e.values) == 0 {
		return
	}

	f.Line()
	f.Const().DefsFunc(func(g *jen.Group) {
		for _, v := range e.values {
			g.Id(v.goName).Id(e.goName).Op("=").Lit(int(v.number))
		}
	})

	// allow_alias 时同一个数值只保留第一个名称
	names := jen.Dict{}
	values := jen.Dict{}
	seen := make(map[int32]bool, len(e.values))
	for _, v := range e.values {
		values[jen.Lit(v.name)] = jen.Lit(int(v.number))
		if seen[v.number] {
			continue
		}
		seen[v.number] = true
		names[jen.Lit(int(v.number))] = jen.Lit(v.name)
	}

	f.Line()
	f.Var().Defs(
		jen.Id(e.goName+"_name").Op("=").Map(jen.Int32()).String().Values(names),
		jen.Id(e.goName+"_value").Op("=").Map(jen.String()).Int32().Values(values),
	)
}

// withAttributes 在声明前拼接属性块，每条属性独占一行
func withAttributes(attributes []string, decl *jen.Statement) *jen.Statement {
	if len(attributes) == 0 {
		return decl
	}
	return jen.Id(strings.Join(attributes, "\n") + "\n").Add(decl)
}

// validate 检查每个实体的属性块放到声明上方后能否被 Go 解析
// 属性按渲染时的方式拼接后整体检查，多行块注释可以拆成多条绑定
func (m *fileModel) validate() error {
	check := func(entity string, kind entityKind, attributes []string) error {
		if len(attributes) == 0 {
			return nil
		}
		err := parseAttribute(kind, strings.Join(attributes, "\n"))
		if err == nil {
			return nil
		}
		return &CompileError{
			Entity:    entity,
			Attribute: offendingAttribute(kind, attributes, err),
			Err:       fmt.Errorf("%w: %v", ErrInvalidAttribute, err),
		}
	}

	for _, e := range m.enums {
		if err := check(e.fullName, kindEnum, e.attributes); err != nil {
			return err
		}
	}
	for _, msg := range m.messages {
		if err := check(msg.fullName, kindMessage, msg.attributes); err != nil {
			return err
		}
		for _, field := range msg.fields {
			if err := check(field.fullName, kindField, field.attributes); err != nil {
				return err
			}
		}
	}
	return nil
}

// attributeSource 把属性块放进最小的 Go 源码片段，返回源码和属性块的起始行号
func attributeSource(kind entityKind, attribute string) (string, int) {
	prefix, suffix := "package p\n", "\ntype _ struct{}\n"
	if kind == kindField {
		prefix, suffix = "package p\ntype _ struct {\n", "\nF int\n}\n"
	}
	return prefix + attribute + suffix, strings.Count(prefix, "\n") + 1
}

func parseAttribute(kind entityKind, attribute string) error {
	src, _ := attributeSource(kind, attribute)
	_, err := parser.ParseFile(token.NewFileSet(), "attribute.go", src, parser.ParseComments)
	return err
}

// offendingAttribute 根据第一个语法错误的行号定位出错的那条属性
func offendingAttribute(kind entityKind, attributes []string, err error) string {
	var list scanner.ErrorList
	if !errors.As(err, &list) || len(list) == 0 {
		return strings.Join(attributes, "\n")
	}
	_, first := attributeSource(kind, "")
	line := list[0].Pos.Line - first
	for _, a := range attributes {
		n := strings.Count(a, "\n") + 1
		if line < n {
			return a
		}
		line -= n
	}
	return attributes[len(attributes)-1]
}
