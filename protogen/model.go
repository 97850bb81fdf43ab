package protogen

import (
	"path"
	"strings"

	"github.com/dave/jennifer/jen"
	"github.com/donutnomad/protoattr/internal/utils"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"
)

// fileModel 一个 proto 文件对应的生成模型
type fileModel struct {
	proto      string // proto 文件路径
	pkg        string // proto 包名
	goPackage  string // Go 包名
	importPath string // go_package 中的导入路径，可能为空
	messages   []*messageModel
	enums      []*enumModel
}

type messageModel struct {
	fullName   string
	goName     string
	attributes []string
	fields     []*fieldModel
}

type fieldModel struct {
	fullName   string
	goName     string
	jsonName   string
	typ        jen.Code
	attributes []string
}

type enumModel struct {
	fullName   string
	goName     string
	attributes []string
	values     []enumValueModel
}

type enumValueModel struct {
	name   string
	goName string
	number int32
}

// buildFile 从文件描述符构建模型，同时匹配属性绑定
func (c *Config) buildFile(fd protoreflect.FileDescriptor, hits []bool) *fileModel {
	importPath, goPkg := goPackageOption(fd)
	m := &fileModel{
		proto:      fd.Path(),
		pkg:        string(fd.Package()),
		goPackage:  c.goPackage,
		importPath: importPath,
	}
	if m.goPackage == "" {
		m.goPackage = goPkg
	}
	if m.goPackage == "" {
		name := m.pkg
		if name == "" {
			name = strings.TrimSuffix(path.Base(m.proto), ".proto")
		}
		m.goPackage = utils.GoPackageName(name)
	}

	enums := fd.Enums()
	for i := 0; i < enums.Len(); i++ {
		m.enums = append(m.enums, c.buildEnum(enums.Get(i), hits))
	}
	messages := fd.Messages()
	for i := 0; i < messages.Len(); i++ {
		c.buildMessage(m, messages.Get(i), hits)
	}
	return m
}

// buildMessage 按深度优先把消息及其嵌套类型展开到文件模型中
func (c *Config) buildMessage(m *fileModel, md protoreflect.MessageDescriptor, hits []bool) {
	if md.IsMapEntry() {
		return
	}

	msg := &messageModel{
		fullName: string(md.FullName()),
		goName:   goIdent(md),
	}
	msg.attributes = c.attributesFor(kindMessage, msg.fullName, hits)

	fields := md.Fields()
	for i := 0; i < fields.Len(); i++ {
		fd := fields.Get(i)
		f := &fieldModel{
			fullName: string(fd.FullName()),
			goName:   utils.GoCamelCase(string(fd.Name())),
			jsonName: fd.JSONName(),
			typ:      m.fieldType(fd),
		}
		f.attributes = c.attributesFor(kindField, f.fullName, hits)
		msg.fields = append(msg.fields, f)
	}
	m.messages = append(m.messages, msg)

	enums := md.Enums()
	for i := 0; i < enums.Len(); i++ {
		m.enums = append(m.enums, c.buildEnum(enums.Get(i), hits))
	}
	nested := md.Messages()
	for i := 0; i < nested.Len(); i++ {
		c.buildMessage(m, nested.Get(i), hits)
	}
}

func (c *Config) buildEnum(ed protoreflect.EnumDescriptor, hits []bool) *enumModel {
	e := &enumModel{
		fullName: string(ed.FullName()),
		goName:   goIdent(ed),
	}
	e.attributes = c.attributesFor(kindEnum, e.fullName, hits)

	values := ed.Values()
	for i := 0; i < values.Len(); i++ {
		v := values.Get(i)
		e.values = append(e.values, enumValueModel{
			name:   string(v.Name()),
			goName: e.goName + "_" + string(v.Name()),
			number: int32(v.Number()),
		})
	}
	return e
}

// fieldType 计算字段的 Go 类型
func (m *fileModel) fieldType(fd protoreflect.FieldDescriptor) jen.Code {
	if fd.IsMap() {
		return jen.Map(m.singularType(fd.MapKey())).Add(m.singularType(fd.MapValue()))
	}
	if fd.IsList() {
		return jen.Index().Add(m.singularType(fd))
	}
	typ := m.singularType(fd)
	if fd.HasPresence() && fd.Message() == nil && fd.Kind() != protoreflect.BytesKind {
		return jen.Op("*").Add(typ)
	}
	return typ
}

// singularType 不考虑 repeated/map 的元素类型，消息类型总是指针
func (m *fileModel) singularType(fd protoreflect.FieldDescriptor) jen.Code {
	switch fd.Kind() {
	case protoreflect.BoolKind:
		return jen.Bool()
	case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Sfixed32Kind:
		return jen.Int32()
	case protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Sfixed64Kind:
		return jen.Int64()
	case protoreflect.Uint32Kind, protoreflect.Fixed32Kind:
		return jen.Uint32()
	case protoreflect.Uint64Kind, protoreflect.Fixed64Kind:
		return jen.Uint64()
	case protoreflect.FloatKind:
		return jen.Float32()
	case protoreflect.DoubleKind:
		return jen.Float64()
	case protoreflect.StringKind:
		return jen.String()
	case protoreflect.BytesKind:
		return jen.Index().Byte()
	case protoreflect.EnumKind:
		return m.typeRef(fd.Enum())
	case protoreflect.MessageKind, protoreflect.GroupKind:
		return jen.Op("*").Add(m.typeRef(fd.Message()))
	default:
		return jen.Any()
	}
}

// typeRef 引用消息或枚举类型，不同 Go 包的类型按 go_package 限定
func (m *fileModel) typeRef(d protoreflect.Descriptor) *jen.Statement {
	name := goIdent(d)
	file := d.ParentFile()
	if file == nil || string(file.Package()) == m.pkg {
		return jen.Id(name)
	}
	if importPath, _ := goPackageOption(file); importPath != "" && importPath != m.importPath {
		return jen.Qual(importPath, name)
	}
	return jen.Id(name)
}

// goIdent 类型在 Go 中的名称，嵌套类型用下划线连接: Todo.Item -> Todo_Item
func goIdent(d protoreflect.Descriptor) string {
	name := string(d.FullName())
	if file := d.ParentFile(); file != nil && file.Package() != "" {
		name = strings.TrimPrefix(name, string(file.Package())+".")
	}
	return strings.ReplaceAll(name, ".", "_")
}

// goPackageOption 解析 go_package 选项，返回导入路径与包名
// 支持 "path;name" 与 "path" 两种写法
func goPackageOption(fd protoreflect.FileDescriptor) (importPath, name string) {
	opts, ok := fd.Options().(*descriptorpb.FileOptions)
	if !ok || opts.GetGoPackage() == "" {
		return "", ""
	}
	importPath, name, found := strings.Cut(opts.GetGoPackage(), ";")
	if !found {
		name = path.Base(importPath)
	}
	return importPath, utils.GoPackageName(name)
}
