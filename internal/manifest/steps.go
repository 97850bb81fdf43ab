package manifest

import (
	"fmt"
	"slices"
	"strings"

	"github.com/donutnomad/protoattr/attr"
	"github.com/samber/lo"
	"github.com/spf13/cast"
)

// 步骤中的能力名称
const (
	StepSerde           = "serde"
	StepBuilder         = "builder"
	StepBuilderInto     = "builder_into"
	StepBuilderOption   = "builder_option"
	StepSQLType         = "sql_type"
	StepSQLFromRow      = "sql_from_row"
	StepEnumString      = "enum_string"
	StepSerdeAs         = "serde_as"
	StepTypeAttributes  = "type_attributes"
	StepFieldAttributes = "field_attributes"
)

// Capabilities 所有支持的能力名称
var Capabilities = []string{
	StepSerde,
	StepBuilder,
	StepBuilderInto,
	StepBuilderOption,
	StepSQLType,
	StepSQLFromRow,
	StepEnumString,
	StepSerdeAs,
	StepTypeAttributes,
	StepFieldAttributes,
}

// stepParams 各能力在步骤中允许出现的其他参数
var stepParams = map[string][]string{
	StepSerde:      {"serialize", "deserialize", "extra"},
	StepBuilder:    {"extra"},
	StepSQLType:    {"extra"},
	StepSQLFromRow: {"extra"},
	StepEnumString: {"extra"},
}

// step 解析后的单个步骤
type step struct {
	name  string
	apply func(b *attr.Builder)
}

// Apply 按顺序把所有步骤应用到 Builder 上
func (m *Manifest) Apply(b *attr.Builder) error {
	steps, err := m.compile()
	if err != nil {
		return err
	}
	for _, s := range steps {
		s.apply(b)
	}
	return nil
}

func (m *Manifest) compile() ([]step, error) {
	steps := make([]step, 0, len(m.Steps))
	for i, raw := range m.Steps {
		s, err := compileStep(raw)
		if err != nil {
			return nil, fmt.Errorf("第 %d 个步骤: %w", i+1, err)
		}
		steps = append(steps, s)
	}
	return steps, nil
}

// compileStep 每个步骤必须且只能包含一个能力名称
func compileStep(raw map[string]any) (step, error) {
	names := lo.Filter(lo.Keys(raw), func(key string, _ int) bool {
		return slices.Contains(Capabilities, key)
	})
	switch len(names) {
	case 0:
		return step{}, fmt.Errorf("缺少能力名称，可选: %s", strings.Join(Capabilities, ", "))
	case 1:
	default:
		slices.Sort(names)
		return step{}, fmt.Errorf("一个步骤只能包含一个能力，实际: %s", strings.Join(names, ", "))
	}

	name := names[0]
	if err := checkKeys(raw, append([]string{name}, stepParams[name]...)...); err != nil {
		return step{}, fmt.Errorf("%s: %w", name, err)
	}
	apply, err := compileCapability(name, raw)
	if err != nil {
		return step{}, fmt.Errorf("%s: %w", name, err)
	}
	return step{name: name, apply: apply}, nil
}

func compileCapability(name string, raw map[string]any) (func(*attr.Builder), error) {
	value := raw[name]

	switch name {
	case StepSerde:
		paths, extra, err := pathsAndExtra(value, raw)
		if err != nil {
			return nil, err
		}
		marshal, err := boolOr(raw["serialize"], true)
		if err != nil {
			return nil, fmt.Errorf("serialize: %w", err)
		}
		unmarshal, err := boolOr(raw["deserialize"], true)
		if err != nil {
			return nil, fmt.Errorf("deserialize: %w", err)
		}
		return func(b *attr.Builder) { b.WithSerde(paths, marshal, unmarshal, extra...) }, nil

	case StepBuilder, StepSQLType, StepSQLFromRow, StepEnumString:
		paths, extra, err := pathsAndExtra(value, raw)
		if err != nil {
			return nil, err
		}
		switch name {
		case StepBuilder:
			return func(b *attr.Builder) { b.WithDeriveBuilder(paths, extra...) }, nil
		case StepSQLType:
			return func(b *attr.Builder) { b.WithSQLType(paths, extra...) }, nil
		case StepSQLFromRow:
			return func(b *attr.Builder) { b.WithSQLFromRow(paths, extra...) }, nil
		default:
			return func(b *attr.Builder) { b.WithEnumString(paths, extra...) }, nil
		}

	case StepBuilderInto, StepBuilderOption:
		args, err := cast.ToStringMapE(value)
		if err != nil {
			return nil, err
		}
		if err := checkKeys(args, "message", "fields"); err != nil {
			return nil, err
		}
		message, err := requiredString(args, "message")
		if err != nil {
			return nil, err
		}
		fields, err := stringList(args["fields"])
		if err != nil {
			return nil, fmt.Errorf("fields: %w", err)
		}
		if name == StepBuilderInto {
			return func(b *attr.Builder) { b.WithDeriveBuilderInto(message, fields...) }, nil
		}
		return func(b *attr.Builder) { b.WithDeriveBuilderOption(message, fields...) }, nil

	case StepSerdeAs:
		args, err := cast.ToStringMapE(value)
		if err != nil {
			return nil, err
		}
		if err := checkKeys(args, "message", "fields"); err != nil {
			return nil, err
		}
		message, err := requiredString(args, "message")
		if err != nil {
			return nil, err
		}
		fields, err := fieldAttrs(args["fields"])
		if err != nil {
			return nil, fmt.Errorf("fields: %w", err)
		}
		return func(b *attr.Builder) { b.WithSerdeAs(message, fields...) }, nil

	case StepTypeAttributes, StepFieldAttributes:
		args, err := cast.ToStringMapE(value)
		if err != nil {
			return nil, err
		}
		if err := checkKeys(args, "paths", "attributes"); err != nil {
			return nil, err
		}
		paths, err := stringList(args["paths"])
		if err != nil {
			return nil, fmt.Errorf("paths: %w", err)
		}
		attributes, err := stringList(args["attributes"])
		if err != nil {
			return nil, fmt.Errorf("attributes: %w", err)
		}
		if name == StepTypeAttributes {
			return func(b *attr.Builder) { b.WithTypeAttributes(paths, attributes...) }, nil
		}
		return func(b *attr.Builder) { b.WithFieldAttributes(paths, attributes...) }, nil
	}

	return nil, fmt.Errorf("未知能力: %s", name)
}

// pathsAndExtra 读取能力值中的路径列表和同一步骤的 extra
func pathsAndExtra(value any, raw map[string]any) (paths, extra []string, err error) {
	if paths, err = stringList(value); err != nil {
		return nil, nil, fmt.Errorf("paths: %w", err)
	}
	if extra, err = stringList(raw["extra"]); err != nil {
		return nil, nil, fmt.Errorf("extra: %w", err)
	}
	return paths, extra, nil
}

// fieldAttrs 解析 [{paths: [...], attribute: "..."}]
func fieldAttrs(value any) ([]attr.FieldAttr, error) {
	if value == nil {
		return nil, nil
	}
	items, err := cast.ToSliceE(value)
	if err != nil {
		return nil, err
	}
	result := make([]attr.FieldAttr, 0, len(items))
	for _, item := range items {
		args, err := cast.ToStringMapE(item)
		if err != nil {
			return nil, err
		}
		if err := checkKeys(args, "paths", "attribute"); err != nil {
			return nil, err
		}
		fields, err := stringList(args["paths"])
		if err != nil {
			return nil, fmt.Errorf("paths: %w", err)
		}
		attribute, err := requiredString(args, "attribute")
		if err != nil {
			return nil, err
		}
		result = append(result, attr.FieldAttr{Fields: fields, Attribute: attribute})
	}
	return result, nil
}

// checkKeys 拒绝不认识的参数，避免拼写错误被静默忽略
func checkKeys(args map[string]any, allowed ...string) error {
	unknown := lo.Filter(lo.Keys(args), func(key string, _ int) bool {
		return !slices.Contains(allowed, key)
	})
	if len(unknown) == 0 {
		return nil
	}
	slices.Sort(unknown)
	return fmt.Errorf("不支持的参数: %s（可用: %s）", strings.Join(unknown, ", "), strings.Join(allowed, ", "))
}

// stringList 单个字符串视为只有一个元素的列表，不按空白拆分
func stringList(value any) ([]string, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{v}, nil
	default:
		return cast.ToStringSliceE(v)
	}
}

func requiredString(args map[string]any, key string) (string, error) {
	s, err := cast.ToStringE(args[key])
	if err != nil {
		return "", fmt.Errorf("%s: %w", key, err)
	}
	if s == "" {
		return "", fmt.Errorf("%s 不能为空", key)
	}
	return s, nil
}

// boolOr 宽松解析布尔值，缺省时返回 def
func boolOr(value any, def bool) (bool, error) {
	if value == nil {
		return def, nil
	}
	return cast.ToBoolE(value)
}

// StepNames 按顺序返回每个步骤的能力名称
func (m *Manifest) StepNames() ([]string, error) {
	steps, err := m.compile()
	if err != nil {
		return nil, err
	}
	return lo.Map(steps, func(s step, _ int) string { return s.name }), nil
}
