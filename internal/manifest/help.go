package manifest

import (
	"fmt"
	"strings"

	"github.com/donutnomad/protoattr/attr"
)

// stepDoc 步骤的帮助信息
type stepDoc struct {
	Level       attr.Level
	Params      string // 步骤中除能力名外的参数
	Template    string // 默认注册的属性，空表示原样使用调用方文本
	Description string
}

var stepDocs = map[string]stepDoc{
	StepSerde: {attr.LevelType, "serialize, deserialize, extra", attr.SerdeTemplate,
		"序列化注解，两个开关都为 false 时整个步骤被忽略"},
	StepBuilder: {attr.LevelMessage, "extra", attr.BuilderTemplate,
		"builder 注解"},
	StepBuilderInto: {attr.LevelField, "message, fields", attr.BuilderIntoTemplate,
		"字段级覆盖，只做 into 转换"},
	StepBuilderOption: {attr.LevelField, "message, fields", attr.BuilderOptionTemplate,
		"字段级覆盖，用于本身就是可选值的字段"},
	StepSQLType:    {attr.LevelType, "extra", attr.SQLTypeTemplate, "数据库列类型"},
	StepSQLFromRow: {attr.LevelMessage, "extra", attr.SQLFromRowTemplate, "从查询结果行构造"},
	StepEnumString: {attr.LevelEnum, "extra", attr.EnumStringTemplate,
		"枚举与字符串互转"},
	StepSerdeAs: {attr.LevelMessage, "message, fields[{paths, attribute}]", attr.SerdeAsTemplate,
		"消息级 SerdeAs，并为字段追加自定义序列化属性"},
	StepTypeAttributes:  {attr.LevelType, "paths, attributes", "", "原样追加到消息或枚举"},
	StepFieldAttributes: {attr.LevelField, "paths, attributes", "", "原样追加到字段"},
}

// FormatHelpText 生成所有步骤的帮助文本
func FormatHelpText() string {
	var sb strings.Builder
	for _, name := range Capabilities {
		doc := stepDocs[name]
		sb.WriteString(fmt.Sprintf("  %s (%s) - %s\n", name, doc.Level, doc.Description))
		sb.WriteString(fmt.Sprintf("    参数: %s\n", doc.Params))
		if doc.Template != "" {
			sb.WriteString("    属性:\n")
			for _, line := range strings.Split(doc.Template, "\n") {
				sb.WriteString("      " + line + "\n")
			}
		}
	}
	return sb.String()
}
