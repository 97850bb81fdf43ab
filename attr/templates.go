package attr

// 各能力的默认属性模板
// 模板采用 @Name(k=v) 注释注解格式，生成的类型可以直接交给下游注解生成器处理
const (
	SerdeTemplate          = "// @Serde(marshal=true, unmarshal=true)"
	SerdeMarshalTemplate   = "// @Serde(marshal=true)"
	SerdeUnmarshalTemplate = "// @Serde(unmarshal=true)"

	// SerdeAsTemplate 消息级，配合字段级的自定义序列化注解使用
	SerdeAsTemplate = "// @SerdeAs(skip_none=true)"

	// BuilderTemplate 消息级 builder：setter 自动转换、去掉可选包装、缺省取默认值
	BuilderTemplate = "// @Builder\n// @BuilderSetter(into=true, strip_option=true, default=true)"
	// BuilderIntoTemplate 字段级覆盖：只保留自动转换
	BuilderIntoTemplate = "// @BuilderSetter(into=true)"
	// BuilderOptionTemplate 字段级覆盖：自动转换并去掉可选包装，用于本身就是可选值的字段
	BuilderOptionTemplate = "// @BuilderSetter(into=true, strip_option=true)"

	SQLTypeTemplate    = "// @SQLType"
	SQLFromRowTemplate = "// @SQLFromRow"

	// EnumStringTemplate 字符串与枚举互转：大小写不敏感解析 + String 输出 + 遍历所有取值
	EnumStringTemplate = "// @EnumString(case_insensitive=true, display=true, iter=true)"
)

// SerdeAttribute 根据开关返回序列化模板，两者都关闭时返回空串
func SerdeAttribute(marshal, unmarshal bool) string {
	switch {
	case marshal && unmarshal:
		return SerdeTemplate
	case marshal:
		return SerdeMarshalTemplate
	case unmarshal:
		return SerdeUnmarshalTemplate
	default:
		return ""
	}
}
