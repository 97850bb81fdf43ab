// todogen 在构建阶段为 todo.proto 生成带注解的 Go 类型
// 与 protoattr.yaml 描述的是同一组绑定，这里直接用链式调用写在 Go 中
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/donutnomad/protoattr/attr"
	"github.com/donutnomad/protoattr/protogen"
)

var (
	verbose  = flag.Bool("v", false, "详细输出")
	help     = flag.Bool("h", false, "显示帮助信息")
	protoDir = flag.String("proto", "protos", "proto 所在目录")
	output   = flag.String("out", "gen", "输出目录")
)

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	cfg := protogen.NewConfig(
		protogen.WithOutDir(*output),
		protogen.WithStrict(true),
		protogen.WithVerbose(*verbose),
	)

	err := attr.New(cfg).
		WithSerde([]string{"todo.Todo", "todo.TodoStatus"}, true, true).
		WithDeriveBuilder([]string{"todo.Todo"}).
		WithDeriveBuilderInto("todo.Todo", "id", "title", "description").
		WithDeriveBuilderOption("todo.Todo", "created_at", "updated_at").
		WithSQLType([]string{"todo.TodoStatus"}).
		WithSQLFromRow([]string{"todo.Todo"}).
		WithEnumString([]string{"todo.TodoStatus"}).
		WithFieldAttributes(
			[]string{"todo.Todo.created_at", "todo.Todo.updated_at"},
			"// @Column(type=timestamptz)",
		).
		Compile(context.Background(), []string{"todo.proto"}, []string{*protoDir})
	if err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		fmt.Printf("共 %d 条绑定\n", len(cfg.Bindings()))
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `todogen - 生成带注解的 todo 类型

用法:
  todogen [选项]

选项:
`)
	flag.PrintDefaults()

	fmt.Fprintf(os.Stderr, `
示例:
  todogen                                   读取 ./protos，输出到 ./gen
  todogen -proto api/protos -out internal/model
`)
}
