package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/donutnomad/protoattr/attr"
	"github.com/donutnomad/protoattr/internal/manifest"
	"github.com/donutnomad/protoattr/protogen"
)

var (
	verbose    = flag.Bool("v", false, "详细输出")
	help       = flag.Bool("h", false, "显示帮助信息")
	configPath = flag.String("c", "protoattr.yaml", "清单文件路径（.yaml/.yml/.json）")
	outDir     = flag.String("out", "", "覆盖清单中的输出目录")
	strict     = flag.Bool("strict", false, "没有匹配任何实体的绑定视为错误")
	jsonOutput = flag.Bool("json", false, "list 命令以 JSON 格式输出")
)

// logOutput 详细输出的目标，与 list/check 写到 stdout 的结果分开
var logOutput io.Writer = os.Stderr

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	args := flag.Args()

	// 默认命令是 gen
	cmd := "gen"
	if len(args) > 0 {
		cmd = args[0]
	}

	var err error
	switch cmd {
	case "gen":
		err = runGen(context.Background())
	case "dev":
		err = runDev()
	case "list":
		err = runList(os.Stdout)
	case "check":
		var same bool
		same, err = runCheck(context.Background(), os.Stdout)
		if err == nil && !same {
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "未知命令: %s\n\n", cmd)
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig 读取清单，合并命令行选项，并把所有步骤注册到生成器配置上
func loadConfig() (*manifest.Manifest, *protogen.Config, error) {
	m, err := manifest.Load(*configPath)
	if err != nil {
		return nil, nil, err
	}

	opts := m.Options()
	if *outDir != "" {
		opts = append(opts, protogen.WithOutDir(*outDir))
	}
	if *strict {
		opts = append(opts, protogen.WithStrict(true))
	}
	opts = append(opts, protogen.WithVerbose(*verbose), protogen.WithLogOutput(logOutput))

	cfg := protogen.NewConfig(opts...)
	if err := m.Apply(attr.New(cfg)); err != nil {
		return nil, nil, err
	}

	if *verbose {
		names, _ := m.StepNames()
		fmt.Fprintf(logOutput, "清单: %s\n", *configPath)
		fmt.Fprintf(logOutput, "步骤: %s\n", strings.Join(names, " -> "))
		spew.Fdump(logOutput, m)
		fmt.Fprintln(logOutput)
	}
	return m, cfg, nil
}

func runGen(ctx context.Context) error {
	start := time.Now()

	m, cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := attr.New(cfg).Compile(ctx, m.Protos, m.ProtoIncludes()); err != nil {
		return err
	}

	if *verbose {
		fmt.Printf("\n统计: %d 个 proto, %d 条绑定\n", len(m.Protos), len(cfg.Bindings()))
	}
	fmt.Printf("生成完成 (耗时: %v)\n", time.Since(start))
	return nil
}

func usage() {
	_, _ = fmt.Fprintf(os.Stderr, `protoattr - 为 proto 生成的 Go 类型附加注解

用法:
  protoattr [选项] [命令]

命令:
  gen     按清单生成代码（默认）
  dev     启动开发模式，监听清单与 proto 变动自动生成
  list    列出清单注册的所有绑定
  check   检查磁盘上的生成文件是否最新，有差异时输出 diff 并返回 1

选项:
`)
	flag.PrintDefaults()

	_, _ = fmt.Fprintf(os.Stderr, "\n支持的步骤:\n")
	_, _ = fmt.Fprint(os.Stderr, manifest.FormatHelpText())

	_, _ = fmt.Fprintf(os.Stderr, `
示例:
  protoattr                                 使用 ./protoattr.yaml 生成
  protoattr -c api/protoattr.yaml gen       指定清单
  protoattr -out gen -strict gen            覆盖输出目录，严格模式
  protoattr -json list                      以 JSON 列出绑定
  protoattr check                           CI 中检查生成文件
  protoattr -v dev                          开发模式，详细输出
`)
}
