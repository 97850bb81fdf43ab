package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/donutnomad/protoattr/internal/manifest"
	"github.com/fsnotify/fsnotify"
	"github.com/samber/lo"
)

// DevOptions dev 命令选项
type DevOptions struct {
	Manifest string        // 清单文件路径
	Dirs     []string      // 监听的目录
	Verbose  bool          // 详细输出
	Debounce time.Duration // 防抖动时间
}

// devRunner 处理文件变动的核心逻辑
type devRunner struct {
	opts     *DevOptions
	watcher  *fsnotify.Watcher
	ctx      context.Context // 用于响应退出信号
	generate func(ctx context.Context) error

	// 防抖动相关
	mu      sync.Mutex
	pending *time.Timer

	// genMu 保证同一时间只有一次生成在写文件
	genMu sync.Mutex
}

// runDev 启动开发模式
func runDev() error {
	m, err := manifest.Load(*configPath)
	if err != nil {
		return err
	}

	manifestPath, err := filepath.Abs(*configPath)
	if err != nil {
		return err
	}

	opts := &DevOptions{
		Manifest: manifestPath,
		Dirs:     append([]string{filepath.Dir(manifestPath)}, m.ProtoIncludes()...),
		Verbose:  *verbose,
		Debounce: time.Second,
	}
	return dev(opts)
}

// dev 启动开发模式，启动时先生成一次
func dev(opts *DevOptions) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 监听退出信号
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\n正在退出...")
		cancel()
	}()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("创建文件监听器失败: %w", err)
	}
	defer watcher.Close()

	runner := &devRunner{
		opts:     opts,
		watcher:  watcher,
		ctx:      ctx,
		generate: runGen,
	}

	// 清理函数：退出时停止待处理的定时器
	defer func() {
		runner.mu.Lock()
		if runner.pending != nil {
			runner.pending.Stop()
		}
		runner.mu.Unlock()
	}()

	dirs, err := collectWatchDirs(opts.Dirs)
	if err != nil {
		return fmt.Errorf("收集监听目录失败: %w", err)
	}
	if len(dirs) == 0 {
		return fmt.Errorf("没有找到需要监听的目录")
	}

	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("添加监听目录失败 %s: %w", dir, err)
		}
		if opts.Verbose {
			fmt.Printf("监听目录: %s\n", dir)
		}
	}

	fmt.Printf("开发模式已启动，监听 %d 个目录\n", len(dirs))
	fmt.Println("按 Ctrl+C 退出")
	fmt.Println()

	runner.runGenerate()
	return runner.watchLoop(ctx)
}

// watchLoop 事件处理循环
func (r *devRunner) watchLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-r.watcher.Events:
			if !ok {
				return nil
			}
			r.handleEvent(event)

		case err, ok := <-r.watcher.Errors:
			if !ok {
				return nil
			}
			if r.opts.Verbose {
				fmt.Printf("监听错误: %v\n", err)
			}
		}
	}
}

// handleEvent 只关心清单文件和 .proto 文件的写入、创建与重命名
func (r *devRunner) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}
	if !r.isRelevant(event.Name) {
		return
	}

	if r.opts.Verbose {
		fmt.Printf("检测到文件变化: %s\n", event.Name)
	}
	r.scheduleGenerate()
}

func (r *devRunner) isRelevant(path string) bool {
	if strings.HasSuffix(path, ".proto") {
		return true
	}
	abs, err := filepath.Abs(path)
	return err == nil && abs == r.opts.Manifest
}

// scheduleGenerate 防抖动调度生成，连续变动只触发一次
func (r *devRunner) scheduleGenerate() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pending != nil {
		r.pending.Stop()
	}

	var timer *time.Timer
	timer = time.AfterFunc(r.opts.Debounce, func() {
		select {
		case <-r.ctx.Done():
			return
		default:
		}

		r.runGenerate()

		// 生成期间可能已经有新的定时器，只清理自己
		r.mu.Lock()
		if r.pending == timer {
			r.pending = nil
		}
		r.mu.Unlock()
	})
	r.pending = timer
}

// runGenerate 执行生成，失败只打印，不退出
// 生成过程中到来的变动会等上一次生成结束后再执行
func (r *devRunner) runGenerate() {
	r.genMu.Lock()
	defer r.genMu.Unlock()

	if r.opts.Verbose {
		fmt.Printf("触发代码生成: %s\n", r.opts.Manifest)
	}
	if err := r.generate(r.ctx); err != nil {
		fmt.Printf("生成失败: %v\n", err)
	}
}

// collectWatchDirs 递归收集目录，跳过隐藏目录
func collectWatchDirs(roots []string) ([]string, error) {
	var dirs []string

	for _, root := range lo.Uniq(roots) {
		absDir, err := filepath.Abs(root)
		if err != nil {
			return nil, err
		}

		info, err := os.Stat(absDir)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			continue
		}

		err = filepath.Walk(absDir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !info.IsDir() {
				return nil
			}
			name := info.Name()
			if path != absDir && (strings.HasPrefix(name, ".") || name == "vendor") {
				return filepath.SkipDir
			}
			dirs = append(dirs, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return lo.Uniq(dirs), nil
}
