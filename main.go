package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// cliOptions 汇总命令行参数。
type cliOptions struct {
	config      string
	preset      string
	format      string
	out         string
	outDir      string
	data        string
	board       string
	records     string
	debug       string
	qr          string
	scale       float64
	workers     int
	dataURI     bool
	inspect     bool
	verbose     bool
	printConfig bool
}

func parseFlags(args []string) (cliOptions, []string, error) {
	var o cliOptions
	fs := flag.NewFlagSet("notecard", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "用法: notecard [flags] [card 文件...]")
		fs.PrintDefaults()
	}
	fs.StringVarP(&o.config, "config", "c", "", "YAML 配置文件（预设、水印、字体）")
	fs.StringVarP(&o.preset, "preset", "p", "", "使用的布局预设名")
	fs.StringVarP(&o.format, "format", "f", "svg", "输出格式: svg | png | pdf")
	fs.StringVarP(&o.out, "out", "o", "", "输出文件路径（仅单个输入时可用）")
	fs.StringVar(&o.outDir, "out-dir", "output", "输出目录")
	fs.StringVar(&o.data, "data", "", "绑定到 card 文件的 JSON 数据，@path 表示从文件读取")
	fs.StringVar(&o.board, "board", "", "由记录生成看板卡片: entry | room | stores | lines")
	fs.StringVar(&o.records, "records", "-", "看板记录 JSON 文件，- 表示标准输入")
	fs.StringVar(&o.debug, "debug", "", "布局调试 JSON 输出目录，- 表示标准输出")
	fs.StringVar(&o.qr, "qr", "", "水印区块中的二维码图片")
	fs.Float64Var(&o.scale, "scale", 0, "PNG 像素倍数（覆盖配置文件）")
	fs.IntVarP(&o.workers, "workers", "w", 0, "并发渲染数，0 表示自动")
	fs.BoolVar(&o.dataURI, "data-uri", false, "将 SVG 以 data URI 输出到标准输出而不写文件")
	fs.BoolVar(&o.inspect, "inspect", false, "在终端打印布局表格")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "输出详细日志")
	fs.BoolVar(&o.printConfig, "print-config", false, "打印合并默认值后的配置并退出")
	if err := fs.Parse(args); err != nil {
		return o, nil, err
	}
	return o, fs.Args(), nil
}

func main() {
	opts, inputs, err := parseFlags(os.Args[1:])
	if err != nil {
		if err == flag.ErrHelp {
			return
		}
		log.Fatalf("参数错误: %v", err)
	}

	if opts.verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(log.Printf))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...any) {}))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	written, err := run(ctx, opts, inputs, os.Stdin, os.Stdout)
	if err != nil {
		log.Fatalf("生成卡片失败: %v", err)
	}
	for _, path := range written {
		fmt.Printf("已生成卡片：%s\n", path)
	}
}

// resolveWorkers 未指定时取 GOMAXPROCS 的一半，限定在 [1, 8]。
func resolveWorkers(n int) int {
	if n > 0 {
		return n
	}
	return min(max(runtime.GOMAXPROCS(0)/2, 1), 8)
}
