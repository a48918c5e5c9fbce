package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ByLCY/notecard/board"
	"github.com/ByLCY/notecard/card"
	"github.com/ByLCY/notecard/config"
	"github.com/ByLCY/notecard/dsl"
	"github.com/ByLCY/notecard/layout"
	"github.com/ByLCY/notecard/renderer"
	canvasrenderer "github.com/ByLCY/notecard/renderer/canvas"
	svgrenderer "github.com/ByLCY/notecard/renderer/svg"
)

// job 是一张待渲染的卡片。
type job struct {
	name  string
	lines []layout.Line
	opts  layout.Options
}

// result 保存单张卡片的渲染输出，按输入顺序汇总。
type result struct {
	path    string
	layout  *layout.Layout
	dataURI string
}

// run 串联配置加载、输入编译、并发渲染与写出，返回写出的文件路径。
func run(ctx context.Context, o cliOptions, inputs []string, stdin io.Reader, stdout io.Writer) ([]string, error) {
	format := strings.ToLower(o.format)
	switch format {
	case "svg", "png", "pdf":
	default:
		return nil, fmt.Errorf("不支持的输出格式 %q", o.format)
	}
	if o.dataURI && format != "svg" {
		return nil, fmt.Errorf("--data-uri 仅适用于 svg 输出")
	}

	var cfg *config.File
	if o.config != "" {
		var err error
		if cfg, err = config.Load(o.config); err != nil {
			return nil, err
		}
	}
	if o.printConfig {
		return nil, printConfig(cfg, stdout)
	}

	base, err := cfg.Options(o.preset)
	if err != nil {
		return nil, err
	}
	wm, err := watermark(cfg, o.qr)
	if err != nil {
		return nil, err
	}

	jobs, err := collectJobs(o, inputs, stdin, base)
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, fmt.Errorf("没有可渲染的输入（指定 card 文件或 --board）")
	}
	if o.out != "" && len(jobs) > 1 {
		return nil, fmt.Errorf("--out 只能用于单个输入，当前有 %d 个", len(jobs))
	}

	var cr *canvasrenderer.Renderer
	if format != "svg" {
		copts := canvasrenderer.Options{BaseDir: cfg.Dir(), Info: canvasrenderer.DocumentInfo{Creator: "notecard"}}
		if cfg != nil {
			copts.Fonts = cfg.Canvas.Fonts
			copts.Scale = cfg.Canvas.Scale
		}
		if o.scale > 0 {
			copts.Scale = o.scale
		}
		cr = canvasrenderer.NewRendererWithOptions(copts)
	}

	results := make([]result, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(resolveWorkers(o.workers))
	for i, j := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := renderJob(j, format, o, wm, cr)
			if err != nil {
				return fmt.Errorf("%s: %w", j.name, err)
			}
			results[i] = res
			if o.verbose {
				log.Printf("%s: %gx%g, %d 行", j.name, res.layout.Width, res.layout.Height, len(res.layout.Lines))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var written []string
	for i, res := range results {
		if o.debug != "" {
			if err := writeDebug(res.layout, jobs[i].name, o.debug, stdout); err != nil {
				return nil, err
			}
		}
		if o.inspect {
			fmt.Fprintln(stdout, inspect(jobs[i].name, res.layout))
		}
		if res.dataURI != "" {
			fmt.Fprintln(stdout, res.dataURI)
		}
		if res.path != "" {
			written = append(written, res.path)
		}
	}
	return written, nil
}

// collectJobs 编译 card 文件与看板记录。
func collectJobs(o cliOptions, inputs []string, stdin io.Reader, base layout.Options) ([]job, error) {
	var data any
	if o.data != "" {
		raw := []byte(o.data)
		if path, ok := strings.CutPrefix(o.data, "@"); ok {
			var err error
			if raw, err = os.ReadFile(path); err != nil {
				return nil, fmt.Errorf("读取 data 文件失败: %w", err)
			}
		}
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("解析 data JSON 失败: %w", err)
		}
	}

	var jobs []job
	for _, path := range inputs {
		j, err := compileCard(path, data, base)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}

	if o.board != "" {
		j, err := boardJob(o.board, o.records, stdin, base)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}

func compileCard(path string, data any, base layout.Options) (job, error) {
	file, err := os.Open(path)
	if err != nil {
		return job{}, fmt.Errorf("无法打开 card 文件 %s: %w", path, err)
	}
	defer file.Close()

	doc, err := dsl.ParseNamed(path, file)
	if err != nil {
		return job{}, fmt.Errorf("解析 card 文件失败: %w", err)
	}
	lines, opts, err := layout.FromDocument(doc, data, base)
	if err != nil {
		return job{}, fmt.Errorf("%s: %w", path, err)
	}
	if err := opts.Validate(); err != nil {
		return job{}, fmt.Errorf("%s: %w", path, err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return job{name: name, lines: lines, opts: opts}, nil
}

// boardJob 读取看板记录并生成对应卡片。
func boardJob(kind, records string, stdin io.Reader, base layout.Options) (job, error) {
	var (
		raw []byte
		err error
	)
	if records == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(records)
	}
	if err != nil {
		return job{}, fmt.Errorf("读取看板记录失败: %w", err)
	}

	j := job{name: kind, opts: base}
	switch strings.ToLower(kind) {
	case "entry":
		b, err := board.DecodeEntryBoard(raw)
		if err != nil {
			return job{}, err
		}
		j.lines = board.EntryLines(b.Store, b.Entries)
	case "room":
		room, err := board.DecodeRoom(raw)
		if err != nil {
			return job{}, err
		}
		j.lines = board.RoomLines(room)
	case "stores":
		stores, err := board.DecodeStores(raw)
		if err != nil {
			return job{}, err
		}
		j.lines = board.StoreListLines(stores)
	case "lines":
		// 调用方已组装好的行：字符串、{text, fontSize, ...} 对象或其数组
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return job{}, fmt.Errorf("解析行 JSON 失败: %w", err)
		}
		j.lines = layout.Normalize(v)
	default:
		return job{}, fmt.Errorf("未知看板类型 %q（entry | room | stores | lines）", kind)
	}
	return j, nil
}

// watermark 合并配置中的水印与命令行指定的二维码。
func watermark(cfg *config.File, qr string) (*card.Watermark, error) {
	wm, err := cfg.CardWatermark()
	if err != nil {
		return nil, err
	}
	if qr == "" {
		return wm, nil
	}
	uri, err := card.LoadImage(qr)
	if err != nil {
		return nil, err
	}
	if wm == nil {
		wm = &card.Watermark{}
	}
	wm.QRDataURI = uri
	return wm, nil
}

// backend 按输出格式选择渲染后端。
func backend(format string, cr *canvasrenderer.Renderer, ov svgrenderer.Overlays) renderer.Renderer {
	switch format {
	case "png":
		return renderer.Func(cr.RenderPNG)
	case "pdf":
		return cr
	default:
		return svgrenderer.Renderer{Overlays: ov}
	}
}

func renderJob(j job, format string, o cliOptions, wm *card.Watermark, cr *canvasrenderer.Renderer) (result, error) {
	c := card.Card{Lines: j.lines, Options: j.opts, Watermark: wm}
	if cr != nil {
		c.Options.Measurer = cr
	}
	// 画布后端不绘制 SVG 装饰片段，只使用布局
	l, ov := c.Compose()
	res := result{layout: l}
	data, err := backend(format, cr, ov).Render(l)
	if err != nil {
		return res, err
	}
	if o.dataURI {
		res.dataURI = svgrenderer.DataURI(svgrenderer.Document{SVG: string(data), Width: l.Width, Height: l.Height})
		return res, nil
	}

	res.path = o.out
	if res.path == "" {
		res.path = filepath.Join(o.outDir, j.name+"."+format)
	}
	if err := os.MkdirAll(filepath.Dir(res.path), 0o755); err != nil {
		return res, fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(res.path, data, 0o644); err != nil {
		return res, fmt.Errorf("写入输出文件失败: %w", err)
	}
	return res, nil
}

func writeDebug(l *layout.Layout, name, target string, stdout io.Writer) error {
	path := target
	if target != "-" {
		if err := os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("创建调试目录失败: %w", err)
		}
		path = filepath.Join(target, name+".layout.json")
	}
	if err := layout.WriteDebugJSON(l, path, stdout); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}

func printConfig(cfg *config.File, w io.Writer) error {
	if cfg == nil {
		cfg = &config.File{}
	}
	if _, ok := cfg.Presets[config.DefaultPreset]; !ok {
		opts, _ := cfg.Options(config.DefaultPreset)
		presets := map[string]config.Preset{config.DefaultPreset: {Options: opts}}
		for name, p := range cfg.Presets {
			presets[name] = p
		}
		merged := *cfg
		merged.Presets = presets
		cfg = &merged
	}
	out, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
