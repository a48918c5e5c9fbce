package layout

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ByLCY/notecard/binding"
	"github.com/ByLCY/notecard/dsl"
)

// ErrNoCard 表示没有可编译的卡片文档。
var ErrNoCard = errors.New("layout: card document is empty")

// FromDocument 将卡片 DSL 编译为行列表与配置。base 为起始配置（通常是 DefaultOptions 或预设），
// 文档中的赋值语句覆盖其字段；data 用于 ${path} 插值。
func FromDocument(doc *dsl.Document, data any, base Options) ([]Line, Options, error) {
	if doc == nil || doc.Block == nil {
		return nil, base, ErrNoCard
	}
	opts := base
	var lines []Line
	for _, stmt := range doc.Block.Statements {
		switch {
		case stmt.Assignment != nil:
			if err := applyOption(&opts, stmt.Assignment.Key, binding.Interpolate(stmt.Assignment.Value.Text(), data)); err != nil {
				return nil, base, err
			}
		case stmt.Command != nil:
			cmd := stmt.Command
			switch strings.ToLower(cmd.Name) {
			case "line":
				line, err := compileLine(cmd, data, opts)
				if err != nil {
					return nil, base, err
				}
				lines = append(lines, line)
			case "blank", "spacer":
				// 空行：只占垂直空间
				line, err := compileLine(cmd, data, opts)
				if err != nil {
					return nil, base, err
				}
				line.Text = ""
				lines = append(lines, line)
			default:
				return nil, base, fmt.Errorf("%s: 未知命令 %q", cmd.Pos, cmd.Name)
			}
		case stmt.Text != nil:
			// 顶层字符串字面量等价于默认样式的一行
			lines = append(lines, Text(binding.Interpolate(string(stmt.Text.Value), data)))
		}
	}
	return lines, opts, nil
}

func compileLine(cmd *dsl.Command, data any, opts Options) (Line, error) {
	attrs, err := parseArgs(cmd)
	if err != nil {
		return Line{}, err
	}
	line := Line{Text: binding.Interpolate(extractText(cmd.Block), data)}
	if v := attrs["size"]; v != "" {
		line.FontSize = ParsePX(v)
	}
	if v := firstOf(attrs, "weight", "font-weight"); v != "" {
		line.FontWeight = v
	}
	if v := firstOf(attrs, "line-height", "lineHeight"); v != "" {
		line.LineHeight = parseLineHeight(v, line.FontSize, opts)
	}
	if v := firstOf(attrs, "gap", "gap-before", "gapBefore"); v != "" {
		line.GapBefore = ParsePX(v)
	}
	if v := firstOf(attrs, "fill", "color"); v != "" {
		line.Fill = binding.Interpolate(v, data)
	}
	if v := firstOf(attrs, "align", "anchor"); v != "" {
		line.Align = Align(strings.ToLower(v))
	}
	if v := attrs["x"]; v != "" {
		if l, ok := ParseLength(v); ok {
			line = line.At(l.PX())
		}
	}
	return line, nil
}

// parseLineHeight 支持 "1.2x" 倍数与绝对长度两种写法。
func parseLineHeight(v string, fontSize float64, opts Options) float64 {
	if factor, ok := strings.CutSuffix(v, "x"); ok {
		f, err := strconv.ParseFloat(factor, 64)
		if err != nil || f <= 0 {
			return 0
		}
		if fontSize <= 0 {
			fontSize = opts.DefaultFontSize
		}
		if fontSize <= 0 {
			fontSize = defaultFontSize
		}
		return fontSize * f
	}
	return ParsePX(v)
}

func parseArgs(cmd *dsl.Command) (map[string]string, error) {
	result := map[string]string{}
	args := cmd.Args
	if len(args)%2 != 0 {
		return nil, fmt.Errorf("%s: %s 的参数必须成对出现（key value）", cmd.Pos, cmd.Name)
	}
	for i := 0; i+1 < len(args); i += 2 {
		result[strings.ToLower(args[i].Value)] = args[i+1].Value
	}
	return result, nil
}

func firstOf(attrs map[string]string, keys ...string) string {
	for _, k := range keys {
		if v := attrs[strings.ToLower(k)]; v != "" {
			return v
		}
	}
	return ""
}

func extractText(block *dsl.Block) string {
	if block == nil {
		return ""
	}
	var builder strings.Builder
	for _, stmt := range block.Statements {
		if stmt.Text != nil {
			builder.WriteString(string(stmt.Text.Value))
		}
	}
	return builder.String()
}

func applyOption(o *Options, key, value string) error {
	num := func() (float64, error) {
		l, ok := ParseLength(value)
		if !ok {
			return 0, fmt.Errorf("选项 %s 需要数值，实际为 %q", key, value)
		}
		return l.PX(), nil
	}
	var err error
	switch key {
	case "fontSize", "defaultFontSize":
		o.DefaultFontSize, err = num()
	case "lineHeight", "defaultLineHeight":
		o.DefaultLineHeight, err = num()
	case "padding":
		o.Padding, err = num()
	case "minWidth":
		o.MinWidth, err = num()
	case "background":
		// background 既可以是颜色，也可以是背景类型
		switch BackgroundType(value) {
		case BackgroundPlain, BackgroundNotepad:
			o.BackgroundType = BackgroundType(value)
		default:
			o.Background = value
		}
	case "backgroundType":
		o.BackgroundType = BackgroundType(value)
	case "textColor":
		o.TextColor = value
	case "fontFamily":
		o.FontFamily = value
	case "borderRadius":
		o.BorderRadius, err = num()
	case "borderColor":
		o.BorderColor = value
	case "borderWidth":
		o.BorderWidth, err = num()
	case "notepadMarginOffset":
		o.NotepadMarginOffset, err = num()
	case "notepadTextIndent":
		o.NotepadTextIndent, err = num()
	case "notepadLineSpacing":
		o.NotepadLineSpacing, err = num()
	case "notepadLineColor":
		o.NotepadLineColor = value
	case "notepadMarginColor":
		o.NotepadMarginColor = value
	case "notepadMarginWidth":
		o.NotepadMarginWidth, err = num()
	case "notepadHoleRadius":
		o.NotepadHoleRadius, err = num()
	case "notepadHoleSpacing":
		o.NotepadHoleSpacing, err = num()
	case "notepadHoleOffsetX":
		o.NotepadHoleOffsetX, err = num()
	default:
		return fmt.Errorf("未知选项 %q", key)
	}
	return err
}
