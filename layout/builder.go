package layout

import (
	"fmt"
	"math"
	"unicode/utf8"
)

// averageGlyphWidth 是平均字宽相对字号的比例，不做真实字形排版。
const averageGlyphWidth = 0.65

// Compute 根据行列表与配置计算卡片布局。空列表会被规范化为一行空文本。
// Compute 不校验配置范围，也不会返回错误；结果只依赖入参，可并发调用。
func Compute(lines []Line, opts Options) *Layout {
	opts = opts.Resolve()
	if len(lines) == 0 {
		lines = []Line{{Text: ""}}
	}

	textStartX := opts.TextStartX()
	rightPadding := opts.Padding

	placed := make([]PlacedLine, len(lines))
	width := math.Max(opts.MinWidth, textStartX+rightPadding)
	cursorY := opts.Padding
	for i, line := range lines {
		pl := resolveLine(line, opts)
		if i == 0 {
			// 首行：基线位于 padding + fontSize
			pl.GapBefore = 0
			pl.DY = 0
			cursorY += pl.FontSize
		} else {
			pl.DY = pl.GapBefore + pl.LineHeight
			cursorY += pl.DY
		}
		pl.Y = cursorY
		pl.EstimatedWidth = measure(pl, opts.Measurer)
		width = math.Max(width, textStartX+pl.EstimatedWidth+rightPadding)
		placed[i] = pl
	}
	height := cursorY + opts.Padding

	for i := range placed {
		placed[i].X = anchorX(lines[i], placed[i].Align, width, opts.Padding, textStartX)
	}

	return &Layout{
		Options:    opts,
		Width:      width,
		Height:     height,
		TextStartX: textStartX,
		Notepad:    opts.IsNotepad(),
		Lines:      placed,
	}
}

// ComputeText 以纯文本行计算布局。
func ComputeText(opts Options, texts ...string) *Layout {
	lines := make([]Line, len(texts))
	for i, t := range texts {
		lines[i] = Text(t)
	}
	return Compute(lines, opts)
}

func resolveLine(line Line, opts Options) PlacedLine {
	fontSize := line.FontSize
	if fontSize <= 0 {
		fontSize = opts.DefaultFontSize
	}
	lineHeight := line.LineHeight
	if lineHeight <= 0 {
		lineHeight = opts.DefaultLineHeight
	}
	weight := line.FontWeight
	if weight == "" {
		weight = "normal"
	}
	gap := line.GapBefore
	if gap < 0 {
		gap = 0
	}
	align := line.Align.normalize()
	return PlacedLine{
		Text:       line.Text,
		FontSize:   fontSize,
		FontWeight: weight,
		LineHeight: lineHeight,
		GapBefore:  gap,
		Fill:       line.Fill,
		Align:      align,
		Anchor:     align.TextAnchor(),
	}
}

func anchorX(line Line, align Align, width, padding, textStartX float64) float64 {
	if line.X != nil {
		return *line.X
	}
	switch align {
	case AlignCenter:
		return width / 2
	case AlignEnd:
		return width - padding
	default:
		return textStartX
	}
}

func measure(pl PlacedLine, m Measurer) float64 {
	if m != nil {
		if w := m.MeasureText(pl.Text, pl.FontSize, pl.FontWeight); w >= 0 {
			return math.Ceil(w)
		}
	}
	return EstimateWidth(pl.Text, pl.FontSize)
}

// EstimateWidth 按 ceil(字符数 × 字号 × 0.65) 估算文本宽度。
func EstimateWidth(text string, fontSize float64) float64 {
	return math.Ceil(float64(utf8.RuneCountInString(text)) * fontSize * averageGlyphWidth)
}

// Normalize 将松散的输入（字符串、Line、切片或 JSON 解码后的 map/[]any）转换为行列表。
// 单个值视为一行；非字符串的 text 视为空串；结果至少包含一行。
func Normalize(v any) []Line {
	var out []Line
	switch val := v.(type) {
	case nil:
	case string:
		out = []Line{Text(val)}
	case Line:
		out = []Line{val}
	case []Line:
		out = append(out, val...)
	case []string:
		for _, s := range val {
			out = append(out, Text(s))
		}
	case map[string]any:
		out = []Line{lineFromMap(val)}
	case []any:
		for _, item := range val {
			out = append(out, Normalize(item)...)
		}
	default:
		out = []Line{Text("")}
	}
	if len(out) == 0 {
		out = []Line{Text("")}
	}
	return out
}

func lineFromMap(m map[string]any) Line {
	var l Line
	if s, ok := m["text"].(string); ok {
		l.Text = s
	}
	l.FontSize = number(m["fontSize"])
	l.LineHeight = number(m["lineHeight"])
	l.GapBefore = number(m["gapBefore"])
	if s, ok := m["fontWeight"].(string); ok {
		l.FontWeight = s
	} else if n, ok := m["fontWeight"].(float64); ok {
		l.FontWeight = fmt.Sprint(n)
	}
	if s, ok := m["fill"].(string); ok {
		l.Fill = s
	}
	if s, ok := m["align"].(string); ok {
		l.Align = Align(s)
	} else if s, ok := m["textAnchor"].(string); ok {
		l.Align = Align(s)
	}
	if x, ok := m["x"].(float64); ok {
		l.X = &x
	}
	return l
}

func number(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}
