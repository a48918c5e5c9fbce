package layout

// 该文件定义卡片布局的输入行与计算结果，供布局计算、SVG/画布渲染与调试 JSON 共用。

// Align 描述一行文本的水平对齐方式。
type Align string

const (
	AlignStart  Align = "start"
	AlignCenter Align = "center"
	AlignEnd    Align = "end"
)

// normalize 将 left/middle/right 等别名统一为 start/center/end，未知值按 start 处理。
func (a Align) normalize() Align {
	switch a {
	case AlignCenter, "middle":
		return AlignCenter
	case AlignEnd, "right":
		return AlignEnd
	default:
		return AlignStart
	}
}

// TextAnchor 返回 SVG text-anchor 取值。
func (a Align) TextAnchor() string {
	switch a.normalize() {
	case AlignCenter:
		return "middle"
	case AlignEnd:
		return "end"
	default:
		return "start"
	}
}

// Line 是一行待渲染的文本。数值字段为 0 时回落到 Options 中的默认值。
type Line struct {
	Text       string   `json:"text"`
	FontSize   float64  `json:"fontSize,omitempty"`
	FontWeight string   `json:"fontWeight,omitempty"`
	LineHeight float64  `json:"lineHeight,omitempty"`
	GapBefore  float64  `json:"gapBefore,omitempty"` // 首行忽略
	Fill       string   `json:"fill,omitempty"`
	Align      Align    `json:"align,omitempty"`
	X          *float64 `json:"x,omitempty"` // 显式横坐标，优先于 Align
}

// Text 构造只有文本内容的行。
func Text(s string) Line { return Line{Text: s} }

// At 返回设置了显式横坐标的副本。
func (l Line) At(x float64) Line {
	l.X = &x
	return l
}

// Layout 保存一次布局计算的完整几何信息。
type Layout struct {
	Options    Options      `json:"options"`
	Width      float64      `json:"width"`
	Height     float64      `json:"height"`
	TextStartX float64      `json:"textStartX"`
	Notepad    bool         `json:"notepad"`
	Lines      []PlacedLine `json:"lines"`
}

// PlacedLine 是解析完默认值并确定坐标后的行。
// Y 为绝对基线；DY 为相对上一行的增量（首行为 0），两者按同一规则累计。
type PlacedLine struct {
	Text           string  `json:"text"`
	FontSize       float64 `json:"fontSize"`
	FontWeight     string  `json:"fontWeight"`
	LineHeight     float64 `json:"lineHeight"`
	GapBefore      float64 `json:"gapBefore"`
	Fill           string  `json:"fill,omitempty"`
	Align          Align   `json:"align"`
	Anchor         string  `json:"anchor"`
	X              float64 `json:"x"`
	Y              float64 `json:"y"`
	DY             float64 `json:"dy"`
	EstimatedWidth float64 `json:"estimatedWidth"`
}

// MarginX 返回记事本竖线的横坐标。
func (l *Layout) MarginX() float64 {
	return l.Options.Padding + l.Options.NotepadMarginOffset
}

// ContentHeight 返回不含上下内边距的内容高度。
func (l *Layout) ContentHeight() float64 {
	return l.Height - 2*l.Options.Padding
}
