package svgrenderer

import (
	"encoding/base64"
	"fmt"

	"github.com/ByLCY/notecard/layout"
	"github.com/ByLCY/notecard/renderer"
)

// Document 是一次渲染的结果：完整 SVG 文本及其声明尺寸（像素）。
type Document struct {
	SVG    string
	Width  float64
	Height float64
}

// Overlays 是调用方注入的装饰片段。Defs 进入 <defs>；Before 位于背景之后、文本之前；
// After 位于文本之后。各列表按给定顺序输出。
type Overlays struct {
	Defs   []*Element
	Before []*Element
	After  []*Element
}

// Merge 返回按顺序拼接 o 与 other 的新 Overlays。
func (o Overlays) Merge(other Overlays) Overlays {
	return Overlays{
		Defs:   append(append([]*Element(nil), o.Defs...), other.Defs...),
		Before: append(append([]*Element(nil), o.Before...), other.Before...),
		After:  append(append([]*Element(nil), o.After...), other.After...),
	}
}

// Renderer 以固定的装饰片段输出 SVG 字节。
type Renderer struct {
	Overlays Overlays
}

var _ renderer.Renderer = Renderer{}

// Render 实现 renderer.Renderer。
func (r Renderer) Render(l *layout.Layout) ([]byte, error) {
	if l == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	return []byte(Render(l, r.Overlays).SVG), nil
}

// RenderLines 先计算布局再渲染。
func RenderLines(lines []layout.Line, opts layout.Options, ov Overlays) Document {
	return Render(layout.Compute(lines, opts), ov)
}

// Render 将布局序列化为 SVG 文档。相同输入总是得到逐字节相同的输出；
// 不做 I/O，也不修改入参，可并发调用。l 为 nil 时按空行列表与默认配置渲染。
func Render(l *layout.Layout, ov Overlays) Document {
	if l == nil {
		l = layout.Compute(nil, layout.DefaultOptions())
	}
	opts := l.Options

	b := NewBuilder(l.Width, l.Height).RootAttr(A("role", "img"))
	b.Def(styleRule(opts))
	b.Def(ov.Defs...)

	b.Add(background(l))
	if l.Notepad {
		b.Add(notepadDecoration(l)...)
	}
	b.Add(ov.Before...)
	b.Add(textBlock(l))
	b.Add(ov.After...)

	return Document{SVG: b.String(), Width: l.Width, Height: l.Height}
}

// DataURI 将文档包装为 base64 data URI，便于内嵌到 <img src> 或其他 SVG 中。
func DataURI(doc Document) string {
	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(doc.SVG))
}

func styleRule(opts layout.Options) *Element {
	css := fmt.Sprintf("text { font-family: %s; fill: %s; }", opts.FontFamily, opts.TextColor)
	return El("style").WithText(css)
}

func background(l *layout.Layout) *Element {
	opts := l.Options
	return El("rect",
		A("x", 0),
		A("y", 0),
		A("rx", opts.BorderRadius),
		A("ry", opts.BorderRadius),
		A("width", l.Width),
		A("height", l.Height),
		A("fill", opts.Background),
		A("stroke", opts.BorderColor),
		A("stroke-width", opts.BorderWidth),
	)
}

func textBlock(l *layout.Layout) *Element {
	opts := l.Options
	text := El("text",
		A("x", l.TextStartX),
		A("y", opts.Padding),
		A("font-size", opts.DefaultFontSize),
		A("xml:space", "preserve"),
	)
	text.Inline = true
	for i, pl := range l.Lines {
		span := El("tspan", A("x", pl.X))
		if i == 0 {
			span.Set("y", pl.Y)
		} else {
			span.Set("dy", pl.DY)
		}
		span.Set("font-size", pl.FontSize)
		span.Set("font-weight", pl.FontWeight)
		if pl.Fill != "" {
			span.Set("fill", pl.Fill)
		}
		if pl.Anchor != "" && pl.Anchor != "start" {
			span.Set("text-anchor", pl.Anchor)
		}
		text.Add(span.WithText(pl.Text))
	}
	return text
}
