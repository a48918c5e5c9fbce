package card

import (
	"github.com/ByLCY/notecard/layout"
	svgrenderer "github.com/ByLCY/notecard/renderer/svg"
)

// Card 组合正文行、布局配置、可选水印与额外装饰片段。
type Card struct {
	Lines     []layout.Line
	Options   layout.Options
	Watermark *Watermark
	Overlays  svgrenderer.Overlays
}

// New 以默认配置创建卡片。
func New(lines ...layout.Line) Card {
	return Card{Lines: lines, Options: layout.DefaultOptions()}
}

// Compose 计算布局（含水印页脚行）并返回需要叠加的装饰片段。
func (c Card) Compose() (*layout.Layout, svgrenderer.Overlays) {
	lines := append([]layout.Line(nil), c.Lines...)
	if len(lines) == 0 {
		lines = []layout.Line{layout.Text("")}
	}
	if c.Watermark == nil || c.Watermark.Empty() {
		return layout.Compute(lines, c.Options), c.Overlays
	}

	wm := c.Watermark.withDefaults()
	footer, qr := wm.footer()
	first := -1
	if len(footer) > 0 {
		first = len(lines)
		if qr >= 0 {
			qr += first
		}
	}
	lines = append(lines, footer...)
	l := layout.Compute(lines, c.Options)
	return l, c.Overlays.Merge(wm.overlays(l, first, qr))
}

// Layout 返回包含水印页脚行的布局，供画布后端使用。
func (c Card) Layout() *layout.Layout {
	l, _ := c.Compose()
	return l
}

// Render 输出 SVG 文档。
func (c Card) Render() svgrenderer.Document {
	l, ov := c.Compose()
	return svgrenderer.Render(l, ov)
}

// Render 是 Card{Lines, Options}.Render 的便捷形式。
func Render(lines []layout.Line, opts layout.Options) svgrenderer.Document {
	return Card{Lines: lines, Options: opts}.Render()
}
