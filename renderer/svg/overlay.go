package svgrenderer

import "fmt"

// Image 放置一张嵌入图片（通常是 data URI，例如二维码或 logo）。
func Image(href string, x, y, width, height float64) *Element {
	return El("image",
		A("href", href),
		A("x", x),
		A("y", y),
		A("width", width),
		A("height", height),
		A("preserveAspectRatio", "xMidYMid meet"),
	)
}

// Rect 绘制带透明度的填充矩形，用作面板底色。
func Rect(x, y, width, height, radius float64, fill string, opacity float64) *Element {
	el := El("rect",
		A("x", x),
		A("y", y),
		A("width", width),
		A("height", height),
	)
	if radius > 0 {
		el.Set("rx", radius).Set("ry", radius)
	}
	el.Set("fill", fill)
	if opacity > 0 && opacity < 1 {
		el.Set("fill-opacity", opacity)
	}
	return el
}

// ShadowOptions 描述投影滤镜。
type ShadowOptions struct {
	DX, DY  float64
	Blur    float64
	Color   string
	Opacity float64
}

// Shadow 返回投影滤镜定义；通过 ApplyFilter 挂到目标元素上。
func Shadow(id string, o ShadowOptions) *Element {
	if o.Color == "" {
		o.Color = "#000000"
	}
	if o.Opacity <= 0 {
		o.Opacity = 0.2
	}
	return El("filter",
		A("id", id),
		A("x", "-20%"),
		A("y", "-20%"),
		A("width", "140%"),
		A("height", "140%"),
	).Add(El("feDropShadow",
		A("dx", o.DX),
		A("dy", o.DY),
		A("stdDeviation", o.Blur),
		A("flood-color", o.Color),
		A("flood-opacity", o.Opacity),
	))
}

// ApplyFilter 为元素设置 filter="url(#id)"。
func ApplyFilter(el *Element, id string) *Element {
	return el.Set("filter", fmt.Sprintf("url(#%s)", id))
}

// PatternOptions 控制重复文字水印的平铺方式。
type PatternOptions struct {
	Width    float64 // 单元宽度
	Height   float64 // 单元高度
	Angle    float64 // 旋转角度（度）
	FontSize float64
	Color    string
	Opacity  float64
}

// TextPattern 返回重复文字图案定义与铺满画布的矩形。
// def 放入 Overlays.Defs，fill 放入 Before 或 After。
func TextPattern(id, text string, o PatternOptions) (def, fill *Element) {
	if o.Width <= 0 {
		o.Width = 320
	}
	if o.Height <= 0 {
		o.Height = 140
	}
	if o.FontSize <= 0 {
		o.FontSize = 20
	}
	if o.Color == "" {
		o.Color = "#000000"
	}
	if o.Opacity <= 0 {
		o.Opacity = 0.08
	}
	def = El("pattern",
		A("id", id),
		A("patternUnits", "userSpaceOnUse"),
		A("width", o.Width),
		A("height", o.Height),
		A("patternTransform", fmt.Sprintf("rotate(%s)", FormatNumber(o.Angle))),
	).Add(El("text",
		A("x", 0),
		A("y", o.Height/2),
		A("font-size", o.FontSize),
		A("fill", o.Color),
		A("fill-opacity", o.Opacity),
	).WithText(text))
	fill = El("rect",
		A("x", 0),
		A("y", 0),
		A("width", "100%"),
		A("height", "100%"),
		A("fill", fmt.Sprintf("url(#%s)", id)),
		A("pointer-events", "none"),
	)
	return def, fill
}
