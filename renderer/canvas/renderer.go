package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"image/png"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	"github.com/ByLCY/notecard/fonts"
	"github.com/ByLCY/notecard/layout"
	"github.com/ByLCY/notecard/renderer"
)

const (
	faceCacheSize = 128
	holeTopInset  = 4
)

// Renderer draws card layouts via github.com/tdewolff/canvas.
// 布局坐标为像素（96 DPI），canvas 内部使用毫米，字体使用 pt，在边界处换算。
type Renderer struct {
	baseDir string
	sources map[string]string // regular/medium/bold → 字体来源
	scale   float64
	info    DocumentInfo

	fontMu sync.Mutex
	family *canvas.FontFamily
	faces  *lru.Cache[faceKey, *canvas.FontFace]
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ layout.Measurer   = (*Renderer)(nil)
)

type faceKey struct {
	style canvas.FontStyle
	size  float64 // pt
	color color.RGBA
}

// DocumentInfo 写入 PDF 元数据。
type DocumentInfo struct {
	Title   string
	Subject string
	Author  string
	Creator string
}

// Options configures the canvas renderer.
type Options struct {
	BaseDir string
	// Fonts 覆盖内置字体，键为 regular/medium/bold，值为 "builtin:..." 或字体文件路径。
	Fonts map[string]string
	// Scale 为 PNG 像素密度倍数，0 表示 1（即 96 DPI）。
	Scale float64
	Info  DocumentInfo
}

// NewRenderer creates a canvas-based renderer rooted at baseDir for resolving font paths.
func NewRenderer(baseDir string) *Renderer { return NewRendererWithOptions(Options{BaseDir: baseDir}) }

// NewRendererWithOptions creates a renderer with font overrides and output settings.
func NewRendererWithOptions(opts Options) *Renderer {
	sources := map[string]string{
		"regular": fonts.Regular,
		"medium":  fonts.Medium,
		"bold":    fonts.Bold,
	}
	for k, v := range opts.Fonts {
		k = strings.ToLower(k)
		if _, ok := sources[k]; ok && v != "" {
			sources[k] = v
		}
	}
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	info := opts.Info
	if info.Creator == "" {
		info.Creator = "notecard"
	}
	faces, _ := lru.New[faceKey, *canvas.FontFace](faceCacheSize)
	return &Renderer{
		baseDir: opts.BaseDir,
		sources: sources,
		scale:   scale,
		info:    info,
		faces:   faces,
	}
}

// Render renders the layout into a PDF byte slice.
func (r *Renderer) Render(l *layout.Layout) ([]byte, error) { return r.RenderPDF(l) }

// RenderPDF 输出单页 PDF，页面尺寸等于卡片尺寸。
func (r *Renderer) RenderPDF(l *layout.Layout) ([]byte, error) {
	c, err := r.draw(l)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	writer := pdf.New(&buf, c.W, c.H, nil)
	writer.SetInfo(r.info.Title, r.info.Subject, "", r.info.Author, r.info.Creator)
	c.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderPNG 以 96 DPI × Scale 栅格化卡片并编码为 PNG。
func (r *Renderer) RenderPNG(l *layout.Layout) ([]byte, error) {
	c, err := r.draw(l)
	if err != nil {
		return nil, err
	}
	img := rasterizer.Draw(c, canvas.DPI(layout.PxPerInch*r.scale), canvas.DefaultColorSpace)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("编码 PNG 失败: %w", err)
	}
	return buf.Bytes(), nil
}

// MeasureText 实现 layout.Measurer：使用真实字形宽度（像素）。
// 字体加载失败时返回 -1，布局会退回平均字宽估算。
func (r *Renderer) MeasureText(text string, fontSize float64, fontWeight string) float64 {
	face, err := r.fontFace(fontWeight, fontSize, color.RGBA{A: 0xff})
	if err != nil {
		return -1
	}
	return face.TextWidth(text) * layout.MmToPx
}

func (r *Renderer) draw(l *layout.Layout) (*canvas.Canvas, error) {
	if l == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if l.Width <= 0 || l.Height <= 0 {
		return nil, fmt.Errorf("画布尺寸无效: %gx%g", l.Width, l.Height)
	}
	c := canvas.New(mm(l.Width), mm(l.Height))
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点

	r.drawBackground(ctx, l)
	if l.Notepad {
		r.drawNotepad(ctx, l)
	}
	if err := r.drawLines(ctx, l); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *Renderer) drawBackground(ctx *canvas.Context, l *layout.Layout) {
	opts := l.Options
	ctx.SetFillColor(parseColor(opts.Background, canvas.White))
	if opts.BorderWidth > 0 {
		ctx.SetStrokeColor(parseColor(opts.BorderColor, canvas.Transparent))
		ctx.SetStrokeWidth(mm(opts.BorderWidth))
	} else {
		ctx.SetStrokeColor(canvas.Transparent)
	}
	ctx.DrawPath(0, 0, canvas.RoundedRectangle(mm(l.Width), mm(l.Height), mm(opts.BorderRadius)))
}

// drawNotepad 与 SVG 输出使用同一组几何规则：横线、页边竖线、装订孔。
func (r *Renderer) drawNotepad(ctx *canvas.Context, l *layout.Layout) {
	opts := l.Options
	maxY := l.Height - opts.Padding

	if spacing := opts.NotepadLineSpacing; spacing > 0 {
		ctx.SetStrokeColor(parseColor(opts.NotepadLineColor, canvas.Lightgray))
		ctx.SetStrokeWidth(mm(1))
		for y := opts.Padding + opts.DefaultLineHeight; y <= maxY; y += spacing {
			drawSegment(ctx, opts.Padding, y, l.Width-opts.Padding, y)
		}
	}

	if opts.NotepadMarginWidth > 0 {
		ctx.SetStrokeColor(parseColor(opts.NotepadMarginColor, canvas.Red))
		ctx.SetStrokeWidth(mm(opts.NotepadMarginWidth))
		x := l.MarginX()
		drawSegment(ctx, x, opts.Padding, x, maxY)
	}

	if spacing := opts.NotepadHoleSpacing; spacing > 0 && opts.NotepadHoleRadius > 0 {
		ctx.SetFillColor(canvas.White)
		ctx.SetStrokeColor(canvas.Hex("#d0d0d0"))
		ctx.SetStrokeWidth(mm(1))
		for y := opts.Padding + opts.NotepadHoleRadius + holeTopInset; y < maxY; y += spacing {
			ctx.DrawPath(mm(opts.NotepadHoleOffsetX), mm(y), canvas.Circle(mm(opts.NotepadHoleRadius)))
		}
	}
}

func drawSegment(ctx *canvas.Context, x1, y1, x2, y2 float64) {
	p := &canvas.Path{}
	p.MoveTo(0, 0)
	p.LineTo(mm(x2-x1), mm(y2-y1))
	ctx.DrawPath(mm(x1), mm(y1), p)
}

func (r *Renderer) drawLines(ctx *canvas.Context, l *layout.Layout) error {
	defaultFill := parseColor(l.Options.TextColor, canvas.Black)
	for _, pl := range l.Lines {
		if pl.Text == "" {
			continue
		}
		fill := defaultFill
		if pl.Fill != "" {
			fill = parseColor(pl.Fill, defaultFill)
		}
		face, err := r.fontFace(pl.FontWeight, pl.FontSize, fill)
		if err != nil {
			return err
		}
		var align canvas.TextAlign
		switch pl.Align {
		case layout.AlignCenter:
			align = canvas.Center
		case layout.AlignEnd:
			align = canvas.Right
		default:
			align = canvas.Left
		}
		// Y 已是基线
		ctx.DrawText(mm(pl.X), mm(pl.Y), canvas.NewTextLine(face, pl.Text, align))
	}
	return nil
}

func (r *Renderer) fontFace(weight string, sizePx float64, col color.RGBA) (*canvas.FontFace, error) {
	family, err := r.ensureFamily()
	if err != nil {
		return nil, err
	}
	key := faceKey{style: parseFontStyle(weight), size: sizePx * layout.PxToPt, color: col}
	if face, ok := r.faces.Get(key); ok {
		return face, nil
	}
	face := family.Face(key.size, col, key.style, canvas.FontNormal)
	r.faces.Add(key, face)
	return face, nil
}

func (r *Renderer) ensureFamily() (*canvas.FontFamily, error) {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()
	if r.family != nil {
		return r.family, nil
	}
	family := canvas.NewFontFamily("notecard")
	for _, entry := range []struct {
		name  string
		style canvas.FontStyle
	}{
		{"regular", canvas.FontRegular},
		{"medium", canvas.FontMedium},
		{"bold", canvas.FontBold},
	} {
		data, err := fonts.Load(r.sources[entry.name], r.baseDir)
		if err != nil {
			return nil, err
		}
		if err := family.LoadFont(data, 0, entry.style); err != nil {
			return nil, fmt.Errorf("加载字体 %s 失败: %w", r.sources[entry.name], err)
		}
	}
	r.family = family
	return family, nil
}

// parseFontStyle 将 CSS font-weight 映射到已加载的字重。
func parseFontStyle(weight string) canvas.FontStyle {
	switch fonts.ForWeight(weight) {
	case fonts.Bold:
		return canvas.FontBold
	case fonts.Medium:
		return canvas.FontMedium
	default:
		return canvas.FontRegular
	}
}

// parseColor 支持 #rgb/#rgba/#rrggbb/#rrggbbaa，其余取值使用 fallback。
func parseColor(s string, fallback color.RGBA) color.RGBA {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		return fallback
	}
	switch len(s) {
	case 4, 5, 7, 9:
		return canvas.Hex(s)
	default:
		return fallback
	}
}

// mm 将像素转换为毫米。
func mm(px float64) float64 { return px * layout.PxToMm }
