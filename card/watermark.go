package card

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"

	"github.com/ByLCY/notecard/layout"
	svgrenderer "github.com/ByLCY/notecard/renderer/svg"
)

const (
	overlayPatternID = "notecard-watermark"
	overlayAngle     = -30
	panelRadius      = 16
)

// Watermark 在卡片底部追加联系方式区块（电话、链接说明、附言、二维码），
// 并可在整张卡片上平铺低透明度的文字水印。
type Watermark struct {
	Phone     string `yaml:"phone" json:"phone"`
	LinkURL   string `yaml:"linkUrl" json:"linkUrl"`
	LinkLabel string `yaml:"linkLabel" json:"linkLabel"`
	Caption   string `yaml:"caption" json:"caption"`

	OverlayText    string  `yaml:"overlayText" json:"overlayText"`
	OverlayOpacity float64 `yaml:"overlayOpacity" json:"overlayOpacity"`

	// QRDataURI 为二维码或 logo 图片（data URI）；为空时不预留图片区域。
	QRDataURI string  `yaml:"qrDataUri" json:"qrDataUri"`
	QRSize    float64 `yaml:"qrSize" json:"qrSize"`

	Padding         float64 `yaml:"padding" json:"padding"`
	Gap             float64 `yaml:"gap" json:"gap"`
	PhoneFontSize   float64 `yaml:"phoneFontSize" json:"phoneFontSize"`
	LinkFontSize    float64 `yaml:"linkFontSize" json:"linkFontSize"`
	CaptionFontSize float64 `yaml:"captionFontSize" json:"captionFontSize"`

	LinkColor         string  `yaml:"linkColor" json:"linkColor"`
	PhoneColor        string  `yaml:"phoneColor" json:"phoneColor"`
	CaptionColor      string  `yaml:"captionColor" json:"captionColor"`
	BackgroundColor   string  `yaml:"backgroundColor" json:"backgroundColor"`
	BackgroundOpacity float64 `yaml:"backgroundOpacity" json:"backgroundOpacity"`
}

// DefaultWatermark 返回默认样式；联系方式与文字需由调用方填写。
func DefaultWatermark() Watermark {
	return Watermark{
		OverlayOpacity:    0.08,
		QRSize:            180,
		Padding:           28,
		Gap:               22,
		PhoneFontSize:     54,
		LinkFontSize:      28,
		CaptionFontSize:   24,
		LinkColor:         "#1155cc",
		PhoneColor:        "#111111",
		CaptionColor:      "#333333",
		BackgroundColor:   "#f5f7ff",
		BackgroundOpacity: 0.95,
	}
}

// Empty 报告水印是否没有任何可展示内容。
func (w Watermark) Empty() bool {
	return w.Phone == "" && w.LinkLabel == "" && w.Caption == "" && w.QRDataURI == "" && w.OverlayText == ""
}

// withDefaults 用默认样式回填 0 值字段。
func (w Watermark) withDefaults() Watermark {
	d := DefaultWatermark()
	fill := func(v *float64, def float64) {
		if *v <= 0 {
			*v = def
		}
	}
	fillStr := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&w.OverlayOpacity, d.OverlayOpacity)
	fill(&w.QRSize, d.QRSize)
	fill(&w.Padding, d.Padding)
	fill(&w.Gap, d.Gap)
	fill(&w.PhoneFontSize, d.PhoneFontSize)
	fill(&w.LinkFontSize, d.LinkFontSize)
	fill(&w.CaptionFontSize, d.CaptionFontSize)
	fill(&w.BackgroundOpacity, d.BackgroundOpacity)
	fillStr(&w.LinkColor, d.LinkColor)
	fillStr(&w.PhoneColor, d.PhoneColor)
	fillStr(&w.CaptionColor, d.CaptionColor)
	fillStr(&w.BackgroundColor, d.BackgroundColor)
	return w
}

// footer 返回追加到正文之后的行，以及二维码占位行在其中的下标（-1 表示没有）。
func (w Watermark) footer() ([]layout.Line, int) {
	var lines []layout.Line
	gap := w.Padding + w.Gap
	add := func(l layout.Line) {
		l.Align = layout.AlignCenter
		if len(lines) == 0 {
			l.GapBefore = gap
		} else if l.GapBefore == 0 {
			l.GapBefore = w.Gap / 2
		}
		lines = append(lines, l)
	}
	if w.Phone != "" {
		add(layout.Line{Text: w.Phone, FontSize: w.PhoneFontSize, LineHeight: w.PhoneFontSize, FontWeight: "bold", Fill: w.PhoneColor})
	}
	if w.LinkLabel != "" {
		add(layout.Line{Text: w.LinkLabel, FontSize: w.LinkFontSize, LineHeight: w.LinkFontSize, Fill: w.LinkColor})
	}
	if w.Caption != "" {
		add(layout.Line{Text: w.Caption, FontSize: w.CaptionFontSize, LineHeight: w.CaptionFontSize, Fill: w.CaptionColor})
	}
	qr := -1
	if w.QRDataURI != "" {
		// 空行的行高等于二维码边长，基线即图片底边
		qr = len(lines)
		add(layout.Line{Text: "", FontSize: w.CaptionFontSize, LineHeight: w.QRSize, GapBefore: w.Gap})
	}
	return lines, qr
}

// overlays 根据布局结果生成底板、二维码与平铺水印。first 为页脚首行下标。
func (w Watermark) overlays(l *layout.Layout, first, qr int) svgrenderer.Overlays {
	var ov svgrenderer.Overlays
	if first >= 0 && first < len(l.Lines) {
		head := l.Lines[first]
		top := head.Y - head.FontSize - w.Padding/2
		bottom := l.Height - l.Options.Padding/2
		inset := l.Options.Padding / 2
		ov.Before = append(ov.Before, svgrenderer.Rect(inset, top, l.Width-2*inset, bottom-top, panelRadius, w.BackgroundColor, w.BackgroundOpacity))
	}
	if qr >= 0 && qr < len(l.Lines) {
		slot := l.Lines[qr]
		ov.After = append(ov.After, svgrenderer.Image(w.QRDataURI, (l.Width-w.QRSize)/2, slot.Y-w.QRSize, w.QRSize, w.QRSize))
	}
	if w.OverlayText != "" {
		def, fill := svgrenderer.TextPattern(overlayPatternID, w.OverlayText, svgrenderer.PatternOptions{
			Angle:    overlayAngle,
			FontSize: w.CaptionFontSize,
			Color:    w.PhoneColor,
			Opacity:  w.OverlayOpacity,
		})
		ov.Defs = append(ov.Defs, def)
		ov.After = append(ov.After, fill)
	}
	return ov
}

// ImageDataURI 将图片字节编码为 data URI，MIME 类型按内容嗅探。
func ImageDataURI(data []byte) string {
	mime := http.DetectContentType(data)
	if len(data) > 0 && mime == "text/xml; charset=utf-8" {
		mime = "image/svg+xml"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// LoadImage 读取图片文件并返回 data URI。
func LoadImage(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("读取图片 %s 失败: %w", path, err)
	}
	return ImageDataURI(data), nil
}
