package layout

import (
	"errors"
	"fmt"
)

// BackgroundType 选择卡片背景样式。
type BackgroundType string

const (
	BackgroundPlain   BackgroundType = "plain"
	BackgroundNotepad BackgroundType = "notepad"
)

// ErrInvalidOptions 表示 Options 未通过 Validate 校验。
var ErrInvalidOptions = errors.New("layout: invalid options")

// Measurer 负责估算一行文本的渲染宽度（像素）。
// 为 nil 时使用固定的平均字宽估算。
type Measurer interface {
	MeasureText(text string, fontSize float64, fontWeight string) float64
}

// Options 控制画布几何与装饰。先用 DefaultOptions 取得默认值再覆盖所需字段；
// 0 值具有意义的字段（内边距、最小宽度、边框、记事本边距、孔半径）按原值使用。
type Options struct {
	DefaultFontSize   float64 `yaml:"defaultFontSize" json:"defaultFontSize"`
	DefaultLineHeight float64 `yaml:"defaultLineHeight" json:"defaultLineHeight"` // 0 = 1.4 倍字号
	Padding           float64 `yaml:"padding" json:"padding"`
	MinWidth          float64 `yaml:"minWidth" json:"minWidth"`

	Background   string  `yaml:"background" json:"background"`
	TextColor    string  `yaml:"textColor" json:"textColor"`
	FontFamily   string  `yaml:"fontFamily" json:"fontFamily"`
	BorderRadius float64 `yaml:"borderRadius" json:"borderRadius"`
	BorderColor  string  `yaml:"borderColor" json:"borderColor"`
	BorderWidth  float64 `yaml:"borderWidth" json:"borderWidth"`

	BackgroundType      BackgroundType `yaml:"backgroundType" json:"backgroundType"`
	NotepadMarginOffset float64        `yaml:"notepadMarginOffset" json:"notepadMarginOffset"`
	NotepadTextIndent   float64        `yaml:"notepadTextIndent" json:"notepadTextIndent"`
	NotepadLineSpacing  float64        `yaml:"notepadLineSpacing" json:"notepadLineSpacing"` // 0 = 默认行高
	NotepadLineColor    string         `yaml:"notepadLineColor" json:"notepadLineColor"`
	NotepadMarginColor  string         `yaml:"notepadMarginColor" json:"notepadMarginColor"`
	NotepadMarginWidth  float64        `yaml:"notepadMarginWidth" json:"notepadMarginWidth"` // 0 时不画竖线
	NotepadHoleRadius   float64        `yaml:"notepadHoleRadius" json:"notepadHoleRadius"`
	NotepadHoleSpacing  float64        `yaml:"notepadHoleSpacing" json:"notepadHoleSpacing"`
	NotepadHoleOffsetX  float64        `yaml:"notepadHoleOffsetX" json:"notepadHoleOffsetX"` // 0 = padding/2

	Measurer Measurer `yaml:"-" json:"-"`
}

const (
	defaultFontSize     = 24
	lineHeightFactor    = 1.4
	defaultTextColor    = "#111111"
	defaultBackground   = "#ffffff"
	defaultFontFamily   = "'Noto Sans KR', 'Apple SD Gothic Neo', sans-serif"
	defaultHoleSpacing  = 110
	defaultNotepadColor = "#e2e7ff"
	defaultMarginColor  = "#f16b6f"
	defaultBorderColor  = "#dddddd"
)

// DefaultOptions 返回文档约定的默认配置。
func DefaultOptions() Options {
	return Options{
		DefaultFontSize:     defaultFontSize,
		Padding:             24,
		MinWidth:            480,
		Background:          defaultBackground,
		TextColor:           defaultTextColor,
		FontFamily:          defaultFontFamily,
		BorderRadius:        24,
		BorderColor:         defaultBorderColor,
		BorderWidth:         1,
		BackgroundType:      BackgroundPlain,
		NotepadMarginOffset: 68,
		NotepadTextIndent:   16,
		NotepadLineColor:    defaultNotepadColor,
		NotepadMarginColor:  defaultMarginColor,
		NotepadMarginWidth:  2,
		NotepadHoleRadius:   6,
		NotepadHoleSpacing:  defaultHoleSpacing,
	}
}

// Resolve 回填派生字段以及 0 值无意义的字段，返回副本。
func (o Options) Resolve() Options {
	if o.DefaultFontSize <= 0 {
		o.DefaultFontSize = defaultFontSize
	}
	if o.DefaultLineHeight <= 0 {
		o.DefaultLineHeight = o.DefaultFontSize * lineHeightFactor
	}
	if o.NotepadLineSpacing <= 0 {
		o.NotepadLineSpacing = o.DefaultLineHeight
	}
	if o.NotepadHoleSpacing <= 0 {
		o.NotepadHoleSpacing = defaultHoleSpacing
	}
	if o.NotepadHoleOffsetX == 0 {
		o.NotepadHoleOffsetX = o.Padding / 2
	}
	if o.BackgroundType != BackgroundNotepad {
		o.BackgroundType = BackgroundPlain
	}
	if o.Background == "" {
		o.Background = defaultBackground
	}
	if o.TextColor == "" {
		o.TextColor = defaultTextColor
	}
	if o.FontFamily == "" {
		o.FontFamily = defaultFontFamily
	}
	if o.BorderColor == "" {
		o.BorderColor = defaultBorderColor
	}
	if o.NotepadLineColor == "" {
		o.NotepadLineColor = defaultNotepadColor
	}
	if o.NotepadMarginColor == "" {
		o.NotepadMarginColor = defaultMarginColor
	}
	return o
}

// IsNotepad 报告是否启用记事本装饰。
func (o Options) IsNotepad() bool { return o.BackgroundType == BackgroundNotepad }

// TextStartX 返回文本起始横坐标；记事本模式下让出左侧边距带。
func (o Options) TextStartX() float64 {
	if o.IsNotepad() {
		return o.Padding + o.NotepadMarginOffset + o.NotepadTextIndent
	}
	return o.Padding
}

// Validate 检查取值范围。Compute 本身不做校验，配置加载时调用一次即可。
func (o Options) Validate() error {
	checks := []struct {
		name string
		v    float64
		pos  bool
	}{
		{"defaultFontSize", o.DefaultFontSize, true},
		{"defaultLineHeight", o.DefaultLineHeight, false},
		{"padding", o.Padding, false},
		{"minWidth", o.MinWidth, false},
		{"borderRadius", o.BorderRadius, false},
		{"borderWidth", o.BorderWidth, false},
		{"notepadMarginOffset", o.NotepadMarginOffset, false},
		{"notepadTextIndent", o.NotepadTextIndent, false},
		{"notepadLineSpacing", o.NotepadLineSpacing, false},
		{"notepadMarginWidth", o.NotepadMarginWidth, false},
		{"notepadHoleRadius", o.NotepadHoleRadius, false},
		{"notepadHoleSpacing", o.NotepadHoleSpacing, false},
	}
	for _, c := range checks {
		if c.v < 0 || (c.pos && c.v == 0) {
			return fmt.Errorf("%w: %s = %g", ErrInvalidOptions, c.name, c.v)
		}
	}
	switch o.BackgroundType {
	case "", BackgroundPlain, BackgroundNotepad:
	default:
		return fmt.Errorf("%w: backgroundType %q (must be plain or notepad)", ErrInvalidOptions, o.BackgroundType)
	}
	return nil
}
