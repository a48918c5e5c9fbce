// Package config 读取卡片预设配置（YAML）：布局预设、水印区块与光栅化字体。
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/ByLCY/notecard/card"
	"github.com/ByLCY/notecard/layout"
)

// DefaultPreset 是未指定预设时使用的名称。
const DefaultPreset = "default"

var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
	ErrPresetNotFound = errors.New("preset not found")
	// ErrInvalidOptions 与 layout.ErrInvalidOptions 为同一个值，errors.Is 两者皆可。
	ErrInvalidOptions = layout.ErrInvalidOptions
)

// File 是配置文件的内容。
//
//	presets:
//	  default: { padding: 24 }
//	  memo:    { backgroundType: notepad, minWidth: 560 }
//	watermark:
//	  phone: 010-1234-5678
//	  qrImage: qr.png
//	canvas:
//	  scale: 2
//	  fonts: { regular: fonts/NotoSansKR-Regular.ttf }
type File struct {
	Presets   map[string]Preset `yaml:"presets,omitempty"`
	Watermark *Watermark        `yaml:"watermark,omitempty"`
	Canvas    Canvas            `yaml:"canvas,omitempty"`

	// dir 为配置文件所在目录，用于解析相对路径。
	dir string
}

// Preset 是一组布局参数；未写出的字段取 layout.DefaultOptions。
type Preset struct {
	layout.Options `yaml:",inline"`
}

// UnmarshalYAML 先填入默认值再覆盖，使预设只需写出差异字段。
func (p *Preset) UnmarshalYAML(data []byte) error {
	opts := layout.DefaultOptions()
	if !isNullNode(data) {
		if err := decodeStrict(data, &opts); err != nil {
			return err
		}
	}
	p.Options = opts
	return nil
}

// Watermark 在 card.Watermark 之上增加图片文件路径。
type Watermark struct {
	card.Watermark `yaml:",inline"`
	// QRImage 为二维码图片路径（相对配置文件目录）；QRDataURI 非空时忽略。
	QRImage string `yaml:"qrImage,omitempty"`
}

// Canvas 配置 PNG/PDF 输出。
type Canvas struct {
	Scale float64           `yaml:"scale,omitempty"`
	Fonts map[string]string `yaml:"fonts,omitempty"`
}

// Load 读取并校验配置文件。
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f.dir = filepath.Dir(path)
	return f, nil
}

// Parse 解析 YAML 内容；相对路径按当前目录解析。
func Parse(data []byte) (*File, error) {
	var f File
	if err := decodeStrict(data, &f); err != nil {
		if errors.Is(err, ErrEmptyConfig) || errors.Is(err, ErrConfigTooLarge) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	f.dir = "."
	return &f, nil
}

// Validate 校验所有预设与输出参数。
func (f *File) Validate() error {
	for _, name := range f.PresetNames() {
		if err := f.Presets[name].Validate(); err != nil {
			return fmt.Errorf("preset %q: %w", name, err)
		}
	}
	if f.Canvas.Scale < 0 {
		return fmt.Errorf("%w: canvas.scale = %g", ErrInvalidOptions, f.Canvas.Scale)
	}
	return nil
}

// Dir 返回配置文件所在目录。
func (f *File) Dir() string {
	if f == nil || f.dir == "" {
		return "."
	}
	return f.dir
}

// PresetNames 返回排序后的预设名。
func (f *File) PresetNames() []string {
	if f == nil {
		return nil
	}
	names := make([]string, 0, len(f.Presets))
	for name := range f.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Options 返回指定预设。名称为空或为 default 且未定义时返回 layout.DefaultOptions。
func (f *File) Options(name string) (layout.Options, error) {
	if name == "" {
		name = DefaultPreset
	}
	if f != nil {
		if p, ok := f.Presets[name]; ok {
			return p.Options, nil
		}
	}
	if name == DefaultPreset {
		return layout.DefaultOptions(), nil
	}
	return layout.Options{}, fmt.Errorf("%w: %s", ErrPresetNotFound, name)
}

// CardWatermark 返回可直接交给 card.Card 的水印配置，按需读取二维码图片。
// 未配置时返回 nil。
func (f *File) CardWatermark() (*card.Watermark, error) {
	if f == nil || f.Watermark == nil {
		return nil, nil
	}
	wm := f.Watermark.Watermark
	if wm.QRDataURI == "" && f.Watermark.QRImage != "" {
		path := f.Watermark.QRImage
		if !filepath.IsAbs(path) {
			path = filepath.Join(f.Dir(), path)
		}
		uri, err := card.LoadImage(path)
		if err != nil {
			return nil, err
		}
		wm.QRDataURI = uri
	}
	return &wm, nil
}
