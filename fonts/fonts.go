package fonts

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"
)

// 内置字体的引用名。
const (
	Regular = "builtin:regular"
	Medium  = "builtin:medium"
	Bold    = "builtin:bold"
)

var builtin = map[string][]byte{
	"regular": goregular.TTF,
	"medium":  gomedium.TTF,
	"bold":    gobold.TTF,
}

// Load 返回字体字节数据。src 可写为 "builtin:bold"（兼容 "built-in:"/"embed:" 前缀）
// 或字体文件路径；相对路径基于 baseDir 解析。
func Load(src, baseDir string) ([]byte, error) {
	if src == "" {
		return nil, fmt.Errorf("字体来源为空")
	}
	for _, prefix := range []string{"builtin:", "built-in:", "embed:"} {
		if name, ok := strings.CutPrefix(src, prefix); ok {
			data, found := builtin[strings.ToLower(name)]
			if !found {
				return nil, fmt.Errorf("找不到内置字体资源 %s（可用: %s）", src, strings.Join(Names(), ", "))
			}
			return data, nil
		}
	}
	path := src
	if !filepath.IsAbs(path) && baseDir != "" {
		path = filepath.Join(baseDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取字体 %s 失败: %w", src, err)
	}
	return data, nil
}

// Names 返回内置字体名称（按字母序）。
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ForWeight 将 CSS font-weight 映射到内置字体：>= 600 或 bold/bolder 为粗体，500 为 medium。
func ForWeight(weight string) string {
	w := strings.ToLower(strings.TrimSpace(weight))
	switch w {
	case "bold", "bolder":
		return Bold
	case "medium":
		return Medium
	case "", "normal", "lighter":
		return Regular
	}
	if n, err := strconv.Atoi(w); err == nil {
		switch {
		case n >= 600:
			return Bold
		case n >= 500:
			return Medium
		}
	}
	return Regular
}
