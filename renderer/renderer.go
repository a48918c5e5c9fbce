package renderer

import "github.com/ByLCY/notecard/layout"

// Renderer 将布局结果输出为最终文件，例如 SVG、PNG 或 PDF。
// Render 返回生成的字节数据以及可能的错误。
type Renderer interface {
	Render(l *layout.Layout) ([]byte, error)
}

// Func 让普通函数满足 Renderer。
type Func func(l *layout.Layout) ([]byte, error)

// Render 调用 f(l)。
func (f Func) Render(l *layout.Layout) ([]byte, error) { return f(l) }
