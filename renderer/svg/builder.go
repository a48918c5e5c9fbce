package svgrenderer

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	xmlProlog = `<?xml version="1.0" encoding="UTF-8"?>`
	svgNS     = "http://www.w3.org/2000/svg"
	indent    = "  "

	numberPrecision = 6
)

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeXML 转义五个 XML 保留字符。文本内容与属性值共用同一规则。
// 非法 UTF-8 替换为 U+FFFD，XML 1.0 不允许的控制字符直接丢弃。
func EscapeXML(s string) string { return xmlEscaper.Replace(sanitizeXML(s)) }

func sanitizeXML(s string) string {
	s = strings.ToValidUTF8(s, "\uFFFD")
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			return r
		case r < 0x20, r == 0xFFFE, r == 0xFFFF:
			return -1
		}
		return r
	}, s)
}

// FormatNumber 以最多 6 位小数的十进制形式输出数值（24、33.6），去掉末尾的 0，不带指数。
func FormatNumber(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		// 非有限值统一输出 0，保证文档仍然合法
		return "0"
	}
	s := strconv.FormatFloat(v, 'f', numberPrecision, 64)
	if strings.IndexByte(s, '.') >= 0 {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		return "0"
	}
	return s
}

// Attr 是一个属性键值对，值为未转义的原始文本。
type Attr struct {
	Name  string
	Value string
}

// A 构造属性；数值按 FormatNumber 格式化。
func A(name string, value any) Attr {
	switch v := value.(type) {
	case string:
		return Attr{Name: name, Value: v}
	case float64:
		return Attr{Name: name, Value: FormatNumber(v)}
	case int:
		return Attr{Name: name, Value: strconv.Itoa(v)}
	case fmt.Stringer:
		return Attr{Name: name, Value: v.String()}
	default:
		return Attr{Name: name, Value: fmt.Sprint(v)}
	}
}

// Element 是 SVG 文档中的一个节点。属性按添加顺序输出，文本在序列化时统一转义。
type Element struct {
	Name     string
	Attrs    []Attr
	Text     string
	Children []*Element
	// Inline 为真时子节点之间不插入换行与缩进（xml:space="preserve" 的文本块需要）。
	Inline bool

	raw   string
	isRaw bool
}

// El 创建元素。
func El(name string, attrs ...Attr) *Element {
	return &Element{Name: name, Attrs: attrs}
}

// Raw 包装一段调用方提供的可信标记，原样输出，不做转义。
func Raw(markup string) *Element {
	return &Element{raw: markup, isRaw: true}
}

// Add 追加子节点，忽略 nil。
func (e *Element) Add(children ...*Element) *Element {
	for _, c := range children {
		if c != nil {
			e.Children = append(e.Children, c)
		}
	}
	return e
}

// Set 设置属性，已存在则覆盖原值并保留位置。
func (e *Element) Set(name string, value any) *Element {
	attr := A(name, value)
	for i := range e.Attrs {
		if e.Attrs[i].Name == name {
			e.Attrs[i] = attr
			return e
		}
	}
	e.Attrs = append(e.Attrs, attr)
	return e
}

// Get 返回属性值。
func (e *Element) Get(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// WithText 设置文本内容。
func (e *Element) WithText(s string) *Element {
	e.Text = s
	return e
}

// String 序列化单个元素（无缩进）。
func (e *Element) String() string {
	var b strings.Builder
	e.write(&b, 0, true)
	return b.String()
}

func (e *Element) write(b *strings.Builder, depth int, inline bool) {
	if e.isRaw {
		b.WriteString(e.raw)
		return
	}
	b.WriteByte('<')
	b.WriteString(e.Name)
	for _, a := range e.Attrs {
		b.WriteByte(' ')
		b.WriteString(a.Name)
		b.WriteString(`="`)
		b.WriteString(EscapeXML(a.Value))
		b.WriteByte('"')
	}
	if e.Text == "" && len(e.Children) == 0 {
		b.WriteString(" />")
		return
	}
	b.WriteByte('>')
	b.WriteString(EscapeXML(e.Text))
	childInline := inline || e.Inline
	for _, c := range e.Children {
		if !childInline {
			newline(b, depth+1)
		}
		c.write(b, depth+1, childInline)
	}
	if !childInline && len(e.Children) > 0 {
		newline(b, depth)
	}
	b.WriteString("</")
	b.WriteString(e.Name)
	b.WriteByte('>')
}

func newline(b *strings.Builder, depth int) {
	b.WriteByte('\n')
	b.WriteString(strings.Repeat(indent, depth))
}

// Builder 累积 defs 与正文元素，最后一次性序列化为完整文档。
type Builder struct {
	width  float64
	height float64
	attrs  []Attr
	defs   []*Element
	body   []*Element
}

// NewBuilder 创建给定画布尺寸的文档累积器。
func NewBuilder(width, height float64) *Builder {
	return &Builder{width: width, height: height}
}

// RootAttr 追加根元素属性（位于 xmlns/width/height 之后）。
func (b *Builder) RootAttr(attrs ...Attr) *Builder {
	b.attrs = append(b.attrs, attrs...)
	return b
}

// Def 追加 <defs> 内的定义。
func (b *Builder) Def(els ...*Element) *Builder {
	for _, el := range els {
		if el != nil {
			b.defs = append(b.defs, el)
		}
	}
	return b
}

// Add 按顺序追加正文元素。
func (b *Builder) Add(els ...*Element) *Builder {
	for _, el := range els {
		if el != nil {
			b.body = append(b.body, el)
		}
	}
	return b
}

// Root 返回根 <svg> 元素树。
func (b *Builder) Root() *Element {
	root := El("svg",
		A("xmlns", svgNS),
		A("width", b.width),
		A("height", b.height),
	)
	root.Attrs = append(root.Attrs, b.attrs...)
	if len(b.defs) > 0 {
		root.Add(El("defs").Add(b.defs...))
	}
	root.Add(b.body...)
	return root
}

// String 输出带 XML 声明的完整文档。
func (b *Builder) String() string {
	var sb strings.Builder
	sb.WriteString(xmlProlog)
	sb.WriteByte('\n')
	b.Root().write(&sb, 0, false)
	return sb.String()
}
