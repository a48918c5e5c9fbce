package svgrenderer

import "github.com/ByLCY/notecard/layout"

const (
	holeTopInset    = 4
	holeFill        = "#ffffff"
	holeStrokeColor = "#d0d0d0"
)

// notepadDecoration 生成横线、页边竖线与装订孔。间距不为正的序列直接跳过。
func notepadDecoration(l *layout.Layout) []*Element {
	opts := l.Options
	var out []*Element

	maxY := l.Height - opts.Padding
	if spacing := opts.NotepadLineSpacing; spacing > 0 {
		for y := opts.Padding + opts.DefaultLineHeight; y <= maxY; y += spacing {
			out = append(out, El("line",
				A("x1", opts.Padding),
				A("y1", y),
				A("x2", l.Width-opts.Padding),
				A("y2", y),
				A("stroke", opts.NotepadLineColor),
				A("stroke-width", 1),
			))
		}
	}

	if opts.NotepadMarginWidth > 0 {
		marginX := l.MarginX()
		out = append(out, El("line",
			A("x1", marginX),
			A("y1", opts.Padding),
			A("x2", marginX),
			A("y2", maxY),
			A("stroke", opts.NotepadMarginColor),
			A("stroke-width", opts.NotepadMarginWidth),
		))
	}

	if spacing := opts.NotepadHoleSpacing; spacing > 0 {
		for y := opts.Padding + opts.NotepadHoleRadius + holeTopInset; y < maxY; y += spacing {
			out = append(out, El("circle",
				A("cx", opts.NotepadHoleOffsetX),
				A("cy", y),
				A("r", opts.NotepadHoleRadius),
				A("fill", holeFill),
				A("stroke", holeStrokeColor),
				A("stroke-width", 1),
			))
		}
	}
	return out
}
