package layout

import (
	"encoding/json"
	"math"
	"testing"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

// TestVerticalStacking 断言首行以字号推进游标，其余行以 gapBefore + lineHeight 推进。
func TestVerticalStacking(t *testing.T) {
	t.Parallel()
	opts := DefaultOptions()
	lines := []Line{
		{Text: "title", FontSize: 20},
		{Text: "second", LineHeight: 30, GapBefore: 10},
		{Text: "third", LineHeight: 25, GapBefore: 5},
	}
	l := Compute(lines, opts)
	p := opts.Padding

	if got := l.Lines[0].Y; !near(got, p+20) {
		t.Fatalf("line0 baseline: got=%g want=%g", got, p+20)
	}
	if l.Lines[0].DY != 0 {
		t.Fatalf("line0 dy must be 0, got %g", l.Lines[0].DY)
	}
	if got := l.Lines[1].DY; !near(got, 40) {
		t.Fatalf("line1 dy: got=%g want=40", got)
	}
	if got := l.Lines[2].DY; !near(got, 30) {
		t.Fatalf("line2 dy: got=%g want=30", got)
	}
	if got := l.ContentHeight(); !near(got, 90) {
		t.Fatalf("content height: got=%g want=90", got)
	}
	if got := l.Height; !near(got, 90+2*p) {
		t.Fatalf("height: got=%g want=%g", got, 90+2*p)
	}
	// 绝对坐标与增量按同一规则累计
	for i := 1; i < len(l.Lines); i++ {
		if !near(l.Lines[i].Y, l.Lines[i-1].Y+l.Lines[i].DY) {
			t.Fatalf("line %d: y=%g does not equal previous y + dy", i, l.Lines[i].Y)
		}
	}
}

func TestFirstLineGapIgnored(t *testing.T) {
	t.Parallel()
	l := Compute([]Line{{Text: "a", GapBefore: 50}}, DefaultOptions())
	if l.Lines[0].GapBefore != 0 {
		t.Fatalf("first line gap must be ignored, got %g", l.Lines[0].GapBefore)
	}
	if !near(l.Height, 24+24+24) {
		t.Fatalf("unexpected height %g", l.Height)
	}
}

func TestCanvasBounds(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		lines []Line
		opts  Options
	}{
		{"short text keeps min width", []Line{Text("hi")}, DefaultOptions()},
		{"long text grows", []Line{Text("0123456789012345678901234567890123456789")}, DefaultOptions()},
		{"zero padding", []Line{Text("x")}, func() Options { o := DefaultOptions(); o.Padding = 0; return o }()},
		{"large font", []Line{{Text: "big", FontSize: 96}}, DefaultOptions()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			l := Compute(tt.lines, tt.opts)
			if l.Width < tt.opts.MinWidth {
				t.Fatalf("width %g below minWidth %g", l.Width, tt.opts.MinWidth)
			}
			if l.Height < 2*tt.opts.Padding {
				t.Fatalf("height %g below 2*padding", l.Height)
			}
			for i, pl := range l.Lines {
				if l.TextStartX+pl.EstimatedWidth+tt.opts.Padding > l.Width {
					t.Fatalf("line %d overflows width", i)
				}
				if pl.Y+tt.opts.Padding > l.Height+1e-9 {
					t.Fatalf("line %d baseline %g outside height %g", i, pl.Y, l.Height)
				}
			}
		})
	}
}

func TestWidthEstimate(t *testing.T) {
	t.Parallel()
	opts := DefaultOptions()
	opts.MinWidth = 0
	// 40 字符 × 24 × 0.65 = 624
	l := Compute([]Line{Text("0123456789012345678901234567890123456789")}, opts)
	if !near(l.Lines[0].EstimatedWidth, 624) {
		t.Fatalf("estimated width: got=%g want=624", l.Lines[0].EstimatedWidth)
	}
	if !near(l.Width, 24+624+24) {
		t.Fatalf("width: got=%g want=%g", l.Width, 24.0+624+24)
	}
	// 多字节字符按字符计数
	if got := EstimateWidth("가나다", 10); !near(got, math.Ceil(3*10*0.65)) {
		t.Fatalf("rune count estimate: got=%g", got)
	}
}

func TestEmptyInputNormalizesToOneLine(t *testing.T) {
	t.Parallel()
	l := Compute(nil, DefaultOptions())
	if len(l.Lines) != 1 || l.Lines[0].Text != "" {
		t.Fatalf("expected exactly one empty line, got %+v", l.Lines)
	}
	if l.Width <= 0 || l.Height <= 0 {
		t.Fatalf("canvas must have non-zero area: %gx%g", l.Width, l.Height)
	}
}

func TestNotepadTextStart(t *testing.T) {
	t.Parallel()
	opts := DefaultOptions()
	opts.BackgroundType = BackgroundNotepad
	l := Compute([]Line{Text("memo")}, opts)
	if !l.Notepad {
		t.Fatalf("expected notepad layout")
	}
	if l.TextStartX-opts.Padding < opts.NotepadMarginOffset {
		t.Fatalf("textStartX %g does not clear margin offset", l.TextStartX)
	}
	if l.TextStartX <= l.MarginX() {
		t.Fatalf("text must start right of the margin line")
	}
	if !near(l.Lines[0].X, 24+68+16) {
		t.Fatalf("x: got=%g", l.Lines[0].X)
	}
}

func TestAlignment(t *testing.T) {
	t.Parallel()
	opts := DefaultOptions()
	lines := []Line{
		{Text: "c", Align: AlignCenter},
		{Text: "e", Align: AlignEnd},
		{Text: "s"},
		{Text: "m", Align: "middle"},
		{Text: "r", Align: "right"},
		Text("x").At(7),
	}
	l := Compute(lines, opts)
	want := []float64{l.Width / 2, l.Width - opts.Padding, l.TextStartX, l.Width / 2, l.Width - opts.Padding, 7}
	anchors := []string{"middle", "end", "start", "middle", "end", "start"}
	for i := range lines {
		if !near(l.Lines[i].X, want[i]) {
			t.Fatalf("line %d x: got=%g want=%g", i, l.Lines[i].X, want[i])
		}
		if l.Lines[i].Anchor != anchors[i] {
			t.Fatalf("line %d anchor: got=%s want=%s", i, l.Lines[i].Anchor, anchors[i])
		}
	}
}

func TestDefaultsResolved(t *testing.T) {
	t.Parallel()
	l := Compute([]Line{Text("a"), Text("b")}, Options{})
	pl := l.Lines[1]
	if pl.FontSize != 24 || pl.FontWeight != "normal" || !near(pl.LineHeight, 24*1.4) {
		t.Fatalf("unexpected resolved metrics: %+v", pl)
	}
	if !near(l.Options.NotepadLineSpacing, 24*1.4) {
		t.Fatalf("notepad spacing should follow default line height, got %g", l.Options.NotepadLineSpacing)
	}
}

type fixedMeasurer struct{ perRune float64 }

func (m fixedMeasurer) MeasureText(text string, fontSize float64, _ string) float64 {
	return float64(len([]rune(text))) * m.perRune
}

func TestMeasurerOverridesHeuristic(t *testing.T) {
	t.Parallel()
	opts := DefaultOptions()
	opts.MinWidth = 0
	opts.Measurer = fixedMeasurer{perRune: 100}
	l := Compute([]Line{Text("abcd")}, opts)
	if !near(l.Lines[0].EstimatedWidth, 400) {
		t.Fatalf("measured width: got=%g want=400", l.Lines[0].EstimatedWidth)
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()
	var decoded any
	raw := `[ "plain", {"text": 42, "fontSize": 30}, {"text": "c", "align": "center", "x": 5, "gapBefore": 3} ]`
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	lines := Normalize(decoded)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0].Text != "plain" {
		t.Fatalf("bare string should become text, got %+v", lines[0])
	}
	if lines[1].Text != "" || lines[1].FontSize != 30 {
		t.Fatalf("non-string text must coerce to empty: %+v", lines[1])
	}
	if lines[2].X == nil || *lines[2].X != 5 || lines[2].Align != AlignCenter || lines[2].GapBefore != 3 {
		t.Fatalf("map fields not carried over: %+v", lines[2])
	}

	if got := Normalize("single"); len(got) != 1 || got[0].Text != "single" {
		t.Fatalf("single value must become one line: %+v", got)
	}
	if got := Normalize([]any{}); len(got) != 1 || got[0].Text != "" {
		t.Fatalf("empty list must become one empty line: %+v", got)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()
	if err := DefaultOptions().Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
	bad := DefaultOptions()
	bad.Padding = -1
	if err := bad.Validate(); err == nil {
		t.Fatalf("negative padding should fail")
	}
	bad = DefaultOptions()
	bad.BackgroundType = "grid"
	if err := bad.Validate(); err == nil {
		t.Fatalf("unknown background type should fail")
	}
}
