package layout

import (
	"math"
	"testing"
)

// TestPxMmRoundTrip 验证 px↔mm 换算的往返精度（允许极小的浮点误差）。
func TestPxMmRoundTrip(t *testing.T) {
	samples := []float64{0, 0.001, 1, 12, 24, 96, 480, 1000}
	for _, px := range samples {
		mm := px * PxToMm
		back := mm * MmToPx
		if diff := math.Abs(back-px); diff > 1e-9 {
			t.Fatalf("px→mm→px 往返误差过大: in=%gpx mm=%g back=%g diff=%g", px, mm, back, diff)
		}
		pt := px * PxToPt
		if diff := math.Abs(pt*PtToPx-px); diff > 1e-9 {
			t.Fatalf("px→pt→px 往返误差过大: in=%gpx pt=%g", px, pt)
		}
	}
}

// TestParseLength 覆盖卡片文件中常见的长度写法。
func TestParseLength(t *testing.T) {
	tests := []struct {
		in     string
		wantPX float64
		unit   Unit
		ok     bool
	}{
		{"30", 30, UnitNone, true},
		{"30px", 30, UnitPX, true},
		{" 12pt ", 16, UnitPT, true},
		{"25.4mm", 96, UnitMM, true},
		{"-4", -4, UnitNone, true},
		{"", 0, UnitNone, false},
		{"wide", 0, UnitNone, false},
	}
	for _, tt := range tests {
		l, ok := ParseLength(tt.in)
		if ok != tt.ok {
			t.Fatalf("ParseLength(%q) ok=%v want %v", tt.in, ok, tt.ok)
		}
		if !ok {
			if ParsePX(tt.in) != 0 {
				t.Fatalf("ParsePX(%q) should be 0 for invalid input", tt.in)
			}
			continue
		}
		if l.Unit != tt.unit {
			t.Fatalf("ParseLength(%q) unit=%s want %s", tt.in, UnitToString(l.Unit), UnitToString(tt.unit))
		}
		if diff := math.Abs(l.PX() - tt.wantPX); diff > 1e-9 {
			t.Fatalf("ParseLength(%q).PX()=%g want %g", tt.in, l.PX(), tt.wantPX)
		}
	}
}
