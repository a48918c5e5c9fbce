package layout

import (
	"strconv"
	"strings"
)

// This file defines unit helpers. Card geometry is always in CSS pixels (96 per inch);
// the canvas backend works in millimetres and font sizes in points.

// Unit represents the original unit of a length value as written in a card file.
type Unit int

const (
	UnitNone Unit = iota // unit-less numbers, taken as px
	UnitPX
	UnitPT
	UnitMM
)

// Conversion constants between px, pt and mm.
const (
	PxPerInch = 96.0
	MmPerInch = 25.4
	PtPerInch = 72.0

	PxToMm = MmPerInch / PxPerInch
	MmToPx = PxPerInch / MmPerInch
	PxToPt = PtPerInch / PxPerInch
	PtToPx = PxPerInch / PtPerInch
)

// UnitToString returns a short string for a Unit value.
func UnitToString(u Unit) string {
	switch u {
	case UnitPX:
		return "px"
	case UnitPT:
		return "pt"
	case UnitMM:
		return "mm"
	default:
		return ""
	}
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// PX converts the length to CSS pixels.
func (l Length) PX() float64 {
	switch l.Unit {
	case UnitPT:
		return l.Value * PtToPx
	case UnitMM:
		return l.Value * MmToPx
	default:
		return l.Value
	}
}

// ParseLength parses "12", "12px", "9pt" or "3.5mm". ok is false for non-numeric input.
func ParseLength(value string) (Length, bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Length{}, false
	}
	unit := UnitNone
	for _, suf := range []struct {
		s string
		u Unit
	}{{"px", UnitPX}, {"pt", UnitPT}, {"mm", UnitMM}} {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			v = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return Length{}, false
	}
	return Length{Value: f, Unit: unit}, true
}

// ParsePX is ParseLength followed by PX; invalid input yields 0.
func ParsePX(value string) float64 {
	l, ok := ParseLength(value)
	if !ok {
		return 0
	}
	return l.PX()
}
