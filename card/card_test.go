package card

import (
	"encoding/xml"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ByLCY/notecard/layout"
	svgrenderer "github.com/ByLCY/notecard/renderer/svg"
)

func wellFormed(t *testing.T, doc string) {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader(doc))
	for {
		if _, err := dec.Token(); err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			t.Fatalf("document is not well-formed: %v", err)
		}
	}
}

func TestRenderWithoutWatermark(t *testing.T) {
	t.Parallel()
	lines := []layout.Line{layout.Text("hello")}
	got := Render(lines, layout.DefaultOptions())
	want := svgrenderer.RenderLines(lines, layout.DefaultOptions(), svgrenderer.Overlays{})
	if got.SVG != want.SVG {
		t.Fatalf("a plain card must match the bare renderer output")
	}
	if c := New(); c.Layout() == nil || len(c.Layout().Lines) != 1 {
		t.Fatalf("an empty card should still lay out one line")
	}
}

func TestWatermarkFooter(t *testing.T) {
	t.Parallel()
	wm := DefaultWatermark()
	wm.Phone = "010-0000-0000"
	wm.LinkLabel = "오픈채팅 바로가기"
	wm.Caption = "문의 환영"
	wm.QRDataURI = "data:image/png;base64,AAAA"
	wm.OverlayText = "open.example.com/o/abc"

	c := New(layout.Text("본문"))
	c.Watermark = &wm
	l, ov := c.Compose()

	if len(l.Lines) != 5 {
		t.Fatalf("expected body + 4 footer lines, got %d", len(l.Lines))
	}
	phone := l.Lines[1]
	if phone.Text != wm.Phone || phone.Anchor != "middle" || phone.FontSize != 54 || phone.Fill != "#111111" {
		t.Fatalf("phone line mismatch: %+v", phone)
	}
	if !(phone.GapBefore == wm.Padding+wm.Gap) {
		t.Fatalf("footer should be separated by padding+gap, got %g", phone.GapBefore)
	}
	slot := l.Lines[4]
	if slot.Text != "" || slot.LineHeight != wm.QRSize {
		t.Fatalf("qr slot line mismatch: %+v", slot)
	}
	if l.Width < wm.QRSize+2*l.Options.Padding {
		t.Fatalf("card too narrow for the qr image")
	}
	if len(ov.Before) != 1 || len(ov.Defs) != 1 || len(ov.After) != 2 {
		t.Fatalf("unexpected overlay counts: defs=%d before=%d after=%d", len(ov.Defs), len(ov.Before), len(ov.After))
	}
	img := ov.After[0]
	if y, _ := img.Get("y"); y != svgrenderer.FormatNumber(slot.Y-wm.QRSize) {
		t.Fatalf("qr image should sit on the slot baseline, y=%s slot=%g", y, slot.Y)
	}
	if bottom := slot.Y; bottom > l.Height-l.Options.Padding+1e-9 {
		t.Fatalf("qr image overflows the card")
	}

	doc := c.Render()
	wellFormed(t, doc.SVG)
	for _, want := range []string{`href="data:image/png;base64,AAAA"`, `fill-opacity="0.08"`, `fill="#f5f7ff"`, "오픈채팅 바로가기"} {
		if !strings.Contains(doc.SVG, want) {
			t.Fatalf("expected %q in watermark output", want)
		}
	}
}

func TestWatermarkOverlayOnly(t *testing.T) {
	t.Parallel()
	c := New(layout.Text("a"))
	c.Watermark = &Watermark{OverlayText: "wm"}
	l, ov := c.Compose()
	if len(l.Lines) != 1 {
		t.Fatalf("overlay-only watermark must not add lines")
	}
	if len(ov.Before) != 0 || len(ov.After) != 1 {
		t.Fatalf("expected only the pattern fill, got before=%d after=%d", len(ov.Before), len(ov.After))
	}
	c.Watermark = &Watermark{}
	if _, ov := c.Compose(); len(ov.After)+len(ov.Before)+len(ov.Defs) != 0 {
		t.Fatalf("empty watermark should be ignored")
	}
}

func TestCallerOverlaysKept(t *testing.T) {
	t.Parallel()
	c := New(layout.Text("a"))
	c.Overlays = svgrenderer.Overlays{After: []*svgrenderer.Element{svgrenderer.Raw("<g id=\"mine\" />")}}
	c.Watermark = &Watermark{OverlayText: "wm"}
	_, ov := c.Compose()
	if len(ov.After) != 2 || ov.After[0].String() != `<g id="mine" />` {
		t.Fatalf("caller overlays should come first: %d", len(ov.After))
	}
}

func TestImageDataURI(t *testing.T) {
	t.Parallel()
	png := []byte("\x89PNG\r\n\x1a\n0000")
	if uri := ImageDataURI(png); !strings.HasPrefix(uri, "data:image/png;base64,") {
		t.Fatalf("unexpected png data URI: %.40s", uri)
	}
	svg := []byte(`<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg"/>`)
	if uri := ImageDataURI(svg); !strings.HasPrefix(uri, "data:image/svg+xml;base64,") {
		t.Fatalf("unexpected svg data URI: %.40s", uri)
	}

	path := filepath.Join(t.TempDir(), "qr.png")
	if err := os.WriteFile(path, png, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if uri, err := LoadImage(path); err != nil || !strings.HasPrefix(uri, "data:image/png") {
		t.Fatalf("LoadImage = %.30s, %v", uri, err)
	}
	if _, err := LoadImage(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Fatalf("missing file should fail")
	}
}
