package source

import (
	"math"
	"testing"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"github.com/pageflow/pageflow/model"
)

func run(s string, x, y, w, fontSize float64, font string) pdf.Text {
	return pdf.Text{S: s, X: x, Y: y, W: w, FontSize: fontSize, Font: font}
}

func newTestPDF() *PDF {
	return &PDF{log: zap.NewNop()}
}

func TestBuildSpans_CoalescesGlyphRuns(t *testing.T) {
	p := newTestPDF()
	// Adjacent same-style runs on one baseline with small gaps join into one
	// span; the 3pt gap (above 0.15em of 12pt) becomes a space.
	texts := []pdf.Text{
		run("Hel", 0, 700, 18, 12, "Helvetica"),
		run("lo", 18, 700, 12, 12, "Helvetica"),
		run("world", 33, 700, 30, 12, "Helvetica"),
	}

	spans := p.buildSpans(texts, 0, 792)
	if len(spans) != 1 {
		t.Fatalf("Expected 1 coalesced span, got %d", len(spans))
	}
	if spans[0].Text != "Hello world" {
		t.Errorf("Wrong coalesced text: %q", spans[0].Text)
	}
	if spans[0].Y != 92 {
		t.Errorf("Y not flipped into top-down space: %f", spans[0].Y)
	}
	if spans[0].Width != 63 {
		t.Errorf("Wrong span width: %f", spans[0].Width)
	}
}

// A gap wider than half an em marks a column boundary and splits the span.
func TestBuildSpans_WideGapSplits(t *testing.T) {
	p := newTestPDF()
	texts := []pdf.Text{
		run("left", 0, 700, 24, 12, "Helvetica"),
		run("right", 100, 700, 30, 12, "Helvetica"),
	}

	spans := p.buildSpans(texts, 0, 792)
	if len(spans) != 2 {
		t.Fatalf("Expected the column gap to split spans, got %d", len(spans))
	}
	if spans[0].Text != "left" || spans[1].Text != "right" {
		t.Errorf("Wrong split: %q, %q", spans[0].Text, spans[1].Text)
	}
}

func TestBuildSpans_StyleChangeSplits(t *testing.T) {
	p := newTestPDF()
	texts := []pdf.Text{
		run("normal", 0, 700, 36, 12, "Helvetica"),
		run("bold", 37, 700, 24, 12, "Helvetica-Bold"),
	}

	spans := p.buildSpans(texts, 0, 792)
	if len(spans) != 2 {
		t.Fatalf("Expected a style change to split spans, got %d", len(spans))
	}
	if spans[0].Bold || !spans[1].Bold {
		t.Errorf("Wrong bold flags: %v, %v", spans[0].Bold, spans[1].Bold)
	}
}

func TestBuildSpans_ReadingOrder(t *testing.T) {
	p := newTestPDF()
	// PDF Y grows upward, so the run at Y=700 is above the run at Y=100.
	texts := []pdf.Text{
		run("below", 0, 100, 30, 12, "Helvetica"),
		run("above", 0, 700, 30, 12, "Helvetica"),
	}

	spans := p.buildSpans(texts, 0, 792)
	if len(spans) != 2 {
		t.Fatalf("Expected 2 spans, got %d", len(spans))
	}
	if spans[0].Text != "above" || spans[1].Text != "below" {
		t.Errorf("Wrong reading order: %q before %q", spans[0].Text, spans[1].Text)
	}
}

func TestBuildSpans_DropsJunkRuns(t *testing.T) {
	p := newTestPDF()
	texts := []pdf.Text{
		run("   ", 0, 700, 10, 12, "Helvetica"),
		run("bad", math.NaN(), 700, 10, 12, "Helvetica"),
		run("kept", 0, 700, 25, 12, "Helvetica"),
	}

	spans := p.buildSpans(texts, 0, 792)
	if len(spans) != 1 || spans[0].Text != "kept" {
		t.Fatalf("Expected only the valid run to survive, got %+v", spans)
	}
}

func TestBuildFills(t *testing.T) {
	rects := []pdf.Rect{
		{Min: pdf.Point{X: 10, Y: 700}, Max: pdf.Point{X: 110, Y: 720}},
		// Degenerate and inverted rects are dropped.
		{Min: pdf.Point{X: 0, Y: 0}, Max: pdf.Point{X: 0, Y: 10}},
		{Min: pdf.Point{X: 50, Y: 50}, Max: pdf.Point{X: 40, Y: 60}},
	}

	fills := buildFills(rects, 792)
	if len(fills) != 1 {
		t.Fatalf("Expected 1 fill, got %d", len(fills))
	}
	want := model.FillRect{X: 10, Y: 72, Width: 100, Height: 20, Color: model.Black}
	if fills[0] != want {
		t.Errorf("Wrong fill: %+v, want %+v", fills[0], want)
	}
}

func TestFontStyleDetection(t *testing.T) {
	tests := []struct {
		font   string
		bold   bool
		italic bool
	}{
		{"Helvetica", false, false},
		{"Helvetica-Bold", true, false},
		{"Helvetica-BoldOblique", true, true},
		{"Times-Italic", false, true},
		{"ABCDEF+Arial-Black", true, false},
		{"NotoSans-Heavy", true, false},
	}

	for _, tt := range tests {
		if got := isBoldFont(tt.font); got != tt.bold {
			t.Errorf("isBoldFont(%q) = %v, want %v", tt.font, got, tt.bold)
		}
		if got := isItalicFont(tt.font); got != tt.italic {
			t.Errorf("isItalicFont(%q) = %v, want %v", tt.font, got, tt.italic)
		}
	}
}
