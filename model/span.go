package model

import "strings"

// Color represents an RGB color.
type Color struct {
	R, G, B uint8
}

// Black is the default text color.
var Black = Color{0, 0, 0}

// Span is a positioned, formatted run of text: the atomic input unit of the
// reconstruction engine. Spans are immutable once produced by the content
// source.
type Span struct {
	Text      string
	X         float64 // Left edge
	Y         float64 // Top edge
	Width     float64
	Height    float64
	FontName  string
	FontSize  float64
	Bold      bool
	Italic    bool
	Color     Color
	PageIndex int // 0-indexed
}

// Right returns the right edge X coordinate.
func (s Span) Right() float64 {
	return s.X + s.Width
}

// Bottom returns the bottom edge Y coordinate.
func (s Span) Bottom() float64 {
	return s.Y + s.Height
}

// BBox returns the span's bounding box.
func (s Span) BBox() BBox {
	return BBox{X: s.X, Y: s.Y, Width: s.Width, Height: s.Height}
}

// Line is an ordered sequence of spans sharing a vertical band, sorted left
// to right. Lines are transient: they are rebuilt per page and never
// persisted.
type Line struct {
	// Spans are the spans that make up this line.
	Spans []Span

	// Y is the anchor Y coordinate (the Y of the line's first span).
	Y float64
}

// Text returns the concatenation of span texts in stored order, with no
// separators. Use layout.MergeLine for gap-aware joining.
func (l Line) Text() string {
	var sb strings.Builder
	for _, s := range l.Spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// X returns the left edge of the line (X of the first span).
func (l Line) X() float64 {
	if len(l.Spans) == 0 {
		return 0
	}
	return l.Spans[0].X
}

// Height returns the maximum span height in the line.
func (l Line) Height() float64 {
	var max float64
	for _, s := range l.Spans {
		if s.Height > max {
			max = s.Height
		}
	}
	return max
}

// FillRect is a vector-fill rectangle extracted from the page, used only as
// an advisory signal for table header backgrounds.
type FillRect struct {
	X, Y, Width, Height float64
	Color               Color
}

// BBox returns the fill's bounding box.
func (f FillRect) BBox() BBox {
	return BBox{X: f.X, Y: f.Y, Width: f.Width, Height: f.Height}
}

// PageContent is the raw extraction result for a single page, as supplied
// by a content source. Span and image order is irrelevant; the engine sorts
// by position.
type PageContent struct {
	Index  int // 0-indexed page number
	Width  float64
	Height float64
	Spans  []Span
	Images []ImageBlock
	Fills  []FillRect
}
