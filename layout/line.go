package layout

import (
	"math"
	"sort"
	"strings"

	"github.com/pageflow/pageflow/model"
)

// GrouperConfig holds configuration for line grouping.
type GrouperConfig struct {
	// ToleranceY is the maximum distance between a span's Y and the line
	// anchor Y for the span to join the line (default: 3.0 points).
	ToleranceY float64

	// MergeGap is the horizontal gap between consecutive spans above which
	// a single space is inserted when merging a line's text (default: 2.0
	// points).
	MergeGap float64
}

// DefaultGrouperConfig returns the default grouping configuration.
func DefaultGrouperConfig() GrouperConfig {
	return GrouperConfig{
		ToleranceY: 3.0,
		MergeGap:   2.0,
	}
}

// Grouper clusters spans into lines by vertical proximity.
type Grouper struct {
	config GrouperConfig
}

// NewGrouper creates a grouper with default configuration.
func NewGrouper() *Grouper {
	return &Grouper{config: DefaultGrouperConfig()}
}

// NewGrouperWithConfig creates a grouper with custom configuration.
func NewGrouperWithConfig(config GrouperConfig) *Grouper {
	return &Grouper{config: config}
}

// GroupIntoLines clusters the given spans into lines. Spans whose Y differs
// from the current line's anchor Y by no more than ToleranceY share a line.
// Lines are ordered by ascending Y, spans within a line by ascending X.
// Spans with non-finite or inverted geometry are skipped. An empty input
// yields nil.
func (g *Grouper) GroupIntoLines(spans []model.Span) []model.Line {
	sorted := make([]model.Span, 0, len(spans))
	for _, s := range spans {
		if !s.BBox().IsFinite() {
			continue
		}
		sorted = append(sorted, s)
	}
	if len(sorted) == 0 {
		return nil
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y < sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var lines []model.Line
	current := model.Line{Spans: []model.Span{sorted[0]}, Y: sorted[0].Y}

	for _, span := range sorted[1:] {
		if math.Abs(span.Y-current.Y) <= g.config.ToleranceY {
			current.Spans = append(current.Spans, span)
		} else {
			lines = append(lines, current)
			current = model.Line{Spans: []model.Span{span}, Y: span.Y}
		}
	}
	lines = append(lines, current)

	for i := range lines {
		spans := lines[i].Spans
		sort.SliceStable(spans, func(a, b int) bool {
			return spans[a].X < spans[b].X
		})
	}

	return lines
}

// MergeLine concatenates a line's spans into a single text line, inserting
// one space wherever the horizontal gap between consecutive spans exceeds
// MergeGap. The merged line inherits font attributes from its first span.
// Single-span lines are converted directly without merge logic.
func (g *Grouper) MergeLine(line model.Line) model.TextLine {
	if len(line.Spans) == 0 {
		return model.TextLine{}
	}

	first := line.Spans[0]
	if len(line.Spans) == 1 {
		return spanToTextLine(first, first.Text, first.Width, first.Height)
	}

	var sb strings.Builder
	height := 0.0
	var prev *model.Span
	for i := range line.Spans {
		span := line.Spans[i]
		if prev != nil {
			if gap := span.X - prev.Right(); gap > g.config.MergeGap {
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(span.Text)
		if span.Height > height {
			height = span.Height
		}
		prev = &line.Spans[i]
	}

	last := line.Spans[len(line.Spans)-1]
	return spanToTextLine(first, sb.String(), last.Right()-first.X, height)
}

func spanToTextLine(first model.Span, text string, width, height float64) model.TextLine {
	return model.TextLine{
		Text:      text,
		X:         first.X,
		Y:         first.Y,
		Width:     width,
		Height:    height,
		FontName:  first.FontName,
		FontSize:  first.FontSize,
		Bold:      first.Bold,
		Italic:    first.Italic,
		Color:     first.Color,
		PageIndex: first.PageIndex,
	}
}

// AverageFontSize returns the arithmetic mean of the spans' font sizes, or
// DefaultFontSize when the page has no spans.
func AverageFontSize(spans []model.Span) float64 {
	if len(spans) == 0 {
		return DefaultFontSize
	}
	sum := 0.0
	for _, s := range spans {
		sum += s.FontSize
	}
	return sum / float64(len(spans))
}

// DefaultFontSize is the assumed body font size for pages with no spans.
const DefaultFontSize = 12.0
