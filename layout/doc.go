// Package layout provides line-level layout analysis: grouping positioned
// spans into reading-order lines and classifying lines as headings.
//
// Line grouping is a single pass over spans sorted by (Y, X). A span joins
// the current line when its Y is within a vertical tolerance of the line's
// anchor (the Y of the line's first span); otherwise it starts a new line.
// Because membership is tested against a fixed anchor rather than the
// nearest neighbour, grouping can drift slightly across long gradual
// sequences. This is an accepted approximation, kept for compatibility
// with the heuristics the rest of the pipeline is tuned against.
package layout
