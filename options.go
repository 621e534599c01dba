package pageflow

import (
	"github.com/pageflow/pageflow/flow"
	"github.com/pageflow/pageflow/layout"
	"github.com/pageflow/pageflow/tables"
)

// Options holds the configuration surface of the reconstruction engine.
// The defaults are the literal values the heuristics are validated
// against.
type Options struct {
	// ToleranceY is the vertical tolerance for clustering spans into lines
	// (default: 3.0 units).
	ToleranceY float64

	// ToleranceX is the horizontal alignment tolerance; a gap wider than
	// this between header spans counts as column separation (default: 5.0
	// units).
	ToleranceX float64

	// MergeGap is the horizontal gap above which a space is inserted when
	// merging a line's spans (default: 2.0 units).
	MergeGap float64

	// RowTolerance groups nearby line records into one table row
	// (default: 2.0 units).
	RowTolerance float64

	// ColumnProximity is the maximum distance from a column anchor for
	// table row membership (default: 30.0 units).
	ColumnProximity float64

	// VerticalCutoff bounds table height below the header (default: 200.0
	// units).
	VerticalCutoff float64

	// HeadingRatios are the font-size ratio thresholds for heading levels
	// 1-3 (default: 1.5, 1.3, 1.15).
	HeadingRatios [3]float64

	// Workers bounds page-level parallelism; zero or negative means one
	// worker per CPU (default: 1).
	Workers int
}

// DefaultOptions returns the default engine configuration.
func DefaultOptions() Options {
	return Options{
		ToleranceY:      3.0,
		ToleranceX:      5.0,
		MergeGap:        2.0,
		RowTolerance:    2.0,
		ColumnProximity: 30.0,
		VerticalCutoff:  200.0,
		HeadingRatios:   [3]float64{1.5, 1.3, 1.15},
		Workers:         1,
	}
}

// flowConfig translates the options into the assembler's configuration.
func (o Options) flowConfig() flow.Config {
	return flow.Config{
		Grouper: layout.GrouperConfig{
			ToleranceY: o.ToleranceY,
			MergeGap:   o.MergeGap,
		},
		Tables: tables.Config{
			MinHeaderSpans:  tables.DefaultConfig().MinHeaderSpans,
			HeaderGap:       o.ToleranceX,
			RowTolerance:    o.RowTolerance,
			ColumnProximity: o.ColumnProximity,
			VerticalCutoff:  o.VerticalCutoff,
		},
		HeadingRatios: layout.HeadingRatios(o.HeadingRatios),
		TableAnchor:   flow.DefaultConfig().TableAnchor,
		Workers:       o.Workers,
	}
}
