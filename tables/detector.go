package tables

import (
	"math"
	"sort"
	"strings"

	"github.com/pageflow/pageflow/model"
)

// Config holds detector configuration. The defaults are the literal values
// the detection heuristics are validated against; tune with care.
type Config struct {
	// MinHeaderSpans is the minimum number of spans on a candidate header
	// row (default: 3).
	MinHeaderSpans int

	// HeaderGap is the horizontal gap between consecutive header spans
	// that counts as evidence of column separation (default: 5.0 points).
	HeaderGap float64

	// RowTolerance is the Y-distance tolerance for grouping nearby line
	// records into a single table row (default: 2.0 points).
	RowTolerance float64

	// ColumnProximity is the maximum distance between a span's X and some
	// column anchor for the span's row to belong to the table
	// (default: 30.0 points).
	ColumnProximity float64

	// VerticalCutoff bounds the worst-case table height: scanning stops
	// once a row's Y exceeds the header's Y by more than this
	// (default: 200.0 points).
	VerticalCutoff float64
}

// DefaultConfig returns the default detector configuration.
func DefaultConfig() Config {
	return Config{
		MinHeaderSpans:  3,
		HeaderGap:       5.0,
		RowTolerance:    2.0,
		ColumnProximity: 30.0,
		VerticalCutoff:  200.0,
	}
}

// Detector finds grid tables in grouped text lines.
type Detector struct {
	config Config
}

// NewDetector creates a detector with default configuration.
func NewDetector() *Detector {
	return &Detector{config: DefaultConfig()}
}

// NewDetectorWithConfig creates a detector with custom configuration.
func NewDetectorWithConfig(config Config) *Detector {
	return &Detector{config: config}
}

// yKey rounds a Y coordinate to one decimal place. Extraction may split one
// visual row into multiple line records at nearly identical Y; rounding
// re-joins them.
func yKey(y float64) float64 {
	return math.Round(y*10) / 10
}

// Detect scans lines top to bottom and extracts every table it finds. Fills
// feed the advisory HasHeaderBackground signal only. The scanner runs as a
// two-state machine: in the scanning state it tests each Y bucket for a
// header pattern; on a match it switches to in-table extraction, then
// resumes scanning after the rows the table consumed.
func (d *Detector) Detect(lines []model.Line, fills []model.FillRect, pageIndex int) []*model.TableStructure {
	if len(lines) == 0 {
		return nil
	}

	buckets := make(map[float64][]model.Line)
	for _, line := range lines {
		k := yKey(line.Y)
		buckets[k] = append(buckets[k], line)
	}

	keys := make([]float64, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Float64s(keys)

	var tables []*model.TableStructure

	i := 0
	for i < len(keys) {
		if d.isHeader(buckets[keys[i]]) {
			if table, consumed := d.extract(keys[i:], buckets, fills, pageIndex); table != nil {
				tables = append(tables, table)
				i += consumed
				continue
			}
		}
		i++
	}

	return tables
}

// isHeader reports whether the lines sharing one Y bucket look like a table
// header: at least MinHeaderSpans spans, all bold, with at least one
// horizontal gap wider than HeaderGap between X-sorted consecutive spans.
func (d *Detector) isHeader(lines []model.Line) bool {
	spans := collectSpans(lines)
	if len(spans) < d.config.MinHeaderSpans {
		return false
	}

	for _, s := range spans {
		if !s.Bold {
			return false
		}
	}

	sort.SliceStable(spans, func(i, j int) bool {
		return spans[i].X < spans[j].X
	})
	for i := 0; i < len(spans)-1; i++ {
		if spans[i+1].X-spans[i].Right() > d.config.HeaderGap {
			return true
		}
	}

	return false
}

// rowGroup is a cluster of line records forming one candidate table row.
type rowGroup struct {
	y     float64
	spans []model.Span
	keys  int // number of Y buckets folded into this group
}

// extract builds a table starting at the header bucket keys[0]. It returns
// the table plus the number of Y buckets consumed (header included), or
// (nil, 0) when no data row qualifies: an isolated bold multi-column line
// is not a table.
func (d *Detector) extract(keys []float64, buckets map[float64][]model.Line, fills []model.FillRect, pageIndex int) (*model.TableStructure, int) {
	headerY := keys[0]

	headerSpans := collectSpans(buckets[headerY])
	sort.SliceStable(headerSpans, func(i, j int) bool {
		return headerSpans[i].X < headerSpans[j].X
	})

	headers := make([]string, len(headerSpans))
	anchors := make([]float64, len(headerSpans))
	for i, s := range headerSpans {
		headers[i] = strings.TrimSpace(s.Text)
		anchors[i] = s.X
	}
	numCols := len(headers)

	// Cluster subsequent buckets into rows. A bucket joins the current row
	// while its Y stays within RowTolerance of the row's anchor Y. Buckets
	// at the cutoff-crossing Y are still collected before scanning stops.
	var groups []rowGroup
	var current rowGroup
	for _, y := range keys[1:] {
		spans := collectSpans(buckets[y])
		if len(spans) == 0 {
			continue
		}

		if current.keys == 0 || math.Abs(y-current.y) <= d.config.RowTolerance {
			if current.keys == 0 {
				current.y = y
			}
			current.spans = append(current.spans, spans...)
			current.keys++
		} else {
			groups = append(groups, current)
			current = rowGroup{y: y, spans: spans, keys: 1}
		}

		if y-headerY > d.config.VerticalCutoff {
			break
		}
	}
	if current.keys > 0 {
		groups = append(groups, current)
	}

	// Accept contiguous member rows, folding continuations.
	var rows [][]string
	yEnd := headerY
	consumed := 1
	for _, g := range groups {
		if !d.isMemberRow(g.spans, anchors) {
			break
		}

		row := d.assignCells(g.spans, anchors, numCols)

		// A row with exactly one non-empty column is treated as the
		// wrapped remainder of the previous row, not a new row.
		if len(rows) > 0 && countNonEmpty(row) == 1 {
			prev := rows[len(rows)-1]
			for i, cell := range row {
				if strings.TrimSpace(cell) == "" {
					continue
				}
				if prev[i] != "" {
					prev[i] += " " + cell
				} else {
					prev[i] = cell
				}
			}
		} else {
			rows = append(rows, row)
		}

		yEnd = g.y
		consumed += g.keys
	}

	if len(rows) == 0 {
		return nil, 0
	}

	return &model.TableStructure{
		Headers:             headers,
		Rows:                rows,
		YStart:              headerY,
		YEnd:                yEnd,
		HasHeaderBackground: d.headerHasFill(headerY, fills),
		PageIndex:           pageIndex,
	}, consumed
}

// isMemberRow reports whether at least one span lies within ColumnProximity
// of some column anchor. The first row failing this test terminates the
// table: rows must be contiguous.
func (d *Detector) isMemberRow(spans []model.Span, anchors []float64) bool {
	for _, s := range spans {
		for _, anchor := range anchors {
			if math.Abs(s.X-anchor) < d.config.ColumnProximity {
				return true
			}
		}
	}
	return false
}

// assignCells distributes a row's spans over the columns, each span going
// to the column whose anchor X is nearest (first anchor wins ties). Spans
// landing in the same column are space-joined. The result always has
// exactly numCols entries.
func (d *Detector) assignCells(spans []model.Span, anchors []float64, numCols int) []string {
	cells := make([]string, numCols)

	for _, s := range spans {
		minDist := math.Inf(1)
		col := 0
		for i, anchor := range anchors {
			if dist := math.Abs(s.X - anchor); dist < minDist {
				minDist = dist
				col = i
			}
		}

		if cells[col] != "" {
			cells[col] += " "
		}
		cells[col] += strings.TrimSpace(s.Text)
	}

	return cells
}

// headerHasFill reports whether some fill rectangle's vertical extent
// covers the header Y.
func (d *Detector) headerHasFill(headerY float64, fills []model.FillRect) bool {
	for _, f := range fills {
		if !f.BBox().IsFinite() {
			continue
		}
		if f.BBox().ContainsY(headerY) {
			return true
		}
	}
	return false
}

func collectSpans(lines []model.Line) []model.Span {
	var spans []model.Span
	for _, line := range lines {
		spans = append(spans, line.Spans...)
	}
	return spans
}

func countNonEmpty(row []string) int {
	n := 0
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			n++
		}
	}
	return n
}
