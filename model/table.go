package model

// TableStructure is a detected table. It is a derived, synthetic structure:
// it does not reference the original spans after extraction. Only the
// vertical extent is retained so the flow assembler can suppress lines the
// table already consumed.
//
// Invariant: every row has exactly len(Headers) entries. A cell may be the
// empty string when no span landed in its column.
type TableStructure struct {
	// Headers are the column labels; order is column index.
	Headers []string

	// Rows hold cell text in row-major order, one string per column.
	Rows [][]string

	// YStart and YEnd bound the vertical extent consumed on the page.
	YStart float64
	YEnd   float64

	// HasHeaderBackground is an advisory signal from vector-fill detection.
	// It never affects detection itself.
	HasHeaderBackground bool

	// PageIndex is the 0-indexed page the table was detected on.
	PageIndex int
}

func (t *TableStructure) Kind() ElementKind { return KindTable }
func (t *TableStructure) Offset() float64   { return t.YStart }

// ColCount returns the number of columns.
func (t *TableStructure) ColCount() int {
	return len(t.Headers)
}

// RowCount returns the number of data rows (the header is not a row).
func (t *TableStructure) RowCount() int {
	return len(t.Rows)
}

// ConsumesY reports whether a line at the given Y coordinate falls inside
// the table's consumed vertical range.
func (t *TableStructure) ConsumesY(y float64) bool {
	return y >= t.YStart && y <= t.YEnd
}
