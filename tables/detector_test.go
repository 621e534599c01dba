package tables

import (
	"reflect"
	"testing"

	"github.com/pageflow/pageflow/model"
)

// Helpers to build span rows at known positions
func boldSpan(text string, x, y float64) model.Span {
	return model.Span{Text: text, X: x, Y: y, Width: 20, Height: 10, FontSize: 12, Bold: true}
}

func plainSpan(text string, x, y float64) model.Span {
	return model.Span{Text: text, X: x, Y: y, Width: 20, Height: 10, FontSize: 12}
}

func lineOf(y float64, spans ...model.Span) model.Line {
	return model.Line{Spans: spans, Y: y}
}

// headerLine is a canonical three-column header: spans at X 0, 100, 205
// (width 20), so the inter-span gaps are 80 and 85.
func headerLine(y float64) model.Line {
	return lineOf(y,
		boldSpan("Name", 0, y),
		boldSpan("Age", 100, y),
		boldSpan("City", 205, y),
	)
}

func TestDetect_BasicTable(t *testing.T) {
	d := NewDetector()
	lines := []model.Line{
		headerLine(0),
		lineOf(20, plainSpan("Alice", 0, 20), plainSpan("30", 100, 20), plainSpan("NYC", 205, 20)),
		lineOf(40, plainSpan("Bob", 0, 40), plainSpan("25", 100, 40), plainSpan("LA", 205, 40)),
	}

	tables := d.Detect(lines, nil, 0)
	if len(tables) != 1 {
		t.Fatalf("Expected 1 table, got %d", len(tables))
	}

	table := tables[0]
	if !reflect.DeepEqual(table.Headers, []string{"Name", "Age", "City"}) {
		t.Errorf("Wrong headers: %v", table.Headers)
	}
	want := [][]string{
		{"Alice", "30", "NYC"},
		{"Bob", "25", "LA"},
	}
	if !reflect.DeepEqual(table.Rows, want) {
		t.Errorf("Wrong rows: %v", table.Rows)
	}
	if table.YStart != 0 || table.YEnd != 40 {
		t.Errorf("Wrong vertical extent: [%f, %f]", table.YStart, table.YEnd)
	}
	if table.HasHeaderBackground {
		t.Error("No fills were supplied, HasHeaderBackground should be false")
	}
}

func TestDetect_HeaderRejections(t *testing.T) {
	d := NewDetector()

	tests := []struct {
		name  string
		lines []model.Line
	}{
		{
			"two spans only",
			[]model.Line{
				lineOf(0, boldSpan("A", 0, 0), boldSpan("B", 100, 0)),
				lineOf(20, plainSpan("x", 0, 20), plainSpan("y", 100, 20)),
			},
		},
		{
			"one span not bold",
			[]model.Line{
				lineOf(0, boldSpan("A", 0, 0), plainSpan("B", 100, 0), boldSpan("C", 205, 0)),
				lineOf(20, plainSpan("x", 0, 20)),
			},
		},
		{
			"no gap between spans",
			[]model.Line{
				lineOf(0, boldSpan("A", 0, 0), boldSpan("B", 21, 0), boldSpan("C", 42, 0)),
				lineOf(20, plainSpan("x", 0, 20)),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tables := d.Detect(tt.lines, nil, 0); len(tables) != 0 {
				t.Errorf("Expected no tables, got %d", len(tables))
			}
		})
	}
}

// A bold, gappy line with no qualifying rows beneath it is not a table.
func TestDetect_HeaderWithoutDataRows(t *testing.T) {
	d := NewDetector()
	lines := []model.Line{
		headerLine(0),
		// Far from every column anchor: not a member row.
		lineOf(20, plainSpan("paragraph text", 400, 20)),
	}

	if tables := d.Detect(lines, nil, 0); len(tables) != 0 {
		t.Fatalf("Expected no tables, got %d", len(tables))
	}
}

func TestDetect_CellAssignment(t *testing.T) {
	d := NewDetector()
	lines := []model.Line{
		headerLine(0),
		lineOf(20,
			// Two spans nearest to the first anchor join with a space.
			plainSpan("Alice", 0, 20),
			plainSpan("Smith", 25, 20),
			// Nearest to the third anchor; second column stays empty.
			plainSpan("NYC", 210, 20),
		),
	}

	tables := d.Detect(lines, nil, 0)
	if len(tables) != 1 {
		t.Fatalf("Expected 1 table, got %d", len(tables))
	}

	want := [][]string{{"Alice Smith", "", "NYC"}}
	if !reflect.DeepEqual(tables[0].Rows, want) {
		t.Errorf("Wrong cell assignment: %v", tables[0].Rows)
	}
}

// Every row has exactly as many cells as there are headers.
func TestDetect_ColumnCountInvariant(t *testing.T) {
	d := NewDetector()
	lines := []model.Line{
		headerLine(0),
		lineOf(20, plainSpan("only", 100, 20), plainSpan("two", 205, 20)),
		lineOf(40, plainSpan("a", 0, 40), plainSpan("b", 100, 40), plainSpan("c", 205, 40)),
	}

	tables := d.Detect(lines, nil, 0)
	if len(tables) != 1 {
		t.Fatalf("Expected 1 table, got %d", len(tables))
	}
	for i, row := range tables[0].Rows {
		if len(row) != len(tables[0].Headers) {
			t.Errorf("Row %d has %d cells, want %d", i, len(row), len(tables[0].Headers))
		}
	}
}

func TestDetect_ContinuationFolding(t *testing.T) {
	d := NewDetector()
	lines := []model.Line{
		headerLine(0),
		lineOf(20, plainSpan("Alice", 0, 20), plainSpan("30", 100, 20), plainSpan("NYC", 205, 20)),
		// Exactly one non-empty column: wrapped remainder of the row above.
		lineOf(40, plainSpan("suburb", 205, 40)),
	}

	tables := d.Detect(lines, nil, 0)
	if len(tables) != 1 {
		t.Fatalf("Expected 1 table, got %d", len(tables))
	}

	want := [][]string{{"Alice", "30", "NYC suburb"}}
	if !reflect.DeepEqual(tables[0].Rows, want) {
		t.Errorf("Continuation not folded: %v", tables[0].Rows)
	}
	if tables[0].YEnd != 40 {
		t.Errorf("Folded row should still extend the table, YEnd = %f", tables[0].YEnd)
	}
}

func TestDetect_ContinuationIntoEmptyCell(t *testing.T) {
	d := NewDetector()
	lines := []model.Line{
		headerLine(0),
		lineOf(20, plainSpan("Alice", 0, 20), plainSpan("30", 100, 20)),
		lineOf(40, plainSpan("NYC", 205, 40)),
	}

	tables := d.Detect(lines, nil, 0)
	if len(tables) != 1 {
		t.Fatalf("Expected 1 table, got %d", len(tables))
	}

	want := [][]string{{"Alice", "30", "NYC"}}
	if !reflect.DeepEqual(tables[0].Rows, want) {
		t.Errorf("Continuation into empty cell mishandled: %v", tables[0].Rows)
	}
}

// Rows with two or more non-empty columns are never folded.
func TestDetect_TwoColumnRowIsNotContinuation(t *testing.T) {
	d := NewDetector()
	lines := []model.Line{
		headerLine(0),
		lineOf(20, plainSpan("Alice", 0, 20), plainSpan("30", 100, 20), plainSpan("NYC", 205, 20)),
		lineOf(40, plainSpan("Bob", 0, 40), plainSpan("LA", 205, 40)),
	}

	tables := d.Detect(lines, nil, 0)
	if len(tables) != 1 {
		t.Fatalf("Expected 1 table, got %d", len(tables))
	}
	if len(tables[0].Rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d: %v", len(tables[0].Rows), tables[0].Rows)
	}
}

// The first row with no span near any column anchor ends the table; the
// scanner never skips ahead looking for more member rows.
func TestDetect_NonMemberRowTerminates(t *testing.T) {
	d := NewDetector()
	lines := []model.Line{
		headerLine(0),
		lineOf(20, plainSpan("Alice", 0, 20), plainSpan("30", 100, 20), plainSpan("NYC", 205, 20)),
		lineOf(40, plainSpan("An unrelated paragraph.", 300, 40)),
		// A row that would qualify, stranded behind the paragraph.
		lineOf(60, plainSpan("Bob", 0, 60), plainSpan("25", 100, 60), plainSpan("LA", 205, 60)),
	}

	tables := d.Detect(lines, nil, 0)
	if len(tables) != 1 {
		t.Fatalf("Expected 1 table, got %d", len(tables))
	}
	if len(tables[0].Rows) != 1 {
		t.Errorf("Table should stop at the non-member row, got %d rows", len(tables[0].Rows))
	}
	if tables[0].YEnd != 20 {
		t.Errorf("YEnd should be the last member row, got %f", tables[0].YEnd)
	}
}

// Scanning stops after the first row past the vertical cutoff, but that
// crossing row itself is still part of the table.
func TestDetect_VerticalCutoff(t *testing.T) {
	d := NewDetector()
	lines := []model.Line{
		headerLine(0),
		lineOf(100, plainSpan("a", 0, 100), plainSpan("b", 100, 100), plainSpan("c", 205, 100)),
		lineOf(250, plainSpan("d", 0, 250), plainSpan("e", 100, 250), plainSpan("f", 205, 250)),
		lineOf(300, plainSpan("g", 0, 300), plainSpan("h", 100, 300), plainSpan("i", 205, 300)),
	}

	tables := d.Detect(lines, nil, 0)
	if len(tables) != 1 {
		t.Fatalf("Expected 1 table, got %d", len(tables))
	}
	if len(tables[0].Rows) != 2 {
		t.Fatalf("Expected 2 rows (cutoff-crossing row included), got %d", len(tables[0].Rows))
	}
	if tables[0].YEnd != 250 {
		t.Errorf("YEnd should be the cutoff-crossing row, got %f", tables[0].YEnd)
	}
}

// Line records at nearly identical Y collapse into one bucket, so a header
// split across extraction records is still recognized.
func TestDetect_RoundedYBuckets(t *testing.T) {
	d := NewDetector()
	lines := []model.Line{
		lineOf(100.0, boldSpan("Name", 0, 100.0), boldSpan("Age", 100, 100.0)),
		lineOf(100.04, boldSpan("City", 205, 100.04)),
		lineOf(120, plainSpan("Alice", 0, 120), plainSpan("30", 100, 120), plainSpan("NYC", 205, 120)),
	}

	tables := d.Detect(lines, nil, 0)
	if len(tables) != 1 {
		t.Fatalf("Expected 1 table from split header records, got %d", len(tables))
	}
	if !reflect.DeepEqual(tables[0].Headers, []string{"Name", "Age", "City"}) {
		t.Errorf("Wrong headers: %v", tables[0].Headers)
	}
}

func TestDetect_HeaderBackgroundFill(t *testing.T) {
	d := NewDetector()
	lines := []model.Line{
		headerLine(50),
		lineOf(70, plainSpan("Alice", 0, 70), plainSpan("30", 100, 70), plainSpan("NYC", 205, 70)),
	}
	fills := []model.FillRect{
		{X: 0, Y: 45, Width: 300, Height: 12, Color: model.Color{R: 217, G: 217, B: 217}},
	}

	tables := d.Detect(lines, fills, 0)
	if len(tables) != 1 {
		t.Fatalf("Expected 1 table, got %d", len(tables))
	}
	if !tables[0].HasHeaderBackground {
		t.Error("Fill covering the header Y should set HasHeaderBackground")
	}
}

func TestDetect_MultipleTables(t *testing.T) {
	d := NewDetector()
	lines := []model.Line{
		headerLine(0),
		lineOf(20, plainSpan("Alice", 0, 20), plainSpan("30", 100, 20), plainSpan("NYC", 205, 20)),
		// A non-member paragraph separates the two tables.
		lineOf(300, plainSpan("Interlude text between tables.", 400, 300)),
		headerLine(400),
		lineOf(420, plainSpan("Bob", 0, 420), plainSpan("25", 100, 420), plainSpan("LA", 205, 420)),
	}

	tables := d.Detect(lines, nil, 0)
	if len(tables) != 2 {
		t.Fatalf("Expected 2 tables, got %d", len(tables))
	}
	if tables[0].YStart != 0 || tables[1].YStart != 400 {
		t.Errorf("Wrong table origins: %f, %f", tables[0].YStart, tables[1].YStart)
	}
}

func TestDetect_PageIndexPropagates(t *testing.T) {
	d := NewDetector()
	lines := []model.Line{
		headerLine(0),
		lineOf(20, plainSpan("Alice", 0, 20), plainSpan("30", 100, 20), plainSpan("NYC", 205, 20)),
	}

	tables := d.Detect(lines, nil, 4)
	if len(tables) != 1 || tables[0].PageIndex != 4 {
		t.Fatalf("Expected table on page 4, got %+v", tables)
	}
}

func TestDetect_EmptyInput(t *testing.T) {
	d := NewDetector()
	if tables := d.Detect(nil, nil, 0); tables != nil {
		t.Errorf("Expected nil for empty input, got %v", tables)
	}
}
