// Package tables provides heuristic table detection over grouped text
// lines.
//
// The detector looks for header rows: at least three bold spans on one
// visual row with a clear horizontal gap between columns. The header's
// span positions become column anchors, and subsequent rows are accepted
// while their spans stay close to some anchor. Cell text is assigned to
// the nearest anchor column. A row with exactly one non-empty column is
// folded into the previous row as a wrapped-cell continuation.
//
// The heuristics target simple grid tables in single-column documents.
// They trade completeness for robustness: bordered tables without bold
// headers, nested tables, and rotated layouts are not detected. All
// thresholds are configurable; the defaults are the values the rest of
// the pipeline is validated against.
package tables
