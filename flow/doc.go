// Package flow assembles reconstructed lines, tables, and images into a
// single ordered element stream per page, and concatenates pages into a
// document flow separated by page breaks.
//
// Tables suppress the text lines they consumed: a line whose Y falls inside
// a detected table's vertical range is dropped, and the table element
// itself is emitted exactly once, anchored to the first line near the
// table's top so it appears at its original position in reading order.
package flow
