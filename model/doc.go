// Package model provides the intermediate representation (IR) for
// reconstructed document content.
//
// This package defines the data structures shared by the layout
// reconstruction pipeline. A content source produces [PageContent] values
// holding positioned [Span], [ImageBlock], and [FillRect] data; the
// reconstruction engine turns them into an ordered sequence of
// [FlowElement] values ready for emission by a document sink.
//
// # Coordinate system
//
// All geometry is expressed in page space with the origin at the top-left
// corner and Y increasing downward, so that ascending Y matches reading
// order. Content sources that extract from bottom-up coordinate systems
// (such as PDF) are responsible for flipping Y before handing spans to the
// engine.
//
// # Flow elements
//
// All reconstructed content implements the [FlowElement] interface. The
// concrete types are:
//
//   - [TextLine] - a merged line of body text or a heading
//   - [*TableStructure] - a detected table with headers and rows
//   - [ImageBlock] - an embedded image with target dimensions
//   - [PageBreak] - a hard page boundary
//
// All structures are created fresh per conversion run and carry no
// persistent state.
package model
