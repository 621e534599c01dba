// Package sink defines the document sink contract: consumers of the
// ordered FlowElement sequence produced by the reconstruction engine.
package sink

import "github.com/pageflow/pageflow/model"

// Sink serializes a reconstructed document flow into an output format.
// The flow is replayed strictly in order; sinks must not reorder elements.
type Sink interface {
	Write(flow []model.FlowElement) error
}
