package pageflow

import "errors"

// Sentinel errors returned by the fluent API. Heuristic non-matches (a
// page that does not look like a nice document) are never errors; they
// degrade into lower-fidelity output instead.
var (
	// ErrPageOutOfRange reports a page selection outside the document.
	ErrPageOutOfRange = errors.New("page out of range")

	// ErrUnsupportedFormat reports an output format no sink implements.
	ErrUnsupportedFormat = errors.New("unsupported output format")
)
