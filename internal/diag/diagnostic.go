package diag

import (
	"cinder/internal/source"
)

// Note is a secondary location with its own message, e.g. "declared here".
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is a single finding produced by a front-end phase.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}
