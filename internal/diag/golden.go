package diag

import (
	"fmt"
	"strings"

	"cinder/internal/source"
)

// FormatGolden renders diagnostics into a stable single-line-per-entry form
// for golden tests and the CLI short format:
//
//	error CIN3100 path:line:col message
//
// Diagnostics are rendered in bag order; callers are expected to have sorted
// the bag (or rely on a phase's own deterministic emission order).
func FormatGolden(bag *Bag, fs *source.FileSet, includeNotes bool) string {
	if bag == nil || fs == nil || bag.Len() == 0 {
		return ""
	}

	var b strings.Builder
	for _, d := range bag.Items() {
		writeGoldenLine(&b, fs, severityLabel(d.Severity), d.Code, d.Primary, d.Message)
		if !includeNotes {
			continue
		}
		for _, note := range d.Notes {
			writeGoldenLine(&b, fs, "note", d.Code, note.Span, note.Msg)
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func writeGoldenLine(b *strings.Builder, fs *source.FileSet, label string, code Code, span source.Span, msg string) {
	start, _ := fs.Resolve(span)
	path := fs.RelPath(span.File)
	fmt.Fprintf(b, "%s %s %s:%d:%d %s\n", label, code, path, start.Line, start.Col, sanitizeMessage(msg))
}

func severityLabel(sev Severity) string {
	switch sev {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	default:
		return "info"
	}
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
