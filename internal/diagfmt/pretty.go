package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"cinder/internal/diag"
	"cinder/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan, color.Bold)
	noteColor    = color.New(color.FgBlue)
	gutterColor  = color.New(color.FgHiBlack)
)

// Pretty renders diagnostics in a human-readable form. It walks bag.Items()
// in order (callers sort the bag beforehand) and prints, per diagnostic:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//	  <line text>
//	  ^~~~ underline of the primary span
//
// followed by notes in the same shape when opts.ShowNotes is set.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil || fs == nil {
		return
	}
	for _, d := range bag.Items() {
		printEntry(w, fs, severityTag(d.Severity, opts.Color), d.Code, d.Primary, d.Message, opts)
		if opts.ShowNotes {
			for _, note := range d.Notes {
				printEntry(w, fs, colorize(noteColor, "note", opts.Color), d.Code, note.Span, note.Msg, opts)
			}
		}
	}
}

func printEntry(w io.Writer, fs *source.FileSet, tag string, code diag.Code, span source.Span, msg string, opts PrettyOpts) {
	path := pathFor(fs, span.File, opts.PathMode)
	start, end := fs.Resolve(span)
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", path, start.Line, start.Col, tag, code, msg)

	line := fs.LineText(span.File, start.Line)
	if line == "" {
		return
	}
	gutter := fmt.Sprintf("%4d | ", start.Line)
	fmt.Fprintf(w, "%s%s\n", colorize(gutterColor, gutter, opts.Color), line)

	// Underline the span within its first line. Widths are computed per rune
	// so tabs and wide characters stay aligned.
	underEnd := end.Col
	if end.Line != start.Line {
		underEnd = uint32(len(line)) + 1
	}
	pad := displayWidth(line, 0, start.Col-1)
	width := displayWidth(line, start.Col-1, underEnd-1)
	if width == 0 {
		width = 1
	}
	marker := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(w, "%s%s%s\n",
		strings.Repeat(" ", len(gutter)),
		strings.Repeat(" ", pad),
		colorize(markerColor(tag), marker, opts.Color))
}

// displayWidth measures the rendered width of line[fromCol:toCol] (0-based
// byte columns), expanding tabs to four cells.
func displayWidth(line string, fromCol, toCol uint32) int {
	if fromCol >= toCol || int(fromCol) >= len(line) {
		return 0
	}
	if int(toCol) > len(line) {
		toCol = uint32(len(line))
	}
	width := 0
	for _, r := range line[fromCol:toCol] {
		if r == '\t' {
			width += 4
			continue
		}
		width += runewidth.RuneWidth(r)
	}
	return width
}

func pathFor(fs *source.FileSet, id source.FileID, mode PathMode) string {
	if mode == PathModeAbsolute {
		if f := fs.Get(id); f != nil {
			return f.Path
		}
		return ""
	}
	return fs.RelPath(id)
}

func severityTag(sev diag.Severity, colored bool) string {
	switch sev {
	case diag.SevError:
		return colorize(errorColor, "error", colored)
	case diag.SevWarning:
		return colorize(warningColor, "warning", colored)
	default:
		return colorize(infoColor, "info", colored)
	}
}

func markerColor(tag string) *color.Color {
	if strings.Contains(tag, "error") {
		return errorColor
	}
	return noteColor
}

func colorize(c *color.Color, s string, enabled bool) string {
	if !enabled {
		return s
	}
	return c.Sprint(s)
}
