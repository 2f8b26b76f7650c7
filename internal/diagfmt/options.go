package diagfmt

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeRelative renders paths relative to the file set's base directory.
	PathModeRelative PathMode = iota
	// PathModeAbsolute always uses the stored path.
	PathModeAbsolute
)

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	PathMode  PathMode
	ShowNotes bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool
	PathMode         PathMode
	IncludeNotes     bool
}
