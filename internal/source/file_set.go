package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
)

// FileSet owns a collection of source files and resolves spans to line/column
// positions. File IDs are indices into the set and stay valid for its lifetime.
type FileSet struct {
	files   []File
	index   map[string]FileID
	baseDir string
}

// NewFileSet creates an empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		files: make([]File, 0),
		index: make(map[string]FileID),
	}
}

// NewFileSetWithBase creates an empty FileSet with a base directory used for
// relative path rendering.
func NewFileSetWithBase(baseDir string) *FileSet {
	fs := NewFileSet()
	fs.baseDir = baseDir
	return fs
}

// BaseDir returns the base directory, defaulting to the working directory.
func (fs *FileSet) BaseDir() string {
	if fs.baseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
	}
	return fs.baseDir
}

// Add stores normalized content under path and returns a fresh FileID.
// A path may be added more than once; the index always points at the latest
// version.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	lenFiles, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("file set overflow: %w", err))
	}
	id := FileID(lenFiles)
	normalized := normalizePath(path)
	fs.files = append(fs.files, File{
		ID:      id,
		Path:    normalized,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	fs.index[normalized] = id
	return id
}

// Load reads a file from disk, strips a BOM, normalizes CRLF and calls Add.
func (fs *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)

	flags := FileFlags(0)
	if hadBOM {
		flags |= FileHadBOM
	}
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return fs.Add(path, content, flags), nil
}

// AddVirtual adds an in-memory file (tests, stdin, standard-json sources).
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	content, _ = removeBOM(content)
	content, _ = normalizeCRLF(content)
	return fs.Add(name, content, FileVirtual)
}

// Get returns the file for the given ID, or nil when the ID is out of range.
func (fs *FileSet) Get(id FileID) *File {
	if fs == nil || int(id) >= len(fs.files) {
		return nil
	}
	return &fs.files[id]
}

// GetByPath returns the latest file added under path.
func (fs *FileSet) GetByPath(path string) (*File, bool) {
	id, ok := fs.index[normalizePath(path)]
	if !ok {
		return nil, false
	}
	return &fs.files[id], true
}

// Len returns the number of stored files.
func (fs *FileSet) Len() int {
	if fs == nil {
		return 0
	}
	return len(fs.files)
}

// Resolve maps a span to its start and end line/column positions.
func (fs *FileSet) Resolve(span Span) (start, end LineCol) {
	file := fs.Get(span.File)
	if file == nil {
		return LineCol{Line: 1, Col: 1}, LineCol{Line: 1, Col: 1}
	}
	return toLineCol(file.LineIdx, span.Start), toLineCol(file.LineIdx, span.End)
}

// LineText returns the raw text of a 1-based line, without the trailing newline.
func (fs *FileSet) LineText(id FileID, line uint32) string {
	file := fs.Get(id)
	if file == nil || line == 0 {
		return ""
	}
	var start uint32
	if line > 1 {
		if int(line-2) >= len(file.LineIdx) {
			return ""
		}
		start = file.LineIdx[line-2] + 1
	}
	end := uint32(len(file.Content))
	if int(line-1) < len(file.LineIdx) {
		end = file.LineIdx[line-1]
	}
	if start > end {
		return ""
	}
	return string(file.Content[start:end])
}

// RelPath renders the file path relative to the base directory when possible.
func (fs *FileSet) RelPath(id FileID) string {
	file := fs.Get(id)
	if file == nil {
		return ""
	}
	if rel, err := filepath.Rel(fs.BaseDir(), file.Path); err == nil && !filepath.IsAbs(rel) {
		return filepath.ToSlash(rel)
	}
	return file.Path
}
