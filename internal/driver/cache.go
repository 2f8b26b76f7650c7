package driver

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"cinder/internal/diag"
	"cinder/internal/source"
)

// Increment when cachedDiagnostics layout changes.
const diskCacheSchemaVersion uint16 = 1

// DiskCache persists per-file analysis results keyed by content hash, so
// unchanged files skip the full pipeline on the next run.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// cachedDiagnostics is the on-disk payload. Spans are stored as raw byte
// offsets and rebased onto the current FileID at load time.
type cachedDiagnostics struct {
	Schema uint16
	Hash   [32]byte
	Diags  []cachedDiagnostic
}

type cachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Message  string
	Start    uint32
	End      uint32
	Notes    []cachedNote
}

type cachedNote struct {
	Message string
	Start   uint32
	End     uint32
}

// OpenDiskCache initializes a disk cache under the standard user cache
// location ($XDG_CACHE_HOME or ~/.cache).
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// OpenDiskCacheAt initializes a disk cache rooted at dir. Used by tests
// and by --cache-dir.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key [32]byte) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "checks", hexKey+".mp")
}

// Store serializes a file's bag under its content hash. The write goes
// through a temp file and an atomic rename.
func (c *DiskCache) Store(file *source.File, bag *diag.Bag) error {
	if c == nil || file == nil || bag == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	payload := cachedDiagnostics{
		Schema: diskCacheSchemaVersion,
		Hash:   file.Hash,
	}
	for _, d := range bag.Items() {
		cd := cachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, cachedNote{
				Message: n.Msg,
				Start:   n.Span.Start,
				End:     n.Span.End,
			})
		}
		payload.Diags = append(payload.Diags, cd)
	}

	p := c.pathFor(file.Hash)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		f.Close()
		os.Remove(f.Name())
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return err
	}
	return os.Rename(f.Name(), p)
}

// Lookup restores a file's bag from the cache. The second return is false
// on a miss, a schema mismatch or a hash collision check failure.
func (c *DiskCache) Lookup(file *source.File, maxDiagnostics int) (*diag.Bag, bool) {
	if c == nil || file == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(file.Hash))
	if err != nil {
		return nil, false
	}
	defer f.Close()

	var payload cachedDiagnostics
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false
	}
	if payload.Schema != diskCacheSchemaVersion || payload.Hash != file.Hash {
		return nil, false
	}

	bag := diag.NewBag(maxDiagnostics)
	for _, cd := range payload.Diags {
		d := diag.Diagnostic{
			Severity: diag.Severity(cd.Severity),
			Code:     diag.Code(cd.Code),
			Message:  cd.Message,
			Primary:  source.Span{File: file.ID, Start: cd.Start, End: cd.End},
		}
		for _, n := range cd.Notes {
			d.Notes = append(d.Notes, diag.Note{
				Msg:  n.Message,
				Span: source.Span{File: file.ID, Start: n.Start, End: n.End},
			})
		}
		bag.Add(d)
	}
	return bag, true
}

// DropAll invalidates the whole cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	return os.RemoveAll(old)
}
