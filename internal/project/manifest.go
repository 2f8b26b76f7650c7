// Package project locates and loads cinder.toml, the per-project manifest.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file that marks a project root.
const ManifestName = "cinder.toml"

// Manifest is a parsed cinder.toml together with its location on disk.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the TOML structure of cinder.toml.
type Config struct {
	Package PackageConfig `toml:"package"`
	Check   CheckConfig   `toml:"check"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

// CheckConfig tunes the analysis run. All fields are optional.
type CheckConfig struct {
	// Source is the directory holding .cin files, relative to the
	// project root. Defaults to the root itself.
	Source string `toml:"source"`
	// MaxDiagnostics caps the number of reported diagnostics per run.
	MaxDiagnostics int `toml:"max_diagnostics"`
	// WarningsAsErrors makes any warning fail the run.
	WarningsAsErrors bool `toml:"warnings_as_errors"`
}

// DefaultMaxDiagnostics applies when [check].max_diagnostics is absent
// or non-positive.
const DefaultMaxDiagnostics = 256

// Find walks up from startDir to locate cinder.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load discovers and parses the nearest manifest above startDir.
// ok is false when no manifest exists; that is not an error.
func Load(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

// LoadConfig parses a manifest file and validates required keys.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return Config{}, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return Config{}, fmt.Errorf("%s: missing [package].name", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}

// SourceDir resolves [check].source against the project root.
func (m *Manifest) SourceDir() string {
	src := strings.TrimSpace(m.Config.Check.Source)
	if src == "" {
		return m.Root
	}
	return filepath.Join(m.Root, filepath.FromSlash(src))
}

// MaxDiagnostics returns the configured cap or the default.
func (m *Manifest) MaxDiagnostics() int {
	if m == nil || m.Config.Check.MaxDiagnostics <= 0 {
		return DefaultMaxDiagnostics
	}
	return m.Config.Check.MaxDiagnostics
}
