package project_test

import (
	"os"
	"path/filepath"
	"testing"

	"cinder/internal/project"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, project.ManifestName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFromNestedDir(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, `
[package]
name = "vault"

[check]
source = "contracts"
max_diagnostics = 50
`)
	nested := filepath.Join(root, "contracts", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	m, ok, err := project.Load(nested)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("manifest not discovered from nested directory")
	}
	if m.Root != root {
		t.Errorf("Root = %q, want %q", m.Root, root)
	}
	if m.Config.Package.Name != "vault" {
		t.Errorf("package name = %q", m.Config.Package.Name)
	}
	if got, want := m.SourceDir(), filepath.Join(root, "contracts"); got != want {
		t.Errorf("SourceDir = %q, want %q", got, want)
	}
	if m.MaxDiagnostics() != 50 {
		t.Errorf("MaxDiagnostics = %d, want 50", m.MaxDiagnostics())
	}
}

func TestLoadNoManifest(t *testing.T) {
	dir := t.TempDir()
	m, ok, err := project.Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if ok || m != nil {
		t.Error("expected no manifest in an empty tree")
	}
}

func TestLoadMissingPackageName(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[package]\n")
	if _, _, err := project.Load(dir); err == nil {
		t.Error("expected error for missing [package].name")
	}
}

func TestLoadUnknownKey(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[package]
name = "vault"
flavor = "mint"
`)
	if _, _, err := project.Load(dir); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestDefaults(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[package]\nname = \"vault\"\n")
	m, ok, err := project.Load(dir)
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if m.SourceDir() != m.Root {
		t.Errorf("SourceDir = %q, want project root", m.SourceDir())
	}
	if m.MaxDiagnostics() != project.DefaultMaxDiagnostics {
		t.Errorf("MaxDiagnostics = %d, want default", m.MaxDiagnostics())
	}
}
