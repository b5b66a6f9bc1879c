package dimacs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xDarkicex/preppy/cnf"
)

func TestLoadSetsProvenanceFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "example.cnf")
	if err := os.WriteFile(path, []byte("p cnf 2 1\n1 2 0\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	f, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f.Provenance.Name != "example" {
		t.Errorf("Provenance.Name = %q, want %q", f.Provenance.Name, "example")
	}
	if f.Provenance.SourcePath != path {
		t.Errorf("Provenance.SourcePath = %q, want %q", f.Provenance.SourcePath, path)
	}
}

func TestResolveOutputPathDirectoryRule(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "input.cnf")

	got, err := ResolveOutputPath(dir, source, false)
	if err != nil {
		t.Fatalf("ResolveOutputPath: %v", err)
	}
	want := filepath.Join(dir, "inputout.cnf")
	if got != want {
		t.Errorf("ResolveOutputPath = %q, want %q", got, want)
	}
}

func TestResolveOutputPathRefusesExistingWithoutForce(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "input.cnf")
	existing := filepath.Join(dir, "existing.cnf")
	if err := os.WriteFile(existing, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := ResolveOutputPath(existing, source, false); err == nil {
		t.Fatalf("expected a WriteError for an existing output path without force")
	}
	if _, err := ResolveOutputPath(existing, source, true); err != nil {
		t.Fatalf("ResolveOutputPath with force should succeed: %v", err)
	}
}

func TestSaveWritesFile(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "input.cnf")

	f := cnf.New()
	f.Push(cnf.NewClause(1, 2))
	f.Provenance.Name = "input"

	path, err := Save("", source, false, f, Header{ToolVersion: "test", BuildType: "test"})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Save did not create %q: %v", path, err)
	}
}
