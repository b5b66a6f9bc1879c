package dimacs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xDarkicex/preppy/cnf"
	"github.com/xDarkicex/preppy/core"
)

// Load opens and parses path as a DIMACS file, naming the resulting
// formula's provenance after the file's stem.
func Load(path string) (*cnf.CNF, []*core.Error, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, core.NewError(core.InputError, "dimacs.Load", err)
	}
	defer file.Close()

	f, warnings, err := Read(file)
	if err != nil {
		return nil, warnings, err
	}
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	f.Provenance = core.NewProvenance(stem, path)
	return f, warnings, nil
}

// ResolveOutputPath implements spec.md §6's output destination rule:
// if output refers to a directory, the file is written as
// "<sourceStem>out.cnf" inside it; otherwise output is used verbatim.
// Absent force, an existing target is left untouched and a WriteError
// is returned. An empty output defaults to the source's own directory.
func ResolveOutputPath(output, source string, force bool) (string, error) {
	target := output
	if target == "" {
		target = filepath.Dir(source)
	}

	if info, err := os.Stat(target); err == nil && info.IsDir() {
		stem := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
		target = filepath.Join(target, stem+"out.cnf")
	}

	if !force {
		if _, err := os.Stat(target); err == nil {
			return "", core.NewError(core.WriteError, "dimacs.ResolveOutputPath",
				fmt.Errorf("output file %q already exists (use --force to overwrite)", target))
		}
	}
	return target, nil
}

// Save resolves output against source (see ResolveOutputPath) and
// writes f to it.
func Save(output, source string, force bool, f *cnf.CNF, h Header) (string, error) {
	target, err := ResolveOutputPath(output, source, force)
	if err != nil {
		return "", err
	}
	file, err := os.Create(target)
	if err != nil {
		return "", core.NewError(core.WriteError, "dimacs.Save", err)
	}
	defer file.Close()

	if err := Write(file, f, h); err != nil {
		return "", core.NewError(core.WriteError, "dimacs.Save", err)
	}
	return target, nil
}
