// Package procedures implements the equivalence-preserving and
// counting-preserving CNF transformations spec.md §4.3–§4.7 describe,
// plus the manager that composes them (§4.7).
package procedures

import (
	"context"

	"github.com/xDarkicex/preppy/cnf"
	"github.com/xDarkicex/preppy/core"
)

// Procedure is the capability set spec.md §9's design notes describe:
// a name, the strongest equivalence it declares, and the
// subclass-specific work body (impl). Run must never call Apply on
// itself or any other procedure recursively — composition is the
// Manager's job, not a procedure's.
type Procedure interface {
	Name() string
	Level() core.EquivalenceLevel
	Run(ctx context.Context, f *cnf.CNF) (bool, error)
}

// Apply is the shared template wrapper every procedure goes through:
// it times the call, records the procedure's name and equivalence
// level on f's provenance (degrading it, never strengthening it), and
// delegates to Run. Success is whatever Run reports.
func Apply(ctx context.Context, p Procedure, f *cnf.CNF) (bool, error) {
	var sw core.Stopwatch
	sw.Start()
	ok, err := p.Run(ctx, f)
	f.Provenance.RecordApplication(p.Name(), p.Level(), sw.Elapsed())
	return ok, err
}
