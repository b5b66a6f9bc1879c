// Package solver defines the Solver capability spec.md §6 describes
// as an external collaborator, and provides two concrete
// implementations: an in-process one built on github.com/go-air/gini,
// and an external-process one that marshals through DIMACS and a
// configured solver binary. A deterministic in-memory Mock backend for
// tests is provided as well.
package solver

import (
	"context"
	"time"

	"github.com/xDarkicex/preppy/cnf"
)

// Verdict is the three-valued outcome of a solver call. A timeout or
// an unparseable external result both report Unknown; callers must
// interpret Unknown conservatively, per spec.md §5/§7.
type Verdict int

const (
	Unknown Verdict = iota
	Sat
	Unsat
)

func (v Verdict) String() string {
	switch v {
	case Sat:
		return "SAT"
	case Unsat:
		return "UNSAT"
	default:
		return "UNKNOWN"
	}
}

// Solver is the opaque capability {isSat, getModel} of spec.md §6,
// reusable read-only across calls (spec.md §5).
type Solver interface {
	// Solve decides the satisfiability of f within timeout.
	Solve(ctx context.Context, f *cnf.CNF, timeout time.Duration) Verdict
	// Model returns a satisfying assignment of f within timeout, or
	// ok=false if none was found or the call timed out.
	Model(ctx context.Context, f *cnf.CNF, timeout time.Duration) (model *cnf.Model, ok bool)
	// Name identifies the backend, for provenance/diagnostics.
	Name() string
}

// IsSat is a convenience for callers (like procedures.Backbone) that
// only care whether f is definitely satisfiable, definitely
// unsatisfiable, or undetermined.
func IsSat(ctx context.Context, s Solver, f *cnf.CNF, timeout time.Duration) Verdict {
	return s.Solve(ctx, f, timeout)
}
