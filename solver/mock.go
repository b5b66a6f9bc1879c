package solver

import (
	"context"
	"time"

	"github.com/xDarkicex/preppy/cnf"
)

// Mock is a deterministic, in-memory Solver backend used by tests. It
// performs a small exhaustive search (suitable only for the tiny
// formulas unit tests exercise) and never reports Unknown unless
// ForceUnknown is set, which is useful for exercising the
// conservative-timeout paths in procedures.Backbone and friends.
type Mock struct {
	ForceUnknown bool
}

// NewMock returns a mock solver.
func NewMock() *Mock { return &Mock{} }

func (m *Mock) Name() string { return "mock" }

func (m *Mock) Solve(_ context.Context, f *cnf.CNF, _ time.Duration) Verdict {
	if m.ForceUnknown {
		return Unknown
	}
	if _, ok := search(f, 0); ok {
		return Sat
	}
	return Unsat
}

func (m *Mock) Model(_ context.Context, f *cnf.CNF, _ time.Duration) (*cnf.Model, bool) {
	if m.ForceUnknown {
		return nil, false
	}
	model, ok := search(f, 0)
	if !ok {
		return nil, false
	}
	return model, true
}

// search performs a brute-force DPLL-less exhaustive search over the
// variables of f, returning the first satisfying model found.
func search(f *cnf.CNF, _ int) (*cnf.Model, bool) {
	vars := make([]int32, 0, f.MaxVariable())
	for v := int32(1); v <= f.MaxVariable(); v++ {
		vars = append(vars, v)
	}
	return searchFrom(f, vars, cnf.NewModel())
}

func searchFrom(f *cnf.CNF, remaining []int32, partial *cnf.Model) (*cnf.Model, bool) {
	if len(remaining) == 0 {
		if satisfies(f, partial) {
			return partial, true
		}
		return nil, false
	}
	v := remaining[0]
	rest := remaining[1:]
	for _, val := range []bool{true, false} {
		candidate := partial.Clone()
		candidate.Set(v, val)
		if model, ok := searchFrom(f, rest, candidate); ok {
			return model, true
		}
	}
	return nil, false
}

func satisfies(f *cnf.CNF, m *cnf.Model) bool {
	for _, c := range f.Clauses {
		if c.IsUnsat() {
			return false
		}
		if c.IsSatisfied() {
			continue
		}
		satisfied := false
		for _, l := range c.Lits {
			if m.Satisfies(l) {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return false
		}
	}
	return true
}
