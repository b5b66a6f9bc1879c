package procedures

import (
	"context"
	"testing"
	"time"

	"github.com/xDarkicex/preppy/cnf"
	"github.com/xDarkicex/preppy/solver"
)

// F = (1 2)(-1 2) has exactly two models, (1=T,2=T) and (1=F,2=T): 2
// is forced in every one of them, 1 is not. Backbone must find {2}
// alone.
func TestBackboneComputeFindsOnlyForcedLiteral(t *testing.T) {
	f := cnf.New()
	f.Push(cnf.NewClause(1, 2))
	f.Push(cnf.NewClause(-1, 2))

	b := NewBackbone(solver.NewMock(), time.Second)
	literals, ok := b.Compute(context.Background(), f)
	if !ok {
		t.Fatalf("Compute ok = false on a satisfiable formula")
	}
	if len(literals) != 1 || literals[0] != cnf.Literal(2) {
		t.Fatalf("Compute literals = %v, want [2]", literals)
	}
}

func TestBackboneRunAppliesLiterals(t *testing.T) {
	f := cnf.New()
	f.Push(cnf.NewClause(1, 2))
	f.Push(cnf.NewClause(-1, 2))

	b := NewBackbone(solver.NewMock(), time.Second)
	ok, err := Apply(context.Background(), b, f)
	if err != nil || !ok {
		t.Fatalf("Apply returned (%v, %v)", ok, err)
	}

	if f.Size() != 1 {
		t.Fatalf("Size() after Run = %d, want 1 (both clauses satisfied by 2=true)", f.Size())
	}
	if !f.Clauses[0].IsUnit() || f.Clauses[0].Lits[0] != cnf.Literal(2) {
		t.Fatalf("remaining clause = %v, want a unit clause {2}", f.Clauses[0].Lits)
	}
}

// Applying Backbone Simplification twice: the second pass has nothing
// left to force, so its backbone is empty.
func TestBackboneSecondPassIsEmpty(t *testing.T) {
	f := cnf.New()
	f.Push(cnf.NewClause(1, 2))
	f.Push(cnf.NewClause(-1, 2))

	b := NewBackbone(solver.NewMock(), time.Second)
	if _, err := Apply(context.Background(), b, f); err != nil {
		t.Fatalf("first Apply: %v", err)
	}

	literals, ok := b.Compute(context.Background(), f)
	if !ok {
		t.Fatalf("Compute ok = false on the already-simplified formula")
	}
	if len(literals) != 0 {
		t.Fatalf("second-pass backbone = %v, want empty", literals)
	}
}

// An unsatisfiable formula has, by convention, an empty backbone:
// Model never finds a witness to refine.
func TestBackboneUnsatFormulaHasEmptyBackbone(t *testing.T) {
	f := cnf.New()
	f.Push(cnf.NewClause(1, 2))
	f.Push(cnf.NewClause(1, -2))
	f.Push(cnf.NewClause(-1, 2))
	f.Push(cnf.NewClause(-1, -2))

	b := NewBackbone(solver.NewMock(), time.Second)
	literals, ok := b.Compute(context.Background(), f)
	if ok {
		t.Fatalf("Compute ok = true on an unsatisfiable formula, literals=%v", literals)
	}
	if literals != nil {
		t.Errorf("Compute literals = %v, want nil", literals)
	}
}

// A formula carrying the explicit unsat marker clause is never even
// handed to the solver's Model search in a way that yields a witness.
func TestBackboneUnsatMarkerClauseHasEmptyBackbone(t *testing.T) {
	f := cnf.New()
	f.Push(cnf.UnsatClause())

	b := NewBackbone(solver.NewMock(), time.Second)
	if _, ok := b.Compute(context.Background(), f); ok {
		t.Fatalf("Compute ok = true on a formula carrying the unsat marker")
	}
}

// A timeout (ForceUnknown) must be handled conservatively: Compute
// never claims a literal is backbone on indeterminate evidence.
func TestBackboneForceUnknownYieldsNoBackbone(t *testing.T) {
	f := cnf.New()
	f.Push(cnf.NewClause(1, 2))

	b := NewBackbone(&solver.Mock{ForceUnknown: true}, time.Second)
	if _, ok := b.Compute(context.Background(), f); ok {
		t.Fatalf("Compute ok = true despite ForceUnknown")
	}
}
