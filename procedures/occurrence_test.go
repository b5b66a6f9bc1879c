package procedures

import (
	"context"
	"testing"

	"github.com/xDarkicex/preppy/cnf"
)

// F = (1 2)(-1 2): every model of this formula has 2=true, so literal
// 1 in the first clause is redundant once the second clause is taken
// into account (the two clauses together resolve to 2). The first
// clause collapses to the unit {2}; with that unit in F, literal -1 is
// then redundant in the second clause, which collapses to {2} as well.
func TestOccurrenceSimplificationRemovesEntailedLiteral(t *testing.T) {
	f := cnf.New()
	f.Push(cnf.NewClause(1, 2))
	f.Push(cnf.NewClause(-1, 2))

	o := &OccurrenceSimplification{}
	if _, err := Apply(context.Background(), o, f); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if f.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", f.Size())
	}

	units := 0
	for _, c := range f.Clauses {
		if c.IsUnit() && c.Lits[0] == cnf.Literal(2) {
			units++
		}
	}
	if units == 0 {
		t.Errorf("expected a unit clause {2}, got %v", dumpClauses(f))
	}
	if units != 2 {
		t.Errorf("expected (-1 2) to collapse to the unit {2} as well, got %v", dumpClauses(f))
	}
}

// A clause carrying both a literal and its negation is a tautology:
// it is always satisfied and must be swept away entirely.
func TestOccurrenceSimplificationCollapsesTautology(t *testing.T) {
	f := cnf.New()
	f.Push(cnf.NewClause(1, -1, 2))
	f.Push(cnf.NewClause(3, 4))

	o := &OccurrenceSimplification{}
	if _, err := Apply(context.Background(), o, f); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if f.Size() != 1 {
		t.Fatalf("Size() = %d, want 1 after the tautology is dropped: %v", f.Size(), dumpClauses(f))
	}
}

// A formula already carrying the unsat marker is untouched by
// Occurrence Simplification: no literal step applies to it, and it is
// not a satisfied clause to be dropped.
func TestOccurrenceSimplificationPreservesUnsatMarker(t *testing.T) {
	f := cnf.New()
	f.Push(cnf.UnsatClause())

	o := &OccurrenceSimplification{}
	if _, err := Apply(context.Background(), o, f); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if f.Size() != 1 || !f.Clauses[0].IsUnsat() {
		t.Fatalf("expected the unsat marker clause to survive untouched, got %v", dumpClauses(f))
	}
}

func dumpClauses(f *cnf.CNF) [][]cnf.Literal {
	out := make([][]cnf.Literal, len(f.Clauses))
	for i, c := range f.Clauses {
		out[i] = c.Lits
	}
	return out
}
