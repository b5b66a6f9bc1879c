package cnf

import "testing"

func clauses(lits ...[]Literal) []*Clause {
	out := make([]*Clause, len(lits))
	for i, l := range lits {
		out[i] = NewClause(l...)
	}
	return out
}

func TestPushRegistersWatchesForLongClauses(t *testing.T) {
	f := New()
	c := NewClause(1, 2, 3)
	f.Push(c)

	anchors := f.AnchorsOf(c)
	if anchors[0] == 0 || anchors[1] == 0 {
		t.Fatalf("clause of length 3 should be watched on two anchors, got %v", anchors)
	}
	if len(f.WatchesOf(anchors[0])) != 1 || len(f.WatchesOf(anchors[1])) != 1 {
		t.Fatalf("clause not found in its own watch lists")
	}
}

func TestPushDoesNotWatchShortClauses(t *testing.T) {
	f := New()
	unit := NewClause(1)
	f.Push(unit)
	if anchors := f.AnchorsOf(unit); anchors != ([2]Literal{}) {
		t.Fatalf("unit clause should not be watched, got anchors %v", anchors)
	}
}

func TestEraseDeregistersWatches(t *testing.T) {
	f := New()
	c := NewClause(1, 2)
	f.Push(c)
	f.Erase(0)

	if f.Size() != 0 {
		t.Fatalf("Size() = %d after erasing the only clause, want 0", f.Size())
	}
	if len(f.WatchesOf(1)) != 0 {
		t.Fatalf("literal 1 still has watchers after its clause was erased")
	}
}

func TestVariablesAndMaxVariableLazyRecompute(t *testing.T) {
	f := FromClauses(clauses([]Literal{1, 5}, []Literal{-3}))
	if got := f.MaxVariable(); got != 5 {
		t.Fatalf("MaxVariable() = %d, want 5", got)
	}
	if got := f.Variables(); got != 3 {
		t.Fatalf("Variables() = %d, want 3 (distinct vars 1, 5, 3)", got)
	}
}

func TestCompressProducesDenseNumbering(t *testing.T) {
	f := FromClauses(clauses([]Literal{1, 5}, []Literal{-5, 9}))
	f.Compress()

	if f.Variables() != f.MaxVariable() {
		t.Fatalf("after Compress(), Variables()=%d != MaxVariable()=%d", f.Variables(), f.MaxVariable())
	}
	if f.MaxVariable() != 3 {
		t.Fatalf("MaxVariable() after compressing {1,5,9} = %d, want 3", f.MaxVariable())
	}
}

func TestCompressLiteralRoundTrip(t *testing.T) {
	f := FromClauses(clauses([]Literal{1, 5}, []Literal{-5, 9}))
	f.Compress()

	originals := []Literal{1, -5, 9}
	for _, l := range originals {
		compressed := f.CompressLiteral(l)
		if got := f.DecompressLiteral(compressed); got != l {
			t.Fatalf("DecompressLiteral(CompressLiteral(%d)) = %d, want %d", l, got, l)
		}
	}
}

func TestJoinClonesClauses(t *testing.T) {
	a := FromClauses(clauses([]Literal{1, 2}))
	b := FromClauses(clauses([]Literal{3, 4}))
	a.Join(b)

	if a.Size() != 2 {
		t.Fatalf("Size() after Join = %d, want 2", a.Size())
	}
	a.Clauses[1].Lits[0] = 99
	if b.Clauses[0].Lits[0] == 99 {
		t.Fatalf("Join shared clause storage with the source formula")
	}
}

func TestCloneDeepCopiesProvenanceApplied(t *testing.T) {
	f := New()
	f.Provenance.Applied = append(f.Provenance.Applied, "Vivification")

	clone := f.Clone()
	clone.Provenance.Applied = append(clone.Provenance.Applied, "OccurrenceSimplification")

	if len(f.Provenance.Applied) != 1 {
		t.Fatalf("mutating the clone's Applied list leaked into the original: %v", f.Provenance.Applied)
	}
}

func TestRenameUpdatesWatchedClauses(t *testing.T) {
	f := New()
	c := NewClause(1, 2)
	f.Push(c)
	f.Rename(1, 7)

	if !c.Contains(7) {
		t.Fatalf("Rename(1, 7) did not retarget the clause: %v", c.Lits)
	}
	if len(f.WatchesOf(7)) != 1 {
		t.Fatalf("renamed clause not re-registered under its new literal")
	}
	if len(f.WatchesOf(1)) != 0 {
		t.Fatalf("renamed clause still registered under its old literal")
	}
}
