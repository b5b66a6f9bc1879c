package cnf

import (
	"slices"

	"github.com/xDarkicex/preppy/core"
)

// CNF owns a sequence of clauses and the bookkeeping that keeps them
// consistent: a lazily-recomputed variable count and max variable, the reversible
// compression log, the watched-literal index, and a provenance
// record. It is the formula store described in spec.md §3/§4.1.
//
// CNF is not safe for concurrent use; the core is single-threaded
// cooperative (spec.md §5).
type CNF struct {
	Clauses []*Clause

	varCount    int32
	maxVar      int32
	countsValid bool

	compressionLog []RenameStep

	watch   map[Literal]map[*Clause]struct{}
	anchors map[*Clause][2]Literal

	nextID int

	Provenance core.Provenance
}

// New returns an empty formula store.
func New() *CNF {
	return &CNF{
		watch:   make(map[Literal]map[*Clause]struct{}),
		anchors: make(map[*Clause][2]Literal),
		nextID:  1,
	}
}

// FromClauses builds a formula store from an initializer list of
// clauses, taking ownership of them.
func FromClauses(clauses []*Clause) *CNF {
	f := New()
	f.Reserve(len(clauses))
	for _, c := range clauses {
		f.Push(c)
	}
	return f
}

// Size returns the number of clauses currently stored.
func (f *CNF) Size() int { return len(f.Clauses) }

// Reserve hints at the number of clauses the store will soon hold.
func (f *CNF) Reserve(n int) {
	if cap(f.Clauses)-len(f.Clauses) >= n {
		return
	}
	grown := make([]*Clause, len(f.Clauses), len(f.Clauses)+n)
	copy(grown, f.Clauses)
	f.Clauses = grown
}

// Push appends a clause, assigning it a fresh ID and registering its
// watches if it has two or more literals.
func (f *CNF) Push(c *Clause) {
	c.ID = f.nextID
	f.nextID++
	f.Clauses = append(f.Clauses, c)
	if c.Len() >= 2 {
		f.RegisterWatch(c)
	}
	f.SetDirtyBitsTrue()
}

// Pop removes and returns the last clause, or nil if the store is
// empty.
func (f *CNF) Pop() *Clause {
	n := len(f.Clauses)
	if n == 0 {
		return nil
	}
	c := f.Clauses[n-1]
	f.DeregisterWatch(c)
	f.Clauses = f.Clauses[:n-1]
	f.SetDirtyBitsTrue()
	return c
}

// Erase removes the clause at position i, preserving the order of the
// rest, and returns it.
func (f *CNF) Erase(i int) *Clause {
	c := f.Clauses[i]
	f.DeregisterWatch(c)
	f.Clauses = append(f.Clauses[:i:i], f.Clauses[i+1:]...)
	f.SetDirtyBitsTrue()
	return c
}

// EraseRange removes clauses [start, end).
func (f *CNF) EraseRange(start, end int) {
	for _, c := range f.Clauses[start:end] {
		f.DeregisterWatch(c)
	}
	f.Clauses = append(f.Clauses[:start:start], f.Clauses[end:]...)
	f.SetDirtyBitsTrue()
}

// Clear removes every clause. Provenance and the compression log are
// untouched: clearing the clause set does not undo history.
func (f *CNF) Clear() {
	f.Clauses = nil
	f.watch = make(map[Literal]map[*Clause]struct{})
	f.anchors = make(map[*Clause][2]Literal)
	f.SetDirtyBitsTrue()
}

// Rename rewrites every occurrence of variable from to variable to
// across every clause, re-registering watches on affected clauses,
// and records the rewrite in the compression log.
func (f *CNF) Rename(from, to int32) {
	for _, c := range f.Clauses {
		if c.MaxVariable() < from && c.MaxVariable() < to {
			continue
		}
		touched := false
		for _, l := range c.Lits {
			if l.Var() == from {
				touched = true
				break
			}
		}
		if !touched {
			continue
		}
		f.DeregisterWatch(c)
		c.Rename(from, to)
		if c.Len() >= 2 {
			f.RegisterWatch(c)
		}
	}
	f.compressionLog = append(f.compressionLog, RenameStep{OriginalVar: from, NewVar: to, Sign: true})
	f.SetDirtyBitsTrue()
}

// Join appends every clause of other onto f, cloning them so the two
// stores never share clause ownership.
func (f *CNF) Join(other *CNF) {
	f.Reserve(other.Size())
	for _, c := range other.Clauses {
		f.Push(c.Clone())
	}
}

// SetDirtyBitsTrue invalidates the cached variable count and max variable.
// Any mutation performed outside of the store's own mutators (e.g. a
// procedure calling Clause.SetLiteral directly on an already-indexed
// clause) must call this explicitly, and must call Reindex on the
// clause it touched.
func (f *CNF) SetDirtyBitsTrue() { f.countsValid = false }

func (f *CNF) recompute() {
	if f.countsValid {
		return
	}
	seen := make(map[int32]struct{})
	var maxVar int32
	for _, c := range f.Clauses {
		for _, l := range c.Lits {
			if l == 0 {
				continue
			}
			v := l.Var()
			seen[v] = struct{}{}
			if v > maxVar {
				maxVar = v
			}
		}
	}
	f.varCount = int32(len(seen))
	f.maxVar = maxVar
	f.countsValid = true
}

// Variables returns the number of distinct variables appearing in the
// formula, recomputed lazily since the last dirtying mutation.
func (f *CNF) Variables() int32 {
	f.recompute()
	return f.varCount
}

// MaxVariable returns the largest variable identifier appearing in the
// formula, recomputed lazily since the last dirtying mutation.
func (f *CNF) MaxVariable() int32 {
	f.recompute()
	return f.maxVar
}

// Compress renumbers variables so that {1..MaxVariable()} is exactly
// the set of variables in use, appending one RenameStep per moved
// variable to the compression log. After Compress, Variables() ==
// MaxVariable() (spec.md §3 invariant).
func (f *CNF) Compress() {
	used := make(map[int32]struct{})
	for _, c := range f.Clauses {
		for _, l := range c.Lits {
			if l != 0 {
				used[l.Var()] = struct{}{}
			}
		}
	}
	sorted := make([]int32, 0, len(used))
	for v := range used {
		sorted = append(sorted, v)
	}
	slices.Sort(sorted)

	for i, v := range sorted {
		target := int32(i + 1)
		if v == target {
			continue
		}
		f.Rename(v, target)
	}
}

// Clone returns a deep copy of f, including its compression log and
// provenance, suitable for the working copies several procedures need
// (e.g. Bipartition's definability test).
func (f *CNF) Clone() *CNF {
	out := New()
	out.nextID = f.nextID
	out.Reserve(f.Size())
	for _, c := range f.Clauses {
		out.Push(c.Clone())
	}
	out.compressionLog = append([]RenameStep(nil), f.compressionLog...)
	out.Provenance = f.Provenance
	out.Provenance.Applied = append([]string(nil), f.Provenance.Applied...)
	return out
}
