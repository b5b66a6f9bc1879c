// Package bcp implements the two-watched-literal unit propagation
// kernel described in spec.md §4.2. It is the reasoning primitive
// ("what must also hold if I assume these literals?") several
// procedures in package procedures build on.
package bcp

import "github.com/xDarkicex/preppy/cnf"

// Conflict is the sentinel closure value reported when propagation
// derives a contradiction: a single literal 0, matching cnf's
// unsatisfiable marker convention.
var Conflict = []cnf.Literal{0}

// IsConflict reports whether a closure result signals unsatisfiability.
func IsConflict(closure []cnf.Literal) bool {
	return len(closure) == 1 && closure[0] == 0
}

// unitSet accumulates the literals found so far, rejecting
// simultaneous assignment of a literal and its negation.
type unitSet struct {
	order []cnf.Literal
	in    map[cnf.Literal]bool
}

func newUnitSet() *unitSet {
	return &unitSet{in: make(map[cnf.Literal]bool)}
}

// add returns false if l contradicts an existing member.
func (s *unitSet) add(l cnf.Literal) bool {
	if s.in[l] {
		return true
	}
	if s.in[l.Negate()] {
		return false
	}
	s.in[l] = true
	s.order = append(s.order, l)
	return true
}

// Closure computes the closure, under unit propagation, of the unit
// clauses already present in f together with any additional literals
// in assume. It returns Conflict ({0}) if a contradiction is derived,
// otherwise the accumulated set of forced literals in discovery order.
//
// Algorithm per spec.md §4.2: seed with every unit clause (and the
// caller's assumptions), then for each newly added literal l, examine
// every clause currently watching ¬l. A clause already satisfied by
// some member of the set is skipped; a clause whose residual under the
// set is the unsat marker signals an immediate conflict; a residual of
// length one yields a new forced literal; otherwise the clause is
// rewatched on one of its still-live literals.
func Closure(f *cnf.CNF, assume ...cnf.Literal) []cnf.Literal {
	units := newUnitSet()

	for _, l := range assume {
		if !units.add(l) {
			return Conflict
		}
	}
	for _, c := range f.Clauses {
		if c.IsUnsat() {
			return Conflict
		}
		if c.IsUnit() {
			if !units.add(c.Lits[0]) {
				return Conflict
			}
		}
	}

	for i := 0; i < len(units.order); i++ {
		negl := units.order[i].Negate()
		for _, c := range f.WatchesOf(negl) {
			residual := c.GetPartialClause(units.order)
			switch {
			case residual.IsUnsat():
				return Conflict
			case residual.IsSatisfied():
				continue
			case residual.IsUnit():
				if !units.add(residual.Lits[0]) {
					return Conflict
				}
			default:
				rewatch(f, c, negl, residual)
			}
		}
	}

	return units.order
}

// rewatch replaces c's watch on the falsified literal negl with one of
// the literals still live in its residual, preferring one distinct
// from c's other current anchor.
func rewatch(f *cnf.CNF, c *cnf.Clause, negl cnf.Literal, residual *cnf.Clause) {
	anchors := f.AnchorsOf(c)
	other := anchors[0]
	if other == negl {
		other = anchors[1]
	}
	newWatch := residual.Lits[0]
	for _, cand := range residual.Lits {
		if cand != other {
			newWatch = cand
			break
		}
	}
	f.Rewatch(c, negl, newWatch)
}

// ApplySingleLiteral removes every clause satisfied by l and strips ¬l
// from the remaining clauses, marking f dirty.
func ApplySingleLiteral(f *cnf.CNF, l cnf.Literal) {
	f.ApplyUnit(l)
}

// ApplyLiterals composes ApplySingleLiteral over every literal in ls.
func ApplyLiterals(f *cnf.CNF, ls []cnf.Literal) {
	for _, l := range ls {
		ApplySingleLiteral(f, l)
	}
}

// ApplyLiteralsEq behaves like ApplyLiterals but also appends an
// explicit unit clause {l} for every l, so the model set does not
// lose information about l's determined value (spec.md §4.2).
func ApplyLiteralsEq(f *cnf.CNF, ls []cnf.Literal) {
	for _, l := range ls {
		ApplySingleLiteral(f, l)
		f.Push(cnf.NewClause(l))
	}
}
