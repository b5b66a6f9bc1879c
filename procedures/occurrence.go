package procedures

import (
	"context"
	"sort"

	"github.com/xDarkicex/preppy/bcp"
	"github.com/xDarkicex/preppy/cnf"
	"github.com/xDarkicex/preppy/core"
)

// OccurrenceSimplification removes literals whose negation is
// BCP-entailed by the rest of the formula, walking literals in
// descending appearance order (spec.md §4.5).
type OccurrenceSimplification struct{}

func (o *OccurrenceSimplification) Name() string                 { return "OccurrenceSimplification" }
func (o *OccurrenceSimplification) Level() core.EquivalenceLevel { return core.Equivalent }

func (o *OccurrenceSimplification) Run(ctx context.Context, f *cnf.CNF) (bool, error) {
	collapseTautologies(f)
	for _, l := range literalsByDescendingOccurrence(f) {
		applyLiteralStep(f, l)
	}
	dropEmptyClauses(f)
	return true, nil
}

// collapseTautologies vacates any clause carrying both a literal and
// its negation (spec.md §3: construction never rejects these, only a
// procedure does). Vacated clauses are swept up by dropEmptyClauses.
func collapseTautologies(f *cnf.CNF) {
	for _, c := range f.Clauses {
		if c.IsUnsat() || c.IsSatisfied() {
			continue
		}
		for _, l := range c.Lits {
			if c.Contains(l.Negate()) {
				f.DeregisterWatch(c)
				c.Lits = nil
				f.SetDirtyBitsTrue()
				break
			}
		}
	}
}

// literalsByDescendingOccurrence orders every literal currently
// appearing in f by how many clauses contain it, most frequent first;
// ties keep first-seen order.
func literalsByDescendingOccurrence(f *cnf.CNF) []cnf.Literal {
	count := make(map[cnf.Literal]int)
	var order []cnf.Literal
	for _, c := range f.Clauses {
		for _, l := range c.Lits {
			if l == 0 {
				continue
			}
			if _, seen := count[l]; !seen {
				order = append(order, l)
			}
			count[l]++
		}
	}
	sort.SliceStable(order, func(i, j int) bool {
		return count[order[i]] > count[order[j]]
	})
	return order
}

// applyLiteralStep walks every clause containing l (length ≥ 2) and
// deletes l from it whenever F ∪ {complement(c \ {l})} ∪ {l} is
// BCP-contradictory — i.e. l is redundant in that clause.
func applyLiteralStep(f *cnf.CNF, l cnf.Literal) {
	for _, c := range append([]*cnf.Clause(nil), f.Clauses...) {
		if c.Len() < 2 || !c.Contains(l) {
			continue
		}
		assumptions := make([]cnf.Literal, 0, c.Len())
		for _, x := range c.Lits {
			if x != l {
				assumptions = append(assumptions, x.Negate())
			}
		}
		assumptions = append(assumptions, l)

		if !bcp.IsConflict(bcp.Closure(f, assumptions...)) {
			continue
		}

		f.DeregisterWatch(c)
		removeLiteral(c, l)
		if c.Len() >= 2 {
			f.RegisterWatch(c)
		}
		f.SetDirtyBitsTrue()
	}
}

func removeLiteral(c *cnf.Clause, l cnf.Literal) {
	for i, x := range c.Lits {
		if x == l {
			c.Lits = append(c.Lits[:i:i], c.Lits[i+1:]...)
			return
		}
	}
}

// dropEmptyClauses erases every clause that has collapsed to the
// satisfied-and-vacated marker.
func dropEmptyClauses(f *cnf.CNF) {
	i := 0
	for i < f.Size() {
		if f.Clauses[i].IsSatisfied() {
			f.Erase(i)
			continue
		}
		i++
	}
}
