package procedures

import (
	"context"

	"github.com/xDarkicex/preppy/bcp"
	"github.com/xDarkicex/preppy/cnf"
	"github.com/xDarkicex/preppy/core"
)

// Vivification shortens clauses by dropping literals whose removal
// still leaves the clause entailed by the rest of the formula under
// BCP (spec.md §4.4). It never increases clause or literal count.
type Vivification struct{}

func (v *Vivification) Name() string                 { return "Vivification" }
func (v *Vivification) Level() core.EquivalenceLevel { return core.Equivalent }

// Run rebuilds f clause by clause: each clause is vivified against the
// still-unprocessed originals plus the already-committed replacements,
// then either committed (possibly shortened) or discarded as subsumed.
func (v *Vivification) Run(ctx context.Context, f *cnf.CNF) (bool, error) {
	remaining := append([]*cnf.Clause(nil), f.Clauses...)
	committed := make([]*cnf.Clause, 0, len(remaining))

	for len(remaining) > 0 {
		c := remaining[0]
		remaining = remaining[1:]

		g := workingCopy(remaining, committed)
		newClause, keep := vivifyClause(g, c)
		if keep {
			committed = append(committed, newClause)
		}
	}

	f.Clear()
	f.Reserve(len(committed))
	for _, c := range committed {
		f.Push(c)
	}
	return true, nil
}

func workingCopy(groups ...[]*cnf.Clause) *cnf.CNF {
	g := cnf.New()
	for _, group := range groups {
		g.Reserve(len(group))
		for _, c := range group {
			g.Push(c.Clone())
		}
	}
	return g
}

// vivifyClause applies spec.md §4.4's per-clause loop against the
// fixed context g. keep is false when c turned out to be subsumed by
// g and should be dropped entirely.
func vivifyClause(g *cnf.CNF, c *cnf.Clause) (*cnf.Clause, bool) {
	if c.IsUnsat() || c.IsSatisfied() {
		return c.Clone(), true
	}

	closureG := bcp.Closure(g)
	remaining := append([]cnf.Literal(nil), c.Lits...)
	var newLits []cnf.Literal

	for len(remaining) > 0 {
		idx := -1
		for i, l := range remaining {
			if !containsLiteral(closureG, l.Negate()) {
				idx = i
				break
			}
		}
		if idx == -1 {
			break
		}
		l := remaining[idx]
		remaining = append(remaining[:idx:idx], remaining[idx+1:]...)
		newLits = append(newLits, l)

		negated := make([]cnf.Literal, len(newLits))
		for i, x := range newLits {
			negated[i] = x.Negate()
		}
		if bcp.IsConflict(bcp.Closure(g, negated...)) {
			return nil, false
		}
	}

	if len(newLits) == 0 {
		// Every literal of c had its negation in closureG before any of
		// c's own literals were committed: G alone (the rest of the
		// formula) already forces all of c false. That is not "c is
		// satisfied and vacated" — it is a genuine contradiction, G ∧ c
		// is unsatisfiable — so it must surface as the unsat marker, not
		// the satisfied one.
		return cnf.UnsatClause(), true
	}
	return cnf.NewClause(newLits...), true
}

func containsLiteral(lits []cnf.Literal, l cnf.Literal) bool {
	for _, x := range lits {
		if x == l {
			return true
		}
	}
	return false
}
