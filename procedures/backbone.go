package procedures

import (
	"context"
	"time"

	"github.com/xDarkicex/preppy/bcp"
	"github.com/xDarkicex/preppy/cnf"
	"github.com/xDarkicex/preppy/core"
	"github.com/xDarkicex/preppy/solver"
)

// Backbone computes the set of literals forced to true in every model
// of a formula and propagates them (spec.md §4.3).
type Backbone struct {
	Solver  solver.Solver
	Timeout time.Duration
}

// NewBackbone returns a Backbone procedure driven by s, each solver
// call bounded by timeout.
func NewBackbone(s solver.Solver, timeout time.Duration) *Backbone {
	return &Backbone{Solver: s, Timeout: timeout}
}

func (b *Backbone) Name() string                 { return "BackboneSimplification" }
func (b *Backbone) Level() core.EquivalenceLevel { return core.Equivalent }

// Run computes f's backbone and applies it via BCP, preserving model
// information with a unit clause per literal (bcp.ApplyLiteralsEq).
func (b *Backbone) Run(ctx context.Context, f *cnf.CNF) (bool, error) {
	literals, ok := b.Compute(ctx, f)
	if !ok {
		return true, nil
	}
	bcp.ApplyLiteralsEq(f, literals)
	return true, nil
}

// Compute returns f's backbone literals without mutating f. Literals f
// already holds as unit clauses are absorbed and not reported. ok is
// false when the solver found no model of f (an unsatisfiable or
// indeterminate formula has, by convention, an empty backbone).
func (b *Backbone) Compute(ctx context.Context, f *cnf.CNF) (literals []cnf.Literal, ok bool) {
	model, found := b.Solver.Model(ctx, f, b.Timeout)
	if !found {
		return nil, false
	}

	units := make(map[cnf.Literal]bool)
	for _, c := range f.Clauses {
		if c.IsUnit() {
			units[c.Lits[0]] = true
		}
	}

	remaining := make([]cnf.Literal, 0, len(model.Variables()))
	for _, v := range model.Variables() {
		lit, present := model.Literal(v)
		if present && !units[lit] {
			remaining = append(remaining, lit)
		}
	}

	var backbone []cnf.Literal
	for len(remaining) > 0 {
		l := remaining[0]
		rest := remaining[1:]

		probe := f.Clone()
		probe.Push(cnf.NewClause(l.Negate()))

		switch b.Solver.Solve(ctx, probe, b.Timeout) {
		case solver.Unsat:
			backbone = append(backbone, l)
			remaining = rest
		case solver.Sat:
			var kept []cnf.Literal
			if mPrime, got := b.Solver.Model(ctx, probe, b.Timeout); got {
				for _, x := range rest {
					if mPrime.Satisfies(x) {
						kept = append(kept, x)
					}
				}
			}
			remaining = kept
		default:
			// Timeout on the SAT-vs-UNSAT probe: conservatively treat l
			// as not proven backbone and drop it, leaving the rest of
			// the candidate set untouched (spec.md §4.3).
			remaining = rest
		}
	}
	return backbone, true
}
