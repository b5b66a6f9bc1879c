package procedures

import (
	"context"
	"sort"
	"time"

	"github.com/xDarkicex/preppy/cnf"
	"github.com/xDarkicex/preppy/core"
	"github.com/xDarkicex/preppy/solver"
)

// defaultMaxResolutionBudget bounds the clause growth a single
// variable's resolution step is allowed to cause; lifted verbatim from
// the original implementation (spec.md §9) and exposed as a tunable.
const defaultMaxResolutionBudget = 500

// BipartitionElimination splits variables into an input set (free) and
// an output set (functionally determined by the input set), then
// existentially eliminates the output set by resolution (spec.md
// §4.6). It degrades equivalence to NumberEquivalent: the projected
// model count survives, individual models do not map back 1:1.
type BipartitionElimination struct {
	Solver  solver.Solver
	Timeout time.Duration
	// MaxResolutionBudget caps positive(x)·negative(x) before a
	// variable's elimination is postponed to a later round. Zero means
	// use defaultMaxResolutionBudget.
	MaxResolutionBudget int
}

// NewBipartitionElimination returns a BipartitionElimination procedure
// driven by s, with the default resolution budget.
func NewBipartitionElimination(s solver.Solver, timeout time.Duration) *BipartitionElimination {
	return &BipartitionElimination{Solver: s, Timeout: timeout, MaxResolutionBudget: defaultMaxResolutionBudget}
}

func (b *BipartitionElimination) Name() string                 { return "BipartitionElimination" }
func (b *BipartitionElimination) Level() core.EquivalenceLevel { return core.NumberEquivalent }

func (b *BipartitionElimination) Run(ctx context.Context, f *cnf.CNF) (bool, error) {
	budget := b.MaxResolutionBudget
	if budget <= 0 {
		budget = defaultMaxResolutionBudget
	}

	output := b.bipartition(ctx, f)

	queue := make([]int32, 0, len(output))
	for v := range output {
		queue = append(queue, v)
	}
	eliminate(ctx, f, queue, budget)
	return true, nil
}

// bipartition works on a private clone of f (the live formula is only
// touched by the elimination phase) and returns the set of output
// variables.
func (b *BipartitionElimination) bipartition(ctx context.Context, f *cnf.CNF) map[int32]bool {
	working := f.Clone()

	output := make(map[int32]bool)
	backbone := NewBackbone(b.Solver, b.Timeout)
	if literals, ok := backbone.Compute(ctx, working); ok {
		for _, l := range literals {
			output[l.Var()] = true
		}
	}

	used := make(map[int32]bool)
	for _, c := range working.Clauses {
		for _, l := range c.Lits {
			if l != 0 {
				used[l.Var()] = true
			}
		}
	}
	var candidates []int32
	for v := range used {
		if !output[v] {
			candidates = append(candidates, v)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		return occurrenceCount(working, candidates[i]) < occurrenceCount(working, candidates[j])
	})

	input := make(map[int32]bool)
	for i, x := range candidates {
		rest := candidates[i+1:]
		s := make(map[int32]bool, len(input)+len(rest))
		for v := range input {
			s[v] = true
		}
		for _, v := range rest {
			s[v] = true
		}
		if isDefined(ctx, b.Solver, b.Timeout, x, working, s) {
			output[x] = true
		} else {
			input[x] = true
		}
	}
	return output
}

// occurrenceCount counts the clauses of f mentioning variable v, in
// either polarity.
func occurrenceCount(f *cnf.CNF, v int32) int {
	n := 0
	for _, c := range f.Clauses {
		if c.Contains(cnf.LiteralOf(v, true)) || c.Contains(cnf.LiteralOf(v, false)) {
			n++
		}
	}
	return n
}

func posNegCounts(f *cnf.CNF, v int32) (pos, neg int) {
	for _, c := range f.Clauses {
		if c.Contains(cnf.LiteralOf(v, true)) {
			pos++
		}
		if c.Contains(cnf.LiteralOf(v, false)) {
			neg++
		}
	}
	return
}

// isDefined implements spec.md §4.6's definability test: x is defined
// by S iff two renamed copies of f that agree on S but disagree
// everywhere else cannot also disagree on x.
func isDefined(ctx context.Context, s solver.Solver, timeout time.Duration, x int32, f *cnf.CNF, S map[int32]bool) bool {
	if S[x] {
		return true
	}

	next := f.MaxVariable() + 1
	copy1, map1 := renamedCopy(f, S, &next)
	copy2, map2 := renamedCopy(f, S, &next)

	combined := cnf.New()
	combined.Join(copy1)
	combined.Join(copy2)
	combined.Push(cnf.NewClause(cnf.LiteralOf(map1[x], true)))
	combined.Push(cnf.NewClause(cnf.LiteralOf(map2[x], false)))

	return s.Solve(ctx, combined, timeout) == solver.Unsat
}

// renamedCopy copies f, keeping every variable in S fixed and mapping
// every other variable to a fresh identifier drawn from *next. The
// returned map records original→fresh for variables not in S.
func renamedCopy(f *cnf.CNF, S map[int32]bool, next *int32) (*cnf.CNF, map[int32]int32) {
	mapping := make(map[int32]int32)
	out := cnf.New()
	out.Reserve(f.Size())
	for _, c := range f.Clauses {
		lits := make([]cnf.Literal, len(c.Lits))
		for i, l := range c.Lits {
			if l == 0 {
				lits[i] = 0
				continue
			}
			v := l.Var()
			var nv int32
			switch {
			case S[v]:
				nv = v
			default:
				mapped, ok := mapping[v]
				if !ok {
					mapped = *next
					*next++
					mapping[v] = mapped
				}
				nv = mapped
			}
			lits[i] = cnf.LiteralOf(nv, l.Sign())
		}
		out.Push(&cnf.Clause{Lits: lits})
	}
	return out, mapping
}

// eliminate repeatedly vivifies f, picks the output variable with the
// smallest positive·negative occurrence product, strips redundant
// occurrences of it via OccurrenceSimplification's per-literal step,
// and resolves it out unless doing so would exceed budget (in which
// case it is postponed to a later round). Rounds are capped to avoid
// spinning forever on a variable that never drops below budget.
func eliminate(ctx context.Context, f *cnf.CNF, queue []int32, budget int) {
	vivify := &Vivification{}
	maxRounds := (len(queue)+1)*(len(queue)+1) + 16

	for round := 0; len(queue) > 0 && round < maxRounds; round++ {
		vivify.Run(ctx, f)

		sort.Slice(queue, func(i, j int) bool {
			pi, ni := posNegCounts(f, queue[i])
			pj, nj := posNegCounts(f, queue[j])
			return pi*ni < pj*nj
		})

		x := queue[0]
		queue = queue[1:]

		applyLiteralStep(f, cnf.LiteralOf(x, true))
		applyLiteralStep(f, cnf.LiteralOf(x, false))

		pos, neg := posNegCounts(f, x)
		if pos*neg > budget {
			queue = append(queue, x)
			continue
		}
		resolveOutVariable(f, x)
	}
}

// resolveOutVariable replaces every clause containing ±x with the set
// of non-tautological resolvents on x.
func resolveOutVariable(f *cnf.CNF, x int32) {
	posLit := cnf.LiteralOf(x, true)
	negLit := cnf.LiteralOf(x, false)

	var others, pos, neg []*cnf.Clause
	for _, c := range f.Clauses {
		switch {
		case c.Contains(posLit):
			pos = append(pos, c)
		case c.Contains(negLit):
			neg = append(neg, c)
		default:
			others = append(others, c)
		}
	}

	var resolvents []*cnf.Clause
	for _, p := range pos {
		for _, n := range neg {
			r := p.Resolve(n, x)
			if r.IsSatisfied() {
				continue
			}
			resolvents = append(resolvents, r)
		}
	}

	f.Clear()
	f.Reserve(len(others) + len(resolvents))
	for _, c := range others {
		f.Push(c)
	}
	for _, c := range resolvents {
		f.Push(c)
	}
}
