package solver

import (
	"context"
	"time"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"

	"github.com/xDarkicex/preppy/cnf"
)

// Gini is the default, in-process Solver backend. It is built on
// github.com/go-air/gini, the same CDCL engine
// operator-framework-operator-lifecycle-manager embeds for its
// dependency resolver (see DESIGN.md). Because gini's Solve call is
// not natively cancellable, the timeout is enforced by racing the
// call on a worker goroutine against a timer; on timeout the goroutine
// is abandoned and Unknown is reported, per spec.md §5/§7.
type Gini struct{}

// NewGini returns the in-process gini-backed solver.
func NewGini() *Gini { return &Gini{} }

func (g *Gini) Name() string { return "gini" }

func load(f *cnf.CNF) *gini.Gini {
	g := gini.New()
	for _, c := range f.Clauses {
		if c.IsSatisfied() {
			// Satisfied-and-vacated: no literals to add. Skip it rather
			// than emitting a bare g.Add(0), which gini reads as an
			// empty clause and therefore UNSAT.
			continue
		}
		if c.IsUnsat() {
			// An explicit contradiction: encode as a clause and its
			// negation so gini reports UNSAT rather than silently
			// treating an empty Add() sequence as a tautology.
			g.Add(z.Dimacs2Lit(1))
			g.Add(0)
			g.Add(z.Dimacs2Lit(-1))
			g.Add(0)
			continue
		}
		for _, l := range c.Lits {
			g.Add(z.Dimacs2Lit(int(l)))
		}
		g.Add(0)
	}
	return g
}

func (s *Gini) Solve(ctx context.Context, f *cnf.CNF, timeout time.Duration) Verdict {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	g := load(f)
	done := make(chan int, 1)
	go func() { done <- g.Solve() }()

	select {
	case <-ctx.Done():
		return Unknown
	case outcome := <-done:
		return verdictOf(outcome)
	}
}

func (s *Gini) Model(ctx context.Context, f *cnf.CNF, timeout time.Duration) (*cnf.Model, bool) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	g := load(f)
	done := make(chan int, 1)
	go func() { done <- g.Solve() }()

	select {
	case <-ctx.Done():
		return nil, false
	case outcome := <-done:
		if outcome != 1 {
			return nil, false
		}
		m := cnf.NewModel()
		for v := int32(1); v <= f.MaxVariable(); v++ {
			m.Set(v, g.Value(z.Dimacs2Lit(int(v))))
		}
		return m, true
	}
}

func verdictOf(outcome int) Verdict {
	switch outcome {
	case 1:
		return Sat
	case -1:
		return Unsat
	default:
		return Unknown
	}
}
