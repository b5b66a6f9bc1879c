package procedures

import (
	"context"
	"errors"

	"github.com/xDarkicex/preppy/cnf"
	"github.com/xDarkicex/preppy/core"
)

// Manager composes a one-shot phase and an iterative, fixed-point
// phase, per spec.md §4.7.
type Manager struct {
	// OneShot procedures run exactly once, in order.
	OneShot []Procedure
	// Iterative procedures run together, round after round, until
	// progress drops to the configured floor or Iterations is reached.
	Iterative []Procedure

	// Iterations bounds the iterative phase. Zero means use the
	// spec.md §6 CLI default of 10.
	Iterations int
	// MinClauseReduction and MinLiteralReduction are the fixed-point
	// floor: a round whose clause and literal reduction both fall at or
	// below these values ends the iterative phase. Zero means any
	// reduction, however small, still counts as progress.
	MinClauseReduction  int
	MinLiteralReduction int
}

// NewManager returns a Manager with the spec's default iteration bound
// and reduction floor.
func NewManager() *Manager {
	return &Manager{Iterations: 10, MinClauseReduction: 1, MinLiteralReduction: 1}
}

// Apply runs the one-shot phase, then the iterative phase to a fixed
// point or the iteration cap, whichever comes first.
func (m *Manager) Apply(ctx context.Context, f *cnf.CNF) error {
	for _, p := range m.OneShot {
		if err := applyStep(ctx, p, f); err != nil {
			return err
		}
	}

	iterations := m.Iterations
	if iterations <= 0 {
		iterations = 10
	}

	for round := 0; round < iterations; round++ {
		clausesBefore, literalsBefore := counts(f)

		for _, p := range m.Iterative {
			if err := applyStep(ctx, p, f); err != nil {
				return err
			}
		}

		clausesAfter, literalsAfter := counts(f)
		clauseReduction := clausesBefore - clausesAfter
		literalReduction := literalsBefore - literalsAfter
		if clauseReduction <= m.MinClauseReduction && literalReduction <= m.MinLiteralReduction {
			break
		}
	}
	return nil
}

// applyStep runs p through the shared template and interprets its
// error, if any: a soft (non-fatal) *core.Error is swallowed so the
// manager continues; it is not logged. Anything else aborts the run.
func applyStep(ctx context.Context, p Procedure, f *cnf.CNF) error {
	_, err := Apply(ctx, p, f)
	if err == nil {
		return nil
	}
	var ce *core.Error
	if errors.As(err, &ce) && !ce.Fatal() {
		return nil
	}
	return err
}

func counts(f *cnf.CNF) (clauses, literals int) {
	clauses = f.Size()
	for _, c := range f.Clauses {
		literals += c.Len()
	}
	return
}
