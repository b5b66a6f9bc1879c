package cnf

// RenameStep is one entry of the compression log: a record of a
// variable rename (OriginalVar -> NewVar, preserving polarity unless
// Sign is false) or, when NewVar is 0, a record that OriginalVar was
// determined to Sign and removed from the formula entirely
// (SetLiteralBackpropagated). The log is an ordered, append-only
// rewrite stream: forward translation folds left over it, backward
// translation folds right, per spec.md §9.
type RenameStep struct {
	OriginalVar int32
	NewVar      int32
	Sign        bool
}

// isBackprop reports whether this step records a removed variable
// rather than a rename.
func (s RenameStep) isBackprop() bool { return s.NewVar == 0 }

// CompressLiteral translates a literal in original coordinates into
// the current (possibly compressed) coordinate system by folding the
// compression log left-to-right. Literals on variables that were
// backpropagated out of the formula have no valid translation; 0 is
// returned for those.
func (f *CNF) CompressLiteral(l Literal) Literal {
	cur := l
	for _, step := range f.compressionLog {
		if step.isBackprop() {
			if cur.Var() == step.OriginalVar {
				return 0
			}
			continue
		}
		if cur.Var() == step.OriginalVar {
			cur = rewrite(cur, step.NewVar, step.Sign)
		}
	}
	return cur
}

// DecompressLiteral translates a literal in current coordinates back
// into original coordinates by folding the compression log
// right-to-left.
func (f *CNF) DecompressLiteral(l Literal) Literal {
	cur := l
	for i := len(f.compressionLog) - 1; i >= 0; i-- {
		step := f.compressionLog[i]
		if step.isBackprop() {
			continue
		}
		if cur.Var() == step.NewVar {
			cur = rewrite(cur, step.OriginalVar, step.Sign)
		}
	}
	return cur
}

// rewrite maps a literal onto a new variable, flipping polarity unless
// preserveSign is true.
func rewrite(l Literal, newVar int32, preserveSign bool) Literal {
	positive := l.Sign()
	if !preserveSign {
		positive = !positive
	}
	return LiteralOf(newVar, positive)
}

// CompressModel translates a whole assignment from original to
// current coordinates, dropping variables that no longer exist in the
// compressed formula.
func (f *CNF) CompressModel(m *Model) *Model {
	out := NewModel()
	for _, v := range m.Variables() {
		val, _ := m.Get(v)
		lit := LiteralOf(v, val)
		translated := f.CompressLiteral(lit)
		if translated == 0 {
			continue
		}
		out.SetLiteral(translated)
	}
	return out
}

// DecompressModel translates a whole assignment from current
// coordinates back to the original ones, extending every variable
// that was backpropagated out of the formula to the truth value the
// log recorded for it at elimination time.
func (f *CNF) DecompressModel(m *Model) *Model {
	cur := m.Clone()
	for i := len(f.compressionLog) - 1; i >= 0; i-- {
		step := f.compressionLog[i]
		if step.isBackprop() {
			cur.Set(step.OriginalVar, step.Sign)
			continue
		}
		if val, ok := cur.Get(step.NewVar); ok {
			original := val
			if !step.Sign {
				original = !val
			}
			cur.Set(step.OriginalVar, original)
		}
	}
	return cur
}

// SetLiteralBackpropagated records that literal l has been determined
// (its variable is forced to l's polarity), removes every clause it
// satisfies, strips its negation from the rest, and logs the
// elimination so later decompression can restore it.
func (f *CNF) SetLiteralBackpropagated(l Literal) {
	f.ApplyUnit(l)
	f.compressionLog = append(f.compressionLog, RenameStep{
		OriginalVar: l.Var(),
		NewVar:      0,
		Sign:        l.Sign(),
	})
	f.SetDirtyBitsTrue()
}

// ApplyUnit is the raw mutation the bcp package's application forms
// use directly, without touching the compression log: remove every
// clause satisfied by l, strip ¬l from the remaining ones.
func (f *CNF) ApplyUnit(l Literal) {
	neg := l.Negate()
	i := 0
	for i < len(f.Clauses) {
		c := f.Clauses[i]
		if c.Contains(l) {
			f.Erase(i)
			continue
		}
		if c.Contains(neg) {
			f.DeregisterWatch(c)
			c.SetLiteral(l)
			if c.Len() >= 2 {
				f.RegisterWatch(c)
			}
			f.SetDirtyBitsTrue()
		}
		i++
	}
}
