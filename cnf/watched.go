package cnf

// RegisterWatch registers c under its first two literals as watch
// anchors. Clauses of length 0 or 1 are never watched (spec.md §3).
// Callers that mutate literals inside an already-registered clause
// must call Reindex, not RegisterWatch directly (it would leave the
// old anchors dangling).
func (f *CNF) RegisterWatch(c *Clause) {
	if c.Len() < 2 {
		return
	}
	a, b := c.Lits[0], c.Lits[1]
	f.addWatch(a, c)
	f.addWatch(b, c)
	f.anchors[c] = [2]Literal{a, b}
}

// DeregisterWatch removes c from whichever two literals it was last
// registered under. It is a no-op if c is not currently watched.
func (f *CNF) DeregisterWatch(c *Clause) {
	anchors, ok := f.anchors[c]
	if !ok {
		return
	}
	f.removeWatch(anchors[0], c)
	f.removeWatch(anchors[1], c)
	delete(f.anchors, c)
}

// Reindex re-registers c's watches against its current literals. A
// procedure that mutates literals inside an already-indexed clause
// (e.g. via Clause.SetLiteral) must call this afterwards.
func (f *CNF) Reindex(c *Clause) {
	f.DeregisterWatch(c)
	if c.Len() >= 2 {
		f.RegisterWatch(c)
	}
}

// WatchesOf returns the clauses currently watching literal l. The
// caller must not retain the returned slice across further store
// mutations.
func (f *CNF) WatchesOf(l Literal) []*Clause {
	set := f.watch[l]
	if len(set) == 0 {
		return nil
	}
	out := make([]*Clause, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	return out
}

// AnchorsOf returns the two literals c is currently watched under.
// The zero value is returned if c is not watched.
func (f *CNF) AnchorsOf(c *Clause) [2]Literal {
	return f.anchors[c]
}

// Rewatch moves c's watch from oldLit to newLit, leaving the other
// anchor untouched. Used by the propagation engine when a clause's
// watched literal is falsified and a replacement is found among its
// remaining literals.
func (f *CNF) Rewatch(c *Clause, oldLit, newLit Literal) {
	anchors, ok := f.anchors[c]
	if !ok {
		return
	}
	idx := 0
	if anchors[1] == oldLit {
		idx = 1
	}
	f.removeWatch(oldLit, c)
	anchors[idx] = newLit
	f.anchors[c] = anchors
	f.addWatch(newLit, c)
}

func (f *CNF) addWatch(l Literal, c *Clause) {
	set, ok := f.watch[l]
	if !ok {
		set = make(map[*Clause]struct{})
		f.watch[l] = set
	}
	set[c] = struct{}{}
}

func (f *CNF) removeWatch(l Literal, c *Clause) {
	set, ok := f.watch[l]
	if !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(f.watch, l)
	}
}
