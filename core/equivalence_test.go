package core

import "testing"

func TestDegradeMovesTowardsUnequivalent(t *testing.T) {
	cases := []struct {
		a, b, want EquivalenceLevel
	}{
		{Equivalent, Equivalent, Equivalent},
		{Equivalent, NumberEquivalent, NumberEquivalent},
		{SatEquivalent, NumberEquivalent, SatEquivalent},
		{Unequivalent, Equivalent, Unequivalent},
	}
	for _, c := range cases {
		if got := Degrade(c.a, c.b); got != c.want {
			t.Errorf("Degrade(%s, %s) = %s, want %s", c.a, c.b, got, c.want)
		}
		if got := Degrade(c.b, c.a); got != c.want {
			t.Errorf("Degrade(%s, %s) = %s, want %s (commuted)", c.b, c.a, got, c.want)
		}
	}
}

func TestSentenceDistinguishesLevels(t *testing.T) {
	seen := make(map[string]bool)
	for _, l := range []EquivalenceLevel{Equivalent, NumberEquivalent, SatEquivalent, Unequivalent} {
		s := l.Sentence()
		if s == "" {
			t.Errorf("%s: empty sentence", l)
		}
		if seen[s] {
			t.Errorf("%s: sentence %q reused by another level", l, s)
		}
		seen[s] = true
	}
}
