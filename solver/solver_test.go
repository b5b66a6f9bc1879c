package solver

import "testing"

func TestVerdictString(t *testing.T) {
	cases := map[Verdict]string{Sat: "SAT", Unsat: "UNSAT", Unknown: "UNKNOWN"}
	for v, want := range cases {
		if got := v.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", v, got, want)
		}
	}
}
