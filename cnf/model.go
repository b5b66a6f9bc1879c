package cnf

import (
	"bufio"
	"io"
	"slices"
	"strconv"
	"strings"
)

// Model is a variable→boolean assignment, indexed by variable number
// starting at 1; index 0 is a fixed sentinel and never read. A
// variable absent from the model is unconstrained.
type Model struct {
	values map[int32]bool
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{values: make(map[int32]bool)}
}

// Set records variable v's assignment.
func (m *Model) Set(v int32, value bool) {
	if m.values == nil {
		m.values = make(map[int32]bool)
	}
	m.values[v] = value
}

// SetLiteral records l's variable as assigned to l's polarity.
func (m *Model) SetLiteral(l Literal) { m.Set(l.Var(), l.Sign()) }

// Get returns v's value and whether v is constrained by the model.
func (m *Model) Get(v int32) (bool, bool) {
	val, ok := m.values[v]
	return val, ok
}

// Satisfies reports whether l is made true by the model (false if l's
// variable is unconstrained).
func (m *Model) Satisfies(l Literal) bool {
	v, ok := m.values[l.Var()]
	return ok && v == l.Sign()
}

// Literal returns the literal that the model's assignment of v forms,
// i.e. +v if v is true, -v if false. ok is false if v is unconstrained.
func (m *Model) Literal(v int32) (lit Literal, ok bool) {
	val, present := m.values[v]
	if !present {
		return 0, false
	}
	return LiteralOf(v, val), true
}

// Variables returns the set of variables the model constrains, in
// ascending order.
func (m *Model) Variables() []int32 {
	out := make([]int32, 0, len(m.values))
	for v := range m.values {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// Clone returns a deep copy of m.
func (m *Model) Clone() *Model {
	out := NewModel()
	for v, val := range m.values {
		out.values[v] = val
	}
	return out
}

// ReadFrom parses a solver's `v ` literal stream (space separated,
// zero terminated, possibly split across several "v " lines) into a
// Model, mirroring the original implementation's Model.cpp reader
// described in SPEC_FULL.md §4.9.
func (m *Model) ReadFrom(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "v") {
			continue
		}
		fields := strings.Fields(strings.TrimPrefix(line, "v"))
		for _, f := range fields {
			n, err := strconv.Atoi(f)
			if err != nil {
				continue
			}
			if n == 0 {
				continue
			}
			l := Literal(n)
			m.SetLiteral(l)
		}
	}
	return scanner.Err()
}
