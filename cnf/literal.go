// Package cnf implements the in-memory formula store: literals,
// clauses, the CNF owner type with its watched-literal index and
// compression log, and models. See spec.md §3 and §4.1.
package cnf

import "strconv"

// Literal is a nonzero signed integer: sign is polarity, magnitude is
// the variable identifier starting at 1. Zero is reserved as the
// terminator/sentinel used inside Clause (see clause.go).
type Literal int32

// Var returns the variable identifier of l (its magnitude).
func (l Literal) Var() int32 {
	if l < 0 {
		return int32(-l)
	}
	return int32(l)
}

// Sign reports the polarity of l: true for a positive literal.
func (l Literal) Sign() bool { return l > 0 }

// Negate returns the complementary literal.
func (l Literal) Negate() Literal { return -l }

// String renders l the way DIMACS does.
func (l Literal) String() string { return strconv.FormatInt(int64(l), 10) }

// LiteralOf builds a literal from a variable and a polarity.
func LiteralOf(v int32, positive bool) Literal {
	if positive {
		return Literal(v)
	}
	return Literal(-v)
}
