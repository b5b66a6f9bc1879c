// Package dimacs reads and writes the line-oriented DIMACS CNF format
// described in spec.md §6: a contract, not the reader's/writer's
// internals, so this package is a thin, well-contained translation
// layer between text and a *cnf.CNF.
package dimacs

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xDarkicex/preppy/cnf"
	"github.com/xDarkicex/preppy/core"
)

// Read parses r as a DIMACS CNF stream. It is tolerant the way
// spec.md §4.1/§6 requires: a mismatch between the declared and
// parsed variable/clause counts is reported as a FormatWarning, not an
// abort — the successfully parsed clauses are always returned.
//
// A lone "0" clause line (no literals) is read as cnf's unsatisfiable
// marker, not its satisfied marker: on the wire, an empty clause is
// the classical DIMACS convention for an explicit contradiction, while
// cnf's "satisfied and vacated" marker is purely an in-memory
// bookkeeping state that a well-behaved procedure never leaves for
// Write to serialize (see dimacs.Write).
func Read(r io.Reader) (*cnf.CNF, []*core.Error, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var warnings []*core.Error
	f := cnf.New()

	foundProblem := false
	declaredVars, declaredClauses := 0, 0
	parsedClauses := 0
	var clauseBuf []cnf.Literal

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch line[0] {
		case 'c':
			continue
		case 'p':
			if foundProblem {
				warnings = append(warnings, core.NewError(core.FormatWarning, "dimacs.Read",
					fmt.Errorf("duplicate problem line: %q", line)))
				continue
			}
			parts := strings.Fields(line)
			if len(parts) != 4 || parts[1] != "cnf" {
				return nil, warnings, core.NewError(core.InputError, "dimacs.Read",
					fmt.Errorf("invalid problem line: %q", line))
			}
			v, err := strconv.Atoi(parts[2])
			if err != nil {
				return nil, warnings, core.NewError(core.InputError, "dimacs.Read",
					fmt.Errorf("invalid variable count: %w", err))
			}
			c, err := strconv.Atoi(parts[3])
			if err != nil {
				return nil, warnings, core.NewError(core.InputError, "dimacs.Read",
					fmt.Errorf("invalid clause count: %w", err))
			}
			declaredVars, declaredClauses = v, c
			foundProblem = true
		default:
			if !foundProblem {
				return nil, warnings, core.NewError(core.InputError, "dimacs.Read",
					fmt.Errorf("clause found before problem line: %q", line))
			}
			clauseBuf = clauseBuf[:0]
			parts := strings.Fields(line)
			for i, p := range parts {
				n, err := strconv.Atoi(p)
				if err != nil {
					return nil, warnings, core.NewError(core.InputError, "dimacs.Read",
						fmt.Errorf("invalid literal %q in clause %q: %w", p, line, err))
				}
				if n == 0 {
					if i != len(parts)-1 {
						warnings = append(warnings, core.NewError(core.FormatWarning, "dimacs.Read",
							fmt.Errorf("zero found before end of clause line: %q", line)))
					}
					break
				}
				clauseBuf = append(clauseBuf, cnf.Literal(n))
			}
			if len(clauseBuf) == 0 {
				f.Push(cnf.UnsatClause())
			} else {
				f.Push(cnf.NewClause(clauseBuf...))
			}
			parsedClauses++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, warnings, core.NewError(core.InputError, "dimacs.Read", err)
	}
	if !foundProblem {
		return nil, warnings, core.NewError(core.InputError, "dimacs.Read",
			fmt.Errorf("no problem line found"))
	}
	if parsedClauses != declaredClauses {
		warnings = append(warnings, core.NewError(core.FormatWarning, "dimacs.Read",
			fmt.Errorf("declared %d clauses, parsed %d", declaredClauses, parsedClauses)))
	}
	if int(f.Variables()) != declaredVars {
		warnings = append(warnings, core.NewError(core.FormatWarning, "dimacs.Read",
			fmt.Errorf("declared %d variables, found %d distinct (sparse or mismatched numbering)", declaredVars, f.Variables())))
	}

	return f, warnings, nil
}

// Header carries the metadata Write prepends as comments, per
// spec.md §6.
type Header struct {
	ToolVersion string
	BuildType   string
}

// Write serializes f as DIMACS, beginning with the comment header
// spec.md §6 specifies (name, tool version/build, processing time,
// applied procedures, and the declared equivalence relation), then the
// problem line and every clause.
//
// A clause satisfying cnf.Clause.IsUnsat is written as a lone "0" line
// (the classical DIMACS empty clause). A clause satisfying
// Clause.IsSatisfied carries no information — it is already vacated —
// and is skipped entirely rather than also written as a lone "0",
// which would otherwise render the written formula spuriously UNSAT.
// The problem line's clause count reflects only the clauses actually
// written.
func Write(w io.Writer, f *cnf.CNF, h Header) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "c %s\n", f.Provenance.Name)
	fmt.Fprintf(bw, "c preppy %s (%s build)\n", h.ToolVersion, h.BuildType)
	fmt.Fprintf(bw, "c processing time: %s\n", f.Provenance.Duration)
	fmt.Fprintf(bw, "c applied procedures: %s\n", f.Provenance.AppliedDescription())
	fmt.Fprintf(bw, "c %s\n", f.Provenance.Level.Sentence())

	clauseCount := 0
	for _, c := range f.Clauses {
		if !c.IsSatisfied() {
			clauseCount++
		}
	}
	fmt.Fprintf(bw, "p cnf %d %d\n", f.MaxVariable(), clauseCount)

	for _, c := range f.Clauses {
		if c.IsSatisfied() {
			continue
		}
		if c.IsUnsat() {
			fmt.Fprintln(bw, "0")
			continue
		}
		for _, l := range c.Lits {
			fmt.Fprintf(bw, "%d ", int32(l))
		}
		fmt.Fprintln(bw, "0")
	}

	return bw.Flush()
}
