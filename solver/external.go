package solver

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/xDarkicex/preppy/cnf"
	"github.com/xDarkicex/preppy/dimacs"
)

// External is the out-of-process Solver backend spec.md §6 describes
// as the typical implementation: marshal the formula to a temporary
// DIMACS file, invoke an external command, parse its stdout for the
// `s SATISFIABLE`/`s UNSATISFIABLE`/`INTERRUPTED` markers and `v `
// lines, and clean up the temp file on every call.
type External struct {
	// Command is the solver binary to invoke. Defaults to
	// "cryptominisat5" if empty.
	Command string
	// Args are extra arguments passed before the DIMACS file path.
	Args []string
}

// NewExternal returns an External backend invoking command (or the
// default, if command is empty) with the given extra arguments.
func NewExternal(command string, args ...string) *External {
	return &External{Command: command, Args: args}
}

func (e *External) Name() string {
	if e.Command == "" {
		return "external:cryptominisat5"
	}
	return "external:" + e.Command
}

func (e *External) command() string {
	if e.Command == "" {
		return "cryptominisat5"
	}
	return e.Command
}

// marshal writes f to a fresh temp DIMACS file and returns its path;
// the caller is responsible for removing it.
func (e *External) marshal(f *cnf.CNF) (string, error) {
	tmp, err := os.CreateTemp("", "preppy-solve-*.cnf")
	if err != nil {
		return "", err
	}
	defer tmp.Close()
	if err := dimacs.Write(tmp, f, dimacs.Header{ToolVersion: "solver-scratch", BuildType: "n/a"}); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}

func (e *External) run(ctx context.Context, f *cnf.CNF, timeout time.Duration) (stdout string, exitErr error) {
	path, err := e.marshal(f)
	if err != nil {
		return "", err
	}
	defer os.Remove(path)

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := append(append([]string(nil), e.Args...), path)
	cmd := exec.CommandContext(ctx, e.command(), args...)
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	err = cmd.Run()
	return buf.String(), err
}

func parseVerdict(stdout string) Verdict {
	for _, line := range strings.Split(stdout, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "s SATISFIABLE"):
			return Sat
		case strings.HasPrefix(line, "s UNSATISFIABLE"):
			return Unsat
		case strings.Contains(line, "INTERRUPTED"):
			return Unknown
		}
	}
	return Unknown
}

func (e *External) Solve(ctx context.Context, f *cnf.CNF, timeout time.Duration) Verdict {
	stdout, err := e.run(ctx, f, timeout)
	if err != nil && ctx.Err() != nil {
		return Unknown
	}
	return parseVerdict(stdout)
}

func (e *External) Model(ctx context.Context, f *cnf.CNF, timeout time.Duration) (*cnf.Model, bool) {
	stdout, err := e.run(ctx, f, timeout)
	if err != nil && ctx.Err() != nil {
		return nil, false
	}
	if parseVerdict(stdout) != Sat {
		return nil, false
	}
	m := cnf.NewModel()
	if err := m.ReadFrom(strings.NewReader(stdout)); err != nil {
		return nil, false
	}
	return m, true
}
