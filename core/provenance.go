package core

import "time"

// Provenance tracks where a formula came from and what has been done
// to it, per spec.md §3 (CNF "provenance" field).
type Provenance struct {
	Name       string
	SourcePath string
	Applied    []string
	Duration   time.Duration
	Level      EquivalenceLevel
}

// NewProvenance starts a fresh, unmodified provenance record.
func NewProvenance(name, sourcePath string) Provenance {
	return Provenance{
		Name:       name,
		SourcePath: sourcePath,
		Applied:    nil,
		Level:      Equivalent,
	}
}

// RecordApplication appends a procedure's name and degrades Level to
// the weaker of its current value and procedureLevel, as spec.md §4.7
// requires.
func (p *Provenance) RecordApplication(procedureName string, procedureLevel EquivalenceLevel, elapsed time.Duration) {
	p.Applied = append(p.Applied, procedureName)
	p.Level = Degrade(p.Level, procedureLevel)
	p.Duration += elapsed
}

// AppliedDescription renders the applied-procedures list the way
// DIMACS output headers do: quoted, comma-separated, or "None".
func (p *Provenance) AppliedDescription() string {
	if len(p.Applied) == 0 {
		return "None"
	}
	out := ""
	for i, name := range p.Applied {
		if i > 0 {
			out += ", "
		}
		out += "\"" + name + "\""
	}
	return out
}

// Stopwatch is a tiny timing helper used by the procedure template
// (spec.md §4.7: "timestamps... times the call").
type Stopwatch struct {
	start time.Time
}

// Start begins timing.
func (s *Stopwatch) Start() { s.start = time.Now() }

// Elapsed returns the duration since Start was called.
func (s *Stopwatch) Elapsed() time.Duration { return time.Since(s.start) }
