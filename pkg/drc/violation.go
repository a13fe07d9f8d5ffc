// Package drc validates routed board geometry against a fabrication
// rule set. Checking never mutates the board and never stops at the
// first finding; every violation on the board is enumerated.
package drc

import (
	"fmt"
	"sort"

	"github.com/OpenTraceLab/OpenTraceRoute/pkg/board"
)

// Kind classifies a design rule violation.
type Kind string

const (
	KindClearance        Kind = "clearance"
	KindTraceWidth       Kind = "trace_width"
	KindViaDrill         Kind = "via_drill"
	KindAnnularRing      Kind = "annular_ring"
	KindEdgeClearance    Kind = "edge_clearance"
	KindSilkOverPad      Kind = "silk_over_pad"
	KindCourtyardOverlap Kind = "courtyard_overlap"
)

// Severity is the blocking level of a violation kind.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Severity returns the fixed severity of a violation kind. Clearance,
// width, via, annular-ring, and edge violations block manufacturing;
// silkscreen and courtyard issues are cosmetic.
func (k Kind) Severity() Severity {
	switch k {
	case KindSilkOverPad, KindCourtyardOverlap:
		return SeverityWarning
	default:
		return SeverityError
	}
}

// Violation is one design rule finding.
type Violation struct {
	Kind     Kind
	Severity Severity
	Location board.Position // Representative location of the defect
	Message  string
	Items    []string // Identifiers of the offending entities
}

// Report is the complete outcome of a DRC scan.
type Report struct {
	Violations []Violation
}

// Errors returns the manufacturing-blocking violations.
func (r *Report) Errors() []Violation {
	var out []Violation
	for _, v := range r.Violations {
		if v.Severity == SeverityError {
			out = append(out, v)
		}
	}
	return out
}

// Warnings returns the cosmetic violations.
func (r *Report) Warnings() []Violation {
	var out []Violation
	for _, v := range r.Violations {
		if v.Severity == SeverityWarning {
			out = append(out, v)
		}
	}
	return out
}

// CountByKind returns the number of violations of the given kind.
func (r *Report) CountByKind(k Kind) int {
	n := 0
	for _, v := range r.Violations {
		if v.Kind == k {
			n++
		}
	}
	return n
}

// Clean reports whether the scan found no blocking violations.
func (r *Report) Clean() bool {
	return len(r.Errors()) == 0
}

// sortViolations puts a report into a stable, deterministic order.
func sortViolations(vs []Violation) {
	sort.Slice(vs, func(i, j int) bool {
		if vs[i].Kind != vs[j].Kind {
			return vs[i].Kind < vs[j].Kind
		}
		if vs[i].Location.X != vs[j].Location.X {
			return vs[i].Location.X < vs[j].Location.X
		}
		if vs[i].Location.Y != vs[j].Location.Y {
			return vs[i].Location.Y < vs[j].Location.Y
		}
		return vs[i].Message < vs[j].Message
	})
}

func (v Violation) String() string {
	return fmt.Sprintf("[%s] %s at (%.3f, %.3f): %s", v.Severity, v.Kind, v.Location.X, v.Location.Y, v.Message)
}
