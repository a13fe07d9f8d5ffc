package drc

import (
	"fmt"
	"math"

	"github.com/OpenTraceLab/OpenTraceRoute/pkg/board"
	"github.com/OpenTraceLab/OpenTraceRoute/pkg/rules"
)

// Check scans the whole board against the rule set and returns every
// violation found. It is a pure function of its inputs: the board is
// not mutated and repeated runs yield identical reports.
func Check(b *board.Board, rs rules.RuleSet) *Report {
	report := &Report{}
	idx := buildCopperIndex(b)

	checkClearance(report, idx, rs)
	checkTraceWidth(report, b, rs)
	checkVias(report, b, rs)
	checkEdgeClearance(report, b, idx, rs)
	checkSilkOverPad(report, b)
	checkCourtyards(report, b)

	sortViolations(report.Violations)
	return report
}

// checkClearance measures the copper gap between every pair of
// same-layer features on different nets. The R-tree prunes candidates;
// each surviving pair is measured exactly once.
func checkClearance(report *Report, idx *copperIndex, rs rules.RuleSet) {
	for _, c := range idx.all {
		for _, o := range idx.neighbors(c, rs.MinClearance) {
			if c.id >= o.id {
				continue // each pair once
			}
			if c.sameNet(o) {
				continue
			}
			gap := c.gap(o)
			if gap >= rs.MinClearance {
				continue
			}
			report.Violations = append(report.Violations, Violation{
				Kind:     KindClearance,
				Severity: KindClearance.Severity(),
				Location: c.center(),
				Message: fmt.Sprintf("%s (%s) to %s (%s) gap %.3fmm < %.3fmm on %s",
					c.id, c.netName(), o.id, o.netName(), math.Max(gap, 0), rs.MinClearance, c.layer),
				Items: []string{c.id, o.id},
			})
		}
	}
}

// checkTraceWidth verifies every track against its net's effective
// minimum: the net's explicit override when set, else the rule minimum.
func checkTraceWidth(report *Report, b *board.Board, rs rules.RuleSet) {
	for i := range b.Tracks {
		t := &b.Tracks[i]
		min := rs.MinTraceWidth
		if t.Net != nil && t.Net.MinWidth > 0 {
			min = t.Net.MinWidth
		}
		if t.Width >= min {
			continue
		}
		report.Violations = append(report.Violations, Violation{
			Kind:     KindTraceWidth,
			Severity: KindTraceWidth.Severity(),
			Location: t.Start,
			Message:  fmt.Sprintf("track width %.3fmm < %.3fmm", t.Width, min),
			Items:    []string{fmt.Sprintf("track:%s", t.ID)},
		})
	}
}

// checkVias verifies drill size, pad diameter, and the annular ring.
// The ring is recomputed from the current dimensions on every check.
func checkVias(report *Report, b *board.Board, rs rules.RuleSet) {
	for i := range b.Vias {
		v := &b.Vias[i]
		id := fmt.Sprintf("via:%s", v.ID)
		if v.Drill < rs.MinViaDrill {
			report.Violations = append(report.Violations, Violation{
				Kind:     KindViaDrill,
				Severity: KindViaDrill.Severity(),
				Location: v.Position,
				Message:  fmt.Sprintf("via drill %.3fmm < %.3fmm", v.Drill, rs.MinViaDrill),
				Items:    []string{id},
			})
		}
		if v.Size < rs.MinViaDiameter {
			report.Violations = append(report.Violations, Violation{
				Kind:     KindViaDrill,
				Severity: KindViaDrill.Severity(),
				Location: v.Position,
				Message:  fmt.Sprintf("via diameter %.3fmm < %.3fmm", v.Size, rs.MinViaDiameter),
				Items:    []string{id},
			})
		}
		if ring := v.AnnularRing(); ring < rs.MinAnnularRing {
			report.Violations = append(report.Violations, Violation{
				Kind:     KindAnnularRing,
				Severity: KindAnnularRing.Severity(),
				Location: v.Position,
				Message:  fmt.Sprintf("annular ring %.3fmm < %.3fmm", ring, rs.MinAnnularRing),
				Items:    []string{id},
			})
		}
	}
}

// checkEdgeClearance measures each copper feature against the board
// outline. The whole capsule is measured against every outline edge,
// so a notch or slot reaching toward the middle of a track is caught,
// not just approaches near the endpoints.
func checkEdgeClearance(report *Report, b *board.Board, idx *copperIndex, rs rules.RuleSet) {
	if len(b.Outline) < 3 {
		return
	}
	n := len(b.Outline)
	for _, c := range idx.all {
		if c.kind == "zone" {
			continue // pours are clipped to the outline by construction
		}
		d := math.Inf(1)
		for i := 0; i < n; i++ {
			e1, e2 := b.Outline[i], b.Outline[(i+1)%n]
			if ed := board.SegmentDistance(c.a, c.b, e1, e2); ed < d {
				d = ed
			}
		}
		d -= c.r
		if d >= rs.MinEdgeClearance {
			continue
		}
		report.Violations = append(report.Violations, Violation{
			Kind:     KindEdgeClearance,
			Severity: KindEdgeClearance.Severity(),
			Location: c.center(),
			Message:  fmt.Sprintf("%s %.3fmm from board edge < %.3fmm", c.id, math.Max(d, 0), rs.MinEdgeClearance),
			Items:    []string{c.id},
		})
	}
}

var silkToCopper = map[string]string{
	"F.SilkS": "F.Cu",
	"B.SilkS": "B.Cu",
}

// checkSilkOverPad flags silkscreen strokes crossing pad copper on the
// same side of the board. Cosmetic only.
func checkSilkOverPad(report *Report, b *board.Board) {
	for fi := range b.Footprints {
		fp := &b.Footprints[fi]
		for si, silk := range fp.Silk {
			copperSide, ok := silkToCopper[silk.Layer]
			if !ok {
				continue
			}
			stroke := newCapsule(fmt.Sprintf("silk:%s:%d", fp.Reference, si), "silk", silk.Layer, nil, silk.Start, silk.End, silk.Width/2)
			for fj := range b.Footprints {
				other := &b.Footprints[fj]
				for pi := range other.Pads {
					pad := &other.Pads[pi]
					if !pad.OnLayer(copperSide) {
						continue
					}
					pc := padCapsule(fmt.Sprintf("pad:%s.%s:%s", other.Reference, pad.Number, copperSide), copperSide, pad)
					if stroke.gap(pc) >= 0 {
						continue
					}
					report.Violations = append(report.Violations, Violation{
						Kind:     KindSilkOverPad,
						Severity: KindSilkOverPad.Severity(),
						Location: pad.Position,
						Message:  fmt.Sprintf("silkscreen of %s crosses pad %s.%s", fp.Reference, other.Reference, pad.Number),
						Items:    []string{stroke.id, pc.id},
					})
				}
			}
		}
	}
}

// checkCourtyards flags overlapping courtyards between footprints that
// declare one. Cosmetic only; placement is an input to this core.
func checkCourtyards(report *Report, b *board.Board) {
	for i := range b.Footprints {
		fi := &b.Footprints[i]
		if len(fi.Courtyard) < 3 {
			continue
		}
		for j := i + 1; j < len(b.Footprints); j++ {
			fj := &b.Footprints[j]
			if len(fj.Courtyard) < 3 {
				continue
			}
			bi, bj := fi.BoundingBox(), fj.BoundingBox()
			if !bi.Intersects(bj) {
				continue
			}
			report.Violations = append(report.Violations, Violation{
				Kind:     KindCourtyardOverlap,
				Severity: KindCourtyardOverlap.Severity(),
				Location: bi.Center(),
				Message:  fmt.Sprintf("courtyards of %s and %s overlap", fi.Reference, fj.Reference),
				Items:    []string{fi.Reference, fj.Reference},
			})
		}
	}
}
