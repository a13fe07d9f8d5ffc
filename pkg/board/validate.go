package board

import (
	"errors"
	"fmt"
)

// BoardErrorReason classifies a structural defect in the board model.
type BoardErrorReason string

const (
	// OrphanPad is a pad placed outside the board outline.
	OrphanPad BoardErrorReason = "orphan_pad"
	// UndefinedNet is a track, via, or pad referencing a net that is not
	// registered in the board's net list.
	UndefinedNet BoardErrorReason = "undefined_net"
	// MalformedOutline is a board outline that encloses no area.
	MalformedOutline BoardErrorReason = "malformed_outline"
)

// BoardError is a fatal structural defect. No routing or zone fill is
// attempted on a board that fails validation.
type BoardError struct {
	Reason BoardErrorReason
	Detail string
}

func (e *BoardError) Error() string {
	return fmt.Sprintf("board: %s: %s", e.Reason, e.Detail)
}

// IsBoardError reports whether err is a BoardError with the given reason.
func IsBoardError(err error, reason BoardErrorReason) bool {
	var be *BoardError
	return errors.As(err, &be) && be.Reason == reason
}

// Validate checks the board for structural defects that make routing
// impossible. It returns the first defect found, or nil. Unconnected
// pads are legal and are not reported here; see UnconnectedPads.
func (b *Board) Validate() error {
	if len(b.Outline) < 3 || PolygonArea(b.Outline) == 0 {
		return &BoardError{
			Reason: MalformedOutline,
			Detail: fmt.Sprintf("outline has %d points and encloses no area", len(b.Outline)),
		}
	}

	nets := NewNetMap(b.Nets)

	// Net numbers key copper ownership during routing; the reserved
	// zero and collisions would silently alias nets.
	for i := range b.Nets {
		n := &b.Nets[i]
		if nets.IsUnconnected(n.Number) {
			return &BoardError{
				Reason: UndefinedNet,
				Detail: fmt.Sprintf("net %q uses reserved number 0", n.Name),
			}
		}
		if found, _ := nets.GetByNumber(n.Number); found != n {
			return &BoardError{
				Reason: UndefinedNet,
				Detail: fmt.Sprintf("nets %q and %q share number %d", n.Name, found.Name, n.Number),
			}
		}
	}

	for fi := range b.Footprints {
		fp := &b.Footprints[fi]
		for pi := range fp.Pads {
			pad := &fp.Pads[pi]
			if pad.Net != nil {
				if _, ok := nets.GetByName(pad.Net.Name); !ok {
					return &BoardError{
						Reason: UndefinedNet,
						Detail: fmt.Sprintf("pad %s.%s references unknown net %q", fp.Reference, pad.Number, pad.Net.Name),
					}
				}
			}
			if !PointInPolygon(pad.Position, b.Outline) {
				return &BoardError{
					Reason: OrphanPad,
					Detail: fmt.Sprintf("pad %s.%s at (%.3f, %.3f) lies outside the board outline", fp.Reference, pad.Number, pad.Position.X, pad.Position.Y),
				}
			}
		}
	}

	for i := range b.Tracks {
		t := &b.Tracks[i]
		if t.Net == nil {
			return &BoardError{Reason: UndefinedNet, Detail: "track with no owning net"}
		}
		if _, ok := nets.GetByName(t.Net.Name); !ok {
			return &BoardError{
				Reason: UndefinedNet,
				Detail: fmt.Sprintf("track references unknown net %q", t.Net.Name),
			}
		}
	}

	for i := range b.Vias {
		v := &b.Vias[i]
		if v.Net == nil {
			return &BoardError{Reason: UndefinedNet, Detail: "via with no owning net"}
		}
		if _, ok := nets.GetByName(v.Net.Name); !ok {
			return &BoardError{
				Reason: UndefinedNet,
				Detail: fmt.Sprintf("via references unknown net %q", v.Net.Name),
			}
		}
	}

	return nil
}

// UnconnectedPads returns pads with no net assignment. These are legal
// but worth surfacing in reports.
func (b *Board) UnconnectedPads() []PadRef {
	var refs []PadRef
	for _, fp := range b.Footprints {
		for _, pad := range fp.Pads {
			if pad.Net == nil {
				refs = append(refs, PadRef{Reference: fp.Reference, Pad: pad.Number})
			}
		}
	}
	return refs
}
