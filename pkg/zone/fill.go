// Package zone computes copper-pour polygons and estimates thermal
// hotspots from component power dissipation.
package zone

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/OpenTraceLab/OpenTraceRoute/pkg/board"
)

// FillConfig controls pour generation.
type FillConfig struct {
	Clearance  float64 // Buffer kept around foreign-net copper, mm
	SpokeWidth float64 // Thermal relief spoke width, mm
	SpokeCount int     // Spokes per relieved pad
}

// DefaultFillConfig returns fill settings suitable for 1 oz pours.
func DefaultFillConfig() *FillConfig {
	return &FillConfig{
		Clearance:  0.2,
		SpokeWidth: 0.4,
		SpokeCount: 4,
	}
}

// Generate computes the copper pour for a net on one layer: the board
// outline, minus a clearance-buffered keep-out around every foreign-net
// copper feature on that layer, minus explicit keep-out regions. Pads
// of the zone's own net get thermal-relief spokes instead of solid
// fill. The zone is appended to the board and returned.
func Generate(b *board.Board, netName, layer string, priority int, cfg *FillConfig) (*board.Zone, error) {
	if cfg == nil {
		cfg = DefaultFillConfig()
	}
	net := b.GetNet(netName)
	if net == nil {
		return nil, fmt.Errorf("zone: net %q not found", netName)
	}
	lm := board.NewLayerMap(b.Layers)
	if !lm.IsCopperLayer(layer) {
		return nil, fmt.Errorf("zone: %q is not a copper layer", layer)
	}
	if len(b.Outline) < 3 {
		return nil, fmt.Errorf("zone: board has no outline")
	}

	z := &board.Zone{
		ID:       uuid.New(),
		Net:      net,
		Layer:    layer,
		Priority: priority,
		Outline:  append([]board.Position(nil), b.Outline...),
	}

	// Keep-outs around foreign copper, buffered by the clearance.
	for i := range b.Tracks {
		t := &b.Tracks[i]
		if t.Layer != layer || sameNet(t.Net, net) {
			continue
		}
		z.Holes = append(z.Holes, segmentKeepOut(t.Start, t.End, t.Width/2+cfg.Clearance))
	}
	for i := range b.Vias {
		v := &b.Vias[i]
		if !viaOnLayer(v, layer) || sameNet(v.Net, net) {
			continue
		}
		z.Holes = append(z.Holes, segmentKeepOut(v.Position, v.Position, v.Size/2+cfg.Clearance))
	}
	for fi := range b.Footprints {
		fp := &b.Footprints[fi]
		for pi := range fp.Pads {
			pad := &fp.Pads[pi]
			if !pad.OnLayer(layer) {
				continue
			}
			if sameNet(pad.Net, net) {
				// Own-net pad: connect through spokes, not solid fill.
				z.Reliefs = append(z.Reliefs, board.ThermalRelief{
					Pad:        pad.Position,
					SpokeWidth: cfg.SpokeWidth,
					SpokeCount: cfg.SpokeCount,
				})
				continue
			}
			half := pad.Size.W / 2
			if pad.Size.H > pad.Size.W {
				half = pad.Size.H / 2
			}
			z.Holes = append(z.Holes, segmentKeepOut(pad.Position, pad.Position, half+cfg.Clearance))
		}
	}

	// Explicit keep-out regions on this layer.
	for _, ko := range b.KeepOuts {
		if ko.Layer == layer {
			z.Holes = append(z.Holes, append([]board.Position(nil), ko.Region...))
		}
	}

	b.Zones = append(b.Zones, *z)
	return &b.Zones[len(b.Zones)-1], nil
}

// ResolveOverlaps applies zone priority: where two zones on the same
// layer overlap, the higher-priority outline is cut out of the
// lower-priority zone.
func ResolveOverlaps(b *board.Board) {
	for i := range b.Zones {
		for j := range b.Zones {
			if i == j {
				continue
			}
			low, high := &b.Zones[i], &b.Zones[j]
			if low.Layer != high.Layer || low.Priority >= high.Priority {
				continue
			}
			if !outlineBox(low.Outline).Intersects(outlineBox(high.Outline)) {
				continue
			}
			low.Holes = append(low.Holes, append([]board.Position(nil), high.Outline...))
		}
	}
}

func sameNet(a, b *board.Net) bool {
	return a != nil && b != nil && a.Name == b.Name
}

func viaOnLayer(v *board.Via, layer string) bool {
	return v.Layers[0] == layer || v.Layers[1] == layer
}

// segmentKeepOut returns the rectangle covering a segment inflated by
// r on every side. Round features get a square keep-out, which is
// conservative by the corner area.
func segmentKeepOut(a, b board.Position, r float64) []board.Position {
	box := board.NewBoundingBox()
	box.Expand(a)
	box.Expand(b)
	box = box.Inflate(r)
	return []board.Position{
		{X: box.Min.X, Y: box.Min.Y},
		{X: box.Max.X, Y: box.Min.Y},
		{X: box.Max.X, Y: box.Max.Y},
		{X: box.Min.X, Y: box.Max.Y},
	}
}

func outlineBox(poly []board.Position) board.BoundingBox {
	box := board.NewBoundingBox()
	for _, p := range poly {
		box.Expand(p)
	}
	return box
}
