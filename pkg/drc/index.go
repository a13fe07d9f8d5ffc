package drc

import (
	"fmt"
	"math"

	"github.com/dhconnelly/rtreego"

	"github.com/OpenTraceLab/OpenTraceRoute/pkg/board"
)

// capsule is the uniform geometric model for copper features: a line
// segment swept by a radius. Tracks, vias, and pads all reduce to it,
// which keeps the pairwise distance math to one primitive.
type capsule struct {
	id    string // stable identifier for dedup and messages
	kind  string // "track", "via", "pad", "zone"
	layer string
	net   *board.Net // nil for unassigned pads
	a     board.Position
	b     board.Position
	r     float64

	bounds rtreego.Rect
}

func (c *capsule) Bounds() rtreego.Rect {
	return c.bounds
}

// gap returns the copper-to-copper distance between two capsules.
// Negative means they overlap.
func (c *capsule) gap(o *capsule) float64 {
	return board.SegmentDistance(c.a, c.b, o.a, o.b) - c.r - o.r
}

func (c *capsule) center() board.Position {
	return board.Position{X: (c.a.X + c.b.X) / 2, Y: (c.a.Y + c.b.Y) / 2}
}

func (c *capsule) netName() string {
	if c.net == nil {
		return ""
	}
	return c.net.Name
}

// sameNet reports whether two capsules belong to the same net. A
// feature without a net is foreign to everything, including other
// unassigned features.
func (c *capsule) sameNet(o *capsule) bool {
	return c.net != nil && o.net != nil && c.net.Name == o.net.Name
}

func newCapsule(id, kind, layer string, net *board.Net, a, b board.Position, r float64) *capsule {
	c := &capsule{id: id, kind: kind, layer: layer, net: net, a: a, b: b, r: r}
	minX := math.Min(a.X, b.X) - r
	minY := math.Min(a.Y, b.Y) - r
	w := math.Abs(a.X-b.X) + 2*r
	h := math.Abs(a.Y-b.Y) + 2*r
	rect, err := rtreego.NewRect(rtreego.Point{minX, minY}, []float64{math.Max(w, 1e-9), math.Max(h, 1e-9)})
	if err != nil {
		// Only reachable with NaN geometry; keep a degenerate rect.
		rect, _ = rtreego.NewRect(rtreego.Point{0, 0}, []float64{1e-9, 1e-9})
	}
	c.bounds = rect
	return c
}

// padCapsule models a pad as a capsule along its major axis. Rectangles
// become slightly rounded, which errs on the permissive side by at
// most the corner radius.
func padCapsule(id, layer string, pad *board.Pad) *capsule {
	w, h := pad.Size.W, pad.Size.H
	if pad.Shape == board.ShapeCircle || w == h {
		return newCapsule(id, "pad", layer, pad.Net, pad.Position, pad.Position, w/2)
	}
	if w > h {
		half := (w - h) / 2
		a := board.Position{X: pad.Position.X - half, Y: pad.Position.Y}
		b := board.Position{X: pad.Position.X + half, Y: pad.Position.Y}
		return newCapsule(id, "pad", layer, pad.Net, a, b, h/2)
	}
	half := (h - w) / 2
	a := board.Position{X: pad.Position.X, Y: pad.Position.Y - half}
	b := board.Position{X: pad.Position.X, Y: pad.Position.Y + half}
	return newCapsule(id, "pad", layer, pad.Net, a, b, w/2)
}

// copperIndex holds one R-tree of copper capsules per layer, for
// candidate pruning during the clearance scan.
type copperIndex struct {
	byLayer map[string]*rtreego.Rtree
	all     []*capsule
}

// buildCopperIndex collects every copper feature on the board into
// per-layer R-trees: track segments, vias (on both bridged layers),
// pads (on each copper layer they exist on), and zone boundary edges.
func buildCopperIndex(b *board.Board) *copperIndex {
	lm := board.NewLayerMap(b.Layers)
	idx := &copperIndex{byLayer: make(map[string]*rtreego.Rtree)}

	add := func(c *capsule) {
		tree, ok := idx.byLayer[c.layer]
		if !ok {
			tree = rtreego.NewTree(2, 8, 32)
			idx.byLayer[c.layer] = tree
		}
		tree.Insert(c)
		idx.all = append(idx.all, c)
	}

	for i := range b.Tracks {
		t := &b.Tracks[i]
		id := fmt.Sprintf("track:%s", t.ID)
		add(newCapsule(id, "track", t.Layer, t.Net, t.Start, t.End, t.Width/2))
	}

	for i := range b.Vias {
		v := &b.Vias[i]
		for _, layer := range v.Layers {
			id := fmt.Sprintf("via:%s:%s", v.ID, layer)
			add(newCapsule(id, "via", layer, v.Net, v.Position, v.Position, v.Size/2))
		}
	}

	for fi := range b.Footprints {
		fp := &b.Footprints[fi]
		for pi := range fp.Pads {
			pad := &fp.Pads[pi]
			for _, layer := range pad.Layers {
				if !lm.IsCopperLayer(layer) {
					continue
				}
				id := fmt.Sprintf("pad:%s.%s:%s", fp.Reference, pad.Number, layer)
				add(padCapsule(id, layer, pad))
			}
		}
	}

	for zi := range b.Zones {
		z := &b.Zones[zi]
		n := len(z.Outline)
		for i := 0; i < n; i++ {
			id := fmt.Sprintf("zone:%s:%d", z.ID, i)
			add(newCapsule(id, "zone", z.Layer, z.Net, z.Outline[i], z.Outline[(i+1)%n], 0))
		}
	}

	return idx
}

// neighbors returns the same-layer capsules whose bounds come within
// dist of c's bounds.
func (idx *copperIndex) neighbors(c *capsule, dist float64) []*capsule {
	tree, ok := idx.byLayer[c.layer]
	if !ok {
		return nil
	}
	minX := math.Min(c.a.X, c.b.X) - c.r - dist
	minY := math.Min(c.a.Y, c.b.Y) - c.r - dist
	w := math.Abs(c.a.X-c.b.X) + 2*(c.r+dist)
	h := math.Abs(c.a.Y-c.b.Y) + 2*(c.r+dist)
	query, err := rtreego.NewRect(rtreego.Point{minX, minY}, []float64{w, h})
	if err != nil {
		return nil
	}
	var out []*capsule
	for _, s := range tree.SearchIntersect(query) {
		if o := s.(*capsule); o.id != c.id {
			out = append(out, o)
		}
	}
	return out
}
