package route

import (
	"fmt"
	"math"

	"github.com/OpenTraceLab/OpenTraceRoute/pkg/board"
	"github.com/OpenTraceLab/OpenTraceRoute/pkg/rules"
)

const (
	ownerFree    int32 = 0
	ownerBlocked int32 = -1
)

// grid discretizes the routable area into one cell lattice per copper
// layer. Each cell carries the net number occupying it (or free, or
// blocked) and a congestion counter bumped around committed paths.
// Trials never share a grid; each works on its own clone.
type grid struct {
	step   float64
	origin board.Position
	cols   int
	rows   int
	layers []string // copper layer names, top to bottom
	byName map[string]int

	owner      []int32
	congestion []uint16
}

// newGrid rasterizes the board into a fresh grid: cells outside the
// outline or inside the edge-clearance margin are blocked, and existing
// pads, tracks, and vias are stamped with their owning nets.
func newGrid(b *board.Board, rs rules.RuleSet, step float64) (*grid, error) {
	lm := board.NewLayerMap(b.Layers)
	copper := lm.CopperLayers()
	if len(copper) == 0 {
		return nil, fmt.Errorf("route: board has no copper layers")
	}

	bbox := board.NewBoundingBox()
	for _, p := range b.Outline {
		bbox.Expand(p)
	}
	if bbox.IsEmpty() {
		return nil, fmt.Errorf("route: board outline is empty")
	}

	g := &grid{
		step:   step,
		origin: bbox.Min,
		cols:   int(math.Ceil(bbox.Width()/step)) + 1,
		rows:   int(math.Ceil(bbox.Height()/step)) + 1,
		layers: copper,
		byName: make(map[string]int, len(copper)),
	}
	for i, name := range copper {
		g.byName[name] = i
	}
	g.owner = make([]int32, len(copper)*g.rows*g.cols)
	g.congestion = make([]uint16, len(g.owner))

	// Block everything outside the outline and the edge margin. The
	// margin keeps trace centerlines edge-clearance plus half a trace
	// width away from the board edge.
	margin := rs.MinEdgeClearance + rs.MinTraceWidth/2
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			p := g.cellCenter(r, c)
			if !board.PointInPolygon(p, b.Outline) || board.DistanceToPolygonEdge(p, b.Outline) < margin {
				for l := range copper {
					g.owner[g.idx(l, r, c)] = ownerBlocked
				}
			}
		}
	}

	// Stamp placed copper: pads first, then any pre-routed tracks and
	// vias handed over by the loader.
	for fi := range b.Footprints {
		for pi := range b.Footprints[fi].Pads {
			g.stampPad(&b.Footprints[fi].Pads[pi])
		}
	}
	for i := range b.Tracks {
		t := &b.Tracks[i]
		if l, ok := g.byName[t.Layer]; ok && t.Net != nil {
			g.stampSegment(l, t.Start, t.End, int32(t.Net.Number))
		}
	}
	for i := range b.Vias {
		v := &b.Vias[i]
		if v.Net == nil {
			continue
		}
		r, c := g.cellFor(v.Position)
		for _, name := range v.Layers {
			if l, ok := g.byName[name]; ok {
				g.set(l, r, c, int32(v.Net.Number))
			}
		}
	}

	return g, nil
}

// clone returns an independent snapshot for one trial.
func (g *grid) clone() *grid {
	c := *g
	c.owner = make([]int32, len(g.owner))
	copy(c.owner, g.owner)
	c.congestion = make([]uint16, len(g.congestion))
	copy(c.congestion, g.congestion)
	return &c
}

func (g *grid) idx(layer, row, col int) int {
	return (layer*g.rows+row)*g.cols + col
}

func (g *grid) inBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// cellCenter returns the board position of a cell's center.
func (g *grid) cellCenter(row, col int) board.Position {
	return board.Position{
		X: g.origin.X + float64(col)*g.step,
		Y: g.origin.Y + float64(row)*g.step,
	}
}

// cellFor returns the cell whose center is nearest to p.
func (g *grid) cellFor(p board.Position) (row, col int) {
	row = int(math.Round((p.Y - g.origin.Y) / g.step))
	col = int(math.Round((p.X - g.origin.X) / g.step))
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}
	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}
	return row, col
}

func (g *grid) ownerAt(layer, row, col int) int32 {
	return g.owner[g.idx(layer, row, col)]
}

// enterable reports whether a net may move onto a cell. With the grid
// pitch at trace width plus clearance, entering a cell held by another
// net would violate the clearance rule outright, so it is disallowed
// rather than penalized.
func (g *grid) enterable(layer, row, col int, net int32) bool {
	o := g.owner[g.idx(layer, row, col)]
	return o == ownerFree || o == net
}

// set claims a cell for a net without touching congestion.
func (g *grid) set(layer, row, col int, net int32) {
	i := g.idx(layer, row, col)
	if g.owner[i] == ownerBlocked && net != ownerBlocked {
		return // edge margin stays blocked, pads overlapping it keep their copper elsewhere
	}
	g.owner[i] = net
}

// claim stamps a cell for a net and raises congestion around it so
// later nets prefer to spread out.
func (g *grid) claim(layer, row, col int, net int32) {
	g.set(layer, row, col, net)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			r, c := row+dr, col+dc
			if g.inBounds(r, c) {
				i := g.idx(layer, r, c)
				if g.congestion[i] < math.MaxUint16 {
					g.congestion[i]++
				}
			}
		}
	}
}

// stampPad claims the cells under a pad on every copper layer the pad
// exists on. Pads without a net block routing entirely.
func (g *grid) stampPad(pad *board.Pad) {
	net := ownerBlocked
	if pad.Net != nil {
		net = int32(pad.Net.Number)
	}
	halfW, halfH := pad.Size.W/2, pad.Size.H/2
	minR, minC := g.cellFor(board.Position{X: pad.Position.X - halfW, Y: pad.Position.Y - halfH})
	maxR, maxC := g.cellFor(board.Position{X: pad.Position.X + halfW, Y: pad.Position.Y + halfH})
	for _, name := range pad.Layers {
		l, ok := g.byName[name]
		if !ok {
			continue
		}
		for r := minR; r <= maxR; r++ {
			for c := minC; c <= maxC; c++ {
				i := g.idx(l, r, c)
				if g.owner[i] == ownerFree || g.owner[i] == ownerBlocked {
					g.owner[i] = net
				}
			}
		}
	}
}

// stampSegment claims the cells along a straight track segment.
func (g *grid) stampSegment(layer int, from, to board.Position, net int32) {
	length := from.Distance(to)
	steps := int(math.Ceil(length/(g.step/2))) + 1
	for s := 0; s <= steps; s++ {
		t := float64(s) / float64(steps)
		p := board.Position{X: from.X + (to.X-from.X)*t, Y: from.Y + (to.Y-from.Y)*t}
		r, c := g.cellFor(p)
		g.set(layer, r, c, net)
	}
}

// layerIndex returns the index of a copper layer name.
func (g *grid) layerIndex(name string) (int, bool) {
	l, ok := g.byName[name]
	return l, ok
}
