// Package route is the autorouter core. It discretizes the board into
// per-layer occupancy grids, finds paths with a cost-based search, and
// selects the best of several randomized Monte Carlo trials.
package route

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/google/uuid"

	"github.com/OpenTraceLab/OpenTraceRoute/pkg/board"
	"github.com/OpenTraceLab/OpenTraceRoute/pkg/rules"
)

// Router routes the nets of one board under one rule set. The board is
// mutated only when a winning trial is committed; all trial state lives
// on private grid snapshots.
type Router struct {
	board *board.Board
	rules rules.RuleSet
	cfg   *Config

	base *grid
	conn map[string]*board.Connectivity
}

// New prepares a router for the given board and rule set. The board is
// validated up front; a structurally invalid board aborts before any
// routing starts.
func New(b *board.Board, rs rules.RuleSet, cfg *Config) (*Router, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(rs); err != nil {
		return nil, err
	}
	base, err := newGrid(b, rs, cfg.GridStep)
	if err != nil {
		return nil, err
	}

	r := &Router{
		board: b,
		rules: rs,
		cfg:   cfg,
		base:  base,
		conn:  make(map[string]*board.Connectivity),
	}
	for i := range b.Nets {
		net := &b.Nets[i]
		r.conn[net.Name] = board.NewConnectivity(netPadRefs(b, net.Name))
	}
	return r, nil
}

// Connectivity returns the pad connectivity graph for a net, reflecting
// every commit made through this router.
func (r *Router) Connectivity(netName string) *board.Connectivity {
	return r.conn[netName]
}

// RouteNet routes a single net on the board's current state and commits
// the result immediately. Pair partners are not dragged in; use
// RouteAll for differential-pair aware routing.
func (r *Router) RouteNet(ctx context.Context, netName string) (*NetResult, error) {
	net := r.board.GetNet(netName)
	if net == nil {
		return nil, fmt.Errorf("route: net %q not found", netName)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g, err := newGrid(r.board, r.rules, r.cfg.GridStep)
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(r.cfg.Seed))
	copper := r.routeNetOnGrid(g, net, rng)
	res := copper.result(net.Name)
	if res.Status == StatusRouted {
		r.commit([]*netCopper{copper})
	}
	return res, nil
}

// padSite is a routable pad location resolved against the grid.
type padSite struct {
	ref    board.PadRef
	pos    board.Position
	layers []string
}

func netPadRefs(b *board.Board, netName string) []board.PadRef {
	var refs []board.PadRef
	for _, fp := range b.Footprints {
		for _, pad := range fp.Pads {
			if pad.Net != nil && pad.Net.Name == netName {
				refs = append(refs, board.PadRef{Reference: fp.Reference, Pad: pad.Number})
			}
		}
	}
	return refs
}

// padSites resolves a net's pads with the copper layers each pad can be
// entered on. Through-hole pads reach every copper layer.
func (r *Router) padSites(g *grid, net *board.Net) []padSite {
	var sites []padSite
	for _, fp := range r.board.Footprints {
		for _, pad := range fp.Pads {
			if pad.Net == nil || pad.Net.Name != net.Name {
				continue
			}
			var layers []string
			if pad.Drill > 0 {
				layers = append(layers, g.layers...)
			} else {
				for _, l := range pad.Layers {
					if _, ok := g.layerIndex(l); ok {
						layers = append(layers, l)
					}
				}
			}
			sites = append(sites, padSite{
				ref:    board.PadRef{Reference: fp.Reference, Pad: pad.Number},
				pos:    pad.Position,
				layers: layers,
			})
		}
	}
	return sites
}

// netCopper is the copper produced for one net within one trial.
type netCopper struct {
	net    *board.Net
	status NetStatus
	reason FailReason
	tracks []board.Track
	vias   []board.Via
	joins  [][2]board.PadRef
}

func (nc *netCopper) result(name string) *NetResult {
	res := &NetResult{
		Net:        name,
		Status:     nc.status,
		Reason:     nc.reason,
		TrackCount: len(nc.tracks),
		ViaCount:   len(nc.vias),
	}
	for i := range nc.tracks {
		res.TraceLength += nc.tracks[i].Length()
	}
	return res
}

func (nc *netCopper) length() float64 {
	total := 0.0
	for i := range nc.tracks {
		total += nc.tracks[i].Length()
	}
	return total
}

// routeNetOnGrid routes one net on the given grid, claiming cells as it
// goes. Pads are joined by sequential chaining: starting from the first
// pad, the nearest still-unconnected pad is routed next until all pads
// are reached. Any pad pair that cannot be joined fails the whole net;
// its partial copper is not reported but its grid claims remain, which
// only the failing trial observes.
func (r *Router) routeNetOnGrid(g *grid, net *board.Net, rng *rand.Rand) *netCopper {
	nc := &netCopper{net: net, status: StatusRouting}
	sites := r.padSites(g, net)
	if len(sites) < 2 {
		nc.status = StatusRouted // nothing to join
		return nc
	}

	netNum := int32(net.Number)
	visited := []padSite{sites[0]}
	remaining := append([]padSite(nil), sites[1:]...)

	for len(remaining) > 0 {
		// Nearest unconnected pad to any already-connected pad.
		bestV, bestR, bestD := 0, 0, math.Inf(1)
		for vi, v := range visited {
			for ri, rem := range remaining {
				if d := v.pos.Distance(rem.pos); d < bestD {
					bestV, bestR, bestD = vi, ri, d
				}
			}
		}
		from := visited[bestV]
		to := remaining[bestR]

		var starts []node
		fr, fc := g.cellFor(from.pos)
		for _, name := range from.layers {
			if l, ok := g.layerIndex(name); ok {
				starts = append(starts, node{layer: l, row: fr, col: fc})
			}
		}
		gr, gc := g.cellFor(to.pos)
		goalLayers := make(map[int]bool, len(to.layers))
		for _, name := range to.layers {
			if l, ok := g.layerIndex(name); ok {
				goalLayers[l] = true
			}
		}

		path, reason := g.findPath(starts, gr, gc, goalLayers, netNum, r.cfg, rng)
		if reason != ReasonNone {
			nc.status = StatusFailed
			nc.reason = reason
			nc.tracks = nil
			nc.vias = nil
			nc.joins = nil
			return nc
		}

		tracks, vias := r.pathToCopper(g, path, net, from.pos, to.pos)
		for _, n := range path {
			g.claim(n.layer, n.row, n.col, netNum)
		}
		nc.tracks = append(nc.tracks, tracks...)
		nc.vias = append(nc.vias, vias...)
		nc.joins = append(nc.joins, [2]board.PadRef{from.ref, to.ref})

		visited = append(visited, to)
		remaining = append(remaining[:bestR], remaining[bestR+1:]...)
	}

	nc.status = StatusRouted
	return nc
}

// trackWidth returns the effective trace width for a net: its explicit
// override when set, otherwise the rule minimum.
func (r *Router) trackWidth(net *board.Net) float64 {
	if net.MinWidth > r.rules.MinTraceWidth {
		return net.MinWidth
	}
	return r.rules.MinTraceWidth
}

// newVia builds a via at the rule minimums.
func (r *Router) newVia(pos board.Position, a, b string, net *board.Net) board.Via {
	size := r.rules.MinViaDiameter
	if min := r.rules.MinViaDrill + 2*r.rules.MinAnnularRing; min > size {
		size = min
	}
	return board.Via{
		ID:       uuid.New(),
		Position: pos,
		Size:     size,
		Drill:    r.rules.MinViaDrill,
		Layers:   [2]string{a, b},
		Net:      net,
	}
}

// pathToCopper converts a found path into track segments and vias. The
// path's first and last positions are snapped to the exact pad centers
// so committed copper lands on the pads, not on cell centers.
func (r *Router) pathToCopper(g *grid, path []node, net *board.Net, from, to board.Position) ([]board.Track, []board.Via) {
	if len(path) == 0 {
		return nil, nil
	}
	width := r.trackWidth(net)

	var tracks []board.Track
	var vias []board.Via

	// Split into per-layer runs, merging collinear moves within a run.
	i := 0
	for i < len(path) {
		j := i
		for j+1 < len(path) && path[j+1].layer == path[i].layer {
			j++
		}
		run := path[i : j+1]

		points := simplifyRun(g, run)
		if i == 0 {
			points[0] = from
		}
		if j == len(path)-1 {
			points[len(points)-1] = to
		}
		for k := 0; k+1 < len(points); k++ {
			if points[k] == points[k+1] {
				continue
			}
			tracks = append(tracks, board.Track{
				ID:    uuid.New(),
				Start: points[k],
				End:   points[k+1],
				Width: width,
				Layer: g.layers[run[0].layer],
				Net:   net,
			})
		}

		if j+1 < len(path) {
			// Layer change: drop a via at the transition cell.
			pos := g.cellCenter(path[j].row, path[j].col)
			vias = append(vias, r.newVia(pos, g.layers[path[j].layer], g.layers[path[j+1].layer], net))
		}
		i = j + 1
	}

	return tracks, vias
}

// simplifyRun reduces a single-layer run to its corner points.
func simplifyRun(g *grid, run []node) []board.Position {
	points := []board.Position{g.cellCenter(run[0].row, run[0].col)}
	for k := 1; k < len(run); k++ {
		if k+1 < len(run) {
			dr1, dc1 := run[k].row-run[k-1].row, run[k].col-run[k-1].col
			dr2, dc2 := run[k+1].row-run[k].row, run[k+1].col-run[k].col
			if dr1 == dr2 && dc1 == dc2 {
				continue // collinear, skip interior point
			}
		}
		points = append(points, g.cellCenter(run[k].row, run[k].col))
	}
	return points
}

// commit appends routed copper to the board, stamps it into the base
// grid so later routing sees it, and records the pad joins in the
// per-net connectivity graphs.
func (r *Router) commit(copper []*netCopper) {
	for _, nc := range copper {
		r.board.Tracks = append(r.board.Tracks, nc.tracks...)
		r.board.Vias = append(r.board.Vias, nc.vias...)
		netNum := int32(nc.net.Number)
		for i := range nc.tracks {
			t := &nc.tracks[i]
			if l, ok := r.base.layerIndex(t.Layer); ok {
				r.base.stampSegment(l, t.Start, t.End, netNum)
			}
		}
		for i := range nc.vias {
			v := &nc.vias[i]
			row, col := r.base.cellFor(v.Position)
			for _, name := range v.Layers {
				if l, ok := r.base.layerIndex(name); ok {
					r.base.set(l, row, col, netNum)
				}
			}
		}
		if conn := r.conn[nc.net.Name]; conn != nil {
			for _, j := range nc.joins {
				conn.Connect(j[0], j[1])
			}
		}
	}
}
