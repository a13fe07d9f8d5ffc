package route

import (
	"math"
	"math/rand"

	"github.com/google/uuid"

	"github.com/OpenTraceLab/OpenTraceRoute/pkg/board"
)

// routeDiffPair routes a differential pair: the primary net is routed
// normally and the partner follows a parallel path offset by trace
// width plus the configured gap. The shorter trace then receives
// serpentine detours until the two lengths match within tolerance.
func (r *Router) routeDiffPair(g *grid, primary, partner *board.Net, rng *rand.Rand) (*netCopper, *netCopper) {
	pc := r.routeNetOnGrid(g, primary, rng)
	qc := &netCopper{net: partner, status: StatusRouting}

	if pc.status != StatusRouted {
		qc.status = StatusFailed
		qc.reason = pc.reason
		return pc, qc
	}
	if len(pc.tracks) == 0 {
		qc.status = StatusRouted
		return pc, qc
	}

	partnerSites := r.padSites(g, partner)
	if len(partnerSites) < 2 {
		qc.status = StatusRouted
		return pc, qc
	}

	offset := r.trackWidth(primary) + r.cfg.DiffPairGap
	side := offsetSide(pc.tracks[0], partnerSites[0].pos)
	primaryNum, partnerNum := int32(primary.Number), int32(partner.Number)

	tracks, ok := offsetTracks(g, pc.tracks, partner, primaryNum, offset*side)
	if !ok {
		qc.status = StatusFailed
		qc.reason = NoPathFound
		return pc, qc
	}

	// Snap the partner's trace ends onto its own pads.
	tracks[0].Start = nearestSite(partnerSites, tracks[0].Start).pos
	tracks[len(tracks)-1].End = nearestSite(partnerSites, tracks[len(tracks)-1].End).pos

	// Mirror the primary's vias, each offset perpendicular to the
	// segment it sits on so vertical runs mirror correctly too.
	for _, v := range pc.vias {
		qv := v
		qv.ID = uuid.New()
		qv.Net = partner
		qv.Position = v.Position.Add(perpOffsetAt(pc.tracks, v.Position, offset*side))
		for _, name := range qv.Layers {
			l, ok := g.layerIndex(name)
			if !ok {
				continue
			}
			row, col := g.cellFor(qv.Position)
			if !pairEnterable(g, l, row, col, partnerNum, primaryNum) {
				qc.status = StatusFailed
				qc.reason = NoPathFound
				return pc, qc
			}
			g.set(l, row, col, partnerNum)
		}
		qc.vias = append(qc.vias, qv)
	}

	qc.tracks = tracks
	for i := range qc.tracks {
		l, _ := g.layerIndex(qc.tracks[i].Layer)
		g.stampSegment(l, qc.tracks[i].Start, qc.tracks[i].End, int32(partner.Number))
	}
	for i := 0; i+1 < len(partnerSites); i++ {
		qc.joins = append(qc.joins, [2]board.PadRef{partnerSites[i].ref, partnerSites[i+1].ref})
	}
	qc.status = StatusRouted

	// Length matching: serpentine the shorter trace.
	lp, lq := pc.length(), qc.length()
	switch {
	case lp-lq > r.cfg.LengthMatchTolerance:
		qc.tracks = addSerpentine(qc.tracks, lp-lq, r.cfg)
	case lq-lp > r.cfg.LengthMatchTolerance:
		pc.tracks = addSerpentine(pc.tracks, lq-lp, r.cfg)
	}

	return pc, qc
}

// offsetSide picks which side of the primary trace the partner runs on:
// the side its first pad lies on.
func offsetSide(first board.Track, partnerPad board.Position) float64 {
	d := first.End.Sub(first.Start)
	p := partnerPad.Sub(first.Start)
	if d.X*p.Y-d.Y*p.X < 0 {
		return -1
	}
	return 1
}

// offsetTracks shifts each primary segment perpendicular to its own
// direction and reassigns ownership to the partner net. Copper of
// either pair member is passable: near the pads the offset line runs
// right through the primary's own pad stamps, which is exactly where a
// pair is supposed to be. Anything else blocks the offset.
func offsetTracks(g *grid, primary []board.Track, partner *board.Net, primaryNum int32, offset float64) ([]board.Track, bool) {
	out := make([]board.Track, 0, len(primary))
	for _, t := range primary {
		d := t.End.Sub(t.Start)
		length := d.Length()
		if length == 0 {
			continue
		}
		// Perpendicular unit vector, rotated +90°.
		perp := board.Position{X: -d.Y / length, Y: d.X / length}.Scale(offset)
		nt := board.Track{
			ID:    uuid.New(),
			Start: t.Start.Add(perp),
			End:   t.End.Add(perp),
			Width: t.Width,
			Layer: t.Layer,
			Net:   partner,
		}
		l, ok := g.layerIndex(nt.Layer)
		if !ok || !segmentClear(g, l, nt.Start, nt.End, int32(partner.Number), primaryNum) {
			return nil, false
		}
		out = append(out, nt)
	}
	if len(out) == 0 {
		return nil, false
	}
	// Stitch consecutive segments together at their midpoints so the
	// offset polyline stays continuous at corners.
	for i := 0; i+1 < len(out); i++ {
		mid := board.Position{
			X: (out[i].End.X + out[i+1].Start.X) / 2,
			Y: (out[i].End.Y + out[i+1].Start.Y) / 2,
		}
		out[i].End = mid
		out[i+1].Start = mid
	}
	return out, true
}

// segmentClear walks the cells under a segment and reports whether the
// pair may occupy all of them.
func segmentClear(g *grid, layer int, from, to board.Position, net, pairNet int32) bool {
	length := from.Distance(to)
	steps := int(math.Ceil(length/(g.step/2))) + 1
	for s := 0; s <= steps; s++ {
		t := float64(s) / float64(steps)
		p := board.Position{X: from.X + (to.X-from.X)*t, Y: from.Y + (to.Y-from.Y)*t}
		row, col := g.cellFor(p)
		if !pairEnterable(g, layer, row, col, net, pairNet) {
			return false
		}
	}
	return true
}

// pairEnterable is enterable extended to a pair: copper of either
// member is passable.
func pairEnterable(g *grid, layer, row, col int, net, pairNet int32) bool {
	o := g.ownerAt(layer, row, col)
	return o == ownerFree || o == net || o == pairNet
}

// perpOffsetAt returns the perpendicular offset vector at point p,
// oriented by the nearest primary segment.
func perpOffsetAt(tracks []board.Track, p board.Position, offset float64) board.Position {
	best := tracks[0]
	bestD := board.PointSegmentDistance(p, best.Start, best.End)
	for _, t := range tracks[1:] {
		if d := board.PointSegmentDistance(p, t.Start, t.End); d < bestD {
			best, bestD = t, d
		}
	}
	d := best.End.Sub(best.Start)
	length := d.Length()
	if length == 0 {
		return board.Position{X: 0, Y: offset}
	}
	return board.Position{X: -d.Y / length, Y: d.X / length}.Scale(offset)
}

func nearestSite(sites []padSite, p board.Position) padSite {
	best := sites[0]
	bestD := best.pos.Distance(p)
	for _, s := range sites[1:] {
		if d := s.pos.Distance(p); d < bestD {
			best, bestD = s, d
		}
	}
	return best
}

// addSerpentine inserts U-shaped detours into the longest segment of a
// trace until roughly deficit mm of extra length has been added. Each
// full lobe adds twice the configured amplitude; a final smaller lobe
// absorbs the remainder.
func addSerpentine(tracks []board.Track, deficit float64, cfg *Config) []board.Track {
	if deficit <= 0 || len(tracks) == 0 {
		return tracks
	}

	longest := 0
	for i := range tracks {
		if tracks[i].Length() > tracks[longest].Length() {
			longest = i
		}
	}
	seg := tracks[longest]
	segLen := seg.Length()
	if segLen == 0 {
		return tracks
	}

	amp := cfg.SerpentineAmplitude
	lobes := int(deficit / (2 * amp))
	remainder := deficit - float64(lobes)*2*amp
	lobeWidth := cfg.GridStep
	if float64(lobes+1)*lobeWidth*2 > segLen {
		// Not enough room for the full comb; fit what we can.
		lobes = int(segLen / (2 * lobeWidth))
		if lobes < 1 {
			return tracks
		}
	}

	u := seg.End.Sub(seg.Start).Scale(1 / segLen)
	perp := board.Position{X: -u.Y, Y: u.X}

	newTrack := func(a, b board.Position) board.Track {
		return board.Track{ID: uuid.New(), Start: a, End: b, Width: seg.Width, Layer: seg.Layer, Net: seg.Net}
	}

	var detour []board.Track
	cursor := seg.Start
	advance := func(p board.Position) {
		if p != cursor {
			detour = append(detour, newTrack(cursor, p))
			cursor = p
		}
	}

	along := 0.0
	addLobe := func(a float64) {
		base := cursor
		advance(base.Add(perp.Scale(a)))
		advance(base.Add(perp.Scale(a)).Add(u.Scale(lobeWidth)))
		advance(base.Add(u.Scale(lobeWidth)))
		along += lobeWidth
	}

	for i := 0; i < lobes; i++ {
		addLobe(amp)
	}
	if remainder > 0 && along+lobeWidth < segLen {
		addLobe(remainder / 2)
	}
	advance(seg.End)

	out := append([]board.Track(nil), tracks[:longest]...)
	out = append(out, detour...)
	out = append(out, tracks[longest+1:]...)
	return out
}
