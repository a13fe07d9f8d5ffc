package route

import (
	"container/heap"
	"math"
	"math/rand"
)

// node addresses one grid cell on one copper layer.
type node struct {
	layer int
	row   int
	col   int
}

type searchItem struct {
	n   node
	f   float64 // g + heuristic (+ tie-break jitter)
	g   float64
	seq int // insertion order, final tie-break
}

type searchQueue []*searchItem

func (q searchQueue) Len() int { return len(q) }
func (q searchQueue) Less(i, j int) bool {
	if q[i].f != q[j].f {
		return q[i].f < q[j].f
	}
	return q[i].seq < q[j].seq
}
func (q searchQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *searchQueue) Push(x any)        { *q = append(*q, x.(*searchItem)) }
func (q *searchQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}

// planarMoves are the eight in-layer neighbor offsets with their
// distance factors.
var planarMoves = [8]struct {
	dr, dc int
	dist   float64
}{
	{-1, 0, 1}, {1, 0, 1}, {0, -1, 1}, {0, 1, 1},
	{-1, -1, math.Sqrt2}, {-1, 1, math.Sqrt2}, {1, -1, math.Sqrt2}, {1, 1, math.Sqrt2},
}

// findPath runs a cost-based shortest-path search from any of the start
// nodes to the goal cell on any of the goal layers. Cost is grid
// distance plus a via penalty per layer change plus a congestion
// penalty proportional to the entered cell's occupancy count. The rng
// perturbs tie-breaks only; with a fixed seed the result is
// deterministic.
func (g *grid) findPath(starts []node, goalRow, goalCol int, goalLayers map[int]bool, net int32, cfg *Config, rng *rand.Rand) ([]node, FailReason) {
	goal := g.cellCenter(goalRow, goalCol)
	h := func(n node) float64 {
		return g.cellCenter(n.row, n.col).Distance(goal)
	}

	cameFrom := make(map[node]node)
	gScore := make(map[node]float64)
	closed := make(map[node]bool)

	q := &searchQueue{}
	heap.Init(q)
	seq := 0
	push := func(n node, gCost float64) {
		f := gCost + h(n)
		if rng != nil {
			f += rng.Float64() * 1e-9
		}
		heap.Push(q, &searchItem{n: n, f: f, g: gCost, seq: seq})
		seq++
	}

	for _, s := range starts {
		if _, ok := gScore[s]; ok {
			continue
		}
		gScore[s] = 0
		push(s, 0)
	}

	steps := 0
	for q.Len() > 0 {
		item := heap.Pop(q).(*searchItem)
		n := item.n
		if closed[n] {
			continue
		}
		closed[n] = true

		steps++
		if steps > cfg.MaxSearchSteps {
			return nil, SearchBudgetExceeded
		}

		if n.row == goalRow && n.col == goalCol && goalLayers[n.layer] {
			return reconstruct(cameFrom, n), ReasonNone
		}

		relax := func(next node, moveCost float64) {
			if closed[next] {
				return
			}
			cost := item.g + moveCost + cfg.CongestionWeight*float64(g.congestion[g.idx(next.layer, next.row, next.col)])
			if old, ok := gScore[next]; ok && old <= cost {
				return
			}
			gScore[next] = cost
			cameFrom[next] = n
			push(next, cost)
		}

		for _, m := range planarMoves {
			r, c := n.row+m.dr, n.col+m.dc
			if !g.inBounds(r, c) || !g.enterable(n.layer, r, c, net) {
				continue
			}
			relax(node{layer: n.layer, row: r, col: c}, m.dist*g.step)
		}

		if cfg.AllowVias {
			for _, dl := range [2]int{-1, 1} {
				l := n.layer + dl
				if l < 0 || l >= len(g.layers) || !g.enterable(l, n.row, n.col, net) {
					continue
				}
				relax(node{layer: l, row: n.row, col: n.col}, cfg.ViaPenalty)
			}
		}
	}

	return nil, NoPathFound
}

func reconstruct(cameFrom map[node]node, end node) []node {
	path := []node{end}
	for {
		prev, ok := cameFrom[end]
		if !ok {
			break
		}
		path = append(path, prev)
		end = prev
	}
	// Reverse into start-to-goal order
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
