package route

import (
	"math/rand"
	"sort"

	"github.com/OpenTraceLab/OpenTraceRoute/pkg/board"
)

// classRank orders nets for routing: power first, then critical and
// differential-pair nets, then plain signals.
func classRank(n *board.Net) int {
	switch n.Class {
	case board.ClassPower:
		return 0
	case board.ClassCritical, board.ClassDiffPair:
		return 1
	default:
		return 2
	}
}

// orderNets returns the nets to route in deterministic priority order:
// by class rank, then ascending pad count (sparsely connected nets
// first), then name. When rng is non-nil, ordering is jittered by
// shuffling within groups of equal rank and pad count, which is the
// per-trial perturbation of the Monte Carlo loop.
func orderNets(b *board.Board, rng *rand.Rand) []*board.Net {
	padCount := make(map[string]int, len(b.Nets))
	for _, fp := range b.Footprints {
		for _, pad := range fp.Pads {
			if pad.Net != nil {
				padCount[pad.Net.Name]++
			}
		}
	}

	var nets []*board.Net
	for i := range b.Nets {
		n := &b.Nets[i]
		if padCount[n.Name] >= 2 {
			nets = append(nets, n)
		}
	}

	sort.Slice(nets, func(i, j int) bool {
		ri, rj := classRank(nets[i]), classRank(nets[j])
		if ri != rj {
			return ri < rj
		}
		if padCount[nets[i].Name] != padCount[nets[j].Name] {
			return padCount[nets[i].Name] < padCount[nets[j].Name]
		}
		return nets[i].Name < nets[j].Name
	})

	if rng != nil {
		// Fisher-Yates within each equal-priority group
		start := 0
		for start < len(nets) {
			end := start + 1
			for end < len(nets) &&
				classRank(nets[end]) == classRank(nets[start]) &&
				padCount[nets[end].Name] == padCount[nets[start].Name] {
				end++
			}
			group := nets[start:end]
			for i := len(group) - 1; i > 0; i-- {
				j := rng.Intn(i + 1)
				group[i], group[j] = group[j], group[i]
			}
			start = end
		}
	}

	return nets
}
