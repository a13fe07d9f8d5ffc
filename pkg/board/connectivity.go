package board

import (
	"fmt"
	"sort"
)

// PadRef identifies a pad by its owning footprint reference and pad number.
type PadRef struct {
	Reference string // Footprint reference designator (e.g., "U1")
	Pad       string // Pad number within the footprint (e.g., "3")
}

func padKey(p PadRef) string {
	return fmt.Sprintf("%s.%s", p.Reference, p.Pad)
}

// Connectivity tracks which pads of a net have been joined by committed
// tracks and vias, using a union-find structure. Geometric adjacency is
// never consulted; the router records every joint explicitly.
type Connectivity struct {
	parent map[string]string // Maps pad key to parent pad key
	rank   map[string]int    // Rank for union-by-rank optimization

	allPads []PadRef
	padRefs map[string]PadRef // Maps pad key back to PadRef
}

// NewConnectivity creates a connectivity graph over the given pads.
// Initially every pad is isolated.
func NewConnectivity(pads []PadRef) *Connectivity {
	c := &Connectivity{
		parent:  make(map[string]string),
		rank:    make(map[string]int),
		allPads: make([]PadRef, len(pads)),
		padRefs: make(map[string]PadRef),
	}

	copy(c.allPads, pads)

	for _, pad := range pads {
		key := padKey(pad)
		c.parent[key] = key
		c.rank[key] = 0
		c.padRefs[key] = pad
	}

	return c
}

// Connect records that two pads are now joined by copper.
func (c *Connectivity) Connect(a, b PadRef) {
	rootA := c.Find(a)
	rootB := c.Find(b)

	if rootA == rootB {
		return // Already in the same component
	}

	keyA := padKey(rootA)
	keyB := padKey(rootB)

	// Union by rank
	if c.rank[keyA] < c.rank[keyB] {
		c.parent[keyA] = keyB
	} else if c.rank[keyA] > c.rank[keyB] {
		c.parent[keyB] = keyA
	} else {
		c.parent[keyB] = keyA
		c.rank[keyA]++
	}
}

// Find returns the representative pad for the component containing pad.
// Uses path compression.
func (c *Connectivity) Find(pad PadRef) PadRef {
	key := padKey(pad)
	if _, ok := c.parent[key]; !ok {
		return pad
	}

	root := key
	for c.parent[root] != root {
		root = c.parent[root]
	}

	current := key
	for current != root {
		next := c.parent[current]
		c.parent[current] = root
		current = next
	}

	return c.padRefs[root]
}

// Connected reports whether two pads are in the same component.
func (c *Connectivity) Connected(a, b PadRef) bool {
	return c.Find(a) == c.Find(b)
}

// FullyConnected reports whether every pad is in a single component.
// A graph with zero or one pad is trivially connected.
func (c *Connectivity) FullyConnected() bool {
	if len(c.allPads) <= 1 {
		return true
	}
	root := c.Find(c.allPads[0])
	for _, pad := range c.allPads[1:] {
		if c.Find(pad) != root {
			return false
		}
	}
	return true
}

// Components returns the connected components, each sorted by pad key,
// with components ordered by their first pad key for determinism.
func (c *Connectivity) Components() [][]PadRef {
	groups := make(map[string][]PadRef)
	for _, pad := range c.allPads {
		rootKey := padKey(c.Find(pad))
		groups[rootKey] = append(groups[rootKey], pad)
	}

	components := make([][]PadRef, 0, len(groups))
	for _, pads := range groups {
		sort.Slice(pads, func(i, j int) bool {
			return padKey(pads[i]) < padKey(pads[j])
		})
		components = append(components, pads)
	}
	sort.Slice(components, func(i, j int) bool {
		return padKey(components[i][0]) < padKey(components[j][0])
	})
	return components
}
