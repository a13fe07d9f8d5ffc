package board

import "testing"

func TestNewConnectivity(t *testing.T) {
	pads := []PadRef{
		{Reference: "U1", Pad: "1"},
		{Reference: "U1", Pad: "2"},
		{Reference: "R1", Pad: "1"},
	}

	c := NewConnectivity(pads)

	// Initially, each pad should be its own isolated component
	for _, pad := range pads {
		if root := c.Find(pad); root != pad {
			t.Errorf("pad %s should be its own root initially", padKey(pad))
		}
	}
	if c.FullyConnected() {
		t.Error("three isolated pads should not be fully connected")
	}
}

func TestConnect(t *testing.T) {
	pads := []PadRef{
		{Reference: "U1", Pad: "1"},
		{Reference: "R1", Pad: "1"},
		{Reference: "C1", Pad: "1"},
	}

	c := NewConnectivity(pads)

	c.Connect(pads[0], pads[1])
	if !c.Connected(pads[0], pads[1]) {
		t.Error("U1.1 and R1.1 should be connected")
	}
	if c.Connected(pads[0], pads[2]) {
		t.Error("C1.1 should still be isolated")
	}

	// Transitive: U1.1-R1.1-C1.1
	c.Connect(pads[1], pads[2])
	if !c.Connected(pads[0], pads[2]) {
		t.Error("connectivity should be transitive")
	}
	if !c.FullyConnected() {
		t.Error("all pads joined, should be fully connected")
	}
}

func TestConnectIdempotent(t *testing.T) {
	pads := []PadRef{
		{Reference: "U1", Pad: "1"},
		{Reference: "R1", Pad: "1"},
	}
	c := NewConnectivity(pads)

	c.Connect(pads[0], pads[1])
	c.Connect(pads[0], pads[1])
	c.Connect(pads[1], pads[0])

	if !c.FullyConnected() {
		t.Error("repeated connects should not break connectivity")
	}
}

func TestComponents(t *testing.T) {
	pads := []PadRef{
		{Reference: "U1", Pad: "1"},
		{Reference: "U1", Pad: "2"},
		{Reference: "R1", Pad: "1"},
		{Reference: "R1", Pad: "2"},
	}
	c := NewConnectivity(pads)
	c.Connect(pads[0], pads[2])

	comps := c.Components()
	if len(comps) != 3 {
		t.Fatalf("expected 3 components, got %d", len(comps))
	}
	// Deterministic ordering: first component is the merged pair,
	// sorted by pad key.
	if len(comps[0]) != 2 || comps[0][0] != (PadRef{Reference: "R1", Pad: "1"}) {
		t.Errorf("unexpected first component %v", comps[0])
	}
}

func TestFullyConnectedTrivial(t *testing.T) {
	if !NewConnectivity(nil).FullyConnected() {
		t.Error("empty graph is trivially connected")
	}
	one := []PadRef{{Reference: "U1", Pad: "1"}}
	if !NewConnectivity(one).FullyConnected() {
		t.Error("single pad is trivially connected")
	}
}
