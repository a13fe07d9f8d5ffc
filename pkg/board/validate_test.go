package board

import (
	"math"
	"testing"
)

func testLayers() []Layer {
	return []Layer{
		{Number: 0, Name: "F.Cu", Role: RoleSignal},
		{Number: 1, Name: "B.Cu", Role: RoleSignal},
	}
}

func TestValidateMalformedOutline(t *testing.T) {
	b := &Board{Layers: testLayers()}
	err := b.Validate()
	if err == nil {
		t.Fatal("expected error for missing outline")
	}
	if !IsBoardError(err, MalformedOutline) {
		t.Errorf("expected MalformedOutline, got %v", err)
	}

	// Collinear outline encloses no area
	b.Outline = []Position{{0, 0}, {5, 0}, {10, 0}}
	if err := b.Validate(); !IsBoardError(err, MalformedOutline) {
		t.Errorf("expected MalformedOutline for zero-area outline, got %v", err)
	}
}

func TestValidateUndefinedNet(t *testing.T) {
	ghost := &Net{Number: 99, Name: "GHOST"}
	b := &Board{
		Layers:  testLayers(),
		Outline: []Position{{0, 0}, {10, 0}, {10, 10}, {0, 10}},
		Nets:    []Net{{Number: 1, Name: "GND"}},
		Tracks: []Track{
			{Start: Position{1, 1}, End: Position{2, 2}, Width: 0.2, Layer: "F.Cu", Net: ghost},
		},
	}
	if err := b.Validate(); !IsBoardError(err, UndefinedNet) {
		t.Errorf("expected UndefinedNet, got %v", err)
	}

	b.Tracks = nil
	b.Vias = []Via{{Position: Position{5, 5}, Size: 0.5, Drill: 0.3, Layers: [2]string{"F.Cu", "B.Cu"}, Net: ghost}}
	if err := b.Validate(); !IsBoardError(err, UndefinedNet) {
		t.Errorf("expected UndefinedNet for via, got %v", err)
	}
}

func TestValidateNetNumbers(t *testing.T) {
	b := &Board{
		Layers:  testLayers(),
		Outline: []Position{{0, 0}, {10, 0}, {10, 10}, {0, 10}},
		Nets: []Net{
			{Number: 0, Name: "GND"}, // 0 is reserved for unconnected
		},
	}
	if err := b.Validate(); !IsBoardError(err, UndefinedNet) {
		t.Errorf("expected UndefinedNet for reserved number 0, got %v", err)
	}

	// Colliding numbers would alias nets in the routing grid
	b.Nets = []Net{
		{Number: 1, Name: "GND"},
		{Number: 1, Name: "SDA"},
	}
	if err := b.Validate(); !IsBoardError(err, UndefinedNet) {
		t.Errorf("expected UndefinedNet for duplicate number, got %v", err)
	}
}

func TestValidateOrphanPad(t *testing.T) {
	b := &Board{
		Layers:  testLayers(),
		Outline: []Position{{0, 0}, {10, 0}, {10, 10}, {0, 10}},
		Nets:    []Net{{Number: 1, Name: "GND"}},
		Footprints: []Footprint{{
			Reference: "R1",
			Pads: []Pad{{
				Number:   "1",
				Position: Position{20, 5}, // outside the 10x10 outline
				Size:     Size{W: 1, H: 1},
				Layers:   []string{"F.Cu"},
			}},
		}},
	}
	if err := b.Validate(); !IsBoardError(err, OrphanPad) {
		t.Errorf("expected OrphanPad, got %v", err)
	}
}

func TestValidateCleanBoard(t *testing.T) {
	b := &Board{
		Layers:  testLayers(),
		Outline: []Position{{0, 0}, {10, 0}, {10, 10}, {0, 10}},
		Nets:    []Net{{Number: 1, Name: "GND"}},
		Footprints: []Footprint{{
			Reference: "R1",
			Pads: []Pad{
				{Number: "1", Position: Position{3, 5}, Size: Size{W: 1, H: 1}, Layers: []string{"F.Cu"}},
				{Number: "2", Position: Position{7, 5}, Size: Size{W: 1, H: 1}, Layers: []string{"F.Cu"}},
			},
		}},
	}
	if err := b.Validate(); err != nil {
		t.Errorf("clean board should validate, got %v", err)
	}

	// Unconnected pads are legal but flagged
	flagged := b.UnconnectedPads()
	if len(flagged) != 2 {
		t.Errorf("expected 2 unconnected pads, got %d", len(flagged))
	}
}

func TestBoardNetQueries(t *testing.T) {
	gnd := Net{Number: 1, Name: "GND", Class: ClassPower}
	b := &Board{
		Layers:  testLayers(),
		Outline: []Position{{0, 0}, {10, 0}, {10, 10}, {0, 10}},
		Nets:    []Net{gnd},
	}
	net := b.GetNet("GND")
	if net == nil || net.Class != ClassPower {
		t.Fatal("GetNet should find GND")
	}
	if b.GetNet("NOPE") != nil {
		t.Error("GetNet should return nil for unknown net")
	}

	b.Tracks = []Track{
		{Start: Position{1, 1}, End: Position{4, 5}, Width: 0.2, Layer: "F.Cu", Net: net},
	}
	info := b.GetNetInfo("GND")
	if info == nil || len(info.Tracks) != 1 {
		t.Fatal("GetNetInfo should report the track")
	}
	if got := b.TotalTraceLength(); got != 5 {
		t.Errorf("total trace length = %f, want 5", got)
	}
}

func TestViaAnnularRing(t *testing.T) {
	v := Via{Size: 0.5, Drill: 0.3}
	if got := v.AnnularRing(); math.Abs(got-0.1) > 1e-9 {
		t.Errorf("annular ring = %f, want 0.1", got)
	}
	// Recomputed after a dimension change, never cached
	v.Drill = 0.2
	if got := v.AnnularRing(); math.Abs(got-0.15) > 1e-9 {
		t.Errorf("annular ring after drill change = %f, want 0.15", got)
	}
}
