package zone

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/OpenTraceRoute/pkg/board"
)

func pourBoard() *board.Board {
	b := &board.Board{
		Layers: []board.Layer{
			{Number: 0, Name: "F.Cu", Role: board.RoleSignal},
			{Number: 1, Name: "B.Cu", Role: board.RoleSignal},
		},
		Outline: []board.Position{{X: 0, Y: 0}, {X: 30, Y: 0}, {X: 30, Y: 20}, {X: 0, Y: 20}},
		Nets: []board.Net{
			{Number: 1, Name: "GND", Class: board.ClassPower},
			{Number: 2, Name: "SIG", Class: board.ClassSignal},
		},
	}
	gnd, sig := &b.Nets[0], &b.Nets[1]
	b.Footprints = []board.Footprint{{
		Reference: "U1",
		Pads: []board.Pad{
			{Number: "1", Shape: board.ShapeRect, Position: board.Position{X: 10, Y: 10},
				Size: board.Size{W: 1, H: 1}, Layers: []string{"F.Cu"}, Net: gnd},
			{Number: "2", Shape: board.ShapeRect, Position: board.Position{X: 20, Y: 10},
				Size: board.Size{W: 1, H: 1}, Layers: []string{"F.Cu"}, Net: sig},
		},
	}}
	b.Tracks = []board.Track{{
		ID:    uuid.New(),
		Start: board.Position{X: 5, Y: 5}, End: board.Position{X: 25, Y: 5},
		Width: 0.2, Layer: "F.Cu", Net: sig,
	}}
	b.Vias = []board.Via{{
		ID: uuid.New(), Position: board.Position{X: 15, Y: 15},
		Size: 0.6, Drill: 0.3, Layers: [2]string{"F.Cu", "B.Cu"}, Net: sig,
	}}
	return b
}

func TestGenerate(t *testing.T) {
	b := pourBoard()

	z, err := Generate(b, "GND", "F.Cu", 0, nil)
	require.NoError(t, err)
	require.Len(t, b.Zones, 1)

	assert.Equal(t, "GND", z.Net.Name)
	assert.Equal(t, "F.Cu", z.Layer)
	assert.Equal(t, b.Outline, z.Outline)

	// Foreign copper on the layer carves holes: the SIG track, the SIG
	// via, and the SIG pad.
	assert.Len(t, z.Holes, 3)

	// The GND pad connects through spokes, never solid fill.
	require.Len(t, z.Reliefs, 1)
	assert.Equal(t, board.Position{X: 10, Y: 10}, z.Reliefs[0].Pad)
	assert.Equal(t, 4, z.Reliefs[0].SpokeCount)

	// Track hole is buffered by the clearance on every side.
	hole := z.Holes[0]
	box := outlineBox(hole)
	assert.InDelta(t, 5-0.1-0.2, box.Min.X, 1e-9)
	assert.InDelta(t, 25+0.1+0.2, box.Max.X, 1e-9)
}

// The returned zone aliases the board's stored copy, so mutations
// through either are visible in both.
func TestGenerateReturnsStoredZone(t *testing.T) {
	b := pourBoard()

	z, err := Generate(b, "GND", "F.Cu", 0, nil)
	require.NoError(t, err)

	z.Priority = 7
	assert.Equal(t, 7, b.Zones[0].Priority)
	assert.Same(t, z, &b.Zones[0])
}

func TestGenerateOppositeLayerIgnoresCopper(t *testing.T) {
	b := pourBoard()

	z, err := Generate(b, "GND", "B.Cu", 0, nil)
	require.NoError(t, err)

	// Only the through via bridges to B.Cu; tracks and SMD pads sit on
	// F.Cu alone.
	assert.Len(t, z.Holes, 1)
	assert.Empty(t, z.Reliefs)
}

func TestGenerateKeepOut(t *testing.T) {
	b := pourBoard()
	region := []board.Position{{X: 1, Y: 1}, {X: 4, Y: 1}, {X: 4, Y: 4}, {X: 1, Y: 4}}
	b.KeepOuts = []board.KeepOut{
		{Layer: "F.Cu", Region: region},
		{Layer: "B.Cu", Region: region},
	}

	z, err := Generate(b, "GND", "F.Cu", 0, nil)
	require.NoError(t, err)

	// 3 copper holes plus the one keep-out on this layer.
	require.Len(t, z.Holes, 4)
	assert.Equal(t, region, z.Holes[3])
}

func TestGenerateErrors(t *testing.T) {
	b := pourBoard()

	_, err := Generate(b, "NOPE", "F.Cu", 0, nil)
	assert.Error(t, err)

	_, err = Generate(b, "GND", "F.SilkS", 0, nil)
	assert.Error(t, err)

	b.Outline = nil
	_, err = Generate(b, "GND", "F.Cu", 0, nil)
	assert.Error(t, err)
}

func TestResolveOverlaps(t *testing.T) {
	b := pourBoard()

	low, err := Generate(b, "GND", "F.Cu", 0, nil)
	require.NoError(t, err)
	lowHoles := len(low.Holes)

	_, err = Generate(b, "SIG", "F.Cu", 1, nil)
	require.NoError(t, err)

	ResolveOverlaps(b)

	// The higher-priority SIG zone is punched out of the GND zone;
	// the SIG zone itself is untouched.
	assert.Len(t, b.Zones[0].Holes, lowHoles+1)
	assert.Equal(t, b.Zones[1].Outline, b.Zones[0].Holes[lowHoles])
}

func TestResolveOverlapsDifferentLayers(t *testing.T) {
	b := pourBoard()

	_, err := Generate(b, "GND", "F.Cu", 0, nil)
	require.NoError(t, err)
	_, err = Generate(b, "SIG", "B.Cu", 1, nil)
	require.NoError(t, err)

	before := len(b.Zones[0].Holes)
	ResolveOverlaps(b)
	assert.Len(t, b.Zones[0].Holes, before)
}
