package zone

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/OpenTraceRoute/pkg/board"
)

func thermalBoard() *board.Board {
	pad := func(num string, x, y float64) board.Pad {
		return board.Pad{
			Number: num, Shape: board.ShapeRect,
			Position: board.Position{X: x, Y: y},
			Size:     board.Size{W: 2, H: 2},
			Layers:   []string{"F.Cu"},
		}
	}
	return &board.Board{
		Layers: []board.Layer{
			{Number: 0, Name: "F.Cu", Role: board.RoleSignal},
			{Number: 1, Name: "B.Cu", Role: board.RoleSignal},
		},
		Outline: []board.Position{{X: 0, Y: 0}, {X: 40, Y: 0}, {X: 40, Y: 30}, {X: 0, Y: 30}},
		Footprints: []board.Footprint{
			{Reference: "U1", Pads: []board.Pad{pad("1", 9, 10), pad("2", 13, 10)}},
			{Reference: "U2", Pads: []board.Pad{pad("1", 29, 10), pad("2", 33, 10)}},
		},
	}
}

func TestAnalyzeThermalHotspot(t *testing.T) {
	b := thermalBoard()

	// Bare board: rise = θJB·P. 60·1.2 = 72°C, well over the 40°C
	// threshold; 60·0.2 = 12°C, under it.
	report := AnalyzeThermal(b, map[string]float64{"U1": 1.2, "U2": 0.2}, nil)

	assert.InDelta(t, 72, report.Rises["U1"], 1e-9)
	assert.InDelta(t, 12, report.Rises["U2"], 1e-9)

	require.Len(t, report.Hotspots, 1)
	hs := report.Hotspots[0]
	assert.Equal(t, "U1", hs.Reference)
	assert.Equal(t, 0, hs.ThermalVias)
	// 1+0.3·v >= 60·1.2/40 = 1.8 → v >= 2.67 → 3 vias.
	assert.Equal(t, 3, hs.RecommendedVias)
}

func TestAnalyzeThermalViasAttenuate(t *testing.T) {
	b := thermalBoard()
	for _, x := range []float64{10, 11, 12} {
		b.Vias = append(b.Vias, board.Via{
			ID: uuid.New(), Position: board.Position{X: x, Y: 10},
			Size: 0.6, Drill: 0.3, Layers: [2]string{"F.Cu", "B.Cu"},
		})
	}

	report := AnalyzeThermal(b, map[string]float64{"U1": 1.2}, nil)

	// 72 / (1 + 0.3·3) = 37.9°C: under the threshold, no hotspot.
	assert.InDelta(t, 72.0/1.9, report.Rises["U1"], 1e-9)
	assert.Empty(t, report.Hotspots)
}

func TestAnalyzeThermalPlaneAttenuates(t *testing.T) {
	b := thermalBoard()
	b.Nets = []board.Net{{Number: 1, Name: "GND", Class: board.ClassPower}}
	_, err := Generate(b, "GND", "B.Cu", 0, nil)
	require.NoError(t, err)

	report := AnalyzeThermal(b, map[string]float64{"U1": 1.2}, nil)

	bare := AnalyzeThermal(thermalBoard(), map[string]float64{"U1": 1.2}, nil)
	assert.Less(t, report.Rises["U1"], bare.Rises["U1"])
}

func TestAnalyzeThermalSortsHotspots(t *testing.T) {
	b := thermalBoard()

	report := AnalyzeThermal(b, map[string]float64{"U1": 1.0, "U2": 2.0}, nil)

	require.Len(t, report.Hotspots, 2)
	assert.Equal(t, "U2", report.Hotspots[0].Reference)
	assert.Equal(t, "U1", report.Hotspots[1].Reference)
	assert.Greater(t, report.Hotspots[0].Rise, report.Hotspots[1].Rise)
}

func TestAnalyzeThermalSkipsUnknownPower(t *testing.T) {
	b := thermalBoard()

	report := AnalyzeThermal(b, map[string]float64{"U9": 5.0}, nil)
	assert.Empty(t, report.Rises)
	assert.Empty(t, report.Hotspots)
}
