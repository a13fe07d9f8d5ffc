package route

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/OpenTraceLab/OpenTraceRoute/pkg/board"
)

func TestOrderNets(t *testing.T) {
	b := twoLayerBoard(30, 20)
	b.Nets = []board.Net{
		{Number: 1, Name: "SIG_B", Class: board.ClassSignal},
		{Number: 2, Name: "SIG_A", Class: board.ClassSignal},
		{Number: 3, Name: "GND", Class: board.ClassPower},
		{Number: 4, Name: "CLK", Class: board.ClassCritical},
		{Number: 5, Name: "FLOAT", Class: board.ClassSignal}, // single pad, skipped
	}
	sigB, sigA, gnd, clk, fl := &b.Nets[0], &b.Nets[1], &b.Nets[2], &b.Nets[3], &b.Nets[4]
	b.Footprints = []board.Footprint{
		{Reference: "P1", Pads: []board.Pad{
			smdPad("1", 2, 2, sigB), smdPad("2", 4, 2, sigA),
			smdPad("3", 6, 2, gnd), smdPad("4", 8, 2, clk), smdPad("5", 10, 2, fl),
		}},
		{Reference: "P2", Pads: []board.Pad{
			smdPad("1", 2, 18, sigB), smdPad("2", 4, 18, sigA),
			smdPad("3", 6, 18, gnd), smdPad("4", 8, 18, clk),
		}},
		// Extra GND pad: power still routes first despite more pads.
		{Reference: "P3", Pads: []board.Pad{smdPad("1", 15, 10, gnd)}},
	}

	nets := orderNets(b, nil)
	names := make([]string, len(nets))
	for i, n := range nets {
		names[i] = n.Name
	}
	assert.Equal(t, []string{"GND", "CLK", "SIG_A", "SIG_B"}, names)
}

func TestOrderNetsShuffleStaysWithinGroups(t *testing.T) {
	b := twoLayerBoard(30, 20)
	b.Nets = []board.Net{
		{Number: 1, Name: "GND", Class: board.ClassPower},
		{Number: 2, Name: "A", Class: board.ClassSignal},
		{Number: 3, Name: "B", Class: board.ClassSignal},
		{Number: 4, Name: "C", Class: board.ClassSignal},
	}
	pads := []board.Pad{}
	for i := range b.Nets {
		n := &b.Nets[i]
		pads = append(pads,
			smdPad("1", float64(2*i+2), 2, n),
			smdPad("2", float64(2*i+2), 18, n),
		)
	}
	b.Footprints = []board.Footprint{{Reference: "P1", Pads: pads}}

	for seed := int64(0); seed < 20; seed++ {
		nets := orderNets(b, rand.New(rand.NewSource(seed)))
		assert.Len(t, nets, 4)
		// Power always leads; the signal group may permute freely.
		assert.Equal(t, "GND", nets[0].Name)
	}
}
