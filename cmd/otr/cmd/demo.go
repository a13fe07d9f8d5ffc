package cmd

import (
	"github.com/OpenTraceLab/OpenTraceRoute/pkg/board"
	"github.com/OpenTraceLab/OpenTraceRoute/pkg/rules"
)

// demoBoard builds a small placed, unrouted two-layer design. It stands
// in for the external board loader so every subcommand can be exercised
// end to end.
func demoBoard() *board.Board {
	nets := []board.Net{
		{Number: 1, Name: "GND", Class: board.ClassPower},
		{Number: 2, Name: "+3V3", Class: board.ClassPower, MinWidth: 0.3},
		{Number: 3, Name: "SDA", Class: board.ClassSignal},
		{Number: 4, Name: "SCL", Class: board.ClassSignal},
		{Number: 5, Name: "USB_DP", Class: board.ClassDiffPair, PairWith: "USB_DN"},
		{Number: 6, Name: "USB_DN", Class: board.ClassDiffPair, PairWith: "USB_DP"},
	}

	b := &board.Board{
		Name: "otr-demo",
		Layers: []board.Layer{
			{Number: 0, Name: "F.Cu", Role: board.RoleSignal},
			{Number: 1, Name: "B.Cu", Role: board.RoleSignal},
			{Number: 2, Name: "F.SilkS", Role: board.RoleSilk},
			{Number: 3, Name: "B.SilkS", Role: board.RoleSilk},
			{Number: 4, Name: "F.Mask", Role: board.RoleMask},
		},
		Outline: []board.Position{
			{X: 0, Y: 0}, {X: 40, Y: 0}, {X: 40, Y: 30}, {X: 0, Y: 30},
		},
		Nets: nets,
	}

	netByName := make(map[string]*board.Net)
	for i := range b.Nets {
		netByName[b.Nets[i].Name] = &b.Nets[i]
	}

	smd := func(num string, x, y float64, net string) board.Pad {
		return board.Pad{
			Number:   num,
			Shape:    board.ShapeRect,
			Position: board.Position{X: x, Y: y},
			Size:     board.Size{W: 1.0, H: 0.8},
			Layers:   []string{"F.Cu"},
			Net:      netByName[net],
		}
	}
	tht := func(num string, x, y float64, net string) board.Pad {
		return board.Pad{
			Number:   num,
			Shape:    board.ShapeCircle,
			Position: board.Position{X: x, Y: y},
			Size:     board.Size{W: 1.6, H: 1.6},
			Drill:    0.8,
			Layers:   []string{"F.Cu", "B.Cu"},
			Net:      netByName[net],
		}
	}

	b.Footprints = []board.Footprint{
		{
			Library: "Package_SO", Name: "SOIC-8", Reference: "U1", Value: "MCU",
			Layer: "F.Cu", Position: board.Position{X: 20, Y: 15},
			Pads: []board.Pad{
				smd("1", 17.5, 12.5, "+3V3"),
				smd("2", 17.5, 14.0, "SDA"),
				smd("3", 17.5, 15.5, "SCL"),
				smd("4", 17.5, 17.0, "GND"),
				smd("5", 22.5, 17.0, "USB_DN"),
				smd("6", 22.5, 15.5, "USB_DP"),
				smd("7", 22.5, 14.0, "GND"),
				smd("8", 22.5, 12.5, "+3V3"),
			},
			Courtyard: []board.Position{
				{X: 16.5, Y: 11.5}, {X: 23.5, Y: 11.5}, {X: 23.5, Y: 18}, {X: 16.5, Y: 18},
			},
		},
		{
			Library: "Resistor_SMD", Name: "R_0603", Reference: "R1", Value: "4k7",
			Layer: "F.Cu", Position: board.Position{X: 10, Y: 8},
			Pads: []board.Pad{
				smd("1", 9.2, 8, "SDA"),
				smd("2", 10.8, 8, "+3V3"),
			},
		},
		{
			Library: "Resistor_SMD", Name: "R_0603", Reference: "R2", Value: "4k7",
			Layer: "F.Cu", Position: board.Position{X: 10, Y: 11},
			Pads: []board.Pad{
				smd("1", 9.2, 11, "SCL"),
				smd("2", 10.8, 11, "+3V3"),
			},
		},
		{
			Library: "Capacitor_SMD", Name: "C_0603", Reference: "C1", Value: "100n",
			Layer: "F.Cu", Position: board.Position{X: 14, Y: 20},
			Pads: []board.Pad{
				smd("1", 13.2, 20, "+3V3"),
				smd("2", 14.8, 20, "GND"),
			},
		},
		{
			Library: "Connector", Name: "USB_B", Reference: "J1", Value: "USB",
			Layer: "F.Cu", Position: board.Position{X: 33, Y: 15},
			Pads: []board.Pad{
				tht("1", 33, 10, "+3V3"),
				tht("2", 33, 13, "USB_DN"),
				tht("3", 33, 16, "USB_DP"),
				tht("4", 33, 19, "GND"),
			},
		},
	}

	return b
}

// resolveRules derives the active rule set from a fabricator selection.
func resolveRules(reg *rules.Registry, fab string, layers int, copperOz float64) (rules.RuleSet, error) {
	profile, err := reg.Profile(fab)
	if err != nil {
		return rules.RuleSet{}, err
	}
	return profile.DesignRules(layers, copperOz)
}
