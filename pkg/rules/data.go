package rules

// builtinProfiles is the static capability table. Values are published
// fabricator limits in millimeters at 1 oz copper; base rule sets are
// keyed by layer count because via and annular-ring limits change with
// the stackup while trace width scales with copper weight.
var builtinProfiles = []ManufacturerProfile{
	{
		ID:           "jlcpcb",
		Name:         "JLCPCB",
		Layers:       []int{2, 4, 6},
		Assembly:     true,
		PartsLibrary: "jlcpcb-smt",
		base: map[int]RuleSet{
			2: {MinTraceWidth: 0.127, MinClearance: 0.127, MinViaDrill: 0.30, MinViaDiameter: 0.45, MinAnnularRing: 0.075, MinEdgeClearance: 0.30},
			4: {MinTraceWidth: 0.09, MinClearance: 0.09, MinViaDrill: 0.20, MinViaDiameter: 0.45, MinAnnularRing: 0.125, MinEdgeClearance: 0.20},
			6: {MinTraceWidth: 0.09, MinClearance: 0.09, MinViaDrill: 0.20, MinViaDiameter: 0.45, MinAnnularRing: 0.125, MinEdgeClearance: 0.20},
		},
	},
	{
		ID:           "pcbway",
		Name:         "PCBWay",
		Layers:       []int{2, 4, 6, 8},
		Assembly:     true,
		PartsLibrary: "pcbway-parts",
		base: map[int]RuleSet{
			2: {MinTraceWidth: 0.10, MinClearance: 0.10, MinViaDrill: 0.20, MinViaDiameter: 0.45, MinAnnularRing: 0.125, MinEdgeClearance: 0.30},
			4: {MinTraceWidth: 0.09, MinClearance: 0.09, MinViaDrill: 0.15, MinViaDiameter: 0.40, MinAnnularRing: 0.125, MinEdgeClearance: 0.25},
			6: {MinTraceWidth: 0.09, MinClearance: 0.09, MinViaDrill: 0.15, MinViaDiameter: 0.40, MinAnnularRing: 0.125, MinEdgeClearance: 0.25},
			8: {MinTraceWidth: 0.09, MinClearance: 0.09, MinViaDrill: 0.15, MinViaDiameter: 0.40, MinAnnularRing: 0.125, MinEdgeClearance: 0.25},
		},
	},
	{
		ID:       "oshpark",
		Name:     "OSH Park",
		Layers:   []int{2, 4},
		Assembly: false,
		base: map[int]RuleSet{
			2: {MinTraceWidth: 0.152, MinClearance: 0.152, MinViaDrill: 0.25, MinViaDiameter: 0.51, MinAnnularRing: 0.13, MinEdgeClearance: 0.38},
			4: {MinTraceWidth: 0.127, MinClearance: 0.127, MinViaDrill: 0.25, MinViaDiameter: 0.51, MinAnnularRing: 0.13, MinEdgeClearance: 0.38},
		},
	},
	{
		ID:           "seeed",
		Name:         "Seeed Fusion",
		Layers:       []int{2, 4},
		Assembly:     true,
		PartsLibrary: "opl",
		base: map[int]RuleSet{
			2: {MinTraceWidth: 0.153, MinClearance: 0.153, MinViaDrill: 0.30, MinViaDiameter: 0.60, MinAnnularRing: 0.15, MinEdgeClearance: 0.30},
			4: {MinTraceWidth: 0.10, MinClearance: 0.10, MinViaDrill: 0.20, MinViaDiameter: 0.45, MinAnnularRing: 0.125, MinEdgeClearance: 0.30},
		},
	},
	{
		ID:       "aisler",
		Name:     "Aisler",
		Layers:   []int{2, 4},
		Assembly: false,
		base: map[int]RuleSet{
			2: {MinTraceWidth: 0.10, MinClearance: 0.10, MinViaDrill: 0.25, MinViaDiameter: 0.50, MinAnnularRing: 0.125, MinEdgeClearance: 0.30},
			4: {MinTraceWidth: 0.10, MinClearance: 0.10, MinViaDrill: 0.25, MinViaDiameter: 0.50, MinAnnularRing: 0.125, MinEdgeClearance: 0.30},
		},
	},
	{
		ID:       "eurocircuits",
		Name:     "Eurocircuits",
		Layers:   []int{2, 4, 6},
		Assembly: true,
		base: map[int]RuleSet{
			2: {MinTraceWidth: 0.125, MinClearance: 0.125, MinViaDrill: 0.25, MinViaDiameter: 0.45, MinAnnularRing: 0.10, MinEdgeClearance: 0.25},
			4: {MinTraceWidth: 0.125, MinClearance: 0.125, MinViaDrill: 0.25, MinViaDiameter: 0.45, MinAnnularRing: 0.10, MinEdgeClearance: 0.25},
			6: {MinTraceWidth: 0.125, MinClearance: 0.125, MinViaDrill: 0.25, MinViaDiameter: 0.45, MinAnnularRing: 0.10, MinEdgeClearance: 0.25},
		},
	},
}
