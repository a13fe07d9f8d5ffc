package cmd

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceRoute/internal/printer"
	"github.com/OpenTraceLab/OpenTraceRoute/pkg/route"
	"github.com/OpenTraceLab/OpenTraceRoute/pkg/rules"
	"github.com/OpenTraceLab/OpenTraceRoute/pkg/zone"
)

var thermalThreshold float64

var thermalCmd = &cobra.Command{
	Use:   "thermal",
	Short: "Generate copper pours and analyze thermal hotspots",
	Long: `Routes the demo board, fills a ground pour on the back copper layer,
and estimates per-component temperature rise from demo power figures.`,
	RunE: runThermal,
}

func init() {
	rootCmd.AddCommand(thermalCmd)
	thermalCmd.Flags().Float64Var(&thermalThreshold, "threshold", 40, "hotspot rise threshold in °C")
}

func runThermal(cmd *cobra.Command, args []string) error {
	reg := rules.NewRegistry()
	rs, err := resolveRules(reg, "jlcpcb", 2, 1.0)
	if err != nil {
		return printer.Error("rule lookup failed: %v", err)
	}

	b := demoBoard()
	router, err := route.New(b, rs, route.DefaultConfig())
	if err != nil {
		return printer.Error("router setup failed: %v", err)
	}
	if _, err := router.RouteAll(cmd.Context()); err != nil {
		return printer.Error("routing failed: %v", err)
	}

	fill := zone.DefaultFillConfig()
	fill.Clearance = rs.MinClearance
	z, err := zone.Generate(b, "GND", "B.Cu", 0, fill)
	if err != nil {
		return printer.Error("zone fill failed: %v", err)
	}
	printer.Success("GND pour on %s: %d keep-outs, %d thermal reliefs\n", z.Layer, len(z.Holes), len(z.Reliefs))

	// Demo dissipation figures, watts.
	power := map[string]float64{"U1": 1.2, "R1": 0.05, "R2": 0.05}
	cfg := zone.DefaultThermalConfig()
	cfg.RiseThreshold = thermalThreshold
	report := zone.AnalyzeThermal(b, power, cfg)

	refs := make([]string, 0, len(report.Rises))
	for ref := range report.Rises {
		refs = append(refs, ref)
	}
	sort.Strings(refs)
	for _, ref := range refs {
		printer.Info("%-4s +%.1f°C\n", ref, report.Rises[ref])
	}
	for _, h := range report.Hotspots {
		printer.Warning("%s is a hotspot: +%.1f°C at %.2fW, %d thermal vias (recommend %d)\n",
			h.Reference, h.Rise, h.Power, h.ThermalVias, h.RecommendedVias)
	}
	if len(report.Hotspots) == 0 {
		printer.Success("no hotspots above +%.0f°C\n", cfg.RiseThreshold)
	}
	return nil
}
