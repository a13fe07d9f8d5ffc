package cmd

import (
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceRoute/internal/printer"
	"github.com/OpenTraceLab/OpenTraceRoute/pkg/rules"
)

var fabsCmd = &cobra.Command{
	Use:   "fabs",
	Short: "Manufacturer profile operations",
	Long:  `Commands for inspecting and comparing fabricator capability profiles`,
}

var fabsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List known manufacturer profiles",
	RunE:  runFabsList,
}

var (
	compareLayers int
	compareCopper float64
)

var fabsCompareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare resolved design rules across manufacturers",
	RunE:  runFabsCompare,
}

var (
	findTrace    float64
	findClear    float64
	findDrill    float64
	findLayers   int
	findAssembly bool
)

var fabsFindCmd = &cobra.Command{
	Use:   "find",
	Short: "Find manufacturers compatible with a design",
	RunE:  runFabsFind,
}

func init() {
	rootCmd.AddCommand(fabsCmd)
	fabsCmd.AddCommand(fabsListCmd)
	fabsCmd.AddCommand(fabsCompareCmd)
	fabsCmd.AddCommand(fabsFindCmd)

	fabsCompareCmd.Flags().IntVar(&compareLayers, "layers", 2, "copper layer count")
	fabsCompareCmd.Flags().Float64Var(&compareCopper, "copper", 1.0, "copper weight in oz/ft²")

	fabsFindCmd.Flags().Float64Var(&findTrace, "trace", 0.15, "narrowest trace width in mm")
	fabsFindCmd.Flags().Float64Var(&findClear, "clearance", 0.15, "tightest clearance in mm")
	fabsFindCmd.Flags().Float64Var(&findDrill, "drill", 0.3, "smallest via drill in mm")
	fabsFindCmd.Flags().IntVar(&findLayers, "layers", 2, "copper layer count")
	fabsFindCmd.Flags().BoolVar(&findAssembly, "assembly", false, "require assembly service")
}

func runFabsList(cmd *cobra.Command, args []string) error {
	reg := rules.NewRegistry()
	for _, p := range reg.Profiles() {
		assembly := "no assembly"
		if p.Assembly {
			assembly = "assembly"
		}
		printer.Info("%-14s %-14s layers %v, %s", p.ID, p.Name, p.Layers, assembly)
		if p.PartsLibrary != "" {
			printer.Info(", parts: %s", p.PartsLibrary)
		}
		printer.Info("\n")
	}
	return nil
}

func runFabsCompare(cmd *cobra.Command, args []string) error {
	reg := rules.NewRegistry()
	resolved := reg.CompareDesignRules(compareLayers, compareCopper)
	if len(resolved) == 0 {
		return printer.Error("no profile supports %d layers", compareLayers)
	}

	printer.Info("%-14s %8s %8s %8s %8s %8s %8s\n",
		"profile", "trace", "clear", "drill", "via", "ring", "edge")
	for _, p := range reg.Profiles() {
		rs, ok := resolved[p.ID]
		if !ok {
			continue
		}
		printer.Info("%-14s %7.3f %8.3f %8.3f %8.3f %8.3f %8.3f\n",
			p.ID, rs.MinTraceWidth, rs.MinClearance, rs.MinViaDrill,
			rs.MinViaDiameter, rs.MinAnnularRing, rs.MinEdgeClearance)
	}
	return nil
}

func runFabsFind(cmd *cobra.Command, args []string) error {
	reg := rules.NewRegistry()
	matches := reg.FindCompatible(rules.Constraints{
		TraceWidth:    findTrace,
		Clearance:     findClear,
		ViaDrill:      findDrill,
		Layers:        findLayers,
		NeedsAssembly: findAssembly,
	})

	if len(matches) == 0 {
		printer.Warning("no compatible manufacturer found\n")
		return nil
	}
	for _, p := range matches {
		printer.Success("%s (%s)\n", p.Name, p.ID)
	}
	return nil
}
