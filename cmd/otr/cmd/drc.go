package cmd

import (
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceRoute/internal/printer"
	"github.com/OpenTraceLab/OpenTraceRoute/pkg/drc"
	"github.com/OpenTraceLab/OpenTraceRoute/pkg/route"
	"github.com/OpenTraceLab/OpenTraceRoute/pkg/rules"
)

var (
	drcFab    string
	drcLayers int
	drcCopper float64
)

var drcCmd = &cobra.Command{
	Use:   "drc",
	Short: "Run design rule checks on the routed demo board",
	Long: `Routes the demo board, then validates the result against the selected
fabricator's design rules. Every violation is enumerated; errors are
manufacturing blockers, warnings are cosmetic.`,
	RunE: runDRC,
}

func init() {
	rootCmd.AddCommand(drcCmd)
	drcCmd.Flags().StringVar(&drcFab, "fab", "jlcpcb", "manufacturer profile id")
	drcCmd.Flags().IntVar(&drcLayers, "layers", 2, "copper layer count")
	drcCmd.Flags().Float64Var(&drcCopper, "copper", 1.0, "copper weight in oz/ft²")
}

func runDRC(cmd *cobra.Command, args []string) error {
	reg := rules.NewRegistry()
	rs, err := resolveRules(reg, drcFab, drcLayers, drcCopper)
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

	report := drc.Check(b, rs)
	for _, v := range report.Violations {
		if v.Severity == drc.SeverityError {
			printer.Fail("%s\n", v)
		} else {
			printer.Warning("%s\n", v)
		}
	}

	errs, warns := report.Errors(), report.Warnings()
	printer.Info("\n%d errors, %d warnings\n", len(errs), len(warns))
	if report.Clean() {
		printer.Success("board passes %s design rules\n", drcFab)
	}
	return nil
}
