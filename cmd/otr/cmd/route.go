package cmd

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceRoute/internal/printer"
	"github.com/OpenTraceLab/OpenTraceRoute/pkg/board"
	"github.com/OpenTraceLab/OpenTraceRoute/pkg/route"
	"github.com/OpenTraceLab/OpenTraceRoute/pkg/rules"
)

var (
	routeFab     string
	routeLayers  int
	routeCopper  float64
	routeTrials  int
	routeSeed    int64
	routeTimeout time.Duration
	routeNoVias  bool
)

var routeCmd = &cobra.Command{
	Use:   "route",
	Short: "Route the demo board with Monte Carlo trials",
	Long: `Routes every net of the demo board under the selected fabricator's
design rules. The best of N randomized trials is committed; per-net
status and aggregate totals are reported.`,
	RunE: runRoute,
}

func init() {
	rootCmd.AddCommand(routeCmd)
	routeCmd.Flags().StringVar(&routeFab, "fab", "jlcpcb", "manufacturer profile id")
	routeCmd.Flags().IntVar(&routeLayers, "layers", 2, "copper layer count")
	routeCmd.Flags().Float64Var(&routeCopper, "copper", 1.0, "copper weight in oz/ft²")
	routeCmd.Flags().IntVar(&routeTrials, "trials", 8, "Monte Carlo trial count")
	routeCmd.Flags().Int64Var(&routeSeed, "seed", 1, "random seed")
	routeCmd.Flags().DurationVar(&routeTimeout, "timeout", 0, "overall routing budget (0 = none)")
	routeCmd.Flags().BoolVar(&routeNoVias, "no-vias", false, "disallow via insertion")
}

func runRoute(cmd *cobra.Command, args []string) error {
	reg := rules.NewRegistry()
	rs, err := resolveRules(reg, routeFab, routeLayers, routeCopper)
	if err != nil {
		return printer.Error("rule lookup failed: %v", err)
	}

	b := demoBoard()
	cfg := route.DefaultConfig()
	cfg.Trials = routeTrials
	cfg.Seed = routeSeed
	cfg.AllowVias = !routeNoVias

	router, err := route.New(b, rs, cfg)
	if err != nil {
		return printer.Error("router setup failed: %v", err)
	}

	ctx := cmd.Context()
	if routeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, routeTimeout)
		defer cancel()
	}

	bbox := b.GetBoundingBox()
	printer.Step("routing %d nets on %.0fx%.0fmm board, %d trials, seed %d\n",
		len(b.Nets), bbox.Width(), bbox.Height(), cfg.Trials, cfg.Seed)
	if verbose {
		printer.Info("nets: %s\n", strings.Join(b.GetAllNetNames(), ", "))
		lm := board.NewLayerMap(b.Layers)
		for i := 0; i < len(b.Layers); i++ {
			if l, ok := lm.GetByNumber(i); ok && l.IsCopper() {
				printer.Info("copper %d: %s\n", l.Number, l.Name)
			}
		}
	}
	result, err := router.RouteAll(ctx)
	if err != nil {
		return printer.Error("routing failed: %v", err)
	}

	for _, n := range result.Nets {
		switch n.Status {
		case route.StatusRouted:
			printer.Success("%-8s %2d tracks, %d vias, %.2fmm\n", n.Net, n.TrackCount, n.ViaCount, n.TraceLength)
		case route.StatusFailed:
			printer.Fail("%-8s failed: %s\n", n.Net, n.Reason)
		}
	}

	printer.Info("\n%d/%d nets routed (%.1f%%), %d vias, %.2fmm total trace\n",
		result.RoutedCount, result.TotalCount, result.CompletionPercent(),
		result.ViaCount, result.TraceLength)
	if verbose {
		printer.Info("winning trial %d of %d, seed %d\n", result.WinningTrial, result.TrialsRun, result.Seed)
	}
	if len(result.Failed()) > 0 {
		printer.Warning("%d nets could not be routed\n", len(result.Failed()))
	}
	return nil
}
