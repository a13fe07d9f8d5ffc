package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "otr",
	Short: "OpenTraceRoute - PCB autorouting, DRC, and fabrication rules",
	Long: `OpenTraceRoute (otr) routes placed PCB designs and validates the result:
  - Autorouting with Monte Carlo trial selection
  - Design rule checking against manufacturer capabilities
  - Manufacturer comparison and compatibility search
  - Copper pour generation and thermal analysis

Examples:
  otr route --trials 16 --fab jlcpcb    # Route the demo board
  otr drc --fab jlcpcb --layers 2       # Check the routed demo board
  otr fabs compare --layers 4           # Compare fabricator rule sets
  otr fabs find --trace 0.15 --layers 4 # Find compatible fabricators`,
	Version: "0.1.0",
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
