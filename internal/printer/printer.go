// Package printer provides colored terminal output helpers for the otr
// command line.
package printer

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

func init() {
	// Force color output even when not connected to a TTY. Users can
	// disable with the NO_COLOR environment variable.
	if os.Getenv("NO_COLOR") == "" {
		color.NoColor = false
	}
}

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan)
)

// Success prints a success message in green with a checkmark prefix
func Success(format string, a ...any) {
	green.Printf("✓ "+format, a...)
}

// Info prints an informational message in the default color
func Info(format string, a ...any) {
	fmt.Printf(format, a...)
}

// Warning prints a warning message in yellow
func Warning(format string, a ...any) {
	yellow.Printf("⚠ "+format, a...)
}

// Fail prints a failure line in red
func Fail(format string, a ...any) {
	red.Printf("✗ "+format, a...)
}

// Step prints a step message with emphasis (used in multi-step operations)
func Step(format string, a ...any) {
	cyan.Printf("→ "+format, a...)
}

// Error prints a formatted error to stderr and returns a plain error
// for cobra to propagate.
func Error(format string, a ...any) error {
	red.Fprintf(os.Stderr, format+"\n", a...)
	return fmt.Errorf(format, a...)
}
