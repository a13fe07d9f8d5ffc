package route

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTraceRoute/pkg/rules"
)

// Config controls the behavior of the router.
type Config struct {
	// Grid settings
	GridStep float64 // Cell pitch in mm (0 = derive from the active rule set)

	// Cost model
	ViaPenalty       float64 // Extra cost per layer change, in mm of equivalent trace
	CongestionWeight float64 // Cost per occupancy count when entering a congested cell

	// Budgets
	MaxSearchSteps int // Pathfinding expansions allowed per pad pair
	Trials         int // Monte Carlo trials to run
	Workers        int // Parallel trial workers (0 = GOMAXPROCS)
	Seed           int64

	// Via insertion
	AllowVias bool

	// Differential pairs
	DiffPairGap          float64 // Inter-trace gap in mm
	LengthMatchTolerance float64 // Acceptable length mismatch in mm
	SerpentineAmplitude  float64 // Detour amplitude used for length matching
}

// DefaultConfig returns a Config with sensible defaults for most boards.
func DefaultConfig() *Config {
	return &Config{
		GridStep:             0,
		ViaPenalty:           5.0,
		CongestionWeight:     0.5,
		MaxSearchSteps:       200000,
		Trials:               8,
		Workers:              0,
		Seed:                 1,
		AllowVias:            true,
		DiffPairGap:          0.2,
		LengthMatchTolerance: 0.1,
		SerpentineAmplitude:  1.0,
	}
}

// Validate checks the configuration and fills derived values. The grid
// pitch defaults to trace width plus clearance so that traces in
// adjacent cells are exactly one clearance apart.
func (c *Config) Validate(rs rules.RuleSet) error {
	if c.GridStep < 0 {
		return fmt.Errorf("route: negative grid step %f", c.GridStep)
	}
	if c.GridStep == 0 {
		c.GridStep = rs.MinTraceWidth + rs.MinClearance
	}
	if c.GridStep <= 0 {
		return fmt.Errorf("route: rule set yields zero grid step")
	}
	if c.Trials < 1 {
		c.Trials = 1
	}
	if c.MaxSearchSteps < 1 {
		c.MaxSearchSteps = DefaultConfig().MaxSearchSteps
	}
	if c.ViaPenalty < 0 {
		c.ViaPenalty = 0
	}
	if c.CongestionWeight < 0 {
		c.CongestionWeight = 0
	}
	if c.DiffPairGap < rs.MinClearance {
		c.DiffPairGap = rs.MinClearance
	}
	if c.LengthMatchTolerance <= 0 {
		c.LengthMatchTolerance = DefaultConfig().LengthMatchTolerance
	}
	if c.SerpentineAmplitude <= 0 {
		c.SerpentineAmplitude = DefaultConfig().SerpentineAmplitude
	}
	return nil
}
