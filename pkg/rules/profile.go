// Package rules holds the manufacturer capability catalog and resolves
// concrete design rules from a fabricator profile, layer count, and
// copper weight.
package rules

import (
	"errors"
	"fmt"
)

// RuleSet is the concrete set of fabrication limits a design must meet.
// All dimensions are millimeters.
type RuleSet struct {
	MinTraceWidth    float64 // Minimum trace width
	MinClearance     float64 // Minimum copper-to-copper clearance
	MinViaDrill      float64 // Minimum via drill diameter
	MinViaDiameter   float64 // Minimum via pad diameter
	MinAnnularRing   float64 // Minimum annular ring
	MinEdgeClearance float64 // Minimum copper-to-board-edge distance
}

// ManufacturerProfile describes one fabricator's capabilities. Profiles
// are static data; the rules for a given layer count and copper weight
// are derived on demand.
type ManufacturerProfile struct {
	ID           string // Stable identifier (e.g., "jlcpcb")
	Name         string // Display name
	Layers       []int  // Supported layer counts
	Assembly     bool   // Offers assembly service
	PartsLibrary string // Parts-library tag ("" when none)

	// Base rule sets keyed by layer count. Trace width scales with
	// copper weight on top of these.
	base map[int]RuleSet
}

// SupportsLayers reports whether the profile can fabricate a board with
// the given copper layer count.
func (p *ManufacturerProfile) SupportsLayers(layers int) bool {
	for _, l := range p.Layers {
		if l == layers {
			return true
		}
	}
	return false
}

// DesignRules resolves the profile's rule set for the given layer count
// and copper weight in oz/ft². Heavier copper requires wider traces for
// the same etch tolerance, so minimum trace width is monotonic in
// copper weight; via and annular-ring limits follow the layer-count
// table only.
func (p *ManufacturerProfile) DesignRules(layers int, copperOz float64) (RuleSet, error) {
	base, ok := p.base[layers]
	if !ok {
		return RuleSet{}, &ProfileError{
			Reason:       UnsupportedLayerCount,
			Manufacturer: p.ID,
			Layers:       layers,
		}
	}
	rs := base
	rs.MinTraceWidth = base.MinTraceWidth * copperWidthScale(copperOz)
	rs.MinClearance = base.MinClearance * copperWidthScale(copperOz)
	return rs, nil
}

// copperWidthScale maps copper weight to a trace width/clearance
// multiplier. 1 oz is the baseline; each additional ounce widens the
// minimum by 60%. The function is non-decreasing, which keeps resolved
// rules monotonic in copper weight.
func copperWidthScale(copperOz float64) float64 {
	if copperOz <= 1 {
		return 1
	}
	return 1 + 0.6*(copperOz-1)
}

// ProfileErrorReason classifies a rule-lookup failure.
type ProfileErrorReason string

const (
	UnknownManufacturer   ProfileErrorReason = "unknown_manufacturer"
	UnsupportedLayerCount ProfileErrorReason = "unsupported_layer_count"
)

// ProfileError is returned by rule-lookup APIs. It never affects an
// in-progress routing run; a run that depends on a missing profile
// fails before any routing starts.
type ProfileError struct {
	Reason       ProfileErrorReason
	Manufacturer string
	Layers       int
}

func (e *ProfileError) Error() string {
	switch e.Reason {
	case UnsupportedLayerCount:
		return fmt.Sprintf("rules: %s does not fabricate %d-layer boards", e.Manufacturer, e.Layers)
	default:
		return fmt.Sprintf("rules: unknown manufacturer %q", e.Manufacturer)
	}
}

// IsProfileError reports whether err is a ProfileError with the given reason.
func IsProfileError(err error, reason ProfileErrorReason) bool {
	var pe *ProfileError
	return errors.As(err, &pe) && pe.Reason == reason
}
