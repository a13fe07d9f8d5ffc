package zone

import (
	"math"
	"sort"

	"github.com/OpenTraceLab/OpenTraceRoute/pkg/board"
)

// ThermalConfig parameterizes the simplified thermal-resistance model.
type ThermalConfig struct {
	RiseThreshold float64 // Hotspot threshold, °C above ambient
	ThetaJB       float64 // Baseline junction-to-board resistance, °C/W
	ViaFactor     float64 // Attenuation per thermal via under the footprint
	PlaneFactor   float64 // Attenuation per mm² of adjacent plane copper
}

// DefaultThermalConfig returns model constants for FR-4 boards with
// typical SMD packages.
func DefaultThermalConfig() *ThermalConfig {
	return &ThermalConfig{
		RiseThreshold: 40,
		ThetaJB:       60,
		ViaFactor:     0.3,
		PlaneFactor:   0.005,
	}
}

// Hotspot is a component whose estimated temperature rise exceeds the
// configured threshold.
type Hotspot struct {
	Reference       string  // Component reference designator
	Power           float64 // Supplied dissipation, W
	Rise            float64 // Estimated rise above ambient, °C
	ThermalVias     int     // Vias currently under the footprint
	RecommendedVias int     // Vias needed to bring the rise under the threshold
}

// ThermalReport holds the per-component rise estimates and the hotspots.
type ThermalReport struct {
	Rises    map[string]float64 // Reference → estimated rise, °C
	Hotspots []Hotspot          // Sorted by descending rise
}

// AnalyzeThermal estimates the local temperature rise of every
// component with a supplied power figure. The model is a
// junction-to-board resistance attenuated by the thermal vias under
// the footprint and the copper-plane area adjacent to it:
//
//	rise = θJB · P / (1 + viaFactor·vias + planeFactor·area)
//
// Components exceeding the threshold are reported with the via count
// that would bring them back under it.
func AnalyzeThermal(b *board.Board, power map[string]float64, cfg *ThermalConfig) *ThermalReport {
	if cfg == nil {
		cfg = DefaultThermalConfig()
	}
	report := &ThermalReport{Rises: make(map[string]float64)}

	for fi := range b.Footprints {
		fp := &b.Footprints[fi]
		p, ok := power[fp.Reference]
		if !ok || p <= 0 {
			continue
		}

		box := fp.BoundingBox()
		vias := viasUnder(b, box)
		area := adjacentPlaneArea(b, box)

		attenuation := 1 + cfg.ViaFactor*float64(vias) + cfg.PlaneFactor*area
		rise := cfg.ThetaJB * p / attenuation
		report.Rises[fp.Reference] = rise

		if rise <= cfg.RiseThreshold {
			continue
		}
		report.Hotspots = append(report.Hotspots, Hotspot{
			Reference:       fp.Reference,
			Power:           p,
			Rise:            rise,
			ThermalVias:     vias,
			RecommendedVias: recommendedVias(p, area, cfg),
		})
	}

	sort.Slice(report.Hotspots, func(i, j int) bool {
		if report.Hotspots[i].Rise != report.Hotspots[j].Rise {
			return report.Hotspots[i].Rise > report.Hotspots[j].Rise
		}
		return report.Hotspots[i].Reference < report.Hotspots[j].Reference
	})
	return report
}

// viasUnder counts vias inside a footprint's extent.
func viasUnder(b *board.Board, box board.BoundingBox) int {
	n := 0
	for i := range b.Vias {
		if box.Contains(b.Vias[i].Position) {
			n++
		}
	}
	return n
}

// adjacentPlaneArea sums the overlap between the footprint extent and
// each zone's outline extent, in mm².
func adjacentPlaneArea(b *board.Board, box board.BoundingBox) float64 {
	area := 0.0
	for i := range b.Zones {
		zb := outlineBox(b.Zones[i].Outline)
		if !box.Intersects(zb) {
			continue
		}
		w := math.Min(box.Max.X, zb.Max.X) - math.Max(box.Min.X, zb.Min.X)
		h := math.Min(box.Max.Y, zb.Max.Y) - math.Max(box.Min.Y, zb.Min.Y)
		if w > 0 && h > 0 {
			area += w * h
		}
	}
	return area
}

// recommendedVias solves the rise model for the smallest via count
// that brings the rise under the threshold.
func recommendedVias(power, planeArea float64, cfg *ThermalConfig) int {
	if cfg.ViaFactor <= 0 {
		return 0
	}
	needed := (cfg.ThetaJB*power/cfg.RiseThreshold - 1 - cfg.PlaneFactor*planeArea) / cfg.ViaFactor
	if needed <= 0 {
		return 0
	}
	return int(math.Ceil(needed))
}
