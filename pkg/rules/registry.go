package rules

import (
	"sort"
)

// Registry is a read-only catalog of manufacturer profiles, built once
// at process start.
type Registry struct {
	profiles map[string]*ManufacturerProfile
	order    []string // IDs sorted by name for stable iteration
}

// NewRegistry returns a registry populated with the built-in profile
// table. The registry is immutable after construction.
func NewRegistry() *Registry {
	r := &Registry{profiles: make(map[string]*ManufacturerProfile)}
	for i := range builtinProfiles {
		p := &builtinProfiles[i]
		r.profiles[p.ID] = p
	}
	for id := range r.profiles {
		r.order = append(r.order, id)
	}
	sort.Slice(r.order, func(i, j int) bool {
		return r.profiles[r.order[i]].Name < r.profiles[r.order[j]].Name
	})
	return r
}

// Profile returns the profile with the given ID.
func (r *Registry) Profile(id string) (*ManufacturerProfile, error) {
	p, ok := r.profiles[id]
	if !ok {
		return nil, &ProfileError{Reason: UnknownManufacturer, Manufacturer: id}
	}
	return p, nil
}

// Profiles returns every registered profile, ordered by display name.
func (r *Registry) Profiles() []*ManufacturerProfile {
	out := make([]*ManufacturerProfile, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.profiles[id])
	}
	return out
}

// CompareDesignRules resolves the rule set of every profile that
// supports the given layer count and copper weight, keyed by profile ID.
// Profiles that cannot fabricate the layer count are omitted.
func (r *Registry) CompareDesignRules(layers int, copperOz float64) map[string]RuleSet {
	out := make(map[string]RuleSet)
	for _, id := range r.order {
		rs, err := r.profiles[id].DesignRules(layers, copperOz)
		if err != nil {
			continue
		}
		out[id] = rs
	}
	return out
}

// Constraints describes the design parameters a fabricator must be able
// to build.
type Constraints struct {
	TraceWidth    float64 // Narrowest trace used, mm
	Clearance     float64 // Tightest copper gap used, mm
	ViaDrill      float64 // Smallest via drill used, mm
	Layers        int     // Copper layer count
	CopperOz      float64 // Copper weight, oz/ft² (0 means 1 oz)
	NeedsAssembly bool    // Require an assembly service
}

// FindCompatible returns the profiles that can fabricate a design with
// the given constraints: the resolved rule set's minimums must all be
// at or below the supplied values, the layer count must be supported,
// and assembly must be offered when required. The result is ordered by
// ascending minimum trace width, then name, for deterministic output.
func (r *Registry) FindCompatible(c Constraints) []*ManufacturerProfile {
	copperOz := c.CopperOz
	if copperOz == 0 {
		copperOz = 1
	}

	type match struct {
		profile *ManufacturerProfile
		rules   RuleSet
	}
	var matches []match
	for _, id := range r.order {
		p := r.profiles[id]
		if !p.SupportsLayers(c.Layers) {
			continue
		}
		if c.NeedsAssembly && !p.Assembly {
			continue
		}
		rs, err := p.DesignRules(c.Layers, copperOz)
		if err != nil {
			continue
		}
		if rs.MinTraceWidth > c.TraceWidth || rs.MinClearance > c.Clearance || rs.MinViaDrill > c.ViaDrill {
			continue
		}
		matches = append(matches, match{profile: p, rules: rs})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].rules.MinTraceWidth != matches[j].rules.MinTraceWidth {
			return matches[i].rules.MinTraceWidth < matches[j].rules.MinTraceWidth
		}
		return matches[i].profile.Name < matches[j].profile.Name
	})

	out := make([]*ManufacturerProfile, len(matches))
	for i, m := range matches {
		out[i] = m.profile
	}
	return out
}
