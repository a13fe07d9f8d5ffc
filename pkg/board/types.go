package board

// LayerRole describes what a layer is used for.
type LayerRole string

const (
	RoleSignal LayerRole = "signal" // copper, routable
	RolePlane  LayerRole = "plane"  // copper, reserved for pours
	RoleSilk   LayerRole = "silk"   // silkscreen legend
	RoleMask   LayerRole = "mask"   // solder mask
)

// Layer represents a PCB layer
type Layer struct {
	Number int       // Layer number (ordinal, copper ordered top-to-bottom)
	Name   string    // Layer name (e.g., "F.Cu", "B.Cu", "F.SilkS")
	Role   LayerRole // Layer role
}

// IsCopper reports whether the layer carries copper.
func (l Layer) IsCopper() bool {
	return l.Role == RoleSignal || l.Role == RolePlane
}

// NetClass categorizes a net for routing priority and rule selection.
type NetClass string

const (
	ClassSignal   NetClass = "signal"
	ClassPower    NetClass = "power"
	ClassCritical NetClass = "critical"
	ClassDiffPair NetClass = "diff_pair"
)

// Net represents an electrical net
type Net struct {
	Number   int      // Net number (ordinal, 0 is reserved for unconnected)
	Name     string   // Net name (e.g., "GND", "+5V")
	Class    NetClass // Routing priority class
	MinWidth float64  // Explicit minimum trace width override in mm (0 = use ruleset)
	PairWith string   // Partner net name for differential pair members
}

// IsDiffPair reports whether the net is half of a differential pair.
func (n *Net) IsDiffPair() bool {
	return n.Class == ClassDiffPair && n.PairWith != ""
}

// LayerMap provides efficient lookup of layers by number or name
type LayerMap struct {
	byNumber map[int]*Layer
	byName   map[string]*Layer
	copper   []string
}

// NewLayerMap creates a LayerMap from a slice of layers
func NewLayerMap(layers []Layer) *LayerMap {
	lm := &LayerMap{
		byNumber: make(map[int]*Layer),
		byName:   make(map[string]*Layer),
	}

	for i := range layers {
		layer := &layers[i]
		lm.byNumber[layer.Number] = layer
		lm.byName[layer.Name] = layer
		if layer.IsCopper() {
			lm.copper = append(lm.copper, layer.Name)
		}
	}

	return lm
}

// GetByName retrieves a layer by its name (e.g., "F.Cu")
func (lm *LayerMap) GetByName(name string) (*Layer, bool) {
	layer, ok := lm.byName[name]
	return layer, ok
}

// GetByNumber retrieves a layer by its number
func (lm *LayerMap) GetByNumber(num int) (*Layer, bool) {
	layer, ok := lm.byNumber[num]
	return layer, ok
}

// IsCopperLayer checks if a layer is a copper layer
func (lm *LayerMap) IsCopperLayer(name string) bool {
	layer, ok := lm.byName[name]
	if !ok {
		return false
	}
	return layer.IsCopper()
}

// CopperLayers returns copper layer names in top-to-bottom order.
func (lm *LayerMap) CopperLayers() []string {
	return lm.copper
}

// NetMap provides efficient lookup of nets by number or name
type NetMap struct {
	byNumber map[int]*Net
	byName   map[string]*Net
}

// NewNetMap creates a NetMap from a slice of nets
func NewNetMap(nets []Net) *NetMap {
	nm := &NetMap{
		byNumber: make(map[int]*Net),
		byName:   make(map[string]*Net),
	}

	for i := range nets {
		net := &nets[i]
		nm.byNumber[net.Number] = net
		// Only index non-empty names
		if net.Name != "" {
			nm.byName[net.Name] = net
		}
	}

	return nm
}

// GetByName retrieves a net by its name (e.g., "GND", "+5V")
func (nm *NetMap) GetByName(name string) (*Net, bool) {
	net, ok := nm.byName[name]
	return net, ok
}

// GetByNumber retrieves a net by its number
func (nm *NetMap) GetByNumber(num int) (*Net, bool) {
	net, ok := nm.byNumber[num]
	return net, ok
}

// IsUnconnected checks if a net number represents an unconnected net.
// Net 0 is reserved for unconnected pads.
func (nm *NetMap) IsUnconnected(num int) bool {
	return num == 0
}
