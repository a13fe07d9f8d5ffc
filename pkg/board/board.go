package board

import (
	"github.com/google/uuid"
)

// Board represents a complete placed PCB design. It is built once per run
// by the loader, mutated in place by the router and zone generator, and
// read-only during DRC.
type Board struct {
	Name       string      // Design name
	Layers     []Layer     // Layer definitions, copper top-to-bottom
	Outline    []Position  // Board edge, closed polygon in mm
	Nets       []Net       // Electrical nets
	Footprints []Footprint // Component footprints
	Tracks     []Track     // Track segments
	Vias       []Via       // Vias
	Zones      []Zone      // Filled copper zones
	KeepOuts   []KeepOut   // Regions excluded from zone fill
}

// Footprint represents a placed component footprint
type Footprint struct {
	Library   string     // Library name
	Name      string     // Footprint name
	Reference string     // Reference designator (e.g., "R1")
	Value     string     // Component value
	Layer     string     // Mounting layer (F.Cu or B.Cu typically)
	Position  Position   // Placement position
	Rotation  float64    // Rotation in degrees
	Pads      []Pad      // Pads, positions in board coordinates
	Courtyard []Position // Courtyard polygon for overlap checking
	Silk      []SilkLine // Silkscreen legend lines
}

// PadShape is the copper shape of a pad.
type PadShape string

const (
	ShapeCircle PadShape = "circle"
	ShapeRect   PadShape = "rect"
	ShapeOval   PadShape = "oval"
)

// Pad represents a footprint pad. Positions are absolute board
// coordinates; the loader resolves footprint placement and rotation.
type Pad struct {
	Number   string   // Pad number/name
	Shape    PadShape // Pad shape
	Position Position // Pad center in board coordinates
	Size     Size     // Pad size
	Drill    float64  // Drill diameter (0 for SMD)
	Layers   []string // Layers the pad appears on
	Net      *Net     // Connected net (nil for unconnected pads)
}

// OnLayer reports whether the pad has copper on the given layer.
func (p *Pad) OnLayer(layer string) bool {
	for _, l := range p.Layers {
		if l == layer {
			return true
		}
	}
	return false
}

// SilkLine is a single silkscreen stroke.
type SilkLine struct {
	Start Position
	End   Position
	Width float64
	Layer string // F.SilkS or B.SilkS
}

// Track represents a copper track segment
type Track struct {
	ID    uuid.UUID // Unique identifier
	Start Position  // Start point
	End   Position  // End point
	Width float64   // Track width in mm
	Layer string    // Layer name
	Net   *Net      // Owning net
}

// Length returns the segment length in mm.
func (t *Track) Length() float64 {
	return t.Start.Distance(t.End)
}

// Via represents a plated through-hole connecting two copper layers.
type Via struct {
	ID       uuid.UUID // Unique identifier
	Position Position  // Via position
	Size     float64   // Via pad diameter
	Drill    float64   // Drill diameter
	Layers   [2]string // The two copper layers bridged
	Net      *Net      // Owning net
}

// AnnularRing returns the copper ring width around the drill. It is
// always recomputed from the current dimensions, never cached.
func (v *Via) AnnularRing() float64 {
	return (v.Size - v.Drill) / 2
}

// Zone represents a filled copper zone
type Zone struct {
	ID       uuid.UUID       // Unique identifier
	Net      *Net            // Owning net
	Layer    string          // Layer name
	Priority int             // Higher priority overrides lower on overlap
	Outline  []Position      // Fill polygon outer boundary
	Holes    [][]Position    // Keep-out cutouts inside the outline
	Reliefs  []ThermalRelief // Spoke connections to own-net pads
}

// ThermalRelief is a spoke-style connection between a zone and a pad of
// the zone's own net, limiting thermal mass during soldering.
type ThermalRelief struct {
	Pad        Position // Pad center
	SpokeWidth float64  // Width of each spoke
	SpokeCount int      // Number of spokes (typically 4)
}

// KeepOut excludes a region from zone fill on one layer.
type KeepOut struct {
	Layer  string
	Region []Position
}

// GetNet returns a net by name, or nil if not found
func (b *Board) GetNet(name string) *Net {
	for i := range b.Nets {
		if b.Nets[i].Name == name {
			return &b.Nets[i]
		}
	}
	return nil
}

// GetNetPads returns all pads connected to a specific net
func (b *Board) GetNetPads(netName string) []Pad {
	var pads []Pad
	for _, fp := range b.Footprints {
		for _, pad := range fp.Pads {
			if pad.Net != nil && pad.Net.Name == netName {
				pads = append(pads, pad)
			}
		}
	}
	return pads
}

// GetNetTracks returns all tracks connected to a specific net
func (b *Board) GetNetTracks(netName string) []Track {
	var tracks []Track
	for _, track := range b.Tracks {
		if track.Net != nil && track.Net.Name == netName {
			tracks = append(tracks, track)
		}
	}
	return tracks
}

// GetNetVias returns all vias connected to a specific net
func (b *Board) GetNetVias(netName string) []Via {
	var vias []Via
	for _, via := range b.Vias {
		if via.Net != nil && via.Net.Name == netName {
			vias = append(vias, via)
		}
	}
	return vias
}

// NetInfo contains information about a net and its connections
type NetInfo struct {
	Net    *Net
	Pads   []Pad
	Tracks []Track
	Vias   []Via
}

// GetNetInfo returns complete information about a net
func (b *Board) GetNetInfo(netName string) *NetInfo {
	net := b.GetNet(netName)
	if net == nil {
		return nil
	}

	return &NetInfo{
		Net:    net,
		Pads:   b.GetNetPads(netName),
		Tracks: b.GetNetTracks(netName),
		Vias:   b.GetNetVias(netName),
	}
}

// GetAllNetNames returns a list of all net names in the board
func (b *Board) GetAllNetNames() []string {
	names := make([]string, len(b.Nets))
	for i, net := range b.Nets {
		names[i] = net.Name
	}
	return names
}

// TotalTraceLength returns the summed length of all tracks in mm.
func (b *Board) TotalTraceLength() float64 {
	total := 0.0
	for i := range b.Tracks {
		total += b.Tracks[i].Length()
	}
	return total
}

// GetBoundingBox calculates the bounding box of the entire board.
// Includes the outline, tracks, pads, and vias.
func (b *Board) GetBoundingBox() BoundingBox {
	bbox := NewBoundingBox()

	for _, p := range b.Outline {
		bbox.Expand(p)
	}

	for _, track := range b.Tracks {
		bbox.Expand(track.Start)
		bbox.Expand(track.End)
	}

	for _, via := range b.Vias {
		radius := via.Size / 2.0
		bbox.Expand(Position{X: via.Position.X - radius, Y: via.Position.Y - radius})
		bbox.Expand(Position{X: via.Position.X + radius, Y: via.Position.Y + radius})
	}

	for i := range b.Footprints {
		bbox.ExpandBox(b.Footprints[i].BoundingBox())
	}

	return bbox
}

// BoundingBox returns the extent of a footprint's pads, or its
// courtyard when one is defined.
func (fp *Footprint) BoundingBox() BoundingBox {
	bbox := NewBoundingBox()
	if len(fp.Courtyard) >= 3 {
		for _, p := range fp.Courtyard {
			bbox.Expand(p)
		}
		return bbox
	}
	for _, pad := range fp.Pads {
		half := Position{X: pad.Size.W / 2, Y: pad.Size.H / 2}
		bbox.Expand(pad.Position.Sub(half))
		bbox.Expand(pad.Position.Add(half))
	}
	return bbox
}
