package board

import "math"

// Position is a point in board coordinates, millimeters.
// X grows to the right, Y grows downward (KiCad convention).
type Position struct {
	X float64
	Y float64
}

// Add returns the vector sum of two positions.
func (p Position) Add(q Position) Position {
	return Position{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the vector difference of two positions.
func (p Position) Sub(q Position) Position {
	return Position{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scale returns the position scaled by a scalar.
func (p Position) Scale(s float64) Position {
	return Position{X: p.X * s, Y: p.Y * s}
}

// Dot returns the dot product of two vectors.
func (p Position) Dot(q Position) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Length returns the vector length.
func (p Position) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// Distance returns the Euclidean distance to another position.
func (p Position) Distance(q Position) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Size is a width/height pair in millimeters.
type Size struct {
	W float64
	H float64
}

// BoundingBox represents a rectangular boundary
type BoundingBox struct {
	Min Position // Minimum (top-left) corner
	Max Position // Maximum (bottom-right) corner
}

// NewBoundingBox creates an empty bounding box
func NewBoundingBox() BoundingBox {
	return BoundingBox{
		Min: Position{X: 1e9, Y: 1e9},
		Max: Position{X: -1e9, Y: -1e9},
	}
}

// IsEmpty checks if the bounding box is empty
func (bb BoundingBox) IsEmpty() bool {
	return bb.Min.X > bb.Max.X || bb.Min.Y > bb.Max.Y
}

// Intersects checks if two bounding boxes intersect
func (bb BoundingBox) Intersects(other BoundingBox) bool {
	return bb.Min.X <= other.Max.X && bb.Max.X >= other.Min.X &&
		bb.Min.Y <= other.Max.Y && bb.Max.Y >= other.Min.Y
}

// Contains checks if a position is within the bounding box
func (bb BoundingBox) Contains(pos Position) bool {
	return pos.X >= bb.Min.X && pos.X <= bb.Max.X &&
		pos.Y >= bb.Min.Y && pos.Y <= bb.Max.Y
}

// Expand expands the bounding box to include a position
func (bb *BoundingBox) Expand(pos Position) {
	if pos.X < bb.Min.X {
		bb.Min.X = pos.X
	}
	if pos.Y < bb.Min.Y {
		bb.Min.Y = pos.Y
	}
	if pos.X > bb.Max.X {
		bb.Max.X = pos.X
	}
	if pos.Y > bb.Max.Y {
		bb.Max.Y = pos.Y
	}
}

// ExpandBox expands to include another bounding box
func (bb *BoundingBox) ExpandBox(other BoundingBox) {
	if !other.IsEmpty() {
		bb.Expand(other.Min)
		bb.Expand(other.Max)
	}
}

// Inflate grows the box by m on every side.
func (bb BoundingBox) Inflate(m float64) BoundingBox {
	return BoundingBox{
		Min: Position{X: bb.Min.X - m, Y: bb.Min.Y - m},
		Max: Position{X: bb.Max.X + m, Y: bb.Max.Y + m},
	}
}

// Width returns the width of the bounding box
func (bb BoundingBox) Width() float64 {
	return bb.Max.X - bb.Min.X
}

// Height returns the height of the bounding box
func (bb BoundingBox) Height() float64 {
	return bb.Max.Y - bb.Min.Y
}

// Center returns the center point of the bounding box
func (bb BoundingBox) Center() Position {
	return Position{X: (bb.Min.X + bb.Max.X) / 2, Y: (bb.Min.Y + bb.Max.Y) / 2}
}

// PointSegmentDistance returns the distance from point p to the segment a-b.
func PointSegmentDistance(p, a, b Position) float64 {
	ab := b.Sub(a)
	lenSq := ab.Dot(ab)
	if lenSq == 0 {
		return p.Distance(a)
	}
	t := p.Sub(a).Dot(ab) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return p.Distance(a.Add(ab.Scale(t)))
}

// SegmentDistance returns the minimum distance between segments a1-a2 and b1-b2.
// Touching or crossing segments have distance zero.
func SegmentDistance(a1, a2, b1, b2 Position) float64 {
	if segmentsIntersect(a1, a2, b1, b2) {
		return 0
	}
	d := PointSegmentDistance(a1, b1, b2)
	if v := PointSegmentDistance(a2, b1, b2); v < d {
		d = v
	}
	if v := PointSegmentDistance(b1, a1, a2); v < d {
		d = v
	}
	if v := PointSegmentDistance(b2, a1, a2); v < d {
		d = v
	}
	return d
}

func cross(o, a, b Position) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

func segmentsIntersect(a1, a2, b1, b2 Position) bool {
	d1 := cross(b1, b2, a1)
	d2 := cross(b1, b2, a2)
	d3 := cross(a1, a2, b1)
	d4 := cross(a1, a2, b2)
	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	// Collinear touch cases
	if d1 == 0 && onSegment(b1, b2, a1) {
		return true
	}
	if d2 == 0 && onSegment(b1, b2, a2) {
		return true
	}
	if d3 == 0 && onSegment(a1, a2, b1) {
		return true
	}
	if d4 == 0 && onSegment(a1, a2, b2) {
		return true
	}
	return false
}

func onSegment(a, b, p Position) bool {
	return math.Min(a.X, b.X) <= p.X && p.X <= math.Max(a.X, b.X) &&
		math.Min(a.Y, b.Y) <= p.Y && p.Y <= math.Max(a.Y, b.Y)
}

// PointInPolygon reports whether p lies inside the closed polygon poly
// (even-odd rule). Points exactly on an edge count as inside.
func PointInPolygon(p Position, poly []Position) bool {
	if len(poly) < 3 {
		return false
	}
	inside := false
	j := len(poly) - 1
	for i := 0; i < len(poly); i++ {
		a, b := poly[i], poly[j]
		if PointSegmentDistance(p, a, b) == 0 {
			return true
		}
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
			if p.X < x {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// PolygonArea returns the absolute area of a closed polygon (shoelace).
func PolygonArea(poly []Position) float64 {
	if len(poly) < 3 {
		return 0
	}
	sum := 0.0
	j := len(poly) - 1
	for i := 0; i < len(poly); i++ {
		sum += poly[j].X*poly[i].Y - poly[i].X*poly[j].Y
		j = i
	}
	return math.Abs(sum) / 2
}

// DistanceToPolygonEdge returns the minimum distance from p to the
// boundary of poly, regardless of whether p is inside or outside.
func DistanceToPolygonEdge(p Position, poly []Position) float64 {
	d := math.Inf(1)
	j := len(poly) - 1
	for i := 0; i < len(poly); i++ {
		if v := PointSegmentDistance(p, poly[j], poly[i]); v < d {
			d = v
		}
		j = i
	}
	return d
}
