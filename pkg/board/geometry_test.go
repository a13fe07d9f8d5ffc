package board

import (
	"math"
	"testing"
)

func TestPointSegmentDistance(t *testing.T) {
	tests := []struct {
		name    string
		p, a, b Position
		want    float64
	}{
		{"perpendicular foot inside", Position{5, 5}, Position{0, 0}, Position{10, 0}, 5},
		{"beyond segment end", Position{15, 0}, Position{0, 0}, Position{10, 0}, 5},
		{"degenerate segment", Position{3, 4}, Position{0, 0}, Position{0, 0}, 5},
		{"on the segment", Position{5, 0}, Position{0, 0}, Position{10, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PointSegmentDistance(tt.p, tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("got %f, want %f", got, tt.want)
			}
		})
	}
}

func TestSegmentDistance(t *testing.T) {
	tests := []struct {
		name           string
		a1, a2, b1, b2 Position
		want           float64
	}{
		{"parallel", Position{0, 0}, Position{10, 0}, Position{0, 2}, Position{10, 2}, 2},
		{"crossing", Position{0, 0}, Position{10, 10}, Position{0, 10}, Position{10, 0}, 0},
		{"touching endpoint", Position{0, 0}, Position{5, 0}, Position{5, 0}, Position{5, 5}, 0},
		{"offset diagonal", Position{0, 0}, Position{0, 10}, Position{3, 5}, Position{8, 5}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SegmentDistance(tt.a1, tt.a2, tt.b1, tt.b2)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("got %f, want %f", got, tt.want)
			}
		})
	}
}

func TestPointInPolygon(t *testing.T) {
	square := []Position{{0, 0}, {10, 0}, {10, 10}, {0, 10}}

	if !PointInPolygon(Position{5, 5}, square) {
		t.Error("center should be inside")
	}
	if PointInPolygon(Position{15, 5}, square) {
		t.Error("point right of square should be outside")
	}
	if !PointInPolygon(Position{0, 5}, square) {
		t.Error("point on edge should count as inside")
	}
	if PointInPolygon(Position{5, 5}, square[:2]) {
		t.Error("degenerate polygon contains nothing")
	}
}

func TestPolygonArea(t *testing.T) {
	square := []Position{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	if got := PolygonArea(square); math.Abs(got-100) > 1e-9 {
		t.Errorf("square area = %f, want 100", got)
	}

	triangle := []Position{{0, 0}, {4, 0}, {0, 3}}
	if got := PolygonArea(triangle); math.Abs(got-6) > 1e-9 {
		t.Errorf("triangle area = %f, want 6", got)
	}

	if got := PolygonArea([]Position{{1, 1}, {2, 2}}); got != 0 {
		t.Errorf("degenerate polygon area = %f, want 0", got)
	}
}

func TestBoundingBox(t *testing.T) {
	bb := NewBoundingBox()
	if !bb.IsEmpty() {
		t.Error("new bounding box should be empty")
	}

	bb.Expand(Position{2, 3})
	bb.Expand(Position{8, 1})
	if bb.Width() != 6 || bb.Height() != 2 {
		t.Errorf("got %fx%f, want 6x2", bb.Width(), bb.Height())
	}
	if !bb.Contains(Position{5, 2}) {
		t.Error("expanded box should contain interior point")
	}

	other := BoundingBox{Min: Position{7, 0}, Max: Position{9, 5}}
	if !bb.Intersects(other) {
		t.Error("boxes should intersect")
	}

	inflated := bb.Inflate(1)
	if inflated.Min.X != 1 || inflated.Max.Y != 4 {
		t.Errorf("inflate: got min %v max %v", inflated.Min, inflated.Max)
	}
}

func TestDistanceToPolygonEdge(t *testing.T) {
	square := []Position{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	if got := DistanceToPolygonEdge(Position{5, 2}, square); math.Abs(got-2) > 1e-9 {
		t.Errorf("interior point: got %f, want 2", got)
	}
	if got := DistanceToPolygonEdge(Position{12, 5}, square); math.Abs(got-2) > 1e-9 {
		t.Errorf("exterior point: got %f, want 2", got)
	}
}
