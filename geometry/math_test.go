package geometry

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-2, 0, 1, 0},
		{7, 0, 1, 1},
		{0.45, -0.45, 0.45, 0.45},
	}
	for _, tt := range tests {
		if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestFinite(t *testing.T) {
	if !Finite(5) {
		t.Error("5 should be finite")
	}
	if Finite(math.NaN()) || Finite(math.Inf(1)) || Finite(math.Inf(-1)) {
		t.Error("NaN and infinities should not be finite")
	}
}

func TestDistanceToSegment(t *testing.T) {
	a, b := Pt(0, 0), Pt(10, 0)

	tests := []struct {
		name string
		p    Point
		want float64
	}{
		{"above middle", Pt(5, 3), 3},
		{"past end", Pt(14, 3), 5},
		{"before start", Pt(-3, -4), 5},
		{"on segment", Pt(2, 0), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DistanceToSegment(tt.p, a, b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}

	// Degenerate segment collapses to a point
	if got := DistanceToSegment(Pt(3, 4), a, a); got != 5 {
		t.Errorf("degenerate segment distance: got %v, want 5", got)
	}
}

func TestBezierEndpoints(t *testing.T) {
	p0, c1, c2, p1 := Pt(0, 0), Pt(40, 0), Pt(60, 100), Pt(100, 100)
	if got := CubicAt(p0, c1, c2, p1, 0); got != p0 {
		t.Errorf("CubicAt(0) = %v, want %v", got, p0)
	}
	if got := CubicAt(p0, c1, c2, p1, 1); got != p1 {
		t.Errorf("CubicAt(1) = %v, want %v", got, p1)
	}
	if got := CubicAt(p0, c1, c2, p1, 0.5); got != Pt(50, 50) {
		t.Errorf("CubicAt(0.5) = %v, want (50,50)", got)
	}
	if got := QuadAt(p0, Pt(10, 0), Pt(10, 10), 1); got != Pt(10, 10) {
		t.Errorf("QuadAt(1) = %v, want (10,10)", got)
	}
}

func TestBoxGeometry(t *testing.T) {
	b := NewBox(10, 20, 100, 60)

	if c := b.Center(); c != Pt(60, 50) {
		t.Errorf("Center: got %v, want (60,50)", c)
	}
	if !b.Contains(Pt(110, 80)) {
		t.Error("bottom-right corner should be contained")
	}
	if b.Contains(Pt(111, 80)) {
		t.Error("point right of box should not be contained")
	}

	u := b.Union(NewBox(0, 0, 5, 5))
	if u != NewBox(0, 0, 110, 80) {
		t.Errorf("Union: got %+v", u)
	}

	bounds := Bounds([]Point{{3, 4}, {-1, 9}, {7, 2}})
	if bounds != NewBox(-1, 2, 8, 7) {
		t.Errorf("Bounds: got %+v", bounds)
	}
}

func TestPointVectorOps(t *testing.T) {
	p := Pt(3, 4)
	if p.Length() != 5 {
		t.Errorf("Length: got %v, want 5", p.Length())
	}
	if n := p.Normalize(); math.Abs(n.Length()-1) > 1e-12 {
		t.Errorf("Normalize length: got %v", n.Length())
	}
	if z := (Point{}).Normalize(); !z.IsZero() {
		t.Errorf("zero vector should normalize to zero, got %v", z)
	}
	if m := Pt(0, 0).Lerp(Pt(10, 20), 0.25); m != Pt(2.5, 5) {
		t.Errorf("Lerp: got %v", m)
	}
}

func TestClipSegment(t *testing.T) {
	box := NewBox(0, 0, 100, 50)
	tests := []struct {
		name   string
		a, b   Point
		ok     bool
		wa, wb Point
	}{
		{"inside", Pt(10, 10), Pt(90, 40), true, Pt(10, 10), Pt(90, 40)},
		{"crosses horizontally", Pt(-1e7, 25), Pt(1e7, 25), true, Pt(0, 25), Pt(100, 25)},
		{"enters from above", Pt(50, -1e9), Pt(50, 20), true, Pt(50, 0), Pt(50, 20)},
		{"diagonal", Pt(-50, -25), Pt(150, 75), true, Pt(0, 0), Pt(100, 50)},
		{"outside parallel", Pt(-10, 60), Pt(200, 60), false, Point{}, Point{}},
		{"misses corner", Pt(90, -20), Pt(130, 20), false, Point{}, Point{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b, ok := ClipSegment(tt.a, tt.b, box)
			if ok != tt.ok {
				t.Fatalf("ok: got %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if a.Distance(tt.wa) > 1e-6 || b.Distance(tt.wb) > 1e-6 {
				t.Errorf("got %v→%v, want %v→%v", a, b, tt.wa, tt.wb)
			}
		})
	}
}
