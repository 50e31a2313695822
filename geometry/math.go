package geometry

import "math"

// Epsilon is the tolerance used when comparing canvas coordinates.
const Epsilon = 1e-9

// Abs returns the absolute value of x.
func Abs(x float64) float64 {
	return math.Abs(x)
}

// Min returns the smaller of a and b.
func Min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func Max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// Clamp limits v to the closed range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Finite reports whether v is neither NaN nor an infinity.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// NearlyEqual compares two values within Epsilon.
func NearlyEqual(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon
}

// ManhattanDistance calculates the Manhattan distance between two points.
func ManhattanDistance(a, b Point) float64 {
	return Abs(b.X-a.X) + Abs(b.Y-a.Y)
}

// IsHorizontal returns true if the run from a to b spans more on x than on y.
func IsHorizontal(a, b Point) bool {
	return Abs(b.X-a.X) > Abs(b.Y-a.Y)
}

// IsVertical returns true if the run from a to b spans more on y than on x.
func IsVertical(a, b Point) bool {
	return Abs(b.Y-a.Y) > Abs(b.X-a.X)
}

// ClosestPointOnSegment projects p onto the segment a-b.
func ClosestPointOnSegment(p, a, b Point) Point {
	ab := b.Sub(a)
	lenSq := ab.LengthSquared()
	if lenSq == 0 {
		return a
	}
	t := Clamp(p.Sub(a).Dot(ab)/lenSq, 0, 1)
	return a.Add(ab.Scale(t))
}

// DistanceToSegment returns the distance from p to the nearest point of a-b.
func DistanceToSegment(p, a, b Point) float64 {
	return p.Distance(ClosestPointOnSegment(p, a, b))
}

// QuadAt evaluates a quadratic Bézier curve at t.
func QuadAt(p0, c, p1 Point, t float64) Point {
	mt := 1 - t
	return Point{
		X: mt*mt*p0.X + 2*mt*t*c.X + t*t*p1.X,
		Y: mt*mt*p0.Y + 2*mt*t*c.Y + t*t*p1.Y,
	}
}

// CubicAt evaluates a cubic Bézier curve at t.
func CubicAt(p0, c1, c2, p1 Point, t float64) Point {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	c := 3 * mt * t * t
	d := t * t * t
	return Point{
		X: a*p0.X + b*c1.X + c*c2.X + d*p1.X,
		Y: a*p0.Y + b*c1.Y + c*c2.Y + d*p1.Y,
	}
}

// ClipSegment clips the segment a→b to box. It reports false when no part
// of the segment lies inside.
func ClipSegment(a, b Point, box Box) (Point, Point, bool) {
	d := b.Sub(a)
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-d.X, a.X - box.Position.X},
		{d.X, box.Right() - a.X},
		{-d.Y, a.Y - box.Position.Y},
		{d.Y, box.Bottom() - a.Y},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return a, b, false
			}
			t0 = Max(t0, r)
		} else {
			if r < t0 {
				return a, b, false
			}
			t1 = Min(t1, r)
		}
	}
	return a.Lerp(b, t0), a.Lerp(b, t1), true
}
