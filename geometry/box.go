package geometry

// Size is the width and height of a box.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Box is an axis-aligned rectangle with its top-left corner at Position.
type Box struct {
	Position Point `json:"position"`
	Size     Size  `json:"size"`
}

// NewBox builds a box from its top-left corner and size.
func NewBox(x, y, w, h float64) Box {
	return Box{Position: Point{X: x, Y: y}, Size: Size{Width: w, Height: h}}
}

// Center returns the center point of the box.
func (b Box) Center() Point {
	return Point{
		X: b.Position.X + b.Size.Width/2,
		Y: b.Position.Y + b.Size.Height/2,
	}
}

// Right returns the x coordinate of the right edge.
func (b Box) Right() float64 {
	return b.Position.X + b.Size.Width
}

// Bottom returns the y coordinate of the bottom edge.
func (b Box) Bottom() float64 {
	return b.Position.Y + b.Size.Height
}

// Contains checks if p lies inside the box, edges included.
func (b Box) Contains(p Point) bool {
	return p.X >= b.Position.X && p.X <= b.Right() &&
		p.Y >= b.Position.Y && p.Y <= b.Bottom()
}

// IsEmpty reports whether the box has no area.
func (b Box) IsEmpty() bool {
	return b.Size.Width <= 0 || b.Size.Height <= 0
}

// Translate returns the box moved by d.
func (b Box) Translate(d Point) Box {
	b.Position = b.Position.Add(d)
	return b
}

// Union returns the smallest box containing both b and o.
func (b Box) Union(o Box) Box {
	minX := Min(b.Position.X, o.Position.X)
	minY := Min(b.Position.Y, o.Position.Y)
	maxX := Max(b.Right(), o.Right())
	maxY := Max(b.Bottom(), o.Bottom())
	return NewBox(minX, minY, maxX-minX, maxY-minY)
}

// Bounds returns the bounding box of a point list.
func Bounds(points []Point) Box {
	if len(points) == 0 {
		return Box{}
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX = Min(minX, p.X)
		minY = Min(minY, p.Y)
		maxX = Max(maxX, p.X)
		maxY = Max(maxY, p.Y)
	}
	return NewBox(minX, minY, maxX-minX, maxY-minY)
}
