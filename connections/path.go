package connections

import (
	"edgeflow/geometry"
	"strconv"
	"strings"
)

// Op is a drawing instruction in a route's path.
type Op byte

const (
	OpMove  Op = 'M'
	OpLine  Op = 'L'
	OpQuad  Op = 'Q'
	OpCubic Op = 'C'
)

// Command is one drawing instruction. Pts holds the operands in order:
// the end point for M and L, control then end for Q, two controls then
// end for C.
type Command struct {
	Op  Op
	Pts []geometry.Point
}

// End returns the point the pen rests on after the command.
func (c Command) End() geometry.Point {
	if len(c.Pts) == 0 {
		return geometry.Point{}
	}
	return c.Pts[len(c.Pts)-1]
}

// pathBuilder accumulates commands for a single route.
type pathBuilder struct {
	cmds []Command
}

func (b *pathBuilder) moveTo(p geometry.Point) {
	b.cmds = append(b.cmds, Command{Op: OpMove, Pts: []geometry.Point{p}})
}

func (b *pathBuilder) lineTo(p geometry.Point) {
	b.cmds = append(b.cmds, Command{Op: OpLine, Pts: []geometry.Point{p}})
}

func (b *pathBuilder) quadTo(c, p geometry.Point) {
	b.cmds = append(b.cmds, Command{Op: OpQuad, Pts: []geometry.Point{c, p}})
}

func (b *pathBuilder) cubicTo(c1, c2, p geometry.Point) {
	b.cmds = append(b.cmds, Command{Op: OpCubic, Pts: []geometry.Point{c1, c2, p}})
}

// FormatPath renders commands as an SVG path data string, e.g.
// "M 100,30 L 300,30".
func FormatPath(cmds []Command) string {
	var sb strings.Builder
	for i, c := range cmds {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte(byte(c.Op))
		for _, p := range c.Pts {
			sb.WriteByte(' ')
			sb.WriteString(FormatNumber(p.X))
			sb.WriteByte(',')
			sb.WriteString(FormatNumber(p.Y))
		}
	}
	return sb.String()
}

// FormatNumber prints v in the shortest form that round-trips.
func FormatNumber(v float64) string {
	if v == 0 {
		return "0" // avoid "-0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
