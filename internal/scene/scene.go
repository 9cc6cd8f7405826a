// Package scene holds the geometric vocabulary shared by the layout planner,
// the visual pool and the transition animator: axes, placements and linear
// interpolation over gonum's r3 vectors.
package scene

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Axis names one of the three scene axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Unit returns the unit vector pointing along the axis.
func (a Axis) Unit() r3.Vec {
	switch a {
	case AxisY:
		return r3.Vec{Y: 1}
	case AxisZ:
		return r3.Vec{Z: 1}
	default:
		return r3.Vec{X: 1}
	}
}

// Component returns the coordinate of v along the axis.
func (a Axis) Component(v r3.Vec) float64 {
	switch a {
	case AxisY:
		return v.Y
	case AxisZ:
		return v.Z
	default:
		return v.X
	}
}

// IsValid reports whether a names a known axis.
func (a Axis) IsValid() bool {
	return a == AxisX || a == AxisY || a == AxisZ
}

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return fmt.Sprintf("axis(%d)", int(a))
}

// ParseAxis maps "x", "y" or "z" (any case) to an Axis.
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x", "":
		return AxisX, nil
	case "y":
		return AxisY, nil
	case "z":
		return AxisZ, nil
	}
	return AxisX, fmt.Errorf("unknown axis %q (want x, y or z)", s)
}

// Identity is the orientation that leaves vectors unchanged.
var Identity = r3.Rotation(quat.Number{Real: 1})

// RotationAbout returns the orientation turning by degrees around axis.
func RotationAbout(axis Axis, degrees float64) r3.Rotation {
	if degrees == 0 {
		return Identity
	}
	return r3.NewRotation(degrees*math.Pi/180, axis.Unit())
}

// Placement is the planned position and orientation of the proxy at Index
// within its page.
type Placement struct {
	Index       int
	Position    r3.Vec
	Orientation r3.Rotation
}

// Lerp interpolates linearly between from and to. f is clamped to [0, 1] and
// f == 1 returns to exactly.
func Lerp(from, to r3.Vec, f float64) r3.Vec {
	if f <= 0 {
		return from
	}
	if f >= 1 {
		return to
	}
	return r3.Add(from, r3.Scale(f, r3.Sub(to, from)))
}

// Offset returns v moved by d.
func Offset(v, d r3.Vec) r3.Vec {
	return r3.Add(v, d)
}
