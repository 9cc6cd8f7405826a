// Package layout plans where each proxy of a page sits in the scene.
package layout

import (
	"github.com/atomicstack/orgverse/internal/pager"
	"github.com/atomicstack/orgverse/internal/scene"
	"gonum.org/v1/gonum/spatial/r3"
)

// Policy describes how a page is laid out around its anchor.
type Policy struct {
	Anchor   r3.Vec
	Spacing  float64
	Axis     scene.Axis
	Rotation r3.Rotation
	Centered bool
}

// PlacementsFor returns one placement per record in window, in window order.
// Non-centered pages grow from the anchor along the axis; centered pages
// are symmetric about it.
func PlacementsFor(window pager.Window, policy Policy) []scene.Placement {
	n := window.Len()
	if n == 0 {
		return nil
	}
	step := r3.Scale(policy.Spacing, policy.Axis.Unit())
	origin := policy.Anchor
	if policy.Centered {
		origin = r3.Sub(origin, r3.Scale(float64(n-1)/2, step))
	}
	placements := make([]scene.Placement, n)
	for i := 0; i < n; i++ {
		placements[i] = scene.Placement{
			Index:       i,
			Position:    r3.Add(origin, r3.Scale(float64(i), step)),
			Orientation: policy.Rotation,
		}
	}
	return placements
}
