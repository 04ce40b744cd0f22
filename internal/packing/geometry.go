// Package packing implements the container loading engine: geometry
// primitives, the orientation enumerator, the greedy shelf heuristic and the
// volume utilization aggregator. The package is pure; it performs no I/O and
// holds no state between calls.
package packing

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/hyperkh65/loadsim/internal/domain/model"
)

// Tolerance is the absolute slack in millimetres applied to every
// containment and contact comparison.
const Tolerance = 1e-6

// Vec converts a position to a vector.
func Vec(p model.Point3) mgl64.Vec3 {
	return mgl64.Vec3{p.X, p.Y, p.Z}
}

// Extent converts a dimension to a vector.
func Extent(d model.Dimension) mgl64.Vec3 {
	return mgl64.Vec3{d.Length, d.Width, d.Height}
}

// Fits reports whether a box of size box anchored at pos lies entirely
// inside a container of size container.
func Fits(container model.Dimension, pos model.Point3, box model.Dimension) bool {
	lo := Vec(pos)
	hi := lo.Add(Extent(box))
	limit := Extent(container)
	for i := 0; i < 3; i++ {
		if lo[i] < -Tolerance || hi[i] > limit[i]+Tolerance {
			return false
		}
	}
	return true
}

// Bounds returns the minimum and maximum corners of a placed box.
func Bounds(p model.PlacedBox) (lo, hi mgl64.Vec3) {
	lo = Vec(p.Position)
	return lo, lo.Add(Extent(p.Orientation))
}

// Overlaps reports whether two placed boxes share interior volume. Boxes
// whose faces only touch do not overlap.
func Overlaps(a, b model.PlacedBox) bool {
	aLo, aHi := Bounds(a)
	bLo, bHi := Bounds(b)
	for i := 0; i < 3; i++ {
		if aLo[i] >= bHi[i]-Tolerance || bLo[i] >= aHi[i]-Tolerance {
			return false
		}
	}
	return true
}

// Corners returns the eight corners of a placed box. Index bit 0 selects the
// far x face, bit 1 the far y face and bit 2 the far z face.
func Corners(p model.PlacedBox) [8]mgl64.Vec3 {
	lo, hi := Bounds(p)
	var out [8]mgl64.Vec3
	for i := range out {
		c := lo
		for axis := 0; axis < 3; axis++ {
			if i&(1<<axis) != 0 {
				c[axis] = hi[axis]
			}
		}
		out[i] = c
	}
	return out
}

// Edges lists the twelve edges of a box as pairs of Corners indices.
var Edges = [12][2]int{
	{0, 1}, {2, 3}, {4, 5}, {6, 7}, // along x
	{0, 2}, {1, 3}, {4, 6}, {5, 7}, // along y
	{0, 4}, {1, 5}, {2, 6}, {3, 7}, // along z
}
