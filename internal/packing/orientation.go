package packing

import (
	"math"

	"github.com/hyperkh65/loadsim/internal/domain/model"
)

// permutations of (length, width, height) in enumeration order. The identity
// comes first so the original orientation wins ties.
var permutations = [6][3]int{
	{0, 1, 2},
	{0, 2, 1},
	{1, 0, 2},
	{1, 2, 0},
	{2, 0, 1},
	{2, 1, 0},
}

// maxFitCount saturates FitCount for very small boxes in very large containers.
const maxFitCount = 1 << 53

// Orientations returns the distinct axis-aligned orientations of d: six when
// all sides differ, three when two are equal and one for a cube.
func Orientations(d model.Dimension) []model.Dimension {
	out := make([]model.Dimension, 0, len(permutations))
	for _, p := range permutations {
		o := model.Dimension{Length: d.Axis(p[0]), Width: d.Axis(p[1]), Height: d.Axis(p[2])}
		if !containsDimension(out, o) {
			out = append(out, o)
		}
	}
	return out
}

func containsDimension(list []model.Dimension, d model.Dimension) bool {
	for _, o := range list {
		if o == d {
			return true
		}
	}
	return false
}

// FitCount returns floor(L/l)*floor(W/w)*floor(H/h): how many boxes of size d
// a simple grid packs into an empty container. It is zero when d exceeds the
// container on any axis.
func FitCount(container, d model.Dimension) int {
	total := 1.0
	for i := 0; i < 3; i++ {
		n := math.Floor((container.Axis(i) + Tolerance) / d.Axis(i))
		if n < 1 {
			return 0
		}
		total *= n
	}
	if total > maxFitCount {
		return maxFitCount
	}
	return int(total)
}

// BestOrientation returns the orientation used for every carton of a request
// and its fit count in the empty container. With NoRotation that is the
// original orientation.
func BestOrientation(container, d model.Dimension, mode model.RotationMode) (model.Dimension, int) {
	if mode != model.GlobalBestOrientation {
		return d, FitCount(container, d)
	}
	best, bestCount := d, -1
	for _, o := range Orientations(d) {
		if n := FitCount(container, o); n > bestCount {
			best, bestCount = o, n
		}
	}
	return best, bestCount
}
