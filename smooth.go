package claypolish

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/soypat/claypolish/internal/d3"
)

// shrinkStep moves every vertex with at least 3 soft neighbors a
// fraction lambda toward its projection onto the best-fit plane of the
// neighborhood (soft neighbors plus the vertex itself). All projections
// read src, so the result does not depend on vertex order. Vertices
// with undetermined plane fits keep their position.
func shrinkStep(dst, src []r3.Vec, soft [][]int, lambda float64) {
	parallelRange(len(src), func(start, end int) {
		var hood []int
		for vi := start; vi < end; vi++ {
			dst[vi] = src[vi]
			neighbors := soft[vi]
			if len(neighbors) < 3 {
				continue
			}
			hood = append(hood[:0], neighbors...)
			hood = append(hood, vi)
			normal, center, ok := fitPlane(src, hood)
			if !ok {
				continue
			}
			projected := projectToPlane(src[vi], normal, center)
			moved := r3.Add(src[vi], r3.Scale(lambda, r3.Sub(projected, src[vi])))
			if !d3.Finite(moved) {
				continue
			}
			dst[vi] = moved
		}
	})
}

// inflateStep displaces every vertex with at least one soft neighbor by
// mu times its discrete Laplacian (mean soft neighbor position minus
// own position). mu is negative, pushing vertices outward against the
// shrinkage of the preceding step. Restricting the Laplacian to soft
// neighbors keeps creases in place: a vertex whose edges are all hard
// does not move in either sub-step.
func inflateStep(dst, src []r3.Vec, soft [][]int, mu float64) {
	parallelRange(len(src), func(start, end int) {
		for vi := start; vi < end; vi++ {
			dst[vi] = src[vi]
			neighbors := soft[vi]
			if len(neighbors) == 0 {
				continue
			}
			var mean r3.Vec
			for _, ni := range neighbors {
				mean = r3.Add(mean, src[ni])
			}
			mean = r3.Scale(1/float64(len(neighbors)), mean)
			laplacian := r3.Sub(mean, src[vi])
			moved := r3.Add(src[vi], r3.Scale(mu, laplacian))
			if !d3.Finite(moved) {
				continue
			}
			dst[vi] = moved
		}
	})
}
