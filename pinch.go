package claypolish

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/soypat/claypolish/internal/d3"
)

// pinch displaces each vertex along its normal by the mean signed
// dihedral angle of its incident manifold edges, scaled by the pinch
// coefficient. Positive coefficients move convex tips against the
// normal (inward), negative ones round them outward. Using the mean
// rather than the sum keeps the displacement independent of vertex
// valence. Hard-edge classification plays no part here. Normals and
// angles are derived from pos, the already-smoothed buffer.
func pinch(pos []r3.Vec, faces [][]int, edges [][2]int, adj *adjacency, coeff float64) {
	normals := VertexNormals(pos, faces)
	angles := signedEdgeAngles(pos, faces, edges)
	parallelRange(len(pos), func(start, end int) {
		for vi := start; vi < end; vi++ {
			var sum float64
			var count int
			for _, ni := range adj.neighbors[vi] {
				if a, ok := angles[canonicalEdge(vi, ni)]; ok {
					sum += a
					count++
				}
			}
			if count == 0 {
				continue
			}
			amount := sum / float64(count) * coeff * pinchScale
			moved := r3.Sub(pos[vi], r3.Scale(amount, normals[vi]))
			if !d3.Finite(moved) {
				continue
			}
			pos[vi] = moved
		}
	})
}
