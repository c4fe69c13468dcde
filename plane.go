package claypolish

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/soypat/claypolish/internal/d3"
)

// fitPlane computes the least-squares best-fit plane through the points
// selected by indices as the eigenvector of the 3x3 covariance matrix
// with the smallest eigenvalue. ok is false when fewer than 3 points
// are supplied or the eigendecomposition does not produce a usable
// normal; callers skip the vertex update for the sub-step in that case.
func fitPlane(pos []r3.Vec, indices []int) (normal, centroid r3.Vec, ok bool) {
	if len(indices) < 3 {
		return r3.Vec{}, r3.Vec{}, false
	}
	for _, i := range indices {
		centroid = r3.Add(centroid, pos[i])
	}
	centroid = r3.Scale(1/float64(len(indices)), centroid)
	var xx, xy, xz, yy, yz, zz float64
	for _, i := range indices {
		d := r3.Sub(pos[i], centroid)
		xx += d.X * d.X
		xy += d.X * d.Y
		xz += d.X * d.Z
		yy += d.Y * d.Y
		yz += d.Y * d.Z
		zz += d.Z * d.Z
	}
	cov := mat.NewSymDense(3, []float64{
		xx, xy, xz,
		xy, yy, yz,
		xz, yz, zz,
	})
	var eig mat.EigenSym
	if !eig.Factorize(cov, true) {
		return r3.Vec{}, r3.Vec{}, false
	}
	var vecs mat.Dense
	eig.VectorsTo(&vecs)
	// Eigenvalues come out ascending; column 0 spans the direction of
	// least variance, the plane normal.
	normal = r3.Vec{X: vecs.At(0, 0), Y: vecs.At(1, 0), Z: vecs.At(2, 0)}
	if !d3.Finite(normal) || r3.Norm2(normal) == 0 {
		return r3.Vec{}, r3.Vec{}, false
	}
	return r3.Unit(normal), centroid, true
}

// projectToPlane projects p orthogonally onto the plane through onPlane
// with unit normal.
func projectToPlane(p, normal, onPlane r3.Vec) r3.Vec {
	d := r3.Dot(r3.Sub(p, onPlane), normal)
	return r3.Sub(p, r3.Scale(d, normal))
}
