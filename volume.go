package claypolish

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/soypat/claypolish/internal/d3"
)

// meshVolume computes the magnitude of the signed volume enclosed by
// the faces via the divergence theorem: every face is fan-triangulated
// from its first corner and each triangle contributes the signed volume
// of the tetrahedron it forms with the origin. The value is only
// physically meaningful for closed, consistently wound meshes; open
// meshes still produce a well-defined number.
func meshVolume(pos []r3.Vec, faces [][]int) float64 {
	var volume float64
	for _, face := range faces {
		v0 := pos[face[0]]
		for i := 1; i < len(face)-1; i++ {
			volume += r3.Dot(v0, r3.Cross(pos[face[i]], pos[face[i+1]])) / 6
		}
	}
	return math.Abs(volume)
}

// restoreVolume rescales pos uniformly about its centroid so the
// enclosed volume matches origVolume, then translates the result onto
// origCenter. Near-zero volumes on either side indicate an open or
// collapsed mesh; correction is skipped silently in that case.
func restoreVolume(pos []r3.Vec, faces [][]int, origVolume float64, origCenter r3.Vec) {
	if origVolume <= volumeEpsilon {
		return
	}
	current := meshVolume(pos, faces)
	if current <= volumeEpsilon {
		return
	}
	scale := math.Cbrt(origVolume / current)
	center := d3.Centroid(pos)
	for i, p := range pos {
		pos[i] = r3.Add(center, r3.Scale(scale, r3.Sub(p, center)))
	}
	offset := r3.Sub(origCenter, d3.Centroid(pos))
	for i := range pos {
		pos[i] = r3.Add(pos[i], offset)
	}
}
