package claypolish

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// BoundaryPolicy selects how hard-edge classification treats boundary
// edges, those bordered by fewer than two faces.
type BoundaryPolicy int

const (
	// BoundarySoft never classifies boundary edges as hard, so open
	// mesh borders are always smoothed. This is the historical
	// behavior of the filter.
	BoundarySoft BoundaryPolicy = iota
	// BoundaryHard classifies every boundary edge as hard, pinning
	// open mesh borders in place.
	BoundaryHard
)

// HardEdges returns the edges whose dihedral angle exceeds threshold
// (radians, valid in [0,pi]), in deterministic edge order. Only edges
// bordered by exactly two faces carry a dihedral angle; the policy
// decides the rest. A threshold of 0 marks every non-coplanar manifold
// edge hard, a threshold of pi marks none.
func (m *Mesh) HardEdges(threshold float64, policy BoundaryPolicy) [][2]int {
	set := m.hardEdgeSet(threshold, policy)
	hard := make([][2]int, 0, len(set))
	for _, e := range m.edges {
		if _, ok := set[e]; ok {
			hard = append(hard, e)
		}
	}
	return hard
}

func (m *Mesh) hardEdgeSet(threshold float64, policy BoundaryPolicy) map[[2]int]struct{} {
	normals := FaceNormals(m.positions, m.faces)
	ef := edgeFaces(m.faces)
	hard := make(map[[2]int]struct{})
	for _, e := range m.edges {
		incident := ef[e]
		if len(incident) != 2 {
			if policy == BoundaryHard && len(incident) < 2 {
				hard[e] = struct{}{}
			}
			continue
		}
		angle := math.Acos(Clamp(r3.Dot(normals[incident[0]], normals[incident[1]]), -1, 1))
		if angle > threshold {
			hard[e] = struct{}{}
		}
	}
	return hard
}

// SignedEdgeAngles returns the dihedral angle of every manifold edge
// keyed by canonical vertex pair. The sign follows the sculpting
// convention: positive for convex edges (ridges, tips) and negative for
// concave ones (valleys). Boundary and non-manifold edges are absent
// from the result.
func (m *Mesh) SignedEdgeAngles() map[[2]int]float64 {
	return signedEdgeAngles(m.positions, m.faces, m.edges)
}

func signedEdgeAngles(pos []r3.Vec, faces [][]int, edges [][2]int) map[[2]int]float64 {
	normals := FaceNormals(pos, faces)
	centroids := make([]r3.Vec, len(faces))
	for i, face := range faces {
		centroids[i] = faceCentroid(pos, face)
	}
	ef := edgeFaces(faces)
	angles := make(map[[2]int]float64, len(edges))
	for _, e := range edges {
		incident := ef[e]
		if len(incident) != 2 {
			continue
		}
		n1, n2 := normals[incident[0]], normals[incident[1]]
		angle := math.Acos(Clamp(r3.Dot(n1, n2), -1, 1))
		// The edge is convex when the second face folds away below the
		// first face's plane.
		if r3.Dot(n1, r3.Sub(centroids[incident[1]], centroids[incident[0]])) > 0 {
			angle = -angle
		}
		angles[e] = angle
	}
	return angles
}
