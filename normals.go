package claypolish

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// degenerateNormal is the accumulated normal magnitude below which a
// face or vertex normal is considered undefined.
const degenerateNormal = 1e-12

// FaceNormals computes unit face normals for an arbitrary position
// buffer using Newell's method, which handles non-planar polygons.
// Degenerate faces yield the zero vector. The function is pure: it does
// not require the buffer to be attached to any mesh.
func FaceNormals(pos []r3.Vec, faces [][]int) []r3.Vec {
	normals := make([]r3.Vec, len(faces))
	for i, face := range faces {
		normals[i] = newellNormal(pos, face)
	}
	return normals
}

func newellNormal(pos []r3.Vec, face []int) r3.Vec {
	var n r3.Vec
	for j, vi := range face {
		a := pos[vi]
		b := pos[face[(j+1)%len(face)]]
		n.X += (a.Y - b.Y) * (a.Z + b.Z)
		n.Y += (a.Z - b.Z) * (a.X + b.X)
		n.Z += (a.X - b.X) * (a.Y + b.Y)
	}
	if r3.Norm(n) <= degenerateNormal {
		return r3.Vec{}
	}
	return r3.Unit(n)
}

// VertexNormals computes unit vertex normals for a position buffer by
// accumulating incident face normals weighted by the opening angle the
// face forms at the vertex. Vertices without faces, and vertices whose
// incident normals cancel, yield the zero vector.
func VertexNormals(pos []r3.Vec, faces [][]int) []r3.Vec {
	normals := make([]r3.Vec, len(pos))
	for _, face := range faces {
		fn := newellNormal(pos, face)
		for j, vi := range face {
			prev := pos[face[(j+len(face)-1)%len(face)]]
			next := pos[face[(j+1)%len(face)]]
			s1 := r3.Sub(prev, pos[vi])
			s2 := r3.Sub(next, pos[vi])
			if r3.Norm2(s1) == 0 || r3.Norm2(s2) == 0 {
				continue
			}
			alpha := math.Acos(Clamp(r3.Cos(s1, s2), -1, 1))
			normals[vi] = r3.Add(normals[vi], r3.Scale(alpha, fn))
		}
	}
	for i, n := range normals {
		if r3.Norm(n) > degenerateNormal {
			normals[i] = r3.Unit(n)
		} else {
			normals[i] = r3.Vec{}
		}
	}
	return normals
}

func faceCentroid(pos []r3.Vec, face []int) r3.Vec {
	var c r3.Vec
	for _, vi := range face {
		c = r3.Add(c, pos[vi])
	}
	return r3.Scale(1/float64(len(face)), c)
}
