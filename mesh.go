package claypolish

import (
	"fmt"
	"math"

	"github.com/soypat/claypolish/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Mesh is a polygon mesh stored as index-addressed arrays: a dense
// position buffer, canonical undirected edges and counter-clockwise
// wound faces. Topology is fixed at construction; only positions change.
type Mesh struct {
	positions []r3.Vec
	// edges are vertex index pairs stored with the lower index first,
	// deduplicated, in face traversal order.
	edges [][2]int
	faces [][]int
}

// NewMesh assembles a mesh from vertex positions and faces. Faces must
// have at least 3 corners and wind counter-clockwise as seen from the
// outside. The edge set is derived from face boundaries. Vertices not
// referenced by any face are legal and simply never move.
func NewMesh(vertices []r3.Vec, faces [][]int) (*Mesh, error) {
	m := &Mesh{
		positions: append([]r3.Vec(nil), vertices...),
		faces:     make([][]int, len(faces)),
	}
	seen := make(map[[2]int]struct{})
	for i, face := range faces {
		if len(face) < 3 {
			return nil, fmt.Errorf("face %d has %d vertices, need at least 3", i, len(face))
		}
		for j, vi := range face {
			if vi < 0 || vi >= len(vertices) {
				return nil, fmt.Errorf("face %d references out of range vertex %d", i, vi)
			}
			e := canonicalEdge(vi, face[(j+1)%len(face)])
			if e[0] == e[1] {
				return nil, fmt.Errorf("face %d repeats vertex %d on consecutive corners", i, vi)
			}
			if _, ok := seen[e]; !ok {
				seen[e] = struct{}{}
				m.edges = append(m.edges, e)
			}
		}
		m.faces[i] = append([]int(nil), face...)
	}
	return m, nil
}

// canonicalEdge orders a vertex pair with the lower index first so the
// pair can key maps regardless of traversal direction.
func canonicalEdge(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

func (m *Mesh) NumVertices() int { return len(m.positions) }
func (m *Mesh) NumEdges() int    { return len(m.edges) }
func (m *Mesh) NumFaces() int    { return len(m.faces) }

// Position returns the current position of vertex i.
func (m *Mesh) Position(i int) r3.Vec { return m.positions[i] }

// SetPosition moves vertex i. Topology is unaffected.
func (m *Mesh) SetPosition(i int, p r3.Vec) { m.positions[i] = p }

// Positions returns a copy of the current position buffer.
func (m *Mesh) Positions() []r3.Vec {
	return append([]r3.Vec(nil), m.positions...)
}

// SetPositions replaces the whole position buffer. The argument length
// must match the vertex count; the buffer is copied in so the caller
// keeps ownership of pos.
func (m *Mesh) SetPositions(pos []r3.Vec) error {
	if len(pos) != len(m.positions) {
		return fmt.Errorf("position count %d does not match vertex count %d", len(pos), len(m.positions))
	}
	copy(m.positions, pos)
	return nil
}

// Edges returns a copy of the canonical edge list.
func (m *Mesh) Edges() [][2]int {
	return append([][2]int(nil), m.edges...)
}

// Faces returns a deep copy of the face list.
func (m *Mesh) Faces() [][]int {
	faces := make([][]int, len(m.faces))
	for i, f := range m.faces {
		faces[i] = append([]int(nil), f...)
	}
	return faces
}

// Neighbors returns for every vertex the indices of its edge-connected
// neighbors, in deterministic edge order. The outer slice is indexed by
// vertex; isolated vertices get an empty list.
func (m *Mesh) Neighbors() [][]int {
	return newAdjacency(m).neighbors
}

// IncidentFaces returns for every vertex the indices of the faces that
// use it, in face order.
func (m *Mesh) IncidentFaces() [][]int {
	return newAdjacency(m).faces
}

// FaceNormals computes unit face normals from the current positions.
func (m *Mesh) FaceNormals() []r3.Vec {
	return FaceNormals(m.positions, m.faces)
}

// VertexNormals computes unit vertex normals from the current positions.
func (m *Mesh) VertexNormals() []r3.Vec {
	return VertexNormals(m.positions, m.faces)
}

// Volume returns the magnitude of the signed volume enclosed by the
// mesh. Only meaningful for closed, consistently wound meshes.
func (m *Mesh) Volume() float64 {
	return meshVolume(m.positions, m.faces)
}

// Centroid returns the arithmetic mean of all vertex positions.
func (m *Mesh) Centroid() r3.Vec {
	return d3.Centroid(m.positions)
}

// Bounds returns the axis aligned bounding box of the mesh.
func (m *Mesh) Bounds() r3.Box {
	bb := r3.Box{Min: d3.Elem(math.MaxFloat64), Max: d3.Elem(-math.MaxFloat64)}
	for _, p := range m.positions {
		bb.Min = d3.MinElem(bb.Min, p)
		bb.Max = d3.MaxElem(bb.Max, p)
	}
	return bb
}

// adjacency holds per-vertex neighbor and incident-face index lists.
// It is rebuilt for every top level call and never outlives it.
type adjacency struct {
	neighbors [][]int
	faces     [][]int
}

func newAdjacency(m *Mesh) *adjacency {
	adj := &adjacency{
		neighbors: make([][]int, len(m.positions)),
		faces:     make([][]int, len(m.positions)),
	}
	for i := range adj.neighbors {
		adj.neighbors[i] = []int{}
	}
	for _, e := range m.edges {
		adj.neighbors[e[0]] = append(adj.neighbors[e[0]], e[1])
		adj.neighbors[e[1]] = append(adj.neighbors[e[1]], e[0])
	}
	for fi, face := range m.faces {
		for _, vi := range face {
			adj.faces[vi] = append(adj.faces[vi], fi)
		}
	}
	return adj
}

// edgeFaces maps every canonical edge to the indices of its incident
// faces. Edges with other than two incident faces are boundary or
// non-manifold.
func edgeFaces(faces [][]int) map[[2]int][]int {
	ef := make(map[[2]int][]int)
	for fi, face := range faces {
		for j, vi := range face {
			e := canonicalEdge(vi, face[(j+1)%len(face)])
			ef[e] = append(ef[e], fi)
		}
	}
	return ef
}
