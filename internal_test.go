package claypolish

import (
	"math"
	"testing"

	"github.com/soypat/claypolish/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestFitPlaneCoplanar(t *testing.T) {
	pos := []r3.Vec{
		{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}, {},
	}
	normal, centroid, ok := fitPlane(pos, []int{0, 1, 2, 3, 4})
	if !ok {
		t.Fatal("coplanar fit must succeed")
	}
	if math.Abs(math.Abs(normal.Z)-1) > 1e-9 {
		t.Errorf("plane normal = %v, want +-z", normal)
	}
	if !d3.EqualWithin(centroid, r3.Vec{}, 1e-12) {
		t.Errorf("centroid = %v, want origin", centroid)
	}
}

func TestFitPlaneTiltedThroughNoise(t *testing.T) {
	// Points on the plane z = x with a vertex lifted off it: the fitted
	// normal must stay close to the exact plane normal.
	exact := r3.Unit(r3.Vec{X: -1, Z: 1})
	pos := []r3.Vec{
		{X: -1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: 1},
		{X: 1, Y: 1, Z: 1}, {X: -1, Y: 1, Z: -1},
		{Z: 0.2}, // off-plane vertex
	}
	normal, _, ok := fitPlane(pos, []int{0, 1, 2, 3, 4})
	if !ok {
		t.Fatal("fit must succeed")
	}
	if math.Abs(math.Abs(r3.Dot(normal, exact))-1) > 0.01 {
		t.Errorf("fitted normal %v far from %v", normal, exact)
	}
}

func TestFitPlaneTooFewPoints(t *testing.T) {
	pos := []r3.Vec{{}, {X: 1}}
	if _, _, ok := fitPlane(pos, []int{0, 1}); ok {
		t.Fatal("two points must be undetermined")
	}
	if _, _, ok := fitPlane(pos, nil); ok {
		t.Fatal("no points must be undetermined")
	}
}

func TestProjectToPlane(t *testing.T) {
	got := projectToPlane(r3.Vec{X: 3, Y: 4, Z: 5}, r3.Vec{Z: 1}, r3.Vec{})
	want := r3.Vec{X: 3, Y: 4}
	if !d3.EqualWithin(got, want, 1e-12) {
		t.Errorf("projection = %v, want %v", got, want)
	}
}

func TestCanonicalEdge(t *testing.T) {
	if canonicalEdge(5, 2) != [2]int{2, 5} || canonicalEdge(2, 5) != [2]int{2, 5} {
		t.Error("canonicalEdge must order pairs low index first")
	}
}

// Two triangles hinged along the x axis: wings folded down form a
// convex ridge, wings folded up a concave valley. Normals point up in
// both configurations so only the fold direction changes the sign.
func TestSignedEdgeAngleSign(t *testing.T) {
	hinge := [2]int{0, 1}
	roof := []r3.Vec{
		{}, {X: 1},
		{X: 0.5, Y: -1, Z: -0.5},
		{X: 0.5, Y: 1, Z: -0.5},
	}
	valley := []r3.Vec{
		{}, {X: 1},
		{X: 0.5, Y: -1, Z: 0.5},
		{X: 0.5, Y: 1, Z: 0.5},
	}
	faces := [][]int{{0, 1, 3}, {1, 0, 2}}

	m, err := NewMesh(roof, faces)
	if err != nil {
		t.Fatal(err)
	}
	if a := m.SignedEdgeAngles()[hinge]; a <= 0 {
		t.Errorf("convex ridge angle = %g, want positive", a)
	}
	m, err = NewMesh(valley, faces)
	if err != nil {
		t.Fatal(err)
	}
	if a := m.SignedEdgeAngles()[hinge]; a >= 0 {
		t.Errorf("concave valley angle = %g, want negative", a)
	}
}

func TestRestoreVolume(t *testing.T) {
	cube := []r3.Vec{
		{X: -0.5, Y: -0.5, Z: -0.5}, {X: 0.5, Y: -0.5, Z: -0.5},
		{X: 0.5, Y: 0.5, Z: -0.5}, {X: -0.5, Y: 0.5, Z: -0.5},
		{X: -0.5, Y: -0.5, Z: 0.5}, {X: 0.5, Y: -0.5, Z: 0.5},
		{X: 0.5, Y: 0.5, Z: 0.5}, {X: -0.5, Y: 0.5, Z: 0.5},
	}
	faces := [][]int{
		{0, 3, 2, 1}, {4, 5, 6, 7}, {0, 1, 5, 4},
		{1, 2, 6, 5}, {2, 3, 7, 6}, {3, 0, 4, 7},
	}
	origVolume := meshVolume(cube, faces)
	origCenter := d3.Centroid(cube)

	shifted := make([]r3.Vec, len(cube))
	for i, p := range cube {
		shifted[i] = r3.Add(r3.Scale(1.3, p), r3.Vec{X: 0.2})
	}
	restoreVolume(shifted, faces, origVolume, origCenter)
	if v := meshVolume(shifted, faces); math.Abs(v-origVolume) > 1e-9 {
		t.Errorf("restored volume = %g, want %g", v, origVolume)
	}
	if c := d3.Centroid(shifted); !d3.EqualWithin(c, origCenter, 1e-9) {
		t.Errorf("restored centroid = %v, want %v", c, origCenter)
	}
}

func TestRestoreVolumeSkipsDegenerate(t *testing.T) {
	// A flat sheet encloses no volume; positions must be left alone.
	pos := []r3.Vec{{}, {X: 1}, {Y: 1}}
	faces := [][]int{{0, 1, 2}}
	before := append([]r3.Vec(nil), pos...)
	restoreVolume(pos, faces, meshVolume(pos, faces), d3.Centroid(pos))
	for i := range pos {
		if pos[i] != before[i] {
			t.Fatal("degenerate volume correction must be a no-op")
		}
	}
}

func TestSoftNeighborsFiltersHardEdges(t *testing.T) {
	m, err := NewMesh([]r3.Vec{{}, {X: 1}, {Y: 1}, {X: 1, Y: 1}}, [][]int{{0, 1, 3}, {0, 3, 2}})
	if err != nil {
		t.Fatal(err)
	}
	adj := newAdjacency(m)
	hard := map[[2]int]struct{}{{0, 3}: {}}
	soft := softNeighbors(adj, hard)
	for _, ni := range soft[0] {
		if ni == 3 {
			t.Fatal("hard edge neighbor not filtered")
		}
	}
	if len(soft[0]) != len(adj.neighbors[0])-1 {
		t.Errorf("soft neighbor count %d, want %d", len(soft[0]), len(adj.neighbors[0])-1)
	}
}
