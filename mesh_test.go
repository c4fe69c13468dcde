package claypolish_test

import (
	"math"
	"testing"

	"github.com/soypat/claypolish"
	"github.com/soypat/claypolish/form3"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestNewMeshValidation(t *testing.T) {
	verts := []r3.Vec{{}, {X: 1}, {Y: 1}}
	cases := []struct {
		name  string
		faces [][]int
	}{
		{"too few corners", [][]int{{0, 1}}},
		{"out of range index", [][]int{{0, 1, 3}}},
		{"negative index", [][]int{{0, 1, -1}}},
		{"repeated corner", [][]int{{0, 1, 1}}},
	}
	for _, tc := range cases {
		if _, err := claypolish.NewMesh(verts, tc.faces); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}

func TestMeshCounts(t *testing.T) {
	cube, err := form3.Cube(1)
	if err != nil {
		t.Fatal(err)
	}
	if cube.NumVertices() != 8 || cube.NumEdges() != 12 || cube.NumFaces() != 6 {
		t.Errorf("cube V/E/F = %d/%d/%d, want 8/12/6",
			cube.NumVertices(), cube.NumEdges(), cube.NumFaces())
	}
	neighbors := cube.Neighbors()
	for vi, hood := range neighbors {
		if len(hood) != 3 {
			t.Errorf("cube vertex %d has %d neighbors, want 3", vi, len(hood))
		}
	}
	for vi, incident := range cube.IncidentFaces() {
		if len(incident) != 3 {
			t.Errorf("cube vertex %d touches %d faces, want 3", vi, len(incident))
		}
	}
}

func TestMeshNeighborsIsolatedVertex(t *testing.T) {
	m, err := claypolish.NewMesh([]r3.Vec{{}, {X: 1}, {Y: 1}, {Z: 9}}, [][]int{{0, 1, 2}})
	if err != nil {
		t.Fatal(err)
	}
	neighbors := m.Neighbors()
	if len(neighbors) != 4 {
		t.Fatalf("want an entry for every vertex, got %d", len(neighbors))
	}
	if len(neighbors[3]) != 0 {
		t.Errorf("isolated vertex has neighbors %v", neighbors[3])
	}
}

func TestMeshVolume(t *testing.T) {
	cube, err := form3.Cube(2)
	if err != nil {
		t.Fatal(err)
	}
	if v := cube.Volume(); math.Abs(v-8) > 1e-12 {
		t.Errorf("cube volume = %g, want 8", v)
	}
	sphere, err := form3.Icosphere(1, 3)
	if err != nil {
		t.Fatal(err)
	}
	want := 4 * math.Pi / 3
	if v := sphere.Volume(); math.Abs(v-want)/want > 0.02 {
		t.Errorf("icosphere volume = %g, want within 2%% of %g", v, want)
	}
}

func TestMeshBounds(t *testing.T) {
	cube, err := form3.Cube(2)
	if err != nil {
		t.Fatal(err)
	}
	bb := cube.Bounds()
	want := r3.Box{Min: r3.Vec{X: -1, Y: -1, Z: -1}, Max: r3.Vec{X: 1, Y: 1, Z: 1}}
	if bb != want {
		t.Errorf("cube bounds = %+v, want %+v", bb, want)
	}
}

func TestHardEdgesCube(t *testing.T) {
	cube, err := form3.Cube(1)
	if err != nil {
		t.Fatal(err)
	}
	if hard := cube.HardEdges(claypolish.DtoR(30), claypolish.BoundarySoft); len(hard) != 12 {
		t.Errorf("30 degree threshold: %d hard edges, want all 12", len(hard))
	}
	if hard := cube.HardEdges(claypolish.DtoR(120), claypolish.BoundarySoft); len(hard) != 0 {
		t.Errorf("120 degree threshold: %d hard edges, want none", len(hard))
	}
	if hard := cube.HardEdges(math.Pi, claypolish.BoundarySoft); len(hard) != 0 {
		t.Errorf("pi threshold: %d hard edges, want none", len(hard))
	}
}

func TestHardEdgesBoundaryPolicy(t *testing.T) {
	grid, err := form3.Grid(1, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	// A single quad sheet: 4 boundary edges plus the interior diagonal.
	if hard := grid.HardEdges(0.1, claypolish.BoundarySoft); len(hard) != 0 {
		t.Errorf("soft policy: %d hard edges on flat sheet, want 0", len(hard))
	}
	if hard := grid.HardEdges(0.1, claypolish.BoundaryHard); len(hard) != 4 {
		t.Errorf("hard policy: %d hard edges, want the 4 boundary edges", len(hard))
	}
}

func TestCubeFaceNormals(t *testing.T) {
	cube, err := form3.Cube(1)
	if err != nil {
		t.Fatal(err)
	}
	want := []r3.Vec{
		{Z: -1}, {Z: 1}, {Y: -1}, {X: 1}, {Y: 1}, {X: -1},
	}
	normals := cube.FaceNormals()
	for i, n := range normals {
		if r3.Norm(r3.Sub(n, want[i])) > 1e-12 {
			t.Errorf("face %d normal = %v, want %v", i, n, want[i])
		}
	}
}

func TestIcosphereVertexNormalsRadial(t *testing.T) {
	sphere, err := form3.Icosphere(1, 2)
	if err != nil {
		t.Fatal(err)
	}
	normals := sphere.VertexNormals()
	for i, n := range normals {
		radial := r3.Unit(sphere.Position(i))
		if r3.Dot(n, radial) < 0.9 {
			t.Fatalf("vertex %d normal %v far from radial %v", i, n, radial)
		}
	}
}

func TestSetPositionsLengthMismatch(t *testing.T) {
	m, err := form3.Cube(1)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.SetPositions(make([]r3.Vec, 3)); err == nil {
		t.Error("expected length mismatch error")
	}
}

func TestSignedEdgeAnglesCubeConvex(t *testing.T) {
	cube, err := form3.Cube(1)
	if err != nil {
		t.Fatal(err)
	}
	angles := cube.SignedEdgeAngles()
	if len(angles) != 12 {
		t.Fatalf("got %d edge angles, want 12", len(angles))
	}
	for e, a := range angles {
		if math.Abs(a-math.Pi/2) > 1e-9 {
			t.Errorf("edge %v angle = %g, want +pi/2 (convex)", e, a)
		}
	}
}
