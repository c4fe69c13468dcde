// Package form3 generates polygon mesh primitives used to exercise the
// polish filter: closed solids with known volume and sharp creases, and
// open sheets for boundary behavior.
package form3

import (
	"errors"
	"fmt"
	"math"

	"github.com/soypat/claypolish"
	"gonum.org/v1/gonum/spatial/r3"
)

// Cube returns a closed cube of side length size centered at the
// origin, built from 6 quad faces. Every edge has a 90 degree dihedral
// angle, which makes it the canonical crease preservation fixture.
func Cube(size float64) (*claypolish.Mesh, error) {
	if size <= 0 {
		return nil, errors.New("cube size must be positive")
	}
	h := size / 2
	vertices := []r3.Vec{
		{X: -h, Y: -h, Z: -h},
		{X: h, Y: -h, Z: -h},
		{X: h, Y: h, Z: -h},
		{X: -h, Y: h, Z: -h},
		{X: -h, Y: -h, Z: h},
		{X: h, Y: -h, Z: h},
		{X: h, Y: h, Z: h},
		{X: -h, Y: h, Z: h},
	}
	faces := [][]int{
		{0, 3, 2, 1}, // bottom
		{4, 5, 6, 7}, // top
		{0, 1, 5, 4},
		{1, 2, 6, 5},
		{2, 3, 7, 6},
		{3, 0, 4, 7},
	}
	return claypolish.NewMesh(vertices, faces)
}

// Grid returns an open triangulated sheet of nx by ny quads in the z=0
// plane, centered at the origin. Useful for bump-flattening and
// boundary-policy scenarios.
func Grid(nx, ny int, spacing float64) (*claypolish.Mesh, error) {
	if nx < 1 || ny < 1 {
		return nil, fmt.Errorf("grid dimensions %dx%d must be at least 1x1", nx, ny)
	}
	if spacing <= 0 {
		return nil, errors.New("grid spacing must be positive")
	}
	cols := nx + 1
	vertices := make([]r3.Vec, 0, cols*(ny+1))
	for j := 0; j <= ny; j++ {
		for i := 0; i <= nx; i++ {
			vertices = append(vertices, r3.Vec{
				X: (float64(i) - float64(nx)/2) * spacing,
				Y: (float64(j) - float64(ny)/2) * spacing,
			})
		}
	}
	faces := make([][]int, 0, 2*nx*ny)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			v00 := j*cols + i
			v10 := v00 + 1
			v01 := v00 + cols
			v11 := v01 + 1
			faces = append(faces, []int{v00, v10, v11}, []int{v00, v11, v01})
		}
	}
	return claypolish.NewMesh(vertices, faces)
}

// Icosphere returns a closed triangle sphere of the given radius,
// obtained by subdividing an icosahedron the requested number of times
// and projecting vertices onto the sphere. Subdivision s yields
// 20*4^s faces.
func Icosphere(radius float64, subdivisions int) (*claypolish.Mesh, error) {
	if radius <= 0 {
		return nil, errors.New("icosphere radius must be positive")
	}
	if subdivisions < 0 || subdivisions > 7 {
		return nil, fmt.Errorf("icosphere subdivisions %d outside [0,7]", subdivisions)
	}
	vertices, faces := icosahedron()
	for s := 0; s < subdivisions; s++ {
		vertices, faces = subdivide(vertices, faces)
	}
	for i, v := range vertices {
		vertices[i] = r3.Scale(radius, r3.Unit(v))
	}
	return claypolish.NewMesh(vertices, faces)
}

// Cone returns a closed cone with its apex at (0,0,height) and a fan
// triangulated base disk of the given radius in the z=0 plane. The apex
// is the canonical convex tip fixture for the pincher.
func Cone(radius, height float64, segments int) (*claypolish.Mesh, error) {
	if radius <= 0 || height <= 0 {
		return nil, errors.New("cone radius and height must be positive")
	}
	if segments < 3 {
		return nil, fmt.Errorf("cone needs at least 3 segments, got %d", segments)
	}
	vertices := make([]r3.Vec, 0, segments+2)
	vertices = append(vertices,
		r3.Vec{Z: height}, // apex
		r3.Vec{},          // base center
	)
	for i := 0; i < segments; i++ {
		theta := 2 * math.Pi * float64(i) / float64(segments)
		vertices = append(vertices, r3.Vec{X: radius * math.Cos(theta), Y: radius * math.Sin(theta)})
	}
	faces := make([][]int, 0, 2*segments)
	for i := 0; i < segments; i++ {
		a := 2 + i
		b := 2 + (i+1)%segments
		faces = append(faces,
			[]int{0, a, b}, // side, wound outward
			[]int{1, b, a}, // base, wound downward
		)
	}
	return claypolish.NewMesh(vertices, faces)
}

func icosahedron() ([]r3.Vec, [][]int) {
	t := (1 + math.Sqrt(5)) / 2
	vertices := []r3.Vec{
		{X: -1, Y: t}, {X: 1, Y: t}, {X: -1, Y: -t}, {X: 1, Y: -t},
		{Y: -1, Z: t}, {Y: 1, Z: t}, {Y: -1, Z: -t}, {Y: 1, Z: -t},
		{X: t, Z: -1}, {X: t, Z: 1}, {X: -t, Z: -1}, {X: -t, Z: 1},
	}
	faces := [][]int{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}
	return vertices, faces
}

// subdivide splits every triangle into four, caching edge midpoints so
// shared edges reuse the same new vertex.
func subdivide(vertices []r3.Vec, faces [][]int) ([]r3.Vec, [][]int) {
	midpoints := make(map[[2]int]int)
	midpoint := func(a, b int) int {
		key := [2]int{a, b}
		if a > b {
			key = [2]int{b, a}
		}
		if mi, ok := midpoints[key]; ok {
			return mi
		}
		mi := len(vertices)
		vertices = append(vertices, r3.Scale(0.5, r3.Add(vertices[a], vertices[b])))
		midpoints[key] = mi
		return mi
	}
	next := make([][]int, 0, 4*len(faces))
	for _, f := range faces {
		ab := midpoint(f[0], f[1])
		bc := midpoint(f[1], f[2])
		ca := midpoint(f[2], f[0])
		next = append(next,
			[]int{f[0], ab, ca},
			[]int{f[1], bc, ab},
			[]int{f[2], ca, bc},
			[]int{ab, bc, ca},
		)
	}
	return vertices, next
}
