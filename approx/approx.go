// Package approx implements a lower-fidelity approximation of the clay
// polish filter built from primitive attribute blurs, the shape the
// effect takes inside non-destructive modifier stacks. Instead of PCA
// plane fitting it estimates curvature from the difference between a
// vertex normal and its blurred neighborhood average, then blurs vertex
// positions weighted by inverse curvature: flat regions smooth fully,
// highly curved features are left alone. Volume control is a plain
// blend back toward the original geometry rather than a true
// volumetric correction.
package approx

import (
	"fmt"

	"github.com/soypat/claypolish"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// normalBlurIterations is the fixed number of neighborhood-average
	// passes used to estimate curvature.
	normalBlurIterations = 3
	// pinchScale matches the core filter's angle-to-displacement scale.
	pinchScale = 0.1
)

// Config holds the approximate mode parameters. Ranges are wider than
// the core filter's since per-vertex weights are clamped before use.
type Config struct {
	// Strength is the smoothing intensity in [0,5].
	Strength float64
	// Iterations is the number of position blur passes. Zero is a no-op.
	Iterations int
	// CurvatureThreshold in [0,1] is the normalized curvature above
	// which a vertex is fully preserved. Curvature below it smooths
	// with smoothstep falloff.
	CurvatureThreshold float64
	// Pinch in [-1,1] sharpens convex tips when positive, same
	// direction contract as the core filter.
	Pinch float64
	// KeepVolume in [0,1] blends the result back toward the original
	// positions: 0 keeps the full effect, 1 restores the input.
	KeepVolume float64
}

// DefaultConfig mirrors the modifier defaults.
func DefaultConfig() Config {
	return Config{
		Strength:           1,
		Iterations:         5,
		CurvatureThreshold: 0.1,
		KeepVolume:         0.3,
	}
}

func (cfg Config) validate() error {
	switch {
	case !(cfg.Strength >= 0 && cfg.Strength <= 5):
		return fmt.Errorf("strength %g outside [0,5]", cfg.Strength)
	case cfg.Iterations < 0:
		return fmt.Errorf("negative iteration count %d", cfg.Iterations)
	case !(cfg.CurvatureThreshold >= 0 && cfg.CurvatureThreshold <= 1):
		return fmt.Errorf("curvature threshold %g outside [0,1]", cfg.CurvatureThreshold)
	case !(cfg.Pinch >= -1 && cfg.Pinch <= 1):
		return fmt.Errorf("pinch %g outside [-1,1]", cfg.Pinch)
	case !(cfg.KeepVolume >= 0 && cfg.KeepVolume <= 1):
		return fmt.Errorf("keep volume %g outside [0,1]", cfg.KeepVolume)
	}
	return nil
}

// Polish applies the approximate clay polish to m in place. Topology is
// untouched and positions are committed atomically; configuration
// errors surface before any computation. An empty mesh is a successful
// no-op.
func Polish(m *claypolish.Mesh, cfg Config) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	if m.NumVertices() == 0 {
		return nil
	}
	neighbors := m.Neighbors()
	original := m.Positions()
	normals := m.VertexNormals()

	blurred := append([]r3.Vec(nil), normals...)
	for i := 0; i < normalBlurIterations; i++ {
		blurred = blurOnce(blurred, neighbors, nil)
	}
	weights := make([]float64, len(original))
	for i := range weights {
		curvature := r3.Norm(r3.Sub(normals[i], blurred[i]))
		weights[i] = claypolish.Clamp(cfg.Strength*preserveWeight(curvature, cfg.CurvatureThreshold), 0, 1)
	}

	pos := append([]r3.Vec(nil), original...)
	for i := 0; i < cfg.Iterations; i++ {
		pos = blurOnce(pos, neighbors, weights)
	}
	if cfg.Pinch != 0 {
		applyPinch(pos, neighbors, normals, m.SignedEdgeAngles(), cfg.Pinch)
	}
	for i := range pos {
		pos[i] = mix(pos[i], original[i], cfg.KeepVolume)
	}
	return m.SetPositions(pos)
}

// blurOnce returns one pass of neighborhood averaging: each vertex
// blends toward the mean of its neighbors by its weight. A nil weights
// slice blends fully. Vertices without neighbors are unchanged.
func blurOnce(pos []r3.Vec, neighbors [][]int, weights []float64) []r3.Vec {
	out := make([]r3.Vec, len(pos))
	for vi, p := range pos {
		out[vi] = p
		hood := neighbors[vi]
		if len(hood) == 0 {
			continue
		}
		w := 1.0
		if weights != nil {
			w = weights[vi]
			if w == 0 {
				continue
			}
		}
		var mean r3.Vec
		for _, ni := range hood {
			mean = r3.Add(mean, pos[ni])
		}
		mean = r3.Scale(1/float64(len(hood)), mean)
		out[vi] = mix(p, mean, w)
	}
	return out
}

// preserveWeight remaps curvature from [0,threshold] to [1,0] with
// smoothstep falloff: flat regions get full smoothing weight, features
// at or above the threshold are preserved.
func preserveWeight(curvature, threshold float64) float64 {
	if threshold <= 0 {
		if curvature > 0 {
			return 0
		}
		return 1
	}
	t := claypolish.Clamp(curvature/threshold, 0, 1)
	return 1 - t*t*(3-2*t)
}

// applyPinch adds the tip displacement as a single offset per vertex,
// mean incident signed dihedral angle scaled along the vertex normal.
// Positive coefficients move convex tips inward.
func applyPinch(pos []r3.Vec, neighbors [][]int, normals []r3.Vec, angles map[[2]int]float64, coeff float64) {
	for vi := range pos {
		var sum float64
		var count int
		for _, ni := range neighbors[vi] {
			key := [2]int{vi, ni}
			if ni < vi {
				key = [2]int{ni, vi}
			}
			if a, ok := angles[key]; ok {
				sum += a
				count++
			}
		}
		if count == 0 {
			continue
		}
		amount := sum / float64(count) * coeff * pinchScale
		pos[vi] = r3.Sub(pos[vi], r3.Scale(amount, normals[vi]))
	}
}

func mix(x, y r3.Vec, a float64) r3.Vec {
	return r3.Add(x, r3.Scale(a, r3.Sub(y, x)))
}
