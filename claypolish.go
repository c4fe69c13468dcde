// Package claypolish implements a crease-preserving polish filter for
// polygon meshes. It flattens locally curved regions by iteratively
// projecting vertices onto least-squares neighborhood planes, inflates
// between passes to counteract shrinkage, optionally pinches convex
// tips, and can restore the enclosed volume of closed meshes after
// smoothing. Topology is never modified, only vertex positions.
package claypolish

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/soypat/claypolish/internal/d3"
)

const (
	// taubinShrink and taubinInflate scale Config.Strength into the two
	// smoothing passes. The inflate magnitude slightly exceeds the
	// shrink one so low-frequency shrinkage approximately cancels over
	// a full iteration while high-frequency noise is still attenuated.
	taubinShrink  = 0.5
	taubinInflate = -0.53
	// pinchScale converts signed dihedral angle times the pinch
	// coefficient into a displacement along the vertex normal.
	pinchScale = 0.1
	// volumeEpsilon is the volume below which a mesh is treated as open
	// or collapsed and volume correction is skipped.
	volumeEpsilon = 1e-10
)

// Config holds the polish parameters. The zero value is a valid no-op;
// DefaultConfig returns the customary starting point.
type Config struct {
	// Strength is the polish intensity in [0,1]. Higher values flatten
	// surfaces more aggressively per iteration.
	Strength float64
	// Iterations is the number of shrink/inflate rounds. Zero is an
	// explicit no-op; negative counts are rejected.
	Iterations int
	// EdgeThreshold is the crease angle in degrees, valid in [0,180].
	// Edges whose dihedral angle exceeds it are preserved as creases.
	EdgeThreshold float64
	// Pinch in [-1,1] sharpens convex tips when positive and rounds
	// them when negative. Applied once, after all iterations.
	Pinch float64
	// KeepVolume rescales the result uniformly so the enclosed volume
	// matches the input. Only meaningful for closed meshes; silently
	// skipped otherwise.
	KeepVolume bool
	// Boundary selects the hard-edge classification of open mesh
	// borders. The default, BoundarySoft, smooths them.
	Boundary BoundaryPolicy
}

// DefaultConfig returns the filter defaults: moderate strength, three
// passes, 30 degree crease preservation and volume restoration.
func DefaultConfig() Config {
	return Config{
		Strength:      0.5,
		Iterations:    3,
		EdgeThreshold: 30,
		KeepVolume:    true,
	}
}

func (cfg Config) validate() error {
	switch {
	case !(cfg.Strength >= 0 && cfg.Strength <= 1):
		return fmt.Errorf("strength %g outside [0,1]", cfg.Strength)
	case cfg.Iterations < 0:
		return fmt.Errorf("negative iteration count %d", cfg.Iterations)
	case !(cfg.EdgeThreshold >= 0 && cfg.EdgeThreshold <= 180):
		return fmt.Errorf("edge threshold %g outside [0,180] degrees", cfg.EdgeThreshold)
	case !(cfg.Pinch >= -1 && cfg.Pinch <= 1):
		return fmt.Errorf("pinch %g outside [-1,1]", cfg.Pinch)
	case cfg.Boundary != BoundarySoft && cfg.Boundary != BoundaryHard:
		return fmt.Errorf("unknown boundary policy %d", cfg.Boundary)
	}
	return nil
}

// Polish applies the clay polish filter to m in place. The mesh is only
// mutated on a fully successful run: configuration errors surface
// before any computation and all intermediate buffers are scratch. An
// empty mesh is a successful no-op. Per-vertex numerical degeneracies
// (too few soft neighbors, unsolvable plane fits, non-finite updates)
// skip that vertex for the affected sub-step and never abort the run.
//
// Polish is deterministic: identical mesh and configuration produce
// identical positions regardless of GOMAXPROCS.
func Polish(m *Mesh, cfg Config) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	if len(m.positions) == 0 {
		return nil
	}
	adj := newAdjacency(m)
	hard := m.hardEdgeSet(DtoR(cfg.EdgeThreshold), cfg.Boundary)
	soft := softNeighbors(adj, hard)

	pos := append([]r3.Vec(nil), m.positions...)
	var origVolume float64
	var origCenter r3.Vec
	if cfg.KeepVolume {
		origVolume = meshVolume(pos, m.faces)
		origCenter = d3.Centroid(pos)
	}

	lambda := cfg.Strength * taubinShrink
	mu := cfg.Strength * taubinInflate
	scratch := make([]r3.Vec, len(pos))
	for iter := 0; iter < cfg.Iterations; iter++ {
		shrinkStep(scratch, pos, soft, lambda)
		pos, scratch = scratch, pos
		inflateStep(scratch, pos, soft, mu)
		pos, scratch = scratch, pos
	}
	if cfg.Pinch != 0 {
		pinch(pos, m.faces, m.edges, adj, cfg.Pinch)
	}
	if cfg.KeepVolume {
		restoreVolume(pos, m.faces, origVolume, origCenter)
	}
	copy(m.positions, pos)
	return nil
}

// softNeighbors filters hard-edge crossings out of the adjacency lists.
// The hard edge set does not change between iterations, so the filter
// runs once per invocation.
func softNeighbors(adj *adjacency, hard map[[2]int]struct{}) [][]int {
	if len(hard) == 0 {
		return adj.neighbors
	}
	soft := make([][]int, len(adj.neighbors))
	for vi, neighbors := range adj.neighbors {
		kept := make([]int, 0, len(neighbors))
		for _, ni := range neighbors {
			if _, isHard := hard[canonicalEdge(vi, ni)]; !isHard {
				kept = append(kept, ni)
			}
		}
		soft[vi] = kept
	}
	return soft
}
