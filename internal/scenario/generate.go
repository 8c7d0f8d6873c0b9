package scenario

import (
	"math/rand"

	"github.com/lintang-bs/pathcore/pkg/expansion"
	"github.com/lintang-bs/pathcore/pkg/gridmap"
	"github.com/lintang-bs/pathcore/pkg/heuristic"
	"github.com/lintang-bs/pathcore/pkg/problem"
	"github.com/lintang-bs/pathcore/pkg/search"
)

// Generate builds n random-start/target experiments over g, matching the
// original's `--gen` mode (warthog.cpp's scenario_manager::generate_experiments):
// each query's optimal cost is filled in by running a zero-heuristic
// FlexibleAStar (Dijkstra) so the resulting .scen file is immediately usable
// with --checkopt.
func Generate(mapName string, g *gridmap.GridMap, n int, rng *rand.Rand) *Manager {
	m := &Manager{LastFileLoaded: mapName}
	policy := expansion.NewGridOctilePolicy(g)
	dijkstra := search.NewFlexibleAStar(policy, heuristic.Zero{})

	var instanceID uint32
	for len(m.Experiments) < n {
		sx, sy := randomPassableCell(g, rng)
		tx, ty := randomPassableCell(g, rng)
		if sx == tx && sy == ty {
			continue
		}

		instanceID++
		sol := dijkstra.GetPath(&problem.Instance{
			StartID:    g.ToPaddedID(sx, sy),
			TargetID:   g.ToPaddedID(tx, ty),
			InstanceID: instanceID,
		})
		if !sol.Found() {
			continue
		}

		m.Experiments = append(m.Experiments, Experiment{
			Bucket: len(m.Experiments), Map: mapName,
			MapWidth: g.Width(), MapHeight: g.Height(),
			StartX: sx, StartY: sy, TargetX: tx, TargetY: ty,
			OptimalCost: sol.SumOfEdgeCosts,
		})
	}
	return m
}

func randomPassableCell(g *gridmap.GridMap, rng *rand.Rand) (x, y int32) {
	for {
		x = rng.Int31n(g.Width())
		y = rng.Int31n(g.Height())
		if g.GetLabel(x, y) {
			return x, y
		}
	}
}
