package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lintang-bs/pathcore/internal/scenario"
	"github.com/lintang-bs/pathcore/pkg/problem"
)

const sampleMap = "type octile\nheight 3\nwidth 3\nmap\n...\n...\n...\n"

func writeTempFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	assert.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestBuildAlgorithmDispatchesKnownNames(t *testing.T) {
	for _, name := range []string{"dijkstra", "astar", "jps", "jps2", "jps+", "jps2+", "cpg", "jpg"} {
		mapPath := writeTempFile(t, "test.map", sampleMap)
		f, err := os.Open(mapPath)
		assert.NoError(t, err)

		algo, toIDs, mem, err := buildAlgorithm(name, f)
		assert.NoError(t, err, name)
		assert.NotNil(t, algo, name)
		assert.NotNil(t, toIDs, name)
		assert.NotNil(t, mem, name)
		f.Close()
	}
}

func TestBuildAlgorithmRejectsGraphOnlyAlgorithms(t *testing.T) {
	mapPath := writeTempFile(t, "test.map", sampleMap)
	f, err := os.Open(mapPath)
	assert.NoError(t, err)
	defer f.Close()

	_, _, _, err = buildAlgorithm("bch", f)
	assert.Error(t, err)
}

func TestBuildAlgorithmRejectsUnknownName(t *testing.T) {
	mapPath := writeTempFile(t, "test.map", sampleMap)
	f, err := os.Open(mapPath)
	assert.NoError(t, err)
	defer f.Close()

	_, _, _, err = buildAlgorithm("not-an-alg", f)
	assert.Error(t, err)
}

func TestRunExperimentsEmitsTabSeparatedHeader(t *testing.T) {
	mapPath := writeTempFile(t, "test.map", sampleMap)
	f, err := os.Open(mapPath)
	assert.NoError(t, err)
	defer f.Close()

	algo, toIDs, _, err := buildAlgorithm("astar", f)
	assert.NoError(t, err)

	sm := &scenario.Manager{LastFileLoaded: mapPath, Experiments: []scenario.Experiment{
		{Bucket: 0, Map: mapPath, MapWidth: 3, MapHeight: 3, StartX: 0, StartY: 0, TargetX: 2, TargetY: 0, OptimalCost: 2},
	}}

	var buf bytes.Buffer
	runExperiments(algo, "astar", sm, toIDs, false, false, &buf)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, "id\talg\texpanded\tinserted\tupdated\ttouched\tmicros\tpcost\tplen\tmap", lines[0])
	assert.Contains(t, lines[1], "astar")
}

func TestCheckOptimalityPassesWithinEpsilon(t *testing.T) {
	sol := problem.Solution{SumOfEdgeCosts: 2.0}
	exp := scenario.Experiment{OptimalCost: 2.0}
	checkOptimality(sol, exp)
}
