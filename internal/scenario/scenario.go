// Package scenario loads and writes Moving-AI Lab .scen benchmark files
// (https://movingai.com/benchmarks/formats.html): the external-collaborator
// boundary that supplies cmd/pathcore with batches of start/target queries
// and their known-optimal costs, mirroring the teacher's mapfile-loading
// idiom (pkg/gridmap/mapfile.go) rather than pulling scenario I/O into the
// core search packages themselves (spec section 1, "Out of scope").
package scenario

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/lintang-bs/pathcore/internal/errs"
	"github.com/lintang-bs/pathcore/pkg/core"
)

// Experiment is one benchmark query: a start/target pair on a named map,
// plus the benchmark's precomputed optimal cost for optimality checking
// (spec section 6, "--checkopt").
type Experiment struct {
	Bucket      int
	Map         string
	MapWidth    int32
	MapHeight   int32
	StartX      int32
	StartY      int32
	TargetX     int32
	TargetY     int32
	OptimalCost float64
}

// Manager holds a batch of experiments loaded from, or destined for, a
// single .scen file.
type Manager struct {
	LastFileLoaded string
	Experiments    []Experiment
}

// Load reads a Moving-AI .scen file. The first line must start with
// "version" (as in "version 1.0");
// every subsequent line is a tab-separated
// "bucket map width height sx sy gx gy optimal_cost" record.
func Load(r io.Reader) (*Manager, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	if !sc.Scan() {
		return nil, errs.WrapErrorf(nil, errs.ErrScenarioNotFound, "scenario: empty file")
	}
	header := strings.TrimSpace(sc.Text())
	if !strings.HasPrefix(header, "version") {
		return nil, errs.WrapErrorf(nil, errs.ErrScenarioNotFound, "scenario: missing version header, got %q", header)
	}

	m := &Manager{}
	line := 1
	for sc.Scan() {
		line++
		row := strings.TrimSpace(sc.Text())
		if row == "" {
			continue
		}
		exp, err := parseExperiment(row)
		if err != nil {
			return nil, errors.Wrapf(err, "scenario: line %d", line)
		}
		if m.LastFileLoaded == "" {
			m.LastFileLoaded = exp.Map
		}
		m.Experiments = append(m.Experiments, exp)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

func parseExperiment(row string) (Experiment, error) {
	fields := strings.Split(row, "\t")
	if len(fields) != 9 {
		return Experiment{}, errors.Newf("scenario: expected 9 tab-separated fields, got %d", len(fields))
	}

	bucket, err := strconv.Atoi(fields[0])
	if err != nil {
		return Experiment{}, errors.Wrapf(err, "scenario: bad bucket %q", fields[0])
	}
	width, err := parseInt32(fields[2])
	if err != nil {
		return Experiment{}, errors.Wrapf(err, "scenario: bad width")
	}
	height, err := parseInt32(fields[3])
	if err != nil {
		return Experiment{}, errors.Wrapf(err, "scenario: bad height")
	}
	sx, err := parseInt32(fields[4])
	if err != nil {
		return Experiment{}, errors.Wrapf(err, "scenario: bad startx")
	}
	sy, err := parseInt32(fields[5])
	if err != nil {
		return Experiment{}, errors.Wrapf(err, "scenario: bad starty")
	}
	gx, err := parseInt32(fields[6])
	if err != nil {
		return Experiment{}, errors.Wrapf(err, "scenario: bad goalx")
	}
	gy, err := parseInt32(fields[7])
	if err != nil {
		return Experiment{}, errors.Wrapf(err, "scenario: bad goaly")
	}
	cost, err := strconv.ParseFloat(fields[8], 64)
	if err != nil {
		return Experiment{}, errors.Wrapf(err, "scenario: bad optimal cost")
	}

	return Experiment{
		Bucket: bucket, Map: fields[1],
		MapWidth: width, MapHeight: height,
		StartX: sx, StartY: sy,
		TargetX: gx, TargetY: gy,
		OptimalCost: cost,
	}, nil
}

func parseInt32(s string) (int32, error) {
	n, err := strconv.ParseInt(s, 10, 32)
	return int32(n), err
}

// Write serialises m back to the Moving-AI .scen format.
func Write(w io.Writer, m *Manager) error {
	if _, err := fmt.Fprintln(w, "version 1.0"); err != nil {
		return err
	}
	for _, e := range m.Experiments {
		_, err := fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%f\n",
			e.Bucket, e.Map, e.MapWidth, e.MapHeight,
			e.StartX, e.StartY, e.TargetX, e.TargetY, e.OptimalCost)
		if err != nil {
			return err
		}
	}
	return nil
}

// StartTargetIDs converts an experiment's grid coordinates into node ids
// using toID, matching the id scheme the caller's expansion policy expects
// (padded gridmap ids, weighted-grid ids, or graph ids) for start/target ids
// passed into a problem.Instance.
func (e Experiment) StartTargetIDs(toID func(x, y int32) core.NodeID) (start, target core.NodeID) {
	return toID(e.StartX, e.StartY), toID(e.TargetX, e.TargetY)
}
