package gridmap

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// LoadMovingAI reads a Moving-AI Lab .map file
// (https://movingai.com/benchmarks/formats.html) and returns a passability
// grid. This is external-collaborator territory (spec section 1, "Map-file
// parsing for the grid formats" is out of scope for the core); it exists
// only so cmd/pathcore has something runnable to feed the core with.
//
// Format:
//
//	type octile
//	height H
//	width W
//	map
//	<H lines of W characters>
//
// '.', 'G' and the lowercase terrain letters 'a'..'z' are traversable;
// every other character ('@', 'O', 'T', 'S', 'W', other uppercase letters,
// digits) is blocked. LoadMovingAIWeighted keeps the byte of each
// traversable cell as its terrain and stores BlockedTerrain for the rest.
func LoadMovingAI(r io.Reader) (*GridMap, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	height, width, err := readMapHeader(sc)
	if err != nil {
		return nil, err
	}

	g := NewGridMap(width, height)
	for y := int32(0); y < height; y++ {
		if !sc.Scan() {
			return nil, errors.Newf("gridmap: map file truncated at row %d of %d", y, height)
		}
		line := sc.Text()
		if int32(len(line)) < width {
			return nil, errors.Newf("gridmap: row %d too short: want %d cols, got %d", y, width, len(line))
		}
		for x := int32(0); x < width; x++ {
			g.SetLabel(x, y, isTraversableChar(line[x]))
		}
	}
	return g, sc.Err()
}

// LoadMovingAIWeighted reads the same file format into a WeightedGridMap,
// preserving the raw terrain byte per cell instead of collapsing it to a
// boolean.
func LoadMovingAIWeighted(r io.Reader) (*WeightedGridMap, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	height, width, err := readMapHeader(sc)
	if err != nil {
		return nil, err
	}

	g := NewWeightedGridMap(width, height)
	for y := int32(0); y < height; y++ {
		if !sc.Scan() {
			return nil, errors.Newf("gridmap: map file truncated at row %d of %d", y, height)
		}
		line := sc.Text()
		if int32(len(line)) < width {
			return nil, errors.Newf("gridmap: row %d too short: want %d cols, got %d", y, width, len(line))
		}
		for x := int32(0); x < width; x++ {
			b := line[x]
			if !isTraversableChar(b) {
				b = BlockedTerrain
			}
			g.SetTerrain(x, y, b)
		}
	}
	return g, sc.Err()
}

func readMapHeader(sc *bufio.Scanner) (height, width int32, err error) {
	fields := map[string]int32{}
	for {
		if !sc.Scan() {
			return 0, 0, errors.New("gridmap: unexpected EOF reading map header")
		}
		line := strings.TrimSpace(sc.Text())
		if line == "map" {
			break
		}
		parts := strings.Fields(line)
		if len(parts) != 2 {
			continue
		}
		switch parts[0] {
		case "height", "width":
			n, perr := strconv.Atoi(parts[1])
			if perr != nil {
				return 0, 0, errors.Wrapf(perr, "gridmap: invalid %s value %q", parts[0], parts[1])
			}
			fields[parts[0]] = int32(n)
		}
	}
	h, ok := fields["height"]
	if !ok {
		return 0, 0, errors.New("gridmap: missing height in map header")
	}
	w, ok := fields["width"]
	if !ok {
		return 0, 0, errors.New("gridmap: missing width in map header")
	}
	// Some files place "map" before both dimensions are seen if height/width
	// come after; re-scan defensively is unnecessary here since Moving-AI
	// files always list type/height/width/map in that fixed order.
	return h, w, nil
}

func isTraversableChar(b byte) bool {
	switch b {
	case '.', 'G':
		return true
	case '@', 'O', 'T', 'S', 'W':
		return false
	default:
		return b >= 'a' && b <= 'z'
	}
}

// FormatCell renders a single traversability bit back into a Moving-AI
// character: '.' when passable, '@' otherwise.
func FormatCell(passable bool) byte {
	if passable {
		return '.'
	}
	return '@'
}
