// Package store persists prepared graph.XYGraph instances to a pebble KV
// store as zstd-compressed gob blobs, generalizing the teacher's
// alg/zstd_compression.go + alg/compress_graph.go + alg/kv_db.go pipeline
// (encode -> compress -> Set, and Get -> decompress -> decode) from
// []SurakartaWay payloads to prepared contracted graphs. This gives the
// "core assumes a prepared contracted graph" input boundary (spec section
// 1) a concrete, loadable form without pulling contraction-hierarchy
// construction into the core.
package store

import (
	"bytes"
	"encoding/gob"

	"github.com/DataDog/zstd"
	"github.com/cockroachdb/pebble"
	"github.com/k0kubun/go-ansi"
	"github.com/schollz/progressbar/v3"

	"github.com/lintang-bs/pathcore/internal/errs"
	"github.com/lintang-bs/pathcore/pkg/graph"
)

// progressReadThreshold is the compressed blob size, in bytes, above which
// Get reports load progress. Small graphs load fast enough that a bar would
// just flicker.
const progressReadThreshold = 8 << 20

// Encode gob-encodes g. Exported so callers (and tests) can inspect the
// uncompressed wire size.
func Encode(g *graph.XYGraph) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := gob.NewEncoder(buf).Encode(g); err != nil {
		return nil, errs.WrapErrorf(err, errs.ErrInvalidNode, "store: encode graph")
	}
	return buf.Bytes(), nil
}

// Decode reverses Encode.
func Decode(bb []byte) (*graph.XYGraph, error) {
	g := &graph.XYGraph{}
	if err := gob.NewDecoder(bytes.NewReader(bb)).Decode(g); err != nil {
		return nil, errs.WrapErrorf(err, errs.ErrInvalidNode, "store: decode graph")
	}
	return g, nil
}

// Compress zstd-compresses bb.
func Compress(bb []byte) ([]byte, error) {
	var out []byte
	out, err := zstd.Compress(out, bb)
	if err != nil {
		return nil, errs.WrapErrorf(err, errs.ErrInvalidNode, "store: compress")
	}
	return out, nil
}

// Decompress reverses Compress.
func Decompress(bb []byte) ([]byte, error) {
	var out []byte
	out, err := zstd.Decompress(out, bb)
	if err != nil {
		return nil, errs.WrapErrorf(err, errs.ErrInvalidNode, "store: decompress")
	}
	return out, nil
}

// CompressGraph runs the full encode-then-compress pipeline.
func CompressGraph(g *graph.XYGraph) ([]byte, error) {
	bb, err := Encode(g)
	if err != nil {
		return nil, err
	}
	return Compress(bb)
}

// LoadGraph runs the full decompress-then-decode pipeline.
func LoadGraph(bbCompressed []byte) (*graph.XYGraph, error) {
	bb, err := Decompress(bbCompressed)
	if err != nil {
		return nil, err
	}
	return Decode(bb)
}

// GraphStore is a pebble-backed key/value store of prepared graphs, one per
// name (typically a map/region identifier).
type GraphStore struct {
	db *pebble.DB
}

// Open opens (creating if absent) a pebble database at dir.
func Open(dir string) (*GraphStore, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, errs.WrapErrorf(err, errs.ErrInvalidNode, "store: open pebble db at %s", dir)
	}
	return &GraphStore{db: db}, nil
}

// Close closes the underlying pebble database.
func (s *GraphStore) Close() error { return s.db.Close() }

// Put compresses and stores g under name, fsyncing the write.
func (s *GraphStore) Put(name string, g *graph.XYGraph) error {
	val, err := CompressGraph(g)
	if err != nil {
		return err
	}
	if err := s.db.Set([]byte(name), val, pebble.Sync); err != nil {
		return errs.WrapErrorf(err, errs.ErrInvalidNode, "store: put %s", name)
	}
	return nil
}

// Get loads and decompresses the graph stored under name.
func (s *GraphStore) Get(name string) (*graph.XYGraph, error) {
	val, closer, err := s.db.Get([]byte(name))
	if err != nil {
		return nil, errs.WrapErrorf(err, errs.ErrScenarioNotFound, "store: get %s", name)
	}
	defer closer.Close()

	buf := make([]byte, len(val))
	if len(val) >= progressReadThreshold {
		bar := progressbar.NewOptions(len(val),
			progressbar.OptionSetWriter(ansi.NewAnsiStdout()),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionShowBytes(true),
			progressbar.OptionSetWidth(15),
			progressbar.OptionSetDescription("[cyan]loading "+name+"[reset]"),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}))
		const chunk = 1 << 20
		for off := 0; off < len(val); off += chunk {
			end := off + chunk
			if end > len(val) {
				end = len(val)
			}
			copy(buf[off:end], val[off:end])
			bar.Add(end - off)
		}
	} else {
		copy(buf, val)
	}
	return LoadGraph(buf)
}
