// Package place turns sampled note paths into positioned canvas file nodes.
//
// [Assemble] zips candidates with the points of a [grid.Layout], index by
// index, and gives every node an id derived from its path with [NodeID]. The
// same path always gets the same id, so repeated runs are reproducible and
// easy to diff. Nodes are not deduplicated across runs.
package place

import (
	"crypto/md5"
	"encoding/hex"

	"github.com/matzehuels/canvasrand/pkg/canvas"
	"github.com/matzehuels/canvasrand/pkg/grid"
)

// NodeID returns the hex md5 digest of path.
func NodeID(path string) string {
	sum := md5.Sum([]byte(path))
	return hex.EncodeToString(sum[:])
}

// Options tweaks the nodes produced by [Assemble].
type Options struct {
	// Color is copied onto every node. Empty means the canvas default.
	Color string
}

// Assemble lays out one file node per candidate, in candidate order.
//
// The layout is computed for len(candidates) items; spec.Count is ignored, so
// a pool that ran short cannot desynchronize candidates and coordinates.
func Assemble(candidates []string, spec grid.Spec, opts *Options) []canvas.Node {
	points := grid.Layout(len(candidates), spec)
	nodes := make([]canvas.Node, len(candidates))
	for i, path := range candidates {
		n := canvas.NewFileNode(NodeID(path), path, points[i].X, points[i].Y, spec.Width, spec.Height)
		if opts != nil {
			n.Color = opts.Color
		}
		nodes[i] = n
	}
	return nodes
}
