package canvas

import (
	"slices"

	"github.com/matzehuels/canvasrand/pkg/grid"
)

// Node kinds.
const (
	KindFile  = "file"
	KindText  = "text"
	KindLink  = "link"
	KindGroup = "group"
)

// Document is a canvas: nodes plus the edges between them.
type Document struct {
	Nodes []Node
	Edges []Edge

	// Extra holds top-level keys other than nodes and edges.
	Extra Extra
}

// Node is a positioned element on a canvas.
type Node struct {
	ID     string  `json:"id"`
	Type   string  `json:"type"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Color  string  `json:"color,omitempty"`

	// file
	File    string `json:"file,omitempty"`
	Subpath string `json:"subpath,omitempty"`

	// text
	Text string `json:"text,omitempty"`

	// link
	URL string `json:"url,omitempty"`

	// group
	Label           string `json:"label,omitempty"`
	Background      string `json:"background,omitempty"`
	BackgroundStyle string `json:"backgroundStyle,omitempty"`

	// KeepColor writes the color key even when Color is empty. It is set for
	// nodes created by NewFileNode and for decoded nodes that carried the key.
	KeepColor bool `json:"-"`

	Extra Extra `json:"-"`
}

// Edge connects two nodes. The populate flow never inspects edges; they are
// modeled so they survive a read-modify-write cycle intact.
type Edge struct {
	ID       string `json:"id"`
	FromNode string `json:"fromNode"`
	FromSide string `json:"fromSide,omitempty"`
	FromEnd  string `json:"fromEnd,omitempty"`
	ToNode   string `json:"toNode"`
	ToSide   string `json:"toSide,omitempty"`
	ToEnd    string `json:"toEnd,omitempty"`
	Color    string `json:"color,omitempty"`
	Label    string `json:"label,omitempty"`

	Extra Extra `json:"-"`
}

// NewFileNode returns a file node referencing path at the given box.
func NewFileNode(id, path string, x, y, width, height float64) Node {
	return Node{
		ID:        id,
		Type:      KindFile,
		X:         x,
		Y:         y,
		Width:     width,
		Height:    height,
		File:      path,
		KeepColor: true,
	}
}

// IsFile returns true if this is a file node.
func (n *Node) IsFile() bool { return n.Type == KindFile }

// IsText returns true if this is a text node.
func (n *Node) IsText() bool { return n.Type == KindText }

// IsLink returns true if this is a link node.
func (n *Node) IsLink() bool { return n.Type == KindLink }

// IsGroup returns true if this is a group node.
func (n *Node) IsGroup() bool { return n.Type == KindGroup }

// Rect returns the node's bounding box.
func (n *Node) Rect() grid.Rect {
	return grid.Rect{X: n.X, Y: n.Y, Width: n.Width, Height: n.Height}
}

// Empty returns a document with no nodes and no edges.
func Empty() Document {
	return Document{Nodes: []Node{}, Edges: []Edge{}}
}

// Append returns a new document holding d's nodes followed by nodes.
// d is left untouched; edges and extra keys are shared.
func (d Document) Append(nodes ...Node) Document {
	out := d
	out.Nodes = make([]Node, 0, len(d.Nodes)+len(nodes))
	out.Nodes = append(out.Nodes, d.Nodes...)
	out.Nodes = append(out.Nodes, nodes...)
	if out.Edges == nil {
		out.Edges = []Edge{}
	}
	return out
}

// NodeCount returns the number of nodes.
func (d Document) NodeCount() int { return len(d.Nodes) }

// EdgeCount returns the number of edges.
func (d Document) EdgeCount() int { return len(d.Edges) }

// Files returns the file paths referenced by file nodes, in node order.
func (d Document) Files() []string {
	var files []string
	for i := range d.Nodes {
		if d.Nodes[i].IsFile() {
			files = append(files, d.Nodes[i].File)
		}
	}
	return files
}

// HasFile reports whether a file node already references path.
func (d Document) HasFile(path string) bool {
	return slices.Contains(d.Files(), path)
}

// Bounds returns the box covering every node. It returns false for a
// document without nodes.
func (d Document) Bounds() (grid.Rect, bool) {
	if len(d.Nodes) == 0 {
		return grid.Rect{}, false
	}
	r := d.Nodes[0].Rect()
	minX, minY, maxX, maxY := r.X, r.Y, r.Right(), r.Bottom()
	for i := range d.Nodes[1:] {
		r := d.Nodes[i+1].Rect()
		minX = min(minX, r.X)
		minY = min(minY, r.Y)
		maxX = max(maxX, r.Right())
		maxY = max(maxY, r.Bottom())
	}
	return grid.Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}, true
}
