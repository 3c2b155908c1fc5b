package place

import (
	"strings"
	"testing"

	"github.com/matzehuels/canvasrand/pkg/canvas"
	"github.com/matzehuels/canvasrand/pkg/grid"
	"github.com/matzehuels/canvasrand/pkg/sample"
)

func TestNodeID(t *testing.T) {
	got := NodeID("notes/a.md")
	if len(got) != 32 {
		t.Fatalf("NodeID length = %d, want 32", len(got))
	}
	if got != NodeID("notes/a.md") {
		t.Error("NodeID is not deterministic")
	}
	if got == NodeID("notes/b.md") {
		t.Error("different paths produced the same id")
	}
}

func TestNodeIDKnownDigest(t *testing.T) {
	// md5("") is a well known constant.
	if got := NodeID(""); got != "d41d8cd98f00b204e9800998ecf8427e" {
		t.Errorf("NodeID(\"\") = %s", got)
	}
}

func TestAssemble(t *testing.T) {
	spec := grid.Spec{Count: 99, PerRow: 3, Width: 400, Height: 500, Margin: 50}
	candidates := []string{"c.md", "a.md", "e.md", "b.md"}

	nodes := Assemble(candidates, spec, nil)

	if len(nodes) != len(candidates) {
		t.Fatalf("len = %d, want %d", len(nodes), len(candidates))
	}
	wantXY := []grid.Point{{X: 0, Y: 0}, {X: 450, Y: 0}, {X: 900, Y: 0}, {X: 0, Y: 550}}
	for i, n := range nodes {
		if n.File != candidates[i] {
			t.Errorf("node %d file = %q, want %q", i, n.File, candidates[i])
		}
		if n.ID != NodeID(candidates[i]) {
			t.Errorf("node %d id = %q, want %q", i, n.ID, NodeID(candidates[i]))
		}
		if n.Type != canvas.KindFile {
			t.Errorf("node %d type = %q, want file", i, n.Type)
		}
		if n.X != wantXY[i].X || n.Y != wantXY[i].Y {
			t.Errorf("node %d at (%v,%v), want (%v,%v)", i, n.X, n.Y, wantXY[i].X, wantXY[i].Y)
		}
		if n.Width != 400 || n.Height != 500 {
			t.Errorf("node %d size = %vx%v, want 400x500", i, n.Width, n.Height)
		}
		if n.Color != "" {
			t.Errorf("node %d color = %q, want empty", i, n.Color)
		}
	}
}

func TestAssembleWritesColorKey(t *testing.T) {
	nodes := Assemble([]string{"a.md"}, grid.DefaultSpec(), nil)

	data, err := canvas.Marshal(canvas.Empty().Append(nodes...))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(data), `"color": ""`) {
		t.Errorf("new file node written without a color key:\n%s", data)
	}
}

func TestAssembleColorAndOrigin(t *testing.T) {
	spec := grid.Spec{PerRow: 2, Width: 100, Height: 100, Margin: 10, OriginX: -50, OriginY: 1000}

	nodes := Assemble([]string{"a.md", "b.md", "c.md"}, spec, &Options{Color: "3"})

	if nodes[2].X != -50 || nodes[2].Y != 1110 {
		t.Errorf("third node at (%v,%v), want (-50,1110)", nodes[2].X, nodes[2].Y)
	}
	for i, n := range nodes {
		if n.Color != "3" {
			t.Errorf("node %d color = %q, want 3", i, n.Color)
		}
	}
}

func TestAssembleEmpty(t *testing.T) {
	nodes := Assemble(nil, grid.DefaultSpec(), nil)
	if nodes == nil || len(nodes) != 0 {
		t.Errorf("Assemble(nil) = %v, want empty slice", nodes)
	}
}

func TestAssembleStableAcrossRuns(t *testing.T) {
	a := Assemble([]string{"x/y.md"}, grid.DefaultSpec(), nil)
	b := Assemble([]string{"x/y.md"}, grid.DefaultSpec().WithOrigin(10, 10), nil)
	if a[0].ID != b[0].ID {
		t.Errorf("ids differ across runs: %s vs %s", a[0].ID, b[0].ID)
	}
}

func TestSampleThenAssemble(t *testing.T) {
	pool := []string{"A", "B", "C", "D", "E"}
	spec := grid.Spec{Count: 3, PerRow: 3, Width: 400, Height: 500, Margin: 50}
	doc := canvas.Empty().Append(canvas.NewFileNode("old", "old.md", 0, 0, 10, 10))

	picked := sample.Sample(sample.New(5), pool, spec.Count)
	nodes := Assemble(picked, spec, nil)
	out := doc.Append(nodes...)

	if len(picked) != 3 {
		t.Fatalf("picked %d, want 3", len(picked))
	}
	wantX := []float64{0, 450, 900}
	for i, n := range nodes {
		if n.File != picked[i] {
			t.Errorf("node %d file = %q, want %q", i, n.File, picked[i])
		}
		if n.X != wantX[i] || n.Y != 0 {
			t.Errorf("node %d at (%v,%v), want (%v,0)", i, n.X, n.Y, wantX[i])
		}
	}
	if out.NodeCount() != doc.NodeCount()+3 {
		t.Errorf("document has %d nodes, want %d", out.NodeCount(), doc.NodeCount()+3)
	}
}
