package canvas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/canvasrand/pkg/errors"
	"github.com/matzehuels/canvasrand/pkg/grid"
)

const sampleCanvas = `{
	"nodes": [
		{"id": "t1", "type": "text", "text": "hello", "x": -20, "y": 10, "width": 250, "height": 60, "color": "4"},
		{"id": "f1", "type": "file", "file": "notes/a.md", "subpath": "#Intro", "x": 300, "y": 0, "width": 400, "height": 500, "styleAttributes": {"border": "dashed"}},
		{"id": "g1", "type": "group", "label": "Ideas", "background": "bg.png", "backgroundStyle": "cover", "x": -100, "y": -100, "width": 900, "height": 700},
		{"id": "l1", "type": "link", "url": "https://example.com", "x": 0, "y": 800, "width": 400, "height": 200}
	],
	"edges": [
		{"id": "e1", "fromNode": "t1", "fromSide": "right", "toNode": "f1", "toSide": "left", "toEnd": "arrow", "label": "see", "pinned": true}
	],
	"metadata": {"version": "1.0"}
}`

func TestUnmarshalNodeKinds(t *testing.T) {
	d, err := Unmarshal([]byte(sampleCanvas))
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if d.NodeCount() != 4 || d.EdgeCount() != 1 {
		t.Fatalf("counts = %d/%d, want 4/1", d.NodeCount(), d.EdgeCount())
	}

	text, file, group, link := d.Nodes[0], d.Nodes[1], d.Nodes[2], d.Nodes[3]
	if !text.IsText() || text.Text != "hello" || text.Color != "4" {
		t.Errorf("text node = %+v", text)
	}
	if !file.IsFile() || file.File != "notes/a.md" || file.Subpath != "#Intro" {
		t.Errorf("file node = %+v", file)
	}
	if !group.IsGroup() || group.Label != "Ideas" || group.BackgroundStyle != "cover" {
		t.Errorf("group node = %+v", group)
	}
	if !link.IsLink() || link.URL != "https://example.com" {
		t.Errorf("link node = %+v", link)
	}
	if _, ok := file.Extra["styleAttributes"]; !ok {
		t.Error("file node lost unknown key styleAttributes")
	}
	if _, ok := d.Edges[0].Extra["pinned"]; !ok {
		t.Error("edge lost unknown key pinned")
	}
	if _, ok := d.Extra["metadata"]; !ok {
		t.Error("document lost unknown key metadata")
	}
}

func TestRoundTripPreservesContent(t *testing.T) {
	d, err := Unmarshal([]byte(sampleCanvas))
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	out, err := Marshal(d)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var want, got any
	if err := json.Unmarshal([]byte(sampleCanvas), &want); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip changed document (-want +got):\n%s", diff)
	}
}

func TestUnmarshalEmpty(t *testing.T) {
	inputs := []string{"", "   \n\t", "\xEF\xBB\xBF", "{}", `{"nodes": null}`, "null"}

	for _, in := range inputs {
		d, err := Unmarshal([]byte(in))
		if err != nil {
			t.Errorf("Unmarshal(%q): %v", in, err)
			continue
		}
		if d.Nodes == nil || d.Edges == nil {
			t.Errorf("Unmarshal(%q) left nil slices: %+v", in, d)
		}
		if d.NodeCount() != 0 || d.EdgeCount() != 0 {
			t.Errorf("Unmarshal(%q) = %d nodes, %d edges, want empty", in, d.NodeCount(), d.EdgeCount())
		}
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	for _, in := range []string{"{", "[]", `{"nodes": {}}`, "nope"} {
		_, err := Unmarshal([]byte(in))
		if err == nil {
			t.Errorf("Unmarshal(%q) succeeded, want error", in)
			continue
		}
		if !errors.Is(err, errors.ErrCodeInvalidCanvas) {
			t.Errorf("Unmarshal(%q) code = %v, want %v", in, errors.GetCode(err), errors.ErrCodeInvalidCanvas)
		}
	}
}

func TestMarshalEmptyWritesArrays(t *testing.T) {
	data, err := Marshal(Document{})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := "{\n\t\"nodes\": [],\n\t\"edges\": []\n}"
	if string(data) != want {
		t.Errorf("Marshal(empty) = %q, want %q", data, want)
	}
}

func TestFileNodeWireShape(t *testing.T) {
	n := NewFileNode("abc", "notes/a.md", 450, 0, 400, 500)

	data, err := json.Marshal(n)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"id":"abc","type":"file","x":450,"y":0,"width":400,"height":500,"file":"notes/a.md","color":""}`
	if string(data) != want {
		t.Errorf("file node JSON = %s, want %s", data, want)
	}
}

func TestColorKeyPresence(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantKey bool
	}{
		{"no color key", `{"id":"a","type":"file","file":"a.md","x":0,"y":0,"width":1,"height":1}`, false},
		{"empty color", `{"id":"a","type":"file","file":"a.md","x":0,"y":0,"width":1,"height":1,"color":""}`, true},
		{"set color", `{"id":"a","type":"file","file":"a.md","x":0,"y":0,"width":1,"height":1,"color":"2"}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n Node
			if err := json.Unmarshal([]byte(tt.in), &n); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			out, err := json.Marshal(n)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			var obj map[string]any
			if err := json.Unmarshal(out, &obj); err != nil {
				t.Fatal(err)
			}
			if _, ok := obj["color"]; ok != tt.wantKey {
				t.Errorf("color key present = %v, want %v in %s", ok, tt.wantKey, out)
			}
		})
	}
}

func TestAppendKeepsOriginal(t *testing.T) {
	d, err := Unmarshal([]byte(sampleCanvas))
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	before := d.Clone()

	added := d.Append(NewFileNode("n1", "b.md", 0, 0, 1, 1), NewFileNode("n2", "c.md", 0, 0, 1, 1))

	if added.NodeCount() != d.NodeCount()+2 {
		t.Errorf("Append node count = %d, want %d", added.NodeCount(), d.NodeCount()+2)
	}
	if added.EdgeCount() != d.EdgeCount() {
		t.Errorf("Append changed edges: %d vs %d", added.EdgeCount(), d.EdgeCount())
	}
	if diff := cmp.Diff(before, d); diff != "" {
		t.Errorf("Append mutated receiver (-before +after):\n%s", diff)
	}
	if diff := cmp.Diff(d.Nodes, added.Nodes[:d.NodeCount()]); diff != "" {
		t.Errorf("Append reordered existing nodes:\n%s", diff)
	}
	if got := added.Nodes[len(added.Nodes)-1].File; got != "c.md" {
		t.Errorf("last node file = %q, want c.md", got)
	}
}

func TestFilesAndHasFile(t *testing.T) {
	d, _ := Unmarshal([]byte(sampleCanvas))

	if diff := cmp.Diff([]string{"notes/a.md"}, d.Files()); diff != "" {
		t.Errorf("Files mismatch:\n%s", diff)
	}
	if !d.HasFile("notes/a.md") {
		t.Error("HasFile(notes/a.md) = false")
	}
	if d.HasFile("notes/b.md") {
		t.Error("HasFile(notes/b.md) = true")
	}
}

func TestBounds(t *testing.T) {
	d, _ := Unmarshal([]byte(sampleCanvas))

	got, ok := d.Bounds()
	if !ok {
		t.Fatal("Bounds ok = false")
	}
	want := grid.Rect{X: -100, Y: -100, Width: 900, Height: 1100}
	if got != want {
		t.Errorf("Bounds = %+v, want %+v", got, want)
	}

	if _, ok := Empty().Bounds(); ok {
		t.Error("Empty().Bounds ok = true")
	}
}

func TestReadWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "boards", "ideas.canvas")

	d, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(missing): %v", err)
	}
	if d.NodeCount() != 0 {
		t.Fatalf("missing file should read as empty, got %d nodes", d.NodeCount())
	}

	d = d.Append(NewFileNode("x", "notes/a.md", 0, 0, 400, 500))
	if err := WriteFile(path, d); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	back, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if diff := cmp.Diff(d, back); diff != "" {
		t.Errorf("file round trip mismatch (-wrote +read):\n%s", diff)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("temporary file left behind: %s", e.Name())
		}
	}
}

func TestReadFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.canvas")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := ReadFile(path)
	if !errors.Is(err, errors.ErrCodeInvalidCanvas) {
		t.Errorf("ReadFile(invalid) err = %v, want %v", err, errors.ErrCodeInvalidCanvas)
	}
}
