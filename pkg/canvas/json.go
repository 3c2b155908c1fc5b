package canvas

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"

	"github.com/matzehuels/canvasrand/pkg/errors"
)

// Extra holds JSON keys that have no field on the owning type.
type Extra map[string]json.RawMessage

var (
	documentKeys = keySet("nodes", "edges")
	nodeKeys     = keySet("id", "type", "x", "y", "width", "height", "color",
		"file", "subpath", "text", "url", "label", "background", "backgroundStyle")
	edgeKeys = keySet("id", "fromNode", "fromSide", "fromEnd", "toNode", "toSide",
		"toEnd", "color", "label")
)

func keySet(keys ...string) map[string]bool {
	m := make(map[string]bool, len(keys))
	for _, k := range keys {
		m[k] = true
	}
	return m
}

// splitExtra returns the keys of the JSON object data that are not in known.
func splitExtra(data []byte, known map[string]bool) (Extra, error) {
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	var extra Extra
	for k, v := range all {
		if known[k] {
			continue
		}
		if extra == nil {
			extra = make(Extra)
		}
		extra[k] = v
	}
	return extra, nil
}

// hasKey reports whether the JSON object data has key at the top level.
func hasKey(data []byte, key string) bool {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return false
	}
	_, ok := obj[key]
	return ok
}

// merge adds the extra keys to the encoded object data. Keys already present
// in data win.
func (e Extra) merge(data []byte) ([]byte, error) {
	if len(e) == 0 {
		return data, nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}
	for k, v := range e {
		if _, ok := obj[k]; !ok {
			obj[k] = v
		}
	}
	return json.Marshal(obj)
}

type nodeFields Node

// nodeWithColor shadows Color so an empty value is still written.
type nodeWithColor struct {
	nodeFields
	Color string `json:"color"`
}

// MarshalJSON encodes the node including any preserved extra keys.
func (n Node) MarshalJSON() ([]byte, error) {
	var v any = nodeFields(n)
	if n.KeepColor {
		v = nodeWithColor{nodeFields: nodeFields(n), Color: n.Color}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return n.Extra.merge(data)
}

// UnmarshalJSON decodes a node, keeping keys it does not model in Extra.
func (n *Node) UnmarshalJSON(data []byte) error {
	var f nodeFields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	extra, err := splitExtra(data, nodeKeys)
	if err != nil {
		return err
	}
	f.Extra = extra
	f.KeepColor = hasKey(data, "color")
	*n = Node(f)
	return nil
}

type edgeFields Edge

// MarshalJSON encodes the edge including any preserved extra keys.
func (e Edge) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(edgeFields(e))
	if err != nil {
		return nil, err
	}
	return e.Extra.merge(data)
}

// UnmarshalJSON decodes an edge, keeping keys it does not model in Extra.
func (e *Edge) UnmarshalJSON(data []byte) error {
	var f edgeFields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	extra, err := splitExtra(data, edgeKeys)
	if err != nil {
		return err
	}
	f.Extra = extra
	*e = Edge(f)
	return nil
}

type documentFields struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// MarshalJSON encodes the document. Nil node and edge lists are written as
// empty arrays.
func (d Document) MarshalJSON() ([]byte, error) {
	f := documentFields{Nodes: d.Nodes, Edges: d.Edges}
	if f.Nodes == nil {
		f.Nodes = []Node{}
	}
	if f.Edges == nil {
		f.Edges = []Edge{}
	}
	data, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	return d.Extra.merge(data)
}

// UnmarshalJSON decodes a document. Missing or null node and edge lists
// become empty slices.
func (d *Document) UnmarshalJSON(data []byte) error {
	var f documentFields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	extra, err := splitExtra(data, documentKeys)
	if err != nil {
		return err
	}
	if f.Nodes == nil {
		f.Nodes = []Node{}
	}
	if f.Edges == nil {
		f.Edges = []Edge{}
	}
	*d = Document{Nodes: f.Nodes, Edges: f.Edges, Extra: extra}
	return nil
}

// Clone returns a deep copy of the document's slices and extra maps.
func (d Document) Clone() Document {
	out := Document{
		Nodes: make([]Node, len(d.Nodes)),
		Edges: make([]Edge, len(d.Edges)),
		Extra: maps.Clone(d.Extra),
	}
	for i, n := range d.Nodes {
		n.Extra = maps.Clone(n.Extra)
		out.Nodes[i] = n
	}
	for i, e := range d.Edges {
		e.Extra = maps.Clone(e.Extra)
		out.Edges[i] = e
	}
	return out
}

// =============================================================================
// Document Serialization API
// =============================================================================

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Marshal serializes a document to tab-indented JSON.
func Marshal(d Document) ([]byte, error) {
	return json.MarshalIndent(d, "", "\t")
}

// Unmarshal parses a document. Empty input yields an empty document.
func Unmarshal(data []byte) (Document, error) {
	data = bytes.TrimSpace(bytes.TrimPrefix(data, utf8BOM))
	if len(data) == 0 {
		return Empty(), nil
	}
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidCanvas, err, "canvas is not valid JSON")
	}
	return d, nil
}

// ReadFile reads a document from path. A missing file yields an empty
// document.
func ReadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Empty(), nil
	}
	if err != nil {
		return Document{}, fmt.Errorf("read %s: %w", path, err)
	}
	d, err := Unmarshal(data)
	if err != nil {
		return Document{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return d, nil
}

// WriteFile writes d to path, replacing the file atomically.
func WriteFile(path string, d Document) error {
	data, err := Marshal(d)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
