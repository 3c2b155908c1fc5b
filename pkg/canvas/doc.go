// Package canvas reads and writes canvas documents.
//
// A canvas document is a JSON object holding a list of nodes and a list of
// edges:
//
//	{
//	  "nodes": [
//	    {"id": "a1", "type": "file", "file": "notes/idea.md",
//	     "x": 0, "y": 0, "width": 400, "height": 500}
//	  ],
//	  "edges": []
//	}
//
// # Node Kinds
//
// [Node] is a discriminated union keyed by Type. Check the kind before
// reading kind-specific fields:
//
//	file   File, Subpath
//	text   Text
//	link   URL
//	group  Label, Background, BackgroundStyle
//
// # Round-Trip Fidelity
//
// Documents are edited by other tools, so any key this package does not model
// is kept in an Extra map and written back unchanged. Reading and writing a
// document without touching it preserves every node, edge and top-level key.
//
// # Empty Documents
//
// Empty input and missing files are read as a document with no nodes and no
// edges. [Marshal] always writes both arrays, never null.
package canvas
