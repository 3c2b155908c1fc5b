// Package pkg provides the libraries behind canvasrand.
//
// # Overview
//
// canvasrand drops randomly chosen notes from a markdown vault onto a JSON
// Canvas document, laid out as a grid of file cards. The pkg directory is
// organized into three areas:
//
//  1. Core: [sample], [grid] and [place] are pure and deterministic given a
//     seed
//  2. Documents and vaults: [canvas] reads and writes canvas files, [vault]
//     finds candidate notes
//  3. Orchestration and support: [populate] ties the core together;
//     [settings], [cache], [errors], [observability] and [buildinfo] support it
//
// # Architecture
//
//	vault directory
//	       ↓
//	  [vault] (scan, front matter, filter)
//	       ↓
//	  [sample] (random subset, seeded)
//	       ↓
//	  [grid] (row-major coordinates)
//	       ↓
//	  [place] (file nodes, md5-of-path ids)
//	       ↓
//	  [canvas] (append, write back)
//
// # Quick Start
//
//	notes, _ := vault.Scan(ctx, "~/notes")
//	res, err := populate.NewRunner(nil).RunFile(ctx, "Board.canvas", populate.Request{
//	    Pool: vault.Paths(notes),
//	    Spec: grid.DefaultSpec(),
//	})
//
// [sample]: https://pkg.go.dev/github.com/matzehuels/canvasrand/pkg/sample
// [grid]: https://pkg.go.dev/github.com/matzehuels/canvasrand/pkg/grid
// [place]: https://pkg.go.dev/github.com/matzehuels/canvasrand/pkg/place
// [canvas]: https://pkg.go.dev/github.com/matzehuels/canvasrand/pkg/canvas
// [vault]: https://pkg.go.dev/github.com/matzehuels/canvasrand/pkg/vault
// [populate]: https://pkg.go.dev/github.com/matzehuels/canvasrand/pkg/populate
// [settings]: https://pkg.go.dev/github.com/matzehuels/canvasrand/pkg/settings
// [cache]: https://pkg.go.dev/github.com/matzehuels/canvasrand/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/canvasrand/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/canvasrand/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/canvasrand/pkg/buildinfo
package pkg
