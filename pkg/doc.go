// Package pkg provides the core libraries for bleprint.
//
// # Overview
//
// Bleprint reads visual-scripting blueprints written as plain text and
// turns them into a typed node graph: nodes with input and output pins,
// joined by connections between an output pin and an input pin.
//
// # Architecture
//
// The typical data flow:
//
//	Blueprint text (arrow, legacy, tree, clipboard)
//	         ↓
//	    [parse/universal] (detect the notation, dispatch)
//	         ↓
//	    [graph] (nodes, pins, connections)
//	         ↓
//	    [exectree], [render/nodelink], [io] (trees, diagrams, JSON)
//
// # Quick Start
//
//	res, err := pipeline.Parse(ctx, "BeginPlay -> PrintString", pipeline.Options{})
//	if err != nil {
//	    return err
//	}
//	fmt.Print(exectree.FromGraph(res.Graph))
//
// # Main Packages
//
// ## Model
//
// [graph] - Nodes, typed pins and connections. Connections are validated
// against pin type compatibility; pin Connected flags are derived.
//
// ## Notations
//
// [parse] - Shared result and diagnostics types plus the Codec interface.
//
//   - [parse/arrow]: "A -> B -> C" chains with optional pin specs
//   - [parse/legacy]: colored "[Red] Name -> [Blue] Name" chains
//   - [parse/asciitree]: box-drawing trees
//   - [parse/clipboard]: pasted editor exports
//   - [parse/universal]: detection, dispatch and the editor document
//
// ## Output
//
// [exectree] - Execution tree text built by following Exec connections.
//
// [render/nodelink] - Graphviz node-link diagrams (DOT and SVG).
//
// [render] - SVG to PDF and PNG conversion.
//
// [io] - JSON graph documents.
//
// ## Infrastructure
//
// [pipeline] - Parse and render steps shared by the CLI and the API, with
// caching through [cache].
//
// [store] - Saved graphs in memory, MongoDB or PostgreSQL.
//
// [config] - TOML settings.
//
// [errors] - Coded errors with HTTP status mapping.
//
// [observability] - Hooks for parse, render, cache and HTTP events.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test -short ./pkg/...             # Skip tests that dial services
//	go test -run Example ./pkg/...       # Examples only
//
// Store tests against real databases run when BLEPRINT_TEST_MONGO_URI or
// BLEPRINT_TEST_DATABASE_URL is set.
//
// [graph]: https://pkg.go.dev/github.com/USQVE/bleprint/pkg/graph
// [parse]: https://pkg.go.dev/github.com/USQVE/bleprint/pkg/parse
// [parse/arrow]: https://pkg.go.dev/github.com/USQVE/bleprint/pkg/parse/arrow
// [parse/legacy]: https://pkg.go.dev/github.com/USQVE/bleprint/pkg/parse/legacy
// [parse/asciitree]: https://pkg.go.dev/github.com/USQVE/bleprint/pkg/parse/asciitree
// [parse/clipboard]: https://pkg.go.dev/github.com/USQVE/bleprint/pkg/parse/clipboard
// [parse/universal]: https://pkg.go.dev/github.com/USQVE/bleprint/pkg/parse/universal
// [exectree]: https://pkg.go.dev/github.com/USQVE/bleprint/pkg/exectree
// [render/nodelink]: https://pkg.go.dev/github.com/USQVE/bleprint/pkg/render/nodelink
// [render]: https://pkg.go.dev/github.com/USQVE/bleprint/pkg/render
// [io]: https://pkg.go.dev/github.com/USQVE/bleprint/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/USQVE/bleprint/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/USQVE/bleprint/pkg/cache
// [store]: https://pkg.go.dev/github.com/USQVE/bleprint/pkg/store
// [config]: https://pkg.go.dev/github.com/USQVE/bleprint/pkg/config
// [errors]: https://pkg.go.dev/github.com/USQVE/bleprint/pkg/errors
// [observability]: https://pkg.go.dev/github.com/USQVE/bleprint/pkg/observability
package pkg
