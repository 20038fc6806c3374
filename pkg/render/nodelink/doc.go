// Package nodelink renders node graphs as Graphviz diagrams.
//
// Every node becomes a record with its input pins in the left column, its
// title in the middle and its output pins on the right. Connections attach
// to the pin ports, so fan-in and fan-out stay readable:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot)
//
// Exec wires are drawn bold; data wires take the color of their pin kind.
// With Options.Detailed the record also lists the node category and its
// metadata.
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering; no Graphviz installation is needed.
package nodelink
