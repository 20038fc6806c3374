// Package render turns node graphs into pictures.
//
// The [nodelink] subpackage emits Graphviz DOT with one record per node and
// one port per pin, and renders it to SVG in-process.
//
// [ToPDF] and [ToPNG] convert any SVG using the external rsvg-convert tool
// (from librsvg):
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot)
//	png, err := render.ToPNG(svg, 2.0) // 2x scale
//
// [nodelink]: github.com/USQVE/bleprint/pkg/render/nodelink
package render
