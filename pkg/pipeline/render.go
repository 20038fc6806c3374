package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/USQVE/bleprint/pkg/exectree"
	"github.com/USQVE/bleprint/pkg/graph"
	bpio "github.com/USQVE/bleprint/pkg/io"
	"github.com/USQVE/bleprint/pkg/observability"
	"github.com/USQVE/bleprint/pkg/parse"
	"github.com/USQVE/bleprint/pkg/parse/universal"
	"github.com/USQVE/bleprint/pkg/render"
	"github.com/USQVE/bleprint/pkg/render/nodelink"
)

// PNGScale is the scale factor used for PNG output.
const PNGScale = 2.0

// Render writes g in one output format without caching.
func Render(ctx context.Context, g *graph.Graph, output string) ([]byte, error) {
	if err := ValidateOutput(output); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, output, g.NodeCount())
	start := time.Now()

	data, err := renderOutput(g, output)
	hooks.OnRenderComplete(ctx, output, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", output, err)
	}
	return data, nil
}

func renderOutput(g *graph.Graph, output string) ([]byte, error) {
	switch output {
	case OutputJSON:
		var buf bytes.Buffer
		if err := bpio.WriteJSON(g, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case OutputArrow, OutputTree, OutputLegacy:
		return []byte(universal.Generate(g, parse.Format(output))), nil
	case OutputExec:
		return []byte(exectree.FromGraph(g)), nil
	case OutputDOT:
		return []byte(nodelink.ToDOT(g, nodelink.Options{})), nil
	}

	svg, err := nodelink.RenderSVG(nodelink.ToDOT(g, nodelink.Options{}))
	if err != nil {
		return nil, err
	}
	switch output {
	case OutputPNG:
		return render.ToPNG(svg, PNGScale)
	case OutputPDF:
		return render.ToPDF(svg)
	default:
		return svg, nil
	}
}

// expensive reports whether an output is worth caching.
func expensive(output string) bool {
	return output == OutputSVG || output == OutputPNG || output == OutputPDF
}
