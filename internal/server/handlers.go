package server

import (
	stderrors "errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/USQVE/bleprint/pkg/buildinfo"
	"github.com/USQVE/bleprint/pkg/errors"
	"github.com/USQVE/bleprint/pkg/graph"
	"github.com/USQVE/bleprint/pkg/httputil"
	bpio "github.com/USQVE/bleprint/pkg/io"
	"github.com/USQVE/bleprint/pkg/parse"
	"github.com/USQVE/bleprint/pkg/parse/universal"
	"github.com/USQVE/bleprint/pkg/pipeline"
	"github.com/USQVE/bleprint/pkg/store"
)

var contentTypes = map[string]string{
	pipeline.OutputJSON: "application/json",
	pipeline.OutputDOT:  "text/vnd.graphviz; charset=utf-8",
	pipeline.OutputSVG:  "image/svg+xml",
	pipeline.OutputPNG:  "image/png",
	pipeline.OutputPDF:  "application/pdf",
}

type parseRequest struct {
	Text     string `json:"text"`
	Format   string `json:"format,omitempty"`
	Identity string `json:"identity,omitempty"`
	Window   int    `json:"window,omitempty"`
	PinReuse string `json:"pin_reuse,omitempty"`
	Strict   bool   `json:"strict,omitempty"`
}

type statsBody struct {
	Nodes       int      `json:"nodes"`
	Connections int      `json:"connections"`
	Categories  []string `json:"categories,omitempty"`
}

type parseResponse struct {
	Format      parse.Format       `json:"format"`
	Document    bpio.Document      `json:"document"`
	Diagnostics []parse.Diagnostic `json:"diagnostics"`
	Stats       statsBody          `json:"stats"`
	CacheHit    bool               `json:"cache_hit"`
}

type saveRequest struct {
	Name     string         `json:"name"`
	Document *bpio.Document `json:"document,omitempty"`
	parseRequest
}

type graphSummary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Nodes       int       `json:"nodes"`
	Connections int       `json:"connections"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}

// options merges request policies over the server defaults.
func (s *Server) options(req parseRequest) pipeline.Options {
	opts := s.Defaults
	opts.Logger = s.Logger
	if req.Format != "" {
		opts.Format = req.Format
	}
	if req.Identity != "" {
		opts.Identity = req.Identity
	}
	if req.Window != 0 {
		opts.Window = req.Window
	}
	if req.PinReuse != "" {
		opts.PinReuse = req.PinReuse
	}
	opts.Strict = opts.Strict || req.Strict
	return opts
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := httputil.DecodeJSON(w, r, s.Config.MaxBodyBytes, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	res, err := s.Runner.Parse(r.Context(), req.Text, s.options(req))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	diags := res.Diagnostics
	if diags == nil {
		diags = []parse.Diagnostic{}
	}
	stats := res.Graph.Statistics()
	httputil.WriteJSON(w, http.StatusOK, parseResponse{
		Format:      res.Format,
		Document:    bpio.FromGraph(res.Graph),
		Diagnostics: diags,
		Stats: statsBody{
			Nodes:       stats.NodeCount,
			Connections: stats.ConnectionCount,
			Categories:  stats.Categories,
		},
		CacheHit: res.CacheHit,
	})
}

func (s *Server) handleUniversal(w http.ResponseWriter, r *http.Request) {
	text, err := httputil.ReadText(w, r, s.Config.MaxBodyBytes)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	res, err := s.Runner.Parse(r.Context(), text, s.options(parseRequest{}))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, universal.FromGraph(res.Graph))
}

func (s *Server) handleExecTree(w http.ResponseWriter, r *http.Request) {
	var doc universal.Document
	if err := httputil.DecodeJSON(w, r, s.Config.MaxBodyBytes, &doc); err != nil {
		httputil.WriteError(w, err)
		return
	}
	resp := execTreeResponse{}
	if _, err := doc.Graph(); err != nil {
		if errors.Is(err, errors.ErrCodeInvalidGraph) {
			httputil.WriteError(w, err)
			return
		}
		resp.Warnings = strings.Split(err.Error(), "\n")
	}
	resp.Tree = doc.ExecTree()
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// execTreeResponse carries the tree and the connections the graph model
// rejected, which the tree leaves out.
type execTreeResponse struct {
	Tree     string   `json:"tree"`
	Warnings []string `json:"warnings,omitempty"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var doc bpio.Document
	if err := httputil.DecodeJSON(w, r, s.Config.MaxBodyBytes, &doc); err != nil {
		httputil.WriteError(w, err)
		return
	}
	g, err := bpio.ToGraph(doc)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	s.writeRendered(w, r, g, chi.URLParam(r, "output"))
}

func (s *Server) writeRendered(w http.ResponseWriter, r *http.Request, g *graph.Graph, output string) {
	if err := pipeline.ValidateOutput(output); err != nil {
		httputil.WriteError(w, err)
		return
	}
	data, err := s.Runner.Render(r.Context(), g, output)
	if err != nil {
		httputil.WriteError(w, errors.Wrap(errors.ErrCodeUnsupported, err, "render %s", output))
		return
	}
	ct, ok := contentTypes[output]
	if !ok {
		ct = "text/plain; charset=utf-8"
	}
	w.Header().Set("Content-Type", ct)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleListGraphs(w http.ResponseWriter, r *http.Request) {
	records, err := s.Store.List(r.Context())
	if err != nil {
		httputil.WriteError(w, storeError(err, ""))
		return
	}
	out := make([]graphSummary, len(records))
	for i, rec := range records {
		out[i] = graphSummary{
			ID:          rec.ID,
			Name:        rec.Name,
			Nodes:       len(rec.Document.Nodes),
			Connections: len(rec.Document.Connections),
			CreatedAt:   rec.CreatedAt,
			UpdatedAt:   rec.UpdatedAt,
		}
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func (s *Server) handleSaveGraph(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if err := httputil.DecodeJSON(w, r, s.Config.MaxBodyBytes, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	rec := &store.Record{Name: req.Name}
	switch {
	case req.Document != nil:
		rec.Document = *req.Document
	case req.Text != "":
		res, err := s.Runner.Parse(r.Context(), req.Text, s.options(req.parseRequest))
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		rec.Document = bpio.FromGraph(res.Graph)
	default:
		httputil.WriteError(w, errors.New(errors.ErrCodeInvalidInput, "either document or text is required"))
		return
	}

	if err := s.Store.Save(r.Context(), rec); err != nil {
		httputil.WriteError(w, storeError(err, rec.ID))
		return
	}
	s.Logger.Debug("saved graph", "id", rec.ID, "name", rec.Name, "graph", rec.Document.Summary())
	httputil.WriteJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleGetGraph(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := s.Store.Get(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, storeError(err, id))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteGraph(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.Store.Delete(r.Context(), id); err != nil {
		httputil.WriteError(w, storeError(err, id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRenderGraph(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := s.Store.Get(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, storeError(err, id))
		return
	}
	g, err := bpio.ToGraph(rec.Document)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	s.writeRendered(w, r, g, chi.URLParam(r, "output"))
}

// storeError codes an error returned by the store.
func storeError(err error, id string) error {
	switch {
	case stderrors.Is(err, store.ErrNotFound):
		return errors.Wrap(errors.ErrCodeGraphNotFound, err, "graph %s not found", id)
	case errors.GetCode(err) != "":
		return err
	default:
		return errors.Wrap(errors.ErrCodeStorage, err, "storage unavailable")
	}
}
