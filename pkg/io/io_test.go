package io

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/USQVE/bleprint/pkg/errors"
	"github.com/USQVE/bleprint/pkg/graph"
	"github.com/USQVE/bleprint/pkg/parse/legacy"
)

func sampleGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g := legacy.Parse("[Start] (then - white) → [Branch] (exec - white)\n[Get] (value - red) → [Branch] (cond - red)\n[Lonely]")
	if len(g.Connections()) != 2 {
		t.Fatalf("sample has %d connections, want 2", len(g.Connections()))
	}
	return g
}

func TestRoundTripPreservesIdentity(t *testing.T) {
	g := sampleGraph(t)

	var buf bytes.Buffer
	if err := WriteJSON(g, &buf); err != nil {
		t.Fatalf("WriteJSON() = %v", err)
	}
	back, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON() = %v", err)
	}

	if back.NodeCount() != g.NodeCount() {
		t.Fatalf("NodeCount() = %d, want %d", back.NodeCount(), g.NodeCount())
	}
	for i, n := range g.Nodes() {
		m := back.Nodes()[i]
		if m.ID != n.ID || m.Title != n.Title || m.X != n.X || m.Category != n.Category {
			t.Errorf("node %d = %+v, want %+v", i, m, n)
		}
		for j, p := range n.Pins() {
			q := m.Pins()[j]
			if q.ID != p.ID || q.Name != p.Name || q.Type != p.Type || q.Direction != p.Direction || q.Connected != p.Connected {
				t.Errorf("pin %s = %+v, want %+v", p.ID, q, p)
			}
		}
	}
	for i, c := range g.Connections() {
		if *back.Connections()[i] != *c {
			t.Errorf("connection %d = %+v, want %+v", i, back.Connections()[i], c)
		}
	}
	if err := back.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestExportImportFile(t *testing.T) {
	g := sampleGraph(t)
	path := filepath.Join(t.TempDir(), "graph.json")
	if err := ExportJSON(g, path); err != nil {
		t.Fatalf("ExportJSON() = %v", err)
	}
	back, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON() = %v", err)
	}
	if back.NodeCount() != 3 {
		t.Errorf("NodeCount() = %d, want 3", back.NodeCount())
	}

	if _, err := ImportJSON(filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("ImportJSON(missing) = %v, want NOT_FOUND", err)
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		json string
		code errors.Code
	}{
		{"malformed", `{"nodes": [`, errors.ErrCodeInvalidInput},
		{"duplicate node", `{"nodes":[{"id":"a","title":"A"},{"id":"a","title":"B"}]}`, errors.ErrCodeInvalidGraph},
		{"missing node id", `{"nodes":[{"title":"A"}]}`, errors.ErrCodeInvalidGraph},
		{"duplicate pin", `{"nodes":[{"id":"a","inputs":[{"id":"p","type":"Exec"}],"outputs":[{"id":"p","type":"Exec"}]}]}`, errors.ErrCodeInvalidGraph},
		{"unknown type", `{"nodes":[{"id":"a","inputs":[{"id":"p","type":"Color"}]}]}`, errors.ErrCodeInvalidGraph},
		{"dangling connection", `{"nodes":[{"id":"a"}],"connections":[{"id":"c","fromNodeId":"a","fromPinId":"x","toNodeId":"b","toPinId":"y"}]}`, errors.ErrCodeInvalidGraph},
		{"incompatible connection", `{"nodes":[
			{"id":"a","outputs":[{"id":"o","type":"Integer"}]},
			{"id":"b","inputs":[{"id":"i","type":"Boolean"}]}],
			"connections":[{"id":"c","fromNodeId":"a","fromPinId":"o","toNodeId":"b","toPinId":"i"}]}`, errors.ErrCodeInvalidGraph},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.json))
			if !errors.Is(err, tt.code) {
				t.Errorf("ReadJSON() = %v, want code %v", err, tt.code)
			}
		})
	}
}

func TestImportDerivesConnectedFlags(t *testing.T) {
	in := `{"nodes":[
		{"id":"a","outputs":[{"id":"o","type":"Exec","isConnected":false}]},
		{"id":"b","inputs":[{"id":"i","type":"Exec","isConnected":false}],"outputs":[{"id":"x","type":"Exec","isConnected":true}]}],
		"connections":[{"id":"c","fromNodeId":"a","fromPinId":"o","toNodeId":"b","toPinId":"i"}]}`
	g, err := ReadJSON(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	b := g.Node("b")
	if !b.Inputs[0].Connected {
		t.Error("input not marked connected")
	}
	if b.Outputs[0].Connected {
		t.Error("stale isConnected flag was trusted")
	}
}
