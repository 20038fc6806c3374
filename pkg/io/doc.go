// Package io provides JSON import and export for node graphs.
//
// # JSON Format
//
// The format has two top-level arrays whose entries mirror the graph model:
//
//	{
//	  "nodes": [
//	    {
//	      "id": "5c1d...", "title": "Branch", "category": "Arrow",
//	      "x": 250, "y": 0, "width": 200, "height": 100,
//	      "inputs":  [{"id": "9a0e...", "name": "in_0", "type": "Exec", "direction": "input"}],
//	      "outputs": [{"id": "77b2...", "name": "out_0", "type": "Exec", "direction": "output", "isConnected": true}]
//	    }
//	  ],
//	  "connections": [
//	    {"id": "e4f1...", "fromNodeId": "...", "fromPinId": "...", "toNodeId": "...", "toPinId": "..."}
//	  ]
//	}
//
// Node, pin, and connection ids survive a round trip unchanged. The
// isConnected flag is written for readers but ignored on import, where it is
// derived from the connections again.
//
// # Import
//
// Use [ImportJSON] to read a graph from a file path, or [ReadJSON] to read
// from any io.Reader. Unlike the text notations, import is strict: malformed
// JSON, duplicate ids, unknown pin types, and connections the graph rejects
// are hard errors carrying an INVALID_INPUT or INVALID_GRAPH code.
//
// # Export
//
// Use [ExportJSON] to write a graph to a file, or [WriteJSON] to write to any
// io.Writer. [FromGraph] and [ToGraph] convert without encoding; the store
// and API layers use [Document] directly.
package io
