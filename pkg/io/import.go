package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/USQVE/bleprint/pkg/errors"
	"github.com/USQVE/bleprint/pkg/graph"
)

// ReadDocument decodes a JSON document from r without validating it.
func ReadDocument(r io.Reader) (Document, error) {
	var d Document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode graph JSON")
	}
	return d, nil
}

// ReadJSON decodes a JSON graph from r. See [ToGraph] for the validation
// applied. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*graph.Graph, error) {
	d, err := ReadDocument(r)
	if err != nil {
		return nil, err
	}
	return ToGraph(d)
}

// ImportJSON reads a JSON file at path and returns the decoded graph.
func ImportJSON(path string) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}
