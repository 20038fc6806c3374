// Package storetest holds the behavior every store.Store must show.
// Backend packages call Run from their tests.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	bperrors "github.com/USQVE/bleprint/pkg/errors"
	bpio "github.com/USQVE/bleprint/pkg/io"
	"github.com/USQVE/bleprint/pkg/parse/arrow"
	"github.com/USQVE/bleprint/pkg/store"
)

// Document returns a small valid graph document.
func Document(text string) bpio.Document {
	return bpio.FromGraph(arrow.Parse(text))
}

// Run exercises s. s must be empty.
func Run(t *testing.T, s store.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("save assigns id", func(t *testing.T) {
		rec := &store.Record{Name: "first", Document: Document("A -> B")}
		if err := s.Save(ctx, rec); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		if rec.ID == "" {
			t.Fatal("Save() left ID empty")
		}
		if rec.CreatedAt.IsZero() || rec.UpdatedAt.IsZero() {
			t.Error("Save() left timestamps empty")
		}

		got, err := s.Get(ctx, rec.ID)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got.Name != "first" {
			t.Errorf("Name = %q, want first", got.Name)
		}
		if len(got.Document.Nodes) != 2 || len(got.Document.Connections) != 1 {
			t.Errorf("Document = %s, want 2 nodes and 1 connection", got.Document.Summary())
		}
		if got.Document.Nodes[0].ID != rec.Document.Nodes[0].ID {
			t.Error("node ids changed across Save/Get")
		}
	})

	t.Run("save replaces", func(t *testing.T) {
		rec := &store.Record{Name: "draft", Document: Document("A")}
		if err := s.Save(ctx, rec); err != nil {
			t.Fatal(err)
		}
		created := rec.CreatedAt
		time.Sleep(5 * time.Millisecond)

		update := &store.Record{ID: rec.ID, Name: "final", Document: Document("A -> B -> C")}
		if err := s.Save(ctx, update); err != nil {
			t.Fatal(err)
		}
		got, err := s.Get(ctx, rec.ID)
		if err != nil {
			t.Fatal(err)
		}
		if got.Name != "final" || len(got.Document.Nodes) != 3 {
			t.Errorf("Get() = %q with %d nodes, want final with 3", got.Name, len(got.Document.Nodes))
		}
		if !got.CreatedAt.Equal(created) {
			t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, created)
		}
		if !got.UpdatedAt.After(created) {
			t.Errorf("UpdatedAt = %v, want after %v", got.UpdatedAt, created)
		}
	})

	t.Run("list newest first", func(t *testing.T) {
		time.Sleep(5 * time.Millisecond)
		rec := &store.Record{Name: "latest", Document: Document("X -> Y")}
		if err := s.Save(ctx, rec); err != nil {
			t.Fatal(err)
		}
		list, err := s.List(ctx)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(list) != 3 {
			t.Fatalf("List() returned %d records, want 3", len(list))
		}
		if list[0].ID != rec.ID {
			t.Errorf("List()[0] = %q, want latest", list[0].Name)
		}
	})

	t.Run("invalid records", func(t *testing.T) {
		err := s.Save(ctx, &store.Record{Name: "", Document: Document("A")})
		if !bperrors.Is(err, bperrors.ErrCodeInvalidName) {
			t.Errorf("Save(empty name) error = %v, want INVALID_NAME", err)
		}
		bad := Document("A -> B")
		bad.Connections[0].ToPinID = "missing"
		err = s.Save(ctx, &store.Record{Name: "broken", Document: bad})
		if !bperrors.Is(err, bperrors.ErrCodeInvalidGraph) {
			t.Errorf("Save(broken) error = %v, want INVALID_GRAPH", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		if _, err := s.Get(ctx, "nope"); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("Get() error = %v, want ErrNotFound", err)
		}
		if err := s.Delete(ctx, "nope"); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("Delete() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		list, err := s.List(ctx)
		if err != nil {
			t.Fatal(err)
		}
		for _, rec := range list {
			if err := s.Delete(ctx, rec.ID); err != nil {
				t.Fatalf("Delete(%s) error = %v", rec.ID, err)
			}
		}
		if list, _ := s.List(ctx); len(list) != 0 {
			t.Errorf("List() after delete = %d records, want 0", len(list))
		}
	})
}
