package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/dgallion1/readbit/internal/chunker"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "readbit.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testDocument(id string) Document {
	return Document{
		ID:      id,
		Name:    "notes.txt",
		Content: "Hello world. This is a test.",
		Chunks: []chunker.Chunk{
			{Text: "Hello world. This is a test.", Context: "Intro"},
		},
		CreatedAt: time.Now().UTC(),
	}
}

func TestSaveAndGetDocument(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	doc := testDocument(NewID())
	if err := s.SaveDocument(ctx, doc); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.GetDocument(ctx, doc.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != doc.Name || got.Content != doc.Content {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if len(got.Chunks) != 1 || got.Chunks[0].Context != "Intro" {
		t.Errorf("chunks not preserved: %+v", got.Chunks)
	}
}

func TestSaveDocument_DuplicateIDRejected(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	doc := testDocument(NewID())
	if err := s.SaveDocument(ctx, doc); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.SaveDocument(ctx, doc); err == nil {
		t.Error("expected error on duplicate id, got nil")
	}
}

func TestGetDocument_NotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.GetDocument(context.Background(), "missing"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListDocuments(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := s.SaveDocument(ctx, testDocument(NewID())); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	list, err := s.ListDocuments(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 documents, got %d", len(list))
	}
	for _, d := range list {
		if d.ChunkCount != 1 {
			t.Errorf("document %s: chunk count = %d, want 1", d.ID, d.ChunkCount)
		}
	}
}

func TestDeleteDocument_CascadesBookmarksAndProgress(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	doc := testDocument(NewID())
	if err := s.SaveDocument(ctx, doc); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := s.ToggleBookmark(ctx, doc.ID, 0, "Hello world."); err != nil {
		t.Fatalf("bookmark: %v", err)
	}
	if err := s.SaveProgress(ctx, Progress{DocumentID: doc.ID, CurrentIndex: 0, LastRead: time.Now()}); err != nil {
		t.Fatalf("progress: %v", err)
	}

	if err := s.DeleteDocument(ctx, doc.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	marks, err := s.ListBookmarks(ctx, doc.ID)
	if err != nil {
		t.Fatalf("list bookmarks: %v", err)
	}
	if len(marks) != 0 {
		t.Errorf("bookmarks should cascade on delete, got %d", len(marks))
	}
	if _, err := s.GetProgress(ctx, doc.ID); err != ErrNotFound {
		t.Errorf("progress should cascade on delete, got %v", err)
	}
}

func TestToggleBookmark_AddThenRemove(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	doc := testDocument(NewID())
	if err := s.SaveDocument(ctx, doc); err != nil {
		t.Fatalf("save: %v", err)
	}

	added, err := s.ToggleBookmark(ctx, doc.ID, 2, "some chunk text")
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !added {
		t.Error("first toggle: expected added=true")
	}

	added, err = s.ToggleBookmark(ctx, doc.ID, 2, "some chunk text")
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if added {
		t.Error("second toggle: expected added=false")
	}

	marks, err := s.ListBookmarks(ctx, doc.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(marks) != 0 {
		t.Errorf("expected no bookmarks after second toggle, got %d", len(marks))
	}
}

func TestListBookmarks_ReadingOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	doc := testDocument(NewID())
	if err := s.SaveDocument(ctx, doc); err != nil {
		t.Fatalf("save: %v", err)
	}
	for _, idx := range []int{7, 1, 4} {
		if _, err := s.ToggleBookmark(ctx, doc.ID, idx, "x"); err != nil {
			t.Fatalf("toggle %d: %v", idx, err)
		}
	}

	marks, err := s.ListBookmarks(ctx, doc.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(marks) != 3 {
		t.Fatalf("expected 3 bookmarks, got %d", len(marks))
	}
	for i, want := range []int{1, 4, 7} {
		if marks[i].ChunkIndex != want {
			t.Errorf("bookmark %d: index = %d, want %d", i, marks[i].ChunkIndex, want)
		}
	}
}

func TestProgress_Upsert(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	doc := testDocument(NewID())
	if err := s.SaveDocument(ctx, doc); err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := s.SaveProgress(ctx, Progress{DocumentID: doc.ID, CurrentIndex: 3, LastRead: time.Now()}); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := s.SaveProgress(ctx, Progress{DocumentID: doc.ID, CurrentIndex: 9, LastRead: time.Now()}); err != nil {
		t.Fatalf("second save: %v", err)
	}

	p, err := s.GetProgress(ctx, doc.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.CurrentIndex != 9 {
		t.Errorf("current index = %d, want 9", p.CurrentIndex)
	}
}

func TestNewID_UniqueAndSortable(t *testing.T) {
	a := NewID()
	b := NewID()
	if a == b {
		t.Error("consecutive IDs must differ")
	}
	if len(a) != 26 || len(b) != 26 {
		t.Errorf("ULIDs must be 26 chars, got %d and %d", len(a), len(b))
	}
}
