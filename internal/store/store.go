// Package store persists documents, bookmarks and reading progress in a
// local SQLite database.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/dgallion1/readbit/internal/chunker"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// Document is a saved reading document. Chunks is the ordered reading
// sequence and is immutable once the document is saved; re-chunking
// requires re-importing the source file.
type Document struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Content   string          `json:"content"`
	Chunks    []chunker.Chunk `json:"chunks"`
	CreatedAt time.Time       `json:"created_at"`
}

// DocumentSummary is a listing row without content or chunks.
type DocumentSummary struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	ChunkCount int       `json:"chunk_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// Bookmark marks one chunk in a document.
type Bookmark struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"document_id"`
	ChunkIndex int       `json:"chunk_index"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

// Progress is the reading position within a document.
type Progress struct {
	DocumentID   string    `json:"document_id"`
	CurrentIndex int       `json:"current_index"`
	LastRead     time.Time `json:"last_read"`
}

// Store wraps the SQLite database for all readbit persistence.
type Store struct {
	db *sql.DB
}

// New opens (or creates) a SQLite database at the given path and
// initialises the schema.
func New(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=30000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveDocument inserts a new document. IDs are never reused, so a
// duplicate insert is an error rather than an overwrite.
func (s *Store) SaveDocument(ctx context.Context, doc Document) error {
	chunksJSON, err := json.Marshal(doc.Chunks)
	if err != nil {
		return fmt.Errorf("marshal chunks: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (id, name, content, chunks, created_at) VALUES (?, ?, ?, ?, ?)`,
		doc.ID, doc.Name, doc.Content, string(chunksJSON), doc.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert document %s: %w", doc.ID, err)
	}
	return nil
}

// GetDocument retrieves a document with its full chunk sequence.
func (s *Store) GetDocument(ctx context.Context, id string) (*Document, error) {
	var doc Document
	var chunksJSON string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, content, chunks, created_at FROM documents WHERE id = ?`, id,
	).Scan(&doc.ID, &doc.Name, &doc.Content, &chunksJSON, &doc.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get document %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(chunksJSON), &doc.Chunks); err != nil {
		return nil, fmt.Errorf("decode chunks for %s: %w", id, err)
	}
	return &doc, nil
}

// ListDocuments returns summaries of all documents, newest first.
func (s *Store) ListDocuments(ctx context.Context) ([]DocumentSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, json_array_length(chunks), created_at FROM documents ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	summaries := []DocumentSummary{}
	for rows.Next() {
		var d DocumentSummary
		if err := rows.Scan(&d.ID, &d.Name, &d.ChunkCount, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan document row: %w", err)
		}
		summaries = append(summaries, d)
	}
	return summaries, rows.Err()
}

// DeleteDocument removes a document; bookmarks and progress cascade.
func (s *Store) DeleteDocument(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete document %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleBookmark adds a bookmark for (documentID, chunkIndex) if none
// exists and reports added=true; otherwise it removes the existing one
// and reports added=false. The UNIQUE constraint on the pair rules out
// duplicates.
func (s *Store) ToggleBookmark(ctx context.Context, documentID string, chunkIndex int, text string) (added bool, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin toggle: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`DELETE FROM bookmarks WHERE document_id = ? AND chunk_index = ?`,
		documentID, chunkIndex,
	)
	if err != nil {
		return false, fmt.Errorf("toggle bookmark: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return false, tx.Commit()
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO bookmarks (id, document_id, chunk_index, text, created_at) VALUES (?, ?, ?, ?, ?)`,
		NewID(), documentID, chunkIndex, text, time.Now().UTC(),
	)
	if err != nil {
		return false, fmt.Errorf("insert bookmark: %w", err)
	}
	return true, tx.Commit()
}

// ListBookmarks returns a document's bookmarks in reading order.
func (s *Store) ListBookmarks(ctx context.Context, documentID string) ([]Bookmark, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, document_id, chunk_index, text, created_at
		   FROM bookmarks WHERE document_id = ? ORDER BY chunk_index`,
		documentID,
	)
	if err != nil {
		return nil, fmt.Errorf("list bookmarks for %s: %w", documentID, err)
	}
	defer rows.Close()

	bookmarks := []Bookmark{}
	for rows.Next() {
		var b Bookmark
		if err := rows.Scan(&b.ID, &b.DocumentID, &b.ChunkIndex, &b.Text, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan bookmark row: %w", err)
		}
		bookmarks = append(bookmarks, b)
	}
	return bookmarks, rows.Err()
}

// DeleteBookmark removes a bookmark by id.
func (s *Store) DeleteBookmark(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM bookmarks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete bookmark %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// SaveProgress upserts the reading position for a document.
func (s *Store) SaveProgress(ctx context.Context, p Progress) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO reading_progress (document_id, current_index, last_read) VALUES (?, ?, ?)
		 ON CONFLICT(document_id) DO UPDATE SET current_index = excluded.current_index, last_read = excluded.last_read`,
		p.DocumentID, p.CurrentIndex, p.LastRead.UTC(),
	)
	if err != nil {
		return fmt.Errorf("save progress for %s: %w", p.DocumentID, err)
	}
	return nil
}

// GetProgress returns the reading position for a document.
func (s *Store) GetProgress(ctx context.Context, documentID string) (*Progress, error) {
	var p Progress
	err := s.db.QueryRowContext(ctx,
		`SELECT document_id, current_index, last_read FROM reading_progress WHERE document_id = ?`,
		documentID,
	).Scan(&p.DocumentID, &p.CurrentIndex, &p.LastRead)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get progress for %s: %w", documentID, err)
	}
	return &p, nil
}
