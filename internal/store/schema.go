package store

// schemaSQL is the DDL for all tables. Chunks are stored as a JSON
// column on the document row: a document's chunk sequence is immutable
// once saved, so there is nothing to gain from a separate table.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS documents (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    content TEXT NOT NULL,
    chunks JSON NOT NULL,
    created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS bookmarks (
    id TEXT PRIMARY KEY,
    document_id TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
    chunk_index INTEGER NOT NULL,
    text TEXT NOT NULL,
    created_at DATETIME NOT NULL,
    UNIQUE(document_id, chunk_index)
);

CREATE INDEX IF NOT EXISTS idx_bookmarks_document ON bookmarks(document_id);

CREATE TABLE IF NOT EXISTS reading_progress (
    document_id TEXT PRIMARY KEY REFERENCES documents(id) ON DELETE CASCADE,
    current_index INTEGER NOT NULL,
    last_read DATETIME NOT NULL
);
`
