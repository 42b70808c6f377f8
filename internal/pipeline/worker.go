package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dgallion1/readbit/internal/chunker"
	"github.com/dgallion1/readbit/internal/parser"
	"github.com/dgallion1/readbit/internal/store"
)

// Worker processes a single document import job.
type Worker struct {
	store    *store.Store
	log      *slog.Logger
	chunkOpt chunker.Options
	stats    *IngestStats

	pdfFallback bool
}

func NewWorker(st *store.Store, log *slog.Logger, chunkOpt chunker.Options, stats *IngestStats, pdfFallback bool) *Worker {
	return &Worker{
		store:       st,
		log:         log,
		chunkOpt:    chunkOpt,
		stats:       stats,
		pdfFallback: pdfFallback,
	}
}

// Process runs the full import pipeline for a job: parse to annotated
// text, chunk, persist. Failures surface once on the job; there are no
// retries.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "doc_id", job.DocID)
	start := time.Now()

	// Phase 1: Parse
	job.SetStatus(StatusParsing, "parsing")
	p, err := parser.ForFile(job.Filename)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	if pdf, ok := p.(*parser.PDFParser); ok {
		pdf.FallbackPdftotext = w.pdfFallback
	}

	res, err := p.Parse(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("parse failed", "error", err)
		job.AddError(fmt.Sprintf("parse: %s", err))
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	if strings.TrimSpace(res.Text) == "" {
		log.Warn("no extractable text")
		job.AddError("no extractable text in document")
		job.SetStatus(StatusFailed, "parsing")
		return
	}

	name := job.Title
	if name == "" {
		name = res.Title
	}

	// Phase 2: Chunk
	job.SetStatus(StatusChunking, "chunking")
	chunks := chunker.ChunkText(res.Text, w.chunkOpt)
	if len(chunks) == 0 {
		log.Warn("no chunks produced")
		job.AddError("no readable content")
		job.SetStatus(StatusFailed, "chunking")
		return
	}
	stats := chunker.ChunkStats(chunks)
	job.SetChunkCounts(stats.TotalChunks, stats.TotalWords)
	log.Info("chunked document", "chunks", stats.TotalChunks, "words", stats.TotalWords)

	// Phase 3: Store document and initial reading position.
	job.SetStatus(StatusStoring, "storing")
	now := time.Now()
	doc := store.Document{
		ID:        job.DocID,
		Name:      name,
		Content:   res.Text,
		Chunks:    chunks,
		CreatedAt: now,
	}
	if err := w.store.SaveDocument(ctx, doc); err != nil {
		log.Error("save failed", "error", err)
		job.AddError(fmt.Sprintf("store: %s", err))
		job.SetStatus(StatusFailed, "storing")
		return
	}
	if err := w.store.SaveProgress(ctx, store.Progress{DocumentID: doc.ID, CurrentIndex: 0, LastRead: now}); err != nil {
		// The document itself is saved; progress will be recreated on
		// the first page turn.
		log.Warn("initial progress not saved", "error", err)
	}

	if w.stats != nil {
		w.stats.Record(time.Since(start).Milliseconds())
	}
	job.SetStatus(StatusCompleted, "done")
	log.Info("import complete", "duration_ms", time.Since(start).Milliseconds())
}
