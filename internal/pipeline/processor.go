package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/baltadar/edi-app/constants"
	"github.com/baltadar/edi-app/internal/common"
	"github.com/baltadar/edi-app/internal/exceptions"
	"github.com/baltadar/edi-app/internal/fields"
	"github.com/baltadar/edi-app/internal/ledger"
	"github.com/baltadar/edi-app/internal/ocr"
	"github.com/baltadar/edi-app/internal/output"
)

// TextExtractor abstracts OCR so the pipeline can be tested with stubs.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (ocr.ExtractionResult, error)
}

// Outcome summarizes one processed document.
type Outcome struct {
	ID         uuid.UUID
	File       string
	Status     constants.ProcessStatus
	Confidence float64
	Errors     []string
}

// Processor runs the per-document lifecycle: text extraction, field
// extraction, validation, then exactly one of output writing or exception
// routing. Documents are isolated; no state is retained between them.
type Processor struct {
	logger *slog.Logger
	text   TextExtractor
	fields *fields.Extractor
	writer *output.Writer
	router *exceptions.Router
	store  *ledger.Store // optional; nil disables the audit ledger
}

func NewProcessor(
	logger *slog.Logger,
	text TextExtractor,
	fx *fields.Extractor,
	writer *output.Writer,
	router *exceptions.Router,
	store *ledger.Store,
) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		logger: logger,
		text:   text,
		fields: fx,
		writer: writer,
		router: router,
		store:  store,
	}
}

// ProcessFile handles a single document end to end. Validation failures and
// extraction errors both route to exceptions; neither aborts a batch run.
// The returned error is non-nil only when exception routing itself failed,
// which would break the one-record-per-document guarantee.
func (p *Processor) ProcessFile(ctx context.Context, path string) (Outcome, error) {
	name := filepath.Base(path)
	base := strings.TrimSuffix(name, filepath.Ext(name))
	out := Outcome{ID: uuid.New(), File: name}
	p.logger.Info("processing", "file", name)

	res, err := p.text.Extract(ctx, path)
	if err != nil {
		if common.IsDecodeError(err) {
			p.logger.Warn("document decode failure", "file", name, "error", err)
		} else {
			p.logger.Error("text extraction failed", "file", name, "error", err)
		}
		return p.toExceptions(ctx, out, path, []string{err.Error()})
	}

	fs := p.fields.Extract(res.Text)
	validationErrs := fields.Validate(fs)
	out.Confidence = fields.Confidence(fs)

	if len(validationErrs) > 0 {
		return p.toExceptions(ctx, out, path, validationErrs)
	}

	rec, err := p.writer.Write(fs, base, out.Confidence)
	if err != nil {
		p.logger.Error("output write failed", "file", name, "error", err)
		return p.toExceptions(ctx, out, path, []string{err.Error()})
	}
	out.ID = rec.ID
	out.Status = rec.Status
	p.record(ctx, out)

	p.logger.Info("processed",
		"file", name,
		"confidence", out.Confidence,
		"status", string(out.Status),
		"method", res.Method,
		"pages", res.Pages,
	)
	return out, nil
}

func (p *Processor) toExceptions(ctx context.Context, out Outcome, path string, errs []string) (Outcome, error) {
	out.Status = constants.StatusException
	out.Errors = errs
	if err := p.router.Route(path, errs); err != nil {
		return out, common.WrapError(err, "route to exceptions")
	}
	p.record(ctx, out)
	return out, nil
}

func (p *Processor) record(ctx context.Context, out Outcome) {
	if p.store == nil {
		return
	}
	// the audit trail must survive a per-document timeout spent in OCR
	ctx = context.WithoutCancel(ctx)
	entry := ledger.Entry{
		ID:          out.ID,
		Filename:    out.File,
		Status:      out.Status,
		Confidence:  out.Confidence,
		Errors:      out.Errors,
		ProcessedAt: time.Now().UTC(),
	}
	if err := p.store.Record(ctx, entry); err != nil {
		p.logger.Warn("ledger record failed", "file", out.File, "error", err)
	}
}
