package output

import (
	"encoding/csv"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/baltadar/edi-app/constants"
	"github.com/baltadar/edi-app/internal/common"
	"github.com/baltadar/edi-app/internal/edi"
	"github.com/baltadar/edi-app/internal/fields"
)

// Writer persists the per-document outputs for a validated form: a JSON
// processing record, a single-row CSV of the fields, and a claim file.
type Writer struct {
	outputDir string
	ediDir    string
	renderer  *edi.Renderer
	logger    *slog.Logger
}

func NewWriter(outputDir, ediDir string, renderer *edi.Renderer, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{outputDir: outputDir, ediDir: ediDir, renderer: renderer, logger: logger}
}

// Write persists all outputs for one document and returns its record.
// Status is "success" when every required field is present, else "partial".
func (w *Writer) Write(fs fields.Set, baseFilename string, confidence float64) (*ProcessingRecord, error) {
	status := constants.StatusPartial
	if confidence == 100 {
		status = constants.StatusSuccess
	}
	rec := &ProcessingRecord{
		ID:              uuid.New(),
		ExtractedFields: fs,
		ConfidenceScore: confidence,
		ProcessedAt:     time.Now().UTC(),
		Status:          status,
	}

	buf, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return nil, common.WrapError(err, "marshal record")
	}
	if err := ValidateRecordJSON(buf); err != nil {
		return nil, common.WrapError(err, "record schema")
	}
	if err := os.WriteFile(filepath.Join(w.outputDir, baseFilename+".json"), buf, 0o644); err != nil {
		return nil, common.WrapError(err, "write json record")
	}

	if err := w.writeCSV(fs, baseFilename); err != nil {
		return nil, common.WrapError(err, "write csv row")
	}

	claim := w.renderer.Render(fs, baseFilename)
	if err := os.WriteFile(filepath.Join(w.ediDir, baseFilename+".edi"), []byte(claim), 0o644); err != nil {
		return nil, common.WrapError(err, "write claim file")
	}

	w.logger.Info("outputs written",
		"file", baseFilename,
		"confidence", confidence,
		"status", string(status),
	)
	return rec, nil
}

// writeCSV writes a one-row table of the fields in canonical column order.
func (w *Writer) writeCSV(fs fields.Set, baseFilename string) error {
	f, err := os.Create(filepath.Join(w.outputDir, baseFilename+".csv"))
	if err != nil {
		return err
	}

	row := make([]string, len(fields.Required))
	for i, name := range fields.Required {
		row[i] = fs[name]
	}

	cw := csv.NewWriter(f)
	if err := cw.Write(fields.Required); err != nil {
		_ = f.Close()
		return err
	}
	if err := cw.Write(row); err != nil {
		_ = f.Close()
		return err
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
