package export

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/baltadar/edi-app/internal/ledger"
)

// Service renders a batch-run summary workbook from the processing ledger.
type Service struct {
	ledger *ledger.Store
	logger *slog.Logger
}

func NewService(st *ledger.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{ledger: st, logger: logger}
}

// SummaryXLSX returns an XLSX workbook (as bytes) with one row per processed
// document, covering successes and exceptions.
func (s *Service) SummaryXLSX(ctx context.Context) ([]byte, error) {
	start := time.Now()

	entries, err := s.ledger.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("query ledger: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Documents"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"File",
		"Status",
		"Confidence",
		"Errors",
		"Processed At",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, e := range entries {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, e.Filename)
		write(2, string(e.Status))
		write(3, e.Confidence)
		write(4, strings.Join(e.Errors, "; "))
		write(5, e.ProcessedAt.Format(time.RFC3339))
		row++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}

	s.logger.Info("summary exported",
		"documents", len(entries),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
