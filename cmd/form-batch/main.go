package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/baltadar/edi-app/constants"
	"github.com/baltadar/edi-app/internal/common"
	"github.com/baltadar/edi-app/internal/edi"
	"github.com/baltadar/edi-app/internal/exceptions"
	"github.com/baltadar/edi-app/internal/export"
	"github.com/baltadar/edi-app/internal/fields"
	"github.com/baltadar/edi-app/internal/ingest"
	"github.com/baltadar/edi-app/internal/ledger"
	"github.com/baltadar/edi-app/internal/ocr"
	"github.com/baltadar/edi-app/internal/output"
	"github.com/baltadar/edi-app/internal/pipeline"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	var (
		dir     = flag.String("dir", "", "directory of forms to process (defaults to the configured input directory)")
		file    = flag.String("file", "", "process a single file instead of a directory")
		summary = flag.String("summary", "", "summary XLSX path (defaults to <output-dir>/summary.xlsx)")
	)
	flag.Parse()

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if err := cfg.EnsureDirs(); err != nil {
		logger.Error("create directories", "error", err)
		os.Exit(1)
	}
	if *dir == "" {
		*dir = cfg.Dirs.InputDir
	}
	if *summary == "" {
		*summary = filepath.Join(cfg.Dirs.OutputDir, "summary.xlsx")
	}

	ctx := context.Background()

	store, err := ledger.Open(ctx, cfg.Dirs.LedgerPath, logger)
	if err != nil {
		logger.Error("open ledger", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logger.Error("close ledger", "error", cerr)
		}
	}()

	ocrx := ocr.NewExtractor(ocr.Config{
		Pdftoppm:      cfg.OCR.Pdftoppm,
		Tesseract:     cfg.OCR.Tesseract,
		TesseractLang: cfg.OCR.TesseractLang,
		TessdataDir:   cfg.OCR.TessdataDir,
		DPI:           cfg.OCR.DPI,
		MaxPages:      cfg.OCR.MaxPages,
	}, logger)
	fx := fields.NewExtractor(fields.DefaultRules, logger)
	renderer := edi.NewRenderer(cfg.EDI, logger)
	writer := output.NewWriter(cfg.Dirs.OutputDir, cfg.Dirs.EDIDir, renderer, logger)
	router := exceptions.NewRouter(cfg.Dirs.ExceptionsDir, logger)
	proc := pipeline.NewProcessor(logger, ocrx, fx, writer, router, store)

	var paths []string
	if *file != "" {
		paths = []string{*file}
	} else {
		scanned, stats, err := ingest.ScanDirectory(*dir, constants.AllowedExtensions, true)
		if err != nil {
			logger.Error("scan input directory", "dir", *dir, "error", err)
			os.Exit(1)
		}
		logger.Info("scan complete", "dir", *dir, "scanned", stats.Scanned, "matched", stats.Matched)
		paths = scanned
	}

	// One document at a time, fully sequential.
	processed, routed, aborted := 0, 0, 0
	for _, p := range paths {
		runCtx, cancel := context.WithTimeout(ctx, cfg.OCR.Timeout)
		oc, err := proc.ProcessFile(runCtx, p)
		cancel()
		if err != nil {
			logger.Error("processing aborted", "file", p, "error", err)
			aborted++
			continue
		}
		if oc.Status == constants.StatusException {
			routed++
		} else {
			processed++
		}
	}

	xlsx, err := export.NewService(store, logger).SummaryXLSX(ctx)
	if err != nil {
		logger.Error("export summary", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*summary, xlsx, 0o644); err != nil {
		logger.Error("write summary file", "path", *summary, "error", err)
		os.Exit(1)
	}

	logger.Info("batch complete",
		"processed", processed,
		"exceptions", routed,
		"aborted", aborted,
		"summary", *summary,
	)
}
