package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/baltadar/edi-app/internal/common"
	"github.com/baltadar/edi-app/internal/ocr"
)

// form-ocr runs text extraction on a single document and prints the blob,
// useful for tuning extraction rules against real scans.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if len(os.Args) != 2 {
		logger.Error("usage", "cmd", "form-ocr <path>")
		os.Exit(2)
	}
	path := os.Args[1]

	cfg := common.LoadConfig()
	ctx, cancel := context.WithTimeout(context.Background(), cfg.OCR.Timeout)
	defer cancel()

	ocrx := ocr.NewExtractor(ocr.Config{
		Pdftoppm:      cfg.OCR.Pdftoppm,
		Tesseract:     cfg.OCR.Tesseract,
		TesseractLang: cfg.OCR.TesseractLang,
		TessdataDir:   cfg.OCR.TessdataDir,
		DPI:           cfg.OCR.DPI,
		MaxPages:      cfg.OCR.MaxPages,
	}, logger)

	start := time.Now()
	res, err := ocrx.Extract(ctx, path)
	if err != nil {
		logger.Error("text extraction failed", "path", path, "error", err,
			"duration_ms", time.Since(start).Milliseconds())
		os.Exit(1)
	}

	logger.Info("text extraction OK",
		"method", res.Method,
		"pages", res.Pages,
		"bytes", len(res.Text),
		"warnings", len(res.Warnings),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	fmt.Println(res.Text)
}
