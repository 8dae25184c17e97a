package ocr

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/baltadar/edi-app/constants"
	"github.com/baltadar/edi-app/internal/common"
)

// extractPDF prefers the embedded text layer; scanned PDFs without one fall
// back to rasterize+OCR.
func (e *Extractor) extractPDF(ctx context.Context, path string) (ExtractionResult, error) {
	pages, err := e.openPDF(path)
	if err != nil {
		return ExtractionResult{SourceType: constants.PDF},
			common.NewAppError("PDF_DECODE", fmt.Sprintf("cannot open %s", filepath.Base(path)), fmt.Errorf("%w: %v", common.ErrDecode, err))
	}

	var warns []string
	txt, layerErr := textLayer(path, e.cfg.MaxPages)
	if layerErr == nil && textLayerUsable(txt, e.cfg.MinTextLayerChars) {
		return ExtractionResult{
			Text:       Normalize(txt),
			Pages:      pages,
			SourceType: constants.PDF,
			Method:     "pdf-text",
			Language:   e.cfg.TesseractLang,
			Warnings:   warns,
		}, nil
	}
	if layerErr != nil {
		warns = append(warns, layerErr.Error())
	}
	e.logger.Debug("pdf text layer unusable, falling back to ocr", "path", path, "pages", pages)

	ocrText, ocrPages, w, err := e.pdfToOCR(ctx, path)
	warns = append(warns, w...)
	if err != nil {
		return ExtractionResult{SourceType: constants.PDF, Warnings: warns},
			common.NewAppError("PDF_OCR", "rasterize+ocr failed", err)
	}
	return ExtractionResult{
		Text:       Normalize(ocrText),
		Pages:      ocrPages,
		SourceType: constants.PDF,
		Method:     "pdf-ocr",
		Language:   e.cfg.TesseractLang,
		Warnings:   warns,
	}, nil
}

// openPDF validates the document structure and returns its page count.
func (e *Extractor) openPDF(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = f.Close()
	}()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	pctx, err := api.ReadContext(f, conf)
	if err != nil {
		return 0, err
	}
	if err := pctx.EnsurePageCount(); err != nil {
		return 0, err
	}
	return pctx.PageCount, nil
}

// textLayer pulls the embedded text layer page by page, joined with a
// form-feed page break marker.
func textLayer(path string, maxPages int) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open text layer: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	n := r.NumPage()
	if maxPages > 0 && n > maxPages {
		n = maxPages
	}
	var b strings.Builder
	for i := 1; i <= n; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		txt, err := p.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("page %d text: %w", i, err)
		}
		if b.Len() > 0 {
			b.WriteString("\n\f\n")
		}
		b.WriteString(txt)
	}
	return b.String(), nil
}

func textLayerUsable(txt string, minChars int) bool {
	return len(strings.TrimSpace(txt)) >= minChars
}

func (e *Extractor) pdfToOCR(ctx context.Context, path string) (text string, pages int, warnings []string, err error) {
	tmpDir, err := os.MkdirTemp("", "fp-pp-*")
	if err != nil {
		return "", 0, nil, err
	}
	defer func() {
		if rmErr := os.RemoveAll(tmpDir); rmErr != nil {
			e.logger.Warn("failed to remove temp dir", "dir", tmpDir, "error", rmErr)
		}
	}()

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -r 300 -png <in.pdf> <tmp/page>
	_, errb, err := e.runner.Run(ctx, e.cfg.Pdftoppm, "-r", fmt.Sprintf("%d", e.cfg.DPI), "-png", path, prefix)
	if err != nil {
		return "", 0, []string{string(errb)}, err
	}

	// collect generated pngs (prefix-1.png, prefix-2.png, ...)
	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if e.cfg.MaxPages > 0 && len(matches) > e.cfg.MaxPages {
		matches = matches[:e.cfg.MaxPages]
	}
	if len(matches) == 0 {
		return "", 0, []string{"pdftoppm produced no images"}, fmt.Errorf("no pages rendered")
	}

	var b strings.Builder
	var warns []string
	for _, img := range matches {
		txt, w, err := e.tesseractOCR(ctx, img)
		if err != nil {
			warns = append(warns, err.Error())
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\f\n") // keep a clear page break marker
		}
		b.WriteString(txt)
		warns = append(warns, w...)
	}
	pages = len(matches)
	return b.String(), pages, warns, nil
}
