package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baltadar/edi-app/constants"
	"github.com/baltadar/edi-app/internal/common"
	"github.com/baltadar/edi-app/internal/edi"
	"github.com/baltadar/edi-app/internal/exceptions"
	"github.com/baltadar/edi-app/internal/fields"
	"github.com/baltadar/edi-app/internal/ledger"
	"github.com/baltadar/edi-app/internal/ocr"
	"github.com/baltadar/edi-app/internal/output"
)

// stubExtractor returns canned text or a canned error.
type stubExtractor struct {
	text string
	err  error
}

func (s stubExtractor) Extract(_ context.Context, _ string) (ocr.ExtractionResult, error) {
	if s.err != nil {
		return ocr.ExtractionResult{}, s.err
	}
	return ocr.ExtractionResult{Text: s.text, Pages: 1, Method: "image-ocr"}, nil
}

type harness struct {
	proc   *Processor
	inDir  string
	outDir string
	ediDir string
	excDir string
	store  *ledger.Store
}

func newHarness(t *testing.T, text TextExtractor) *harness {
	t.Helper()
	h := &harness{
		inDir:  t.TempDir(),
		outDir: t.TempDir(),
		ediDir: t.TempDir(),
		excDir: t.TempDir(),
	}
	store, err := ledger.Open(context.Background(), ":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	h.store = store

	renderer := edi.NewRenderer(common.EDIConfig{
		SenderID:      "SENDERID123",
		ReceiverID:    "RECEIVERID456",
		SubmitterName: "Demo Health Org",
	}, nil)
	h.proc = NewProcessor(
		nil,
		text,
		fields.NewExtractor(nil, nil),
		output.NewWriter(h.outDir, h.ediDir, renderer, nil),
		exceptions.NewRouter(h.excDir, nil),
		store,
	)
	return h
}

func (h *harness) addForm(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(h.inDir, name)
	require.NoError(t, os.WriteFile(path, []byte("scan-bytes"), 0o644))
	return path
}

const completeForm = `Patient Name: Jane Doe
DOB: 01/02/1990
Policy Number: POL-12345
Provider Name: Dr. House`

func TestProcessFileSuccess(t *testing.T) {
	h := newHarness(t, stubExtractor{text: completeForm})
	src := h.addForm(t, "form1.png")

	oc, err := h.proc.ProcessFile(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, constants.StatusSuccess, oc.Status)
	assert.Equal(t, 100.0, oc.Confidence)

	// outputs written, source file left in place, nothing in exceptions
	assert.FileExists(t, filepath.Join(h.outDir, "form1.json"))
	assert.FileExists(t, filepath.Join(h.outDir, "form1.csv"))
	assert.FileExists(t, filepath.Join(h.ediDir, "form1.edi"))
	assert.FileExists(t, src)
	assert.NoFileExists(t, filepath.Join(h.excDir, "form1.png"))
	assert.NoFileExists(t, filepath.Join(h.excDir, "form1_errors.json"))

	entries, err := h.store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, constants.StatusSuccess, entries[0].Status)
}

func TestProcessFileValidationFailure(t *testing.T) {
	h := newHarness(t, stubExtractor{text: "Patient Name: Jane Doe\nno other labels here"})
	src := h.addForm(t, "form2.png")

	oc, err := h.proc.ProcessFile(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, constants.StatusException, oc.Status)
	assert.Equal(t, 25.0, oc.Confidence)
	require.Len(t, oc.Errors, 3)

	// relocated with a sibling error record, no outputs
	assert.NoFileExists(t, src)
	assert.FileExists(t, filepath.Join(h.excDir, "form2.png"))
	assert.FileExists(t, filepath.Join(h.excDir, "form2_errors.json"))
	assert.NoFileExists(t, filepath.Join(h.outDir, "form2.json"))
	assert.NoFileExists(t, filepath.Join(h.outDir, "form2.csv"))
	assert.NoFileExists(t, filepath.Join(h.ediDir, "form2.edi"))
}

func TestProcessFileExtractionError(t *testing.T) {
	decodeErr := common.NewAppError("PDF_DECODE", "cannot open form3.pdf", common.ErrDecode)
	h := newHarness(t, stubExtractor{err: decodeErr})
	src := h.addForm(t, "form3.pdf")

	oc, err := h.proc.ProcessFile(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, constants.StatusException, oc.Status)
	require.Len(t, oc.Errors, 1)
	assert.Contains(t, oc.Errors[0], "PDF_DECODE")

	assert.NoFileExists(t, src)
	assert.FileExists(t, filepath.Join(h.excDir, "form3.pdf"))
	assert.NoFileExists(t, filepath.Join(h.outDir, "form3.json"))
}

// Every document yields exactly one of a processing record or an exception
// record, never both and never neither.
func TestProcessFileExactlyOneOutcome(t *testing.T) {
	cases := []struct {
		name string
		stub stubExtractor
		file string
	}{
		{"valid", stubExtractor{text: completeForm}, "a.png"},
		{"invalid", stubExtractor{text: "empty page"}, "b.png"},
		{"broken", stubExtractor{err: common.ErrInternal}, "c.png"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t, tc.stub)
			src := h.addForm(t, tc.file)

			_, err := h.proc.ProcessFile(context.Background(), src)
			require.NoError(t, err)

			stem := tc.file[:len(tc.file)-len(filepath.Ext(tc.file))]
			_, recErr := os.Stat(filepath.Join(h.outDir, stem+".json"))
			_, excErr := os.Stat(filepath.Join(h.excDir, stem+"_errors.json"))
			hasRecord := recErr == nil
			hasException := excErr == nil
			assert.True(t, hasRecord != hasException,
				"want exactly one outcome, record=%v exception=%v", hasRecord, hasException)
		})
	}
}

// A document whose time budget expired mid-run must still leave a ledger row.
func TestProcessFileRecordsLedgerAfterDeadline(t *testing.T) {
	h := newHarness(t, stubExtractor{text: completeForm})
	src := h.addForm(t, "slow.png")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	oc, err := h.proc.ProcessFile(ctx, src)
	require.NoError(t, err)
	assert.Equal(t, constants.StatusSuccess, oc.Status)

	entries, err := h.store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "slow.png", entries[0].Filename)
}

func TestProcessFileRouterFailureSurfaces(t *testing.T) {
	h := newHarness(t, stubExtractor{err: common.ErrInternal})

	// the source file never existed, so relocation cannot succeed
	_, err := h.proc.ProcessFile(context.Background(), filepath.Join(h.inDir, "ghost.png"))
	assert.Error(t, err)
}
