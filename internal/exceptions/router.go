package exceptions

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/baltadar/edi-app/internal/common"
)

// ExceptionRecord is written alongside a relocated source file.
type ExceptionRecord struct {
	File      string    `json:"file"`
	Errors    []string  `json:"errors"`
	Timestamp time.Time `json:"timestamp"`
}

// Router relocates failed documents into the exceptions directory and writes
// a structured error record next to each. It is the sole recovery path; no
// retry is attempted.
type Router struct {
	dir    string
	logger *slog.Logger
}

func NewRouter(dir string, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{dir: dir, logger: logger}
}

// Route moves (not copies) the source file into the exceptions directory and
// writes a sibling <stem>_errors.json capturing the accumulated errors.
func (r *Router) Route(srcPath string, errs []string) error {
	name := filepath.Base(srcPath)
	if err := moveFile(srcPath, filepath.Join(r.dir, name)); err != nil {
		return common.WrapError(err, "relocate "+name)
	}

	rec := ExceptionRecord{
		File:      name,
		Errors:    errs,
		Timestamp: time.Now().UTC(),
	}
	buf, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return common.WrapError(err, "marshal error record")
	}
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	if err := os.WriteFile(filepath.Join(r.dir, stem+"_errors.json"), buf, 0o644); err != nil {
		return common.WrapError(err, "write error record")
	}

	r.logger.Warn("routed to exceptions", "file", name, "errors", errs)
	return nil
}

// moveFile renames src to dst, falling back to copy+remove when the rename
// crosses filesystems.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		_ = in.Close()
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = in.Close()
		_ = out.Close()
		return err
	}
	_ = in.Close()
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}
