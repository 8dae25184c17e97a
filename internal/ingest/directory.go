package ingest

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/baltadar/edi-app/constants"
)

// DirStats aggregates a directory scan.
type DirStats struct {
	Scanned uint32
	Matched uint32
}

// ScanDirectory walks root once, filters by allowed extensions (defaults to
// the standard form extensions), skips hidden entries if requested, and
// returns matched file paths in walk order. There is no watching or polling;
// each call is a single pass.
func ScanDirectory(root string, allowedExts map[string]struct{}, skipHidden bool) ([]string, DirStats, error) {
	if strings.TrimSpace(root) == "" {
		return nil, DirStats{}, errors.New("root path is required")
	}
	if allowedExts == nil {
		allowedExts = constants.AllowedExtensions
	}

	var paths []string
	var stats DirStats

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if skipHidden && isHidden(path) && path != root {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		stats.Scanned++
		ext := constants.NormalizeExt(filepath.Ext(path))
		if _, ok := allowedExts[ext]; !ok {
			return nil
		}
		stats.Matched++
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return paths, stats, err
	}
	return paths, stats, nil
}

func isHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}
