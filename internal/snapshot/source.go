package snapshot

import (
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Open reads and decodes the snapshot at path. Paths ending in ".gz" are
// gunzipped first. A missing file yields an error wrapping ErrSourceNotFound.
func Open(path string) ([]Record, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve snapshot path %s: %w", path, err)
	}
	logger.Debug("Resolved snapshot path: %s", absPath)

	info, err := os.Stat(absPath)
	if errors.Is(err, iofs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat snapshot %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("snapshot %s is a directory", path)
	}

	f, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(absPath, ".gz") {
		logger.Debug("Reading gzip-compressed snapshot")
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip snapshot %s: %w", path, err)
		}
		defer zr.Close()
		r = zr
	}

	records, err := Decode(r)
	if err != nil {
		return nil, err
	}

	logger.Info("Read %d records from %s", len(records), path)
	return records, nil
}
