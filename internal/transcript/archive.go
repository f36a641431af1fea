package transcript

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/klauspost/compress/zstd"
)

// Archive is the serialized form of an exported transcript.
type Archive struct {
	Workbook   string    `json:"workbook"`
	ExportedAt time.Time `json:"exported_at"`
	Entries    []Entry   `json:"entries"`
}

// WriteArchive writes a zstd-compressed JSON archive of the entries to path.
func WriteArchive(path, workbook string, entries []Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}
	defer f.Close() //nolint:errcheck

	zw, err := zstd.NewWriter(f)
	if err != nil {
		return fmt.Errorf("init zstd writer: %w", err)
	}

	arc := Archive{Workbook: workbook, ExportedAt: time.Now(), Entries: entries}
	if err := json.NewEncoder(zw).Encode(arc); err != nil {
		zw.Close() //nolint:errcheck
		return fmt.Errorf("encode archive: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finish archive: %w", err)
	}
	return f.Close()
}

// ReadArchive loads a zstd-compressed JSON archive from path.
func ReadArchive(path string) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer f.Close() //nolint:errcheck

	zr, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("init zstd reader: %w", err)
	}
	defer zr.Close()

	var arc Archive
	if err := json.NewDecoder(zr).Decode(&arc); err != nil {
		return nil, fmt.Errorf("decode archive: %w", err)
	}
	return &arc, nil
}
