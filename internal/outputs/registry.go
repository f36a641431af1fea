// Package outputs mirrors the server's list of generated artifacts and
// fetches individual files.
package outputs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/browser"

	"github.com/sheetdeck/sheetdeck/internal/api"
)

// Registry is a read-only projection of the server's output directory. The
// list is replaced wholesale on every successful refresh and kept as-is on
// failure, so it always reflects the most recent successful fetch.
type Registry struct {
	svc api.Service
	log *slog.Logger

	mu    sync.Mutex
	files []api.OutputFile
}

// NewRegistry creates an empty registry backed by svc.
func NewRegistry(svc api.Service) *Registry {
	return &Registry{svc: svc, log: slog.Default()}
}

// Refresh replaces the cached list with the server's current one. On failure
// the previous list is retained; callers refreshing in the background log
// the error instead of surfacing it.
func (r *Registry) Refresh(ctx context.Context) error {
	files, err := r.svc.ListOutputFiles(ctx)
	if err != nil {
		r.log.Debug("output list refresh failed", "error", err)
		return fmt.Errorf("refresh output list: %w", err)
	}

	r.mu.Lock()
	r.files = files
	r.mu.Unlock()
	return nil
}

// Files returns a copy of the most recently fetched list.
func (r *Registry) Files() []api.OutputFile {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]api.OutputFile, len(r.files))
	copy(out, r.files)
	return out
}

// Download fetches one artifact into dir and returns the written path.
// The file is written atomically: a partial download never leaves a
// truncated artifact under the final name.
func (r *Registry) Download(ctx context.Context, filename, dir string) (string, error) {
	dest := filepath.Join(dir, filepath.Base(filename))

	tmp, err := os.CreateTemp(dir, ".sheetdeck-download-*")
	if err != nil {
		return "", fmt.Errorf("create download file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if err := r.svc.DownloadFile(ctx, filename, tmp); err != nil {
		tmp.Close() //nolint:errcheck
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("finish download: %w", err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return "", fmt.Errorf("move download into place: %w", err)
	}
	return dest, nil
}

// OpenInBrowser points the system browser at the artifact's download
// endpoint, the closest CLI equivalent of opening it in a new tab.
func (r *Registry) OpenInBrowser(filename string) error {
	url := r.svc.DownloadURL(filename)
	if err := browser.OpenURL(url); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	return nil
}
