// Package session owns the lifecycle of the one active analysis session:
// the binding between an uploaded workbook and the server-side session id.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sheetdeck/sheetdeck/internal/api"
)

// ErrInvalidFileType means the file name does not end in an accepted
// spreadsheet extension. Checked before any network call.
var ErrInvalidFileType = errors.New("not a spreadsheet file (expected .xlsx or .xls)")

// acceptedExtensions matches the upload endpoint's own validation.
var acceptedExtensions = []string{".xlsx", ".xls"}

// ValidateFilename rejects names without an accepted spreadsheet extension.
func ValidateFilename(name string) error {
	ext := strings.ToLower(filepath.Ext(name))
	for _, accepted := range acceptedExtensions {
		if ext == accepted {
			return nil
		}
	}
	return fmt.Errorf("%q: %w", name, ErrInvalidFileType)
}

// Manager holds at most one active session. Starting a new session replaces
// the previous one; a failed upload leaves the previous session untouched.
type Manager struct {
	svc api.Service
	log *slog.Logger

	mu       sync.Mutex
	id       string
	filename string

	// wg tracks in-flight fire-and-forget deletes so tests can drain them.
	wg sync.WaitGroup
}

// NewManager creates a session manager backed by svc.
func NewManager(svc api.Service) *Manager {
	return &Manager{svc: svc, log: slog.Default()}
}

// Start validates the filename, uploads the workbook, and activates the
// returned session. Any previously active session is torn down (best effort,
// remotely) only after the new upload succeeds, so a failed upload preserves
// the session the user already had.
func (m *Manager) Start(ctx context.Context, path string) (*api.UploadResult, error) {
	if err := ValidateFilename(path); err != nil {
		return nil, err
	}

	res, err := m.svc.UploadWorkbook(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", filepath.Base(path), err)
	}

	m.mu.Lock()
	previous := m.id
	m.id = res.SessionID
	m.filename = res.Filename
	m.mu.Unlock()

	if previous != "" {
		m.deleteRemote(previous)
	}
	return res, nil
}

// End clears the active session. The remote delete is best effort: local
// state is cleared even when the network call fails, so teardown can never
// be blocked by an unreachable server.
func (m *Manager) End(ctx context.Context) {
	m.mu.Lock()
	id := m.id
	m.id = ""
	m.filename = ""
	m.mu.Unlock()

	if id != "" {
		m.deleteRemote(id)
	}
}

// deleteRemote fires the session delete without tying it to the caller's
// context or lifetime.
func (m *Manager) deleteRemote(id string) {
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		if err := m.svc.DeleteSession(context.Background(), id); err != nil {
			m.log.Debug("remote session delete failed", "session_id", id, "error", err)
		}
	}()
}

// Drain blocks until pending fire-and-forget deletes finish. Called on
// process shutdown so best-effort deletes get a chance to reach the server.
func (m *Manager) Drain() {
	m.wg.Wait()
}

// Active reports whether a session is currently bound.
func (m *Manager) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.id != ""
}

// ID returns the active session id, or "" when none is active.
func (m *Manager) ID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.id
}

// Filename returns the name of the workbook bound to the active session.
func (m *Manager) Filename() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.filename
}
