package api

import (
	"context"
	"io"
)

//go:generate mockgen -destination=mockapi/mock_service.go -package=mockapi github.com/sheetdeck/sheetdeck/internal/api Service

// Service is the remote analysis/generation service as seen by the client.
// *Client is the real implementation; tests substitute a mock.
type Service interface {
	// UploadWorkbook uploads a spreadsheet and opens a new analysis session.
	UploadWorkbook(ctx context.Context, path string) (*UploadResult, error)

	// DeleteSession tears down a server-side session.
	DeleteSession(ctx context.Context, sessionID string) error

	// SendMessage sends one chat message bound to a session and returns the
	// service's reply content.
	SendMessage(ctx context.Context, sessionID, message string) (string, error)

	// SubmitGeneration starts an asynchronous deck-generation job and
	// returns its task id.
	SubmitGeneration(ctx context.Context, sessionID, message string) (string, error)

	// TaskStatus fetches the current status of a generation task.
	TaskStatus(ctx context.Context, taskID string) (*TaskStatus, error)

	// ListOutputFiles returns all generated artifacts, newest first.
	ListOutputFiles(ctx context.Context) ([]OutputFile, error)

	// DownloadFile streams a generated artifact into w.
	DownloadFile(ctx context.Context, filename string, w io.Writer) error

	// DownloadURL returns the browser-facing download endpoint for filename.
	DownloadURL(filename string) string

	// GetConfig reads the service configuration.
	GetConfig(ctx context.Context) (*ServiceConfig, error)

	// SaveConfig writes the service configuration.
	SaveConfig(ctx context.Context, update ConfigUpdate) error

	// RecentLogs returns up to limit recent LLM interaction records.
	RecentLogs(ctx context.Context, limit int) ([]LogEntry, error)
}
