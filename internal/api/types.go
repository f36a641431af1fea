package api

import "time"

// UploadResult is the successful response to a workbook upload.
type UploadResult struct {
	SessionID string `json:"session_id"`
	Filename  string `json:"filename"`
	// Message is the service's acknowledgement (a short summary of the
	// parsed workbook) shown as a system transcript entry.
	Message string `json:"message"`
}

// TaskStatus is one poll result for a generation task.
type TaskStatus struct {
	// Status is "completed", "failed", or any other value for still-running
	// ("processing" in practice; unknown values are treated as running).
	Status   string `json:"status" mapstructure:"status"`
	Progress int    `json:"progress" mapstructure:"progress"`
	Message  string `json:"message" mapstructure:"message"`
	FilePath string `json:"file_path,omitempty" mapstructure:"file_path"`
}

// Terminal reports whether the task reached a final state.
func (s *TaskStatus) Terminal() bool {
	return s.Status == StatusCompleted || s.Status == StatusFailed
}

// Task status values with defined meaning. Anything else means running.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// OutputFile is one server-side generated artifact.
type OutputFile struct {
	Filename    string    `json:"filename"`
	Size        int64     `json:"size"`
	CreatedTime time.Time `json:"-"`
}

// ServiceConfig is the remote service configuration as reported by GET /api/config.
type ServiceConfig struct {
	APIKey         string `json:"api_key"`
	BaseURL        string `json:"base_url"`
	Model          string `json:"model"`
	IsConfigured   bool   `json:"is_configured"`
	ConfigFilePath string `json:"config_file_path"`
}

// ConfigUpdate is the POST /api/config request body.
type ConfigUpdate struct {
	APIKey  string `json:"api_key"`
	BaseURL string `json:"base_url"`
	Model   string `json:"model"`
}

// LogEntry is one recent LLM interaction record from GET /api/llm-logs.
type LogEntry struct {
	Timestamp   time.Time `json:"-"`
	Context     string    `json:"context"`
	HasRequest  bool      `json:"has_request"`
	HasResponse bool      `json:"has_response"`
}
