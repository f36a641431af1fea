package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL)
	require.NoError(t, err)
	return c
}

func TestNewRejectsBadURL(t *testing.T) {
	_, err := New("not a url")
	require.Error(t, err)
}

func TestUploadWorkbook(t *testing.T) {
	var gotFilename string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/upload-excel", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close() //nolint:errcheck
		gotFilename = hdr.Filename

		json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
			"success":    true,
			"session_id": "sess-1",
			"filename":   hdr.Filename,
			"message":    "loaded 3 sheets",
		})
	}))

	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("fake workbook"), 0o644))

	res, err := c.UploadWorkbook(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", res.SessionID)
	assert.Equal(t, "report.xlsx", res.Filename)
	assert.Equal(t, "loaded 3 sheets", res.Message)
	assert.Equal(t, "report.xlsx", gotFilename)
}

func TestUploadWorkbookServerError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "please upload an Excel file"}) //nolint:errcheck
	}))

	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	_, err := c.UploadWorkbook(context.Background(), path)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "please upload an Excel file", apiErr.Detail)
}

func TestSendMessage(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/chat", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "summarize", body["message"])
		assert.Equal(t, "sess-1", body["session_id"])

		json.NewEncoder(w).Encode(map[string]any{"success": true, "response": "Revenue grew."}) //nolint:errcheck
	}))

	reply, err := c.SendMessage(context.Background(), "sess-1", "summarize")
	require.NoError(t, err)
	assert.Equal(t, "Revenue grew.", reply)
}

func TestSendMessageFallbackDetail(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := c.SendMessage(context.Background(), "sess-1", "hi")
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "message could not be delivered", apiErr.Detail)
}

func TestSubmitGeneration(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/generate-ppt", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{"success": true, "task_id": "task-9"}) //nolint:errcheck
	}))

	id, err := c.SubmitGeneration(context.Background(), "sess-1", "make a 5-slide deck")
	require.NoError(t, err)
	assert.Equal(t, "task-9", id)
}

func TestTaskStatusWeakTyping(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		wantStatus   string
		wantProgress int
	}{
		{
			name:         "numeric progress",
			body:         `{"status":"processing","progress":30,"message":"analyzing"}`,
			wantStatus:   "processing",
			wantProgress: 30,
		},
		{
			name:         "string progress",
			body:         `{"status":"processing","progress":"45","message":"building"}`,
			wantStatus:   "processing",
			wantProgress: 45,
		},
		{
			name:         "float progress",
			body:         `{"status":"completed","progress":100.0,"message":"done"}`,
			wantStatus:   "completed",
			wantProgress: 100,
		},
		{
			name:         "progress clamped to range",
			body:         `{"status":"processing","progress":120,"message":""}`,
			wantStatus:   "processing",
			wantProgress: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, "/api/task-status/task-9", r.URL.Path)
				w.Write([]byte(tt.body)) //nolint:errcheck
			}))

			st, err := c.TaskStatus(context.Background(), "task-9")
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, st.Status)
			assert.Equal(t, tt.wantProgress, st.Progress)
		})
	}
}

func TestTaskStatusTerminal(t *testing.T) {
	assert.True(t, (&TaskStatus{Status: StatusCompleted}).Terminal())
	assert.True(t, (&TaskStatus{Status: StatusFailed}).Terminal())
	assert.False(t, (&TaskStatus{Status: "processing"}).Terminal())
	assert.False(t, (&TaskStatus{Status: "queued"}).Terminal())
}

func TestListOutputFiles(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/output-files", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
			"files": []map[string]any{
				{"filename": "q3.pptx", "size": 20480, "created_time": "2026-08-24T10:30:00.123456"},
				{"filename": "q2.pptx", "size": 10240, "created_time": "2026-05-01T09:00:00"},
			},
		})
	}))

	files, err := c.ListOutputFiles(context.Background())
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "q3.pptx", files[0].Filename)
	assert.EqualValues(t, 20480, files[0].Size)
	assert.Equal(t, 2026, files[0].CreatedTime.Year())
	assert.False(t, files[1].CreatedTime.IsZero())
}

func TestDownloadFile(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/download/q3.pptx", r.URL.Path)
		w.Write([]byte("binary deck")) //nolint:errcheck
	}))

	var buf bytes.Buffer
	require.NoError(t, c.DownloadFile(context.Background(), "q3.pptx", &buf))
	assert.Equal(t, "binary deck", buf.String())
}

func TestDownloadFileNotFound(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "file does not exist"}) //nolint:errcheck
	}))

	var buf bytes.Buffer
	err := c.DownloadFile(context.Background(), "missing.pptx", &buf)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "file does not exist", apiErr.Detail)
}

func TestDownloadURL(t *testing.T) {
	c, err := New("http://localhost:8000/")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/api/download/my%20deck.pptx", c.DownloadURL("my deck.pptx"))
}

func TestConfigRoundTrip(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/config", r.URL.Path)
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(ServiceConfig{ //nolint:errcheck
				APIKey:         "sk-test",
				BaseURL:        "https://api.example.com/v1",
				Model:          "gpt-4.1",
				IsConfigured:   true,
				ConfigFilePath: "/srv/app/config.json",
			})
		case http.MethodPost:
			var upd ConfigUpdate
			require.NoError(t, json.NewDecoder(r.Body).Decode(&upd))
			assert.Equal(t, "sk-new", upd.APIKey)
			json.NewEncoder(w).Encode(map[string]bool{"success": true}) //nolint:errcheck
		}
	}))

	cfg, err := c.GetConfig(context.Background())
	require.NoError(t, err)
	assert.True(t, cfg.IsConfigured)
	assert.Equal(t, "gpt-4.1", cfg.Model)

	require.NoError(t, c.SaveConfig(context.Background(), ConfigUpdate{
		APIKey: "sk-new", BaseURL: "https://api.example.com/v1", Model: "gpt-4.1",
	}))
}

func TestRecentLogs(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/llm-logs", r.URL.Path)
		assert.Equal(t, "25", r.URL.Query().Get("limit"))
		json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
			"logs": []map[string]any{
				{"timestamp": "2026-08-24T10:00:00", "context": "chat_round_1", "has_request": true, "has_response": true},
			},
		})
	}))

	logs, err := c.RecentLogs(context.Background(), 25)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "chat_round_1", logs[0].Context)
	assert.True(t, logs[0].HasRequest)
}

func TestDeleteSession(t *testing.T) {
	var called bool
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/api/session/sess-1", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{"success": true}) //nolint:errcheck
	}))

	require.NoError(t, c.DeleteSession(context.Background(), "sess-1"))
	assert.True(t, called)
}
