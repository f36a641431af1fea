// Package api is the typed HTTP client for the SheetDeck analysis/generation
// service. Request and response bodies are opaque JSON beyond the fields the
// client reads; failure responses carry a human-readable "detail" field with
// a per-operation fallback when absent.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/google/uuid"
)

const defaultTimeout = 2 * time.Minute

// Client talks to one service instance. It is safe for concurrent use.
type Client struct {
	baseURL string
	hc      *http.Client
	log     *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

// WithLogger replaces the default slog logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a client for the service at baseURL (e.g. "http://localhost:8000").
func New(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimRight(baseURL, "/")
	if _, err := url.ParseRequestURI(trimmed); err != nil {
		return nil, fmt.Errorf("invalid server url %q: %w", baseURL, err)
	}
	c := &Client{
		baseURL: trimmed,
		hc:      &http.Client{Timeout: defaultTimeout},
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the configured service base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// UploadWorkbook uploads the spreadsheet at path and opens a session.
func (c *Client) UploadWorkbook(ctx context.Context, path string) (*UploadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close() //nolint:errcheck

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("read workbook: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("finish upload form: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/upload-excel", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var res struct {
		Success   bool   `json:"success"`
		SessionID string `json:"session_id"`
		Filename  string `json:"filename"`
		Message   string `json:"message"`
	}
	if err := c.do(req, &res, "upload failed"); err != nil {
		return nil, err
	}
	if !res.Success || res.SessionID == "" {
		return nil, &Error{Detail: "upload failed: service did not return a session"}
	}
	return &UploadResult{SessionID: res.SessionID, Filename: res.Filename, Message: res.Message}, nil
}

// DeleteSession tears down a server-side session by id.
func (c *Client) DeleteSession(ctx context.Context, sessionID string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/api/session/"+url.PathEscape(sessionID), nil)
	if err != nil {
		return err
	}
	return c.do(req, nil, "session delete failed")
}

// SendMessage sends one chat message bound to sessionID.
func (c *Client) SendMessage(ctx context.Context, sessionID, message string) (string, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/api/chat", map[string]string{
		"message":    message,
		"session_id": sessionID,
	})
	if err != nil {
		return "", err
	}

	var res struct {
		Success  bool   `json:"success"`
		Response string `json:"response"`
	}
	if err := c.do(req, &res, "message could not be delivered"); err != nil {
		return "", err
	}
	if !res.Success {
		return "", &Error{Detail: "message could not be delivered"}
	}
	return res.Response, nil
}

// SubmitGeneration starts a deck-generation job and returns its task id.
func (c *Client) SubmitGeneration(ctx context.Context, sessionID, message string) (string, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/api/generate-ppt", map[string]string{
		"message":    message,
		"session_id": sessionID,
	})
	if err != nil {
		return "", err
	}

	var res struct {
		Success bool   `json:"success"`
		TaskID  string `json:"task_id"`
	}
	if err := c.do(req, &res, "generation could not be started"); err != nil {
		return "", err
	}
	if !res.Success || res.TaskID == "" {
		return "", &Error{Detail: "generation could not be started"}
	}
	return res.TaskID, nil
}

// TaskStatus fetches the status of a generation task. The payload is decoded
// tolerantly: progress may arrive as a number or a numeric string.
func (c *Client) TaskStatus(ctx context.Context, taskID string) (*TaskStatus, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/task-status/"+url.PathEscape(taskID), nil)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := c.do(req, &raw, "task status unavailable"); err != nil {
		return nil, err
	}

	var st TaskStatus
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &st,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("build status decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode task status: %w", err)
	}
	if st.Progress < 0 {
		st.Progress = 0
	}
	if st.Progress > 100 {
		st.Progress = 100
	}
	return &st, nil
}

// ListOutputFiles returns all generated artifacts, newest first (the service
// sorts by creation time descending).
func (c *Client) ListOutputFiles(ctx context.Context) ([]OutputFile, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/output-files", nil)
	if err != nil {
		return nil, err
	}

	var res struct {
		Files []struct {
			Filename    string `json:"filename"`
			Size        int64  `json:"size"`
			CreatedTime string `json:"created_time"`
		} `json:"files"`
	}
	if err := c.do(req, &res, "file list unavailable"); err != nil {
		return nil, err
	}

	files := make([]OutputFile, 0, len(res.Files))
	for _, f := range res.Files {
		files = append(files, OutputFile{
			Filename:    f.Filename,
			Size:        f.Size,
			CreatedTime: parseTimestamp(f.CreatedTime),
		})
	}
	return files, nil
}

// DownloadFile streams a generated artifact into w.
func (c *Client) DownloadFile(ctx context.Context, filename string, w io.Writer) error {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/download/"+url.PathEscape(filename), nil)
	if err != nil {
		return err
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("download %s: %w", filename, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return readError(resp, "download failed")
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("download %s: %w", filename, err)
	}
	return nil
}

// DownloadURL returns the browser-facing URL for a generated artifact.
func (c *Client) DownloadURL(filename string) string {
	return c.baseURL + "/api/download/" + url.PathEscape(filename)
}

// GetConfig reads the remote service configuration.
func (c *Client) GetConfig(ctx context.Context) (*ServiceConfig, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/config", nil)
	if err != nil {
		return nil, err
	}

	var cfg ServiceConfig
	if err := c.do(req, &cfg, "configuration unavailable"); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SaveConfig writes the remote service configuration.
func (c *Client) SaveConfig(ctx context.Context, update ConfigUpdate) error {
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/api/config", update)
	if err != nil {
		return err
	}

	var res struct {
		Success bool `json:"success"`
	}
	if err := c.do(req, &res, "configuration could not be saved"); err != nil {
		return err
	}
	if !res.Success {
		return &Error{Detail: "configuration could not be saved"}
	}
	return nil
}

// RecentLogs returns up to limit recent LLM interaction records.
func (c *Client) RecentLogs(ctx context.Context, limit int) ([]LogEntry, error) {
	path := "/api/llm-logs"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var res struct {
		Logs []struct {
			Timestamp   string `json:"timestamp"`
			Context     string `json:"context"`
			HasRequest  bool   `json:"has_request"`
			HasResponse bool   `json:"has_response"`
		} `json:"logs"`
	}
	if err := c.do(req, &res, "logs unavailable"); err != nil {
		return nil, err
	}

	logs := make([]LogEntry, 0, len(res.Logs))
	for _, l := range res.Logs {
		logs = append(logs, LogEntry{
			Timestamp:   parseTimestamp(l.Timestamp),
			Context:     l.Context,
			HasRequest:  l.HasRequest,
			HasResponse: l.HasResponse,
		})
	}
	return logs, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	return req, nil
}

func (c *Client) newJSONRequest(ctx context.Context, method, path string, payload any) (*http.Request, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s body: %w", path, err)
	}
	req, err := c.newRequest(ctx, method, path, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// do executes req, decoding a JSON body into out when out is non-nil.
// Non-2xx responses become *Error with the body's detail field, or fallback.
func (c *Client) do(req *http.Request, out any, fallback string) error {
	c.log.Debug("api request",
		"method", req.Method,
		"url", req.URL.String(),
		"request_id", req.Header.Get("X-Request-ID"))

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return readError(resp, fallback)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", req.URL.Path, err)
	}
	return nil
}

// readError builds an *Error from a non-success response. The body's
// "detail" field wins; fallback covers bodies with no usable detail.
func readError(resp *http.Response, fallback string) error {
	detail := fallback
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&body); err == nil && body.Detail != "" {
		detail = body.Detail
	}
	return &Error{StatusCode: resp.StatusCode, Detail: detail}
}

// timestampLayouts are the formats the service is known to emit
// (Python datetime.isoformat with and without fractional seconds or zone).
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

func parseTimestamp(s string) time.Time {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
