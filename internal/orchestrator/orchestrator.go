// Package orchestrator wires the session, chat, poller, and output components
// together and enforces the preconditions between them: no chatting or
// generating without a session, no second generation while one is running.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/sheetdeck/sheetdeck/internal/api"
	"github.com/sheetdeck/sheetdeck/internal/chat"
	"github.com/sheetdeck/sheetdeck/internal/notify"
	"github.com/sheetdeck/sheetdeck/internal/outputs"
	"github.com/sheetdeck/sheetdeck/internal/poller"
	"github.com/sheetdeck/sheetdeck/internal/session"
	"github.com/sheetdeck/sheetdeck/internal/transcript"
)

// ErrNoActiveSession means an operation requiring an uploaded workbook was
// attempted before one exists.
var ErrNoActiveSession = errors.New("no workbook uploaded yet")

// ProgressSink receives generation progress for display. progress.Meter
// satisfies it; tests substitute a recorder.
type ProgressSink interface {
	Show(percent int, message string)
	Hide()
}

// nopSink discards progress when no display is attached.
type nopSink struct{}

func (nopSink) Show(int, string) {}
func (nopSink) Hide()            {}

// nopNotifier discards notifications when none is attached.
type nopNotifier struct{}

func (nopNotifier) Notify(string, notify.Severity) {}

// Option customizes an App.
type Option func(*App)

// WithNotifier routes status messages to n instead of discarding them.
func WithNotifier(n notify.Notifier) Option {
	return func(a *App) { a.notifier = n }
}

// WithProgressSink routes generation progress to s.
func WithProgressSink(s ProgressSink) Option {
	return func(a *App) { a.sink = s }
}

// WithPollerOptions forwards options to the embedded task poller.
func WithPollerOptions(opts ...poller.Option) Option {
	return func(a *App) { a.pollOpts = opts }
}

// WithLogLimit sets how many service log entries RefreshAll fetches.
func WithLogLimit(n int) Option {
	return func(a *App) { a.logLimit = n }
}

// App is the top-level client state: one session, one conversation, at most
// one generation task, and a mirror of the server's output directory.
type App struct {
	svc      api.Service
	log      *slog.Logger
	notifier notify.Notifier
	sink     ProgressSink
	pollOpts []poller.Option
	logLimit int

	Sessions   *session.Manager
	Chat       *chat.Channel
	Tasks      *poller.Poller
	Outputs    *outputs.Registry
	Transcript *transcript.Log

	logMu    sync.Mutex
	lastLogs []api.LogEntry
}

// New wires an App around svc. The App itself is the poller's event handler.
func New(svc api.Service, opts ...Option) *App {
	a := &App{
		svc:      svc,
		log:      slog.Default(),
		notifier: nopNotifier{},
		sink:     nopSink{},
		logLimit: 50,
	}
	for _, opt := range opts {
		opt(a)
	}

	a.Transcript = transcript.NewLog()
	a.Sessions = session.NewManager(svc)
	a.Chat = chat.NewChannel(svc, a.Transcript)
	a.Tasks = poller.New(svc, a, a.pollOpts...)
	a.Outputs = outputs.NewRegistry(svc)
	return a
}

// Upload starts a session from the workbook at path. Any previous session is
// replaced: its poll is cancelled and the conversation starts fresh. A failed
// upload leaves the previous session, transcript, and poll untouched.
func (a *App) Upload(ctx context.Context, path string) (*api.UploadResult, error) {
	res, err := a.Sessions.Start(ctx, path)
	if err != nil {
		a.notifier.Notify(err.Error(), notify.Error)
		return nil, err
	}

	a.Tasks.Cancel()
	a.sink.Hide()
	a.Transcript.Clear()
	if res.Message != "" {
		a.Transcript.AppendText(transcript.RoleSystem, res.Message)
	}
	a.notifier.Notify(fmt.Sprintf("Uploaded %s", res.Filename), notify.Success)
	return res, nil
}

// Send delivers one chat message over the active session. An empty message
// is a silent no-op, matching the channel's own behavior.
func (a *App) Send(ctx context.Context, message string) error {
	if !a.Sessions.Active() {
		a.notifier.Notify("Upload a workbook before chatting", notify.Warning)
		return ErrNoActiveSession
	}
	return a.Chat.Send(ctx, a.Sessions.ID(), message)
}

// Generate submits a presentation generation task and starts watching it.
// Progress arrives through the ProgressSink; completion and failure land in
// the transcript and the notifier.
func (a *App) Generate(ctx context.Context, brief string) (string, error) {
	if !a.Sessions.Active() {
		a.notifier.Notify("Upload a workbook before generating", notify.Warning)
		return "", ErrNoActiveSession
	}
	if a.Tasks.Busy() {
		a.notifier.Notify("A presentation is already being generated", notify.Warning)
		return "", poller.ErrTaskActive
	}

	taskID, err := a.Tasks.Submit(ctx, a.Sessions.ID(), brief)
	if err != nil {
		a.notifier.Notify("Could not start generation: "+err.Error(), notify.Error)
		return "", err
	}
	a.notifier.Notify("Generation started", notify.Info)
	return taskID, nil
}

// ClearChat discards the local conversation. The server keeps its own
// history; there is no endpoint to clear it remotely.
func (a *App) ClearChat() {
	a.Transcript.Clear()
	a.notifier.Notify("Conversation cleared", notify.Info)
}

// EndSession tears the session down: the poll stops, the transcript is
// discarded, and the server-side session is deleted best effort.
func (a *App) EndSession(ctx context.Context) {
	a.Tasks.Cancel()
	a.sink.Hide()
	a.Sessions.End(ctx)
	a.Transcript.Clear()
	a.notifier.Notify("Session ended", notify.Info)
}

// RefreshOutputs re-fetches the server's output file list.
func (a *App) RefreshOutputs(ctx context.Context) error {
	return a.Outputs.Refresh(ctx)
}

// RecentLogs fetches the newest service-side LLM interaction records and
// caches them for LatestLogs.
func (a *App) RecentLogs(ctx context.Context) ([]api.LogEntry, error) {
	entries, err := a.svc.RecentLogs(ctx, a.logLimit)
	if err != nil {
		return nil, err
	}

	a.logMu.Lock()
	a.lastLogs = entries
	a.logMu.Unlock()
	return entries, nil
}

// LatestLogs returns a copy of the most recently fetched log entries without
// a network call.
func (a *App) LatestLogs() []api.LogEntry {
	a.logMu.Lock()
	defer a.logMu.Unlock()
	out := make([]api.LogEntry, len(a.lastLogs))
	copy(out, a.lastLogs)
	return out
}

// refreshAfterCompletion updates everything a finished generation can have
// changed, fetching concurrently: the output list the generation added to
// and the interaction logs it appended. Failures are logged, not surfaced:
// the completion itself already reached the user.
func (a *App) refreshAfterCompletion() {
	ctx := context.Background()
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.Outputs.Refresh(ctx) })
	g.Go(func() error {
		_, err := a.RecentLogs(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		a.log.Debug("post-completion refresh failed", "error", err)
	}
}

// TaskProgress implements poller.Events.
func (a *App) TaskProgress(status api.TaskStatus) {
	a.sink.Show(status.Progress, status.Message)
}

// TaskCompleted implements poller.Events. The refresh happens before the
// announcement so the file list is already current when the user reacts.
func (a *App) TaskCompleted(status api.TaskStatus) {
	a.sink.Hide()

	msg := "Presentation generated"
	if status.FilePath != "" {
		msg = fmt.Sprintf("Presentation generated: %s", status.FilePath)
	}
	a.Transcript.AppendText(transcript.RoleSystem, msg)
	a.refreshAfterCompletion()
	a.notifier.Notify(msg, notify.Success)
}

// TaskFailed implements poller.Events.
func (a *App) TaskFailed(message string) {
	a.sink.Hide()
	a.Transcript.AppendText(transcript.RoleSystem, "Generation failed: "+message)
	a.notifier.Notify("Generation failed: "+message, notify.Error)
}
