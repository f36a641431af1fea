// Package poller drives one asynchronous generation task from submission to
// a terminal state by periodically fetching its status.
package poller

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sheetdeck/sheetdeck/internal/api"
)

// DefaultInterval is the delay between status checks.
const DefaultInterval = 2 * time.Second

// ErrTaskActive means a submit was attempted while a task is still polling.
var ErrTaskActive = errors.New("a generation task is already running")

// State is the poller's position in its lifecycle.
type State int

const (
	StateIdle State = iota
	StatePolling
	StateCompleted
	StateFailed
	StateAborted
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case StatePolling:
		return "polling"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	case StateAborted:
		return "aborted"
	default:
		return "idle"
	}
}

// Events receives poller transitions. Callbacks run on the polling goroutine;
// implementations must be safe to call from there.
type Events interface {
	// TaskProgress fires after every successful status fetch, terminal or not.
	TaskProgress(status api.TaskStatus)
	// TaskCompleted fires exactly once, when the task reports completion.
	TaskCompleted(status api.TaskStatus)
	// TaskFailed fires exactly once, when the task reports failure, a status
	// fetch fails, or the attempt ceiling is reached.
	TaskFailed(message string)
}

// Option customizes a Poller.
type Option func(*Poller)

// WithInterval overrides the delay between status checks.
func WithInterval(d time.Duration) Option {
	return func(p *Poller) { p.interval = d }
}

// WithMaxAttempts bounds the number of status checks. Zero means unbounded,
// matching the service's own behavior of letting tasks run arbitrarily long.
func WithMaxAttempts(n int) Option {
	return func(p *Poller) { p.maxAttempts = n }
}

// Poller owns at most one active task. Each status check schedules the next
// one only after it resolves, so checks never overlap.
type Poller struct {
	svc         api.Service
	events      Events
	interval    time.Duration
	maxAttempts int

	mu     sync.Mutex
	state  State
	taskID string
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates an idle poller.
func New(svc api.Service, events Events, opts ...Option) *Poller {
	p := &Poller{
		svc:      svc,
		events:   events,
		interval: DefaultInterval,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// State returns the current lifecycle state.
func (p *Poller) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// TaskID returns the active task id, or "" when no task is active.
func (p *Poller) TaskID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.taskID
}

// Busy reports whether a task is actively being polled.
func (p *Poller) Busy() bool {
	return p.State() == StatePolling
}

// Submit starts a generation task and begins polling it. It fails with
// ErrTaskActive while a previous task is still polling; terminal states and
// Idle both allow a new submission.
func (p *Poller) Submit(ctx context.Context, sessionID, message string) (string, error) {
	p.mu.Lock()
	if p.state == StatePolling {
		p.mu.Unlock()
		return "", ErrTaskActive
	}
	p.mu.Unlock()

	taskID, err := p.svc.SubmitGeneration(ctx, sessionID, message)
	if err != nil {
		return "", err
	}

	// The polling loop outlives the submitting call's context; it is bounded
	// by Cancel (session teardown) or a terminal status instead.
	loopCtx, cancel := context.WithCancel(context.Background())

	p.mu.Lock()
	p.state = StatePolling
	p.taskID = taskID
	p.cancel = cancel
	p.done = make(chan struct{})
	done := p.done
	p.mu.Unlock()

	go p.loop(loopCtx, taskID, done)
	return taskID, nil
}

// Cancel aborts an active poll and waits for the loop to exit. The remote
// task keeps running server-side; only the client stops watching it.
// Canceling an idle or terminal poller is a no-op.
func (p *Poller) Cancel() {
	p.mu.Lock()
	cancel := p.cancel
	done := p.done
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (p *Poller) loop(ctx context.Context, taskID string, done chan struct{}) {
	defer close(done)

	attempts := 0
	timer := time.NewTimer(p.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			p.finish(StateAborted)
			return
		case <-timer.C:
		}

		status, err := p.svc.TaskStatus(ctx, taskID)
		if err != nil {
			if ctx.Err() != nil {
				// Canceled mid-fetch; not a task failure.
				p.finish(StateAborted)
				return
			}
			// A transport or parse failure is terminal for this task; polling
			// never resumes on its own.
			p.finish(StateFailed)
			p.events.TaskFailed("status check failed: " + err.Error())
			return
		}

		p.events.TaskProgress(*status)

		switch status.Status {
		case api.StatusCompleted:
			p.finish(StateCompleted)
			p.events.TaskCompleted(*status)
			return
		case api.StatusFailed:
			p.finish(StateFailed)
			p.events.TaskFailed(status.Message)
			return
		}

		attempts++
		if p.maxAttempts > 0 && attempts >= p.maxAttempts {
			p.finish(StateFailed)
			p.events.TaskFailed("task did not finish; stopped watching it")
			return
		}

		// One-shot reschedule: the next check is armed only after this one
		// fully resolved, so checks cannot overlap.
		timer.Reset(p.interval)
	}
}

// finish records a terminal state and clears the task binding.
func (p *Poller) finish(s State) {
	p.mu.Lock()
	p.state = s
	p.taskID = ""
	p.cancel = nil
	p.mu.Unlock()
}
