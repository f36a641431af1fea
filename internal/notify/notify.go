// Package notify delivers transient, non-blocking status messages to the user.
package notify

import (
	"fmt"
	"io"
	"sync"
)

// Severity classifies a notification for display purposes.
type Severity int

const (
	Info Severity = iota
	Success
	Warning
	Error
)

// String returns the lowercase name of the severity.
func (s Severity) String() string {
	switch s {
	case Success:
		return "success"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "info"
	}
}

func (s Severity) icon() string {
	switch s {
	case Success:
		return "✅"
	case Warning:
		return "⚠️"
	case Error:
		return "❌"
	default:
		return "ℹ️"
	}
}

// Notifier delivers a transient status message. Implementations must not
// block the caller on delivery.
type Notifier interface {
	Notify(message string, severity Severity)
}

// Console writes notifications as single lines to Out.
type Console struct {
	Out io.Writer

	mu sync.Mutex
}

// NewConsole creates a console notifier writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{Out: w}
}

// Notify writes one line with a severity icon. Write failures are ignored;
// losing a status line must never fail the operation being reported on.
func (c *Console) Notify(message string, severity Severity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.Out, "%s %s\n", severity.icon(), message) //nolint:errcheck
}

// Recorded is one captured notification.
type Recorded struct {
	Message  string
	Severity Severity
}

// Recorder captures notifications for assertions in tests.
type Recorder struct {
	mu       sync.Mutex
	messages []Recorded
}

// Notify records the message.
func (r *Recorder) Notify(message string, severity Severity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, Recorded{Message: message, Severity: severity})
}

// Messages returns a copy of everything recorded so far.
func (r *Recorder) Messages() []Recorded {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Recorded, len(r.messages))
	copy(out, r.messages)
	return out
}
