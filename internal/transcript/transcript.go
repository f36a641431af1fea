// Package transcript holds the append-only conversation log shown to the
// user, including the tagged content type that separates trusted
// server-produced markup from arbitrary text.
package transcript

import (
	"sync"
	"time"
)

// Role identifies who produced a transcript entry.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Kind tags content as escaped text or pre-approved markup. The tag is
// assigned once, when content is received, and never re-derived later.
type Kind int

const (
	// KindText is arbitrary text. It is always HTML-escaped before display.
	KindText Kind = iota
	// KindMarkup is a structured HTML fragment produced by the service and
	// rendered verbatim. Only Classify assigns this kind.
	KindMarkup
)

// Content is a tagged piece of entry content.
type Content struct {
	Kind Kind   `json:"kind"`
	Body string `json:"body"`
}

// Text wraps s as escaped-on-display text content.
func Text(s string) Content {
	return Content{Kind: KindText, Body: s}
}

// Entry is one transcript line.
type Entry struct {
	Role      Role      `json:"role"`
	Content   Content   `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Log is an append-only ordered sequence of entries. Insertion order is the
// display order (oldest first, newest last).
type Log struct {
	mu      sync.Mutex
	entries []Entry
	now     func() time.Time
}

// NewLog creates an empty transcript log.
func NewLog() *Log {
	return &Log{now: time.Now}
}

// Append adds one entry and returns it.
func (l *Log) Append(role Role, content Content) Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	e := Entry{Role: role, Content: content, Timestamp: l.now()}
	l.entries = append(l.entries, e)
	return e
}

// AppendText is shorthand for appending plain text content.
func (l *Log) AppendText(role Role, body string) Entry {
	return l.Append(role, Text(body))
}

// Entries returns a copy of the current entries in insertion order.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len reports the number of entries.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Clear discards all entries.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}
