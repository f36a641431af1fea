// Package chat sends user messages to the service and records the exchange
// in the transcript. At most one send is in flight at a time.
package chat

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/sheetdeck/sheetdeck/internal/api"
	"github.com/sheetdeck/sheetdeck/internal/transcript"
)

// ErrSendInFlight means a send was attempted while another was unresolved.
// The UI disables input while a send is pending, so hitting this from an
// interactive flow indicates a dispatch bug, not a user error.
var ErrSendInFlight = errors.New("a message is already being sent")

// Channel exchanges messages with the service over one session.
type Channel struct {
	svc api.Service
	log *transcript.Log

	mu       sync.Mutex
	inFlight bool
}

// NewChannel creates a channel appending to log.
func NewChannel(svc api.Service, log *transcript.Log) *Channel {
	return &Channel{svc: svc, log: log}
}

// InFlight reports whether a send is currently unresolved.
func (c *Channel) InFlight() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

// Send delivers one message bound to sessionID.
//
// A message that is empty after trimming is a silent no-op: nothing is
// appended and nothing is sent. Otherwise the user entry is appended before
// the network call (so the reply can only ever follow it), the call is made,
// and exactly one terminal entry follows: the assistant reply on success or
// a system entry describing the failure. The in-flight flag is cleared on
// every path, success or not.
func (c *Channel) Send(ctx context.Context, sessionID, message string) error {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return nil
	}

	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return ErrSendInFlight
	}
	c.inFlight = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.inFlight = false
		c.mu.Unlock()
	}()

	c.log.AppendText(transcript.RoleUser, trimmed)

	reply, err := c.svc.SendMessage(ctx, sessionID, trimmed)
	if err != nil {
		c.log.AppendText(transcript.RoleSystem, "Message failed: "+err.Error())
		return err
	}

	// Classify once, here, where the content enters the client.
	c.log.Append(transcript.RoleAssistant, transcript.Classify(reply))
	return nil
}
