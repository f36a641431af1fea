// Package progress renders transient single-line status on a terminal:
// an animated spinner for short waits and a percentage meter for
// long-running generation tasks.
package progress

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-runewidth"
)

var frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spin displays an animated spinner with the given message on w.
// Call the returned function to stop the spinner and clear the line.
func Spin(w io.Writer, message string) (stop func()) {
	done := make(chan struct{})
	cleared := make(chan struct{})
	var stopOnce sync.Once
	go func() {
		i := 0
		for {
			select {
			case <-done:
				fmt.Fprintf(w, "\r%s\r", strings.Repeat(" ", runewidth.StringWidth(message)+2)) //nolint:errcheck
				close(cleared)
				return
			case <-time.After(80 * time.Millisecond):
				fmt.Fprintf(w, "\r%s %s", frames[i%len(frames)], message) //nolint:errcheck
				i++
			}
		}
	}()
	return func() {
		stopOnce.Do(func() {
			close(done)
		})
		<-cleared
	}
}

// Meter is a single-line percentage display that is repainted in place as a
// task advances. Safe for concurrent use; Show and Hide may be called from
// poller callbacks while the prompt loop owns the same writer.
type Meter struct {
	w io.Writer

	mu    sync.Mutex
	width int // painted width of the current line, 0 when hidden
}

// NewMeter creates a meter that paints on w.
func NewMeter(w io.Writer) *Meter {
	return &Meter{w: w}
}

// Show repaints the meter line with the current percentage and status
// message, overwriting the previous paint.
func (m *Meter) Show(percent int, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	line := fmt.Sprintf("[%3d%%] %s", percent, message)
	pad := ""
	if prev := m.width - runewidth.StringWidth(line); prev > 0 {
		pad = strings.Repeat(" ", prev)
	}
	fmt.Fprintf(m.w, "\r%s%s", line, pad) //nolint:errcheck
	m.width = runewidth.StringWidth(line)
}

// Hide clears the meter line. A hidden meter stays usable: the next Show
// paints fresh.
func (m *Meter) Hide() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.width == 0 {
		return
	}
	fmt.Fprintf(m.w, "\r%s\r", strings.Repeat(" ", m.width)) //nolint:errcheck
	m.width = 0
}
