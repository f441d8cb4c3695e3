// Package selector runs the interactive single-line selection loop.
package selector

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/moasq/smenu/internal/logging"
	"github.com/moasq/smenu/internal/terminal"
)

// ErrIO is returned when reading from or drawing to the terminal fails.
var ErrIO = errors.New("terminal I/O failed")

// Terminal is the display and keyboard the controller drives.
type Terminal interface {
	io.ReadWriter
	Width() (int, error)
}

// Signals is the source of asynchronous interrupt and resize notifications.
type Signals interface {
	Take() terminal.Signal
}

// State is the controller state.
type State int

const (
	Running State = iota
	Confirmed
	Cancelled
)

func (s State) String() string {
	switch s {
	case Confirmed:
		return "confirmed"
	case Cancelled:
		return "cancelled"
	default:
		return "running"
	}
}

// Result is the outcome of a finished session.
type Result struct {
	State State
	Index int
	Entry string
}

// ControllerOpts holds optional collaborators for the controller.
type ControllerOpts struct {
	Renderer *terminal.Renderer
	Logger   *logging.Logger
}

// Controller owns the selection and reacts to keys and signals.
type Controller struct {
	entries  terminal.Entries
	term     Terminal
	signals  Signals
	renderer *terminal.Renderer
	log      *logging.Logger

	decoder  terminal.Decoder
	selected int
	columns  int
	state    State
}

// NewController creates a controller with the selection on the first entry.
func NewController(entries terminal.Entries, t Terminal, signals Signals, opts ...ControllerOpts) *Controller {
	c := &Controller{
		entries:  entries,
		term:     t,
		signals:  signals,
		renderer: terminal.NewRenderer(),
		log:      logging.Nop(),
	}
	if len(opts) > 0 {
		if opts[0].Renderer != nil {
			c.renderer = opts[0].Renderer
		}
		if opts[0].Logger != nil {
			c.log = opts[0].Logger
		}
	}
	return c
}

// Selected returns the current selection index.
func (c *Controller) Selected() int {
	return c.selected
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Apply updates the selection for one decoded command and reports whether
// the selection changed.
func (c *Controller) Apply(cmd terminal.Command) bool {
	if c.state != Running {
		return false
	}
	n := c.entries.Len()
	switch cmd {
	case terminal.MoveNext:
		if c.selected < n-1 {
			c.selected++
			return true
		}
	case terminal.MovePrev:
		if c.selected > 0 {
			c.selected--
			return true
		}
	case terminal.Cancel:
		c.state = Cancelled
	case terminal.Confirm:
		// Nothing to confirm in an empty list.
		if n > 0 {
			c.state = Confirmed
		}
	}
	return false
}

func (c *Controller) result() Result {
	r := Result{State: c.state}
	if c.state == Confirmed {
		r.Index = c.selected
		r.Entry = c.entries.At(c.selected)
	}
	return r
}

func (c *Controller) measure() {
	w, err := c.term.Width()
	if err != nil {
		c.log.Warn("failed to measure terminal", "error", err)
		return
	}
	c.columns = w
}

// Run draws the entries and processes input until the user confirms or
// cancels, an interrupt signal arrives or ctx is done. The cursor is
// hidden while the loop runs.
func (c *Controller) Run(ctx context.Context) (Result, error) {
	if _, err := io.WriteString(c.term, terminal.HideCursor); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrIO, err)
	}
	defer io.WriteString(c.term, terminal.ShowCursor)

	c.measure()
	c.log.Info("session started", "entries", c.entries.Len(), "columns", c.columns)

	buf := make([]byte, 1)
	dirty := true
	for c.state == Running {
		if ctx.Err() != nil {
			c.state = Cancelled
			break
		}

		switch c.signals.Take() {
		case terminal.SignalInterrupt:
			c.log.Info("interrupted")
			c.state = Cancelled
			continue
		case terminal.SignalResize:
			c.measure()
			c.log.Debug("resized", "columns", c.columns)
			dirty = true
		}

		if dirty {
			if err := c.renderer.Render(c.term, c.entries, c.selected, c.columns); err != nil {
				return Result{}, fmt.Errorf("%w: %v", ErrIO, err)
			}
			dirty = false
		}

		n, err := c.term.Read(buf)
		switch {
		case errors.Is(err, terminal.ErrReadInterrupted):
			continue
		case errors.Is(err, io.EOF):
			c.log.Info("terminal closed")
			c.state = Cancelled
			continue
		case err != nil:
			return Result{}, fmt.Errorf("%w: %v", ErrIO, err)
		case n == 0:
			continue
		}

		cmd := c.decoder.Feed(buf[0])
		if cmd == terminal.None {
			continue
		}
		c.log.Debug("command", "command", cmd.String(), "selected", c.selected)
		dirty = c.Apply(cmd)
	}

	c.log.Info("session finished", "state", c.state.String(), "selected", c.selected)
	if _, err := io.WriteString(c.term, "\n"); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrIO, err)
	}
	return c.result(), nil
}
