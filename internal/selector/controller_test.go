package selector

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/moasq/smenu/internal/entries"
	"github.com/moasq/smenu/internal/terminal"
)

// step is one scripted Read. before runs first, then either err is
// returned or key is delivered.
type step struct {
	key    byte
	err    error
	before func()
}

type fakeTerminal struct {
	steps    []step
	out      bytes.Buffer
	width    int
	writeErr error
}

func keys(s string) []step {
	out := make([]step, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = step{key: s[i]}
	}
	return out
}

func (f *fakeTerminal) Read(p []byte) (int, error) {
	if len(f.steps) == 0 {
		return 0, io.EOF
	}
	s := f.steps[0]
	f.steps = f.steps[1:]
	if s.before != nil {
		s.before()
	}
	if s.err != nil {
		return 0, s.err
	}
	p[0] = s.key
	return 1, nil
}

func (f *fakeTerminal) Write(p []byte) (int, error) {
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	return f.out.Write(p)
}

func (f *fakeTerminal) Width() (int, error) {
	return f.width, nil
}

func run(t *testing.T, list []string, term *fakeTerminal) (Result, *Controller) {
	t.Helper()
	c := NewController(entries.New(list), term, terminal.NewSignalBridge())
	res, err := c.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return res, c
}

func TestRunConfirmsSelection(t *testing.T) {
	term := &fakeTerminal{width: 80, steps: keys("\x1b[C\x1b[B\x1b[D\n")}
	res, _ := run(t, []string{"a", "bb", "ccc"}, term)

	if res.State != Confirmed || res.Index != 1 || res.Entry != "bb" {
		t.Fatalf("unexpected result %+v", res)
	}
	out := term.out.String()
	if !strings.HasPrefix(out, terminal.HideCursor) {
		t.Fatalf("expected cursor to be hidden first, got %q", out)
	}
	if !strings.HasSuffix(out, "\n"+terminal.ShowCursor) {
		t.Fatalf("expected trailing newline and cursor show, got %q", out)
	}
}

func TestRunCtrlNAndCtrlP(t *testing.T) {
	term := &fakeTerminal{width: 80, steps: keys("\x0e\x0e\x10\x0e\x0e\n")}
	res, _ := run(t, []string{"a", "b", "c", "d"}, term)
	if res.Index != 3 || res.Entry != "d" {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestRunCancelWithCtrlD(t *testing.T) {
	term := &fakeTerminal{width: 80, steps: keys("\x1b[C\x04")}
	res, _ := run(t, []string{"a", "b"}, term)
	if res.State != Cancelled || res.Entry != "" {
		t.Fatalf("expected cancel without entry, got %+v", res)
	}
}

func TestRunInterruptSignal(t *testing.T) {
	bridge := terminal.NewSignalBridge()
	term := &fakeTerminal{width: 80, steps: []step{
		{key: 0x0e},
		{err: terminal.ErrReadInterrupted, before: func() { bridge.Raise(terminal.SignalInterrupt) }},
		{key: '\n'},
	}}
	c := NewController(entries.New([]string{"a", "b"}), term, bridge)

	res, err := c.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.State != Cancelled {
		t.Fatalf("expected cancel on interrupt, got %+v", res)
	}
	if len(term.steps) != 1 {
		t.Fatalf("expected loop to stop before the next read, %d steps left", len(term.steps))
	}
}

func TestRunResizeRedrawsWithNewWidth(t *testing.T) {
	bridge := terminal.NewSignalBridge()
	term := &fakeTerminal{width: 80}
	term.steps = []step{
		{err: terminal.ErrReadInterrupted, before: func() {
			term.width = 12
			bridge.Raise(terminal.SignalResize)
		}},
		{key: '\n'},
	}
	c := NewController(entries.New([]string{"alpha", "beta", "gamma"}), term, bridge)

	res, err := c.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Entry != "alpha" {
		t.Fatalf("unexpected result %+v", res)
	}

	frames := strings.Split(term.out.String(), terminal.EraseLine+terminal.ColumnOne)
	if len(frames) != 3 {
		t.Fatalf("expected two renders, got %d frames: %q", len(frames)-1, term.out.String())
	}
	if strings.Contains(frames[1], terminal.DefaultEllipsis) {
		t.Fatalf("first render should fit at 80 columns: %q", frames[1])
	}
	if !strings.Contains(frames[2], terminal.DefaultEllipsis) {
		t.Fatalf("render after resize should truncate at 12 columns: %q", frames[2])
	}
}

func TestRunSkipsRedrawWhenNothingChanged(t *testing.T) {
	term := &fakeTerminal{width: 80, steps: keys("xyz\x1b[D\x10\n")}
	run(t, []string{"a", "b"}, term)

	if n := strings.Count(term.out.String(), terminal.EraseLine); n != 1 {
		t.Fatalf("expected a single render, got %d", n)
	}
}

func TestRunEmptyInput(t *testing.T) {
	term := &fakeTerminal{width: 80, steps: keys("\n\x1b[C\x04")}
	res, c := run(t, nil, term)

	if res.State != Cancelled {
		t.Fatalf("expected cancel, got %+v", res)
	}
	if c.Selected() != 0 {
		t.Fatalf("selection moved in empty list: %d", c.Selected())
	}
	want := terminal.HideCursor + "\n" + terminal.ShowCursor
	if term.out.String() != want {
		t.Fatalf("expected no render output, got %q", term.out.String())
	}
}

func TestRunEOFCancels(t *testing.T) {
	term := &fakeTerminal{width: 80}
	res, _ := run(t, []string{"a"}, term)
	if res.State != Cancelled {
		t.Fatalf("expected cancel on EOF, got %+v", res)
	}
}

func TestRunReadError(t *testing.T) {
	boom := errors.New("boom")
	term := &fakeTerminal{width: 80, steps: []step{{err: boom}}}
	c := NewController(entries.New([]string{"a"}), term, terminal.NewSignalBridge())

	_, err := c.Run(context.Background())
	if !errors.Is(err, ErrIO) {
		t.Fatalf("expected ErrIO, got %v", err)
	}
	if !strings.HasSuffix(term.out.String(), terminal.ShowCursor) {
		t.Fatalf("expected cursor restored after error, got %q", term.out.String())
	}
}

func TestRunWriteError(t *testing.T) {
	term := &fakeTerminal{width: 80, writeErr: errors.New("closed")}
	c := NewController(entries.New([]string{"a"}), term, terminal.NewSignalBridge())

	if _, err := c.Run(context.Background()); !errors.Is(err, ErrIO) {
		t.Fatalf("expected ErrIO, got %v", err)
	}
}

func TestRunContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	term := &fakeTerminal{width: 80, steps: keys("\n")}
	c := NewController(entries.New([]string{"a"}), term, terminal.NewSignalBridge())

	res, err := c.Run(ctx)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.State != Cancelled {
		t.Fatalf("expected cancel, got %+v", res)
	}
}

func TestApplyClampsAtBounds(t *testing.T) {
	c := NewController(entries.New([]string{"a", "b", "c"}), &fakeTerminal{}, terminal.NewSignalBridge())

	if c.Apply(terminal.MovePrev) || c.Selected() != 0 {
		t.Fatalf("MovePrev at 0 should be a no-op, selection %d", c.Selected())
	}
	c.Apply(terminal.MoveNext)
	c.Apply(terminal.MoveNext)
	if c.Apply(terminal.MoveNext) || c.Selected() != 2 {
		t.Fatalf("MoveNext at last should be a no-op, selection %d", c.Selected())
	}
}

func TestApplyRoundTripInInterior(t *testing.T) {
	list := []string{"a", "b", "c", "d", "e"}
	for start := 0; start < len(list)-1; start++ {
		c := NewController(entries.New(list), &fakeTerminal{}, terminal.NewSignalBridge())
		for i := 0; i < start; i++ {
			c.Apply(terminal.MoveNext)
		}
		c.Apply(terminal.MoveNext)
		c.Apply(terminal.MovePrev)
		if c.Selected() != start {
			t.Errorf("start %d: next then prev ended at %d", start, c.Selected())
		}
	}
}

func TestApplyIgnoredAfterFinish(t *testing.T) {
	c := NewController(entries.New([]string{"a", "b"}), &fakeTerminal{}, terminal.NewSignalBridge())
	c.Apply(terminal.Confirm)
	if c.State() != Confirmed {
		t.Fatalf("expected confirmed, got %v", c.State())
	}
	c.Apply(terminal.MoveNext)
	if c.Selected() != 0 {
		t.Fatal("selection changed after confirm")
	}
}
