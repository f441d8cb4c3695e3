package terminal

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// DefaultDevice is the controlling terminal.
const DefaultDevice = "/dev/tty"

var (
	// ErrNoTTY is returned when the controlling terminal cannot be used.
	ErrNoTTY = errors.New("no controlling terminal")

	// ErrReadInterrupted is returned by Session.Read after Wake cut a
	// blocking read short. The read can simply be retried.
	ErrReadInterrupted = errors.New("terminal read interrupted")
)

// Session owns the controlling terminal while the selector runs. Opening it
// switches the terminal to unbuffered, unechoed input; Close puts the
// original configuration back.
//
// The descriptor is only touched through SyscallConn so it stays in
// non-blocking mode and read deadlines keep working.
type Session struct {
	file  *os.File
	saved *term.State
	once  sync.Once
}

// Open acquires device and disables canonical mode and echo on it. Signal
// generating keys such as Ctrl-C keep working.
func Open(device string) (*Session, error) {
	f, err := os.OpenFile(device, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoTTY, err)
	}

	s := &Session{file: f}
	err = s.control(func(fd int) error {
		if !term.IsTerminal(fd) {
			return fmt.Errorf("%w: %s is not a terminal", ErrNoTTY, device)
		}
		saved, err := term.GetState(fd)
		if err != nil {
			return fmt.Errorf("failed to save terminal state: %w", err)
		}
		s.saved = saved

		t, err := unix.IoctlGetTermios(fd, ioctlReadTermios)
		if err != nil {
			return fmt.Errorf("failed to read terminal attributes: %w", err)
		}
		t.Lflag &^= unix.ICANON | unix.ECHO
		t.Cc[unix.VMIN] = 1
		t.Cc[unix.VTIME] = 0
		if err := unix.IoctlSetTermios(fd, ioctlWriteTermios, t); err != nil {
			return fmt.Errorf("failed to enter raw mode: %w", err)
		}
		return nil
	})
	if err != nil {
		f.Close()
		return nil, err
	}
	return s, nil
}

func (s *Session) control(fn func(fd int) error) error {
	rc, err := s.file.SyscallConn()
	if err != nil {
		return err
	}
	var inner error
	if err := rc.Control(func(fd uintptr) { inner = fn(int(fd)) }); err != nil {
		return err
	}
	return inner
}

// Read reads keyboard input. It returns ErrReadInterrupted when Wake fired
// while the read was blocked.
func (s *Session) Read(p []byte) (int, error) {
	n, err := s.file.Read(p)
	if errors.Is(err, os.ErrDeadlineExceeded) {
		_ = s.file.SetReadDeadline(time.Time{})
		return n, ErrReadInterrupted
	}
	return n, err
}

// Write sends display output to the terminal.
func (s *Session) Write(p []byte) (int, error) {
	return s.file.Write(p)
}

// Width returns the current number of columns.
func (s *Session) Width() (int, error) {
	var cols int
	err := s.control(func(fd int) error {
		w, _, err := term.GetSize(fd)
		cols = w
		return err
	})
	return cols, err
}

// Wake makes a blocked Read return. It is safe to call from any goroutine.
// If the descriptor does not support deadlines the read stays blocked
// until the next key press.
func (s *Session) Wake() {
	_ = s.file.SetReadDeadline(time.Now())
}

// Close restores the saved terminal configuration and releases the device.
// Only the first call does anything.
func (s *Session) Close() error {
	var err error
	s.once.Do(func() {
		err = s.control(func(fd int) error {
			return term.Restore(fd, s.saved)
		})
		if cerr := s.file.Close(); err == nil {
			err = cerr
		}
	})
	return err
}
