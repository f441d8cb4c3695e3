// Package entries holds the list of selectable lines read from input.
package entries

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

// ErrRead is returned when the input stream fails before EOF.
var ErrRead = errors.New("failed to read input")

// readChunk is the size of each read from the input stream.
const readChunk = 1024

// Store is an ordered, immutable list of entries. Indices are stable for
// the lifetime of the store.
type Store struct {
	items []string
}

// New builds a store from the given lines. The slice is copied.
func New(lines []string) *Store {
	items := make([]string, len(lines))
	copy(items, lines)
	return &Store{items: items}
}

// Len returns the number of entries.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// At returns the entry at index i. It panics if i is out of range.
func (s *Store) At(i int) string {
	return s.items[i]
}

// Width returns the display length of entry i in bytes.
func (s *Store) Width(i int) int {
	return len(s.items[i])
}

// Read splits r on line feeds and returns the resulting store. The delimiter
// is not part of an entry, empty lines are skipped and a final fragment
// without a trailing newline is still kept.
func Read(r io.Reader) (*Store, error) {
	br := bufio.NewReaderSize(r, readChunk)

	var (
		items   []string
		pending bytes.Buffer
	)
	for {
		line, err := br.ReadSlice('\n')
		if len(line) > 0 {
			if line[len(line)-1] == '\n' {
				pending.Write(line[:len(line)-1])
				if pending.Len() > 0 {
					items = append(items, pending.String())
				}
				pending.Reset()
			} else {
				pending.Write(line)
			}
		}
		if err == nil || errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}
	if pending.Len() > 0 {
		items = append(items, pending.String())
	}
	return &Store{items: items}, nil
}
