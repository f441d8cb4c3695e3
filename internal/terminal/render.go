package terminal

import (
	"io"
	"strings"
)

// Pager indicators are fixed width so the line never shifts when paging.
const (
	indicatorLeft  = " < "
	indicatorRight = " > "
	indicatorBlank = "   "
	indicatorWidth = len(indicatorBlank)

	// entryPadding is one space on each side of an entry.
	entryPadding = 2
)

// DefaultMinWidth is the narrowest terminal the renderer draws into.
const DefaultMinWidth = 10

// DefaultEllipsis marks a truncated entry.
const DefaultEllipsis = "..."

// Entries is the read side of the entry list.
type Entries interface {
	Len() int
	At(i int) string
}

// Frame describes which entries a single render shows.
type Frame struct {
	// Start and End bound the displayed entries as [Start, End).
	Start, End int
	// Selected is the highlighted entry.
	Selected int
	// Overflow is set when only the selected entry is shown, truncated.
	Overflow bool
	// MoreLeft and MoreRight report hidden entries on either side.
	MoreLeft, MoreRight bool
}

// Contains reports whether entry i is inside the frame.
func (f Frame) Contains(i int) bool {
	return i >= f.Start && i < f.End
}

// Renderer draws the entry list on a single terminal line.
type Renderer struct {
	MinWidth     int
	Ellipsis     string
	HighlightOn  string
	HighlightOff string
}

// NewRenderer returns a renderer with the default width limit, ellipsis
// and a black on white highlight.
func NewRenderer() *Renderer {
	fg, _ := Foreground("black")
	bg, _ := Background("white")
	return &Renderer{
		MinWidth:     DefaultMinWidth,
		Ellipsis:     DefaultEllipsis,
		HighlightOn:  fg + bg,
		HighlightOff: DefaultFG + DefaultBG,
	}
}

func (r *Renderer) minWidth() int {
	if r.MinWidth <= 0 {
		return DefaultMinWidth
	}
	return r.MinWidth
}

// Layout computes the frame for the given selection and terminal width.
// It returns false when there is nothing to draw.
func (r *Renderer) Layout(list Entries, selected, columns int) (Frame, bool) {
	n := list.Len()
	if n == 0 || columns < r.minWidth() {
		return Frame{}, false
	}
	selected = clamp(selected, 0, n-1)
	available := columns - 2*indicatorWidth

	if len(list.At(selected))+entryPadding > available {
		return Frame{
			Start:     selected,
			End:       selected + 1,
			Selected:  selected,
			Overflow:  true,
			MoreLeft:  selected > 0,
			MoreRight: selected < n-1,
		}, true
	}

	// Walk pages from the first entry until the page holding the
	// selection is found. A page breaks before any entry that would
	// overflow the running total.
	start, used := 0, 0
	for i := 0; i <= selected; i++ {
		w := len(list.At(i)) + entryPadding
		if used+w > available && i != start {
			start, used = i, 0
		}
		used += w
	}

	end, used := start, 0
	for end < n {
		w := len(list.At(end)) + entryPadding
		if used+w > available {
			break
		}
		used += w
		end++
	}

	return Frame{
		Start:     start,
		End:       end,
		Selected:  selected,
		MoreLeft:  start > 0,
		MoreRight: end < n,
	}, true
}

// Line returns the visible content for one render without the leading
// line reset. It is empty when there is nothing to draw.
func (r *Renderer) Line(list Entries, selected, columns int) string {
	f, ok := r.Layout(list, selected, columns)
	if !ok {
		return ""
	}

	var b strings.Builder
	if f.MoreLeft {
		b.WriteString(indicatorLeft)
	} else {
		b.WriteString(indicatorBlank)
	}

	if f.Overflow {
		available := columns - 2*indicatorWidth
		keep := available - 1 - len(r.Ellipsis)
		entry := list.At(f.Selected)
		if keep < 0 {
			keep = 0
		}
		if keep > len(entry) {
			keep = len(entry)
		}
		b.WriteString(r.HighlightOn)
		b.WriteByte(' ')
		b.WriteString(entry[:keep])
		b.WriteString(r.Ellipsis)
		b.WriteString(r.HighlightOff)
	} else {
		for i := f.Start; i < f.End; i++ {
			if i == f.Selected {
				b.WriteString(r.HighlightOn)
			}
			b.WriteByte(' ')
			b.WriteString(list.At(i))
			b.WriteByte(' ')
			if i == f.Selected {
				b.WriteString(r.HighlightOff)
			}
		}
	}

	if f.MoreRight {
		b.WriteString(indicatorRight)
	} else {
		b.WriteString(indicatorBlank)
	}
	return b.String()
}

// Render erases the current line and draws the entries into w with a
// single write. Nothing is written when there is nothing to draw.
func (r *Renderer) Render(w io.Writer, list Entries, selected, columns int) error {
	line := r.Line(list, selected, columns)
	if line == "" {
		return nil
	}
	_, err := io.WriteString(w, EraseLine+ColumnOne+line)
	return err
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
