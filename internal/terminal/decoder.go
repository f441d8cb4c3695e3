package terminal

// Command is a logical action decoded from keyboard input.
type Command int

const (
	// None means the byte did not complete a command.
	None Command = iota
	MoveNext
	MovePrev
	Confirm
	Cancel
)

func (c Command) String() string {
	switch c {
	case MoveNext:
		return "next"
	case MovePrev:
		return "prev"
	case Confirm:
		return "confirm"
	case Cancel:
		return "cancel"
	default:
		return "none"
	}
}

// Key bytes recognized outside escape sequences.
const (
	keyEscape = 0x1b
	keyCtrlD  = 0x04
	keyEnter  = 0x0a
	keyCtrlN  = 0x0e
	keyCtrlP  = 0x10
)

type decoderState int

const (
	stateIdle decoderState = iota
	stateEscape
	stateBracket
)

// Decoder turns single input bytes into commands. Arrow keys arrive as
// three byte CSI sequences; up and left both map to MovePrev, down and
// right to MoveNext. Unsupported or partial sequences are dropped.
//
// The zero value is ready to use.
type Decoder struct {
	state decoderState
}

// Feed consumes one byte and returns the command it completes, or None.
func (d *Decoder) Feed(b byte) Command {
	switch d.state {
	case stateEscape:
		if b == '[' {
			d.state = stateBracket
			return None
		}
		d.state = stateIdle
		return None

	case stateBracket:
		d.state = stateIdle
		switch b {
		case 'B', 'C':
			return MoveNext
		case 'A', 'D':
			return MovePrev
		}
		return None
	}

	switch b {
	case keyEscape:
		d.state = stateEscape
	case keyCtrlD:
		return Cancel
	case keyEnter:
		return Confirm
	case keyCtrlN:
		return MoveNext
	case keyCtrlP:
		return MovePrev
	}
	return None
}

// Pending reports whether the decoder is in the middle of an escape sequence.
func (d *Decoder) Pending() bool {
	return d.state != stateIdle
}

// Reset drops any partially decoded sequence.
func (d *Decoder) Reset() {
	d.state = stateIdle
}
