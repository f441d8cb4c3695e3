package terminal

import (
	"fmt"
	"sort"
	"strings"
)

// CSI is the control sequence introducer.
const CSI = "\033["

// Control sequences used while the selector owns the line.
const (
	EraseLine    = CSI + "2K"
	ColumnOne    = CSI + "1G"
	HideCursor   = CSI + "?25l"
	ShowCursor   = CSI + "?25h"
	DefaultFG    = CSI + "39m"
	DefaultBG    = CSI + "49m"
	ResetStyle   = CSI + "0m"
	ansiFGOffset = 30
	ansiBGOffset = 40
)

// colorCodes maps color names to their SGR foreground code. Background
// codes are the foreground code plus ten.
var colorCodes = map[string]int{
	"black":          30,
	"red":            31,
	"green":          32,
	"yellow":         33,
	"blue":           34,
	"magenta":        35,
	"cyan":           36,
	"white":          37,
	"default":        39,
	"bright-black":   90,
	"bright-red":     91,
	"bright-green":   92,
	"bright-yellow":  93,
	"bright-blue":    94,
	"bright-magenta": 95,
	"bright-cyan":    96,
	"bright-white":   97,
}

// ColorNames returns the accepted color names in sorted order.
func ColorNames() []string {
	names := make([]string, 0, len(colorCodes))
	for name := range colorCodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsColor reports whether name is a known color.
func IsColor(name string) bool {
	_, ok := colorCodes[strings.ToLower(name)]
	return ok
}

// Foreground returns the SGR sequence selecting name as foreground color.
func Foreground(name string) (string, error) {
	code, ok := colorCodes[strings.ToLower(name)]
	if !ok {
		return "", fmt.Errorf("unknown color %q", name)
	}
	return fmt.Sprintf("%s%dm", CSI, code), nil
}

// Background returns the SGR sequence selecting name as background color.
func Background(name string) (string, error) {
	code, ok := colorCodes[strings.ToLower(name)]
	if !ok {
		return "", fmt.Errorf("unknown color %q", name)
	}
	return fmt.Sprintf("%s%dm", CSI, code-ansiFGOffset+ansiBGOffset), nil
}
