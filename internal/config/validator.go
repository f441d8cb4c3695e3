package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/moasq/smenu/internal/logging"
	"github.com/moasq/smenu/internal/terminal"
)

// ValidationError describes one invalid configuration field.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors joins several validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// pagerColumns are the columns taken by the two pager indicators.
const pagerColumns = 6

// Validate checks the configuration and returns every problem found.
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError

	if c.Ellipsis == "" {
		errs = append(errs, ValidationError{Field: "ellipsis", Value: c.Ellipsis, Message: "must not be empty"})
	}
	// A truncated entry needs one padding column plus the ellipsis.
	if least := pagerColumns + 1 + len(c.Ellipsis); c.MinWidth < least {
		errs = append(errs, ValidationError{
			Field:   "min_width",
			Value:   c.MinWidth,
			Message: fmt.Sprintf("must be at least %d", least),
		})
	}
	if c.Device == "" {
		errs = append(errs, ValidationError{Field: "device", Value: c.Device, Message: "must not be empty"})
	}
	if !terminal.IsColor(c.Highlight.Foreground) {
		errs = append(errs, ValidationError{
			Field:   "highlight.foreground",
			Value:   c.Highlight.Foreground,
			Message: "must be one of " + strings.Join(terminal.ColorNames(), ", "),
		})
	}
	if !terminal.IsColor(c.Highlight.Background) {
		errs = append(errs, ValidationError{
			Field:   "highlight.background",
			Value:   c.Highlight.Background,
			Message: "must be one of " + strings.Join(terminal.ColorNames(), ", "),
		})
	}
	if !slices.Contains(logging.ValidLevels(), strings.ToLower(c.Log.Level)) {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Value:   c.Log.Level,
			Message: "must be one of " + strings.Join(logging.ValidLevels(), ", "),
		})
	}
	return errs
}
