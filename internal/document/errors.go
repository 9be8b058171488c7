package document

import (
	"errors"
	"fmt"
)

// UnreadableInputError reports an input file that cannot be decoded into
// page images or native text. It is the only error the pipeline treats as
// fatal; everything downstream degrades into warnings instead.
type UnreadableInputError struct {
	Path    string
	Message string
	Cause   error
}

func (e *UnreadableInputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("unreadable input %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("unreadable input %s: %s", e.Path, e.Message)
}

func (e *UnreadableInputError) Unwrap() error { return e.Cause }

// IsUnreadableInput reports whether err wraps an UnreadableInputError.
func IsUnreadableInput(err error) bool {
	var target *UnreadableInputError
	return errors.As(err, &target)
}
