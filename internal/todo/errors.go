package todo

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidArgument is matched by errors.Is for every rejected argument.
var ErrInvalidArgument = errors.New("invalid argument")

// InvalidStatusError reports a status outside the status set.
type InvalidStatusError struct {
	Value string
}

func (e *InvalidStatusError) Error() string {
	valid := make([]string, 0, 3)
	for _, s := range Statuses() {
		valid = append(valid, string(s))
	}
	return fmt.Sprintf("invalid status: %s, valid status: %s", e.Value, strings.Join(valid, "/"))
}

// Is makes errors.Is(err, ErrInvalidArgument) true.
func (e *InvalidStatusError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // dot path to the offending value
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
