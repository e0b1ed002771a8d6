package trait

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

var (
	// ErrIncompleteDispatch is the sentinel wrapped by every per-method
	// failure inside an IncompleteError.
	ErrIncompleteDispatch = errors.New("incomplete dispatch")

	// ErrUnknownMethod is returned when an implementation block names a
	// method the trait never declared.
	ErrUnknownMethod = errors.New("method does not support dispatching")

	// ErrFinalized is returned when a trait definition is modified after
	// finalization.
	ErrFinalized = errors.New("trait already finalized")
)

// IncompleteError reports every declared dispatch method that has no
// reachable implementation at finalization time.
type IncompleteError struct {
	Trait   string
	Missing []string

	err error
}

func newIncompleteError(trait string, missing []string) *IncompleteError {
	var errs []error
	for _, m := range missing {
		errs = append(errs, fmt.Errorf("%w: %s.%s has no reachable implementation", ErrIncompleteDispatch, trait, m))
	}
	return &IncompleteError{
		Trait:   trait,
		Missing: missing,
		err:     multierr.Combine(errs...),
	}
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("trait %s is incomplete: missing %s", e.Trait, strings.Join(e.Missing, ", "))
}

func (e *IncompleteError) Unwrap() error { return e.err }
