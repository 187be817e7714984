package subject

import (
	"errors"
	"fmt"

	"github.com/selectdb/feed_observer/pkg/utils"
	"go.uber.org/multierr"
)

var (
	ErrInvalidState   = errors.New("invalid state value")
	ErrObserverUpdate = errors.New("observer update failed")
)

// InvalidStateError is returned by SetState when the validator rejects a value.
// The state is left untouched and no observer is notified.
type InvalidStateError struct {
	Subject string
	Err     error
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("subject %s: %s: %v", e.Subject, ErrInvalidState, e.Err)
}

func (e *InvalidStateError) Unwrap() error {
	return e.Err
}

func (e *InvalidStateError) Is(target error) bool {
	return target == ErrInvalidState
}

// ObserverFailure describes one observer that failed during a pass.
type ObserverFailure struct {
	Position int // position in the attachment order of that pass
	Handle   utils.Handle
	Observer string
	Err      error
}

func (f *ObserverFailure) Error() string {
	return fmt.Sprintf("observer #%d %s: %v", f.Position, f.Observer, f.Err)
}

func (f *ObserverFailure) Unwrap() error {
	return f.Err
}

func (f *ObserverFailure) Is(target error) bool {
	return target == ErrObserverUpdate
}

// UpdateFailures aggregates every observer failure of one notification pass.
// It is only returned after all observers of the pass were invoked.
type UpdateFailures struct {
	Subject   string
	Observers int
	Failures  []*ObserverFailure
	err       error
}

func newUpdateFailures(subject string, observers int, failures []*ObserverFailure) *UpdateFailures {
	var err error
	for _, f := range failures {
		err = multierr.Append(err, f)
	}

	return &UpdateFailures{
		Subject:   subject,
		Observers: observers,
		Failures:  failures,
		err:       err,
	}
}

func (u *UpdateFailures) Error() string {
	return fmt.Sprintf("subject %s: %d of %d observers failed: %v", u.Subject, len(u.Failures), u.Observers, u.err)
}

func (u *UpdateFailures) Unwrap() []error {
	return multierr.Errors(u.err)
}

// AsUpdateFailures returns the per-observer failures carried by err, if any.
func AsUpdateFailures(err error) ([]*ObserverFailure, bool) {
	var failures *UpdateFailures
	if !errors.As(err, &failures) {
		return nil, false
	}
	return failures.Failures, true
}
