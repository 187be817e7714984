// Package subject holds the generic observable state shared by every feed:
// a value plus an ordered list of observers that receive each new value.
package subject

import (
	"errors"
	"sync"
	"time"

	"github.com/selectdb/feed_observer/pkg/utils"
	"github.com/selectdb/feed_observer/pkg/xerror"
	"github.com/selectdb/feed_observer/pkg/xmetrics"

	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"
)

type Option[T any] func(*Subject[T])

// WithValidator rejects values in SetState before they are stored.
func WithValidator[T any](validate func(T) error) Option[T] {
	return func(s *Subject[T]) {
		s.validate = validate
	}
}

type entry[T any] struct {
	handle   utils.Handle
	observer utils.Observer[T]
}

// Subject keeps observer references without owning them: detaching only
// drops the reference, the observer itself is untouched.
//
// Observers run outside the lock on a copy of the list taken when the pass
// starts, so an observer may Attach or Detach during its Update; the change
// is seen by the next pass only.
type Subject[T any] struct {
	name     string
	validate func(T) error

	mu      sync.RWMutex
	state   T
	entries []entry[T]
}

var _ utils.Subject[int] = (*Subject[int])(nil)

func New[T any](name string, initial T, opts ...Option[T]) *Subject[T] {
	s := &Subject[T]{
		name:  name,
		state: initial,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Subject[T]) Name() string {
	return s.name
}

func (s *Subject[T]) String() string {
	return s.name
}

func (s *Subject[T]) State() T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state
}

func (s *Subject[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}

// Observers returns the attached observers in attachment order.
func (s *Subject[T]) Observers() []utils.Observer[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	observers := make([]utils.Observer[T], 0, len(s.entries))
	for _, e := range s.entries {
		observers = append(observers, e.observer)
	}
	return observers
}

func (s *Subject[T]) indexOf(observer utils.Observer[T]) int {
	return slices.IndexFunc(s.entries, func(e entry[T]) bool {
		return utils.SameObserver(e.observer, observer)
	})
}

// Attach appends observer unless it is already attached, in which case the
// existing handle is returned. A nil observer is ignored.
func (s *Subject[T]) Attach(observer utils.Observer[T]) utils.Handle {
	if observer == nil {
		return ""
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(observer); i >= 0 {
		log.Debugf("observer %s already attached to %s", utils.ObserverName(observer), s.name)
		return s.entries[i].handle
	}

	handle := utils.NewHandle()
	s.entries = append(s.entries, entry[T]{handle: handle, observer: observer})
	log.Debugf("attach observer %s to %s, handle: %s", utils.ObserverName(observer), s.name, handle)
	xmetrics.ObserverNum(s.name, len(s.entries))

	return handle
}

// Detach removes observer if attached, otherwise it does nothing.
func (s *Subject[T]) Detach(observer utils.Observer[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(observer); i >= 0 {
		s.removeAt(i)
	}
}

// DetachHandle removes the observer attached under handle, if any.
func (s *Subject[T]) DetachHandle(handle utils.Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.entries, func(e entry[T]) bool {
		return e.handle == handle
	})
	if i >= 0 {
		s.removeAt(i)
	}
}

func (s *Subject[T]) removeAt(i int) {
	removed := s.entries[i]
	s.entries = slices.Delete(s.entries, i, i+1)
	log.Debugf("detach observer %s from %s, handle: %s", utils.ObserverName(removed.observer), s.name, removed.handle)
	xmetrics.ObserverNum(s.name, len(s.entries))
}

// SetState validates value, stores it and runs exactly one notification pass,
// even if value equals the current state.
func (s *Subject[T]) SetState(value T) error {
	return s.Mutate(func(T) T {
		return value
	})
}

// Mutate derives the next state from the current one while holding the lock,
// then validates, stores and notifies like SetState. next must not call back
// into the subject.
func (s *Subject[T]) Mutate(next func(current T) T) error {
	value, entries, err := s.advance(next)
	if err != nil {
		log.Infof("reject state of %s: %v", s.name, err)
		xmetrics.StateRejected(s.name)
		return xerror.Wrap(&InvalidStateError{Subject: s.name, Err: err}, xerror.State, "set state rejected")
	}

	return s.notify(value, entries)
}

// advance stores the next valid state and returns it with the observers to
// notify. A panic in next or in the validator leaves the state untouched.
func (s *Subject[T]) advance(next func(T) T) (T, []entry[T], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value := next(s.state)
	if s.validate != nil {
		if err := s.validate(value); err != nil {
			return value, nil, err
		}
	}
	s.state = value
	return value, slices.Clone(s.entries), nil
}

// Notify pushes the current state to every attached observer.
func (s *Subject[T]) Notify() error {
	s.mu.RLock()
	state := s.state
	entries := slices.Clone(s.entries)
	s.mu.RUnlock()

	return s.notify(state, entries)
}

// notify delivers state to entries in order. A failing observer does not stop
// the pass, every failure is reported together once all observers ran.
func (s *Subject[T]) notify(state T, entries []entry[T]) error {
	start := time.Now()

	var failures []*ObserverFailure
	utils.WithSubject(s.name, func() {
		log.Tracef("notify %d observers", len(entries))

		for i, e := range entries {
			err := deliver(e.observer, state)
			if err == nil {
				continue
			}

			name := utils.ObserverName(e.observer)
			log.Warnf("observer %s failed: %+v", name, err)
			var xerr *xerror.XError
			if errors.As(err, &xerr) {
				xmetrics.ObserverFailed(s.name, xerr)
			}

			failures = append(failures, &ObserverFailure{
				Position: i,
				Handle:   e.handle,
				Observer: name,
				Err:      err,
			})
		}
	})
	xmetrics.Notified(s.name, len(entries), start)

	if len(failures) == 0 {
		return nil
	}
	return newUpdateFailures(s.name, len(entries), failures)
}

func deliver[T any](observer utils.Observer[T], state T) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = xerror.Panicf(xerror.Observer, "observer panicked: %v", r)
		}
	}()

	if updateErr := observer.Update(state); updateErr != nil {
		return xerror.Wrap(updateErr, xerror.Observer, "update failed")
	}
	return nil
}
