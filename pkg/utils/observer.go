package utils

import (
	"reflect"
	"unsafe"

	"github.com/google/uuid"
)

//go:generate mockgen -source=observer.go -destination=mocks/mock_observer.go -package=mocks

// Observer receives a snapshot of the subject state on every notification
// pass. The snapshot must be treated as read-only.
type Observer[T any] interface {
	Update(T) error
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc[T any] func(T) error

func (f ObserverFunc[T]) Update(state T) error {
	return f(state)
}

// Handle identifies one attachment of an observer to a subject. It does not
// own the observer.
type Handle string

func NewHandle() Handle {
	return Handle(uuid.NewString())
}

func (h Handle) String() string {
	return string(h)
}

type Subject[T any] interface {
	Attach(Observer[T]) Handle
	Detach(Observer[T])
	Notify() error
}

// SameObserver reports whether a and b refer to the same observer.
//
// Funcs are the same when they are copies of one func value, maps when they
// share storage. Other non comparable observers, and comparable ones whose
// interface fields hold non comparable values, are never the same and can only
// be detached by handle.
func SameObserver[T any](a, b Observer[T]) (same bool) {
	if a == nil || b == nil {
		return false
	}

	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) {
		return false
	}

	switch ta.Kind() {
	case reflect.Func:
		return funcValue(a) == funcValue(b)
	case reflect.Map:
		return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
	}
	if !ta.Comparable() {
		return false
	}

	// a struct with an interface field may still hold a slice at runtime
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return a == b
}

// funcValue returns the closure pointer boxed in the interface data word.
// reflect.Value.Pointer only yields the code pointer, which every closure of
// the same literal shares.
func funcValue(observer any) unsafe.Pointer {
	return (*[2]unsafe.Pointer)(unsafe.Pointer(&observer))[1]
}

// ObserverName returns a short printable name for observer, used in logs and errors.
func ObserverName[T any](observer Observer[T]) string {
	if observer == nil {
		return "<nil>"
	}
	if named, ok := observer.(interface{ Name() string }); ok {
		return named.Name()
	}

	t := reflect.TypeOf(observer)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}
