package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type printer struct {
	prefix string
}

func (p *printer) Update(string) error { return nil }

type namedPrinter struct{}

func (namedPrinter) Update(string) error { return nil }
func (namedPrinter) Name() string        { return "named" }

func TestObserverFunc(t *testing.T) {
	var got []int
	errStop := errors.New("stop")
	obs := ObserverFunc[int](func(v int) error {
		got = append(got, v)
		if v < 0 {
			return errStop
		}
		return nil
	})

	assert.NoError(t, obs.Update(1))
	assert.ErrorIs(t, obs.Update(-1), errStop)
	assert.Equal(t, []int{1, -1}, got)
}

func TestSameObserver(t *testing.T) {
	a := &printer{prefix: "a"}
	b := &printer{prefix: "a"}
	f := ObserverFunc[string](func(string) error { return nil })

	assert.True(t, SameObserver[string](a, a))
	assert.False(t, SameObserver[string](a, b))
	assert.False(t, SameObserver[string](a, namedPrinter{}))
	assert.True(t, SameObserver[string](namedPrinter{}, namedPrinter{}))
	assert.True(t, SameObserver[string](f, f))
	assert.False(t, SameObserver[string](nil, a))
	assert.False(t, SameObserver[string](nil, nil))
}

func TestSameObserverFunc(t *testing.T) {
	counter := func() ObserverFunc[int] {
		var n int
		return func(int) error {
			n++
			return nil
		}
	}
	f := counter()
	g := counter()
	copied := f

	assert.True(t, SameObserver[int](f, copied))
	assert.False(t, SameObserver[int](f, g))
}

type boxed struct {
	inner any
}

func (boxed) Update(int) error { return nil }

type listed struct {
	items []int
}

func (listed) Update(int) error { return nil }

func TestSameObserverUncomparableValue(t *testing.T) {
	a := boxed{inner: []int{1}}
	b := boxed{inner: 1}

	assert.NotPanics(t, func() {
		assert.False(t, SameObserver[int](a, a))
	})
	assert.True(t, SameObserver[int](b, b))
	assert.False(t, SameObserver[int](a, b))
	assert.False(t, SameObserver[int](listed{}, listed{}))

	m := observerMap{}
	assert.True(t, SameObserver[int](m, m))
	assert.False(t, SameObserver[int](m, observerMap{}))
}

type observerMap map[string]int

func (m observerMap) Update(v int) error {
	m["last"] = v
	return nil
}

func TestObserverName(t *testing.T) {
	assert.Equal(t, "printer", ObserverName[string](&printer{}))
	assert.Equal(t, "named", ObserverName[string](namedPrinter{}))
	assert.Equal(t, "<nil>", ObserverName[string](nil))
}

func TestNewHandle(t *testing.T) {
	seen := make(map[Handle]struct{})
	for i := 0; i < 100; i++ {
		h := NewHandle()
		assert.NotEmpty(t, h.String())
		_, dup := seen[h]
		assert.False(t, dup)
		seen[h] = struct{}{}
	}
}
