package observers

import (
	"github.com/selectdb/feed_observer/pkg/utils"
	"go.uber.org/multierr"
)

// Multi fans one update out to several observers, attached as a single entry.
// Every observer runs even if an earlier one failed.
type Multi[T any] struct {
	name      string
	observers []utils.Observer[T]
}

// NewMulti skips nil observers.
func NewMulti[T any](name string, observers ...utils.Observer[T]) *Multi[T] {
	filtered := make([]utils.Observer[T], 0, len(observers))
	for _, o := range observers {
		if o != nil {
			filtered = append(filtered, o)
		}
	}
	return &Multi[T]{name: name, observers: filtered}
}

func (m *Multi[T]) Name() string {
	return m.name
}

func (m *Multi[T]) Update(state T) error {
	var err error
	for _, o := range m.observers {
		err = multierr.Append(err, o.Update(state))
	}
	return err
}
