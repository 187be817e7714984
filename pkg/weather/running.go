package weather

import "golang.org/x/exp/constraints"

type number interface {
	constraints.Integer | constraints.Float
}

// running accumulates min, max and sum without keeping the samples.
type running[T number] struct {
	min, max, sum T
	count         int
}

func (r *running[T]) add(v T) {
	if r.count == 0 || v < r.min {
		r.min = v
	}
	if r.count == 0 || v > r.max {
		r.max = v
	}
	r.sum += v
	r.count++
}

func (r *running[T]) average() float64 {
	if r.count == 0 {
		return 0
	}
	return float64(r.sum) / float64(r.count)
}
