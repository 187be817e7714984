package stock

import (
	"fmt"
	"io"
	"sync"
)

const trendPeriods = 3

// Analyst keeps the price history of every symbol it watches and reports
// the trend over the last three prices.
type Analyst struct {
	name string
	out  io.Writer

	mu      sync.Mutex
	history map[string][]float64
}

func NewAnalyst(name string, out io.Writer) *Analyst {
	return &Analyst{
		name:    name,
		out:     out,
		history: make(map[string][]float64),
	}
}

func (a *Analyst) Name() string {
	return fmt.Sprintf("Analyst(%s)", a.name)
}

// History returns a copy of the prices seen for symbol, oldest first.
func (a *Analyst) History(symbol string) []float64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	return append([]float64(nil), a.history[symbol]...)
}

func (a *Analyst) Update(q Quote) error {
	a.mu.Lock()
	history := append(a.history[q.Symbol], q.Price)
	a.history[q.Symbol] = history
	a.mu.Unlock()

	if len(history) < trendPeriods {
		return nil
	}

	last := history[len(history)-trendPeriods:]
	var sum float64
	for _, p := range last {
		sum += p
	}

	_, err := fmt.Fprintf(a.out, "Analyst %s: %s detected for %s, current %.2f, %d-period avg %.2f\n",
		a.name, trend(last), q.Symbol, q.Price, trendPeriods, sum/trendPeriods)
	return err
}

func trend(prices []float64) string {
	up, down := true, true
	for i := 1; i < len(prices); i++ {
		if prices[i] <= prices[i-1] {
			up = false
		}
		if prices[i] >= prices[i-1] {
			down = false
		}
	}

	switch {
	case up:
		return "UPTREND"
	case down:
		return "DOWNTREND"
	default:
		return "SIDEWAYS"
	}
}
