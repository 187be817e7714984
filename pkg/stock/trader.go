package stock

import (
	"fmt"
	"io"
	"math"

	"github.com/selectdb/feed_observer/pkg/config"
)

// Trader signals BUY or SELL when a move reaches its threshold.
type Trader struct {
	name      string
	threshold float64 // fraction, 0.05 means 5%
	out       io.Writer
}

func NewTrader(name string, threshold float64, out io.Writer) *Trader {
	return &Trader{
		name:      name,
		threshold: threshold,
		out:       out,
	}
}

// NewConfiguredTrader uses the configured trader threshold.
func NewConfiguredTrader(name string, cfg config.StockConfig, out io.Writer) *Trader {
	return NewTrader(name, cfg.TraderThreshold, out)
}

func (t *Trader) Name() string {
	return fmt.Sprintf("Trader(%s)", t.name)
}

func (t *Trader) Update(q Quote) error {
	changePercent := q.ChangePercent()
	if q.Change == 0 || math.Abs(changePercent) < t.threshold*100 {
		return nil
	}

	signal := "SELL"
	if q.Change > 0 {
		signal = "BUY"
	}
	_, err := fmt.Fprintf(t.out, "Trader %s: %s signal for %s, change %+.2f%% (%+.2f)\n",
		t.name, signal, q.Symbol, changePercent, q.Change)
	return err
}
