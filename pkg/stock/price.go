package stock

import (
	"fmt"
	"math"
	"time"

	"github.com/selectdb/feed_observer/pkg/subject"
	"github.com/selectdb/feed_observer/pkg/utils"
)

// Quote is the snapshot pushed to stock observers.
type Quote struct {
	Symbol        string    `json:"symbol"`
	Price         float64   `json:"price"`
	PreviousPrice float64   `json:"previous_price"`
	Change        float64   `json:"change"`
	Time          time.Time `json:"time"`
}

// ChangePercent is the change relative to the previous price, 0 when there
// is no positive previous price.
func (q Quote) ChangePercent() float64 {
	if q.PreviousPrice <= 0 {
		return 0
	}
	return q.Change / q.PreviousPrice * 100
}

func (q Quote) String() string {
	return fmt.Sprintf("%s %.2f (%+.2f)", q.Symbol, q.Price, q.Change)
}

func validateQuote(q Quote) error {
	if math.IsNaN(q.Price) || math.IsInf(q.Price, 0) {
		return fmt.Errorf("price of %s is not a finite number", q.Symbol)
	}
	if q.Price < 0 {
		return fmt.Errorf("price %.2f of %s is negative", q.Price, q.Symbol)
	}
	return nil
}

type StockPrice struct {
	symbol  string
	subject *subject.Subject[Quote]
}

func NewStockPrice(symbol string, initialPrice float64) (*StockPrice, error) {
	initial := Quote{
		Symbol:        symbol,
		Price:         initialPrice,
		PreviousPrice: initialPrice,
		Time:          time.Now(),
	}
	if err := validateQuote(initial); err != nil {
		return nil, err
	}

	return &StockPrice{
		symbol:  symbol,
		subject: subject.New(symbol, initial, subject.WithValidator(validateQuote)),
	}, nil
}

func (s *StockPrice) Symbol() string {
	return s.symbol
}

func (s *StockPrice) Price() float64 {
	return s.subject.State().Price
}

func (s *StockPrice) Quote() Quote {
	return s.subject.State()
}

func (s *StockPrice) Attach(observer utils.Observer[Quote]) utils.Handle {
	return s.subject.Attach(observer)
}

func (s *StockPrice) Detach(observer utils.Observer[Quote]) {
	s.subject.Detach(observer)
}

func (s *StockPrice) DetachHandle(handle utils.Handle) {
	s.subject.DetachHandle(handle)
}

func (s *StockPrice) Notify() error {
	return s.subject.Notify()
}

func (s *StockPrice) Len() int {
	return s.subject.Len()
}

// SetPrice moves the price and notifies every observer, also when the price
// did not change.
func (s *StockPrice) SetPrice(price float64) error {
	return s.subject.Mutate(func(current Quote) Quote {
		return Quote{
			Symbol:        s.symbol,
			Price:         price,
			PreviousPrice: current.Price,
			Change:        price - current.Price,
			Time:          time.Now(),
		}
	})
}
