package stock

import (
	"fmt"
	"io"
	"math"

	"github.com/selectdb/feed_observer/pkg/config"
)

// MobileApp pushes every quote to one user.
type MobileApp struct {
	userID string
	out    io.Writer
}

func NewMobileApp(userID string, out io.Writer) *MobileApp {
	return &MobileApp{
		userID: userID,
		out:    out,
	}
}

func (m *MobileApp) Name() string {
	return fmt.Sprintf("MobileApp(%s)", m.userID)
}

func (m *MobileApp) Update(q Quote) error {
	direction := "flat"
	if q.Change > 0 {
		direction = "up"
	} else if q.Change < 0 {
		direction = "down"
	}

	_, err := fmt.Fprintf(m.out, "Mobile app (%s): %s %.2f (%+.2f%%) %s\n",
		m.userID, q.Symbol, q.Price, q.ChangePercent(), direction)
	return err
}

// EmailNotifier only mails moves larger than its threshold.
type EmailNotifier struct {
	email     string
	threshold float64
	out       io.Writer
}

func NewEmailNotifier(email string, threshold float64, out io.Writer) *EmailNotifier {
	return &EmailNotifier{
		email:     email,
		threshold: threshold,
		out:       out,
	}
}

func NewConfiguredEmailNotifier(email string, cfg config.StockConfig, out io.Writer) *EmailNotifier {
	return NewEmailNotifier(email, cfg.EmailThreshold, out)
}

func (e *EmailNotifier) Name() string {
	return fmt.Sprintf("EmailNotifier(%s)", e.email)
}

func (e *EmailNotifier) Update(q Quote) error {
	if math.Abs(q.Change) <= e.threshold {
		return nil
	}

	direction := "decreased"
	if q.Change > 0 {
		direction = "increased"
	}
	_, err := fmt.Fprintf(e.out, "Email to %s: %s %s by %.2f\n", e.email, q.Symbol, direction, math.Abs(q.Change))
	return err
}
