package folio

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// QuoteFetcher provides current market quotes for a batch of tickers.
// Implementations degrade per ticker: a symbol that cannot be priced maps to
// an unavailable quote instead of failing the batch.
type QuoteFetcher interface {
	FetchQuotes(tickers []string) (map[string]Quote, error)
}

// Sender delivers one notification to a set of blind-copied recipients.
type Sender interface {
	Send(subject, body string, bcc []string) error
}

// AlertBook is the persisted alert store as seen by the evaluator.
// Mutations address single records; the store serializes individual
// operations but offers no multi-step transactions.
type AlertBook interface {
	List() ([]Alert, error)
	MarkSent(id string, on Date) error
	Touch(id string, on Date) error
}

// Evaluator runs alert evaluation passes. It is safe to run concurrently
// with foreground edits: re-evaluating a Sent alert is a no-op, and a pass
// computes against whatever snapshot List returns.
type Evaluator struct {
	Book   AlertBook
	Quotes QuoteFetcher
	Mail   Sender
	Log    zerolog.Logger
}

// Name identifies the evaluator to the scheduler.
func (e *Evaluator) Name() string { return "alert-evaluator" }

// Run performs one evaluation pass, for scheduler wiring.
func (e *Evaluator) Run() error {
	_, err := e.Pass()
	return err
}

// Pass evaluates every Active alert against a fresh quote snapshot and
// returns how many notifications were sent.
//
// An alert transitions Active to Sent only after its notification was
// delivered; a failed send leaves it Active so the next pass retries.
// Alerts already Sent are skipped entirely, their LastChecked untouched.
func (e *Evaluator) Pass() (sent int, err error) {
	alerts, err := e.Book.List()
	if err != nil {
		return 0, fmt.Errorf("could not list alerts: %w", err)
	}

	var tickers []string
	seen := make(map[string]struct{})
	for _, a := range alerts {
		if a.Status != StatusActive {
			continue
		}
		if _, ok := seen[a.Ticker]; !ok {
			seen[a.Ticker] = struct{}{}
			tickers = append(tickers, a.Ticker)
		}
	}
	if len(tickers) == 0 {
		e.Log.Debug().Msg("no active alerts")
		return 0, nil
	}

	quotes, err := e.Quotes.FetchQuotes(tickers)
	if err != nil {
		return 0, fmt.Errorf("could not fetch quotes: %w", err)
	}

	today := Today()
	for _, a := range alerts {
		if a.Status != StatusActive {
			continue
		}

		q, ok := quotes[a.Ticker]
		if !ok || !q.Known {
			e.Log.Warn().Str("ticker", a.Ticker).Msg("no quote, alert skipped")
			continue
		}

		if err := e.Book.Touch(a.ID, today); err != nil {
			e.Log.Error().Err(err).Str("id", a.ID).Msg("could not update last-checked")
		}

		if !a.Hit(q.Price) {
			continue
		}

		subject, body := composeAlertMail(a, q)
		recipients := a.Recipients()
		if err := e.Mail.Send(subject, body, recipients); err != nil {
			// Leave the alert Active: the next pass retries the delivery.
			e.Log.Error().Err(err).Str("ticker", a.Ticker).Msg("alert notification failed")
			continue
		}
		if err := e.Book.MarkSent(a.ID, today); err != nil {
			e.Log.Error().Err(err).Str("id", a.ID).Msg("could not mark alert sent")
			continue
		}
		sent++
		e.Log.Info().
			Str("ticker", a.Ticker).
			Str("target", a.Target.String()).
			Int("recipients", len(recipients)).
			Msg("alert notification sent")
	}
	return sent, nil
}

func composeAlertMail(a Alert, q Quote) (subject, body string) {
	subject = fmt.Sprintf("Price Alert: %s %s", a.Ticker, USD(q.Price))

	var b strings.Builder
	fmt.Fprintf(&b, "Portfolio price alert triggered.\n\n")
	fmt.Fprintf(&b, "Ticker: %s\n", a.Ticker)
	fmt.Fprintf(&b, "Current Price: %s\n", USD(q.Price))
	fmt.Fprintf(&b, "Target Price: %s\n", USD(a.Target))
	fmt.Fprintf(&b, "Condition: %s\n", a.Direction)
	if a.Note != "" {
		fmt.Fprintf(&b, "Note: %s\n", a.Note)
	}
	fmt.Fprintf(&b, "\nThe price is now %s your target.\n", strings.ToLower(string(a.Direction)))
	fmt.Fprintf(&b, "Time: %s\n", time.Now().Format(time.DateTime))
	return subject, b.String()
}
