package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/foliokit/folio"
	"github.com/foliokit/folio/eodhd"
	"github.com/foliokit/folio/mail"
	"github.com/foliokit/folio/renderer"
	"github.com/foliokit/folio/store"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// withAlertStore opens the database and runs fn against the alert store.
func withAlertStore(fn func(*store.AlertStore) error) subcommands.ExitStatus {
	db, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer db.Close()

	as, err := store.NewAlertStore(db)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := fn(as); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// alertAddCmd creates a price alert.
type alertAddCmd struct {
	note string
}

func (*alertAddCmd) Name() string     { return "alert-add" }
func (*alertAddCmd) Synopsis() string { return "create a price alert" }
func (*alertAddCmd) Usage() string {
	return `alert-add [-note <text>] <ticker> <above|below> <price> <email>:
  Create an alert that fires when <ticker> trades at or beyond <price>.
  <email> becomes the first subscriber.
`
}
func (c *alertAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.note, "note", "", "free text attached to the alert")
}
func (c *alertAddCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	if f.NArg() != 4 {
		fmt.Fprintln(os.Stderr, "alert-add requires <ticker> <above|below> <price> <email>")
		return subcommands.ExitUsageError
	}
	ticker := folio.NormalizeTicker(f.Arg(0))
	dir, err := folio.ParseDirection(f.Arg(1))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	target, err := parseAmount("price", f.Arg(2))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	alert := folio.NewAlert(ticker, target, dir, f.Arg(3), c.note)
	return withAlertStore(func(as *store.AlertStore) error {
		if err := as.Add(alert); err != nil {
			return err
		}
		fmt.Printf("created alert %s\n", alert.ID)
		return nil
	})
}

// alertListCmd lists all alerts.
type alertListCmd struct{}

func (*alertListCmd) Name() string     { return "alerts" }
func (*alertListCmd) Synopsis() string { return "list all price alerts" }
func (*alertListCmd) Usage() string {
	return `alerts:
  List every price alert with its status and subscribers.
`
}
func (*alertListCmd) SetFlags(f *flag.FlagSet) {}
func (*alertListCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	return withAlertStore(func(as *store.AlertStore) error {
		alerts, err := as.List()
		if err != nil {
			return err
		}
		printMarkdown(renderer.Alerts(alerts))
		return nil
	})
}

// alertDeleteCmd removes an alert.
type alertDeleteCmd struct{}

func (*alertDeleteCmd) Name() string     { return "alert-delete" }
func (*alertDeleteCmd) Synopsis() string { return "delete a price alert" }
func (*alertDeleteCmd) Usage() string {
	return `alert-delete <id>:
  Delete the alert with the given id.
`
}
func (*alertDeleteCmd) SetFlags(f *flag.FlagSet) {}
func (*alertDeleteCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "alert-delete requires exactly one id argument")
		return subcommands.ExitUsageError
	}
	return withAlertStore(func(as *store.AlertStore) error {
		if err := as.Delete(f.Arg(0)); err != nil {
			return err
		}
		fmt.Printf("deleted alert %s\n", f.Arg(0))
		return nil
	})
}

// alertReactivateCmd re-arms a sent alert.
type alertReactivateCmd struct{}

func (*alertReactivateCmd) Name() string     { return "alert-reactivate" }
func (*alertReactivateCmd) Synopsis() string { return "re-arm a sent alert" }
func (*alertReactivateCmd) Usage() string {
	return `alert-reactivate <id>:
  Set a sent alert back to active so it can fire again.
`
}
func (*alertReactivateCmd) SetFlags(f *flag.FlagSet) {}
func (*alertReactivateCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "alert-reactivate requires exactly one id argument")
		return subcommands.ExitUsageError
	}
	return withAlertStore(func(as *store.AlertStore) error {
		if err := as.Reactivate(f.Arg(0)); err != nil {
			return err
		}
		fmt.Printf("reactivated alert %s\n", f.Arg(0))
		return nil
	})
}

// alertSubscribeCmd adds a recipient to an alert.
type alertSubscribeCmd struct{}

func (*alertSubscribeCmd) Name() string     { return "alert-subscribe" }
func (*alertSubscribeCmd) Synopsis() string { return "subscribe an email to an alert" }
func (*alertSubscribeCmd) Usage() string {
	return `alert-subscribe <id> <email>:
  Add an email address to the alert recipients. Subscribing twice is a no-op.
`
}
func (*alertSubscribeCmd) SetFlags(f *flag.FlagSet) {}
func (*alertSubscribeCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "alert-subscribe requires <id> <email>")
		return subcommands.ExitUsageError
	}
	return withAlertStore(func(as *store.AlertStore) error {
		return as.Subscribe(f.Arg(0), f.Arg(1))
	})
}

// alertUnsubscribeCmd removes a recipient from an alert.
type alertUnsubscribeCmd struct{}

func (*alertUnsubscribeCmd) Name() string     { return "alert-unsubscribe" }
func (*alertUnsubscribeCmd) Synopsis() string { return "unsubscribe an email from an alert" }
func (*alertUnsubscribeCmd) Usage() string {
	return `alert-unsubscribe <id> <email>:
  Remove an email address from the alert recipients. Unsubscribing an
  address that is not subscribed is a no-op.
`
}
func (*alertUnsubscribeCmd) SetFlags(f *flag.FlagSet) {}
func (*alertUnsubscribeCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "alert-unsubscribe requires <id> <email>")
		return subcommands.ExitUsageError
	}
	return withAlertStore(func(as *store.AlertStore) error {
		return as.Unsubscribe(f.Arg(0), f.Arg(1))
	})
}

// alertCheckCmd runs a single alert evaluation pass.
type alertCheckCmd struct{}

func (*alertCheckCmd) Name() string     { return "alert-check" }
func (*alertCheckCmd) Synopsis() string { return "evaluate all active alerts once" }
func (*alertCheckCmd) Usage() string {
	return `alert-check:
  Fetch live prices for every active alert, send the emails for those
  that hit their target, and mark them sent.
`
}
func (*alertCheckCmd) SetFlags(f *flag.FlagSet) {}
func (*alertCheckCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	ev, db, err := newEvaluator()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer db.Close()

	sent, err := ev.Pass()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("sent %d notifications\n", sent)
	return subcommands.ExitSuccess
}

// newEvaluator wires the alert evaluator from the store, the quote client
// and the SMTP sender. The caller owns the returned store.
func newEvaluator() (*folio.Evaluator, *store.SQLite, error) {
	db, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	as, err := store.NewAlertStore(db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	client, err := eodhd.NewClient()
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	smtp, err := mail.FromEnv()
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	return &folio.Evaluator{Book: as, Quotes: client, Mail: smtp, Log: log}, db, nil
}
