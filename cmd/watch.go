package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/subcommands"
	"github.com/robfig/cron/v3"
)

// watchCmd runs the alert evaluator on a schedule until interrupted.
type watchCmd struct {
	spec string
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "run the alert evaluator on a schedule" }
func (*watchCmd) Usage() string {
	return `watch [-every <cron spec>]:
  Run alert evaluation passes on a cron schedule until interrupted.
  The default schedule checks every 30 minutes.
`
}
func (c *watchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.spec, "every", "*/30 * * * *", "cron schedule for evaluation passes")
}
func (c *watchCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	ev, db, err := newEvaluator()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer db.Close()

	log := ev.Log

	sched := cron.New()
	_, err = sched.AddFunc(c.spec, func() {
		sent, err := ev.Pass()
		if err != nil {
			log.Error().Err(err).Str("job", ev.Name()).Msg("evaluation pass failed")
			return
		}
		log.Info().Str("job", ev.Name()).Int("sent", sent).Msg("evaluation pass done")
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid schedule %q: %v\n", c.spec, err)
		return subcommands.ExitUsageError
	}

	// one pass right away so a fresh start is never silent for 30 minutes
	if sent, err := ev.Pass(); err != nil {
		log.Error().Err(err).Msg("initial evaluation pass failed")
	} else {
		log.Info().Int("sent", sent).Msg("initial evaluation pass done")
	}

	log.Info().Str("schedule", c.spec).Msg("watching alerts")
	sched.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case <-ctx.Done():
	}

	stop := sched.Stop()
	<-stop.Done()
	log.Info().Msg("stopped")
	return subcommands.ExitSuccess
}
