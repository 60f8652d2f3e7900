package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/foliokit/folio/mail"
	"github.com/google/subcommands"
)

// testEmailCmd sends a test email to verify the SMTP configuration.
type testEmailCmd struct{}

func (*testEmailCmd) Name() string     { return "test-email" }
func (*testEmailCmd) Synopsis() string { return "send a test email" }
func (*testEmailCmd) Usage() string {
	return `test-email <recipient>:
  Send a test email to <recipient> using the SMTP settings from the
  environment (SMTP_HOST, SMTP_PORT, SMTP_SENDER, SMTP_PASSWORD).
`
}
func (*testEmailCmd) SetFlags(f *flag.FlagSet) {}
func (*testEmailCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "test-email requires exactly one recipient argument")
		return subcommands.ExitUsageError
	}
	smtp, err := mail.FromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	err = smtp.Send("Portfolio test email",
		"This is a test email. Your alert notification settings work.",
		[]string{f.Arg(0)})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("test email sent to %s\n", f.Arg(0))
	return subcommands.ExitSuccess
}
