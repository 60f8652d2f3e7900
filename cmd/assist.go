package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/foliokit/folio"
	"github.com/foliokit/folio/renderer"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// assistCmd asks a model a one-shot question about the portfolio.
type assistCmd struct{}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "ask the AI assistant about the portfolio" }
func (*assistCmd) Usage() string {
	return `assist <question...>:
  Ask a question about the portfolio. The current holdings report is
  given to the model as context. Requires GEMINI_API_KEY.
`
}
func (*assistCmd) SetFlags(_ *flag.FlagSet) {}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "assist requires a question")
		return subcommands.ExitUsageError
	}
	question := strings.Join(f.Args(), " ")

	on := folio.Today()
	rows, metrics, st := valuate(on)
	if st != subcommands.ExitSuccess {
		return st
	}
	report := renderer.Holdings(on, rows, metrics)

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "could not initialize the Gemini client:", err)
		return subcommands.ExitFailure
	}

	prompt := fmt.Sprintf(
		"You are a personal portfolio assistant. Here is the current portfolio report:\n\n%s\n\nQuestion: %s",
		report, question)

	resp, err := client.Models.GenerateContent(ctx, "gemini-2.0-flash", genai.Text(prompt), nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "assistant failed:", err)
		return subcommands.ExitFailure
	}
	printMarkdown(resp.Text())
	return subcommands.ExitSuccess
}
