package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"tisa/internal/ai/gemini"
	"tisa/internal/app"
)

type analyzeCmd struct {
	app   *app.App
	model string
}

func (*analyzeCmd) Name() string { return "analyze" }
func (*analyzeCmd) Synopsis() string {
	return "Generate the AI liquidity report for the current ledger."
}
func (*analyzeCmd) Usage() string {
	return `tisa analyze

  Sends a snapshot of the checks to Gemini and prints the Persian management
  report. Requires GEMINI_API_KEY; degrades to a fixed message otherwise.
`
}

func (*analyzeCmd) SetFlags(*flag.FlagSet) {}

func (c *analyzeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	checks, err := c.app.Ledger.Checks(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	analyst, err := gemini.NewAnalyst(ctx, c.model)
	if err != nil {
		fmt.Println(gemini.Fallback)
		return subcommands.ExitSuccess
	}

	fmt.Println(analyst.Analyze(ctx, checks))
	return subcommands.ExitSuccess
}
