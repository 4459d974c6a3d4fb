package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"

	"tisa/internal/app"
)

type logsCmd struct {
	app *app.App
}

func (*logsCmd) Name() string     { return "logs" }
func (*logsCmd) Synopsis() string { return "Show the audit trail, most recent first." }
func (*logsCmd) Usage() string {
	return `tisa logs

  Prints the audit log of mutating operations (capped at the 50 most recent).
`
}

func (*logsCmd) SetFlags(*flag.FlagSet) {}

func (c *logsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	logs, err := c.app.Ledger.Logs(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if len(logs) == 0 {
		fmt.Println("The audit log is empty.")
		return subcommands.ExitSuccess
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tACTION\tCHECK\tDETAILS")
	for _, e := range logs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			e.Timestamp.Format("2006-01-02 15:04:05"), e.Action, shortID(e.CheckID), e.Details)
	}
	w.Flush()
	return subcommands.ExitSuccess
}
