package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"tisa/internal/app"
)

type rmCmd struct {
	app *app.App

	id string
}

func (*rmCmd) Name() string     { return "rm" }
func (*rmCmd) Synopsis() string { return "Delete a check permanently." }
func (*rmCmd) Usage() string {
	return `tisa rm -id <check id>

  Removes the check from the ledger. There is no soft delete; the audit log
  keeps the only trace.
`
}

func (c *rmCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Check id (full uuid).")
}

func (c *rmCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(os.Stderr, "-id is required")
		return subcommands.ExitUsageError
	}

	if err := c.app.Ledger.Delete(ctx, c.id); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Deleted %s\n", shortID(c.id))
	return subcommands.ExitSuccess
}
