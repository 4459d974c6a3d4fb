package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"tisa/internal/app"
	"tisa/internal/ledger/models"
	"tisa/internal/ledger/service"
)

type statusCmd struct {
	app *app.App

	id     string
	status string
}

func (*statusCmd) Name() string     { return "set-status" }
func (*statusCmd) Synopsis() string { return "Change the status of a check." }
func (*statusCmd) Usage() string {
	return `tisa set-status -id <check id> -status <pending|paid|bounced|cancelled|legal>

  Replaces the status of an existing check. Any status may move to any other;
  a changed value triggers the status-change notification when enabled.
`
}

func (c *statusCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Check id (full uuid).")
	f.StringVar(&c.status, "status", "", "New status.")
}

func (c *statusCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(os.Stderr, "-id is required")
		return subcommands.ExitUsageError
	}
	status, err := models.ParseStatus(c.status)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	updated, err := c.app.Ledger.ChangeStatus(ctx, c.id, status)
	if err != nil {
		if errors.Is(err, service.ErrCheckNotFound) {
			fmt.Fprintf(os.Stderr, "no check with id %s\n", c.id)
			return subcommands.ExitUsageError
		}
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Check %s is now %s\n", shortID(updated.ID), updated.Status)
	return subcommands.ExitSuccess
}
