package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/google/subcommands"

	"tisa/internal/app"
	"tisa/internal/jalali"
)

type listCmd struct {
	app *app.App

	summary bool
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "List checks, or show the ledger summary with -summary." }
func (*listCmd) Usage() string {
	return `tisa list [-summary]

  Prints all checks, most recently created first. With -summary prints the
  dashboard totals instead.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.summary, "summary", false, "Print totals instead of the full table.")
}

func (c *listCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.summary {
		return c.printSummary(ctx)
	}

	checks, err := c.app.Ledger.Checks(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if len(checks) == 0 {
		fmt.Println("The ledger is empty.")
		return subcommands.ExitSuccess
	}

	sort.SliceStable(checks, func(i, j int) bool {
		return checks[i].CreatedAt.After(checks[j].CreatedAt)
	})

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tISSUER\tAMOUNT\tDUE\tDAYS\tSTATUS\tBANK")
	for _, ch := range checks {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			shortID(ch.ID), ch.Issuer, jalali.FormatRial(ch.Amount),
			jalali.Format(ch.DueDate), jalali.DaysUntil(ch.DueDate), ch.Status, ch.BankName)
	}
	w.Flush()
	return subcommands.ExitSuccess
}

func (c *listCmd) printSummary(ctx context.Context) subcommands.ExitStatus {
	st, err := c.app.Ledger.Stats(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Checks:  %d total, %d pending, %d paid, %d bounced\n", st.Total, st.Pending, st.Paid, st.Bounced)
	fmt.Printf("Pending: %s\n", jalali.FormatRial(st.PendingAmount))
	if len(st.Upcoming) > 0 {
		fmt.Println("Upcoming due dates:")
		for _, ch := range st.Upcoming {
			fmt.Printf("  %s  %s  %s (%s)\n",
				jalali.Format(ch.DueDate), ch.Issuer, jalali.FormatRial(ch.Amount), ch.BankName)
		}
	}
	return subcommands.ExitSuccess
}
