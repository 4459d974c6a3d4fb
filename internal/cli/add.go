package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"tisa/internal/app"
	"tisa/internal/jalali"
	"tisa/internal/ledger/models"
)

type addCmd struct {
	app *app.App

	id          string
	amount      int64
	due         string
	issuer      string
	nationalID  string
	recipient   string
	bank        string
	branch      string
	number      string
	sayad       string
	status      string
	description string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "Register a check, or replace one when -id matches." }
func (*addCmd) Usage() string {
	return `tisa add -issuer <name> -amount <rial> -due <jalali date> [flags]

  Registers a new check in the ledger. When -id names an existing record the
  record is replaced in full (an edit). The due date is a Jalali date like
  1403/04/15.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Existing check id to replace (empty creates a new check).")
	f.Int64Var(&c.amount, "amount", 0, "Amount in rial.")
	f.StringVar(&c.due, "due", "", "Due date, Jalali YYYY/MM/DD.")
	f.StringVar(&c.issuer, "issuer", "", "Issuer name.")
	f.StringVar(&c.nationalID, "national-id", "", "Issuer national id.")
	f.StringVar(&c.recipient, "recipient", "", "Recipient name.")
	f.StringVar(&c.bank, "bank", "", "Bank name.")
	f.StringVar(&c.branch, "branch", "", "Branch name.")
	f.StringVar(&c.number, "number", "", "Check number.")
	f.StringVar(&c.sayad, "sayad", "", "16-character sayad tracking id.")
	f.StringVar(&c.status, "status", "pending", "Status: pending, paid, bounced, cancelled, legal.")
	f.StringVar(&c.description, "desc", "", "Free-text description.")
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	due, err := parseJalaliDate(c.due)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	status, err := models.ParseStatus(c.status)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	check := models.Check{
		ID:               c.id,
		Amount:           c.amount,
		DueDate:          due,
		Issuer:           c.issuer,
		IssuerNationalID: c.nationalID,
		Recipient:        c.recipient,
		BankName:         c.bank,
		BranchName:       c.branch,
		CheckNumber:      c.number,
		SayadID:          c.sayad,
		Status:           status,
		Description:      c.description,
	}

	// Validation happens here, before the ledger service is involved.
	if err := check.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	saved, err := c.app.Ledger.Save(ctx, check)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Saved check %s (%s, %s, due %s)\n",
		shortID(saved.ID), saved.Issuer, jalali.FormatRial(saved.Amount), jalali.Format(saved.DueDate))
	return subcommands.ExitSuccess
}
