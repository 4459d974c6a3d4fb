package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"tisa/internal/app"
	"tisa/internal/jalali"
)

type configCmd struct {
	app *app.App

	token      string
	chat       string
	active     bool
	onCreate   bool
	onDelete   bool
	onStatus   bool
	daysBefore int
}

func (*configCmd) Name() string { return "config" }
func (*configCmd) Synopsis() string {
	return "Show or change the Telegram notification settings."
}
func (*configCmd) Usage() string {
	return `tisa config [flags]

  Without flags, prints the current notification settings. Flags that are
  set explicitly update the stored configuration (last writer wins).
`
}

func (c *configCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.token, "token", "", "Bot token.")
	f.StringVar(&c.chat, "chat", "", "Chat id.")
	f.BoolVar(&c.active, "active", false, "Master switch for all notifications.")
	f.BoolVar(&c.onCreate, "on-create", true, "Notify when a check is registered.")
	f.BoolVar(&c.onDelete, "on-delete", true, "Notify when a check is deleted.")
	f.BoolVar(&c.onStatus, "on-status", true, "Notify when a check's status changes.")
	f.IntVar(&c.daysBefore, "days-before", 1, "Reminder lead time in days.")
}

func (c *configCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := c.app.Ledger.Config(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if f.NFlag() == 0 {
		fmt.Printf("active:            %t\n", cfg.IsActive)
		fmt.Printf("bot token:         %s\n", maskToken(cfg.BotToken))
		fmt.Printf("chat id:           %s\n", cfg.ChatID)
		fmt.Printf("notify on create:  %t\n", cfg.NotifyOnCreate)
		fmt.Printf("notify on delete:  %t\n", cfg.NotifyOnDelete)
		fmt.Printf("notify on status:  %t\n", cfg.NotifyOnStatusChange)
		fmt.Printf("reminder lead:     %d day(s)\n", cfg.NotifyDaysBefore)
		if !cfg.LastSyncTimestamp.IsZero() {
			fmt.Printf("last saved:        %s\n", jalali.Format(cfg.LastSyncTimestamp))
		}
		return subcommands.ExitSuccess
	}

	// Apply only the flags the user actually set.
	var badFlag string
	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "token":
			cfg.BotToken = c.token
		case "chat":
			cfg.ChatID = c.chat
		case "active":
			cfg.IsActive = c.active
		case "on-create":
			cfg.NotifyOnCreate = c.onCreate
		case "on-delete":
			cfg.NotifyOnDelete = c.onDelete
		case "on-status":
			cfg.NotifyOnStatusChange = c.onStatus
		case "days-before":
			if c.daysBefore < 1 {
				badFlag = "days-before must be at least 1"
				return
			}
			cfg.NotifyDaysBefore = c.daysBefore
		}
	})
	if badFlag != "" {
		fmt.Fprintln(os.Stderr, badFlag)
		return subcommands.ExitUsageError
	}

	if err := c.app.Ledger.SaveConfig(ctx, cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Println("Notification settings saved.")
	return subcommands.ExitSuccess
}

func maskToken(token string) string {
	if token == "" {
		return "(not set)"
	}
	if len(token) <= 8 {
		return "********"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
