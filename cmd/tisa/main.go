package main

import (
	"context"
	"flag"
	"os"
	"path"
	"time"

	"github.com/google/subcommands"

	"tisa/internal/app"
	"tisa/internal/cli"
	"tisa/internal/config"
	"tisa/internal/logger"
)

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		logger.L().Fatalf("Config load failed: %v", err)
	}

	a, err := app.New(cfg)
	if err != nil {
		logger.L().Fatalf("Initialization failed: %v", err)
	}

	ctx := context.Background()

	// The reminder sweep runs once per session start, before the command.
	a.StartupScan(ctx)

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	cli.Register(commander, a, cfg)
	flag.Parse()

	status := commander.Execute(ctx)

	closeCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := a.Close(closeCtx); err != nil {
		logger.L().Errorf("Shutdown: %v", err)
	}

	os.Exit(int(status))
}
