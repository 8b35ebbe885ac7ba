package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/campushub/internal/buildinfo"
	"github.com/dmitrijs2005/campushub/internal/client/cli"
	"github.com/dmitrijs2005/campushub/internal/client/config"
	"github.com/dmitrijs2005/campushub/internal/client/storage"
	"github.com/dmitrijs2005/campushub/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()

	logger, err := logging.NewTextLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		log.Fatalf("%v", err)
	}

	store, closer, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("error opening store: %v", err)
	}
	defer closer.Close()

	app, err := cli.NewApp(store, logger, os.Stdin)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error(ctx, "client stopped with error", "error", err)
	}
}
