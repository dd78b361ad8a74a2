package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/healthmate/cli/internal/cli"
	"github.com/healthmate/cli/internal/config"
	"github.com/healthmate/cli/internal/logging"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
