package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/esignconn/internal/config"
	"github.com/dmitrijs2005/esignconn/internal/connector"
	"github.com/dmitrijs2005/esignconn/internal/esign"
	"github.com/dmitrijs2005/esignconn/internal/logging"
	"github.com/dmitrijs2005/esignconn/internal/sdk"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Printf("invalid source configuration: %v", err)
		os.Exit(1)
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	client := esign.NewClient(cfg, logger)
	conn := connector.New(client, logger)

	reg := sdk.New(logger)
	connector.RegisterHandlers(reg, conn)

	runner := sdk.NewRunner(reg, os.Stdin, os.Stdout)
	if err := runner.Run(ctx); err != nil {
		logger.Error(ctx, "runner terminated", "error", err.Error())
		os.Exit(1)
	}
}
