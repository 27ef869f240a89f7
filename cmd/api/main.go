package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/pennsieve/customers-service/internal/config"
	"github.com/pennsieve/customers-service/internal/container"
	"github.com/pennsieve/customers-service/internal/handler"
	"github.com/pennsieve/customers-service/internal/logging"
)

func main() {
	logger := logging.Default

	cfg, err := config.Load()
	if err != nil {
		logger.Error("error loading configuration", "error", err)
		os.Exit(1)
	}
	if err := logging.SetLevel(cfg.LogLevel); err != nil {
		logger.Warn("ignoring invalid LOG_LEVEL", "level", cfg.LogLevel, "error", err)
	}

	c, err := container.NewContainer(context.Background(), cfg)
	if err != nil {
		logger.Error("error loading AWS config", "error", err)
		os.Exit(1)
	}

	lambda.Start(handler.CustomerServiceHandler(c))
}
