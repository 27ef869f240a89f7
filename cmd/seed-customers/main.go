package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/joho/godotenv"
	"github.com/pennsieve/customers-service/internal/config"
	"github.com/pennsieve/customers-service/internal/container"
	"github.com/pennsieve/customers-service/internal/logging"
	"github.com/pennsieve/customers-service/internal/models"
	"github.com/pennsieve/customers-service/internal/store_dynamodb"
)

// Creates the customers table and index if needed and loads records from a JSON array.
// Intended for DynamoDB Local and development stages.
func main() {
	ctx := context.Background()
	logger := logging.Default

	if len(os.Args) < 2 {
		logger.Error("usage: seed-customers <customers.json>")
		os.Exit(2)
	}
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("error loading configuration", "error", err)
		os.Exit(1)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		logger.Error("failed to read file", "file", os.Args[1], "error", err)
		os.Exit(1)
	}
	var customers []models.Customer
	if err := json.Unmarshal(data, &customers); err != nil {
		logger.Error("failed to parse JSON", "file", os.Args[1], "error", err)
		os.Exit(1)
	}

	c, err := container.NewContainer(ctx, cfg)
	if err != nil {
		logger.Error("error loading AWS config", "error", err)
		os.Exit(1)
	}
	client := c.DynamoDBClient()

	if err := store_dynamodb.CreateCustomersTable(ctx, client, cfg.CustomersTable, cfg.IndexName, cfg.KeyAttributes); err != nil {
		logger.Error("error creating customers table", "table", cfg.CustomersTable, "error", err)
		os.Exit(1)
	}

	n, err := store_dynamodb.PutCustomers(ctx, client, cfg.CustomersTable, cfg.KeyAttributes, customers)
	if err != nil {
		logger.Error("error importing customers", "imported", n, "error", err)
		os.Exit(1)
	}
	logger.Info("import completed", "table", cfg.CustomersTable, "imported", n)
}
