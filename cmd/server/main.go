package main

import (
	"context"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/pennsieve/customers-service/internal/config"
	"github.com/pennsieve/customers-service/internal/container"
	"github.com/pennsieve/customers-service/internal/handler"
	"github.com/pennsieve/customers-service/internal/logging"
)

// Local runner for the customers function. Serves every method and path.
func main() {
	logger := logging.Default

	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, relying on OS environment variables")
	}

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

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.HandleFunc("/*", handler.NewHTTPHandler(c))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.Info("server running", "port", port, "table", cfg.CustomersTable, "index", cfg.IndexName)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
