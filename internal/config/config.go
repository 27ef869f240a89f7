package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/pennsieve/customers-service/internal/errors"
)

const (
	DefaultIndexName = "all_customers"
	DefaultKeys      = "id"
	// DefaultPageSize is the page size Fauna applies to an unsized Paginate, which
	// existing clients of this endpoint expect.
	DefaultPageSize = 64
	MaxPageSize     = 1000
)

// Config is read once at process start and never mutated afterwards.
type Config struct {
	CustomersTable  string   `koanf:"customers_table" validate:"required"`
	IndexName       string   `koanf:"customers_index" validate:"required"`
	KeyAttributes   []string `koanf:"-" validate:"min=1,max=2,dive,required"`
	PageSize        int32    `koanf:"-" validate:"min=1,max=1000"`
	AccessKeyID     string   `koanf:"customers_db_access_key_id"`
	SecretAccessKey string   `koanf:"customers_db_secret_access_key"`
	Env             string   `koanf:"env"` // DEV, PROD, TEST or DOCKER
	DynamoDBURL     string   `koanf:"dynamodb_url"`
	LogLevel        string   `koanf:"log_level"`
}

// Load reads the configuration from the process environment, applies defaults and
// validates it. Every failure wraps errors.ErrConfig.
func Load() (Config, error) {
	k := koanf.New(".")
	err := k.Load(env.Provider("", ".", func(s string) string {
		return strings.ToLower(s)
	}), nil)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", errors.ErrConfig, err)
	}

	cfg := Config{}
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", errors.ErrConfig, err)
	}
	if cfg.KeyAttributes, err = parseKeys(k.String("customers_table_keys")); err != nil {
		return Config{}, fmt.Errorf("%w: %w", errors.ErrConfig, err)
	}
	if cfg.PageSize, err = parsePageSize(k.String("customers_page_size")); err != nil {
		return Config{}, fmt.Errorf("%w: %w", errors.ErrConfig, err)
	}
	cfg.applyDefaults()

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", errors.ErrConfig, err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	c.CustomersTable = strings.TrimSpace(c.CustomersTable)
	if c.IndexName = strings.TrimSpace(c.IndexName); c.IndexName == "" {
		c.IndexName = DefaultIndexName
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// parseKeys splits the comma separated key attribute list. A blank value selects
// DefaultKeys; a value with no names left after trimming is returned empty and
// rejected by validation.
func parseKeys(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return []string{DefaultKeys}, nil
	}
	keys := []string{}
	for _, key := range strings.Split(raw, ",") {
		if key = strings.TrimSpace(key); key != "" {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func parsePageSize(raw string) (int32, error) {
	if strings.TrimSpace(raw) == "" {
		return DefaultPageSize, nil
	}
	pageSize, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid CUSTOMERS_PAGE_SIZE %q: %w", raw, err)
	}
	return int32(pageSize), nil
}

// HasStaticCredentials reports whether a database secret was injected through the
// environment. Incomplete credentials are passed through and fail on first use.
func (c Config) HasStaticCredentials() bool {
	return c.AccessKeyID != "" || c.SecretAccessKey != ""
}

// UsesLocalEndpoint is true when running against DynamoDB Local.
func (c Config) UsesLocalEndpoint() bool {
	return (c.Env == "DOCKER" || c.Env == "TEST") && c.DynamoDBURL != ""
}
