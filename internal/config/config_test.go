package config_test

import (
	"os"
	"testing"

	"github.com/pennsieve/customers-service/internal/config"
	"github.com/pennsieve/customers-service/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"CUSTOMERS_TABLE",
	"CUSTOMERS_INDEX",
	"CUSTOMERS_TABLE_KEYS",
	"CUSTOMERS_PAGE_SIZE",
	"CUSTOMERS_DB_ACCESS_KEY_ID",
	"CUSTOMERS_DB_SECRET_ACCESS_KEY",
	"ENV",
	"DYNAMODB_URL",
	"LOG_LEVEL",
}

// setEnv unsets every configuration variable before applying env. The previous
// values are restored when the test ends.
func setEnv(t *testing.T, env map[string]string) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	for key, value := range env {
		t.Setenv(key, value)
	}
}

func TestLoadDefaults(t *testing.T) {
	setEnv(t, map[string]string{
		"CUSTOMERS_TABLE": "dev-customers-table",
	})

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "dev-customers-table", cfg.CustomersTable)
	assert.Equal(t, "all_customers", cfg.IndexName)
	assert.Equal(t, []string{"id"}, cfg.KeyAttributes)
	assert.Equal(t, int32(64), cfg.PageSize)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.HasStaticCredentials())
	assert.False(t, cfg.UsesLocalEndpoint())
}

func TestLoadBlankValuesUseDefaults(t *testing.T) {
	setEnv(t, map[string]string{
		"CUSTOMERS_TABLE":      "customers",
		"CUSTOMERS_INDEX":      " ",
		"CUSTOMERS_TABLE_KEYS": "",
		"CUSTOMERS_PAGE_SIZE":  "",
	})

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "all_customers", cfg.IndexName)
	assert.Equal(t, []string{"id"}, cfg.KeyAttributes)
	assert.Equal(t, int32(64), cfg.PageSize)
}

func TestLoadSingleKey(t *testing.T) {
	setEnv(t, map[string]string{
		"CUSTOMERS_TABLE":      "customers",
		"CUSTOMERS_TABLE_KEYS": " uuid ",
	})

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"uuid"}, cfg.KeyAttributes)
}

func TestLoadOverrides(t *testing.T) {
	setEnv(t, map[string]string{
		"CUSTOMERS_TABLE":                "customers",
		"CUSTOMERS_INDEX":                "customers-by-name",
		"CUSTOMERS_TABLE_KEYS":           "tenant, customerId",
		"CUSTOMERS_PAGE_SIZE":            "250",
		"CUSTOMERS_DB_ACCESS_KEY_ID":     "AKIDEXAMPLE",
		"CUSTOMERS_DB_SECRET_ACCESS_KEY": "secret",
		"ENV":                            "TEST",
		"DYNAMODB_URL":                   "http://localhost:8000",
		"LOG_LEVEL":                      "debug",
	})

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "customers-by-name", cfg.IndexName)
	assert.Equal(t, []string{"tenant", "customerId"}, cfg.KeyAttributes)
	assert.Equal(t, int32(250), cfg.PageSize)
	assert.True(t, cfg.HasStaticCredentials())
	assert.True(t, cfg.UsesLocalEndpoint())
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadMissingTable(t *testing.T) {
	setEnv(t, nil)

	_, err := config.Load()
	assert.ErrorIs(t, err, errors.ErrConfig)
}

func TestLoadInvalidPageSize(t *testing.T) {
	for _, size := range []string{"-3", "1001", "many"} {
		setEnv(t, map[string]string{
			"CUSTOMERS_TABLE":     "customers",
			"CUSTOMERS_PAGE_SIZE": size,
		})

		_, err := config.Load()
		assert.ErrorIs(t, err, errors.ErrConfig, size)
	}
}

func TestLoadInvalidKeys(t *testing.T) {
	for _, keys := range []string{" , ", "a,b,c"} {
		setEnv(t, map[string]string{
			"CUSTOMERS_TABLE":      "customers",
			"CUSTOMERS_TABLE_KEYS": keys,
		})

		_, err := config.Load()
		assert.ErrorIs(t, err, errors.ErrConfig, keys)
	}
}
