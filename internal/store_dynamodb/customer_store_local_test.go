package store_dynamodb_test

import (
	"context"
	"testing"

	"github.com/pennsieve/customers-service/internal/errors"
	"github.com/pennsieve/customers-service/internal/models"
	"github.com/pennsieve/customers-service/internal/store_dynamodb"
	"github.com/pennsieve/customers-service/internal/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalListCustomers(t *testing.T) {
	client := test.LocalClient(t)
	ctx := context.Background()
	tableName := "test-customers-" + test.GenerateTestId()

	require.NoError(t, store_dynamodb.CreateCustomersTable(ctx, client, tableName, "all_customers", []string{"id"}))
	t.Cleanup(func() { _ = test.DeleteTable(client, tableName) })

	// creating twice is a no-op
	require.NoError(t, store_dynamodb.CreateCustomersTable(ctx, client, tableName, "all_customers", []string{"id"}))

	n, err := store_dynamodb.PutCustomers(ctx, client, tableName, []string{"id"}, []models.Customer{
		{"id": 1, "name": "Ada", "tags": []any{"vip"}},
		{"id": "2", "name": "Grace"},
		{"id": "3", "name": "Linus", "address": map[string]any{"city": "Helsinki"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	store := store_dynamodb.NewCustomerDatabaseStore(client, tableName, "all_customers", []string{"id"}, 64)
	result, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, result.Data, 3)

	byId := map[any]models.Customer{}
	for _, customer := range result.Data {
		byId[customer["id"]] = customer
	}
	assert.Equal(t, "Ada", byId["1"]["name"])
	assert.Equal(t, []any{"vip"}, byId["1"]["tags"])
	assert.Equal(t, map[string]any{"city": "Helsinki"}, byId["3"]["address"])
}

func TestLocalListCustomersFirstPageOnly(t *testing.T) {
	client := test.LocalClient(t)
	ctx := context.Background()
	tableName := "test-customers-" + test.GenerateTestId()

	require.NoError(t, store_dynamodb.CreateCustomersTable(ctx, client, tableName, "all_customers", []string{"id"}))
	t.Cleanup(func() { _ = test.DeleteTable(client, tableName) })

	customers := make([]models.Customer, 0, 10)
	for i := 0; i < 10; i++ {
		customers = append(customers, models.Customer{"id": i, "name": "customer"})
	}
	_, err := store_dynamodb.PutCustomers(ctx, client, tableName, []string{"id"}, customers)
	require.NoError(t, err)

	store := store_dynamodb.NewCustomerDatabaseStore(client, tableName, "all_customers", []string{"id"}, 4)
	result, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, result.Data, 4)
	assert.NotNil(t, result.After)
}

func TestLocalListMissingIndex(t *testing.T) {
	client := test.LocalClient(t)
	ctx := context.Background()
	tableName := "test-customers-" + test.GenerateTestId()

	require.NoError(t, store_dynamodb.CreateCustomersTable(ctx, client, tableName, "some_other_index", []string{"id"}))
	t.Cleanup(func() { _ = test.DeleteTable(client, tableName) })

	store := store_dynamodb.NewCustomerDatabaseStore(client, tableName, "all_customers", []string{"id"}, 64)
	_, err := store.List(ctx)
	require.Error(t, err)
	assert.NotEmpty(t, errors.Message(err))
}
