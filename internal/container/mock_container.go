package container

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/pennsieve/customers-service/internal/store_dynamodb"
)

// MockContainer implements the container interface with mocked dependencies for unit tests
type MockContainer struct {
	MockDynamoDBClient *dynamodb.Client
	MockCustomerStore  store_dynamodb.CustomerStore
}

func NewMockContainer() *MockContainer {
	return &MockContainer{}
}

func (c *MockContainer) DynamoDBClient() *dynamodb.Client {
	return c.MockDynamoDBClient
}

func (c *MockContainer) CustomerStore() store_dynamodb.CustomerStore {
	return c.MockCustomerStore
}
