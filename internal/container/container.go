package container

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/pennsieve/customers-service/internal/config"
	"github.com/pennsieve/customers-service/internal/store_dynamodb"
	"github.com/pennsieve/customers-service/internal/utils"
)

// DependencyContainer defines the interface for dependency injection
type DependencyContainer interface {
	DynamoDBClient() *dynamodb.Client
	CustomerStore() store_dynamodb.CustomerStore
}

// Container implements the production dependency container. Clients are created on
// first use and shared read-only by every invocation in the process.
type Container struct {
	awsConfig aws.Config
	config    config.Config

	dynamoOnce    sync.Once
	dynamoClient  *dynamodb.Client
	storeOnce     sync.Once
	customerStore store_dynamodb.CustomerStore
}

func NewContainer(ctx context.Context, cfg config.Config) (*Container, error) {
	awsConfig, err := utils.LoadAWSConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return NewContainerWithConfig(awsConfig, cfg), nil
}

func NewContainerWithConfig(awsConfig aws.Config, cfg config.Config) *Container {
	return &Container{
		awsConfig: awsConfig,
		config:    cfg,
	}
}

func (c *Container) DynamoDBClient() *dynamodb.Client {
	c.dynamoOnce.Do(func() {
		c.dynamoClient = dynamodb.NewFromConfig(c.awsConfig)
	})
	return c.dynamoClient
}

func (c *Container) CustomerStore() store_dynamodb.CustomerStore {
	c.storeOnce.Do(func() {
		c.customerStore = store_dynamodb.NewCustomerDatabaseStore(
			c.DynamoDBClient(),
			c.config.CustomersTable,
			c.config.IndexName,
			c.config.KeyAttributes,
			c.config.PageSize,
		)
	})
	return c.customerStore
}
