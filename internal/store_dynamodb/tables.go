package store_dynamodb

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/pennsieve/customers-service/internal/models"
)

// CreateCustomersTable creates a customers table keyed by keyAttributes (hash, then optional
// range, both strings) with a keys-only index covering every record. It is a no-op when the
// table already exists.
func CreateCustomersTable(ctx context.Context, client *dynamodb.Client, tableName, indexName string, keyAttributes []string) error {
	if len(keyAttributes) == 0 || len(keyAttributes) > 2 {
		return fmt.Errorf("expected one or two key attributes, got %d", len(keyAttributes))
	}

	var definitions []types.AttributeDefinition
	var keySchema []types.KeySchemaElement
	for i, name := range keyAttributes {
		keyType := types.KeyTypeHash
		if i == 1 {
			keyType = types.KeyTypeRange
		}
		definitions = append(definitions, types.AttributeDefinition{
			AttributeName: aws.String(name),
			AttributeType: types.ScalarAttributeTypeS,
		})
		keySchema = append(keySchema, types.KeySchemaElement{
			AttributeName: aws.String(name),
			KeyType:       keyType,
		})
	}

	_, err := client.CreateTable(ctx, &dynamodb.CreateTableInput{
		AttributeDefinitions: definitions,
		KeySchema:            keySchema,
		GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{
			{
				IndexName: aws.String(indexName),
				KeySchema: keySchema,
				Projection: &types.Projection{
					ProjectionType: types.ProjectionTypeKeysOnly,
				},
			},
		},
		TableName:   aws.String(tableName),
		BillingMode: types.BillingModePayPerRequest,
	})
	var inUse *types.ResourceInUseException
	if stderrors.As(err, &inUse) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error creating table %s: %w", tableName, err)
	}

	waiter := dynamodb.NewTableExistsWaiter(client)
	err = waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(tableName)}, 5*time.Minute)
	if err != nil {
		return fmt.Errorf("error waiting for table %s: %w", tableName, err)
	}
	return nil
}

// PutCustomers writes records to the customers table. Key attributes are stored as strings.
func PutCustomers(ctx context.Context, client *dynamodb.Client, tableName string, keyAttributes []string, customers []models.Customer) (int, error) {
	for i, customer := range customers {
		record := make(models.Customer, len(customer))
		for name, value := range customer {
			record[name] = value
		}
		for _, name := range keyAttributes {
			value, ok := record[name]
			if !ok {
				return i, fmt.Errorf("customer %d: missing key attribute %s", i, name)
			}
			record[name] = fmt.Sprint(value)
		}

		item, err := attributevalue.MarshalMap(record)
		if err != nil {
			return i, fmt.Errorf("error marshaling customer %d: %w", i, err)
		}
		_, err = client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName: aws.String(tableName), Item: item,
		})
		if err != nil {
			return i, fmt.Errorf("error inserting customer %d: %w", i, err)
		}
	}
	return len(customers), nil
}
