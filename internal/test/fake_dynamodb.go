package test

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
)

// FakeDynamoDB is an in-memory table keyed by string attributes with a keys-only
// index over every item. It records every request it receives.
type FakeDynamoDB struct {
	mu sync.Mutex

	KeyAttributes []string
	Items         []map[string]types.AttributeValue

	ScanErr        error
	TransactGetErr error
	// MaxTransactGetItems, when set, rejects larger TransactGetItems calls the way
	// DynamoDB rejects a transaction whose response exceeds 4 MB.
	MaxTransactGetItems int
	// Vanished lists keys that are in the index but whose records are gone. Composite
	// keys are the key values joined with "|".
	Vanished map[string]bool

	ScanInputs        []*dynamodb.ScanInput
	TransactGetInputs []*dynamodb.TransactGetItemsInput
}

func NewFakeDynamoDB(items ...map[string]types.AttributeValue) *FakeDynamoDB {
	return &FakeDynamoDB{KeyAttributes: []string{"id"}, Items: items, Vanished: map[string]bool{}}
}

// CustomerItems builds n customer items with ids customer-000, customer-001, ...
func CustomerItems(n int) []map[string]types.AttributeValue {
	items := make([]map[string]types.AttributeValue, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, map[string]types.AttributeValue{
			"id":    &types.AttributeValueMemberS{Value: fmt.Sprintf("customer-%03d", i)},
			"name":  &types.AttributeValueMemberS{Value: fmt.Sprintf("Customer %d", i)},
			"order": &types.AttributeValueMemberN{Value: fmt.Sprint(i)},
		})
	}
	return items
}

func (f *FakeDynamoDB) Scan(ctx context.Context, input *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ScanInputs = append(f.ScanInputs, input)
	if f.ScanErr != nil {
		return nil, f.ScanErr
	}

	start := 0
	if input.ExclusiveStartKey != nil {
		after := f.key(input.ExclusiveStartKey)
		for i, item := range f.Items {
			if f.key(item) == after {
				start = i + 1
				break
			}
		}
	}
	end := len(f.Items)
	if input.Limit != nil && start+int(*input.Limit) < end {
		end = start + int(*input.Limit)
	}

	output := &dynamodb.ScanOutput{}
	for _, item := range f.Items[start:end] {
		output.Items = append(output.Items, f.project(item))
	}
	output.Count = int32(len(output.Items))
	if end < len(f.Items) {
		output.LastEvaluatedKey = f.project(f.Items[end-1])
	}
	return output, nil
}

func (f *FakeDynamoDB) TransactGetItems(ctx context.Context, input *dynamodb.TransactGetItemsInput, _ ...func(*dynamodb.Options)) (*dynamodb.TransactGetItemsOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.TransactGetInputs = append(f.TransactGetInputs, input)
	if f.TransactGetErr != nil {
		return nil, f.TransactGetErr
	}
	if len(input.TransactItems) == 0 || len(input.TransactItems) > 100 {
		return nil, fmt.Errorf("ValidationException: transact items must contain between 1 and 100 items")
	}
	if f.MaxTransactGetItems > 0 && len(input.TransactItems) > f.MaxTransactGetItems {
		return nil, &smithy.GenericAPIError{
			Code:    "ValidationException",
			Message: "Transaction response size exceeds the limit of 4 MB",
		}
	}

	output := &dynamodb.TransactGetItemsOutput{}
	for _, transactItem := range input.TransactItems {
		output.Responses = append(output.Responses, types.ItemResponse{
			Item: f.lookup(f.key(transactItem.Get.Key)),
		})
	}
	return output, nil
}

func (f *FakeDynamoDB) lookup(key string) map[string]types.AttributeValue {
	if f.Vanished[key] {
		return nil
	}
	for _, item := range f.Items {
		if f.key(item) == key {
			return item
		}
	}
	return nil
}

func (f *FakeDynamoDB) project(item map[string]types.AttributeValue) map[string]types.AttributeValue {
	projected := make(map[string]types.AttributeValue, len(f.KeyAttributes))
	for _, name := range f.KeyAttributes {
		if value, ok := item[name]; ok {
			projected[name] = value
		}
	}
	return projected
}

func (f *FakeDynamoDB) key(item map[string]types.AttributeValue) string {
	values := make([]string, 0, len(f.KeyAttributes))
	for _, name := range f.KeyAttributes {
		s, ok := item[name].(*types.AttributeValueMemberS)
		if !ok {
			return ""
		}
		values = append(values, s.Value)
	}
	return strings.Join(values, "|")
}
